package repository

import (
	"context"
	"errors"

	"github.com/stemsi/elearning-backend/internal/model"
	"gorm.io/gorm"
)

// GormCourseStore persists courses through gorm. Every call opens its own
// session bound to the caller's context.
type GormCourseStore struct {
	db *gorm.DB
}

func NewGormCourseStore(db *gorm.DB) *GormCourseStore {
	return &GormCourseStore{db: db}
}

// inUTC normalizes timestamps read back from the driver. pgx returns
// timestamptz values in the process's local zone.
func inUTC(c *model.Course) {
	c.CreatedAt = c.CreatedAt.UTC()
	c.UpdatedAt = c.UpdatedAt.UTC()
}

func (s *GormCourseStore) session(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx)
}

func (s *GormCourseStore) List(ctx context.Context, filter CourseFilter) ([]model.Course, error) {
	query := s.session(ctx).Model(&model.Course{})
	if filter.Category != "" {
		query = query.Where("LOWER(category) = LOWER(?)", filter.Category)
	}
	if filter.PublishedOnly {
		query = query.Where("is_published = ?", true)
	}

	var courses []model.Course
	if err := query.Order("LOWER(title) ASC, title ASC").Find(&courses).Error; err != nil {
		return nil, err
	}
	for i := range courses {
		inUTC(&courses[i])
	}
	return courses, nil
}

func (s *GormCourseStore) Get(ctx context.Context, id int) (*model.Course, error) {
	var c model.Course
	err := s.session(ctx).Where("id = ?", id).First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrCourseNotFound
	}
	if err != nil {
		return nil, err
	}
	inUTC(&c)
	return &c, nil
}

func (s *GormCourseStore) Categories(ctx context.Context) ([]string, error) {
	var categories []string
	err := s.session(ctx).
		Model(&model.Course{}).
		Order("LOWER(category) ASC, category ASC").
		Pluck("category", &categories).Error
	if err != nil {
		return nil, err
	}
	return categories, nil
}

func (s *GormCourseStore) Insert(ctx context.Context, course *model.Course) error {
	return s.session(ctx).Create(course).Error
}

func (s *GormCourseStore) Save(ctx context.Context, course *model.Course) error {
	res := s.session(ctx).
		Model(&model.Course{}).
		Where("id = ?", course.ID).
		Select("*").
		Omit("id", "created_at").
		Updates(course)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrCourseNotFound
	}
	return nil
}

func (s *GormCourseStore) Remove(ctx context.Context, id int) error {
	res := s.session(ctx).Delete(&model.Course{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrCourseNotFound
	}
	return nil
}

func (s *GormCourseStore) Exists(ctx context.Context, id int) (bool, error) {
	var n int64
	if err := s.session(ctx).Model(&model.Course{}).Where("id = ?", id).Limit(1).Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *GormCourseStore) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := s.session(ctx).Model(&model.Course{}).Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}
