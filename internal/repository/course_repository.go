package repository

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"github.com/stemsi/elearning-backend/internal/model"
)

// CourseRepository exposes the course queries and commands used by the
// HTTP layer. It owns timestamping and the update field copy.
type CourseRepository struct {
	store CourseStore
	log   zerolog.Logger
	now   func() time.Time
}

func NewCourseRepository(store CourseStore, log zerolog.Logger) *CourseRepository {
	return &CourseRepository{
		store: store,
		log:   log.With().Str("component", "course_repository").Logger(),
		now:   utcNow,
	}
}

// utcNow truncates to microseconds so a returned record matches what
// Postgres stores.
func utcNow() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}

// GetAll returns every course ordered by title.
func (r *CourseRepository) GetAll(ctx context.Context) ([]model.Course, error) {
	r.log.Debug().Msg("retrieving all courses")
	return r.store.List(ctx, CourseFilter{})
}

// GetByID returns ErrCourseNotFound when no course has the id.
func (r *CourseRepository) GetByID(ctx context.Context, id int) (*model.Course, error) {
	r.log.Debug().Int("course_id", id).Msg("retrieving course")
	return r.store.Get(ctx, id)
}

// GetCategories returns one category per course, ordered. Duplicates are kept.
func (r *CourseRepository) GetCategories(ctx context.Context) ([]string, error) {
	return r.store.Categories(ctx)
}

func (r *CourseRepository) GetByCategory(ctx context.Context, category string) ([]model.Course, error) {
	r.log.Debug().Str("category", category).Msg("retrieving courses for category")
	return r.store.List(ctx, CourseFilter{Category: category})
}

func (r *CourseRepository) GetPublished(ctx context.Context) ([]model.Course, error) {
	r.log.Debug().Msg("retrieving published courses")
	return r.store.List(ctx, CourseFilter{PublishedOnly: true})
}

// Create stamps both timestamps, lets storage assign the id and returns the
// stored record.
func (r *CourseRepository) Create(ctx context.Context, course *model.Course) (*model.Course, error) {
	r.log.Info().Str("title", course.Title).Msg("creating course")

	stamp := r.now()
	course.ID = 0
	course.CreatedAt = stamp
	course.UpdatedAt = stamp
	if course.Level == "" {
		course.Level = model.DefaultLevel
	}

	if err := r.store.Insert(ctx, course); err != nil {
		return nil, err
	}

	r.log.Info().Int("course_id", course.ID).Msg("course created")
	return course, nil
}

// Update overwrites every mutable field of the stored course with the
// incoming values. ID and CreatedAt never change.
func (r *CourseRepository) Update(ctx context.Context, course *model.Course) (*model.Course, error) {
	r.log.Info().Int("course_id", course.ID).Msg("updating course")

	existing, err := r.store.Get(ctx, course.ID)
	if err != nil {
		if errors.Is(err, ErrCourseNotFound) {
			r.log.Warn().Int("course_id", course.ID).Msg("course not found for update")
		}
		return nil, err
	}

	existing.Title = course.Title
	existing.Description = course.Description
	existing.Price = course.Price
	existing.DurationInHours = course.DurationInHours
	existing.Level = course.Level
	if existing.Level == "" {
		existing.Level = model.DefaultLevel
	}
	existing.Category = course.Category
	existing.IsPublished = course.IsPublished
	existing.InstructorID = course.InstructorID

	stamp := r.now()
	if !stamp.After(existing.UpdatedAt) {
		stamp = existing.UpdatedAt.Add(time.Microsecond)
	}
	existing.UpdatedAt = stamp

	if err := r.store.Save(ctx, existing); err != nil {
		return nil, err
	}

	r.log.Info().Int("course_id", existing.ID).Msg("course updated")
	return existing, nil
}

// Delete reports false when there was nothing to remove.
func (r *CourseRepository) Delete(ctx context.Context, id int) (bool, error) {
	r.log.Info().Int("course_id", id).Msg("deleting course")

	err := r.store.Remove(ctx, id)
	if errors.Is(err, ErrCourseNotFound) {
		r.log.Warn().Int("course_id", id).Msg("course not found for deletion")
		return false, nil
	}
	if err != nil {
		return false, err
	}

	r.log.Info().Int("course_id", id).Msg("course deleted")
	return true, nil
}

func (r *CourseRepository) Exists(ctx context.Context, id int) (bool, error) {
	return r.store.Exists(ctx, id)
}

func (r *CourseRepository) Count(ctx context.Context) (int64, error) {
	return r.store.Count(ctx)
}
