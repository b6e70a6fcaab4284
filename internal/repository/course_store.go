package repository

import (
	"context"
	"errors"

	"github.com/stemsi/elearning-backend/internal/model"
)

// ErrCourseNotFound signals that no course has the requested id.
var ErrCourseNotFound = errors.New("course not found")

// CourseFilter narrows a List call. Zero value lists everything.
type CourseFilter struct {
	// Category matches case-insensitively when non-empty.
	Category string
	// PublishedOnly keeps only rows with IsPublished set.
	PublishedOnly bool
}

// CourseStore is the persistence context behind CourseRepository.
// Lists are ordered by title ascending.
type CourseStore interface {
	List(ctx context.Context, filter CourseFilter) ([]model.Course, error)
	Get(ctx context.Context, id int) (*model.Course, error)
	Categories(ctx context.Context) ([]string, error)
	Insert(ctx context.Context, course *model.Course) error
	Save(ctx context.Context, course *model.Course) error
	Remove(ctx context.Context, id int) error
	Exists(ctx context.Context, id int) (bool, error)
	Count(ctx context.Context) (int64, error)
}
