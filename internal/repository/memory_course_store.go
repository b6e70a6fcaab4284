package repository

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/stemsi/elearning-backend/internal/model"
)

// MemoryCourseStore keeps courses in process memory. It backs the
// "memory" storage driver and the test suites.
type MemoryCourseStore struct {
	mu      sync.Mutex
	courses []model.Course
	nextID  int
}

// NewMemoryCourseStore creates a store preloaded with seed rows.
// Seed ids are kept; new rows continue after the highest one.
func NewMemoryCourseStore(seed ...model.Course) *MemoryCourseStore {
	s := &MemoryCourseStore{nextID: 1}
	for _, c := range seed {
		s.courses = append(s.courses, c)
		if c.ID >= s.nextID {
			s.nextID = c.ID + 1
		}
	}
	return s
}

func (s *MemoryCourseStore) List(_ context.Context, filter CourseFilter) ([]model.Course, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]model.Course, 0, len(s.courses))
	for _, c := range s.courses {
		if filter.Category != "" && strings.ToLower(c.Category) != strings.ToLower(filter.Category) {
			continue
		}
		if filter.PublishedOnly && !c.IsPublished {
			continue
		}
		out = append(out, c)
	}
	sort.SliceStable(out, func(i, j int) bool { return lessFold(out[i].Title, out[j].Title) })
	return out, nil
}

func (s *MemoryCourseStore) Get(_ context.Context, id int) (*model.Course, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return nil, ErrCourseNotFound
	}
	c := s.courses[i]
	return &c, nil
}

func (s *MemoryCourseStore) Categories(_ context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	categories := make([]string, 0, len(s.courses))
	for _, c := range s.courses {
		categories = append(categories, c.Category)
	}
	sort.SliceStable(categories, func(i, j int) bool { return lessFold(categories[i], categories[j]) })
	return categories, nil
}

func (s *MemoryCourseStore) Insert(_ context.Context, course *model.Course) error {
	if err := checkColumns(course); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	course.ID = s.nextID
	s.nextID++
	s.courses = append(s.courses, *course)
	return nil
}

func (s *MemoryCourseStore) Save(_ context.Context, course *model.Course) error {
	if err := checkColumns(course); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(course.ID)
	if i < 0 {
		return ErrCourseNotFound
	}
	createdAt := s.courses[i].CreatedAt
	s.courses[i] = *course
	s.courses[i].CreatedAt = createdAt
	return nil
}

func (s *MemoryCourseStore) Remove(_ context.Context, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return ErrCourseNotFound
	}
	s.courses = append(s.courses[:i], s.courses[i+1:]...)
	return nil
}

func (s *MemoryCourseStore) Exists(_ context.Context, id int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.indexOf(id) >= 0, nil
}

func (s *MemoryCourseStore) Count(_ context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return int64(len(s.courses)), nil
}

// Ping always succeeds; there is no connection to lose.
func (s *MemoryCourseStore) Ping(_ context.Context) error {
	return nil
}

// Samples returns the diagnostics projection in insertion order.
func (s *MemoryCourseStore) Samples(_ context.Context) ([]model.CourseSample, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	samples := make([]model.CourseSample, 0, len(s.courses))
	for _, c := range s.courses {
		samples = append(samples, model.CourseSample{
			ID:          c.ID,
			Title:       c.Title,
			Category:    c.Category,
			Price:       c.Price,
			IsPublished: c.IsPublished,
		})
	}
	return samples, nil
}

// lessFold orders strings case-insensitively, breaking ties byte-wise so
// "Go" sorts before "go". It matches the ORDER BY used by GormCourseStore.
func lessFold(a, b string) bool {
	la, lb := strings.ToLower(a), strings.ToLower(b)
	if la != lb {
		return la < lb
	}
	return a < b
}

func (s *MemoryCourseStore) indexOf(id int) int {
	for i := range s.courses {
		if s.courses[i].ID == id {
			return i
		}
	}
	return -1
}

// checkColumns mirrors the varchar limits of the courses table.
func checkColumns(c *model.Course) error {
	limits := []struct {
		column string
		value  string
		max    int
	}{
		{"title", c.Title, 200},
		{"description", c.Description, 1000},
		{"level", c.Level, 50},
		{"category", c.Category, 50},
	}
	for _, l := range limits {
		if n := utf8.RuneCountInString(l.value); n > l.max {
			return fmt.Errorf("value too long for column %s: %d > %d", l.column, n, l.max)
		}
	}
	return nil
}
