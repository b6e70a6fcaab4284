package repository

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stemsi/elearning-backend/internal/model"
)

func newTestRepo(t *testing.T, seed ...model.Course) (*CourseRepository, *MemoryCourseStore) {
	t.Helper()
	store := NewMemoryCourseStore(seed...)
	return NewCourseRepository(store, zerolog.Nop()), store
}

func fixedClock(ts time.Time) func() time.Time {
	return func() time.Time { return ts }
}

func sampleCourse(title, category string, published bool) *model.Course {
	return &model.Course{
		Title:           title,
		Description:     "A course about " + title,
		Price:           10,
		DurationInHours: 5,
		Category:        category,
		IsPublished:     published,
	}
}

func titles(courses []model.Course) []string {
	out := make([]string, len(courses))
	for i, c := range courses {
		out[i] = c.Title
	}
	return out
}

func TestGetAllOrdersByTitle(t *testing.T) {
	repo, _ := newTestRepo(t, model.SeedCourses()...)
	ctx := context.Background()

	if _, err := repo.Create(ctx, sampleCourse("Zig Basics", "Programming", false)); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := repo.Create(ctx, sampleCourse("Algorithms", "Programming", true)); err != nil {
		t.Fatalf("create: %v", err)
	}

	courses, err := repo.GetAll(ctx)
	if err != nil {
		t.Fatalf("get all: %v", err)
	}

	got := strings.Join(titles(courses), "|")
	want := "Advanced ASP.NET Core Development|Algorithms|Angular Frontend Development|Introduction to C# Programming|Zig Basics"
	if got != want {
		t.Errorf("order = %s, want %s", got, want)
	}
}

func TestListOrderIgnoresCase(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	for _, c := range []*model.Course{
		sampleCourse("banana", "web", true),
		sampleCourse("Cherry", "data", true),
		sampleCourse("apple", "Data", true),
		sampleCourse("Banana", "Web", true),
	} {
		if _, err := repo.Create(ctx, c); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	courses, err := repo.GetAll(ctx)
	if err != nil {
		t.Fatalf("get all: %v", err)
	}
	if got, want := strings.Join(titles(courses), "|"), "apple|Banana|banana|Cherry"; got != want {
		t.Errorf("order = %s, want %s", got, want)
	}

	categories, err := repo.GetCategories(ctx)
	if err != nil {
		t.Fatalf("get categories: %v", err)
	}
	if got, want := strings.Join(categories, "|"), "Data|data|Web|web"; got != want {
		t.Errorf("categories = %s, want %s", got, want)
	}
}

func TestGetAllEmptyStore(t *testing.T) {
	repo, _ := newTestRepo(t)

	courses, err := repo.GetAll(context.Background())
	if err != nil {
		t.Fatalf("get all: %v", err)
	}
	if len(courses) != 0 {
		t.Errorf("expected no courses, got %d", len(courses))
	}
}

func TestGetByIDNotFound(t *testing.T) {
	repo, _ := newTestRepo(t, model.SeedCourses()...)

	_, err := repo.GetByID(context.Background(), 999)
	if !errors.Is(err, ErrCourseNotFound) {
		t.Fatalf("expected ErrCourseNotFound, got %v", err)
	}
}

func TestGetPublishedSeed(t *testing.T) {
	repo, _ := newTestRepo(t, model.SeedCourses()...)

	courses, err := repo.GetPublished(context.Background())
	if err != nil {
		t.Fatalf("get published: %v", err)
	}

	got := strings.Join(titles(courses), "|")
	want := "Advanced ASP.NET Core Development|Introduction to C# Programming"
	if got != want {
		t.Errorf("published = %s, want %s", got, want)
	}
}

func TestGetByCategoryIgnoresCase(t *testing.T) {
	repo, _ := newTestRepo(t, model.SeedCourses()...)
	ctx := context.Background()

	for _, category := range []string{"programming", "PROGRAMMING", "Programming"} {
		courses, err := repo.GetByCategory(ctx, category)
		if err != nil {
			t.Fatalf("get by category %q: %v", category, err)
		}
		if len(courses) != 1 || courses[0].Title != "Introduction to C# Programming" {
			t.Errorf("category %q returned %v", category, titles(courses))
		}
	}

	courses, err := repo.GetByCategory(ctx, "Cooking")
	if err != nil {
		t.Fatalf("get by category: %v", err)
	}
	if len(courses) != 0 {
		t.Errorf("expected no courses for unknown category, got %d", len(courses))
	}
}

func TestGetCategoriesKeepsDuplicates(t *testing.T) {
	repo, _ := newTestRepo(t, model.SeedCourses()...)
	ctx := context.Background()

	if _, err := repo.Create(ctx, sampleCourse("Go Concurrency", "Programming", true)); err != nil {
		t.Fatalf("create: %v", err)
	}

	categories, err := repo.GetCategories(ctx)
	if err != nil {
		t.Fatalf("get categories: %v", err)
	}

	got := strings.Join(categories, "|")
	want := "Frontend|Programming|Programming|Web Development"
	if got != want {
		t.Errorf("categories = %s, want %s", got, want)
	}
}

func TestCreateStampsAndAssignsID(t *testing.T) {
	repo, _ := newTestRepo(t, model.SeedCourses()...)
	now := time.Date(2025, time.March, 3, 10, 0, 0, 0, time.UTC)
	repo.now = fixedClock(now)

	in := sampleCourse("Rust for Gophers", "Programming", true)
	in.ID = 42
	in.CreatedAt = time.Date(1999, time.January, 1, 0, 0, 0, 0, time.UTC)

	created, err := repo.Create(context.Background(), in)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if created.ID != 4 {
		t.Errorf("id = %d, want 4", created.ID)
	}
	if !created.CreatedAt.Equal(now) || !created.UpdatedAt.Equal(now) {
		t.Errorf("timestamps = %v/%v, want %v", created.CreatedAt, created.UpdatedAt, now)
	}
	if created.Level != model.DefaultLevel {
		t.Errorf("level = %q, want %q", created.Level, model.DefaultLevel)
	}

	stored, err := repo.GetByID(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if stored.Title != in.Title || !stored.CreatedAt.Equal(now) {
		t.Errorf("stored course = %+v", stored)
	}
}

func TestCreateRejectsOversizedColumn(t *testing.T) {
	repo, store := newTestRepo(t)

	in := sampleCourse(strings.Repeat("x", 201), "Programming", false)
	if _, err := repo.Create(context.Background(), in); err == nil {
		t.Fatal("expected error for oversized title")
	}

	n, _ := store.Count(context.Background())
	if n != 0 {
		t.Errorf("count = %d after failed insert, want 0", n)
	}
}

func TestUpdateCopiesFieldsAndKeepsCreatedAt(t *testing.T) {
	repo, _ := newTestRepo(t, model.SeedCourses()...)
	now := time.Date(2025, time.June, 1, 12, 0, 0, 0, time.UTC)
	repo.now = fixedClock(now)

	in := &model.Course{
		ID:              1,
		Title:           "C# In Depth",
		Description:     "Updated description",
		Price:           79.5,
		DurationInHours: 25,
		Level:           "Advanced",
		Category:        "Programming",
		IsPublished:     false,
		InstructorID:    7,
		CreatedAt:       time.Date(2030, time.January, 1, 0, 0, 0, 0, time.UTC),
	}

	updated, err := repo.Update(context.Background(), in)
	if err != nil {
		t.Fatalf("update: %v", err)
	}

	seedCreated := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	if !updated.CreatedAt.Equal(seedCreated) {
		t.Errorf("created_at = %v, want %v", updated.CreatedAt, seedCreated)
	}
	if !updated.UpdatedAt.Equal(now) {
		t.Errorf("updated_at = %v, want %v", updated.UpdatedAt, now)
	}
	if updated.Title != "C# In Depth" || updated.Price != 79.5 || updated.Level != "Advanced" ||
		updated.IsPublished || updated.InstructorID != 7 || updated.DurationInHours != 25 {
		t.Errorf("fields not copied: %+v", updated)
	}

	stored, _ := repo.GetByID(context.Background(), 1)
	if stored.Title != "C# In Depth" || !stored.CreatedAt.Equal(seedCreated) {
		t.Errorf("stored course = %+v", stored)
	}
}

func TestUpdateAdvancesUpdatedAtOnSameClock(t *testing.T) {
	repo, _ := newTestRepo(t)
	now := time.Date(2025, time.June, 1, 12, 0, 0, 0, time.UTC)
	repo.now = fixedClock(now)
	ctx := context.Background()

	created, err := repo.Create(ctx, sampleCourse("Go", "Programming", true))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	first, err := repo.Update(ctx, &model.Course{ID: created.ID, Title: "Go 2", Description: "d", Category: "Programming", DurationInHours: 1})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	second, err := repo.Update(ctx, &model.Course{ID: created.ID, Title: "Go 3", Description: "d", Category: "Programming", DurationInHours: 1})
	if err != nil {
		t.Fatalf("update: %v", err)
	}

	if !first.UpdatedAt.After(created.CreatedAt) {
		t.Errorf("first update %v not after create %v", first.UpdatedAt, created.CreatedAt)
	}
	if !second.UpdatedAt.After(first.UpdatedAt) {
		t.Errorf("second update %v not after first %v", second.UpdatedAt, first.UpdatedAt)
	}
	if first.Level != model.DefaultLevel {
		t.Errorf("level = %q, want default", first.Level)
	}
}

func TestUpdateNotFound(t *testing.T) {
	repo, store := newTestRepo(t, model.SeedCourses()...)

	_, err := repo.Update(context.Background(), &model.Course{ID: 99, Title: "x", Description: "x", Category: "x"})
	if !errors.Is(err, ErrCourseNotFound) {
		t.Fatalf("expected ErrCourseNotFound, got %v", err)
	}

	n, _ := store.Count(context.Background())
	if n != 3 {
		t.Errorf("count = %d, want 3", n)
	}
}

func TestDelete(t *testing.T) {
	repo, _ := newTestRepo(t, model.SeedCourses()...)
	ctx := context.Background()

	deleted, err := repo.Delete(ctx, 2)
	if err != nil || !deleted {
		t.Fatalf("delete = %v, %v; want true, nil", deleted, err)
	}

	if _, err := repo.GetByID(ctx, 2); !errors.Is(err, ErrCourseNotFound) {
		t.Errorf("expected deleted course to be gone, got %v", err)
	}

	deleted, err = repo.Delete(ctx, 2)
	if err != nil || deleted {
		t.Errorf("second delete = %v, %v; want false, nil", deleted, err)
	}

	if n, _ := repo.Count(ctx); n != 2 {
		t.Errorf("count = %d, want 2", n)
	}
}

func TestExistsAndCount(t *testing.T) {
	repo, _ := newTestRepo(t, model.SeedCourses()...)
	ctx := context.Background()

	if ok, _ := repo.Exists(ctx, 3); !ok {
		t.Error("expected course 3 to exist")
	}
	if ok, _ := repo.Exists(ctx, 4); ok {
		t.Error("expected course 4 to be absent")
	}
	if n, _ := repo.Count(ctx); n != 3 {
		t.Errorf("count = %d, want 3", n)
	}
}

func TestUTCNowTruncatesToMicroseconds(t *testing.T) {
	ts := utcNow()
	if ts.Location() != time.UTC {
		t.Errorf("location = %v, want UTC", ts.Location())
	}
	if ts.Nanosecond()%1000 != 0 {
		t.Errorf("nanoseconds %d not truncated", ts.Nanosecond())
	}
}
