package model

import "time"

// SeedCourses returns the sample catalog every fresh database starts with.
// migrations/000002_seed_courses.up.sql carries the same rows for Postgres.
func SeedCourses() []Course {
	day := func(y int, m time.Month, d int) time.Time {
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	}

	return []Course{
		{
			ID:              1,
			Title:           "Introduction to C# Programming",
			Description:     "Learn the fundamentals of C# programming language including variables, data types, control structures, and object-oriented programming concepts.",
			Price:           99.99,
			DurationInHours: 20,
			Level:           DefaultLevel,
			Category:        "Programming",
			IsPublished:     true,
			CreatedAt:       day(2024, time.January, 1),
			UpdatedAt:       day(2024, time.January, 1),
			InstructorID:    1,
		},
		{
			ID:              2,
			Title:           "Advanced ASP.NET Core Development",
			Description:     "Master advanced ASP.NET Core concepts including middleware, dependency injection, authentication, and building scalable web APIs.",
			Price:           149.99,
			DurationInHours: 35,
			Level:           DefaultLevel,
			Category:        "Web Development",
			IsPublished:     true,
			CreatedAt:       day(2024, time.January, 15),
			UpdatedAt:       day(2024, time.January, 15),
			InstructorID:    1,
		},
		{
			ID:              3,
			Title:           "Angular Frontend Development",
			Description:     "Build modern web applications using Angular framework with TypeScript, components, services, and reactive programming.",
			Price:           129.99,
			DurationInHours: 30,
			Level:           DefaultLevel,
			Category:        "Frontend",
			IsPublished:     false,
			CreatedAt:       day(2024, time.February, 1),
			UpdatedAt:       day(2024, time.February, 1),
			InstructorID:    2,
		},
	}
}
