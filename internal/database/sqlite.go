package database

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/stemsi/elearning-backend/internal/model"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// OpenSQLite opens a file-backed (or ":memory:") SQLite database through gorm.
func OpenSQLite(path string, log zerolog.Logger) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path), gormConfig(log))
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}

	log.Info().Str("path", path).Msg("SQLite opened")
	return db, nil
}

// Bootstrap creates the courses table from the model and inserts the seed
// catalog into an empty table. Postgres uses the SQL migrations instead.
func Bootstrap(ctx context.Context, db *gorm.DB) error {
	session := db.WithContext(ctx)

	if err := session.AutoMigrate(&model.Course{}); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	var n int64
	if err := session.Model(&model.Course{}).Count(&n).Error; err != nil {
		return fmt.Errorf("count courses: %w", err)
	}
	if n > 0 {
		return nil
	}

	seed := model.SeedCourses()
	if err := session.Create(&seed).Error; err != nil {
		return fmt.Errorf("seed courses: %w", err)
	}
	return nil
}
