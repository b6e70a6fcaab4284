package storage

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/stemsi/elearning-backend/internal/config"
	"github.com/stemsi/elearning-backend/internal/database"
	"github.com/stemsi/elearning-backend/internal/model"
	"github.com/stemsi/elearning-backend/internal/repository"
)

// Probe reports on the backing database independently of the course store.
type Probe interface {
	Ping(ctx context.Context) error
	Count(ctx context.Context) (int64, error)
	Samples(ctx context.Context) ([]model.CourseSample, error)
}

// Storage bundles what the commands need from the selected driver.
type Storage struct {
	Driver  string
	Courses repository.CourseStore
	Probe   Probe
	close   func()
}

// Close releases the driver's connections. It is safe to call more than once.
func (s *Storage) Close() {
	if s.close != nil {
		s.close()
		s.close = nil
	}
}

// Open connects the driver named by cfg.StorageDriver. Postgres runs
// pending migrations first when cfg.AutoMigrate is set; SQLite is created
// and seeded on first use.
func Open(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*Storage, error) {
	switch cfg.StorageDriver {
	case config.DriverPostgres:
		if cfg.AutoMigrate {
			if err := database.RunMigrations(cfg.MigrationsPath, cfg.DatabaseURL, log); err != nil {
				return nil, err
			}
		}
		pg, err := database.ConnectPostgres(ctx, cfg, log)
		if err != nil {
			return nil, err
		}
		return &Storage{
			Driver:  cfg.StorageDriver,
			Courses: repository.NewGormCourseStore(pg.DB),
			Probe:   database.NewPostgresProbe(pg.Pool),
			close:   pg.Close,
		}, nil

	case config.DriverSQLite:
		db, err := database.OpenSQLite(cfg.SQLitePath, log)
		if err != nil {
			return nil, err
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		if err := database.Bootstrap(ctx, db); err != nil {
			_ = sqlDB.Close()
			return nil, err
		}
		return &Storage{
			Driver:  cfg.StorageDriver,
			Courses: repository.NewGormCourseStore(db),
			Probe:   database.NewGormProbe(db),
			close:   func() { _ = sqlDB.Close() },
		}, nil

	case config.DriverMemory:
		mem := repository.NewMemoryCourseStore(model.SeedCourses()...)
		log.Warn().Msg("Using in-memory storage; data is lost on restart")
		return &Storage{Driver: cfg.StorageDriver, Courses: mem, Probe: mem}, nil
	}

	return nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
}
