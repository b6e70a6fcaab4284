package database

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stemsi/elearning-backend/internal/model"
	"gorm.io/gorm"
)

// PostgresProbe answers diagnostics queries with raw SQL on the pool,
// bypassing gorm and the repository.
type PostgresProbe struct {
	pool *pgxpool.Pool
}

func NewPostgresProbe(pool *pgxpool.Pool) *PostgresProbe {
	return &PostgresProbe{pool: pool}
}

func (p *PostgresProbe) Ping(ctx context.Context) error {
	return p.pool.Ping(ctx)
}

func (p *PostgresProbe) Count(ctx context.Context) (int64, error) {
	var n int64
	err := p.pool.QueryRow(ctx, `SELECT COUNT(*) FROM courses`).Scan(&n)
	return n, err
}

func (p *PostgresProbe) Samples(ctx context.Context) ([]model.CourseSample, error) {
	rows, err := p.pool.Query(ctx, `SELECT id, title, category, price::float8, is_published FROM courses ORDER BY id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	samples := []model.CourseSample{}
	for rows.Next() {
		var s model.CourseSample
		if err := rows.Scan(&s.ID, &s.Title, &s.Category, &s.Price, &s.IsPublished); err != nil {
			return nil, err
		}
		samples = append(samples, s)
	}
	return samples, rows.Err()
}

// GormProbe is the diagnostics probe for gorm-only databases (SQLite).
type GormProbe struct {
	db *gorm.DB
}

func NewGormProbe(db *gorm.DB) *GormProbe {
	return &GormProbe{db: db}
}

func (p *GormProbe) Ping(ctx context.Context) error {
	sqlDB, err := p.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (p *GormProbe) Count(ctx context.Context) (int64, error) {
	var n int64
	err := p.db.WithContext(ctx).Raw(`SELECT COUNT(*) FROM courses`).Scan(&n).Error
	return n, err
}

func (p *GormProbe) Samples(ctx context.Context) ([]model.CourseSample, error) {
	samples := []model.CourseSample{}
	err := p.db.WithContext(ctx).
		Raw(`SELECT id, title, category, price, is_published FROM courses ORDER BY id ASC`).
		Scan(&samples).Error
	return samples, err
}
