package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/rs/zerolog"
	"github.com/stemsi/elearning-backend/internal/config"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Postgres bundles the pgx pool with the gorm handle opened on top of it.
// Both share the same connections.
type Postgres struct {
	Pool *pgxpool.Pool
	DB   *gorm.DB
}

// ConnectPostgres creates and validates a PostgreSQL connection pool and
// opens gorm over it.
func ConnectPostgres(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*Postgres, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database URL: %w", err)
	}
	poolCfg.MaxConns = cfg.MaxDBConns

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	db, err := gorm.Open(postgres.New(postgres.Config{
		Conn: stdlib.OpenDBFromPool(pool),
	}), gormConfig(log))
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("open gorm: %w", err)
	}

	log.Info().
		Int32("max_conns", cfg.MaxDBConns).
		Msg("PostgreSQL connected")

	return &Postgres{Pool: pool, DB: db}, nil
}

// Close releases the sql.DB wrapper and then the pool.
func (p *Postgres) Close() {
	if sqlDB, err := p.DB.DB(); err == nil {
		_ = sqlDB.Close()
	}
	p.Pool.Close()
}
