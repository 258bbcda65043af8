package db

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"peopledesk/internal/platform/config"
)

const (
	poolMaxConns          = 10
	poolMinConns          = 2
	poolMaxConnLifetime   = time.Hour
	poolHealthCheckPeriod = time.Minute
)

// Connect builds the shared pool and pings it once so startup fails fast on a
// bad DATABASE_URL instead of at the first request.
func Connect(ctx context.Context, cfg config.Config) (*pgxpool.Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}
	poolCfg.MaxConns = poolMaxConns
	poolCfg.MinConns = poolMinConns
	poolCfg.MaxConnLifetime = poolMaxConnLifetime
	poolCfg.HealthCheckPeriod = poolHealthCheckPeriod

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return pool, nil
}
