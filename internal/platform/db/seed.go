package db

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"peopledesk/internal/domain/auth"
	"peopledesk/internal/platform/config"
)

type seedConn interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// Seed ensures the bootstrap admin account exists. It is a no-op unless both
// SEED_ADMIN_EMAIL and SEED_ADMIN_PASSWORD are configured.
func Seed(ctx context.Context, pool *pgxpool.Pool, cfg config.Config) error {
	return seedAdmin(ctx, pool, cfg)
}

func seedAdmin(ctx context.Context, conn seedConn, cfg config.Config) error {
	email := strings.TrimSpace(cfg.SeedAdminEmail)
	password := strings.TrimSpace(cfg.SeedAdminPassword)
	if email == "" || password == "" {
		return nil
	}

	var id string
	err := conn.QueryRow(ctx, "SELECT id FROM admins WHERE email = $1", email).Scan(&id)
	if err == nil {
		return nil
	}
	// Only a confirmed missing row warrants the insert; a transient lookup
	// failure must not slip a duplicate in.
	if !errors.Is(err, pgx.ErrNoRows) {
		return err
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}

	_, err = conn.Exec(ctx, "INSERT INTO admins (name, email, password_hash) VALUES ($1, $2, $3)", cfg.SeedAdminName, email, hash)
	return err
}
