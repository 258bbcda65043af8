package db

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"peopledesk/internal/platform/config"
)

type stubRow struct {
	err error
}

func (r stubRow) Scan(dest ...any) error { return r.err }

type stubSeedConn struct {
	scanErr error
	inserts int
}

func (c *stubSeedConn) QueryRow(_ context.Context, _ string, _ ...any) pgx.Row {
	return stubRow{err: c.scanErr}
}

func (c *stubSeedConn) Exec(_ context.Context, _ string, _ ...any) (pgconn.CommandTag, error) {
	c.inserts++
	return pgconn.CommandTag{}, nil
}

func seedConfig() config.Config {
	return config.Config{
		SeedAdminName:     "Admin",
		SeedAdminEmail:    "admin@example.com",
		SeedAdminPassword: "s3cret",
	}
}

func TestSeedAdminSkipsWithoutConfig(t *testing.T) {
	conn := &stubSeedConn{}
	if err := seedAdmin(context.Background(), conn, config.Config{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if conn.inserts != 0 {
		t.Fatalf("expected no insert, got %d", conn.inserts)
	}
}

func TestSeedAdminExistingAccount(t *testing.T) {
	conn := &stubSeedConn{scanErr: nil}
	if err := seedAdmin(context.Background(), conn, seedConfig()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if conn.inserts != 0 {
		t.Fatalf("expected no insert for existing admin, got %d", conn.inserts)
	}
}

func TestSeedAdminInsertsWhenMissing(t *testing.T) {
	conn := &stubSeedConn{scanErr: pgx.ErrNoRows}
	if err := seedAdmin(context.Background(), conn, seedConfig()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if conn.inserts != 1 {
		t.Fatalf("expected one insert, got %d", conn.inserts)
	}
}

func TestSeedAdminPropagatesLookupError(t *testing.T) {
	lookupErr := errors.New("connection refused")
	conn := &stubSeedConn{scanErr: lookupErr}
	err := seedAdmin(context.Background(), conn, seedConfig())
	if !errors.Is(err, lookupErr) {
		t.Fatalf("expected lookup error, got %v", err)
	}
	if conn.inserts != 0 {
		t.Fatalf("lookup failure must not insert, got %d", conn.inserts)
	}
}
