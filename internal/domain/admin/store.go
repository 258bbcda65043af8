package admin

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"peopledesk/internal/platform/db"
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{DB: pool}
}

func (s *Store) FindByEmail(ctx context.Context, email string) (*Admin, error) {
	var out Admin
	err := s.DB.QueryRow(ctx, `
    SELECT id, name, email, password_hash, created_at
    FROM admins
    WHERE email = $1
  `, email).Scan(&out.ID, &out.Name, &out.Email, &out.PasswordHash, &out.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Store) Create(ctx context.Context, a Admin) (*Admin, error) {
	err := s.DB.QueryRow(ctx, `
    INSERT INTO admins (name, email, password_hash)
    VALUES ($1, $2, $3)
    RETURNING id, created_at
  `, a.Name, a.Email, a.PasswordHash).Scan(&a.ID, &a.CreatedAt)
	if db.IsUniqueViolation(err, "admins_email_key") {
		return nil, ErrEmailTaken
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (s *Store) Count(ctx context.Context) (int, error) {
	var count int
	err := s.DB.QueryRow(ctx, "SELECT COUNT(1) FROM admins").Scan(&count)
	return count, err
}

func (s *Store) List(ctx context.Context) ([]Admin, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, name, email, created_at
    FROM admins
    ORDER BY created_at
  `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Admin
	for rows.Next() {
		var a Admin
		if err := rows.Scan(&a.ID, &a.Name, &a.Email, &a.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}
