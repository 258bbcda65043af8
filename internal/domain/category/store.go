package category

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{DB: pool}
}

func (s *Store) Create(ctx context.Context, name string) (*Category, error) {
	out := Category{Name: name}
	err := s.DB.QueryRow(ctx, `
    INSERT INTO categories (name)
    VALUES ($1)
    RETURNING id, created_at
  `, name).Scan(&out.ID, &out.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Store) List(ctx context.Context) ([]Category, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, name, created_at
    FROM categories
    ORDER BY name
  `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Category
	for rows.Next() {
		var c Category
		if err := rows.Scan(&c.ID, &c.Name, &c.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
