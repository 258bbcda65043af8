package employee

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

const selectColumns = `
    SELECT e.id, e.name, e.email, e.password_hash,
           COALESCE(e.address, ''),
           COALESCE(e.salary, 0),
           COALESCE(e.category_id::text, ''),
           COALESCE(c.name, ''),
           COALESCE(e.image, ''),
           e.status, e.created_at, e.updated_at
    FROM employees e
    LEFT JOIN categories c ON e.category_id = c.id
`

func scanEmployee(row pgx.Row) (*Employee, error) {
	var emp Employee
	err := row.Scan(
		&emp.ID, &emp.Name, &emp.Email, &emp.PasswordHash,
		&emp.Address, &emp.Salary, &emp.CategoryID, &emp.CategoryName,
		&emp.Image, &emp.Status, &emp.CreatedAt, &emp.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &emp, nil
}

func (s *Store) Create(ctx context.Context, emp Employee) (*Employee, error) {
	err := s.DB.QueryRow(ctx, `
    INSERT INTO employees (name, email, password_hash, address, salary, category_id, image, status)
    VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
    RETURNING id, created_at, updated_at
  `,
		emp.Name, emp.Email, emp.PasswordHash, emp.Address, emp.Salary,
		nullIfEmpty(emp.CategoryID), nullIfEmpty(emp.Image), emp.Status,
	).Scan(&emp.ID, &emp.CreatedAt, &emp.UpdatedAt)
	if db.IsUniqueViolation(err, "employees_email_key") {
		return nil, ErrEmailTaken
	}
	if err != nil {
		return nil, err
	}
	return &emp, nil
}

func (s *Store) Get(ctx context.Context, id string) (*Employee, error) {
	return scanEmployee(s.DB.QueryRow(ctx, selectColumns+" WHERE e.id = $1", id))
}

func (s *Store) FindByEmail(ctx context.Context, email string) (*Employee, error) {
	return scanEmployee(s.DB.QueryRow(ctx, selectColumns+" WHERE e.email = $1", email))
}

func (s *Store) List(ctx context.Context) ([]Employee, error) {
	rows, err := s.DB.Query(ctx, selectColumns+" ORDER BY e.name, e.email")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Employee
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *emp)
	}
	return out, rows.Err()
}

// Update replaces every mutable column; partial-update semantics are handled by
// the caller merging into the currently stored record first.
func (s *Store) Update(ctx context.Context, id string, emp Employee) (*Employee, error) {
	cmd, err := s.DB.Exec(ctx, `
    UPDATE employees
    SET name = $1,
        email = $2,
        password_hash = $3,
        address = $4,
        salary = $5,
        category_id = $6,
        image = $7,
        status = $8,
        updated_at = now()
    WHERE id = $9
  `,
		emp.Name, emp.Email, emp.PasswordHash, emp.Address, emp.Salary,
		nullIfEmpty(emp.CategoryID), nullIfEmpty(emp.Image), emp.Status, id,
	)
	if db.IsUniqueViolation(err, "employees_email_key") {
		return nil, ErrEmailTaken
	}
	if err != nil {
		return nil, err
	}
	if cmd.RowsAffected() == 0 {
		return nil, ErrNotFound
	}
	return s.Get(ctx, id)
}

func (s *Store) Delete(ctx context.Context, id string) (*Employee, error) {
	emp, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	cmd, err := s.DB.Exec(ctx, "DELETE FROM employees WHERE id = $1", id)
	if err != nil {
		return nil, err
	}
	if cmd.RowsAffected() == 0 {
		return nil, ErrNotFound
	}
	return emp, nil
}

func (s *Store) Count(ctx context.Context) (int, error) {
	var count int
	err := s.DB.QueryRow(ctx, "SELECT COUNT(1) FROM employees").Scan(&count)
	return count, err
}

func nullIfEmpty(value string) any {
	if value == "" {
		return nil
	}
	return value
}
