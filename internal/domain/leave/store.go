package leave

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{DB: pool}
}

func (s *Store) Create(ctx context.Context, l Leave) (*Leave, error) {
	l.Status = StatusPending
	err := s.DB.QueryRow(ctx, `
    INSERT INTO leaves (employee_id, start_date, end_date, leave_type, reason)
    VALUES ($1, $2, $3, $4, $5)
    RETURNING id, status, remarks, created_at, updated_at
  `, l.EmployeeID, l.StartDate, l.EndDate, l.LeaveType, l.Reason).Scan(
		&l.ID, &l.Status, &l.Remarks, &l.CreatedAt, &l.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (s *Store) List(ctx context.Context) ([]Leave, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT l.id, l.employee_id, e.name, e.email,
           l.start_date, l.end_date, l.leave_type, l.reason,
           l.status, l.remarks, l.created_at, l.updated_at
    FROM leaves l
    JOIN employees e ON l.employee_id = e.id
    ORDER BY l.created_at DESC
  `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectLeaves(rows)
}

func (s *Store) ListByEmployee(ctx context.Context, employeeID string) ([]Leave, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT l.id, l.employee_id, e.name, e.email,
           l.start_date, l.end_date, l.leave_type, l.reason,
           l.status, l.remarks, l.created_at, l.updated_at
    FROM leaves l
    JOIN employees e ON l.employee_id = e.id
    WHERE l.employee_id = $1
    ORDER BY l.created_at DESC
  `, employeeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectLeaves(rows)
}

// Decide sets the status and remarks unconditionally; there is no guard on the
// current status, so re-deciding an already-decided leave overwrites it.
func (s *Store) Decide(ctx context.Context, id, status, remarks string) (*Leave, error) {
	var l Leave
	err := s.DB.QueryRow(ctx, `
    UPDATE leaves
    SET status = $1, remarks = $2, updated_at = now()
    WHERE id = $3
    RETURNING id, employee_id, start_date, end_date, leave_type, reason,
              status, remarks, created_at, updated_at
  `, status, remarks, id).Scan(
		&l.ID, &l.EmployeeID, &l.StartDate, &l.EndDate, &l.LeaveType, &l.Reason,
		&l.Status, &l.Remarks, &l.CreatedAt, &l.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func collectLeaves(rows pgx.Rows) ([]Leave, error) {
	var out []Leave
	for rows.Next() {
		var l Leave
		if err := rows.Scan(
			&l.ID, &l.EmployeeID, &l.EmployeeName, &l.EmployeeEmail,
			&l.StartDate, &l.EndDate, &l.LeaveType, &l.Reason,
			&l.Status, &l.Remarks, &l.CreatedAt, &l.UpdatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}
