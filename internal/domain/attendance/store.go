package attendance

import (
	"context"
	"time"

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

// Mark stores one attendance row per employee per day. The date is normalized
// to midnight before both the duplicate check and the insert; the unique index
// on (employee_id, date) backstops concurrent marks.
func (s *Store) Mark(ctx context.Context, a Attendance) (*Attendance, error) {
	a.Date = StartOfDay(a.Date)

	var count int
	if err := s.DB.QueryRow(ctx, `
    SELECT COUNT(1)
    FROM attendances
    WHERE employee_id = $1 AND date = $2
  `, a.EmployeeID, a.Date).Scan(&count); err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrDuplicateDay
	}

	err := s.DB.QueryRow(ctx, `
    INSERT INTO attendances (employee_id, date, status, remarks)
    VALUES ($1, $2, $3, $4)
    RETURNING id, created_at
  `, a.EmployeeID, a.Date, a.Status, a.Remarks).Scan(&a.ID, &a.CreatedAt)
	if db.IsUniqueViolation(err, "attendances_employee_id_date_key") {
		return nil, ErrDuplicateDay
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (s *Store) Report(ctx context.Context) ([]Attendance, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT a.id, a.employee_id, e.name, e.email, COALESCE(c.name, ''),
           a.date, a.status, COALESCE(a.remarks, ''), a.created_at
    FROM attendances a
    JOIN employees e ON a.employee_id = e.id
    LEFT JOIN categories c ON e.category_id = c.id
    ORDER BY a.date DESC
  `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectAttendances(rows)
}

// ReportByEmployee filters to the inclusive [from, to] range only when both
// bounds are set; a zero bound means unbounded.
func (s *Store) ReportByEmployee(ctx context.Context, employeeID string, from, to time.Time) ([]Attendance, error) {
	query := `
    SELECT a.id, a.employee_id, e.name, e.email, COALESCE(c.name, ''),
           a.date, a.status, COALESCE(a.remarks, ''), a.created_at
    FROM attendances a
    JOIN employees e ON a.employee_id = e.id
    LEFT JOIN categories c ON e.category_id = c.id
    WHERE a.employee_id = $1
  `
	args := []any{employeeID}
	if !from.IsZero() && !to.IsZero() {
		lower, upper := RangeBounds(from, to)
		query += " AND a.date BETWEEN $2 AND $3"
		args = append(args, lower, upper)
	}
	query += " ORDER BY a.date DESC"

	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectAttendances(rows)
}

func collectAttendances(rows pgx.Rows) ([]Attendance, error) {
	var out []Attendance
	for rows.Next() {
		var a Attendance
		if err := rows.Scan(
			&a.ID, &a.EmployeeID, &a.EmployeeName, &a.EmployeeEmail, &a.CategoryName,
			&a.Date, &a.Status, &a.Remarks, &a.CreatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}
