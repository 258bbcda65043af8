package payroll

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

// Create inserts one payroll row per employee per calendar month. The pre-insert
// check gives a friendly error; the unique index on (employee_id, month) closes
// the race two concurrent creates would otherwise win together.
func (s *Store) Create(ctx context.Context, p Payroll) (*Payroll, error) {
	first, last := MonthWindow(p.PaymentDate)

	var count int
	if err := s.DB.QueryRow(ctx, `
    SELECT COUNT(1)
    FROM payrolls
    WHERE employee_id = $1 AND payment_date BETWEEN $2 AND $3
  `, p.EmployeeID, first, last).Scan(&count); err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrDuplicatePeriod
	}

	err := s.DB.QueryRow(ctx, `
    INSERT INTO payrolls (employee_id, salary, bonus, deductions, payment_date)
    VALUES ($1, $2, $3, $4, $5)
    RETURNING id, created_at
  `, p.EmployeeID, p.Salary, p.Bonus, p.Deductions, p.PaymentDate).Scan(&p.ID, &p.CreatedAt)
	if db.IsUniqueViolation(err, "payrolls_employee_month_idx") {
		return nil, ErrDuplicatePeriod
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *Store) List(ctx context.Context) ([]Payroll, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT p.id, p.employee_id, e.name, e.email,
           p.salary, p.bonus, p.deductions, p.payment_date, p.created_at
    FROM payrolls p
    JOIN employees e ON p.employee_id = e.id
    ORDER BY p.payment_date DESC
  `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectPayrolls(rows)
}

func (s *Store) ListByEmployee(ctx context.Context, employeeID string) ([]Payroll, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT p.id, p.employee_id, e.name, e.email,
           p.salary, p.bonus, p.deductions, p.payment_date, p.created_at
    FROM payrolls p
    JOIN employees e ON p.employee_id = e.id
    WHERE p.employee_id = $1
    ORDER BY p.payment_date DESC
  `, employeeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectPayrolls(rows)
}

// SumSalary totals the stored salary field only, ignoring bonus and deductions.
// That matches the long-standing salary_count behavior existing clients rely on.
func (s *Store) SumSalary(ctx context.Context) (float64, error) {
	var total float64
	err := s.DB.QueryRow(ctx, "SELECT COALESCE(SUM(salary), 0) FROM payrolls").Scan(&total)
	return total, err
}

func (s *Store) PayslipData(ctx context.Context, payrollID string) (PayslipData, error) {
	var data PayslipData
	err := s.DB.QueryRow(ctx, `
    SELECT e.name, e.email, p.salary, p.bonus, p.deductions, p.payment_date
    FROM payrolls p
    JOIN employees e ON p.employee_id = e.id
    WHERE p.id = $1
  `, payrollID).Scan(&data.EmployeeName, &data.EmployeeEmail, &data.Salary, &data.Bonus, &data.Deductions, &data.PaymentDate)
	if errors.Is(err, pgx.ErrNoRows) {
		return PayslipData{}, ErrNotFound
	}
	if err != nil {
		return PayslipData{}, err
	}
	return data, nil
}

func collectPayrolls(rows pgx.Rows) ([]Payroll, error) {
	var out []Payroll
	for rows.Next() {
		var p Payroll
		if err := rows.Scan(
			&p.ID, &p.EmployeeID, &p.EmployeeName, &p.EmployeeEmail,
			&p.Salary, &p.Bonus, &p.Deductions, &p.PaymentDate, &p.CreatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
