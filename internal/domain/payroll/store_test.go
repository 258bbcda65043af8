package payroll

import (
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type stubRows struct {
	err error
}

func (r *stubRows) Close()                                       {}
func (r *stubRows) Err() error                                   { return r.err }
func (r *stubRows) CommandTag() pgconn.CommandTag                { return pgconn.CommandTag{} }
func (r *stubRows) FieldDescriptions() []pgconn.FieldDescription { return nil }
func (r *stubRows) Next() bool                                   { return false }
func (r *stubRows) Scan(dest ...any) error                       { return nil }
func (r *stubRows) Values() ([]any, error)                       { return nil, nil }
func (r *stubRows) RawValues() [][]byte                          { return nil }
func (r *stubRows) Conn() *pgx.Conn                              { return nil }

var _ pgx.Rows = (*stubRows)(nil)

func TestCollectPayrollsSurfacesIterationError(t *testing.T) {
	iterErr := errors.New("connection reset")
	out, err := collectPayrolls(&stubRows{err: iterErr})
	if !errors.Is(err, iterErr) {
		t.Fatalf("expected iteration error, got %v", err)
	}
	if out != nil {
		t.Fatalf("expected no partial result, got %+v", out)
	}
}

func TestCollectPayrollsEmptyResult(t *testing.T) {
	out, err := collectPayrolls(&stubRows{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 0 {
		t.Fatalf("expected empty result, got %+v", out)
	}
}
