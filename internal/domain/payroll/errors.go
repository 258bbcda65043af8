package payroll

import "errors"

var (
	ErrNotFound = errors.New("payroll record not found")

	// ErrDuplicatePeriod means a payroll row already exists for the employee in
	// the calendar month containing the requested payment date.
	ErrDuplicatePeriod = errors.New("payroll already recorded for this employee and month")
)
