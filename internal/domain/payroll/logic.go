package payroll

import "time"

// MonthWindow returns the inclusive [first day, last day] calendar-month window
// containing t, at midnight in t's location. The window is the duplicate-detection
// period: at most one payroll row may exist per employee per window.
func MonthWindow(t time.Time) (time.Time, time.Time) {
	year, month, _ := t.Date()
	first := time.Date(year, month, 1, 0, 0, 0, 0, t.Location())
	last := first.AddDate(0, 1, -1)
	return first, last
}

// Net is the amount actually paid out. Note that SumSalary deliberately does
// not use it: the salary total endpoint aggregates the stored salary field only.
func Net(p Payroll) float64 {
	return p.Salary + p.Bonus - p.Deductions
}
