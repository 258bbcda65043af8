package payroll

import "time"

type Payroll struct {
	ID            string    `json:"id"`
	EmployeeID    string    `json:"employeeId"`
	EmployeeName  string    `json:"employeeName,omitempty"`
	EmployeeEmail string    `json:"employeeEmail,omitempty"`
	Salary        float64   `json:"salary"`
	Bonus         float64   `json:"bonus"`
	Deductions    float64   `json:"deductions"`
	PaymentDate   time.Time `json:"paymentDate"`
	CreatedAt     time.Time `json:"createdAt"`
}

// PayslipData carries the fields rendered onto a payslip PDF.
type PayslipData struct {
	EmployeeName  string
	EmployeeEmail string
	Salary        float64
	Bonus         float64
	Deductions    float64
	PaymentDate   time.Time
}
