package attendance

import "time"

type Attendance struct {
	ID            string    `json:"id"`
	EmployeeID    string    `json:"employeeId"`
	EmployeeName  string    `json:"employeeName,omitempty"`
	EmployeeEmail string    `json:"employeeEmail,omitempty"`
	CategoryName  string    `json:"categoryName,omitempty"`
	Date          time.Time `json:"date"`
	Status        string    `json:"status"`
	Remarks       string    `json:"remarks,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
}

const (
	StatusPresent = "Present"
	StatusAbsent  = "Absent"
	StatusOnLeave = "On Leave"
)

var Statuses = []string{StatusPresent, StatusAbsent, StatusOnLeave}
