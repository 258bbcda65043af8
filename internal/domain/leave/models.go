package leave

import "time"

type Leave struct {
	ID            string    `json:"id"`
	EmployeeID    string    `json:"employeeId"`
	EmployeeName  string    `json:"employeeName,omitempty"`
	EmployeeEmail string    `json:"employeeEmail,omitempty"`
	StartDate     time.Time `json:"startDate"`
	EndDate       time.Time `json:"endDate"`
	LeaveType     string    `json:"leaveType"`
	Reason        string    `json:"reason"`
	Status        string    `json:"status"`
	Remarks       string    `json:"remarks"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

const (
	StatusPending  = "pending"
	StatusAccepted = "accepted"
	StatusRejected = "rejected"

	DecisionAccept = "accept"
	DecisionReject = "reject"
)
