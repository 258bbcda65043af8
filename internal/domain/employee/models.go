package employee

import "time"

type Employee struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Address      string    `json:"address"`
	Salary       float64   `json:"salary"`
	CategoryID   string    `json:"categoryId"`
	CategoryName string    `json:"categoryName,omitempty"`
	Image        string    `json:"image,omitempty"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

const (
	StatusActive   = "active"
	StatusDeactive = "deactive"
)

var Statuses = []string{StatusActive, StatusDeactive}
