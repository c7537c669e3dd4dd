package employee

import (
	"time"

	"github.com/google/uuid"
)

// Status represents the employment state of an employee.
type Status string

const (
	StatusActive     Status = "active"
	StatusOnLeave    Status = "on_leave"
	StatusTerminated Status = "terminated"
)

// Employee represents a member of a tenant's workforce.
type Employee struct {
	ID             uuid.UUID  `json:"id"`
	TenantID       uuid.UUID  `json:"tenant_id"`
	Code           string     `json:"code"` // EMP-<year>-<NNN>, sequence scoped per tenant per year
	FirstName      string     `json:"first_name"`
	LastName       string     `json:"last_name"`
	Email          string     `json:"email"`
	Department     string     `json:"department,omitempty"`
	JobTitle       string     `json:"job_title,omitempty"`
	EmploymentType string     `json:"employment_type,omitempty"`
	Status         Status     `json:"status"`
	HiredAt        time.Time  `json:"hired_at"`
	TerminatedAt   *time.Time `json:"terminated_at,omitempty"`
	Salary         *float64   `json:"salary,omitempty"`
	Currency       string     `json:"currency,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// CreateEmployeeRequest is the payload for onboarding an employee.
type CreateEmployeeRequest struct {
	FirstName      string     `json:"first_name"`
	LastName       string     `json:"last_name"`
	Email          string     `json:"email"`
	Department     string     `json:"department,omitempty"`
	JobTitle       string     `json:"job_title,omitempty"`
	EmploymentType string     `json:"employment_type,omitempty"`
	HiredAt        *time.Time `json:"hired_at,omitempty"`
	Salary         *float64   `json:"salary,omitempty"`
	Currency       string     `json:"currency,omitempty"`
}

// UpdateEmployeeRequest is the payload for a shallow-merge update.
type UpdateEmployeeRequest struct {
	FirstName      *string  `json:"first_name,omitempty"`
	LastName       *string  `json:"last_name,omitempty"`
	Email          *string  `json:"email,omitempty"`
	Department     *string  `json:"department,omitempty"`
	JobTitle       *string  `json:"job_title,omitempty"`
	EmploymentType *string  `json:"employment_type,omitempty"`
	Salary         *float64 `json:"salary,omitempty"`
	Currency       *string  `json:"currency,omitempty"`
}
