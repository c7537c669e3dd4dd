package leave

import (
	"time"

	"github.com/google/uuid"
)

// Type classifies a leave request.
type Type string

const (
	TypeAnnual   Type = "annual"
	TypeSick     Type = "sick"
	TypeUnpaid   Type = "unpaid"
	TypeParental Type = "parental"
)

// ValidType reports whether t is a known leave type.
func ValidType(t Type) bool {
	switch t {
	case TypeAnnual, TypeSick, TypeUnpaid, TypeParental:
		return true
	}
	return false
}

// Status represents the lifecycle state of a leave request.
// Decisions happen only from pending; all outcomes are terminal.
type Status string

const (
	StatusPending   Status = "pending"
	StatusApproved  Status = "approved"
	StatusRejected  Status = "rejected"
	StatusCancelled Status = "cancelled"
)

// Request represents a leave request by an employee of a tenant.
type Request struct {
	ID           uuid.UUID  `json:"id"`
	TenantID     uuid.UUID  `json:"tenant_id"`
	EmployeeID   uuid.UUID  `json:"employee_id"`
	Type         Type       `json:"type"`
	StartDate    time.Time  `json:"start_date"`
	EndDate      time.Time  `json:"end_date"`
	Days         int        `json:"days"`
	Reason       string     `json:"reason,omitempty"`
	Status       Status     `json:"status"`
	DecidedBy    *uuid.UUID `json:"decided_by,omitempty"`
	DecidedAt    *time.Time `json:"decided_at,omitempty"`
	DecisionNote string     `json:"decision_note,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// SubmitRequest is the payload for filing a leave request.
type SubmitRequest struct {
	EmployeeID string    `json:"employee_id"`
	Type       string    `json:"type"`
	StartDate  time.Time `json:"start_date"`
	EndDate    time.Time `json:"end_date"`
	Days       int       `json:"days"`
	Reason     string    `json:"reason,omitempty"`
}

// DecisionRequest is the payload for approving or rejecting a request.
type DecisionRequest struct {
	Note string `json:"note,omitempty"`
}
