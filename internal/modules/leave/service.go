package leave

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/corehr/corehr-backend/internal/apperror"
	"github.com/corehr/corehr-backend/internal/modules/employee"
	"github.com/corehr/corehr-backend/internal/query"
	"github.com/corehr/corehr-backend/internal/store"
)

// Service defines the leave management business logic.
type Service interface {
	SubmitRequest(ctx context.Context, tenantID string, req SubmitRequest) (*Request, error)
	ListRequests(ctx context.Context, tenantID string, opts query.Options) (query.Page[*Request], error)
	GetRequest(ctx context.Context, tenantID, id string) (*Request, error)
	ApproveRequest(ctx context.Context, tenantID, id, decidedBy string, req DecisionRequest) (*Request, error)
	RejectRequest(ctx context.Context, tenantID, id, decidedBy string, req DecisionRequest) (*Request, error)
	CancelRequest(ctx context.Context, tenantID, id string) (*Request, error)
}

type service struct {
	repo      Repository
	employees employee.Repository
}

// NewService creates a new leave service.
func NewService(repo Repository, employees employee.Repository) Service {
	return &service{repo: repo, employees: employees}
}

var requestDescriptor = query.Descriptor[*Request]{
	DefaultSort:  "created_at",
	SearchFields: []string{"reason"},
	Field: func(r *Request, name string) (interface{}, bool) {
		switch name {
		case "employee_id":
			return r.EmployeeID.String(), true
		case "type":
			return string(r.Type), true
		case "status":
			return string(r.Status), true
		case "reason":
			return r.Reason, true
		case "days":
			return r.Days, true
		case "start_date":
			return r.StartDate, true
		case "end_date":
			return r.EndDate, true
		case "created_at":
			return r.CreatedAt, true
		case "updated_at":
			return r.UpdatedAt, true
		default:
			return nil, false
		}
	},
}

func (s *service) SubmitRequest(ctx context.Context, tenantID string, req SubmitRequest) (*Request, error) {
	tenant, err := uuid.Parse(tenantID)
	if err != nil {
		return nil, apperror.Validation("invalid tenant id: %v", err)
	}
	leaveType := Type(req.Type)
	if !ValidType(leaveType) {
		return nil, apperror.Validation("unknown leave type %q", req.Type)
	}
	if req.StartDate.After(req.EndDate) {
		return nil, apperror.Validation("start_date must not be after end_date")
	}
	if req.Days < 1 {
		return nil, apperror.Validation("days must be at least 1")
	}

	emp, err := s.employees.Get(ctx, req.EmployeeID)
	if err != nil || emp.TenantID != tenant {
		return nil, apperror.NotFound("employee not found")
	}
	if emp.Status == employee.StatusTerminated {
		return nil, apperror.Validation("terminated employees cannot request leave")
	}

	now := time.Now().UTC()
	r := &Request{
		ID:         uuid.New(),
		TenantID:   tenant,
		EmployeeID: emp.ID,
		Type:       leaveType,
		StartDate:  req.StartDate,
		EndDate:    req.EndDate,
		Days:       req.Days,
		Reason:     req.Reason,
		Status:     StatusPending,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.repo.Insert(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

func (s *service) ListRequests(ctx context.Context, tenantID string, opts query.Options) (query.Page[*Request], error) {
	records, err := s.repo.ListByTenant(ctx, tenantID)
	if err != nil {
		return query.Page[*Request]{}, err
	}
	return query.Run(records, requestDescriptor, opts)
}

func (s *service) GetRequest(ctx context.Context, tenantID, id string) (*Request, error) {
	return s.fetch(ctx, tenantID, id)
}

func (s *service) fetch(ctx context.Context, tenantID, id string) (*Request, error) {
	r, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperror.NotFound("leave request not found")
		}
		return nil, err
	}
	if r.TenantID.String() != tenantID {
		return nil, apperror.NotFound("leave request not found")
	}
	return r, nil
}

func (s *service) ApproveRequest(ctx context.Context, tenantID, id, decidedBy string, req DecisionRequest) (*Request, error) {
	return s.decide(ctx, tenantID, id, decidedBy, StatusApproved, req.Note)
}

func (s *service) RejectRequest(ctx context.Context, tenantID, id, decidedBy string, req DecisionRequest) (*Request, error) {
	return s.decide(ctx, tenantID, id, decidedBy, StatusRejected, req.Note)
}

func (s *service) decide(ctx context.Context, tenantID, id, decidedBy string, next Status, note string) (*Request, error) {
	current, err := s.fetch(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if current.Status != StatusPending {
		return nil, apperror.Validation("only pending requests can be decided, current status is %s", current.Status)
	}
	decider, err := uuid.Parse(decidedBy)
	if err != nil {
		return nil, apperror.Validation("invalid decided_by: %v", err)
	}

	now := time.Now().UTC()
	updated := *current
	updated.Status = next
	updated.DecidedBy = &decider
	updated.DecidedAt = &now
	updated.DecisionNote = note
	updated.UpdatedAt = now
	if err := s.repo.Update(ctx, id, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (s *service) CancelRequest(ctx context.Context, tenantID, id string) (*Request, error) {
	current, err := s.fetch(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if current.Status != StatusPending {
		return nil, apperror.Validation("only pending requests can be cancelled, current status is %s", current.Status)
	}

	updated := *current
	updated.Status = StatusCancelled
	updated.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, id, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}
