package employee

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/corehr/corehr-backend/internal/apperror"
	"github.com/corehr/corehr-backend/internal/query"
	"github.com/corehr/corehr-backend/internal/store"
)

// Service defines the employee management business logic.
type Service interface {
	CreateEmployee(ctx context.Context, tenantID string, req CreateEmployeeRequest) (*Employee, error)
	ListEmployees(ctx context.Context, tenantID string, opts query.Options) (query.Page[*Employee], error)
	GetEmployee(ctx context.Context, tenantID, id string) (*Employee, error)
	UpdateEmployee(ctx context.Context, tenantID, id string, req UpdateEmployeeRequest) (*Employee, error)
	TerminateEmployee(ctx context.Context, tenantID, id string) (*Employee, error)
}

type service struct {
	repo Repository
}

// NewService creates a new employee service.
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

var employeeDescriptor = query.Descriptor[*Employee]{
	DefaultSort:  "created_at",
	SearchFields: []string{"first_name", "last_name", "email", "code"},
	Field: func(e *Employee, name string) (interface{}, bool) {
		switch name {
		case "first_name":
			return e.FirstName, true
		case "last_name":
			return e.LastName, true
		case "email":
			return e.Email, true
		case "code":
			return e.Code, true
		case "department":
			return e.Department, true
		case "job_title":
			return e.JobTitle, true
		case "employment_type":
			return e.EmploymentType, true
		case "status":
			return string(e.Status), true
		case "salary":
			if e.Salary == nil {
				return nil, false
			}
			return *e.Salary, true
		case "hired_at":
			return e.HiredAt, true
		case "created_at":
			return e.CreatedAt, true
		case "updated_at":
			return e.UpdatedAt, true
		default:
			return nil, false
		}
	},
}

func (s *service) CreateEmployee(ctx context.Context, tenantID string, req CreateEmployeeRequest) (*Employee, error) {
	tenant, err := uuid.Parse(tenantID)
	if err != nil {
		return nil, apperror.Validation("invalid tenant id: %v", err)
	}
	if strings.TrimSpace(req.FirstName) == "" || strings.TrimSpace(req.LastName) == "" {
		return nil, apperror.Validation("first_name and last_name are required")
	}
	if !strings.Contains(req.Email, "@") {
		return nil, apperror.Validation("email %q is not a valid address", req.Email)
	}

	code, err := s.nextEmployeeCode(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	hiredAt := now
	if req.HiredAt != nil {
		hiredAt = *req.HiredAt
	}
	e := &Employee{
		ID:             uuid.New(),
		TenantID:       tenant,
		Code:           code,
		FirstName:      strings.TrimSpace(req.FirstName),
		LastName:       strings.TrimSpace(req.LastName),
		Email:          strings.ToLower(strings.TrimSpace(req.Email)),
		Department:     req.Department,
		JobTitle:       req.JobTitle,
		EmploymentType: req.EmploymentType,
		Status:         StatusActive,
		HiredAt:        hiredAt,
		Salary:         req.Salary,
		Currency:       req.Currency,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.repo.Insert(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

func (s *service) nextEmployeeCode(ctx context.Context, tenantID string) (string, error) {
	existing, err := s.repo.ListByTenant(ctx, tenantID)
	if err != nil {
		return "", err
	}
	year := fmt.Sprintf("%d", time.Now().UTC().Year())
	count := 0
	for _, e := range existing {
		if strings.Contains(e.Code, year) {
			count++
		}
	}
	return fmt.Sprintf("EMP-%s-%03d", year, count+1), nil
}

func (s *service) ListEmployees(ctx context.Context, tenantID string, opts query.Options) (query.Page[*Employee], error) {
	records, err := s.repo.ListByTenant(ctx, tenantID)
	if err != nil {
		return query.Page[*Employee]{}, err
	}
	return query.Run(records, employeeDescriptor, opts)
}

func (s *service) GetEmployee(ctx context.Context, tenantID, id string) (*Employee, error) {
	return s.fetch(ctx, tenantID, id)
}

func (s *service) fetch(ctx context.Context, tenantID, id string) (*Employee, error) {
	e, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperror.NotFound("employee not found")
		}
		return nil, err
	}
	if e.TenantID.String() != tenantID {
		return nil, apperror.NotFound("employee not found")
	}
	return e, nil
}

func (s *service) UpdateEmployee(ctx context.Context, tenantID, id string, req UpdateEmployeeRequest) (*Employee, error) {
	current, err := s.fetch(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}

	updated := *current
	if req.FirstName != nil {
		if strings.TrimSpace(*req.FirstName) == "" {
			return nil, apperror.Validation("first_name must not be empty")
		}
		updated.FirstName = strings.TrimSpace(*req.FirstName)
	}
	if req.LastName != nil {
		if strings.TrimSpace(*req.LastName) == "" {
			return nil, apperror.Validation("last_name must not be empty")
		}
		updated.LastName = strings.TrimSpace(*req.LastName)
	}
	if req.Email != nil {
		if !strings.Contains(*req.Email, "@") {
			return nil, apperror.Validation("email %q is not a valid address", *req.Email)
		}
		updated.Email = strings.ToLower(strings.TrimSpace(*req.Email))
	}
	if req.Department != nil {
		updated.Department = *req.Department
	}
	if req.JobTitle != nil {
		updated.JobTitle = *req.JobTitle
	}
	if req.EmploymentType != nil {
		updated.EmploymentType = *req.EmploymentType
	}
	if req.Salary != nil {
		updated.Salary = req.Salary
	}
	if req.Currency != nil {
		updated.Currency = *req.Currency
	}
	updated.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, id, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// TerminateEmployee stamps the terminal status; a terminated employee
// cannot be reactivated.
func (s *service) TerminateEmployee(ctx context.Context, tenantID, id string) (*Employee, error) {
	current, err := s.fetch(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if current.Status == StatusTerminated {
		return nil, apperror.Validation("employee is already terminated")
	}

	now := time.Now().UTC()
	updated := *current
	updated.Status = StatusTerminated
	updated.TerminatedAt = &now
	updated.UpdatedAt = now
	if err := s.repo.Update(ctx, id, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}
