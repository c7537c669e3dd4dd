package leave

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/corehr/corehr-backend/internal/apperror"
	"github.com/corehr/corehr-backend/internal/modules/employee"
	"github.com/corehr/corehr-backend/internal/query"
)

type fixture struct {
	svc      Service
	tenant   string
	employee *employee.Employee
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	tenant := uuid.New().String()
	employees := employee.NewMemoryRepository()
	emp, err := employee.NewService(employees).CreateEmployee(context.Background(), tenant, employee.CreateEmployeeRequest{
		FirstName: "Jane",
		LastName:  "Doe",
		Email:     "jane@example.com",
	})
	if err != nil {
		t.Fatal(err)
	}
	return &fixture{
		svc:      NewService(NewMemoryRepository(), employees),
		tenant:   tenant,
		employee: emp,
	}
}

func (f *fixture) submit(t *testing.T) *Request {
	t.Helper()
	start := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)
	r, err := f.svc.SubmitRequest(context.Background(), f.tenant, SubmitRequest{
		EmployeeID: f.employee.ID.String(),
		Type:       string(TypeAnnual),
		StartDate:  start,
		EndDate:    start.AddDate(0, 0, 4),
		Days:       5,
		Reason:     "vacation",
	})
	if err != nil {
		t.Fatal(err)
	}
	return r
}

func TestSubmitRequestValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	start := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)

	cases := []struct {
		name string
		req  SubmitRequest
		code apperror.Code
	}{
		{
			"unknown type",
			SubmitRequest{EmployeeID: f.employee.ID.String(), Type: "sabbatical", StartDate: start, EndDate: start, Days: 1},
			apperror.CodeValidation,
		},
		{
			"inverted dates",
			SubmitRequest{EmployeeID: f.employee.ID.String(), Type: string(TypeSick), StartDate: start, EndDate: start.AddDate(0, 0, -1), Days: 1},
			apperror.CodeValidation,
		},
		{
			"zero days",
			SubmitRequest{EmployeeID: f.employee.ID.String(), Type: string(TypeSick), StartDate: start, EndDate: start, Days: 0},
			apperror.CodeValidation,
		},
		{
			"unknown employee",
			SubmitRequest{EmployeeID: uuid.New().String(), Type: string(TypeSick), StartDate: start, EndDate: start, Days: 1},
			apperror.CodeNotFound,
		},
	}
	for _, tc := range cases {
		if _, err := f.svc.SubmitRequest(ctx, f.tenant, tc.req); !apperror.Is(err, tc.code) {
			t.Errorf("%s: err = %v, want code %s", tc.name, err, tc.code)
		}
	}
}

func TestSubmitRequestRejectsTerminatedEmployee(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	employees := employee.NewMemoryRepository()
	empSvc := employee.NewService(employees)
	emp, err := empSvc.CreateEmployee(ctx, f.tenant, employee.CreateEmployeeRequest{
		FirstName: "Gone", LastName: "Person", Email: "gone@example.com",
	})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := empSvc.TerminateEmployee(ctx, f.tenant, emp.ID.String()); err != nil {
		t.Fatal(err)
	}

	svc := NewService(NewMemoryRepository(), employees)
	_, err = svc.SubmitRequest(ctx, f.tenant, SubmitRequest{
		EmployeeID: emp.ID.String(),
		Type:       string(TypeAnnual),
		StartDate:  time.Now(),
		EndDate:    time.Now(),
		Days:       1,
	})
	if !apperror.Is(err, apperror.CodeValidation) {
		t.Errorf("err = %v, want validation error", err)
	}
}

func TestDecisionOnlyFromPending(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	decider := uuid.New().String()

	r := f.submit(t)
	approved, err := f.svc.ApproveRequest(ctx, f.tenant, r.ID.String(), decider, DecisionRequest{Note: "enjoy"})
	if err != nil {
		t.Fatal(err)
	}
	if approved.Status != StatusApproved || approved.DecidedBy == nil || approved.DecidedAt == nil {
		t.Errorf("approved = %+v", approved)
	}
	if approved.DecisionNote != "enjoy" {
		t.Errorf("note = %q", approved.DecisionNote)
	}

	if _, err := f.svc.RejectRequest(ctx, f.tenant, r.ID.String(), decider, DecisionRequest{}); !apperror.Is(err, apperror.CodeValidation) {
		t.Errorf("reject after approve: err = %v, want validation error", err)
	}
	if _, err := f.svc.CancelRequest(ctx, f.tenant, r.ID.String()); !apperror.Is(err, apperror.CodeValidation) {
		t.Errorf("cancel after approve: err = %v, want validation error", err)
	}
}

func TestCancelPendingRequest(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	r := f.submit(t)
	cancelled, err := f.svc.CancelRequest(ctx, f.tenant, r.ID.String())
	if err != nil {
		t.Fatal(err)
	}
	if cancelled.Status != StatusCancelled {
		t.Errorf("status = %s, want %s", cancelled.Status, StatusCancelled)
	}

	if _, err := f.svc.ApproveRequest(ctx, f.tenant, r.ID.String(), uuid.New().String(), DecisionRequest{}); !apperror.Is(err, apperror.CodeValidation) {
		t.Errorf("approve after cancel: err = %v, want validation error", err)
	}
}

func TestRequestsHiddenAcrossTenants(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	r := f.submit(t)
	other := uuid.New().String()
	if _, err := f.svc.GetRequest(ctx, other, r.ID.String()); !apperror.Is(err, apperror.CodeNotFound) {
		t.Errorf("wrong tenant get: err = %v, want not found", err)
	}
	if _, err := f.svc.ApproveRequest(ctx, other, r.ID.String(), uuid.New().String(), DecisionRequest{}); !apperror.Is(err, apperror.CodeNotFound) {
		t.Errorf("wrong tenant approve: err = %v, want not found", err)
	}
}

func TestListRequestsFiltersByStatus(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	first := f.submit(t)
	f.submit(t)
	if _, err := f.svc.ApproveRequest(ctx, f.tenant, first.ID.String(), uuid.New().String(), DecisionRequest{}); err != nil {
		t.Fatal(err)
	}

	page, err := f.svc.ListRequests(ctx, f.tenant, query.Options{
		Filters: map[string]string{"status": string(StatusPending)},
	})
	if err != nil {
		t.Fatal(err)
	}
	if page.Total != 1 || page.Items[0].Status != StatusPending {
		t.Errorf("pending filter: total=%d", page.Total)
	}
}
