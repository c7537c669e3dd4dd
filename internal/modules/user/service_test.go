package user

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/corehr/corehr-backend/internal/apperror"
)

func validRegisterRequest() RegisterRequest {
	return RegisterRequest{
		Email:    "alice@example.com",
		Password: "long-enough-pass",
		Role:     string(RoleHRManager),
	}
}

func TestRegisterUserValidation(t *testing.T) {
	s := NewService(NewMemoryRepository())
	ctx := context.Background()
	tenant := uuid.New().String()

	cases := []struct {
		name   string
		mutate func(*RegisterRequest)
	}{
		{"bad email", func(r *RegisterRequest) { r.Email = "not-an-address" }},
		{"short password", func(r *RegisterRequest) { r.Password = "short" }},
		{"unknown role", func(r *RegisterRequest) { r.Role = "superuser" }},
	}
	for _, tc := range cases {
		req := validRegisterRequest()
		tc.mutate(&req)
		if _, err := s.RegisterUser(ctx, tenant, req); !apperror.Is(err, apperror.CodeValidation) {
			t.Errorf("%s: err = %v, want validation error", tc.name, err)
		}
	}
}

func TestRegisterUserDefaultsToEmployeeRole(t *testing.T) {
	s := NewService(NewMemoryRepository())
	req := validRegisterRequest()
	req.Role = ""
	u, err := s.RegisterUser(context.Background(), uuid.New().String(), req)
	if err != nil {
		t.Fatal(err)
	}
	if u.Role != RoleEmployee {
		t.Errorf("role = %s, want %s", u.Role, RoleEmployee)
	}
}

func TestRegisterUserRejectsDuplicateEmail(t *testing.T) {
	s := NewService(NewMemoryRepository())
	ctx := context.Background()
	tenant := uuid.New().String()

	if _, err := s.RegisterUser(ctx, tenant, validRegisterRequest()); err != nil {
		t.Fatal(err)
	}
	if _, err := s.RegisterUser(ctx, tenant, validRegisterRequest()); !apperror.Is(err, apperror.CodeDuplicate) {
		t.Errorf("duplicate email: err = %v, want duplicate error", err)
	}
}

func TestGetUserHidesOtherTenants(t *testing.T) {
	s := NewService(NewMemoryRepository())
	ctx := context.Background()
	tenant := uuid.New().String()

	u, err := s.RegisterUser(ctx, tenant, validRegisterRequest())
	if err != nil {
		t.Fatal(err)
	}

	if _, err := s.GetUser(ctx, uuid.New().String(), u.ID.String()); !apperror.Is(err, apperror.CodeNotFound) {
		t.Errorf("wrong tenant: err = %v, want not found", err)
	}
	if got, err := s.GetUser(ctx, tenant, u.ID.String()); err != nil || got.ID != u.ID {
		t.Errorf("owning tenant: got %v, err = %v", got, err)
	}
}
