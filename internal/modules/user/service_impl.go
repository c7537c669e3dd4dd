package user

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/corehr/corehr-backend/internal/apperror"
	"github.com/corehr/corehr-backend/internal/store"
)

type service struct {
	repo Repository
}

// NewService creates a new account service.
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) RegisterUser(ctx context.Context, tenantID string, req RegisterRequest) (*User, error) {
	if !strings.Contains(req.Email, "@") {
		return nil, apperror.Validation("email %q is not a valid address", req.Email)
	}
	if len(req.Password) < 8 {
		return nil, apperror.Validation("password must be at least 8 characters")
	}
	tenant, err := uuid.Parse(tenantID)
	if err != nil {
		return nil, apperror.Validation("invalid tenant id: %v", err)
	}
	role := Role(req.Role)
	if req.Role == "" {
		role = RoleEmployee
	}
	if !ValidRole(role) {
		return nil, apperror.Validation("unknown role %q", req.Role)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	u := &User{
		ID:           uuid.New(),
		TenantID:     tenant,
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		PasswordHash: string(hashedPassword),
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.CreateUser(ctx, u); err != nil {
		if errors.Is(err, store.ErrDuplicateKey) {
			return nil, apperror.Duplicate("an account with email %s already exists", u.Email)
		}
		return nil, err
	}
	return u, nil
}

// GetUser hides cross-tenant existence: a wrong-tenant id is
// indistinguishable from a missing one.
func (s *service) GetUser(ctx context.Context, tenantID, id string) (*User, error) {
	u, err := s.repo.GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperror.NotFound("user not found")
		}
		return nil, err
	}
	if u.TenantID.String() != tenantID {
		return nil, apperror.NotFound("user not found")
	}
	return u, nil
}
