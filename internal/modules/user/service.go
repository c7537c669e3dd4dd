package user

import "context"

// Service defines the interface for account-related business logic.
// The tenant always comes from the resolved caller identity, never
// from the request body.
type Service interface {
	RegisterUser(ctx context.Context, tenantID string, req RegisterRequest) (*User, error)
	GetUser(ctx context.Context, tenantID, id string) (*User, error)
}

// RegisterRequest is the payload for creating a new account.
type RegisterRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
	Role      string `json:"role"`
}
