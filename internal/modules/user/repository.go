package user

import (
	"context"

	"github.com/corehr/corehr-backend/internal/store"
)

// Repository defines the interface for account storage.
type Repository interface {
	CreateUser(ctx context.Context, user *User) error
	GetUserByID(ctx context.Context, id string) (*User, error)
	GetUserByEmail(ctx context.Context, email string) (*User, error)
}

type memoryRepository struct {
	users *store.Collection[*User]
}

// NewMemoryRepository creates an in-memory account repository.
func NewMemoryRepository() Repository {
	return &memoryRepository{
		users: store.New(func(u *User) string { return u.ID.String() }),
	}
}

func (r *memoryRepository) CreateUser(ctx context.Context, u *User) error {
	for _, existing := range r.users.List() {
		if existing.Email == u.Email {
			return store.ErrDuplicateKey
		}
	}
	return r.users.Insert(u)
}

func (r *memoryRepository) GetUserByID(ctx context.Context, id string) (*User, error) {
	u, ok := r.users.Get(id)
	if !ok {
		return nil, store.ErrNotFound
	}
	return u, nil
}

func (r *memoryRepository) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	for _, u := range r.users.List() {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, store.ErrNotFound
}
