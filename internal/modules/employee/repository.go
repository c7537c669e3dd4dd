package employee

import (
	"context"

	"github.com/corehr/corehr-backend/internal/store"
)

// Repository defines the interface for employee storage.
type Repository interface {
	Insert(ctx context.Context, e *Employee) error
	Get(ctx context.Context, id string) (*Employee, error)
	Update(ctx context.Context, id string, e *Employee) error
	ListByTenant(ctx context.Context, tenantID string) ([]*Employee, error)
}

type memoryRepository struct {
	employees *store.Collection[*Employee]
}

// NewMemoryRepository creates an in-memory employee repository.
func NewMemoryRepository() Repository {
	return &memoryRepository{
		employees: store.New(func(e *Employee) string { return e.ID.String() }),
	}
}

func (r *memoryRepository) Insert(ctx context.Context, e *Employee) error {
	return r.employees.Insert(e)
}

func (r *memoryRepository) Get(ctx context.Context, id string) (*Employee, error) {
	e, ok := r.employees.Get(id)
	if !ok {
		return nil, store.ErrNotFound
	}
	return e, nil
}

func (r *memoryRepository) Update(ctx context.Context, id string, e *Employee) error {
	return r.employees.Update(id, e)
}

func (r *memoryRepository) ListByTenant(ctx context.Context, tenantID string) ([]*Employee, error) {
	all := r.employees.List()
	out := make([]*Employee, 0, len(all))
	for _, e := range all {
		if e.TenantID.String() == tenantID {
			out = append(out, e)
		}
	}
	return out, nil
}
