package leave

import (
	"context"

	"github.com/corehr/corehr-backend/internal/store"
)

// Repository defines the interface for leave request storage.
type Repository interface {
	Insert(ctx context.Context, req *Request) error
	Get(ctx context.Context, id string) (*Request, error)
	Update(ctx context.Context, id string, req *Request) error
	ListByTenant(ctx context.Context, tenantID string) ([]*Request, error)
}

type memoryRepository struct {
	requests *store.Collection[*Request]
}

// NewMemoryRepository creates an in-memory leave request repository.
func NewMemoryRepository() Repository {
	return &memoryRepository{
		requests: store.New(func(r *Request) string { return r.ID.String() }),
	}
}

func (r *memoryRepository) Insert(ctx context.Context, req *Request) error {
	return r.requests.Insert(req)
}

func (r *memoryRepository) Get(ctx context.Context, id string) (*Request, error) {
	req, ok := r.requests.Get(id)
	if !ok {
		return nil, store.ErrNotFound
	}
	return req, nil
}

func (r *memoryRepository) Update(ctx context.Context, id string, req *Request) error {
	return r.requests.Update(id, req)
}

func (r *memoryRepository) ListByTenant(ctx context.Context, tenantID string) ([]*Request, error) {
	all := r.requests.List()
	out := make([]*Request, 0, len(all))
	for _, req := range all {
		if req.TenantID.String() == tenantID {
			out = append(out, req)
		}
	}
	return out, nil
}
