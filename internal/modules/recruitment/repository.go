package recruitment

import (
	"context"

	"github.com/corehr/corehr-backend/internal/store"
)

// PostingRepository defines the interface for job posting storage.
type PostingRepository interface {
	Insert(ctx context.Context, p *JobPosting) error
	Get(ctx context.Context, id string) (*JobPosting, error)
	Update(ctx context.Context, id string, p *JobPosting) error
	ListByTenant(ctx context.Context, tenantID string) ([]*JobPosting, error)
}

// ApplicationRepository defines the interface for application storage.
type ApplicationRepository interface {
	Insert(ctx context.Context, a *Application) error
	Get(ctx context.Context, id string) (*Application, error)
	Update(ctx context.Context, id string, a *Application) error
	ListByPosting(ctx context.Context, postingID string) ([]*Application, error)
}

type memoryPostingRepo struct {
	postings *store.Collection[*JobPosting]
}

// NewMemoryPostingRepository creates an in-memory posting repository.
func NewMemoryPostingRepository() PostingRepository {
	return &memoryPostingRepo{
		postings: store.New(func(p *JobPosting) string { return p.ID.String() }),
	}
}

func (r *memoryPostingRepo) Insert(ctx context.Context, p *JobPosting) error {
	return r.postings.Insert(p)
}

func (r *memoryPostingRepo) Get(ctx context.Context, id string) (*JobPosting, error) {
	p, ok := r.postings.Get(id)
	if !ok {
		return nil, store.ErrNotFound
	}
	return p, nil
}

func (r *memoryPostingRepo) Update(ctx context.Context, id string, p *JobPosting) error {
	return r.postings.Update(id, p)
}

func (r *memoryPostingRepo) ListByTenant(ctx context.Context, tenantID string) ([]*JobPosting, error) {
	all := r.postings.List()
	out := make([]*JobPosting, 0, len(all))
	for _, p := range all {
		if p.TenantID.String() == tenantID {
			out = append(out, p)
		}
	}
	return out, nil
}

type memoryApplicationRepo struct {
	applications *store.Collection[*Application]
}

// NewMemoryApplicationRepository creates an in-memory application repository.
func NewMemoryApplicationRepository() ApplicationRepository {
	return &memoryApplicationRepo{
		applications: store.New(func(a *Application) string { return a.ID.String() }),
	}
}

func (r *memoryApplicationRepo) Insert(ctx context.Context, a *Application) error {
	return r.applications.Insert(a)
}

func (r *memoryApplicationRepo) Get(ctx context.Context, id string) (*Application, error) {
	a, ok := r.applications.Get(id)
	if !ok {
		return nil, store.ErrNotFound
	}
	return a, nil
}

func (r *memoryApplicationRepo) Update(ctx context.Context, id string, a *Application) error {
	return r.applications.Update(id, a)
}

func (r *memoryApplicationRepo) ListByPosting(ctx context.Context, postingID string) ([]*Application, error) {
	all := r.applications.List()
	out := make([]*Application, 0, len(all))
	for _, a := range all {
		if a.JobPostingID.String() == postingID {
			out = append(out, a)
		}
	}
	return out, nil
}
