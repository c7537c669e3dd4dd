package finance

import (
	"context"

	"github.com/corehr/corehr-backend/internal/store"
)

// CustomerRepository defines the interface for customer storage.
type CustomerRepository interface {
	Insert(ctx context.Context, c *Customer) error
	Get(ctx context.Context, id string) (*Customer, error)
	ListByTenant(ctx context.Context, tenantID string) ([]*Customer, error)
}

// VendorRepository defines the interface for vendor storage.
type VendorRepository interface {
	Insert(ctx context.Context, v *Vendor) error
	Get(ctx context.Context, id string) (*Vendor, error)
	ListByTenant(ctx context.Context, tenantID string) ([]*Vendor, error)
}

// InvoiceRepository defines the interface for invoice storage.
type InvoiceRepository interface {
	Insert(ctx context.Context, inv *Invoice) error
	Get(ctx context.Context, id string) (*Invoice, error)
	Update(ctx context.Context, id string, inv *Invoice) error
	ListByTenant(ctx context.Context, tenantID string) ([]*Invoice, error)
}

type memoryCustomerRepo struct {
	customers *store.Collection[*Customer]
}

// NewMemoryCustomerRepository creates an in-memory customer repository.
func NewMemoryCustomerRepository() CustomerRepository {
	return &memoryCustomerRepo{
		customers: store.New(func(c *Customer) string { return c.ID.String() }),
	}
}

func (r *memoryCustomerRepo) Insert(ctx context.Context, c *Customer) error {
	return r.customers.Insert(c)
}

func (r *memoryCustomerRepo) Get(ctx context.Context, id string) (*Customer, error) {
	c, ok := r.customers.Get(id)
	if !ok {
		return nil, store.ErrNotFound
	}
	return c, nil
}

func (r *memoryCustomerRepo) ListByTenant(ctx context.Context, tenantID string) ([]*Customer, error) {
	all := r.customers.List()
	out := make([]*Customer, 0, len(all))
	for _, c := range all {
		if c.TenantID.String() == tenantID {
			out = append(out, c)
		}
	}
	return out, nil
}

type memoryVendorRepo struct {
	vendors *store.Collection[*Vendor]
}

// NewMemoryVendorRepository creates an in-memory vendor repository.
func NewMemoryVendorRepository() VendorRepository {
	return &memoryVendorRepo{
		vendors: store.New(func(v *Vendor) string { return v.ID.String() }),
	}
}

func (r *memoryVendorRepo) Insert(ctx context.Context, v *Vendor) error {
	return r.vendors.Insert(v)
}

func (r *memoryVendorRepo) Get(ctx context.Context, id string) (*Vendor, error) {
	v, ok := r.vendors.Get(id)
	if !ok {
		return nil, store.ErrNotFound
	}
	return v, nil
}

func (r *memoryVendorRepo) ListByTenant(ctx context.Context, tenantID string) ([]*Vendor, error) {
	all := r.vendors.List()
	out := make([]*Vendor, 0, len(all))
	for _, v := range all {
		if v.TenantID.String() == tenantID {
			out = append(out, v)
		}
	}
	return out, nil
}

type memoryInvoiceRepo struct {
	invoices *store.Collection[*Invoice]
}

// NewMemoryInvoiceRepository creates an in-memory invoice repository.
func NewMemoryInvoiceRepository() InvoiceRepository {
	return &memoryInvoiceRepo{
		invoices: store.New(func(inv *Invoice) string { return inv.ID.String() }),
	}
}

func (r *memoryInvoiceRepo) Insert(ctx context.Context, inv *Invoice) error {
	return r.invoices.Insert(inv)
}

func (r *memoryInvoiceRepo) Get(ctx context.Context, id string) (*Invoice, error) {
	inv, ok := r.invoices.Get(id)
	if !ok {
		return nil, store.ErrNotFound
	}
	return inv, nil
}

func (r *memoryInvoiceRepo) Update(ctx context.Context, id string, inv *Invoice) error {
	return r.invoices.Update(id, inv)
}

func (r *memoryInvoiceRepo) ListByTenant(ctx context.Context, tenantID string) ([]*Invoice, error) {
	all := r.invoices.List()
	out := make([]*Invoice, 0, len(all))
	for _, inv := range all {
		if inv.TenantID.String() == tenantID {
			out = append(out, inv)
		}
	}
	return out, nil
}
