package finance

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

// Service defines the accounts payable/receivable business logic.
type Service interface {
	CreateCustomer(ctx context.Context, tenantID string, req CreatePartyRequest) (*Customer, error)
	ListCustomers(ctx context.Context, tenantID string, opts query.Options) (query.Page[*Customer], error)
	GetCustomer(ctx context.Context, tenantID, id string) (*Customer, error)

	CreateVendor(ctx context.Context, tenantID string, req CreatePartyRequest) (*Vendor, error)
	ListVendors(ctx context.Context, tenantID string, opts query.Options) (query.Page[*Vendor], error)
	GetVendor(ctx context.Context, tenantID, id string) (*Vendor, error)

	CreateInvoice(ctx context.Context, tenantID string, req CreateInvoiceRequest) (*Invoice, error)
	ListInvoices(ctx context.Context, tenantID string, opts query.Options) (query.Page[*Invoice], error)
	GetInvoice(ctx context.Context, tenantID, id string) (*Invoice, error)
	IssueInvoice(ctx context.Context, tenantID, id string) (*Invoice, error)
	MarkInvoicePaid(ctx context.Context, tenantID, id string, req MarkPaidRequest) (*Invoice, error)
	VoidInvoice(ctx context.Context, tenantID, id string) (*Invoice, error)

	Summary(ctx context.Context, tenantID string) (*Summary, error)
}

type service struct {
	customers CustomerRepository
	vendors   VendorRepository
	invoices  InvoiceRepository
}

// NewService creates a new finance service.
func NewService(customers CustomerRepository, vendors VendorRepository, invoices InvoiceRepository) Service {
	return &service{customers: customers, vendors: vendors, invoices: invoices}
}

var customerDescriptor = query.Descriptor[*Customer]{
	DefaultSort:  "created_at",
	SearchFields: []string{"name", "email"},
	Field: func(c *Customer, name string) (interface{}, bool) {
		switch name {
		case "name":
			return c.Name, true
		case "email":
			return c.Email, true
		case "status":
			return string(c.Status), true
		case "created_at":
			return c.CreatedAt, true
		case "updated_at":
			return c.UpdatedAt, true
		default:
			return nil, false
		}
	},
}

var vendorDescriptor = query.Descriptor[*Vendor]{
	DefaultSort:  "created_at",
	SearchFields: []string{"name", "email"},
	Field: func(v *Vendor, name string) (interface{}, bool) {
		switch name {
		case "name":
			return v.Name, true
		case "email":
			return v.Email, true
		case "status":
			return string(v.Status), true
		case "created_at":
			return v.CreatedAt, true
		case "updated_at":
			return v.UpdatedAt, true
		default:
			return nil, false
		}
	},
}

var invoiceDescriptor = query.Descriptor[*Invoice]{
	DefaultSort:  "created_at",
	SearchFields: []string{"number"},
	Field: func(inv *Invoice, name string) (interface{}, bool) {
		switch name {
		case "number":
			return inv.Number, true
		case "direction":
			return string(inv.Direction), true
		case "status":
			return string(inv.Status), true
		case "counterparty_id":
			return inv.CounterpartyID.String(), true
		case "amount":
			return inv.Amount, true
		case "issue_date":
			return inv.IssueDate, true
		case "due_date":
			return inv.DueDate, true
		case "created_at":
			return inv.CreatedAt, true
		case "updated_at":
			return inv.UpdatedAt, true
		default:
			return nil, false
		}
	},
}

// ── Counterparties ────────────────────────────────────────────────────────────

func validateParty(req CreatePartyRequest) error {
	if len(strings.TrimSpace(req.Name)) < 2 {
		return apperror.Validation("name must be at least 2 characters")
	}
	if req.Email != "" && !strings.Contains(req.Email, "@") {
		return apperror.Validation("email %q is not a valid address", req.Email)
	}
	return nil
}

func (s *service) CreateCustomer(ctx context.Context, tenantID string, req CreatePartyRequest) (*Customer, error) {
	tenant, err := uuid.Parse(tenantID)
	if err != nil {
		return nil, apperror.Validation("invalid tenant id: %v", err)
	}
	if err := validateParty(req); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	c := &Customer{
		ID:             uuid.New(),
		TenantID:       tenant,
		Name:           strings.TrimSpace(req.Name),
		Email:          req.Email,
		Phone:          req.Phone,
		BillingAddress: req.BillingAddress,
		Status:         PartyActive,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.customers.Insert(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *service) ListCustomers(ctx context.Context, tenantID string, opts query.Options) (query.Page[*Customer], error) {
	records, err := s.customers.ListByTenant(ctx, tenantID)
	if err != nil {
		return query.Page[*Customer]{}, err
	}
	return query.Run(records, customerDescriptor, opts)
}

func (s *service) GetCustomer(ctx context.Context, tenantID, id string) (*Customer, error) {
	c, err := s.customers.Get(ctx, id)
	if err != nil || c.TenantID.String() != tenantID {
		return nil, apperror.NotFound("customer not found")
	}
	return c, nil
}

func (s *service) CreateVendor(ctx context.Context, tenantID string, req CreatePartyRequest) (*Vendor, error) {
	tenant, err := uuid.Parse(tenantID)
	if err != nil {
		return nil, apperror.Validation("invalid tenant id: %v", err)
	}
	if err := validateParty(req); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	v := &Vendor{
		ID:             uuid.New(),
		TenantID:       tenant,
		Name:           strings.TrimSpace(req.Name),
		Email:          req.Email,
		Phone:          req.Phone,
		BillingAddress: req.BillingAddress,
		TaxID:          req.TaxID,
		Status:         PartyActive,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.vendors.Insert(ctx, v); err != nil {
		return nil, err
	}
	return v, nil
}

func (s *service) ListVendors(ctx context.Context, tenantID string, opts query.Options) (query.Page[*Vendor], error) {
	records, err := s.vendors.ListByTenant(ctx, tenantID)
	if err != nil {
		return query.Page[*Vendor]{}, err
	}
	return query.Run(records, vendorDescriptor, opts)
}

func (s *service) GetVendor(ctx context.Context, tenantID, id string) (*Vendor, error) {
	v, err := s.vendors.Get(ctx, id)
	if err != nil || v.TenantID.String() != tenantID {
		return nil, apperror.NotFound("vendor not found")
	}
	return v, nil
}

// ── Invoices ──────────────────────────────────────────────────────────────────

func (s *service) CreateInvoice(ctx context.Context, tenantID string, req CreateInvoiceRequest) (*Invoice, error) {
	tenant, err := uuid.Parse(tenantID)
	if err != nil {
		return nil, apperror.Validation("invalid tenant id: %v", err)
	}
	direction := Direction(req.Direction)
	if direction != Receivable && direction != Payable {
		return nil, apperror.Validation("direction must be receivable or payable, got %q", req.Direction)
	}
	if len(req.LineItems) == 0 {
		return nil, apperror.Validation("invoice must contain at least one line item")
	}

	// The counterparty must exist in this tenant: customers for
	// receivables, vendors for payables.
	if direction == Receivable {
		if _, err := s.GetCustomer(ctx, tenantID, req.CounterpartyID); err != nil {
			return nil, err
		}
	} else {
		if _, err := s.GetVendor(ctx, tenantID, req.CounterpartyID); err != nil {
			return nil, err
		}
	}

	var amount float64
	items := make([]LineItem, 0, len(req.LineItems))
	for _, li := range req.LineItems {
		if li.Quantity < 1 {
			return nil, apperror.Validation("line item quantity must be at least 1")
		}
		if li.UnitPrice < 0 {
			return nil, apperror.Validation("line item unit price must not be negative")
		}
		li.Amount = round2(li.UnitPrice * float64(li.Quantity))
		amount += li.Amount
		items = append(items, li)
	}

	now := time.Now().UTC()
	if req.DueDate.Before(now.Truncate(24 * time.Hour)) {
		return nil, apperror.Validation("due_date must not be before the issue date")
	}

	status := InvoiceDraft
	if req.IssueImmediately {
		status = InvoiceOpen
	}
	currency := req.Currency
	if currency == "" {
		currency = "USD"
	}

	number, err := s.nextInvoiceNumber(ctx, tenantID, direction)
	if err != nil {
		return nil, err
	}

	inv := &Invoice{
		ID:             uuid.New(),
		TenantID:       tenant,
		Direction:      direction,
		CounterpartyID: uuid.MustParse(req.CounterpartyID),
		Number:         number,
		LineItems:      items,
		Amount:         round2(amount),
		Currency:       currency,
		Status:         status,
		IssueDate:      now,
		DueDate:        req.DueDate,
		Notes:          req.Notes,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.invoices.Insert(ctx, inv); err != nil {
		return nil, err
	}
	return inv, nil
}

// nextInvoiceNumber generates INV-<year>-<NNN> for receivables and
// BILL-<year>-<NNN> for payables, sequenced per tenant per year.
func (s *service) nextInvoiceNumber(ctx context.Context, tenantID string, direction Direction) (string, error) {
	existing, err := s.invoices.ListByTenant(ctx, tenantID)
	if err != nil {
		return "", err
	}
	prefix := "INV"
	if direction == Payable {
		prefix = "BILL"
	}
	year := fmt.Sprintf("%d", time.Now().UTC().Year())
	count := 0
	for _, inv := range existing {
		if inv.Direction == direction && strings.Contains(inv.Number, year) {
			count++
		}
	}
	return fmt.Sprintf("%s-%s-%03d", prefix, year, count+1), nil
}

func (s *service) ListInvoices(ctx context.Context, tenantID string, opts query.Options) (query.Page[*Invoice], error) {
	records, err := s.invoices.ListByTenant(ctx, tenantID)
	if err != nil {
		return query.Page[*Invoice]{}, err
	}
	return query.Run(records, invoiceDescriptor, opts)
}

func (s *service) GetInvoice(ctx context.Context, tenantID, id string) (*Invoice, error) {
	return s.fetchInvoice(ctx, tenantID, id)
}

func (s *service) fetchInvoice(ctx context.Context, tenantID, id string) (*Invoice, error) {
	inv, err := s.invoices.Get(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperror.NotFound("invoice not found")
		}
		return nil, err
	}
	if inv.TenantID.String() != tenantID {
		return nil, apperror.NotFound("invoice not found")
	}
	return inv, nil
}

func (s *service) IssueInvoice(ctx context.Context, tenantID, id string) (*Invoice, error) {
	return s.transition(ctx, tenantID, id, InvoiceOpen, func(inv *Invoice) {})
}

func (s *service) MarkInvoicePaid(ctx context.Context, tenantID, id string, req MarkPaidRequest) (*Invoice, error) {
	if strings.TrimSpace(req.PaymentReference) == "" {
		return nil, apperror.Validation("payment_reference is required")
	}
	return s.transition(ctx, tenantID, id, InvoicePaid, func(inv *Invoice) {
		now := time.Now().UTC()
		inv.PaidAt = &now
		inv.PaymentReference = req.PaymentReference
		if req.Notes != "" {
			inv.Notes = req.Notes
		}
	})
}

func (s *service) VoidInvoice(ctx context.Context, tenantID, id string) (*Invoice, error) {
	return s.transition(ctx, tenantID, id, InvoiceVoid, func(inv *Invoice) {})
}

func (s *service) transition(ctx context.Context, tenantID, id string, next InvoiceStatus, stamp func(*Invoice)) (*Invoice, error) {
	current, err := s.fetchInvoice(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if !CanTransitionInvoice(current.Status, next) {
		return nil, apperror.Validation("cannot transition invoice from %s to %s", current.Status, next)
	}

	updated := *current
	updated.Status = next
	stamp(&updated)
	updated.UpdatedAt = time.Now().UTC()
	if err := s.invoices.Update(ctx, id, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// ── Reporting ─────────────────────────────────────────────────────────────────

// Summary aggregates the tenant's invoices per direction. Figures come
// from the actual records, never sampled or estimated.
func (s *service) Summary(ctx context.Context, tenantID string) (*Summary, error) {
	invoices, err := s.invoices.ListByTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	summary := &Summary{
		Receivable: Report{Direction: Receivable},
		Payable:    Report{Direction: Payable},
		AsOf:       now,
	}
	for _, inv := range invoices {
		report := &summary.Receivable
		if inv.Direction == Payable {
			report = &summary.Payable
		}
		switch inv.Status {
		case InvoiceOpen:
			report.OpenCount++
			report.OpenAmount = round2(report.OpenAmount + inv.Amount)
			if inv.DueDate.Before(now) {
				report.OverdueCount++
				report.OverdueAmount = round2(report.OverdueAmount + inv.Amount)
			}
		case InvoicePaid:
			report.PaidCount++
			report.PaidAmount = round2(report.PaidAmount + inv.Amount)
		}
	}
	return summary, nil
}

func round2(v float64) float64 {
	return float64(int64(v*100+0.5)) / 100
}
