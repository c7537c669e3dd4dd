package finance

import (
	"time"

	"github.com/google/uuid"
)

// ── Counterparties ────────────────────────────────────────────────────────────

// PartyStatus represents whether a counterparty can be invoiced.
type PartyStatus string

const (
	PartyActive   PartyStatus = "active"
	PartyInactive PartyStatus = "inactive"
)

// Customer represents a party the tenant bills (accounts receivable).
type Customer struct {
	ID             uuid.UUID   `json:"id"`
	TenantID       uuid.UUID   `json:"tenant_id"`
	Name           string      `json:"name"`
	Email          string      `json:"email,omitempty"`
	Phone          string      `json:"phone,omitempty"`
	BillingAddress string      `json:"billing_address,omitempty"`
	Status         PartyStatus `json:"status"`
	CreatedAt      time.Time   `json:"created_at"`
	UpdatedAt      time.Time   `json:"updated_at"`
}

// Vendor represents a party that bills the tenant (accounts payable).
type Vendor struct {
	ID             uuid.UUID   `json:"id"`
	TenantID       uuid.UUID   `json:"tenant_id"`
	Name           string      `json:"name"`
	Email          string      `json:"email,omitempty"`
	Phone          string      `json:"phone,omitempty"`
	BillingAddress string      `json:"billing_address,omitempty"`
	TaxID          string      `json:"tax_id,omitempty"`
	Status         PartyStatus `json:"status"`
	CreatedAt      time.Time   `json:"created_at"`
	UpdatedAt      time.Time   `json:"updated_at"`
}

// CreatePartyRequest is the payload for creating a customer or vendor.
type CreatePartyRequest struct {
	Name           string `json:"name"`
	Email          string `json:"email,omitempty"`
	Phone          string `json:"phone,omitempty"`
	BillingAddress string `json:"billing_address,omitempty"`
	TaxID          string `json:"tax_id,omitempty"` // vendors only
}

// ── Invoices ──────────────────────────────────────────────────────────────────

// Direction distinguishes receivables (customer invoices) from
// payables (vendor bills).
type Direction string

const (
	Receivable Direction = "receivable"
	Payable    Direction = "payable"
)

// InvoiceStatus represents the lifecycle state of an invoice.
type InvoiceStatus string

const (
	InvoiceDraft InvoiceStatus = "draft"
	InvoiceOpen  InvoiceStatus = "open"
	InvoicePaid  InvoiceStatus = "paid"
	InvoiceVoid  InvoiceStatus = "void"
)

var validInvoiceTransitions = map[InvoiceStatus][]InvoiceStatus{
	InvoiceDraft: {InvoiceOpen, InvoiceVoid},
	InvoiceOpen:  {InvoicePaid, InvoiceVoid},
	InvoicePaid:  {},
	InvoiceVoid:  {},
}

// CanTransitionInvoice returns true if the invoice transition is valid.
func CanTransitionInvoice(current, next InvoiceStatus) bool {
	for _, s := range validInvoiceTransitions[current] {
		if s == next {
			return true
		}
	}
	return false
}

// LineItem represents a single line on an invoice.
type LineItem struct {
	Description string  `json:"description"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
	Amount      float64 `json:"amount"`
}

// Invoice represents an AR invoice or AP bill owned by a tenant.
type Invoice struct {
	ID               uuid.UUID     `json:"id"`
	TenantID         uuid.UUID     `json:"tenant_id"`
	Direction        Direction     `json:"direction"`
	CounterpartyID   uuid.UUID     `json:"counterparty_id"`
	Number           string        `json:"number"` // INV-<year>-<NNN> or BILL-<year>-<NNN>, per tenant per year
	LineItems        []LineItem    `json:"line_items"`
	Amount           float64       `json:"amount"`
	Currency         string        `json:"currency"`
	Status           InvoiceStatus `json:"status"`
	IssueDate        time.Time     `json:"issue_date"`
	DueDate          time.Time     `json:"due_date"`
	PaidAt           *time.Time    `json:"paid_at,omitempty"`
	PaymentReference string        `json:"payment_reference,omitempty"`
	Notes            string        `json:"notes,omitempty"`
	CreatedAt        time.Time     `json:"created_at"`
	UpdatedAt        time.Time     `json:"updated_at"`
}

// CreateInvoiceRequest is the payload for creating a new invoice.
type CreateInvoiceRequest struct {
	Direction        string     `json:"direction"`
	CounterpartyID   string     `json:"counterparty_id"`
	LineItems        []LineItem `json:"line_items"`
	Currency         string     `json:"currency,omitempty"`
	DueDate          time.Time  `json:"due_date"`
	Notes            string     `json:"notes,omitempty"`
	IssueImmediately bool       `json:"issue_immediately,omitempty"`
}

// MarkPaidRequest is the payload for marking an invoice as paid.
type MarkPaidRequest struct {
	PaymentReference string `json:"payment_reference"`
	Notes            string `json:"notes,omitempty"`
}

// Report aggregates a tenant's AP/AR position from real invoice data.
type Report struct {
	Direction     Direction `json:"direction"`
	OpenCount     int       `json:"open_count"`
	OpenAmount    float64   `json:"open_amount"`
	OverdueCount  int       `json:"overdue_count"`
	OverdueAmount float64   `json:"overdue_amount"`
	PaidCount     int       `json:"paid_count"`
	PaidAmount    float64   `json:"paid_amount"`
}

// Summary is the tenant-wide financial report: one Report per direction.
type Summary struct {
	Receivable Report    `json:"receivable"`
	Payable    Report    `json:"payable"`
	AsOf       time.Time `json:"as_of"`
}
