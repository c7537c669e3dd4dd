package finance

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/corehr/corehr-backend/internal/apperror"
	"github.com/corehr/corehr-backend/internal/modules/user"
	"github.com/corehr/corehr-backend/internal/query"
)

// Handler exposes finance HTTP endpoints.
type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

func (h *Handler) RegisterRoutes(router chi.Router) {
	router.Route("/api/v1/finance", func(r chi.Router) {
		r.Use(user.RequireRoles(user.RoleAdmin, user.RoleFinanceManager))
		r.Post("/customers", h.createCustomer)         // POST /api/v1/finance/customers
		r.Get("/customers", h.listCustomers)           // GET  /api/v1/finance/customers?status=active
		r.Get("/customers/{id}", h.getCustomer)        // GET  /api/v1/finance/customers/{id}
		r.Post("/vendors", h.createVendor)             // POST /api/v1/finance/vendors
		r.Get("/vendors", h.listVendors)               // GET  /api/v1/finance/vendors
		r.Get("/vendors/{id}", h.getVendor)            // GET  /api/v1/finance/vendors/{id}
		r.Post("/invoices", h.createInvoice)           // POST /api/v1/finance/invoices
		r.Get("/invoices", h.listInvoices)             // GET  /api/v1/finance/invoices?direction=receivable&status=open
		r.Get("/invoices/{id}", h.getInvoice)          // GET  /api/v1/finance/invoices/{id}
		r.Post("/invoices/{id}/issue", h.issueInvoice) // POST /api/v1/finance/invoices/{id}/issue
		r.Post("/invoices/{id}/pay", h.markPaid)       // POST /api/v1/finance/invoices/{id}/pay
		r.Post("/invoices/{id}/void", h.voidInvoice)   // POST /api/v1/finance/invoices/{id}/void
		r.Get("/reports/summary", h.summary)           // GET  /api/v1/finance/reports/summary
	})
}

func (h *Handler) createCustomer(w http.ResponseWriter, r *http.Request) {
	identity, _ := user.IdentityFrom(r.Context())
	var req CreatePartyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	c, err := h.service.CreateCustomer(r.Context(), identity.TenantID, req)
	if err != nil {
		respond(w, apperror.Status(err), map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusCreated, c)
}

func (h *Handler) listCustomers(w http.ResponseWriter, r *http.Request) {
	identity, _ := user.IdentityFrom(r.Context())
	opts, err := query.ParseOptions(r.URL.Query(), "status")
	if err != nil {
		respond(w, apperror.Status(err), map[string]string{"error": err.Error()})
		return
	}
	page, err := h.service.ListCustomers(r.Context(), identity.TenantID, opts)
	if err != nil {
		respond(w, apperror.Status(err), map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, page)
}

func (h *Handler) getCustomer(w http.ResponseWriter, r *http.Request) {
	identity, _ := user.IdentityFrom(r.Context())
	c, err := h.service.GetCustomer(r.Context(), identity.TenantID, chi.URLParam(r, "id"))
	if err != nil {
		respond(w, apperror.Status(err), map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, c)
}

func (h *Handler) createVendor(w http.ResponseWriter, r *http.Request) {
	identity, _ := user.IdentityFrom(r.Context())
	var req CreatePartyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	v, err := h.service.CreateVendor(r.Context(), identity.TenantID, req)
	if err != nil {
		respond(w, apperror.Status(err), map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusCreated, v)
}

func (h *Handler) listVendors(w http.ResponseWriter, r *http.Request) {
	identity, _ := user.IdentityFrom(r.Context())
	opts, err := query.ParseOptions(r.URL.Query(), "status")
	if err != nil {
		respond(w, apperror.Status(err), map[string]string{"error": err.Error()})
		return
	}
	page, err := h.service.ListVendors(r.Context(), identity.TenantID, opts)
	if err != nil {
		respond(w, apperror.Status(err), map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, page)
}

func (h *Handler) getVendor(w http.ResponseWriter, r *http.Request) {
	identity, _ := user.IdentityFrom(r.Context())
	v, err := h.service.GetVendor(r.Context(), identity.TenantID, chi.URLParam(r, "id"))
	if err != nil {
		respond(w, apperror.Status(err), map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, v)
}

func (h *Handler) createInvoice(w http.ResponseWriter, r *http.Request) {
	identity, _ := user.IdentityFrom(r.Context())
	var req CreateInvoiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	inv, err := h.service.CreateInvoice(r.Context(), identity.TenantID, req)
	if err != nil {
		respond(w, apperror.Status(err), map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusCreated, inv)
}

func (h *Handler) listInvoices(w http.ResponseWriter, r *http.Request) {
	identity, _ := user.IdentityFrom(r.Context())
	opts, err := query.ParseOptions(r.URL.Query(), "direction", "status", "counterparty_id")
	if err != nil {
		respond(w, apperror.Status(err), map[string]string{"error": err.Error()})
		return
	}
	page, err := h.service.ListInvoices(r.Context(), identity.TenantID, opts)
	if err != nil {
		respond(w, apperror.Status(err), map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, page)
}

func (h *Handler) getInvoice(w http.ResponseWriter, r *http.Request) {
	identity, _ := user.IdentityFrom(r.Context())
	inv, err := h.service.GetInvoice(r.Context(), identity.TenantID, chi.URLParam(r, "id"))
	if err != nil {
		respond(w, apperror.Status(err), map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, inv)
}

func (h *Handler) issueInvoice(w http.ResponseWriter, r *http.Request) {
	identity, _ := user.IdentityFrom(r.Context())
	inv, err := h.service.IssueInvoice(r.Context(), identity.TenantID, chi.URLParam(r, "id"))
	if err != nil {
		respond(w, apperror.Status(err), map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, inv)
}

func (h *Handler) markPaid(w http.ResponseWriter, r *http.Request) {
	identity, _ := user.IdentityFrom(r.Context())
	var req MarkPaidRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	inv, err := h.service.MarkInvoicePaid(r.Context(), identity.TenantID, chi.URLParam(r, "id"), req)
	if err != nil {
		respond(w, apperror.Status(err), map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, inv)
}

func (h *Handler) voidInvoice(w http.ResponseWriter, r *http.Request) {
	identity, _ := user.IdentityFrom(r.Context())
	inv, err := h.service.VoidInvoice(r.Context(), identity.TenantID, chi.URLParam(r, "id"))
	if err != nil {
		respond(w, apperror.Status(err), map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, inv)
}

func (h *Handler) summary(w http.ResponseWriter, r *http.Request) {
	identity, _ := user.IdentityFrom(r.Context())
	summary, err := h.service.Summary(r.Context(), identity.TenantID)
	if err != nil {
		respond(w, apperror.Status(err), map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, summary)
}

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
