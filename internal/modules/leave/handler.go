package leave

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/corehr/corehr-backend/internal/apperror"
	"github.com/corehr/corehr-backend/internal/modules/user"
	"github.com/corehr/corehr-backend/internal/query"
)

// Handler exposes leave HTTP endpoints.
type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

func (h *Handler) RegisterRoutes(router chi.Router) {
	router.Route("/api/v1/leave", func(r chi.Router) {
		r.Post("/", h.submitRequest)       // POST /api/v1/leave
		r.Get("/", h.listRequests)         // GET  /api/v1/leave?status=pending&type=annual
		r.Get("/{id}", h.getRequest)       // GET  /api/v1/leave/{id}
		r.Post("/{id}/cancel", h.cancel)   // POST /api/v1/leave/{id}/cancel

		r.Group(func(r chi.Router) {
			r.Use(user.RequireRoles(user.RoleAdmin, user.RoleHRManager))
			r.Post("/{id}/approve", h.approve) // POST /api/v1/leave/{id}/approve
			r.Post("/{id}/reject", h.reject)   // POST /api/v1/leave/{id}/reject
		})
	})
}

func (h *Handler) submitRequest(w http.ResponseWriter, r *http.Request) {
	identity, _ := user.IdentityFrom(r.Context())
	var req SubmitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	created, err := h.service.SubmitRequest(r.Context(), identity.TenantID, req)
	if err != nil {
		respond(w, apperror.Status(err), map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusCreated, created)
}

func (h *Handler) listRequests(w http.ResponseWriter, r *http.Request) {
	identity, _ := user.IdentityFrom(r.Context())
	opts, err := query.ParseOptions(r.URL.Query(), "status", "type", "employee_id")
	if err != nil {
		respond(w, apperror.Status(err), map[string]string{"error": err.Error()})
		return
	}
	page, err := h.service.ListRequests(r.Context(), identity.TenantID, opts)
	if err != nil {
		respond(w, apperror.Status(err), map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, page)
}

func (h *Handler) getRequest(w http.ResponseWriter, r *http.Request) {
	identity, _ := user.IdentityFrom(r.Context())
	req, err := h.service.GetRequest(r.Context(), identity.TenantID, chi.URLParam(r, "id"))
	if err != nil {
		respond(w, apperror.Status(err), map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, req)
}

func (h *Handler) approve(w http.ResponseWriter, r *http.Request) {
	h.decideRequest(w, r, true)
}

func (h *Handler) reject(w http.ResponseWriter, r *http.Request) {
	h.decideRequest(w, r, false)
}

func (h *Handler) decideRequest(w http.ResponseWriter, r *http.Request, approve bool) {
	identity, _ := user.IdentityFrom(r.Context())
	var req DecisionRequest
	if r.Body != nil {
		// A decision note is optional; an empty body is fine.
		json.NewDecoder(r.Body).Decode(&req)
	}

	var (
		decided *Request
		err     error
	)
	if approve {
		decided, err = h.service.ApproveRequest(r.Context(), identity.TenantID, chi.URLParam(r, "id"), identity.UserID, req)
	} else {
		decided, err = h.service.RejectRequest(r.Context(), identity.TenantID, chi.URLParam(r, "id"), identity.UserID, req)
	}
	if err != nil {
		respond(w, apperror.Status(err), map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, decided)
}

func (h *Handler) cancel(w http.ResponseWriter, r *http.Request) {
	identity, _ := user.IdentityFrom(r.Context())
	req, err := h.service.CancelRequest(r.Context(), identity.TenantID, chi.URLParam(r, "id"))
	if err != nil {
		respond(w, apperror.Status(err), map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, req)
}

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
