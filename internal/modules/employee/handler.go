package employee

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/corehr/corehr-backend/internal/apperror"
	"github.com/corehr/corehr-backend/internal/modules/user"
	"github.com/corehr/corehr-backend/internal/query"
)

// Handler exposes employee HTTP endpoints.
type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

func (h *Handler) RegisterRoutes(router chi.Router) {
	router.Route("/api/v1/employees", func(r chi.Router) {
		r.Use(user.RequireRoles(user.RoleAdmin, user.RoleHRManager))
		r.Post("/", h.createEmployee)              // POST  /api/v1/employees
		r.Get("/", h.listEmployees)                // GET   /api/v1/employees?department=Engineering&search=jane
		r.Get("/{id}", h.getEmployee)              // GET   /api/v1/employees/{id}
		r.Patch("/{id}", h.updateEmployee)         // PATCH /api/v1/employees/{id}
		r.Post("/{id}/terminate", h.terminate)     // POST  /api/v1/employees/{id}/terminate
	})
}

func (h *Handler) createEmployee(w http.ResponseWriter, r *http.Request) {
	identity, _ := user.IdentityFrom(r.Context())
	var req CreateEmployeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	e, err := h.service.CreateEmployee(r.Context(), identity.TenantID, req)
	if err != nil {
		respond(w, apperror.Status(err), map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusCreated, e)
}

func (h *Handler) listEmployees(w http.ResponseWriter, r *http.Request) {
	identity, _ := user.IdentityFrom(r.Context())
	opts, err := query.ParseOptions(r.URL.Query(), "status", "department", "employment_type")
	if err != nil {
		respond(w, apperror.Status(err), map[string]string{"error": err.Error()})
		return
	}
	page, err := h.service.ListEmployees(r.Context(), identity.TenantID, opts)
	if err != nil {
		respond(w, apperror.Status(err), map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, page)
}

func (h *Handler) getEmployee(w http.ResponseWriter, r *http.Request) {
	identity, _ := user.IdentityFrom(r.Context())
	e, err := h.service.GetEmployee(r.Context(), identity.TenantID, chi.URLParam(r, "id"))
	if err != nil {
		respond(w, apperror.Status(err), map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, e)
}

func (h *Handler) updateEmployee(w http.ResponseWriter, r *http.Request) {
	identity, _ := user.IdentityFrom(r.Context())
	var req UpdateEmployeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	e, err := h.service.UpdateEmployee(r.Context(), identity.TenantID, chi.URLParam(r, "id"), req)
	if err != nil {
		respond(w, apperror.Status(err), map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, e)
}

func (h *Handler) terminate(w http.ResponseWriter, r *http.Request) {
	identity, _ := user.IdentityFrom(r.Context())
	e, err := h.service.TerminateEmployee(r.Context(), identity.TenantID, chi.URLParam(r, "id"))
	if err != nil {
		respond(w, apperror.Status(err), map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, e)
}

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
