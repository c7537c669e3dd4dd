package recruitment

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/corehr/corehr-backend/internal/apperror"
	"github.com/corehr/corehr-backend/internal/modules/user"
	"github.com/corehr/corehr-backend/internal/query"
)

// Handler exposes recruitment HTTP endpoints.
type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

func (h *Handler) RegisterRoutes(router chi.Router) {
	router.Route("/api/v1/recruitment", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(user.RequireRoles(user.RoleAdmin, user.RoleHRManager, user.RoleRecruiter))
			r.Post("/jobs", h.createPosting)                        // POST  /api/v1/recruitment/jobs
			r.Get("/jobs", h.listPostings)                          // GET   /api/v1/recruitment/jobs?status=published&search=engineer
			r.Get("/jobs/{id}", h.getPosting)                       // GET   /api/v1/recruitment/jobs/{id}
			r.Patch("/jobs/{id}", h.updatePosting)                  // PATCH /api/v1/recruitment/jobs/{id}
			r.Post("/jobs/{id}/publish", h.publishPosting)          // POST  /api/v1/recruitment/jobs/{id}/publish
			r.Post("/jobs/{id}/close", h.closePosting)              // POST  /api/v1/recruitment/jobs/{id}/close
			r.Get("/jobs/{id}/applications", h.listApplications)    // GET   /api/v1/recruitment/jobs/{id}/applications
			r.Get("/jobs/{id}/pipeline", h.pipelineSummary)         // GET   /api/v1/recruitment/jobs/{id}/pipeline
			r.Post("/applications/{id}/shortlist", h.shortlist)     // POST  /api/v1/recruitment/applications/{id}/shortlist
			r.Post("/applications/{id}/reject", h.rejectApplicant)  // POST  /api/v1/recruitment/applications/{id}/reject
			r.Post("/bulk", h.bulkAction)                           // POST  /api/v1/recruitment/bulk
		})
		// Application intake is role-agnostic: the career-portal proxy
		// submits on behalf of candidates.
		r.Post("/jobs/{id}/applications", h.submitApplication)
	})
}

func (h *Handler) createPosting(w http.ResponseWriter, r *http.Request) {
	identity, _ := user.IdentityFrom(r.Context())
	var req CreatePostingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	p, err := h.service.CreateJobPosting(r.Context(), identity.TenantID, req, identity.UserID)
	if err != nil {
		respond(w, apperror.Status(err), map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusCreated, p)
}

func (h *Handler) listPostings(w http.ResponseWriter, r *http.Request) {
	identity, _ := user.IdentityFrom(r.Context())
	opts, err := query.ParseOptions(r.URL.Query(), "status", "employment_type", "work_arrangement")
	if err != nil {
		respond(w, apperror.Status(err), map[string]string{"error": err.Error()})
		return
	}
	page, err := h.service.ListJobPostings(r.Context(), identity.TenantID, opts)
	if err != nil {
		respond(w, apperror.Status(err), map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, page)
}

func (h *Handler) getPosting(w http.ResponseWriter, r *http.Request) {
	identity, _ := user.IdentityFrom(r.Context())
	p, err := h.service.GetJobPosting(r.Context(), identity.TenantID, chi.URLParam(r, "id"))
	if err != nil {
		respond(w, apperror.Status(err), map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, p)
}

func (h *Handler) updatePosting(w http.ResponseWriter, r *http.Request) {
	identity, _ := user.IdentityFrom(r.Context())
	var req UpdatePostingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	p, err := h.service.UpdateJobPosting(r.Context(), identity.TenantID, chi.URLParam(r, "id"), req)
	if err != nil {
		respond(w, apperror.Status(err), map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, p)
}

func (h *Handler) publishPosting(w http.ResponseWriter, r *http.Request) {
	identity, _ := user.IdentityFrom(r.Context())
	p, err := h.service.PublishJobPosting(r.Context(), identity.TenantID, chi.URLParam(r, "id"))
	if err != nil {
		respond(w, apperror.Status(err), map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, p)
}

func (h *Handler) closePosting(w http.ResponseWriter, r *http.Request) {
	identity, _ := user.IdentityFrom(r.Context())
	p, err := h.service.CloseJobPosting(r.Context(), identity.TenantID, chi.URLParam(r, "id"))
	if err != nil {
		respond(w, apperror.Status(err), map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, p)
}

func (h *Handler) submitApplication(w http.ResponseWriter, r *http.Request) {
	var req SubmitApplicationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	a, err := h.service.SubmitApplication(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		respond(w, apperror.Status(err), map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusCreated, a)
}

func (h *Handler) listApplications(w http.ResponseWriter, r *http.Request) {
	identity, _ := user.IdentityFrom(r.Context())
	opts, err := query.ParseOptions(r.URL.Query(), "status")
	if err != nil {
		respond(w, apperror.Status(err), map[string]string{"error": err.Error()})
		return
	}
	page, err := h.service.ListApplications(r.Context(), identity.TenantID, chi.URLParam(r, "id"), opts)
	if err != nil {
		respond(w, apperror.Status(err), map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, page)
}

func (h *Handler) shortlist(w http.ResponseWriter, r *http.Request) {
	identity, _ := user.IdentityFrom(r.Context())
	a, err := h.service.ShortlistApplication(r.Context(), identity.TenantID, chi.URLParam(r, "id"))
	if err != nil {
		respond(w, apperror.Status(err), map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, a)
}

func (h *Handler) rejectApplicant(w http.ResponseWriter, r *http.Request) {
	identity, _ := user.IdentityFrom(r.Context())
	a, err := h.service.RejectApplication(r.Context(), identity.TenantID, chi.URLParam(r, "id"))
	if err != nil {
		respond(w, apperror.Status(err), map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, a)
}

func (h *Handler) bulkAction(w http.ResponseWriter, r *http.Request) {
	identity, _ := user.IdentityFrom(r.Context())
	var req BulkActionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	result, err := h.service.BulkAction(r.Context(), identity.TenantID, req)
	if err != nil {
		respond(w, apperror.Status(err), map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, result)
}

func (h *Handler) pipelineSummary(w http.ResponseWriter, r *http.Request) {
	identity, _ := user.IdentityFrom(r.Context())
	summary, err := h.service.PipelineSummary(r.Context(), identity.TenantID, chi.URLParam(r, "id"))
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
