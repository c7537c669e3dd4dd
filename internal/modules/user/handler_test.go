package user

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

func newTestRouter(identity Identity) *chi.Mux {
	handler := NewHandler(NewService(NewMemoryRepository()))
	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			next.ServeHTTP(w, req.WithContext(WithIdentity(req.Context(), identity)))
		})
	})
	handler.RegisterRoutes(r)
	return r
}

func adminIdentity() Identity {
	return Identity{
		UserID:   uuid.New().String(),
		TenantID: uuid.New().String(),
		Role:     RoleAdmin,
	}
}

func TestRegisterIsAdminOnlyHTTP(t *testing.T) {
	identity := adminIdentity()
	identity.Role = RoleEmployee
	r := newTestRouter(identity)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/v1/users/register",
		strings.NewReader(`{"email":"mallory@example.com","password":"long-enough-pass","role":"admin"}`))
	r.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Errorf("employee registering an account: status = %d, want 403", w.Code)
	}
}

func TestRegisterScopesAccountToCallerTenantHTTP(t *testing.T) {
	identity := adminIdentity()
	r := newTestRouter(identity)

	// A tenant_id in the body must be ignored, never honored.
	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/v1/users/register",
		strings.NewReader(`{"email":"bob@example.com","password":"long-enough-pass","tenant_id":"`+uuid.New().String()+`"}`))
	r.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	var created User
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatal(err)
	}
	if created.TenantID.String() != identity.TenantID {
		t.Errorf("created tenant = %s, want caller's %s", created.TenantID, identity.TenantID)
	}
}

func TestGetUserCrossTenantHTTP(t *testing.T) {
	service := NewService(NewMemoryRepository())
	handler := NewHandler(service)
	admin := adminIdentity()

	w := httptest.NewRecorder()
	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			next.ServeHTTP(w, req.WithContext(WithIdentity(req.Context(), admin)))
		})
	})
	handler.RegisterRoutes(r)

	req := httptest.NewRequest("POST", "/api/v1/users/register",
		strings.NewReader(`{"email":"alice@example.com","password":"long-enough-pass"}`))
	r.ServeHTTP(w, req)
	if w.Code != http.StatusCreated {
		t.Fatalf("register status = %d", w.Code)
	}
	var created User
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatal(err)
	}

	// A caller from another tenant sees not-found, not the record.
	outsider := adminIdentity()
	r2 := chi.NewRouter()
	r2.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			next.ServeHTTP(w, req.WithContext(WithIdentity(req.Context(), outsider)))
		})
	})
	handler.RegisterRoutes(r2)

	w = httptest.NewRecorder()
	req = httptest.NewRequest("GET", "/api/v1/users/"+created.ID.String(), nil)
	r2.ServeHTTP(w, req)
	if w.Code != http.StatusNotFound {
		t.Errorf("cross-tenant get: status = %d, want 404", w.Code)
	}

	w = httptest.NewRecorder()
	req = httptest.NewRequest("GET", "/api/v1/users/"+created.ID.String(), nil)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Errorf("same-tenant get: status = %d, want 200", w.Code)
	}
}

func TestRequireRoles(t *testing.T) {
	allow := RequireRoles(RoleAdmin, RoleHRManager)
	handler := allow(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	serve := func(identity *Identity) int {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if identity != nil {
			req = req.WithContext(WithIdentity(req.Context(), *identity))
		}
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec.Code
	}

	if code := serve(&Identity{Role: RoleHRManager}); code != http.StatusNoContent {
		t.Errorf("allowed role: status = %d", code)
	}
	if code := serve(&Identity{Role: RoleEmployee}); code != http.StatusForbidden {
		t.Errorf("disallowed role: status = %d", code)
	}
	if code := serve(nil); code != http.StatusUnauthorized {
		t.Errorf("no identity: status = %d", code)
	}
}
