package main

import (
	"context"
	"database/sql"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"

	"github.com/corehr/corehr-backend/internal/logger"
	"github.com/corehr/corehr-backend/internal/modules/auth"
	"github.com/corehr/corehr-backend/internal/modules/employee"
	"github.com/corehr/corehr-backend/internal/modules/finance"
	"github.com/corehr/corehr-backend/internal/modules/leave"
	"github.com/corehr/corehr-backend/internal/modules/recruitment"
	"github.com/corehr/corehr-backend/internal/modules/user"
)

func main() {
	logger.Init()

	if err := godotenv.Load(); err != nil {
		log.Warn().Msg("no .env file found, using environment as-is")
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		log.Fatal().Msg("JWT_SECRET must be set")
	}

	// ── Storage ──────────────────────────────────────────────
	// In-memory stores by default; the recruitment family switches to
	// PostgreSQL when DATABASE_URL is set.
	postingRepo := recruitment.NewMemoryPostingRepository()
	applicationRepo := recruitment.NewMemoryApplicationRepository()

	if dsn := os.Getenv("DATABASE_URL"); dsn != "" {
		db, err := sql.Open("postgres", dsn)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to open database")
		}
		defer db.Close()
		if err := db.Ping(); err != nil {
			log.Fatal().Err(err).Msg("failed to reach database")
		}
		postingRepo = recruitment.NewPostgresPostingRepository(db)
		applicationRepo = recruitment.NewPostgresApplicationRepository(db)
		log.Info().Msg("recruitment storage: postgres")
	} else {
		log.Info().Msg("recruitment storage: in-memory")
	}

	userRepo := user.NewMemoryRepository()
	employeeRepo := employee.NewMemoryRepository()
	leaveRepo := leave.NewMemoryRepository()
	customerRepo := finance.NewMemoryCustomerRepository()
	vendorRepo := finance.NewMemoryVendorRepository()
	invoiceRepo := finance.NewMemoryInvoiceRepository()

	// ── Router ──────────────────────────────────────────────
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Recoverer)
	router.Use(logger.RequestLogger)

	// ── Identity ────────────────────────────────────────────
	userService := user.NewService(userRepo)
	seedAdmin(userService)
	authService := auth.NewService(userRepo, []byte(jwtSecret))
	auth.NewHandler(authService).RegisterRoutes(router)

	// ── Protected API ───────────────────────────────────────
	router.Group(func(r chi.Router) {
		r.Use(auth.Authenticator([]byte(jwtSecret)))

		user.NewHandler(userService).RegisterRoutes(r)

		recruitmentService := recruitment.NewService(postingRepo, applicationRepo)
		recruitment.NewHandler(recruitmentService).RegisterRoutes(r)

		employeeService := employee.NewService(employeeRepo)
		employee.NewHandler(employeeService).RegisterRoutes(r)

		leaveService := leave.NewService(leaveRepo, employeeRepo)
		leave.NewHandler(leaveService).RegisterRoutes(r)

		financeService := finance.NewService(customerRepo, vendorRepo, invoiceRepo)
		finance.NewHandler(financeService).RegisterRoutes(r)
	})

	// ── Start Server ─────────────────────────────────────────
	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "8080"
	}
	log.Info().Str("port", port).Msg("corehr API server starting")
	if err := http.ListenAndServe(":"+port, router); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

// seedAdmin creates the first admin account from the environment.
// Registration itself is admin-only, so a fresh deployment needs this
// bootstrap to mint its first token.
func seedAdmin(users user.Service) {
	email := os.Getenv("ADMIN_EMAIL")
	password := os.Getenv("ADMIN_PASSWORD")
	if email == "" || password == "" {
		log.Warn().Msg("ADMIN_EMAIL/ADMIN_PASSWORD not set, no admin account seeded")
		return
	}
	tenantID := os.Getenv("ADMIN_TENANT_ID")
	if tenantID == "" {
		tenantID = uuid.NewString()
	}

	u, err := users.RegisterUser(context.Background(), tenantID, user.RegisterRequest{
		Email:    email,
		Password: password,
		Role:     string(user.RoleAdmin),
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to seed admin account")
	}
	log.Info().Str("email", u.Email).Str("tenant_id", u.TenantID.String()).Msg("seeded admin account")
}
