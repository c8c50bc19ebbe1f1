package router

import (
	"encoding/json"
	"net/http"

	"github.com/axo-networks/marketplace-api/internal/auth"
	"github.com/axo-networks/marketplace-api/internal/config"
	"github.com/axo-networks/marketplace-api/internal/domain"
	"github.com/axo-networks/marketplace-api/internal/http/handler"
	"github.com/axo-networks/marketplace-api/internal/http/middleware"
	"github.com/axo-networks/marketplace-api/internal/telemetry"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.uber.org/zap"

	_ "github.com/axo-networks/marketplace-api/docs" // Import generated swagger docs
)

// Handlers groups the HTTP handlers mounted by the router
type Handlers struct {
	Auth         *handler.AuthHandler
	Dashboard    *handler.DashboardHandler
	Manufacturer *handler.ManufacturerHandler
	Supplier     *handler.SupplierHandler
	File         *handler.FileHandler
	Health       *handler.HealthHandler
}

type Router struct {
	cfg            *config.Config
	logger         *zap.Logger
	authMiddleware *auth.Middleware
	rateLimiter    *middleware.RateLimiter
	handlers       Handlers
}

func NewRouter(
	cfg *config.Config,
	logger *zap.Logger,
	authMiddleware *auth.Middleware,
	rateLimiter *middleware.RateLimiter,
	handlers Handlers,
) *Router {
	return &Router{
		cfg:            cfg,
		logger:         logger,
		authMiddleware: authMiddleware,
		rateLimiter:    rateLimiter,
		handlers:       handlers,
	}
}

var (
	manufacturerRoles = []domain.UserType{domain.UserTypeManufacturer, domain.UserTypeOEM}
	buyerRoles        = []domain.UserType{domain.UserTypeBuyer, domain.UserTypeBoth}
	supplierRoles     = []domain.UserType{domain.UserTypeSupplier}
)

func (rt *Router) Setup() http.Handler {
	r := chi.NewRouter()
	h := rt.handlers

	// Global middleware
	r.Use(middleware.Logging(rt.logger))
	r.Use(middleware.Recovery(rt.logger))
	if rt.cfg.Server.EnableMetrics {
		r.Use(telemetry.InstrumentHandler)
	}
	r.Use(middleware.SecurityHeaders(&rt.cfg.Security))
	r.Use(middleware.CORS(&rt.cfg.CORS, rt.cfg.App.Environment, rt.logger))
	r.Use(rt.rateLimiter.LimitByIP)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "Route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
	})

	if rt.cfg.Server.EnableMetrics {
		r.Method(http.MethodGet, "/metrics", telemetry.Handler())
	}

	// Swagger documentation
	if rt.cfg.Server.EnableSwagger {
		r.Get("/swagger/*", httpSwagger.Handler(
			httpSwagger.URL("/swagger/doc.json"),
		))
	}

	r.Route("/api", func(r chi.Router) {
		if timeout := rt.cfg.Server.RequestTimeoutDuration(); timeout > 0 {
			r.Use(chimiddleware.Timeout(timeout))
		}

		r.Get("/_health", h.Health.Health)
		r.Get("/_health/db", h.Health.Database)

		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", h.Auth.Register)
			r.Post("/login", h.Auth.Login)
			r.Post("/force-reset-password", h.Auth.ForceResetPassword)
			r.Post("/check", h.Auth.Check)
			r.With(rt.authMiddleware.Authenticate, middleware.CaptureIdentity).Get("/me", h.Auth.Me)
		})

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(rt.authMiddleware.Authenticate)
			r.Use(middleware.CaptureIdentity)
			r.Use(rt.rateLimiter.LimitByUser)

			r.Route("/dashboard", func(r chi.Router) {
				r.Get("/data", h.Dashboard.GetData)
				r.Get("/profile", h.Dashboard.GetProfile)
				r.Put("/profile", h.Dashboard.UpdateProfile)
				r.Post("/demand/{id}/action", h.Dashboard.DemandAction)

				r.Post("/design-files", h.File.Upload)
				r.Get("/design-files/*", h.File.Download)

				r.With(rt.authMiddleware.RequireRole(manufacturerRoles...)).
					Post("/sourcing-request", h.Dashboard.CreateSourcingRequest)

				r.Group(func(r chi.Router) {
					r.Use(rt.authMiddleware.RequireRole(buyerRoles...))
					r.Post("/demand-listing", h.Dashboard.CreateDemandListing)
					r.Get("/demand-listings", h.Dashboard.ListDemandListings)
					r.Put("/demand-listing/{id}", h.Dashboard.UpdateDemandListing)
				})
			})

			r.Route("/manufacturer", func(r chi.Router) {
				r.Use(rt.authMiddleware.RequireRole(manufacturerRoles...))
				r.Get("/programs", h.Manufacturer.ListPrograms)
				r.Post("/programs", h.Manufacturer.CreateProgram)
				r.Put("/programs/{id}", h.Manufacturer.UpdateProgram)
				r.Get("/sourcing-requests", h.Manufacturer.ListSourcingRequests)
				r.Put("/sourcing-requests/{id}", h.Manufacturer.UpdateSourcingRequest)
				r.Get("/available-demand", h.Manufacturer.AvailableDemand)
				r.Get("/metrics", h.Manufacturer.GetMetrics)
			})

			r.Route("/supplier", func(r chi.Router) {
				r.Use(rt.authMiddleware.RequireRole(supplierRoles...))
				r.Get("/programs", h.Supplier.ListPrograms)
				r.Get("/available-demand", h.Supplier.AvailableDemand)
				r.Get("/demand/{id}", h.Supplier.GetDemand)
				r.Post("/demand/{id}/quote", h.Supplier.SubmitQuote)
				r.Put("/profile", h.Supplier.UpdateProfile)
			})
		})
	})

	return r
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(domain.ErrorResponse{Error: message})
}
