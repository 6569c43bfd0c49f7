// Package httptransport is the thin HTTP layer. It delegates to domain
// services without embedding business logic so transport concerns remain
// isolated.
package httptransport

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"pawdesk/internal/printing"
	"pawdesk/internal/supplier"
	"pawdesk/internal/weather"
	audit "pawdesk/pkg/platform/audit"
	"pawdesk/pkg/platform/audit/store"
	adminmw "pawdesk/pkg/platform/middleware/admin"
	authmw "pawdesk/pkg/platform/middleware/auth"
	request "pawdesk/pkg/platform/middleware/request"
)

// Services bundles the domain services the router exposes.
type Services struct {
	Supplier *supplier.Service
	Weather  *weather.Service
	Printing *printing.Service
}

// Handler holds the dependencies of all HTTP endpoints.
type Handler struct {
	logger       *slog.Logger
	registry     *audit.Registry
	auditStore   store.Store
	auditMetrics *audit.Metrics
	services     Services
	recentLimit  int
	health       []HealthCheck
}

// HealthCheck is one named dependency probe for /healthz.
type HealthCheck struct {
	Name  string
	Check func(r *http.Request) error
}

// NewHandler creates the HTTP handler. auditStore, auditMetrics and health
// checks are optional.
func NewHandler(
	logger *slog.Logger,
	registry *audit.Registry,
	auditStore store.Store,
	auditMetrics *audit.Metrics,
	services Services,
	recentLimit int,
	health ...HealthCheck,
) *Handler {
	if recentLimit <= 0 {
		recentLimit = 20
	}
	return &Handler{
		logger:       logger,
		registry:     registry,
		auditStore:   auditStore,
		auditMetrics: auditMetrics,
		services:     services,
		recentLimit:  recentLimit,
		health:       health,
	}
}

// NewRouter wires all endpoints. Staff endpoints require a bearer token;
// the audit diagnostics surface requires the admin token.
func NewRouter(h *Handler, validator authmw.Validator, adminToken string) http.Handler {
	r := chi.NewRouter()
	r.Use(request.Recovery(h.logger))
	r.Use(request.RequestID)
	r.Use(request.Logger(h.logger))

	r.Get("/healthz", h.handleHealth)
	r.Handle("/metrics", promhttp.Handler())

	r.Group(func(r chi.Router) {
		r.Use(authmw.RequireAuth(validator, h.logger))
		r.Use(timeout(30 * time.Second))
		r.Get("/v1/suppliers", h.handleListSuppliers)
		r.Get("/v1/weather", h.handleForecast)
		r.Post("/v1/labels", h.handleRenderLabel)
	})

	r.Route("/admin/audit", func(r chi.Router) {
		r.Use(adminmw.RequireAdminToken(adminToken, h.logger))
		r.Get("/categories", h.handleCategories)
		r.Get("/{category}/recent", h.handleRecent)
		r.Get("/{category}/export", h.handleExport)
		r.Get("/{category}/history", h.handleHistory)
	})

	return r
}

func timeout(d time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.TimeoutHandler(next, d, `{"error":"timeout"}`)
	}
}
