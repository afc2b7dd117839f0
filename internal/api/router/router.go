package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/centerpulse/centerpulse/internal/api/handlers"
	"github.com/centerpulse/centerpulse/internal/api/middleware"
	"github.com/centerpulse/centerpulse/internal/config"
	"github.com/centerpulse/centerpulse/internal/pkg/logger"
	"github.com/centerpulse/centerpulse/internal/pkg/metrics"
)

type Handlers struct {
	Health   *handlers.HealthHandler
	Cron     *handlers.CronHandler
	Alert    *handlers.AlertHandler
	Rule     *handlers.RuleHandler
	Center   *handlers.CenterHandler
	Sales    *handlers.SalesHandler
	DealFlow *handlers.DealFlowHandler
}

func New(cfg *config.Config, log *logger.Logger, h *Handlers) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(log))
	r.Use(middleware.Recovery(log))
	r.Use(middleware.DefaultCORS(cfg.Server.FrontendURL))
	r.Use(metrics.Middleware)

	// Health and observability
	r.Get("/healthz", h.Health.Healthz)
	r.Get("/readyz", h.Health.Readyz)
	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	// Scheduled evaluation entry points. GET is kept alongside POST
	// because hosted cron services only issue GETs.
	r.Group(func(r chi.Router) {
		r.Use(middleware.CronAuth(cfg))

		r.Get("/api/cron/evaluate-alerts", h.Cron.EvaluateAlerts)
		r.Post("/api/cron/evaluate-alerts", h.Cron.EvaluateAlerts)
		r.Get("/api/cron/hourly-check", h.Cron.HourlyCheck)
		r.Post("/api/cron/hourly-check", h.Cron.HourlyCheck)
	})

	// Sent alert ledger
	r.Route("/api/alerts", func(r chi.Router) {
		r.Get("/", h.Alert.List)
		r.Get("/summary", h.Alert.GetSummary)
		r.Get("/{id}", h.Alert.Get)
		r.Patch("/{id}", h.Alert.Acknowledge)
	})

	// Deal flow ingestion
	r.Route("/api/deal-flow", func(r chi.Router) {
		r.Get("/", h.DealFlow.ListEntries)
		r.Post("/", h.DealFlow.CreateEntry)
		r.Post("/dq", h.DealFlow.CreateDQ)
	})

	// New sale announcements
	r.Post("/api/sales/notify", h.Sales.Notify)

	// Admin CRUD
	r.Route("/api/admin/alert-rules", func(r chi.Router) {
		r.Get("/", h.Rule.List)
		r.Post("/", h.Rule.Create)
		r.Get("/{id}", h.Rule.Get)
		r.Put("/{id}", h.Rule.Update)
		r.Delete("/{id}", h.Rule.Delete)
	})
	r.Route("/api/admin/centers", func(r chi.Router) {
		r.Get("/", h.Center.List)
		r.Post("/", h.Center.Create)
		r.Get("/{id}", h.Center.Get)
		r.Put("/{id}", h.Center.Update)
		r.Delete("/{id}", h.Center.Delete)
	})

	return r
}
