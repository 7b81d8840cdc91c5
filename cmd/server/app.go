package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/diewo77/glasspro/auth"
	"github.com/diewo77/glasspro/httpx"
	"github.com/diewo77/glasspro/internal/config"
	"github.com/diewo77/glasspro/internal/handlers"
	"github.com/diewo77/glasspro/internal/metrics"
	"github.com/diewo77/glasspro/internal/services"
	"github.com/sirupsen/logrus"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/middleware/stdlib"
	"github.com/ulule/limiter/v3/drivers/store/memory"
)

// App is the main application handler that sets up all routes.
type App struct {
	mux     *http.ServeMux
	shop    *services.Shop
	log     logrus.FieldLogger
	metrics *metrics.Metrics
	cfg     *config.Config
	limit   func(http.Handler) http.Handler
}

// NewApp creates a new application with all routes configured.
func NewApp(cfg *config.Config, shop *services.Shop, log logrus.FieldLogger, m *metrics.Metrics) (*App, error) {
	rate, err := limiter.NewRateFromFormatted(cfg.Auth.LoginRate)
	if err != nil {
		return nil, fmt.Errorf("login rate %q: %w", cfg.Auth.LoginRate, err)
	}
	loginLimiter := stdlib.NewMiddleware(limiter.New(memory.NewStore(), rate),
		stdlib.WithLimitReachedHandler(func(w http.ResponseWriter, r *http.Request) {
			httpx.JSONError(w, http.StatusTooManyRequests, "too_many_requests", nil)
		}))

	// sessions stay valid only while the shop flag is up and the login matches
	auth.SetUserVerifier(func(_ context.Context, username string) bool {
		return shop.IsAuthenticated() && username == shop.Username()
	})

	app := &App{
		mux:     http.NewServeMux(),
		shop:    shop,
		log:     log,
		metrics: m,
		cfg:     cfg,
		limit:   loginLimiter.Handler,
	}
	app.setupRoutes()
	return app, nil
}

// ServeHTTP implements http.Handler.
func (a *App) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	handler := auth.Middleware(instrument(a.log, a.metrics, a.mux))
	handler.ServeHTTP(w, r)
}

// setupRoutes configures all application routes.
func (a *App) setupRoutes() {
	// ─────────────────────────────────────────────────────────────────────────
	// Public routes (no auth required)
	// ─────────────────────────────────────────────────────────────────────────
	ah := handlers.NewAuthHandler(a.shop, a.log)

	a.mux.HandleFunc("GET /health", a.health)
	a.mux.HandleFunc("GET /healthz", a.healthz)
	a.mux.Handle("GET /metrics", a.metrics.Handler())
	a.mux.Handle("POST /login", a.limit(http.HandlerFunc(ah.Login)))
	a.mux.HandleFunc("POST /logout", ah.Logout)
	a.mux.HandleFunc("GET /session", ah.Session)

	// ─────────────────────────────────────────────────────────────────────────
	// Authenticated routes
	// ─────────────────────────────────────────────────────────────────────────
	ih := handlers.NewInventoryHandler(a.shop, a.log)
	sh := handlers.NewServiceHandler(a.shop, a.log)
	wh := handlers.NewWorkerHandler(a.shop, a.log)
	dh := handlers.NewDocumentHandler(a.shop, a.log, a.metrics, a.cfg.App.Currency)
	rh := handlers.NewReportHandler(a.shop, a.log, a.cfg.App.Currency)
	seth := handlers.NewSettingsHandler(a.shop, a.log)

	a.handle("GET /dashboard", rh.Summary)

	// Inventory
	a.handle("GET /inventory", ih.List)
	a.handle("POST /inventory", ih.Create)
	a.handle("GET /inventory/{id}", ih.View)
	a.handle("POST /inventory/{id}", ih.Update)
	a.handle("POST /inventory/{id}/delete", ih.Delete)

	// Services
	a.handle("GET /services", sh.List)
	a.handle("POST /services", sh.Create)
	a.handle("POST /services/{id}/delete", sh.Delete)

	// Workers
	a.handle("GET /workers", wh.List)
	a.handle("POST /workers", wh.Create)
	a.handle("GET /workers/{id}", wh.View)
	a.handle("POST /workers/{id}", wh.Update)
	a.handle("POST /workers/{id}/delete", wh.Delete)
	a.handle("GET /workers/{id}/jobs", wh.Jobs)

	// Invoices & quotations
	a.handle("GET /documents", dh.List)
	a.handle("POST /documents", dh.Create)
	a.handle("GET /documents/{id}", dh.View)
	a.handle("POST /documents/{id}", dh.Update)
	a.handle("POST /documents/{id}/items", dh.AddItems)
	a.handle("POST /documents/{id}/items/{index}", dh.UpdateItem)
	a.handle("POST /documents/{id}/items/{index}/delete", dh.DeleteItem)
	a.handle("POST /documents/{id}/status", dh.SetStatus)
	a.handle("POST /documents/{id}/convert", dh.Convert)
	a.handle("POST /documents/{id}/assign", dh.Assign)
	a.handle("GET /documents/{id}/pdf", dh.PDF)

	// Reports
	a.handle("GET /reports/summary", rh.Summary)
	a.handle("GET /reports/export", rh.Export)

	// Shop settings
	a.handle("GET /settings", seth.View)
	a.handle("POST /settings", seth.Update)
}

func (a *App) handle(pattern string, h http.HandlerFunc) {
	a.mux.Handle(pattern, auth.RequireAuth(h))
}

// ─────────────────────────────────────────────────────────────────────────────
// Health
// ─────────────────────────────────────────────────────────────────────────────

func (a *App) health(w http.ResponseWriter, r *http.Request) {
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// healthz probes the backing store.
func (a *App) healthz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()
	if err := a.shop.Ping(ctx); err != nil {
		a.log.WithError(err).Warn("store ping failed")
		httpx.JSON(w, http.StatusServiceUnavailable, map[string]string{"status": "degraded"})
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
