// cmd/inventory/routes.go
package main

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel/trace"

	"shelfkeeper/internal/catalog"
	"shelfkeeper/internal/httpx"
	"shelfkeeper/internal/lookup"
	"shelfkeeper/internal/query"
	"shelfkeeper/internal/reports"
	"shelfkeeper/internal/storage"
)

func (app *application) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(routeSpanName)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(httpx.AccessLog(app.logger))
	r.Use(middleware.Recoverer)
	r.Use(httpx.CORS(app.config.CORSOrigins))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Get("/readyz", app.handleReady)

	r.Group(func(r chi.Router) {
		if app.config.RateLimitRPS > 0 {
			r.Use(httpx.NewRateLimiter(app.config.RateLimitRPS, app.config.RateLimitBurst).Middleware)
		}
		storage.NewHandler(app.inventory.Storage, app.logger).Routes(r)
		catalog.NewHandler(app.inventory.Catalog, query.Apply, app.logger).Routes(r)
		lookup.NewHandler(app.lookup, app.logger).Routes(r)
		reports.NewHandler(app.inventory.Snapshots, app.auditor, app.logger).Routes(r)
	})
	return otelhttp.NewHandler(r, "inventory")
}

// routeSpanName names the request span after the matched route pattern.
func routeSpanName(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(w, r)
		if pattern := chi.RouteContext(r.Context()).RoutePattern(); pattern != "" {
			trace.SpanFromContext(r.Context()).SetName(r.Method + " " + pattern)
		}
	})
}

func (app *application) handleReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()
	if err := app.inventory.Ping(ctx); err != nil {
		app.logger.Warn("readiness check failed", "error", err)
		httpx.JSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "ready"})
}
