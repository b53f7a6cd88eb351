// cmd/api/main.go
package main

import (
	"log/slog"
	"net/http"
	"net/http/httputil"
	"net/url"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"

	"shelfkeeper/internal/httpx"
)

func main() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		slog.Error("failed to load .env", "error", err)
		os.Exit(1)
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	inventoryURL, err := url.Parse(getEnv("INVENTORY_SERVICE_URL", "http://localhost:8081"))
	if err != nil {
		logger.Error("invalid INVENTORY_SERVICE_URL", "error", err)
		os.Exit(1)
	}

	port := getEnv("PORT", "8080")
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           newGateway(inventoryURL, logger),
		ReadHeaderTimeout: 5 * time.Second,
	}
	logger.Info("API gateway listening", "port", port, "inventory", inventoryURL.String())
	if err := srv.ListenAndServe(); err != nil {
		logger.Error("gateway stopped", "error", err)
		os.Exit(1)
	}
}

// newGateway forwards /api/* to the inventory service with the prefix removed.
func newGateway(inventory *url.URL, logger *slog.Logger) http.Handler {
	proxy := httputil.NewSingleHostReverseProxy(inventory)
	proxy.ErrorHandler = func(w http.ResponseWriter, r *http.Request, err error) {
		logger.Warn("inventory service unreachable", "path", r.URL.Path, "error", err)
		httpx.JSON(w, http.StatusBadGateway, httpx.ErrorResponse{
			Error:     "inventory service unavailable",
			RequestID: middleware.GetReqID(r.Context()),
		})
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(httpx.AccessLog(logger))
	r.Use(middleware.Recoverer)
	r.Handle("/api/*", http.StripPrefix("/api", proxy))
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	return r
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
