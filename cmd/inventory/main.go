// cmd/inventory/main.go
package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"shelfkeeper/internal/audit"
	"shelfkeeper/internal/config"
	"shelfkeeper/internal/inventory"
	"shelfkeeper/internal/lookup"
	"shelfkeeper/internal/seed"
	"shelfkeeper/internal/telemetry"
)

type application struct {
	config    *config.Config
	logger    *slog.Logger
	inventory *inventory.Inventory
	lookup    lookup.Service
	auditor   *audit.Auditor
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))

	ctx := context.Background()
	shutdownTracing, err := telemetry.Setup(ctx, cfg.OTLPEndpoint)
	if err != nil {
		logger.Error("failed to set up tracing", "error", err)
		os.Exit(1)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(ctx); err != nil {
			logger.Warn("failed to flush traces", "error", err)
		}
	}()

	app, err := newApplication(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to start", "error", err)
		os.Exit(1)
	}
	defer app.inventory.Close()

	if cfg.SeedDir != "" {
		res, err := seed.NewLoader(app.inventory.Storage, app.inventory.Catalog, logger).LoadDir(ctx, cfg.SeedDir)
		if err != nil {
			logger.Error("failed to load seed data", "dir", cfg.SeedDir, "error", err)
			os.Exit(1)
		}
		logger.Info("seed data loaded", "dir", cfg.SeedDir, "placards", res.Placards, "shelves", res.Shelves, "books", res.Books, "skipped", res.Skipped)
	}

	if err := app.serve(); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}

func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*application, error) {
	inv, err := inventory.Open(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	providers, err := inventory.Providers(cfg)
	if err != nil {
		inv.Close()
		return nil, err
	}

	auditor := audit.NewAuditor()
	auditor.RegisterDefaults()

	return &application{
		config:    cfg,
		logger:    logger,
		inventory: inv,
		lookup:    lookup.NewService(providers, inv.Storage, cfg.LookupTimeout, logger),
		auditor:   auditor,
	}, nil
}
