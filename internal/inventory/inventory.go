// internal/inventory/inventory.go

// Package inventory assembles the storage and book catalogs over the
// configured store, for the server and the operator CLI alike.
package inventory

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"shelfkeeper/internal/catalog"
	"shelfkeeper/internal/clients"
	"shelfkeeper/internal/config"
	"shelfkeeper/internal/database"
	"shelfkeeper/internal/eventstore"
	"shelfkeeper/internal/lookup"
	"shelfkeeper/internal/snapshot"
	"shelfkeeper/internal/storage"
)

const connectTimeout = 30 * time.Second

// Inventory holds the wired services.
type Inventory struct {
	db *sql.DB

	Storage   storage.Service
	Catalog   catalog.Service
	History   eventstore.Recorder
	Snapshots snapshot.Source
}

// Open connects to the configured store, migrating Postgres, and wires the services.
func Open(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Inventory, error) {
	if cfg.StoreDriver == config.DriverMemory {
		logger.Warn("using in-memory store; data is lost on exit")
		return wire(nil, storage.NewMemoryRepository(), catalog.NewMemoryRepository(), eventstore.NewMemoryStore(), logger), nil
	}

	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()
	db, err := database.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}
	if err := database.Migrate(ctx, db); err != nil {
		db.Close()
		return nil, err
	}
	return wire(db,
		storage.NewPostgresRepository(db),
		catalog.NewPostgresRepository(db),
		eventstore.NewEventStore(db),
		logger,
	), nil
}

func wire(db *sql.DB, units storage.Repository, books catalog.Repository, history eventstore.Recorder, logger *slog.Logger) *Inventory {
	storageSvc := storage.NewService(units, books, history, logger)
	catalogSvc := catalog.NewService(books, storageSvc, history, logger)
	return &Inventory{
		db:        db,
		Storage:   storageSvc,
		Catalog:   catalogSvc,
		History:   history,
		Snapshots: snapshot.Source{Units: storageSvc, Books: catalogSvc},
	}
}

// Ping checks the store. The memory store is always ready.
func (inv *Inventory) Ping(ctx context.Context) error {
	if inv.db == nil {
		return nil
	}
	return inv.db.PingContext(ctx)
}

func (inv *Inventory) Close() error {
	if inv.db == nil {
		return nil
	}
	return inv.db.Close()
}

// Providers builds the upstream catalogs named in cfg, in order.
func Providers(cfg *config.Config) ([]lookup.Provider, error) {
	opts := []clients.Option{clients.WithTimeout(cfg.LookupTimeout), clients.WithRate(cfg.LookupRPS)}
	var providers []lookup.Provider
	for _, name := range cfg.LookupProviders {
		switch name {
		case "openlibrary":
			providers = append(providers, clients.NewOpenLibraryClient(opts...))
		case "googlebooks":
			providers = append(providers, clients.NewGoogleBooksClient(cfg.GoogleBooksAPIKey, opts...))
		default:
			return nil, fmt.Errorf("unknown lookup provider %q", name)
		}
	}
	return providers, nil
}
