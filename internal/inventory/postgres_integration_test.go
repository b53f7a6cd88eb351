//go:build integration

// internal/inventory/postgres_integration_test.go
package inventory

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"shelfkeeper/internal/apperr"
	"shelfkeeper/internal/catalog"
	"shelfkeeper/internal/config"
	"shelfkeeper/internal/database"
	"shelfkeeper/internal/storage"
	"shelfkeeper/internal/validator"
)

func openPostgres(t *testing.T) *Inventory {
	t.Helper()
	ctx := context.Background()

	pg, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("shelfkeeper"),
		postgres.WithUsername("shelfkeeper"),
		postgres.WithPassword("shelfkeeper"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := pg.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	dsn, err := pg.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	inv, err := Open(ctx, &config.Config{StoreDriver: config.DriverPostgres, DatabaseURL: dsn}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	t.Cleanup(func() { inv.Close() })

	require.NoError(t, database.Migrate(ctx, inv.db), "schema must apply twice")
	return inv
}

func TestPostgresInventory(t *testing.T) {
	ctx := context.Background()
	inv := openPostgres(t)
	require.NoError(t, inv.Ping(ctx))

	capacity := 2
	unit, err := inv.Storage.CreateUnit(ctx, storage.UnitInput{Name: "A", StorageType: storage.TypeBookcase})
	require.NoError(t, err)
	_, err = inv.Storage.CreateUnit(ctx, storage.UnitInput{Name: "A"})
	var verr *validator.ValidationError
	require.ErrorAs(t, err, &verr)

	for _, name := range []string{"10", "2", "1"} {
		_, err := inv.Storage.CreateShelf(ctx, storage.ShelfInput{Name: name, PlacardName: "A", Capacity: &capacity})
		require.NoError(t, err)
	}
	shelves, err := inv.Storage.ListShelves(ctx, "A")
	require.NoError(t, err)
	require.Len(t, shelves, 3)
	assert.Equal(t, []string{"1", "2", "10"}, []string{shelves[0].Name, shelves[1].Name, shelves[2].Name})
	require.NotNil(t, shelves[0].Capacity)
	assert.Nil(t, shelves[0].Position)

	year := 1943
	book, err := inv.Catalog.CreateBook(ctx, catalog.BookInput{
		Title: "Le Petit Prince", Author: "Saint-Exupéry", Placard: "A", Shelf: "1", PublicationYear: &year,
	})
	require.NoError(t, err)

	got, err := inv.Catalog.GetBook(ctx, book.ID)
	require.NoError(t, err)
	assert.Equal(t, 1943, *got.PublicationYear)
	assert.Nil(t, got.Pages)
	assert.Equal(t, catalog.StatusAvailable, got.Status)

	status := catalog.StatusBorrowed
	_, err = inv.Catalog.UpdateBook(ctx, book.ID, catalog.BookUpdate{Status: &status})
	require.NoError(t, err)

	events, err := inv.Catalog.History(ctx, book.ID)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "BookAdded", events[0].EventType)
	assert.Equal(t, 2, events[1].Version)

	res, err := inv.Storage.DeleteUnit(ctx, unit.ID)
	require.NoError(t, err)
	require.NotNil(t, res.Warning)
	assert.Equal(t, 3, res.Warning.Shelves)
	assert.Equal(t, 1, res.Warning.Books)

	_, err = inv.Storage.GetUnit(ctx, unit.ID)
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	snap, err := inv.Snapshots.Take(ctx)
	require.NoError(t, err)
	assert.Empty(t, snap.Units)
	assert.Len(t, snap.Shelves, 3)
	assert.Len(t, snap.Books, 1)

	require.NoError(t, inv.Catalog.DeleteBook(ctx, book.ID))
	_, err = inv.Catalog.GetBook(ctx, book.ID)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}
