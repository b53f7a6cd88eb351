// internal/snapshot/snapshot.go

// Package snapshot captures a consistent, read-only copy of the catalogs for
// the layout, stats, audit and export readers.
package snapshot

import (
	"context"
	"fmt"
	"time"

	"shelfkeeper/internal/catalog"
	"shelfkeeper/internal/storage"
)

// UnitLister is the storage side of a snapshot.
type UnitLister interface {
	ListUnits(ctx context.Context) ([]storage.Unit, error)
	ListShelves(ctx context.Context, unitName string) ([]storage.Shelf, error)
}

// BookLister is the catalog side of a snapshot.
type BookLister interface {
	ListBooks(ctx context.Context) ([]catalog.Book, error)
}

// Snapshot holds units in insertion order, shelves in catalog order and books
// in date-added order.
type Snapshot struct {
	Units   []storage.Unit
	Shelves []storage.Shelf
	Books   []catalog.Book
	TakenAt time.Time
}

// Take fetches every unit, shelf and book.
func Take(ctx context.Context, units UnitLister, books BookLister) (*Snapshot, error) {
	u, err := units.ListUnits(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list units: %w", err)
	}
	s, err := units.ListShelves(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("failed to list shelves: %w", err)
	}
	b, err := books.ListBooks(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list books: %w", err)
	}
	return &Snapshot{Units: u, Shelves: s, Books: b, TakenAt: time.Now().UTC()}, nil
}

// Source takes snapshots on demand.
type Source struct {
	Units UnitLister
	Books BookLister
}

func (src Source) Take(ctx context.Context) (*Snapshot, error) {
	return Take(ctx, src.Units, src.Books)
}
