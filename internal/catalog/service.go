// internal/catalog/service.go
package catalog

import (
	"context"

	"github.com/google/uuid"

	"shelfkeeper/internal/eventstore"
	"shelfkeeper/internal/storage"
)

// Service defines the interface for the book catalog.
type Service interface {
	CreateBook(ctx context.Context, in BookInput) (*Book, error)
	GetBook(ctx context.Context, id uuid.UUID) (*Book, error)
	UpdateBook(ctx context.Context, id uuid.UUID, upd BookUpdate) (*Book, error)
	DeleteBook(ctx context.Context, id uuid.UUID) error
	ListBooks(ctx context.Context) ([]Book, error)
	CountPlaced(ctx context.Context, placard, shelf string) (int, error)
	History(ctx context.Context, id uuid.UUID) ([]eventstore.Event, error)
}

// Repository persists books. Missing ids yield an error wrapping apperr.ErrNotFound.
type Repository interface {
	Insert(ctx context.Context, b *Book) error
	Get(ctx context.Context, id uuid.UUID) (*Book, error)
	Update(ctx context.Context, b *Book) error
	Delete(ctx context.Context, id uuid.UUID) error
	// List returns every book ordered by date added.
	List(ctx context.Context) ([]Book, error)
	// CountPlaced counts entries in placard, limited to shelf when non-empty.
	CountPlaced(ctx context.Context, placard, shelf string) (int, error)
}

// ShelfResolver confirms that a shelf exists inside a unit.
type ShelfResolver interface {
	ResolveShelf(ctx context.Context, placard, shelf string) (*storage.Shelf, error)
}
