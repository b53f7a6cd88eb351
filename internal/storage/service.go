// internal/storage/service.go
package storage

import (
	"context"

	"github.com/google/uuid"
)

// Service defines the storage catalog: units ("placards") and their shelves.
type Service interface {
	CreateUnit(ctx context.Context, in UnitInput) (*Unit, error)
	GetUnit(ctx context.Context, id uuid.UUID) (*Unit, error)
	GetUnitByName(ctx context.Context, name string) (*Unit, error)
	ListUnits(ctx context.Context) ([]Unit, error)
	DeleteUnit(ctx context.Context, id uuid.UUID) (*DeleteResult, error)
	DeleteUnitByName(ctx context.Context, name string) (*DeleteResult, error)

	CreateShelf(ctx context.Context, in ShelfInput) (*Shelf, error)
	ListShelves(ctx context.Context, unitName string) ([]Shelf, error)
	ResolveShelf(ctx context.Context, placard, shelf string) (*Shelf, error)
	DeleteShelf(ctx context.Context, id uuid.UUID) (*DeleteResult, error)
}

// Repository persists units and shelves. Lookups that miss return an error
// wrapping apperr.ErrNotFound; unique violations return ErrDuplicate.
type Repository interface {
	InsertUnit(ctx context.Context, u *Unit) error
	GetUnit(ctx context.Context, id uuid.UUID) (*Unit, error)
	GetUnitByName(ctx context.Context, name string) (*Unit, error)
	ListUnits(ctx context.Context) ([]Unit, error)
	DeleteUnit(ctx context.Context, id uuid.UUID) error

	InsertShelf(ctx context.Context, s *Shelf) error
	GetShelf(ctx context.Context, id uuid.UUID) (*Shelf, error)
	FindShelf(ctx context.Context, placard, name string) (*Shelf, error)
	ListShelves(ctx context.Context, placard string) ([]Shelf, error)
	DeleteShelf(ctx context.Context, id uuid.UUID) error
}

// PlacementCounter counts catalog entries placed in a unit, or in one of its
// shelves when shelf is non-empty.
type PlacementCounter interface {
	CountPlaced(ctx context.Context, placard, shelf string) (int, error)
}
