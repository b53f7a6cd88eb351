// internal/storage/domain.go
package storage

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"shelfkeeper/internal/apperr"
)

// ErrDuplicate is returned by repositories when a unique name is already taken.
var ErrDuplicate = errors.New("duplicate storage record")

// StorageType is the physical kind of a storage unit.
type StorageType string

const (
	TypeCabinet     StorageType = "cabinet"
	TypeBin         StorageType = "bin"
	TypeWall        StorageType = "wall"
	TypeMobileShelf StorageType = "mobile-shelf"
	TypeBookcase    StorageType = "bookcase"
	TypeOther       StorageType = "other"
)

// StorageTypes lists every accepted storage type.
var StorageTypes = []StorageType{TypeCabinet, TypeBin, TypeWall, TypeMobileShelf, TypeBookcase, TypeOther}

// Unit is a named storage container ("placard"). Shelves and books refer to it by Name.
type Unit struct {
	ID          uuid.UUID   `json:"id"`
	Name        string      `json:"name"`
	StorageType StorageType `json:"storage_type"`
	Location    string      `json:"location"`
	Capacity    *int        `json:"capacity,omitempty"`
	Description string      `json:"description"`
	DateCreated time.Time   `json:"date_created"`
}

// Shelf is a named subdivision of exactly one Unit.
type Shelf struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	PlacardName string    `json:"placard_name"`
	Position    *int      `json:"position,omitempty"`
	Capacity    *int      `json:"capacity,omitempty"`
	Description string    `json:"description"`
	DateCreated time.Time `json:"date_created"`
}

// UnitInput is the client-supplied part of a new Unit.
type UnitInput struct {
	Name        string      `json:"name"`
	StorageType StorageType `json:"storage_type"`
	Location    string      `json:"location"`
	Capacity    *int        `json:"capacity"`
	Description string      `json:"description"`
}

// ShelfInput is the client-supplied part of a new Shelf.
type ShelfInput struct {
	Name        string `json:"name"`
	PlacardName string `json:"placard_name"`
	Position    *int   `json:"position"`
	Capacity    *int   `json:"capacity"`
	Description string `json:"description"`
}

// DeleteResult reports a completed deletion and what still points at the deleted record.
type DeleteResult struct {
	Deleted bool                       `json:"deleted"`
	Warning *apperr.ReferentialWarning `json:"warning,omitempty"`
}

// UnitCreatedEvent is recorded when a unit is added.
type UnitCreatedEvent struct {
	ID          uuid.UUID   `json:"id"`
	Name        string      `json:"name"`
	StorageType StorageType `json:"storage_type"`
}

// ShelfCreatedEvent is recorded when a shelf is added.
type ShelfCreatedEvent struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	PlacardName string    `json:"placard_name"`
}

// DeletedEvent is recorded when a unit or shelf is removed, with what it left behind.
type DeletedEvent struct {
	ID      uuid.UUID `json:"id"`
	Name    string    `json:"name"`
	Shelves int       `json:"orphaned_shelves"`
	Books   int       `json:"orphaned_books"`
}
