// internal/storage/implementation.go
package storage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"shelfkeeper/internal/apperr"
	"shelfkeeper/internal/eventstore"
	"shelfkeeper/internal/validator"
)

const (
	aggregateUnit  = "placard"
	aggregateShelf = "shelf"
)

// service implements the Service interface.
type service struct {
	repo    Repository
	counter PlacementCounter
	history eventstore.Recorder
	logger  *slog.Logger
	tracer  trace.Tracer
	now     func() time.Time
}

// NewService creates a storage catalog over repo. counter reports books still
// placed in a unit or shelf when it is deleted.
func NewService(repo Repository, counter PlacementCounter, history eventstore.Recorder, logger *slog.Logger) Service {
	return &service{
		repo:    repo,
		counter: counter,
		history: history,
		logger:  logger,
		tracer:  otel.Tracer("shelfkeeper/storage"),
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// CreateUnit validates and stores a new unit.
func (s *service) CreateUnit(ctx context.Context, in UnitInput) (*Unit, error) {
	ctx, span := s.tracer.Start(ctx, "storage.create_unit")
	defer span.End()

	in.Name = strings.TrimSpace(in.Name)
	if in.StorageType == "" {
		in.StorageType = TypeCabinet
	}

	v := validator.New()
	v.Check(in.Name != "", "name", "must be provided")
	v.Check(validStorageType(in.StorageType), "storage_type", "must be one of cabinet, bin, wall, mobile-shelf, bookcase, other")
	v.Check(in.Capacity == nil || *in.Capacity > 0, "capacity", "must be greater than zero")
	if in.Name != "" {
		_, err := s.repo.GetUnitByName(ctx, in.Name)
		switch {
		case err == nil:
			v.AddError("name", "is already in use")
		case !errors.Is(err, apperr.ErrNotFound):
			return nil, fmt.Errorf("failed to check unit name: %w", err)
		}
	}
	if err := v.Err(); err != nil {
		return nil, err
	}

	unit := &Unit{
		ID:          uuid.New(),
		Name:        in.Name,
		StorageType: in.StorageType,
		Location:    strings.TrimSpace(in.Location),
		Capacity:    in.Capacity,
		Description: in.Description,
		DateCreated: s.now(),
	}
	if err := s.repo.InsertUnit(ctx, unit); err != nil {
		if errors.Is(err, ErrDuplicate) {
			return nil, validator.Field("name", "is already in use")
		}
		return nil, fmt.Errorf("failed to insert unit: %w", err)
	}
	span.SetAttributes(attribute.String("unit.name", unit.Name))

	s.record(ctx, unit.ID, aggregateUnit, "PlacardCreated", UnitCreatedEvent{ID: unit.ID, Name: unit.Name, StorageType: unit.StorageType})
	return unit, nil
}

func (s *service) GetUnit(ctx context.Context, id uuid.UUID) (*Unit, error) {
	return s.repo.GetUnit(ctx, id)
}

func (s *service) GetUnitByName(ctx context.Context, name string) (*Unit, error) {
	return s.repo.GetUnitByName(ctx, strings.TrimSpace(name))
}

func (s *service) ListUnits(ctx context.Context) ([]Unit, error) {
	units, err := s.repo.ListUnits(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list units: %w", err)
	}
	return units, nil
}

// DeleteUnit removes a unit; its shelves and books are left in place and reported.
func (s *service) DeleteUnit(ctx context.Context, id uuid.UUID) (*DeleteResult, error) {
	unit, err := s.repo.GetUnit(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.deleteUnit(ctx, unit)
}

func (s *service) DeleteUnitByName(ctx context.Context, name string) (*DeleteResult, error) {
	unit, err := s.repo.GetUnitByName(ctx, strings.TrimSpace(name))
	if err != nil {
		return nil, err
	}
	return s.deleteUnit(ctx, unit)
}

func (s *service) deleteUnit(ctx context.Context, unit *Unit) (*DeleteResult, error) {
	ctx, span := s.tracer.Start(ctx, "storage.delete_unit",
		trace.WithAttributes(attribute.String("unit.name", unit.Name)))
	defer span.End()

	shelves, err := s.repo.ListShelves(ctx, unit.Name)
	if err != nil {
		return nil, fmt.Errorf("failed to count shelves: %w", err)
	}
	books, err := s.counter.CountPlaced(ctx, unit.Name, "")
	if err != nil {
		return nil, fmt.Errorf("failed to count books: %w", err)
	}

	if err := s.repo.DeleteUnit(ctx, unit.ID); err != nil {
		return nil, fmt.Errorf("failed to delete unit: %w", err)
	}

	warning := apperr.NewReferentialWarning(aggregateUnit, unit.Name, len(shelves), books)
	if warning != nil {
		s.logger.Warn("unit deleted while referenced", "unit", unit.Name, "shelves", warning.Shelves, "books", warning.Books)
	}
	s.record(ctx, unit.ID, aggregateUnit, "PlacardDeleted", DeletedEvent{ID: unit.ID, Name: unit.Name, Shelves: len(shelves), Books: books})
	return &DeleteResult{Deleted: true, Warning: warning}, nil
}

// CreateShelf validates and stores a new shelf in an existing unit.
func (s *service) CreateShelf(ctx context.Context, in ShelfInput) (*Shelf, error) {
	ctx, span := s.tracer.Start(ctx, "storage.create_shelf")
	defer span.End()

	in.Name = strings.TrimSpace(in.Name)
	in.PlacardName = strings.TrimSpace(in.PlacardName)

	v := validator.New()
	v.Check(in.Name != "", "name", "must be provided")
	v.Check(in.PlacardName != "", "placard_name", "must be provided")
	v.Check(in.Capacity == nil || *in.Capacity > 0, "capacity", "must be greater than zero")
	if in.PlacardName != "" {
		_, err := s.repo.GetUnitByName(ctx, in.PlacardName)
		switch {
		case errors.Is(err, apperr.ErrNotFound):
			v.AddError("placard_name", "does not exist")
		case err != nil:
			return nil, fmt.Errorf("failed to check unit: %w", err)
		}
	}
	if v.Valid() {
		_, err := s.repo.FindShelf(ctx, in.PlacardName, in.Name)
		switch {
		case err == nil:
			v.AddError("name", "is already used in this placard")
		case !errors.Is(err, apperr.ErrNotFound):
			return nil, fmt.Errorf("failed to check shelf name: %w", err)
		}
	}
	if err := v.Err(); err != nil {
		return nil, err
	}

	shelf := &Shelf{
		ID:          uuid.New(),
		Name:        in.Name,
		PlacardName: in.PlacardName,
		Position:    in.Position,
		Capacity:    in.Capacity,
		Description: in.Description,
		DateCreated: s.now(),
	}
	if err := s.repo.InsertShelf(ctx, shelf); err != nil {
		if errors.Is(err, ErrDuplicate) {
			return nil, validator.Field("name", "is already used in this placard")
		}
		return nil, fmt.Errorf("failed to insert shelf: %w", err)
	}
	span.SetAttributes(
		attribute.String("unit.name", shelf.PlacardName),
		attribute.String("shelf.name", shelf.Name),
	)

	s.record(ctx, shelf.ID, aggregateShelf, "ShelfCreated", ShelfCreatedEvent{ID: shelf.ID, Name: shelf.Name, PlacardName: shelf.PlacardName})
	return shelf, nil
}

// ListShelves returns shelves in catalog order, optionally limited to one unit.
func (s *service) ListShelves(ctx context.Context, unitName string) ([]Shelf, error) {
	units, err := s.repo.ListUnits(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list units: %w", err)
	}
	shelves, err := s.repo.ListShelves(ctx, strings.TrimSpace(unitName))
	if err != nil {
		return nil, fmt.Errorf("failed to list shelves: %w", err)
	}
	OrderShelves(shelves, units)
	return shelves, nil
}

// ResolveShelf returns the shelf named shelf inside unit placard.
func (s *service) ResolveShelf(ctx context.Context, placard, shelf string) (*Shelf, error) {
	return s.repo.FindShelf(ctx, strings.TrimSpace(placard), strings.TrimSpace(shelf))
}

// DeleteShelf removes a shelf; books still placed on it are reported.
func (s *service) DeleteShelf(ctx context.Context, id uuid.UUID) (*DeleteResult, error) {
	shelf, err := s.repo.GetShelf(ctx, id)
	if err != nil {
		return nil, err
	}

	ctx, span := s.tracer.Start(ctx, "storage.delete_shelf",
		trace.WithAttributes(
			attribute.String("unit.name", shelf.PlacardName),
			attribute.String("shelf.name", shelf.Name),
		))
	defer span.End()

	books, err := s.counter.CountPlaced(ctx, shelf.PlacardName, shelf.Name)
	if err != nil {
		return nil, fmt.Errorf("failed to count books: %w", err)
	}
	if err := s.repo.DeleteShelf(ctx, id); err != nil {
		return nil, fmt.Errorf("failed to delete shelf: %w", err)
	}

	warning := apperr.NewReferentialWarning(aggregateShelf, shelf.Name, 0, books)
	if warning != nil {
		s.logger.Warn("shelf deleted while referenced", "unit", shelf.PlacardName, "shelf", shelf.Name, "books", books)
	}
	s.record(ctx, shelf.ID, aggregateShelf, "ShelfDeleted", DeletedEvent{ID: shelf.ID, Name: shelf.Name, Books: books})
	return &DeleteResult{Deleted: true, Warning: warning}, nil
}

// record appends to the change history. History is advisory: a failure is
// logged and does not undo the change.
func (s *service) record(ctx context.Context, id uuid.UUID, aggregate, eventType string, data any) {
	if s.history == nil {
		return
	}
	if err := s.history.Record(ctx, id, aggregate, eventType, data); err != nil {
		s.logger.Error("failed to record event", "aggregate", aggregate, "id", id, "event", eventType, "error", err)
	}
}

func validStorageType(t StorageType) bool {
	for _, st := range StorageTypes {
		if t == st {
			return true
		}
	}
	return false
}
