// internal/catalog/implementation.go
package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/trace"

	"shelfkeeper/internal/apperr"
	"shelfkeeper/internal/eventstore"
	"shelfkeeper/internal/validator"
)

const aggregateBook = "book"

// service implements the Service interface.
type service struct {
	repo    Repository
	shelves ShelfResolver
	history eventstore.Recorder
	logger  *slog.Logger
	tracer  trace.Tracer
	created metric.Int64Counter
	now     func() time.Time
}

// Option adjusts a catalog service.
type Option func(*service)

// WithClock replaces the wall clock used for timestamps and year checks.
func WithClock(now func() time.Time) Option {
	return func(s *service) { s.now = now }
}

// NewService creates a new book catalog. shelves validates placements.
func NewService(repo Repository, shelves ShelfResolver, history eventstore.Recorder, logger *slog.Logger, opts ...Option) Service {
	s := &service{
		repo:    repo,
		shelves: shelves,
		history: history,
		logger:  logger,
		tracer:  otel.Tracer("shelfkeeper/catalog"),
		now:     func() time.Time { return time.Now().UTC() },
	}

	counter, err := otel.Meter("shelfkeeper/catalog").Int64Counter("shelfkeeper.books.created",
		metric.WithDescription("Catalog entries created"))
	if err != nil {
		logger.Warn("books.created counter unavailable", "error", err)
		counter = noop.Int64Counter{}
	}
	s.created = counter

	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateBook validates and catalogues a new book.
func (s *service) CreateBook(ctx context.Context, in BookInput) (*Book, error) {
	ctx, span := s.tracer.Start(ctx, "catalog.create_book")
	defer span.End()

	book := in.book()
	normalize(&book)
	if err := s.validate(ctx, &book); err != nil {
		return nil, err
	}

	now := s.now()
	book.ID = uuid.New()
	book.DateAdded = now
	book.LastModified = now

	if err := s.repo.Insert(ctx, &book); err != nil {
		return nil, fmt.Errorf("failed to insert book: %w", err)
	}
	span.SetAttributes(
		attribute.String("book.id", book.ID.String()),
		attribute.String("book.placard", book.Placard),
	)
	s.created.Add(ctx, 1, metric.WithAttributes(attribute.String("placard", book.Placard)))

	s.record(ctx, book.ID, "BookAdded", BookAddedEvent{
		ID:      book.ID,
		Title:   book.Title,
		Author:  book.Author,
		ISBN:    book.ISBN,
		Placard: book.Placard,
		Shelf:   book.Shelf,
		Count:   book.Count,
	})
	return &book, nil
}

func (s *service) GetBook(ctx context.Context, id uuid.UUID) (*Book, error) {
	return s.repo.Get(ctx, id)
}

// UpdateBook merges upd into the stored book and validates the result as a whole.
func (s *service) UpdateBook(ctx context.Context, id uuid.UUID, upd BookUpdate) (*Book, error) {
	ctx, span := s.tracer.Start(ctx, "catalog.update_book",
		trace.WithAttributes(attribute.String("book.id", id.String())))
	defer span.End()

	existing, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	merged := *existing
	upd.apply(&merged)
	normalize(&merged)
	if err := s.validate(ctx, &merged); err != nil {
		return nil, err
	}
	merged.LastModified = s.now()

	if err := s.repo.Update(ctx, &merged); err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to update book: %w", err)
	}

	s.record(ctx, id, "BookUpdated", BookUpdatedEvent{
		ID:      id,
		Changed: changedFields(*existing, merged),
		Placard: merged.Placard,
		Shelf:   merged.Shelf,
	})
	return &merged, nil
}

// DeleteBook removes a book. A missing id is reported as not found.
func (s *service) DeleteBook(ctx context.Context, id uuid.UUID) error {
	ctx, span := s.tracer.Start(ctx, "catalog.delete_book",
		trace.WithAttributes(attribute.String("book.id", id.String())))
	defer span.End()

	book, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return err
		}
		return fmt.Errorf("failed to delete book: %w", err)
	}

	s.record(ctx, id, "BookRemoved", BookRemovedEvent{ID: id, Title: book.Title})
	return nil
}

func (s *service) ListBooks(ctx context.Context) ([]Book, error) {
	books, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list books: %w", err)
	}
	return books, nil
}

func (s *service) CountPlaced(ctx context.Context, placard, shelf string) (int, error) {
	return s.repo.CountPlaced(ctx, placard, shelf)
}

// History returns the recorded changes of a book, oldest first.
func (s *service) History(ctx context.Context, id uuid.UUID) ([]eventstore.Event, error) {
	if s.history == nil {
		return nil, nil
	}
	events, err := s.history.Load(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load history: %w", err)
	}
	if len(events) == 0 {
		if _, err := s.repo.Get(ctx, id); err != nil {
			return nil, err
		}
	}
	return events, nil
}

// validate collects every field failure of b, including an unresolvable placement.
func (s *service) validate(ctx context.Context, b *Book) error {
	v := validator.New()
	checkFields(v, b, s.now().Year())

	if b.Placard != "" && b.Shelf != "" {
		_, err := s.shelves.ResolveShelf(ctx, b.Placard, b.Shelf)
		switch {
		case errors.Is(err, apperr.ErrNotFound):
			v.AddError("shelf", fmt.Sprintf("does not exist in placard %q", b.Placard))
		case err != nil:
			return fmt.Errorf("failed to resolve shelf: %w", err)
		}
	}
	return v.Err()
}

func (s *service) record(ctx context.Context, id uuid.UUID, eventType string, data any) {
	if s.history == nil {
		return
	}
	if err := s.history.Record(ctx, id, aggregateBook, eventType, data); err != nil {
		if errors.Is(err, eventstore.ErrConcurrencyConflict) {
			s.logger.Warn("concurrent edit recorded out of order", "book", id, "event", eventType)
			return
		}
		s.logger.Error("failed to record event", "book", id, "event", eventType, "error", err)
	}
}
