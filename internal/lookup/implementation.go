// internal/lookup/implementation.go
package lookup

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/trace"

	"shelfkeeper/internal/apperr"
	"shelfkeeper/internal/validator"
)

// DefaultTimeout bounds one LookupISBN call across every provider.
const DefaultTimeout = 8 * time.Second

type service struct {
	providers  []Provider
	placements Placements
	timeout    time.Duration
	logger     *slog.Logger
	tracer     trace.Tracer
	lookups    metric.Int64Counter
}

// NewService consults providers in order. A zero timeout means DefaultTimeout.
func NewService(providers []Provider, placements Placements, timeout time.Duration, logger *slog.Logger) Service {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	counter, err := otel.Meter("shelfkeeper/lookup").Int64Counter("shelfkeeper.lookups",
		metric.WithDescription("ISBN lookups by outcome and source"))
	if err != nil {
		logger.Warn("lookups counter unavailable", "error", err)
		counter = noop.Int64Counter{}
	}
	return &service{
		providers:  providers,
		placements: placements,
		timeout:    timeout,
		logger:     logger,
		tracer:     otel.Tracer("shelfkeeper/lookup"),
		lookups:    counter,
	}
}

// LookupISBN returns the first provider hit. With no hit it reports
// ErrUnavailable if any provider failed, otherwise ErrNotFound. Nothing is retried.
func (s *service) LookupISBN(ctx context.Context, raw string) (*Record, error) {
	isbn := NormalizeISBN(raw)
	if !ValidISBN(isbn) {
		return nil, validator.Field("isbn", "must be 10 or 13 characters")
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	ctx, span := s.tracer.Start(ctx, "lookup.isbn", trace.WithAttributes(attribute.String("isbn", isbn)))
	defer span.End()

	var failures []error
	for _, p := range s.providers {
		rec, err := p.LookupISBN(ctx, isbn)
		switch {
		case err == nil:
			if rec.Source == "" {
				rec.Source = p.Name()
			}
			span.SetAttributes(attribute.String("lookup.source", rec.Source))
			s.count(ctx, "hit", p.Name())
			return rec, nil
		case errors.Is(err, apperr.ErrNotFound):
			s.count(ctx, "miss", p.Name())
		default:
			s.logger.Warn("isbn lookup failed", "provider", p.Name(), "isbn", isbn, "error", err)
			s.count(ctx, "error", p.Name())
			failures = append(failures, fmt.Errorf("%s: %w", p.Name(), err))
		}
	}

	if len(failures) > 0 {
		err := fmt.Errorf("isbn %s: %w: %w", isbn, apperr.ErrUnavailable, errors.Join(failures...))
		span.RecordError(err)
		span.SetStatus(codes.Error, "upstream unavailable")
		return nil, err
	}
	return nil, apperr.NotFound("isbn", isbn)
}

// Scan resolves a scanned barcode. Only ISBN barcodes can be looked up; any
// other code is reported as not found. A supplied placement must exist.
func (s *service) Scan(ctx context.Context, req ScanRequest) (*ScanResult, error) {
	placement := Placement{
		Placard: strings.TrimSpace(req.Placard),
		Shelf:   strings.TrimSpace(req.Shelf),
	}
	if err := s.checkPlacement(ctx, placement); err != nil {
		return nil, err
	}

	code := strings.TrimSpace(req.Barcode)
	if code == "" {
		return nil, validator.Field("barcode", "must be provided")
	}
	isbn := NormalizeISBN(code)
	if !ValidISBN(isbn) {
		return nil, apperr.NotFound("barcode", code)
	}

	rec, err := s.LookupISBN(ctx, isbn)
	if err != nil {
		return nil, err
	}
	return &ScanResult{
		BookInfo:           *rec,
		Message:            fmt.Sprintf("found %q via %s", rec.Title, rec.Source),
		SuggestedPlacement: placement,
	}, nil
}

func (s *service) checkPlacement(ctx context.Context, p Placement) error {
	if p.Placard == "" && p.Shelf == "" {
		return nil
	}
	v := validator.New()
	if p.Placard == "" {
		v.AddError("placard", "must be chosen with a shelf")
		return v.Err()
	}

	_, err := s.placements.GetUnitByName(ctx, p.Placard)
	switch {
	case errors.Is(err, apperr.ErrNotFound):
		v.AddError("placard", "does not exist")
		return v.Err()
	case err != nil:
		return fmt.Errorf("failed to resolve placard: %w", err)
	}

	if p.Shelf != "" {
		_, err := s.placements.ResolveShelf(ctx, p.Placard, p.Shelf)
		switch {
		case errors.Is(err, apperr.ErrNotFound):
			v.AddError("shelf", fmt.Sprintf("does not exist in placard %q", p.Placard))
		case err != nil:
			return fmt.Errorf("failed to resolve shelf: %w", err)
		}
	}
	return v.Err()
}

func (s *service) count(ctx context.Context, outcome, source string) {
	s.lookups.Add(ctx, 1, metric.WithAttributes(
		attribute.String("outcome", outcome),
		attribute.String("source", source),
	))
}
