// internal/lookup/implementation_test.go
package lookup

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shelfkeeper/internal/apperr"
	"shelfkeeper/internal/storage"
	"shelfkeeper/internal/validator"
)

type fakeProvider struct {
	name  string
	rec   *Record
	err   error
	calls int
}

func (f *fakeProvider) Name() string { return f.name }

func (f *fakeProvider) LookupISBN(_ context.Context, isbn string) (*Record, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	if f.rec == nil {
		return nil, apperr.NotFound("isbn", isbn)
	}
	rec := *f.rec
	rec.ISBN = isbn
	return &rec, nil
}

func newPlacements(t *testing.T) storage.Service {
	t.Helper()
	ctx := context.Background()
	svc := storage.NewService(storage.NewMemoryRepository(), zeroCounter{}, nil, slog.New(slog.NewTextHandler(io.Discard, nil)))
	_, err := svc.CreateUnit(ctx, storage.UnitInput{Name: "A"})
	require.NoError(t, err)
	_, err = svc.CreateShelf(ctx, storage.ShelfInput{Name: "1", PlacardName: "A"})
	require.NoError(t, err)
	return svc
}

type zeroCounter struct{}

func (zeroCounter) CountPlaced(context.Context, string, string) (int, error) { return 0, nil }

func newTestService(t *testing.T, providers ...Provider) Service {
	return NewService(providers, newPlacements(t), time.Second, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

var dune = &Record{Title: "Dune", Authors: []string{"Frank Herbert"}, Source: "Open Library"}

func TestLookupFirstHitWins(t *testing.T) {
	first := &fakeProvider{name: "openlibrary", rec: dune}
	second := &fakeProvider{name: "googlebooks", rec: &Record{Title: "other"}}

	rec, err := newTestService(t, first, second).LookupISBN(context.Background(), "978-0-441-17271-9")
	require.NoError(t, err)
	assert.Equal(t, "Dune", rec.Title)
	assert.Equal(t, "9780441172719", rec.ISBN)
	assert.Equal(t, "Open Library", rec.Source)
	assert.Equal(t, 0, second.calls)
}

func TestLookupFallsThroughMissesAndFailures(t *testing.T) {
	miss := &fakeProvider{name: "openlibrary"}
	broken := &fakeProvider{name: "broken", err: fmt.Errorf("dial tcp: %w", apperr.ErrUnavailable)}
	hit := &fakeProvider{name: "googlebooks", rec: &Record{Title: "Dune"}}

	rec, err := newTestService(t, miss, broken, hit).LookupISBN(context.Background(), "9780441172719")
	require.NoError(t, err)
	assert.Equal(t, "googlebooks", rec.Source, "source defaults to provider name")
}

func TestLookupAllMissesIsNotFound(t *testing.T) {
	_, err := newTestService(t, &fakeProvider{name: "a"}, &fakeProvider{name: "b"}).
		LookupISBN(context.Background(), "9780441172719")
	assert.ErrorIs(t, err, apperr.ErrNotFound)
	assert.NotErrorIs(t, err, apperr.ErrUnavailable)
}

func TestLookupFailureIsUnavailable(t *testing.T) {
	miss := &fakeProvider{name: "a"}
	broken := &fakeProvider{name: "b", err: fmt.Errorf("status 503: %w", apperr.ErrUnavailable)}

	_, err := newTestService(t, miss, broken).LookupISBN(context.Background(), "9780441172719")
	assert.ErrorIs(t, err, apperr.ErrUnavailable)
	assert.NotErrorIs(t, err, apperr.ErrNotFound)
	assert.Equal(t, 1, broken.calls, "no retries")
}

func TestLookupRejectsMalformedISBN(t *testing.T) {
	p := &fakeProvider{name: "a", rec: dune}
	_, err := newTestService(t, p).LookupISBN(context.Background(), "12-34")
	var verr *validator.ValidationError
	assert.ErrorAs(t, err, &verr)
	assert.Equal(t, 0, p.calls)
}

func TestScan(t *testing.T) {
	svc := newTestService(t, &fakeProvider{name: "openlibrary", rec: dune})
	ctx := context.Background()

	res, err := svc.Scan(ctx, ScanRequest{Barcode: " 9780441172719 ", Placard: "A", Shelf: "1"})
	require.NoError(t, err)
	assert.Equal(t, "Dune", res.BookInfo.Title)
	assert.Equal(t, Placement{Placard: "A", Shelf: "1"}, res.SuggestedPlacement)
	assert.NotEmpty(t, res.Message)

	_, err = svc.Scan(ctx, ScanRequest{Barcode: "LIB-000042"})
	assert.ErrorIs(t, err, apperr.ErrNotFound, "opaque barcodes are not looked up")

	_, err = svc.Scan(ctx, ScanRequest{Barcode: "9780441172719", Placard: "A", Shelf: "7"})
	var verr *validator.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "shelf")

	_, err = svc.Scan(ctx, ScanRequest{Barcode: "9780441172719", Placard: "Z"})
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "placard")

	_, err = svc.Scan(ctx, ScanRequest{Barcode: "9780441172719", Shelf: "1"})
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "placard")
}

func TestScanMiss(t *testing.T) {
	svc := newTestService(t, &fakeProvider{name: "openlibrary"})
	_, err := svc.Scan(context.Background(), ScanRequest{Barcode: "9780441172719"})
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}
