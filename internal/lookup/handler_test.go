// internal/lookup/handler_test.go
package lookup

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shelfkeeper/internal/apperr"
)

func newRouter(t *testing.T, providers ...Provider) http.Handler {
	h := NewHandler(newTestService(t, providers...), slog.New(slog.NewTextHandler(io.Discard, nil)))
	r := chi.NewRouter()
	h.Routes(r)
	return r
}

func TestHandleLookupStatuses(t *testing.T) {
	down := &fakeProvider{name: "googlebooks", err: fmt.Errorf("boom: %w", apperr.ErrUnavailable)}
	cases := []struct {
		name      string
		providers []Provider
		isbn      string
		want      int
	}{
		{"hit", []Provider{&fakeProvider{name: "openlibrary", rec: dune}}, "978-0-441-17271-9", http.StatusOK},
		{"miss", []Provider{&fakeProvider{name: "openlibrary"}}, "9780441172719", http.StatusNotFound},
		{"upstream down", []Provider{down}, "9780441172719", http.StatusBadGateway},
		{"malformed", nil, "12345", http.StatusUnprocessableEntity},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			newRouter(t, tc.providers...).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/isbn/"+tc.isbn, nil))
			assert.Equal(t, tc.want, rec.Code)
		})
	}
}

func TestHandleLookupBody(t *testing.T) {
	rec := httptest.NewRecorder()
	newRouter(t, &fakeProvider{name: "openlibrary", rec: dune}).
		ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/isbn/9780441172719", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var got Record
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	assert.Equal(t, "9780441172719", got.ISBN)
	assert.Equal(t, "Open Library", got.Source)
}

func TestHandleScan(t *testing.T) {
	router := newRouter(t, &fakeProvider{name: "openlibrary", rec: dune})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/barcode/scan",
		strings.NewReader(`{"barcode": "9780441172719", "placard": "A", "shelf": "1"}`)))
	require.Equal(t, http.StatusOK, rec.Code)
	var res ScanResult
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&res))
	assert.Equal(t, "Dune", res.BookInfo.Title)
	assert.Equal(t, Placement{Placard: "A", Shelf: "1"}, res.SuggestedPlacement)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/barcode/scan", strings.NewReader(`{"barcode": "LIB-42"}`)))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/barcode/scan", strings.NewReader(`{"barcode":`)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
