// internal/reports/handler_test.go
package reports

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"shelfkeeper/internal/audit"
	"shelfkeeper/internal/catalog"
	"shelfkeeper/internal/export"
	"shelfkeeper/internal/snapshot"
	"shelfkeeper/internal/storage"
)

type staticSnapshots struct {
	snap *snapshot.Snapshot
	err  error
}

func (s staticSnapshots) Take(context.Context) (*snapshot.Snapshot, error) {
	return s.snap, s.err
}

var now = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func fixture() *snapshot.Snapshot {
	return &snapshot.Snapshot{
		Units:   []storage.Unit{{Name: "A"}},
		Shelves: []storage.Shelf{{Name: "1", PlacardName: "A"}, {Name: "2", PlacardName: "A"}},
		Books: []catalog.Book{
			{ID: uuid.New(), Title: "X", Author: "Y", Placard: "A", Shelf: "1", Count: 3, Status: catalog.StatusAvailable, DateAdded: now},
			{ID: uuid.New(), Title: "Lost", Author: "Z", Placard: "A", Shelf: "9", Count: 1, Status: catalog.StatusLost, DateAdded: now},
		},
	}
}

func newRouter(src Snapshotter) http.Handler {
	auditor := audit.NewAuditor()
	auditor.RegisterDefaults()
	h := NewHandler(src, auditor, slog.New(slog.NewTextHandler(io.Discard, nil)))
	h.now = func() time.Time { return now }
	r := chi.NewRouter()
	h.Routes(r)
	return r
}

func get(h http.Handler, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestStats(t *testing.T) {
	rec := get(newRouter(staticSnapshots{snap: fixture()}), "/stats")
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, float64(4), body["total_books"])
	assert.Equal(t, float64(1), body["total_placards"])
	assert.Equal(t, float64(2), body["total_shelves"])
	assert.Equal(t, float64(2), body["recent_additions"])
}

func TestVisualization(t *testing.T) {
	rec := get(newRouter(staticSnapshots{snap: fixture()}), "/visualization")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "1", rec.Header().Get("X-Unplaced-Books"))

	var body map[string]struct {
		TotalBooks int `json:"total_books"`
		Shelves    map[string]struct {
			BookCount int `json:"book_count"`
		} `json:"shelves"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, 3, body["A"].TotalBooks)
	assert.Equal(t, 0, body["A"].Shelves["2"].BookCount)
}

func TestAudit(t *testing.T) {
	rec := get(newRouter(staticSnapshots{snap: fixture()}), "/audit")
	require.Equal(t, http.StatusOK, rec.Code)

	var report audit.Report
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&report))
	assert.False(t, report.Passed)
}

func TestLastAudit(t *testing.T) {
	router := newRouter(staticSnapshots{snap: fixture()})

	rec := get(router, "/audit/last")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	first := get(router, "/audit")
	require.Equal(t, http.StatusOK, first.Code)
	var ran audit.Report
	require.NoError(t, json.NewDecoder(first.Body).Decode(&ran))

	rec = get(router, "/audit/last")
	require.Equal(t, http.StatusOK, rec.Code)
	var last audit.Report
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&last))
	assert.True(t, ran.StartTime.Equal(last.StartTime))
	assert.Equal(t, ran.Findings, last.Findings)
}

func TestExportHonorsFilters(t *testing.T) {
	rec := get(newRouter(staticSnapshots{snap: fixture()}), "/export/excel?status=lost&placard=all")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, export.ContentType, rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "books_20240601_120000.xlsx")

	f, err := excelize.OpenReader(bytes.NewReader(rec.Body.Bytes()))
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows(export.SheetName)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Lost", rows[1][1])
}

func TestSnapshotFailure(t *testing.T) {
	rec := get(newRouter(staticSnapshots{err: errors.New("db down")}), "/stats")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
