// internal/reports/handler.go

// Package reports serves the read-only views computed from a fresh snapshot:
// stats, layout, audit and spreadsheet export.
package reports

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"shelfkeeper/internal/apperr"
	"shelfkeeper/internal/audit"
	"shelfkeeper/internal/export"
	"shelfkeeper/internal/httpx"
	"shelfkeeper/internal/layout"
	"shelfkeeper/internal/query"
	"shelfkeeper/internal/snapshot"
)

// Snapshotter takes a fresh snapshot per request.
type Snapshotter interface {
	Take(ctx context.Context) (*snapshot.Snapshot, error)
}

type Handler struct {
	snapshots Snapshotter
	auditor   *audit.Auditor
	logger    *slog.Logger
	now       func() time.Time
}

func NewHandler(snapshots Snapshotter, auditor *audit.Auditor, logger *slog.Logger) *Handler {
	return &Handler{
		snapshots: snapshots,
		auditor:   auditor,
		logger:    logger,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/stats", h.handleStats)
	r.Get("/visualization", h.handleVisualization)
	r.Get("/audit", h.handleAudit)
	r.Get("/audit/last", h.handleLastAudit)
	r.Get("/export/excel", h.handleExport)
}

func (h *Handler) snapshot(w http.ResponseWriter, r *http.Request) (*snapshot.Snapshot, bool) {
	snap, err := h.snapshots.Take(r.Context())
	if err != nil {
		httpx.Error(w, r, h.logger, err)
		return nil, false
	}
	return snap, true
}

func (h *Handler) handleStats(w http.ResponseWriter, r *http.Request) {
	snap, ok := h.snapshot(w, r)
	if !ok {
		return
	}
	httpx.JSON(w, http.StatusOK, layout.Summarize(snap, h.now()))
}

func (h *Handler) handleVisualization(w http.ResponseWriter, r *http.Request) {
	snap, ok := h.snapshot(w, r)
	if !ok {
		return
	}
	l := layout.Build(snap.Units, snap.Shelves, snap.Books)
	if n := len(l.Unplaced); n > 0 {
		w.Header().Set("X-Unplaced-Books", strconv.Itoa(n))
	}
	httpx.JSON(w, http.StatusOK, l)
}

func (h *Handler) handleAudit(w http.ResponseWriter, r *http.Request) {
	snap, ok := h.snapshot(w, r)
	if !ok {
		return
	}
	httpx.JSON(w, http.StatusOK, h.auditor.Run(r.Context(), snap))
}

// handleLastAudit returns the most recent report without taking a snapshot.
func (h *Handler) handleLastAudit(w http.ResponseWriter, r *http.Request) {
	report := h.auditor.Last()
	if report == nil {
		httpx.Error(w, r, h.logger, apperr.NotFound("audit report", "last"))
		return
	}
	httpx.JSON(w, http.StatusOK, report)
}

// handleExport writes the filtered listing as a workbook, buffered so a
// failure can still be reported as JSON.
func (h *Handler) handleExport(w http.ResponseWriter, r *http.Request) {
	snap, ok := h.snapshot(w, r)
	if !ok {
		return
	}
	books := query.Apply(snap.Books, r.URL.Query())

	var buf bytes.Buffer
	if err := export.WriteWorkbook(&buf, books); err != nil {
		httpx.Error(w, r, h.logger, err)
		return
	}

	w.Header().Set("Content-Type", export.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, export.FileName(h.now())))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		h.logger.Warn("export write interrupted", "error", err)
	}
}
