// internal/lookup/handler.go
package lookup

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"shelfkeeper/internal/httpx"
)

type Handler struct {
	service Service
	logger  *slog.Logger
}

func NewHandler(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/isbn/{isbn}", h.handleLookup)
	r.Post("/barcode/scan", h.handleScan)
}

func (h *Handler) handleLookup(w http.ResponseWriter, r *http.Request) {
	rec, err := h.service.LookupISBN(r.Context(), chi.URLParam(r, "isbn"))
	if err != nil {
		httpx.Error(w, r, h.logger, err)
		return
	}
	httpx.JSON(w, http.StatusOK, rec)
}

func (h *Handler) handleScan(w http.ResponseWriter, r *http.Request) {
	var req ScanRequest
	if err := httpx.Decode(w, r, &req); err != nil {
		httpx.Error(w, r, h.logger, err)
		return
	}

	res, err := h.service.Scan(r.Context(), req)
	if err != nil {
		httpx.Error(w, r, h.logger, err)
		return
	}
	httpx.JSON(w, http.StatusOK, res)
}
