// internal/storage/handler.go
package storage

import (
	"log/slog"
	"net/http"
	"net/url"

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

// Routes mounts the placard and shelf endpoints on r.
func (h *Handler) Routes(r chi.Router) {
	r.Get("/placards", h.handleListUnits)
	r.Post("/placards", h.handleCreateUnit)
	r.Delete("/placards/{id}", h.handleDeleteUnit)

	r.Get("/shelves", h.handleListShelves)
	r.Post("/shelves", h.handleCreateShelf)
	r.Delete("/shelves/{id}", h.handleDeleteShelf)
}

func (h *Handler) handleListUnits(w http.ResponseWriter, r *http.Request) {
	units, err := h.service.ListUnits(r.Context())
	if err != nil {
		httpx.Error(w, r, h.logger, err)
		return
	}
	if units == nil {
		units = []Unit{}
	}
	httpx.JSON(w, http.StatusOK, units)
}

func (h *Handler) handleCreateUnit(w http.ResponseWriter, r *http.Request) {
	var req UnitInput
	if err := httpx.Decode(w, r, &req); err != nil {
		httpx.Error(w, r, h.logger, err)
		return
	}

	unit, err := h.service.CreateUnit(r.Context(), req)
	if err != nil {
		httpx.Error(w, r, h.logger, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, unit)
}

// handleDeleteUnit accepts either the unit id or its name.
func (h *Handler) handleDeleteUnit(w http.ResponseWriter, r *http.Request) {
	var (
		res *DeleteResult
		err error
	)
	if id, perr := httpx.URLParamUUID(r, "id"); perr == nil {
		res, err = h.service.DeleteUnit(r.Context(), id)
	} else {
		name, uerr := url.PathUnescape(chi.URLParam(r, "id"))
		if uerr != nil {
			name = chi.URLParam(r, "id")
		}
		res, err = h.service.DeleteUnitByName(r.Context(), name)
	}
	if err != nil {
		httpx.Error(w, r, h.logger, err)
		return
	}
	httpx.JSON(w, http.StatusOK, res)
}

func (h *Handler) handleListShelves(w http.ResponseWriter, r *http.Request) {
	shelves, err := h.service.ListShelves(r.Context(), httpx.Filter(r, "placard"))
	if err != nil {
		httpx.Error(w, r, h.logger, err)
		return
	}
	if shelves == nil {
		shelves = []Shelf{}
	}
	httpx.JSON(w, http.StatusOK, shelves)
}

func (h *Handler) handleCreateShelf(w http.ResponseWriter, r *http.Request) {
	var req ShelfInput
	if err := httpx.Decode(w, r, &req); err != nil {
		httpx.Error(w, r, h.logger, err)
		return
	}

	shelf, err := h.service.CreateShelf(r.Context(), req)
	if err != nil {
		httpx.Error(w, r, h.logger, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, shelf)
}

func (h *Handler) handleDeleteShelf(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.URLParamUUID(r, "id")
	if err != nil {
		httpx.Error(w, r, h.logger, err)
		return
	}

	res, err := h.service.DeleteShelf(r.Context(), id)
	if err != nil {
		httpx.Error(w, r, h.logger, err)
		return
	}
	httpx.JSON(w, http.StatusOK, res)
}
