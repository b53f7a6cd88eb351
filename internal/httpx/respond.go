// internal/httpx/respond.go
package httpx

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"shelfkeeper/internal/apperr"
	"shelfkeeper/internal/validator"
)

const maxBodyBytes = 1 << 20

// ErrMalformed marks a request body or path parameter that could not be parsed.
var ErrMalformed = errors.New("malformed request")

// ErrorResponse is the body of every non-2xx answer.
type ErrorResponse struct {
	Error     string            `json:"error"`
	Fields    map[string]string `json:"fields,omitempty"`
	RequestID string            `json:"request_id,omitempty"`
}

// JSON writes v with the given status.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// NoContent answers 204.
func NoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

// Decode reads a JSON body into dst. Failures wrap ErrMalformed.
func Decode(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("%w: empty body", ErrMalformed)
		}
		return fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return nil
}

// URLParamUUID parses the named chi path parameter as a UUID.
func URLParamUUID(r *http.Request, name string) (uuid.UUID, error) {
	raw := chi.URLParam(r, name)
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: invalid %s %q", ErrMalformed, name, raw)
	}
	return id, nil
}

// Error maps err onto a status code and writes it. Unexpected errors are
// logged and answered with a generic body.
func Error(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	reqID := middleware.GetReqID(r.Context())

	var verr *validator.ValidationError
	switch {
	case errors.As(err, &verr):
		JSON(w, http.StatusUnprocessableEntity, ErrorResponse{Error: "validation failed", Fields: verr.Fields, RequestID: reqID})
	case errors.Is(err, ErrMalformed):
		JSON(w, http.StatusBadRequest, ErrorResponse{Error: err.Error(), RequestID: reqID})
	case errors.Is(err, apperr.ErrNotFound):
		JSON(w, http.StatusNotFound, ErrorResponse{Error: err.Error(), RequestID: reqID})
	case errors.Is(err, apperr.ErrUnavailable):
		logger.Warn("upstream unavailable", "path", r.URL.Path, "request_id", reqID, "error", err)
		JSON(w, http.StatusBadGateway, ErrorResponse{Error: "upstream catalog unavailable", RequestID: reqID})
	default:
		logger.Error("request failed", "method", r.Method, "path", r.URL.Path, "request_id", reqID, "error", err)
		JSON(w, http.StatusInternalServerError, ErrorResponse{Error: "internal server error", RequestID: reqID})
	}
}

// Filter reads a query filter; empty and "all" both mean unconstrained.
func Filter(r *http.Request, name string) string {
	v := r.URL.Query().Get(name)
	if v == "all" {
		return ""
	}
	return v
}
