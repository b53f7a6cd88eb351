// internal/apperr/apperr.go
package apperr

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a referenced book, unit, shelf or identifier does not exist.
	ErrNotFound = errors.New("not found")
	// ErrUnavailable is returned when a backend or upstream catalog cannot be reached.
	ErrUnavailable = errors.New("upstream unavailable")
)

// ReferentialWarning describes records left pointing at a unit or shelf that was deleted anyway.
type ReferentialWarning struct {
	Kind    string `json:"kind"`
	Name    string `json:"name"`
	Shelves int    `json:"shelves,omitempty"`
	Books   int    `json:"books,omitempty"`
}

func (w *ReferentialWarning) Error() string {
	return fmt.Sprintf("%s %q still referenced by %d shelves and %d books", w.Kind, w.Name, w.Shelves, w.Books)
}

// NewReferentialWarning returns nil when nothing references the deleted record.
func NewReferentialWarning(kind, name string, shelves, books int) *ReferentialWarning {
	if shelves == 0 && books == 0 {
		return nil
	}
	return &ReferentialWarning{Kind: kind, Name: name, Shelves: shelves, Books: books}
}

// NotFound wraps ErrNotFound with the kind and key of the missing record.
func NotFound(kind, key string) error {
	return fmt.Errorf("%s %q: %w", kind, key, ErrNotFound)
}
