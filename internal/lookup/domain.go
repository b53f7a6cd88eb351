// internal/lookup/domain.go
package lookup

import (
	"context"

	"shelfkeeper/internal/storage"
)

// Record is normalized bibliographic metadata from an upstream catalog.
type Record struct {
	ISBN            string   `json:"isbn"`
	Title           string   `json:"title,omitempty"`
	Authors         []string `json:"authors"`
	Publisher       string   `json:"publisher,omitempty"`
	PublicationDate string   `json:"publication_date,omitempty"`
	PageCount       *int     `json:"page_count,omitempty"`
	Description     string   `json:"description,omitempty"`
	Language        string   `json:"language,omitempty"`
	Categories      []string `json:"categories"`
	Thumbnail       string   `json:"thumbnail,omitempty"`
	Source          string   `json:"source"`
}

// Provider is one upstream catalog. A miss is an error wrapping
// apperr.ErrNotFound; an unreachable or failing upstream wraps apperr.ErrUnavailable.
type Provider interface {
	Name() string
	LookupISBN(ctx context.Context, isbn string) (*Record, error)
}

// ScanRequest is a scanned code and the placement the operator picked.
type ScanRequest struct {
	Barcode string `json:"barcode"`
	Placard string `json:"placard"`
	Shelf   string `json:"shelf"`
}

// Placement is where a scanned book should be shelved.
type Placement struct {
	Placard string `json:"placard"`
	Shelf   string `json:"shelf"`
}

// ScanResult is a successful scan.
type ScanResult struct {
	BookInfo           Record    `json:"book_info"`
	Message            string    `json:"message"`
	SuggestedPlacement Placement `json:"suggested_placement"`
}

// Placements checks scan placements against the storage catalog.
type Placements interface {
	GetUnitByName(ctx context.Context, name string) (*storage.Unit, error)
	ResolveShelf(ctx context.Context, placard, shelf string) (*storage.Shelf, error)
}
