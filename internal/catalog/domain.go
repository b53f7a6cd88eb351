// internal/catalog/domain.go
package catalog

import (
	"time"

	"github.com/google/uuid"
)

// Status is the circulation state of a catalog entry.
type Status string

const (
	StatusAvailable        Status = "available"
	StatusBorrowed         Status = "borrowed"
	StatusLost             Status = "lost"
	StatusUnderMaintenance Status = "under-maintenance"
)

// Statuses lists every accepted status.
var Statuses = []Status{StatusAvailable, StatusBorrowed, StatusLost, StatusUnderMaintenance}

// DefaultLanguage is assigned when a book is created without a language.
const DefaultLanguage = "fr"

// Book is one catalog entry: a title/edition with Count physical copies shelved together.
type Book struct {
	ID              uuid.UUID `json:"id"`
	Title           string    `json:"title"`
	Author          string    `json:"author"`
	Edition         string    `json:"edition"`
	Publisher       string    `json:"publisher"`
	ISBN            string    `json:"isbn"`
	Barcode         string    `json:"barcode"`
	Count           int       `json:"count"`
	Placard         string    `json:"placard"`
	Shelf           string    `json:"shelf"`
	Description     string    `json:"description"`
	Language        string    `json:"language"`
	Pages           *int      `json:"pages,omitempty"`
	PublicationYear *int      `json:"publication_year,omitempty"`
	Category        string    `json:"category"`
	Status          Status    `json:"status"`
	DateAdded       time.Time `json:"date_added"`
	LastModified    time.Time `json:"last_modified"`
}

// BookInput is the client-supplied part of a new Book. A nil Count means one copy.
type BookInput struct {
	Title           string `json:"title"`
	Author          string `json:"author"`
	Edition         string `json:"edition"`
	Publisher       string `json:"publisher"`
	ISBN            string `json:"isbn"`
	Barcode         string `json:"barcode"`
	Count           *int   `json:"count"`
	Placard         string `json:"placard"`
	Shelf           string `json:"shelf"`
	Description     string `json:"description"`
	Language        string `json:"language"`
	Pages           *int   `json:"pages"`
	PublicationYear *int   `json:"publication_year"`
	Category        string `json:"category"`
	Status          Status `json:"status"`
}

// BookUpdate is a partial edit; nil fields keep their stored value.
type BookUpdate struct {
	Title           *string `json:"title"`
	Author          *string `json:"author"`
	Edition         *string `json:"edition"`
	Publisher       *string `json:"publisher"`
	ISBN            *string `json:"isbn"`
	Barcode         *string `json:"barcode"`
	Count           *int    `json:"count"`
	Placard         *string `json:"placard"`
	Shelf           *string `json:"shelf"`
	Description     *string `json:"description"`
	Language        *string `json:"language"`
	Pages           *int    `json:"pages"`
	PublicationYear *int    `json:"publication_year"`
	Category        *string `json:"category"`
	Status          *Status `json:"status"`
}

// BookAddedEvent is recorded when a book is catalogued.
type BookAddedEvent struct {
	ID      uuid.UUID `json:"id"`
	Title   string    `json:"title"`
	Author  string    `json:"author"`
	ISBN    string    `json:"isbn,omitempty"`
	Placard string    `json:"placard"`
	Shelf   string    `json:"shelf"`
	Count   int       `json:"count"`
}

// BookUpdatedEvent lists the fields an edit changed.
type BookUpdatedEvent struct {
	ID      uuid.UUID `json:"id"`
	Changed []string  `json:"changed"`
	Placard string    `json:"placard"`
	Shelf   string    `json:"shelf"`
}

// BookRemovedEvent is recorded when a book is deleted.
type BookRemovedEvent struct {
	ID    uuid.UUID `json:"id"`
	Title string    `json:"title"`
}
