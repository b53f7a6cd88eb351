// internal/catalog/validation.go
package catalog

import (
	"fmt"
	"strings"

	"shelfkeeper/internal/lookup"
	"shelfkeeper/internal/validator"
)

// MinPublicationYear is the earliest accepted publication year.
const MinPublicationYear = 1000

// normalize trims text fields, canonicalizes the ISBN and fills defaults.
func normalize(b *Book) {
	b.Title = strings.TrimSpace(b.Title)
	b.Author = strings.TrimSpace(b.Author)
	b.Edition = strings.TrimSpace(b.Edition)
	b.Publisher = strings.TrimSpace(b.Publisher)
	b.ISBN = lookup.NormalizeISBN(b.ISBN)
	b.Barcode = strings.TrimSpace(b.Barcode)
	b.Placard = strings.TrimSpace(b.Placard)
	b.Shelf = strings.TrimSpace(b.Shelf)
	b.Category = strings.TrimSpace(b.Category)
	b.Language = strings.ToLower(strings.TrimSpace(b.Language))
	if b.Language == "" {
		b.Language = DefaultLanguage
	}
	if b.Status == "" {
		b.Status = StatusAvailable
	}
}

// checkFields records every field-level failure of b that needs no lookup.
func checkFields(v *validator.Validator, b *Book, currentYear int) {
	v.Check(b.Title != "", "title", "must be provided")
	v.Check(b.Author != "", "author", "must be provided")
	v.Check(b.Placard != "", "placard", "must be chosen")
	v.Check(b.Shelf != "", "shelf", "must be chosen")
	v.Check(b.Count >= 1, "count", "must be at least 1")
	v.Check(b.Pages == nil || *b.Pages >= 1, "pages", "must be at least 1")
	if b.PublicationYear != nil {
		y := *b.PublicationYear
		v.Check(y >= MinPublicationYear && y <= currentYear, "publication_year",
			fmt.Sprintf("must be between %d and %d", MinPublicationYear, currentYear))
	}
	v.Check(b.ISBN == "" || lookup.ValidISBN(b.ISBN), "isbn", "must be 10 or 13 characters")
	v.Check(validStatus(b.Status), "status", "must be one of available, borrowed, lost, under-maintenance")
	v.Check(validator.Matches(b.Language, validator.LanguageRX), "language", "must be a two-letter code")
}

func validStatus(s Status) bool {
	for _, st := range Statuses {
		if s == st {
			return true
		}
	}
	return false
}

func (in BookInput) book() Book {
	count := 1
	if in.Count != nil {
		count = *in.Count
	}
	return Book{
		Title:           in.Title,
		Author:          in.Author,
		Edition:         in.Edition,
		Publisher:       in.Publisher,
		ISBN:            in.ISBN,
		Barcode:         in.Barcode,
		Count:           count,
		Placard:         in.Placard,
		Shelf:           in.Shelf,
		Description:     in.Description,
		Language:        in.Language,
		Pages:           in.Pages,
		PublicationYear: in.PublicationYear,
		Category:        in.Category,
		Status:          in.Status,
	}
}

// apply overlays the set fields of u onto b.
func (u BookUpdate) apply(b *Book) {
	setString(&b.Title, u.Title)
	setString(&b.Author, u.Author)
	setString(&b.Edition, u.Edition)
	setString(&b.Publisher, u.Publisher)
	setString(&b.ISBN, u.ISBN)
	setString(&b.Barcode, u.Barcode)
	setString(&b.Placard, u.Placard)
	setString(&b.Shelf, u.Shelf)
	setString(&b.Description, u.Description)
	setString(&b.Language, u.Language)
	setString(&b.Category, u.Category)
	if u.Count != nil {
		b.Count = *u.Count
	}
	if u.Pages != nil {
		p := *u.Pages
		b.Pages = &p
	}
	if u.PublicationYear != nil {
		y := *u.PublicationYear
		b.PublicationYear = &y
	}
	if u.Status != nil {
		b.Status = *u.Status
	}
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

// changedFields names the JSON fields that differ between before and after.
func changedFields(before, after Book) []string {
	var out []string
	add := func(changed bool, name string) {
		if changed {
			out = append(out, name)
		}
	}
	add(before.Title != after.Title, "title")
	add(before.Author != after.Author, "author")
	add(before.Edition != after.Edition, "edition")
	add(before.Publisher != after.Publisher, "publisher")
	add(before.ISBN != after.ISBN, "isbn")
	add(before.Barcode != after.Barcode, "barcode")
	add(before.Count != after.Count, "count")
	add(before.Placard != after.Placard, "placard")
	add(before.Shelf != after.Shelf, "shelf")
	add(before.Description != after.Description, "description")
	add(before.Language != after.Language, "language")
	add(!equalInt(before.Pages, after.Pages), "pages")
	add(!equalInt(before.PublicationYear, after.PublicationYear), "publication_year")
	add(before.Category != after.Category, "category")
	add(before.Status != after.Status, "status")
	return out
}

func equalInt(a, b *int) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
