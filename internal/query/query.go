// internal/query/query.go

// Package query filters and orders book listings. Every function is pure:
// inputs are never modified and results are fresh slices.
package query

import (
	"net/url"
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"shelfkeeper/internal/catalog"
)

// SortKey selects the ordering of a listing.
type SortKey string

const (
	SortTitle        SortKey = "title"
	SortAuthor       SortKey = "author"
	SortCategory     SortKey = "category"
	SortDateAdded    SortKey = "date_added"
	SortLastModified SortKey = "last_modified"
)

// Criteria are conjunctive; an empty field does not constrain.
type Criteria struct {
	Search   string
	Placard  string
	Shelf    string
	Category string
	Status   string
}

// ParseSortKey maps s to a SortKey, falling back to SortTitle.
func ParseSortKey(s string) SortKey {
	switch k := SortKey(strings.TrimSpace(s)); k {
	case SortAuthor, SortCategory, SortDateAdded, SortLastModified:
		return k
	default:
		return SortTitle
	}
}

// FromValues reads criteria and sort key from query parameters. The value
// "all" is treated as no filter.
func FromValues(v url.Values) (Criteria, SortKey) {
	get := func(name string) string {
		s := strings.TrimSpace(v.Get(name))
		if s == "all" {
			return ""
		}
		return s
	}
	return Criteria{
		Search:   get("search"),
		Placard:  get("placard"),
		Shelf:    get("shelf"),
		Category: get("category"),
		Status:   get("status"),
	}, ParseSortKey(v.Get("sort"))
}

// Apply is FilterAndSort driven by query parameters.
func Apply(books []catalog.Book, v url.Values) []catalog.Book {
	c, key := FromValues(v)
	return FilterAndSort(books, c, key)
}

// Matches reports whether b satisfies every set criterion. Search is a
// case-insensitive substring of title, author, isbn or edition.
func (c Criteria) Matches(b catalog.Book) bool {
	if c.Placard != "" && b.Placard != c.Placard {
		return false
	}
	if c.Shelf != "" && b.Shelf != c.Shelf {
		return false
	}
	if c.Category != "" && b.Category != c.Category {
		return false
	}
	if c.Status != "" && string(b.Status) != c.Status {
		return false
	}
	term := strings.ToLower(strings.TrimSpace(c.Search))
	if term == "" {
		return true
	}
	for _, field := range []string{b.Title, b.Author, b.ISBN, b.Edition} {
		if strings.Contains(strings.ToLower(field), term) {
			return true
		}
	}
	return false
}

// FilterAndSort returns the books matching c in key order. Ties keep input order.
func FilterAndSort(books []catalog.Book, c Criteria, key SortKey) []catalog.Book {
	out := make([]catalog.Book, 0, len(books))
	for _, b := range books {
		if c.Matches(b) {
			out = append(out, b)
		}
	}

	less := lessFunc(key, newCollator())
	sort.SliceStable(out, func(i, j int) bool { return less(out[i], out[j]) })
	return out
}

// newCollator returns a French collator. Collators are not safe for
// concurrent use, so each call gets its own.
func newCollator() *collate.Collator {
	return collate.New(language.French)
}

func lessFunc(key SortKey, col *collate.Collator) func(a, b catalog.Book) bool {
	text := func(field func(catalog.Book) string) func(a, b catalog.Book) bool {
		return func(a, b catalog.Book) bool {
			return col.CompareString(field(a), field(b)) < 0
		}
	}

	switch ParseSortKey(string(key)) {
	case SortAuthor:
		return text(func(b catalog.Book) string { return b.Author })
	case SortCategory:
		return text(func(b catalog.Book) string { return b.Category })
	case SortDateAdded:
		return func(a, b catalog.Book) bool { return a.DateAdded.After(b.DateAdded) }
	case SortLastModified:
		return func(a, b catalog.Book) bool { return a.LastModified.After(b.LastModified) }
	default:
		return text(func(b catalog.Book) string { return b.Title })
	}
}
