// internal/layout/stats.go
package layout

import (
	"sort"
	"strings"
	"time"

	"shelfkeeper/internal/snapshot"
)

const (
	// RecentWindow bounds what counts as a recent addition.
	RecentWindow = 7 * 24 * time.Hour
	// TopAuthorsLimit caps the top_authors list.
	TopAuthorsLimit = 5

	uncategorized = "uncategorized"
)

// AuthorCount is one entry of the top authors list.
type AuthorCount struct {
	Author string `json:"author"`
	Count  int    `json:"count"`
}

// Stats is the dashboard summary. Book totals count copies.
type Stats struct {
	TotalBooks      int            `json:"total_books"`
	TotalTitles     int            `json:"total_titles"`
	TotalPlacards   int            `json:"total_placards"`
	TotalShelves    int            `json:"total_shelves"`
	BooksByCategory map[string]int `json:"books_by_category"`
	BooksByStatus   map[string]int `json:"books_by_status"`
	BooksByPlacard  map[string]int `json:"books_by_placard"`
	RecentAdditions int            `json:"recent_additions"`
	TopAuthors      []AuthorCount  `json:"top_authors"`
}

// Summarize computes Stats over snap. Recent additions are entries added in
// the RecentWindow before now.
func Summarize(snap *snapshot.Snapshot, now time.Time) Stats {
	st := Stats{
		TotalTitles:     len(snap.Books),
		TotalPlacards:   len(snap.Units),
		TotalShelves:    len(snap.Shelves),
		BooksByCategory: make(map[string]int),
		BooksByStatus:   make(map[string]int),
		BooksByPlacard:  make(map[string]int),
		TopAuthors:      []AuthorCount{},
	}

	cutoff := now.Add(-RecentWindow)
	authors := make(map[string]int)
	for _, b := range snap.Books {
		st.TotalBooks += b.Count

		category := b.Category
		if category == "" {
			category = uncategorized
		}
		st.BooksByCategory[category] += b.Count
		st.BooksByStatus[string(b.Status)] += b.Count
		if b.Placard != "" {
			st.BooksByPlacard[b.Placard] += b.Count
		}
		if !b.DateAdded.Before(cutoff) && !b.DateAdded.After(now) {
			st.RecentAdditions++
		}
		if a := strings.TrimSpace(b.Author); a != "" {
			authors[a] += b.Count
		}
	}

	for a, n := range authors {
		st.TopAuthors = append(st.TopAuthors, AuthorCount{Author: a, Count: n})
	}
	sort.Slice(st.TopAuthors, func(i, j int) bool {
		x, y := st.TopAuthors[i], st.TopAuthors[j]
		if x.Count != y.Count {
			return x.Count > y.Count
		}
		return x.Author < y.Author
	})
	if len(st.TopAuthors) > TopAuthorsLimit {
		st.TopAuthors = st.TopAuthors[:TopAuthorsLimit]
	}
	return st
}
