// internal/layout/stats_test.go
package layout

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"shelfkeeper/internal/catalog"
	"shelfkeeper/internal/snapshot"
	"shelfkeeper/internal/storage"
)

func TestSummarize(t *testing.T) {
	now := time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)
	snap := &snapshot.Snapshot{
		Units:   []storage.Unit{{Name: "A"}, {Name: "B"}},
		Shelves: []storage.Shelf{{Name: "1", PlacardName: "A"}, {Name: "2", PlacardName: "A"}, {Name: "1", PlacardName: "B"}},
		Books: []catalog.Book{
			{Author: "Hugo", Count: 3, Placard: "A", Category: "Roman", Status: catalog.StatusAvailable, DateAdded: now.Add(-time.Hour)},
			{Author: "Hugo", Count: 1, Placard: "A", Category: "Poésie", Status: catalog.StatusBorrowed, DateAdded: now.Add(-30 * 24 * time.Hour)},
			{Author: "Zola", Count: 2, Placard: "B", Status: catalog.StatusAvailable, DateAdded: now.Add(-6 * 24 * time.Hour)},
			{Author: "Balzac", Count: 2, Placard: "B", Category: "Roman", Status: catalog.StatusLost, DateAdded: now.Add(-8 * 24 * time.Hour)},
		},
	}

	st := Summarize(snap, now)

	assert.Equal(t, 8, st.TotalBooks)
	assert.Equal(t, 4, st.TotalTitles)
	assert.Equal(t, 2, st.TotalPlacards)
	assert.Equal(t, 3, st.TotalShelves)
	assert.Equal(t, 2, st.RecentAdditions)
	assert.Equal(t, map[string]int{"Roman": 5, "Poésie": 1, "uncategorized": 2}, st.BooksByCategory)
	assert.Equal(t, map[string]int{"available": 5, "borrowed": 1, "lost": 2}, st.BooksByStatus)
	assert.Equal(t, map[string]int{"A": 4, "B": 4}, st.BooksByPlacard)
	assert.Equal(t, []AuthorCount{{"Hugo", 4}, {"Balzac", 2}, {"Zola", 2}}, st.TopAuthors)
}

func TestSummarizeTopAuthorsLimit(t *testing.T) {
	var books []catalog.Book
	for i, a := range []string{"a", "b", "c", "d", "e", "f", "g"} {
		books = append(books, catalog.Book{Author: a, Count: i + 1})
	}

	st := Summarize(&snapshot.Snapshot{Books: books}, time.Now())

	assert.Len(t, st.TopAuthors, TopAuthorsLimit)
	assert.Equal(t, "g", st.TopAuthors[0].Author)
}

func TestSummarizeEmpty(t *testing.T) {
	st := Summarize(&snapshot.Snapshot{}, time.Now())
	assert.Equal(t, 0, st.TotalBooks)
	assert.NotNil(t, st.TopAuthors)
	assert.NotNil(t, st.BooksByCategory)
}
