// internal/export/export_test.go
package export

import (
	"bytes"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"shelfkeeper/internal/catalog"
)

func TestWriteWorkbookPreservesOrder(t *testing.T) {
	added := time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC)
	pages := 96
	books := []catalog.Book{
		{ID: uuid.New(), Title: "Zadig", Author: "Voltaire", Count: 2, Placard: "A", Shelf: "1", Language: "fr", Status: catalog.StatusAvailable, DateAdded: added, LastModified: added},
		{ID: uuid.New(), Title: "Candide", Author: "Voltaire", Count: 1, Placard: "A", Shelf: "2", Pages: &pages, Language: "fr", Status: catalog.StatusLost, DateAdded: added, LastModified: added},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteWorkbook(&buf, books))

	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(SheetName)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, Columns, rows[0])

	assert.Equal(t, books[0].ID.String(), rows[1][0])
	assert.Equal(t, "Zadig", rows[1][1])
	assert.Equal(t, "2", rows[1][7])
	assert.Equal(t, "", rows[1][12])
	assert.Equal(t, "Candide", rows[2][1])
	assert.Equal(t, "96", rows[2][12])
	assert.Equal(t, "lost", rows[2][15])
	assert.Equal(t, "2024-05-01T09:30:00Z", rows[2][16])
}

func TestWriteWorkbookEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteWorkbook(&buf, nil))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(SheetName)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestFileName(t *testing.T) {
	assert.Equal(t, "books_20240501_093000.xlsx", FileName(time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC)))
}
