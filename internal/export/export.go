// internal/export/export.go

// Package export writes book listings as spreadsheets.
package export

import (
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"

	"shelfkeeper/internal/catalog"
)

// SheetName is the worksheet holding the books.
const SheetName = "Books"

// ContentType is the MIME type of the workbook.
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Columns is the header row; each book field maps to one column.
var Columns = []string{
	"ID", "Title", "Author", "Edition", "Publisher", "ISBN", "Barcode", "Count",
	"Placard", "Shelf", "Description", "Language", "Pages", "Publication year",
	"Category", "Status", "Date added", "Last modified",
}

// WriteWorkbook writes books, one row each and in the given order, as an xlsx workbook.
func WriteWorkbook(w io.Writer, books []catalog.Book) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}
	header, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	sw, err := f.NewStreamWriter(SheetName)
	if err != nil {
		return fmt.Errorf("failed to open stream writer: %w", err)
	}
	if err := sw.SetColWidth(2, 3, 32); err != nil {
		return fmt.Errorf("failed to size columns: %w", err)
	}

	cells := make([]any, len(Columns))
	for i, c := range Columns {
		cells[i] = c
	}
	if err := sw.SetRow("A1", cells, excelize.RowOpts{StyleID: header}); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for i, b := range books {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := sw.SetRow(cell, row(b)); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}
	if err := sw.Flush(); err != nil {
		return fmt.Errorf("failed to flush sheet: %w", err)
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

// FileName is the download name for a workbook produced at t.
func FileName(t time.Time) string {
	return fmt.Sprintf("books_%s.xlsx", t.UTC().Format("20060102_150405"))
}

func row(b catalog.Book) []any {
	return []any{
		b.ID.String(),
		b.Title,
		b.Author,
		b.Edition,
		b.Publisher,
		b.ISBN,
		b.Barcode,
		b.Count,
		b.Placard,
		b.Shelf,
		b.Description,
		b.Language,
		optional(b.Pages),
		optional(b.PublicationYear),
		b.Category,
		string(b.Status),
		b.DateAdded.UTC().Format(time.RFC3339),
		b.LastModified.UTC().Format(time.RFC3339),
	}
}

func optional(p *int) any {
	if p == nil {
		return ""
	}
	return *p
}
