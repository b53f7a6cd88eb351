// internal/seed/seed.go

// Package seed loads an initial inventory from placards.json, shelves.json
// and books.json.
package seed

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"shelfkeeper/internal/apperr"
	"shelfkeeper/internal/catalog"
	"shelfkeeper/internal/storage"
	"shelfkeeper/internal/validator"
)

const (
	PlacardsFile = "placards.json"
	ShelvesFile  = "shelves.json"
	BooksFile    = "books.json"

	// DefaultPlacard receives every seeded shelf.
	DefaultPlacard = "A"
)

// Result counts what a load created and skipped.
type Result struct {
	Placards int `json:"placards"`
	Shelves  int `json:"shelves"`
	Books    int `json:"books"`
	Skipped  int `json:"skipped"`
}

type bookRecord struct {
	Title   string `json:"title"`
	Author  string `json:"author"`
	Edition string `json:"edition"`
	Count   *count `json:"count"`
	Placard string `json:"placard"`
	Shelf   string `json:"shelf"`
}

// count accepts a JSON number or numeric string. An absent or null count
// leaves the field nil, which the catalog treats as 1.
type count int

func (c *count) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" {
		*c = 1
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("invalid count %s: %w", data, err)
	}
	*c = count(n)
	return nil
}

// Loader applies seed files through the storage and book services so that
// every record passes the same validation as API writes.
type Loader struct {
	storage storage.Service
	books   catalog.Service
	logger  *slog.Logger
}

func NewLoader(storageSvc storage.Service, books catalog.Service, logger *slog.Logger) *Loader {
	return &Loader{storage: storageSvc, books: books, logger: logger}
}

// LoadDir is LoadFS over a directory on disk.
func (l *Loader) LoadDir(ctx context.Context, dir string) (Result, error) {
	return l.LoadFS(ctx, os.DirFS(dir))
}

// LoadFS creates missing placards, then shelves, then books. Missing files
// are skipped. Books are only loaded into an empty catalog; existing placards
// and shelves are left as they are.
func (l *Loader) LoadFS(ctx context.Context, fsys fs.FS) (Result, error) {
	var res Result

	var placards []string
	if err := readJSON(fsys, PlacardsFile, &placards); err != nil {
		return res, err
	}
	for _, name := range placards {
		created, err := l.ensurePlacard(ctx, name)
		if isInvalid(err) {
			l.logger.Warn("skipping seeded placard", "placard", name, "error", err)
			res.Skipped++
			continue
		}
		if err != nil {
			return res, err
		}
		if created {
			res.Placards++
		} else {
			res.Skipped++
		}
	}

	var shelves []string
	if err := readJSON(fsys, ShelvesFile, &shelves); err != nil {
		return res, err
	}
	for _, name := range shelves {
		created, err := l.ensureShelf(ctx, name)
		if isInvalid(err) {
			l.logger.Warn("skipping seeded shelf", "shelf", name, "placard", DefaultPlacard, "error", err)
			res.Skipped++
			continue
		}
		if err != nil {
			return res, err
		}
		if created {
			res.Shelves++
		} else {
			res.Skipped++
		}
	}

	var books []bookRecord
	if err := readJSON(fsys, BooksFile, &books); err != nil {
		return res, err
	}
	if len(books) == 0 {
		return res, nil
	}
	existing, err := l.books.ListBooks(ctx)
	if err != nil {
		return res, fmt.Errorf("failed to list books: %w", err)
	}
	if len(existing) > 0 {
		l.logger.Info("catalog not empty, skipping seeded books", "books", len(existing))
		res.Skipped += len(books)
		return res, nil
	}
	for _, rec := range books {
		var n *int
		if rec.Count != nil {
			v := int(*rec.Count)
			n = &v
		}
		_, err := l.books.CreateBook(ctx, catalog.BookInput{
			Title:    rec.Title,
			Author:   rec.Author,
			Edition:  rec.Edition,
			Count:    n,
			Placard:  rec.Placard,
			Shelf:    rec.Shelf,
			Category: Category(rec.Title),
		})
		if err != nil {
			if !isInvalid(err) {
				return res, fmt.Errorf("failed to create book %q: %w", rec.Title, err)
			}
			l.logger.Warn("skipping seeded book", "title", rec.Title, "error", err)
			res.Skipped++
			continue
		}
		res.Books++
	}
	return res, nil
}

func (l *Loader) ensurePlacard(ctx context.Context, name string) (bool, error) {
	_, err := l.storage.GetUnitByName(ctx, name)
	switch {
	case err == nil:
		return false, nil
	case !errors.Is(err, apperr.ErrNotFound):
		return false, fmt.Errorf("failed to look up placard %q: %w", name, err)
	}
	_, err = l.storage.CreateUnit(ctx, storage.UnitInput{
		Name:        name,
		Description: "Placard " + name,
	})
	if err != nil {
		return false, fmt.Errorf("failed to create placard %q: %w", name, err)
	}
	return true, nil
}

func (l *Loader) ensureShelf(ctx context.Context, name string) (bool, error) {
	_, err := l.storage.ResolveShelf(ctx, DefaultPlacard, name)
	switch {
	case err == nil:
		return false, nil
	case !errors.Is(err, apperr.ErrNotFound):
		return false, fmt.Errorf("failed to look up shelf %q: %w", name, err)
	}

	position := 1
	if n, err := strconv.Atoi(name); err == nil {
		position = n
	}
	_, err = l.storage.CreateShelf(ctx, storage.ShelfInput{
		Name:        name,
		PlacardName: DefaultPlacard,
		Position:    &position,
	})
	if err != nil {
		return false, fmt.Errorf("failed to create shelf %q: %w", name, err)
	}
	return true, nil
}

// Category guesses a category from title keywords.
func Category(title string) string {
	t := strings.ToLower(title)
	for _, word := range []string{"fable", "poème", "conte"} {
		if strings.Contains(t, word) {
			return "Littérature"
		}
	}
	return "Général"
}

func isInvalid(err error) bool {
	var verr *validator.ValidationError
	return errors.As(err, &verr)
}

func readJSON(fsys fs.FS, name string, dst any) error {
	data, err := fs.ReadFile(fsys, name)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", name, err)
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("failed to parse %s: %w", name, err)
	}
	return nil
}
