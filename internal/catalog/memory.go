// internal/catalog/memory.go
package catalog

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"shelfkeeper/internal/apperr"
)

// MemoryRepository keeps books in process memory.
type MemoryRepository struct {
	mu    sync.RWMutex
	books []Book
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{}
}

func (m *MemoryRepository) Insert(_ context.Context, b *Book) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.books = append(m.books, cloneBook(*b))
	return nil
}

func (m *MemoryRepository) Get(_ context.Context, id uuid.UUID) (*Book, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, b := range m.books {
		if b.ID == id {
			c := cloneBook(b)
			return &c, nil
		}
	}
	return nil, apperr.NotFound("book", id.String())
}

func (m *MemoryRepository) Update(_ context.Context, b *Book) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.books {
		if m.books[i].ID == b.ID {
			m.books[i] = cloneBook(*b)
			return nil
		}
	}
	return apperr.NotFound("book", b.ID.String())
}

func (m *MemoryRepository) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, b := range m.books {
		if b.ID == id {
			m.books = append(m.books[:i:i], m.books[i+1:]...)
			return nil
		}
	}
	return apperr.NotFound("book", id.String())
}

func (m *MemoryRepository) List(_ context.Context) ([]Book, error) {
	m.mu.RLock()
	out := make([]Book, len(m.books))
	for i, b := range m.books {
		out[i] = cloneBook(b)
	}
	m.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].DateAdded.Before(out[j].DateAdded)
	})
	return out, nil
}

func (m *MemoryRepository) CountPlaced(_ context.Context, placard, shelf string) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	n := 0
	for _, b := range m.books {
		if b.Placard == placard && (shelf == "" || b.Shelf == shelf) {
			n++
		}
	}
	return n, nil
}

func cloneBook(b Book) Book {
	if b.Pages != nil {
		p := *b.Pages
		b.Pages = &p
	}
	if b.PublicationYear != nil {
		y := *b.PublicationYear
		b.PublicationYear = &y
	}
	return b
}
