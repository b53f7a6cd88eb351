// internal/storage/memory.go
package storage

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"shelfkeeper/internal/apperr"
)

// MemoryRepository keeps units and shelves in process memory.
type MemoryRepository struct {
	mu      sync.RWMutex
	units   []Unit
	shelves []Shelf
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{}
}

func (m *MemoryRepository) InsertUnit(_ context.Context, u *Unit) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.units {
		if existing.Name == u.Name {
			return ErrDuplicate
		}
	}
	m.units = append(m.units, cloneUnit(*u))
	return nil
}

func (m *MemoryRepository) GetUnit(_ context.Context, id uuid.UUID) (*Unit, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, u := range m.units {
		if u.ID == id {
			c := cloneUnit(u)
			return &c, nil
		}
	}
	return nil, apperr.NotFound("placard", id.String())
}

func (m *MemoryRepository) GetUnitByName(_ context.Context, name string) (*Unit, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, u := range m.units {
		if u.Name == name {
			c := cloneUnit(u)
			return &c, nil
		}
	}
	return nil, apperr.NotFound("placard", name)
}

func (m *MemoryRepository) ListUnits(_ context.Context) ([]Unit, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]Unit, len(m.units))
	for i, u := range m.units {
		out[i] = cloneUnit(u)
	}
	return out, nil
}

func (m *MemoryRepository) DeleteUnit(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, u := range m.units {
		if u.ID == id {
			m.units = append(m.units[:i:i], m.units[i+1:]...)
			return nil
		}
	}
	return apperr.NotFound("placard", id.String())
}

func (m *MemoryRepository) InsertShelf(_ context.Context, s *Shelf) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.shelves {
		if existing.PlacardName == s.PlacardName && existing.Name == s.Name {
			return ErrDuplicate
		}
	}
	m.shelves = append(m.shelves, cloneShelf(*s))
	return nil
}

func (m *MemoryRepository) GetShelf(_ context.Context, id uuid.UUID) (*Shelf, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, s := range m.shelves {
		if s.ID == id {
			c := cloneShelf(s)
			return &c, nil
		}
	}
	return nil, apperr.NotFound("shelf", id.String())
}

func (m *MemoryRepository) FindShelf(_ context.Context, placard, name string) (*Shelf, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, s := range m.shelves {
		if s.PlacardName == placard && s.Name == name {
			c := cloneShelf(s)
			return &c, nil
		}
	}
	return nil, apperr.NotFound("shelf", placard+"/"+name)
}

// ListShelves returns shelves in insertion order; an empty placard returns all.
func (m *MemoryRepository) ListShelves(_ context.Context, placard string) ([]Shelf, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]Shelf, 0, len(m.shelves))
	for _, s := range m.shelves {
		if placard == "" || s.PlacardName == placard {
			out = append(out, cloneShelf(s))
		}
	}
	return out, nil
}

func (m *MemoryRepository) DeleteShelf(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, s := range m.shelves {
		if s.ID == id {
			m.shelves = append(m.shelves[:i:i], m.shelves[i+1:]...)
			return nil
		}
	}
	return apperr.NotFound("shelf", id.String())
}

func cloneUnit(u Unit) Unit {
	u.Capacity = cloneInt(u.Capacity)
	return u
}

func cloneShelf(s Shelf) Shelf {
	s.Position = cloneInt(s.Position)
	s.Capacity = cloneInt(s.Capacity)
	return s
}

func cloneInt(p *int) *int {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
