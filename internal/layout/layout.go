// internal/layout/layout.go

// Package layout groups books by the unit and shelf they sit on.
package layout

import (
	"bytes"
	"encoding/json"

	"shelfkeeper/internal/catalog"
	"shelfkeeper/internal/storage"
)

// ShelfLayout is one shelf and the books placed on it.
type ShelfLayout struct {
	Name      string         `json:"-"`
	BookCount int            `json:"book_count"`
	Capacity  *int           `json:"capacity,omitempty"`
	Free      *int           `json:"free,omitempty"`
	Books     []catalog.Book `json:"books"`
}

// UnitLayout is one unit with its shelves in catalog order.
type UnitLayout struct {
	Name        string
	StorageType storage.StorageType
	TotalBooks  int
	Capacity    *int
	Free        *int
	Shelves     []ShelfLayout
}

// Layout is every unit in insertion order. Unplaced holds books whose
// placement does not resolve to an existing shelf.
type Layout struct {
	Units    []UnitLayout
	Unplaced []catalog.Book
}

type placement struct{ placard, shelf string }

// Build groups books onto shelves. total_books and book_count sum copies,
// and shelves without books are kept. Inputs are not modified.
func Build(units []storage.Unit, shelves []storage.Shelf, books []catalog.Book) Layout {
	ordered := make([]storage.Shelf, len(shelves))
	copy(ordered, shelves)
	storage.OrderShelves(ordered, units)

	byPlacement := make(map[placement][]catalog.Book)
	for _, b := range books {
		key := placement{b.Placard, b.Shelf}
		byPlacement[key] = append(byPlacement[key], b)
	}

	unitIndex := make(map[string]int, len(units))
	out := Layout{Units: make([]UnitLayout, len(units))}
	for i, u := range units {
		unitIndex[u.Name] = i
		out.Units[i] = UnitLayout{
			Name:        u.Name,
			StorageType: u.StorageType,
			Capacity:    u.Capacity,
			Shelves:     []ShelfLayout{},
		}
	}

	placed := make(map[placement]bool)
	for _, s := range ordered {
		i, ok := unitIndex[s.PlacardName]
		if !ok {
			continue
		}
		key := placement{s.PlacardName, s.Name}
		placed[key] = true

		sl := ShelfLayout{Name: s.Name, Capacity: s.Capacity, Books: []catalog.Book{}}
		for _, b := range byPlacement[key] {
			sl.Books = append(sl.Books, b)
			sl.BookCount += b.Count
		}
		sl.Free = free(sl.Capacity, sl.BookCount)

		out.Units[i].Shelves = append(out.Units[i].Shelves, sl)
		out.Units[i].TotalBooks += sl.BookCount
	}
	for i := range out.Units {
		out.Units[i].Free = free(out.Units[i].Capacity, out.Units[i].TotalBooks)
	}

	for _, b := range books {
		if !placed[placement{b.Placard, b.Shelf}] {
			out.Unplaced = append(out.Unplaced, b)
		}
	}
	return out
}

// free is the remaining room, negative when over capacity, or nil without one.
func free(capacity *int, used int) *int {
	if capacity == nil {
		return nil
	}
	f := *capacity - used
	return &f
}

// Unit returns the layout of the named unit.
func (l Layout) Unit(name string) (UnitLayout, bool) {
	for _, u := range l.Units {
		if u.Name == name {
			return u, true
		}
	}
	return UnitLayout{}, false
}

// MarshalJSON encodes the layout as an object keyed by unit name, in catalog order.
func (l Layout) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, u := range l.Units {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writeMember(&buf, u.Name, u); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// MarshalJSON encodes the unit with its shelves keyed by shelf name, in catalog order.
func (u UnitLayout) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')

	fields := []struct {
		name  string
		value any
		skip  bool
	}{
		{"total_books", u.TotalBooks, false},
		{"storage_type", u.StorageType, u.StorageType == ""},
		{"capacity", u.Capacity, u.Capacity == nil},
		{"free", u.Free, u.Free == nil},
	}
	for _, f := range fields {
		if f.skip {
			continue
		}
		if err := writeMember(&buf, f.name, f.value); err != nil {
			return nil, err
		}
		buf.WriteByte(',')
	}

	buf.WriteString(`"shelves":{`)
	for i, s := range u.Shelves {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writeMember(&buf, s.Name, s); err != nil {
			return nil, err
		}
	}
	buf.WriteString("}}")
	return buf.Bytes(), nil
}

func writeMember(buf *bytes.Buffer, key string, value any) error {
	k, err := json.Marshal(key)
	if err != nil {
		return err
	}
	v, err := json.Marshal(value)
	if err != nil {
		return err
	}
	buf.Write(k)
	buf.WriteByte(':')
	buf.Write(v)
	return nil
}
