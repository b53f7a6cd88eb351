// internal/audit/checks.go
package audit

import (
	"fmt"

	"shelfkeeper/internal/lookup"
	"shelfkeeper/internal/snapshot"
)

// RegisterDefaults registers the standard placement-integrity checks.
func (a *Auditor) RegisterDefaults() {
	a.Register(DanglingPlacements())
	a.Register(OrphanShelves())
	a.Register(ShelvesOverCapacity())
	a.Register(UnitsOverCapacity())
	a.Register(InvalidISBNs())
}

var none = Threshold{Operator: "==", Value: 0}

// DanglingPlacements counts books whose placard/shelf pair names no existing shelf.
func DanglingPlacements() Check {
	return Check{
		Name:        "dangling-placements",
		Description: "books placed on a shelf or placard that does not exist",
		Threshold:   none,
		Measure: func(s *snapshot.Snapshot) Measurement {
			shelves := shelfSet(s)
			var m Measurement
			for _, b := range s.Books {
				if !shelves[b.Placard+"\x00"+b.Shelf] {
					m.Offenders = append(m.Offenders, fmt.Sprintf("%s (%s/%s)", b.ID, b.Placard, b.Shelf))
				}
			}
			m.Value = float64(len(m.Offenders))
			return m
		},
	}
}

// OrphanShelves counts shelves whose unit was deleted.
func OrphanShelves() Check {
	return Check{
		Name:        "orphan-shelves",
		Description: "shelves belonging to a placard that does not exist",
		Threshold:   none,
		Measure: func(s *snapshot.Snapshot) Measurement {
			units := make(map[string]bool, len(s.Units))
			for _, u := range s.Units {
				units[u.Name] = true
			}
			var m Measurement
			for _, sh := range s.Shelves {
				if !units[sh.PlacardName] {
					m.Offenders = append(m.Offenders, sh.PlacardName+"/"+sh.Name)
				}
			}
			m.Value = float64(len(m.Offenders))
			return m
		},
	}
}

// ShelvesOverCapacity counts shelves holding more copies than their capacity.
func ShelvesOverCapacity() Check {
	return Check{
		Name:        "shelves-over-capacity",
		Description: "shelves holding more copies than their capacity",
		Threshold:   none,
		Measure: func(s *snapshot.Snapshot) Measurement {
			load := make(map[string]int)
			for _, b := range s.Books {
				load[b.Placard+"\x00"+b.Shelf] += b.Count
			}
			var m Measurement
			for _, sh := range s.Shelves {
				if sh.Capacity == nil {
					continue
				}
				if n := load[sh.PlacardName+"\x00"+sh.Name]; n > *sh.Capacity {
					m.Offenders = append(m.Offenders, fmt.Sprintf("%s/%s (%d/%d)", sh.PlacardName, sh.Name, n, *sh.Capacity))
				}
			}
			m.Value = float64(len(m.Offenders))
			return m
		},
	}
}

// UnitsOverCapacity counts units holding more copies than their capacity.
func UnitsOverCapacity() Check {
	return Check{
		Name:        "placards-over-capacity",
		Description: "placards holding more copies than their capacity",
		Threshold:   none,
		Measure: func(s *snapshot.Snapshot) Measurement {
			load := make(map[string]int)
			for _, b := range s.Books {
				load[b.Placard] += b.Count
			}
			var m Measurement
			for _, u := range s.Units {
				if u.Capacity == nil {
					continue
				}
				if n := load[u.Name]; n > *u.Capacity {
					m.Offenders = append(m.Offenders, fmt.Sprintf("%s (%d/%d)", u.Name, n, *u.Capacity))
				}
			}
			m.Value = float64(len(m.Offenders))
			return m
		},
	}
}

// InvalidISBNs counts books whose stored ISBN is not well formed.
func InvalidISBNs() Check {
	return Check{
		Name:        "invalid-isbns",
		Description: "books with a malformed ISBN",
		Threshold:   none,
		Measure: func(s *snapshot.Snapshot) Measurement {
			var m Measurement
			for _, b := range s.Books {
				if b.ISBN != "" && !lookup.ValidISBN(b.ISBN) {
					m.Offenders = append(m.Offenders, fmt.Sprintf("%s (%s)", b.ID, b.ISBN))
				}
			}
			m.Value = float64(len(m.Offenders))
			return m
		},
	}
}

// shelfSet holds the placard/shelf keys of shelves whose unit still exists.
func shelfSet(s *snapshot.Snapshot) map[string]bool {
	units := make(map[string]bool, len(s.Units))
	for _, u := range s.Units {
		units[u.Name] = true
	}
	set := make(map[string]bool, len(s.Shelves))
	for _, sh := range s.Shelves {
		if units[sh.PlacardName] {
			set[sh.PlacardName+"\x00"+sh.Name] = true
		}
	}
	return set
}
