// internal/storage/order.go
package storage

import (
	"sort"
	"strconv"
	"strings"
)

// OrderShelves sorts shelves in catalog order: by their unit's position in
// units, then positioned shelves ascending, then unpositioned ones, with
// names breaking ties in natural order. Shelves of unknown units sort last.
func OrderShelves(shelves []Shelf, units []Unit) {
	rank := make(map[string]int, len(units))
	for i, u := range units {
		rank[u.Name] = i
	}
	unitRank := func(name string) int {
		if r, ok := rank[name]; ok {
			return r
		}
		return len(units)
	}

	sort.SliceStable(shelves, func(i, j int) bool {
		a, b := shelves[i], shelves[j]
		if ra, rb := unitRank(a.PlacardName), unitRank(b.PlacardName); ra != rb {
			return ra < rb
		}
		if a.PlacardName != b.PlacardName {
			return NaturalLess(a.PlacardName, b.PlacardName)
		}
		switch {
		case a.Position != nil && b.Position == nil:
			return true
		case a.Position == nil && b.Position != nil:
			return false
		case a.Position != nil && *a.Position != *b.Position:
			return *a.Position < *b.Position
		}
		return NaturalLess(a.Name, b.Name)
	})
}

// NaturalLess compares names so that embedded numbers order numerically:
// "2" < "10", "Shelf 9" < "Shelf 12".
func NaturalLess(a, b string) bool {
	ca, cb := chunks(a), chunks(b)
	for i := 0; i < len(ca) && i < len(cb); i++ {
		x, y := ca[i], cb[i]
		nx, errX := strconv.Atoi(x)
		ny, errY := strconv.Atoi(y)
		switch {
		case errX == nil && errY == nil:
			if nx != ny {
				return nx < ny
			}
			if len(x) != len(y) {
				return len(x) < len(y)
			}
		case errX == nil:
			return true
		case errY == nil:
			return false
		default:
			lx, ly := strings.ToLower(x), strings.ToLower(y)
			if lx != ly {
				return lx < ly
			}
			if x != y {
				return x < y
			}
		}
	}
	return len(ca) < len(cb)
}

func chunks(s string) []string {
	var out []string
	start := 0
	for i := 1; i <= len(s); i++ {
		if i == len(s) || isDigit(s[i]) != isDigit(s[start]) {
			out = append(out, s[start:i])
			start = i
		}
	}
	return out
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
