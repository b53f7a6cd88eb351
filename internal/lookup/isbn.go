// internal/lookup/isbn.go
package lookup

import "strings"

// NormalizeISBN strips hyphens and spaces and upper-cases a trailing x.
// The result is not checked; see ValidISBN.
func NormalizeISBN(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))
	for _, r := range strings.TrimSpace(raw) {
		switch {
		case r == '-' || r == ' ':
		case r == 'x':
			b.WriteRune('X')
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ValidISBN reports whether a normalized ISBN has the ISBN-10 shape (nine
// digits then a digit or X) or the ISBN-13 shape (thirteen digits). Check
// digits are not verified.
func ValidISBN(isbn string) bool {
	switch len(isbn) {
	case 10:
		return allDigits(isbn[:9]) && (isDigit(isbn[9]) || isbn[9] == 'X')
	case 13:
		return allDigits(isbn)
	}
	return false
}

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if !isDigit(s[i]) {
			return false
		}
	}
	return true
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
