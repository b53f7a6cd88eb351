// internal/lookup/isbn_test.go
package lookup

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeISBN(t *testing.T) {
	assert.Equal(t, "9782070612758", NormalizeISBN("978-2-07-061275-8"))
	assert.Equal(t, "207036002X", NormalizeISBN(" 2 07 036002 x "))
	assert.Equal(t, "", NormalizeISBN(""))
}

func TestValidISBN(t *testing.T) {
	valid := []string{"9782070612758", "207036002X", "2070360024"}
	for _, s := range valid {
		assert.True(t, ValidISBN(s), s)
	}
	invalid := []string{"", "12345", "X070360024", "97820706127X8", "978207061275", "20703600XX"}
	for _, s := range invalid {
		assert.False(t, ValidISBN(s), s)
	}
}
