// internal/apperr/apperr_test.go
package apperr

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewReferentialWarning(t *testing.T) {
	assert.Nil(t, NewReferentialWarning("placard", "A", 0, 0))

	w := NewReferentialWarning("placard", "A", 2, 5)
	if assert.NotNil(t, w) {
		assert.Equal(t, 2, w.Shelves)
		assert.Equal(t, 5, w.Books)
		assert.Contains(t, w.Error(), `placard "A"`)
	}
}

func TestNotFound(t *testing.T) {
	err := NotFound("book", "42")
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.False(t, errors.Is(err, ErrUnavailable))
	assert.Equal(t, `book "42": not found`, err.Error())
}
