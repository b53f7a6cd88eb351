// internal/validator/validator_test.go
package validator

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidator_CollectsEveryField(t *testing.T) {
	v := New()
	v.Check(false, "title", "must be provided")
	v.Check(false, "author", "must be provided")
	v.Check(true, "count", "must be at least 1")
	v.Check(false, "title", "second message is ignored")

	require.False(t, v.Valid())
	err := v.Err()

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, map[string]string{
		"title":  "must be provided",
		"author": "must be provided",
	}, verr.Fields)
	assert.Equal(t, "validation failed: author must be provided; title must be provided", err.Error())
}

func TestValidator_ValidHasNoError(t *testing.T) {
	v := New()
	v.Check(true, "title", "must be provided")
	assert.True(t, v.Valid())
	assert.NoError(t, v.Err())
}

func TestHelpers(t *testing.T) {
	assert.True(t, In("bin", "cabinet", "bin"))
	assert.False(t, In("box", "cabinet", "bin"))
	assert.True(t, Matches("fr", LanguageRX))
	assert.False(t, Matches("FRA", LanguageRX))

	var verr *ValidationError
	require.True(t, errors.As(Field("placard", "does not exist"), &verr))
	assert.Equal(t, "does not exist", verr.Fields["placard"])
}
