// internal/validator/validator.go

// Package validator accumulates field-level validation failures so callers can
// report every invalid field at once instead of stopping at the first.
package validator

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// LanguageRX matches a two-letter language code such as "fr" or "en".
var LanguageRX = regexp.MustCompile(`^[a-z]{2}$`)

// Validator holds a map of field names to their validation error messages.
type Validator struct {
	Errors map[string]string
}

// New creates an empty Validator.
func New() *Validator {
	return &Validator{Errors: make(map[string]string)}
}

// Valid reports whether no errors were recorded.
func (v *Validator) Valid() bool {
	return len(v.Errors) == 0
}

// AddError records message for key unless key already failed; the first
// failure for a field is the one reported.
func (v *Validator) AddError(key, message string) {
	if _, exists := v.Errors[key]; !exists {
		v.Errors[key] = message
	}
}

// Check adds an error for key when ok is false.
//
//	v.Check(title != "", "title", "must be provided")
func (v *Validator) Check(ok bool, key, message string) {
	if !ok {
		v.AddError(key, message)
	}
}

// Err returns a *ValidationError carrying every recorded field, or nil.
func (v *Validator) Err() error {
	if v.Valid() {
		return nil
	}
	fields := make(map[string]string, len(v.Errors))
	for k, msg := range v.Errors {
		fields[k] = msg
	}
	return &ValidationError{Fields: fields}
}

// In reports whether value is one of list.
func In(value string, list ...string) bool {
	for _, item := range list {
		if value == item {
			return true
		}
	}
	return false
}

// Matches reports whether value matches rx.
func Matches(value string, rx *regexp.Regexp) bool {
	return rx.MatchString(value)
}

// ValidationError is a client-correctable failure listing every invalid field.
type ValidationError struct {
	Fields map[string]string `json:"fields"`
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s %s", k, e.Fields[k])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Field builds a ValidationError for a single field.
func Field(key, message string) error {
	return &ValidationError{Fields: map[string]string{key: message}}
}
