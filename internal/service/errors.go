package service

import (
	"errors"
	"sort"
	"strings"
)

var (
	ErrEventNotFound      = errors.New("event not found")
	ErrEventNotDone       = errors.New("event is not done yet")
	ErrPhotoNotFound      = errors.New("photo not found")
	ErrVideoNotFound      = errors.New("video not found")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrNoSession          = errors.New("no active session")
	ErrUnsupportedFile    = errors.New("unsupported file type")
)

// ValidationErrors maps a form field to a message. They are raised before
// any call to the store or storage.
type ValidationErrors map[string]string

func (v ValidationErrors) Error() string {
	fields := make([]string, 0, len(v))
	for f := range v {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, f+": "+v[f])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (v ValidationErrors) Add(field, message string) {
	if _, ok := v[field]; !ok {
		v[field] = message
	}
}

// Err returns nil when nothing was added.
func (v ValidationErrors) Err() error {
	if len(v) == 0 {
		return nil
	}
	return v
}

func invalid(field, message string) error {
	return ValidationErrors{field: message}
}
