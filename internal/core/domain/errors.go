package domain

import (
	"errors"
	"strings"
)

var (
	ErrAuthenticationRequired = errors.New("authentication required")
	ErrInvalidToken           = errors.New("invalid token")
	ErrForbidden              = errors.New("access forbidden")

	ErrInvalidProduct  = errors.New("invalid product")
	ErrInvalidID       = errors.New("invalid id")
	ErrProductNotFound = errors.New("product not found")
	ErrStorage         = errors.New("storage failure")

	ErrUserExists         = errors.New("user already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidUser        = errors.New("invalid user")

	ErrBookNotFound = errors.New("book not found")
	ErrInvalidBook  = errors.New("invalid book")
)

// FieldError describes a single rejected field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError collects every field that failed validation. It matches
// its Kind through errors.Is, so callers can test for ErrInvalidProduct or
// ErrInvalidBook without unpacking the field list.
type ValidationError struct {
	Kind   error
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, f.Message)
	}
	return e.Kind.Error() + ": " + strings.Join(msgs, "; ")
}

func (e *ValidationError) Is(target error) bool {
	return target == e.Kind
}
