package service

import (
	"errors"
	"strings"
)

var (
	ErrDuplicateAccount   = errors.New("duplicate_account")
	ErrInvalidCredentials = errors.New("invalid_credentials")
	ErrNotFound           = errors.New("not_found")

	ErrMalformedToken   = errors.New("malformed_token")
	ErrInvalidSignature = errors.New("invalid_signature")
	ErrExpired          = errors.New("token_expired")
)

// FieldError is one failed validation rule, keyed by the request field.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError reports every failing field of a request at once.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		msgs[i] = f.Field + ": " + f.Message
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}
