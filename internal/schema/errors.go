// Package schema defines the request and response shapes of the API and the
// field-level validation applied before any handler logic runs.  Validation
// failures carry the offending field so clients get actionable 422 bodies.
package schema

import "strings"

// FieldError describes a single invalid field in a request payload.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError aggregates every invalid field found in a payload.  It is
// returned by the Validate methods in this package and mapped to HTTP 422.
type ValidationError struct {
	Fields []FieldError `json:"fields"`
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// add appends a field error, allocating the receiver lazily so callers can
// accumulate into a nil pointer.
func (e *ValidationError) add(field, message string) {
	e.Fields = append(e.Fields, FieldError{Field: field, Message: message})
}

// or returns nil when no field errors were collected, so Validate methods
// can end with `return errs.or()`.
func (e *ValidationError) or() error {
	if len(e.Fields) == 0 {
		return nil
	}
	return e
}
