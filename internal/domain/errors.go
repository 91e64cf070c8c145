package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound is matched by every "referenced record does not exist" error
var ErrNotFound = errors.New("not found")

// NotFoundError reports a missing simulation, allocation or history entry
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Resource, e.ID)
}

// Is makes errors.Is(err, ErrNotFound) true for any NotFoundError
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// NewNotFoundError creates a NotFoundError for the given resource and identifier
func NewNotFoundError(resource string, id fmt.Stringer) error {
	return &NotFoundError{Resource: resource, ID: id.String()}
}

// FieldError is a single invalid input field
// Field is a dotted path into the request, e.g. "simulationIds.2"
type FieldError struct {
	Field   string
	Message string
}

// ValidationError reports malformed or out-of-range input
type ValidationError struct {
	Fields []FieldError
}

// NewValidationError creates a ValidationError with a single field issue
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Fields: []FieldError{{Field: field, Message: message}}}
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return "invalid input: " + strings.Join(parts, "; ")
}

// Add records an invalid field
func (e *ValidationError) Add(field, message string) {
	e.Fields = append(e.Fields, FieldError{Field: field, Message: message})
}

// Merge folds another error into this one
// Non-validation errors are kept as a field-less issue
func (e *ValidationError) Merge(err error) {
	if err == nil {
		return
	}
	var other *ValidationError
	if errors.As(err, &other) {
		e.Fields = append(e.Fields, other.Fields...)
		return
	}
	e.Add("", err.Error())
}

// OrNil returns nil when no field was recorded
func (e *ValidationError) OrNil() error {
	if e == nil || len(e.Fields) == 0 {
		return nil
	}
	return e
}

// IsValidation reports whether err is (or wraps) a ValidationError
func IsValidation(err error) bool {
	var verr *ValidationError
	return errors.As(err, &verr)
}
