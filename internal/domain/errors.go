package domain

import (
	"errors"
	"strings"
)

var (
	// ErrNotFound is returned when an identity or document lookup has no match.
	// It never says which of the supplied fields failed to match.
	ErrNotFound = errors.New("not found")

	// ErrStoreUnavailable wraps any backend failure of the document store.
	ErrStoreUnavailable = errors.New("document store unavailable")

	// ErrUploadFailed wraps blob store failures. The dependent record is never written.
	ErrUploadFailed = errors.New("attachment upload failed")

	// ErrNotConfirmed is returned when a submission skipped the confirmation step.
	ErrNotConfirmed = errors.New("submission was not confirmed")

	// ErrInvoiceNotPayable is returned when the selected invoice is not outstanding/failed
	// or belongs to another resident.
	ErrInvoiceNotPayable = errors.New("invoice is not payable")
)

// FieldError is a single user-visible problem with one input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError collects every violated field of one submission.
type ValidationError struct {
	Fields []FieldError `json:"fields"`
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (e *ValidationError) Add(field, message string) {
	e.Fields = append(e.Fields, FieldError{Field: field, Message: message})
}

// Has reports whether field has at least one recorded problem.
func (e *ValidationError) Has(field string) bool {
	for _, f := range e.Fields {
		if f.Field == field {
			return true
		}
	}
	return false
}

// OrNil returns nil when nothing was recorded, so callers can `return v.OrNil()`.
func (e *ValidationError) OrNil() error {
	if e == nil || len(e.Fields) == 0 {
		return nil
	}
	return e
}

// IsValidation reports whether err is (or wraps) a *ValidationError.
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}
