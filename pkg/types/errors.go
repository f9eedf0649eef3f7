package types

import (
	"errors"
	"fmt"
)

// Domain errors for entity validation
var (
	// Monument errors
	ErrInvalidMonumentID    = errors.New("monument ID must be positive")
	ErrMissingCanonicalName = errors.New("monument canonical name is required")

	// Poet errors
	ErrInvalidPoetID   = errors.New("poet ID must be positive")
	ErrMissingPoetName = errors.New("poet name is required")

	// Location errors
	ErrInvalidLocationID   = errors.New("location ID must be positive")
	ErrLatitudeOutOfRange  = errors.New("latitude must be between -90 and 90")
	ErrLongitudeOutOfRange = errors.New("longitude must be between -180 and 180")

	// Source errors
	ErrInvalidSourceID    = errors.New("source ID must be positive")
	ErrMissingSourceTitle = errors.New("source title is required")

	// Poem and inscription errors
	ErrInvalidPoemID        = errors.New("poem ID must be positive")
	ErrEmptyPoemText        = errors.New("poem text cannot be empty")
	ErrInvalidSeason        = errors.New("season must be one of 春, 夏, 秋, 冬")
	ErrInvalidInscriptionID = errors.New("inscription ID must be positive")
)

// ErrMalformedJSON is the hard decoding failure class: an empty or
// syntactically unparsable upstream body. Structural mismatches against the
// expected shape are not this error; they degrade gracefully instead.
var ErrMalformedJSON = errors.New("malformed JSON response")

// DomainValidationError reports caller-supplied input rejected before any
// network call is made.
type DomainValidationError struct {
	Field  string
	Reason string
}

func (e *DomainValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// NewDomainValidationError builds a DomainValidationError for the given
// input field.
func NewDomainValidationError(field, reason string) *DomainValidationError {
	return &DomainValidationError{Field: field, Reason: reason}
}
