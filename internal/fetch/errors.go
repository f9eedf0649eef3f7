package fetch

import (
	"errors"
	"fmt"
)

// Transport failure classes
var (
	// ErrTimeout reports a single request attempt exceeding its deadline.
	ErrTimeout = errors.New("request timed out")

	// ErrNetwork reports a transport-level failure such as a DNS error or a
	// refused connection.
	ErrNetwork = errors.New("network error")
)

// StatusError reports a non-2xx HTTP response. The transport succeeded, so
// status errors are never retried; the response body text is carried for
// diagnostics.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("api error %d", e.StatusCode)
	}
	return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Body)
}

// RetriesExhaustedError reports that every attempt of a retried operation
// failed. It wraps the last underlying error.
type RetriesExhaustedError struct {
	Attempts int
	Err      error
}

func (e *RetriesExhaustedError) Error() string {
	return fmt.Sprintf("giving up after %d attempts: %v", e.Attempts, e.Err)
}

func (e *RetriesExhaustedError) Unwrap() error {
	return e.Err
}

// Retryable reports whether err is a transport failure the retry policy may
// attempt again. Cancellation and HTTP status errors are not retryable.
func Retryable(err error) bool {
	return errors.Is(err, ErrTimeout) || errors.Is(err, ErrNetwork)
}
