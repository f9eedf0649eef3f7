package fetch

import (
	"context"
	"time"
)

// Retry configuration
const (
	MaxAttempts       = 3
	BaseBackoff       = 1 * time.Second
	MaxBackoff        = 5 * time.Second
	BackoffMultiplier = 2.0
)

// RetryConfig configures exponential backoff retry behavior
type RetryConfig struct {
	MaxAttempts int              // Maximum number of attempts, including the first
	BaseDelay   time.Duration    // Delay before the second attempt
	MaxDelay    time.Duration    // Ceiling on the delay between attempts
	Multiplier  float64          // Exponential backoff multiplier
	RetryIf     func(error) bool // Nil retries every failure
}

// DefaultRetryConfig returns the reference retry policy: three attempts,
// exponential backoff from one second capped at five, transport failures only.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts: MaxAttempts,
		BaseDelay:   BaseBackoff,
		MaxDelay:    MaxBackoff,
		Multiplier:  BackoffMultiplier,
		RetryIf:     Retryable,
	}
}

// retryWithBackoff executes a function with exponential backoff retry logic.
// Retry stops on context cancellation and on any error RetryIf rejects, both
// of which escalate as-is. Exhausting the attempt budget escalates a
// RetriesExhaustedError wrapping the last underlying error.
func retryWithBackoff[T any](ctx context.Context, config RetryConfig, fn func() (T, error)) (T, error) {
	var lastErr error
	var zero T
	backoff := config.BaseDelay

	for attempt := 0; attempt < config.MaxAttempts; attempt++ {
		result, err := fn()
		if err == nil {
			return result, nil
		}

		lastErr = err

		// Don't retry on context cancellation
		if ctx.Err() != nil {
			return zero, ctx.Err()
		}

		if config.RetryIf != nil && !config.RetryIf(err) {
			return zero, err
		}

		// Apply exponential backoff before next retry
		if attempt < config.MaxAttempts-1 {
			select {
			case <-ctx.Done():
				return zero, ctx.Err()
			case <-time.After(backoff):
				backoff = time.Duration(float64(backoff) * config.Multiplier)
				if backoff > config.MaxDelay {
					backoff = config.MaxDelay
				}
			}
		}
	}

	return zero, &RetriesExhaustedError{Attempts: config.MaxAttempts, Err: lastErr}
}
