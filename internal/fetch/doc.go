// Package fetch provides the HTTP transport layer for the upstream
// haiku-monument API: a throttled GET client with per-attempt deadlines and
// a retry policy with exponential backoff.
//
// # Failure Taxonomy
//
// Every failed Get resolves to exactly one class, checked in this order:
//
//   - the caller's context error, when the caller cancelled or its own
//     deadline passed (never retried)
//   - ErrTimeout, when the per-attempt deadline expired
//   - ErrNetwork, for any other transport failure (DNS, refused connection)
//   - StatusError, for a non-2xx response (transport succeeded; the body
//     text is preserved; never retried)
//
// Use errors.Is / errors.As to match:
//
//	body, err := client.Get(ctx, url)
//	var statusErr *fetch.StatusError
//	switch {
//	case errors.Is(err, fetch.ErrTimeout):
//	    // attempt deadline expired
//	case errors.As(err, &statusErr):
//	    // upstream said no: statusErr.StatusCode, statusErr.Body
//	}
//
// # Retry Policy
//
// GetWithRetry wraps Get in bounded retry with exponential backoff:
//
//	body, err := client.GetWithRetry(ctx, fetch.DefaultRetryConfig(), url)
//
// The default policy makes 3 attempts with delays of 1s then 2s, capped at
// 5s. Only ErrTimeout and ErrNetwork are retried; cancellation and status
// errors escalate immediately. When every attempt fails, the caller receives
// a RetriesExhaustedError wrapping the last error.
//
// # Throttling
//
// A token-bucket rate limiter spaces outbound requests. The limiter wait
// honors the caller's context, so cancellation during a throttle wait is
// reported as cancellation.
package fetch
