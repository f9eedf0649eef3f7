package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

// Client configuration
const (
	// DefaultTimeout bounds a single request attempt. Retries reset it.
	DefaultTimeout = 10 * time.Second

	// DefaultRequestsPerSecond throttles outbound calls to the upstream API.
	DefaultRequestsPerSecond = 10

	// MaxResponseBytes caps how much of a response body is read.
	MaxResponseBytes = 10 << 20

	// DefaultUserAgent identifies this server to the upstream API.
	DefaultUserAgent = "kuhi-mcp"
)

// Config holds Client construction parameters. Zero values select defaults.
type Config struct {
	Timeout           time.Duration
	RequestsPerSecond int
	UserAgent         string
	Logger            *slog.Logger
}

// Client issues throttled HTTP GET requests with per-attempt deadlines and
// classifies failures into the transport taxonomy: ErrTimeout, ErrNetwork,
// StatusError, or the caller's own context error.
type Client struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	timeout    time.Duration
	userAgent  string
	logger     *slog.Logger
}

// NewClient creates an upstream API client.
func NewClient(cfg Config) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.RequestsPerSecond <= 0 {
		cfg.RequestsPerSecond = DefaultRequestsPerSecond
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = DefaultUserAgent
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	return &Client{
		// The per-attempt deadline comes from a derived context rather than
		// http.Client.Timeout so caller cancellation stays distinguishable
		// from our own timer.
		httpClient: &http.Client{},
		limiter:    rate.NewLimiter(rate.Every(time.Second/time.Duration(cfg.RequestsPerSecond)), 1),
		timeout:    cfg.Timeout,
		userAgent:  cfg.UserAgent,
		logger:     cfg.Logger,
	}
}

// Get issues a single GET attempt against url and returns the response body.
// Failure outcomes: the caller's context error on cancellation, ErrTimeout on
// attempt deadline, ErrNetwork on any other transport failure, StatusError on
// a non-2xx response.
func (c *Client) Get(ctx context.Context, url string) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("%w: throttle: %v", ErrTimeout, err)
	}

	attemptCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(attemptCtx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: create request: %v", ErrNetwork, err)
	}

	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("X-Request-ID", requestID)

	c.logger.Debug("upstream request", "url", url, "request_id", requestID)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, c.classify(ctx, attemptCtx, url, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxResponseBytes))
	if err != nil {
		return nil, c.classify(ctx, attemptCtx, url, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	return body, nil
}

// GetWithRetry issues Get under the given retry policy.
func (c *Client) GetWithRetry(ctx context.Context, config RetryConfig, url string) ([]byte, error) {
	return retryWithBackoff(ctx, config, func() ([]byte, error) {
		return c.Get(ctx, url)
	})
}

// classify maps a transport error onto the failure taxonomy. The caller's
// context is checked first so cancellation is never misreported as a timeout.
func (c *Client) classify(ctx, attemptCtx context.Context, url string, err error) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}

	if errors.Is(attemptCtx.Err(), context.DeadlineExceeded) || isTimeout(err) {
		return fmt.Errorf("%w: GET %s after %s", ErrTimeout, url, c.timeout)
	}

	return fmt.Errorf("%w: GET %s: %v", ErrNetwork, url, err)
}

func isTimeout(err error) bool {
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
