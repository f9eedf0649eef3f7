package metrics

import (
	"context"
	"log/slog"
	"time"
)

// Status classifies overall validation health.
type Status string

const (
	StatusHealthy   Status = "healthy"
	StatusDegraded  Status = "degraded"
	StatusUnhealthy Status = "unhealthy"
)

// Health evaluation thresholds
const (
	// DefaultCheckInterval is how often the background checker evaluates.
	DefaultCheckInterval = 60 * time.Second

	// degradedWindow: a validation failure within this window marks the
	// server degraded.
	degradedWindow = 10 * time.Minute

	// unhealthyRatio and unhealthyMinRequests: once enough requests have
	// been seen, a failure ratio at or above this marks the server
	// unhealthy.
	unhealthyRatio       = 0.5
	unhealthyMinRequests = 10
)

// Checker periodically reads the validation metrics and logs health
// transitions. It holds no state beyond its dependencies; Evaluate can also
// be called directly, which is how the status tool reports health.
type Checker struct {
	metrics  *Metrics
	interval time.Duration
	logger   *slog.Logger
	now      func() time.Time
}

// NewChecker creates a health checker over m. A non-positive interval
// selects the default.
func NewChecker(m *Metrics, interval time.Duration, logger *slog.Logger) *Checker {
	if interval <= 0 {
		interval = DefaultCheckInterval
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Checker{
		metrics:  m,
		interval: interval,
		logger:   logger,
		now:      time.Now,
	}
}

// Evaluate classifies current health from a metrics snapshot.
func (c *Checker) Evaluate() Status {
	snap := c.metrics.Snapshot()

	if snap.TotalRequests >= unhealthyMinRequests {
		ratio := float64(snap.Failures) / float64(snap.TotalRequests)
		if ratio >= unhealthyRatio {
			return StatusUnhealthy
		}
	}

	if !snap.LastFailure.IsZero() && c.now().Sub(snap.LastFailure) <= degradedWindow {
		return StatusDegraded
	}

	return StatusHealthy
}

// Run evaluates on a fixed interval until ctx is cancelled.
func (c *Checker) Run(ctx context.Context) {
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.report()
		}
	}
}

func (c *Checker) report() {
	status := c.Evaluate()
	snap := c.metrics.Snapshot()

	attrs := []any{
		"status", string(status),
		"total_requests", snap.TotalRequests,
		"validation_failures", snap.Failures,
	}

	switch status {
	case StatusUnhealthy:
		c.logger.Error("validation health check", attrs...)
	case StatusDegraded:
		c.logger.Warn("validation health check", attrs...)
	default:
		c.logger.Debug("validation health check", attrs...)
	}
}
