package metrics

import (
	"sync"
	"time"
)

// Metrics tracks schema-validation outcomes across every validated fetch.
// One instance is constructed at process start and injected into the
// resource accessor. Counters are process-lifetime only; nothing persists.
type Metrics struct {
	mu            sync.RWMutex
	totalRequests int64
	failures      int64
	lastFailure   time.Time
	byEndpoint    map[string]int64
}

// New creates an empty metrics recorder.
func New() *Metrics {
	return &Metrics{
		byEndpoint: make(map[string]int64),
	}
}

// RecordRequest counts one validated fetch.
func (m *Metrics) RecordRequest() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.totalRequests++
}

// RecordFailure counts one validation failure against endpoint and stamps
// the failure time.
func (m *Metrics) RecordFailure(endpoint string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failures++
	m.lastFailure = time.Now()
	m.byEndpoint[endpoint]++
}

// FailureCount returns the recorded failure count for one endpoint.
func (m *Metrics) FailureCount(endpoint string) int64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.byEndpoint[endpoint]
}

// Snapshot is a point-in-time copy of the counters.
type Snapshot struct {
	TotalRequests int64
	Failures      int64
	LastFailure   time.Time
	ByEndpoint    map[string]int64
}

// Snapshot returns a copy of the current counters. The returned map is the
// caller's to keep.
func (m *Metrics) Snapshot() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()

	byEndpoint := make(map[string]int64, len(m.byEndpoint))
	for endpoint, count := range m.byEndpoint {
		byEndpoint[endpoint] = count
	}

	return Snapshot{
		TotalRequests: m.totalRequests,
		Failures:      m.failures,
		LastFailure:   m.lastFailure,
		ByEndpoint:    byEndpoint,
	}
}
