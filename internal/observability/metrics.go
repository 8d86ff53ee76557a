package observability

import (
	"strconv"
	"sync"
	"time"
)

// Metrics keeps in-memory request counters keyed by path, method and
// status, with cumulative latency per key, plus error counters keyed by
// domain error code.
type Metrics struct {
	mu       sync.Mutex
	requests map[string]requestStats
	errors   map[string]int64
}

type requestStats struct {
	Count   int64
	Elapsed time.Duration
}

// NewMetrics initializes metrics storage.
func NewMetrics() *Metrics {
	return &Metrics{
		requests: make(map[string]requestStats),
		errors:   make(map[string]int64),
	}
}

// RecordRequest counts one completed request under path|method|status.
func (m *Metrics) RecordRequest(path, method string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	key := path + "|" + method + "|" + strconv.Itoa(status)
	m.mu.Lock()
	defer m.mu.Unlock()
	stats := m.requests[key]
	stats.Count++
	stats.Elapsed += duration
	m.requests[key] = stats
}

// RecordError counts one failed request under path|method|code.
func (m *Metrics) RecordError(path, method, code string) {
	if m == nil {
		return
	}
	key := path + "|" + method + "|" + code
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errors[key]++
}

// Snapshot returns the request and error totals accumulated so far. Used
// for the shutdown summary log.
func (m *Metrics) Snapshot() (requests map[string]int64, errors map[string]int64) {
	requests = make(map[string]int64)
	errors = make(map[string]int64)
	if m == nil {
		return requests, errors
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for key, stats := range m.requests {
		requests[key] = stats.Count
	}
	for key, count := range m.errors {
		errors[key] = count
	}
	return requests, errors
}
