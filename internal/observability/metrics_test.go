package observability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMetricsSnapshot(t *testing.T) {
	m := NewMetrics()

	m.RecordRequest("/cases", "GET", 200, 5*time.Millisecond)
	m.RecordRequest("/cases", "GET", 200, 7*time.Millisecond)
	m.RecordRequest("/cases/abc", "PUT", 404, time.Millisecond)
	m.RecordError("/cases/abc", "PUT", "NOT_FOUND")

	requests, errors := m.Snapshot()
	assert.Equal(t, int64(2), requests["/cases|GET|200"])
	assert.Equal(t, int64(1), requests["/cases/abc|PUT|404"])
	assert.Equal(t, int64(1), errors["/cases/abc|PUT|NOT_FOUND"])
}

func TestMetricsNilReceiver(t *testing.T) {
	var m *Metrics

	m.RecordRequest("/cases", "GET", 200, time.Millisecond)
	m.RecordError("/cases", "GET", "UPSTREAM_FAILURE")

	requests, errors := m.Snapshot()
	assert.Empty(t, requests)
	assert.Empty(t, errors)
}
