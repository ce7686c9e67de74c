// Package metrics tracks request counts for a preview session.
package metrics

import (
	"fmt"
	"sync/atomic"
	"time"
)

// ServeMetrics counts what the server did. Counters are safe for concurrent
// use.
type ServeMetrics struct {
	StartTime time.Time

	renders     atomic.Int64
	statics     atomic.Int64
	notFound    atomic.Int64
	failures    atomic.Int64
	renderNanos atomic.Int64
}

// NewServeMetrics creates a new metrics instance.
func NewServeMetrics() *ServeMetrics {
	return &ServeMetrics{
		StartTime: time.Now(),
	}
}

// RecordRender counts a successful page render that took d.
func (m *ServeMetrics) RecordRender(d time.Duration) {
	m.renders.Add(1)
	m.renderNanos.Add(int64(d))
}

// RecordStatic counts a stylesheet response.
func (m *ServeMetrics) RecordStatic() {
	m.statics.Add(1)
}

// RecordNotFound counts a 404.
func (m *ServeMetrics) RecordNotFound() {
	m.notFound.Add(1)
}

// RecordFailure counts a failed render or read.
func (m *ServeMetrics) RecordFailure() {
	m.failures.Add(1)
}

// Snapshot is a point-in-time copy of the counters.
type Snapshot struct {
	Renders   int64
	Statics   int64
	NotFound  int64
	Failures  int64
	AvgRender time.Duration
	Uptime    time.Duration
}

// Snapshot returns the current counter values.
func (m *ServeMetrics) Snapshot() Snapshot {
	s := Snapshot{
		Renders:  m.renders.Load(),
		Statics:  m.statics.Load(),
		NotFound: m.notFound.Load(),
		Failures: m.failures.Load(),
		Uptime:   time.Since(m.StartTime),
	}
	if s.Renders > 0 {
		s.AvgRender = time.Duration(m.renderNanos.Load() / s.Renders)
	}
	return s
}

// Total returns the number of requests answered.
func (s Snapshot) Total() int64 {
	return s.Renders + s.Statics + s.NotFound + s.Failures
}

// String returns a single-line summary.
func (s Snapshot) String() string {
	return fmt.Sprintf("served %d requests in %v (%d pages, %d static, %d not found, %d failed, avg render %v)",
		s.Total(),
		s.Uptime.Round(time.Second),
		s.Renders,
		s.Statics,
		s.NotFound,
		s.Failures,
		s.AvgRender,
	)
}
