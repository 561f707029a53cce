package observability

import (
	"sort"
	"sync"
	"sync/atomic"
	"time"
)

// Metrics counts extraction requests by outcome.
type Metrics struct {
	mu sync.Mutex

	requestTotal   atomic.Int64
	requestSuccess atomic.Int64
	totalDuration  atomic.Int64 // milliseconds

	reasons map[string]int64
}

// NewMetrics creates a new metrics collector.
func NewMetrics() *Metrics {
	return &Metrics{
		reasons: make(map[string]int64),
	}
}

// RecordExtraction records one extraction outcome.
func (m *Metrics) RecordExtraction(successful bool, reason string, duration time.Duration) {
	m.requestTotal.Add(1)
	m.totalDuration.Add(duration.Milliseconds())
	if successful {
		m.requestSuccess.Add(1)
	}

	m.mu.Lock()
	m.reasons[reason]++
	m.mu.Unlock()
}

// ReasonCount is the number of extractions that ended with Reason.
type ReasonCount struct {
	Reason string `json:"reason"`
	Count  int64  `json:"count"`
}

// Snapshot is a point-in-time copy of the counters.
type Snapshot struct {
	TotalRequests int64         `json:"total_requests"`
	SuccessRate   float64       `json:"success_rate"`
	AvgLatencyMs  int64         `json:"avg_latency_ms"`
	Reasons       []ReasonCount `json:"reasons"`
}

// Snapshot returns the current counters, reasons sorted by name.
func (m *Metrics) Snapshot() Snapshot {
	total := m.requestTotal.Load()
	s := Snapshot{TotalRequests: total}
	if total > 0 {
		s.SuccessRate = float64(m.requestSuccess.Load()) / float64(total)
		s.AvgLatencyMs = m.totalDuration.Load() / total
	}

	m.mu.Lock()
	for reason, count := range m.reasons {
		s.Reasons = append(s.Reasons, ReasonCount{Reason: reason, Count: count})
	}
	m.mu.Unlock()

	sort.Slice(s.Reasons, func(i, j int) bool { return s.Reasons[i].Reason < s.Reasons[j].Reason })
	return s
}
