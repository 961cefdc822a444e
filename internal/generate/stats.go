package generate

import (
	"sort"
	"sync"
	"time"
)

type sample struct {
	timestamp    time.Time
	firstChunkMs int64 // -1 when no chunk arrived
	totalMs      int64
	failed       bool
}

// Percentiles aggregates one latency series.
type Percentiles struct {
	MinMs int64   `json:"min_ms"`
	MaxMs int64   `json:"max_ms"`
	AvgMs float64 `json:"avg_ms"`
	P50Ms float64 `json:"p50_ms"`
	P95Ms float64 `json:"p95_ms"`
	P99Ms float64 `json:"p99_ms"`
}

// StatsSnapshot is a point-in-time aggregate of generation latencies.
type StatsSnapshot struct {
	Count      int         `json:"count"`
	Failures   int         `json:"failures"`
	FirstChunk Percentiles `json:"first_chunk"`
	Total      Percentiles `json:"total"`
}

// LatencyStats tracks recent generation latencies within a rolling window.
type LatencyStats struct {
	mu      sync.Mutex
	samples []sample
	maxAge  time.Duration
}

func NewLatencyStats(maxAge time.Duration) *LatencyStats {
	if maxAge <= 0 {
		maxAge = time.Hour
	}
	return &LatencyStats{
		samples: make([]sample, 0, 256),
		maxAge:  maxAge,
	}
}

// Record adds one generation. firstChunk is zero or negative when the stream
// produced nothing.
func (s *LatencyStats) Record(firstChunk, total time.Duration, failed bool) {
	ttfc := firstChunk.Milliseconds()
	if firstChunk <= 0 {
		ttfc = -1
	}
	totalMs := total.Milliseconds()
	if totalMs < 0 {
		totalMs = 0
	}
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.pruneLocked(now)
	s.samples = append(s.samples, sample{
		timestamp:    now,
		firstChunkMs: ttfc,
		totalMs:      totalMs,
		failed:       failed,
	})
}

func (s *LatencyStats) Snapshot() StatsSnapshot {
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.pruneLocked(now)
	if len(s.samples) == 0 {
		return StatsSnapshot{}
	}

	var first, total []int64
	failures := 0
	for _, sm := range s.samples {
		total = append(total, sm.totalMs)
		if sm.firstChunkMs >= 0 {
			first = append(first, sm.firstChunkMs)
		}
		if sm.failed {
			failures++
		}
	}

	return StatsSnapshot{
		Count:      len(s.samples),
		Failures:   failures,
		FirstChunk: aggregate(first),
		Total:      aggregate(total),
	}
}

func (s *LatencyStats) pruneLocked(now time.Time) {
	cutoff := now.Add(-s.maxAge)
	writeIdx := 0
	for _, sm := range s.samples {
		if !sm.timestamp.Before(cutoff) {
			s.samples[writeIdx] = sm
			writeIdx++
		}
	}
	s.samples = s.samples[:writeIdx]
}

func aggregate(values []int64) Percentiles {
	if len(values) == 0 {
		return Percentiles{}
	}
	sort.Slice(values, func(i, j int) bool { return values[i] < values[j] })
	var sum int64
	for _, v := range values {
		sum += v
	}
	return Percentiles{
		MinMs: values[0],
		MaxMs: values[len(values)-1],
		AvgMs: float64(sum) / float64(len(values)),
		P50Ms: percentile(values, 50),
		P95Ms: percentile(values, 95),
		P99Ms: percentile(values, 99),
	}
}

func percentile(sortedValues []int64, pct float64) float64 {
	if len(sortedValues) == 0 {
		return 0
	}
	if pct <= 0 {
		return float64(sortedValues[0])
	}
	if pct >= 100 {
		return float64(sortedValues[len(sortedValues)-1])
	}

	index := (float64(len(sortedValues)-1) * pct) / 100.0
	lower := int(index)
	upper := lower + 1
	if upper >= len(sortedValues) {
		return float64(sortedValues[lower])
	}
	weight := index - float64(lower)
	lo := float64(sortedValues[lower])
	hi := float64(sortedValues[upper])
	return lo + ((hi - lo) * weight)
}
