package pipeline

import (
	"sort"
	"sync"
	"time"
)

type runSample struct {
	at         time.Time
	durationMs int64
}

// StatsSnapshot is a point-in-time aggregate of recent run durations.
type StatsSnapshot struct {
	Count         int       `json:"count"`
	MinMs         int64     `json:"min_ms"`
	MaxMs         int64     `json:"max_ms"`
	AvgMs         float64   `json:"avg_ms"`
	P50Ms         float64   `json:"p50_ms"`
	P95Ms         float64   `json:"p95_ms"`
	P99Ms         float64   `json:"p99_ms"`
	LastRunID     string    `json:"last_run_id"`
	LastRunAt     time.Time `json:"last_run_at"`
	LastDocuments int       `json:"last_documents"`
	LastSkipped   int       `json:"last_skipped"`
}

// RunStats tracks rebuild durations within a rolling window, plus the
// outcome of the most recent run. Serve mode exposes it over the API.
type RunStats struct {
	mu      sync.Mutex
	samples []runSample
	maxAge  time.Duration

	lastRunID string
	lastRun   time.Time
	lastDocs  int
	lastSkips int
}

func NewRunStats(maxAge time.Duration) *RunStats {
	if maxAge <= 0 {
		maxAge = time.Hour
	}
	return &RunStats{
		samples: make([]runSample, 0, 64),
		maxAge:  maxAge,
	}
}

// Record adds one finished run to the window.
func (s *RunStats) Record(rep *Report) {
	durationMs := rep.Duration.Milliseconds()
	if durationMs < 0 {
		durationMs = 0
	}
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.pruneLocked(now)
	s.samples = append(s.samples, runSample{at: now, durationMs: durationMs})
	s.lastRunID = rep.RunID
	s.lastRun = now
	s.lastDocs = len(rep.Documents)
	s.lastSkips = len(rep.Skips)
}

func (s *RunStats) Snapshot() StatsSnapshot {
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.pruneLocked(now)
	snap := StatsSnapshot{
		LastRunID:     s.lastRunID,
		LastRunAt:     s.lastRun,
		LastDocuments: s.lastDocs,
		LastSkipped:   s.lastSkips,
	}
	if len(s.samples) == 0 {
		return snap
	}

	values := make([]int64, 0, len(s.samples))
	var sum int64
	for _, sm := range s.samples {
		values = append(values, sm.durationMs)
		sum += sm.durationMs
	}
	sort.Slice(values, func(i, j int) bool { return values[i] < values[j] })

	snap.Count = len(values)
	snap.MinMs = values[0]
	snap.MaxMs = values[len(values)-1]
	snap.AvgMs = float64(sum) / float64(len(values))
	snap.P50Ms = percentile(values, 50)
	snap.P95Ms = percentile(values, 95)
	snap.P99Ms = percentile(values, 99)
	return snap
}

func (s *RunStats) pruneLocked(now time.Time) {
	cutoff := now.Add(-s.maxAge)
	writeIdx := 0
	for _, sm := range s.samples {
		if !sm.at.Before(cutoff) {
			s.samples[writeIdx] = sm
			writeIdx++
		}
	}
	s.samples = s.samples[:writeIdx]
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
