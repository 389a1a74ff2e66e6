package observe

import (
	"sort"
	"sync"
	"time"
)

type sample struct {
	timestamp time.Time
	duration  time.Duration
	outcome   string
	words     int
}

// StatsSnapshot is a point-in-time aggregate of recent reviews.
type StatsSnapshot struct {
	Count    int            `json:"count"`
	Outcomes map[string]int `json:"outcomes"`
	MinMs    float64        `json:"min_ms"`
	MaxMs    float64        `json:"max_ms"`
	AvgMs    float64        `json:"avg_ms"`
	P50Ms    float64        `json:"p50_ms"`
	P95Ms    float64        `json:"p95_ms"`
	P99Ms    float64        `json:"p99_ms"`
	AvgWords float64        `json:"avg_words"`
}

// ReviewStats tracks recent review latencies within a rolling window.
type ReviewStats struct {
	mu      sync.Mutex
	samples []sample
	maxAge  time.Duration
	now     func() time.Time
}

func NewReviewStats(maxAge time.Duration) *ReviewStats {
	if maxAge <= 0 {
		maxAge = time.Hour
	}
	return &ReviewStats{
		samples: make([]sample, 0, 256),
		maxAge:  maxAge,
		now:     time.Now,
	}
}

// Record adds one review. words only counts toward AvgWords for successful
// reviews.
func (s *ReviewStats) Record(d time.Duration, outcome string, words int) {
	if d < 0 {
		d = 0
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.pruneLocked(now)
	s.samples = append(s.samples, sample{
		timestamp: now,
		duration:  d,
		outcome:   outcome,
		words:     words,
	})
}

func (s *ReviewStats) Snapshot() StatsSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.pruneLocked(s.now())
	if len(s.samples) == 0 {
		return StatsSnapshot{Outcomes: map[string]int{}}
	}

	values := make([]float64, 0, len(s.samples))
	outcomes := make(map[string]int)
	var sum float64
	var words, ok int
	for _, sm := range s.samples {
		ms := float64(sm.duration) / float64(time.Millisecond)
		values = append(values, ms)
		sum += ms
		outcomes[sm.outcome]++
		if sm.outcome == OutcomeOK {
			words += sm.words
			ok++
		}
	}
	sort.Float64s(values)

	snap := StatsSnapshot{
		Count:    len(values),
		Outcomes: outcomes,
		MinMs:    values[0],
		MaxMs:    values[len(values)-1],
		AvgMs:    sum / float64(len(values)),
		P50Ms:    percentile(values, 50),
		P95Ms:    percentile(values, 95),
		P99Ms:    percentile(values, 99),
	}
	if ok > 0 {
		snap.AvgWords = float64(words) / float64(ok)
	}
	return snap
}

func (s *ReviewStats) pruneLocked(now time.Time) {
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

func percentile(sorted []float64, pct float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	if pct <= 0 {
		return sorted[0]
	}
	if pct >= 100 {
		return sorted[len(sorted)-1]
	}

	index := (float64(len(sorted)-1) * pct) / 100.0
	lower := int(index)
	upper := lower + 1
	if upper >= len(sorted) {
		return sorted[lower]
	}
	weight := index - float64(lower)
	return sorted[lower] + ((sorted[upper] - sorted[lower]) * weight)
}
