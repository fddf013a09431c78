package pipeline

import (
	"sync"

	"gonum.org/v1/gonum/stat"
)

// FailureRecord is the last typed failure observed, with the turn it
// occurred on.
type FailureRecord struct {
	Kind DiagnosisKind
	Turn int
}

// MetricsSummary is Metrics enriched with descriptive statistics over the
// rolling grounding-rate window — an ambient supplement beyond what
// spec.md names, in the spirit of the teacher's GetStatus/GetMetrics
// accessors layered on raw counters (core/memory/memory.go's
// MetricsProvider).
type MetricsSummary struct {
	Turns              int
	ParserHits         int
	ParserMisses       int
	VacuumTriggers     int
	BudgetExhaustions  int
	LastFailure        *FailureRecord
	GroundingRateMean  float64
	GroundingRateStdev float64
}

// Metrics is the pipeline's rolling state, per spec.md §3 and §4.3.7.
// Grounding-rate series are kept newest-first, bounded to MetricsWindow.
type Metrics struct {
	mu sync.Mutex

	turns             int
	parserHits        int
	parserMisses      int
	groundingRates    []float64
	relationRates     []float64
	vacuumTriggers    int
	budgetExhaustions int
	lastFailure       *FailureRecord
}

// NewMetrics creates a fresh, zeroed metrics block.
func NewMetrics() *Metrics {
	return &Metrics{}
}

func prependBounded(series []float64, v float64, cap int) []float64 {
	series = append([]float64{v}, series...)
	if len(series) > cap {
		series = series[:cap]
	}
	return series
}

// RecordTurn updates every rolling counter for one completed turn, per
// spec.md §4.3.7.
func (m *Metrics) RecordTurn(sem *NormalizedSemantic, cg Grounding, rg RelationGrounding, d Diagnosis, rescued bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.turns++
	if !sem.Fallback {
		m.parserHits++
		m.groundingRates = prependBounded(m.groundingRates, cg.Rate, MetricsWindow)
		m.relationRates = prependBounded(m.relationRates, rg.Rate, MetricsWindow)
	} else {
		m.parserMisses++
		m.lastFailure = &FailureRecord{Kind: ParserMiss, Turn: m.turns}
	}
	if d.Kind == BudgetExhausted {
		m.budgetExhaustions++
	}
	if rescued {
		m.vacuumTriggers++
	}
}

// lastTwoZero reports whether the two most recent entries of series are
// both exactly zero. Fewer than two entries never satisfies this.
func lastTwoZero(series []float64) bool {
	if len(series) < 2 {
		return false
	}
	return series[0] == 0 && series[1] == 0
}

// RescueShouldTrigger implements spec.md §4.3.6's trigger condition: a
// non-healthy diagnosis AND the last 2 entries of the rolling
// grounding-rates series are both zero.
func (m *Metrics) RescueShouldTrigger(d Diagnosis) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if d.Kind == Healthy {
		return false
	}
	return lastTwoZero(m.groundingRates)
}

// ShouldAddSuffix is the pure read-only signal external producers consult
// before each prompt, per spec.md §4.3.7.
func (m *Metrics) ShouldAddSuffix() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.turns < 3 {
		return true
	}
	if float64(m.parserMisses) > float64(m.turns)/2 {
		return true
	}
	return lastTwoZero(m.groundingRates)
}

// Summary reports the raw counters plus mean/stddev of the grounding-rate
// window, computed with gonum/stat.
func (m *Metrics) Summary() MetricsSummary {
	m.mu.Lock()
	defer m.mu.Unlock()
	s := MetricsSummary{
		Turns:             m.turns,
		ParserHits:        m.parserHits,
		ParserMisses:      m.parserMisses,
		VacuumTriggers:    m.vacuumTriggers,
		BudgetExhaustions: m.budgetExhaustions,
		LastFailure:       m.lastFailure,
	}
	if len(m.groundingRates) > 0 {
		s.GroundingRateMean = stat.Mean(m.groundingRates, nil)
		if len(m.groundingRates) > 1 {
			s.GroundingRateStdev = stat.StdDev(m.groundingRates, nil)
		}
	}
	return s
}
