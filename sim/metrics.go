// Tracks per-run statistics: the wait-time sample and customer counters.

package sim

import (
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Metrics aggregates statistics about one run for final reporting.
// WaitTimes is append-only and holds exactly one entry per customer that
// was granted a server; customers still queued at the horizon never appear.
type Metrics struct {
	Arrivals  int       // Customers spawned by the arrival generator
	Completed int       // Customers that released their server
	WaitTimes []float64 // grant time − request time, in grant order
}

// NewMetrics creates an empty Metrics.
func NewMetrics() *Metrics {
	return &Metrics{
		WaitTimes: make([]float64, 0),
	}
}

// RecordWait appends one wait-time sample.
func (m *Metrics) RecordWait(wait float64) {
	m.WaitTimes = append(m.WaitTimes, wait)
}

// Served returns the number of customers that were granted a server.
func (m *Metrics) Served() int {
	return len(m.WaitTimes)
}

// AverageWait returns the mean wait, or 0 when no customer was served.
func (m *Metrics) AverageWait() float64 {
	if len(m.WaitTimes) == 0 {
		return 0
	}
	return stat.Mean(m.WaitTimes, nil)
}

// PeakWait returns the longest wait, or 0 when no customer was served.
func (m *Metrics) PeakWait() float64 {
	if len(m.WaitTimes) == 0 {
		return 0
	}
	return floats.Max(m.WaitTimes)
}

// WaitPercentile returns the p-th percentile (0 < p <= 100) of the wait sample
// using the empirical CDF, or 0 when no customer was served.
func (m *Metrics) WaitPercentile(p float64) float64 {
	if len(m.WaitTimes) == 0 {
		return 0
	}
	sorted := make([]float64, len(m.WaitTimes))
	copy(sorted, m.WaitTimes)
	sort.Float64s(sorted)
	return stat.Quantile(p/100, stat.Empirical, sorted, nil)
}
