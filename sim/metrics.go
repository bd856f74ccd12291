package sim

import (
	"sort"

	"gonum.org/v1/gonum/stat"
)

// StepMetrics records one step's per-class byte volumes. The Transmitted and
// Dropped counters, summed over a run, feed the throughput and loss-ratio
// aggregates; Queued is the occupancy after the step's service phase.
type StepMetrics struct {
	Step        int
	Arrivals    [NumClasses]int64
	Admitted    [NumClasses]int64
	Dropped     [NumClasses]int64
	Transmitted [NumClasses]int64
	Queued      [NumClasses]int64
}

// Result is the stable output surface of one run: the per-step series plus
// the final per-class aggregates. Reporting and export read these fields and
// never reach back into simulator state.
type Result struct {
	Policy    string
	DurationS float64 // simulated time actually covered, steps × step length

	Steps       []StepMetrics
	Utilization []float64 // per-step transmitted bytes over the step budget

	TotalArrivals    [NumClasses]int64
	TotalTransmitted [NumClasses]int64
	TotalDropped     [NumClasses]int64

	ThroughputBps [NumClasses]float64
	LossRatio     [NumClasses]float64

	// Delay holds the heuristic latency estimates. Populated under the qos
	// policy only; the best-effort policy models no per-packet timing.
	Delay [NumClasses]DelayJitter
}

// Throughput converts a transmitted byte count over a run into bits per
// second.
func Throughput(transmittedBytes int64, durationS float64) float64 {
	if durationS <= 0 {
		return 0
	}
	return float64(transmittedBytes) * 8 / durationS
}

// LossRatio relates dropped bytes to the approximate offered volume
// meanRateBps × duration / 8. The denominator deliberately ignores per-step
// sampling noise so the ratio is comparable across seeds. A silent class
// reports ratio 0 rather than NaN.
func LossRatio(droppedBytes int64, meanRateBps, durationS float64) float64 {
	offeredBytes := meanRateBps * durationS / 8
	if offeredBytes == 0 {
		return 0
	}
	return float64(droppedBytes) / offeredBytes
}

// Distribution summarizes a metric series across steps or replicas.
type Distribution struct {
	Mean  float64
	P50   float64
	P95   float64
	P99   float64
	Min   float64
	Max   float64
	Count int
}

// NewDistribution computes a Distribution from raw values. The input is not
// modified. Returns the zero Distribution for empty input.
func NewDistribution(values []float64) Distribution {
	if len(values) == 0 {
		return Distribution{}
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	return Distribution{
		Mean:  stat.Mean(sorted, nil),
		P50:   stat.Quantile(0.50, stat.Empirical, sorted, nil),
		P95:   stat.Quantile(0.95, stat.Empirical, sorted, nil),
		P99:   stat.Quantile(0.99, stat.Empirical, sorted, nil),
		Min:   sorted[0],
		Max:   sorted[len(sorted)-1],
		Count: len(sorted),
	}
}
