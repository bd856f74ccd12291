package sim

import (
	"math"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// VolumeSampler produces one step's offered byte volume for a traffic class.
// Implementations must be deterministic given the RNG stream they are handed.
type VolumeSampler interface {
	// SampleBytes returns a non-negative byte count for one step.
	SampleBytes(rng *rand.Rand) int64
}

// GaussianVolumeSampler scales a mean per-step volume by a multiplier drawn
// from Normal(1, sigma). Negative draws clamp to zero, so a heavily bursty
// class can fall silent for a step but never offers negative volume.
type GaussianVolumeSampler struct {
	MeanBytes float64
	Sigma     float64
}

func (s *GaussianVolumeSampler) SampleBytes(rng *rand.Rand) int64 {
	factor := distuv.Normal{Mu: 1, Sigma: s.Sigma, Src: rng}.Rand()
	if factor < 0 {
		factor = 0
	}
	return int64(math.Round(s.MeanBytes * factor))
}

// ConstantVolumeSampler offers the same volume every step (constant bit
// rate). It never touches the RNG, so a zero-variance class consumes nothing
// from its stream.
type ConstantVolumeSampler struct {
	Bytes int64
}

func (s *ConstantVolumeSampler) SampleBytes(_ *rand.Rand) int64 {
	return s.Bytes
}

// NewVolumeSampler builds the per-step sampler for one class. The mean step
// volume is rate × scale × step / 8; scale carries the congestion multiplier
// under the qos policy and is 1 otherwise. Zero rate variance yields the
// deterministic constant sampler.
func NewVolumeSampler(tc TrafficClass, stepS, scale float64) VolumeSampler {
	meanBytes := tc.MeanRateBps * scale * stepS / 8
	if tc.RateVariance == 0 {
		return &ConstantVolumeSampler{Bytes: int64(math.Round(meanBytes))}
	}
	return &GaussianVolumeSampler{MeanBytes: meanBytes, Sigma: tc.RateVariance}
}
