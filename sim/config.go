package sim

import (
	"fmt"
	"math"
)

// Clock fixes the discrete time grid of a run. All simulation activity
// happens on multiples of StepS; nothing observes time between steps.
type Clock struct {
	DurationS float64 // total simulated time in seconds
	StepS     float64 // step length in seconds
}

// Steps returns the number of discrete steps covering the configured
// duration, rounded to the nearest whole step.
func (c Clock) Steps() int {
	return int(math.Round(c.DurationS / c.StepS))
}

// LinkConfig groups the shared link's capacity parameters.
type LinkConfig struct {
	// CapacityBps is the link's line rate in bits per second.
	CapacityBps float64

	// BufferBytes is the shared buffer capacity in bytes. Only the
	// best-effort policy queues, but the value is validated for every run
	// so one scenario file works under either policy.
	BufferBytes int64
}

// Config is the complete parameter set for one simulation run. Build it from
// DefaultConfig, overlay scenario-file or flag values, then Validate.
type Config struct {
	Clock   Clock
	Link    LinkConfig
	Classes [NumClasses]TrafficClass

	// ClassOrder is the order in which admission and service walk the
	// classes each step. It must name every class exactly once. The order
	// is observable under contention: earlier classes grab shared buffer
	// space first.
	ClassOrder []Class

	// CongestionFactor scales every class's offered load under the qos
	// policy, modeling a peak-hour surge. The best-effort policy ignores
	// it.
	CongestionFactor float64
}

// StepBudgetBytes is the number of bytes the link can transmit in one step.
func (c *Config) StepBudgetBytes() int64 {
	return int64(math.Round(c.Link.CapacityBps * c.Clock.StepS / 8))
}

// DefaultConfig returns the reference scenario: a 100 Mbit/s link with a
// 250 kB shared buffer carrying voice, video and data at a combined mean
// offered load of 120 Mbit/s.
func DefaultConfig() Config {
	return Config{
		Clock: Clock{
			DurationS: 10.0,
			StepS:     0.01,
		},
		Link: LinkConfig{
			CapacityBps: 100e6,
			BufferBytes: 250_000,
		},
		Classes: [NumClasses]TrafficClass{
			ClassVoice: {MeanRateBps: 15e6, RateVariance: 0.3, PacketSizeBytes: 160},
			ClassVideo: {MeanRateBps: 40e6, RateVariance: 0.4, PacketSizeBytes: 1200},
			ClassData:  {MeanRateBps: 65e6, RateVariance: 0.5, PacketSizeBytes: 1024},
		},
		ClassOrder:       Classes(),
		CongestionFactor: 1.2,
	}
}

// Validate rejects parameter sets the engine cannot run meaningfully. It is
// called before any stepping so bad configurations fail fast instead of
// producing a plausible-looking result.
func (c *Config) Validate() error {
	if c.Clock.DurationS <= 0 {
		return fmt.Errorf("duration must be positive, got %g", c.Clock.DurationS)
	}
	if c.Clock.StepS <= 0 {
		return fmt.Errorf("step must be positive, got %g", c.Clock.StepS)
	}
	if c.Clock.StepS > c.Clock.DurationS {
		return fmt.Errorf("step %g exceeds duration %g", c.Clock.StepS, c.Clock.DurationS)
	}
	if c.Link.CapacityBps <= 0 {
		return fmt.Errorf("link capacity must be positive, got %g", c.Link.CapacityBps)
	}
	if c.Link.BufferBytes <= 0 {
		return fmt.Errorf("buffer capacity must be positive, got %d", c.Link.BufferBytes)
	}
	if c.StepBudgetBytes() == 0 {
		return fmt.Errorf("link cannot transmit a whole byte per step (%g bit/s over %gs steps)",
			c.Link.CapacityBps, c.Clock.StepS)
	}
	if c.CongestionFactor <= 0 {
		return fmt.Errorf("congestion factor must be positive, got %g", c.CongestionFactor)
	}
	for _, cl := range Classes() {
		tc := c.Classes[cl]
		if tc.MeanRateBps < 0 {
			return fmt.Errorf("%s mean rate must be non-negative, got %g", cl, tc.MeanRateBps)
		}
		if tc.RateVariance < 0 {
			return fmt.Errorf("%s rate variance must be non-negative, got %g", cl, tc.RateVariance)
		}
		if tc.PacketSizeBytes < 0 {
			return fmt.Errorf("%s packet size must be non-negative, got %d", cl, tc.PacketSizeBytes)
		}
	}
	if len(c.ClassOrder) != NumClasses {
		return fmt.Errorf("class order must list all %d classes, got %d", NumClasses, len(c.ClassOrder))
	}
	var seen [NumClasses]bool
	for _, cl := range c.ClassOrder {
		if cl < 0 || cl >= NumClasses {
			return fmt.Errorf("class order contains unknown class %d", int(cl))
		}
		if seen[cl] {
			return fmt.Errorf("class order lists %s twice", cl)
		}
		seen[cl] = true
	}
	return nil
}
