package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEstimateDelayJitter_ZeroLoadHitsBases(t *testing.T) {
	est := EstimateDelayJitter(0)

	assert.Equal(t, DelayJitter{DelayMs: 10, JitterMs: 2}, est[ClassVoice])
	assert.Equal(t, DelayJitter{DelayMs: 25, JitterMs: 5}, est[ClassVideo])
	assert.Equal(t, DelayJitter{DelayMs: 40, JitterMs: 10}, est[ClassData])
}

func TestEstimateDelayJitter_AffineInLoad(t *testing.T) {
	// At r = 1.5 every estimate is base + 1.5 × slope
	est := EstimateDelayJitter(1.5)

	assert.Equal(t, DelayJitter{DelayMs: 40, JitterMs: 9.5}, est[ClassVoice])
	assert.Equal(t, DelayJitter{DelayMs: 85, JitterMs: 23}, est[ClassVideo])
	assert.Equal(t, DelayJitter{DelayMs: 160, JitterMs: 47.5}, est[ClassData])
}

func TestEstimateDelayJitter_ClassOrderingHolds(t *testing.T) {
	// Voice must always estimate below video, video below data: the bases
	// and slopes are both ordered, so any non-negative load preserves it.
	for _, r := range []float64{0, 0.5, 1.0, 1.44, 3.0, 10.0} {
		est := EstimateDelayJitter(r)

		assert.Less(t, est[ClassVoice].DelayMs, est[ClassVideo].DelayMs, "r=%g", r)
		assert.Less(t, est[ClassVideo].DelayMs, est[ClassData].DelayMs, "r=%g", r)
		assert.Less(t, est[ClassVoice].JitterMs, est[ClassVideo].JitterMs, "r=%g", r)
		assert.Less(t, est[ClassVideo].JitterMs, est[ClassData].JitterMs, "r=%g", r)
	}
}

func TestEstimateDelayJitter_GrowsWithLoad(t *testing.T) {
	low := EstimateDelayJitter(0.8)
	high := EstimateDelayJitter(1.6)

	for _, c := range Classes() {
		assert.Greater(t, high[c].DelayMs, low[c].DelayMs, "class %v", c)
		assert.Greater(t, high[c].JitterMs, low[c].JitterMs, "class %v", c)
	}
}
