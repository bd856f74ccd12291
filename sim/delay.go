package sim

// DelayJitter is a per-class latency estimate in milliseconds.
type DelayJitter struct {
	DelayMs  float64
	JitterMs float64
}

// delayCoeffs are the literal coefficients of the latency heuristic:
// estimate = base + slope × r, where r is total offered load over link
// capacity. Voice gets the lowest base and the flattest slope, data the
// highest; the numbers are the model contract, not a queueing-theory
// derivation.
var delayCoeffs = [NumClasses]struct {
	delayBaseMs   float64
	delaySlopeMs  float64
	jitterBaseMs  float64
	jitterSlopeMs float64
}{
	ClassVoice: {delayBaseMs: 10, delaySlopeMs: 20, jitterBaseMs: 2, jitterSlopeMs: 5},
	ClassVideo: {delayBaseMs: 25, delaySlopeMs: 40, jitterBaseMs: 5, jitterSlopeMs: 12},
	ClassData:  {delayBaseMs: 40, delaySlopeMs: 80, jitterBaseMs: 10, jitterSlopeMs: 25},
}

// EstimateDelayJitter evaluates the affine latency heuristic for every class
// at load ratio r. r above 1 is normal under congestion; the estimates keep
// growing linearly rather than saturating.
func EstimateDelayJitter(r float64) [NumClasses]DelayJitter {
	var out [NumClasses]DelayJitter
	for i := range out {
		k := delayCoeffs[i]
		out[i] = DelayJitter{
			DelayMs:  k.delayBaseMs + k.delaySlopeMs*r,
			JitterMs: k.jitterBaseMs + k.jitterSlopeMs*r,
		}
	}
	return out
}
