package sim

import (
	"fmt"
	"math"

	"github.com/sirupsen/logrus"
)

// Service policies selectable per run.
const (
	// PolicyBestEffort queues all classes in one shared buffer and serves
	// them in proportion to their occupancy.
	PolicyBestEffort = "best-effort"

	// PolicyQoS partitions link capacity with the fixed-priority
	// closed-form split and models no queueing.
	PolicyQoS = "qos"
)

// ValidPolicies is the set of recognized policy names.
var ValidPolicies = map[string]bool{
	PolicyBestEffort: true,
	PolicyQoS:        true,
}

// Simulator runs the discrete-time loop for one policy over one Config.
// Each instance owns its entire state; parallel runs must each construct
// their own.
type Simulator struct {
	Config Config
	Policy string
	RNG    *PartitionedRNG

	// Samplers produce each class's offered volume per step. NewSimulator
	// fills them from the config; tests may swap in scripted samplers to
	// drive exact arithmetic through the loop.
	Samplers [NumClasses]VolumeSampler

	// State is the shared-buffer occupancy carried across steps under the
	// best-effort policy. The qos policy never queues and leaves it zero.
	State State

	StepCount int
}

// NewSimulator validates cfg and assembles a simulator for the named policy.
// Under the qos policy every class's offered load is scaled by the
// configured congestion factor.
func NewSimulator(cfg Config, policy string, key SimulationKey) (*Simulator, error) {
	if !ValidPolicies[policy] {
		return nil, fmt.Errorf("unknown policy %q", policy)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	s := &Simulator{
		Config: cfg,
		Policy: policy,
		RNG:    NewPartitionedRNG(key),
	}
	scale := 1.0
	if policy == PolicyQoS {
		scale = cfg.CongestionFactor
	}
	for _, c := range Classes() {
		s.Samplers[c] = NewVolumeSampler(cfg.Classes[c], cfg.Clock.StepS, scale)
	}
	return s, nil
}

// Run executes the full loop and assembles the Result. Each step samples
// every class's offered volume, applies the policy, and records the step's
// byte counters; aggregates are derived once at the end.
func (s *Simulator) Run() *Result {
	steps := s.Config.Clock.Steps()
	budget := s.Config.StepBudgetBytes()

	res := &Result{
		Policy:      s.Policy,
		DurationS:   float64(steps) * s.Config.Clock.StepS,
		Steps:       make([]StepMetrics, 0, steps),
		Utilization: make([]float64, 0, steps),
	}

	logrus.Infof("starting %s run: %d steps of %gs, link %.0f bit/s (%d bytes/step)",
		s.Policy, steps, s.Config.Clock.StepS, s.Config.Link.CapacityBps, budget)

	for n := 0; n < steps; n++ {
		var sm StepMetrics
		if s.Policy == PolicyQoS {
			sm = s.stepQoS(n)
		} else {
			sm = s.stepBestEffort(n, budget)
		}
		res.Steps = append(res.Steps, sm)

		var transmitted int64
		for _, c := range Classes() {
			res.TotalArrivals[c] += sm.Arrivals[c]
			res.TotalTransmitted[c] += sm.Transmitted[c]
			res.TotalDropped[c] += sm.Dropped[c]
			transmitted += sm.Transmitted[c]
		}
		res.Utilization = append(res.Utilization, float64(transmitted)/float64(budget))
	}
	s.StepCount = steps

	scale := 1.0
	if s.Policy == PolicyQoS {
		scale = s.Config.CongestionFactor
	}
	for _, c := range Classes() {
		res.ThroughputBps[c] = Throughput(res.TotalTransmitted[c], res.DurationS)
		res.LossRatio[c] = LossRatio(res.TotalDropped[c], s.Config.Classes[c].MeanRateBps*scale, res.DurationS)
	}
	if s.Policy == PolicyQoS {
		res.Delay = EstimateDelayJitter(s.congestedLoadRatio())
	}

	logrus.Infof("%s run complete: %d/%d/%d bytes dropped (voice/video/data)",
		s.Policy, res.TotalDropped[ClassVoice], res.TotalDropped[ClassVideo], res.TotalDropped[ClassData])
	return res
}

// stepBestEffort runs one generate → admit → serve cycle against the shared
// buffer, threading the occupancy state through to the next step.
func (s *Simulator) stepBestEffort(n int, budgetBytes int64) StepMetrics {
	var arrivals [NumClasses]int64
	for _, c := range Classes() {
		arrivals[c] = s.Samplers[c].SampleBytes(s.RNG.ForClass(c))
	}

	st, admitted, dropped := AdmitArrivals(s.State, s.Config.Link.BufferBytes, s.Config.ClassOrder, arrivals)
	st, served := ServeProportional(st, budgetBytes, s.Config.ClassOrder)
	s.State = st

	logrus.Debugf("[step %06d] arrivals=%v admitted=%v dropped=%v served=%v queued=%d",
		n, arrivals, admitted, dropped, served, st.Total)

	return StepMetrics{
		Step:        n,
		Arrivals:    arrivals,
		Admitted:    admitted,
		Dropped:     dropped,
		Transmitted: served,
		Queued:      st.Queued,
	}
}

// stepQoS samples congested offered loads and applies the closed-form
// capacity split. Service is instantaneous: a byte either transmits within
// its step or is dropped, so Admitted mirrors Transmitted and nothing
// carries over.
func (s *Simulator) stepQoS(n int) StepMetrics {
	stepS := s.Config.Clock.StepS

	var arrivals [NumClasses]int64
	var offered [NumClasses]float64
	for _, c := range Classes() {
		arrivals[c] = s.Samplers[c].SampleBytes(s.RNG.ForClass(c))
		offered[c] = float64(arrivals[c]) * 8 / stepS
	}

	alloc := AllocateQoS(s.Config.Link.CapacityBps, offered)

	sm := StepMetrics{Step: n, Arrivals: arrivals}
	for _, c := range Classes() {
		transmitted := int64(math.Round(alloc.Throughput[c] * stepS / 8))
		sm.Transmitted[c] = transmitted
		sm.Admitted[c] = transmitted
		sm.Dropped[c] = arrivals[c] - transmitted
	}

	logrus.Debugf("[step %06d] offered=%v capacity=%v loss=%v",
		n, offered, alloc.Capacity, alloc.Loss)
	return sm
}

// congestedLoadRatio is the total congestion-scaled mean offered load over
// link capacity, the r fed into the delay/jitter heuristic.
func (s *Simulator) congestedLoadRatio() float64 {
	var offered float64
	for _, c := range Classes() {
		offered += s.Config.Classes[c].MeanRateBps * s.Config.CongestionFactor
	}
	return offered / s.Config.Link.CapacityBps
}
