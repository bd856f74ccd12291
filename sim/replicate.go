package sim

import (
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"
)

// ReplicationSummary aggregates per-class metrics across independent runs of
// the same scenario under different seeds.
type ReplicationSummary struct {
	Policy string
	Runs   int

	ThroughputBps [NumClasses]Distribution
	LossRatio     [NumClasses]Distribution

	// MeanUtilization collects each run's mean link utilization.
	MeanUtilization Distribution
}

// Replicate executes runs independent simulations of cfg under policy, one
// goroutine per replica. Replica n's master seed derives from key and the
// replica's index, so replicas draw from disjoint streams and the whole
// summary reproduces from (cfg, policy, key, runs). Each replica owns its
// full simulator; goroutines share nothing but their result slots.
func Replicate(cfg Config, policy string, key SimulationKey, runs int) (*ReplicationSummary, error) {
	if runs <= 0 {
		return nil, fmt.Errorf("replication needs at least one run, got %d", runs)
	}

	sims := make([]*Simulator, runs)
	for n := range sims {
		replicaKey := NewSimulationKey(DeriveSeed(key, SubsystemReplica(n)))
		s, err := NewSimulator(cfg, policy, replicaKey)
		if err != nil {
			return nil, err
		}
		sims[n] = s
	}

	logrus.Infof("replicating %s scenario across %d runs", policy, runs)

	results := make([]*Result, runs)
	var wg sync.WaitGroup
	wg.Add(runs)
	for n := range sims {
		go func(n int) {
			defer wg.Done()
			results[n] = sims[n].Run()
		}(n)
	}
	wg.Wait()

	sum := &ReplicationSummary{Policy: policy, Runs: runs}
	tp := make([]float64, runs)
	lr := make([]float64, runs)
	for _, c := range Classes() {
		for n, r := range results {
			tp[n] = r.ThroughputBps[c]
			lr[n] = r.LossRatio[c]
		}
		sum.ThroughputBps[c] = NewDistribution(tp)
		sum.LossRatio[c] = NewDistribution(lr)
	}

	util := make([]float64, runs)
	for n, r := range results {
		util[n] = NewDistribution(r.Utilization).Mean
	}
	sum.MeanUtilization = NewDistribution(util)

	return sum, nil
}
