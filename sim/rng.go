package sim

import (
	"fmt"
	"hash/fnv"

	"golang.org/x/exp/rand"
)

// === SimulationKey ===

// SimulationKey uniquely identifies a reproducible simulation run.
// Two simulations with the same SimulationKey and identical configuration
// MUST produce bit-for-bit identical results.
type SimulationKey int64

// NewSimulationKey creates a SimulationKey from a seed value.
func NewSimulationKey(seed int64) SimulationKey {
	return SimulationKey(seed)
}

// === Subsystem Names ===

// SubsystemClass returns the RNG subsystem name for one traffic class's
// arrival draws. Giving every class its own stream keeps a class's arrivals
// independent of the configured class walk order.
func SubsystemClass(c Class) string {
	return "class_" + c.String()
}

// SubsystemReplica returns the subsystem name for Monte Carlo replica n.
// Replication derives each replica's master seed from this name rather than
// instantiating a stream.
func SubsystemReplica(n int) string {
	return fmt.Sprintf("replica_%d", n)
}

// === PartitionedRNG ===

// PartitionedRNG provides deterministic, isolated RNG instances per subsystem.
//
// Derivation formula: masterSeed XOR fnv1a64(subsystemName). See DeriveSeed.
//
// Thread-safety: NOT thread-safe. Each simulation run owns its own instance;
// parallel replicas must never share one.
type PartitionedRNG struct {
	key        SimulationKey
	subsystems map[string]*rand.Rand
}

// NewPartitionedRNG creates a PartitionedRNG from a SimulationKey.
func NewPartitionedRNG(key SimulationKey) *PartitionedRNG {
	return &PartitionedRNG{
		key:        key,
		subsystems: make(map[string]*rand.Rand),
	}
}

// ForSubsystem returns a deterministically-seeded RNG for the named subsystem.
// The same subsystem name always returns the same *rand.Rand instance (cached).
// Never returns nil.
func (p *PartitionedRNG) ForSubsystem(name string) *rand.Rand {
	if rng, ok := p.subsystems[name]; ok {
		return rng
	}

	rng := rand.New(rand.NewSource(uint64(DeriveSeed(p.key, name))))
	p.subsystems[name] = rng
	return rng
}

// ForClass returns the RNG stream feeding one traffic class's volume sampler.
func (p *PartitionedRNG) ForClass(c Class) *rand.Rand {
	return p.ForSubsystem(SubsystemClass(c))
}

// Key returns the SimulationKey used to create this PartitionedRNG.
func (p *PartitionedRNG) Key() SimulationKey {
	return p.key
}

// DeriveSeed computes the derived seed for a named subsystem without
// instantiating a stream: masterSeed XOR fnv1a64(subsystemName).
func DeriveSeed(key SimulationKey, name string) int64 {
	return int64(key) ^ fnv1a64(name)
}

// fnv1a64 computes a 64-bit FNV-1a hash of the input string.
func fnv1a64(s string) int64 {
	h := fnv.New64a()
	h.Write([]byte(s))
	return int64(h.Sum64())
}
