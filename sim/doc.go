// Package sim provides the discrete-time engine behind linksim: a shared
// network link carrying voice, video and data traffic through fixed steps.
//
// # Reading Guide
//
// Start with these three files to understand the engine:
//   - class.go: the fixed three-class set and per-class load parameters
//   - simulator.go: the per-step generate → admit → serve loop and the two
//     service policies
//   - buffer.go, scheduler.go: shared-buffer admission and proportional
//     service for the best-effort policy
//
// The qos policy replaces queueing with the closed-form capacity split in
// qos.go plus the latency heuristic in delay.go. replicate.go fans a
// scenario out across seeds; metrics.go defines the Result surface that
// sim/report renders.
//
// # Determinism
//
// All randomness flows through a PartitionedRNG seeded from a SimulationKey;
// the same key and configuration reproduce a run bit for bit. Buffer state
// is a plain value threaded through each step, and replicas derive disjoint
// seeds, so parallel runs never share mutable state.
package sim
