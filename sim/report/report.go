// Package report renders simulation results for people and for plotting
// pipelines. It reads the engine's Result surface and never mutates it.
package report

import (
	"fmt"
	"io"

	sim "github.com/link-sim/link-sim/sim"
)

// Print writes the per-class summary of one run to w. Delay and jitter rows
// appear only for qos results; the best-effort policy does not estimate them.
func Print(w io.Writer, cfg sim.Config, res *sim.Result) {
	fmt.Fprintf(w, "=== %s run: %.2fs over %.1f Mbit/s link ===\n",
		res.Policy, res.DurationS, cfg.Link.CapacityBps/1e6)

	fmt.Fprintf(w, "%-8s %14s %14s %14s %13s %8s %12s\n",
		"class", "offered(B)", "sent(B)", "dropped(B)", "tput(Mbit/s)", "loss", "pkts(approx)")
	for _, c := range sim.Classes() {
		fmt.Fprintf(w, "%-8s %14d %14d %14d %13.3f %7.2f%% %12s\n",
			c, res.TotalArrivals[c], res.TotalTransmitted[c], res.TotalDropped[c],
			res.ThroughputBps[c]/1e6, res.LossRatio[c]*100,
			approxPackets(res.TotalTransmitted[c], cfg.Classes[c].PacketSizeBytes))
	}

	if res.Policy == sim.PolicyQoS {
		fmt.Fprintf(w, "%-8s %12s %12s\n", "class", "delay(ms)", "jitter(ms)")
		for _, c := range sim.Classes() {
			fmt.Fprintf(w, "%-8s %12.1f %12.1f\n", c, res.Delay[c].DelayMs, res.Delay[c].JitterMs)
		}
	}

	util := sim.NewDistribution(res.Utilization)
	fmt.Fprintf(w, "link utilization: mean %.1f%%, p95 %.1f%%, max %.1f%%\n",
		util.Mean*100, util.P95*100, util.Max*100)
}

// PrintReplication writes the cross-run summary to w.
func PrintReplication(w io.Writer, sum *sim.ReplicationSummary) {
	fmt.Fprintf(w, "=== %s replication: %d runs ===\n", sum.Policy, sum.Runs)

	fmt.Fprintf(w, "%-8s %-14s %12s %12s %12s %12s %12s\n",
		"class", "metric", "mean", "p50", "p95", "min", "max")
	for _, c := range sim.Classes() {
		tp := sum.ThroughputBps[c]
		fmt.Fprintf(w, "%-8s %-14s %12.3f %12.3f %12.3f %12.3f %12.3f\n",
			c, "tput(Mbit/s)", tp.Mean/1e6, tp.P50/1e6, tp.P95/1e6, tp.Min/1e6, tp.Max/1e6)
		lr := sum.LossRatio[c]
		fmt.Fprintf(w, "%-8s %-14s %11.2f%% %11.2f%% %11.2f%% %11.2f%% %11.2f%%\n",
			c, "loss", lr.Mean*100, lr.P50*100, lr.P95*100, lr.Min*100, lr.Max*100)
	}

	u := sum.MeanUtilization
	fmt.Fprintf(w, "mean link utilization: mean %.1f%%, p95 %.1f%%, spread [%.1f%%, %.1f%%]\n",
		u.Mean*100, u.P95*100, u.Min*100, u.Max*100)
}

// approxPackets divides transmitted bytes by the class's nominal packet
// size. Classes without a configured size show a dash.
func approxPackets(transmittedBytes, packetSizeBytes int64) string {
	if packetSizeBytes <= 0 {
		return "-"
	}
	return fmt.Sprintf("%d", transmittedBytes/packetSizeBytes)
}
