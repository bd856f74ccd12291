package cmd

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	sim "github.com/link-sim/link-sim/sim"
	"github.com/link-sim/link-sim/sim/report"
)

var (
	// CLI flags shared by all simulation subcommands
	seed         int64    // Seed for reproducible offered-load generation
	logLevel     string   // Log verbosity level
	scenarioFile string   // Optional YAML scenario file
	seriesCSV    string   // Optional per-step series CSV output path
	durationS    float64  // Simulated duration (seconds)
	stepS        float64  // Step length (seconds)
	linkCapacity float64  // Link capacity (bits per second)
	bufferBytes  int64    // Shared buffer capacity (bytes)
	congestion   float64  // Offered-load multiplier for the qos policy
	classOrder   []string // Admission/service walk order

	// CLI flags for per-class offered load
	voiceRate     float64 // Voice mean rate (bits per second)
	voiceVariance float64 // Voice rate variance
	videoRate     float64 // Video mean rate (bits per second)
	videoVariance float64 // Video rate variance
	dataRate      float64 // Data mean rate (bits per second)
	dataVariance  float64 // Data rate variance

	// CLI flags for the replicate subcommand
	runs            int    // Number of independent replicas
	replicatePolicy string // Policy replicated across seeds
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "linksim",
	Short: "Discrete-time simulator for a shared link carrying voice, video and data",
}

// runCmd simulates the best-effort policy: one shared buffer, proportional
// service, drops only on overflow.
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the best-effort shared-buffer simulation",
	Run: func(cmd *cobra.Command, args []string) {
		setupLogging()
		cfg := mustBuildConfig(cmd)
		runOnce(cfg, sim.PolicyBestEffort)
	},
}

// qosCmd simulates the capacity-partitioned policy under congestion.
var qosCmd = &cobra.Command{
	Use:   "qos",
	Short: "Run the fixed-priority QoS simulation under congestion",
	Run: func(cmd *cobra.Command, args []string) {
		setupLogging()
		cfg := mustBuildConfig(cmd)
		runOnce(cfg, sim.PolicyQoS)
	},
}

// replicateCmd fans one scenario out across independent seeds and
// summarizes the per-class metrics.
var replicateCmd = &cobra.Command{
	Use:   "replicate",
	Short: "Run independent replicas of a scenario and summarize metrics",
	Run: func(cmd *cobra.Command, args []string) {
		setupLogging()
		if !sim.ValidPolicies[replicatePolicy] {
			logrus.Fatalf("Unknown policy %q; valid policies are %q and %q",
				replicatePolicy, sim.PolicyBestEffort, sim.PolicyQoS)
		}
		cfg := mustBuildConfig(cmd)
		summary, err := sim.Replicate(cfg, replicatePolicy, sim.NewSimulationKey(seed), runs)
		if err != nil {
			logrus.Fatalf("Replication failed: %v", err)
		}
		report.PrintReplication(os.Stdout, summary)
	},
}

func setupLogging() {
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		logrus.Fatalf("Invalid log level: %s", logLevel)
	}
	logrus.SetLevel(level)
}

// mustBuildConfig assembles the run configuration or exits.
func mustBuildConfig(cmd *cobra.Command) sim.Config {
	cfg, err := buildConfig(cmd)
	if err != nil {
		logrus.Fatalf("Unusable configuration: %v", err)
	}
	return cfg
}

// buildConfig layers the run configuration: defaults first, then the
// scenario file if given, then any flag the user explicitly set. Flags win
// so a scenario file can be tweaked from the command line without editing.
func buildConfig(cmd *cobra.Command) (sim.Config, error) {
	cfg := sim.DefaultConfig()

	if scenarioFile != "" {
		sc, err := LoadScenarioConfig(scenarioFile)
		if err != nil {
			return sim.Config{}, err
		}
		if err := sc.Apply(&cfg); err != nil {
			return sim.Config{}, err
		}
	}

	flags := cmd.Flags()
	if flags.Changed("duration") {
		cfg.Clock.DurationS = durationS
	}
	if flags.Changed("step") {
		cfg.Clock.StepS = stepS
	}
	if flags.Changed("link-capacity") {
		cfg.Link.CapacityBps = linkCapacity
	}
	if flags.Changed("buffer-bytes") {
		cfg.Link.BufferBytes = bufferBytes
	}
	if flags.Changed("congestion") {
		cfg.CongestionFactor = congestion
	}
	if flags.Changed("class-order") {
		order, err := parseClassOrder(classOrder)
		if err != nil {
			return sim.Config{}, err
		}
		cfg.ClassOrder = order
	}
	if flags.Changed("voice-rate") {
		cfg.Classes[sim.ClassVoice].MeanRateBps = voiceRate
	}
	if flags.Changed("voice-variance") {
		cfg.Classes[sim.ClassVoice].RateVariance = voiceVariance
	}
	if flags.Changed("video-rate") {
		cfg.Classes[sim.ClassVideo].MeanRateBps = videoRate
	}
	if flags.Changed("video-variance") {
		cfg.Classes[sim.ClassVideo].RateVariance = videoVariance
	}
	if flags.Changed("data-rate") {
		cfg.Classes[sim.ClassData].MeanRateBps = dataRate
	}
	if flags.Changed("data-variance") {
		cfg.Classes[sim.ClassData].RateVariance = dataVariance
	}
	return cfg, nil
}

// runOnce executes one simulation and renders its report, plus the per-step
// CSV series when requested.
func runOnce(cfg sim.Config, policy string) {
	s, err := sim.NewSimulator(cfg, policy, sim.NewSimulationKey(seed))
	if err != nil {
		logrus.Fatalf("Unusable configuration: %v", err)
	}
	res := s.Run()
	report.Print(os.Stdout, cfg, res)

	if seriesCSV != "" {
		if err := report.WriteSeriesFile(seriesCSV, res); err != nil {
			logrus.Fatalf("Writing series CSV: %v", err)
		}
		logrus.Infof("per-step series written to %s", seriesCSV)
	}
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// addScenarioFlags registers the flags every simulation subcommand shares.
func addScenarioFlags(cmd *cobra.Command) {
	cmd.Flags().Int64Var(&seed, "seed", 42, "Seed for offered-load generation")
	cmd.Flags().StringVar(&logLevel, "log", "error", "Log level (trace, debug, info, warn, error, fatal, panic)")
	cmd.Flags().StringVar(&scenarioFile, "scenario", "", "YAML scenario file overlaying the default configuration")
	cmd.Flags().StringVar(&seriesCSV, "series-csv", "", "Write the per-step series to this CSV file")

	// Link and clock configs
	cmd.Flags().Float64Var(&durationS, "duration", 10.0, "Simulated duration in seconds")
	cmd.Flags().Float64Var(&stepS, "step", 0.01, "Step length in seconds")
	cmd.Flags().Float64Var(&linkCapacity, "link-capacity", 100e6, "Link capacity in bits per second")
	cmd.Flags().Int64Var(&bufferBytes, "buffer-bytes", 250000, "Shared buffer capacity in bytes")
	cmd.Flags().Float64Var(&congestion, "congestion", 1.2, "Offered-load multiplier applied by the qos policy")
	cmd.Flags().StringSliceVar(&classOrder, "class-order", []string{"voice", "video", "data"}, "Admission and service walk order")

	// Per-class offered load configs
	cmd.Flags().Float64Var(&voiceRate, "voice-rate", 15e6, "Voice mean rate in bits per second")
	cmd.Flags().Float64Var(&voiceVariance, "voice-variance", 0.3, "Voice rate variance")
	cmd.Flags().Float64Var(&videoRate, "video-rate", 40e6, "Video mean rate in bits per second")
	cmd.Flags().Float64Var(&videoVariance, "video-variance", 0.4, "Video rate variance")
	cmd.Flags().Float64Var(&dataRate, "data-rate", 65e6, "Data mean rate in bits per second")
	cmd.Flags().Float64Var(&dataVariance, "data-variance", 0.5, "Data rate variance")
}

// init sets up CLI flags and subcommands
func init() {
	addScenarioFlags(runCmd)
	addScenarioFlags(qosCmd)
	addScenarioFlags(replicateCmd)

	replicateCmd.Flags().IntVar(&runs, "runs", 20, "Number of independent replicas")
	replicateCmd.Flags().StringVar(&replicatePolicy, "policy", sim.PolicyBestEffort, "Policy to replicate (best-effort or qos)")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(qosCmd)
	rootCmd.AddCommand(replicateCmd)
}
