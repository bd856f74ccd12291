package cmd

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	sim "github.com/link-sim/link-sim/sim"
)

// ScenarioConfig mirrors the YAML scenario file. Zero-valued fields mean
// "not set" and leave the underlying configuration untouched, so a file only
// needs to name what it changes.
type ScenarioConfig struct {
	DurationS           float64  `yaml:"duration_s"`
	StepS               float64  `yaml:"step_s"`
	LinkCapacityBps     float64  `yaml:"link_capacity_bps"`
	BufferCapacityBytes int64    `yaml:"buffer_capacity_bytes"`
	CongestionFactor    float64  `yaml:"congestion_factor"`
	ClassOrder          []string `yaml:"class_order"`

	// Classes is keyed by class name: voice, video, data.
	Classes map[string]ClassConfig `yaml:"classes"`
}

// ClassConfig carries one class's offered-load parameters. RateVariance is a
// pointer because an explicit 0 (constant bit rate) must stay distinct from
// the field being absent.
type ClassConfig struct {
	MeanRateBps     float64  `yaml:"mean_rate_bps"`
	RateVariance    *float64 `yaml:"rate_variance"`
	PacketSizeBytes int64    `yaml:"packet_size_bytes"`
}

// LoadScenarioConfig reads and parses a YAML scenario file.
func LoadScenarioConfig(path string) (*ScenarioConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario config: %w", err)
	}
	var sc ScenarioConfig
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("parsing scenario config %s: %w", path, err)
	}
	return &sc, nil
}

// Apply overlays the scenario file's set fields onto cfg. Validation stays
// with Config.Validate; Apply only rejects names it cannot resolve.
func (sc *ScenarioConfig) Apply(cfg *sim.Config) error {
	if sc.DurationS != 0 {
		cfg.Clock.DurationS = sc.DurationS
	}
	if sc.StepS != 0 {
		cfg.Clock.StepS = sc.StepS
	}
	if sc.LinkCapacityBps != 0 {
		cfg.Link.CapacityBps = sc.LinkCapacityBps
	}
	if sc.BufferCapacityBytes != 0 {
		cfg.Link.BufferBytes = sc.BufferCapacityBytes
	}
	if sc.CongestionFactor != 0 {
		cfg.CongestionFactor = sc.CongestionFactor
	}
	for name, cc := range sc.Classes {
		c, err := sim.ParseClass(name)
		if err != nil {
			return fmt.Errorf("scenario classes: %w", err)
		}
		if cc.MeanRateBps != 0 {
			cfg.Classes[c].MeanRateBps = cc.MeanRateBps
		}
		if cc.RateVariance != nil {
			cfg.Classes[c].RateVariance = *cc.RateVariance
		}
		if cc.PacketSizeBytes != 0 {
			cfg.Classes[c].PacketSizeBytes = cc.PacketSizeBytes
		}
	}
	if len(sc.ClassOrder) > 0 {
		order, err := parseClassOrder(sc.ClassOrder)
		if err != nil {
			return fmt.Errorf("scenario class_order: %w", err)
		}
		cfg.ClassOrder = order
	}
	return nil
}

// parseClassOrder maps class names to the engine's walk order.
func parseClassOrder(names []string) ([]sim.Class, error) {
	order := make([]sim.Class, 0, len(names))
	for _, n := range names {
		c, err := sim.ParseClass(n)
		if err != nil {
			return nil, err
		}
		order = append(order, c)
	}
	return order, nil
}
