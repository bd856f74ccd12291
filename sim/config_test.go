package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultConfig_Valid(t *testing.T) {
	cfg := DefaultConfig()
	assert.NoError(t, cfg.Validate())
}

func TestDefaultConfig_ReferenceScenario(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, 100e6, cfg.Link.CapacityBps)
	assert.Equal(t, int64(250_000), cfg.Link.BufferBytes)
	assert.Equal(t, 1.2, cfg.CongestionFactor)

	// Combined mean offered load is 120 Mbit/s, 20% over the link
	var offered float64
	for _, c := range Classes() {
		offered += cfg.Classes[c].MeanRateBps
	}
	assert.Equal(t, 120e6, offered)
}

func TestClock_Steps(t *testing.T) {
	tests := []struct {
		name  string
		clock Clock
		want  int
	}{
		{"even division", Clock{DurationS: 10.0, StepS: 0.01}, 1000},
		{"single step", Clock{DurationS: 1.0, StepS: 1.0}, 1},
		{"rounds to nearest", Clock{DurationS: 1.0, StepS: 0.3}, 3},
		{"sub-second run", Clock{DurationS: 0.5, StepS: 0.1}, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.clock.Steps())
		})
	}
}

func TestConfig_StepBudgetBytes(t *testing.T) {
	cfg := DefaultConfig()
	// 100 Mbit/s over 10 ms is 1 Mbit, which is 125000 bytes
	assert.Equal(t, int64(125_000), cfg.StepBudgetBytes())

	cfg.Clock.StepS = 1.0
	cfg.Link.CapacityBps = 8000
	assert.Equal(t, int64(1000), cfg.StepBudgetBytes())
}

func TestConfig_Validate_Rejections(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero duration", func(c *Config) { c.Clock.DurationS = 0 }},
		{"negative duration", func(c *Config) { c.Clock.DurationS = -1 }},
		{"zero step", func(c *Config) { c.Clock.StepS = 0 }},
		{"step exceeds duration", func(c *Config) { c.Clock.StepS = 20 }},
		{"zero link capacity", func(c *Config) { c.Link.CapacityBps = 0 }},
		{"negative link capacity", func(c *Config) { c.Link.CapacityBps = -5 }},
		{"zero buffer", func(c *Config) { c.Link.BufferBytes = 0 }},
		{"negative buffer", func(c *Config) { c.Link.BufferBytes = -100 }},
		{"budget rounds to zero bytes", func(c *Config) { c.Link.CapacityBps = 8 }},
		{"zero congestion factor", func(c *Config) { c.CongestionFactor = 0 }},
		{"negative mean rate", func(c *Config) { c.Classes[ClassVideo].MeanRateBps = -1 }},
		{"negative rate variance", func(c *Config) { c.Classes[ClassData].RateVariance = -0.1 }},
		{"negative packet size", func(c *Config) { c.Classes[ClassVoice].PacketSizeBytes = -160 }},
		{"short class order", func(c *Config) { c.ClassOrder = []Class{ClassVoice, ClassVideo} }},
		{"duplicate class order", func(c *Config) { c.ClassOrder = []Class{ClassVoice, ClassVoice, ClassData} }},
		{"unknown class in order", func(c *Config) { c.ClassOrder = []Class{ClassVoice, ClassVideo, Class(9)} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestConfig_Validate_AcceptsCustomOrder(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ClassOrder = []Class{ClassData, ClassVoice, ClassVideo}
	assert.NoError(t, cfg.Validate())
}

func TestConfig_Validate_AcceptsSilentClass(t *testing.T) {
	// A zero mean rate is a legal way to switch a class off
	cfg := DefaultConfig()
	cfg.Classes[ClassVideo].MeanRateBps = 0
	cfg.Classes[ClassVideo].RateVariance = 0
	assert.NoError(t, cfg.Validate())
}
