package sim

import "fmt"

// Class identifies one of the three fixed traffic classes sharing the link.
// Classes are dense small integers so per-class series can live in
// [NumClasses]... arrays indexed directly by Class.
type Class int

const (
	ClassVoice Class = iota
	ClassVideo
	ClassData

	// NumClasses sizes the per-class arrays used throughout the engine.
	NumClasses = 3
)

func (c Class) String() string {
	switch c {
	case ClassVoice:
		return "voice"
	case ClassVideo:
		return "video"
	case ClassData:
		return "data"
	default:
		return fmt.Sprintf("class(%d)", int(c))
	}
}

// ParseClass maps a class name from configs and CLI flags to its Class value.
func ParseClass(name string) (Class, error) {
	switch name {
	case "voice":
		return ClassVoice, nil
	case "video":
		return ClassVideo, nil
	case "data":
		return ClassData, nil
	default:
		return 0, fmt.Errorf("unknown traffic class %q", name)
	}
}

// Classes returns all traffic classes in index order.
func Classes() []Class {
	return []Class{ClassVoice, ClassVideo, ClassData}
}

// TrafficClass holds one class's offered-load parameters. Immutable once the
// simulation starts.
type TrafficClass struct {
	// MeanRateBps is the class's mean offered rate in bits per second.
	MeanRateBps float64

	// RateVariance is the standard deviation of the per-step rate
	// multiplier, drawn from Normal(1, RateVariance). Zero means constant
	// bit rate.
	RateVariance float64

	// PacketSizeBytes is the class's nominal packet size. The engine works
	// in aggregate bytes; the packet size only annotates reports.
	PacketSizeBytes int64
}
