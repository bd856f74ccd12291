package sim

import "math"

// Fractions of the fixed-priority capacity split. Voice is capped at 30% of
// the link; video at 60% of whatever voice leaves; data takes the remainder.
const (
	VoiceCapacityFraction = 0.30
	VideoCapacityFraction = 0.60
)

// CapacityAllocation is the closed-form per-class split of link capacity for
// one instant of offered load. All rates are bits per second.
type CapacityAllocation struct {
	Capacity   [NumClasses]float64
	Loss       [NumClasses]float64
	Throughput [NumClasses]float64
}

// AllocateQoS partitions linkCapacityBps across the classes in fixed
// priority order voice > video > data:
//
//	voice = min(offered_voice, 0.30 × link)
//	video = min(offered_video, 0.60 × (link − voice))
//	data  = link − voice − video
//
// Data's share is the arithmetic remainder, so the three capacities always
// sum to the full link and data is never negative (video takes at most 60%
// of what voice leaves). A class never receives more capacity than it
// offers, except data, which absorbs everything unclaimed. Loss is the
// offered load in excess of the class's capacity; throughput is the rest.
func AllocateQoS(linkCapacityBps float64, offered [NumClasses]float64) CapacityAllocation {
	var a CapacityAllocation

	voice := math.Min(offered[ClassVoice], VoiceCapacityFraction*linkCapacityBps)
	video := math.Min(offered[ClassVideo], VideoCapacityFraction*(linkCapacityBps-voice))
	a.Capacity[ClassVoice] = voice
	a.Capacity[ClassVideo] = video
	a.Capacity[ClassData] = linkCapacityBps - voice - video

	for _, c := range Classes() {
		a.Loss[c] = math.Max(0, offered[c]-a.Capacity[c])
		a.Throughput[c] = offered[c] - a.Loss[c]
	}
	return a
}
