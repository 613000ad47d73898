package items

import "math"

// Stance is how a holder presents the item.
type Stance uint8

const (
	StanceIdle Stance = iota
	StanceHip
	StanceADS
)

func (s Stance) String() string {
	switch s {
	case StanceIdle:
		return "idle"
	case StanceHip:
		return "hip"
	case StanceADS:
		return "ads"
	default:
		return "unknown"
	}
}

// ParseStance parses "idle", "hip" or "ads".
func ParseStance(s string) (Stance, bool) {
	switch s {
	case "idle":
		return StanceIdle, true
	case "hip":
		return StanceHip, true
	case "ads":
		return StanceADS, true
	}
	return StanceIdle, false
}

// Motion is the holder's movement state, selecting the bob frequency.
type Motion uint8

const (
	MotionIdle Motion = iota
	MotionWalk
	MotionSprint
)

// Offset returns the position and rotation for the stance.
// Hip keeps the idle rotation; ADS falls back to hip for items without an
// aimed stance.
func (c ItemPoseConfig) Offset(s Stance) (pos, rot [3]float32) {
	switch s {
	case StanceADS:
		if c.Offsets.ADS != nil {
			return c.Offsets.ADS.Pos, c.Offsets.ADS.Rot
		}
		return c.Offsets.Hip, c.Offsets.Idle.Rot
	case StanceHip:
		return c.Offsets.Hip, c.Offsets.Idle.Rot
	default:
		return c.Offsets.Idle.Pos, c.Offsets.Idle.Rot
	}
}

// Bob amplitudes in view units. Aiming steadies the item.
const (
	bobAmplitude    = 0.012
	bobAmplitudeADS = 0.003
)

// Bob returns the procedural sway offset at time t (seconds).
// Items without AnimationFreq never bob.
func (c ItemPoseConfig) Bob(s Stance, m Motion, t float64) [3]float32 {
	if c.AnimationFreq == nil {
		return [3]float32{}
	}
	var freq float32
	switch m {
	case MotionWalk:
		freq = c.AnimationFreq.Walk
	case MotionSprint:
		freq = c.AnimationFreq.Sprint
	default:
		freq = c.AnimationFreq.Idle
	}
	amp := bobAmplitude
	if s == StanceADS && c.CanAim() {
		amp = bobAmplitudeADS
	}
	phase := 2 * math.Pi * float64(freq) * t
	return [3]float32{
		float32(math.Cos(phase/2) * amp * 0.5),
		float32(math.Sin(phase) * amp),
		0,
	}
}
