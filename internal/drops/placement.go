package drops

import (
	stdmath "math"

	"github.com/Faultbox/worlddrops/internal/engine/lighting"
	"github.com/Faultbox/worlddrops/pkg/math"
)

// Placement is the fixed correction applied to every drop of a category so
// the asset rests on the ground the right way up.
type Placement struct {
	// Lift raises the item above the drop position to avoid clipping the floor.
	Lift     float32
	Rotation math.Vec3
	Scale    math.Vec3
	// Light is attached to the drop when non-nil; its position is relative
	// to the drop.
	Light *lighting.PointLight
}

const halfPi = float32(stdmath.Pi / 2)

// markerLift keeps paper sheets from z-fighting the floor.
const markerLift = 0.005

var placements = [numCategories]Placement{
	ScanTool: {
		Lift:  0.02,
		Scale: math.Splat(1),
	},
	HazardShard: {
		Lift:     0.01,
		Rotation: math.V3(0, 0, 0.35),
		Scale:    math.Splat(0.6),
		Light: &lighting.PointLight{
			Position:  [3]float32{0, 0.25, 0},
			Color:     [3]float32{1, 0.1, 0.05},
			Range:     2.5,
			Intensity: 1.5,
		},
	},
	PistolPrimary: {
		Lift:     0.03,
		Rotation: math.V3(halfPi, 0, 0),
		Scale:    math.Splat(0.9),
	},
	PistolSecondary: {
		Lift:     0.03,
		Rotation: math.V3(halfPi, 0, halfPi/3),
		Scale:    math.Splat(0.85),
	},
	PillBottle: {
		Lift:     0.04,
		Rotation: math.V3(0, 0, halfPi),
		Scale:    math.Splat(0.7),
	},
	HealthSolution: {
		Lift:  0,
		Scale: math.Splat(0.8),
	},
	Generic: {
		Scale: math.Splat(1),
	},
}

// PlacementOf returns the fixed placement of a category.
func PlacementOf(c Category) Placement {
	if c >= numCategories {
		return placements[Generic]
	}
	p := placements[c]
	if p.Light != nil {
		l := *p.Light
		p.Light = &l
	}
	return p
}
