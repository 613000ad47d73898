package world

import (
	"fmt"
	gomath "math"

	"github.com/Faultbox/worlddrops/internal/drops"
	"github.com/Faultbox/worlddrops/pkg/math"
)

// demoTypes is cycled through when laying out the demo drops. The last two
// have no category of their own and fall back to generic boxes.
var demoTypes = []string{
	"tool_scanner",
	"red_shard",
	"weapon_makarov",
	"weapon_tt",
	"pill_bottle",
	"health_solution",
	"weapon_pipe",
	"tool_flashlight",
}

// Demo returns the built-in scene: a ring of drops of every kind surrounded
// by scattered papers and sticks.
func Demo() *Scene {
	s := &Scene{Name: "demo"}

	for i := 0; i < 3*len(demoTypes); i++ {
		a := 2 * gomath.Pi * float64(i) / float64(3*len(demoTypes))
		r := 2.0 + float64(i%3)*0.8
		s.Drops = append(s.Drops, drops.WorldItemDrop{
			ID:       fmt.Sprintf("drop_%02d", i),
			TypeID:   demoTypes[i%len(demoTypes)],
			Position: math.V3(float32(r*gomath.Cos(a)), 0, float32(r*gomath.Sin(a))),
			Rotation: math.V3(0, float32(a), 0),
		})
	}

	for i := 0; i < 12; i++ {
		a := 2 * gomath.Pi * float64(i) / 12
		s.Papers = append(s.Papers, drops.AmbientMarker{
			ID:       fmt.Sprintf("paper_%02d", i),
			Position: math.V3(float32(5.5*gomath.Cos(a)), 0, float32(5.5*gomath.Sin(a))),
		})
	}

	for i := 0; i < 8; i++ {
		a := 2*gomath.Pi*float64(i)/8 + 0.2
		s.Sticks = append(s.Sticks, drops.StickMarker{
			ID:        fmt.Sprintf("stick_%02d", i),
			Position:  math.V3(float32(7*gomath.Cos(a)), 0, float32(7*gomath.Sin(a))),
			RotationY: float32(a),
		})
	}

	return s
}
