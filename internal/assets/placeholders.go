package assets

import (
	"github.com/Faultbox/worlddrops/internal/engine/material"
	"github.com/Faultbox/worlddrops/internal/engine/model"
	"github.com/Faultbox/worlddrops/internal/engine/scenegraph"
	"github.com/Faultbox/worlddrops/pkg/math"
)

var placeholders = map[string]Builder{
	"models/tools/scanner.glb":         scanner,
	"models/items/red_shard.glb":       redShard,
	"models/weapons/makarov.glb":       pistol("makarov", "#2f3136", 0.18),
	"models/weapons/tt33.glb":          pistol("tt33", "#3b3430", 0.2),
	"models/items/pill_bottle.glb":     pillBottle,
	"models/items/health_solution.glb": healthSolution,
	"models/weapons/stick.glb":         stick,
	PaperPath:                          paper,
}

func part(name string, geo *model.Geometry, color string, pos math.Vec3) *scenegraph.Node {
	n := scenegraph.NewMesh(name, geo, material.New(name, material.MustHex(color)))
	n.Transform.Position = pos
	return n
}

func scanner() *scenegraph.Node {
	screen := part("scanner_screen", model.Box("scanner_screen", 0.07, 0.005, 0.05), "#0f172a", math.Vec3{Y: 0.0175})
	screen.Material.SetEmissive(material.MustHex("#22d3ee"), 0.6)
	return scenegraph.NewGroup("scanner",
		part("scanner_body", model.Box("scanner_body", 0.1, 0.03, 0.16), "#475569", math.Vec3{}),
		screen,
	)
}

func redShard() *scenegraph.Node {
	crystal := part("shard_crystal", model.Octahedron("shard_crystal", 0.06, 0.22), "#b91c1c", math.Vec3{})
	crystal.Material.SetEmissive(material.MustHex("#ff2a12"), 0.4)
	return scenegraph.NewGroup("red_shard", crystal)
}

func pistol(name, color string, length float32) Builder {
	return func() *scenegraph.Node {
		return scenegraph.NewGroup(name,
			part(name+"_slide", model.Box(name+"_slide", length, 0.035, 0.025), color, math.Vec3{}),
			part(name+"_grip", model.Box(name+"_grip", 0.04, 0.1, 0.024), color,
				math.Vec3{X: -length/2 + 0.03, Y: -0.06}),
		)
	}
}

func pillBottle() *scenegraph.Node {
	return scenegraph.NewGroup("pill_bottle",
		part("bottle_body", model.Prism("bottle_body", 0.03, 0.09, 12, true), "#f59e0b", math.Vec3{}),
		part("bottle_cap", model.Prism("bottle_cap", 0.032, 0.02, 12, true), "#f8fafc", math.Vec3{X: 0.055}),
	)
}

func healthSolution() *scenegraph.Node {
	return scenegraph.NewGroup("health_solution",
		part("solution_vial", model.Box("solution_vial", 0.06, 0.14, 0.04), "#dc2626", math.Vec3{Y: 0.07}),
		part("solution_label", model.Box("solution_label", 0.062, 0.05, 0.042), "#f1f5f9", math.Vec3{Y: 0.07}),
	)
}

func stick() *scenegraph.Node {
	return scenegraph.NewGroup("stick",
		part("stick_shaft", model.Prism("stick_shaft", 0.02, 0.9, 7, true), "#78350f", math.Vec3{}),
	)
}

func paper() *scenegraph.Node {
	sheet := part("paper_sheet", model.Quad("paper_sheet", 0.21, 0.297), "#e7e5e4", math.Vec3{})
	sheet.FrustumCulled = false
	return scenegraph.NewGroup("paper", sheet)
}
