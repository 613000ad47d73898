// Package debug provides debug visualization utilities.
package debug

import (
	gomath "math"

	"github.com/Faultbox/worlddrops/internal/engine/material"
	"github.com/Faultbox/worlddrops/internal/engine/model"
	"github.com/Faultbox/worlddrops/internal/engine/scenegraph"
	"github.com/Faultbox/worlddrops/pkg/math"
)

const lineWidth = 0.01

// Grid builds a ground sheet covering lo..hi on the XZ plane, padded out to
// whole cells of size step, with a line on every cell edge.
func Grid(lo, hi math.Vec3, step float32) *scenegraph.Node {
	if step <= 0 {
		step = 1
	}
	snap := func(v float32, up bool) float32 {
		f := float64(v / step)
		if up {
			return float32(gomath.Ceil(f)) * step
		}
		return float32(gomath.Floor(f)) * step
	}
	minX, maxX := snap(lo.X, false)-step, snap(hi.X, true)+step
	minZ, maxZ := snap(lo.Z, false)-step, snap(hi.Z, true)+step
	width, depth := maxX-minX, maxZ-minZ
	center := math.V3((minX+maxX)/2, 0, (minZ+maxZ)/2)

	floorMat := material.New("grid_floor", material.MustHex("#2a2e36"))
	floor := scenegraph.NewMesh("grid_floor", model.Quad("grid_floor", width, depth), floorMat)
	floor.Transform.Position = math.V3(center.X, -0.002, center.Z)
	floor.FrustumCulled = false

	lineMat := material.New("grid_line", material.MustHex("#4b5563"))
	lineMat.Unlit = true

	var lines []scenegraph.Instance
	line := func(id string, pos math.Vec3, scale math.Vec3) {
		lines = append(lines, scenegraph.Instance{
			ID:        id,
			Transform: scenegraph.Transform{Position: pos, Scale: scale},
		})
	}
	for x := minX; x <= maxX+step/2; x += step {
		line("x", math.V3(x, 0, center.Z), math.V3(lineWidth, 1, depth))
	}
	for z := minZ; z <= maxZ+step/2; z += step {
		line("z", math.V3(center.X, 0, z), math.V3(width, 1, lineWidth))
	}
	grid := scenegraph.NewInstanced("grid_lines", model.Quad("grid_line", 1, 1), lineMat, lines)
	grid.FrustumCulled = false

	return scenegraph.NewGroup("grid", floor, grid)
}
