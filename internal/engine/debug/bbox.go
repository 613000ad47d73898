package debug

import (
	"github.com/lucasb-eyer/go-colorful"

	"github.com/Faultbox/worlddrops/internal/engine/material"
	"github.com/Faultbox/worlddrops/internal/engine/model"
	"github.com/Faultbox/worlddrops/internal/engine/picking"
	"github.com/Faultbox/worlddrops/internal/engine/scenegraph"
	"github.com/Faultbox/worlddrops/pkg/math"
)

// Boxes draws each pick target as a translucent box drawn over the scene.
// padding expands every box on all sides.
func Boxes(targets []picking.Target, color colorful.Color, padding float32) *scenegraph.Node {
	mat := material.New("debug_bbox", color)
	mat.Unlit = true
	mat.Transparent = true
	mat.Opacity = 0.25
	mat.DepthTest = false
	mat.DepthWrite = false
	mat.Fog = false
	mat.Side = material.SideDouble

	pad := math.Splat(padding)
	instances := make([]scenegraph.Instance, len(targets))
	for i, t := range targets {
		lo, hi := t.Box.Min.Sub(pad), t.Box.Max.Add(pad)
		instances[i] = scenegraph.Instance{
			ID: t.ID,
			Transform: scenegraph.Transform{
				Position: lo.Add(hi).Scale(0.5),
				Scale:    hi.Sub(lo),
			},
		}
	}

	n := scenegraph.NewInstanced("debug_bbox", model.Box("debug_bbox", 1, 1, 1), mat, instances)
	n.FrustumCulled = false
	return n
}
