// Package drawlist flattens a render tree into ordered draw calls.
//
// Draws are split into three passes: opaque materials first, then overlays
// that ignore depth (highlighted items seen through walls), then
// transparent materials. Lights found in the tree are gathered in world
// space. Nothing here touches the GPU.
package drawlist

import (
	"github.com/Faultbox/worlddrops/internal/engine/lighting"
	"github.com/Faultbox/worlddrops/internal/engine/material"
	"github.com/Faultbox/worlddrops/internal/engine/model"
	"github.com/Faultbox/worlddrops/internal/engine/scenegraph"
	"github.com/Faultbox/worlddrops/pkg/math"
)

// Pass orders draws.
type Pass uint8

const (
	PassOpaque Pass = iota
	PassOverlay
	PassTransparent

	numPasses
)

// PassOf returns the pass a material is drawn in.
func PassOf(m *material.Material) Pass {
	switch {
	case m.Transparent:
		return PassTransparent
	case !m.DepthTest:
		return PassOverlay
	default:
		return PassOpaque
	}
}

// Draw is one instanced draw call. Plain meshes have a single matrix.
type Draw struct {
	Name     string
	Geometry *model.Geometry
	Material *material.Material
	Matrices []math.Mat4
}

// List is a flattened frame.
type List struct {
	Passes [numPasses][]Draw
	Lights []lighting.PointLight
	// DroppedLights counts lights beyond lighting.MaxPointLights.
	DroppedLights int
	// Culled counts instances rejected by the frustum.
	Culled int
}

// Draws returns the draws of pass p.
func (l *List) Draws(p Pass) []Draw {
	return l.Passes[p]
}

// Len returns the number of draw calls.
func (l *List) Len() int {
	n := 0
	for _, p := range l.Passes {
		n += len(p)
	}
	return n
}

// Build walks root and returns its draws. When frustum is non-nil, nodes
// with FrustumCulled set lose the instances that fall outside it.
func Build(root *scenegraph.Node, frustum *Frustum) *List {
	l := &List{}
	scenegraph.Walk(root, func(n *scenegraph.Node, world math.Mat4) bool {
		switch n.Kind {
		case scenegraph.KindMesh:
			if n.Geometry == nil || n.Material == nil {
				return true
			}
			if l.visible(n, frustum, world) {
				l.add(n, []math.Mat4{world})
			}
		case scenegraph.KindInstanced:
			if n.Geometry == nil || n.Material == nil || len(n.Instances) == 0 {
				return true
			}
			matrices := make([]math.Mat4, 0, len(n.Instances))
			for i := range n.Instances {
				m := n.InstanceWorld(world, &n.Instances[i])
				if l.visible(n, frustum, m) {
					matrices = append(matrices, m)
				}
			}
			if len(matrices) > 0 {
				l.add(n, matrices)
			}
		case scenegraph.KindLight:
			if n.Light == nil {
				return true
			}
			if len(l.Lights) >= lighting.MaxPointLights {
				l.DroppedLights++
				return true
			}
			light := n.Light.Transformed(world).Clamped()
			l.Lights = append(l.Lights, light)
		}
		return true
	})
	return l
}

func (l *List) visible(n *scenegraph.Node, f *Frustum, m math.Mat4) bool {
	if f == nil || !n.FrustumCulled {
		return true
	}
	c, r := boundingSphere(n.Geometry, m)
	if f.SphereVisible(c, r) {
		return true
	}
	l.Culled++
	return false
}

func (l *List) add(n *scenegraph.Node, matrices []math.Mat4) {
	p := PassOf(n.Material)
	l.Passes[p] = append(l.Passes[p], Draw{
		Name:     n.Name,
		Geometry: n.Geometry,
		Material: n.Material,
		Matrices: matrices,
	})
}
