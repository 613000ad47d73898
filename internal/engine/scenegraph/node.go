// Package scenegraph defines the render tree handed between asset loading,
// item dispatch and the renderer.
//
// A tree is built from Nodes: groups carry transforms and children, meshes
// pair a shared Geometry with a Material, instanced meshes draw one
// Geometry/Material pair many times, and light nodes carry point lights.
package scenegraph

import (
	"github.com/Faultbox/worlddrops/internal/engine/lighting"
	"github.com/Faultbox/worlddrops/internal/engine/material"
	"github.com/Faultbox/worlddrops/internal/engine/model"
	"github.com/Faultbox/worlddrops/pkg/math"
)

// Kind identifies what a Node draws.
type Kind uint8

const (
	KindGroup Kind = iota
	KindMesh
	KindInstanced
	KindLight
)

func (k Kind) String() string {
	switch k {
	case KindGroup:
		return "group"
	case KindMesh:
		return "mesh"
	case KindInstanced:
		return "instanced"
	case KindLight:
		return "light"
	default:
		return "unknown"
	}
}

// Transform is a local position, Euler XYZ rotation (radians) and scale.
type Transform struct {
	Position math.Vec3
	Rotation math.Vec3
	Scale    math.Vec3
}

// IdentityTransform returns a transform that leaves its subtree in place.
func IdentityTransform() Transform {
	return Transform{Scale: math.Splat(1)}
}

// Matrix returns translate * rotate * scale.
func (t Transform) Matrix() math.Mat4 {
	return math.Compose(t.Position, t.Rotation, t.Scale)
}

// Instance is the per-copy data of an instanced mesh.
type Instance struct {
	ID        string
	Transform Transform
}

// Node is one element of a render tree.
type Node struct {
	Name      string
	Kind      Kind
	Transform Transform
	// Bake is applied beneath Transform; set on meshes instantiated from a
	// template to carry the asset's own node hierarchy. Nil means identity.
	// On instanced nodes it sits beneath each instance transform instead.
	Bake     *math.Mat4
	Children []*Node

	Geometry *model.Geometry
	Material *material.Material

	Instances []Instance
	// FrustumCulled lets the renderer skip instances outside the view.
	// Ambient batches turn it off so markers stay visible during a scan sweep.
	FrustumCulled bool

	Light *lighting.PointLight
}

// NewGroup returns a group node with the given children.
func NewGroup(name string, children ...*Node) *Node {
	return &Node{Name: name, Kind: KindGroup, Transform: IdentityTransform(), Children: children}
}

// NewMesh returns a mesh node.
func NewMesh(name string, geo *model.Geometry, mat *material.Material) *Node {
	return &Node{
		Name:          name,
		Kind:          KindMesh,
		Transform:     IdentityTransform(),
		Geometry:      geo,
		Material:      mat,
		FrustumCulled: true,
	}
}

// NewInstanced returns an instanced mesh drawing geo with mat once per instance.
func NewInstanced(name string, geo *model.Geometry, mat *material.Material, instances []Instance) *Node {
	return &Node{
		Name:          name,
		Kind:          KindInstanced,
		Transform:     IdentityTransform(),
		Geometry:      geo,
		Material:      mat,
		Instances:     instances,
		FrustumCulled: true,
	}
}

// NewLight returns a point light node; the light position is relative to the node.
func NewLight(name string, light lighting.PointLight) *Node {
	return &Node{Name: name, Kind: KindLight, Transform: IdentityTransform(), Light: &light}
}

// Add appends children and returns n.
func (n *Node) Add(children ...*Node) *Node {
	n.Children = append(n.Children, children...)
	return n
}

// Local returns the node's matrix relative to its parent.
func (n *Node) Local() math.Mat4 {
	m := n.Transform.Matrix()
	if n.Bake != nil && n.Kind != KindInstanced {
		m = m.Mul(*n.Bake)
	}
	return m
}

// InstanceWorld returns the world matrix of inst, given the world matrix
// Walk passed for the instanced node n.
func (n *Node) InstanceWorld(world math.Mat4, inst *Instance) math.Mat4 {
	m := world.Mul(inst.Transform.Matrix())
	if n.Bake != nil {
		m = m.Mul(*n.Bake)
	}
	return m
}

// Walk visits n and its descendants depth first, passing each node's world
// matrix. Returning false from fn skips that node's children.
func Walk(n *Node, fn func(n *Node, world math.Mat4) bool) {
	walk(n, math.Identity(), fn)
}

func walk(n *Node, parent math.Mat4, fn func(*Node, math.Mat4) bool) {
	if n == nil {
		return
	}
	world := parent.Mul(n.Local())
	if !fn(n, world) {
		return
	}
	for _, c := range n.Children {
		walk(c, world, fn)
	}
}

// Stats summarizes what a tree would draw.
type Stats struct {
	Groups    int
	Meshes    int
	Batches   int
	Instances int
	Lights    int
}

// Collect counts the nodes of a tree by kind.
func Collect(n *Node) Stats {
	var s Stats
	Walk(n, func(n *Node, _ math.Mat4) bool {
		switch n.Kind {
		case KindGroup:
			s.Groups++
		case KindMesh:
			s.Meshes++
		case KindInstanced:
			s.Batches++
			s.Instances += len(n.Instances)
		case KindLight:
			s.Lights++
		}
		return true
	})
	return s
}
