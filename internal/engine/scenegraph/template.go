package scenegraph

import (
	"errors"
	"fmt"

	"github.com/Faultbox/worlddrops/internal/engine/material"
	"github.com/Faultbox/worlddrops/internal/engine/model"
	"github.com/Faultbox/worlddrops/pkg/math"
)

// ErrNoMeshLeaves is returned by Index when an asset has nothing drawable.
var ErrNoMeshLeaves = errors.New("scenegraph: asset has no mesh leaves")

// Leaf is one drawable record of an indexed asset.
type Leaf struct {
	Index    int
	Name     string
	Geometry *model.Geometry
	Material *material.Material
	// Matrix places the leaf relative to the asset root.
	Matrix math.Mat4
}

// Template is a loaded asset flattened into its mesh leaves. It is built
// once per asset and reused for every instantiation.
type Template struct {
	Name   string
	Leaves []Leaf
}

// neutral stands in for mesh leaves the importer left without a material.
var neutral = material.New("neutral", material.MustHex("#808080"))

// Index walks an asset tree once and records its mesh leaves in depth-first
// order. Lights and instanced nodes in the asset are ignored.
func Index(name string, root *Node) (*Template, error) {
	t := &Template{Name: name}
	Walk(root, func(n *Node, world math.Mat4) bool {
		if n.Kind != KindMesh || n.Geometry == nil {
			return true
		}
		mat := n.Material
		if mat == nil {
			mat = neutral
		}
		t.Leaves = append(t.Leaves, Leaf{
			Index:    len(t.Leaves),
			Name:     n.Name,
			Geometry: n.Geometry,
			Material: mat,
			Matrix:   world,
		})
		return true
	})
	if len(t.Leaves) == 0 {
		return nil, fmt.Errorf("%s: %w", name, ErrNoMeshLeaves)
	}
	return t, nil
}

// Clone is one independent instantiation of a Template.
// Meshes[i] was built from Leaves[i].
type Clone struct {
	Root   *Node
	Meshes []*Node
}

// Instantiate builds a fresh subtree for the template. Geometry is shared
// with the template; every material is cloned so each instantiation can be
// restyled without touching the others.
func (t *Template) Instantiate(name string) *Clone {
	c := &Clone{
		Root:   NewGroup(name),
		Meshes: make([]*Node, len(t.Leaves)),
	}
	for i := range t.Leaves {
		leaf := &t.Leaves[i]
		bake := leaf.Matrix
		mesh := NewMesh(leaf.Name, leaf.Geometry, leaf.Material.Clone())
		mesh.Bake = &bake
		c.Meshes[i] = mesh
		c.Root.Add(mesh)
	}
	return c
}
