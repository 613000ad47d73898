package highlight

import (
	"github.com/lucasb-eyer/go-colorful"

	"github.com/Faultbox/worlddrops/internal/engine/material"
)

// Snapshot is the original state of every field an override writes.
type Snapshot struct {
	Color             colorful.Color
	Emissive          colorful.Color
	HasEmissive       bool
	EmissiveIntensity float32

	Opacity     float32
	Transparent bool
	Blending    material.Blending
	Side        material.Side
	Unlit       bool

	DepthTest  bool
	DepthWrite bool
	Fog        bool
}

func capture(m *material.Material) Snapshot {
	return Snapshot{
		Color:             m.Color,
		Emissive:          m.Emissive,
		HasEmissive:       m.HasEmissive,
		EmissiveIntensity: m.EmissiveIntensity,
		Opacity:           m.Opacity,
		Transparent:       m.Transparent,
		Blending:          m.Blending,
		Side:              m.Side,
		Unlit:             m.Unlit,
		DepthTest:         m.DepthTest,
		DepthWrite:        m.DepthWrite,
		Fog:               m.Fog,
	}
}

func (s *Snapshot) restore(m *material.Material) {
	m.Color = s.Color
	m.Emissive = s.Emissive
	m.HasEmissive = s.HasEmissive
	m.EmissiveIntensity = s.EmissiveIntensity
	m.Opacity = s.Opacity
	m.Transparent = s.Transparent
	m.Blending = s.Blending
	m.Side = s.Side
	m.Unlit = s.Unlit
	m.DepthTest = s.DepthTest
	m.DepthWrite = s.DepthWrite
	m.Fog = s.Fog
}

// Key identifies one mesh leaf of one cloned item.
type Key struct {
	DropID string
	Leaf   int
}

type entry struct {
	snap  Snapshot
	style Style
}

// Controller is the side table of original material state for cloned item
// meshes. A snapshot is taken the first time a mesh is styled and kept until
// Release, so repeated on/off cycles always restore the asset's own values.
//
// Callers must Release a drop when its clone is discarded; a rebuilt clone
// then starts with a fresh snapshot of its own materials.
type Controller struct {
	palette Palette
	drops   map[string]map[int]*entry
}

// NewController returns an empty controller using palette p.
func NewController(p Palette) *Controller {
	return &Controller{
		palette: p,
		drops:   make(map[string]map[int]*entry),
	}
}

// Palette returns the controller's style palette.
func (c *Controller) Palette() Palette {
	return c.palette
}

// Apply brings m to style s. Styling an already styled mesh with the same
// style is a no-op; None restores the snapshot.
func (c *Controller) Apply(key Key, m *material.Material, s Style) {
	if m == nil {
		return
	}
	leaves := c.drops[key.DropID]
	e := leaves[key.Leaf]

	if s == None {
		if e != nil && e.style != None {
			e.snap.restore(m)
			e.style = None
		}
		return
	}

	if e == nil {
		if leaves == nil {
			leaves = make(map[int]*entry)
			c.drops[key.DropID] = leaves
		}
		e = &entry{snap: capture(m)}
		leaves[key.Leaf] = e
	}
	if e.style == s {
		return
	}
	if e.style != None {
		// Switching Alert <-> Aura: drop the old override's extra fields first.
		e.snap.restore(m)
	}
	c.palette.override(m, s)
	e.style = s
}

// Release discards every snapshot held for dropID.
func (c *Controller) Release(dropID string) {
	delete(c.drops, dropID)
}

// Retain releases every drop whose id is not in keep.
func (c *Controller) Retain(keep map[string]struct{}) int {
	released := 0
	for id := range c.drops {
		if _, ok := keep[id]; !ok {
			delete(c.drops, id)
			released++
		}
	}
	return released
}

// Snapshot returns the stored original state for key, if any.
func (c *Controller) Snapshot(key Key) (Snapshot, bool) {
	e := c.drops[key.DropID][key.Leaf]
	if e == nil {
		return Snapshot{}, false
	}
	return e.snap, true
}

// Style returns the style currently applied at key.
func (c *Controller) Style(key Key) Style {
	if e := c.drops[key.DropID][key.Leaf]; e != nil {
		return e.style
	}
	return None
}

// Len returns the number of mesh snapshots held.
func (c *Controller) Len() int {
	n := 0
	for _, leaves := range c.drops {
		n += len(leaves)
	}
	return n
}
