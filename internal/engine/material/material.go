// Package material describes the surface state the renderer needs for a mesh:
// colors, emissive channel, blending, and depth/fog flags.
package material

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
)

// Blending selects how a fragment combines with the framebuffer.
type Blending uint8

const (
	BlendNormal Blending = iota
	BlendAdditive
)

// Side selects which triangle faces are drawn.
type Side uint8

const (
	SideFront Side = iota
	SideDouble
)

// Material is the render state of a single mesh.
// Materials are plain values; share a *Material only when every user
// must change together (instanced batches), otherwise Clone it.
type Material struct {
	Name  string
	Color colorful.Color

	// Emissive channel. Assets may ship without one (HasEmissive false);
	// readers then treat it as black at zero intensity.
	Emissive          colorful.Color
	HasEmissive       bool
	EmissiveIntensity float32

	Opacity     float32
	Transparent bool
	Blending    Blending
	Side        Side
	Unlit       bool

	DepthTest  bool
	DepthWrite bool
	Fog        bool
}

// New returns a lit, opaque, depth-tested, fogged material.
func New(name string, color colorful.Color) *Material {
	return &Material{
		Name:       name,
		Color:      color,
		Opacity:    1,
		DepthTest:  true,
		DepthWrite: true,
		Fog:        true,
	}
}

// Clone returns an independent copy.
func (m *Material) Clone() *Material {
	c := *m
	return &c
}

// EmissiveOrBlack returns the emissive color and intensity, substituting
// black/0 when the material has no emissive slot.
func (m *Material) EmissiveOrBlack() (colorful.Color, float32) {
	if !m.HasEmissive {
		return colorful.Color{}, 0
	}
	return m.Emissive, m.EmissiveIntensity
}

// SetEmissive fills the emissive slot, creating it if missing.
func (m *Material) SetEmissive(c colorful.Color, intensity float32) {
	m.Emissive = c
	m.EmissiveIntensity = intensity
	m.HasEmissive = true
}

// ColorRGB returns the base color as linear RGB for GPU upload.
func (m *Material) ColorRGB() [3]float32 {
	return linear(m.Color)
}

// EmissiveRGB returns the emissive color premultiplied by its intensity,
// as linear RGB for GPU upload.
func (m *Material) EmissiveRGB() [3]float32 {
	c, k := m.EmissiveOrBlack()
	rgb := linear(c)
	return [3]float32{rgb[0] * k, rgb[1] * k, rgb[2] * k}
}

func linear(c colorful.Color) [3]float32 {
	r, g, b := c.Clamped().LinearRgb()
	return [3]float32{float32(r), float32(g), float32(b)}
}

// ParseHex parses a "#rrggbb" or "#rgb" color.
func ParseHex(s string) (colorful.Color, error) {
	if len(s) == 4 && s[0] == '#' {
		s = string([]byte{'#', s[1], s[1], s[2], s[2], s[3], s[3]})
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return colorful.Color{}, fmt.Errorf("color %q: %w", s, err)
	}
	return c, nil
}

// MustHex is ParseHex for compile-time constants. Panics on malformed input.
func MustHex(s string) colorful.Color {
	c, err := ParseHex(s)
	if err != nil {
		panic(err)
	}
	return c
}
