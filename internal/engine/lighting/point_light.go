// Package lighting provides the point and directional lights used by item rendering.
package lighting

import (
	"github.com/Faultbox/worlddrops/pkg/math"
)

// MaxPointLights is the maximum number of point lights supported in shaders.
const MaxPointLights = 32

// PointLight represents a point light source for GPU upload.
type PointLight struct {
	Position  [3]float32 // World position
	Color     [3]float32 // RGB color (0-1 range)
	Range     float32    // Light radius/falloff distance
	Intensity float32    // Light intensity multiplier
}

// Transformed returns a copy of the light with its position moved into the
// space described by m (light positions are authored relative to their item).
func (l PointLight) Transformed(m math.Mat4) PointLight {
	l.Position = m.TransformPoint(math.FromArray(l.Position)).Array()
	return l
}

// Clamped returns a copy with color clamped to 0-1 and a positive range.
func (l PointLight) Clamped() PointLight {
	for i := 0; i < 3; i++ {
		if l.Color[i] > 1.0 {
			l.Color[i] = 1.0
		}
		if l.Color[i] < 0.0 {
			l.Color[i] = 0.0
		}
	}
	if l.Range <= 0 {
		l.Range = 1.0
	}
	return l
}

// PointLightBuffer holds lights for GPU upload.
type PointLightBuffer struct {
	Lights []PointLight
	Count  int
}

// NewPointLightBuffer creates an empty point light buffer.
func NewPointLightBuffer() *PointLightBuffer {
	return &PointLightBuffer{
		Lights: make([]PointLight, 0, MaxPointLights),
	}
}

// Clear removes all lights from the buffer.
func (b *PointLightBuffer) Clear() {
	b.Lights = b.Lights[:0]
	b.Count = 0
}

// AddLight adds a point light to the buffer.
// Returns false if buffer is full.
func (b *PointLightBuffer) AddLight(light PointLight) bool {
	if b.Count >= MaxPointLights {
		return false
	}
	b.Lights = append(b.Lights, light.Clamped())
	b.Count++
	return true
}

// GetPositions returns positions as a flat float32 slice for GPU upload.
// Format: [x0, y0, z0, x1, y1, z1, ...]
func (b *PointLightBuffer) GetPositions() []float32 {
	result := make([]float32, MaxPointLights*3)
	for i, light := range b.Lights {
		result[i*3+0] = light.Position[0]
		result[i*3+1] = light.Position[1]
		result[i*3+2] = light.Position[2]
	}
	return result
}

// GetColors returns colors as a flat float32 slice for GPU upload.
// Format: [r0, g0, b0, r1, g1, b1, ...]
func (b *PointLightBuffer) GetColors() []float32 {
	result := make([]float32, MaxPointLights*3)
	for i, light := range b.Lights {
		result[i*3+0] = light.Color[0]
		result[i*3+1] = light.Color[1]
		result[i*3+2] = light.Color[2]
	}
	return result
}

// GetRanges returns ranges as a flat float32 slice for GPU upload.
func (b *PointLightBuffer) GetRanges() []float32 {
	result := make([]float32, MaxPointLights)
	for i, light := range b.Lights {
		result[i] = light.Range
	}
	return result
}

// GetIntensities returns intensities as a flat float32 slice for GPU upload.
func (b *PointLightBuffer) GetIntensities() []float32 {
	result := make([]float32, MaxPointLights)
	for i, light := range b.Lights {
		result[i] = light.Intensity
	}
	return result
}
