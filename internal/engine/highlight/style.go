// Package highlight applies and removes the scan/reveal visual override on
// item materials, restoring the exact original state afterwards.
package highlight

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/Faultbox/worlddrops/internal/engine/material"
)

// Style is the override currently applied to a material.
type Style uint8

const (
	// None renders the natural material.
	None Style = iota
	// Alert is flat unlit red drawn through walls.
	Alert
	// Aura is a translucent additive green overlay drawn through walls.
	Aura
)

func (s Style) String() string {
	switch s {
	case None:
		return "none"
	case Alert:
		return "alert"
	case Aura:
		return "aura"
	default:
		return fmt.Sprintf("style(%d)", uint8(s))
	}
}

// Policy decides which style a category gets for a given trigger source.
type Policy uint8

const (
	// AlertAny uses Alert whenever either trigger is set.
	AlertAny Policy = iota
	// ScanAlertRevealAura uses Alert for scan and Aura for reveal alone.
	ScanAlertRevealAura
)

func (p Policy) String() string {
	switch p {
	case AlertAny:
		return "alert_any"
	case ScanAlertRevealAura:
		return "scan_alert_reveal_aura"
	default:
		return fmt.Sprintf("policy(%d)", uint8(p))
	}
}

// ParsePolicy parses the config spelling of a Policy. An empty name is an
// error; groups without an entry fall back to AlertAny instead.
func ParsePolicy(s string) (Policy, error) {
	switch s {
	case "alert_any":
		return AlertAny, nil
	case "scan_alert_reveal_aura":
		return ScanAlertRevealAura, nil
	default:
		return AlertAny, fmt.Errorf("unknown highlight policy %q", s)
	}
}

// Resolve computes the style for one frame from the two triggers.
// Scan always wins; reveal alone yields Aura only under ScanAlertRevealAura.
func Resolve(scan, reveal bool, p Policy) Style {
	switch {
	case scan:
		return Alert
	case reveal && p == ScanAlertRevealAura:
		return Aura
	case reveal:
		return Alert
	default:
		return None
	}
}

// Palette holds the colors and intensities of the two override styles.
type Palette struct {
	AlertColor     colorful.Color
	AlertIntensity float32
	AuraColor      colorful.Color
	AuraIntensity  float32
	AuraOpacity    float32
}

// DefaultPalette returns the stock alert red and aura green.
func DefaultPalette() Palette {
	return Palette{
		AlertColor:     material.MustHex("#ff0000"),
		AlertIntensity: 1.2,
		AuraColor:      material.MustHex("#33ff66"),
		AuraIntensity:  0.6,
		AuraOpacity:    0.35,
	}
}

// override writes the style onto m. It never reads m, so applying it twice
// gives the same result as applying it once.
func (p Palette) override(m *material.Material, s Style) {
	switch s {
	case Alert:
		m.Color = p.AlertColor
		m.SetEmissive(p.AlertColor, p.AlertIntensity)
		m.Unlit = true
	case Aura:
		m.Color = p.AuraColor
		m.SetEmissive(p.AuraColor, p.AuraIntensity)
		m.Unlit = true
		m.Transparent = true
		m.Opacity = p.AuraOpacity
		m.Blending = material.BlendAdditive
		m.Side = material.SideDouble
	default:
		return
	}
	m.DepthTest = false
	m.DepthWrite = false
	m.Fog = false
}

// Styled returns the material an instanced batch should draw with.
// None returns natural itself; other styles return a restyled copy and
// leave natural untouched.
func (p Palette) Styled(natural *material.Material, s Style) *material.Material {
	if s == None {
		return natural
	}
	m := natural.Clone()
	p.override(m, s)
	return m
}

// Batch caches the three materials of an instanced category so a style flip
// swaps one pointer for the whole batch.
type Batch struct {
	styles [3]*material.Material
}

// NewBatch precomputes the styled variants of natural.
func NewBatch(natural *material.Material, p Palette) *Batch {
	return &Batch{styles: [3]*material.Material{
		None:  natural,
		Alert: p.Styled(natural, Alert),
		Aura:  p.Styled(natural, Aura),
	}}
}

// Material returns the shared material for the style.
func (b *Batch) Material(s Style) *material.Material {
	if int(s) >= len(b.styles) {
		return b.styles[None]
	}
	return b.styles[s]
}
