package drops

import (
	"github.com/lucasb-eyer/go-colorful"

	"github.com/Faultbox/worlddrops/internal/engine/highlight"
	"github.com/Faultbox/worlddrops/internal/engine/material"
	"github.com/Faultbox/worlddrops/pkg/variation"
)

// Group names used as highlight policy keys besides the category names.
const (
	GroupPapers = "papers"
	GroupSticks = "sticks"
)

// Range is a base value plus a span filled by per-id variation.
type Range struct {
	Base float32
	Span float32
}

// At returns the value of the range for id.
func (r Range) At(id string) float32 {
	return float32(variation.Between(id, float64(r.Base), float64(r.Span)))
}

// Config tunes the dispatcher.
type Config struct {
	Palette highlight.Palette
	// Policies maps a group name (GroupPapers, GroupSticks or a
	// Category.String()) to its highlight policy. Missing groups use
	// DefaultPolicy.
	Policies      map[string]highlight.Policy
	DefaultPolicy highlight.Policy

	// AmbientFrustumCulled controls culling of the paper and stick batches.
	AmbientFrustumCulled bool

	PaperScale Range
	StickScale Range
	// StickTilt is the maximum roll jitter of a stick, radians.
	StickTilt float32
	// ScannerYaw is the maximum yaw jitter added to a scanner drop, radians.
	ScannerYaw float32

	GenericSize           float32
	GenericColor          colorful.Color
	GenericAlertColor     colorful.Color
	GenericAlertIntensity float32
}

// DefaultConfig returns the stock dispatcher settings.
func DefaultConfig() Config {
	return Config{
		Palette: highlight.DefaultPalette(),
		Policies: map[string]highlight.Policy{
			GroupPapers: highlight.ScanAlertRevealAura,
		},
		DefaultPolicy:         highlight.AlertAny,
		PaperScale:            Range{Base: 0.85, Span: 0.3},
		StickScale:            Range{Base: 0.9, Span: 0.25},
		StickTilt:             0.12,
		ScannerYaw:            0.35,
		GenericSize:           0.3,
		GenericColor:          material.MustHex("#94a3b8"),
		GenericAlertColor:     material.MustHex("#ff0000"),
		GenericAlertIntensity: 0.8,
	}
}

// Policy returns the highlight policy of a group.
func (c *Config) Policy(group string) highlight.Policy {
	if p, ok := c.Policies[group]; ok {
		return p
	}
	return c.DefaultPolicy
}
