package config

import (
	"fmt"

	"github.com/Faultbox/worlddrops/internal/drops"
	"github.com/Faultbox/worlddrops/internal/engine/highlight"
	"github.com/Faultbox/worlddrops/internal/engine/material"
)

// Validate checks every value that Load cannot type-check on its own.
func (c *Config) Validate() error {
	if c.Render.Width <= 0 || c.Render.Height <= 0 {
		return fmt.Errorf("render: invalid size %dx%d", c.Render.Width, c.Render.Height)
	}
	if c.Drops.GenericSize <= 0 {
		return fmt.Errorf("drops.generic_size: must be positive, got %v", c.Drops.GenericSize)
	}
	if _, err := c.DispatcherConfig(); err != nil {
		return err
	}
	return nil
}

// Palette builds the highlight palette from the highlight section.
func (c *Config) Palette() (highlight.Palette, error) {
	h := &c.Highlight
	alert, err := material.ParseHex(h.AlertColor)
	if err != nil {
		return highlight.Palette{}, fmt.Errorf("highlight.alert_color: %w", err)
	}
	aura, err := material.ParseHex(h.AuraColor)
	if err != nil {
		return highlight.Palette{}, fmt.Errorf("highlight.aura_color: %w", err)
	}
	if h.AuraOpacity < 0 || h.AuraOpacity > 1 {
		return highlight.Palette{}, fmt.Errorf("highlight.aura_opacity: %v outside [0, 1]", h.AuraOpacity)
	}
	return highlight.Palette{
		AlertColor:     alert,
		AlertIntensity: h.AlertIntensity,
		AuraColor:      aura,
		AuraIntensity:  h.AuraIntensity,
		AuraOpacity:    h.AuraOpacity,
	}, nil
}

// policyGroups are the keys accepted under highlight.policies.
func policyGroups() map[string]bool {
	groups := map[string]bool{drops.GroupPapers: true, drops.GroupSticks: true}
	for _, c := range drops.Categories() {
		groups[c.String()] = true
	}
	return groups
}

// DispatcherConfig translates the drops and highlight sections.
func (c *Config) DispatcherConfig() (drops.Config, error) {
	out := drops.DefaultConfig()

	palette, err := c.Palette()
	if err != nil {
		return out, err
	}
	out.Palette = palette

	groups := policyGroups()
	out.Policies = make(map[string]highlight.Policy, len(c.Highlight.Policies))
	for group, name := range c.Highlight.Policies {
		if !groups[group] {
			return out, fmt.Errorf("highlight.policies: unknown group %q", group)
		}
		p, err := highlight.ParsePolicy(name)
		if err != nil {
			return out, fmt.Errorf("highlight.policies[%s]: %w", group, err)
		}
		out.Policies[group] = p
	}

	d := &c.Drops
	if out.GenericColor, err = material.ParseHex(d.GenericColor); err != nil {
		return out, fmt.Errorf("drops.generic_color: %w", err)
	}
	if out.GenericAlertColor, err = material.ParseHex(d.GenericAlertColor); err != nil {
		return out, fmt.Errorf("drops.generic_alert_color: %w", err)
	}
	out.GenericSize = d.GenericSize
	out.GenericAlertIntensity = d.GenericAlertIntensity
	out.PaperScale = drops.Range{Base: d.PaperScale.Base, Span: d.PaperScale.Span}
	out.StickScale = drops.Range{Base: d.StickScale.Base, Span: d.StickScale.Span}
	out.StickTilt = d.StickTilt
	out.ScannerYaw = d.ScannerYaw
	out.AmbientFrustumCulled = d.AmbientFrustumCulled
	return out, nil
}
