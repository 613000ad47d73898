// Package config handles viewer configuration loading and management.
package config

// Config holds all viewer settings.
type Config struct {
	Render    RenderConfig    `yaml:"render"`
	Drops     DropsConfig     `yaml:"drops"`
	Highlight HighlightConfig `yaml:"highlight"`
	World     WorldConfig     `yaml:"world"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// RenderConfig holds display and rendering settings.
type RenderConfig struct {
	Width      int       `yaml:"width"`
	Height     int       `yaml:"height"`
	Fullscreen bool      `yaml:"fullscreen"`
	VSync      bool      `yaml:"vsync"`
	ShowStats  bool      `yaml:"show_stats"` // Draw counts in the window title
	Background string    `yaml:"background"`
	FOV        float32   `yaml:"fov"` // Vertical, degrees
	Fog        FogConfig `yaml:"fog"`
}

// FogConfig holds linear distance fog settings.
type FogConfig struct {
	Near  float32 `yaml:"near"`
	Far   float32 `yaml:"far"`
	Color string  `yaml:"color"`
}

// RangeConfig is a base value plus a per-id variation span.
type RangeConfig struct {
	Base float32 `yaml:"base"`
	Span float32 `yaml:"span"`
}

// DropsConfig holds item dispatch settings.
type DropsConfig struct {
	GenericSize           float32     `yaml:"generic_size"`
	GenericColor          string      `yaml:"generic_color"`
	GenericAlertColor     string      `yaml:"generic_alert_color"`
	GenericAlertIntensity float32     `yaml:"generic_alert_intensity"`
	PaperScale            RangeConfig `yaml:"paper_scale"`
	StickScale            RangeConfig `yaml:"stick_scale"`
	StickTilt             float32     `yaml:"stick_tilt"`  // Radians
	ScannerYaw            float32     `yaml:"scanner_yaw"` // Radians
	AmbientFrustumCulled  bool        `yaml:"ambient_frustum_culled"`
}

// HighlightConfig holds the scan/reveal override appearance.
type HighlightConfig struct {
	AlertColor     string  `yaml:"alert_color"`
	AlertIntensity float32 `yaml:"alert_intensity"`
	AuraColor      string  `yaml:"aura_color"`
	AuraIntensity  float32 `yaml:"aura_intensity"`
	AuraOpacity    float32 `yaml:"aura_opacity"`
	// Policies maps a render group ("papers", "sticks" or a category name)
	// to "alert_any" or "scan_alert_reveal_aura".
	Policies map[string]string `yaml:"policies"`
}

// WorldConfig holds the scene fixture and item catalog locations.
type WorldConfig struct {
	Scene string `yaml:"scene"`
	// Catalog replaces the built-in item pose catalog when set.
	Catalog string `yaml:"catalog"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Render: RenderConfig{
			Width:      1280,
			Height:     720,
			Fullscreen: false,
			VSync:      true,
			Background: "#1a1d23",
			FOV:        60,
			Fog: FogConfig{
				Near:  8,
				Far:   40,
				Color: "#1a1d23",
			},
		},
		Drops: DropsConfig{
			GenericSize:           0.3,
			GenericColor:          "#94a3b8",
			GenericAlertColor:     "#ff0000",
			GenericAlertIntensity: 0.8,
			PaperScale:            RangeConfig{Base: 0.85, Span: 0.3},
			StickScale:            RangeConfig{Base: 0.9, Span: 0.25},
			StickTilt:             0.12,
			ScannerYaw:            0.35,
		},
		Highlight: HighlightConfig{
			AlertColor:     "#ff0000",
			AlertIntensity: 1.2,
			AuraColor:      "#33ff66",
			AuraIntensity:  0.6,
			AuraOpacity:    0.35,
			Policies: map[string]string{
				"papers": "scan_alert_reveal_aura",
			},
		},
		World: WorldConfig{
			Scene:   "",
			Catalog: "",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
