// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New(...) to build a Config with defaults.
// - External errors are wrapped via this package's error helpers.
package config

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// DataDir holds the per-table JSON files.
	DataDir string `koanf:"data_dir"`

	// ExportDir receives generated PDF reports.
	ExportDir string `koanf:"export_dir"`

	// DocumentTitle is printed in the PDF header.
	DocumentTitle string `koanf:"document_title"`

	// CrestPath and WatermarkPath are optional branding assets.
	// A missing asset is skipped, never fatal.
	CrestPath     string `koanf:"crest_path"`
	WatermarkPath string `koanf:"watermark_path"`

	// FontPath points at a Unicode-capable TTF. When absent the
	// renderer falls back to a core font with a restricted glyph set.
	FontPath string `koanf:"font_path"`

	// TopStandouts caps how many standout players the dashboard surfaces.
	TopStandouts int `koanf:"top_standouts"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:      "info",
		Addr:          ":8090",
		DataDir:       "data",
		ExportDir:     ".",
		DocumentTitle: "Scouting Department",
		CrestPath:     "assets/crest.png",
		WatermarkPath: "assets/crest_wm.png",
		FontPath:      "assets/DejaVuSans.ttf",
		TopStandouts:  5,
	}
}
