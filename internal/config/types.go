package config

import (
	"time"

	"secretsui/internal/ui/render"
)

// Config is the engine configuration.
type Config struct {
	// EscapeTimeout is how long a lone ESC waits for the rest of a sequence.
	// Files spell it as a duration string.
	EscapeTimeout time.Duration `yaml:"-"`
	MinBodyHeight int           `yaml:"minBodyHeight"`
	ReservedRows  int           `yaml:"reservedRows"`
	// AltScreen draws on the alternate screen. A pointer so a file can
	// turn it off explicitly.
	AltScreen *bool `yaml:"altScreen,omitempty"`
	// LeaderKey starts global key sequences; empty disables them.
	LeaderKey string          `yaml:"leaderKey"`
	Theme     render.Palette  `yaml:"theme"`
	Log       LogConfig       `yaml:"log"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

// LogConfig selects where logs go. The terminal is never a log target.
type LogConfig struct {
	File  string `yaml:"file"`
	Level string `yaml:"level"`
}

// TelemetryConfig configures OTLP trace export. Empty values fall back to
// the standard OTEL_* environment variables.
type TelemetryConfig struct {
	Endpoint    string `yaml:"endpoint"`
	ServiceName string `yaml:"serviceName"`
	Insecure    bool   `yaml:"insecure"`
}

// UseAltScreen reports whether the alternate screen is enabled.
func (c Config) UseAltScreen() bool {
	return c.AltScreen == nil || *c.AltScreen
}
