package config

import (
	"time"

	"secretsui/internal/keys"
	"secretsui/internal/ui/render"
)

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		EscapeTimeout: keys.DefaultTimeout,
		MinBodyHeight: render.DefaultMinBodyHeight,
		ReservedRows:  render.DefaultReservedRows,
		LeaderKey:     "ctrl+g",
		Theme:         render.DefaultPalette(),
		Log: LogConfig{
			Level: "info",
		},
		Telemetry: TelemetryConfig{
			ServiceName: "secretsui",
		},
	}
}

// minEscapeTimeout keeps escape sequences from being split on slow links.
const minEscapeTimeout = 5 * time.Millisecond
