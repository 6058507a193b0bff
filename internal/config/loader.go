package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// For mocking in tests
var (
	osUserHomeDir = os.UserHomeDir
	osGetwd       = os.Getwd
	osGetenv      = os.Getenv
)

const (
	userConfigDir    = ".config/secretsui"
	projectConfigDir = ".secretsui"
	configFileName   = "config.yaml"
)

// Environment variables that override file settings.
const (
	EnvEscapeTimeout = "SECRETSUI_ESCAPE_TIMEOUT"
	EnvLogFile       = "SECRETSUI_LOG_FILE"
	EnvLogLevel      = "SECRETSUI_LOG_LEVEL"
)

// Load layers the defaults, the user file, the project file and the
// environment. explicit, when set, replaces both files and must exist.
func Load(explicit string) (Config, error) {
	cfg := Default()

	var paths []string
	if explicit != "" {
		paths = []string{explicit}
	} else {
		if p, err := userConfigPath(); err == nil {
			paths = append(paths, p)
		}
		if p, err := projectConfigPath(); err == nil {
			paths = append(paths, p)
		}
	}

	for _, p := range paths {
		layer, err := loadFile(p)
		if errors.Is(err, fs.ErrNotExist) && explicit == "" {
			continue
		}
		if err != nil {
			return Config{}, fmt.Errorf("error loading config from %s: %w", p, err)
		}
		cfg = merge(cfg, layer)
	}

	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, cfg.Validate()
}

func userConfigPath() (string, error) {
	home, err := osUserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, userConfigDir, configFileName), nil
}

func projectConfigPath() (string, error) {
	wd, err := osGetwd()
	if err != nil {
		return "", err
	}
	return filepath.Join(wd, projectConfigDir, configFileName), nil
}

// fileConfig mirrors Config with the timeout as text ("150ms").
type fileConfig struct {
	Config        `yaml:",inline"`
	EscapeTimeout string `yaml:"escapeTimeout"`
}

func loadFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return Config{}, err
	}
	cfg := fc.Config
	if fc.EscapeTimeout != "" {
		d, err := time.ParseDuration(fc.EscapeTimeout)
		if err != nil {
			return Config{}, fmt.Errorf("escapeTimeout: %w", err)
		}
		cfg.EscapeTimeout = d
	}
	return cfg, nil
}

// merge lays the set fields of overlay over base.
func merge(base, overlay Config) Config {
	out := base
	if overlay.EscapeTimeout != 0 {
		out.EscapeTimeout = overlay.EscapeTimeout
	}
	if overlay.MinBodyHeight != 0 {
		out.MinBodyHeight = overlay.MinBodyHeight
	}
	if overlay.ReservedRows != 0 {
		out.ReservedRows = overlay.ReservedRows
	}
	if overlay.AltScreen != nil {
		out.AltScreen = overlay.AltScreen
	}
	if overlay.LeaderKey != "" {
		out.LeaderKey = overlay.LeaderKey
	}
	out.Theme = overlay.Theme.Merge(base.Theme)
	if overlay.Log.File != "" {
		out.Log.File = overlay.Log.File
	}
	if overlay.Log.Level != "" {
		out.Log.Level = overlay.Log.Level
	}
	if overlay.Telemetry.Endpoint != "" {
		out.Telemetry.Endpoint = overlay.Telemetry.Endpoint
	}
	if overlay.Telemetry.ServiceName != "" {
		out.Telemetry.ServiceName = overlay.Telemetry.ServiceName
	}
	out.Telemetry.Insecure = out.Telemetry.Insecure || overlay.Telemetry.Insecure
	return out
}

func applyEnv(cfg *Config) error {
	if v := osGetenv(EnvEscapeTimeout); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvEscapeTimeout, err)
		}
		cfg.EscapeTimeout = d
	}
	if v := osGetenv(EnvLogFile); v != "" {
		cfg.Log.File = v
	}
	if v := osGetenv(EnvLogLevel); v != "" {
		cfg.Log.Level = v
	}
	return nil
}

// Validate reports settings the engine cannot run with.
func (c Config) Validate() error {
	var errs []error
	if c.EscapeTimeout < minEscapeTimeout {
		errs = append(errs, fmt.Errorf("escapeTimeout %s is below %s", c.EscapeTimeout, minEscapeTimeout))
	}
	if c.MinBodyHeight < 1 {
		errs = append(errs, fmt.Errorf("minBodyHeight must be positive, got %d", c.MinBodyHeight))
	}
	if c.ReservedRows < 0 {
		errs = append(errs, fmt.Errorf("reservedRows must not be negative, got %d", c.ReservedRows))
	}
	switch strings.ToLower(c.Log.Level) {
	case "", "debug", "info", "warn", "warning", "error":
	default:
		errs = append(errs, fmt.Errorf("unknown log level %q", c.Log.Level))
	}
	return errors.Join(errs...)
}
