package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptionsLoad_FlagsOverrideConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("escapeTimeout: 50ms\nlog:\n  level: warn\n"), 0o600))
	t.Setenv("SECRETSUI_ESCAPE_TIMEOUT", "")
	t.Setenv("SECRETSUI_LOG_FILE", "")
	t.Setenv("SECRETSUI_LOG_LEVEL", "")

	cmd := newRootCmd()
	require.NoError(t, cmd.ParseFlags([]string{
		"--config", path,
		"--escape-timeout", "30ms",
		"--log-file", filepath.Join(dir, "ui.log"),
		"--no-alt-screen",
	}))
	var opts options
	opts.configPath, _ = cmd.Flags().GetString("config")
	opts.escapeTimeout, _ = cmd.Flags().GetDuration("escape-timeout")
	opts.logFile, _ = cmd.Flags().GetString("log-file")
	opts.noAltScreen, _ = cmd.Flags().GetBool("no-alt-screen")

	cfg, err := opts.load(cmd)
	require.NoError(t, err)
	assert.Equal(t, 30*time.Millisecond, cfg.EscapeTimeout)
	assert.Equal(t, "warn", cfg.Log.Level, "unset flags keep file values")
	assert.Equal(t, filepath.Join(dir, "ui.log"), cfg.Log.File)
	assert.False(t, cfg.UseAltScreen())
}

func TestOptionsLoad_RejectsTinyTimeout(t *testing.T) {
	t.Setenv("SECRETSUI_ESCAPE_TIMEOUT", "")
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, nil, 0o600))

	cmd := newRootCmd()
	require.NoError(t, cmd.ParseFlags([]string{"--config", path, "--escape-timeout", "1ms"}))
	opts := options{configPath: path, escapeTimeout: time.Millisecond}
	_, err := opts.load(cmd)
	assert.ErrorContains(t, err, "escapeTimeout")
}
