package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"secretsui/internal/config"
	"secretsui/internal/demo"
	"secretsui/internal/engine"
	"secretsui/internal/logging"
	"secretsui/internal/telemetry"
	"secretsui/internal/terminal"
	"secretsui/internal/ui"
	"secretsui/internal/ui/render"
)

type options struct {
	configPath    string
	logFile       string
	logLevel      string
	escapeTimeout time.Duration
	noAltScreen   bool
}

func newRootCmd() *cobra.Command {
	var opts options
	cmd := &cobra.Command{
		Use:   "secretsui",
		Short: "Browse and edit secrets in the terminal",
		// Errors are printed by main after the terminal is restored.
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := opts.load(cmd)
			if err != nil {
				return err
			}
			return run(cmd.Context(), cfg)
		},
	}
	f := cmd.Flags()
	f.StringVar(&opts.configPath, "config", "", "config file (default ~/.config/secretsui/config.yaml and .secretsui/config.yaml)")
	f.StringVar(&opts.logFile, "log-file", "", "write logs to this file")
	f.StringVar(&opts.logLevel, "log-level", "", "log level: debug, info, warn or error")
	f.DurationVar(&opts.escapeTimeout, "escape-timeout", 0, "how long a lone ESC waits for the rest of a key sequence")
	f.BoolVar(&opts.noAltScreen, "no-alt-screen", false, "draw on the main screen instead of the alternate screen")
	return cmd
}

// load reads the layered config and applies the flags that were set.
func (o *options) load(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return config.Config{}, err
	}
	flags := cmd.Flags()
	if flags.Changed("log-file") {
		cfg.Log.File = o.logFile
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = o.logLevel
	}
	if flags.Changed("escape-timeout") {
		cfg.EscapeTimeout = o.escapeTimeout
	}
	if flags.Changed("no-alt-screen") {
		alt := !o.noAltScreen
		cfg.AltScreen = &alt
	}
	return cfg, cfg.Validate()
}

func run(ctx context.Context, cfg config.Config) error {
	level, err := logging.ParseLevel(cfg.Log.Level)
	if err != nil {
		return err
	}
	closer, err := logging.InitFile(level, cfg.Log.File)
	if err != nil {
		return err
	}
	defer closer.Close()

	exp, err := telemetry.NewExporter(ctx, telemetry.Options{
		Endpoint:    cfg.Telemetry.Endpoint,
		ServiceName: cfg.Telemetry.ServiceName,
		Insecure:    cfg.Telemetry.Insecure,
	})
	if err != nil {
		logging.Warn("main", "telemetry disabled: %v", err)
		exp = telemetry.Disabled()
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := exp.Shutdown(sctx); err != nil {
			logging.Warn("main", "telemetry shutdown: %v", err)
		}
	}()

	tty, err := terminal.Open()
	if err != nil {
		return err
	}

	r := render.New(render.Options{
		MinBodyHeight: cfg.MinBodyHeight,
		ReservedRows:  cfg.ReservedRows,
		Theme:         render.NewTheme(cfg.Theme),
	})
	store := demo.SampleStore()
	store.Latency = 150 * time.Millisecond

	reg := ui.NewKeybindRegistry()
	if cfg.LeaderKey != "" {
		reg.Bind(cfg.LeaderKey+" h", "home", func(c *ui.Context) {
			c.App.Reset(demo.NewListScreen(store, r))
		})
		reg.Bind(cfg.LeaderKey+" q", "quit", func(c *ui.Context) { c.App.Quit() })
	}

	eng := engine.New(engine.Options{
		Terminal:      tty,
		Renderer:      r,
		Title:         "secretsui",
		EscapeTimeout: cfg.EscapeTimeout,
		NoAltScreen:   !cfg.UseAltScreen(),
		Registry:      reg,
		LeaderKey:     cfg.LeaderKey,
		Tracer:        exp.Tracer(),
		Signals:       true,
	})
	logging.Info("main", "starting (escape timeout %s)", cfg.EscapeTimeout)
	return eng.Run(ctx, demo.NewListScreen(store, r))
}

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
