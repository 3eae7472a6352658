// pattern: Imperative Shell
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	flag "github.com/spf13/pflag"

	"splitkit/internal/cli"
	"splitkit/internal/config"
	"splitkit/internal/instance"
	"splitkit/internal/logging"
	"splitkit/internal/touch"
	"splitkit/internal/tui"
)

var version = "dev"

const logFileName = "splitkit.log"

func main() {
	// Stop parsing flags after the first non-flag arg (the subcommand),
	// so that --help after a subcommand is handled by the subcommand.
	flag.CommandLine.SetInterspersed(false)

	configDir := flag.StringP("config-dir", "c", "", "config directory (default: ~/.config/splitkit)")

	// Override flag.Usage before Parse so --help uses the CLI app's help
	flag.Usage = func() {
		app := cli.BuildApp(version, *configDir)
		app.PrintHelp(os.Stderr)
		flag.PrintDefaults()
	}

	flag.Parse()

	app := cli.BuildApp(version, *configDir)
	if app.Execute(flag.Args()) {
		runTUI(*configDir)
	}
}

// runTUI launches the interactive split demo.
func runTUI(configDir string) {
	configPath := config.PathIn(configDir)
	cfg, err := loadConfig(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	dataDir := cli.ResolveDataDir(configDir)

	// Acquire single-instance lock
	fl, err := instance.Lock(dataDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer instance.Cleanup(dataDir, fl)

	logManager, err := newLogManager(dataDir, cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logging: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logManager.Close() }()

	appLogger := logManager.For("app")
	appLogger.Info("application starting", "version", version, "config", configPath)

	var state atomic.Pointer[touch.State]
	state.Store(&touch.State{})

	model, err := tui.NewModel(cfg, logManager)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	model = model.
		WithLogEntries(logManager.Entries()).
		WithStatePublisher(func(s touch.State) { state.Store(&s) })

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.Touch.Enabled {
		bridge := touch.New(
			touch.Config{Bind: cfg.Touch.Bind, Port: cfg.Touch.Port},
			func(msg any) { p.Send(msg) },
			func() touch.State { return *state.Load() },
			logManager,
		)
		ln, err := bridge.Listen()
		if err != nil {
			appLogger.Error("touch bridge listen error", "error", err)
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		// Write address file for CLI discovery
		if err := instance.WriteAddr(dataDir, bridge.Addr()); err != nil {
			appLogger.Error("failed to write address file", "error", err)
		}
		appLogger.Info("touch bridge listening", "url", "http://"+bridge.Addr())

		go func() {
			if err := bridge.Serve(ln); err != nil {
				appLogger.Error("touch bridge error", "error", err)
			}
		}()
		defer func() {
			shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer shutdownCancel()
			if err := bridge.Shutdown(shutdownCtx); err != nil {
				appLogger.Error("touch bridge shutdown error", "error", err)
			}
		}()
	}

	watcher, err := config.NewWatcher(configPath, logManager)
	if err != nil {
		appLogger.Warn("config watcher disabled", "error", err)
	} else {
		defer func() { _ = watcher.Close() }()
		go func() {
			_ = watcher.Run(ctx, func(c config.Config, err error) {
				if err == nil {
					logManager.SetLevel(c.LogLevel)
				}
				p.Send(tui.ConfigReloadedMsg{Config: c, Err: err})
			})
		}()
	}

	final, err := p.Run()
	if m, ok := final.(tui.Model); ok {
		m.Close()
	}
	if err != nil {
		appLogger.Error("application exited with error", "error", err)
		fmt.Fprintf(os.Stderr, "Error running program: %v\n", err)
		os.Exit(1)
	}

	appLogger.Info("application stopped")
}

// loadConfig reads configPath and validates it. A file that fails to
// parse falls back to the defaults with a warning; a file that parses but
// is invalid is an error.
func loadConfig(configPath string) (config.Config, error) {
	cfg, err := config.LoadFrom(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to load config: %v\n", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config %s: %w", configPath, err)
	}
	return cfg, nil
}

// newLogManager opens the rotated log file in dataDir.
func newLogManager(dataDir, level string) (*logging.Manager, error) {
	return logging.NewManager(logging.Config{
		FilePath:       filepath.Join(dataDir, logFileName),
		MaxSizeMB:      10,
		MaxBackups:     3,
		MaxAgeDays:     7,
		ChannelBufSize: 1000,
		Level:          level,
	})
}
