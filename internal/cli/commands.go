// pattern: Imperative Shell
package cli

import (
	"errors"
	"fmt"
	"os"

	"splitkit/internal/config"
	"splitkit/internal/instance"
)

// ResolveDataDir returns the data directory for lock/address files.
// If configDir is specified, uses that; otherwise uses the XDG default.
func ResolveDataDir(configDir string) string {
	if configDir != "" {
		return configDir
	}
	return config.DefaultDir()
}

// BuildApp creates and configures the CLI application with all commands and groups.
func BuildApp(version string, configDir string) *App {
	app := NewApp(version)

	app.AddCommand(&Command{
		Name:             "status",
		Summary:          "Output JSON state of the running split container",
		Usage:            "Usage: splitkit status",
		RequiresInstance: true,
		Run: func(args []string) error {
			return runStatusCommand(configDir)
		},
	})

	app.AddCommand(&Command{
		Name:    "cleanup",
		Summary: "Remove a stale address file from a crashed instance",
		Usage:   "Usage: splitkit cleanup",
		Run: func(args []string) error {
			return runCleanupCommand(configDir)
		},
	})

	app.AddCommand(&Command{
		Name:    "version",
		Summary: "Print version and exit",
		Usage:   "Usage: splitkit version",
		Run: func(args []string) error {
			fmt.Println(version)
			return nil
		},
	})

	RegisterEngineCommands(app)

	touchGroup := app.AddGroup("touch", "Drive the running instance through its touch bridge")
	RegisterTouchCommands(touchGroup, configDir)

	return app
}

// runStatusCommand prints GET /api/state of the running instance.
func runStatusCommand(configDir string) error {
	d := Delegate{ConfigDir: configDir}
	d.Run(func(ep instance.Endpoint) error {
		data, err := instance.NewClient(ep.BaseURL()).State()
		if err != nil {
			return err
		}
		return PrintJSON(data)
	})
	return nil
}

// runCleanupCommand removes the address file left by a crashed instance.
func runCleanupCommand(configDir string) error {
	removed, err := instance.RemoveStale(ResolveDataDir(configDir))
	if errors.Is(err, instance.ErrAlreadyRunning) {
		fmt.Fprintf(os.Stderr, "Error: a splitkit instance appears to be running. Stop it first.\n")
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if removed {
		fmt.Println("Cleaned up stale address file.")
	} else {
		fmt.Println("Nothing to clean up.")
	}
	return nil
}
