// pattern: Imperative Shell
package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"splitkit/internal/instance"
)

// Delegate coordinates discovering a running splitkit instance and handing
// it to a CLI command. It handles error classification (no instance vs
// other errors) and exit code logic.
type Delegate struct {
	// ConfigDir is the config directory for lock/address file discovery.
	ConfigDir string

	// ExitFunc is called to exit the process. Defaults to os.Exit.
	// Overridable for testing.
	ExitFunc func(int)

	// Stderr is where error messages are written. Defaults to os.Stderr.
	// Overridable for testing.
	Stderr io.Writer

	// Discover locates the instance. Defaults to instance.Discover.
	Discover func(dataDir string) (instance.Endpoint, error)
}

// discover initializes defaults and locates the running instance.
// On error, prints the message, calls ExitFunc, and returns false.
func (d *Delegate) discover() (instance.Endpoint, bool) {
	if d.ExitFunc == nil {
		d.ExitFunc = os.Exit
	}
	if d.Stderr == nil {
		d.Stderr = os.Stderr
	}
	if d.Discover == nil {
		d.Discover = instance.Discover
	}

	ep, err := d.Discover(ResolveDataDir(d.ConfigDir))
	if err != nil {
		fmt.Fprintf(d.Stderr, "error: %v\n", err)
		if errors.Is(err, instance.ErrNotRunning) {
			d.ExitFunc(2)
		} else {
			d.ExitFunc(1)
		}
		return instance.Endpoint{}, false
	}
	return ep, true
}

// Run executes a delegated command by discovering the running instance and
// invoking fn with its endpoint.
//
// Exit codes:
// - 2: no running splitkit instance found
// - 1: any other error (connection, fn failed, etc.)
// - 0: success (fn returned nil)
func (d *Delegate) Run(fn func(instance.Endpoint) error) {
	ep, ok := d.discover()
	if !ok {
		return
	}

	if err := fn(ep); err != nil {
		fmt.Fprintf(d.Stderr, "error: %s\n", serverMessage(err))
		d.ExitFunc(1)
	}
}

// serverMessage strips the "splitkit returned status N: " prefix from a
// client error so only the server's message is shown.
func serverMessage(err error) string {
	msg := err.Error()
	if !strings.Contains(msg, "splitkit returned status") {
		return msg
	}
	if parts := strings.SplitN(msg, ": ", 2); len(parts) > 1 {
		return parts[1]
	}
	return msg
}

// PrintJSON pretty-prints JSON data to stdout.
// If stdout is a terminal, uses indentation for readability.
// Otherwise outputs raw bytes.
func PrintJSON(data []byte) error {
	fi, err := os.Stdout.Stat()
	isTerm := err == nil && (fi.Mode()&os.ModeCharDevice) != 0

	if isTerm {
		var obj any
		if err := json.Unmarshal(data, &obj); err != nil {
			// If JSON parsing fails, just write raw
			_, err := os.Stdout.Write(data)
			return err
		}
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(obj)
	}

	_, err = os.Stdout.Write(data)
	return err
}
