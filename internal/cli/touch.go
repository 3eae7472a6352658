// pattern: Imperative Shell
package cli

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/pflag"

	"splitkit/internal/instance"
	"splitkit/internal/touch"
)

const replayTimeout = 30 * time.Second

// RegisterTouchCommands registers touch subcommands in the given group.
func RegisterTouchCommands(group *Group, configDir string) {
	group.AddCommand(&Command{
		Name:             "drag",
		Summary:          "Send a straight drag between two points",
		Usage:            "Usage: splitkit touch drag X1,Y1 X2,Y2 [--steps N] [--interval D] [--normalized]",
		RequiresInstance: true,
		Run: func(args []string) error {
			return runTouchDrag(&Delegate{ConfigDir: configDir}, args)
		},
	})

	group.AddCommand(&Command{
		Name:             "replay",
		Summary:          "Send pointer events read as JSON lines from a file or stdin",
		Usage:            "Usage: splitkit touch replay <file|-> [--interval D]",
		RequiresInstance: true,
		Run: func(args []string) error {
			return runTouchReplay(&Delegate{ConfigDir: configDir}, args, os.Stdin)
		},
	})
}

func runTouchDrag(d *Delegate, args []string) error {
	fs := pflag.NewFlagSet("drag", pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	steps := fs.Int("steps", 10, "number of move events between the points")
	interval := fs.Duration("interval", 16*time.Millisecond, "pause between events")
	normalized := fs.Bool("normalized", false, "points are fractions of the terminal size")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 2 {
		return errors.New("drag requires a start and an end point")
	}
	from, err := parsePoint(fs.Arg(0))
	if err != nil {
		return err
	}
	to, err := parsePoint(fs.Arg(1))
	if err != nil {
		return err
	}

	events := touch.Stroke(from[0], from[1], to[0], to[1], *steps)
	for i := range events {
		events[i].Normalized = *normalized
	}
	for i, ev := range events {
		if err := ev.Validate(); err != nil {
			return fmt.Errorf("event %d: %w", i, err)
		}
	}

	d.Run(func(ep instance.Endpoint) error {
		return replay(ep, events, *interval)
	})
	return nil
}

func runTouchReplay(d *Delegate, args []string, stdin io.Reader) error {
	fs := pflag.NewFlagSet("replay", pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	interval := fs.Duration("interval", 0, "pause between events")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return errors.New("replay requires a file name or -")
	}

	r := stdin
	if name := fs.Arg(0); name != "-" {
		f, err := os.Open(name)
		if err != nil {
			return err
		}
		defer f.Close()
		r = f
	}
	events, err := readEvents(r)
	if err != nil {
		return err
	}
	if len(events) == 0 {
		return errors.New("no events to replay")
	}

	d.Run(func(ep instance.Endpoint) error {
		return replay(ep, events, *interval)
	})
	return nil
}

func replay(ep instance.Endpoint, events []touch.PointerEvent, interval time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), replayTimeout)
	defer cancel()
	return touch.Replay(ctx, ep.TouchURL(), events, interval)
}

// parsePoint parses "X,Y".
func parsePoint(s string) ([2]float64, error) {
	xs, ys, ok := strings.Cut(s, ",")
	if !ok {
		return [2]float64{}, fmt.Errorf("point %q must be X,Y", s)
	}
	x, err := strconv.ParseFloat(strings.TrimSpace(xs), 64)
	if err != nil {
		return [2]float64{}, fmt.Errorf("point %q: bad x: %w", s, err)
	}
	y, err := strconv.ParseFloat(strings.TrimSpace(ys), 64)
	if err != nil {
		return [2]float64{}, fmt.Errorf("point %q: bad y: %w", s, err)
	}
	return [2]float64{x, y}, nil
}

// readEvents decodes one pointer event per non-blank line. Lines starting
// with # are skipped.
func readEvents(r io.Reader) ([]touch.PointerEvent, error) {
	var events []touch.PointerEvent
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		var ev touch.PointerEvent
		if err := json.Unmarshal([]byte(text), &ev); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		if err := ev.Validate(); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		events = append(events, ev)
	}
	return events, sc.Err()
}
