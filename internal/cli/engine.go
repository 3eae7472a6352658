// pattern: Functional Core
package cli

import (
	"encoding/json"
	"errors"
	"io"
	"os"

	"github.com/spf13/pflag"

	"splitkit/internal/split"
)

// RegisterEngineCommands registers the offline snap and collapse
// calculators. They need no running instance.
func RegisterEngineCommands(app *App) {
	app.AddCommand(&Command{
		Name:    "snap",
		Summary: "Print where a separator position snaps to",
		Usage:   "Usage: splitkit snap --position P --extent E [--points 0.5,...] [--range R]",
		Run: func(args []string) error {
			return runSnap(args, os.Stdout)
		},
	})

	app.AddCommand(&Command{
		Name:    "collapse",
		Summary: "Print the collapse decision for a first-pane fraction",
		Usage:   "Usage: splitkit collapse --fraction F [--first T1] [--second T2]",
		Run: func(args []string) error {
			return runCollapse(args, os.Stdout)
		},
	})
}

type snapResult struct {
	Position float64 `json:"position"`
	Snapped  bool    `json:"snapped"`
	Fraction float64 `json:"fraction"`
}

func runSnap(args []string, w io.Writer) error {
	defaults := split.DefaultOptions()
	fs := pflag.NewFlagSet("snap", pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	position := fs.Float64("position", 0, "separator position along the axis")
	extent := fs.Float64("extent", 0, "available extent of the axis")
	points := fs.Float64Slice("points", defaults.SnapPoints, "snap point fractions")
	snapRange := fs.Float64("range", defaults.SnapRange, "attraction distance")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if !fs.Changed("position") || !fs.Changed("extent") {
		return errors.New("--position and --extent are required")
	}

	opts := defaults
	opts.SnapPoints = *points
	opts.SnapRange = *snapRange
	if err := opts.Validate(); err != nil {
		return err
	}
	if *extent < 0 {
		return errors.New("--extent must not be negative")
	}

	pos, ok := split.TrySnap(*position, *extent, opts.SnapPoints, opts.SnapRange)
	res := snapResult{Position: pos, Snapped: ok}
	if *extent > 0 {
		res.Fraction = pos / *extent
	}
	return json.NewEncoder(w).Encode(res)
}

type collapseResult struct {
	Decision string `json:"decision"`
	Pane     string `json:"pane,omitempty"`
}

func runCollapse(args []string, w io.Writer) error {
	defaults := split.DefaultOptions()
	fs := pflag.NewFlagSet("collapse", pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fraction := fs.Float64("fraction", 0, "first pane's share of the extent")
	first := fs.Float64("first", defaults.FirstCollapseThreshold, "first collapse threshold")
	second := fs.Float64("second", defaults.SecondCollapseThreshold, "second collapse threshold")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if !fs.Changed("fraction") {
		return errors.New("--fraction is required")
	}

	opts := defaults
	opts.FirstCollapseThreshold = *first
	opts.SecondCollapseThreshold = *second
	if err := opts.Validate(); err != nil {
		return err
	}

	d := split.Decide(*fraction, opts.FirstCollapseThreshold, opts.SecondCollapseThreshold)
	res := collapseResult{Decision: d.String()}
	if pane, ok := d.Position(); ok {
		res.Pane = pane.String()
	}
	return json.NewEncoder(w).Encode(res)
}
