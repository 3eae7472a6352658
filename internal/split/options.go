// pattern: Functional Core

package split

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"time"

	"github.com/lucasb-eyer/go-colorful"
)

// ErrInvalidOptions is wrapped by every Options validation failure.
var ErrInvalidOptions = errors.New("invalid split options")

// Options is the container's public configuration surface. Every field
// may change at any time through Container.SetOptions and takes effect on
// the next layout or drag event.
type Options struct {
	SeparatorColor           colorful.Color // hairline at rest
	SeparatorSelectedColor   colorful.Color // hairline and handle while dragging
	BackgroundColor          colorful.Color // pane background
	SeparatorBackgroundColor colorful.Color // separator track

	InvertAnimationDuration   time.Duration // arrangement change
	DraggingAnimationDuration time.Duration // drag feedback and snapping

	FirstCollapseThreshold  float64 // fraction at or below which the first pane collapses
	SecondCollapseThreshold float64 // fraction at or above which the second pane collapses

	SnapPoints []float64 // fractions of the extent, in declaration order
	SnapRange  float64   // attraction distance in points

	// SeparatorSize is the thickness of the separator's hit area, centred
	// on the pane boundary.
	SeparatorSize float64
}

// DefaultOptions returns the stock configuration.
func DefaultOptions() Options {
	return Options{
		SeparatorColor:            MustParseColor("#b3b3b3"),
		SeparatorSelectedColor:    MustParseColor("#e95a39"),
		BackgroundColor:           MustParseColor("#ffffff"),
		SeparatorBackgroundColor:  MustParseColor("#f2f2f2"),
		InvertAnimationDuration:   250 * time.Millisecond,
		DraggingAnimationDuration: 250 * time.Millisecond,
		FirstCollapseThreshold:    0.05,
		SecondCollapseThreshold:   0.95,
		SnapPoints:                []float64{0.5},
		SnapRange:                 15,
		SeparatorSize:             44,
	}
}

// Validate reports every precondition violation in o.
func (o Options) Validate() error {
	var errs []error
	bad := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalidOptions}, args...)...))
	}

	if !inUnit(o.FirstCollapseThreshold) {
		bad("first collapse threshold %v outside [0,1]", o.FirstCollapseThreshold)
	}
	if !inUnit(o.SecondCollapseThreshold) {
		bad("second collapse threshold %v outside [0,1]", o.SecondCollapseThreshold)
	}
	if o.FirstCollapseThreshold >= o.SecondCollapseThreshold {
		bad("first collapse threshold %v must be below second %v", o.FirstCollapseThreshold, o.SecondCollapseThreshold)
	}
	for i, p := range o.SnapPoints {
		if !inUnit(p) {
			bad("snap point %d (%v) outside [0,1]", i, p)
		}
	}
	if o.SnapRange < 0 || math.IsNaN(o.SnapRange) {
		bad("snap range %v is negative", o.SnapRange)
	}
	if o.SeparatorSize < 0 || math.IsNaN(o.SeparatorSize) {
		bad("separator size %v is negative", o.SeparatorSize)
	}
	if o.InvertAnimationDuration < 0 {
		bad("invert animation duration %v is negative", o.InvertAnimationDuration)
	}
	if o.DraggingAnimationDuration < 0 {
		bad("dragging animation duration %v is negative", o.DraggingAnimationDuration)
	}
	colours := []struct {
		name string
		c    colorful.Color
	}{
		{"separator", o.SeparatorColor},
		{"separator selected", o.SeparatorSelectedColor},
		{"background", o.BackgroundColor},
		{"separator background", o.SeparatorBackgroundColor},
	}
	for _, col := range colours {
		if !col.c.IsValid() {
			bad("%s colour %v is not a valid RGB colour", col.name, col.c)
		}
	}

	return errors.Join(errs...)
}

// clone returns a copy that shares no slices with o.
func (o Options) clone() Options {
	o.SnapPoints = slices.Clone(o.SnapPoints)
	return o
}

// ParseColor parses a "#rrggbb" or "#rgb" hex colour.
func ParseColor(hex string) (colorful.Color, error) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return colorful.Color{}, fmt.Errorf("parse colour %q: %w", hex, err)
	}
	return c, nil
}

// MustParseColor is ParseColor for constants; it panics on malformed input.
func MustParseColor(hex string) colorful.Color {
	c, err := ParseColor(hex)
	if err != nil {
		panic(err)
	}
	return c
}

func inUnit(v float64) bool {
	return v >= 0 && v <= 1
}
