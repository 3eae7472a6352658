// pattern: Functional Core

package split

import (
	"fmt"
	"math"
	"strings"
)

// Arrangement selects whether the panes sit side by side or stacked.
type Arrangement int

const (
	// Horizontal places the panes side by side; the width is draggable.
	Horizontal Arrangement = iota
	// Vertical stacks the panes; the height is draggable.
	Vertical
)

// String returns the lowercase arrangement name.
func (a Arrangement) String() string {
	switch a {
	case Horizontal:
		return "horizontal"
	case Vertical:
		return "vertical"
	default:
		return fmt.Sprintf("arrangement(%d)", int(a))
	}
}

// Flip returns the other arrangement.
func (a Arrangement) Flip() Arrangement {
	if a == Horizontal {
		return Vertical
	}
	return Horizontal
}

// Axis returns the axis the arrangement makes draggable.
func (a Arrangement) Axis() Axis {
	if a == Vertical {
		return AxisHeight
	}
	return AxisWidth
}

// ParseArrangement parses "horizontal" or "vertical" (case-insensitive).
func ParseArrangement(s string) (Arrangement, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "horizontal":
		return Horizontal, nil
	case "vertical":
		return Vertical, nil
	default:
		return Horizontal, fmt.Errorf("unknown arrangement %q", s)
	}
}

// Axis identifies the dimension a constraint pair sizes.
type Axis int

const (
	AxisWidth Axis = iota
	AxisHeight
)

// axes lists both axes in index order.
var axes = [...]Axis{AxisWidth, AxisHeight}

func (a Axis) String() string {
	if a == AxisHeight {
		return "height"
	}
	return "width"
}

// Size is a container extent.
type Size struct {
	Width  float64
	Height float64
}

// Along returns the extent along the axis.
func (s Size) Along(axis Axis) float64 {
	if axis == AxisHeight {
		return s.Height
	}
	return s.Width
}

// Insets are the host-provided safe-area margins.
type Insets struct {
	Top    float64
	Left   float64
	Bottom float64
	Right  float64
}

// Along returns the total inset consumed along the axis.
func (i Insets) Along(axis Axis) float64 {
	if axis == AxisHeight {
		return i.Top + i.Bottom
	}
	return i.Left + i.Right
}

// Point is a position in container coordinates.
type Point struct {
	X float64
	Y float64
}

// Along returns the coordinate on the axis.
func (p Point) Along(axis Axis) float64 {
	if axis == AxisHeight {
		return p.Y
	}
	return p.X
}

// Rect is an axis-aligned frame.
type Rect struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// Contains reports whether p lies inside r (right and bottom edges excluded).
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X < r.X+r.Width && p.Y >= r.Y && p.Y < r.Y+r.Height
}

// Empty reports whether r has no area.
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Along returns the rect's extent on the axis.
func (r Rect) Along(axis Axis) float64 {
	if axis == AxisHeight {
		return r.Height
	}
	return r.Width
}

// SizingMode tags which constraint of an axis governs the first pane.
type SizingMode int

const (
	// RatioOfContainer is the rest state: the pane is Multiplier × extent.
	RatioOfContainer SizingMode = iota
	// FixedDelta is the live drag state: the pane is Constant points.
	FixedDelta
)

func (m SizingMode) String() string {
	if m == FixedDelta {
		return "fixed"
	}
	return "ratio"
}

// AxisConstraints is the constraint pair sizing the first pane along one
// axis. The second pane always takes the remainder of the extent.
// While the axis is installed exactly one mode governs; the other value
// is kept inert so it can be reactivated later.
type AxisConstraints struct {
	Constant   float64 // in [0, extent]
	Multiplier float64 // in [0, 1]
	Mode       SizingMode
	Installed  bool // part of the current arrangement
}

// Resolve returns the first pane's size along an axis of the given extent.
func (c AxisConstraints) Resolve(extent float64) float64 {
	if extent <= 0 {
		return 0
	}
	if c.Mode == FixedDelta {
		return clamp(c.Constant, 0, extent)
	}
	return clamp01(c.Multiplier) * extent
}

// Geometry holds container metrics and both axes' constraint pairs.
type Geometry struct {
	bounds   Size
	insets   Insets
	keyboard float64

	constraints [2]AxisConstraints
	arrangement Arrangement
	arranged    bool
	seeded      bool
}

// NewGeometry returns a geometry with both ratio constraints at 0.5 and
// no arrangement installed.
func NewGeometry() *Geometry {
	g := &Geometry{}
	for _, axis := range axes {
		g.constraints[axis] = AxisConstraints{Multiplier: 0.5, Mode: RatioOfContainer}
	}
	return g
}

// Arrangement returns the installed arrangement.
func (g *Geometry) Arrangement() Arrangement {
	return g.arrangement
}

// Bounds returns the raw container size.
func (g *Geometry) Bounds() Size {
	return g.bounds
}

// Insets returns the safe-area insets.
func (g *Geometry) Insets() Insets {
	return g.insets
}

// KeyboardHeight returns the cached on-screen keyboard height.
func (g *Geometry) KeyboardHeight() float64 {
	return g.keyboard
}

// Constraints returns a copy of the axis' constraint pair.
func (g *Geometry) Constraints(axis Axis) AxisConstraints {
	return g.constraints[axis]
}

// SetArrangement uninstalls the opposite axis and installs the new one with
// its ratio constraint governing. It reports whether a different
// arrangement had been installed before, which is when a host animates.
func (g *Geometry) SetArrangement(a Arrangement) (switched bool) {
	switched = g.arranged && g.arrangement != a

	live := a.Axis()
	g.constraints[a.Flip().Axis()].Installed = false
	g.constraints[live].Installed = true
	g.constraints[live].Mode = RatioOfContainer

	g.arrangement = a
	g.arranged = true
	return switched
}

// AvailableExtent is the raw extent minus the insets along the axis, and
// minus the on-screen keyboard for the height.
func (g *Geometry) AvailableExtent(axis Axis) float64 {
	return availableExtent(g.bounds, g.insets, g.keyboard, axis)
}

// CurrentFraction is the fixed constant over the available extent, in
// [0, 1]. A zero extent yields 0.
func (g *Geometry) CurrentFraction(axis Axis) float64 {
	extent := g.AvailableExtent(axis)
	if extent <= 0 {
		return 0
	}
	return clamp01(g.constraints[axis].Constant / extent)
}

// ProjectRatioOntoNewExtent rewrites the fixed constant so the pane keeps
// its visual proportion on an axis whose available extent becomes
// newExtent. Call before the new bounds are applied.
func (g *Geometry) ProjectRatioOntoNewExtent(axis Axis, newExtent float64) {
	ratio := g.proportion(axis)
	newExtent = math.Max(sanitize(newExtent), 0)
	g.constraints[axis].Constant = clamp(ratio*newExtent, 0, newExtent)
}

// FirstExtent returns the first pane's resolved size along the axis.
func (g *Geometry) FirstExtent(axis Axis) float64 {
	return g.constraints[axis].Resolve(g.AvailableExtent(axis))
}

// proportion is the share of the available extent the first pane shows
// right now, whichever mode governs.
func (g *Geometry) proportion(axis Axis) float64 {
	c := g.constraints[axis]
	if c.Mode == FixedDelta {
		return g.CurrentFraction(axis)
	}
	return clamp01(c.Multiplier)
}

// setBounds applies new metrics. The first call seeds both fixed constants
// to half of their axis so a later arrangement switch starts from 50/50.
func (g *Geometry) setBounds(size Size, insets Insets) {
	g.bounds = Size{Width: math.Max(sanitize(size.Width), 0), Height: math.Max(sanitize(size.Height), 0)}
	g.insets = insets
	if g.seeded {
		return
	}
	for _, axis := range axes {
		g.constraints[axis].Constant = g.AvailableExtent(axis) / 2
	}
	g.seeded = true
}

func (g *Geometry) setKeyboard(height float64) {
	g.keyboard = math.Max(sanitize(height), 0)
}

// setConstant writes the fixed constant clamped to the available extent.
func (g *Geometry) setConstant(axis Axis, v float64) {
	g.constraints[axis].Constant = clamp(v, 0, g.AvailableExtent(axis))
}

// activateFixed hands layout control to the fixed constant.
func (g *Geometry) activateFixed(axis Axis) {
	g.constraints[axis].Mode = FixedDelta
}

// replaceRatio installs a new ratio constraint with the given multiplier
// and demotes the fixed constant.
func (g *Geometry) replaceRatio(axis Axis, multiplier float64) {
	old := g.constraints[axis]
	g.constraints[axis] = AxisConstraints{
		Constant:   old.Constant,
		Multiplier: clamp01(multiplier),
		Mode:       RatioOfContainer,
		Installed:  old.Installed,
	}
}

func availableExtent(bounds Size, insets Insets, keyboard float64, axis Axis) float64 {
	extent := bounds.Along(axis) - insets.Along(axis)
	if axis == AxisHeight {
		extent -= keyboard
	}
	return math.Max(sanitize(extent), 0)
}

func clamp(v, lo, hi float64) float64 {
	v = sanitize(v)
	if hi < lo {
		hi = lo
	}
	return math.Min(math.Max(v, lo), hi)
}

func clamp01(v float64) float64 {
	return clamp(v, 0, 1)
}

// sanitize maps NaN and infinities to 0.
func sanitize(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
