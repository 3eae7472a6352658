// pattern: Functional Core

package split

import (
	"fmt"
	"math"
	"time"

	"github.com/lucasb-eyer/go-colorful"

	"splitkit/internal/logging"
)

// Content is a pane's content handle. The container tells it the frame it
// occupies after every layout change; what it draws there is its own
// business.
type Content interface {
	SetFrame(Rect)
}

// SizeClass is the host's horizontal compactness signal.
type SizeClass int

const (
	SizeClassUnspecified SizeClass = iota
	SizeClassCompact
	SizeClassRegular
)

func (s SizeClass) String() string {
	switch s {
	case SizeClassCompact:
		return "compact"
	case SizeClassRegular:
		return "regular"
	default:
		return "unspecified"
	}
}

// Arrangement returns the default arrangement for the size class.
func (s SizeClass) Arrangement() Arrangement {
	if s == SizeClassRegular {
		return Horizontal
	}
	return Vertical
}

// SeparatorFrame is the laid-out state of one axis' separator.
type SeparatorFrame struct {
	Axis     Axis
	Frame    Rect // hit area, SeparatorSize thick, centred on the boundary
	Hairline Rect

	HairlineColor colorful.Color
	TrackColor    colorful.Color
	HairlineAlpha float64
	HandleAlpha   float64

	Snap     HandleSnapState
	Hidden   bool
	Dragging bool
}

// Layout is a snapshot of everything the container positions.
type Layout struct {
	Arrangement Arrangement
	Area        Rect // bounds minus insets and keyboard
	First       Rect
	Second      Rect
	Separators  [2]SeparatorFrame
	Background  colorful.Color
}

// Live returns the separator of the installed arrangement.
func (l Layout) Live() SeparatorFrame {
	return l.Separators[l.Arrangement.Axis()]
}

// Container is the two-pane split orchestrator. It owns one drag
// controller per axis; only the controller of the installed arrangement
// receives input.
//
// A Container is not safe for concurrent use. All calls are expected on one
// goroutine, the way a UI event loop delivers them.
type Container struct {
	opts     Options
	geometry *Geometry

	separators  [2]*Separator
	controllers [2]*DragController

	del      Delegate
	animator Animator
	first    Content
	second   Content

	sizeClass      SizeClass
	keyboardCancel func()
	visible        bool
	layout         Layout

	logger *logging.ScopedLogger
}

// New creates a container with the given options. The initial arrangement
// follows an unspecified size class (Vertical) and is installed without
// animation. A nil provider disables logging.
func New(opts Options, logs logging.LoggerProvider) (*Container, error) {
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("new split container: %w", err)
	}

	c := &Container{
		opts:     opts.clone(),
		geometry: NewGeometry(),
		del:      NopDelegate{},
		animator: ImmediateAnimator{},
		logger:   logging.NopLogger(),
	}
	if logs != nil {
		c.logger = logs.For("split")
	}
	for _, axis := range axes {
		sep := newSeparator()
		c.separators[axis] = &sep
		var logger *logging.ScopedLogger
		if logs != nil {
			logger = logs.For("split." + axis.String())
		} else {
			logger = logging.NopLogger()
		}
		c.controllers[axis] = newDragController(axis, c.geometry, c.separators[axis], c, logger)
	}

	c.SetArrangement(c.sizeClass.Arrangement())
	return c, nil
}

// SetDelegate installs the notification listener. nil restores the no-op
// delegate.
func (c *Container) SetDelegate(d Delegate) {
	if d == nil {
		d = NopDelegate{}
	}
	c.del = d
}

// SetAnimator installs the animation backend. nil applies every change
// immediately.
func (c *Container) SetAnimator(a Animator) {
	if a == nil {
		a = ImmediateAnimator{}
	}
	c.animator = a
}

// SetFirst installs the first pane's content.
func (c *Container) SetFirst(content Content) {
	c.first = content
	if content != nil {
		content.SetFrame(c.layout.First)
	}
}

// SetSecond installs the second pane's content.
func (c *Container) SetSecond(content Content) {
	c.second = content
	if content != nil {
		content.SetFrame(c.layout.Second)
	}
}

// Arrangement returns the installed arrangement.
func (c *Container) Arrangement() Arrangement {
	return c.geometry.Arrangement()
}

// SetArrangement installs a. A live drag is cancelled first. Switching from
// a different arrangement on a visible container animates over the
// invert duration; the initial setup and a repeat of the same arrangement
// do not.
func (c *Container) SetArrangement(a Arrangement) {
	c.cancelDrags()

	switched := c.geometry.SetArrangement(a)
	live := a.Axis()
	changes := func() {
		for _, axis := range axes {
			c.separators[axis].Hidden = axis != live
		}
	}

	var d time.Duration
	if switched && c.visible {
		d = c.opts.InvertAnimationDuration
	}
	if switched {
		c.logger.Info("arrangement changed", "arrangement", a.String(), "animated", d > 0)
	}
	c.animate(d, EaseInOut, changes, nil)
}

// FlipArrangement switches to the other arrangement.
func (c *Container) FlipArrangement() {
	c.SetArrangement(c.geometry.Arrangement().Flip())
}

// SizeClass returns the last compactness signal.
func (c *Container) SizeClass() SizeClass {
	return c.sizeClass
}

// SetSizeClass records the host's compactness signal and installs the
// arrangement it implies.
func (c *Container) SetSizeClass(s SizeClass) {
	c.sizeClass = s
	if a := s.Arrangement(); a != c.geometry.Arrangement() {
		c.SetArrangement(a)
	}
}

// Resize applies new container bounds and safe-area insets. Both axes keep
// their visual proportion across the change; a live drag continues from
// the projected position.
func (c *Container) Resize(size Size, insets Insets) {
	if c.geometry.seeded {
		for _, axis := range axes {
			c.geometry.ProjectRatioOntoNewExtent(axis, availableExtent(size, insets, c.geometry.keyboard, axis))
		}
	}
	c.geometry.setBounds(size, insets)
	for _, axis := range axes {
		c.controllers[axis].rebase()
	}
	c.visible = c.geometry.AvailableExtent(AxisWidth) > 0 || c.geometry.AvailableExtent(AxisHeight) > 0
	c.relayout()
}

// SetKeyboardHeight updates the cached on-screen keyboard height. A live
// vertical drag picks the new extent up on its next move.
func (c *Container) SetKeyboardHeight(h float64) {
	h = math.Max(sanitize(h), 0)
	if h == c.geometry.keyboard {
		return
	}
	if !c.controllers[AxisHeight].Dragging() {
		c.geometry.ProjectRatioOntoNewExtent(AxisHeight,
			availableExtent(c.geometry.bounds, c.geometry.insets, h, AxisHeight))
	}
	c.geometry.setKeyboard(h)
	c.logger.Debug("keyboard height changed", "height", c.geometry.keyboard)
	c.relayout()
}

// AttachKeyboard subscribes to a keyboard signal for the container's
// lifetime, replacing any earlier subscription.
func (c *Container) AttachKeyboard(sig *KeyboardSignal) {
	c.detachKeyboard()
	if sig != nil {
		c.keyboardCancel = sig.Subscribe(c.SetKeyboardHeight)
	}
}

// Close releases the keyboard subscription.
func (c *Container) Close() {
	c.detachKeyboard()
}

func (c *Container) detachKeyboard() {
	if c.keyboardCancel != nil {
		c.keyboardCancel()
		c.keyboardCancel = nil
	}
}

// HandleGesture routes a pointer event to the axis' separator. Events for a
// hidden separator are dropped.
func (c *Container) HandleGesture(axis Axis, ev GestureEvent) {
	if axis != AxisWidth && axis != AxisHeight {
		return
	}
	if c.separators[axis].Hidden && !c.controllers[axis].Dragging() {
		c.logger.Debug("gesture on hidden separator ignored", "axis", axis.String(), "phase", ev.Phase.String())
		return
	}
	c.controllers[axis].Handle(ev)
}

// HitTest returns the axis whose visible separator hit area contains p.
func (c *Container) HitTest(p Point) (Axis, bool) {
	for _, sf := range c.layout.Separators {
		if !sf.Hidden && sf.Frame.Contains(p) {
			return sf.Axis, true
		}
	}
	return AxisWidth, false
}

// CollapseFirst collapses the first pane on both axes, so the collapse
// survives an arrangement switch.
func (c *Container) CollapseFirst() {
	c.collapseBoth(CollapseFirst)
}

// CollapseSecond collapses the second pane on both axes.
func (c *Container) CollapseSecond() {
	c.collapseBoth(CollapseSecond)
}

func (c *Container) collapseBoth(decision CollapseDecision) {
	c.cancelDrags()
	c.animate(c.opts.DraggingAnimationDuration, EaseOut, func() {
		live := c.geometry.Arrangement().Axis()
		for _, axis := range axes {
			c.controllers[axis].collapse(decision, axis == live)
			c.separators[axis].settle()
			c.controllers[axis].restoreNow()
		}
	}, nil)
}

// ResetSplitPosition returns the active axis to 50/50 and clears its snap
// state.
func (c *Container) ResetSplitPosition() {
	c.cancelDrags()
	axis := c.geometry.Arrangement().Axis()
	c.animate(c.opts.DraggingAnimationDuration, EaseOut, func() {
		c.geometry.setConstant(axis, c.geometry.AvailableExtent(axis)/2)
		c.geometry.replaceRatio(axis, 0.5)
		c.separators[axis].Snap = SnapNone
		c.separators[axis].settle()
	}, nil)
	c.logger.Debug("split position reset", "axis", axis.String())
}

// CurrentSplitRatio is the second pane's share of the active axis, read
// from the active ratio constraint.
func (c *Container) CurrentSplitRatio() float64 {
	return 1 - c.geometry.Constraints(c.geometry.Arrangement().Axis()).Multiplier
}

// Options returns a copy of the live options.
func (c *Container) Options() Options {
	return c.opts.clone()
}

// SetOptions replaces the options. Invalid options are rejected and the
// previous set stays in force.
func (c *Container) SetOptions(o Options) error {
	if err := o.Validate(); err != nil {
		c.logger.Warn("options rejected", "error", err)
		return err
	}
	c.opts = o.clone()
	c.relayout()
	return nil
}

// Geometry exposes the constraint model for inspection.
func (c *Container) Geometry() *Geometry {
	return c.geometry
}

// Constraints returns a copy of the axis' constraint pair.
func (c *Container) Constraints(axis Axis) AxisConstraints {
	return c.geometry.Constraints(axis)
}

// Separator returns a copy of the axis' separator state.
func (c *Container) Separator(axis Axis) Separator {
	return *c.separators[axis]
}

// Controller returns the axis' drag controller.
func (c *Container) Controller(axis Axis) *DragController {
	return c.controllers[axis]
}

// Dragging reports whether any axis has a live gesture.
func (c *Container) Dragging() bool {
	return c.controllers[AxisWidth].Dragging() || c.controllers[AxisHeight].Dragging()
}

// Layout returns the most recent layout pass.
func (c *Container) Layout() Layout {
	return c.layout
}

// cancelDrags ends live gestures and runs their pending restorations.
func (c *Container) cancelDrags() {
	for _, ctrl := range c.controllers {
		ctrl.cancel()
		ctrl.flushRestore()
	}
}

func (c *Container) options() *Options { return &c.opts }
func (c *Container) delegate() Delegate { return c.del }

// animate applies changes followed by a layout pass. A positive duration
// hands them to the animator, which interpolates from the previous layout;
// otherwise everything, completion included, runs before animate returns.
func (c *Container) animate(d time.Duration, curve Curve, changes, completion func()) {
	apply := func() {
		if changes != nil {
			changes()
		}
		c.relayout()
	}
	if d <= 0 {
		apply()
		if completion != nil {
			completion()
		}
		return
	}
	c.animator.Animate(d, curve, apply, completion)
}

// relayout recomputes the layout snapshot and pushes pane frames.
func (c *Container) relayout() {
	c.layout = c.computeLayout()
	if c.first != nil {
		c.first.SetFrame(c.layout.First)
	}
	if c.second != nil {
		c.second.SetFrame(c.layout.Second)
	}
}

func (c *Container) computeLayout() Layout {
	g := c.geometry
	area := Rect{
		X:      g.insets.Left,
		Y:      g.insets.Top,
		Width:  g.AvailableExtent(AxisWidth),
		Height: g.AvailableExtent(AxisHeight),
	}

	l := Layout{
		Arrangement: g.arrangement,
		Area:        area,
		Background:  c.opts.BackgroundColor,
	}

	live := g.arrangement.Axis()
	split := g.FirstExtent(live)
	if live == AxisWidth {
		l.First = Rect{X: area.X, Y: area.Y, Width: split, Height: area.Height}
		l.Second = Rect{X: area.X + split, Y: area.Y, Width: area.Width - split, Height: area.Height}
	} else {
		l.First = Rect{X: area.X, Y: area.Y, Width: area.Width, Height: split}
		l.Second = Rect{X: area.X, Y: area.Y + split, Width: area.Width, Height: area.Height - split}
	}

	for _, axis := range axes {
		sep := c.separators[axis]
		sf := SeparatorFrame{
			Axis:          axis,
			HairlineColor: c.opts.SeparatorColor,
			TrackColor:    c.opts.SeparatorBackgroundColor,
			HairlineAlpha: sep.HairlineAlpha,
			HandleAlpha:   sep.HandleAlpha,
			Snap:          sep.Snap,
			Hidden:        sep.Hidden,
			Dragging:      sep.Dragging,
		}
		if sep.Dragging {
			sf.HairlineColor = c.opts.SeparatorSelectedColor
		}
		if axis == live {
			sf.Frame = band(area, axis, split, c.opts.SeparatorSize)
			sf.Hairline = band(area, axis, split, sep.HairlineThickness)
		}
		l.Separators[axis] = sf
	}
	return l
}

// band is a strip of the given thickness centred on offset along the axis
// and spanning area across it, clipped to area.
func band(area Rect, axis Axis, offset, thickness float64) Rect {
	lo := clamp(offset-thickness/2, 0, area.Along(axis))
	hi := clamp(offset+thickness/2, 0, area.Along(axis))
	if axis == AxisWidth {
		return Rect{X: area.X + lo, Y: area.Y, Width: hi - lo, Height: area.Height}
	}
	return Rect{X: area.X, Y: area.Y + lo, Width: area.Width, Height: hi - lo}
}
