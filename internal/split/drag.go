// pattern: Functional Core

package split

import (
	"math"
	"time"

	"splitkit/internal/logging"
)

// GesturePhase is the stage of a single continuous drag pointer.
type GesturePhase int

const (
	GestureBegan GesturePhase = iota
	GestureChanged
	GestureEnded
	GestureCancelled
)

func (p GesturePhase) String() string {
	switch p {
	case GestureBegan:
		return "began"
	case GestureChanged:
		return "changed"
	case GestureEnded:
		return "ended"
	case GestureCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// GestureEvent is one pointer event addressed to a separator.
// Translation is cumulative since the gesture began, along the separator's
// axis.
type GestureEvent struct {
	Phase       GesturePhase
	Translation float64
}

// DragSession is the state of one live gesture on an axis.
type DragSession struct {
	Origin      float64 // separator position when the gesture began
	Translation float64 // translation of the last applied move
	MaxExtent   float64 // available extent at the last event
	Snapped     bool    // last move landed on a snap point
	Collapsed   bool    // the gesture ended in a collapse
}

// dragHost is what a DragController needs from its container.
type dragHost interface {
	options() *Options
	delegate() Delegate
	animate(d time.Duration, curve Curve, changes, completion func())
	relayout()
}

// DragController runs the Idle → Dragging → Idle machine of one axis.
type DragController struct {
	axis      Axis
	geometry  *Geometry
	separator *Separator
	host      dragHost
	logger    *logging.ScopedLogger

	session *DragSession
	last    DragSession

	// restoreGen identifies the most recent drag end; pendingRestore is
	// the generation whose ratio restoration has not run yet (0: none).
	restoreGen     uint64
	pendingRestore uint64
}

func newDragController(axis Axis, g *Geometry, sep *Separator, host dragHost, logger *logging.ScopedLogger) *DragController {
	return &DragController{
		axis:      axis,
		geometry:  g,
		separator: sep,
		host:      host,
		logger:    logger,
	}
}

// Axis returns the axis the controller drives.
func (c *DragController) Axis() Axis {
	return c.axis
}

// Dragging reports whether a gesture is live.
func (c *DragController) Dragging() bool {
	return c.session != nil
}

// Session returns a copy of the live session.
func (c *DragController) Session() (DragSession, bool) {
	if c.session == nil {
		return DragSession{}, false
	}
	return *c.session, true
}

// LastSession returns the most recently finished session.
func (c *DragController) LastSession() DragSession {
	return c.last
}

// Handle feeds one pointer event into the state machine. Events that do
// not fit the current state are dropped.
func (c *DragController) Handle(ev GestureEvent) {
	switch ev.Phase {
	case GestureBegan:
		c.begin()
	case GestureChanged:
		c.move(ev.Translation)
	case GestureEnded, GestureCancelled:
		c.end(ev.Phase)
	default:
		c.logger.Debug("unknown gesture phase ignored", "phase", int(ev.Phase))
	}
}

func (c *DragController) begin() {
	if c.session != nil {
		c.logger.Debug("gesture begin ignored: already dragging")
		return
	}
	if !c.geometry.Constraints(c.axis).Installed {
		c.logger.Debug("gesture begin ignored: axis not installed")
		return
	}
	c.flushRestore()

	maxExtent := c.geometry.AvailableExtent(c.axis)
	c.geometry.setConstant(c.axis, c.geometry.Constraints(c.axis).Multiplier*maxExtent)
	c.geometry.activateFixed(c.axis)
	origin := c.geometry.Constraints(c.axis).Constant

	c.session = &DragSession{Origin: origin, MaxExtent: maxExtent}
	c.separator.Snap = SnapNone

	opts := c.host.options()
	c.host.animate(opts.DraggingAnimationDuration, EaseInOut, c.separator.beginDrag, nil)

	c.logger.Debug("drag began", "origin", origin, "max_extent", maxExtent)
	c.host.delegate().DragBegan()
}

func (c *DragController) move(translation float64) {
	s := c.session
	if s == nil {
		c.logger.Debug("gesture move ignored: no drag in progress")
		return
	}
	if math.IsNaN(translation) || math.IsInf(translation, 0) {
		c.logger.Debug("gesture move ignored: non-finite translation")
		return
	}

	opts := c.host.options()
	maxExtent := c.geometry.AvailableExtent(c.axis)
	s.MaxExtent = maxExtent

	pos, didSnap := TrySnap(s.Origin+translation, maxExtent, opts.SnapPoints, opts.SnapRange)
	c.geometry.setConstant(c.axis, clamp(pos, 0, maxExtent))

	if didSnap != s.Snapped {
		curve := EaseIn
		if didSnap {
			curve = EaseOut
		}
		c.host.animate(opts.DraggingAnimationDuration, curve, nil, nil)
	} else {
		c.host.relayout()
	}
	s.Snapped = didSnap
	s.Translation = translation

	decision := Decide(c.geometry.CurrentFraction(c.axis), opts.FirstCollapseThreshold, opts.SecondCollapseThreshold)
	pane, ok := decision.Position()
	c.host.delegate().WillCollapseIfDragEnds(pane, ok)
}

func (c *DragController) end(phase GesturePhase) {
	s := c.session
	if s == nil {
		c.logger.Debug("gesture end ignored: no drag in progress", "phase", phase.String())
		return
	}
	c.session = nil

	opts := c.host.options()
	decision := Decide(c.geometry.CurrentFraction(c.axis), opts.FirstCollapseThreshold, opts.SecondCollapseThreshold)
	collapsed := decision != CollapseNone
	if collapsed {
		c.collapse(decision, true)
	}
	s.Collapsed = collapsed
	c.last = *s

	c.restoreGen++
	gen := c.restoreGen
	c.pendingRestore = gen

	c.host.animate(opts.DraggingAnimationDuration, EaseOut,
		func() { c.separator.endDrag(collapsed) },
		func() { c.restoreRatio(gen) },
	)

	c.logger.Debug("drag ended",
		"phase", phase.String(),
		"decision", decision.String(),
		"constant", c.geometry.Constraints(c.axis).Constant,
	)
	c.host.delegate().DragEnded()
}

// rebase moves the live session's origin so that repeating the last
// translation lands on the current constant. Call after the constant was
// projected onto a new extent.
func (c *DragController) rebase() {
	s := c.session
	if s == nil {
		return
	}
	s.MaxExtent = c.geometry.AvailableExtent(c.axis)
	s.Origin = c.geometry.Constraints(c.axis).Constant - s.Translation
}

// cancel ends a live gesture as if the input system had cancelled it.
func (c *DragController) cancel() {
	if c.session != nil {
		c.end(GestureCancelled)
	}
}

// collapse pins the separator to an edge of the available extent.
func (c *DragController) collapse(decision CollapseDecision, notify bool) {
	switch decision {
	case CollapseFirst:
		c.geometry.setConstant(c.axis, 0)
		c.separator.Snap = SnapLeadingOrTop
	case CollapseSecond:
		c.geometry.setConstant(c.axis, c.geometry.AvailableExtent(c.axis))
		c.separator.Snap = SnapTrailingOrBottom
	default:
		return
	}
	if notify {
		pos, _ := decision.Position()
		c.logger.Info("pane collapsed", "pane", pos.String())
		c.host.delegate().DidCollapse(pos)
	}
}

// restoreRatio replaces the ratio constraint with the proportion the fixed
// constant now shows and hands layout back to it. It runs at most once per
// drag end, whichever path reaches it first.
func (c *DragController) restoreRatio(gen uint64) {
	if gen == 0 || c.pendingRestore != gen {
		return
	}
	c.pendingRestore = 0
	c.restoreNow()
}

// restoreNow recomputes the multiplier from the fixed constant.
func (c *DragController) restoreNow() {
	var ratio float64
	if extent := c.geometry.AvailableExtent(c.axis); extent > 0 {
		ratio = c.geometry.Constraints(c.axis).Constant / extent
	}
	c.geometry.replaceRatio(c.axis, ratio)
	c.host.relayout()
}

// flushRestore runs a restoration still waiting on an animation.
func (c *DragController) flushRestore() {
	if c.pendingRestore != 0 {
		c.restoreRatio(c.pendingRestore)
	}
}
