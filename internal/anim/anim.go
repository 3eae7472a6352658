// pattern: Imperative Shell

// Package anim presents split layout changes over time inside a bubbletea
// program. It satisfies split.Animator: changes are applied to the model at
// once and Frame interpolates from the layout shown before them.
package anim

import (
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"splitkit/internal/logging"
	"splitkit/internal/split"
)

const fps = 60

var lastID int64

func nextID() int { return int(atomic.AddInt64(&lastID, 1)) }

// StepMsg advances the animator that scheduled it.
type StepMsg struct{ id int }

type transition struct {
	from       split.Layout
	start      time.Time
	duration   time.Duration
	curve      split.Curve
	completion func()
}

func (t *transition) progress(now time.Time) float64 {
	if t.duration <= 0 {
		return 1
	}
	return float64(now.Sub(t.start)) / float64(t.duration)
}

// Animator drives split transitions from tea.Tick messages. It must only
// be used from the bubbletea Update goroutine.
type Animator struct {
	id       int
	snapshot func() split.Layout
	now      func() time.Time
	interval time.Duration
	logger   *logging.ScopedLogger

	transitions []*transition
	ticking     bool
}

// New returns an animator presenting the layouts snapshot returns.
// Usually snapshot is Container.Layout.
func New(snapshot func() split.Layout, logs logging.LoggerProvider) *Animator {
	a := &Animator{
		id:       nextID(),
		snapshot: snapshot,
		now:      time.Now,
		interval: time.Second / fps,
		logger:   logging.NopLogger(),
	}
	if logs != nil {
		a.logger = logs.For("anim")
	}
	return a
}

// Animate applies changes and starts presenting them over d.
func (a *Animator) Animate(d time.Duration, curve split.Curve, changes func(), completion func()) {
	from := a.Frame()
	if changes != nil {
		changes()
	}
	a.transitions = append(a.transitions, &transition{
		from:       from,
		start:      a.now(),
		duration:   d,
		curve:      curve,
		completion: completion,
	})
	a.logger.Debug("transition started", "duration", d.String(), "curve", curve.String(), "active", len(a.transitions))
}

// Active reports whether a transition is still running.
func (a *Animator) Active() bool {
	return len(a.transitions) > 0
}

// Cmd returns the tick that keeps transitions running, or nil when none is
// needed. Call it after every Update that may have started one.
func (a *Animator) Cmd() tea.Cmd {
	if a.ticking || len(a.transitions) == 0 {
		return nil
	}
	a.ticking = true
	return a.step()
}

// Update handles a StepMsg: finished transitions run their completions and
// the next tick is scheduled while any remain.
func (a *Animator) Update(msg StepMsg) tea.Cmd {
	if msg.id != a.id {
		return nil
	}
	a.ticking = false
	a.complete(false)
	return a.Cmd()
}

// Flush finishes every transition now.
func (a *Animator) Flush() {
	a.complete(true)
}

func (a *Animator) complete(all bool) {
	now := a.now()
	var done []*transition
	kept := a.transitions[:0]
	for _, t := range a.transitions {
		if all || t.progress(now) >= 1 {
			done = append(done, t)
		} else {
			kept = append(kept, t)
		}
	}
	a.transitions = kept

	// Completions may start new transitions; those land in a.transitions.
	for _, t := range done {
		if t.completion != nil {
			t.completion()
		}
	}
}

// Frame returns the layout to draw now. The newest transition already
// started from the presentation of the ones before it, so only it is
// interpolated.
func (a *Animator) Frame() split.Layout {
	target := a.snapshot()
	if len(a.transitions) == 0 {
		return target
	}
	t := a.transitions[len(a.transitions)-1]
	return Lerp(t.from, target, t.curve.Ease(t.progress(a.now())))
}

func (a *Animator) step() tea.Cmd {
	id := a.id
	return tea.Tick(a.interval, func(time.Time) tea.Msg { return StepMsg{id: id} })
}
