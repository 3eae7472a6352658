// pattern: Functional Core

package tui

import "splitkit/internal/split"

// mousePointer is the pointer id of the local terminal mouse. Touch
// surfaces use their positive connection ids.
const mousePointer = 0

type gesture struct {
	axis   split.Axis
	origin split.Point
	last   float64 // translation of the last event sent
}

// pointerTracker turns raw press, motion and release positions into
// gesture events with cumulative translation. At most one pointer drives
// the container at a time; others are ignored until it lifts.
type pointerTracker struct {
	owner  int
	active *gesture
}

// down starts a gesture when p hits a separator.
func (t *pointerTracker) down(id int, p split.Point, hit func(split.Point) (split.Axis, bool)) (split.Axis, []split.GestureEvent) {
	if t.active != nil {
		return 0, nil
	}
	axis, ok := hit(p)
	if !ok {
		return 0, nil
	}
	t.owner = id
	t.active = &gesture{axis: axis, origin: p}
	return axis, []split.GestureEvent{{Phase: split.GestureBegan}}
}

func (t *pointerTracker) move(id int, p split.Point) (split.Axis, []split.GestureEvent) {
	if !t.owns(id) {
		return 0, nil
	}
	tr := t.translation(p)
	t.active.last = tr
	return t.active.axis, []split.GestureEvent{{Phase: split.GestureChanged, Translation: tr}}
}

// up ends the owner's gesture. A lift away from the last reported position
// moves there first; cancelled reports a lost pointer, which does not move.
func (t *pointerTracker) up(id int, p split.Point, cancelled bool) (split.Axis, []split.GestureEvent) {
	if !t.owns(id) {
		return 0, nil
	}
	g := t.active
	t.active = nil

	tr := g.last
	var events []split.GestureEvent
	if !cancelled {
		if moved := t.translationFrom(g, p); moved != g.last {
			tr = moved
			events = append(events, split.GestureEvent{Phase: split.GestureChanged, Translation: tr})
		}
	}
	phase := split.GestureEnded
	if cancelled {
		phase = split.GestureCancelled
	}
	return g.axis, append(events, split.GestureEvent{Phase: phase, Translation: tr})
}

// abort drops the active gesture, returning its axis.
func (t *pointerTracker) abort() (split.Axis, bool) {
	if t.active == nil {
		return 0, false
	}
	axis := t.active.axis
	t.active = nil
	return axis, true
}

func (t *pointerTracker) owns(id int) bool {
	return t.active != nil && t.owner == id
}

func (t *pointerTracker) tracking() bool {
	return t.active != nil
}

func (t *pointerTracker) translation(p split.Point) float64 {
	return t.translationFrom(t.active, p)
}

func (t *pointerTracker) translationFrom(g *gesture, p split.Point) float64 {
	return p.Along(g.axis) - g.origin.Along(g.axis)
}
