// pattern: Functional Core

// Package touch bridges a remote single-pointer touch surface into the
// split container over a websocket. Each text frame carries one JSON
// PointerEvent.
package touch

import "fmt"

// Phase is the stage of a pointer gesture.
type Phase string

const (
	PhaseDown   Phase = "down"
	PhaseMove   Phase = "move"
	PhaseUp     Phase = "up"
	PhaseCancel Phase = "cancel"
)

// PointerEvent is one frame on the /touch socket. Coordinates are terminal
// cells unless Normalized is set, in which case they are fractions of the
// touch surface and the host scales them to its own size.
type PointerEvent struct {
	Phase      Phase   `json:"phase"`
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	Normalized bool    `json:"normalized,omitempty"`
}

// Validate rejects unknown phases and out-of-range normalized coordinates.
func (e PointerEvent) Validate() error {
	switch e.Phase {
	case PhaseDown, PhaseMove, PhaseUp, PhaseCancel:
	default:
		return fmt.Errorf("unknown pointer phase %q", e.Phase)
	}
	if e.Normalized && (e.X < 0 || e.X > 1 || e.Y < 0 || e.Y > 1) {
		return fmt.Errorf("normalized point (%v, %v) outside the unit square", e.X, e.Y)
	}
	return nil
}

// PointerMsg is delivered to the host program for every accepted event.
// Conn identifies the socket so the host can keep one gesture per pointer.
type PointerMsg struct {
	Conn  int
	Event PointerEvent
}

// ConnMsg reports a touch surface connecting or going away.
type ConnMsg struct {
	Conn      int
	Remote    string
	Connected bool
}

// State is the container summary served on GET /api/state.
type State struct {
	Arrangement string  `json:"arrangement"`
	SplitRatio  float64 `json:"split_ratio"`
	Dragging    bool    `json:"dragging"`
	Width       float64 `json:"width"`
	Height      float64 `json:"height"`
	Keyboard    float64 `json:"keyboard_height"`
	LastEvent   string  `json:"last_event,omitempty"`
}

// Stroke builds a down, steps moves and an up from one point to another,
// in cells.
func Stroke(fromX, fromY, toX, toY float64, steps int) []PointerEvent {
	if steps < 1 {
		steps = 1
	}
	events := make([]PointerEvent, 0, steps+2)
	events = append(events, PointerEvent{Phase: PhaseDown, X: fromX, Y: fromY})
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps)
		events = append(events, PointerEvent{
			Phase: PhaseMove,
			X:     fromX + (toX-fromX)*t,
			Y:     fromY + (toY-fromY)*t,
		})
	}
	return append(events, PointerEvent{Phase: PhaseUp, X: toX, Y: toY})
}
