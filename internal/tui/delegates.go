// pattern: Imperative Shell

package tui

import (
	"fmt"
	"time"

	"splitkit/internal/logging"
	"splitkit/internal/split"
)

const maxEvents = 200

// eventFeed is the container delegate of the demo host. It keeps a short
// history for the event pane and the pending collapse for the status bar.
type eventFeed struct {
	logger *logging.ScopedLogger
	now    func() time.Time

	events   []string
	pending  string // pane that would collapse, "" when none
	dragging bool
	last     string
}

func newEventFeed(logger *logging.ScopedLogger) *eventFeed {
	return &eventFeed{logger: logger, now: time.Now}
}

func (f *eventFeed) DragBegan() {
	f.dragging = true
	f.record("drag began")
}

func (f *eventFeed) DragEnded() {
	f.dragging = false
	f.pending = ""
	f.record("drag ended")
}

func (f *eventFeed) WillCollapseIfDragEnds(pos split.ChildPosition, ok bool) {
	next := ""
	if ok {
		next = pos.String()
	}
	if next != f.pending {
		f.pending = next
		if ok {
			f.record(fmt.Sprintf("release to collapse %s pane", pos))
		}
	}
}

func (f *eventFeed) DidCollapse(pos split.ChildPosition) {
	f.record(fmt.Sprintf("collapsed %s pane", pos))
	f.logger.Info("pane collapsed", "pane", pos.String())
}

func (f *eventFeed) record(event string) {
	f.last = event
	f.events = append(f.events, f.now().Format("15:04:05")+"  "+event)
	if len(f.events) > maxEvents {
		f.events = f.events[len(f.events)-maxEvents:]
	}
}

// Lines returns the recorded events, oldest first.
func (f *eventFeed) Lines() []string {
	return f.events
}
