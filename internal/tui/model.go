package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"splitkit/internal/anim"
	"splitkit/internal/config"
	"splitkit/internal/logging"
	"splitkit/internal/split"
	"splitkit/internal/touch"
)

// StatusLevel classifies the status bar message.
type StatusLevel int

const (
	StatusInfo StatusLevel = iota
	StatusSuccess
	StatusError
)

// Model represents the TUI application state: one split container filling
// the body, a help pane and an event pane inside it.
type Model struct {
	width  int
	height int
	cfg    config.Config
	styles *Styles
	logger *logging.ScopedLogger

	container *split.Container
	animator  *anim.Animator
	keyboard  *split.KeyboardSignal
	feed      *eventFeed
	pointers  *pointerTracker
	first     *Pane
	second    *Pane

	autoArrangement bool
	keyboardUp      bool

	logPanelOpen bool
	logViewport  viewport.Model
	logEntries   []logging.LogEntry
	logCh        <-chan logging.LogEntry

	publish      func(touch.State)
	touchClients int

	statusMessage string
	statusLevel   StatusLevel
	lastCtrlC     time.Time
	now           func() time.Time
	err           error
}

// NewModel creates a model from configuration. logs may be nil.
func NewModel(cfg config.Config, logs logging.LoggerProvider) (Model, error) {
	opts, err := cfg.SplitOptions()
	if err != nil {
		return Model{}, err
	}
	fixed, isFixed, err := cfg.FixedArrangement()
	if err != nil {
		return Model{}, err
	}

	logger := logging.NopLogger()
	if logs != nil {
		logger = logs.For("tui")
	}

	c, err := split.New(opts, logs)
	if err != nil {
		return Model{}, err
	}

	feed := newEventFeed(logger)
	animator := anim.New(c.Layout, logs)
	keyboard := split.NewKeyboardSignal()
	first := NewPane("one")
	second := NewPane("events")
	second.follow = true
	first.SetLines(helpLines)

	c.SetDelegate(feed)
	c.SetAnimator(animator)
	c.SetFirst(first)
	c.SetSecond(second)
	c.AttachKeyboard(keyboard)
	if isFixed {
		c.SetArrangement(fixed)
	}

	return Model{
		cfg:             cfg,
		styles:          NewStyles(cfg.Flavor()),
		logger:          logger,
		container:       c,
		animator:        animator,
		keyboard:        keyboard,
		feed:            feed,
		pointers:        &pointerTracker{},
		first:           first,
		second:          second,
		autoArrangement: !isFixed,
		logViewport:     viewport.New(0, 0),
		publish:         func(touch.State) {},
		now:             time.Now,
	}, nil
}

// WithLogEntries streams entries from ch into the log panel.
func (m Model) WithLogEntries(ch <-chan logging.LogEntry) Model {
	m.logCh = ch
	return m
}

// WithStatePublisher calls fn with the container state after every update.
func (m Model) WithStatePublisher(fn func(touch.State)) Model {
	if fn == nil {
		fn = func(touch.State) {}
	}
	m.publish = fn
	return m
}

// Init returns the initial command to run.
func (m Model) Init() tea.Cmd {
	return consumeLogEntries(m.logCh)
}

// Container exposes the split container for inspection.
func (m Model) Container() *split.Container {
	return m.container
}

// State summarises the container for the touch bridge.
func (m Model) State() touch.State {
	bounds := m.container.Geometry().Bounds()
	return touch.State{
		Arrangement: m.container.Arrangement().String(),
		SplitRatio:  m.container.CurrentSplitRatio(),
		Dragging:    m.container.Dragging(),
		Width:       bounds.Width,
		Height:      bounds.Height,
		Keyboard:    m.keyboard.Height(),
		LastEvent:   m.feed.last,
	}
}

// Close detaches the container from the keyboard signal and finishes any
// running transition.
func (m Model) Close() {
	m.animator.Flush()
	m.container.Close()
}

func (m *Model) setStatus(level StatusLevel, format string, args ...any) {
	m.statusLevel = level
	m.statusMessage = fmt.Sprintf(format, args...)
}

func (m *Model) clearStatus() {
	m.statusLevel = StatusInfo
	m.statusMessage = ""
	m.err = nil
}

var helpLines = []string{
	"Drag the separator with the mouse, or from",
	"a phone on the touch bridge.",
	"",
	"Release near an edge to collapse a pane,",
	"near the middle to snap to it.",
	"",
	"o      flip arrangement",
	"[ ]    collapse first / second",
	"r      reset to half",
	"k      toggle on-screen keyboard",
	"l      toggle log panel",
	"esc    cancel the drag",
	"q      quit",
}
