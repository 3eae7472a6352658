// pattern: Imperative Shell

package tui

import (
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"splitkit/internal/anim"
	"splitkit/internal/config"
	"splitkit/internal/logging"
	"splitkit/internal/split"
	"splitkit/internal/touch"
)

// doubleCtrlCWindow is the maximum time between two ctrl+c presses to trigger quit.
const doubleCtrlCWindow = 500 * time.Millisecond

const (
	maxLogEntries  = 500
	logBatchSize   = 100
	keyboardShare  = 1.0 / 3
	wheelLineDelta = 3
)

// logEntriesMsg delivers log entries from the logging channel.
type logEntriesMsg struct {
	entries []logging.LogEntry
}

// clearStatusMsg is sent after a timed delay to clear the quit hint.
type clearStatusMsg struct{}

// ConfigReloadedMsg is sent by the config watcher after the file changed.
type ConfigReloadedMsg struct {
	Config config.Config
	Err    error
}

// Update handles messages and updates the model. Every pass republishes
// the state and keeps the animator ticking while a transition runs.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	m, cmd := m.update(msg)
	m.second.SetLines(m.feed.Lines())
	m.publish(m.State())
	return m, tea.Batch(cmd, m.animator.Cmd())
}

func (m Model) update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.relayout()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		m.handleMouse(msg)
		return m, nil

	case touch.PointerMsg:
		m.handlePointer(msg)
		return m, nil

	case touch.ConnMsg:
		if msg.Connected {
			m.touchClients++
			m.setStatus(StatusInfo, "touch surface connected from %s", msg.Remote)
		} else {
			m.touchClients = max(0, m.touchClients-1)
			m.setStatus(StatusInfo, "touch surface disconnected")
		}
		return m, nil

	case anim.StepMsg:
		return m, m.animator.Update(msg)

	case ConfigReloadedMsg:
		m.applyConfig(msg)
		return m, nil

	case logEntriesMsg:
		m.logEntries = append(m.logEntries, msg.entries...)
		if len(m.logEntries) > maxLogEntries {
			m.logEntries = m.logEntries[len(m.logEntries)-maxLogEntries:]
		}
		m.updateLogViewportContent()
		return m, consumeLogEntries(m.logCh)

	case clearStatusMsg:
		// Only clear if still showing the quit hint (don't clobber other status)
		if m.statusLevel == StatusInfo && m.statusMessage == "ctrl+c ctrl+c to quit" {
			m.clearStatus()
		}
		return m, nil
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		now := m.now()
		if !m.lastCtrlC.IsZero() && now.Sub(m.lastCtrlC) < doubleCtrlCWindow {
			return m, tea.Quit
		}
		m.lastCtrlC = now
		m.setStatus(StatusInfo, "ctrl+c ctrl+c to quit")
		return m, tea.Tick(doubleCtrlCWindow, func(time.Time) tea.Msg { return clearStatusMsg{} })

	case "q":
		return m, tea.Quit

	case "esc":
		if axis, ok := m.pointers.abort(); ok {
			m.container.HandleGesture(axis, split.GestureEvent{Phase: split.GestureCancelled})
			m.setStatus(StatusInfo, "drag cancelled")
			return m, nil
		}
		m.clearStatus()

	case "o":
		m.pointers.abort()
		m.autoArrangement = false
		m.container.FlipArrangement()
		m.setStatus(StatusInfo, "arrangement %s", m.container.Arrangement())

	case "[":
		m.pointers.abort()
		m.container.CollapseFirst()

	case "]":
		m.pointers.abort()
		m.container.CollapseSecond()

	case "r":
		m.pointers.abort()
		m.container.ResetSplitPosition()
		m.setStatus(StatusSuccess, "split reset")

	case "k":
		m.keyboardUp = !m.keyboardUp
		m.publishKeyboard()

	case "l":
		m.logPanelOpen = !m.logPanelOpen
		m.relayout()
	}
	return m, nil
}

func (m *Model) handleMouse(msg tea.MouseMsg) {
	body := m.layout().Body
	p := cellPoint(body, msg.X, msg.Y)

	switch {
	case msg.Button == tea.MouseButtonWheelUp || msg.Button == tea.MouseButtonWheelDown:
		delta := wheelLineDelta
		if msg.Button == tea.MouseButtonWheelUp {
			delta = -delta
		}
		if pane := m.paneAt(p); pane != nil {
			pane.Scroll(delta)
		} else if m.layout().Logs.Contains(msg.X, msg.Y) {
			if delta < 0 {
				m.logViewport.ScrollUp(-delta)
			} else {
				m.logViewport.ScrollDown(delta)
			}
		}

	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		m.gesture(m.pointers.down(mousePointer, p, m.container.HitTest))

	case msg.Action == tea.MouseActionMotion:
		m.gesture(m.pointers.move(mousePointer, p))

	case msg.Action == tea.MouseActionRelease:
		m.gesture(m.pointers.up(mousePointer, p, false))
	}
}

func (m *Model) handlePointer(msg touch.PointerMsg) {
	p := m.touchPoint(msg.Event)
	switch msg.Event.Phase {
	case touch.PhaseDown:
		m.gesture(m.pointers.down(msg.Conn, p, m.container.HitTest))
	case touch.PhaseMove:
		m.gesture(m.pointers.move(msg.Conn, p))
	case touch.PhaseUp:
		m.gesture(m.pointers.up(msg.Conn, p, false))
	case touch.PhaseCancel:
		m.gesture(m.pointers.up(msg.Conn, p, true))
	}
}

func (m *Model) gesture(axis split.Axis, events []split.GestureEvent) {
	for _, ev := range events {
		m.container.HandleGesture(axis, ev)
	}
}

// touchPoint maps a touch event into body coordinates. Cell coordinates
// address the centre of the cell, like the mouse.
func (m Model) touchPoint(ev touch.PointerEvent) split.Point {
	body := m.layout().Body
	if ev.Normalized {
		return split.Point{
			X: ev.X*float64(m.width) - float64(body.X),
			Y: ev.Y*float64(m.height) - float64(body.Y),
		}
	}
	return split.Point{
		X: ev.X + 0.5 - float64(body.X),
		Y: ev.Y + 0.5 - float64(body.Y),
	}
}

func (m Model) paneAt(p split.Point) *Pane {
	switch {
	case m.first.Frame().Contains(p):
		return m.first
	case m.second.Frame().Contains(p):
		return m.second
	}
	return nil
}

func (m Model) layout() Layout {
	return ComputeLayout(m.width, m.height, m.logPanelOpen)
}

// relayout pushes the terminal size into the container and the log
// viewport.
func (m *Model) relayout() {
	layout := m.layout()
	if m.autoArrangement {
		m.container.SetSizeClass(m.cfg.SizeClass(m.width))
	}
	m.container.Resize(split.Size{Width: float64(layout.Body.Width), Height: float64(layout.Body.Height)}, split.Insets{})
	m.publishKeyboard()

	m.logViewport.Width = layout.Logs.Width
	m.logViewport.Height = max(0, layout.Logs.Height-1)
	m.updateLogViewportContent()
}

// publishKeyboard raises the simulated keyboard over the bottom third of
// the body, or lowers it.
func (m *Model) publishKeyboard() {
	h := 0.0
	if m.keyboardUp {
		h = math.Round(float64(m.layout().Body.Height) * keyboardShare)
	}
	m.keyboard.Publish(h)
}

func (m *Model) applyConfig(msg ConfigReloadedMsg) {
	if msg.Err != nil {
		m.err = msg.Err
		m.setStatus(StatusError, "config reload failed: %v", msg.Err)
		return
	}
	opts, err := msg.Config.SplitOptions()
	if err == nil {
		err = m.container.SetOptions(opts)
	}
	if err != nil {
		m.err = err
		m.setStatus(StatusError, "config rejected: %v", err)
		return
	}

	m.cfg = msg.Config
	m.styles = NewStyles(msg.Config.Flavor())
	if a, fixed, err := msg.Config.FixedArrangement(); err == nil && fixed {
		m.autoArrangement = false
		m.container.SetArrangement(a)
	} else {
		m.autoArrangement = true
		if m.width > 0 {
			m.container.SetSizeClass(m.cfg.SizeClass(m.width))
		}
	}
	m.setStatus(StatusSuccess, "config reloaded")
}

func (m *Model) updateLogViewportContent() {
	lines := make([]string, 0, len(m.logEntries))
	for _, entry := range m.logEntries {
		lines = append(lines, m.renderLogEntry(entry))
	}
	m.logViewport.SetContent(strings.Join(lines, "\n"))
	m.logViewport.GotoBottom()
}

// consumeLogEntries waits for the next entry and returns it with whatever
// else is already buffered.
func consumeLogEntries(ch <-chan logging.LogEntry) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		entry, ok := <-ch
		if !ok {
			return nil
		}
		entries := []logging.LogEntry{entry}
		for len(entries) < logBatchSize {
			select {
			case entry, ok := <-ch:
				if !ok {
					return logEntriesMsg{entries: entries}
				}
				entries = append(entries, entry)
			default:
				return logEntriesMsg{entries: entries}
			}
		}
		return logEntriesMsg{entries: entries}
	}
}
