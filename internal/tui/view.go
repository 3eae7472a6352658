// pattern: Imperative Shell

package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"splitkit/internal/logging"
	"splitkit/internal/split"
)

// View renders the TUI.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "starting splitkit..."
	}

	layout := m.layout()

	header := m.renderHeader(layout.Header.Width)
	parts := []string{header, m.renderBody(layout.Body)}
	if m.logPanelOpen && layout.Logs.Height > 0 {
		parts = append(parts, m.renderLogPanel(layout))
	}
	parts = append(parts, fit(m.renderStatusBar(layout.StatusBar.Width), layout.StatusBar.Width))

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m Model) renderHeader(width int) string {
	title := m.styles.TitleStyle().Render("splitkit")
	info := fmt.Sprintf("  %s  %3.0f%%", m.container.Arrangement(), m.container.CurrentSplitRatio()*100)
	if m.touchClients > 0 {
		info += fmt.Sprintf("  touch:%d", m.touchClients)
	}
	return fit(title+m.styles.SubtitleStyle().Render(info), width)
}

// renderBody draws the animated frame of the split container, quantised to
// cells, with the simulated keyboard under it.
func (m Model) renderBody(body Region) string {
	frame := m.animator.Frame()
	cells := quantise(frame, body.Width, body.Height)
	live := frame.Live()

	paneStyle := m.styles.PaneStyle(frame.Background)
	titleStyle := m.styles.PaneTitleStyle(frame.Background)
	sepStyle := m.styles.SeparatorStyle(live)
	glyph, grip := separatorGlyphs(live, cells.axis)

	paint := func(rows []string, i int) string {
		if i == 0 {
			return titleStyle.Render(rows[i])
		}
		return paneStyle.Render(rows[i])
	}

	var lines []string
	areaHeight := cells.areaCross
	if cells.axis == split.AxisWidth {
		firstRows := m.first.Rows(cells.first, areaHeight)
		secondRows := m.second.Rows(cells.second, areaHeight)
		for y := 0; y < areaHeight; y++ {
			var sb strings.Builder
			if cells.first > 0 {
				sb.WriteString(paint(firstRows, y))
			}
			if cells.separator >= 0 {
				g := glyph
				if y == areaHeight/2 {
					g = grip
				}
				sb.WriteString(sepStyle.Render(g))
			}
			if cells.second > 0 {
				sb.WriteString(paint(secondRows, y))
			}
			lines = append(lines, sb.String())
		}
	} else {
		areaHeight = cells.areaExtent
		width := cells.areaCross
		firstRows := m.first.Rows(width, cells.first)
		for y := range firstRows {
			lines = append(lines, paint(firstRows, y))
		}
		if cells.separator >= 0 && width > 0 {
			row := strings.Repeat(glyph, width/2) + grip + strings.Repeat(glyph, width-width/2-1)
			lines = append(lines, sepStyle.Render(row))
		}
		secondRows := m.second.Rows(width, cells.second)
		for y := range secondRows {
			lines = append(lines, paint(secondRows, y))
		}
	}

	if kb := body.Height - areaHeight; kb > 0 {
		style := m.styles.KeyboardStyle()
		for y := 0; y < kb; y++ {
			label := ""
			if y == kb/2 {
				label = "keyboard"
			}
			lines = append(lines, style.Render(lipgloss.PlaceHorizontal(body.Width, lipgloss.Center, label)))
		}
	}
	for len(lines) < body.Height {
		lines = append(lines, strings.Repeat(" ", body.Width))
	}

	return strings.Join(lines[:body.Height], "\n")
}

// separatorGlyphs picks the line and grip runes: the handle is heavy, the
// hairline light, and a collapsed handle is the only one with a grip.
func separatorGlyphs(sf split.SeparatorFrame, axis split.Axis) (line, grip string) {
	handle := sf.HandleAlpha >= 0.5 || sf.Dragging
	switch {
	case axis == split.AxisWidth && handle:
		return "┃", "⋮"
	case axis == split.AxisWidth:
		return "│", "│"
	case handle:
		return "━", "⋯"
	default:
		return "─", "─"
	}
}

// renderStatusBar renders the status bar with drag feedback and help.
func (m Model) renderStatusBar(width int) string {
	var statusText string
	switch {
	case m.feed.pending != "":
		statusText = m.styles.WarnStyle().Render("release to collapse the " + m.feed.pending + " pane")
	case m.statusLevel == StatusError:
		statusText = m.styles.ErrorStyle().Render("✗ " + m.statusMessage)
	case m.statusLevel == StatusSuccess:
		statusText = m.styles.AccentStyle().Render("✓ " + m.statusMessage)
	case m.statusMessage != "":
		statusText = m.styles.InfoStyle().Render(m.statusMessage)
	case m.container.Dragging():
		statusText = m.styles.InfoStyle().Render("dragging")
	}

	help := m.styles.HelpStyle().Render("o: flip • [/]: collapse • r: reset • k: keyboard • l: logs • q: quit")

	statusWidth := lipgloss.Width(statusText)
	helpWidth := lipgloss.Width(help)
	spacerWidth := width - statusWidth - helpWidth - 2
	if spacerWidth < 1 {
		spacerWidth = 1
	}

	return lipgloss.JoinHorizontal(lipgloss.Bottom,
		statusText,
		strings.Repeat(" ", spacerWidth),
		help,
	)
}

// renderLogEntry formats a single log entry for display.
func (m Model) renderLogEntry(entry logging.LogEntry) string {
	ts := m.styles.LogTimestampStyle().Render(entry.Timestamp.Format("15:04:05"))
	level := m.styles.LogLevelStyle(entry.Level).Render(fmt.Sprintf("%-5s", entry.Level))
	scope := m.styles.LogScopeStyle().Render("[" + entry.Scope + "]")
	return fmt.Sprintf("%s %s %s %s", ts, level, scope, entry.Message)
}

// renderLogPanel renders the log panel content.
func (m Model) renderLogPanel(layout Layout) string {
	header := m.styles.PanelHeaderStyle().Width(layout.Logs.Width).Render(fmt.Sprintf(" Logs (%d)", len(m.logEntries)))
	if len(m.logEntries) == 0 {
		empty := lipgloss.NewStyle().
			Width(layout.Logs.Width).
			Height(max(0, layout.Logs.Height-1)).
			Render(m.styles.InfoStyle().Render("No log entries"))
		return lipgloss.JoinVertical(lipgloss.Left, header, empty)
	}
	return lipgloss.JoinVertical(lipgloss.Left, header, m.logViewport.View())
}
