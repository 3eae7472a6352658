package tui

import (
	"math"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/x/ansi"

	"splitkit/internal/split"
)

// Pane is split content backed by a scrollable viewport. The container
// hands it the frame it occupies; the top row shows the title.
type Pane struct {
	title    string
	frame    split.Rect
	viewport viewport.Model
	follow   bool // keep the newest line in view
}

func NewPane(title string) *Pane {
	return &Pane{title: title, viewport: viewport.New(0, 0)}
}

// SetFrame resizes the viewport to the frame in whole cells.
func (p *Pane) SetFrame(r split.Rect) {
	p.frame = r
	p.viewport.Width = max(0, int(math.Round(r.Width)))
	p.viewport.Height = max(0, int(math.Round(r.Height))-1)
	if p.follow {
		p.viewport.GotoBottom()
	}
}

// Frame returns the last frame the container assigned.
func (p *Pane) Frame() split.Rect {
	return p.frame
}

func (p *Pane) Title() string {
	return p.title
}

// SetLines replaces the content.
func (p *Pane) SetLines(lines []string) {
	p.viewport.SetContent(strings.Join(lines, "\n"))
	if p.follow {
		p.viewport.GotoBottom()
	}
}

// Scroll moves the content by delta lines, negative is up.
func (p *Pane) Scroll(delta int) {
	if delta < 0 {
		p.viewport.ScrollUp(-delta)
	} else {
		p.viewport.ScrollDown(delta)
	}
}

// Rows renders exactly height rows of exactly width cells, title first.
// The drawn size may differ from the frame while a transition runs.
func (p *Pane) Rows(width, height int) []string {
	if height <= 0 {
		return nil
	}
	rows := make([]string, 0, height)
	rows = append(rows, fit(" "+p.title, width))

	body := strings.Split(p.viewport.View(), "\n")
	for i := 0; len(rows) < height; i++ {
		line := ""
		if i < len(body) {
			line = body[i]
		}
		rows = append(rows, fit(" "+line, width))
	}
	return rows
}

// fit truncates or pads s to exactly width cells.
func fit(s string, width int) string {
	if width <= 0 {
		return ""
	}
	s = strings.TrimRight(s, " ")
	if ansi.StringWidth(s) > width {
		s = ansi.Truncate(s, width, "…")
	}
	if pad := width - ansi.StringWidth(s); pad > 0 {
		s += strings.Repeat(" ", pad)
	}
	return s
}
