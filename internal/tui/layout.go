// pattern: Functional Core

package tui

import (
	"math"

	"splitkit/internal/split"
)

// Region defines a rectangular area within the terminal.
type Region struct {
	X      int // Left position (0-indexed)
	Y      int // Top position (0-indexed)
	Width  int // Width in cells
	Height int // Height in lines
}

// Contains reports whether the cell (x, y) lies inside r.
func (r Region) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.Width && y >= r.Y && y < r.Y+r.Height
}

// Layout holds computed regions for all UI components.
type Layout struct {
	Header    Region // Title (1 line)
	Body      Region // Split container area
	Logs      Region // Log panel when open
	StatusBar Region // Status bar (1 line)
}

const (
	headerHeight    = 1
	statusBarHeight = 1
	minBodyHeight   = 3
	logPanelShare   = 0.3
)

// ComputeLayout calculates regions based on terminal dimensions. When
// logPanelOpen is true the bottom 30% of the space between header and
// status bar goes to the log panel.
func ComputeLayout(width, height int, logPanelOpen bool) Layout {
	available := height - headerHeight - statusBarHeight
	if available < minBodyHeight {
		available = minBodyHeight
	}

	bodyHeight, logsHeight := available, 0
	if logPanelOpen {
		logsHeight = int(float64(available) * logPanelShare)
		if available-logsHeight < minBodyHeight {
			logsHeight = max(0, available-minBodyHeight)
		}
		bodyHeight = available - logsHeight
	}

	y := 0
	header := Region{X: 0, Y: y, Width: width, Height: headerHeight}
	y += headerHeight

	body := Region{X: 0, Y: y, Width: width, Height: bodyHeight}
	y += bodyHeight

	var logs Region
	if logsHeight > 0 {
		logs = Region{X: 0, Y: y, Width: width, Height: logsHeight}
		y += logsHeight
	}

	return Layout{
		Header:    header,
		Body:      body,
		Logs:      logs,
		StatusBar: Region{X: 0, Y: y, Width: width, Height: statusBarHeight},
	}
}

// bodyCells is the split layout quantised to whole cells along the live
// axis of a body total cells long.
type bodyCells struct {
	axis       split.Axis
	first      int // cells of the first pane
	separator  int // index of the separator cell, -1 when hidden
	second     int // cells of the second pane
	areaCross  int // cells across the axis left by the keyboard
	areaExtent int // cells along the axis left by the keyboard
}

// quantise rounds a split layout to cells. The separator takes one cell at
// the rounded boundary; the panes share what is left.
func quantise(l split.Layout, width, height int) bodyCells {
	axis := l.Arrangement.Axis()
	areaW := clampInt(int(math.Round(l.Area.Width)), 0, width)
	areaH := clampInt(int(math.Round(l.Area.Height)), 0, height)

	c := bodyCells{axis: axis, separator: -1}
	if axis == split.AxisWidth {
		c.areaExtent, c.areaCross = areaW, areaH
	} else {
		c.areaExtent, c.areaCross = areaH, areaW
	}
	total := c.areaExtent
	if total == 0 {
		return c
	}

	boundary := clampInt(int(math.Round(l.First.Along(axis))), 0, total)
	if l.Live().Hidden {
		c.first = boundary
		c.second = total - boundary
		return c
	}

	c.separator = min(boundary, total-1)
	c.first = c.separator
	c.second = total - c.separator - 1
	return c
}

// cellPoint maps a terminal cell to the centre of that cell in body
// coordinates.
func cellPoint(body Region, x, y int) split.Point {
	return split.Point{
		X: float64(x-body.X) + 0.5,
		Y: float64(y-body.Y) + 0.5,
	}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
