package tui

import (
	catppuccin "github.com/catppuccin/go"
	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"

	"splitkit/internal/split"
)

type Styles struct {
	flavor catppuccin.Flavor
}

func NewStyles(flavor catppuccin.Flavor) *Styles {
	if flavor == nil {
		flavor = catppuccin.Mocha
	}
	return &Styles{flavor: flavor}
}

func (s *Styles) TitleStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(s.flavor.Mauve().Hex))
}

func (s *Styles) SubtitleStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(s.flavor.Subtext0().Hex))
}

func (s *Styles) HelpStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(s.flavor.Overlay0().Hex))
}

func (s *Styles) InfoStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(s.flavor.Text().Hex))
}

func (s *Styles) AccentStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(s.flavor.Teal().Hex))
}

func (s *Styles) WarnStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(s.flavor.Peach().Hex)).
		Bold(true)
}

func (s *Styles) ErrorStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(s.flavor.Red().Hex)).
		Bold(true)
}

// PaneStyle paints a pane row on the container's background colour.
func (s *Styles) PaneStyle(bg colorful.Color) lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(s.flavor.Text().Hex)).
		Background(lipgloss.Color(bg.Hex()))
}

func (s *Styles) PaneTitleStyle(bg colorful.Color) lipgloss.Style {
	return s.PaneStyle(bg).
		Bold(true).
		Foreground(lipgloss.Color(s.flavor.Lavender().Hex))
}

// KeyboardStyle paints the simulated on-screen keyboard.
func (s *Styles) KeyboardStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(s.flavor.Subtext1().Hex)).
		Background(lipgloss.Color(s.flavor.Surface0().Hex))
}

// SeparatorStyle colours a separator cell. The hairline colour is faded
// into the track by its alpha; the handle shows on the track colour.
func (s *Styles) SeparatorStyle(sf split.SeparatorFrame) lipgloss.Style {
	fg := sf.TrackColor.BlendLab(sf.HairlineColor, clamp01(sf.HairlineAlpha+sf.HandleAlpha)).Clamped()
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(fg.Hex())).
		Background(lipgloss.Color(sf.TrackColor.Hex()))
}

func (s *Styles) LogTimestampStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(s.flavor.Overlay0().Hex))
}

func (s *Styles) LogScopeStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(s.flavor.Sapphire().Hex))
}

func (s *Styles) LogLevelStyle(level string) lipgloss.Style {
	hex := s.flavor.Green().Hex
	switch level {
	case "DEBUG":
		hex = s.flavor.Overlay1().Hex
	case "WARN":
		hex = s.flavor.Yellow().Hex
	case "ERROR":
		hex = s.flavor.Red().Hex
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(hex))
}

func (s *Styles) PanelHeaderStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(s.flavor.Base().Hex)).
		Background(lipgloss.Color(s.flavor.Overlay1().Hex))
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
