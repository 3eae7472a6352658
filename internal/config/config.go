package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	catppuccin "github.com/catppuccin/go"
	"github.com/lucasb-eyer/go-colorful"
	"gopkg.in/yaml.v3"

	"splitkit/internal/split"
)

type Config struct {
	Theme        string      `yaml:"theme"`
	LogLevel     string      `yaml:"log_level"`
	Arrangement  string      `yaml:"arrangement"`   // auto, horizontal or vertical
	CompactWidth int         `yaml:"compact_width"` // columns below which the size class is compact
	Split        SplitConfig `yaml:"split"`
	Touch        TouchConfig `yaml:"touch"`
}

// SplitConfig mirrors split.Options. Unset fields keep the defaults; empty
// colours come from the theme.
type SplitConfig struct {
	SeparatorColor           string `yaml:"separator_color"`
	SeparatorSelectedColor   string `yaml:"separator_selected_color"`
	BackgroundColor          string `yaml:"background_color"`
	SeparatorBackgroundColor string `yaml:"separator_background_color"`

	InvertAnimationDuration   *time.Duration `yaml:"invert_animation_duration"`
	DraggingAnimationDuration *time.Duration `yaml:"dragging_animation_duration"`

	FirstCollapseThreshold  *float64 `yaml:"first_collapse_threshold"`
	SecondCollapseThreshold *float64 `yaml:"second_collapse_threshold"`

	SnapPoints    []float64 `yaml:"snap_points"`
	SnapRange     *float64  `yaml:"snap_range"`
	SeparatorSize *float64  `yaml:"separator_size"`
}

// TouchConfig configures the websocket touch bridge.
type TouchConfig struct {
	Enabled bool   `yaml:"enabled"`
	Bind    string `yaml:"bind"`
	Port    int    `yaml:"port"` // 0 picks a free port
}

const (
	ArrangementAuto = "auto"

	defaultTheme        = "mocha"
	defaultCompactWidth = 80
	defaultBind         = "127.0.0.1"

	defaultSnapRange     = 2
	defaultSeparatorSize = 3
)

func DefaultConfig() Config {
	return Config{
		Theme:        defaultTheme,
		LogLevel:     "info",
		Arrangement:  ArrangementAuto,
		CompactWidth: defaultCompactWidth,
		Touch:        TouchConfig{Bind: defaultBind},
	}
}

func Load() (Config, error) {
	return LoadFrom(DefaultPath())
}

// LoadFrom reads configPath over the defaults. A missing file is not an
// error.
func LoadFrom(configPath string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return DefaultConfig(), fmt.Errorf("parse %s: %w", configPath, err)
	}
	cfg.fillDefaults()
	return cfg, nil
}

func (c *Config) fillDefaults() {
	if c.Theme == "" {
		c.Theme = defaultTheme
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.Arrangement == "" {
		c.Arrangement = ArrangementAuto
	}
	if c.CompactWidth == 0 {
		c.CompactWidth = defaultCompactWidth
	}
	if c.Touch.Bind == "" {
		c.Touch.Bind = defaultBind
	}
}

// Validate reports every invalid value, including those in the split block.
func (c Config) Validate() error {
	var errs []error
	if _, ok := flavors[strings.ToLower(c.Theme)]; !ok {
		errs = append(errs, fmt.Errorf("unknown theme %q", c.Theme))
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("unknown log_level %q", c.LogLevel))
	}
	if _, _, err := c.FixedArrangement(); err != nil {
		errs = append(errs, err)
	}
	if c.CompactWidth < 0 {
		errs = append(errs, fmt.Errorf("compact_width %d is negative", c.CompactWidth))
	}
	if c.Touch.Port < 0 || c.Touch.Port > 65535 {
		errs = append(errs, fmt.Errorf("touch.port %d out of range", c.Touch.Port))
	}
	if _, err := c.SplitOptions(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// FixedArrangement returns the configured arrangement; ok is false for
// "auto", where the size class decides.
func (c Config) FixedArrangement() (a split.Arrangement, ok bool, err error) {
	if c.Arrangement == "" || strings.EqualFold(c.Arrangement, ArrangementAuto) {
		return split.Horizontal, false, nil
	}
	a, err = split.ParseArrangement(c.Arrangement)
	if err != nil {
		return split.Horizontal, false, err
	}
	return a, true, nil
}

// SizeClass maps a terminal width onto the split size class.
func (c Config) SizeClass(columns int) split.SizeClass {
	if columns <= 0 {
		return split.SizeClassUnspecified
	}
	if columns < c.CompactWidth {
		return split.SizeClassCompact
	}
	return split.SizeClassRegular
}

var flavors = map[string]catppuccin.Flavor{
	"latte":     catppuccin.Latte,
	"frappe":    catppuccin.Frappe,
	"macchiato": catppuccin.Macchiato,
	"mocha":     catppuccin.Mocha,
}

// Flavor returns the catppuccin flavour for the theme, Mocha when unknown.
func (c Config) Flavor() catppuccin.Flavor {
	if f, ok := flavors[strings.ToLower(c.Theme)]; ok {
		return f
	}
	return catppuccin.Mocha
}

// SplitOptions builds the container options: defaults, then theme colours,
// then the explicit values of the split block.
func (c Config) SplitOptions() (split.Options, error) {
	o := split.DefaultOptions()
	// Extents are terminal cells here, not points.
	o.SnapRange = defaultSnapRange
	o.SeparatorSize = defaultSeparatorSize
	s := c.Split
	flavor := c.Flavor()

	var errs []error
	color := func(dst *colorful.Color, value, themed, key string) {
		hex := value
		if hex == "" {
			hex = themed
		}
		parsed, err := split.ParseColor(hex)
		if err != nil {
			errs = append(errs, fmt.Errorf("split.%s: %w", key, err))
			return
		}
		*dst = parsed
	}
	color(&o.SeparatorColor, s.SeparatorColor, flavor.Overlay0().Hex, "separator_color")
	color(&o.SeparatorSelectedColor, s.SeparatorSelectedColor, flavor.Peach().Hex, "separator_selected_color")
	color(&o.BackgroundColor, s.BackgroundColor, flavor.Base().Hex, "background_color")
	color(&o.SeparatorBackgroundColor, s.SeparatorBackgroundColor, flavor.Mantle().Hex, "separator_background_color")

	if s.InvertAnimationDuration != nil {
		o.InvertAnimationDuration = *s.InvertAnimationDuration
	}
	if s.DraggingAnimationDuration != nil {
		o.DraggingAnimationDuration = *s.DraggingAnimationDuration
	}
	if s.FirstCollapseThreshold != nil {
		o.FirstCollapseThreshold = *s.FirstCollapseThreshold
	}
	if s.SecondCollapseThreshold != nil {
		o.SecondCollapseThreshold = *s.SecondCollapseThreshold
	}
	if s.SnapPoints != nil {
		o.SnapPoints = append([]float64(nil), s.SnapPoints...)
	}
	if s.SnapRange != nil {
		o.SnapRange = *s.SnapRange
	}
	if s.SeparatorSize != nil {
		o.SeparatorSize = *s.SeparatorSize
	}

	if err := errors.Join(errs...); err != nil {
		return o, err
	}
	if err := o.Validate(); err != nil {
		return o, err
	}
	return o, nil
}

// DefaultPath is config.yaml under $XDG_CONFIG_HOME/splitkit, falling back
// to ~/.config/splitkit.
func DefaultPath() string {
	return filepath.Join(DefaultDir(), "config.yaml")
}

// DefaultDir is the directory DefaultPath lives in.
func DefaultDir() string {
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, "splitkit")
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".config", "splitkit")
	}

	return filepath.Join(home, ".config", "splitkit")
}

// PathIn returns the config file inside dir, or DefaultPath when dir is
// empty.
func PathIn(dir string) string {
	if dir == "" {
		return DefaultPath()
	}
	return filepath.Join(dir, "config.yaml")
}
