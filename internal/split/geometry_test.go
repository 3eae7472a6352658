package split

import (
	"math"
	"testing"
)

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-6
}

func TestGeometry_SetArrangementIdempotent(t *testing.T) {
	once := NewGeometry()
	once.setBounds(Size{Width: 1000, Height: 600}, Insets{})
	once.SetArrangement(Horizontal)

	twice := NewGeometry()
	twice.setBounds(Size{Width: 1000, Height: 600}, Insets{})
	twice.SetArrangement(Horizontal)
	if twice.SetArrangement(Horizontal) {
		t.Error("repeating the installed arrangement reported a switch")
	}

	for _, axis := range axes {
		if once.Constraints(axis) != twice.Constraints(axis) {
			t.Errorf("%v constraints differ: %+v vs %+v", axis, once.Constraints(axis), twice.Constraints(axis))
		}
	}
}

func TestGeometry_SetArrangementInstallsOneAxis(t *testing.T) {
	g := NewGeometry()
	if g.SetArrangement(Vertical) {
		t.Error("initial arrangement reported a switch")
	}
	if !g.Constraints(AxisHeight).Installed || g.Constraints(AxisWidth).Installed {
		t.Fatalf("vertical should install only the height axis: %+v %+v", g.Constraints(AxisWidth), g.Constraints(AxisHeight))
	}

	g.activateFixed(AxisHeight)
	if !g.SetArrangement(Horizontal) {
		t.Error("changing arrangement did not report a switch")
	}
	if g.Constraints(AxisHeight).Installed {
		t.Error("height axis still installed after switching to horizontal")
	}
	if c := g.Constraints(AxisWidth); !c.Installed || c.Mode != RatioOfContainer {
		t.Errorf("width axis = %+v, want installed in ratio mode", c)
	}
}

func TestGeometry_SeedsBothAxesOnFirstBounds(t *testing.T) {
	g := NewGeometry()
	g.SetArrangement(Vertical)
	g.setBounds(Size{Width: 1000, Height: 600}, Insets{})

	if got := g.Constraints(AxisWidth).Constant; got != 500 {
		t.Errorf("width constant = %v, want 500", got)
	}
	if got := g.Constraints(AxisHeight).Constant; got != 300 {
		t.Errorf("height constant = %v, want 300", got)
	}

	g.setConstant(AxisWidth, 100)
	g.setBounds(Size{Width: 400, Height: 600}, Insets{})
	if got := g.Constraints(AxisWidth).Constant; got != 100 {
		t.Errorf("second setBounds reseeded the constant: %v", got)
	}
}

func TestGeometry_AvailableExtent(t *testing.T) {
	g := NewGeometry()
	g.setBounds(Size{Width: 1000, Height: 800}, Insets{Top: 20, Bottom: 30, Left: 5, Right: 15})
	g.setKeyboard(300)

	if got := g.AvailableExtent(AxisWidth); got != 980 {
		t.Errorf("width extent = %v, want 980", got)
	}
	if got := g.AvailableExtent(AxisHeight); got != 450 {
		t.Errorf("height extent = %v, want 450", got)
	}

	g.setKeyboard(2000)
	if got := g.AvailableExtent(AxisHeight); got != 0 {
		t.Errorf("height extent under oversized keyboard = %v, want 0", got)
	}
}

func TestGeometry_CurrentFraction(t *testing.T) {
	g := NewGeometry()
	if got := g.CurrentFraction(AxisWidth); got != 0 {
		t.Errorf("fraction on zero extent = %v, want 0", got)
	}

	g.setBounds(Size{Width: 1000, Height: 800}, Insets{})
	g.setConstant(AxisWidth, 250)
	if got := g.CurrentFraction(AxisWidth); got != 0.25 {
		t.Errorf("fraction = %v, want 0.25", got)
	}

	g.setConstant(AxisWidth, 5000)
	if got := g.Constraints(AxisWidth).Constant; got != 1000 {
		t.Errorf("constant not clamped to extent: %v", got)
	}
	g.setConstant(AxisWidth, math.NaN())
	if got := g.Constraints(AxisWidth).Constant; got != 0 {
		t.Errorf("NaN constant = %v, want 0", got)
	}
}

func TestGeometry_ProjectRatioOntoNewExtent(t *testing.T) {
	g := NewGeometry()
	g.SetArrangement(Horizontal)
	g.setBounds(Size{Width: 1000, Height: 800}, Insets{})

	// Fixed mode keeps the proportion the constant shows.
	g.setConstant(AxisWidth, 700)
	g.activateFixed(AxisWidth)
	g.ProjectRatioOntoNewExtent(AxisWidth, 2000)
	if got := g.Constraints(AxisWidth).Constant; !approx(got, 1400) {
		t.Errorf("fixed projection = %v, want 1400", got)
	}

	// Ratio mode projects the multiplier.
	g.replaceRatio(AxisWidth, 0.25)
	g.ProjectRatioOntoNewExtent(AxisWidth, 400)
	if got := g.Constraints(AxisWidth).Constant; !approx(got, 100) {
		t.Errorf("ratio projection = %v, want 100", got)
	}
}

func TestAxisConstraints_Resolve(t *testing.T) {
	tests := []struct {
		name   string
		c      AxisConstraints
		extent float64
		want   float64
	}{
		{"ratio", AxisConstraints{Multiplier: 0.3}, 1000, 300},
		{"fixed", AxisConstraints{Constant: 420, Mode: FixedDelta}, 1000, 420},
		{"fixed clamped", AxisConstraints{Constant: 1200, Mode: FixedDelta}, 1000, 1000},
		{"zero extent", AxisConstraints{Multiplier: 0.3}, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.c.Resolve(tt.extent); !approx(got, tt.want) {
				t.Errorf("Resolve(%v) = %v, want %v", tt.extent, got, tt.want)
			}
		})
	}
}

func TestParseArrangement(t *testing.T) {
	tests := []struct {
		in      string
		want    Arrangement
		wantErr bool
	}{
		{"horizontal", Horizontal, false},
		{" Vertical ", Vertical, false},
		{"diagonal", Horizontal, true},
	}

	for _, tt := range tests {
		got, err := ParseArrangement(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseArrangement(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("ParseArrangement(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
