// pattern: Functional Core

package anim

import (
	"github.com/lucasb-eyer/go-colorful"

	"splitkit/internal/split"
)

// Lerp blends two layouts. Geometry and alpha move linearly, colours blend
// in Lab space, and discrete state (arrangement, visibility, snap) comes
// from to.
func Lerp(from, to split.Layout, t float64) split.Layout {
	if t >= 1 {
		return to
	}
	if t < 0 {
		t = 0
	}

	out := to
	out.Area = lerpRect(from.Area, to.Area, t)
	out.First = lerpRect(from.First, to.First, t)
	out.Second = lerpRect(from.Second, to.Second, t)
	out.Background = blend(from.Background, to.Background, t)
	for i := range out.Separators {
		f, s := from.Separators[i], to.Separators[i]
		o := &out.Separators[i]
		o.Frame = lerpRect(f.Frame, s.Frame, t)
		o.Hairline = lerpRect(f.Hairline, s.Hairline, t)
		o.HairlineColor = blend(f.HairlineColor, s.HairlineColor, t)
		o.TrackColor = blend(f.TrackColor, s.TrackColor, t)
		o.HairlineAlpha = lerp(f.HairlineAlpha, s.HairlineAlpha, t)
		o.HandleAlpha = lerp(f.HandleAlpha, s.HandleAlpha, t)
	}
	return out
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

func lerpRect(a, b split.Rect, t float64) split.Rect {
	// A rect appearing from nothing grows in place instead of sliding from
	// the origin.
	if a.Empty() && a.X == 0 && a.Y == 0 {
		a = split.Rect{X: b.X, Y: b.Y}
	}
	return split.Rect{
		X:      lerp(a.X, b.X, t),
		Y:      lerp(a.Y, b.Y, t),
		Width:  lerp(a.Width, b.Width, t),
		Height: lerp(a.Height, b.Height, t),
	}
}

func blend(a, b colorful.Color, t float64) colorful.Color {
	if a == b {
		return b
	}
	return a.BlendLab(b, t).Clamped()
}
