// pattern: Functional Core

package split

import "time"

// Curve is an easing curve for layout transitions.
type Curve int

const (
	EaseInOut Curve = iota
	EaseIn
	EaseOut
	Linear
)

func (c Curve) String() string {
	switch c {
	case EaseIn:
		return "ease-in"
	case EaseOut:
		return "ease-out"
	case Linear:
		return "linear"
	default:
		return "ease-in-out"
	}
}

// Ease maps linear progress t in [0, 1] onto the curve.
func (c Curve) Ease(t float64) float64 {
	t = clamp01(t)
	switch c {
	case EaseIn:
		return t * t
	case EaseOut:
		return 1 - (1-t)*(1-t)
	case Linear:
		return t
	default:
		return t * t * (3 - 2*t)
	}
}

// Animator is the rendering backend's "animate property change over
// duration" capability.
//
// Animate must invoke changes synchronously before it returns, then present
// the resulting layout over d. completion, when non-nil, is invoked once
// after the animation finished, on the same goroutine that drives the
// container. The container never calls Animate with a zero duration.
type Animator interface {
	Animate(d time.Duration, curve Curve, changes func(), completion func())
}

// ImmediateAnimator applies changes and completes synchronously.
type ImmediateAnimator struct{}

func (ImmediateAnimator) Animate(_ time.Duration, _ Curve, changes func(), completion func()) {
	if changes != nil {
		changes()
	}
	if completion != nil {
		completion()
	}
}
