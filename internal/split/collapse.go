// pattern: Functional Core

package split

// ChildPosition names one of the two panes.
type ChildPosition int

const (
	First ChildPosition = iota
	Second
)

func (p ChildPosition) String() string {
	if p == Second {
		return "second"
	}
	return "first"
}

// CollapseDecision is the outcome of evaluating the collapse thresholds.
type CollapseDecision int

const (
	CollapseNone CollapseDecision = iota
	// CollapseFirst drives the first pane to zero size.
	CollapseFirst
	// CollapseSecond drives the first pane to the full extent.
	CollapseSecond
)

func (d CollapseDecision) String() string {
	switch d {
	case CollapseFirst:
		return "collapse-first"
	case CollapseSecond:
		return "collapse-second"
	default:
		return "none"
	}
}

// Position returns the pane the decision collapses, if any.
func (d CollapseDecision) Position() (ChildPosition, bool) {
	switch d {
	case CollapseFirst:
		return First, true
	case CollapseSecond:
		return Second, true
	default:
		return First, false
	}
}

// Decide maps the first pane's fraction of the extent onto a collapse.
// Both thresholds are inclusive; the second is tested first.
func Decide(fraction, firstThreshold, secondThreshold float64) CollapseDecision {
	switch {
	case fraction >= secondThreshold:
		return CollapseSecond
	case fraction <= firstThreshold:
		return CollapseFirst
	default:
		return CollapseNone
	}
}
