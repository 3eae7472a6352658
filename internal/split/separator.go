// pattern: Functional Core

package split

// HandleSnapState records which edge a collapse pinned the handle to.
type HandleSnapState int

const (
	SnapNone HandleSnapState = iota
	SnapLeadingOrTop
	SnapTrailingOrBottom
)

func (s HandleSnapState) String() string {
	switch s {
	case SnapLeadingOrTop:
		return "leading"
	case SnapTrailingOrBottom:
		return "trailing"
	default:
		return "none"
	}
}

const (
	hairlineIdle     = 1.0
	hairlineDragging = 2.0
)

// Separator is the visual state of one axis' separator. The hairline and
// the handle are never both visible at rest: the handle shows while
// dragging or collapsed, the hairline otherwise.
type Separator struct {
	Hidden            bool
	Dragging          bool
	HairlineThickness float64
	HairlineAlpha     float64
	HandleAlpha       float64
	Snap              HandleSnapState
}

func newSeparator() Separator {
	return Separator{
		Hidden:            true,
		HairlineThickness: hairlineIdle,
		HairlineAlpha:     1,
	}
}

func (s *Separator) beginDrag() {
	s.Dragging = true
	s.HairlineThickness = hairlineDragging
	s.HairlineAlpha = 1
	s.HandleAlpha = 1
}

func (s *Separator) endDrag(collapsed bool) {
	s.Dragging = false
	s.HairlineThickness = hairlineIdle
	if collapsed {
		s.HairlineAlpha = 0
	} else {
		s.HandleAlpha = 0
	}
}

// settle derives the resting visuals from the snap state.
func (s *Separator) settle() {
	s.Dragging = false
	s.HairlineThickness = hairlineIdle
	if s.Snap == SnapNone {
		s.HairlineAlpha, s.HandleAlpha = 1, 0
	} else {
		s.HairlineAlpha, s.HandleAlpha = 0, 1
	}
}
