// pattern: Functional Core

package split

// Delegate receives drag notifications from the container.
type Delegate interface {
	// DragBegan is sent as soon as the user starts dragging a separator.
	DragBegan()
	// DragEnded is sent once the drag has been resolved.
	DragEnded()
	// WillCollapseIfDragEnds is sent on every move with the pane that would
	// collapse if the drag ended now; ok is false when none would.
	WillCollapseIfDragEnds(pos ChildPosition, ok bool)
	// DidCollapse is sent when a pane has been collapsed.
	DidCollapse(pos ChildPosition)
}

// NopDelegate ignores every notification.
type NopDelegate struct{}

func (NopDelegate) DragBegan()                                 {}
func (NopDelegate) DragEnded()                                 {}
func (NopDelegate) WillCollapseIfDragEnds(ChildPosition, bool) {}
func (NopDelegate) DidCollapse(ChildPosition)                  {}

// DelegateFuncs adapts optional callbacks to a Delegate. Nil fields are
// skipped.
type DelegateFuncs struct {
	OnDragBegan              func()
	OnDragEnded              func()
	OnWillCollapseIfDragEnds func(pos ChildPosition, ok bool)
	OnDidCollapse            func(pos ChildPosition)
}

func (d DelegateFuncs) DragBegan() {
	if d.OnDragBegan != nil {
		d.OnDragBegan()
	}
}

func (d DelegateFuncs) DragEnded() {
	if d.OnDragEnded != nil {
		d.OnDragEnded()
	}
}

func (d DelegateFuncs) WillCollapseIfDragEnds(pos ChildPosition, ok bool) {
	if d.OnWillCollapseIfDragEnds != nil {
		d.OnWillCollapseIfDragEnds(pos, ok)
	}
}

func (d DelegateFuncs) DidCollapse(pos ChildPosition) {
	if d.OnDidCollapse != nil {
		d.OnDidCollapse(pos)
	}
}
