package split

import (
	"errors"
	"fmt"
	"math"
	"testing"
	"time"

	"splitkit/internal/logging"
)

// recorder captures delegate notifications in order.
type recorder struct {
	events []string
}

func (r *recorder) DragBegan() { r.events = append(r.events, "began") }
func (r *recorder) DragEnded() { r.events = append(r.events, "ended") }

func (r *recorder) WillCollapseIfDragEnds(pos ChildPosition, ok bool) {
	if !ok {
		r.events = append(r.events, "will:none")
		return
	}
	r.events = append(r.events, "will:"+pos.String())
}

func (r *recorder) DidCollapse(pos ChildPosition) {
	r.events = append(r.events, "did:"+pos.String())
}

func (r *recorder) count(event string) int {
	n := 0
	for _, e := range r.events {
		if e == event {
			n++
		}
	}
	return n
}

// manualAnimator applies changes at once and holds completions until
// finish is called.
type manualAnimator struct {
	calls       []time.Duration
	completions []func()
}

func (a *manualAnimator) Animate(d time.Duration, _ Curve, changes func(), completion func()) {
	a.calls = append(a.calls, d)
	if changes != nil {
		changes()
	}
	if completion != nil {
		a.completions = append(a.completions, completion)
	}
}

func (a *manualAnimator) finish() {
	pending := a.completions
	a.completions = nil
	for _, fn := range pending {
		fn()
	}
}

type frameRecorder struct {
	frames []Rect
}

func (f *frameRecorder) SetFrame(r Rect) { f.frames = append(f.frames, r) }

func (f *frameRecorder) last() Rect {
	if len(f.frames) == 0 {
		return Rect{}
	}
	return f.frames[len(f.frames)-1]
}

func noSnapOptions() Options {
	o := DefaultOptions()
	o.SnapPoints = nil
	return o
}

// newTestContainer returns a horizontal 1000x800 container.
func newTestContainer(t *testing.T, opts Options) (*Container, *recorder) {
	t.Helper()
	c, err := New(opts, nil)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	rec := &recorder{}
	c.SetDelegate(rec)
	c.SetArrangement(Horizontal)
	c.Resize(Size{Width: 1000, Height: 800}, Insets{})
	return c, rec
}

func drag(c *Container, axis Axis, translations ...float64) {
	c.HandleGesture(axis, GestureEvent{Phase: GestureBegan})
	for _, tr := range translations {
		c.HandleGesture(axis, GestureEvent{Phase: GestureChanged, Translation: tr})
	}
	c.HandleGesture(axis, GestureEvent{Phase: GestureEnded})
}

func TestNew_RejectsInvalidOptions(t *testing.T) {
	o := DefaultOptions()
	o.FirstCollapseThreshold = 0.9
	o.SecondCollapseThreshold = 0.1

	if _, err := New(o, nil); !errors.Is(err, ErrInvalidOptions) {
		t.Errorf("New() error = %v, want ErrInvalidOptions", err)
	}
}

func TestNew_StartsVerticalWithoutAnimation(t *testing.T) {
	c, err := New(DefaultOptions(), nil)
	if err != nil {
		t.Fatal(err)
	}
	anim := &manualAnimator{}
	c.SetAnimator(anim)

	if c.Arrangement() != Vertical {
		t.Errorf("Arrangement() = %v, want vertical", c.Arrangement())
	}
	if c.Separator(AxisHeight).Hidden || !c.Separator(AxisWidth).Hidden {
		t.Error("only the height separator should be visible")
	}

	c.Resize(Size{Width: 1000, Height: 600}, Insets{})
	if len(anim.calls) != 0 {
		t.Errorf("initial layout animated: %v", anim.calls)
	}
}

func TestContainer_RoundTrip(t *testing.T) {
	c, rec := newTestContainer(t, noSnapOptions())

	drag(c, AxisWidth, 100, 200)

	if got := c.CurrentSplitRatio(); !approx(got, 0.3) {
		t.Errorf("CurrentSplitRatio() = %v, want 0.3", got)
	}
	if cons := c.Constraints(AxisWidth); cons.Mode != RatioOfContainer || !approx(cons.Multiplier, 0.7) {
		t.Errorf("constraints after drag = %+v, want ratio 0.7", cons)
	}
	if c.Dragging() {
		t.Error("still dragging after end")
	}

	c.Resize(Size{Width: 2000, Height: 800}, Insets{})
	if got := c.Constraints(AxisWidth).Constant; !approx(got, 1400) {
		t.Errorf("projected constant = %v, want 1400", got)
	}
	if got := c.Layout().First.Width; !approx(got, 1400) {
		t.Errorf("first pane width = %v, want 1400", got)
	}

	want := []string{"began", "will:none", "will:none", "ended"}
	if fmt.Sprint(rec.events) != fmt.Sprint(want) {
		t.Errorf("events = %v, want %v", rec.events, want)
	}
}

func TestContainer_SnapDuringDrag(t *testing.T) {
	c, _ := newTestContainer(t, DefaultOptions())

	c.HandleGesture(AxisWidth, GestureEvent{Phase: GestureBegan})
	c.HandleGesture(AxisWidth, GestureEvent{Phase: GestureChanged, Translation: 10})

	s, ok := c.Controller(AxisWidth).Session()
	if !ok {
		t.Fatal("no live session")
	}
	if !s.Snapped {
		t.Error("510 in 1000 should snap onto 0.5")
	}
	if got := c.Constraints(AxisWidth).Constant; got != 500 {
		t.Errorf("constant = %v, want 500", got)
	}

	c.HandleGesture(AxisWidth, GestureEvent{Phase: GestureChanged, Translation: 40})
	s, _ = c.Controller(AxisWidth).Session()
	if s.Snapped {
		t.Error("540 should leave the snap window")
	}
	if got := c.Constraints(AxisWidth).Constant; got != 540 {
		t.Errorf("constant = %v, want 540", got)
	}
}

func TestContainer_SnapTransitionsAnimate(t *testing.T) {
	c, _ := newTestContainer(t, DefaultOptions())
	anim := &manualAnimator{}
	c.SetAnimator(anim)

	c.HandleGesture(AxisWidth, GestureEvent{Phase: GestureBegan})
	began := len(anim.calls)
	c.HandleGesture(AxisWidth, GestureEvent{Phase: GestureChanged, Translation: 100}) // unsnapped, no change
	c.HandleGesture(AxisWidth, GestureEvent{Phase: GestureChanged, Translation: 5})   // snaps in
	c.HandleGesture(AxisWidth, GestureEvent{Phase: GestureChanged, Translation: 8})   // still snapped
	c.HandleGesture(AxisWidth, GestureEvent{Phase: GestureChanged, Translation: 90})  // leaves

	if got := len(anim.calls) - began; got != 2 {
		t.Errorf("snap transitions animated %d times, want 2", got)
	}
}

func TestContainer_CollapseSecondOnRelease(t *testing.T) {
	c, rec := newTestContainer(t, noSnapOptions())

	drag(c, AxisWidth, 470)

	if got := c.Constraints(AxisWidth).Constant; got != 1000 {
		t.Errorf("constant = %v, want full extent 1000", got)
	}
	if rec.count("will:second") != 1 {
		t.Errorf("events = %v, want one will:second", rec.events)
	}
	if rec.count("did:second") != 1 {
		t.Errorf("events = %v, want one did:second", rec.events)
	}
	sep := c.Separator(AxisWidth)
	if sep.Snap != SnapTrailingOrBottom {
		t.Errorf("snap state = %v, want trailing", sep.Snap)
	}
	if sep.HandleAlpha != 1 || sep.HairlineAlpha != 0 {
		t.Errorf("collapsed separator shows hairline %v handle %v", sep.HairlineAlpha, sep.HandleAlpha)
	}
	if !c.Controller(AxisWidth).LastSession().Collapsed {
		t.Error("last session not marked collapsed")
	}
	if got := c.Layout().Second.Width; got != 0 {
		t.Errorf("second pane width = %v, want 0", got)
	}
}

func TestContainer_ReleaseWithoutCollapseHidesHandle(t *testing.T) {
	c, rec := newTestContainer(t, noSnapOptions())

	drag(c, AxisWidth, -100)

	sep := c.Separator(AxisWidth)
	if sep.HandleAlpha != 0 || sep.HairlineAlpha != 1 || sep.Dragging {
		t.Errorf("separator = %+v, want idle hairline", sep)
	}
	if rec.count("did:first")+rec.count("did:second") != 0 {
		t.Errorf("unexpected collapse: %v", rec.events)
	}
}

func TestContainer_WillCollapseFiresOnEveryMove(t *testing.T) {
	c, rec := newTestContainer(t, noSnapOptions())

	c.HandleGesture(AxisWidth, GestureEvent{Phase: GestureBegan})
	for i := 0; i < 3; i++ {
		c.HandleGesture(AxisWidth, GestureEvent{Phase: GestureChanged, Translation: -480})
	}

	if got := rec.count("will:first"); got != 3 {
		t.Errorf("will:first fired %d times, want 3", got)
	}
}

func TestContainer_ResetAfterCollapse(t *testing.T) {
	c, rec := newTestContainer(t, DefaultOptions())

	c.CollapseFirst()
	if got := c.Constraints(AxisWidth).Constant; got != 0 {
		t.Fatalf("constant after collapse = %v, want 0", got)
	}
	if c.Separator(AxisWidth).Snap != SnapLeadingOrTop {
		t.Fatalf("snap state = %v, want leading", c.Separator(AxisWidth).Snap)
	}
	if got := rec.count("did:first"); got != 1 {
		t.Errorf("did:first fired %d times, want 1", got)
	}

	c.ResetSplitPosition()
	if got := c.Constraints(AxisWidth).Constant; got != 500 {
		t.Errorf("constant after reset = %v, want 500", got)
	}
	if got := c.CurrentSplitRatio(); !approx(got, 0.5) {
		t.Errorf("CurrentSplitRatio() = %v, want 0.5", got)
	}
	sep := c.Separator(AxisWidth)
	if sep.Snap != SnapNone || sep.HandleAlpha != 0 || sep.HairlineAlpha != 1 {
		t.Errorf("separator after reset = %+v", sep)
	}
}

func TestContainer_CollapseSurvivesArrangementSwitch(t *testing.T) {
	c, _ := newTestContainer(t, DefaultOptions())

	c.CollapseSecond()
	c.SetArrangement(Vertical)

	if got := c.Layout().Second.Height; got != 0 {
		t.Errorf("second pane height after switch = %v, want 0", got)
	}
	if got := c.CurrentSplitRatio(); !approx(got, 0) {
		t.Errorf("CurrentSplitRatio() = %v, want 0", got)
	}
}

func TestContainer_KeyboardShrinksLiveDrag(t *testing.T) {
	c, _ := newTestContainer(t, noSnapOptions())
	c.SetArrangement(Vertical)
	c.Resize(Size{Width: 1000, Height: 1000}, Insets{})
	sig := NewKeyboardSignal()
	c.AttachKeyboard(sig)

	c.HandleGesture(AxisHeight, GestureEvent{Phase: GestureBegan})
	c.HandleGesture(AxisHeight, GestureEvent{Phase: GestureChanged, Translation: 0})
	s, _ := c.Controller(AxisHeight).Session()
	if s.MaxExtent != 1000 {
		t.Fatalf("max extent = %v, want 1000", s.MaxExtent)
	}

	sig.Publish(300)
	c.HandleGesture(AxisHeight, GestureEvent{Phase: GestureChanged, Translation: 300})
	s, _ = c.Controller(AxisHeight).Session()
	if s.MaxExtent != 700 {
		t.Errorf("max extent after keyboard = %v, want 700", s.MaxExtent)
	}
	if got := c.Constraints(AxisHeight).Constant; got != 700 {
		t.Errorf("constant = %v, want clamped to 700", got)
	}
}

func TestContainer_KeyboardAtRestKeepsProportion(t *testing.T) {
	c, _ := newTestContainer(t, DefaultOptions())
	c.SetArrangement(Vertical)
	c.Resize(Size{Width: 1000, Height: 1000}, Insets{})

	sig := NewKeyboardSignal()
	c.AttachKeyboard(sig)
	sig.Publish(300)

	if got := c.Layout().First.Height; got != 350 {
		t.Errorf("first pane height = %v, want 350", got)
	}

	c.Close()
	if sig.Subscribers() != 0 {
		t.Errorf("Subscribers() = %d after Close, want 0", sig.Subscribers())
	}
	sig.Publish(0)
	if got := c.Geometry().KeyboardHeight(); got != 300 {
		t.Errorf("keyboard height changed after Close: %v", got)
	}
}

func TestContainer_RestoreRunsOnceWithAnimation(t *testing.T) {
	c, _ := newTestContainer(t, noSnapOptions())
	anim := &manualAnimator{}
	c.SetAnimator(anim)

	drag(c, AxisWidth, 200)
	if got := c.Constraints(AxisWidth).Mode; got != FixedDelta {
		t.Fatalf("mode before completion = %v, want fixed", got)
	}
	if len(anim.completions) != 1 {
		t.Fatalf("pending completions = %d, want 1", len(anim.completions))
	}
	completion := anim.completions[0]

	anim.finish()
	if cons := c.Constraints(AxisWidth); cons.Mode != RatioOfContainer || !approx(cons.Multiplier, 0.7) {
		t.Fatalf("constraints after completion = %+v", cons)
	}

	c.geometry.setConstant(AxisWidth, 100)
	completion()
	if got := c.Constraints(AxisWidth).Multiplier; !approx(got, 0.7) {
		t.Errorf("second completion reapplied restoration: multiplier = %v", got)
	}
}

func TestContainer_NewDragFlushesPendingRestore(t *testing.T) {
	c, _ := newTestContainer(t, noSnapOptions())
	anim := &manualAnimator{}
	c.SetAnimator(anim)

	drag(c, AxisWidth, 200)
	stale := anim.completions
	anim.completions = nil

	c.HandleGesture(AxisWidth, GestureEvent{Phase: GestureBegan})
	if got := c.Constraints(AxisWidth).Constant; !approx(got, 700) {
		t.Fatalf("new drag origin = %v, want 700", got)
	}
	c.HandleGesture(AxisWidth, GestureEvent{Phase: GestureChanged, Translation: 100})

	for _, fn := range stale {
		fn()
	}
	if cons := c.Constraints(AxisWidth); cons.Mode != FixedDelta || !approx(cons.Multiplier, 0.7) {
		t.Errorf("stale completion touched the live drag: %+v", cons)
	}
}

func TestContainer_ZeroDurationSkipsAnimator(t *testing.T) {
	o := noSnapOptions()
	o.DraggingAnimationDuration = 0
	o.InvertAnimationDuration = 0
	c, _ := newTestContainer(t, o)
	anim := &manualAnimator{}
	c.SetAnimator(anim)

	drag(c, AxisWidth, 200)
	c.FlipArrangement()

	if len(anim.calls) != 0 {
		t.Errorf("animator called %d times with zero durations", len(anim.calls))
	}
	if got := c.Constraints(AxisWidth).Multiplier; !approx(got, 0.7) {
		t.Errorf("multiplier = %v, want 0.7", got)
	}
}

func TestContainer_OutOfOrderEventsIgnored(t *testing.T) {
	c, rec := newTestContainer(t, noSnapOptions())
	before := c.Constraints(AxisWidth)

	c.HandleGesture(AxisWidth, GestureEvent{Phase: GestureChanged, Translation: 300})
	c.HandleGesture(AxisWidth, GestureEvent{Phase: GestureEnded})
	c.HandleGesture(AxisWidth, GestureEvent{Phase: GestureCancelled})
	c.HandleGesture(AxisWidth, GestureEvent{Phase: GesturePhase(42)})

	if c.Constraints(AxisWidth) != before {
		t.Errorf("constraints changed: %+v -> %+v", before, c.Constraints(AxisWidth))
	}
	if len(rec.events) != 0 {
		t.Errorf("events = %v, want none", rec.events)
	}
}

func TestContainer_DuplicateBeginIgnored(t *testing.T) {
	c, rec := newTestContainer(t, noSnapOptions())

	c.HandleGesture(AxisWidth, GestureEvent{Phase: GestureBegan})
	c.HandleGesture(AxisWidth, GestureEvent{Phase: GestureChanged, Translation: 100})
	c.HandleGesture(AxisWidth, GestureEvent{Phase: GestureBegan})

	s, _ := c.Controller(AxisWidth).Session()
	if s.Origin != 500 {
		t.Errorf("origin = %v, want 500", s.Origin)
	}
	if got := rec.count("began"); got != 1 {
		t.Errorf("began fired %d times, want 1", got)
	}
}

func TestContainer_CancelResolvesLikeEnd(t *testing.T) {
	c, rec := newTestContainer(t, noSnapOptions())

	c.HandleGesture(AxisWidth, GestureEvent{Phase: GestureBegan})
	c.HandleGesture(AxisWidth, GestureEvent{Phase: GestureChanged, Translation: -200})
	c.HandleGesture(AxisWidth, GestureEvent{Phase: GestureCancelled})

	if c.Dragging() {
		t.Error("still dragging after cancel")
	}
	if c.Separator(AxisWidth).Dragging {
		t.Error("separator still in dragging state after cancel")
	}
	if got := c.Constraints(AxisWidth).Multiplier; !approx(got, 0.3) {
		t.Errorf("multiplier = %v, want 0.3", got)
	}
	if rec.count("ended") != 1 {
		t.Errorf("events = %v, want one ended", rec.events)
	}
}

func TestContainer_HiddenSeparatorIgnoresInput(t *testing.T) {
	c, rec := newTestContainer(t, noSnapOptions())

	c.HandleGesture(AxisHeight, GestureEvent{Phase: GestureBegan})
	if c.Dragging() || len(rec.events) != 0 {
		t.Errorf("hidden separator accepted a gesture: %v", rec.events)
	}
}

func TestContainer_ArrangementChangeCancelsDrag(t *testing.T) {
	c, rec := newTestContainer(t, noSnapOptions())

	c.HandleGesture(AxisWidth, GestureEvent{Phase: GestureBegan})
	c.HandleGesture(AxisWidth, GestureEvent{Phase: GestureChanged, Translation: 100})
	c.SetArrangement(Vertical)

	if c.Dragging() {
		t.Error("drag survived arrangement change")
	}
	if rec.count("ended") != 1 {
		t.Errorf("events = %v, want one ended", rec.events)
	}
	if c.Separator(AxisWidth).Dragging {
		t.Error("hidden separator left in dragging state")
	}
}

func TestContainer_ArrangementAnimation(t *testing.T) {
	o := DefaultOptions()
	o.InvertAnimationDuration = 400 * time.Millisecond
	c, _ := newTestContainer(t, o)
	anim := &manualAnimator{}
	c.SetAnimator(anim)

	c.SetArrangement(Vertical)
	c.SetArrangement(Vertical)

	if len(anim.calls) != 1 || anim.calls[0] != 400*time.Millisecond {
		t.Errorf("animator calls = %v, want one 400ms", anim.calls)
	}
	if !c.Separator(AxisWidth).Hidden || c.Separator(AxisHeight).Hidden {
		t.Error("separator visibility not swapped")
	}
}

func TestContainer_SizeClass(t *testing.T) {
	tests := []struct {
		class SizeClass
		want  Arrangement
	}{
		{SizeClassRegular, Horizontal},
		{SizeClassCompact, Vertical},
		{SizeClassUnspecified, Vertical},
	}

	for _, tt := range tests {
		t.Run(tt.class.String(), func(t *testing.T) {
			c, _ := newTestContainer(t, DefaultOptions())
			c.SetSizeClass(tt.class)
			if c.Arrangement() != tt.want {
				t.Errorf("Arrangement() = %v, want %v", c.Arrangement(), tt.want)
			}
		})
	}
}

func TestContainer_LayoutAndHitTest(t *testing.T) {
	c, _ := newTestContainer(t, DefaultOptions())
	first, second := &frameRecorder{}, &frameRecorder{}
	c.SetFirst(first)
	c.SetSecond(second)

	c.Resize(Size{Width: 1000, Height: 800}, Insets{Top: 20, Bottom: 20, Left: 10, Right: 10})
	l := c.Layout()

	if l.Area != (Rect{X: 10, Y: 20, Width: 980, Height: 760}) {
		t.Errorf("Area = %+v", l.Area)
	}
	if want := (Rect{X: 10, Y: 20, Width: 490, Height: 760}); first.last() != want {
		t.Errorf("first frame = %+v, want %+v", first.last(), want)
	}
	if want := (Rect{X: 500, Y: 20, Width: 490, Height: 760}); second.last() != want {
		t.Errorf("second frame = %+v, want %+v", second.last(), want)
	}

	live := l.Live()
	if want := (Rect{X: 478, Y: 20, Width: 44, Height: 760}); live.Frame != want {
		t.Errorf("separator frame = %+v, want %+v", live.Frame, want)
	}
	if want := (Rect{X: 499.5, Y: 20, Width: 1, Height: 760}); live.Hairline != want {
		t.Errorf("hairline = %+v, want %+v", live.Hairline, want)
	}

	if axis, ok := c.HitTest(Point{X: 490, Y: 100}); !ok || axis != AxisWidth {
		t.Errorf("HitTest(on separator) = (%v, %v)", axis, ok)
	}
	if _, ok := c.HitTest(Point{X: 100, Y: 100}); ok {
		t.Error("HitTest(inside pane) hit the separator")
	}
}

func TestContainer_DraggingUsesSelectedColour(t *testing.T) {
	c, _ := newTestContainer(t, DefaultOptions())
	o := c.Options()

	c.HandleGesture(AxisWidth, GestureEvent{Phase: GestureBegan})
	if got := c.Layout().Live().HairlineColor; got != o.SeparatorSelectedColor {
		t.Errorf("dragging hairline colour = %v, want %v", got, o.SeparatorSelectedColor)
	}
	if got := c.Layout().Live().Hairline.Width; got != 2 {
		t.Errorf("dragging hairline thickness = %v, want 2", got)
	}

	c.HandleGesture(AxisWidth, GestureEvent{Phase: GestureEnded})
	if got := c.Layout().Live().HairlineColor; got != o.SeparatorColor {
		t.Errorf("idle hairline colour = %v, want %v", got, o.SeparatorColor)
	}
}

func TestContainer_SetOptions(t *testing.T) {
	c, _ := newTestContainer(t, DefaultOptions())

	bad := DefaultOptions()
	bad.SnapPoints = []float64{1.5}
	if err := c.SetOptions(bad); !errors.Is(err, ErrInvalidOptions) {
		t.Fatalf("SetOptions(bad) error = %v", err)
	}
	if got := c.Options().SnapPoints; len(got) != 1 || got[0] != 0.5 {
		t.Errorf("rejected options replaced the live set: %v", got)
	}

	good := DefaultOptions()
	good.SnapPoints = []float64{0.25}
	if err := c.SetOptions(good); err != nil {
		t.Fatalf("SetOptions(good) error = %v", err)
	}
	good.SnapPoints[0] = 0.75
	if got := c.Options().SnapPoints[0]; got != 0.25 {
		t.Errorf("options share the caller's slice: %v", got)
	}

	c.HandleGesture(AxisWidth, GestureEvent{Phase: GestureBegan})
	c.HandleGesture(AxisWidth, GestureEvent{Phase: GestureChanged, Translation: -245})
	if got := c.Constraints(AxisWidth).Constant; got != 250 {
		t.Errorf("new snap point not used: constant = %v", got)
	}
}

func TestContainer_LogsCollapse(t *testing.T) {
	lm := logging.NewTestLogManager(100)
	defer func() { _ = lm.Close() }()

	c, err := New(noSnapOptions(), lm)
	if err != nil {
		t.Fatal(err)
	}
	c.SetArrangement(Horizontal)
	c.Resize(Size{Width: 1000, Height: 800}, Insets{})
	drag(c, AxisWidth, -495)

	for {
		select {
		case entry := <-lm.Channel():
			if entry.Message == "pane collapsed" {
				if entry.Scope != "split.width" {
					t.Errorf("scope = %q, want split.width", entry.Scope)
				}
				return
			}
		default:
			t.Fatal("no collapse entry logged")
		}
	}
}

func TestContainer_ResizeDuringDragKeepsProportion(t *testing.T) {
	c, rec := newTestContainer(t, noSnapOptions())

	c.HandleGesture(AxisWidth, GestureEvent{Phase: GestureBegan})
	c.HandleGesture(AxisWidth, GestureEvent{Phase: GestureChanged, Translation: 200})
	c.Resize(Size{Width: 500, Height: 800}, Insets{})

	if got := c.Constraints(AxisWidth).Constant; !approx(got, 350) {
		t.Errorf("constant after resize = %v, want 350", got)
	}
	if got := c.Layout().First.Width; !approx(got, 350) {
		t.Errorf("first pane width after resize = %v, want 350", got)
	}
	s, _ := c.Controller(AxisWidth).Session()
	if s.MaxExtent != 500 {
		t.Errorf("session max extent = %v, want 500", s.MaxExtent)
	}

	// The same translation again holds the separator in place.
	c.HandleGesture(AxisWidth, GestureEvent{Phase: GestureChanged, Translation: 200})
	if got := c.Constraints(AxisWidth).Constant; !approx(got, 350) {
		t.Errorf("constant after repeated move = %v, want 350", got)
	}
	c.HandleGesture(AxisWidth, GestureEvent{Phase: GestureChanged, Translation: 250})
	c.HandleGesture(AxisWidth, GestureEvent{Phase: GestureEnded})

	if n := rec.count("did:first") + rec.count("did:second"); n != 0 {
		t.Errorf("resize during drag collapsed a pane: %v", rec.events)
	}
	if got := c.CurrentSplitRatio(); !approx(got, 0.2) {
		t.Errorf("CurrentSplitRatio() = %v, want 0.2", got)
	}
}

func TestContainer_KeyboardIgnoresNonFiniteAndNegativeHeight(t *testing.T) {
	c, _ := newTestContainer(t, noSnapOptions())
	c.SetArrangement(Vertical)
	anim := &manualAnimator{}
	c.SetAnimator(anim)

	drag(c, AxisHeight, 200)
	for _, h := range []float64{math.NaN(), math.Inf(1), -300} {
		c.SetKeyboardHeight(h)
	}
	anim.finish()

	if got := c.Geometry().KeyboardHeight(); got != 0 {
		t.Errorf("keyboard height = %v, want 0", got)
	}
	if got := c.Constraints(AxisHeight).Multiplier; !approx(got, 0.75) {
		t.Errorf("multiplier = %v, want 0.75", got)
	}
	if got := c.Layout().First.Height; !approx(got, 600) {
		t.Errorf("first pane height = %v, want 600", got)
	}
}

func TestContainer_CollapseNotifiesFromLiveAxis(t *testing.T) {
	lm := logging.NewTestLogManager(100)
	defer func() { _ = lm.Close() }()

	c, err := New(noSnapOptions(), lm)
	if err != nil {
		t.Fatal(err)
	}
	rec := &recorder{}
	c.SetDelegate(rec)
	c.SetArrangement(Vertical)
	c.Resize(Size{Width: 1000, Height: 800}, Insets{})
	c.CollapseFirst()

	if n := rec.count("did:first"); n != 1 {
		t.Errorf("DidCollapse(first) fired %d times, want 1", n)
	}
	var scopes []string
	for done := false; !done; {
		select {
		case entry := <-lm.Channel():
			if entry.Message == "pane collapsed" {
				scopes = append(scopes, entry.Scope)
			}
		default:
			done = true
		}
	}
	if len(scopes) != 1 || scopes[0] != "split.height" {
		t.Errorf("collapse logged from %v, want [split.height]", scopes)
	}
}
