package scroll

import (
	"context"
	"errors"
	"testing"

	"scroll-agent/internal/entity"
	"scroll-agent/internal/ports"
	"scroll-agent/pkg/apperr"

	"go.uber.org/zap"
)

func newTestScroller(session *fakeSession) *Scroller {
	return NewScroller(Params{
		Session: session,
		Logger:  zap.NewNop(),
	})
}

func TestScrollIntoViewDesktopActionPath(t *testing.T) {
	session := &fakeSession{
		rect:     entity.Rect{X: 50, Y: 900, Width: 20, Height: 20},
		viewport: entity.Size{Width: 800, Height: 600},
	}
	el := &fakeElement{}

	err := newTestScroller(session).ScrollIntoView(context.Background(), el, WebOptions{Block: entity.AlignCenter})
	if err != nil {
		t.Fatalf("ScrollIntoView() = %v; want nil", err)
	}

	if len(session.wheelCalls) != 1 {
		t.Fatalf("wheel calls = %d; want 1", len(session.wheelCalls))
	}

	call := session.wheelCalls[0]

	if call.deltaX != 30 || call.deltaY != 610 {
		t.Errorf("wheel deltas = (%d, %d); want (30, 610)", call.deltaX, call.deltaY)
	}

	// Element y is below the viewport, so the anchor clamps to its
	// vertical middle.
	want := entity.Point{X: 50, Y: 300}
	if call.origin != want {
		t.Errorf("wheel origin = %+v; want %+v", call.origin, want)
	}

	if len(el.engineArgs) != 0 {
		t.Errorf("engine scroll ran %d times on the happy path; want 0", len(el.engineArgs))
	}
}

func TestScrollIntoViewBooleanMatchesAlignmentRecord(t *testing.T) {
	run := func(opts Options) wheelCall {
		session := &fakeSession{
			rect:     entity.Rect{X: 50, Y: 900, Width: 20, Height: 20},
			viewport: entity.Size{Width: 800, Height: 600},
		}

		if err := newTestScroller(session).ScrollIntoView(context.Background(), &fakeElement{}, opts); err != nil {
			t.Fatalf("ScrollIntoView() = %v; want nil", err)
		}

		if len(session.wheelCalls) != 1 {
			t.Fatalf("wheel calls = %d; want 1", len(session.wheelCalls))
		}

		return session.wheelCalls[0]
	}

	if got, want := run(AlignFlag(true)), run(WebOptions{Block: entity.AlignStart, Inline: entity.AlignNearest}); got != want {
		t.Errorf("true shorthand = %+v; alignment record = %+v", got, want)
	}

	if got, want := run(AlignFlag(false)), run(WebOptions{Block: entity.AlignEnd, Inline: entity.AlignNearest}); got != want {
		t.Errorf("false shorthand = %+v; alignment record = %+v", got, want)
	}
}

func TestScrollIntoViewDesktopFallsBackToEngine(t *testing.T) {
	session := &fakeSession{
		rectErr:  errors.New("stale element"),
		viewport: entity.Size{Width: 800, Height: 600},
	}
	el := &fakeElement{}

	err := newTestScroller(session).ScrollIntoView(context.Background(), el, AlignFlag(false))
	if err != nil {
		t.Fatalf("ScrollIntoView() = %v; want nil after fallback", err)
	}

	if len(session.wheelCalls) != 0 {
		t.Errorf("wheel calls = %d; want 0 when geometry fails", len(session.wheelCalls))
	}

	if len(el.engineArgs) != 1 {
		t.Fatalf("engine scroll calls = %d; want 1", len(el.engineArgs))
	}

	// The raw boolean shorthand reaches the engine untranslated.
	if arg, ok := el.engineArgs[0].(bool); !ok || arg {
		t.Errorf("engine arg = %#v; want false", el.engineArgs[0])
	}
}

func TestScrollIntoViewFallbackErrorBecomesOutcome(t *testing.T) {
	session := &fakeSession{
		rectErr: errors.New("stale element"),
	}
	el := &fakeElement{engineErr: errors.New("engine detached")}

	err := newTestScroller(session).ScrollIntoView(context.Background(), el, nil)
	if err == nil {
		t.Fatal("ScrollIntoView() = nil; want the fallback error")
	}

	if code := apperr.CodeOf(err); code != apperr.CodeActionFailed {
		t.Errorf("error code = %q; want %q", code, apperr.CodeActionFailed)
	}
}

func TestScrollIntoViewMobileWebSkipsGeometry(t *testing.T) {
	session := &fakeSession{mobile: true}
	el := &fakeElement{}

	err := newTestScroller(session).ScrollIntoView(context.Background(), el, WebOptions{Block: entity.AlignEnd})
	if err != nil {
		t.Fatalf("ScrollIntoView() = %v; want nil", err)
	}

	if session.rectCalls != 0 {
		t.Errorf("rect queries = %d; want 0 on mobile web", session.rectCalls)
	}

	if len(session.wheelCalls) != 0 {
		t.Errorf("wheel calls = %d; want 0 on mobile web", len(session.wheelCalls))
	}

	if len(el.engineArgs) != 1 {
		t.Fatalf("engine scroll calls = %d; want 1", len(el.engineArgs))
	}
}

func TestScrollIntoViewMobileNativeDispatch(t *testing.T) {
	scrollable := &fakeElement{id: "scrollable-1"}
	session := &fakeSession{
		mobile:      true,
		ios:         true,
		nativeCtx:   true,
		findResults: []ports.Element{scrollable},
	}
	el := &fakeElement{displayed: []bool{false, true}}

	err := newTestScroller(session).ScrollIntoView(context.Background(), el, NativeOptions{MaxScrolls: 3})
	if err != nil {
		t.Fatalf("ScrollIntoView() = %v; want nil", err)
	}

	if len(session.commands) != 1 {
		t.Errorf("native gestures = %d; want 1", len(session.commands))
	}
}

func TestScrollIntoViewContextQueryFailure(t *testing.T) {
	session := &fakeSession{
		mobile:       true,
		nativeCtxErr: errors.New("session gone"),
	}

	err := newTestScroller(session).ScrollIntoView(context.Background(), &fakeElement{}, nil)
	if err == nil {
		t.Fatal("ScrollIntoView() = nil; want dispatch error")
	}

	if code := apperr.CodeOf(err); code != apperr.CodeInternal {
		t.Errorf("error code = %q; want %q", code, apperr.CodeInternal)
	}
}
