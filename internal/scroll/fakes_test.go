package scroll

import (
	"context"
	"time"

	"scroll-agent/internal/entity"
	"scroll-agent/internal/ports"
)

type fakeElement struct {
	id          string
	displayed   []bool
	displayErrs []error
	checks      int
	engineArgs  []any
	engineErr   error
}

func (e *fakeElement) ID() string {
	if e.id == "" {
		return "elem-1"
	}

	return e.id
}

func (e *fakeElement) IsDisplayed(ctx context.Context) (bool, error) {
	i := e.checks
	e.checks++

	if i < len(e.displayErrs) && e.displayErrs[i] != nil {
		return false, e.displayErrs[i]
	}

	if i < len(e.displayed) {
		return e.displayed[i], nil
	}

	return false, nil
}

func (e *fakeElement) ScrollIntoView(ctx context.Context, arg any) error {
	e.engineArgs = append(e.engineArgs, arg)

	return e.engineErr
}

type wheelCall struct {
	origin entity.Point
	deltaX int
	deltaY int
}

type commandCall struct {
	name string
	args map[string]any
}

type locatorQuery struct {
	using string
	value string
}

type fakeSession struct {
	mobile       bool
	ios          bool
	nativeCtx    bool
	nativeCtxErr error

	rect        entity.Rect
	rectErr     error
	rectCalls   int
	viewport    entity.Size
	viewportErr error
	offset      entity.Point
	offsetErr   error

	wheelCalls []wheelCall
	wheelErr   error

	commands   []commandCall
	commandErr error

	findResults []ports.Element
	findErr     error
	findQueries []locatorQuery

	pauses []time.Duration
}

func (s *fakeSession) IsMobile() bool { return s.mobile }
func (s *fakeSession) IsIOS() bool    { return s.ios }

func (s *fakeSession) IsNativeContext(ctx context.Context) (bool, error) {
	return s.nativeCtx, s.nativeCtxErr
}

func (s *fakeSession) ViewportSize(ctx context.Context) (entity.Size, error) {
	return s.viewport, s.viewportErr
}

func (s *fakeSession) ElementRect(ctx context.Context, elementID string) (entity.Rect, error) {
	s.rectCalls++

	return s.rect, s.rectErr
}

func (s *fakeSession) ScrollOffset(ctx context.Context) (entity.Point, error) {
	return s.offset, s.offsetErr
}

func (s *fakeSession) WheelScroll(ctx context.Context, origin entity.Point, deltaX, deltaY int) error {
	s.wheelCalls = append(s.wheelCalls, wheelCall{origin: origin, deltaX: deltaX, deltaY: deltaY})

	return s.wheelErr
}

func (s *fakeSession) ExecuteCommand(ctx context.Context, command string, args map[string]any) (any, error) {
	s.commands = append(s.commands, commandCall{name: command, args: args})

	return nil, s.commandErr
}

func (s *fakeSession) FindElements(ctx context.Context, using, value string) ([]ports.Element, error) {
	s.findQueries = append(s.findQueries, locatorQuery{using: using, value: value})

	return s.findResults, s.findErr
}

func (s *fakeSession) Pause(ctx context.Context, d time.Duration) {
	s.pauses = append(s.pauses, d)
}
