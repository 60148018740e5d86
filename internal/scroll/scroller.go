package scroll

import (
	"context"

	"scroll-agent/internal/ports"
	"scroll-agent/pkg/apperr"
	"scroll-agent/pkg/logg"
	"scroll-agent/pkg/tracing"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const (
	scrollerName = "Scroller"
	scrollTracer = "scroll.scroller"
)

// Scroller scrolls a target element into view. One invocation issues a
// short sequence of remote calls against the session; nothing is cached
// between calls.
type Scroller struct {
	session ports.Session
	logger  *zap.Logger
	tracer  trace.Tracer
}

type Params struct {
	fx.In

	Session ports.Session
	Logger  *zap.Logger
}

func NewScroller(params Params) *Scroller {
	return &Scroller{
		session: params.Session,
		logger:  params.Logger.With(zap.String(logg.Layer, scrollerName)),
		tracer:  otel.Tracer(scrollTracer),
	}
}

// ScrollIntoView brings el into the visible surface. Exactly one of
// three strategies runs: a wheel action computed from page geometry
// (desktop), the rendering engine's own scrollIntoView (mobile web, and
// the desktop fallback), or iterative native gestures (mobile app
// context).
func (s *Scroller) ScrollIntoView(ctx context.Context, el ports.Element, opts Options) (err error) {
	const op = "ScrollIntoView"
	logger := s.logger.With(zap.String(logg.Operation, op), zap.String(logg.ElementID, el.ID()))

	ctx, step := tracing.StartSpan(ctx, s.tracer, logger, op, attribute.String("element_id", el.ID()))
	defer func() {
		step.End(err)
	}()

	if s.session.IsMobile() {
		native, ctxErr := s.session.IsNativeContext(ctx)
		if ctxErr != nil {
			return apperr.Wrap(op, apperr.CodeInternal, ctxErr, map[string]any{
				apperr.MetaReason: "context_query_failed",
				apperr.MetaStage:  apperr.StageDispatch,
			})
		}

		if native {
			step.AddEvent("dispatching to native gesture path")

			return s.scrollNative(ctx, el, normalizeNative(opts))
		}

		// Mobile web skips the geometry path; the engine handles it.
		step.AddEvent("dispatching to engine scroll")

		return s.scrollWithEngine(ctx, el, opts)
	}

	step.AddEvent("dispatching to action path")

	if actionErr := s.scrollWithAction(ctx, el, normalizeWeb(opts)); actionErr != nil {
		logger.Warn("Wheel action scroll failed, falling back to engine scrollIntoView",
			zap.Error(actionErr))
		step.AddEvent("falling back to engine scroll")

		return s.scrollWithEngine(ctx, el, opts)
	}

	return nil
}

// scrollWithAction queries fresh geometry and issues a single wheel
// action. Fire-and-forget: it never verifies the element became
// visible.
func (s *Scroller) scrollWithAction(ctx context.Context, el ports.Element, opts WebOptions) error {
	const op = "scrollWithAction"

	rect, err := s.session.ElementRect(ctx, el.ID())
	if err != nil {
		return apperr.Wrap(op, apperr.CodeActionFailed, err, map[string]any{
			apperr.MetaReason:    "element_rect_failed",
			apperr.MetaStage:     apperr.StageGeometry,
			apperr.MetaElementID: el.ID(),
		})
	}

	viewport, err := s.session.ViewportSize(ctx)
	if err != nil {
		return apperr.Wrap(op, apperr.CodeActionFailed, err, map[string]any{
			apperr.MetaReason: "viewport_query_failed",
			apperr.MetaStage:  apperr.StageGeometry,
		})
	}

	offset, err := s.session.ScrollOffset(ctx)
	if err != nil {
		return apperr.Wrap(op, apperr.CodeActionFailed, err, map[string]any{
			apperr.MetaReason: "scroll_offset_failed",
			apperr.MetaStage:  apperr.StageGeometry,
		})
	}

	origin := anchorPoint(rect, viewport)
	deltaX, deltaY := scrollDelta(rect, viewport, offset, opts)

	if err := s.session.WheelScroll(ctx, origin, deltaX, deltaY); err != nil {
		return apperr.Wrap(op, apperr.CodeActionFailed, err, map[string]any{
			apperr.MetaReason:    "wheel_action_failed",
			apperr.MetaStage:     apperr.StageAction,
			apperr.MetaElementID: el.ID(),
		})
	}

	return nil
}

// scrollWithEngine delegates to the rendering engine, passing the
// caller's options through verbatim, boolean shorthand included.
func (s *Scroller) scrollWithEngine(ctx context.Context, el ports.Element, opts Options) error {
	const op = "scrollWithEngine"

	if err := el.ScrollIntoView(ctx, engineArg(opts)); err != nil {
		return apperr.Wrap(op, apperr.CodeActionFailed, err, map[string]any{
			apperr.MetaReason:    "engine_scroll_failed",
			apperr.MetaElementID: el.ID(),
		})
	}

	return nil
}
