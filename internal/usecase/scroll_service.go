package usecase

import (
	"context"
	"time"

	"scroll-agent/internal/config"
	"scroll-agent/internal/entity"
	"scroll-agent/internal/ports"
	"scroll-agent/internal/scroll"
	"scroll-agent/internal/usecase/adapters"
	"scroll-agent/pkg/logg"
	"scroll-agent/pkg/tracing"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const (
	scrollServiceName   = "ScrollService"
	scrollServiceTracer = "usecase.scroll"
)

type scrollService struct {
	browser  ports.BrowserManager
	scroller *scroll.Scroller
	config   *config.Config
	logger   *zap.Logger
	tracer   trace.Tracer
}

type ScrollServiceParams struct {
	Browser  ports.BrowserManager
	Scroller *scroll.Scroller
	Config   *config.Config
	Logger   *zap.Logger
}

func NewScrollService(params ScrollServiceParams) adapters.ScrollService {
	return &scrollService{
		browser:  params.Browser,
		scroller: params.Scroller,
		config:   params.Config,
		logger:   params.Logger.With(zap.String(logg.Layer, scrollServiceName)),
		tracer:   otel.Tracer(scrollServiceTracer),
	}
}

// ScrollTo resolves selector on the current page and scrolls the first
// match into view. The returned record describes the invocation whether
// it succeeded or not.
func (s *scrollService) ScrollTo(ctx context.Context, selector string, opts scroll.Options) (record *entity.ScrollRecord, err error) {
	const op = "ScrollTo"
	logger := s.logger.With(zap.String(logg.Operation, op), zap.String(logg.Selector, selector))

	ctx, step := tracing.StartSpan(ctx, s.tracer, logger, op, attribute.String("selector", selector))
	defer func() {
		step.End(err)
	}()

	record = &entity.ScrollRecord{
		ID:        uuid.New(),
		Selector:  selector,
		StartedAt: time.Now(),
	}

	el, err := s.browser.FindElement(ctx, ports.LocatorCSS, selector)
	if err != nil {
		s.fail(record, err)

		return record, err
	}

	step.AddEvent("element resolved")

	if err = s.scroller.ScrollIntoView(ctx, el, opts); err != nil {
		s.fail(record, err)

		return record, err
	}

	record.Status = entity.ScrollStatusCompleted
	record.CompletedAt = time.Now()
	logger.Info("Element scrolled into view", zap.String(logg.ElementID, el.ID()))

	return record, nil
}

func (s *scrollService) fail(record *entity.ScrollRecord, err error) {
	record.Status = entity.ScrollStatusFailed
	record.CompletedAt = time.Now()
	record.Error = err.Error()
}
