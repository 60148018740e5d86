package scroll

import (
	"context"
	"fmt"
	"time"

	"scroll-agent/internal/entity"
	"scroll-agent/internal/ports"
	"scroll-agent/pkg/apperr"
	"scroll-agent/pkg/logg"

	"go.uber.org/zap"
)

const (
	// stabilizationDelay lets native UI rendering settle after the
	// final gesture before control returns to the caller.
	stabilizationDelay = 1000 * time.Millisecond

	androidScrollPercent = 0.5

	iosScrollCommand     = "mobile: scroll"
	androidScrollCommand = "mobile: scrollGesture"

	iosScrollablePredicate   = `type == "XCUIElementTypeApplication"`
	androidScrollableLocator = "//android.widget.ScrollView"
)

// scrollNative drives the native-app path: resolve a scroll container,
// gesture until the target is visible or the budget runs out, then give
// the UI a moment to settle if anything actually moved.
func (s *Scroller) scrollNative(ctx context.Context, el ports.Element, opts NativeOptions) error {
	const op = "scrollNative"
	logger := s.logger.With(
		zap.String(logg.Operation, op),
		zap.String(logg.Direction, string(opts.Direction)),
	)

	if opts.MaxScrolls < 0 {
		return apperr.InvalidReqError(op, "maxScrolls",
			fmt.Errorf("maxScrolls must be a positive integer, got %d", opts.MaxScrolls))
	}

	scrollable, err := s.resolveScrollable(ctx, opts.ScrollableElement)
	if err != nil {
		return err
	}

	result, err := s.scrollUntilVisible(ctx, el, scrollable, opts.Direction, opts.MaxScrolls)
	if err != nil {
		return err
	}

	switch {
	case result.HasScrolled && result.IsVisible:
		logger.Debug("Element became visible after scrolling, waiting for UI to settle")
		s.session.Pause(ctx, stabilizationDelay)

		return nil
	case result.IsVisible:
		return nil
	default:
		return apperr.Wrap(op, apperr.CodeScrollExhausted,
			fmt.Errorf("element not visible after %d scrolls in direction %q; adjust ScrollableElement or Direction",
				opts.MaxScrolls, opts.Direction),
			map[string]any{
				apperr.MetaReason:    "scroll_budget_exhausted",
				apperr.MetaScrolls:   opts.MaxScrolls,
				apperr.MetaDirection: string(opts.Direction),
			})
	}
}

// resolveScrollable picks the container gestures act on. An explicit
// element always wins; otherwise the platform default locator is
// queried and the first match taken.
func (s *Scroller) resolveScrollable(ctx context.Context, explicit ports.Element) (ports.Element, error) {
	const op = "resolveScrollable"

	if explicit != nil {
		return explicit, nil
	}

	using, value := ports.LocatorXPath, androidScrollableLocator
	if s.session.IsIOS() {
		using, value = ports.LocatorIOSPredicate, iosScrollablePredicate
	}

	elements, err := s.session.FindElements(ctx, using, value)
	if err != nil {
		return nil, apperr.Wrap(op, apperr.CodeScrollableNotFound, err, map[string]any{
			apperr.MetaReason:  "scrollable_query_failed",
			apperr.MetaLocator: fmt.Sprintf("%s: %s", using, value),
		})
	}

	if len(elements) == 0 {
		return nil, apperr.Wrap(op, apperr.CodeScrollableNotFound,
			fmt.Errorf("no scrollable element found with locator %q (%s); provide ScrollableElement explicitly",
				value, using),
			map[string]any{
				apperr.MetaReason:  "scrollable_not_found",
				apperr.MetaLocator: fmt.Sprintf("%s: %s", using, value),
			})
	}

	return elements[0], nil
}

// scrollUntilVisible gestures against scrollable until the target
// reports visible or maxScrolls gestures have run. A failing visibility
// check counts as not visible and never stops the loop.
func (s *Scroller) scrollUntilVisible(ctx context.Context, target, scrollable ports.Element, direction entity.Direction, maxScrolls int) (entity.ScrollResult, error) {
	const op = "scrollUntilVisible"
	logger := s.logger.With(zap.String(logg.Operation, op))

	result := entity.ScrollResult{}

	for scrolls := 0; scrolls < maxScrolls; scrolls++ {
		visible, err := target.IsDisplayed(ctx)
		if err != nil {
			logger.Debug("Visibility check failed, treating element as not visible",
				zap.Int("scrolls", scrolls), zap.Error(err))
			visible = false
		}

		if visible {
			result.IsVisible = true

			return result, nil
		}

		if err := s.gesture(ctx, scrollable, direction); err != nil {
			return result, err
		}

		result.HasScrolled = true
	}

	return result, nil
}

// gesture issues one platform-native scroll against the container. iOS
// scrolls by direction directly; Android uses a percentage gesture at
// half the scrollable extent per step.
func (s *Scroller) gesture(ctx context.Context, scrollable ports.Element, direction entity.Direction) error {
	const op = "gesture"

	command := androidScrollCommand
	args := map[string]any{
		"elementId": scrollable.ID(),
		"direction": string(direction),
		"percent":   androidScrollPercent,
	}

	if s.session.IsIOS() {
		command = iosScrollCommand
		args = map[string]any{
			"elementId": scrollable.ID(),
			"direction": string(direction),
		}
	}

	if _, err := s.session.ExecuteCommand(ctx, command, args); err != nil {
		return apperr.Wrap(op, apperr.CodeActionFailed, err, map[string]any{
			apperr.MetaReason:    "scroll_gesture_failed",
			apperr.MetaStage:     apperr.StageGesture,
			apperr.MetaDirection: string(direction),
		})
	}

	return nil
}
