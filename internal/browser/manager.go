package browser

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"scroll-agent/internal/config"
	"scroll-agent/internal/entity"
	"scroll-agent/internal/ports"
	"scroll-agent/pkg/apperr"
	"scroll-agent/pkg/logg"
	"scroll-agent/pkg/tracing"

	"github.com/playwright-community/playwright-go"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const (
	browserManagerName = "BrowserManager"
	browserTracer      = "browser.manager"
)

// Manager drives a desktop Chromium session through playwright and
// exposes it behind ports.BrowserManager. It is always a desktop web
// session: the platform flags report non-mobile and the execution
// context is never native.
type Manager struct {
	config         *config.Config
	logger         *zap.Logger
	tracer         trace.Tracer
	playwright     *playwright.Playwright
	browser        playwright.Browser
	browserContext playwright.BrowserContext
	page           playwright.Page
	elements       map[string]playwright.ElementHandle
	ready          bool
}

type Params struct {
	fx.In

	Config *config.Config
	Logger *zap.Logger
}

func NewManager(params Params) *Manager {
	return &Manager{
		config:   params.Config,
		logger:   params.Logger.With(zap.String(logg.Layer, browserManagerName)),
		tracer:   otel.Tracer(browserTracer),
		elements: make(map[string]playwright.ElementHandle),
		ready:    false,
	}
}

func (m *Manager) Launch(ctx context.Context) (err error) {
	const op = "Launch"
	logger := m.logger.With(zap.String(logg.Operation, op))

	ctx, step := tracing.StartSpan(ctx, m.tracer, logger, op)
	defer func() {
		step.End(err)
	}()

	logger.Info("Launching browser...")
	step.AddEvent("installing playwright")

	err = playwright.Install()
	if err != nil {
		return apperr.Wrap(op, apperr.CodeInternal, err, map[string]any{
			apperr.MetaReason: "playwright_install_failed",
			apperr.MetaStage:  apperr.StageBrowser,
		})
	}

	step.AddEvent("starting playwright")

	pw, err := playwright.Run()
	if err != nil {
		return apperr.Wrap(op, apperr.CodeInternal, err, map[string]any{
			apperr.MetaReason: "playwright_start_failed",
			apperr.MetaStage:  apperr.StageBrowser,
		})
	}
	m.playwright = pw

	if m.config.BrowserConfig.UserDataDir != "" {
		return m.launchPersistent(ctx)
	}

	return m.launchNew(ctx)
}

func (m *Manager) launchPersistent(ctx context.Context) (err error) {
	const op = "launchPersistent"
	logger := m.logger.With(zap.String(logg.Operation, op))

	ctx, step := tracing.StartSpan(ctx, m.tracer, logger, op)
	defer func() {
		step.End(err)
	}()

	logger.Info("Launching persistent browser context")

	userDataDir := m.config.BrowserConfig.UserDataDir

	if err := os.MkdirAll(userDataDir, 0755); err != nil {
		return apperr.Wrap(op, apperr.CodeInternal, err, map[string]any{
			apperr.MetaReason: "mkdir_failed",
			apperr.MetaStage:  apperr.StageBrowser,
		})
	}

	options := playwright.BrowserTypeLaunchPersistentContextOptions{
		Headless:          playwright.Bool(m.config.BrowserConfig.Headless),
		SlowMo:            playwright.Float(float64(m.config.BrowserConfig.SlowMo)),
		Viewport:          &playwright.Size{Width: 1280, Height: 720},
		AcceptDownloads:   playwright.Bool(false),
		JavaScriptEnabled: playwright.Bool(true),
		Args: []string{
			"--disable-blink-features=AutomationControlled",
			"--disable-dev-shm-usage",
		},
	}

	browserContext, err := m.playwright.Chromium.LaunchPersistentContext(userDataDir, options)
	if err != nil {
		return apperr.Wrap(op, apperr.CodeInternal, err, map[string]any{
			apperr.MetaReason: "launch_persistent_failed",
			apperr.MetaStage:  apperr.StageBrowser,
		})
	}

	m.browserContext = browserContext

	pages := browserContext.Pages()

	if len(pages) > 0 {
		m.page = pages[0]
		logger.Info("Using existing page")
	} else {
		page, err := browserContext.NewPage()
		if err != nil {
			return apperr.Wrap(op, apperr.CodeInternal, err, map[string]any{
				apperr.MetaReason: "new_page_failed",
				apperr.MetaStage:  apperr.StageBrowser,
			})
		}
		m.page = page
		logger.Info("Created new page")
	}

	m.ready = true
	logger.Info("Browser launched successfully")

	return nil
}

func (m *Manager) launchNew(ctx context.Context) (err error) {
	const op = "launchNew"
	logger := m.logger.With(zap.String(logg.Operation, op))

	ctx, step := tracing.StartSpan(ctx, m.tracer, logger, op)
	defer func() {
		step.End(err)
	}()

	logger.Info("Launching new browser")

	browserOptions := playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(m.config.BrowserConfig.Headless),
		SlowMo:   playwright.Float(float64(m.config.BrowserConfig.SlowMo)),
		Args: []string{
			"--disable-blink-features=AutomationControlled",
		},
	}

	browser, err := m.playwright.Chromium.Launch(browserOptions)
	if err != nil {
		return apperr.Wrap(op, apperr.CodeInternal, err, map[string]any{
			apperr.MetaReason: "browser_launch_failed",
			apperr.MetaStage:  apperr.StageBrowser,
		})
	}
	m.browser = browser

	contextOptions := playwright.BrowserNewContextOptions{
		Viewport: &playwright.Size{
			Width:  1280,
			Height: 720,
		},
		JavaScriptEnabled: playwright.Bool(true),
	}

	browserContext, err := browser.NewContext(contextOptions)
	if err != nil {
		return apperr.Wrap(op, apperr.CodeInternal, err, map[string]any{
			apperr.MetaReason: "context_create_failed",
			apperr.MetaStage:  apperr.StageBrowser,
		})
	}

	m.browserContext = browserContext

	page, err := browserContext.NewPage()
	if err != nil {
		return apperr.Wrap(op, apperr.CodeInternal, err, map[string]any{
			apperr.MetaReason: "page_create_failed",
			apperr.MetaStage:  apperr.StageBrowser,
		})
	}
	m.page = page

	m.ready = true
	logger.Info("Browser launched successfully")

	return nil
}

func (m *Manager) Close(ctx context.Context) (err error) {
	const op = "Close"
	logger := m.logger.With(zap.String(logg.Operation, op))

	ctx, step := tracing.StartSpan(ctx, m.tracer, logger, op)
	defer func() {
		step.End(err)
	}()

	logger.Info("Closing connection to browser...")

	m.elements = make(map[string]playwright.ElementHandle)

	if m.config.BrowserConfig.UserDataDir != "" {
		logger.Info("Persistent browser - keeping it open")
		m.ready = false

		return nil
	}

	if m.browserContext != nil {
		if err := m.browserContext.Close(); err != nil {
			logger.Warn("Failed to close context", zap.Error(err))
		}
	}

	if m.browser != nil {
		if err := m.browser.Close(); err != nil {
			logger.Warn("Failed to close browser", zap.Error(err))
		}
	}

	if m.playwright != nil {
		if err := m.playwright.Stop(); err != nil {
			return apperr.Wrap(op, apperr.CodeInternal, err, map[string]any{
				apperr.MetaReason: "playwright_stop_failed",
			})
		}
	}

	m.ready = false
	logger.Info("Browser closed")

	return nil
}

func (m *Manager) ensurePageActive(ctx context.Context) error {
	if m.browserContext == nil {
		return fmt.Errorf("browser context is nil")
	}

	if m.page != nil && !m.page.IsClosed() {
		return nil
	}

	m.logger.Info("Page closed, reconnecting to active page...")

	pages := m.browserContext.Pages()

	for _, p := range pages {
		if !p.IsClosed() {
			m.page = p
			m.logger.Info("Reconnected to existing page")

			return nil
		}
	}

	m.logger.Info("No active pages found, creating new page...")

	page, err := m.browserContext.NewPage()
	if err != nil {
		return fmt.Errorf("failed to create new page: %w", err)
	}

	m.page = page
	m.logger.Info("Created new page")

	return nil
}

func (m *Manager) Navigate(ctx context.Context, url string) (err error) {
	const op = "Navigate"
	logger := m.logger.With(zap.String(logg.Operation, op), zap.String(logg.URL, url))

	ctx, step := tracing.StartSpan(ctx, m.tracer, logger, op, attribute.String("url", url))
	defer func() {
		step.End(err)
	}()

	if !m.ready {
		return apperr.WrapErrorWithReason(op, apperr.CodeBrowserNotReady, "browser_not_ready")
	}

	if err := m.ensurePageActive(ctx); err != nil {
		return apperr.Wrap(op, apperr.CodeBrowserNotReady, err, map[string]any{
			apperr.MetaReason: "page_not_active",
		})
	}

	// Element handles do not survive a navigation.
	m.elements = make(map[string]playwright.ElementHandle)

	step.AddEvent("navigating to URL")

	_, err = m.page.Goto(url, playwright.PageGotoOptions{
		Timeout:   playwright.Float(float64(m.config.BrowserConfig.Timeout)),
		WaitUntil: playwright.WaitUntilStateDomcontentloaded,
	})

	if err != nil {
		return apperr.Wrap(op, apperr.CodeActionFailed, err, map[string]any{
			apperr.MetaReason: "goto_failed",
			apperr.MetaStage:  apperr.StageNavigation,
			apperr.MetaURL:    url,
		})
	}

	step.AddEvent("navigation completed")

	return nil
}

// IsMobile always reports false: playwright sessions here emulate a
// desktop surface.
func (m *Manager) IsMobile() bool {
	return false
}

func (m *Manager) IsIOS() bool {
	return false
}

func (m *Manager) IsNativeContext(ctx context.Context) (bool, error) {
	return false, nil
}

func (m *Manager) ViewportSize(ctx context.Context) (entity.Size, error) {
	const op = "ViewportSize"

	if err := m.ensureReady(ctx, op); err != nil {
		return entity.Size{}, err
	}

	result, err := m.page.Evaluate(viewportScript())
	if err != nil {
		return entity.Size{}, apperr.Wrap(op, apperr.CodeInternal, err, map[string]any{
			apperr.MetaReason: "evaluate_failed",
		})
	}

	values, ok := result.(map[string]interface{})
	if !ok {
		return entity.Size{}, apperr.WrapErrorWithReason(op, apperr.CodeInternal, "unexpected_result_type")
	}

	return entity.Size{
		Width:  getFloat(values, "width"),
		Height: getFloat(values, "height"),
	}, nil
}

func (m *Manager) ElementRect(ctx context.Context, elementID string) (entity.Rect, error) {
	const op = "ElementRect"

	if err := m.ensureReady(ctx, op); err != nil {
		return entity.Rect{}, err
	}

	handle, ok := m.elements[elementID]
	if !ok {
		return entity.Rect{}, apperr.Wrap(op, apperr.CodeNotFound,
			fmt.Errorf("unknown element id: %s", elementID),
			map[string]any{
				apperr.MetaReason:    "stale_element",
				apperr.MetaElementID: elementID,
			})
	}

	box, err := handle.BoundingBox()
	if err != nil {
		return entity.Rect{}, apperr.Wrap(op, apperr.CodeInternal, err, map[string]any{
			apperr.MetaReason:    "bounding_box_failed",
			apperr.MetaElementID: elementID,
		})
	}

	if box == nil {
		return entity.Rect{}, apperr.Wrap(op, apperr.CodeNotFound,
			fmt.Errorf("element %s has no bounding box", elementID),
			map[string]any{
				apperr.MetaReason:    "element_not_rendered",
				apperr.MetaElementID: elementID,
			})
	}

	return entity.Rect{
		X:      box.X,
		Y:      box.Y,
		Width:  box.Width,
		Height: box.Height,
	}, nil
}

func (m *Manager) ScrollOffset(ctx context.Context) (entity.Point, error) {
	const op = "ScrollOffset"

	if err := m.ensureReady(ctx, op); err != nil {
		return entity.Point{}, err
	}

	result, err := m.page.Evaluate(scrollOffsetScript())
	if err != nil {
		return entity.Point{}, apperr.Wrap(op, apperr.CodeInternal, err, map[string]any{
			apperr.MetaReason: "evaluate_failed",
		})
	}

	values, ok := result.(map[string]interface{})
	if !ok {
		return entity.Point{}, apperr.WrapErrorWithReason(op, apperr.CodeInternal, "unexpected_result_type")
	}

	return entity.Point{
		X: getFloat(values, "x"),
		Y: getFloat(values, "y"),
	}, nil
}

func (m *Manager) WheelScroll(ctx context.Context, origin entity.Point, deltaX, deltaY int) (err error) {
	const op = "WheelScroll"
	logger := m.logger.With(zap.String(logg.Operation, op))

	ctx, step := tracing.StartSpan(ctx, m.tracer, logger, op,
		attribute.Int("delta_x", deltaX),
		attribute.Int("delta_y", deltaY))
	defer func() {
		step.End(err)
	}()

	if err := m.ensureReady(ctx, op); err != nil {
		return err
	}

	if err := m.page.Mouse().Move(origin.X, origin.Y); err != nil {
		return apperr.Wrap(op, apperr.CodeActionFailed, err, map[string]any{
			apperr.MetaReason: "mouse_move_failed",
			apperr.MetaStage:  apperr.StageAction,
		})
	}

	if err := m.page.Mouse().Wheel(float64(deltaX), float64(deltaY)); err != nil {
		return apperr.Wrap(op, apperr.CodeActionFailed, err, map[string]any{
			apperr.MetaReason: "wheel_failed",
			apperr.MetaStage:  apperr.StageAction,
		})
	}

	return nil
}

// ExecuteCommand exists for native app sessions only; a desktop engine
// has no platform commands.
func (m *Manager) ExecuteCommand(ctx context.Context, command string, args map[string]any) (any, error) {
	const op = "ExecuteCommand"

	return nil, apperr.Wrap(op, apperr.CodeUnsupported,
		fmt.Errorf("native command %q is not supported by a desktop browser session", command),
		map[string]any{
			apperr.MetaReason: "native_command_unsupported",
		})
}

func (m *Manager) FindElement(ctx context.Context, using, value string) (ports.Element, error) {
	const op = "FindElement"

	elements, err := m.FindElements(ctx, using, value)
	if err != nil {
		return nil, err
	}

	if len(elements) == 0 {
		return nil, apperr.Wrap(op, apperr.CodeNotFound,
			fmt.Errorf("no element matches %q (%s)", value, using),
			map[string]any{
				apperr.MetaReason:   "element_not_found",
				apperr.MetaSelector: value,
			})
	}

	return elements[0], nil
}

func (m *Manager) FindElements(ctx context.Context, using, value string) (found []ports.Element, err error) {
	const op = "FindElements"
	logger := m.logger.With(zap.String(logg.Operation, op), zap.String(logg.Selector, value))

	ctx, step := tracing.StartSpan(ctx, m.tracer, logger, op, attribute.String("selector", value))
	defer func() {
		step.End(err)
	}()

	if err := m.ensureReady(ctx, op); err != nil {
		return nil, err
	}

	selector, err := toPlaywrightSelector(using, value)
	if err != nil {
		return nil, apperr.Wrap(op, apperr.CodeUnsupported, err, map[string]any{
			apperr.MetaReason:  "locator_unsupported",
			apperr.MetaLocator: using,
		})
	}

	handles, err := m.page.QuerySelectorAll(selector)
	if err != nil {
		return nil, apperr.Wrap(op, apperr.CodeInternal, err, map[string]any{
			apperr.MetaReason:   "query_failed",
			apperr.MetaSelector: value,
		})
	}

	found = make([]ports.Element, 0, len(handles))

	for _, handle := range handles {
		el := newElement(handle)
		m.elements[el.ID()] = handle
		found = append(found, el)
	}

	return found, nil
}

func (m *Manager) ScrollableCandidates(ctx context.Context) (candidates []entity.ScrollableCandidate, err error) {
	const op = "ScrollableCandidates"
	logger := m.logger.With(zap.String(logg.Operation, op))

	ctx, step := tracing.StartSpan(ctx, m.tracer, logger, op)
	defer func() {
		step.End(err)
	}()

	if err := m.ensureReady(ctx, op); err != nil {
		return nil, err
	}

	result, err := m.page.Evaluate(scrollablesScript())
	if err != nil {
		return nil, apperr.Wrap(op, apperr.CodeInternal, err, map[string]any{
			apperr.MetaReason: "evaluate_failed",
		})
	}

	items, ok := result.([]interface{})
	if !ok {
		return nil, apperr.WrapErrorWithReason(op, apperr.CodeInternal, "unexpected_result_type")
	}

	candidates = make([]entity.ScrollableCandidate, 0, len(items))

	for _, item := range items {
		values, ok := item.(map[string]interface{})
		if !ok {
			continue
		}

		candidates = append(candidates, entity.ScrollableCandidate{
			Tag:      getString(values, "tag"),
			Selector: getString(values, "selector"),
			Rect: entity.Rect{
				X:      getFloat(values, "x"),
				Y:      getFloat(values, "y"),
				Width:  getFloat(values, "width"),
				Height: getFloat(values, "height"),
			},
		})
	}

	return candidates, nil
}

func (m *Manager) Pause(ctx context.Context, d time.Duration) {
	time.Sleep(d)
}

func (m *Manager) IsReady() bool {
	return m.ready
}

func (m *Manager) ensureReady(ctx context.Context, op string) error {
	if !m.ready {
		return apperr.WrapErrorWithReason(op, apperr.CodeBrowserNotReady, "browser_not_ready")
	}

	if err := m.ensurePageActive(ctx); err != nil {
		return apperr.Wrap(op, apperr.CodeBrowserNotReady, err, map[string]any{
			apperr.MetaReason: "page_not_active",
		})
	}

	return nil
}

func toPlaywrightSelector(using, value string) (string, error) {
	switch using {
	case ports.LocatorCSS:
		return value, nil
	case ports.LocatorXPath:
		if strings.HasPrefix(value, "xpath=") {
			return value, nil
		}

		return "xpath=" + value, nil
	default:
		return "", fmt.Errorf("locator strategy %q is not supported by the desktop driver", using)
	}
}

func getString(m map[string]interface{}, key string) string {
	if v, ok := m[key].(string); ok {
		return v
	}

	return ""
}

func getFloat(m map[string]interface{}, key string) float64 {
	if v, ok := m[key].(float64); ok {
		return v
	}

	if v, ok := m[key].(int); ok {
		return float64(v)
	}

	return 0
}
