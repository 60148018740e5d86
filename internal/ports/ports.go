package ports

import (
	"context"
	"time"

	"scroll-agent/internal/entity"
)

// Locator strategies understood by Session.FindElements.
const (
	LocatorCSS            = "css selector"
	LocatorXPath          = "xpath"
	LocatorIOSPredicate = "-ios predicate string"
)

// Session is the remote automation session this component borrows. The
// protocol client behind it is a black box; every method is a single
// remote round trip.
type Session interface {
	IsMobile() bool
	IsIOS() bool

	// IsNativeContext reports whether commands currently act on
	// platform-native UI elements rather than rendered web content.
	IsNativeContext(ctx context.Context) (bool, error)

	ViewportSize(ctx context.Context) (entity.Size, error)
	ElementRect(ctx context.Context, elementID string) (entity.Rect, error)
	ScrollOffset(ctx context.Context) (entity.Point, error)

	// WheelScroll performs a single zero-duration wheel action anchored
	// at origin, scrolling by the given pixel deltas.
	WheelScroll(ctx context.Context, origin entity.Point, deltaX, deltaY int) error

	// ExecuteCommand runs a platform-native command by name, e.g.
	// "mobile: scroll" on iOS or "mobile: scrollGesture" on Android.
	ExecuteCommand(ctx context.Context, command string, args map[string]any) (any, error)

	FindElements(ctx context.Context, using, value string) ([]Element, error)

	// Pause blocks for the given duration. Not cancellable.
	Pause(ctx context.Context, d time.Duration)
}

// Element is a borrowed handle to a remote UI element.
type Element interface {
	ID() string
	IsDisplayed(ctx context.Context) (bool, error)

	// ScrollIntoView invokes the rendering engine's own
	// scroll-into-view capability, passing arg through verbatim. The
	// arg is either a boolean or an alignment object, both interpreted
	// natively by the engine.
	ScrollIntoView(ctx context.Context, arg any) error
}

// BrowserManager owns the session lifecycle on top of Session.
type BrowserManager interface {
	Session

	Launch(ctx context.Context) error
	Close(ctx context.Context) error
	Navigate(ctx context.Context, url string) error
	FindElement(ctx context.Context, using, value string) (Element, error)
	ScrollableCandidates(ctx context.Context) ([]entity.ScrollableCandidate, error)
	IsReady() bool
}
