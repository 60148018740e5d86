package browser

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/playwright-community/playwright-go"
)

// Element wraps a playwright handle behind ports.Element. The id is
// generated locally; playwright does not expose protocol element ids.
type Element struct {
	id     string
	handle playwright.ElementHandle
}

func newElement(handle playwright.ElementHandle) *Element {
	return &Element{
		id:     uuid.NewString(),
		handle: handle,
	}
}

func (e *Element) ID() string {
	return e.id
}

func (e *Element) IsDisplayed(ctx context.Context) (bool, error) {
	visible, err := e.handle.IsVisible()
	if err != nil {
		return false, fmt.Errorf("visibility check failed: %w", err)
	}

	return visible, nil
}

// ScrollIntoView hands arg to the engine untouched, so the boolean
// shorthand and the alignment object both reach scrollIntoView in
// their native form.
func (e *Element) ScrollIntoView(ctx context.Context, arg any) error {
	_, err := e.handle.Evaluate("(el, opts) => el.scrollIntoView(opts)", arg)
	if err != nil {
		return fmt.Errorf("engine scrollIntoView failed: %w", err)
	}

	return nil
}
