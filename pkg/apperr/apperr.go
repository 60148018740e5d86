package apperr

import (
	"errors"
	"fmt"
)

const (
	MetaReason    = "reason"
	MetaStage     = "stage"
	MetaField     = "field"
	MetaSelector  = "selector"
	MetaURL       = "url"
	MetaElementID = "element_id"
	MetaLocator   = "locator"
	MetaDirection = "direction"
	MetaScrolls   = "scrolls"

	StagePreparation = "preparation"
	StageBrowser     = "browser"
	StageNavigation  = "navigation"
	StageDispatch    = "dispatch"
	StageGeometry    = "geometry"
	StageAction      = "action"
	StageGesture     = "gesture"

	CodeInternal           = "internal"
	CodeInvalidArgument    = "invalid_argument"
	CodeNotFound           = "not_found"
	CodeTimeout            = "timeout"
	CodeUnsupported        = "unsupported"
	CodeBrowserNotReady    = "browser_not_ready"
	CodeActionFailed       = "action_failed"
	CodeScrollableNotFound = "scrollable_not_found"
	CodeScrollExhausted    = "scroll_exhausted"
)

type Error struct {
	Op       string
	Code     string
	Err      error
	Metadata map[string]any
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}

	return e.Op
}

func (e *Error) Unwrap() error {
	return e.Err
}

func Wrap(op, code string, err error, metadata map[string]any) error {
	if metadata == nil {
		metadata = make(map[string]any)
	}

	return &Error{
		Op:       op,
		Code:     code,
		Err:      err,
		Metadata: metadata,
	}
}

func WrapWithReason(op, code string, err error, reason string) error {
	return Wrap(op, code, err, map[string]any{
		MetaReason: reason,
	})
}

func WrapErrorWithReason(op, code, reason string) error {
	return Wrap(op, code, fmt.Errorf("%s", reason), map[string]any{
		MetaReason: reason,
	})
}

func InvalidReqError(op, field string, err error) error {
	return Wrap(op, CodeInvalidArgument, err, map[string]any{
		MetaField:  field,
		MetaReason: "invalid_request",
	})
}

func NotFoundError(op string, err error) error {
	return Wrap(op, CodeNotFound, err, map[string]any{
		MetaReason: "not_found",
	})
}

// CodeOf returns the code of an error produced by this package, or an
// empty string for foreign errors.
func CodeOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}

	return ""
}
