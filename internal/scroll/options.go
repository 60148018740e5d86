package scroll

import (
	"scroll-agent/internal/entity"
	"scroll-agent/internal/ports"
)

const (
	// DefaultMaxScrolls bounds the native scroll loop when the caller
	// does not say otherwise.
	DefaultMaxScrolls = 10

	// DefaultDirection of native scroll gestures.
	DefaultDirection = entity.DirectionDown
)

// Options is the variant union accepted by ScrollIntoView: the boolean
// shorthand, a web alignment record, or a mobile-native record. A nil
// Options means {block: start, inline: nearest}.
type Options interface {
	isScrollOptions()
}

// AlignFlag is the boolean shorthand. True aligns the element to the
// top of the viewport ({block: start, inline: nearest}), false to the
// bottom ({block: end, inline: nearest}).
type AlignFlag bool

func (AlignFlag) isScrollOptions() {}

// WebOptions positions the element by alignment within the viewport.
// An unset field keeps the entry-point default for that axis.
type WebOptions struct {
	Behavior string
	Block    entity.Alignment
	Inline   entity.Alignment
}

func (WebOptions) isScrollOptions() {}

// NativeOptions drives the native-app scroll loop.
type NativeOptions struct {
	Direction  entity.Direction
	MaxScrolls int

	// ScrollableElement, when set, is used as the scroll container and
	// skips platform-default resolution entirely.
	ScrollableElement ports.Element
}

func (NativeOptions) isScrollOptions() {}

// normalizeWeb collapses every variant to the alignment-record shape
// used by the action path. The boolean shorthand maps to its §3
// equivalents; native options carry no web alignment and fall back to
// the entry-point default.
func normalizeWeb(opts Options) WebOptions {
	switch o := opts.(type) {
	case AlignFlag:
		if o {
			return WebOptions{Block: entity.AlignStart, Inline: entity.AlignNearest}
		}

		return WebOptions{Block: entity.AlignEnd, Inline: entity.AlignNearest}
	case WebOptions:
		return o
	default:
		return WebOptions{Block: entity.AlignStart, Inline: entity.AlignNearest}
	}
}

// normalizeNative merges caller options over the native defaults.
func normalizeNative(opts Options) NativeOptions {
	native, ok := opts.(NativeOptions)
	if !ok {
		native = NativeOptions{}
	}

	if native.Direction == "" {
		native.Direction = DefaultDirection
	}

	if native.MaxScrolls == 0 {
		native.MaxScrolls = DefaultMaxScrolls
	}

	return native
}

// engineArg builds the argument handed verbatim to the rendering
// engine's scrollIntoView call. The boolean shorthand stays a raw
// boolean; the engine interprets it natively.
func engineArg(opts Options) any {
	switch o := opts.(type) {
	case AlignFlag:
		return bool(o)
	case WebOptions:
		arg := map[string]any{}
		if o.Behavior != "" {
			arg["behavior"] = o.Behavior
		}
		if o.Block != "" {
			arg["block"] = string(o.Block)
		}
		if o.Inline != "" {
			arg["inline"] = string(o.Inline)
		}

		return arg
	default:
		return map[string]any{
			"block":  string(entity.AlignStart),
			"inline": string(entity.AlignNearest),
		}
	}
}
