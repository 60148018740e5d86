package entity

import (
	"time"

	"github.com/google/uuid"
)

// Rect is an element rectangle relative to the viewport.
type Rect struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// Size is the viewport rectangle of the visible surface.
type Size struct {
	Width  float64
	Height float64
}

type Point struct {
	X float64
	Y float64
}

// Alignment controls where within the viewport an element is positioned
// after scrolling.
type Alignment string

const (
	AlignStart   Alignment = "start"
	AlignCenter  Alignment = "center"
	AlignEnd     Alignment = "end"
	AlignNearest Alignment = "nearest"
)

// Direction of a native scroll gesture.
type Direction string

const (
	DirectionUp    Direction = "up"
	DirectionDown  Direction = "down"
	DirectionLeft  Direction = "left"
	DirectionRight Direction = "right"
)

// ScrollResult reports both observable outcomes of the native scroll
// loop, so a caller can tell "already visible" apart from "became
// visible after scrolling".
type ScrollResult struct {
	HasScrolled bool
	IsVisible   bool
}

type ScrollStatus string

const (
	ScrollStatusCompleted ScrollStatus = "completed"
	ScrollStatusFailed    ScrollStatus = "failed"
)

// ScrollRecord is one console-issued scroll invocation.
type ScrollRecord struct {
	ID          uuid.UUID
	Selector    string
	Status      ScrollStatus
	StartedAt   time.Time
	CompletedAt time.Time
	Error       string
}

// ScrollableCandidate describes a scroll container found on the page,
// shown as a remediation aid when automatic resolution fails.
type ScrollableCandidate struct {
	Tag      string
	Selector string
	Rect     Rect
}
