package scroll

import (
	"math"

	"scroll-agent/internal/entity"
)

type axisCandidates struct {
	start  float64
	center float64
	end    float64
}

// anchorPoint clamps the wheel-action anchor to the viewport. An
// element far off screen would otherwise anchor the action at
// coordinates the driver cannot address.
func anchorPoint(rect entity.Rect, viewport entity.Size) entity.Point {
	ref := entity.Point{X: rect.X, Y: rect.Y}

	if rect.X > viewport.Width {
		ref.X = viewport.Width / 2
	}

	if rect.Y > viewport.Height {
		ref.Y = viewport.Height / 2
	}

	return ref
}

func verticalCandidates(rect entity.Rect, viewport entity.Size) axisCandidates {
	return axisCandidates{
		start:  rect.Y - rect.Height,
		center: rect.Y - math.Round((viewport.Height-rect.Height)/2),
		end:    rect.Y - (viewport.Height - rect.Height),
	}
}

func horizontalCandidates(rect entity.Rect, viewport entity.Size) axisCandidates {
	return axisCandidates{
		start:  rect.X - rect.Width,
		center: rect.X - math.Round((viewport.Width-rect.Width)/2),
		end:    rect.X - (viewport.Width - rect.Width),
	}
}

// pick resolves one alignment value against the candidates. "nearest"
// takes the minimum absolute delta, ties resolving in start, center,
// end order. An unset alignment keeps the start default.
func (c axisCandidates) pick(align entity.Alignment) float64 {
	switch align {
	case entity.AlignStart:
		return c.start
	case entity.AlignCenter:
		return c.center
	case entity.AlignEnd:
		return c.end
	case entity.AlignNearest:
		nearest := c.start
		for _, v := range []float64{c.center, c.end} {
			if math.Abs(v) < math.Abs(nearest) {
				nearest = v
			}
		}

		return nearest
	default:
		return c.start
	}
}

// scrollDelta computes the wheel deltas for one invocation. The current
// page offset is subtracted only after alignment selection, then both
// axes round to integer pixels.
func scrollDelta(rect entity.Rect, viewport entity.Size, offset entity.Point, opts WebOptions) (deltaX, deltaY int) {
	y := verticalCandidates(rect, viewport).pick(opts.Block)
	x := horizontalCandidates(rect, viewport).pick(opts.Inline)

	deltaX = int(math.Round(x - offset.X))
	deltaY = int(math.Round(y - offset.Y))

	return deltaX, deltaY
}
