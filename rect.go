package atlas

import (
	"fmt"
	"math"
)

// Rect is a pixel-aligned bounding box on an atlas surface.
//
// A Rect is a plain value and is never mutated after construction;
// splitting a node builds new Rects for the children instead of
// adjusting the parent's.
type Rect struct {
	// Left is the left edge in pixels.
	Left int
	// Top is the top edge in pixels.
	Top int
	// Right is the right edge in pixels.
	Right int
	// Bottom is the bottom edge in pixels.
	Bottom int
}

// NewRect builds a Rect from arbitrary numeric input. Each coordinate
// is floored to an integer; NaN, infinities, and negative values
// collapse to 0. Bad client input therefore degrades to an empty
// rectangle at the origin rather than failing.
func NewRect(left, top, right, bottom float64) Rect {
	return Rect{
		Left:   clampCoord(left),
		Top:    clampCoord(top),
		Right:  clampCoord(right),
		Bottom: clampCoord(bottom),
	}
}

// clampCoord floors v to an int, substituting 0 for non-finite or
// negative input.
func clampCoord(v float64) int {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return int(math.Floor(v))
}

// rectOf builds a Rect from integer edges, used internally by splits.
func rectOf(left, top, right, bottom int) Rect {
	return Rect{Left: left, Top: top, Right: right, Bottom: bottom}
}

// Width returns the rectangle width in pixels.
func (r Rect) Width() int {
	return r.Right - r.Left
}

// Height returns the rectangle height in pixels.
func (r Rect) Height() int {
	return r.Bottom - r.Top
}

// CenterX returns the horizontal center, offset by -0.5 so that the
// value lands on a pixel boundary for crisp pixel-aligned drawing.
func (r Rect) CenterX() float64 {
	return float64(r.Left) + float64(r.Width())/2 - 0.5
}

// CenterY returns the vertical center, offset by -0.5 so that the
// value lands on a pixel boundary for crisp pixel-aligned drawing.
func (r Rect) CenterY() float64 {
	return float64(r.Top) + float64(r.Height())/2 - 0.5
}

// IsEmpty returns true if the rectangle has no area.
func (r Rect) IsEmpty() bool {
	return r.Width() <= 0 || r.Height() <= 0
}

// Contains returns true if the point (x, y) is inside the rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.Left && x < r.Right && y >= r.Top && y < r.Bottom
}

// String returns a string representation of the rectangle.
func (r Rect) String() string {
	return fmt.Sprintf("Rect(%d,%d %dx%d)", r.Left, r.Top, r.Width(), r.Height())
}
