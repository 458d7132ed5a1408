// Package physics provides collision detection and movement helpers for the play field.
//
// All coordinates are percentages of the field: (0,0) is the top-left corner,
// (100,100) the bottom-right one.
package physics

import "math"

// FieldSize is the width and height of the play field in percent units.
const FieldSize = 100.0

// Rect is an axis-aligned rectangle in field coordinates.
type Rect struct {
	X, Y float64 // Top-left corner
	W, H float64 // Width and height
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() float64 {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() float64 {
	return r.Y + r.H
}

// Overlaps reports whether r and o share any interior area.
// Touching edges do not count as an overlap.
func (r Rect) Overlaps(o Rect) bool {
	return r.X < o.Right() &&
		r.Right() > o.X &&
		r.Y < o.Bottom() &&
		r.Bottom() > o.Y
}

// Clamp restricts v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Approach moves current toward target by factor of the remaining distance.
// With factor in [0,1] the result never overshoots target.
func Approach(current, target, factor float64) float64 {
	return current + (target-current)*factor
}

// HorizontalDistance returns the absolute horizontal gap between two x-coordinates.
func HorizontalDistance(x1, x2 float64) float64 {
	return math.Abs(x1 - x2)
}
