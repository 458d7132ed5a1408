package object

import "github.com/tomz197/dodgefall/internal/physics"

// Obstacle is the block falling down the field. It wraps back to the top
// each time it passes the bottom, landing in a fresh random lane.
type Obstacle struct {
	Y     float64 // Vertical percent of the top edge
	Lane  float64 // Horizontal percent of the left edge
	Speed float64 // Vertical percent per frame

	Width    float64
	Height   float64
	LaneSpan float64 // Lanes are drawn from [0, LaneSpan)
}

// NewObstacle creates an obstacle parked at the top-left corner.
func NewObstacle(width, height, laneSpan float64) *Obstacle {
	return &Obstacle{
		Width:    width,
		Height:   height,
		LaneSpan: laneSpan,
	}
}

// Reset puts the obstacle back at the top with the given speed and a new lane.
func (o *Obstacle) Reset(speed float64, rng Rand) {
	o.Y = 0
	o.Speed = speed
	o.Lane = rng.Float64() * o.LaneSpan
}

// Advance moves the obstacle down one frame. When it passes the bottom of the
// field it wraps to the top, picks a new lane, speeds up by increment, and
// Advance returns true.
func (o *Obstacle) Advance(increment float64, rng Rand) bool {
	o.Y += o.Speed
	if o.Y <= physics.FieldSize {
		return false
	}
	o.Y = 0
	o.Lane = rng.Float64() * o.LaneSpan
	o.Speed += increment
	return true
}

// Rect returns the obstacle's bounding box.
func (o *Obstacle) Rect() physics.Rect {
	return physics.Rect{X: o.Lane, Y: o.Y, W: o.Width, H: o.Height}
}
