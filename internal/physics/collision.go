package physics

import (
	"fmt"
	"strings"
)

// Policy selects how player/obstacle collisions are detected.
type Policy int

const (
	// PolicyBoundingBox tests the rendered rectangles for overlap every frame.
	PolicyBoundingBox Policy = iota
	// PolicyThreshold only tests once the obstacle is below a row, by lane distance.
	// An obstacle fast enough to jump past the row window in one frame is never caught.
	PolicyThreshold
)

// String returns the configuration name of the policy.
func (p Policy) String() string {
	switch p {
	case PolicyBoundingBox:
		return "aabb"
	case PolicyThreshold:
		return "threshold"
	default:
		return fmt.Sprintf("Policy(%d)", int(p))
	}
}

// ParsePolicy converts a configuration name into a Policy.
func ParsePolicy(name string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "aabb", "bbox", "box", "bounding-box":
		return PolicyBoundingBox, nil
	case "threshold", "lane":
		return PolicyThreshold, nil
	default:
		return 0, fmt.Errorf("unknown collision policy %q", name)
	}
}

// Detector decides whether the player and the obstacle collide this frame.
type Detector interface {
	Collides(player, obstacle Rect) bool
}

// BoundingBox is the rect-accurate detector.
type BoundingBox struct{}

// Collides reports whether the two rectangles overlap.
func (BoundingBox) Collides(player, obstacle Rect) bool {
	return player.Overlaps(obstacle)
}

// Threshold is the row-and-lane detector.
type Threshold struct {
	Row       float64 // Obstacle top must be strictly below this row
	Tolerance float64 // Maximum lane distance that still counts as a hit
}

// Collides reports whether the obstacle is past the row and within tolerance
// of the player's horizontal position.
func (t Threshold) Collides(player, obstacle Rect) bool {
	if obstacle.Y <= t.Row {
		return false
	}
	return HorizontalDistance(obstacle.X, player.X) < t.Tolerance
}

// NewDetector returns the detector for the given policy.
// row and tolerance only apply to PolicyThreshold.
func NewDetector(policy Policy, row, tolerance float64) Detector {
	if policy == PolicyThreshold {
		return Threshold{Row: row, Tolerance: tolerance}
	}
	return BoundingBox{}
}
