// Package config centralizes all tunable game parameters.
package config

import "time"

// View resolution - the visible viewport in logical units.
// The play field is 100x100 percent; rendering scales it to the terminal.
const (
	ViewWidth  = 100 // Logical viewport width
	ViewHeight = 100 // Logical viewport height (in sub-pixels, so 50 terminal rows at full scale)
)

// Maximum render size in terminal cells. Larger terminals get a border.
const (
	MaxTermWidth  = 120
	MaxTermHeight = 60
)

// Player geometry and movement, in percent of the field.
const (
	PlayerTop    = 90.0
	PlayerWidth  = 5.0
	PlayerHeight = 5.0

	EdgeDeadzone = 10.0 // Target position never enters this margin
	MoveStep     = 10.0
	BoostStep    = 20.0 // Step while the modifier is held
	Smoothing    = 0.1  // Fraction of remaining distance covered per frame
)

// Obstacle geometry, in percent of the field.
const (
	ObstacleWidth  = 5.0
	ObstacleHeight = 5.0
	LaneSpan       = 90.0 // Lanes are drawn from [0, LaneSpan)
)

// Audio
const (
	VolumeStep = 0.1 // Volume change per key press
)

// Player
const (
	MaxUsernameLength = 16 // Maximum display length for player usernames
)

// Leaderboard
const (
	LeaderboardSize = 5
)

// Shutdown
const (
	ShutdownDisplaySeconds = 10.0 // Seconds to show shutdown message before auto-disconnect
)

// Inactivity
const (
	InactivityWarnUser       = 90  // Seconds
	InactivityDisconnectUser = 120 // Seconds
)

// Client rendering. Speeds are per frame, so difficulty follows this rate.
const (
	ClientTargetFPS       = 60
	ClientTargetFrameTime = time.Second / ClientTargetFPS
)
