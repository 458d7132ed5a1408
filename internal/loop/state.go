package loop

import (
	"github.com/tomz197/dodgefall/internal/object"
	"github.com/tomz197/dodgefall/internal/physics"
)

// Phase is the state machine position of a game.
type Phase int

const (
	PhaseIdle    Phase = iota // Waiting for a key; also after a collision
	PhaseRunning              // Frames are being scheduled
)

func (p Phase) String() string {
	if p == PhaseRunning {
		return "running"
	}
	return "idle"
}

// RunState is the per-run bookkeeping owned by the game.
type RunState struct {
	Phase Phase
	Score int  // Obstacle passes this run
	Muted bool // Mirrors the sound controller
}

// RunResult describes a finished run.
type RunResult struct {
	Score     int
	HighScore int // Stored high score after this run was saved
	Frames    int // Frames the run lasted
	Variant   string
}

// Snapshot is everything a frontend needs to draw one frame.
type Snapshot struct {
	Phase     Phase
	Score     int
	HighScore int

	Player          physics.Rect
	Obstacle        physics.Rect
	ObstacleVisible bool
	ScoreVisible    bool
	ShowStart       bool // "press any key" banner
	ShowGameOver    bool

	Pixels []object.Pixel

	Muted        bool
	MuteLabel    string
	Volume       float64
	Speed        float64
	ModifierHeld bool
	Variant      string
}
