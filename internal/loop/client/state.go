package client

import (
	"time"

	"github.com/tomz197/dodgefall/internal/loop"
)

// ClientState holds the per-session bookkeeping around the game: whether the
// loop is running, the shutdown countdown and the inactivity warning.
type ClientState struct {
	Running       bool          // Client loop running
	ShuttingDown  bool          // Server announced a shutdown
	shutdownTimer float64       // Countdown before auto-disconnect on shutdown
	isInactive    bool          // Whether the client is in inactive warning state
	delta         time.Duration // Frame delta time

	leaderText  string  // Latest leaderboard announcement
	leaderTimer float64 // Seconds the announcement stays up

	// Previous values, to detect transitions that need a full clear.
	prevPhase     loop.Phase
	wasInactive   bool
	wasShutdown   bool
	prevGameOver  bool
	hadLeaderText bool
}

// NewClientState creates a new initialized client state.
func NewClientState() *ClientState {
	return &ClientState{
		Running: true,
	}
}
