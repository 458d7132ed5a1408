// Package audio owns the mute flag, the soundtrack volume and the two logical
// sound channels: the ambient soundtrack and the movement cue.
package audio

import (
	"errors"
	"sync"
)

// ErrNotInitialized is returned when channels are requested from a backend
// whose output device was never opened.
var ErrNotInitialized = errors.New("audio: backend not initialized")

// Channel is one logical playback channel on some output device.
type Channel interface {
	Play()
	Pause()
	Rewind()
	SetVolume(level float64)
	SetMuted(muted bool)
}

// Nop is a silent channel.
type Nop struct{}

func (Nop) Play()             {}
func (Nop) Pause()            {}
func (Nop) Rewind()           {}
func (Nop) SetVolume(float64) {}
func (Nop) SetMuted(bool)     {}

// Options configures a Controller.
type Options struct {
	Muted      bool
	Volume     float64 // Soundtrack volume, clamped to [0,1]
	CueVolume  float64 // Fixed at construction
	CueEnabled bool
}

// Controller routes mute, volume and playback requests to the channels.
// Safe for concurrent use.
type Controller struct {
	mu      sync.Mutex
	ambient Channel
	cue     Channel

	muted      bool
	volume     float64
	cueEnabled bool
}

// NewController applies opts to both channels and returns the controller.
// Nil channels are replaced by Nop.
func NewController(ambient, cue Channel, opts Options) *Controller {
	if ambient == nil {
		ambient = Nop{}
	}
	if cue == nil {
		cue = Nop{}
	}
	c := &Controller{
		ambient:    ambient,
		cue:        cue,
		muted:      opts.Muted,
		volume:     clampLevel(opts.Volume),
		cueEnabled: opts.CueEnabled,
	}
	ambient.SetVolume(c.volume)
	ambient.SetMuted(c.muted)
	cue.SetVolume(clampLevel(opts.CueVolume))
	cue.SetMuted(c.muted)
	return c
}

// ToggleMute flips the muted flag on both channels and returns the new value.
// Playback state is left alone; a muted soundtrack keeps running silently.
func (c *Controller) ToggleMute() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.muted = !c.muted
	c.ambient.SetMuted(c.muted)
	c.cue.SetMuted(c.muted)
	return c.muted
}

// Muted reports the current mute flag.
func (c *Controller) Muted() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.muted
}

// Label is the text of the mute control: the action it would perform.
func (c *Controller) Label() string {
	if c.Muted() {
		return "Unmute"
	}
	return "Mute"
}

// SetVolume sets the soundtrack volume. The cue volume is unaffected.
func (c *Controller) SetVolume(level float64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.volume = clampLevel(level)
	c.ambient.SetVolume(c.volume)
}

// Volume returns the soundtrack volume.
func (c *Controller) Volume() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.volume
}

// StartAmbient resumes the soundtrack unless muted.
func (c *Controller) StartAmbient() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.muted {
		return
	}
	c.ambient.Play()
}

// StopAmbient pauses the soundtrack.
func (c *Controller) StopAmbient() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ambient.Pause()
}

// PlayCue restarts the movement cue from the beginning unless muted or disabled.
func (c *Controller) PlayCue() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.muted || !c.cueEnabled {
		return
	}
	c.cue.Rewind()
	c.cue.Play()
}

func clampLevel(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
