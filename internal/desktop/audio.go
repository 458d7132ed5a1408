package desktop

import (
	"bytes"
	"fmt"

	eaudio "github.com/hajimehoshi/ebiten/v2/audio"

	"github.com/tomz197/dodgefall/internal/audio"
)

// SampleRate is the rate of the ebiten audio context.
const SampleRate = 48000

// player is the part of *eaudio.Player a channel drives.
type player interface {
	Play()
	Pause()
	Rewind() error
	SetVolume(volume float64)
}

// channel adapts an ebiten player to audio.Channel. Mute is applied as zero
// volume so the player keeps its position.
type channel struct {
	p     player
	level float64
	muted bool
}

var _ audio.Channel = (*channel)(nil)

func (c *channel) Play()  { c.p.Play() }
func (c *channel) Pause() { c.p.Pause() }

func (c *channel) Rewind() {
	_ = c.p.Rewind()
}

func (c *channel) SetVolume(level float64) {
	c.level = level
	c.apply()
}

func (c *channel) SetMuted(muted bool) {
	c.muted = muted
	c.apply()
}

func (c *channel) apply() {
	if c.muted {
		c.p.SetVolume(0)
		return
	}
	c.p.SetVolume(c.level)
}

// NewAudio creates the soundtrack and cue channels on ctx. The soundtrack
// loops forever; the cue is a short clip restarted on every play.
func NewAudio(ctx *eaudio.Context) (ambient, cue audio.Channel, err error) {
	track := audio.SoundtrackPCM(ctx.SampleRate())
	loop := eaudio.NewInfiniteLoop(bytes.NewReader(track), int64(len(track)))
	trackPlayer, err := ctx.NewPlayer(loop)
	if err != nil {
		return nil, nil, fmt.Errorf("soundtrack player: %w", err)
	}

	cuePlayer := ctx.NewPlayerFromBytes(audio.CuePCM(ctx.SampleRate()))

	return &channel{p: trackPlayer, level: 1}, &channel{p: cuePlayer, level: 1}, nil
}
