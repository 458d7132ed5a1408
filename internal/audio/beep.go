package audio

import (
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"
)

// DefaultSampleRate is the speaker rate used by the terminal frontend.
const DefaultSampleRate = 48000

// cueLength is the duration of the movement blip.
const cueLength = 70 * time.Millisecond

// BeepBackend plays both channels through the system speaker.
type BeepBackend struct {
	mu          sync.Mutex
	sr          beep.SampleRate
	mixer       *beep.Mixer
	ambient     *beepChannel
	cue         *beepChannel
	initialized bool
}

// NewBeepBackend prepares the channels. Nothing is audible until Init.
func NewBeepBackend(sampleRate int) *BeepBackend {
	sr := beep.SampleRate(sampleRate)
	format := beep.Format{SampleRate: sr, NumChannels: 2, Precision: 2}
	blip := Render(format, NewBlipGenerator(sr, cueLength, 660, 990))

	return &BeepBackend{
		sr:    sr,
		mixer: &beep.Mixer{},
		ambient: newBeepChannel(speaker.Lock, speaker.Unlock, func() beep.Streamer {
			return NewSoundtrackGenerator(sr)
		}),
		cue: newBeepChannel(speaker.Lock, speaker.Unlock, func() beep.Streamer {
			return blip.Streamer(0, blip.Len())
		}),
	}
}

// Init opens the speaker and starts mixing. Calling it again is a no-op.
func (b *BeepBackend) Init() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.initialized {
		return nil
	}
	if err := speaker.Init(b.sr, b.sr.N(time.Second/20)); err != nil {
		return fmt.Errorf("init speaker: %w", err)
	}
	b.mixer.Add(b.ambient.ctrl, b.cue.ctrl)
	speaker.Play(b.mixer)
	b.initialized = true
	return nil
}

// Channels returns the ambient and cue channels.
func (b *BeepBackend) Channels() (ambient, cue Channel, err error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.initialized {
		return nil, nil, ErrNotInitialized
	}
	return b.ambient, b.cue, nil
}

// Close stops playback and releases the speaker.
func (b *BeepBackend) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.initialized {
		return
	}
	speaker.Clear()
	speaker.Close()
	b.initialized = false
}

// beepChannel is a paused Ctrl over a volume effect over a restartable source.
// The Ctrl never drains, so it stays in the mixer for the process lifetime.
type beepChannel struct {
	lock, unlock func()

	ctrl   *beep.Ctrl
	volume *effects.Volume
	source *restartable

	level float64
	muted bool
}

func newBeepChannel(lock, unlock func(), source func() beep.Streamer) *beepChannel {
	src := &restartable{source: source}
	vol := &effects.Volume{Streamer: src, Base: 2}
	c := &beepChannel{
		lock:   lock,
		unlock: unlock,
		ctrl:   &beep.Ctrl{Streamer: vol, Paused: true},
		volume: vol,
		source: src,
		level:  1,
	}
	c.applyVolume()
	return c
}

func (c *beepChannel) Play() {
	c.lock()
	defer c.unlock()
	if c.source.current == nil {
		c.source.restart()
	}
	c.ctrl.Paused = false
}

func (c *beepChannel) Pause() {
	c.lock()
	defer c.unlock()
	c.ctrl.Paused = true
}

func (c *beepChannel) Rewind() {
	c.lock()
	defer c.unlock()
	c.source.restart()
}

func (c *beepChannel) SetVolume(level float64) {
	c.lock()
	defer c.unlock()
	c.level = clampLevel(level)
	c.applyVolume()
}

func (c *beepChannel) SetMuted(muted bool) {
	c.lock()
	defer c.unlock()
	c.muted = muted
	c.applyVolume()
}

// applyVolume maps the linear level onto the log2 scale of effects.Volume.
func (c *beepChannel) applyVolume() {
	if c.level <= 0 || c.muted {
		c.volume.Volume = 0
		c.volume.Silent = true
		return
	}
	c.volume.Volume = math.Log2(c.level)
	c.volume.Silent = false
}

// restartable plays one instance of its source at a time and pads with
// silence once the instance ends.
type restartable struct {
	source  func() beep.Streamer
	current beep.Streamer
}

func (r *restartable) restart() {
	r.current = r.source()
}

func (r *restartable) Stream(samples [][2]float64) (n int, ok bool) {
	if r.current != nil {
		n, ok = r.current.Stream(samples)
		if !ok || n < len(samples) {
			r.current = nil
		}
		if n < 0 {
			n = 0
		}
	}
	for i := n; i < len(samples); i++ {
		samples[i] = [2]float64{}
	}
	return len(samples), true
}

func (r *restartable) Err() error {
	return nil
}
