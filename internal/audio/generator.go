package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
)

// arpNotes is the soundtrack's repeating bass arpeggio (A minor), in Hz.
var arpNotes = [...]float64{110.00, 130.81, 164.81, 196.00, 164.81, 130.81}

// SoundtrackGenerator is an endless synthwave loop: a kick on every beat and a
// plucked bass note that walks the arpeggio.
type SoundtrackGenerator struct {
	sr   beep.SampleRate
	pos  int
	beat int // Samples per beat
	kick int // Kick length in samples
}

// NewSoundtrackGenerator creates a soundtrack at 110 BPM.
func NewSoundtrackGenerator(sr beep.SampleRate) *SoundtrackGenerator {
	return &SoundtrackGenerator{
		sr:   sr,
		beat: sr.N(time.Minute / 110),
		kick: sr.N(90 * time.Millisecond),
	}
}

// Period is the number of samples after which the soundtrack repeats exactly.
func (g *SoundtrackGenerator) Period() int {
	return g.beat * len(arpNotes)
}

func (g *SoundtrackGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		beatPos := g.pos % g.beat
		note := arpNotes[(g.pos/g.beat)%len(arpNotes)]
		t := float64(beatPos) / float64(g.sr)

		kick := 0.0
		if beatPos < g.kick {
			env := 1 - float64(beatPos)/float64(g.kick)
			kick = 0.35 * env * math.Sin(2*math.Pi*55*(1+2*env)*t)
		}

		pluck := math.Exp(-t*6) * 0.18 * math.Sin(2*math.Pi*note*t)
		pad := 0.05 * math.Sin(2*math.Pi*note*2*t)

		s := kick + pluck + pad
		samples[i][0] = s
		samples[i][1] = s
		g.pos++
	}
	return len(samples), true
}

func (g *SoundtrackGenerator) Err() error {
	return nil
}

// BlipGenerator is a short rising chirp with an exponential decay. It ends
// after its duration.
type BlipGenerator struct {
	sr       beep.SampleRate
	pos      int
	length   int
	from, to float64 // Start and end frequency in Hz
}

// NewBlipGenerator creates a chirp sweeping from one frequency to another.
func NewBlipGenerator(sr beep.SampleRate, duration time.Duration, from, to float64) *BlipGenerator {
	return &BlipGenerator{
		sr:     sr,
		length: sr.N(duration),
		from:   from,
		to:     to,
	}
}

func (g *BlipGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	if g.pos >= g.length {
		return 0, false
	}
	for n < len(samples) && g.pos < g.length {
		progress := float64(g.pos) / float64(g.length)
		t := float64(g.pos) / float64(g.sr)
		freq := g.from + (g.to-g.from)*progress

		s := 0.5 * math.Exp(-progress*5) * math.Sin(2*math.Pi*freq*t)
		samples[n][0] = s
		samples[n][1] = s
		g.pos++
		n++
	}
	return n, true
}

func (g *BlipGenerator) Err() error {
	return nil
}

// Render drains s into a buffer of the given format. s must be finite.
func Render(format beep.Format, s beep.Streamer) *beep.Buffer {
	buf := beep.NewBuffer(format)
	buf.Append(s)
	return buf
}
