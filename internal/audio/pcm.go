package audio

import (
	"encoding/binary"
	"math"

	"github.com/gopxl/beep"
)

// bytesPerFrame is one stereo frame of signed 16-bit samples.
const bytesPerFrame = 4

// PCM renders up to n samples of s as signed 16-bit little-endian stereo,
// the layout ebiten's audio players read. Rendering stops early if s drains.
func PCM(s beep.Streamer, n int) []byte {
	out := make([]byte, 0, n*bytesPerFrame)
	samples := make([][2]float64, 512)

	for n > 0 {
		chunk := samples
		if n < len(chunk) {
			chunk = chunk[:n]
		}
		got, ok := s.Stream(chunk)
		for _, frame := range chunk[:got] {
			out = binary.LittleEndian.AppendUint16(out, uint16(toInt16(frame[0])))
			out = binary.LittleEndian.AppendUint16(out, uint16(toInt16(frame[1])))
		}
		n -= got
		if !ok || got == 0 {
			break
		}
	}
	return out
}

func toInt16(v float64) int16 {
	v = math.Max(-1, math.Min(1, v))
	return int16(v * math.MaxInt16)
}

// SoundtrackPCM renders one seamless period of the soundtrack.
func SoundtrackPCM(sampleRate int) []byte {
	g := NewSoundtrackGenerator(beep.SampleRate(sampleRate))
	return PCM(g, g.Period())
}

// CuePCM renders the movement blip.
func CuePCM(sampleRate int) []byte {
	sr := beep.SampleRate(sampleRate)
	return PCM(NewBlipGenerator(sr, cueLength, 660, 990), sr.N(cueLength))
}
