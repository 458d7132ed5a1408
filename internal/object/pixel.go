package object

import "github.com/tomz197/dodgefall/internal/physics"

// Pixel is a decorative particle drifting down the background.
type Pixel struct {
	X     float64 // Horizontal percent, fixed at spawn
	Y     float64 // Vertical percent, grows every frame
	Speed float64 // Fall speed in percent per frame, fixed at spawn
}

// PixelField owns the live background pixels in spawn order.
type PixelField struct {
	Chance   float64 // Probability of one spawn per frame
	MinSpeed float64
	MaxSpeed float64

	rng    Rand
	pixels []Pixel
}

// NewPixelField creates an empty field.
func NewPixelField(chance, minSpeed, maxSpeed float64, rng Rand) *PixelField {
	return &PixelField{
		Chance:   chance,
		MinSpeed: minSpeed,
		MaxSpeed: maxSpeed,
		rng:      rng,
		pixels:   make([]Pixel, 0, 64),
	}
}

// Step runs one frame: maybe spawn a pixel at the top, then move every pixel
// down by its own speed and drop the ones that fell past the bottom.
// A pixel spawned this frame also moves this frame.
func (f *PixelField) Step() {
	if f.rng.Float64() < f.Chance {
		x := f.rng.Float64() * physics.FieldSize
		speed := f.MinSpeed + f.rng.Float64()*(f.MaxSpeed-f.MinSpeed)
		f.pixels = append(f.pixels, Pixel{X: x, Speed: speed})
	}

	kept := f.pixels[:0] // reuse backing array
	for _, p := range f.pixels {
		p.Y += p.Speed
		if p.Y > physics.FieldSize {
			continue
		}
		kept = append(kept, p)
	}
	f.pixels = kept
}

// Pixels returns the live pixels. The slice is only valid until the next Step.
func (f *PixelField) Pixels() []Pixel {
	return f.pixels
}

// Len returns the number of live pixels.
func (f *PixelField) Len() int {
	return len(f.pixels)
}
