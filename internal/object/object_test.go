package object

import (
	"math/rand"
	"testing"
)

// seqRand replays a fixed sequence of values, repeating the last one.
type seqRand struct {
	values []float64
	i      int
}

func (r *seqRand) Float64() float64 {
	if len(r.values) == 0 {
		return 0
	}
	v := r.values[r.i]
	if r.i < len(r.values)-1 {
		r.i++
	}
	return v
}

func classicMovement() Movement {
	return Movement{Step: 10, BoostStep: 20, Deadzone: 10, Smoothing: 0.1}
}

func TestPlayerNudgeClampsToDeadzone(t *testing.T) {
	p := NewPlayer(classicMovement(), 90, 5, 5)

	for i := 0; i < 5; i++ {
		p.Nudge(Left)
	}
	if p.Target != 10 {
		t.Errorf("after 5 lefts Target = %v, want 10", p.Target)
	}

	for i := 0; i < 20; i++ {
		p.Nudge(Right)
	}
	if p.Target != 90 {
		t.Errorf("after 20 rights Target = %v, want 90", p.Target)
	}
}

func TestPlayerNudgeModifier(t *testing.T) {
	p := NewPlayer(classicMovement(), 90, 5, 5)

	p.Nudge(Right)
	if p.Target != 60 {
		t.Fatalf("plain step Target = %v, want 60", p.Target)
	}

	p.ModifierHeld = true
	p.Nudge(Left)
	if p.Target != 40 {
		t.Errorf("boosted step Target = %v, want 40", p.Target)
	}
}

func TestPlayerTargetStaysInBoundsRandomized(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	p := NewPlayer(classicMovement(), 90, 5, 5)

	for i := 0; i < 10000; i++ {
		p.ModifierHeld = rng.Intn(2) == 0
		if rng.Intn(2) == 0 {
			p.Nudge(Left)
		} else {
			p.Nudge(Right)
		}
		if p.Target < 10 || p.Target > 90 {
			t.Fatalf("iteration %d: Target %v escaped [10, 90]", i, p.Target)
		}
	}
}

func TestPlayerSmooth(t *testing.T) {
	p := NewPlayer(classicMovement(), 90, 5, 5)
	p.Target = 10

	prev := p.Position
	p.Smooth()
	if want := prev + 0.1*(10-prev); p.Position != want {
		t.Errorf("Position = %v, want %v", p.Position, want)
	}

	r := p.Rect()
	if r.X != p.Position || r.Y != 90 || r.W != 5 || r.H != 5 {
		t.Errorf("Rect = %+v", r)
	}
}

func TestObstacleResetAndAdvance(t *testing.T) {
	rng := &seqRand{values: []float64{0.5, 0.25}}
	o := NewObstacle(5, 5, 90)

	o.Reset(0.5, rng)
	if o.Y != 0 || o.Speed != 0.5 || o.Lane != 45 {
		t.Fatalf("after Reset: %+v", o)
	}

	o.Y = 99.8
	if passed := o.Advance(0.01, rng); !passed {
		t.Fatal("expected obstacle to wrap past the bottom")
	}
	if o.Y != 0 {
		t.Errorf("Y after wrap = %v, want 0", o.Y)
	}
	if o.Lane != 22.5 {
		t.Errorf("Lane after wrap = %v, want 22.5", o.Lane)
	}
	if o.Speed != 0.51 {
		t.Errorf("Speed after wrap = %v, want 0.51", o.Speed)
	}

	if passed := o.Advance(0.01, rng); passed {
		t.Error("did not expect a second wrap")
	}
	if o.Y != 0.51 {
		t.Errorf("Y = %v, want 0.51", o.Y)
	}
}

func TestObstacleExactlyAtBottomDoesNotWrap(t *testing.T) {
	rng := &seqRand{values: []float64{0}}
	o := NewObstacle(5, 5, 90)
	o.Reset(1, rng)
	o.Y = 99

	if o.Advance(0, rng) {
		t.Error("Y == 100 must not wrap, only Y > 100 does")
	}
	if !o.Advance(0, rng) {
		t.Error("Y == 101 must wrap")
	}
}

func TestPixelFieldSpawnAndMove(t *testing.T) {
	// spawn check, x, speed
	rng := &seqRand{values: []float64{0.05, 0.5, 0.5, 0.9}}
	f := NewPixelField(0.1, 0.05, 0.15, rng)

	f.Step()
	if f.Len() != 1 {
		t.Fatalf("Len = %d, want 1", f.Len())
	}
	p := f.Pixels()[0]
	if p.X != 50 {
		t.Errorf("X = %v, want 50", p.X)
	}
	if p.Speed < 0.0999 || p.Speed > 0.1001 {
		t.Errorf("Speed = %v, want 0.1", p.Speed)
	}
	if p.Y != p.Speed {
		t.Errorf("a fresh pixel should move on its spawn frame: Y = %v", p.Y)
	}

	// Remaining draws are 0.9: no more spawns.
	f.Step()
	if f.Len() != 1 {
		t.Errorf("Len = %d, want 1", f.Len())
	}
}

func TestPixelFieldRemovesFallenPixels(t *testing.T) {
	rng := &seqRand{values: []float64{0.9}}
	f := NewPixelField(0.1, 0.05, 0.15, rng)
	f.pixels = append(f.pixels,
		Pixel{X: 1, Y: 99.95, Speed: 0.1},
		Pixel{X: 2, Y: 10, Speed: 0.1},
		Pixel{X: 3, Y: 99.5, Speed: 0.01},
	)

	f.Step()

	if f.Len() != 2 {
		t.Fatalf("Len = %d, want 2", f.Len())
	}
	for _, p := range f.Pixels() {
		if p.Y > 100 {
			t.Errorf("pixel %+v should have been culled", p)
		}
	}
	if f.Pixels()[0].X != 2 || f.Pixels()[1].X != 3 {
		t.Errorf("spawn order not preserved: %+v", f.Pixels())
	}
}

func TestPixelFieldSpawnRate(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	// Zero speed keeps every pixel alive, so Len counts spawns.
	f := NewPixelField(0.1, 0, 0, rng)

	const frames = 10000
	for i := 0; i < frames; i++ {
		f.Step()
	}

	got := float64(f.Len())
	want := 0.1 * frames
	if got < want*0.85 || got > want*1.15 {
		t.Errorf("spawned %v pixels over %d frames, want about %v", got, frames, want)
	}
}

func TestPixelFieldSpeedRange(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	f := NewPixelField(1, 0.07, 0.17, rng)

	for i := 0; i < 500; i++ {
		f.Step()
		for _, p := range f.Pixels() {
			if p.Speed < 0.07 || p.Speed > 0.17 {
				t.Fatalf("speed %v outside [0.07, 0.17]", p.Speed)
			}
			if p.X < 0 || p.X > 100 {
				t.Fatalf("x %v outside [0, 100]", p.X)
			}
		}
	}
}
