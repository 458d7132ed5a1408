package object

import "github.com/tomz197/dodgefall/internal/physics"

// StartPosition is where the player sits when the process starts.
const StartPosition = 50.0

// Movement configures how input and smoothing move the player.
type Movement struct {
	Step      float64 // Target shift per direction press
	BoostStep float64 // Target shift per press while the modifier is held
	Deadzone  float64 // Margin at each field edge the target may not enter
	Smoothing float64 // Fraction of the remaining distance covered per frame
}

// Player is the horizontally moving element at the bottom of the field.
type Player struct {
	Position     float64 // Rendered horizontal percent
	Target       float64 // Desired horizontal percent, always inside the deadzone bounds
	ModifierHeld bool    // Whether the boost modifier is currently down

	Top    float64 // Fixed vertical position of the rect
	Width  float64
	Height float64

	move Movement
}

// NewPlayer creates a player centered on the field.
func NewPlayer(move Movement, top, width, height float64) *Player {
	return &Player{
		Position: StartPosition,
		Target:   StartPosition,
		Top:      top,
		Width:    width,
		Height:   height,
		move:     move,
	}
}

// Nudge shifts the target one step in dir and clamps it to the deadzone bounds.
func (p *Player) Nudge(dir Direction) {
	step := p.move.Step
	if p.ModifierHeld {
		step = p.move.BoostStep
	}
	p.Target = physics.Clamp(p.Target+float64(dir)*step, p.move.Deadzone, physics.FieldSize-p.move.Deadzone)
}

// Smooth advances the rendered position toward the target for one frame.
func (p *Player) Smooth() {
	p.Position = physics.Approach(p.Position, p.Target, p.move.Smoothing)
}

// Rect returns the player's bounding box.
func (p *Player) Rect() physics.Rect {
	return physics.Rect{X: p.Position, Y: p.Top, W: p.Width, H: p.Height}
}
