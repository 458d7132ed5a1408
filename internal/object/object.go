// Package object holds the entities on the play field: the player, the
// falling obstacle and the decorative pixels.
//
// Entities are plain values owned by the game loop. None of them keep a
// reference back to the loop or to each other.
package object

import (
	"math/rand"
	"time"
)

// Rand is the random source entities draw from. *rand.Rand satisfies it.
type Rand interface {
	Float64() float64
}

// NewRand returns a time-seeded random source.
func NewRand() *rand.Rand {
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}

// Direction is a horizontal movement direction.
type Direction int

const (
	Left  Direction = -1
	Right Direction = 1
)
