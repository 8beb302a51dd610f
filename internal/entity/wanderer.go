package entity

import (
	"math"
)

// Wandering behaviour of map monsters.
const (
	WanderInterval = 120 // Frame units between direction changes
	WanderStopOdds = 0.3 // Chance to stand still instead
	WanderMargin   = 20
	WanderSpeed    = 0.5
)

// Roller supplies uniform samples in [0, 1).
type Roller interface {
	Float64() float64
}

// Wanderer is a monster that walks in a random direction and re-decides every
// WanderInterval frame units.
type Wanderer struct {
	*Actor
	EnemyID string // Enemy definition fought on contact

	timer float64
}

// NewWanderer creates a wanderer at (x, y) that fights as enemyID.
func NewWanderer(x, y float64, enemyID string) *Wanderer {
	return &Wanderer{Actor: NewActor(x, y, WanderSpeed), EnemyID: enemyID}
}

// Update moves the wanderer and re-rolls its direction when the timer runs
// out. It stays WanderMargin pixels inside the playfield.
func (w *Wanderer) Update(elapsed float64, rng Roller) {
	w.Actor.Update(elapsed)

	w.timer += elapsed
	if w.timer > WanderInterval {
		w.timer = 0

		angle := rng.Float64() * math.Pi * 2
		dx, dy := math.Cos(angle), math.Sin(angle)
		if rng.Float64() < WanderStopOdds {
			dx, dy = 0, 0
		}
		w.Move(dx, dy)
	}

	w.Clamp(WanderMargin)
}
