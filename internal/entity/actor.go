// Package entity provides the things that move or sit on the playfield: the
// player, NPCs, wandering monsters and treasure chests.
package entity

import (
	"math"

	"github.com/samdwyer/pixeladventure/internal/render"
	"github.com/samdwyer/pixeladventure/internal/world"
)

// ActorSize is the side of an actor's collision box.
const ActorSize = 16

// Direction an actor faces.
type Direction int

const (
	FacingDown Direction = iota
	FacingUp
	FacingLeft
	FacingRight
)

// Actor is a character positioned by its centre. Velocity is set by Move and
// applied by Update.
type Actor struct {
	X, Y   float64 // Centre position
	VX, VY float64 // Velocity in pixels per frame unit
	Speed  float64
	Facing Direction
	Moving bool

	// Node, when set, follows the actor's position on Sync.
	Node *render.Node
}

// NewActor creates a stationary actor at (x, y).
func NewActor(x, y, speed float64) *Actor {
	return &Actor{X: x, Y: y, Speed: speed}
}

// Move sets the walking direction. (0, 0) stops the actor.
func (a *Actor) Move(dx, dy float64) {
	a.VX = dx * a.Speed
	a.VY = dy * a.Speed

	if math.Abs(dx) > math.Abs(dy) {
		if dx > 0 {
			a.Facing = FacingRight
		} else {
			a.Facing = FacingLeft
		}
	} else if dy != 0 {
		if dy > 0 {
			a.Facing = FacingDown
		} else {
			a.Facing = FacingUp
		}
	}
	a.Moving = dx != 0 || dy != 0
}

// Stop halts the actor.
func (a *Actor) Stop() {
	a.Move(0, 0)
}

// Update advances the position by velocity × elapsed.
func (a *Actor) Update(elapsed float64) {
	a.X += a.VX * elapsed
	a.Y += a.VY * elapsed
}

// Step moves by velocity × elapsed one axis at a time, undoing any axis move
// that would overlap a wall of layout.
func (a *Actor) Step(elapsed float64, layout *world.Layout) {
	prevX := a.X
	a.X += a.VX * elapsed
	if layout.Blocked(a.Box()) {
		a.X = prevX
	}
	prevY := a.Y
	a.Y += a.VY * elapsed
	if layout.Blocked(a.Box()) {
		a.Y = prevY
	}
}

// Clamp keeps the actor margin pixels inside the playfield.
func (a *Actor) Clamp(margin float64) {
	a.X = world.Clamp(a.X, margin, world.Width-margin)
	a.Y = world.Clamp(a.Y, margin, world.Height-margin)
}

// Box returns the actor's collision box.
func (a *Actor) Box() world.Rect {
	return world.Centered(a.X, a.Y, ActorSize)
}

// DistanceTo returns the straight-line distance between two points.
func (a *Actor) DistanceTo(x, y float64) float64 {
	return math.Hypot(a.X-x, a.Y-y)
}

// Position returns the current x, y coordinates.
func (a *Actor) Position() (float64, float64) {
	return a.X, a.Y
}

// Sync moves the attached node to the actor's position.
func (a *Actor) Sync() {
	if a.Node != nil {
		a.Node.SetPosition(a.X, a.Y)
	}
}
