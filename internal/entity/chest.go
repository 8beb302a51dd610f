package entity

import (
	"math"

	"github.com/samdwyer/pixeladventure/internal/state"
)

// Chest is a treasure chest that can be opened once.
type Chest struct {
	X, Y     float64
	Contents state.Item

	open bool
}

// NewChest creates a closed chest at (x, y).
func NewChest(x, y float64, contents state.Item) *Chest {
	return &Chest{X: x, Y: y, Contents: contents}
}

// IsOpen reports whether the chest was opened.
func (c *Chest) IsOpen() bool { return c.open }

// Open opens the chest and returns its contents. A second call returns false.
func (c *Chest) Open() (state.Item, bool) {
	if c.open {
		return state.Item{}, false
	}
	c.open = true
	return c.Contents, true
}

// Near reports whether (x, y) is within reach of the chest.
func (c *Chest) Near(x, y, reach float64) bool {
	return math.Hypot(c.X-x, c.Y-y) < reach
}
