// Package world provides the playfield geometry: rectangles for walls and
// trigger zones, and the fixed layouts of each area.
package world

// Rect is an axis-aligned rectangle in playfield pixels.
type Rect struct {
	X, Y          float64 // Top-left corner position
	Width, Height float64 // Dimensions of the rectangle
}

// Centered returns a size×size box centred on (cx, cy).
func Centered(cx, cy, size float64) Rect {
	return Rect{X: cx - size/2, Y: cy - size/2, Width: size, Height: size}
}

// Center returns the center coordinates of the rectangle.
func (r Rect) Center() (float64, float64) {
	return r.X + r.Width/2, r.Y + r.Height/2
}

// Contains returns true if the given point is inside the rectangle.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x < r.X+r.Width && y >= r.Y && y < r.Y+r.Height
}

// Intersects returns true if this rectangle overlaps with another one.
func (r Rect) Intersects(other Rect) bool {
	return r.X < other.X+other.Width &&
		r.X+r.Width > other.X &&
		r.Y < other.Y+other.Height &&
		r.Y+r.Height > other.Y
}

// Clamp limits a value to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
