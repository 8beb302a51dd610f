// Package input provides edge-triggered keyboard bindings shared by every scene.
package input

import "unicode"

// Key identifies a physical key. Names follow the browser KeyboardEvent.key
// values so printable characters map to themselves.
type Key string

const (
	KeyUp     Key = "ArrowUp"
	KeyDown   Key = "ArrowDown"
	KeyLeft   Key = "ArrowLeft"
	KeyRight  Key = "ArrowRight"
	KeyEnter  Key = "Enter"
	KeySpace  Key = " "
	KeyEscape Key = "Escape"
)

// Rune returns the key for a printable character. Letters are folded to lower
// case so a held shift does not change which binding receives the edge.
func Rune(r rune) Key {
	return Key(string(unicode.ToLower(r)))
}

// String returns a readable key name.
func (k Key) String() string {
	if k == KeySpace {
		return "Space"
	}
	return string(k)
}

// EdgeKind is the direction of a key transition.
type EdgeKind int

const (
	// EdgeDown is raised when a key goes down.
	EdgeDown EdgeKind = iota
	// EdgeUp is raised when a key is released.
	EdgeUp
)

// String returns a human-readable edge name.
func (e EdgeKind) String() string {
	switch e {
	case EdgeDown:
		return "down"
	case EdgeUp:
		return "up"
	default:
		return "unknown"
	}
}

// Event is a single key transition raised by an input source.
type Event struct {
	Key  Key
	Kind EdgeKind
}

// Down builds a key-down event.
func Down(k Key) Event { return Event{Key: k, Kind: EdgeDown} }

// Up builds a key-up event.
func Up(k Key) Event { return Event{Key: k, Kind: EdgeUp} }
