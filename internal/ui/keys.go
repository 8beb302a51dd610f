package ui

import (
	"slices"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/pixeladventure/internal/input"
)

// DefaultReleaseDelay is how long a key must stay quiet before it counts as
// released.
const DefaultReleaseDelay = 150 * time.Millisecond

// translateKey maps a terminal key event to a game key.
func translateKey(ev *tcell.EventKey) (input.Key, bool) {
	switch ev.Key() {
	case tcell.KeyUp:
		return input.KeyUp, true
	case tcell.KeyDown:
		return input.KeyDown, true
	case tcell.KeyLeft:
		return input.KeyLeft, true
	case tcell.KeyRight:
		return input.KeyRight, true
	case tcell.KeyEnter:
		return input.KeyEnter, true
	case tcell.KeyEscape:
		return input.KeyEscape, true
	case tcell.KeyRune:
		if ev.Rune() == ' ' {
			return input.KeySpace, true
		}
		return input.Rune(ev.Rune()), true
	}
	return "", false
}

// keyTracker turns the terminal's stream of key presses and auto-repeats into
// edges. The first press of a key is a down edge; repeats only refresh it; a
// key that stays quiet for the release delay gets an up edge.
type keyTracker struct {
	delay time.Duration
	held  map[input.Key]time.Time
}

func newKeyTracker(delay time.Duration) *keyTracker {
	if delay <= 0 {
		delay = DefaultReleaseDelay
	}
	return &keyTracker{delay: delay, held: make(map[input.Key]time.Time)}
}

// press records a key seen at now and reports whether it is a new down edge.
func (t *keyTracker) press(key input.Key, now time.Time) bool {
	_, down := t.held[key]
	t.held[key] = now
	return !down
}

// expire returns up edges, ordered by key, for every key quiet since before
// now minus the delay.
func (t *keyTracker) expire(now time.Time) []input.Event {
	var keys []input.Key
	for key, last := range t.held {
		if now.Sub(last) >= t.delay {
			keys = append(keys, key)
		}
	}
	for _, key := range keys {
		delete(t.held, key)
	}
	return ups(keys)
}

// releaseAll returns up edges, ordered by key, for every held key.
func (t *keyTracker) releaseAll() []input.Event {
	keys := make([]input.Key, 0, len(t.held))
	for key := range t.held {
		keys = append(keys, key)
	}
	clear(t.held)
	return ups(keys)
}

func ups(keys []input.Key) []input.Event {
	if len(keys) == 0 {
		return nil
	}
	slices.Sort(keys)
	events := make([]input.Event, len(keys))
	for i, key := range keys {
		events[i] = input.Up(key)
	}
	return events
}

// Held reports how many keys are currently considered down.
func (t *keyTracker) Held() int { return len(t.held) }
