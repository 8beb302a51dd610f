// Package dialog implements the typewriter text box used for narration,
// conversations and battle messages.
package dialog

import "math"

// DefaultSpeed is the reveal rate in characters per frame unit.
const DefaultSpeed = 2.0

// State is the phase of the dialog box.
type State int

const (
	// StateClosed means no session is showing.
	StateClosed State = iota
	// StateTyping means the current page is being revealed.
	StateTyping
	// StateWaiting means the page is fully shown and the box waits for Advance.
	StateWaiting
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateTyping:
		return "typing"
	case StateWaiting:
		return "waiting_for_input"
	default:
		return "unknown"
	}
}

// Outcome tells a session's completion callback how the session ended.
type Outcome int

const (
	// OutcomeCompleted means the reader advanced past the final page.
	OutcomeCompleted Outcome = iota
	// OutcomeDismissed means the box was force-closed.
	OutcomeDismissed
	// OutcomeSuperseded means another session was opened on top of it.
	OutcomeSuperseded
)

// String returns a human-readable outcome name.
func (o Outcome) String() string {
	switch o {
	case OutcomeCompleted:
		return "completed"
	case OutcomeDismissed:
		return "dismissed"
	case OutcomeSuperseded:
		return "superseded"
	default:
		return "unknown"
	}
}

// Session is one run of the box from Open to close. Its completion callback is
// fixed when the session is opened and fires exactly once.
type Session struct {
	pages    [][]rune
	speaker  string
	page     int
	progress float64
	state    State
	onDone   func(Outcome)
	outcome  Outcome
}

// Speaker returns the name shown above the text.
func (s *Session) Speaker() string { return s.speaker }

// Page returns the index of the current page.
func (s *Session) Page() int { return s.page }

// PageCount returns the number of pages.
func (s *Session) PageCount() int { return len(s.pages) }

// Progress returns the fractional number of revealed characters.
func (s *Session) Progress() float64 { return s.progress }

// State returns the session's state. Ended sessions report StateClosed.
func (s *Session) State() State { return s.state }

// Ended reports whether the session has closed.
func (s *Session) Ended() bool { return s.state == StateClosed }

// Outcome returns how the session ended. Only meaningful once Ended.
func (s *Session) Outcome() Outcome { return s.outcome }

func (s *Session) pageLen() float64 {
	return float64(len(s.pages[s.page]))
}

// Box runs at most one session at a time.
type Box struct {
	speed   float64
	current *Session
}

// NewBox creates a closed dialog box revealing speed characters per frame
// unit. A non-positive speed selects DefaultSpeed.
func NewBox(speed float64) *Box {
	if speed <= 0 {
		speed = DefaultSpeed
	}
	return &Box{speed: speed}
}

// Name identifies the box among a scene's overlays.
func (b *Box) Name() string { return "dialog" }

// Open starts a new session showing pages. An active session is superseded.
// An empty page list shows a single blank page.
func (b *Box) Open(pages []string, speaker string, onDone func(Outcome)) *Session {
	if b.current != nil {
		b.end(OutcomeSuperseded)
	}

	s := &Session{
		speaker: speaker,
		state:   StateTyping,
		onDone:  onDone,
	}
	for _, p := range pages {
		s.pages = append(s.pages, []rune(p))
	}
	if len(s.pages) == 0 {
		s.pages = [][]rune{{}}
	}
	b.current = s
	return s
}

// Update advances the reveal by speed × elapsed while typing.
func (b *Box) Update(elapsed float64) {
	s := b.current
	if s == nil || s.state != StateTyping || elapsed <= 0 {
		return
	}
	s.progress += b.speed * elapsed
	if s.progress >= s.pageLen() {
		s.progress = s.pageLen()
		s.state = StateWaiting
	}
}

// Advance handles the reader's continue input. While typing it reveals the
// whole page; while waiting it turns the page or completes the session. It
// returns false when no session is open.
func (b *Box) Advance() bool {
	s := b.current
	if s == nil {
		return false
	}

	switch s.state {
	case StateTyping:
		s.progress = s.pageLen()
		s.state = StateWaiting
	case StateWaiting:
		if s.page < len(s.pages)-1 {
			s.page++
			s.progress = 0
			s.state = StateTyping
		} else {
			b.end(OutcomeCompleted)
		}
	}
	return true
}

// Dismiss force-closes the active session. It returns false when the box was
// already closed.
func (b *Box) Dismiss() bool {
	if b.current == nil {
		return false
	}
	b.end(OutcomeDismissed)
	return true
}

// Hide force-closes the box; it lets the box sit in an overlay registry.
func (b *Box) Hide() { b.Dismiss() }

// Visible reports whether a session is showing.
func (b *Box) Visible() bool { return b.current != nil }

// State returns the state of the active session, or StateClosed.
func (b *Box) State() State {
	if b.current == nil {
		return StateClosed
	}
	return b.current.state
}

// Session returns the active session, or nil.
func (b *Box) Session() *Session { return b.current }

// Speaker returns the active speaker name.
func (b *Box) Speaker() string {
	if b.current == nil {
		return ""
	}
	return b.current.speaker
}

// Text returns the current page truncated to the revealed character count.
func (b *Box) Text() string {
	s := b.current
	if s == nil {
		return ""
	}
	page := s.pages[s.page]
	n := int(math.Floor(s.progress))
	if n > len(page) {
		n = len(page)
	}
	return string(page[:n])
}

// ContinueVisible reports whether the continue marker should be drawn.
func (b *Box) ContinueVisible() bool {
	return b.State() == StateWaiting
}

func (b *Box) end(outcome Outcome) {
	s := b.current
	b.current = nil
	s.state = StateClosed
	s.outcome = outcome

	if cb := s.onDone; cb != nil {
		s.onDone = nil
		cb(outcome)
	}
}
