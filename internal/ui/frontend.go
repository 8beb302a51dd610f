package ui

import (
	"context"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"github.com/samdwyer/pixeladventure/internal/input"
	"github.com/samdwyer/pixeladventure/internal/render"
)

// Game is what a frontend drives.
type Game interface {
	Tick(ctx context.Context, elapsed float64) error
	HandleKey(ctx context.Context, ev input.Event) (bool, error)
	Stage() *render.Node
	Running() bool
	Stop()
}

// Options tunes the terminal frontend.
type Options struct {
	FrameRate    int           // Ticks per second
	ReleaseDelay time.Duration // Quiet period before a key counts as released
	Logger       *zap.Logger
}

// Terminal runs a game in a tcell screen.
type Terminal struct {
	screen   *Screen
	renderer *Renderer
	keys     *keyTracker
	frame    time.Duration
	logger   *zap.Logger
	last     time.Time
}

// NewTerminal creates a terminal frontend drawing to screen.
func NewTerminal(screen *Screen, opts Options) *Terminal {
	if opts.FrameRate <= 0 {
		opts.FrameRate = 60
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return &Terminal{
		screen:   screen,
		renderer: NewRenderer(screen),
		keys:     newKeyTracker(opts.ReleaseDelay),
		frame:    time.Second / time.Duration(opts.FrameRate),
		logger:   opts.Logger.Named("terminal"),
	}
}

// Run ticks and draws g at the frame rate and feeds it key edges until the
// game stops or ctx ends. The caller closes the screen afterwards.
func (t *Terminal) Run(ctx context.Context, g Game) error {
	events := make(chan tcell.Event)
	done := make(chan struct{})
	defer close(done)
	go func() {
		for {
			ev := t.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()

	ticker := time.NewTicker(t.frame)
	defer ticker.Stop()

	t.last = time.Now()
	t.renderer.Render(g.Stage())
	for g.Running() {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-events:
			if err := t.handleEvent(ctx, g, ev, time.Now()); err != nil {
				return err
			}
		case now := <-ticker.C:
			if err := t.step(ctx, g, now); err != nil {
				return err
			}
		}
	}
	t.logger.Info("terminal frontend stopped")
	return nil
}

// step releases quiet keys, advances the game by the wall time since the last
// step and redraws.
func (t *Terminal) step(ctx context.Context, g Game, now time.Time) error {
	for _, ev := range t.keys.expire(now) {
		if _, err := g.HandleKey(ctx, ev); err != nil {
			return fmt.Errorf("release %s: %w", ev.Key, err)
		}
	}

	elapsed := now.Sub(t.last).Seconds() * 60
	t.last = now
	if err := g.Tick(ctx, elapsed); err != nil {
		return fmt.Errorf("tick: %w", err)
	}
	t.renderer.Render(g.Stage())
	return nil
}

func (t *Terminal) handleEvent(ctx context.Context, g Game, ev tcell.Event, now time.Time) error {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyCtrlC {
			g.Stop()
			return nil
		}
		key, ok := translateKey(ev)
		if !ok || !t.keys.press(key, now) {
			return nil
		}
		handled, err := g.HandleKey(ctx, input.Down(key))
		if err != nil {
			return fmt.Errorf("press %s: %w", key, err)
		}
		if !handled && key == input.KeyEscape {
			t.logger.Info("quit requested")
			g.Stop()
		}
	case *tcell.EventResize:
		t.screen.Sync()
		t.renderer.Render(g.Stage())
	case *tcell.EventFocus:
		// Keys held while focus leaves never repeat again.
		if !ev.Focused {
			for _, up := range t.keys.releaseAll() {
				if _, err := g.HandleKey(ctx, up); err != nil {
					return fmt.Errorf("release %s: %w", up.Key, err)
				}
			}
		}
	}
	return nil
}
