package ui

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/samdwyer/pixeladventure/internal/input"
	"github.com/samdwyer/pixeladventure/internal/render"
)

type fakeGame struct {
	stage    *render.Node
	bound    map[input.Key]bool
	keys     []input.Event
	ticks    []float64
	running  bool
	stopAt   int
	tickErr  error
	keyCalls int
}

func newFakeGame(bound ...input.Key) *fakeGame {
	g := &fakeGame{stage: render.NewGroup("stage"), bound: map[input.Key]bool{}, running: true}
	for _, k := range bound {
		g.bound[k] = true
	}
	return g
}

func (g *fakeGame) Tick(_ context.Context, elapsed float64) error {
	g.ticks = append(g.ticks, elapsed)
	if g.stopAt > 0 && len(g.ticks) >= g.stopAt {
		g.running = false
	}
	return g.tickErr
}

func (g *fakeGame) HandleKey(_ context.Context, ev input.Event) (bool, error) {
	g.keyCalls++
	g.keys = append(g.keys, ev)
	return g.bound[ev.Key], nil
}

func (g *fakeGame) Stage() *render.Node { return g.stage }
func (g *fakeGame) Running() bool       { return g.running }
func (g *fakeGame) Stop()               { g.running = false }

func newTestTerminal(t *testing.T) *Terminal {
	t.Helper()
	return NewTerminal(newSimScreen(t), Options{
		FrameRate:    60,
		ReleaseDelay: 100 * time.Millisecond,
		Logger:       zaptest.NewLogger(t),
	})
}

func keyEvent(k tcell.Key, r rune) *tcell.EventKey {
	return tcell.NewEventKey(k, r, tcell.ModNone)
}

func TestTerminalPressAndSynthesizedRelease(t *testing.T) {
	term := newTestTerminal(t)
	g := newFakeGame(input.KeyLeft)
	ctx := context.Background()
	start := time.Unix(100, 0)
	term.last = start

	require.NoError(t, term.handleEvent(ctx, g, keyEvent(tcell.KeyLeft, 0), start))
	require.NoError(t, term.handleEvent(ctx, g, keyEvent(tcell.KeyLeft, 0), start.Add(30*time.Millisecond)))
	assert.Equal(t, []input.Event{input.Down(input.KeyLeft)}, g.keys)

	require.NoError(t, term.step(ctx, g, start.Add(50*time.Millisecond)))
	assert.Len(t, g.keys, 1)

	require.NoError(t, term.step(ctx, g, start.Add(200*time.Millisecond)))
	assert.Equal(t, []input.Event{input.Down(input.KeyLeft), input.Up(input.KeyLeft)}, g.keys)
}

func TestTerminalStepElapsedInFrames(t *testing.T) {
	term := newTestTerminal(t)
	g := newFakeGame()
	start := time.Unix(100, 0)
	term.last = start

	require.NoError(t, term.step(context.Background(), g, start.Add(time.Second/60)))
	require.NoError(t, term.step(context.Background(), g, start.Add(time.Second/60+time.Second/20)))

	require.Len(t, g.ticks, 2)
	assert.InDelta(t, 1.0, g.ticks[0], 0.01)
	assert.InDelta(t, 3.0, g.ticks[1], 0.01)
}

func TestTerminalEscapeQuitsWhenUnbound(t *testing.T) {
	ctx := context.Background()
	now := time.Unix(100, 0)

	t.Run("unbound", func(t *testing.T) {
		term := newTestTerminal(t)
		g := newFakeGame()
		require.NoError(t, term.handleEvent(ctx, g, keyEvent(tcell.KeyEscape, 0), now))
		assert.False(t, g.Running())
	})

	t.Run("bound", func(t *testing.T) {
		term := newTestTerminal(t)
		g := newFakeGame(input.KeyEscape)
		require.NoError(t, term.handleEvent(ctx, g, keyEvent(tcell.KeyEscape, 0), now))
		assert.True(t, g.Running())
	})
}

func TestTerminalCtrlCAlwaysQuits(t *testing.T) {
	term := newTestTerminal(t)
	g := newFakeGame(input.KeyEscape)

	require.NoError(t, term.handleEvent(context.Background(), g, keyEvent(tcell.KeyCtrlC, 0), time.Now()))

	assert.False(t, g.Running())
	assert.Zero(t, g.keyCalls)
}

func TestTerminalFocusLossReleasesKeys(t *testing.T) {
	term := newTestTerminal(t)
	g := newFakeGame(input.KeyUp)
	ctx := context.Background()
	now := time.Unix(100, 0)

	require.NoError(t, term.handleEvent(ctx, g, keyEvent(tcell.KeyUp, 0), now))
	require.NoError(t, term.handleEvent(ctx, g, tcell.NewEventFocus(false), now))

	assert.Equal(t, []input.Event{input.Down(input.KeyUp), input.Up(input.KeyUp)}, g.keys)
}

func TestTerminalRunStopsWithGame(t *testing.T) {
	term := newTestTerminal(t)
	g := newFakeGame()
	g.stopAt = 3
	g.stage.Add(render.NewText("label", 0, 0, "OK", render.White))

	done := make(chan error, 1)
	go func() { done <- term.Run(context.Background(), g) }()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("run did not return")
	}
	assert.Len(t, g.ticks, 3)
	r, _, _ := cellAt(term.screen, 0, 0)
	assert.Equal(t, 'O', r)
}

func TestTerminalRunReturnsTickError(t *testing.T) {
	term := newTestTerminal(t)
	g := newFakeGame()
	g.tickErr = errors.New("boom")

	err := term.Run(context.Background(), g)

	require.Error(t, err)
	assert.ErrorIs(t, err, g.tickErr)
}

func TestTerminalRunHonoursContext(t *testing.T) {
	term := newTestTerminal(t)
	g := newFakeGame()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.NoError(t, term.Run(ctx, g))
}
