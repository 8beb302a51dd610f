// Package gfx runs the game in a desktop window using ebiten.
package gfx

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"go.uber.org/zap"

	"github.com/samdwyer/pixeladventure/internal/input"
	"github.com/samdwyer/pixeladventure/internal/render"
)

const title = "Pixel Adventure"

// Game is what the window drives.
type Game interface {
	Tick(ctx context.Context, elapsed float64) error
	HandleKey(ctx context.Context, ev input.Event) (bool, error)
	Stage() *render.Node
	Running() bool
	Stop()
}

// Options tunes the window.
type Options struct {
	Scale     int // Window pixels per logical pixel
	FrameRate int // Ticks per second
	Logger    *zap.Logger
}

// Window adapts a Game to ebiten's Update/Draw loop.
type Window struct {
	ctx     context.Context
	game    Game
	opts    Options
	logger  *zap.Logger
	keys    []ebiten.Key
	white   *ebiten.Image
	elapsed float64
}

// NewWindow creates a window frontend for g.
func NewWindow(ctx context.Context, g Game, opts Options) *Window {
	if opts.Scale < 1 {
		opts.Scale = 1
	}
	if opts.FrameRate <= 0 {
		opts.FrameRate = 60
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return &Window{
		ctx:     ctx,
		game:    g,
		opts:    opts,
		logger:  opts.Logger.Named("window"),
		elapsed: 60 / float64(opts.FrameRate),
	}
}

// Run opens the window and blocks until the game stops or the window closes.
func (w *Window) Run() error {
	ebiten.SetWindowSize(render.Width*w.opts.Scale, render.Height*w.opts.Scale)
	ebiten.SetWindowTitle(title)
	ebiten.SetTPS(w.opts.FrameRate)

	if err := ebiten.RunGame(w); err != nil && !errors.Is(err, ebiten.Termination) {
		return fmt.Errorf("run window: %w", err)
	}
	w.logger.Info("window closed")
	return nil
}

// Update feeds this tick's key edges to the game and advances it.
func (w *Window) Update() error {
	if err := w.ctx.Err(); err != nil || !w.game.Running() {
		return ebiten.Termination
	}

	w.keys = inpututil.AppendJustPressedKeys(w.keys[:0])
	for _, k := range w.keys {
		key, ok := translateKey(k)
		if !ok {
			continue
		}
		handled, err := w.game.HandleKey(w.ctx, input.Down(key))
		if err != nil {
			return fmt.Errorf("press %s: %w", key, err)
		}
		if !handled && key == input.KeyEscape {
			w.logger.Info("quit requested")
			w.game.Stop()
			return ebiten.Termination
		}
	}

	w.keys = inpututil.AppendJustReleasedKeys(w.keys[:0])
	for _, k := range w.keys {
		if key, ok := translateKey(k); ok {
			if _, err := w.game.HandleKey(w.ctx, input.Up(key)); err != nil {
				return fmt.Errorf("release %s: %w", key, err)
			}
		}
	}

	if err := w.game.Tick(w.ctx, w.elapsed); err != nil {
		return fmt.Errorf("tick: %w", err)
	}
	return nil
}

// Draw paints the render tree.
func (w *Window) Draw(screen *ebiten.Image) {
	screen.Fill(render.Black)
	w.game.Stage().Walk(func(n *render.Node, x, y float64) {
		width, height := n.Size()
		switch n.Shape() {
		case render.ShapeRect:
			vector.DrawFilledRect(screen, float32(x), float32(y), float32(width), float32(height), n.Fill(), false)
		case render.ShapeCircle:
			vector.DrawFilledCircle(screen, float32(x), float32(y), float32(width), n.Fill(), true)
		case render.ShapeTriangle:
			w.drawTriangle(screen, x, y, width, height, n.Fill())
		case render.ShapeText:
			ebitenutil.DebugPrintAt(screen, n.Text(), int(x), int(y))
		}
	})
}

// Layout keeps the logical playfield size; ebiten scales it to the window.
func (w *Window) Layout(_, _ int) (int, int) {
	return render.Width, render.Height
}

func (w *Window) drawTriangle(dst *ebiten.Image, x, y, width, height float64, c color.RGBA) {
	if w.white == nil {
		img := ebiten.NewImage(3, 3)
		img.Fill(color.White)
		w.white = img.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
	}

	var path vector.Path
	path.MoveTo(float32(x), float32(y-height/2))
	path.LineTo(float32(x+width/2), float32(y+height/2))
	path.LineTo(float32(x-width/2), float32(y+height/2))
	path.Close()

	vs, is := path.AppendVerticesAndIndicesForFilling(nil, nil)
	for i := range vs {
		vs[i].SrcX, vs[i].SrcY = 1, 1
		vs[i].ColorR = float32(c.R) / 0xff
		vs[i].ColorG = float32(c.G) / 0xff
		vs[i].ColorB = float32(c.B) / 0xff
		vs[i].ColorA = float32(c.A) / 0xff
	}
	dst.DrawTriangles(vs, is, w.white, &ebiten.DrawTrianglesOptions{})
}

// translateKey maps an ebiten key to a game key. Letters map to their
// lower-case rune.
func translateKey(k ebiten.Key) (input.Key, bool) {
	switch k {
	case ebiten.KeyArrowUp:
		return input.KeyUp, true
	case ebiten.KeyArrowDown:
		return input.KeyDown, true
	case ebiten.KeyArrowLeft:
		return input.KeyLeft, true
	case ebiten.KeyArrowRight:
		return input.KeyRight, true
	case ebiten.KeyEnter, ebiten.KeyNumpadEnter:
		return input.KeyEnter, true
	case ebiten.KeySpace:
		return input.KeySpace, true
	case ebiten.KeyEscape:
		return input.KeyEscape, true
	}
	if s := k.String(); len(s) == 1 && s[0] >= 'A' && s[0] <= 'Z' {
		return input.Rune(rune(s[0])), true
	}
	return "", false
}
