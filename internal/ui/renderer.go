package ui

import (
	"image/color"
	"math"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/pixeladventure/internal/render"
)

// cell is one terminal character cell of the frame being composed.
type cell struct {
	bg color.RGBA
	fg color.RGBA
	ch rune
}

// Renderer scales the render tree onto the terminal grid. Shapes paint cell
// backgrounds; text paints characters over whatever is beneath it.
type Renderer struct {
	screen *Screen
	cells  []cell
	cols   int
	rows   int
}

// NewRenderer creates a new renderer for the given screen.
func NewRenderer(screen *Screen) *Renderer {
	return &Renderer{screen: screen}
}

// Render draws the tree rooted at root to the screen.
func (r *Renderer) Render(root *render.Node) {
	r.resize()
	for i := range r.cells {
		r.cells[i] = cell{bg: render.Black, fg: render.White, ch: ' '}
	}

	sx := float64(render.Width) / float64(r.cols)
	sy := float64(render.Height) / float64(r.rows)

	root.Walk(func(n *render.Node, x, y float64) {
		w, h := n.Size()
		switch n.Shape() {
		case render.ShapeRect:
			r.fill(x, y, x+w, y+h, sx, sy, n.Fill(), func(float64, float64) bool { return true })
		case render.ShapeCircle:
			r.fill(x-w, y-w, x+w, y+w, sx, sy, n.Fill(), func(px, py float64) bool {
				return math.Hypot(px-x, py-y) <= w
			})
		case render.ShapeTriangle:
			top, bottom := y-h/2, y+h/2
			r.fill(x-w/2, top, x+w/2, bottom, sx, sy, n.Fill(), func(px, py float64) bool {
				half := w / 2 * (py - top) / h
				return math.Abs(px-x) <= half
			})
		case render.ShapeText:
			r.text(x, y, sx, sy, n.Text(), n.Fill())
		}
	})

	r.flush()
}

func (r *Renderer) resize() {
	cols, rows := r.screen.Size()
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}
	if cols != r.cols || rows != r.rows {
		r.cols, r.rows = cols, rows
		r.cells = make([]cell, cols*rows)
	}
}

// fill paints every cell whose centre lies in the box and passes inside.
func (r *Renderer) fill(x0, y0, x1, y1, sx, sy float64, c color.RGBA, inside func(px, py float64) bool) {
	if c.A == 0 {
		return
	}
	cx0 := max(0, int(math.Floor(x0/sx)))
	cy0 := max(0, int(math.Floor(y0/sy)))
	cx1 := min(r.cols-1, int(math.Ceil(x1/sx)))
	cy1 := min(r.rows-1, int(math.Ceil(y1/sy)))

	for cy := cy0; cy <= cy1; cy++ {
		py := (float64(cy) + 0.5) * sy
		if py < y0 || py >= y1 {
			continue
		}
		for cx := cx0; cx <= cx1; cx++ {
			px := (float64(cx) + 0.5) * sx
			if px < x0 || px >= x1 || !inside(px, py) {
				continue
			}
			cl := &r.cells[cy*r.cols+cx]
			cl.bg = blend(cl.bg, c)
			cl.ch = ' '
		}
	}
}

// text writes s one rune per cell. Each '\n' starts a new row at the
// original column.
func (r *Renderer) text(x, y, sx, sy float64, s string, fg color.RGBA) {
	left := int(math.Round(x / sx))
	cy := int(math.Round(y / sy))
	for i, line := range strings.Split(s, "\n") {
		row := cy + i
		if row < 0 {
			continue
		}
		if row >= r.rows {
			return
		}
		cx := left
		for _, ch := range line {
			if cx >= r.cols {
				break
			}
			if cx >= 0 {
				cl := &r.cells[row*r.cols+cx]
				cl.ch = ch
				cl.fg = fg
			}
			cx++
		}
	}
}

func (r *Renderer) flush() {
	r.screen.Clear()
	for i, cl := range r.cells {
		style := tcell.StyleDefault.Background(toColor(cl.bg)).Foreground(toColor(cl.fg))
		r.screen.SetContent(i%r.cols, i/r.cols, cl.ch, style)
	}
	r.screen.Show()
}

// blend composites src over dst.
func blend(dst, src color.RGBA) color.RGBA {
	if src.A == 0xff {
		return src
	}
	a := float64(src.A) / 0xff
	mix := func(d, s uint8) uint8 {
		return uint8(float64(s)*a + float64(d)*(1-a))
	}
	return color.RGBA{mix(dst.R, src.R), mix(dst.G, src.G), mix(dst.B, src.B), 0xff}
}

func toColor(c color.RGBA) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}
