package overlay

import (
	"strings"

	"github.com/samdwyer/pixeladventure/internal/render"
)

const lineHeight = 12

// Panel is a text overlay whose content is produced when it opens.
type Panel struct {
	name    string
	content func() []string
	lines   []string
	columns int
	visible bool

	node *render.Node
	text *render.Node
}

// NewPanel creates a hidden panel drawn in the given box. content is called
// each time the panel opens.
func NewPanel(name string, x, y, w, h float64, content func() []string) *Panel {
	p := &Panel{name: name, content: content, columns: render.Columns(w - 16)}
	p.node = render.NewGroup(name)
	p.node.SetPosition(x, y)
	p.node.Add(render.NewRect(name+".bg", 0, 0, w, h, render.Panel))
	p.text = p.node.Add(render.NewText(name+".text", 8, 8, "", render.White))
	p.node.SetVisible(false)
	return p
}

func (p *Panel) Name() string { return p.name }

func (p *Panel) Visible() bool { return p.visible }

// Show opens the panel with fresh content. An open panel keeps its content.
func (p *Panel) Show() {
	if p.visible {
		return
	}
	if p.content != nil {
		p.lines = p.content()
	}
	p.text.SetText(render.Wrap(strings.Join(p.lines, "\n"), p.columns))
	p.visible = true
	p.node.SetVisible(true)
}

// Hide closes the panel.
func (p *Panel) Hide() {
	p.visible = false
	p.node.SetVisible(false)
}

// Toggle opens a closed panel or closes an open one. It reports whether the
// panel is now visible.
func (p *Panel) Toggle() bool {
	if p.visible {
		p.Hide()
	} else {
		p.Show()
	}
	return p.visible
}

// Lines returns the content captured when the panel last opened.
func (p *Panel) Lines() []string {
	out := make([]string, len(p.lines))
	copy(out, p.lines)
	return out
}

// Node returns the panel's render node.
func (p *Panel) Node() *render.Node { return p.node }
