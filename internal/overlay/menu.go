package overlay

import (
	"github.com/samdwyer/pixeladventure/internal/render"
)

// Menu is a vertical option list with a wrapping cursor. A disabled menu stays
// on screen but ignores selection input.
type Menu struct {
	name     string
	options  []string
	selected int
	enabled  bool
	visible  bool

	node  *render.Node
	items []*render.Node
}

// NewMenu creates a hidden, enabled menu at (x, y).
func NewMenu(name string, x, y float64, options ...string) *Menu {
	m := &Menu{name: name, options: options, enabled: true}
	m.node = render.NewGroup(name)
	m.node.SetPosition(x, y)
	m.node.Add(render.NewRect(name+".bg", 0, 0, 90, float64(len(options)*lineHeight+10), render.Panel))
	for i := range options {
		m.items = append(m.items, m.node.Add(render.NewText(name+".item", 6, float64(5+i*lineHeight), "", render.White)))
	}
	m.node.SetVisible(false)
	m.refresh()
	return m
}

func (m *Menu) Name() string { return m.name }
func (m *Menu) Visible() bool { return m.visible }

func (m *Menu) Show() {
	m.visible = true
	m.node.SetVisible(true)
}

func (m *Menu) Hide() {
	m.visible = false
	m.node.SetVisible(false)
}

// Enabled reports whether the menu accepts input.
func (m *Menu) Enabled() bool { return m.enabled }

// SetEnabled toggles input handling and dims the options when disabled.
func (m *Menu) SetEnabled(v bool) {
	m.enabled = v
	m.refresh()
}

// Up moves the cursor up, wrapping to the last option.
func (m *Menu) Up() {
	m.move(-1)
}

// Down moves the cursor down, wrapping to the first option.
func (m *Menu) Down() {
	m.move(1)
}

func (m *Menu) move(delta int) {
	if !m.enabled || len(m.options) == 0 {
		return
	}
	n := len(m.options)
	m.selected = ((m.selected+delta)%n + n) % n
	m.refresh()
}

// Index returns the cursor position.
func (m *Menu) Index() int { return m.selected }

// Selected returns the highlighted option, or "" for an empty menu.
func (m *Menu) Selected() string {
	if len(m.options) == 0 {
		return ""
	}
	return m.options[m.selected]
}

// Node returns the menu's render node.
func (m *Menu) Node() *render.Node { return m.node }

func (m *Menu) refresh() {
	for i, item := range m.items {
		label := "  " + m.options[i]
		fill := render.White
		if i == m.selected {
			label = "> " + m.options[i]
			fill = render.Highlight
		}
		if !m.enabled {
			fill = render.Gray
		}
		item.SetText(label)
		item.SetFill(fill)
	}
}
