// Package render holds the retained node tree that scenes draw into and
// frontends read every frame.
package render

import "image/color"

// Playfield size in logical pixels.
const (
	Width  = 320
	Height = 240
)

// Shape is the kind of primitive a node draws.
type Shape int

const (
	ShapeGroup Shape = iota
	ShapeRect
	ShapeCircle
	ShapeTriangle
	ShapeText
)

// String returns a human-readable shape name.
func (s Shape) String() string {
	switch s {
	case ShapeGroup:
		return "group"
	case ShapeRect:
		return "rect"
	case ShapeCircle:
		return "circle"
	case ShapeTriangle:
		return "triangle"
	case ShapeText:
		return "text"
	default:
		return "unknown"
	}
}

// Node is one element of the tree. Positions are relative to the parent.
// Rects use W×H from the top-left corner; circles are centred on the
// position with radius W; triangles point up inside a W×H box centred on the
// position; text starts at the position.
type Node struct {
	Name string

	shape    Shape
	x, y     float64
	w, h     float64
	fill     color.RGBA
	text     string
	hidden   bool
	parent   *Node
	children []*Node
}

// NewGroup creates an empty container node.
func NewGroup(name string) *Node {
	return &Node{Name: name, shape: ShapeGroup}
}

// NewRect creates a filled rectangle.
func NewRect(name string, x, y, w, h float64, fill color.RGBA) *Node {
	return &Node{Name: name, shape: ShapeRect, x: x, y: y, w: w, h: h, fill: fill}
}

// NewCircle creates a filled circle centred on (x, y).
func NewCircle(name string, x, y, radius float64, fill color.RGBA) *Node {
	return &Node{Name: name, shape: ShapeCircle, x: x, y: y, w: radius, h: radius, fill: fill}
}

// NewTriangle creates an upward triangle of the given size centred on (x, y).
func NewTriangle(name string, x, y, size float64, fill color.RGBA) *Node {
	return &Node{Name: name, shape: ShapeTriangle, x: x, y: y, w: size, h: size, fill: fill}
}

// NewText creates a text label.
func NewText(name string, x, y float64, text string, fill color.RGBA) *Node {
	return &Node{Name: name, shape: ShapeText, x: x, y: y, text: text, fill: fill}
}

// Shape returns the node's primitive kind.
func (n *Node) Shape() Shape { return n.shape }

// Add attaches child as the last child of n, detaching it from any previous
// parent first. It returns child.
func (n *Node) Add(child *Node) *Node {
	child.Detach()
	child.parent = n
	n.children = append(n.children, child)
	return child
}

// Detach removes n from its parent. Detaching a root is a no-op.
func (n *Node) Detach() {
	p := n.parent
	if p == nil {
		return
	}
	for i, c := range p.children {
		if c == n {
			p.children = append(p.children[:i:i], p.children[i+1:]...)
			break
		}
	}
	n.parent = nil
}

// Parent returns the node's parent, or nil.
func (n *Node) Parent() *Node { return n.parent }

// Children returns a copy of the child list in draw order.
func (n *Node) Children() []*Node {
	out := make([]*Node, len(n.children))
	copy(out, n.children)
	return out
}

// Attached reports whether the node is currently under root.
func (n *Node) Attached(root *Node) bool {
	for p := n; p != nil; p = p.parent {
		if p == root {
			return true
		}
	}
	return false
}

func (n *Node) SetVisible(v bool) { n.hidden = !v }
func (n *Node) Visible() bool { return !n.hidden }

func (n *Node) SetText(s string) { n.text = s }
func (n *Node) Text() string { return n.text }

func (n *Node) SetPosition(x, y float64) { n.x, n.y = x, y }
func (n *Node) Position() (x, y float64) { return n.x, n.y }

func (n *Node) SetSize(w, h float64) { n.w, n.h = w, h }
func (n *Node) Size() (w, h float64) { return n.w, n.h }
func (n *Node) SetFill(c color.RGBA) { n.fill = c }
func (n *Node) Fill() color.RGBA { return n.fill }

// Walk visits every visible node under n, n included, in draw order. Hidden
// nodes hide their whole subtree. x and y are absolute coordinates.
func (n *Node) Walk(fn func(node *Node, x, y float64)) {
	n.walk(0, 0, fn)
}

func (n *Node) walk(ox, oy float64, fn func(*Node, float64, float64)) {
	if n.hidden {
		return
	}
	ax, ay := ox+n.x, oy+n.y
	fn(n, ax, ay)
	for _, c := range n.children {
		c.walk(ax, ay, fn)
	}
}

// Find returns the first node named name in n's subtree, or nil.
func (n *Node) Find(name string) *Node {
	if n.Name == name {
		return n
	}
	for _, c := range n.children {
		if f := c.Find(name); f != nil {
			return f
		}
	}
	return nil
}
