// Package overlay implements the modal overlays that sit on top of a scene
// and the per-scene registry that gates movement input while any is visible.
package overlay

// Overlay is anything that can cover a scene and be force-closed.
type Overlay interface {
	Name() string
	Visible() bool
	Hide()
}

// Showable is an overlay that can be opened without arguments.
type Showable interface {
	Overlay
	Show()
}

type pair struct {
	a, b Overlay
}

// Registry tracks the overlays owned by one scene.
type Registry struct {
	overlays []Overlay
	coexist  map[pair]bool
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{coexist: make(map[pair]bool)}
}

// Add registers overlays with the registry.
func (r *Registry) Add(overlays ...Overlay) {
	r.overlays = append(r.overlays, overlays...)
}

// AllowCoexist declares that a and b may be visible together: opening one
// does not close the other.
func (r *Registry) AllowCoexist(a, b Overlay) {
	r.coexist[pair{a, b}] = true
	r.coexist[pair{b, a}] = true
}

// AnyVisible reports whether at least one registered overlay is visible.
func (r *Registry) AnyVisible() bool {
	for _, o := range r.overlays {
		if o.Visible() {
			return true
		}
	}
	return false
}

// VisibleNames lists the visible overlays in registration order.
func (r *Registry) VisibleNames() []string {
	var names []string
	for _, o := range r.overlays {
		if o.Visible() {
			names = append(names, o.Name())
		}
	}
	return names
}

// HideAll force-closes every visible overlay and returns how many it closed.
func (r *Registry) HideAll() int {
	n := 0
	for _, o := range r.overlays {
		if o.Visible() {
			o.Hide()
			n++
		}
	}
	return n
}

// HideOthers closes every visible overlay except o and its coexisting
// partners.
func (r *Registry) HideOthers(o Overlay) {
	for _, other := range r.overlays {
		if other == o || r.coexist[pair{o, other}] {
			continue
		}
		if other.Visible() {
			other.Hide()
		}
	}
}

// Open closes conflicting overlays and then shows o.
func (r *Registry) Open(o Showable) {
	r.HideOthers(o)
	o.Show()
}

// Gate wraps a movement handler so it does nothing while any overlay is
// visible at the moment the handler runs.
func (r *Registry) Gate(fn func()) func() {
	return func() {
		if r.AnyVisible() {
			return
		}
		fn()
	}
}
