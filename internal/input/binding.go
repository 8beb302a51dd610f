package input

// Binding maps one key to press/release callbacks and tracks whether the key
// is currently held. Press fires once per down edge and Release once per up
// edge; auto-repeat downs while the key is held are ignored.
type Binding struct {
	key   Key
	hub   *Hub
	down  bool
	bound bool

	Press   func()
	Release func()
}

// Key returns the key this binding listens to.
func (b *Binding) Key() Key { return b.key }

// IsDown reports whether the key is currently held.
func (b *Binding) IsDown() bool { return b.down }

// Bound reports whether the binding still receives edges.
func (b *Binding) Bound() bool { return b.bound }

// Unbind detaches the binding from its hub. Safe to call more than once.
func (b *Binding) Unbind() {
	if b.hub != nil {
		b.hub.Unbind(b)
	}
}

func (b *Binding) keyDown() {
	if b.down {
		return
	}
	b.down = true
	if b.Press != nil {
		b.Press()
	}
}

func (b *Binding) keyUp() {
	if !b.down {
		return
	}
	b.down = false
	if b.Release != nil {
		b.Release()
	}
}

// Hub fans key events out to every live binding for the event's key.
// It is not safe for concurrent use; all dispatch happens on the logic thread.
type Hub struct {
	bindings map[Key][]*Binding
	binds    int
	unbinds  int
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{bindings: make(map[Key][]*Binding)}
}

// Bind creates a new binding for key.
func (h *Hub) Bind(key Key) *Binding {
	b := &Binding{key: key, hub: h, bound: true}
	h.bindings[key] = append(h.bindings[key], b)
	h.binds++
	return b
}

// Unbind removes b from the hub. It returns false when b was already unbound.
func (h *Hub) Unbind(b *Binding) bool {
	if b == nil || !b.bound {
		return false
	}
	b.bound = false
	b.Press = nil
	b.Release = nil

	list := h.bindings[b.key]
	for i, existing := range list {
		if existing == b {
			list = append(list[:i:i], list[i+1:]...)
			break
		}
	}
	if len(list) == 0 {
		delete(h.bindings, b.key)
	} else {
		h.bindings[b.key] = list
	}
	h.unbinds++
	return true
}

// Dispatch delivers ev to every binding for its key. Bindings created while
// the event is being delivered do not see it, and bindings removed during
// delivery are skipped. It returns true when at least one binding existed, in
// which case the caller should suppress its default handling of the key.
func (h *Hub) Dispatch(ev Event) bool {
	list := h.bindings[ev.Key]
	if len(list) == 0 {
		return false
	}

	snapshot := make([]*Binding, len(list))
	copy(snapshot, list)

	for _, b := range snapshot {
		if !b.bound {
			continue
		}
		switch ev.Kind {
		case EdgeDown:
			b.keyDown()
		case EdgeUp:
			b.keyUp()
		}
	}
	return true
}

// Bound reports whether any binding exists for key.
func (h *Hub) Bound(key Key) bool {
	return len(h.bindings[key]) > 0
}

// Active returns the number of live bindings across all keys.
func (h *Hub) Active() int {
	n := 0
	for _, list := range h.bindings {
		n += len(list)
	}
	return n
}

// Stats returns the total number of binds and unbinds performed.
func (h *Hub) Stats() (binds, unbinds int) {
	return h.binds, h.unbinds
}
