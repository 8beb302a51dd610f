package scene

import (
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/samdwyer/pixeladventure/internal/clock"
	"github.com/samdwyer/pixeladventure/internal/dialog"
	"github.com/samdwyer/pixeladventure/internal/input"
	"github.com/samdwyer/pixeladventure/internal/overlay"
	"github.com/samdwyer/pixeladventure/internal/render"
)

// Base implements the parts every scene shares. Embed it and build on Env.
type Base struct {
	Env       *Env
	Overlays  *overlay.Registry
	Scheduler *clock.Scheduler
	Logger    *zap.Logger

	id       string
	kind     Kind
	root     *render.Node
	bindings []*input.Binding
	binds    int
	unbinds  int
	closers  []func()
	torn     bool
}

// NewBase creates the shared state of a scene of the given kind.
func NewBase(env *Env, kind Kind) *Base {
	id := uuid.NewString()
	return &Base{
		Env:       env,
		Overlays:  overlay.NewRegistry(),
		Scheduler: clock.NewScheduler(env.Clock),
		Logger:    env.Logger.With(zap.String("scene", kind.String()), zap.String("scene_id", id)),
		id:        id,
		kind:      kind,
		root:      render.NewGroup(kind.String()),
	}
}

func (b *Base) ID() string { return b.id }
func (b *Base) Kind() Kind { return b.kind }
func (b *Base) Root() *render.Node { return b.root }

// Bind installs a key binding owned by the scene.
func (b *Base) Bind(key input.Key) *input.Binding {
	binding := b.Env.Hub.Bind(key)
	b.bindings = append(b.bindings, binding)
	b.binds++
	return binding
}

// Add attaches n to the scene root and returns it.
func (b *Base) Add(n *render.Node) *render.Node {
	return b.root.Add(n)
}

// NewDialog creates the scene's dialog box and registers it as an overlay.
// Its node is attached last so call it after building the background.
func (b *Base) NewDialog() *overlay.DialogView {
	v := overlay.NewDialogView(dialog.NewBox(b.Env.Settings.TextSpeed))
	b.Overlays.Add(v)
	b.root.Add(v.Node())
	return v
}

// NewPanel creates a text overlay, registers it and attaches its node.
func (b *Base) NewPanel(name string, x, y, w, h float64, content func() []string) *overlay.Panel {
	p := overlay.NewPanel(name, x, y, w, h, content)
	b.Overlays.Add(p)
	b.root.Add(p.Node())
	return p
}

// OnTeardown registers fn to run during Teardown, after bindings are removed.
func (b *Base) OnTeardown(fn func()) {
	b.closers = append(b.closers, fn)
}

// Pump runs the scene's due scheduled tasks. Scenes call it from Update.
func (b *Base) Pump() {
	b.Scheduler.RunDue()
}

// Request asks the manager for a scene change after the current handler.
func (b *Base) Request(kind Kind, params Params) {
	if b.torn {
		return
	}
	b.Env.Scenes.Request(kind, params)
}

// Teardown unbinds every key, cancels scheduled tasks, runs the teardown
// hooks and detaches the render root. Only the first call has an effect.
func (b *Base) Teardown() {
	if b.torn {
		return
	}
	b.torn = true

	for _, binding := range b.bindings {
		binding.Unbind()
		b.unbinds++
	}
	b.bindings = nil
	b.Scheduler.Stop()

	for _, fn := range b.closers {
		fn()
	}
	b.closers = nil
	b.root.Detach()

	b.Logger.Debug("scene torn down",
		zap.Int("binds", b.binds),
		zap.Int("unbinds", b.unbinds),
	)
}

// TornDown reports whether Teardown ran.
func (b *Base) TornDown() bool { return b.torn }

// BindingStats returns how many bindings the scene created and removed.
func (b *Base) BindingStats() (binds, unbinds int) {
	return b.binds, b.unbinds
}
