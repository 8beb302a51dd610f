package game

import (
	"github.com/samdwyer/pixeladventure/internal/entity"
	"github.com/samdwyer/pixeladventure/internal/input"
	"github.com/samdwyer/pixeladventure/internal/overlay"
	"github.com/samdwyer/pixeladventure/internal/render"
	"github.com/samdwyer/pixeladventure/internal/scene"
	"github.com/samdwyer/pixeladventure/internal/world"
)

// Player movement on the exploration maps.
const (
	PlayerSpeed  = 2
	PlayerMargin = 10
)

const commandHint = "for commands, press c"

var commandLines = []string{
	"COMMANDS",
	"- [ARROW KEYS]: Move character",
	"- [SPACE]: Interact with objects/NPCs",
	"- [V]: Talk to villagers",
	"- [I]: View inventory",
	"- [H]: View hero status (HP/Level)",
	"- [E]: Equip items",
	"- [ESC]: Exit current menu",
}

// explorer is the walking player shared by the map scenes.
type explorer struct {
	base     *scene.Base
	layout   *world.Layout
	player   *entity.Actor
	commands *overlay.Panel

	// armed holds the directions whose press moved the player. A key pressed
	// while an overlay was open is held but never armed.
	armed map[input.Key]bool
}

// newExplorer places the player at (x, y). Build the scene background before
// calling it so the player draws on top.
func newExplorer(b *scene.Base, layout *world.Layout, x, y float64) *explorer {
	player := entity.NewActor(x, y, PlayerSpeed)
	node := render.NewGroup("player")
	node.Add(render.NewRect("player.body", -entity.ActorSize/2, -entity.ActorSize/2, entity.ActorSize, entity.ActorSize, render.Blue))
	player.Node = b.Add(node)
	player.Sync()
	return &explorer{base: b, layout: layout, player: player, armed: make(map[input.Key]bool, len(directions))}
}

type direction struct {
	key, opposite input.Key
	dx, dy        float64
}

var directions = []direction{
	{input.KeyUp, input.KeyDown, 0, -1},
	{input.KeyDown, input.KeyUp, 0, 1},
	{input.KeyLeft, input.KeyRight, -1, 0},
	{input.KeyRight, input.KeyLeft, 1, 0},
}

// bind installs movement, the command panel and the shared Space, Enter and
// Escape handling. dlg may be nil. interact runs on Space when no overlay is
// open. Call it after the scene's overlays exist.
func (e *explorer) bind(dlg *overlay.DialogView, interact func()) {
	reg := e.base.Overlays

	e.commands = e.base.NewPanel("commands", 60, 40, 200, 120, func() []string { return commandLines })
	hint := render.NewGroup("hint")
	hint.SetPosition(render.Width-130, 6)
	hint.Add(render.NewRect("hint.bg", 0, 0, 124, 14, render.Panel))
	hint.Add(render.NewText("hint.text", 4, 2, commandHint, render.White))
	e.base.Add(hint)

	held := make(map[input.Key]*input.Binding, len(directions))
	for _, d := range directions {
		held[d.key] = e.base.Bind(d.key)
	}
	for _, d := range directions {
		b := held[d.key]
		b.Press = reg.Gate(func() {
			e.armed[d.key] = true
			e.player.Move(d.dx, d.dy)
		})
		b.Release = func() {
			delete(e.armed, d.key)
			if reg.AnyVisible() {
				return
			}
			if e.armed[d.opposite] && held[d.opposite].IsDown() {
				e.player.Move(-d.dx, -d.dy)
				return
			}
			e.player.Stop()
		}
	}

	c := e.base.Bind(input.Rune('c'))
	c.Press = func() { e.toggle(e.commands) }

	esc := e.base.Bind(input.KeyEscape)
	esc.Press = func() { e.hideAll() }

	space := e.base.Bind(input.KeySpace)
	space.Press = func() {
		switch {
		case dlg != nil && dlg.Visible():
			dlg.Advance()
		case reg.AnyVisible():
			e.hideAll()
		case interact != nil:
			interact()
			e.disarmIfOpen()
		}
	}

	if dlg != nil {
		enter := e.base.Bind(input.KeyEnter)
		enter.Press = func() {
			if dlg.Visible() {
				dlg.Advance()
			}
		}
	}
}

// disarm stops the player and forgets every press, so keys still held
// when an overlay closes stay inert until pressed again.
func (e *explorer) disarm() {
	clear(e.armed)
	e.player.Stop()
}

// disarmIfOpen disarms movement when an overlay is now open.
func (e *explorer) disarmIfOpen() {
	if e.base.Overlays.AnyVisible() {
		e.disarm()
	}
}

// hideAll closes every overlay and, if one was open, disarms movement.
func (e *explorer) hideAll() {
	if !e.base.Overlays.AnyVisible() {
		return
	}
	e.base.Overlays.HideAll()
	e.disarm()
}

// toggle closes p when open, otherwise opens it exclusively and disarms
// movement.
func (e *explorer) toggle(p *overlay.Panel) {
	toggleExclusive(e.base.Overlays, p)
	e.disarm()
}

// update moves the player. Movement stops while any overlay is open.
func (e *explorer) update(elapsed float64) {
	e.disarmIfOpen()
	e.player.Step(elapsed, e.layout)
	e.player.Clamp(PlayerMargin)
	e.player.Sync()
}

// zone returns the named zone the player stands in, or "" while any overlay
// is open.
func (e *explorer) zone(names ...string) string {
	if e.base.Overlays.AnyVisible() {
		return ""
	}
	return e.layout.ZoneAt(e.player.X, e.player.Y, names...)
}

// toggleExclusive closes p when open, otherwise closes everything else and
// opens it.
func toggleExclusive(reg *overlay.Registry, p *overlay.Panel) {
	if p.Visible() {
		p.Hide()
		return
	}
	reg.Open(p)
}
