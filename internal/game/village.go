package game

import (
	"context"
	"fmt"
	"image/color"
	"math"

	"go.uber.org/zap"

	"github.com/samdwyer/pixeladventure/internal/dialog"
	"github.com/samdwyer/pixeladventure/internal/entity"
	"github.com/samdwyer/pixeladventure/internal/gamedata"
	"github.com/samdwyer/pixeladventure/internal/input"
	"github.com/samdwyer/pixeladventure/internal/overlay"
	"github.com/samdwyer/pixeladventure/internal/render"
	"github.com/samdwyer/pixeladventure/internal/scene"
	"github.com/samdwyer/pixeladventure/internal/state"
	"github.com/samdwyer/pixeladventure/internal/world"
)

// Reach for talking to villagers.
const (
	TalkReach     = 50 // v key
	InteractReach = 30 // Space
)

var (
	floorColor  = color.RGBA{0xcd, 0x85, 0x3f, 0xff}
	lawnColor   = color.RGBA{0x7c, 0xfc, 0x00, 0xff}
	pathColor   = color.RGBA{0xde, 0xb8, 0x87, 0xff}
	sageColor   = color.RGBA{0xdc, 0xdc, 0xdc, 0xff}
	villagerRGB = []color.RGBA{
		{0xff, 0x99, 0x99, 0xff},
		{0x99, 0xff, 0x99, 0xff},
		{0x99, 0x99, 0xff, 0xff},
	}
)

type npc struct {
	name  string
	actor *entity.Actor
}

type villageScene struct {
	*scene.Base

	interior  bool
	ex        *explorer
	dialog    *overlay.DialogView
	inventory *overlay.Panel
	status    *overlay.Panel
	equip     *overlay.Panel
	npcs      []*npc
}

func newVillage(_ context.Context, env *scene.Env, params scene.Params) (scene.Scene, error) {
	s := &villageScene{
		Base:     scene.NewBase(env, scene.KindVillage),
		interior: params.Interior,
	}

	var layout *world.Layout
	var x, y float64
	if s.interior {
		layout = world.VillageInterior()
		s.drawInterior()
		if env.Store.Quest() == state.QuestNotStarted {
			s.addNPC("Old Sage", render.Width/2, 80, sageColor)
		}
		x, y = render.Width/2, render.Height/2
	} else {
		layout = world.VillageExterior()
		s.drawExterior()
		s.addNPC("Villager", 100, 150, villagerRGB[0])
		s.addNPC("Villager", render.Width-100, 120, villagerRGB[1])
		s.addNPC("Villager", render.Width/2-50, 180, villagerRGB[2])
		x, y = render.Width/2, 100
	}

	s.ex = newExplorer(s.Base, layout, x, y)
	s.dialog = s.NewDialog()
	s.status = s.NewPanel("status", 20, 20, 140, 60, s.statusLines)
	s.inventory = s.NewPanel("inventory", 20, 20, 180, 100, s.inventoryLines)
	s.equip = s.NewPanel("equip", 20, 20, 180, 60, s.equipLines)
	s.ex.bind(s.dialog, s.interact)

	talk := s.Bind(input.Rune('v'))
	talk.Press = func() {
		if s.Overlays.AnyVisible() {
			s.ex.hideAll()
			return
		}
		s.talkToNearest()
		s.ex.disarmIfOpen()
	}
	menus := []struct {
		key   rune
		panel *overlay.Panel
	}{
		{'i', s.inventory},
		{'h', s.status},
		{'e', s.equip},
	}
	for _, m := range menus {
		b := s.Bind(input.Rune(m.key))
		b.Press = func() { s.ex.toggle(m.panel) }
	}

	if s.interior && env.Store.Quest() == state.QuestNotStarted {
		s.openSageIntro()
	}
	s.grantStarterSword()
	return s, nil
}

func (s *villageScene) drawInterior() {
	s.Add(render.NewRect("walls", 0, 0, render.Width, render.Height, render.Brown))
	s.Add(render.NewRect("floor", 20, 20, render.Width-40, render.Height-40, floorColor))
	s.Add(render.NewRect("table", render.Width/2-15, 40, 30, 30, render.Brown))
	s.Add(render.NewRect("door", render.Width/2-10, render.Height-22, 20, 20, render.Brown))
	s.Add(render.NewCircle("door.handle", render.Width/2+5, render.Height-12, 2, render.Highlight))
}

func (s *villageScene) drawExterior() {
	s.Add(render.NewRect("lawn", 0, 0, render.Width, render.Height, lawnColor))
	for i, hx := range []float64{40, render.Width - 80, render.Width / 2} {
		house := render.NewGroup(fmt.Sprintf("house.%d", i))
		house.SetPosition(hx, 40)
		house.Add(render.NewRect("body", -20, 0, 40, 30, floorColor))
		house.Add(render.NewTriangle("roof", 0, -10, 50, render.Brown))
		house.Add(render.NewRect("door", -5, 15, 10, 15, render.Brown))
		s.Add(house)
	}
	s.Add(render.NewRect("path", render.Width/2-20, render.Height-30, 40, 30, pathColor))
}

func (s *villageScene) addNPC(name string, x, y float64, fill color.RGBA) {
	a := entity.NewActor(x, y, 0.5)
	node := render.NewGroup("npc")
	node.Add(render.NewRect("npc.body", -entity.ActorSize/2, -entity.ActorSize/2, entity.ActorSize, entity.ActorSize, fill))
	a.Node = s.Add(node)
	a.Sync()
	s.npcs = append(s.npcs, &npc{name: name, actor: a})
}

// nearest returns the closest NPC and its distance.
func (s *villageScene) nearest() (*npc, float64) {
	var best *npc
	dist := math.Inf(1)
	for _, n := range s.npcs {
		d := s.ex.player.DistanceTo(n.actor.X, n.actor.Y)
		if d < dist {
			best, dist = n, d
		}
	}
	return best, dist
}

func (s *villageScene) interact() {
	if n, d := s.nearest(); n != nil && d < InteractReach {
		s.talk()
	}
}

func (s *villageScene) talkToNearest() {
	if n, d := s.nearest(); n != nil && d < TalkReach {
		s.talk()
		return
	}
	s.openScript(gamedata.DialogueNobodyNear, nil)
}

// talk opens the line matching the quest stage.
func (s *villageScene) talk() {
	switch s.Env.Store.Quest() {
	case state.QuestNotStarted:
		s.openSageIntro()
	case state.QuestAccepted:
		s.openScript(gamedata.DialogueVillagerQuest, nil)
	default:
		s.openScript(gamedata.DialogueVillagerHero, nil)
	}
}

func (s *villageScene) openSageIntro() {
	s.openScript(gamedata.DialogueSageIntro, func(o dialog.Outcome) {
		if o != dialog.OutcomeCompleted {
			return
		}
		s.Env.Store.SetQuest(state.QuestAccepted)
		s.grantStarterSword()
		s.Logger.Info("quest accepted")
	})
}

func (s *villageScene) openScript(id string, onDone func(dialog.Outcome)) {
	script, err := s.Env.Content.Dialogues.Lookup(id)
	if err != nil {
		s.Logger.Error("dialogue missing", zap.String("dialogue", id), zap.Error(err))
		return
	}
	s.dialog.Open(script.Pages, script.Speaker, onDone)
}

// grantStarterSword gives the wooden sword once the quest is accepted and the
// inventory is still empty.
func (s *villageScene) grantStarterSword() {
	store := s.Env.Store
	if store.Quest() != state.QuestAccepted || len(store.Inventory()) > 0 {
		return
	}
	def, err := s.Env.Content.Items.Lookup(gamedata.ItemWoodenSword)
	if err != nil {
		s.Logger.Error("starter sword missing", zap.Error(err))
		return
	}
	store.AddItem(def.Item())
	s.Logger.Info("item granted", zap.String("item", def.Name))
}

func (s *villageScene) statusLines() []string {
	store := s.Env.Store
	return []string{
		"HERO STATUS",
		fmt.Sprintf("HP: %d/%d", store.PlayerHP(), store.MaxHP()),
		fmt.Sprintf("Level: %d", store.Level()),
	}
}

func (s *villageScene) inventoryLines() []string {
	lines := []string{"INVENTORY"}
	items := s.Env.Store.Inventory()
	if len(items) == 0 {
		return append(lines, "Your inventory is empty.")
	}
	for _, item := range items {
		lines = append(lines, "- "+item.Name)
	}
	return lines
}

func (s *villageScene) equipLines() []string {
	lines := []string{"EQUIPMENT"}
	weapon, ok := s.Env.Store.Weapon()
	if !ok {
		return append(lines, "No weapon equipped.")
	}
	return append(lines,
		fmt.Sprintf("Weapon: %s (+%d)", weapon.Name, weapon.Power),
		fmt.Sprintf("Attack: %d", BaseAttack+weapon.Power),
	)
}

func (s *villageScene) Update(elapsed float64) {
	s.ex.update(elapsed)
	s.dialog.Update(elapsed)
	s.Pump()

	if s.interior {
		if s.ex.zone(world.ZoneExit) != "" {
			s.Request(scene.KindVillage, scene.Params{Interior: false})
		}
		return
	}
	switch s.ex.zone(world.ZoneExit, world.ZoneHouse) {
	case world.ZoneExit:
		s.Request(scene.KindWorldMap, scene.Params{})
	case world.ZoneHouse:
		s.Request(scene.KindVillage, scene.Params{Interior: true})
	}
}
