package game

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/samdwyer/pixeladventure/internal/dialog"
	"github.com/samdwyer/pixeladventure/internal/entity"
	"github.com/samdwyer/pixeladventure/internal/gamedata"
	"github.com/samdwyer/pixeladventure/internal/overlay"
	"github.com/samdwyer/pixeladventure/internal/render"
	"github.com/samdwyer/pixeladventure/internal/scene"
	"github.com/samdwyer/pixeladventure/internal/state"
	"github.com/samdwyer/pixeladventure/internal/world"
)

// Cave tuning.
const (
	EncounterInterval = 60   // Frame units between random encounter rolls
	EncounterChance   = 0.01 // Chance per roll while walking
	BossReach         = 40
	ChestReach        = 30
)

const caveZone = "cave"

type caveScene struct {
	*scene.Base

	ex     *explorer
	dialog *overlay.DialogView
	chest  *entity.Chest
	lid    *render.Node
	boss   *render.Node

	encounterTimer float64
}

func newCave(_ context.Context, env *scene.Env, _ scene.Params) (scene.Scene, error) {
	sword, err := env.Content.Items.Lookup(gamedata.ItemMagicSword)
	if err != nil {
		return nil, fmt.Errorf("cave treasure: %w", err)
	}
	bossDef, err := env.Content.Enemies.Lookup("boss")
	if err != nil {
		return nil, fmt.Errorf("cave boss: %w", err)
	}

	s := &caveScene{Base: scene.NewBase(env, scene.KindCave)}
	layout := world.Cave()
	s.drawCave(layout)

	s.chest = entity.NewChest(50, 110, sword.Item())
	chest := render.NewGroup("chest")
	chest.SetPosition(s.chest.X, s.chest.Y)
	chest.Add(render.NewRect("chest.body", -10, -6, 20, 14, render.Brown))
	s.lid = chest.Add(render.NewRect("chest.lid", -10, -8, 20, 4, render.Highlight))
	s.Add(chest)

	if env.Store.Quest() < state.QuestComplete {
		half := bossDef.Size / 2
		s.boss = render.NewGroup("boss")
		s.boss.SetPosition(render.Width/2, 50)
		s.boss.Add(render.NewRect("boss.body", -half, -half, bossDef.Size, bossDef.Size, bossDef.RGBA()))
		s.Add(s.boss)
	}

	s.ex = newExplorer(s.Base, layout, render.Width/2, render.Height-40)
	s.dialog = s.NewDialog()
	s.ex.bind(s.dialog, s.interact)
	return s, nil
}

func (s *caveScene) drawCave(layout *world.Layout) {
	s.Add(render.NewRect("floor", 0, 0, render.Width, render.Height, render.DarkGray))
	for i, w := range layout.Walls {
		s.Add(render.NewRect(fmt.Sprintf("wall.%d", i), w.X, w.Y, w.Width, w.Height, caveColor))
	}
	s.Add(render.NewRect("exit", render.Width/2-10, render.Height-30, 20, 10, caveColor))
	for i, pos := range [][2]float64{{40, 40}, {280, 40}, {40, 200}, {280, 200}, {160, 120}} {
		s.Add(render.NewTriangle(fmt.Sprintf("rock.%d", i), pos[0], pos[1]+8, 12, caveColor))
	}
}

func (s *caveScene) interact() {
	x, y := s.ex.player.Position()

	if s.chest.Near(x, y, ChestReach) {
		if item, ok := s.chest.Open(); ok {
			s.Env.Store.AddItem(item)
			s.lid.SetFill(render.Brown)
			s.Logger.Info("chest opened", zap.String("item", item.Name))
			s.dialog.Open([]string{
				fmt.Sprintf("You found a %s!", item.Name),
				fmt.Sprintf("Attack power increased by %d!", item.Power),
			}, "", nil)
			return
		}
	}

	if s.boss != nil && s.ex.player.DistanceTo(render.Width/2, 50) < BossReach {
		s.challengeBoss()
	}
}

// challengeBoss plays the boss's taunt and starts the fight once it is read
// to the end.
func (s *caveScene) challengeBoss() {
	taunt, err := s.Env.Content.Dialogues.Lookup(gamedata.DialogueBossTaunt)
	if err != nil {
		s.Logger.Error("dialogue missing", zap.Error(err))
		return
	}
	s.dialog.Open(taunt.Pages, taunt.Speaker, func(o dialog.Outcome) {
		if o != dialog.OutcomeCompleted {
			return
		}
		s.Request(scene.KindBattle, scene.Params{
			Enemy:    "boss",
			ReturnTo: scene.KindCave,
			OnVictory: func(store *state.Store) {
				store.SetQuest(state.QuestComplete)
			},
		})
	})
}

func (s *caveScene) Update(elapsed float64) {
	s.ex.update(elapsed)
	s.dialog.Update(elapsed)
	s.Pump()

	if s.Overlays.AnyVisible() {
		return
	}
	if s.ex.zone(world.ZoneExit) != "" {
		s.Request(scene.KindWorldMap, scene.Params{})
		return
	}

	s.encounterTimer += elapsed
	if s.encounterTimer > EncounterInterval {
		s.encounterTimer = 0
		if s.Env.Rand.Float64() < EncounterChance && s.ex.player.Moving {
			s.randomEncounter()
		}
	}
}

func (s *caveScene) randomEncounter() {
	def := s.Env.Content.Enemies.SpawnRandom(s.Env.Rand, caveZone)
	if def == nil {
		return
	}
	s.Logger.Info("random encounter", zap.String("enemy", def.ID))
	s.Request(scene.KindBattle, scene.Params{Enemy: def.ID, ReturnTo: scene.KindCave})
}
