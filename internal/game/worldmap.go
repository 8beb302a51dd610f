package game

import (
	"context"
	"fmt"
	"image/color"

	"go.uber.org/zap"

	"github.com/samdwyer/pixeladventure/internal/entity"
	"github.com/samdwyer/pixeladventure/internal/render"
	"github.com/samdwyer/pixeladventure/internal/scene"
	"github.com/samdwyer/pixeladventure/internal/world"
)

// ContactRange is how close a wandering monster must come to start a battle.
const ContactRange = 20

var (
	mountainColor = color.RGBA{0x80, 0x80, 0x80, 0xff}
	treeColor     = color.RGBA{0x00, 0x64, 0x00, 0xff}
	trunkColor    = color.RGBA{0x8b, 0x45, 0x13, 0xff}
	caveColor     = color.RGBA{0x69, 0x69, 0x69, 0xff}
)

type worldMapScene struct {
	*scene.Base

	ex        *explorer
	wanderers []*entity.Wanderer
}

func newWorldMap(_ context.Context, env *scene.Env, params scene.Params) (scene.Scene, error) {
	s := &worldMapScene{Base: scene.NewBase(env, scene.KindWorldMap)}
	s.drawMap()

	// Arriving from the cave puts the player just south of its entrance so
	// the village zone is not re-entered.
	x, y := float64(render.Width/2), float64(render.Height-40)
	if params.From == scene.KindCave {
		x, y = render.Width/2, 40
	}
	s.ex = newExplorer(s.Base, world.WorldMap(), x, y)

	for i, pos := range [][2]float64{
		{render.Width / 4, render.Height / 3},
		{render.Width / 4 * 3, render.Height / 3},
		{render.Width / 2, render.Height / 2},
	} {
		w := entity.NewWanderer(pos[0], pos[1], "slime")
		node := render.NewGroup(fmt.Sprintf("wanderer.%d", i))
		node.Add(render.NewRect("body", -entity.ActorSize/2, -entity.ActorSize/2, entity.ActorSize, entity.ActorSize, render.Red))
		w.Node = s.Add(node)
		w.Sync()
		s.wanderers = append(s.wanderers, w)
	}

	s.ex.bind(nil, nil)
	return s, nil
}

func (s *worldMapScene) drawMap() {
	s.Add(render.NewRect("grass", 0, 0, render.Width, render.Height, lawnColor))
	s.Add(render.NewRect("path", render.Width/2-10, 0, 20, render.Height, pathColor))
	for i, pos := range [][2]float64{
		{30, 50}, {60, 40}, {90, 60},
		{render.Width - 30, 50}, {render.Width - 60, 40}, {render.Width - 90, 60},
	} {
		s.Add(render.NewTriangle(fmt.Sprintf("mountain.%d", i), pos[0], pos[1], 30, mountainColor))
	}
	for i, pos := range [][2]float64{
		{40, 120}, {70, 160}, {30, 200},
		{render.Width - 40, 120}, {render.Width - 70, 160}, {render.Width - 30, 200},
	} {
		tree := render.NewGroup(fmt.Sprintf("tree.%d", i))
		tree.SetPosition(pos[0], pos[1])
		tree.Add(render.NewRect("trunk", -2, 0, 4, 8, trunkColor))
		tree.Add(render.NewCircle("crown", 0, -6, 8, treeColor))
		s.Add(tree)
	}

	village := render.NewGroup("marker.village")
	village.SetPosition(render.Width/2, render.Height-10)
	village.Add(render.NewRect("body", -10, -8, 20, 16, floorColor))
	village.Add(render.NewTriangle("roof", 0, -13, 24, render.Brown))
	s.Add(village)

	cave := render.NewGroup("marker.cave")
	cave.SetPosition(render.Width/2, 15)
	cave.Add(render.NewRect("rock", -20, -15, 40, 30, caveColor))
	cave.Add(render.NewRect("mouth", -8, -5, 16, 20, render.Black))
	s.Add(cave)
}

func (s *worldMapScene) Update(elapsed float64) {
	s.ex.update(elapsed)
	s.Pump()

	for i, w := range s.wanderers {
		w.Update(elapsed, s.Env.Rand)
		w.Sync()
		if s.Overlays.AnyVisible() || s.ex.player.DistanceTo(w.X, w.Y) >= ContactRange {
			continue
		}
		w.Node.Detach()
		s.wanderers = append(s.wanderers[:i], s.wanderers[i+1:]...)
		s.Logger.Info("monster contact", zap.String("enemy", w.EnemyID))
		s.Request(scene.KindBattle, scene.Params{Enemy: w.EnemyID, ReturnTo: scene.KindWorldMap})
		return
	}

	switch s.ex.zone(world.ZoneVillage, world.ZoneCave) {
	case world.ZoneVillage:
		s.Request(scene.KindVillage, scene.Params{Interior: false})
	case world.ZoneCave:
		s.Request(scene.KindCave, scene.Params{})
	}
}
