package game

import (
	"context"
	"fmt"
	"image/color"

	"go.uber.org/zap"

	"github.com/samdwyer/pixeladventure/internal/combat"
	"github.com/samdwyer/pixeladventure/internal/dialog"
	"github.com/samdwyer/pixeladventure/internal/gamedata"
	"github.com/samdwyer/pixeladventure/internal/input"
	"github.com/samdwyer/pixeladventure/internal/overlay"
	"github.com/samdwyer/pixeladventure/internal/render"
	"github.com/samdwyer/pixeladventure/internal/scene"
)

// Player battle stats. Attack adds the equipped weapon's power.
const (
	BaseAttack  = 10
	BaseDefense = 5
)

// DefaultEnemy is fought when a battle names no enemy.
const DefaultEnemy = "slime"

const barWidth = 100

var battleOptions = []string{"Attack", "Defend", "Flee"}

type healthBar struct {
	fill  *render.Node
	label *render.Node
}

func newHealthBar(name string, x, y float64, fill color.RGBA) (*render.Node, *healthBar) {
	node := render.NewGroup(name)
	node.SetPosition(x, y)
	node.Add(render.NewRect(name+".bg", 0, 0, barWidth, 10, render.Black))
	hb := &healthBar{
		fill:  node.Add(render.NewRect(name+".fill", 0, 0, barWidth, 10, fill)),
		label: node.Add(render.NewText(name+".hp", 0, 12, "", render.White)),
	}
	return node, hb
}

func (h *healthBar) set(c *combat.Combatant) {
	w := 0.0
	if c.MaxHP > 0 {
		w = barWidth * float64(c.HP) / float64(c.MaxHP)
	}
	h.fill.SetSize(w, 10)
	h.label.SetText(fmt.Sprintf("%d/%d", c.HP, c.MaxHP))
}

type battleScene struct {
	*scene.Base

	ctx       context.Context
	params    scene.Params
	def       *gamedata.EnemyDef
	encounter *combat.Encounter
	player    *combat.Combatant
	enemy     *combat.Combatant

	dialog    *overlay.DialogView
	menu      *overlay.Menu
	commands  *overlay.Panel
	playerBar *healthBar
	enemyBar  *healthBar
	finished  bool
}

func newBattle(ctx context.Context, env *scene.Env, params scene.Params) (scene.Scene, error) {
	if params.ReturnTo == scene.KindNone {
		return nil, fmt.Errorf("battle return scene: %w", scene.ErrMissingParam)
	}
	if params.Enemy == "" {
		params.Enemy = DefaultEnemy
	}
	def, err := env.Content.Enemies.Lookup(params.Enemy)
	if err != nil {
		return nil, fmt.Errorf("battle enemy: %w", err)
	}

	s := &battleScene{
		Base:   scene.NewBase(env, scene.KindBattle),
		ctx:    context.WithoutCancel(ctx),
		params: params,
		def:    def,
	}

	store := env.Store
	s.player = combat.NewCombatant("Hero", store.PlayerHP(), BaseAttack+store.WeaponBonus(), BaseDefense)
	s.player.MaxHP = store.MaxHP()
	s.enemy = combat.NewCombatant(def.Name, def.HP, def.Attack, def.Defense)

	s.drawArena()
	s.drawCombatants()

	playerNode, playerBar := newHealthBar("player.health", 20, 20, render.Green)
	enemyNode, enemyBar := newHealthBar("enemy.health", render.Width-120, 20, render.Red)
	playerNode.Add(render.NewText("player.name", 0, -14, s.player.Name, render.White))
	enemyNode.Add(render.NewText("enemy.name", 0, -14, s.enemy.Name, render.White))
	s.Add(playerNode)
	s.Add(enemyNode)
	s.playerBar, s.enemyBar = playerBar, enemyBar

	s.menu = overlay.NewMenu("combat", render.Width/2-80, render.Height-140, battleOptions...)
	s.Overlays.Add(s.menu)
	s.Add(s.menu.Node())
	s.dialog = s.NewDialog()
	s.Overlays.AllowCoexist(s.dialog, s.menu)
	s.commands = s.NewPanel("commands", 60, 40, 200, 120, func() []string { return commandLines })

	s.encounter = combat.NewEncounter(combat.Options{
		Rand:        env.Rand,
		Scheduler:   s.Scheduler,
		EnemyDelay:  env.Settings.EnemyDelay,
		OnEnemyTurn: s.onEnemyTurn,
		OnEnd:       s.onEnd,
		Logger:      s.Logger,
	})
	s.OnTeardown(s.encounter.Close)

	opening, err := s.encounter.Start(s.ctx, s.player, s.enemy)
	if err != nil {
		s.Teardown()
		return nil, fmt.Errorf("start battle: %w", err)
	}
	s.syncBars()
	s.menu.Show()
	s.say([]string{opening}, s.playerTurn)

	s.bindKeys()
	return s, nil
}

func (s *battleScene) drawArena() {
	s.Add(render.NewRect("arena", 0, 0, render.Width, render.Height, s.def.ArenaRGBA()))
	rng := s.Env.Rand
	switch {
	case s.def.ID == "boss":
		for i := 0; i < 20; i++ {
			s.Add(render.NewCircle(fmt.Sprintf("star.%d", i),
				rng.Float64()*render.Width, rng.Float64()*render.Height, 1+rng.Float64()*3, render.White))
		}
	case s.def.InZone(caveZone):
		for i := 0; i < 5; i++ {
			size := 30 + rng.Float64()*20
			s.Add(render.NewTriangle(fmt.Sprintf("rock.%d", i), float64(50+i*50), render.Height-size/2, size, render.Gray))
		}
	default:
		for i := 0; i < 30; i++ {
			s.Add(render.NewRect(fmt.Sprintf("blade.%d", i),
				rng.Float64()*render.Width, rng.Float64()*render.Height, 2, 5, treeColor))
		}
	}
}

func (s *battleScene) drawCombatants() {
	hero := render.NewGroup("hero")
	hero.SetPosition(render.Width/4, render.Height/3*2)
	hero.Add(render.NewRect("hero.body", -8, -8, 16, 16, render.Blue))
	s.Add(hero)

	foe := render.NewGroup("foe")
	foe.SetPosition(render.Width/4*3, render.Height/3)
	half := s.def.Size / 2
	switch s.def.Shape {
	case gamedata.ShapeCircle:
		foe.Add(render.NewCircle("foe.body", 0, 0, half, s.def.RGBA()))
	case gamedata.ShapeTriangle:
		foe.Add(render.NewTriangle("foe.body", 0, 0, s.def.Size, s.def.RGBA()))
	default:
		foe.Add(render.NewRect("foe.body", -half, -half, s.def.Size, s.def.Size, s.def.RGBA()))
	}
	s.Add(foe)
}

func (s *battleScene) bindKeys() {
	up := s.Bind(input.KeyUp)
	up.Press = s.menu.Up
	down := s.Bind(input.KeyDown)
	down.Press = s.menu.Down

	confirm := func() {
		switch {
		case s.commands.Visible():
			s.commands.Hide()
		case s.dialog.Visible():
			s.dialog.Advance()
		case s.menu.Enabled():
			s.act(s.menu.Index())
		}
	}
	enter := s.Bind(input.KeyEnter)
	enter.Press = confirm
	space := s.Bind(input.KeySpace)
	space.Press = confirm

	c := s.Bind(input.Rune('c'))
	c.Press = func() { s.commands.Toggle() }
	esc := s.Bind(input.KeyEscape)
	esc.Press = func() { s.commands.Hide() }
}

// say shows pages in the dialog with the menu disabled and calls then once
// the dialog closes, however it closes.
func (s *battleScene) say(pages []string, then func()) {
	s.menu.SetEnabled(false)
	s.dialog.Open(pages, "", func(o dialog.Outcome) {
		if o == dialog.OutcomeSuperseded || then == nil {
			return
		}
		then()
	})
}

func (s *battleScene) playerTurn() {
	if s.encounter.Phase() == combat.PhasePlayerTurn {
		s.menu.SetEnabled(true)
	}
}

func (s *battleScene) act(option int) {
	var action combat.Action
	switch battleOptions[option] {
	case "Attack":
		action = combat.Action{Kind: combat.ActionAttack}
	case "Defend":
		action = combat.Action{Kind: combat.ActionDefend}
	default:
		action = combat.Action{Kind: combat.ActionFlee}
	}

	msg, ok := s.encounter.Act(s.ctx, action)
	if !ok {
		return
	}
	s.syncBars()
	s.report([]string{msg})
}

func (s *battleScene) onEnemyTurn(messages []string) {
	s.syncBars()
	s.report(messages)
}

// report shows messages and, when the encounter is over, the closing line
// followed by the return to the map.
func (s *battleScene) report(messages []string) {
	if s.encounter.Phase() == combat.PhaseResolved {
		pages := append(append([]string(nil), messages...), s.encounter.Result().Message())
		s.say(pages, s.finish)
		return
	}
	s.say(messages, s.playerTurn)
}

func (s *battleScene) onEnd(result combat.Result, _ string) {
	s.Env.Store.SetPlayerHP(s.player.HP)
	s.Logger.Info("battle over",
		zap.Stringer("result", result),
		zap.String("enemy", s.def.ID),
		zap.Int("player_hp", s.player.HP),
		zap.Int("turns", s.encounter.Turns()),
	)
}

// finish leaves the battle after the last message.
func (s *battleScene) finish() {
	if s.finished {
		return
	}
	s.finished = true

	switch s.encounter.Result() {
	case combat.ResultVictory:
		if s.params.OnVictory != nil {
			s.params.OnVictory(s.Env.Store)
		}
		s.Request(s.params.ReturnTo, scene.Params{})
	case combat.ResultDefeat:
		s.Env.Store.Reset()
		s.Request(scene.KindTitle, scene.Params{})
	default:
		s.Request(s.params.ReturnTo, scene.Params{})
	}
}

func (s *battleScene) syncBars() {
	s.playerBar.set(s.player)
	s.enemyBar.set(s.enemy)
}

func (s *battleScene) Update(elapsed float64) {
	s.Pump()
	s.dialog.Update(elapsed)
}
