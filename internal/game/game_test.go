package game

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/samdwyer/pixeladventure/internal/clock"
	"github.com/samdwyer/pixeladventure/internal/gamedata"
	"github.com/samdwyer/pixeladventure/internal/input"
	"github.com/samdwyer/pixeladventure/internal/overlay"
	"github.com/samdwyer/pixeladventure/internal/scene"
	"github.com/samdwyer/pixeladventure/internal/state"
)

func newTestGame(t *testing.T) (*Game, *clock.Manual) {
	t.Helper()
	clk := clock.NewManual(time.Unix(0, 0))
	g, err := New(Config{Seed: 42, Clock: clk}, zaptest.NewLogger(t))
	require.NoError(t, err)
	require.NoError(t, g.Start(context.Background()))
	t.Cleanup(g.Close)
	return g, clk
}

func press(t *testing.T, g *Game, key input.Key) {
	t.Helper()
	_, err := g.HandleKey(context.Background(), input.Down(key))
	require.NoError(t, err)
	_, err = g.HandleKey(context.Background(), input.Up(key))
	require.NoError(t, err)
}

func hold(t *testing.T, g *Game, key input.Key) {
	t.Helper()
	_, err := g.HandleKey(context.Background(), input.Down(key))
	require.NoError(t, err)
}

func release(t *testing.T, g *Game, key input.Key) {
	t.Helper()
	_, err := g.HandleKey(context.Background(), input.Up(key))
	require.NoError(t, err)
}

func tick(t *testing.T, g *Game, elapsed float64) {
	t.Helper()
	require.NoError(t, g.Tick(context.Background(), elapsed))
}

func enter(t *testing.T, g *Game, kind scene.Kind, params scene.Params) {
	t.Helper()
	require.NoError(t, g.manager.ChangeScene(context.Background(), kind, params))
}

func finishDialog(t *testing.T, g *Game, d *overlay.DialogView) {
	t.Helper()
	for i := 0; i < 20 && d.Visible(); i++ {
		press(t, g, input.KeyEnter)
	}
	require.False(t, d.Visible(), "dialog still open")
}

func village(t *testing.T, g *Game) *villageScene {
	t.Helper()
	s, ok := g.Scene().(*villageScene)
	require.True(t, ok, "active scene is %s", g.Scene().Kind())
	return s
}

// liveBindings checks that the hub holds exactly the active scene's bindings.
func liveBindings(t *testing.T, g *Game) {
	t.Helper()
	type stats interface{ BindingStats() (int, int) }
	binds, unbinds := g.Scene().(stats).BindingStats()
	assert.Equal(t, binds-unbinds, g.env.Hub.Active())
}

func TestTitleEnterStartsInSageHouse(t *testing.T) {
	g, _ := newTestGame(t)
	require.Equal(t, scene.KindTitle, g.Scene().Kind())

	press(t, g, input.KeyEnter)

	v := village(t, g)
	assert.True(t, v.interior)
	assert.True(t, v.dialog.Visible())
	assert.Equal(t, "Old Sage", v.dialog.Speaker())
	liveBindings(t, g)
}

func TestTitlePromptBlinks(t *testing.T) {
	g, _ := newTestGame(t)
	title := g.Scene().(*titleScene)
	require.True(t, title.prompt.Visible())

	tick(t, g, 30)
	tick(t, g, 31)
	assert.False(t, title.prompt.Visible())
	tick(t, g, 61)
	assert.True(t, title.prompt.Visible())
}

func TestSageIntroAcceptsQuestAndGrantsSword(t *testing.T) {
	g, _ := newTestGame(t)
	press(t, g, input.KeyEnter)
	v := village(t, g)

	finishDialog(t, g, v.dialog)

	assert.Equal(t, state.QuestAccepted, g.Store().Quest())
	weapon, ok := g.Store().Weapon()
	require.True(t, ok)
	assert.Equal(t, "Wooden Sword", weapon.Name)
	assert.Equal(t, 5, g.Store().WeaponBonus())
}

func TestDismissedSageIntroLeavesQuest(t *testing.T) {
	g, _ := newTestGame(t)
	press(t, g, input.KeyEnter)
	v := village(t, g)

	press(t, g, input.KeyEscape)

	assert.False(t, v.dialog.Visible())
	assert.Equal(t, state.QuestNotStarted, g.Store().Quest())
	assert.Empty(t, g.Store().Inventory())
}

func TestMovementIsGatedByOverlays(t *testing.T) {
	g, _ := newTestGame(t)
	press(t, g, input.KeyEnter)
	v := village(t, g)
	require.True(t, v.dialog.Visible())

	hold(t, g, input.KeyRight)
	tick(t, g, 10)
	assert.Equal(t, 160.0, v.ex.player.X, "moved behind the dialog")
	release(t, g, input.KeyRight)

	finishDialog(t, g, v.dialog)
	hold(t, g, input.KeyRight)
	tick(t, g, 10)
	assert.InDelta(t, 180, v.ex.player.X, 1e-9)
}

func TestReleaseFallsBackToOppositeKey(t *testing.T) {
	g, _ := newTestGame(t)
	press(t, g, input.KeyEnter)
	v := village(t, g)
	finishDialog(t, g, v.dialog)
	p := v.ex.player

	hold(t, g, input.KeyRight)
	hold(t, g, input.KeyLeft)
	assert.Less(t, p.VX, 0.0)

	release(t, g, input.KeyLeft)
	assert.Greater(t, p.VX, 0.0)

	release(t, g, input.KeyRight)
	assert.False(t, p.Moving)
}

func TestKeyPressedUnderOverlayStaysInert(t *testing.T) {
	g, _ := newTestGame(t)
	enter(t, g, scene.KindVillage, scene.Params{})
	v := village(t, g)
	p := v.ex.player
	startX := p.X

	press(t, g, input.Rune('i'))
	require.True(t, v.inventory.Visible())
	hold(t, g, input.KeyLeft)
	press(t, g, input.Rune('i'))
	require.False(t, v.Overlays.AnyVisible())

	hold(t, g, input.KeyRight)
	tick(t, g, 5)
	release(t, g, input.KeyRight)

	assert.False(t, p.Moving, "the left press never reached the player")
	assert.Zero(t, p.VX)
	tick(t, g, 10)
	assert.InDelta(t, startX+10, p.X, 1e-9)

	// A fresh press of the held key moves again.
	release(t, g, input.KeyLeft)
	hold(t, g, input.KeyLeft)
	assert.Less(t, p.VX, 0.0)
}

func TestOverlayDisarmsHeldDirection(t *testing.T) {
	g, _ := newTestGame(t)
	enter(t, g, scene.KindVillage, scene.Params{})
	v := village(t, g)
	p := v.ex.player

	hold(t, g, input.KeyRight)
	hold(t, g, input.KeyLeft)
	press(t, g, input.Rune('c'))
	assert.False(t, p.Moving)
	press(t, g, input.Rune('c'))

	release(t, g, input.KeyLeft)
	assert.False(t, p.Moving, "right was held through the overlay")
	tick(t, g, 10)
	assert.False(t, p.Moving)
	release(t, g, input.KeyRight)
}

func TestInteriorExitLeadsOutside(t *testing.T) {
	g, _ := newTestGame(t)
	press(t, g, input.KeyEnter)
	inside := village(t, g)
	finishDialog(t, g, inside.dialog)

	inside.ex.player.X, inside.ex.player.Y = 160, 225
	tick(t, g, 1)

	outside := village(t, g)
	assert.False(t, outside.interior)
	assert.True(t, inside.TornDown())
	assert.Equal(t, 3, len(outside.npcs))
	liveBindings(t, g)

	// The sage is gone once the quest was accepted.
	outside.ex.player.X, outside.ex.player.Y = 160, 60
	tick(t, g, 1)
	back := village(t, g)
	assert.True(t, back.interior)
	assert.Empty(t, back.npcs)
	assert.False(t, back.dialog.Visible())
}

func TestExitsWaitForOverlaysToClose(t *testing.T) {
	g, _ := newTestGame(t)
	enter(t, g, scene.KindVillage, scene.Params{})
	v := village(t, g)

	press(t, g, input.Rune('i'))
	v.ex.player.X, v.ex.player.Y = 160, 225
	tick(t, g, 1)
	assert.Same(t, v, g.Scene())

	press(t, g, input.KeyEscape)
	tick(t, g, 1)
	assert.Equal(t, scene.KindWorldMap, g.Scene().Kind())
}

func TestTalkWithNobodyNear(t *testing.T) {
	g, _ := newTestGame(t)
	enter(t, g, scene.KindVillage, scene.Params{})
	v := village(t, g)

	press(t, g, input.Rune('v'))

	require.True(t, v.dialog.Visible())
	assert.Equal(t, "", v.dialog.Speaker())
	tick(t, g, 100)
	assert.Equal(t, "There's no one close enough to talk to.", v.dialog.Text())

	// v with an overlay open closes it instead.
	press(t, g, input.Rune('v'))
	assert.False(t, v.dialog.Visible())
}

func TestVillagerLinesFollowQuest(t *testing.T) {
	tests := []struct {
		quest state.Quest
		line  string
	}{
		{state.QuestAccepted, "You must hurry to the cave and defeat the evil that lurks there!"},
		{state.QuestComplete, "You've defeated the evil! You're our hero!"},
	}

	for _, tt := range tests {
		t.Run(tt.quest.String(), func(t *testing.T) {
			g, _ := newTestGame(t)
			g.Store().SetQuest(tt.quest)
			enter(t, g, scene.KindVillage, scene.Params{})
			v := village(t, g)

			v.ex.player.X, v.ex.player.Y = 110, 150
			press(t, g, input.KeySpace)

			require.True(t, v.dialog.Visible())
			assert.Equal(t, "Villager", v.dialog.Speaker())
			tick(t, g, 100)
			assert.Equal(t, tt.line, strings.ReplaceAll(v.dialog.Text(), "\n", " "))
		})
	}
}

func TestMenuPanelsToggleExclusively(t *testing.T) {
	g, _ := newTestGame(t)
	g.Store().SetQuest(state.QuestAccepted)
	enter(t, g, scene.KindVillage, scene.Params{})
	v := village(t, g)

	press(t, g, input.Rune('i'))
	require.True(t, v.inventory.Visible())
	assert.Equal(t, []string{"INVENTORY", "- Wooden Sword"}, v.inventory.Lines())

	press(t, g, input.Rune('h'))
	assert.False(t, v.inventory.Visible())
	require.True(t, v.status.Visible())
	assert.Equal(t, []string{"HERO STATUS", "HP: 100/100", "Level: 1"}, v.status.Lines())

	press(t, g, input.Rune('h'))
	assert.False(t, v.Overlays.AnyVisible())

	press(t, g, input.Rune('e'))
	assert.Equal(t, []string{"EQUIPMENT", "Weapon: Wooden Sword (+5)", "Attack: 15"}, v.equip.Lines())

	press(t, g, input.Rune('c'))
	assert.False(t, v.equip.Visible())
	assert.Equal(t, commandLines, v.ex.commands.Lines())

	press(t, g, input.KeySpace)
	assert.False(t, v.Overlays.AnyVisible())
}

func TestEmptyInventoryPanel(t *testing.T) {
	g, _ := newTestGame(t)
	enter(t, g, scene.KindVillage, scene.Params{})
	v := village(t, g)

	press(t, g, input.Rune('i'))
	assert.Equal(t, []string{"INVENTORY", "Your inventory is empty."}, v.inventory.Lines())
	press(t, g, input.Rune('e'))
	assert.Equal(t, []string{"EQUIPMENT", "No weapon equipped."}, v.equip.Lines())
}

func TestWorldMapZones(t *testing.T) {
	g, _ := newTestGame(t)
	enter(t, g, scene.KindWorldMap, scene.Params{})
	m := g.Scene().(*worldMapScene)
	assert.Equal(t, 200.0, m.ex.player.Y)

	m.ex.player.X, m.ex.player.Y = 160, 5
	tick(t, g, 1)
	require.Equal(t, scene.KindCave, g.Scene().Kind())

	c := g.Scene().(*caveScene)
	c.ex.player.X, c.ex.player.Y = 160, 215
	tick(t, g, 1)
	require.Equal(t, scene.KindWorldMap, g.Scene().Kind())
	m = g.Scene().(*worldMapScene)
	assert.Equal(t, 40.0, m.ex.player.Y, "arrives at the cave mouth")

	m.ex.player.X, m.ex.player.Y = 160, 235
	tick(t, g, 1)
	v := village(t, g)
	assert.False(t, v.interior)
}

func TestWandererContactStartsBattle(t *testing.T) {
	g, _ := newTestGame(t)
	enter(t, g, scene.KindWorldMap, scene.Params{})
	m := g.Scene().(*worldMapScene)
	require.Len(t, m.wanderers, 3)

	w := m.wanderers[0]
	w.X, w.Y = m.ex.player.X+5, m.ex.player.Y
	tick(t, g, 1)

	b, ok := g.Scene().(*battleScene)
	require.True(t, ok)
	assert.Equal(t, "slime", b.def.ID)
	assert.Equal(t, scene.KindWorldMap, b.params.ReturnTo)
	assert.Len(t, m.wanderers, 2)
	assert.True(t, m.TornDown())
}

func TestCaveChestOpensOnce(t *testing.T) {
	g, _ := newTestGame(t)
	enter(t, g, scene.KindCave, scene.Params{})
	c := g.Scene().(*caveScene)

	c.ex.player.X, c.ex.player.Y = 40, 110
	press(t, g, input.KeySpace)

	require.True(t, c.dialog.Visible())
	assert.True(t, g.Store().HasItem("Magic Sword"))
	tick(t, g, 100)
	assert.Equal(t, "You found a Magic Sword!", c.dialog.Text())
	press(t, g, input.KeySpace)
	tick(t, g, 100)
	assert.Equal(t, "Attack power increased by 10!", c.dialog.Text())
	finishDialog(t, g, c.dialog)

	press(t, g, input.KeySpace)
	assert.False(t, c.dialog.Visible())
	assert.Len(t, g.Store().Inventory(), 1)
}

func TestBossTauntLeadsToBossBattle(t *testing.T) {
	g, _ := newTestGame(t)
	g.Store().SetQuest(state.QuestAccepted)
	enter(t, g, scene.KindCave, scene.Params{})
	c := g.Scene().(*caveScene)
	require.NotNil(t, c.boss)

	c.ex.player.X, c.ex.player.Y = 160, 80
	press(t, g, input.KeySpace)
	require.True(t, c.dialog.Visible())
	assert.Equal(t, "Dark Overlord", c.dialog.Speaker())

	finishDialog(t, g, c.dialog)

	b, ok := g.Scene().(*battleScene)
	require.True(t, ok)
	assert.Equal(t, "boss", b.def.ID)
	assert.Equal(t, scene.KindCave, b.params.ReturnTo)
	assert.NotNil(t, b.params.OnVictory)
}

func TestNoBossAfterQuestComplete(t *testing.T) {
	g, _ := newTestGame(t)
	g.Store().SetQuest(state.QuestComplete)
	enter(t, g, scene.KindCave, scene.Params{})
	c := g.Scene().(*caveScene)
	assert.Nil(t, c.boss)

	c.ex.player.X, c.ex.player.Y = 160, 80
	press(t, g, input.KeySpace)
	assert.False(t, c.dialog.Visible())
}

func TestRandomEncounterUsesCaveRoster(t *testing.T) {
	g, _ := newTestGame(t)
	enter(t, g, scene.KindCave, scene.Params{})
	c := g.Scene().(*caveScene)

	c.randomEncounter()
	require.NoError(t, g.manager.Flush(context.Background()))

	b, ok := g.Scene().(*battleScene)
	require.True(t, ok)
	assert.Equal(t, "cave", b.def.ID)
	assert.Equal(t, scene.KindCave, b.params.ReturnTo)
}

func TestBattleRequiresReturnScene(t *testing.T) {
	g, _ := newTestGame(t)

	err := g.manager.ChangeScene(context.Background(), scene.KindBattle, scene.Params{Enemy: "slime"})

	require.Error(t, err)
	assert.True(t, errors.Is(err, scene.ErrMissingParam))
	assert.Nil(t, g.Scene())
	assert.Equal(t, 0, g.env.Hub.Active())
}

func TestBattleRejectsUnknownEnemy(t *testing.T) {
	g, _ := newTestGame(t)

	err := g.manager.ChangeScene(context.Background(), scene.KindBattle, scene.Params{Enemy: "dragon", ReturnTo: scene.KindCave})

	assert.True(t, errors.Is(err, gamedata.ErrUnknownEnemy))
	assert.Equal(t, 0, g.env.Hub.Active())
}

func TestBattleDefaultsToSlime(t *testing.T) {
	g, _ := newTestGame(t)
	enter(t, g, scene.KindBattle, scene.Params{ReturnTo: scene.KindWorldMap})

	b := g.Scene().(*battleScene)
	assert.Equal(t, "slime", b.def.ID)
	assert.Equal(t, BaseAttack, b.player.Attack)
	assert.Equal(t, BaseDefense, b.player.Defense)
	tick(t, g, 100)
	assert.Equal(t, "Combat started! You are facing Slime!", b.dialog.Text())
	assert.False(t, b.menu.Enabled())
}
