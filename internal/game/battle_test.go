package game

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samdwyer/pixeladventure/internal/clock"
	"github.com/samdwyer/pixeladventure/internal/combat"
	"github.com/samdwyer/pixeladventure/internal/input"
	"github.com/samdwyer/pixeladventure/internal/scene"
	"github.com/samdwyer/pixeladventure/internal/state"
)

// fight plays the active battle choosing option every turn until the scene
// changes, and returns the battle it played.
func fight(t *testing.T, g *Game, clk *clock.Manual, option int) *battleScene {
	t.Helper()
	b, ok := g.Scene().(*battleScene)
	require.True(t, ok)

	for i := 0; i < 1000; i++ {
		if g.Scene() != scene.Scene(b) {
			return b
		}
		switch {
		case b.dialog.Visible():
			press(t, g, input.KeyEnter)
		case b.menu.Enabled():
			for b.menu.Index() != option {
				press(t, g, input.KeyDown)
			}
			press(t, g, input.KeyEnter)
		default:
			clk.Advance(time.Second)
			tick(t, g, 1)
		}
	}
	t.Fatal("battle did not end")
	return nil
}

func TestBattleVictoryReturnsAndKeepsDamage(t *testing.T) {
	g, clk := newTestGame(t)
	enter(t, g, scene.KindBattle, scene.Params{Enemy: "slime", ReturnTo: scene.KindWorldMap})

	b := fight(t, g, clk, 0)

	assert.Equal(t, combat.ResultVictory, b.encounter.Result())
	assert.Equal(t, scene.KindWorldMap, g.Scene().Kind())
	assert.Less(t, g.Store().PlayerHP(), state.StartHP, "the slime got at least one turn")
	assert.Equal(t, b.player.HP, g.Store().PlayerHP())
	assert.True(t, b.TornDown())
	liveBindings(t, g)
}

func TestBossVictoryCompletesQuest(t *testing.T) {
	g, clk := newTestGame(t)
	g.Store().SetQuest(state.QuestAccepted)
	g.Store().AddItem(state.Item{Name: "Test Blade", Type: state.ItemWeapon, Power: 1000})
	enter(t, g, scene.KindBattle, scene.Params{
		Enemy:    "boss",
		ReturnTo: scene.KindCave,
		OnVictory: func(s *state.Store) {
			s.SetQuest(state.QuestComplete)
		},
	})

	b := fight(t, g, clk, 0)

	assert.Equal(t, 1, b.encounter.Turns())
	assert.Equal(t, state.QuestComplete, g.Store().Quest())
	c, ok := g.Scene().(*caveScene)
	require.True(t, ok)
	assert.Nil(t, c.boss)
}

func TestDefeatResetsToTitle(t *testing.T) {
	g, clk := newTestGame(t)
	g.Store().SetPlayerHP(1)
	g.Store().SetQuest(state.QuestAccepted)
	enter(t, g, scene.KindBattle, scene.Params{Enemy: "boss", ReturnTo: scene.KindCave})

	b := fight(t, g, clk, 0)

	assert.Equal(t, combat.ResultDefeat, b.encounter.Result())
	assert.Equal(t, scene.KindTitle, g.Scene().Kind())
	assert.Equal(t, state.StartHP, g.Store().PlayerHP())
	assert.Equal(t, state.QuestNotStarted, g.Store().Quest())
}

func TestFleeReturnsWithoutQuestChange(t *testing.T) {
	g, clk := newTestGame(t)
	g.Store().SetQuest(state.QuestAccepted)
	enter(t, g, scene.KindBattle, scene.Params{
		Enemy:    "slime",
		ReturnTo: scene.KindCave,
		OnVictory: func(s *state.Store) {
			s.SetQuest(state.QuestComplete)
		},
	})

	b := fight(t, g, clk, 2)

	assert.Equal(t, combat.ResultFlee, b.encounter.Result())
	assert.Equal(t, scene.KindCave, g.Scene().Kind())
	assert.Equal(t, state.QuestAccepted, g.Store().Quest())
}

func TestMenuDisabledWhileMessageShows(t *testing.T) {
	g, clk := newTestGame(t)
	enter(t, g, scene.KindBattle, scene.Params{Enemy: "cave", ReturnTo: scene.KindCave})
	b := g.Scene().(*battleScene)

	assert.True(t, b.menu.Visible())
	assert.True(t, b.dialog.Visible())
	assert.False(t, b.menu.Enabled())
	assert.ElementsMatch(t, []string{"dialog", "combat"}, b.Overlays.VisibleNames())

	finishDialog(t, g, b.dialog)
	require.True(t, b.menu.Enabled())

	press(t, g, input.KeyEnter)
	assert.Equal(t, combat.PhaseEnemyTurn, b.encounter.Phase())
	assert.False(t, b.menu.Enabled())

	// The enemy acts after the delay even if the message is still open.
	clk.Advance(time.Second)
	tick(t, g, 1)
	assert.Equal(t, combat.PhasePlayerTurn, b.encounter.Phase())
	assert.False(t, b.menu.Enabled())

	finishDialog(t, g, b.dialog)
	assert.True(t, b.menu.Enabled())
	assert.Less(t, b.player.HP, state.StartHP)
}

func TestPendingEnemyTurnDiesWithScene(t *testing.T) {
	g, clk := newTestGame(t)
	enter(t, g, scene.KindBattle, scene.Params{Enemy: "slime", ReturnTo: scene.KindWorldMap})
	b := g.Scene().(*battleScene)
	finishDialog(t, g, b.dialog)

	press(t, g, input.KeyEnter)
	require.Equal(t, combat.PhaseEnemyTurn, b.encounter.Phase())
	require.Equal(t, 1, b.Scheduler.Pending())

	enter(t, g, scene.KindWorldMap, scene.Params{})
	clk.Advance(5 * time.Second)
	tick(t, g, 1)

	assert.Equal(t, combat.PhaseEnemyTurn, b.encounter.Phase())
	assert.Equal(t, state.StartHP, b.player.HP)
	assert.Equal(t, state.StartHP, g.Store().PlayerHP())
	assert.Equal(t, scene.KindWorldMap, g.Scene().Kind())
}

func TestBattleHealthBarsFollowDamage(t *testing.T) {
	g, _ := newTestGame(t)
	enter(t, g, scene.KindBattle, scene.Params{Enemy: "slime", ReturnTo: scene.KindWorldMap})
	b := g.Scene().(*battleScene)
	finishDialog(t, g, b.dialog)

	press(t, g, input.KeyEnter)

	w, _ := b.enemyBar.fill.Size()
	assert.Less(t, w, float64(barWidth))
	assert.NotEqual(t, "20/20", b.enemyBar.label.Text())
}
