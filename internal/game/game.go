// Package game wires the scenes together and drives them from a frontend's
// ticks and key edges.
package game

import (
	"context"
	"fmt"
	"math/rand"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/samdwyer/pixeladventure/internal/gamedata"
	"github.com/samdwyer/pixeladventure/internal/input"
	"github.com/samdwyer/pixeladventure/internal/render"
	"github.com/samdwyer/pixeladventure/internal/scene"
	"github.com/samdwyer/pixeladventure/internal/state"
	"github.com/samdwyer/pixeladventure/internal/telemetry"
)

// Game holds the entire game state.
type Game struct {
	env     *scene.Env
	stage   *render.Node
	manager *scene.Manager
	logger  *zap.Logger
	seed    int64
	ticks   int
	running bool
}

// New creates a new game instance. Call Start to enter the title scene.
func New(cfg Config, logger *zap.Logger) (*Game, error) {
	cfg = cfg.withDefaults()
	if logger == nil {
		logger = zap.NewNop()
	}

	content := cfg.Content
	if content == nil {
		var err error
		content, err = gamedata.LoadContent()
		if err != nil {
			return nil, fmt.Errorf("load content: %w", err)
		}
	}

	env := &scene.Env{
		Store:   state.New(),
		Hub:     input.NewHub(),
		Clock:   cfg.Clock,
		Rand:    rand.New(rand.NewSource(cfg.Seed)),
		Logger:  logger,
		Content: content,
		Settings: scene.Settings{
			TextSpeed:  cfg.TextSpeed,
			EnemyDelay: cfg.EnemyDelay,
		},
	}

	stage := render.NewGroup("stage")
	g := &Game{
		env:    env,
		stage:  stage,
		logger: logger.Named("game"),
		seed:   cfg.Seed,
	}
	g.manager = scene.NewManager(env, stage)
	g.manager.Register(scene.KindTitle, newTitle)
	g.manager.Register(scene.KindVillage, newVillage)
	g.manager.Register(scene.KindWorldMap, newWorldMap)
	g.manager.Register(scene.KindCave, newCave)
	g.manager.Register(scene.KindBattle, newBattle)
	return g, nil
}

// Start enters the title scene.
func (g *Game) Start(ctx context.Context) error {
	tracer := telemetry.Tracer("game")
	ctx, span := tracer.Start(ctx, "game.init")
	defer span.End()

	span.SetAttributes(
		attribute.Int64("seed", g.seed),
		attribute.Int("enemies", g.env.Content.Enemies.Count()),
		attribute.Int("dialogues", g.env.Content.Dialogues.Count()),
	)

	if err := g.manager.ChangeScene(ctx, scene.KindTitle, scene.Params{}); err != nil {
		span.RecordError(err)
		return err
	}
	g.running = true
	g.logger.Info("game started", zap.Int64("seed", g.seed))
	return nil
}

// Tick advances the active scene by elapsed frame units and applies any scene
// change it requested.
func (g *Game) Tick(ctx context.Context, elapsed float64) error {
	if !g.running {
		return nil
	}
	g.ticks++
	g.manager.Update(elapsed)
	return g.manager.Flush(ctx)
}

// HandleKey dispatches one key edge and applies any scene change a handler
// requested. It reports whether some binding received the edge.
func (g *Game) HandleKey(ctx context.Context, ev input.Event) (bool, error) {
	if !g.running {
		return false, nil
	}
	handled := g.env.Hub.Dispatch(ev)
	return handled, g.manager.Flush(ctx)
}

// Stage returns the root render node. The active scene is its only child.
func (g *Game) Stage() *render.Node { return g.stage }

// Scene returns the active scene.
func (g *Game) Scene() scene.Scene { return g.manager.Current() }

// Store returns the shared progress store.
func (g *Game) Store() *state.Store { return g.env.Store }

// Running reports whether the game accepts ticks and keys.
func (g *Game) Running() bool { return g.running }

// Ticks returns how many ticks were processed.
func (g *Game) Ticks() int { return g.ticks }

// Stop ends the game. Later ticks and keys are ignored.
func (g *Game) Stop() {
	g.running = false
}

// Close cleans up game resources.
func (g *Game) Close() {
	g.running = false
	g.manager.Close()
	g.logger.Info("game closed",
		zap.Int("ticks", g.ticks),
		zap.Int("transitions", g.manager.Transitions()),
	)
}
