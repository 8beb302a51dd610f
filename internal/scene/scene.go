// Package scene runs the exclusive top-level gameplay contexts. The Manager
// keeps exactly one scene alive and tears the old one down before building
// the next; Base gives every scene the teardown contract for its key
// bindings, overlays and scheduled tasks.
package scene

import (
	"context"
	"errors"
	"math/rand"
	"time"

	"go.uber.org/zap"

	"github.com/samdwyer/pixeladventure/internal/clock"
	"github.com/samdwyer/pixeladventure/internal/gamedata"
	"github.com/samdwyer/pixeladventure/internal/input"
	"github.com/samdwyer/pixeladventure/internal/render"
	"github.com/samdwyer/pixeladventure/internal/state"
)

var (
	// ErrMissingParam is returned by a factory when a required parameter is
	// absent.
	ErrMissingParam = errors.New("missing scene parameter")
	// ErrUnknownKind is returned for a kind without a registered factory.
	ErrUnknownKind = errors.New("unknown scene kind")
)

// Kind identifies one of the scene types.
type Kind int

const (
	KindNone Kind = iota
	KindTitle
	KindVillage
	KindWorldMap
	KindCave
	KindBattle
)

// String returns a human-readable kind name.
func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindTitle:
		return "title"
	case KindVillage:
		return "village"
	case KindWorldMap:
		return "world_map"
	case KindCave:
		return "cave"
	case KindBattle:
		return "battle"
	default:
		return "unknown"
	}
}

// Params is the immutable init bag handed to a factory.
type Params struct {
	// Interior selects the inside of the sage's house.
	Interior bool
	// Enemy is the enemy definition ID fought in a battle.
	Enemy string
	// ReturnTo is where a battle goes after victory or flee. Required for
	// battles.
	ReturnTo Kind
	// OnVictory runs after a won battle, before returning.
	OnVictory func(*state.Store)
	// From is the kind of the scene being replaced. Filled in by the Manager.
	From Kind
}

// Scene is an exclusive gameplay context.
type Scene interface {
	ID() string
	Kind() Kind
	Root() *render.Node
	Update(elapsed float64)
	Teardown()
}

// Factory builds a scene. It must validate params before installing any key
// binding. ctx carries the scene.change span.
type Factory func(ctx context.Context, env *Env, params Params) (Scene, error)

// Requester queues a scene change to apply once the current handler returns.
type Requester interface {
	Request(kind Kind, params Params)
}

// Settings are the tunables scenes read.
type Settings struct {
	TextSpeed  float64
	EnemyDelay time.Duration
}

// Env is everything a scene may touch outside itself.
type Env struct {
	Store    *state.Store
	Hub      *input.Hub
	Clock    clock.Clock
	Rand     *rand.Rand
	Logger   *zap.Logger
	Content  *gamedata.Content
	Settings Settings
	Scenes   Requester
}
