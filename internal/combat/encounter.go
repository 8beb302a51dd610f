package combat

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/samdwyer/pixeladventure/internal/clock"
	"github.com/samdwyer/pixeladventure/internal/telemetry"
)

// DefaultEnemyDelay is the pause between a player action and the enemy turn.
const DefaultEnemyDelay = time.Second

var (
	// ErrNoEnemies is returned by Start without any enemy.
	ErrNoEnemies = errors.New("combat: no enemies")
	// ErrAlreadyStarted is returned by a second Start on the same encounter.
	ErrAlreadyStarted = errors.New("combat: encounter already started")
)

// Phase represents the current phase of an encounter.
type Phase int

const (
	// PhaseInactive - not started yet
	PhaseInactive Phase = iota
	// PhasePlayerTurn - waiting for the player's action
	PhasePlayerTurn
	// PhaseEnemyTurn - the enemy turn is scheduled or running
	PhaseEnemyTurn
	// PhaseResolved - victory, defeat or flee; terminal
	PhaseResolved
)

// String returns a human-readable phase name.
func (p Phase) String() string {
	switch p {
	case PhaseInactive:
		return "inactive"
	case PhasePlayerTurn:
		return "player_turn"
	case PhaseEnemyTurn:
		return "enemy_turn"
	case PhaseResolved:
		return "resolved"
	default:
		return "unknown"
	}
}

// Result is how an encounter ended.
type Result int

const (
	ResultNone Result = iota
	ResultVictory
	ResultDefeat
	ResultFlee
)

// String returns a human-readable result name.
func (r Result) String() string {
	switch r {
	case ResultNone:
		return "none"
	case ResultVictory:
		return "victory"
	case ResultDefeat:
		return "defeat"
	case ResultFlee:
		return "flee"
	default:
		return "unknown"
	}
}

// Message returns the line shown when an encounter ends with r.
func (r Result) Message() string {
	switch r {
	case ResultVictory:
		return "You defeated all enemies!"
	case ResultDefeat:
		return "You were defeated!"
	case ResultFlee:
		return "You fled from combat!"
	default:
		return ""
	}
}

// ActionKind is one of the player's choices on their turn.
type ActionKind int

const (
	ActionAttack ActionKind = iota
	ActionDefend
	ActionSkill
	ActionFlee
)

// String returns a human-readable action name.
func (k ActionKind) String() string {
	switch k {
	case ActionAttack:
		return "attack"
	case ActionDefend:
		return "defend"
	case ActionSkill:
		return "skill"
	case ActionFlee:
		return "flee"
	default:
		return "unknown"
	}
}

// Action is a player command. Target indexes the enemy roster; a dead or out
// of range target falls back to the first living enemy.
type Action struct {
	Kind   ActionKind
	Target int
	Skill  string
}

// Options configures an encounter. Callbacks run on the goroutine that pumps
// the scheduler.
type Options struct {
	// Rand drives damage and flee rolls. Required.
	Rand Randomizer

	// Scheduler runs the delayed enemy turn. When nil the enemy turn runs
	// synchronously at the end of the player's action.
	Scheduler *clock.Scheduler

	// EnemyDelay defaults to DefaultEnemyDelay.
	EnemyDelay time.Duration

	// OnEnemyTurn receives the messages of one enemy turn.
	OnEnemyTurn func(messages []string)

	// OnEnd fires exactly once when the encounter resolves.
	OnEnd func(result Result, message string)

	Logger *zap.Logger
}

// Encounter is one run of the combat state machine.
type Encounter struct {
	opts     Options
	resolver *EffectResolver
	logger   *zap.Logger

	player  *Combatant
	enemies []*Combatant
	phase   Phase
	result  Result
	turns   int
	pending *clock.Task
	closed  bool

	span trace.SpanContext
}

// NewEncounter creates an inactive encounter.
func NewEncounter(opts Options) *Encounter {
	if opts.EnemyDelay <= 0 {
		opts.EnemyDelay = DefaultEnemyDelay
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Encounter{
		opts:     opts,
		resolver: NewEffectResolver(opts.Rand),
		logger:   logger,
	}
}

// Start moves the encounter to the player's turn and returns the opening
// message.
func (e *Encounter) Start(ctx context.Context, player *Combatant, enemies ...*Combatant) (string, error) {
	if e.phase != PhaseInactive {
		return "", ErrAlreadyStarted
	}
	if len(enemies) == 0 {
		return "", ErrNoEnemies
	}

	tracer := telemetry.Tracer("combat")
	_, span := tracer.Start(ctx, "combat.start")
	span.SetAttributes(
		attribute.String("player", player.Name),
		attribute.Int("player_hp", player.HP),
		attribute.Int("enemy_count", len(enemies)),
	)
	e.span = span.SpanContext()
	span.End()

	e.player = player
	e.enemies = append([]*Combatant(nil), enemies...)
	e.phase = PhasePlayerTurn

	names := make([]string, len(enemies))
	for i, en := range enemies {
		names[i] = en.Name
	}
	e.logger.Debug("encounter started",
		zap.String("player", player.Name),
		zap.Strings("enemies", names),
	)
	return "Combat started! You are facing " + strings.Join(names, ", ") + "!", nil
}

// Act applies the player's action. It returns the action message and false
// when no action is accepted right now: outside the player's turn, after
// Close, or once resolved.
func (e *Encounter) Act(ctx context.Context, action Action) (string, bool) {
	if e.closed || e.phase != PhasePlayerTurn {
		return "", false
	}

	tracer := telemetry.Tracer("combat")
	_, span := tracer.Start(e.parent(ctx), "combat.turn")
	defer span.End()

	target := e.target(action.Target)
	var result EffectResult
	switch action.Kind {
	case ActionAttack:
		result = e.resolver.Attack(e.player, target)
	case ActionDefend:
		result = e.resolver.Defend(e.player)
	case ActionSkill:
		result = e.resolver.Skill(e.player, target, action.Skill)
	case ActionFlee:
		result = e.resolver.Flee(e.player)
	default:
		return "", false
	}
	e.turns++

	span.SetAttributes(
		attribute.String("actor", e.player.Name),
		attribute.String("action", action.Kind.String()),
		attribute.String("target", target.Name),
		attribute.Int("turn", e.turns),
	)
	if result.Damage > 0 {
		span.SetAttributes(attribute.Int("damage", result.Damage))
	}
	if !result.Success {
		span.SetAttributes(attribute.Bool("failed", true))
	}

	if result.Fled {
		e.end(ctx, ResultFlee)
		return result.Message, true
	}
	if e.checkEnd(ctx) {
		return result.Message, true
	}

	e.phase = PhaseEnemyTurn
	if e.opts.Scheduler == nil {
		e.runEnemyTurn()
	} else {
		e.pending = e.opts.Scheduler.After(e.opts.EnemyDelay, e.runEnemyTurn)
	}
	return result.Message, true
}

// runEnemyTurn has every living enemy attack in roster order.
func (e *Encounter) runEnemyTurn() {
	e.pending = nil
	if e.closed || e.phase != PhaseEnemyTurn {
		return
	}

	tracer := telemetry.Tracer("combat")
	ctx, span := tracer.Start(e.parent(context.Background()), "combat.enemy_turn")
	defer span.End()

	var messages []string
	for _, enemy := range e.enemies {
		if !enemy.IsAlive() {
			continue
		}
		result := e.resolver.Attack(enemy, e.player)
		messages = append(messages, result.Message)

		if !e.player.IsAlive() {
			break
		}
	}
	span.SetAttributes(
		attribute.Int("attacks", len(messages)),
		attribute.Int("player_hp", e.player.HP),
	)

	if !e.checkEnd(ctx) {
		e.phase = PhasePlayerTurn
	}
	if e.opts.OnEnemyTurn != nil {
		e.opts.OnEnemyTurn(messages)
	}
}

// checkEnd resolves the encounter when every enemy or the player is down.
func (e *Encounter) checkEnd(ctx context.Context) bool {
	if e.AliveEnemyCount() == 0 {
		e.end(ctx, ResultVictory)
		return true
	}
	if !e.player.IsAlive() {
		e.end(ctx, ResultDefeat)
		return true
	}
	return false
}

func (e *Encounter) end(ctx context.Context, result Result) {
	if e.phase == PhaseResolved {
		return
	}
	e.phase = PhaseResolved
	e.result = result
	if e.pending != nil {
		e.pending.Cancel()
		e.pending = nil
	}

	tracer := telemetry.Tracer("combat")
	_, span := tracer.Start(e.parent(ctx), "combat.end")
	span.SetAttributes(
		attribute.String("outcome", result.String()),
		attribute.Int("turns_taken", e.turns),
		attribute.Int("player_hp_remaining", e.player.HP),
	)
	span.End()

	e.logger.Info("encounter resolved",
		zap.Stringer("result", result),
		zap.Int("turns", e.turns),
		zap.Int("player_hp", e.player.HP),
	)

	if cb := e.opts.OnEnd; cb != nil {
		e.opts.OnEnd = nil
		cb(result, result.Message())
	}
}

// Close cancels a scheduled enemy turn and stops all further callbacks. An
// unresolved encounter stays unresolved.
func (e *Encounter) Close() {
	e.closed = true
	if e.pending != nil {
		e.pending.Cancel()
		e.pending = nil
	}
}

func (e *Encounter) parent(ctx context.Context) context.Context {
	if e.span.IsValid() && !trace.SpanContextFromContext(ctx).IsValid() {
		return trace.ContextWithSpanContext(ctx, e.span)
	}
	return ctx
}

func (e *Encounter) target(index int) *Combatant {
	if index >= 0 && index < len(e.enemies) && e.enemies[index].IsAlive() {
		return e.enemies[index]
	}
	if en := e.FirstAliveEnemy(); en != nil {
		return en
	}
	return e.enemies[0]
}

// Phase returns the current phase.
func (e *Encounter) Phase() Phase { return e.phase }

// Result returns how the encounter ended, or ResultNone.
func (e *Encounter) Result() Result { return e.result }

// IsActive reports whether the encounter has started and not resolved.
func (e *Encounter) IsActive() bool {
	return e.phase == PhasePlayerTurn || e.phase == PhaseEnemyTurn
}

// Player returns the player combatant.
func (e *Encounter) Player() *Combatant { return e.player }

// Enemies returns the enemy roster in order.
func (e *Encounter) Enemies() []*Combatant {
	return append([]*Combatant(nil), e.enemies...)
}

// Turns returns the number of player actions taken.
func (e *Encounter) Turns() int { return e.turns }

// AliveEnemyCount returns the number of enemies still alive.
func (e *Encounter) AliveEnemyCount() int {
	count := 0
	for _, en := range e.enemies {
		if en.IsAlive() {
			count++
		}
	}
	return count
}

// FirstAliveEnemy returns the first living enemy, or nil.
func (e *Encounter) FirstAliveEnemy() *Combatant {
	for _, en := range e.enemies {
		if en.IsAlive() {
			return en
		}
	}
	return nil
}
