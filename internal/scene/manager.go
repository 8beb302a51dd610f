package scene

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"

	"github.com/samdwyer/pixeladventure/internal/render"
	"github.com/samdwyer/pixeladventure/internal/telemetry"
)

type request struct {
	kind   Kind
	params Params
}

// Manager owns the active scene and swaps it on request.
type Manager struct {
	env       *Env
	stage     *render.Node
	factories map[Kind]Factory
	logger    *zap.Logger

	current     Scene
	pending     *request
	transitions int
}

// NewManager creates a manager that attaches scenes under stage. It becomes
// env's scene requester.
func NewManager(env *Env, stage *render.Node) *Manager {
	m := &Manager{
		env:       env,
		stage:     stage,
		factories: make(map[Kind]Factory),
		logger:    env.Logger.Named("scene"),
	}
	env.Scenes = m
	return m
}

// Register sets the factory for kind.
func (m *Manager) Register(kind Kind, f Factory) {
	m.factories[kind] = f
}

// Current returns the active scene, or nil.
func (m *Manager) Current() Scene { return m.current }

// Transitions returns how many scene changes completed.
func (m *Manager) Transitions() int { return m.transitions }

// ChangeScene tears down the active scene and then builds and attaches the
// next one. An unknown kind fails before anything is torn down. A failing
// factory leaves no active scene.
func (m *Manager) ChangeScene(ctx context.Context, kind Kind, params Params) error {
	factory, ok := m.factories[kind]
	if !ok {
		return fmt.Errorf("change scene to %s: %w", kind, ErrUnknownKind)
	}

	tracer := telemetry.Tracer("scene")
	ctx, span := tracer.Start(ctx, "scene.change")
	defer span.End()

	from := KindNone
	if m.current != nil {
		from = m.current.Kind()
		span.SetAttributes(attribute.String("from_id", m.current.ID()))
		m.current.Teardown()
		m.current = nil
	}
	params.From = from
	span.SetAttributes(
		attribute.String("from", from.String()),
		attribute.String("to", kind.String()),
	)

	next, err := factory(ctx, m.env, params)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		m.logger.Error("scene construction failed",
			zap.Stringer("from", from),
			zap.Stringer("to", kind),
			zap.Error(err),
		)
		return fmt.Errorf("build %s scene: %w", kind, err)
	}

	m.current = next
	m.stage.Add(next.Root())
	m.transitions++

	span.SetAttributes(attribute.String("scene_id", next.ID()))
	m.logger.Info("scene changed",
		zap.Stringer("from", from),
		zap.Stringer("to", kind),
		zap.String("scene_id", next.ID()),
	)
	return nil
}

// Request queues a change to apply at the next Flush. A later request
// replaces an earlier one.
func (m *Manager) Request(kind Kind, params Params) {
	if m.pending != nil {
		m.logger.Debug("scene request replaced",
			zap.Stringer("dropped", m.pending.kind),
			zap.Stringer("to", kind),
		)
	}
	m.pending = &request{kind: kind, params: params}
}

// Pending reports whether a change is queued.
func (m *Manager) Pending() bool { return m.pending != nil }

// Flush applies a queued change. Call it after every tick and key dispatch.
func (m *Manager) Flush(ctx context.Context) error {
	if m.pending == nil {
		return nil
	}
	req := m.pending
	m.pending = nil
	return m.ChangeScene(ctx, req.kind, req.params)
}

// Update forwards a frame tick to the active scene.
func (m *Manager) Update(elapsed float64) {
	if m.current != nil {
		m.current.Update(elapsed)
	}
}

// Close tears down the active scene.
func (m *Manager) Close() {
	if m.current != nil {
		m.current.Teardown()
		m.current = nil
	}
	m.pending = nil
}
