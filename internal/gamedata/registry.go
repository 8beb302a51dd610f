package gamedata

import (
	"errors"
	"fmt"
	"math/rand"
)

var (
	// ErrUnknownEnemy is returned when an enemy ID is not in the roster.
	ErrUnknownEnemy = errors.New("unknown enemy")
	// ErrUnknownDialogue is returned when a script ID is not defined.
	ErrUnknownDialogue = errors.New("unknown dialogue")
	// ErrUnknownItem is returned when an item ID is not defined.
	ErrUnknownItem = errors.New("unknown item")
)

// EnemyRegistry holds loaded enemy definitions and provides spawning utilities.
type EnemyRegistry struct {
	enemies []EnemyDef
}

// NewEnemyRegistry creates a registry from loaded enemy definitions.
func NewEnemyRegistry(enemies []EnemyDef) *EnemyRegistry {
	return &EnemyRegistry{enemies: enemies}
}

// LoadEnemyRegistry loads and creates a registry from the embedded enemies.yaml.
func LoadEnemyRegistry() (*EnemyRegistry, error) {
	enemies, err := LoadEnemies()
	if err != nil {
		return nil, err
	}
	if len(enemies) == 0 {
		return nil, errors.New("no enemies loaded from enemies.yaml")
	}
	return NewEnemyRegistry(enemies), nil
}

// SpawnRandom selects an enemy that appears in zone using weighted
// probability. It returns nil when nothing spawns there.
func (r *EnemyRegistry) SpawnRandom(rng *rand.Rand, zone string) *EnemyDef {
	total := 0
	for i := range r.enemies {
		if r.enemies[i].InZone(zone) {
			total += r.enemies[i].SpawnWeight
		}
	}
	if total <= 0 {
		return nil
	}

	roll := rng.Intn(total)

	cumulative := 0
	for i := range r.enemies {
		if !r.enemies[i].InZone(zone) {
			continue
		}
		cumulative += r.enemies[i].SpawnWeight
		if roll < cumulative {
			return &r.enemies[i]
		}
	}
	return nil
}

// GetByID returns the enemy definition with the given ID, or nil if not found.
func (r *EnemyRegistry) GetByID(id string) *EnemyDef {
	for i := range r.enemies {
		if r.enemies[i].ID == id {
			return &r.enemies[i]
		}
	}
	return nil
}

// Lookup is GetByID with an error wrapping ErrUnknownEnemy.
func (r *EnemyRegistry) Lookup(id string) (*EnemyDef, error) {
	if def := r.GetByID(id); def != nil {
		return def, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownEnemy, id)
}

// All returns all enemy definitions.
func (r *EnemyRegistry) All() []EnemyDef {
	return r.enemies
}

// Count returns the number of enemy types in the registry.
func (r *EnemyRegistry) Count() int {
	return len(r.enemies)
}

// =============================================================================
// DialogueRegistry
// =============================================================================

// DialogueRegistry indexes dialog scripts by ID.
type DialogueRegistry struct {
	dialogues map[string]*DialogueDef
	all       []DialogueDef
}

// NewDialogueRegistry creates a registry from loaded scripts.
func NewDialogueRegistry(dialogues []DialogueDef) *DialogueRegistry {
	registry := &DialogueRegistry{
		dialogues: make(map[string]*DialogueDef),
		all:       dialogues,
	}
	for i := range dialogues {
		registry.dialogues[dialogues[i].ID] = &dialogues[i]
	}
	return registry
}

// GetByID returns the script with the given ID, or nil if not found.
func (r *DialogueRegistry) GetByID(id string) *DialogueDef {
	return r.dialogues[id]
}

// Lookup is GetByID with an error wrapping ErrUnknownDialogue.
func (r *DialogueRegistry) Lookup(id string) (*DialogueDef, error) {
	if d := r.dialogues[id]; d != nil {
		return d, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownDialogue, id)
}

// Count returns the number of scripts in the registry.
func (r *DialogueRegistry) Count() int {
	return len(r.all)
}

// =============================================================================
// ItemRegistry
// =============================================================================

// ItemRegistry indexes item definitions by ID.
type ItemRegistry struct {
	items map[string]*ItemDef
}

// NewItemRegistry creates a registry from loaded item definitions.
func NewItemRegistry(items []ItemDef) *ItemRegistry {
	registry := &ItemRegistry{items: make(map[string]*ItemDef)}
	for i := range items {
		registry.items[items[i].ID] = &items[i]
	}
	return registry
}

// GetByID returns the item definition with the given ID, or nil if not found.
func (r *ItemRegistry) GetByID(id string) *ItemDef {
	return r.items[id]
}

// Lookup is GetByID with an error wrapping ErrUnknownItem.
func (r *ItemRegistry) Lookup(id string) (*ItemDef, error) {
	if it := r.items[id]; it != nil {
		return it, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownItem, id)
}
