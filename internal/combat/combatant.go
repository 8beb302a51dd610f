// Package combat provides the turn-based combat system: the effect resolver
// for the four player actions and the encounter state machine that alternates
// player and enemy turns.
package combat

// Combatant is a participant in an encounter. HP stays within [0, MaxHP]
// when changed through TakeDamage and Heal.
type Combatant struct {
	Name    string
	HP      int
	MaxHP   int
	Attack  int
	Defense int
}

// NewCombatant creates a combatant at full health.
func NewCombatant(name string, hp, attack, defense int) *Combatant {
	return &Combatant{
		Name:    name,
		HP:      hp,
		MaxHP:   hp,
		Attack:  attack,
		Defense: defense,
	}
}

// IsAlive reports whether the combatant has HP left.
func (c *Combatant) IsAlive() bool {
	return c.HP > 0
}

// TakeDamage lowers HP, never below zero, and returns the damage taken.
func (c *Combatant) TakeDamage(amount int) int {
	if amount <= 0 {
		return 0
	}
	actual := amount
	if actual > c.HP {
		actual = c.HP
	}
	c.HP -= actual
	return actual
}

// Heal raises HP, never above MaxHP, and returns the amount healed.
func (c *Combatant) Heal(amount int) int {
	if amount <= 0 || c.HP >= c.MaxHP {
		return 0
	}
	actual := amount
	if c.HP+actual > c.MaxHP {
		actual = c.MaxHP - c.HP
	}
	c.HP += actual
	return actual
}
