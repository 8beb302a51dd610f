package combat

import (
	"fmt"
	"math"
)

const (
	// DefendBonus is the defense gained per Defend. It never decays within an
	// encounter.
	DefendBonus = 2
	// FleeChance is the probability that Flee succeeds.
	FleeChance = 0.7
	// attackVariance scales the attacker's roll: attack × (1 + U×variance).
	attackVariance = 0.2
)

// Randomizer supplies uniform samples in [0, 1). *rand.Rand satisfies it.
type Randomizer interface {
	Float64() float64
}

// EffectResult contains the outcome of resolving an action.
type EffectResult struct {
	Success bool
	Damage  int    // Damage dealt by an attack
	Defense int    // Defense gained by defending
	Fled    bool   // True if a flee attempt succeeded
	Message string // Human-readable description
}

// EffectResolver calculates and applies action effects.
type EffectResolver struct {
	rng Randomizer
}

// NewEffectResolver creates a new effect resolver drawing rolls from rng.
func NewEffectResolver(rng Randomizer) *EffectResolver {
	return &EffectResolver{rng: rng}
}

// Attack hits target with a damage roll and applies it.
func (r *EffectResolver) Attack(user, target *Combatant) EffectResult {
	damage := CalculateDamage(user.Attack, target.Defense, r.rng.Float64())
	target.TakeDamage(damage)

	return EffectResult{
		Success: true,
		Damage:  damage,
		Message: fmt.Sprintf("%s attacks %s for %d damage!", user.Name, target.Name, damage),
	}
}

// Defend raises the user's defense by DefendBonus.
func (r *EffectResolver) Defend(user *Combatant) EffectResult {
	user.Defense += DefendBonus
	return EffectResult{
		Success: true,
		Defense: DefendBonus,
		Message: fmt.Sprintf("%s defends and gains +%d defense!", user.Name, DefendBonus),
	}
}

// Skill announces a named skill. Skills have no mechanical effect yet.
func (r *EffectResolver) Skill(user, target *Combatant, skill string) EffectResult {
	return EffectResult{
		Success: true,
		Message: fmt.Sprintf("%s uses %s on %s!", user.Name, skill, target.Name),
	}
}

// Flee rolls against FleeChance.
func (r *EffectResolver) Flee(user *Combatant) EffectResult {
	if r.rng.Float64() < FleeChance {
		return EffectResult{
			Success: true,
			Fled:    true,
			Message: user.Name + " successfully fled!",
		}
	}
	return EffectResult{
		Success: false,
		Message: user.Name + " failed to flee!",
	}
}

// CalculateDamage returns max(1, floor(attack×(1+u×0.2) − defense×0.5)) for a
// roll u in [0, 1).
func CalculateDamage(attack, defense int, u float64) int {
	raw := float64(attack)*(1+u*attackVariance) - float64(defense)*0.5
	damage := int(math.Floor(raw))
	if damage < 1 {
		damage = 1
	}
	return damage
}
