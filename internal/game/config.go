package game

import (
	"time"

	"github.com/samdwyer/pixeladventure/internal/clock"
	"github.com/samdwyer/pixeladventure/internal/combat"
	"github.com/samdwyer/pixeladventure/internal/dialog"
	"github.com/samdwyer/pixeladventure/internal/gamedata"
)

// Config holds game configuration options.
type Config struct {
	// Seed for random number generation. Used for reproducible encounters.
	// A seed of 0 means a random seed will be generated.
	Seed int64

	// TextSpeed is the typewriter speed in characters per frame unit.
	TextSpeed float64

	// EnemyDelay is the wall-clock pause before the enemy acts.
	EnemyDelay time.Duration

	// Clock drives scheduled tasks. Defaults to the system clock.
	Clock clock.Clock

	// Content overrides the embedded game data.
	Content *gamedata.Content
}

func (c Config) withDefaults() Config {
	if c.Seed == 0 {
		c.Seed = time.Now().UnixNano()
	}
	if c.TextSpeed <= 0 {
		c.TextSpeed = dialog.DefaultSpeed
	}
	if c.EnemyDelay <= 0 {
		c.EnemyDelay = combat.DefaultEnemyDelay
	}
	if c.Clock == nil {
		c.Clock = clock.System{}
	}
	return c
}
