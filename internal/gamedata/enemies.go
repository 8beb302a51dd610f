package gamedata

import (
	"image/color"
)

// Shape names used for enemy placeholders.
const (
	ShapeCircle   = "circle"
	ShapeRect     = "rect"
	ShapeTriangle = "triangle"
)

// EnemyDef defines an enemy type loaded from YAML.
type EnemyDef struct {
	ID          string   `yaml:"id"`          // Unique identifier (e.g., "slime")
	Name        string   `yaml:"name"`        // Display name (e.g., "Slime")
	HP          int      `yaml:"hp"`          // Base hit points
	Attack      int      `yaml:"attack"`      // Base attack power
	Defense     int      `yaml:"defense"`     // Base defense value
	Color       string   `yaml:"color"`       // Hex color of the placeholder shape
	Shape       string   `yaml:"shape"`       // circle, rect or triangle
	Size        float64  `yaml:"size"`        // Placeholder size in pixels
	Arena       string   `yaml:"arena"`       // Hex color of the battle background
	Zones       []string `yaml:"zones"`       // Areas where the enemy appears at random
	SpawnWeight int      `yaml:"spawnWeight"` // Relative spawn frequency within a zone
}

// RGBA returns the placeholder color, white if malformed.
func (e *EnemyDef) RGBA() color.RGBA {
	c, err := ParseHexColor(e.Color)
	if err != nil {
		return color.RGBA{0xff, 0xff, 0xff, 0xff}
	}
	return c
}

// ArenaRGBA returns the battle background color, black if malformed.
func (e *EnemyDef) ArenaRGBA() color.RGBA {
	c, err := ParseHexColor(e.Arena)
	if err != nil {
		return color.RGBA{0, 0, 0, 0xff}
	}
	return c
}

// InZone reports whether the enemy spawns in zone.
func (e *EnemyDef) InZone(zone string) bool {
	for _, z := range e.Zones {
		if z == zone {
			return true
		}
	}
	return false
}

// EnemiesFile represents the structure of enemies.yaml.
type EnemiesFile struct {
	Enemies []EnemyDef `yaml:"enemies"`
}

// LoadEnemies loads enemy definitions from the embedded enemies.yaml file.
func LoadEnemies() ([]EnemyDef, error) {
	file, err := Load[EnemiesFile]("enemies.yaml")
	if err != nil {
		return nil, err
	}
	return file.Enemies, nil
}
