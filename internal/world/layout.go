package world

// Playfield size in pixels.
const (
	Width  = 320
	Height = 240
)

// Layout is the static geometry of one area: walls block movement, zones
// trigger transitions.
type Layout struct {
	Walls []Rect
	Zones map[string]Rect
}

// Blocked reports whether box overlaps any wall.
func (l *Layout) Blocked(box Rect) bool {
	for _, w := range l.Walls {
		if box.Intersects(w) {
			return true
		}
	}
	return false
}

// ZoneAt returns the name of the first zone containing (x, y), or "".
// Only the named zones are checked, in the order given.
func (l *Layout) ZoneAt(x, y float64, names ...string) string {
	for _, name := range names {
		if z, ok := l.Zones[name]; ok && z.Contains(x, y) {
			return name
		}
	}
	return ""
}

// Zone names.
const (
	ZoneExit    = "exit"
	ZoneHouse   = "house"
	ZoneVillage = "village"
	ZoneCave    = "cave"
)

// VillageInterior is the sage's house.
func VillageInterior() *Layout {
	return &Layout{
		Zones: map[string]Rect{
			ZoneExit: {X: Width/2 - 15, Y: Height - 25, Width: 30, Height: 25},
		},
	}
}

// VillageExterior has a path south to the world map and the player's house
// entrance.
func VillageExterior() *Layout {
	return &Layout{
		Zones: map[string]Rect{
			ZoneExit:  {X: Width/2 - 20, Y: Height - 30, Width: 40, Height: 30},
			ZoneHouse: {X: Width/2 - 5, Y: 55, Width: 10, Height: 15},
		},
	}
}

// WorldMap joins the village (south) and the cave (north).
func WorldMap() *Layout {
	return &Layout{
		Zones: map[string]Rect{
			ZoneVillage: {X: Width/2 - 15, Y: Height - 20, Width: 30, Height: 20},
			ZoneCave:    {X: Width/2 - 15, Y: 0, Width: 30, Height: 20},
		},
	}
}

// Cave is a small maze with an exit at the bottom.
func Cave() *Layout {
	return &Layout{
		Walls: []Rect{
			// Outer walls
			{X: 0, Y: 0, Width: Width, Height: 20},
			{X: 0, Y: Height - 20, Width: Width, Height: 20},
			{X: 0, Y: 0, Width: 20, Height: Height},
			{X: Width - 20, Y: 0, Width: 20, Height: Height},
			// Inner maze
			{X: 60, Y: 60, Width: 100, Height: 20},
			{X: 200, Y: 60, Width: 60, Height: 20},
			{X: 60, Y: 60, Width: 20, Height: 80},
			{X: 200, Y: 120, Width: 20, Height: 60},
			{X: 60, Y: 160, Width: 120, Height: 20},
			{X: 220, Y: 160, Width: 40, Height: 20},
		},
		Zones: map[string]Rect{
			ZoneExit: {X: Width/2 - 10, Y: Height - 30, Width: 20, Height: 15},
		},
	}
}
