package world

import "testing"

func TestRectContainsIsHalfOpen(t *testing.T) {
	r := Rect{X: 10, Y: 10, Width: 20, Height: 10}

	tests := []struct {
		x, y float64
		want bool
	}{
		{10, 10, true},
		{29.9, 19.9, true},
		{30, 15, false},
		{15, 20, false},
		{9.9, 15, false},
	}
	for _, tt := range tests {
		if got := r.Contains(tt.x, tt.y); got != tt.want {
			t.Errorf("Contains(%v, %v) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestCenteredAndIntersects(t *testing.T) {
	box := Centered(50, 110, 16)
	if box.X != 42 || box.Y != 102 {
		t.Errorf("Centered = %+v", box)
	}
	cx, cy := box.Center()
	if cx != 50 || cy != 110 {
		t.Errorf("Center = (%v, %v)", cx, cy)
	}

	wall := Rect{X: 58, Y: 60, Width: 20, Height: 80}
	if box.Intersects(wall) {
		t.Error("touching edges must not intersect")
	}
	wall.X = 57
	if !box.Intersects(wall) {
		t.Error("overlapping boxes must intersect")
	}
}

func TestCaveBlocked(t *testing.T) {
	cave := Cave()

	if cave.Blocked(Centered(Width/2, Height-40, 16)) {
		t.Error("cave entrance must be free")
	}
	if cave.Blocked(Centered(50, 110, 16)) {
		t.Error("chest corridor must be free")
	}
	if !cave.Blocked(Centered(70, 100, 16)) {
		t.Error("inner wall must block")
	}
	if !cave.Blocked(Centered(10, 100, 16)) {
		t.Error("outer wall must block")
	}
}

func TestZoneAt(t *testing.T) {
	m := WorldMap()

	if got := m.ZoneAt(Width/2, 5, ZoneVillage, ZoneCave); got != ZoneCave {
		t.Errorf("ZoneAt(north) = %q, want cave", got)
	}
	if got := m.ZoneAt(Width/2, Height-5, ZoneVillage, ZoneCave); got != ZoneVillage {
		t.Errorf("ZoneAt(south) = %q, want village", got)
	}
	if got := m.ZoneAt(Width/2, Height/2, ZoneVillage, ZoneCave); got != "" {
		t.Errorf("ZoneAt(middle) = %q, want none", got)
	}
}

func TestClamp(t *testing.T) {
	if Clamp(5, 10, 20) != 10 || Clamp(25, 10, 20) != 20 || Clamp(15, 10, 20) != 15 {
		t.Error("Clamp out of range")
	}
}
