// Package state holds the game state shared by every scene: player health,
// level, inventory and main quest progress.
package state

// Starting values for a new game.
const (
	StartHP    = 100
	StartLevel = 1
)

// ItemType classifies inventory items.
type ItemType string

const (
	ItemWeapon     ItemType = "weapon"
	ItemConsumable ItemType = "consumable"
)

// Item is one inventory entry.
type Item struct {
	Name  string
	Type  ItemType
	Power int
}

// Quest is the main quest stage.
type Quest int

const (
	// QuestNotStarted - the sage has not spoken yet
	QuestNotStarted Quest = iota
	// QuestAccepted - the player was sent to the cave
	QuestAccepted
	// QuestComplete - the boss is defeated
	QuestComplete
)

// String returns a human-readable stage name.
func (q Quest) String() string {
	switch q {
	case QuestNotStarted:
		return "not_started"
	case QuestAccepted:
		return "accepted"
	case QuestComplete:
		return "complete"
	default:
		return "unknown"
	}
}

// Store is the shared game state. It is only touched from the logic thread.
type Store struct {
	hp        int
	maxHP     int
	level     int
	inventory []Item
	quest     Quest
}

// New returns a store holding a fresh game.
func New() *Store {
	s := &Store{}
	s.Reset()
	return s
}

// Reset restores the starting values.
func (s *Store) Reset() {
	s.hp = StartHP
	s.maxHP = StartHP
	s.level = StartLevel
	s.inventory = nil
	s.quest = QuestNotStarted
}

func (s *Store) PlayerHP() int { return s.hp }
func (s *Store) MaxHP() int { return s.maxHP }
func (s *Store) Level() int { return s.level }

// SetPlayerHP stores hp clamped to [0, MaxHP].
func (s *Store) SetPlayerHP(hp int) {
	switch {
	case hp < 0:
		hp = 0
	case hp > s.maxHP:
		hp = s.maxHP
	}
	s.hp = hp
}

// Inventory returns a copy of the items in pickup order.
func (s *Store) Inventory() []Item {
	out := make([]Item, len(s.inventory))
	copy(out, s.inventory)
	return out
}

// AddItem appends item to the inventory.
func (s *Store) AddItem(item Item) {
	s.inventory = append(s.inventory, item)
}

// HasItem reports whether an item with the given name is held.
func (s *Store) HasItem(name string) bool {
	for _, it := range s.inventory {
		if it.Name == name {
			return true
		}
	}
	return false
}

// Weapon returns the first weapon in the inventory.
func (s *Store) Weapon() (Item, bool) {
	for _, it := range s.inventory {
		if it.Type == ItemWeapon {
			return it, true
		}
	}
	return Item{}, false
}

// WeaponBonus returns the power of the equipped (first) weapon, or 0.
func (s *Store) WeaponBonus() int {
	if w, ok := s.Weapon(); ok {
		return w.Power
	}
	return 0
}

func (s *Store) Quest() Quest { return s.quest }

// SetQuest moves the main quest to stage q.
func (s *Store) SetQuest(q Quest) {
	s.quest = q
}
