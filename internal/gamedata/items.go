package gamedata

import "github.com/samdwyer/pixeladventure/internal/state"

// Item IDs referenced by the scenes.
const (
	ItemWoodenSword = "wooden_sword"
	ItemMagicSword  = "magic_sword"
)

// ItemDef defines an item loaded from YAML.
type ItemDef struct {
	ID    string `yaml:"id"`
	Name  string `yaml:"name"`
	Type  string `yaml:"type"`
	Power int    `yaml:"power"`
}

// Item converts the definition to an inventory entry.
func (d *ItemDef) Item() state.Item {
	return state.Item{Name: d.Name, Type: state.ItemType(d.Type), Power: d.Power}
}

// ItemsFile represents the structure of items.yaml.
type ItemsFile struct {
	Items []ItemDef `yaml:"items"`
}

// LoadItems loads item definitions from the embedded items.yaml file.
func LoadItems() ([]ItemDef, error) {
	file, err := Load[ItemsFile]("items.yaml")
	if err != nil {
		return nil, err
	}
	return file.Items, nil
}
