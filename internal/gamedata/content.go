package gamedata

import "fmt"

// Content bundles every registry the scenes read from.
type Content struct {
	Enemies   *EnemyRegistry
	Dialogues *DialogueRegistry
	Items     *ItemRegistry
}

// LoadContent loads all embedded content and checks that every ID the game
// refers to is defined.
func LoadContent() (*Content, error) {
	enemies, err := LoadEnemyRegistry()
	if err != nil {
		return nil, err
	}
	dialogues, err := LoadDialogues()
	if err != nil {
		return nil, err
	}
	items, err := LoadItems()
	if err != nil {
		return nil, err
	}

	c := &Content{
		Enemies:   enemies,
		Dialogues: NewDialogueRegistry(dialogues),
		Items:     NewItemRegistry(items),
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// MustLoadContent loads content, panicking on error.
func MustLoadContent() *Content {
	c, err := LoadContent()
	if err != nil {
		panic(err)
	}
	return c
}

func (c *Content) validate() error {
	for _, id := range []string{"slime", "cave", "boss"} {
		if _, err := c.Enemies.Lookup(id); err != nil {
			return fmt.Errorf("validate content: %w", err)
		}
	}
	for _, id := range []string{DialogueSageIntro, DialogueVillagerQuest, DialogueVillagerHero, DialogueNobodyNear, DialogueBossTaunt} {
		if _, err := c.Dialogues.Lookup(id); err != nil {
			return fmt.Errorf("validate content: %w", err)
		}
	}
	for _, id := range []string{ItemWoodenSword, ItemMagicSword} {
		if _, err := c.Items.Lookup(id); err != nil {
			return fmt.Errorf("validate content: %w", err)
		}
	}
	return nil
}
