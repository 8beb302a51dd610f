package gamedata

// Dialogue script IDs referenced by the scenes.
const (
	DialogueSageIntro     = "sage_intro"
	DialogueVillagerQuest = "villager_quest"
	DialogueVillagerHero  = "villager_hero"
	DialogueNobodyNear    = "nobody_near"
	DialogueBossTaunt     = "boss_taunt"
)

// DialogueDef is one scripted conversation.
type DialogueDef struct {
	ID      string   `yaml:"id"`
	Speaker string   `yaml:"speaker"`
	Pages   []string `yaml:"pages"`
}

// DialoguesFile represents the structure of dialogue.yaml.
type DialoguesFile struct {
	Dialogues []DialogueDef `yaml:"dialogues"`
}

// LoadDialogues loads the scripts from the embedded dialogue.yaml file.
func LoadDialogues() ([]DialogueDef, error) {
	file, err := Load[DialoguesFile]("dialogue.yaml")
	if err != nil {
		return nil, err
	}
	return file.Dialogues, nil
}
