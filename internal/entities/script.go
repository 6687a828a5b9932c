package entities

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// SceneType classifies a scene
type SceneType string

const (
	SceneNarration      SceneType = "narration"
	SceneLocationChange SceneType = "location_change"
	SceneTown           SceneType = "town"
	SceneDialogue       SceneType = "dialogue"
	SceneCombatNormal   SceneType = "combat_normal"
	SceneItemGet        SceneType = "item_get"
	SceneChoice         SceneType = "choice"
	SceneCombatBoss     SceneType = "combat_boss"
)

// Script files written by the authoring tool use display labels
var sceneTypeLabels = map[string]SceneType{
	"나레이션":   SceneNarration,
	"장소 변경":  SceneLocationChange,
	"마을":     SceneTown,
	"대화":     SceneDialogue,
	"일반 전투":  SceneCombatNormal,
	"아이템 획득": SceneItemGet,
	"선택":     SceneChoice,
	"보스 전투":  SceneCombatBoss,
}

// ParseSceneType accepts either an id such as "combat_boss" or a display label
func ParseSceneType(s string) (SceneType, error) {
	if t, ok := sceneTypeLabels[s]; ok {
		return t, nil
	}
	switch t := SceneType(s); t {
	case SceneNarration, SceneLocationChange, SceneTown, SceneDialogue,
		SceneCombatNormal, SceneItemGet, SceneChoice, SceneCombatBoss:
		return t, nil
	}
	return "", fmt.Errorf("unknown scene type %q", s)
}

// UnmarshalYAML implements yaml.Unmarshaler
func (t *SceneType) UnmarshalYAML(value *yaml.Node) error {
	parsed, err := ParseSceneType(value.Value)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// IsCombat reports whether entering the scene starts an encounter
func (t SceneType) IsCombat() bool {
	return t == SceneCombatNormal || t == SceneCombatBoss
}

// CharacterType classifies a script character
type CharacterType string

const (
	CharacterPlayer        CharacterType = "player"
	CharacterNPC           CharacterType = "npc"
	CharacterMonsterNormal CharacterType = "monster_normal"
	CharacterMonsterBoss   CharacterType = "monster_boss"
)

var characterTypeLabels = map[string]CharacterType{
	"플레이어 캐릭터": CharacterPlayer,
	"NPC":      CharacterNPC,
	"일반 몬스터":   CharacterMonsterNormal,
	"보스 몬스터":   CharacterMonsterBoss,
}

// ParseCharacterType accepts either an id or a display label
func ParseCharacterType(s string) (CharacterType, error) {
	if t, ok := characterTypeLabels[s]; ok {
		return t, nil
	}
	switch t := CharacterType(s); t {
	case CharacterPlayer, CharacterNPC, CharacterMonsterNormal, CharacterMonsterBoss:
		return t, nil
	}
	return "", fmt.Errorf("unknown character type %q", s)
}

// UnmarshalYAML implements yaml.Unmarshaler
func (t *CharacterType) UnmarshalYAML(value *yaml.Node) error {
	parsed, err := ParseCharacterType(value.Value)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// WorldSettings describes the adventure as a whole
type WorldSettings struct {
	Title        string `json:"title" yaml:"title"`
	Description  string `json:"description" yaml:"description"`
	MainConflict string `json:"mainConflict,omitempty" yaml:"mainConflict"`
	KeyLocations string `json:"keyLocations,omitempty" yaml:"keyLocations"`
}

// Character is a script character. Enemy templates may leave stats unset to
// fall back to engine defaults.
type Character struct {
	ID           string        `json:"id" yaml:"id"`
	Name         string        `json:"name" yaml:"name"`
	Type         CharacterType `json:"type" yaml:"type"`
	Description  string        `json:"description" yaml:"description"`
	DialogueSeed string        `json:"dialogueSeed,omitempty" yaml:"dialogueSeed"`
	HP           *int          `json:"hp,omitempty" yaml:"hp"`
	Attack       *int          `json:"attack,omitempty" yaml:"attack"`
	Defense      *int          `json:"defense,omitempty" yaml:"defense"`
	Skills       []string      `json:"skills,omitempty" yaml:"skills"`
}

// CombatDetails lists the enemies of a combat scene
type CombatDetails struct {
	EnemyCharacterIDs []string `json:"enemyCharacterIds" yaml:"enemyCharacterIds"`
	Reward            string   `json:"reward,omitempty" yaml:"reward"`
}

// Choice is one branch of a choice scene
type Choice struct {
	ID          string `json:"id" yaml:"id"`
	Text        string `json:"text" yaml:"text"`
	NextSceneID string `json:"nextSceneId" yaml:"nextSceneId"`
}

// Scene is one step of a stage
type Scene struct {
	ID              string         `json:"id" yaml:"id"`
	StageID         string         `json:"stageId" yaml:"stageId"`
	Title           string         `json:"title" yaml:"title"`
	Type            SceneType      `json:"type" yaml:"type"`
	Content         string         `json:"content" yaml:"content"`
	CharacterIDs    []string       `json:"characterIds" yaml:"characterIds"`
	NextSceneID     string         `json:"nextSceneId,omitempty" yaml:"nextSceneId"`
	NewLocationName string         `json:"newLocationName,omitempty" yaml:"newLocationName"`
	CombatDetails   *CombatDetails `json:"combatDetails,omitempty" yaml:"combatDetails"`
	Item            string         `json:"item,omitempty" yaml:"item"`
	Choices         []Choice       `json:"choices,omitempty" yaml:"choices"`
}

// Stage groups characters and scenes
type Stage struct {
	ID                 string      `json:"id" yaml:"id"`
	Title              string      `json:"title" yaml:"title"`
	SettingDescription string      `json:"settingDescription" yaml:"settingDescription"`
	Characters         []Character `json:"characters" yaml:"characters"`
	Scenes             []Scene     `json:"scenes" yaml:"scenes"`
}

// Script is a complete adventure
type Script struct {
	WorldSettings WorldSettings `json:"worldSettings" yaml:"worldSettings"`
	Stages        []Stage       `json:"stages" yaml:"stages"`
}

// Scene finds a scene by id across all stages
func (s *Script) Scene(sceneID string) (*Scene, bool) {
	for i := range s.Stages {
		for j := range s.Stages[i].Scenes {
			if s.Stages[i].Scenes[j].ID == sceneID {
				return &s.Stages[i].Scenes[j], true
			}
		}
	}
	return nil, false
}

// Character finds a character by id across all stages
func (s *Script) Character(characterID string) (*Character, bool) {
	for i := range s.Stages {
		for j := range s.Stages[i].Characters {
			if s.Stages[i].Characters[j].ID == characterID {
				return &s.Stages[i].Characters[j], true
			}
		}
	}
	return nil, false
}

// StageIndexOf returns the index of the stage holding sceneID, or -1
func (s *Script) StageIndexOf(sceneID string) int {
	for i := range s.Stages {
		for j := range s.Stages[i].Scenes {
			if s.Stages[i].Scenes[j].ID == sceneID {
				return i
			}
		}
	}
	return -1
}

// IsFinalStage reports whether sceneID belongs to the last stage
func (s *Script) IsFinalStage(sceneID string) bool {
	idx := s.StageIndexOf(sceneID)
	return idx >= 0 && idx == len(s.Stages)-1
}

// FindSafeScene returns the relocation target after a defeat: the last
// visited town when known, otherwise the first town of the earliest stage
// that has one before falling back to that stage's first non-combat scene.
func (s *Script) FindSafeScene(lastVisitedTownID string) (string, bool) {
	if lastVisitedTownID != "" {
		if _, ok := s.Scene(lastVisitedTownID); ok {
			return lastVisitedTownID, true
		}
	}
	for _, stage := range s.Stages {
		for _, scene := range stage.Scenes {
			if scene.Type == SceneTown {
				return scene.ID, true
			}
		}
		for _, scene := range stage.Scenes {
			if !scene.Type.IsCombat() {
				return scene.ID, true
			}
		}
	}
	return "", false
}

// StartSceneID returns the first scene of the first stage
func (s *Script) StartSceneID() (string, bool) {
	if len(s.Stages) == 0 || len(s.Stages[0].Scenes) == 0 {
		return "", false
	}
	return s.Stages[0].Scenes[0].ID, true
}

// ResolveNext returns the scene that follows sceneID when its own next id is
// empty: the first scene of the following stage. It returns false at the end
// of the final stage.
func (s *Script) ResolveNext(sceneID, nextSceneID string) (string, bool) {
	if nextSceneID != "" {
		return nextSceneID, true
	}
	idx := s.StageIndexOf(sceneID)
	for i := idx + 1; idx >= 0 && i < len(s.Stages); i++ {
		if len(s.Stages[i].Scenes) > 0 {
			return s.Stages[i].Scenes[0].ID, true
		}
	}
	return "", false
}
