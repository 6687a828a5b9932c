// Package script loads and validates adventure scripts. Scripts are YAML
// documents; JSON exports from the authoring tool load unchanged since YAML
// is a superset of JSON.
package script

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/KirkDiggler/rpg-quest/internal/entities"
	"github.com/KirkDiggler/rpg-quest/internal/errors"
)

// Load reads and validates the script at path
func Load(path string) (*entities.Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NotFoundf("script %s not found", path)
		}
		return nil, errors.Wrapf(err, "failed to read script %s", path)
	}
	return Parse(data)
}

// Parse decodes and validates a script document
func Parse(data []byte) (*entities.Script, error) {
	var s entities.Script
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "failed to parse script")
	}
	if err := Validate(&s); err != nil {
		return nil, err
	}
	return &s, nil
}

// Validate checks that the script can be played: it has a starting scene,
// ids are unique, and every scene, choice and enemy reference resolves.
func Validate(s *entities.Script) error {
	if s == nil {
		return errors.InvalidArgument("script is required")
	}

	vb := errors.NewValidationBuilder()
	if len(s.Stages) == 0 {
		vb.Field("stages", "script has no stages")
		return vb.Build()
	}
	if len(s.Stages[0].Scenes) == 0 {
		vb.Field("stages[0].scenes", "first stage has no scenes")
	}

	scenes := make(map[string]struct{})
	characters := make(map[string]*entities.Character)
	for i := range s.Stages {
		stage := &s.Stages[i]
		if stage.ID == "" {
			vb.RequiredField(fieldf("stages[%d].id", i))
		}
		for j := range stage.Characters {
			c := &stage.Characters[j]
			if c.ID == "" {
				vb.RequiredField(fieldf("stages[%d].characters[%d].id", i, j))
				continue
			}
			if _, dup := characters[c.ID]; dup {
				vb.Fieldf(fieldf("stages[%d].characters[%d].id", i, j), "duplicate character id %s", c.ID)
			}
			characters[c.ID] = c
		}
		for j := range stage.Scenes {
			id := stage.Scenes[j].ID
			if id == "" {
				vb.RequiredField(fieldf("stages[%d].scenes[%d].id", i, j))
				continue
			}
			if _, dup := scenes[id]; dup {
				vb.Fieldf(fieldf("stages[%d].scenes[%d].id", i, j), "duplicate scene id %s", id)
			}
			scenes[id] = struct{}{}
		}
	}

	for i := range s.Stages {
		for j := range s.Stages[i].Scenes {
			validateScene(vb, fieldf("stages[%d].scenes[%d]", i, j), &s.Stages[i].Scenes[j], scenes, characters)
		}
	}

	return vb.Build()
}

func validateScene(vb *errors.ValidationBuilder, field string, scene *entities.Scene,
	scenes map[string]struct{}, characters map[string]*entities.Character) {
	if scene.NextSceneID != "" {
		if _, ok := scenes[scene.NextSceneID]; !ok {
			vb.Fieldf(field+".nextSceneId", "unknown scene %s", scene.NextSceneID)
		}
	}

	switch scene.Type {
	case entities.SceneChoice:
		if len(scene.Choices) == 0 {
			vb.Field(field+".choices", "choice scene has no choices")
		}
		for k, choice := range scene.Choices {
			if choice.NextSceneID == "" {
				continue
			}
			if _, ok := scenes[choice.NextSceneID]; !ok {
				vb.Fieldf(fieldf("%s.choices[%d].nextSceneId", field, k), "unknown scene %s", choice.NextSceneID)
			}
		}
	case entities.SceneCombatNormal, entities.SceneCombatBoss:
		if scene.CombatDetails == nil || len(scene.CombatDetails.EnemyCharacterIDs) == 0 {
			vb.Field(field+".combatDetails", "combat scene has no enemies")
			return
		}
		for k, id := range scene.CombatDetails.EnemyCharacterIDs {
			c, ok := characters[id]
			if !ok {
				vb.Fieldf(fieldf("%s.combatDetails.enemyCharacterIds[%d]", field, k), "unknown character %s", id)
				continue
			}
			if c.Type != entities.CharacterMonsterNormal && c.Type != entities.CharacterMonsterBoss {
				vb.Fieldf(fieldf("%s.combatDetails.enemyCharacterIds[%d]", field, k), "character %s is not a monster", id)
			}
		}
	case entities.SceneItemGet:
		if scene.Item == "" {
			vb.RequiredField(field + ".item")
		}
	case "":
		vb.RequiredField(field + ".type")
	}
}

func fieldf(format string, args ...interface{}) string {
	return fmt.Sprintf(format, args...)
}
