package builders

import (
	"github.com/KirkDiggler/rpg-quest/internal/entities"
)

// ScriptBuilder provides a fluent interface for building test scripts.
// Characters and scenes are added to the most recent stage.
type ScriptBuilder struct {
	script *entities.Script
}

// NewScriptBuilder creates a script with one empty stage
func NewScriptBuilder() *ScriptBuilder {
	return &ScriptBuilder{
		script: &entities.Script{
			WorldSettings: entities.WorldSettings{Title: "Test Script"},
			Stages:        []entities.Stage{{ID: "stage_1", Title: "Stage 1"}},
		},
	}
}

// WithTitle sets the world title
func (b *ScriptBuilder) WithTitle(title string) *ScriptBuilder {
	b.script.WorldSettings.Title = title
	return b
}

// WithStage starts a new stage
func (b *ScriptBuilder) WithStage(id string) *ScriptBuilder {
	b.script.Stages = append(b.script.Stages, entities.Stage{ID: id, Title: id})
	return b
}

// WithCharacter adds a character to the current stage
func (b *ScriptBuilder) WithCharacter(character *CharacterBuilder) *ScriptBuilder {
	stage := b.current()
	stage.Characters = append(stage.Characters, character.Build())
	return b
}

// WithScene adds a scene to the current stage
func (b *ScriptBuilder) WithScene(scene *SceneBuilder) *ScriptBuilder {
	stage := b.current()
	built := scene.Build()
	built.StageID = stage.ID
	stage.Scenes = append(stage.Scenes, built)
	return b
}

// Build returns the constructed Script
func (b *ScriptBuilder) Build() *entities.Script {
	return b.script
}

func (b *ScriptBuilder) current() *entities.Stage {
	return &b.script.Stages[len(b.script.Stages)-1]
}
