// Package builders provides test data builders for creating test fixtures
package builders

import (
	"github.com/KirkDiggler/rpg-quest/internal/entities"
)

// SceneBuilder provides a fluent interface for building test Scene instances
type SceneBuilder struct {
	scene entities.Scene
}

// NewSceneBuilder creates a scene of the given type titled after its id
func NewSceneBuilder(id string, sceneType entities.SceneType) *SceneBuilder {
	return &SceneBuilder{
		scene: entities.Scene{
			ID:    id,
			Type:  sceneType,
			Title: id,
		},
	}
}

// WithTitle sets the scene title
func (b *SceneBuilder) WithTitle(title string) *SceneBuilder {
	b.scene.Title = title
	return b
}

// WithContent sets the narration shown on entry
func (b *SceneBuilder) WithContent(content string) *SceneBuilder {
	b.scene.Content = content
	return b
}

// WithNext sets the scene that follows this one
func (b *SceneBuilder) WithNext(sceneID string) *SceneBuilder {
	b.scene.NextSceneID = sceneID
	return b
}

// WithLocation sets the location entered with this scene
func (b *SceneBuilder) WithLocation(name string) *SceneBuilder {
	b.scene.NewLocationName = name
	return b
}

// WithCharacters sets the characters present in the scene
func (b *SceneBuilder) WithCharacters(characterIDs ...string) *SceneBuilder {
	b.scene.CharacterIDs = characterIDs
	return b
}

// WithEnemies sets the enemies of a combat scene
func (b *SceneBuilder) WithEnemies(characterIDs ...string) *SceneBuilder {
	b.scene.CombatDetails = &entities.CombatDetails{EnemyCharacterIDs: characterIDs}
	return b
}

// WithItem sets the item granted by an item scene
func (b *SceneBuilder) WithItem(item string) *SceneBuilder {
	b.scene.Item = item
	return b
}

// WithChoice appends a branch to a choice scene
func (b *SceneBuilder) WithChoice(id, text, nextSceneID string) *SceneBuilder {
	b.scene.Choices = append(b.scene.Choices, entities.Choice{
		ID:          id,
		Text:        text,
		NextSceneID: nextSceneID,
	})
	return b
}

// Build returns the constructed Scene
func (b *SceneBuilder) Build() entities.Scene {
	return b.scene
}
