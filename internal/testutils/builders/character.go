package builders

import (
	"github.com/KirkDiggler/rpg-quest/internal/entities"
)

// CharacterBuilder provides a fluent interface for building script characters
type CharacterBuilder struct {
	character entities.Character
}

// NewCharacterBuilder creates a character of the given type named after its id
func NewCharacterBuilder(id string, characterType entities.CharacterType) *CharacterBuilder {
	return &CharacterBuilder{
		character: entities.Character{
			ID:   id,
			Name: id,
			Type: characterType,
		},
	}
}

// NewMonsterBuilder creates a normal monster with explicit combat stats
func NewMonsterBuilder(id string, hp, attack, defense int) *CharacterBuilder {
	return NewCharacterBuilder(id, entities.CharacterMonsterNormal).WithStats(hp, attack, defense)
}

// WithName sets the display name
func (b *CharacterBuilder) WithName(name string) *CharacterBuilder {
	b.character.Name = name
	return b
}

// WithStats overrides the template hp, attack and defense
func (b *CharacterBuilder) WithStats(hp, attack, defense int) *CharacterBuilder {
	b.character.HP = &hp
	b.character.Attack = &attack
	b.character.Defense = &defense
	return b
}

// WithDialogue sets the line spoken in dialogue scenes
func (b *CharacterBuilder) WithDialogue(seed string) *CharacterBuilder {
	b.character.DialogueSeed = seed
	return b
}

// WithSkills sets the skills an enemy may know
func (b *CharacterBuilder) WithSkills(skillIDs ...string) *CharacterBuilder {
	b.character.Skills = skillIDs
	return b
}

// AsBoss marks the character as a boss monster
func (b *CharacterBuilder) AsBoss() *CharacterBuilder {
	b.character.Type = entities.CharacterMonsterBoss
	return b
}

// Build returns the constructed Character
func (b *CharacterBuilder) Build() entities.Character {
	return b.character
}
