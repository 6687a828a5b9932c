package engine

import (
	"github.com/KirkDiggler/rpg-quest/internal/entities"
)

// ApplyEffectInput describes one status effect application
type ApplyEffectInput struct {
	EffectID string
	// Duration in turns. Zero or less uses the definition's default.
	Duration int
	// Potency overrides the definition's potency when set
	Potency  *int
	SourceID string
}

// EffectOutput carries the log lines produced by an effect mutation
type EffectOutput struct {
	Logs []entities.LogEntry
	// Changed is false when the call matched nothing
	Changed bool
}

// TurnStartOutput is the result of processing an actor's turn start
type TurnStartOutput struct {
	PreventedAction bool
	HPDelta         int
	MPDelta         int
	Logs            []entities.LogEntry
}

// ExperienceOutput is the result of granting experience
type ExperienceOutput struct {
	LevelsGained   int
	UnlockedSkills []string
	Logs           []entities.LogEntry
}

// NewPlayerInput configures a fresh player
type NewPlayerInput struct {
	ID       string
	Name     string
	Location string
}

// NewEnemyInput instantiates a script character as an enemy
type NewEnemyInput struct {
	Template *entities.Character
	CombatID string
	IsBoss   bool
}
