// Package engine holds the deterministic combat rules: stat derivation, the
// status effect lifecycle, progression and combatant construction. Nothing in
// here blocks or schedules; orchestrators own sequencing.
package engine

//go:generate mockgen -destination=mock/mock_engine.go -package=enginemock github.com/KirkDiggler/rpg-quest/internal/engine Engine

import (
	"github.com/KirkDiggler/rpg-quest/internal/catalog"
	"github.com/KirkDiggler/rpg-quest/internal/entities"
)

// Engine provides game mechanics and rules calculations
type Engine interface {
	// Derive recomputes the actor's derived stats from base stats,
	// equipment (player only) and active effects, then clamps vitals.
	Derive(actor entities.Actor)

	// Status effects
	ApplyEffect(actor entities.Actor, input *ApplyEffectInput) (*EffectOutput, error)
	RemoveEffects(actor entities.Actor, effectIDs ...string) *EffectOutput
	ProcessTurnStart(actor entities.Actor) *TurnStartOutput
	StripDebuffs(actor entities.Actor)
	ClearEffects(actor entities.Actor)

	// Progression
	GrantExperience(player *entities.Player, exp int) *ExperienceOutput

	// Construction
	NewPlayer(input *NewPlayerInput) (*entities.Player, error)
	NewEnemy(input *NewEnemyInput) *entities.Enemy

	Rules() catalog.Rules
}
