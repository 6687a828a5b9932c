package adventure

import (
	"time"

	"github.com/KirkDiggler/rpg-quest/internal/entities"
	"github.com/KirkDiggler/rpg-quest/internal/orchestrators/combat"
)

// View is a read-only copy of the game for presentation
type View struct {
	Title           string
	Scene           *entities.Scene
	Player          *entities.Player
	LastTownSceneID string

	InCombat bool
	// Cleared is true once the current combat scene was won or fled
	Cleared  bool
	GameOver bool
	Complete bool

	// Combat is set while the current scene is a combat scene
	Combat                    *combat.Status
	AwaitingPostVictoryChoice bool

	Log []entities.LogEntry
}

// GameOutput returns the game after an operation
type GameOutput struct {
	View *View
}

// NewGameInput starts a fresh run of a script
type NewGameInput struct {
	Script     *entities.Script
	PlayerName string
}

// ContinueInput moves on from the current scene
type ContinueInput struct{}

// ChooseInput picks one branch of a choice scene
type ChooseInput struct {
	ChoiceID string
}

// AdvanceInput moves directly to a scene
type AdvanceInput struct {
	SceneID string
}

// FightAgainInput restarts the encounter of the current combat scene
type FightAgainInput struct{}

// RestInput fully restores the player outside combat
type RestInput struct{}

// SaveInput stores the game. Slot defaults to the configured slot.
type SaveInput struct {
	Slot string
}

// SaveOutput reports where the game was stored
type SaveOutput struct {
	Slot    string
	SavedAt time.Time
}

// LoadInput resumes a stored game against a script
type LoadInput struct {
	Slot   string
	Script *entities.Script
}
