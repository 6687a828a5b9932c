// Package savegame provides repository interface and types for saved games
package savegame

import (
	"context"
	"encoding/json"
	"time"

	"github.com/KirkDiggler/rpg-quest/internal/entities"
)

//go:generate mockgen -destination=mock/mock_repository.go -package=savegamemock github.com/KirkDiggler/rpg-quest/internal/repositories/savegame Repository

// CurrentVersion is written into every save
const CurrentVersion = 1

// SaveData is everything needed to resume a game
type SaveData struct {
	Version int       `json:"version"`
	Slot    string    `json:"slot"`
	SavedAt time.Time `json:"savedAt"`

	// Player is stored with base stats only trusted; derived stats are
	// recomputed on load
	Player *entities.Player `json:"player"`

	// Scene layer position
	CurrentSceneID  string `json:"currentSceneId"`
	LastTownSceneID string `json:"lastTownSceneId,omitempty"`
	Delegated       bool   `json:"delegated"`
	SceneCleared    bool   `json:"sceneCleared,omitempty"`

	// Combat is the opaque snapshot of an encounter in progress
	Combat json.RawMessage `json:"combat,omitempty"`
}

// SlotInfo summarizes a stored save
type SlotInfo struct {
	Slot           string
	SavedAt        time.Time
	PlayerName     string
	Level          int
	CurrentSceneID string
}

// SaveInput contains parameters for storing a save
type SaveInput struct {
	Slot string
	Data *SaveData
}

// SaveOutput contains the stored save
type SaveOutput struct {
	Data *SaveData
}

// LoadInput contains parameters for loading a save
type LoadInput struct {
	Slot string
}

// LoadOutput contains the loaded save
type LoadOutput struct {
	Data *SaveData
}

// DeleteInput contains parameters for deleting a save
type DeleteInput struct {
	Slot string
}

// DeleteOutput reports whether a save existed
type DeleteOutput struct {
	Deleted bool
}

// ListOutput lists every stored save
type ListOutput struct {
	Slots []SlotInfo
}

// Repository defines the interface for save game storage operations
type Repository interface {
	// Save stores data under the slot, replacing any previous save
	Save(ctx context.Context, input SaveInput) (*SaveOutput, error)

	// Load returns the save in the slot. A blob that cannot be decoded is
	// deleted and reported as data loss.
	Load(ctx context.Context, input LoadInput) (*LoadOutput, error)

	// Delete removes the save in the slot
	Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error)

	// List returns a summary of every slot, sorted by slot name
	List(ctx context.Context) (*ListOutput, error)
}
