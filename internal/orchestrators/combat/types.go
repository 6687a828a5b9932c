package combat

import (
	"time"

	"github.com/KirkDiggler/rpg-quest/internal/entities"
)

// State is the turn state of a combat session
type State string

const (
	StatePlayer      State = "player"
	StateEnemy       State = "enemy"
	StateEnemyActing State = "enemy_acting"

	StateVictory                 State = "victory"
	StateDefeatPendingRelocation State = "defeat_pending_relocation"
	StateFled                    State = "fled"
	StateGameOver                State = "game_over"
	StateRunComplete             State = "run_complete"
)

// Terminal reports whether no further combat input is accepted
func (s State) Terminal() bool {
	switch s {
	case StatePlayer, StateEnemy, StateEnemyActing:
		return false
	default:
		return true
	}
}

// OutcomeKind names how an encounter ended
type OutcomeKind string

const (
	OutcomeVictory     OutcomeKind = "victory"
	OutcomeFled        OutcomeKind = "fled"
	OutcomeRelocated   OutcomeKind = "relocated"
	OutcomeGameOver    OutcomeKind = "game_over"
	OutcomeRunComplete OutcomeKind = "run_complete"
)

// Outcome is published once per encounter. SceneID is the relocation target
// for a defeat, NextSceneID the scene a boss victory advances to.
type Outcome struct {
	Kind         OutcomeKind `json:"kind"`
	EncounterID  string      `json:"encounterId"`
	SceneID      string      `json:"sceneId,omitempty"`
	NextSceneID  string      `json:"nextSceneId,omitempty"`
	Boss         bool        `json:"boss"`
	GoldEarned   int         `json:"goldEarned,omitempty"`
	ExpEarned    int         `json:"expEarned,omitempty"`
	LevelsGained int         `json:"levelsGained,omitempty"`
}

// Encounter describes one combat scene. SafeSceneID is where a defeated
// player is sent; empty means the defeat ends the run.
type Encounter struct {
	SceneID           string   `json:"sceneId"`
	EnemyCharacterIDs []string `json:"enemyCharacterIds"`
	IsBoss            bool     `json:"isBoss"`
	NextSceneID       string   `json:"nextSceneId,omitempty"`
	SafeSceneID       string   `json:"safeSceneId,omitempty"`
}

// Timing holds the fixed delays of the resolver
type Timing struct {
	EnemyDelay          time.Duration `yaml:"enemy_delay"`
	DelegatedEnemyDelay time.Duration `yaml:"delegated_enemy_delay"`
	RelocationDelay     time.Duration `yaml:"relocation_delay"`
	BossAdvanceDelay    time.Duration `yaml:"boss_advance_delay"`
}

// DefaultTiming returns the stock delays
func DefaultTiming() Timing {
	return Timing{
		EnemyDelay:          1000 * time.Millisecond,
		DelegatedEnemyDelay: 500 * time.Millisecond,
		RelocationDelay:     1500 * time.Millisecond,
		BossAdvanceDelay:    1500 * time.Millisecond,
	}
}

func (t Timing) withDefaults() Timing {
	d := DefaultTiming()
	if t.EnemyDelay <= 0 {
		t.EnemyDelay = d.EnemyDelay
	}
	if t.DelegatedEnemyDelay <= 0 {
		t.DelegatedEnemyDelay = d.DelegatedEnemyDelay
	}
	if t.RelocationDelay <= 0 {
		t.RelocationDelay = d.RelocationDelay
	}
	if t.BossAdvanceDelay <= 0 {
		t.BossAdvanceDelay = d.BossAdvanceDelay
	}
	return t
}

// Status is a read-only view of the current session
type Status struct {
	EncounterID               string
	Active                    bool
	State                     State
	Enemies                   []*entities.Enemy
	Message                   string
	Boss                      bool
	AwaitingPostVictoryChoice bool
	// Pending is true while a relocation or boss advance is scheduled
	Pending bool
	Outcome *Outcome
	Player  *entities.Player
	Log     []entities.LogEntry
}

// LivingEnemies returns the enemies with hp left in list order
func (s *Status) LivingEnemies() []*entities.Enemy {
	var out []*entities.Enemy
	for _, e := range s.Enemies {
		if e.Alive() {
			out = append(out, e)
		}
	}
	return out
}

// Snapshot is the persisted form of a session. Derived stats are recomputed
// on restore.
type Snapshot struct {
	EncounterID               string              `json:"encounterId"`
	Encounter                 Encounter           `json:"encounter"`
	Player                    *entities.Player    `json:"player"`
	Enemies                   []*entities.Enemy   `json:"enemies"`
	State                     State               `json:"state"`
	Delegated                 bool                `json:"delegated"`
	AwaitingPostVictoryChoice bool                `json:"awaitingPostVictoryChoice"`
	Outcome                   *Outcome            `json:"outcome,omitempty"`
	Pending                   *Outcome            `json:"pending,omitempty"`
	Log                       []entities.LogEntry `json:"log,omitempty"`
}

// StartInput starts a new encounter for the player. The resolver takes
// ownership of a copy of Player.
type StartInput struct {
	Player     *entities.Player
	Encounter  Encounter
	Characters CharacterSource
}

// StartOutput returns the fresh session view
type StartOutput struct {
	Status *Status
}

// AttackInput is a basic attack against one enemy
type AttackInput struct {
	TargetID string
}

// UseSkillInput casts a learned skill. TargetID is only read for
// single-enemy skills.
type UseSkillInput struct {
	SkillID  string
	TargetID string
}

// UseItemInput uses a consumable. Items always land on the player.
type UseItemInput struct {
	ItemID   string
	TargetID string
}

// FleeInput attempts to leave a normal encounter
type FleeInput struct{}

// ActionOutput reports the resolution of a player action
type ActionOutput struct {
	// Prevented is true when a status effect consumed the turn
	Prevented bool
	Logs      []entities.LogEntry
	Status    *Status
}

// RestoreInput resumes a persisted session
type RestoreInput struct {
	Snapshot *Snapshot
}
