package entities

import "time"

// LogType classifies a game log line
type LogType string

const (
	LogNarration    LogType = "narration"
	LogEvent        LogType = "event"
	LogReward       LogType = "reward"
	LogError        LogType = "error"
	LogLocation     LogType = "location"
	LogSystem       LogType = "system"
	LogCombat       LogType = "combat"
	LogCombatAction LogType = "combat_action"
	LogCombatResult LogType = "combat_result"
	LogStatusEffect LogType = "status_effect"
	LogDialogue     LogType = "dialogue"
)

// LogEntry is one line of the game log
type LogEntry struct {
	Type      LogType   `json:"type"`
	Speaker   string    `json:"speaker,omitempty"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}
