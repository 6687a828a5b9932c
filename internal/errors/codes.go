package errors

// Code represents an error code
type Code string

// Error codes
const (
	CodeOK                 Code = "OK"
	CodeInvalidArgument    Code = "INVALID_ARGUMENT"
	CodeNotFound           Code = "NOT_FOUND"
	CodeResourceExhausted  Code = "RESOURCE_EXHAUSTED"
	CodeFailedPrecondition Code = "FAILED_PRECONDITION"
	CodeInternal           Code = "INTERNAL"
	CodeUnavailable        Code = "UNAVAILABLE"
	CodeDataLoss           Code = "DATA_LOSS"
)

// String returns the string representation of the code
func (c Code) String() string {
	return string(c)
}

// Reason values attached under the "reason" meta key. They let callers tell
// apart failures that share a code.
const (
	MetaReason = "reason"

	ReasonInvalidTarget  = "invalid_target"
	ReasonNoEffect       = "no_effect"
	ReasonNotYourTurn    = "not_your_turn"
	ReasonNoCombat       = "no_combat"
	ReasonBossFlee       = "boss_flee"
	ReasonNotEnoughMP    = "insufficient_mp"
	ReasonNotEnoughItems = "insufficient_items"
	ReasonUnknownSkill   = "unknown_skill"
	ReasonUnknownItem    = "unknown_item"
	ReasonInCombat       = "in_combat"
	ReasonNoGame         = "no_game"
	ReasonGameOver       = "game_over"
	ReasonChoiceRequired = "choice_required"
	ReasonUnresolved     = "combat_unresolved"
	ReasonScriptMismatch = "script_mismatch"
)
