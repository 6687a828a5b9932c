package combat

import (
	"context"
	"log/slog"

	"github.com/KirkDiggler/rpg-toolkit/core"
	"github.com/KirkDiggler/rpg-toolkit/events"

	"github.com/KirkDiggler/rpg-quest/internal/entities"
)

// Event types published on the bus
const (
	EventLog     = "combat.log"
	EventState   = "combat.state"
	EventOutcome = "combat.outcome"
)

// Context keys carried by combat events
const (
	KeyEntry   = "entry"
	KeyStatus  = "status"
	KeyOutcome = "outcome"
	KeyPlayer  = "player"
)

func newEvent(kind string, source core.Entity, values map[string]any) events.Event {
	event := events.NewGameEvent(kind, source, nil)
	for k, v := range values {
		event.Context().Set(k, v)
	}
	return event
}

// NewLogEvent builds a combat.log event
func NewLogEvent(source core.Entity, entry entities.LogEntry) events.Event {
	return newEvent(EventLog, source, map[string]any{KeyEntry: entry})
}

// NewStateEvent builds a combat.state event
func NewStateEvent(source core.Entity, status Status) events.Event {
	return newEvent(EventState, source, map[string]any{KeyStatus: status})
}

// NewOutcomeEvent builds a combat.outcome event carrying the player's final state
func NewOutcomeEvent(source core.Entity, outcome Outcome, player *entities.Player) events.Event {
	return newEvent(EventOutcome, source, map[string]any{KeyOutcome: outcome, KeyPlayer: player})
}

// outbox collects events while the session lock is held so they can be
// published after it is released.
type outbox struct {
	events []events.Event
}

func (o *outbox) log(source core.Entity, entry entities.LogEntry) {
	o.events = append(o.events, NewLogEvent(source, entry))
}

func (o *outbox) state(source core.Entity, status Status) {
	o.events = append(o.events, NewStateEvent(source, status))
}

func (o *outbox) outcome(source core.Entity, outcome Outcome, player *entities.Player) {
	o.events = append(o.events, NewOutcomeEvent(source, outcome, player))
}

func (o *outbox) flush(ctx context.Context, bus events.EventBus) {
	for _, event := range o.events {
		if err := bus.Publish(ctx, event); err != nil {
			slog.Warn("Failed to publish combat event",
				"type", event.Type(),
				"error", err,
			)
		}
	}
	o.events = nil
}

// StatusFromEvent extracts the status carried by a combat.state event
func StatusFromEvent(event events.Event) (Status, bool) {
	v, ok := event.Context().Get(KeyStatus)
	if !ok {
		return Status{}, false
	}
	status, ok := v.(Status)
	return status, ok
}

// OutcomeFromEvent extracts the outcome and the player's final state from a
// combat.outcome event
func OutcomeFromEvent(event events.Event) (Outcome, *entities.Player, bool) {
	v, ok := event.Context().Get(KeyOutcome)
	if !ok {
		return Outcome{}, nil, false
	}
	outcome, ok := v.(Outcome)
	if !ok {
		return Outcome{}, nil, false
	}
	var player *entities.Player
	if p, found := event.Context().Get(KeyPlayer); found {
		player, _ = p.(*entities.Player)
	}
	return outcome, player, true
}

// LogFromEvent extracts the log entry of a combat.log event
func LogFromEvent(event events.Event) (entities.LogEntry, bool) {
	v, ok := event.Context().Get(KeyEntry)
	if !ok {
		return entities.LogEntry{}, false
	}
	entry, ok := v.(entities.LogEntry)
	return entry, ok
}
