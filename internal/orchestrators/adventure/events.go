package adventure

import (
	"context"
	"log/slog"

	"github.com/KirkDiggler/rpg-toolkit/core"
	"github.com/KirkDiggler/rpg-toolkit/events"

	"github.com/KirkDiggler/rpg-quest/internal/entities"
	"github.com/KirkDiggler/rpg-quest/internal/orchestrators/combat"
)

// EventLog is published for every scene level log line. The entry is stored
// under combat.KeyEntry so combat.LogFromEvent reads both streams.
const EventLog = "adventure.log"

// NewLogEvent builds an adventure.log event
func NewLogEvent(source core.Entity, entry entities.LogEntry) events.Event {
	event := events.NewGameEvent(EventLog, source, nil)
	event.Context().Set(combat.KeyEntry, entry)
	return event
}

// step collects the effects of a transition made under the lock: events to
// publish and an encounter to start once the lock is released.
type step struct {
	events []events.Event
	start  *combat.StartInput
}

func (o *orchestrator) publish(ctx context.Context, evts []events.Event) {
	for _, event := range evts {
		if err := o.bus.Publish(ctx, event); err != nil {
			slog.Warn("Failed to publish adventure event",
				"type", event.Type(),
				"error", err,
			)
		}
	}
}
