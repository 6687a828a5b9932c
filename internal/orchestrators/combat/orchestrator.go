// Package combat implements the turn based combat resolver. One orchestrator
// owns at most one encounter at a time and serializes every transition on it.
package combat

//go:generate mockgen -destination=mock/mock_service.go -package=combatmock github.com/KirkDiggler/rpg-quest/internal/orchestrators/combat Service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/KirkDiggler/rpg-toolkit/dice"
	"github.com/KirkDiggler/rpg-toolkit/events"

	"github.com/KirkDiggler/rpg-quest/internal/catalog"
	"github.com/KirkDiggler/rpg-quest/internal/engine"
	"github.com/KirkDiggler/rpg-quest/internal/entities"
	"github.com/KirkDiggler/rpg-quest/internal/errors"
	"github.com/KirkDiggler/rpg-quest/internal/pkg/clock"
	"github.com/KirkDiggler/rpg-quest/internal/pkg/idgen"
)

const maxLogEntries = 100

// Service defines the interface for combat operations
type Service interface {
	// Start begins a new encounter
	Start(ctx context.Context, input *StartInput) (*StartOutput, error)

	// Attack performs a basic attack on one enemy
	Attack(ctx context.Context, input *AttackInput) (*ActionOutput, error)

	// UseSkill casts a learned skill
	UseSkill(ctx context.Context, input *UseSkillInput) (*ActionOutput, error)

	// UseItem uses a consumable from the inventory
	UseItem(ctx context.Context, input *UseItemInput) (*ActionOutput, error)

	// Flee tries to escape a normal encounter
	Flee(ctx context.Context, input *FleeInput) (*ActionOutput, error)

	// Status returns a copy of the current session view
	Status() *Status

	// Snapshot returns the persisted form of the session, nil without one
	Snapshot() *Snapshot

	// Restore replaces the current session with a persisted one
	Restore(ctx context.Context, input *RestoreInput) (*StartOutput, error)

	// Reset drops the current session and cancels its timers
	Reset(ctx context.Context)

	// SetDelegationMode switches enemy timing and post-victory behaviour
	SetDelegationMode(enabled bool)
}

// CharacterSource resolves enemy templates by character id
type CharacterSource interface {
	Character(characterID string) (*entities.Character, bool)
}

// Config holds the dependencies for the combat orchestrator
type Config struct {
	Engine      engine.Engine
	Catalog     *catalog.Catalog
	Clock       clock.Clock
	Roller      dice.Roller
	EventBus    events.EventBus
	IDGenerator idgen.Generator
	Timing      Timing
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Engine == nil {
		vb.RequiredField("Engine")
	}
	if c.Catalog == nil {
		vb.RequiredField("Catalog")
	}
	if c.Clock == nil {
		vb.RequiredField("Clock")
	}
	if c.Roller == nil {
		vb.RequiredField("Roller")
	}
	if c.EventBus == nil {
		vb.RequiredField("EventBus")
	}
	if c.IDGenerator == nil {
		vb.RequiredField("IDGenerator")
	}

	return vb.Build()
}

type orchestrator struct {
	engine  engine.Engine
	catalog *catalog.Catalog
	clock   clock.Clock
	roller  dice.Roller
	bus     events.EventBus
	idGen   idgen.Generator
	timing  Timing

	mu        sync.Mutex
	session   *session
	delegated bool
}

// session is the state of one encounter. It is only touched with mu held.
type session struct {
	id             string
	encounter      Encounter
	player         *entities.Player
	enemies        []*entities.Enemy
	state          State
	message        string
	outcome        *Outcome
	pending        *Outcome
	awaitingChoice bool
	log            []entities.LogEntry
	timer          clock.Timer
}

// NewOrchestrator creates a new combat orchestrator with the provided dependencies
func NewOrchestrator(cfg *Config) (Service, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &orchestrator{
		engine:  cfg.Engine,
		catalog: cfg.Catalog,
		clock:   cfg.Clock,
		roller:  cfg.Roller,
		bus:     cfg.EventBus,
		idGen:   cfg.IDGenerator,
		timing:  cfg.Timing.withDefaults(),
	}, nil
}

// do runs fn under the session lock and publishes what it queued afterwards
func (o *orchestrator) do(ctx context.Context, fn func(ob *outbox) error) error {
	ob := &outbox{}
	o.mu.Lock()
	err := fn(ob)
	o.mu.Unlock()
	ob.flush(ctx, o.bus)
	return err
}

// Start begins a new encounter
func (o *orchestrator) Start(ctx context.Context, input *StartInput) (*StartOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	vb := errors.NewValidationBuilder()
	if input.Player == nil {
		vb.RequiredField("Player")
	}
	if input.Characters == nil {
		vb.RequiredField("Characters")
	}
	if len(input.Encounter.EnemyCharacterIDs) == 0 {
		vb.RequiredField("Encounter.EnemyCharacterIDs")
	}
	if err := vb.Build(); err != nil {
		return nil, err
	}

	encounterID := o.idGen.Generate()
	enemies := make([]*entities.Enemy, 0, len(input.Encounter.EnemyCharacterIDs))
	for i, characterID := range input.Encounter.EnemyCharacterIDs {
		template, ok := input.Characters.Character(characterID)
		if !ok {
			return nil, errors.NotFoundf("enemy character %s not found", characterID).
				WithMeta("scene_id", input.Encounter.SceneID)
		}
		enemies = append(enemies, o.engine.NewEnemy(&engine.NewEnemyInput{
			Template: template,
			CombatID: fmt.Sprintf("%s_%d_%s", characterID, i, encounterID),
			IsBoss:   input.Encounter.IsBoss,
		}))
	}

	var out *StartOutput
	err := o.do(ctx, func(ob *outbox) error {
		if current := o.session; current != nil && !current.state.Terminal() {
			return errors.FailedPrecondition("a combat is already in progress").
				WithReason(errors.ReasonInCombat)
		}
		o.stopTimer(o.session)

		player := input.Player.Clone()
		o.engine.Derive(entities.PlayerActor(player))

		s := &session{
			id:        encounterID,
			encounter: input.Encounter,
			player:    player,
			enemies:   enemies,
			state:     StatePlayer,
		}
		o.session = s

		names := make([]string, 0, len(enemies))
		for _, e := range enemies {
			names = append(names, e.Name)
		}
		logs := o.newTurnLog()
		if s.encounter.IsBoss {
			logs.add(entities.LogCombat, "A powerful foe blocks the way: %s!", strings.Join(names, ", "))
		} else {
			logs.add(entities.LogCombat, "Combat begins against %s!", strings.Join(names, ", "))
		}
		tick := o.engine.ProcessTurnStart(entities.PlayerActor(player))
		logs.extend(tick.Logs)
		o.commit(s, ob, logs.entries)

		slog.Info("Combat started",
			"encounter_id", s.id,
			"scene_id", s.encounter.SceneID,
			"enemy_count", len(enemies),
			"boss", s.encounter.IsBoss,
		)

		if !o.checkEnd(s, ob) {
			o.setState(s, ob, StatePlayer)
		}
		status := o.statusLocked(s)
		out = &StartOutput{Status: &status}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Status returns a copy of the current session view
func (o *orchestrator) Status() *Status {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.session == nil {
		return &Status{}
	}
	status := o.statusLocked(o.session)
	return &status
}

func (o *orchestrator) statusLocked(s *session) Status {
	status := Status{
		EncounterID:               s.id,
		Active:                    !s.state.Terminal(),
		State:                     s.state,
		Message:                   s.message,
		Boss:                      s.encounter.IsBoss,
		AwaitingPostVictoryChoice: s.awaitingChoice,
		Pending:                   s.pending != nil,
		Player:                    s.player.Clone(),
		Log:                       append([]entities.LogEntry(nil), s.log...),
	}
	for _, e := range s.enemies {
		status.Enemies = append(status.Enemies, e.Clone())
	}
	if s.outcome != nil {
		outcome := *s.outcome
		status.Outcome = &outcome
	}
	return status
}

// Snapshot returns the persisted form of the session
func (o *orchestrator) Snapshot() *Snapshot {
	o.mu.Lock()
	defer o.mu.Unlock()

	s := o.session
	if s == nil {
		return nil
	}
	snap := &Snapshot{
		EncounterID:               s.id,
		Encounter:                 s.encounter,
		Player:                    s.player.Clone(),
		State:                     s.state,
		Delegated:                 o.delegated,
		AwaitingPostVictoryChoice: s.awaitingChoice,
		Log:                       append([]entities.LogEntry(nil), s.log...),
	}
	for _, e := range s.enemies {
		snap.Enemies = append(snap.Enemies, e.Clone())
	}
	if s.outcome != nil {
		outcome := *s.outcome
		snap.Outcome = &outcome
	}
	if s.pending != nil {
		pending := *s.pending
		snap.Pending = &pending
	}
	return snap
}

// Restore replaces the current session with a persisted one. Derived stats
// are recomputed and interrupted timers are scheduled again.
func (o *orchestrator) Restore(ctx context.Context, input *RestoreInput) (*StartOutput, error) {
	if input == nil || input.Snapshot == nil {
		return nil, errors.InvalidArgument("snapshot is required")
	}
	snap := input.Snapshot
	if snap.Player == nil {
		return nil, errors.InvalidArgument("snapshot has no player")
	}

	var out *StartOutput
	err := o.do(ctx, func(ob *outbox) error {
		o.stopTimer(o.session)

		s := &session{
			id:             snap.EncounterID,
			encounter:      snap.Encounter,
			player:         snap.Player.Clone(),
			state:          snap.State,
			awaitingChoice: snap.AwaitingPostVictoryChoice,
			log:            append([]entities.LogEntry(nil), snap.Log...),
		}
		if len(s.log) > maxLogEntries {
			s.log = s.log[len(s.log)-maxLogEntries:]
		}
		if n := len(s.log); n > 0 {
			s.message = s.log[n-1].Message
		}
		o.engine.Derive(entities.PlayerActor(s.player))
		for _, e := range snap.Enemies {
			enemy := e.Clone()
			o.engine.Derive(entities.EnemyActor(enemy))
			s.enemies = append(s.enemies, enemy)
		}
		if snap.Outcome != nil {
			outcome := *snap.Outcome
			s.outcome = &outcome
		}
		o.session = s
		o.delegated = snap.Delegated

		switch {
		case s.state == StateEnemy || s.state == StateEnemyActing:
			s.state = StateEnemyActing
			o.schedule(s, o.enemyDelay(), o.runEnemyTurn)
		case snap.Pending != nil:
			pending := *snap.Pending
			s.pending = &pending
			delay := o.timing.BossAdvanceDelay
			if pending.Kind == OutcomeRelocated {
				delay = o.timing.RelocationDelay
			}
			o.schedule(s, delay, o.resolvePending)
		}

		slog.Info("Combat restored",
			"encounter_id", s.id,
			"state", s.state,
		)

		status := o.statusLocked(s)
		ob.state(s.player, status)
		out = &StartOutput{Status: &status}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Reset drops the current session and cancels its timers
func (o *orchestrator) Reset(ctx context.Context) {
	_ = o.do(ctx, func(ob *outbox) error {
		if o.session == nil {
			return nil
		}
		o.stopTimer(o.session)
		ob.state(o.session.player, Status{})
		o.session = nil
		return nil
	})
}

// SetDelegationMode switches enemy timing and post-victory behaviour
func (o *orchestrator) SetDelegationMode(enabled bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.delegated = enabled
}

func (o *orchestrator) enemyDelay() time.Duration {
	if o.delegated {
		return o.timing.DelegatedEnemyDelay
	}
	return o.timing.EnemyDelay
}

func (o *orchestrator) setState(s *session, ob *outbox, state State) {
	s.state = state
	ob.state(s.player, o.statusLocked(s))
}

// commit appends entries to the session log and queues them for publishing
func (o *orchestrator) commit(s *session, ob *outbox, entries []entities.LogEntry) []entities.LogEntry {
	for _, entry := range entries {
		s.log = append(s.log, entry)
		s.message = entry.Message
		ob.log(s.player, entry)
	}
	if len(s.log) > maxLogEntries {
		s.log = append([]entities.LogEntry(nil), s.log[len(s.log)-maxLogEntries:]...)
	}
	return entries
}

// schedule arms the session's single timer. Callbacks for a session that has
// since been replaced are dropped.
func (o *orchestrator) schedule(s *session, d time.Duration, fn func(*session, *outbox)) {
	o.stopTimer(s)
	s.timer = o.clock.AfterFunc(d, func() {
		_ = o.do(context.Background(), func(ob *outbox) error {
			if o.session != s {
				return nil
			}
			s.timer = nil
			fn(s, ob)
			return nil
		})
	})
}

func (o *orchestrator) stopTimer(s *session) {
	if s == nil || s.timer == nil {
		return
	}
	s.timer.Stop()
	s.timer = nil
}

// turnLog collects log lines of a transition before they are committed
type turnLog struct {
	clock   clock.Clock
	entries []entities.LogEntry
}

func (o *orchestrator) newTurnLog() *turnLog {
	return &turnLog{clock: o.clock}
}

func (l *turnLog) add(kind entities.LogType, format string, args ...any) {
	l.entries = append(l.entries, entities.LogEntry{
		Type:      kind,
		Message:   fmt.Sprintf(format, args...),
		Timestamp: l.clock.Now(),
	})
}

func (l *turnLog) extend(entries []entities.LogEntry) {
	l.entries = append(l.entries, entries...)
}
