// Package adventure drives the scene layer of a script: moving between
// scenes, granting items, resting, saving and loading. Combat scenes hand the
// player to the combat resolver until it publishes an outcome.
package adventure

//go:generate mockgen -destination=mock/mock_service.go -package=adventuremock github.com/KirkDiggler/rpg-quest/internal/orchestrators/adventure Service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/KirkDiggler/rpg-toolkit/events"

	"github.com/KirkDiggler/rpg-quest/internal/catalog"
	"github.com/KirkDiggler/rpg-quest/internal/engine"
	"github.com/KirkDiggler/rpg-quest/internal/entities"
	"github.com/KirkDiggler/rpg-quest/internal/errors"
	"github.com/KirkDiggler/rpg-quest/internal/orchestrators/combat"
	"github.com/KirkDiggler/rpg-quest/internal/orchestrators/delegation"
	"github.com/KirkDiggler/rpg-quest/internal/pkg/clock"
	"github.com/KirkDiggler/rpg-quest/internal/repositories/savegame"
)

const (
	maxLogEntries = 100

	// DefaultSaveSlot is used when neither config nor input names a slot
	DefaultSaveSlot = "main"
)

// Service defines the interface for scene level operations
type Service interface {
	// NewGame starts the script from its first scene with a fresh player
	NewGame(ctx context.Context, input *NewGameInput) (*GameOutput, error)

	// Continue follows the current scene's next scene
	Continue(ctx context.Context, input *ContinueInput) (*GameOutput, error)

	// Choose follows one branch of a choice scene
	Choose(ctx context.Context, input *ChooseInput) (*GameOutput, error)

	// Advance enters a scene by id
	Advance(ctx context.Context, input *AdvanceInput) (*GameOutput, error)

	// FightAgain restarts the encounter of the current combat scene
	FightAgain(ctx context.Context, input *FightAgainInput) (*GameOutput, error)

	// Rest restores hp and mp and cures ailments outside combat
	Rest(ctx context.Context, input *RestInput) (*GameOutput, error)

	// Save stores the game, including an encounter in progress
	Save(ctx context.Context, input *SaveInput) (*SaveOutput, error)

	// Load replaces the game with a stored one
	Load(ctx context.Context, input *LoadInput) (*GameOutput, error)

	// View returns a copy of the current game
	View() *View

	// Close stops listening for combat outcomes
	Close() error
}

// Config holds the dependencies for the adventure orchestrator
type Config struct {
	Engine   engine.Engine
	Catalog  *catalog.Catalog
	Combat   combat.Service
	Saves    savegame.Repository
	EventBus events.EventBus
	Clock    clock.Clock

	// Delegation is optional; when set its state is saved and restored
	Delegation delegation.Controller
	SaveSlot   string
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
	if c.Combat == nil {
		vb.RequiredField("Combat")
	}
	if c.Saves == nil {
		vb.RequiredField("Saves")
	}
	if c.EventBus == nil {
		vb.RequiredField("EventBus")
	}
	if c.Clock == nil {
		vb.RequiredField("Clock")
	}

	return vb.Build()
}

type orchestrator struct {
	engine     engine.Engine
	catalog    *catalog.Catalog
	combat     combat.Service
	saves      savegame.Repository
	delegation delegation.Controller
	bus        events.EventBus
	clock      clock.Clock
	slot       string
	subID      string

	mu   sync.Mutex
	game *game
}

// game is one run of a script. It is only touched with mu held. While
// inCombat is set the combat resolver owns the live player and player here
// is the state it was handed.
type game struct {
	script   *entities.Script
	player   *entities.Player
	sceneID  string
	lastTown string

	inCombat    bool
	encounterID string
	starting    *combat.StartInput

	cleared  bool
	over     bool
	complete bool

	log []entities.LogEntry
}

// NewOrchestrator creates a new adventure orchestrator subscribed to combat outcomes
func NewOrchestrator(cfg *Config) (Service, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	slot := cfg.SaveSlot
	if slot == "" {
		slot = DefaultSaveSlot
	}

	o := &orchestrator{
		engine:     cfg.Engine,
		catalog:    cfg.Catalog,
		combat:     cfg.Combat,
		saves:      cfg.Saves,
		delegation: cfg.Delegation,
		bus:        cfg.EventBus,
		clock:      cfg.Clock,
		slot:       slot,
	}
	o.subID = cfg.EventBus.SubscribeFunc(combat.EventOutcome, 0, o.onOutcome)
	return o, nil
}

// do runs fn under the lock, publishes what it queued and then starts the
// encounter it asked for.
func (o *orchestrator) do(ctx context.Context, fn func(st *step) error) error {
	st := &step{}
	o.mu.Lock()
	err := fn(st)
	g := o.game
	o.mu.Unlock()

	o.publish(ctx, st.events)
	if err != nil {
		return err
	}
	if st.start != nil {
		return o.startCombat(ctx, g, st.start)
	}
	return nil
}

func (o *orchestrator) startCombat(ctx context.Context, g *game, input *combat.StartInput) error {
	out, err := o.combat.Start(ctx, input)

	o.mu.Lock()
	defer o.mu.Unlock()
	if o.game != g || g.starting != input {
		return nil
	}
	g.starting = nil
	if err != nil {
		g.inCombat = false
		return errors.Wrap(err, "failed to start combat")
	}
	if g.inCombat && g.encounterID == "" {
		g.encounterID = out.Status.EncounterID
	}
	return nil
}

// onOutcome takes the player back from the resolver and moves the game on
func (o *orchestrator) onOutcome(ctx context.Context, event events.Event) error {
	outcome, player, ok := combat.OutcomeFromEvent(event)
	if !ok {
		return nil
	}

	return o.do(ctx, func(st *step) error {
		g := o.game
		if g == nil || !g.inCombat {
			return nil
		}
		if g.encounterID != "" && g.encounterID != outcome.EncounterID {
			return nil
		}
		g.inCombat = false
		g.encounterID = ""
		g.starting = nil
		if player != nil {
			g.player = player.Clone()
		}

		slog.Info("Encounter resolved",
			"encounter_id", outcome.EncounterID,
			"outcome", outcome.Kind,
			"scene_id", g.sceneID,
		)

		switch outcome.Kind {
		case combat.OutcomeVictory:
			if outcome.Boss && outcome.NextSceneID != "" {
				return o.enter(g, st, outcome.NextSceneID)
			}
			g.cleared = true
		case combat.OutcomeFled:
			g.cleared = true
		case combat.OutcomeRelocated:
			o.logf(g, st, entities.LogSystem, "You come to your senses somewhere safe.")
			return o.enter(g, st, outcome.SceneID)
		case combat.OutcomeGameOver:
			g.over = true
			o.logf(g, st, entities.LogSystem, "There is nowhere left to retreat. Game over.")
		case combat.OutcomeRunComplete:
			o.finish(g, st)
		}
		return nil
	})
}

// View returns a copy of the current game
func (o *orchestrator) View() *View {
	o.mu.Lock()
	g := o.game
	if g == nil {
		o.mu.Unlock()
		return &View{}
	}
	v := &View{
		Title:           g.script.WorldSettings.Title,
		Player:          g.player.Clone(),
		LastTownSceneID: g.lastTown,
		InCombat:        g.inCombat,
		Cleared:         g.cleared,
		GameOver:        g.over,
		Complete:        g.complete,
		Log:             append([]entities.LogEntry(nil), g.log...),
	}
	var isCombatScene bool
	if scene, ok := g.script.Scene(g.sceneID); ok {
		sc := *scene
		v.Scene = &sc
		isCombatScene = scene.Type.IsCombat()
	}
	o.mu.Unlock()

	if isCombatScene {
		status := o.combat.Status()
		v.Combat = status
		v.AwaitingPostVictoryChoice = v.Cleared && status.AwaitingPostVictoryChoice
		if v.InCombat && status.Player != nil {
			v.Player = status.Player
		}
	}
	return v
}

// Close stops listening for combat outcomes
func (o *orchestrator) Close() error {
	if err := o.bus.Unsubscribe(o.subID); err != nil {
		return errors.Wrap(err, "failed to unsubscribe from combat outcomes")
	}
	return nil
}

func (o *orchestrator) output() *GameOutput {
	return &GameOutput{View: o.View()}
}

// ready rejects scene operations while the resolver owns the player or the
// run has ended.
func ready(g *game) error {
	switch {
	case g == nil:
		return errors.FailedPrecondition("no game in progress").WithReason(errors.ReasonNoGame)
	case g.inCombat:
		return errors.FailedPrecondition("a combat is in progress").WithReason(errors.ReasonInCombat)
	case g.over || g.complete:
		return errors.FailedPrecondition("the game has ended").WithReason(errors.ReasonGameOver)
	}
	return nil
}

func (o *orchestrator) logf(g *game, st *step, kind entities.LogType, format string, args ...any) {
	o.appendLog(g, st, entities.LogEntry{
		Type:      kind,
		Message:   fmt.Sprintf(format, args...),
		Timestamp: o.clock.Now(),
	})
}

func (o *orchestrator) appendLog(g *game, st *step, entry entities.LogEntry) {
	g.log = append(g.log, entry)
	if len(g.log) > maxLogEntries {
		g.log = append([]entities.LogEntry(nil), g.log[len(g.log)-maxLogEntries:]...)
	}
	st.events = append(st.events, NewLogEvent(g.player, entry))
}
