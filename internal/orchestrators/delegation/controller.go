// Package delegation plays the player's turns automatically. It watches combat
// state changes and, once the player has been idle on their turn for a fixed
// delay, attacks the first living enemy.
package delegation

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/KirkDiggler/rpg-toolkit/events"

	"github.com/KirkDiggler/rpg-quest/internal/errors"
	"github.com/KirkDiggler/rpg-quest/internal/orchestrators/combat"
	"github.com/KirkDiggler/rpg-quest/internal/pkg/clock"
)

// DefaultDelay is the idle time before an automatic attack
const DefaultDelay = 1500 * time.Millisecond

// Controller toggles and drives automatic play
type Controller interface {
	// Enable turns delegation on and arms the timer if it is the player's turn
	Enable(ctx context.Context)

	// Disable turns delegation off and cancels any pending action
	Disable(ctx context.Context)

	// Enabled reports whether delegation is on
	Enabled() bool

	// SetModalOpen pauses delegation while a blocking dialog is shown
	SetModalOpen(open bool)

	// Close unsubscribes from the event bus and cancels any pending action
	Close() error
}

// Config holds the dependencies for the delegation controller
type Config struct {
	Combat   combat.Service
	EventBus events.EventBus
	Clock    clock.Clock
	Delay    time.Duration
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Combat == nil {
		vb.RequiredField("Combat")
	}
	if c.EventBus == nil {
		vb.RequiredField("EventBus")
	}
	if c.Clock == nil {
		vb.RequiredField("Clock")
	}

	return vb.Build()
}

type controller struct {
	combat combat.Service
	bus    events.EventBus
	clock  clock.Clock
	delay  time.Duration
	subID  string

	mu        sync.Mutex
	enabled   bool
	modalOpen bool
	status    combat.Status
	timer     clock.Timer
}

// New creates a delegation controller subscribed to combat state changes
func New(cfg *Config) (Controller, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	delay := cfg.Delay
	if delay <= 0 {
		delay = DefaultDelay
	}
	c := &controller{
		combat: cfg.Combat,
		bus:    cfg.EventBus,
		clock:  cfg.Clock,
		delay:  delay,
	}
	c.subID = c.bus.SubscribeFunc(combat.EventState, 0, c.onState)
	return c, nil
}

func (c *controller) onState(_ context.Context, event events.Event) error {
	status, ok := combat.StatusFromEvent(event)
	if !ok {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.status = status
	c.rearmLocked()
	return nil
}

func (c *controller) Enable(_ context.Context) {
	c.combat.SetDelegationMode(true)
	status := c.combat.Status()

	c.mu.Lock()
	defer c.mu.Unlock()
	c.enabled = true
	if status != nil {
		c.status = *status
	}
	c.rearmLocked()
	slog.Info("Delegation enabled")
}

func (c *controller) Disable(_ context.Context) {
	c.combat.SetDelegationMode(false)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.enabled = false
	c.rearmLocked()
	slog.Info("Delegation disabled")
}

func (c *controller) Enabled() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.enabled
}

func (c *controller) SetModalOpen(open bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.modalOpen = open
	c.rearmLocked()
}

func (c *controller) Close() error {
	c.mu.Lock()
	c.stopLocked()
	c.mu.Unlock()
	return c.bus.Unsubscribe(c.subID)
}

// guardLocked reports whether an automatic attack may be scheduled
func (c *controller) guardLocked() bool {
	s := c.status
	return c.enabled &&
		!c.modalOpen &&
		s.Active &&
		s.State == combat.StatePlayer &&
		s.Player != nil &&
		s.Player.Alive()
}

// rearmLocked resets the idle timer whenever any guard input changes
func (c *controller) rearmLocked() {
	c.stopLocked()
	if !c.guardLocked() {
		return
	}
	c.timer = c.clock.AfterFunc(c.delay, c.act)
}

func (c *controller) stopLocked() {
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
}

func (c *controller) act() {
	c.mu.Lock()
	c.timer = nil
	if !c.guardLocked() {
		c.mu.Unlock()
		return
	}
	living := c.status.LivingEnemies()
	c.mu.Unlock()

	if len(living) == 0 {
		return
	}
	target := living[0]

	_, err := c.combat.Attack(context.Background(), &combat.AttackInput{TargetID: target.CombatID})
	if err == nil {
		return
	}
	slog.Warn("Delegated attack failed",
		"target_id", target.CombatID,
		"reason", errors.GetReason(err),
		"error", err,
	)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.timer == nil {
		c.rearmLocked()
	}
}
