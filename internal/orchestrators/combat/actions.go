package combat

import (
	"context"
	"log/slog"
	"math"

	"github.com/KirkDiggler/rpg-quest/internal/engine"
	"github.com/KirkDiggler/rpg-quest/internal/entities"
	"github.com/KirkDiggler/rpg-quest/internal/errors"
)

type resolution int

const (
	resolved resolution = iota
	escaped
)

// actionFunc resolves a player command against a ticked copy of the player.
// It must validate before mutating anything so an error leaves no trace.
type actionFunc func(s *session, player *entities.Player, logs *turnLog) (resolution, error)

// playerAction runs the shared turn flow: guard the turn, tick the player's
// effects, resolve the command, then hand over to the enemies.
func (o *orchestrator) playerAction(ctx context.Context, guard func(*session) error, act actionFunc) (*ActionOutput, error) {
	out := &ActionOutput{}
	err := o.do(ctx, func(ob *outbox) error {
		s := o.session
		if s == nil || s.state.Terminal() {
			return errors.FailedPrecondition("no combat in progress").WithReason(errors.ReasonNoCombat)
		}
		if s.state != StatePlayer {
			return errors.FailedPreconditionf("it is not the player's turn (%s)", s.state).
				WithReason(errors.ReasonNotYourTurn)
		}
		if guard != nil {
			if err := guard(s); err != nil {
				return err
			}
		}

		player := s.player.Clone()
		tick := o.engine.ProcessTurnStart(entities.PlayerActor(player))
		logs := o.newTurnLog()
		logs.extend(tick.Logs)

		result := resolved
		switch {
		case !player.Alive():
		case tick.PreventedAction:
			out.Prevented = true
			logs.add(entities.LogCombatAction, "%s cannot act!", player.Name)
		default:
			r, err := act(s, player, logs)
			if err != nil {
				return err
			}
			result = r
		}

		s.player = player
		out.Logs = o.commit(s, ob, logs.entries)
		if result == escaped {
			o.escape(s, ob)
		} else {
			o.endPlayerTurn(s, ob)
		}
		status := o.statusLocked(s)
		out.Status = &status
		return nil
	})
	if err != nil {
		slog.Info("Combat action rejected",
			"reason", errors.GetReason(err),
			"error", err,
		)
		return nil, err
	}
	return out, nil
}

func (s *session) target(targetID string) (*entities.Enemy, error) {
	for _, e := range s.enemies {
		if e.CombatID != targetID {
			continue
		}
		if !e.Alive() {
			return nil, errors.InvalidArgumentf("%s is already defeated", e.Name).
				WithReason(errors.ReasonInvalidTarget).
				WithMeta("target_id", targetID)
		}
		return e, nil
	}
	return nil, errors.InvalidArgumentf("no enemy with id %q", targetID).
		WithReason(errors.ReasonInvalidTarget).
		WithMeta("target_id", targetID)
}

func (s *session) living() []*entities.Enemy {
	var out []*entities.Enemy
	for _, e := range s.enemies {
		if e.Alive() {
			out = append(out, e)
		}
	}
	return out
}

// Attack performs a basic attack on one enemy
func (o *orchestrator) Attack(ctx context.Context, input *AttackInput) (*ActionOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	return o.playerAction(ctx, nil, func(s *session, player *entities.Player, logs *turnLog) (resolution, error) {
		target, err := s.target(input.TargetID)
		if err != nil {
			return resolved, err
		}

		damage := max(1, player.Stats.Attack-target.Stats.Defense)
		o.damage(entities.EnemyActor(target), damage)
		logs.add(entities.LogCombatAction, "%s attacks %s for %d damage.", player.Name, target.Name, damage)
		if !target.Alive() {
			logs.add(entities.LogCombatResult, "%s is defeated!", target.Name)
		}
		return resolved, nil
	})
}

// UseSkill casts a learned skill
func (o *orchestrator) UseSkill(ctx context.Context, input *UseSkillInput) (*ActionOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	skill, ok := o.catalog.Skill(input.SkillID)
	if !ok {
		return nil, errors.NotFoundf("skill %s not found", input.SkillID).
			WithReason(errors.ReasonUnknownSkill)
	}

	return o.playerAction(ctx, nil, func(s *session, player *entities.Player, logs *turnLog) (resolution, error) {
		if !player.KnowsSkill(skill.ID) {
			return resolved, errors.FailedPreconditionf("%s has not learned %s", player.Name, skill.Name).
				WithReason(errors.ReasonUnknownSkill)
		}

		var targets []*entities.Enemy
		onSelf := false
		switch skill.TargetType {
		case entities.TargetEnemySingle:
			target, err := s.target(input.TargetID)
			if err != nil {
				return resolved, err
			}
			targets = append(targets, target)
		case entities.TargetEnemyAll:
			targets = s.living()
		case entities.TargetSelf, entities.TargetAllySingle:
			onSelf = true
		case entities.TargetNone:
		}

		if player.MP < skill.MPCost {
			return resolved, errors.ResourceExhaustedf("%s needs %d mp but has %d", skill.Name, skill.MPCost, player.MP).
				WithReason(errors.ReasonNotEnoughMP)
		}
		player.MP -= skill.MPCost
		logs.add(entities.LogCombatAction, "%s uses %s!", player.Name, skill.Name)

		switch skill.EffectType {
		case entities.SkillDamageHP:
			for _, target := range targets {
				damage := max(1, skill.EffectValue+player.Stats.Attack-target.Stats.Defense)
				o.damage(entities.EnemyActor(target), damage)
				logs.add(entities.LogCombatAction, "%s takes %d damage.", target.Name, damage)
				if !target.Alive() {
					logs.add(entities.LogCombatResult, "%s is defeated!", target.Name)
				}
			}
		case entities.SkillHealHP:
			if onSelf {
				healed := restoreHP(&player.Combatant, skill.EffectValue)
				logs.add(entities.LogCombatAction, "%s recovers %d hp.", player.Name, healed)
			}
		case entities.SkillHealMP:
			if onSelf {
				restored := restoreMP(&player.Combatant, skill.EffectValue)
				logs.add(entities.LogCombatAction, "%s recovers %d mp.", player.Name, restored)
			}
		case entities.SkillDamageMP:
			for _, target := range targets {
				logs.add(entities.LogCombatAction, "%s has no mp to lose.", target.Name)
			}
		case entities.SkillEtc:
		}

		if app := skill.AppliesEffect; app != nil {
			if onSelf {
				o.applySkillEffect(entities.PlayerActor(player), app, player.ID, logs)
			}
			for _, target := range targets {
				if target.Alive() {
					o.applySkillEffect(entities.EnemyActor(target), app, player.ID, logs)
				}
			}
		}
		return resolved, nil
	})
}

func (o *orchestrator) applySkillEffect(actor entities.Actor, app *entities.SkillEffectApplication, sourceID string, logs *turnLog) {
	landed, err := o.rollChance(app.ApplyChance())
	if err != nil {
		slog.Warn("Failed to roll status effect chance",
			"effect_id", app.EffectID,
			"error", err,
		)
	}
	if !landed {
		name := app.EffectID
		if def, ok := o.catalog.Effect(app.EffectID); ok {
			name = def.Name
		}
		logs.add(entities.LogStatusEffect, "%s resists %s.", actor.Name(), name)
		return
	}

	out, err := o.engine.ApplyEffect(actor, &engine.ApplyEffectInput{
		EffectID: app.EffectID,
		Duration: app.Duration,
		Potency:  app.Potency,
		SourceID: sourceID,
	})
	if err != nil {
		slog.Warn("Failed to apply status effect",
			"effect_id", app.EffectID,
			"target_id", actor.GetID(),
			"error", err,
		)
		return
	}
	logs.extend(out.Logs)
}

// rollChance rolls a d100 against chance in [0,1]
func (o *orchestrator) rollChance(chance float64) (bool, error) {
	switch {
	case chance >= 1:
		return true, nil
	case chance <= 0:
		return false, nil
	}
	roll, err := o.roller.Roll(100)
	if err != nil {
		return false, err
	}
	return roll <= int(math.Round(chance*100)), nil
}

// UseItem uses a consumable from the inventory on the player
func (o *orchestrator) UseItem(ctx context.Context, input *UseItemInput) (*ActionOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	return o.playerAction(ctx, nil, func(s *session, player *entities.Player, logs *turnLog) (resolution, error) {
		idx := player.InventoryIndex(input.ItemID)
		if idx < 0 {
			return resolved, errors.ResourceExhaustedf("no %s left in the inventory", input.ItemID).
				WithReason(errors.ReasonNotEnoughItems)
		}
		item := player.Inventory[idx]
		if item.Type != entities.ItemConsumable || !item.HasCombatEffect() {
			return resolved, errors.FailedPreconditionf("%s has no effect in combat", item.Name).
				WithReason(errors.ReasonNoEffect)
		}

		logs.add(entities.LogCombatAction, "%s uses %s.", player.Name, item.Name)
		if item.Effects.HP > 0 {
			healed := restoreHP(&player.Combatant, item.Effects.HP)
			logs.add(entities.LogCombatAction, "%s recovers %d hp.", player.Name, healed)
		}
		if item.Effects.MP > 0 {
			restored := restoreMP(&player.Combatant, item.Effects.MP)
			logs.add(entities.LogCombatAction, "%s recovers %d mp.", player.Name, restored)
		}
		if len(item.Effects.CuresEffect) > 0 {
			cured := o.engine.RemoveEffects(entities.PlayerActor(player), item.Effects.CuresEffect...)
			logs.extend(cured.Logs)
		}
		player.ConsumeItem(item.ID)
		return resolved, nil
	})
}

// Flee tries to escape a normal encounter
func (o *orchestrator) Flee(ctx context.Context, input *FleeInput) (*ActionOutput, error) {
	guard := func(s *session) error {
		if s.encounter.IsBoss {
			return errors.FailedPrecondition("there is no escaping this fight").
				WithReason(errors.ReasonBossFlee)
		}
		return nil
	}

	return o.playerAction(ctx, guard, func(s *session, player *entities.Player, logs *turnLog) (resolution, error) {
		got, err := o.rollChance(o.engine.Rules().FleeChance)
		if err != nil {
			return resolved, errors.Wrap(err, "failed to roll flee chance")
		}
		if got {
			logs.add(entities.LogCombatResult, "%s got away safely!", player.Name)
			return escaped, nil
		}
		logs.add(entities.LogCombatAction, "%s tried to flee but could not escape!", player.Name)
		return resolved, nil
	})
}

func (o *orchestrator) damage(actor entities.Actor, amount int) {
	c := actor.Combatant()
	c.HP = max(0, c.HP-amount)
	o.engine.Derive(actor)
}

func restoreHP(c *entities.Combatant, amount int) int {
	before := c.HP
	c.HP = min(c.MaxHP(), c.HP+amount)
	return c.HP - before
}

func restoreMP(c *entities.Combatant, amount int) int {
	before := c.MP
	c.MP = min(c.MaxMP(), c.MP+amount)
	return c.MP - before
}
