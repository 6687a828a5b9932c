package engine

import (
	"github.com/KirkDiggler/rpg-quest/internal/entities"
	"github.com/KirkDiggler/rpg-quest/internal/errors"
)

// ApplyEffect adds an effect or refreshes an existing instance of it.
// A refresh keeps the longer remaining duration and replaces potency and source.
func (e *engine) ApplyEffect(actor entities.Actor, input *ApplyEffectInput) (*EffectOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	def, ok := e.catalog.Effect(input.EffectID)
	if !ok {
		return nil, errors.NotFoundf("status effect %s not found", input.EffectID).
			WithMeta("effect_id", input.EffectID)
	}

	duration := input.Duration
	if duration <= 0 {
		duration = def.DefaultDuration
	}
	potency := resolvePotency(def, input.Potency)

	c := actor.Combatant()
	if idx := c.EffectIndex(def.ID); idx >= 0 {
		existing := &c.ActiveEffects[idx]
		if duration > existing.RemainingDuration {
			existing.RemainingDuration = duration
		}
		existing.AppliedPotency = potency
		existing.SourceID = input.SourceID
	} else {
		c.ActiveEffects = append(c.ActiveEffects, entities.StatusEffect{
			EffectDefinition:  def,
			RemainingDuration: duration,
			AppliedPotency:    potency,
			SourceID:          input.SourceID,
		})
	}

	out := &EffectOutput{Changed: true}
	if def.ApplyLog != "" {
		out.Logs = append(out.Logs, e.log(entities.LogStatusEffect,
			renderEffectLog(def.ApplyLog, c.Name, def.Name, potency)))
	}

	e.Derive(actor)
	return out, nil
}

func resolvePotency(def entities.EffectDefinition, explicit *int) int {
	switch {
	case explicit != nil:
		return *explicit
	case def.TickEffect != nil:
		return def.TickEffect.BasePotency
	case len(def.StatModifiers) > 0:
		return int(def.StatModifiers[0].Value)
	default:
		return 0
	}
}

// RemoveEffects drops every active effect whose id is listed
func (e *engine) RemoveEffects(actor entities.Actor, effectIDs ...string) *EffectOutput {
	out := &EffectOutput{}
	c := actor.Combatant()

	remove := make(map[string]bool, len(effectIDs))
	for _, id := range effectIDs {
		remove[id] = true
	}

	kept := make([]entities.StatusEffect, 0, len(c.ActiveEffects))
	for _, effect := range c.ActiveEffects {
		if !remove[effect.ID] {
			kept = append(kept, effect)
			continue
		}
		out.Changed = true
		if effect.ExpireLog != "" {
			out.Logs = append(out.Logs, e.log(entities.LogStatusEffect,
				renderEffectLog(effect.ExpireLog, c.Name, effect.Name, effect.AppliedPotency)))
		}
	}
	if !out.Changed {
		return out
	}

	c.ActiveEffects = kept
	e.Derive(actor)
	return out
}

// ProcessTurnStart ticks every active effect once in insertion order. Hp and
// mp deltas are summed and clamped once at the end.
func (e *engine) ProcessTurnStart(actor entities.Actor) *TurnStartOutput {
	out := &TurnStartOutput{}
	c := actor.Combatant()
	if len(c.ActiveEffects) == 0 {
		return out
	}

	kept := make([]entities.StatusEffect, 0, len(c.ActiveEffects))
	for _, effect := range c.ActiveEffects {
		effect.RemainingDuration--

		if tick := effect.TickEffect; tick != nil {
			delta := effect.AppliedPotency
			if tick.CanBeNegative {
				delta = -delta
			}
			switch tick.Stat {
			case entities.StatHP:
				out.HPDelta += delta
			case entities.StatMP:
				out.MPDelta += delta
			}
			if effect.TickLog != "" {
				out.Logs = append(out.Logs, e.log(entities.LogStatusEffect,
					renderEffectLog(effect.TickLog, c.Name, effect.Name, effect.AppliedPotency)))
			}
		}

		if effect.PreventsAction {
			out.PreventedAction = true
		}

		if effect.RemainingDuration > 0 {
			kept = append(kept, effect)
			continue
		}
		if effect.ExpireLog != "" {
			out.Logs = append(out.Logs, e.log(entities.LogStatusEffect,
				renderEffectLog(effect.ExpireLog, c.Name, effect.Name, effect.AppliedPotency)))
		}
	}

	c.ActiveEffects = kept
	c.HP = clamp(c.HP+out.HPDelta, 0, c.Stats.MaxHP)
	c.MP = clamp(c.MP+out.MPDelta, 0, c.Stats.MaxMP)
	e.Derive(actor)

	return out
}

// StripDebuffs keeps only beneficial effects
func (e *engine) StripDebuffs(actor entities.Actor) {
	c := actor.Combatant()
	kept := make([]entities.StatusEffect, 0, len(c.ActiveEffects))
	for _, effect := range c.ActiveEffects {
		if effect.IsBuff {
			kept = append(kept, effect)
		}
	}
	c.ActiveEffects = kept
	e.Derive(actor)
}

// ClearEffects removes every active effect without logging
func (e *engine) ClearEffects(actor entities.Actor) {
	actor.Combatant().ActiveEffects = nil
	e.Derive(actor)
}
