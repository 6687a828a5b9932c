package engine

import (
	"math"

	"github.com/KirkDiggler/rpg-quest/internal/entities"
)

// Derive rebuilds the derived stats of the actor. It is idempotent and must
// run after any change to base stats, equipment or the active effect set.
func (e *engine) Derive(actor entities.Actor) {
	c := actor.Combatant()

	start := c.Base
	switch actor.Kind {
	case entities.KindPlayer:
		for _, item := range actor.Player.Equipment.Items() {
			start = start.Add(item.Effects.Bonuses())
		}
	case entities.KindEnemy:
		// equipment never applies to enemies
	}

	acc := map[entities.Stat]float64{
		entities.StatAttack:     float64(start.Attack),
		entities.StatDefense:    float64(start.Defense),
		entities.StatSpeed:      float64(start.Speed),
		entities.StatLuck:       float64(start.Luck),
		entities.StatMaxHP:      float64(start.MaxHP),
		entities.StatMaxMP:      float64(start.MaxMP),
		entities.StatCritChance: float64(start.CritChance),
	}
	for _, effect := range c.ActiveEffects {
		for _, mod := range effect.StatModifiers {
			if _, ok := acc[mod.Stat]; !ok {
				continue
			}
			change := mod.Value
			if mod.IsPercentage {
				change = float64(c.Base.Get(mod.Stat)) * mod.Value
			}
			acc[mod.Stat] += change
		}
	}

	floor := func(stat entities.Stat, lo int) int {
		v := int(math.Floor(acc[stat]))
		if v < lo {
			return lo
		}
		return v
	}

	c.Stats = entities.Stats{
		Attack:     floor(entities.StatAttack, 0),
		Defense:    floor(entities.StatDefense, 0),
		Speed:      floor(entities.StatSpeed, 0),
		Luck:       floor(entities.StatLuck, 0),
		MaxHP:      floor(entities.StatMaxHP, 1),
		MaxMP:      floor(entities.StatMaxMP, 0),
		CritChance: floor(entities.StatCritChance, 0),
	}
	if c.Stats.CritChance > 100 {
		c.Stats.CritChance = 100
	}

	c.HP = clamp(c.HP, 0, c.Stats.MaxHP)
	switch actor.Kind {
	case entities.KindPlayer:
		c.MP = clamp(c.MP, 0, c.Stats.MaxMP)
	case entities.KindEnemy:
		c.MP = 0
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
