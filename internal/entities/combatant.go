package entities

// Kind tags which side of a fight a combatant belongs to
type Kind string

const (
	KindPlayer Kind = "player"
	KindEnemy  Kind = "enemy"
)

// Combatant is the state shared by the player and enemy instances.
// Stats is always recomputed from Base, equipment and ActiveEffects and is
// never trusted from storage.
type Combatant struct {
	ID            string         `json:"id"`
	Name          string         `json:"name"`
	HP            int            `json:"hp"`
	MP            int            `json:"mp"`
	Base          Stats          `json:"base"`
	Stats         Stats          `json:"stats"`
	ActiveEffects []StatusEffect `json:"activeEffects"`
}

// MaxHP returns the derived maximum hp
func (c *Combatant) MaxHP() int {
	return c.Stats.MaxHP
}

// MaxMP returns the derived maximum mp
func (c *Combatant) MaxMP() int {
	return c.Stats.MaxMP
}

// Alive reports whether the combatant can still act or be targeted
func (c *Combatant) Alive() bool {
	return c.HP > 0
}

// HasEffect reports whether an effect with the given id is active
func (c *Combatant) HasEffect(effectID string) bool {
	return c.EffectIndex(effectID) >= 0
}

// EffectIndex returns the position of the effect in ActiveEffects or -1
func (c *Combatant) EffectIndex(effectID string) int {
	for i := range c.ActiveEffects {
		if c.ActiveEffects[i].ID == effectID {
			return i
		}
	}
	return -1
}

// Clone returns a deep copy
func (c Combatant) Clone() Combatant {
	out := c
	if c.ActiveEffects != nil {
		out.ActiveEffects = make([]StatusEffect, len(c.ActiveEffects))
		for i := range c.ActiveEffects {
			out.ActiveEffects[i] = c.ActiveEffects[i].Clone()
		}
	}
	return out
}
