package entities

// StatModifier changes a derived stat while an effect is active. Percentage
// modifiers scale the base value of the same stat (0.1 means +10%).
type StatModifier struct {
	Stat         Stat    `json:"stat" yaml:"stat"`
	Value        float64 `json:"value" yaml:"value"`
	IsPercentage bool    `json:"isPercentage,omitempty" yaml:"isPercentage"`
}

// TickEffect is the per-turn hp or mp change of an effect
type TickEffect struct {
	Stat          Stat `json:"statToAffect" yaml:"statToAffect"`
	BasePotency   int  `json:"basePotency" yaml:"basePotency"`
	CanBeNegative bool `json:"canBeNegative,omitempty" yaml:"canBeNegative"`
}

// EffectDefinition is the immutable catalog entry for a status effect.
// Log templates accept {target}, {effectName} and {value}.
type EffectDefinition struct {
	ID              string         `json:"id" yaml:"id"`
	Name            string         `json:"name" yaml:"name"`
	Icon            string         `json:"icon,omitempty" yaml:"icon"`
	Description     string         `json:"description,omitempty" yaml:"description"`
	IsBuff          bool           `json:"isBuff" yaml:"isBuff"`
	StatModifiers   []StatModifier `json:"statModifiers,omitempty" yaml:"statModifiers"`
	TickEffect      *TickEffect    `json:"tickEffect,omitempty" yaml:"tickEffect"`
	PreventsAction  bool           `json:"preventsAction,omitempty" yaml:"preventsAction"`
	DefaultDuration int            `json:"defaultDuration" yaml:"defaultDuration"`
	ApplyLog        string         `json:"onApplyLog,omitempty" yaml:"onApplyLog"`
	TickLog         string         `json:"onTickLog,omitempty" yaml:"onTickLog"`
	ExpireLog       string         `json:"onExpireLog,omitempty" yaml:"onExpireLog"`
}

// Clone returns a deep copy so callers never share catalog slices
func (d EffectDefinition) Clone() EffectDefinition {
	out := d
	if d.StatModifiers != nil {
		out.StatModifiers = append([]StatModifier(nil), d.StatModifiers...)
	}
	if d.TickEffect != nil {
		tick := *d.TickEffect
		out.TickEffect = &tick
	}
	return out
}

// StatusEffect is an active instance of a definition on a combatant
type StatusEffect struct {
	EffectDefinition
	RemainingDuration int    `json:"remainingDuration"`
	AppliedPotency    int    `json:"appliedPotency"`
	SourceID          string `json:"sourceCharacterId,omitempty"`
}

// Clone returns a deep copy
func (e StatusEffect) Clone() StatusEffect {
	out := e
	out.EffectDefinition = e.EffectDefinition.Clone()
	return out
}
