package entities

// SkillEffectType is the direct effect of a skill
type SkillEffectType string

const (
	SkillDamageHP SkillEffectType = "damage_hp"
	SkillHealHP   SkillEffectType = "heal_hp"
	SkillDamageMP SkillEffectType = "damage_mp"
	SkillHealMP   SkillEffectType = "heal_mp"
	SkillEtc      SkillEffectType = "etc"
)

// TargetType selects who a skill lands on
type TargetType string

const (
	TargetEnemySingle TargetType = "enemy_single"
	TargetEnemyAll    TargetType = "enemy_all"
	TargetSelf        TargetType = "self"
	TargetAllySingle  TargetType = "ally_single"
	TargetNone        TargetType = "none"
)

// SkillEffectApplication describes a status effect a skill may apply.
// Nil Potency falls back to the effect's own potency; nil Chance means always.
type SkillEffectApplication struct {
	EffectID string   `json:"effectId" yaml:"effectId"`
	Duration int      `json:"duration" yaml:"duration"`
	Potency  *int     `json:"potency,omitempty" yaml:"potency"`
	Chance   *float64 `json:"chance,omitempty" yaml:"chance"`
}

// Skill is a catalog skill definition
type Skill struct {
	ID            string                  `json:"id" yaml:"id"`
	Name          string                  `json:"name" yaml:"name"`
	Description   string                  `json:"description,omitempty" yaml:"description"`
	MPCost        int                     `json:"mpCost" yaml:"mpCost"`
	EffectType    SkillEffectType         `json:"effectType" yaml:"effectType"`
	EffectValue   int                     `json:"effectValue,omitempty" yaml:"effectValue"`
	TargetType    TargetType              `json:"targetType" yaml:"targetType"`
	Icon          string                  `json:"icon,omitempty" yaml:"icon"`
	AppliesEffect *SkillEffectApplication `json:"appliesStatusEffect,omitempty" yaml:"appliesStatusEffect"`
}

// Clone returns a deep copy
func (s Skill) Clone() Skill {
	out := s
	if s.AppliesEffect != nil {
		app := *s.AppliesEffect
		if app.Potency != nil {
			p := *app.Potency
			app.Potency = &p
		}
		if app.Chance != nil {
			c := *app.Chance
			app.Chance = &c
		}
		out.AppliesEffect = &app
	}
	return out
}

// ApplyChance returns the probability in [0,1] that the skill's effect lands
func (a *SkillEffectApplication) ApplyChance() float64 {
	if a == nil || a.Chance == nil {
		return 1
	}
	return *a.Chance
}
