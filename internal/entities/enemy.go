package entities

// Enemy is one enemy in a running encounter, instantiated from a script
// character template. CombatID tells apart duplicates of the same template.
type Enemy struct {
	Combatant
	TemplateID string   `json:"templateId"`
	CombatID   string   `json:"combatId"`
	SkillIDs   []string `json:"skills,omitempty"`
}

// GetID returns the per-encounter combat id
func (e *Enemy) GetID() string {
	return e.CombatID
}

// GetType returns the entity type used on event payloads
func (e *Enemy) GetType() string {
	return string(KindEnemy)
}

// Clone returns a deep copy
func (e *Enemy) Clone() *Enemy {
	if e == nil {
		return nil
	}
	out := *e
	out.Combatant = e.Combatant.Clone()
	if e.SkillIDs != nil {
		out.SkillIDs = append([]string(nil), e.SkillIDs...)
	}
	return &out
}
