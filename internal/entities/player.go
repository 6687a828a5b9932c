package entities

// Player is the single player-controlled combatant
type Player struct {
	Combatant
	Level           int       `json:"level"`
	Exp             int       `json:"exp"`
	ExpToNextLevel  int       `json:"expToNextLevel"`
	Gold            int       `json:"gold"`
	Inventory       []Item    `json:"inventory"`
	Equipment       Equipment `json:"equipment"`
	LearnedSkillIDs []string  `json:"learnedSkillIds"`
	VisitedSceneIDs []string  `json:"visitedSceneIds"`
	CurrentLocation string    `json:"currentLocation"`
}

// GetID returns the player's id
func (p *Player) GetID() string {
	return p.ID
}

// GetType returns the entity type used on event payloads
func (p *Player) GetType() string {
	return string(KindPlayer)
}

// KnowsSkill reports whether skillID has been learned
func (p *Player) KnowsSkill(skillID string) bool {
	for _, id := range p.LearnedSkillIDs {
		if id == skillID {
			return true
		}
	}
	return false
}

// InventoryIndex returns the index of the stack for itemID or -1
func (p *Player) InventoryIndex(itemID string) int {
	for i := range p.Inventory {
		if p.Inventory[i].ID == itemID {
			return i
		}
	}
	return -1
}

// AddItem merges item into an existing stack or appends a new one
func (p *Player) AddItem(item Item, quantity int) {
	if quantity <= 0 {
		return
	}
	if idx := p.InventoryIndex(item.ID); idx >= 0 {
		p.Inventory[idx].Quantity += quantity
		return
	}
	stack := item.Clone()
	stack.Quantity = quantity
	p.Inventory = append(p.Inventory, stack)
}

// ConsumeItem decrements the stack by one and drops it at zero
func (p *Player) ConsumeItem(itemID string) bool {
	idx := p.InventoryIndex(itemID)
	if idx < 0 {
		return false
	}
	p.Inventory[idx].Quantity--
	if p.Inventory[idx].Quantity <= 0 {
		p.Inventory = append(p.Inventory[:idx], p.Inventory[idx+1:]...)
	}
	return true
}

// MarkVisited records a scene id once
func (p *Player) MarkVisited(sceneID string) {
	for _, id := range p.VisitedSceneIDs {
		if id == sceneID {
			return
		}
	}
	p.VisitedSceneIDs = append(p.VisitedSceneIDs, sceneID)
}

// Clone returns a deep copy
func (p *Player) Clone() *Player {
	if p == nil {
		return nil
	}
	out := *p
	out.Combatant = p.Combatant.Clone()
	if p.Inventory != nil {
		out.Inventory = make([]Item, len(p.Inventory))
		for i := range p.Inventory {
			out.Inventory[i] = p.Inventory[i].Clone()
		}
	}
	out.Equipment = p.Equipment.Clone()
	if p.LearnedSkillIDs != nil {
		out.LearnedSkillIDs = append([]string(nil), p.LearnedSkillIDs...)
	}
	if p.VisitedSceneIDs != nil {
		out.VisitedSceneIDs = append([]string(nil), p.VisitedSceneIDs...)
	}
	return &out
}
