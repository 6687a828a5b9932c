package entities

// ItemType classifies an item
type ItemType string

const (
	ItemConsumable ItemType = "consumable"
	ItemWeapon     ItemType = "weapon"
	ItemArmor      ItemType = "armor"
	ItemAccessory  ItemType = "accessory"
	ItemKey        ItemType = "keyItem"
)

// EquipmentSlot names one of the player's equipment slots
type EquipmentSlot string

const (
	SlotWeapon    EquipmentSlot = "weapon"
	SlotArmor     EquipmentSlot = "armor"
	SlotAccessory EquipmentSlot = "accessory"
)

// ItemEffects holds direct restoration, cures and equipment bonuses. On a
// consumable HP and MP restore the current value; on equipment they raise the
// maximum.
type ItemEffects struct {
	HP          int      `json:"hp,omitempty" yaml:"hp"`
	MP          int      `json:"mp,omitempty" yaml:"mp"`
	Attack      int      `json:"attack,omitempty" yaml:"attack"`
	Defense     int      `json:"defense,omitempty" yaml:"defense"`
	Speed       int      `json:"speed,omitempty" yaml:"speed"`
	Luck        int      `json:"luck,omitempty" yaml:"luck"`
	CritChance  int      `json:"critChance,omitempty" yaml:"critChance"`
	CuresEffect []string `json:"curesEffect,omitempty" yaml:"curesEffect"`
}

// Bonuses returns the flat stat bonuses an equipped item grants
func (e ItemEffects) Bonuses() Stats {
	return Stats{
		Attack:     e.Attack,
		Defense:    e.Defense,
		Speed:      e.Speed,
		Luck:       e.Luck,
		MaxHP:      e.HP,
		MaxMP:      e.MP,
		CritChance: e.CritChance,
	}
}

// Item is a catalog item or an inventory stack
type Item struct {
	ID          string        `json:"id" yaml:"id"`
	Name        string        `json:"name" yaml:"name"`
	Description string        `json:"description,omitempty" yaml:"description"`
	Type        ItemType      `json:"type" yaml:"type"`
	Quantity    int           `json:"quantity" yaml:"quantity"`
	Effects     ItemEffects   `json:"effects" yaml:"effects"`
	EquipSlot   EquipmentSlot `json:"equipSlot,omitempty" yaml:"equipSlot"`
	SellPrice   int           `json:"sellPrice,omitempty" yaml:"sellPrice"`
	Icon        string        `json:"icon,omitempty" yaml:"icon"`
}

// Clone returns a deep copy
func (i Item) Clone() Item {
	out := i
	if i.Effects.CuresEffect != nil {
		out.Effects.CuresEffect = append([]string(nil), i.Effects.CuresEffect...)
	}
	return out
}

// HasCombatEffect reports whether using the item in combat would do anything
func (i Item) HasCombatEffect() bool {
	return i.Effects.HP > 0 || i.Effects.MP > 0 || len(i.Effects.CuresEffect) > 0
}

// Equipment holds at most one item per slot
type Equipment struct {
	Weapon    *Item `json:"weapon"`
	Armor     *Item `json:"armor"`
	Accessory *Item `json:"accessory"`
}

// Items returns the equipped items in slot order
func (e Equipment) Items() []Item {
	var out []Item
	for _, it := range []*Item{e.Weapon, e.Armor, e.Accessory} {
		if it != nil {
			out = append(out, *it)
		}
	}
	return out
}

// Clone returns a deep copy
func (e Equipment) Clone() Equipment {
	cp := func(it *Item) *Item {
		if it == nil {
			return nil
		}
		c := it.Clone()
		return &c
	}
	return Equipment{Weapon: cp(e.Weapon), Armor: cp(e.Armor), Accessory: cp(e.Accessory)}
}
