package entities

// Stat names an attribute that effects and equipment can modify
type Stat string

const (
	StatHP         Stat = "hp"
	StatMP         Stat = "mp"
	StatAttack     Stat = "attack"
	StatDefense    Stat = "defense"
	StatSpeed      Stat = "speed"
	StatLuck       Stat = "luck"
	StatMaxHP      Stat = "maxHp"
	StatMaxMP      Stat = "maxMp"
	StatCritChance Stat = "critChance"
)

// Stats is a full set of combat attributes. A combatant keeps two of these:
// the base values it grows through leveling and the derived values used in
// combat.
type Stats struct {
	Attack     int `json:"attack" yaml:"attack"`
	Defense    int `json:"defense" yaml:"defense"`
	Speed      int `json:"speed" yaml:"speed"`
	Luck       int `json:"luck" yaml:"luck"`
	MaxHP      int `json:"maxHp" yaml:"maxHp"`
	MaxMP      int `json:"maxMp" yaml:"maxMp"`
	CritChance int `json:"critChance" yaml:"critChance"`
}

// Get returns the value for s, or 0 for stats that are not part of the set
func (s Stats) Get(stat Stat) int {
	switch stat {
	case StatAttack:
		return s.Attack
	case StatDefense:
		return s.Defense
	case StatSpeed:
		return s.Speed
	case StatLuck:
		return s.Luck
	case StatMaxHP:
		return s.MaxHP
	case StatMaxMP:
		return s.MaxMP
	case StatCritChance:
		return s.CritChance
	default:
		return 0
	}
}

// Add returns the sum of both sets
func (s Stats) Add(o Stats) Stats {
	return Stats{
		Attack:     s.Attack + o.Attack,
		Defense:    s.Defense + o.Defense,
		Speed:      s.Speed + o.Speed,
		Luck:       s.Luck + o.Luck,
		MaxHP:      s.MaxHP + o.MaxHP,
		MaxMP:      s.MaxMP + o.MaxMP,
		CritChance: s.CritChance + o.CritChance,
	}
}
