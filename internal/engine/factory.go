package engine

import (
	"math"

	"github.com/KirkDiggler/rpg-quest/internal/entities"
	"github.com/KirkDiggler/rpg-quest/internal/errors"
)

// DefaultPlayerID is the id of the single player
const DefaultPlayerID = "player"

// NewPlayer creates a level one player with the starter kit equipped
func (e *engine) NewPlayer(input *NewPlayerInput) (*entities.Player, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("Name", input.Name, vb)
	if err := vb.Build(); err != nil {
		return nil, err
	}

	id := input.ID
	if id == "" {
		id = DefaultPlayerID
	}

	r := e.rules.Player
	player := &entities.Player{
		Combatant: entities.Combatant{
			ID:   id,
			Name: input.Name,
			HP:   r.HP,
			MP:   r.MP,
			Base: entities.Stats{
				Attack:     r.Attack,
				Defense:    r.Defense,
				Speed:      r.Speed,
				Luck:       r.Luck,
				MaxHP:      r.HP,
				MaxMP:      r.MP,
				CritChance: r.CritChance,
			},
		},
		Level:           r.Level,
		Exp:             r.Exp,
		ExpToNextLevel:  r.ExpToNextLevel,
		Gold:            r.Gold,
		LearnedSkillIDs: e.catalog.DefaultSkillIDs(),
		CurrentLocation: input.Location,
	}

	for _, starter := range r.StarterItems {
		item, ok := e.catalog.Item(starter.ItemID)
		if !ok {
			return nil, errors.NotFoundf("starter item %s not found", starter.ItemID)
		}
		player.AddItem(item, starter.Quantity)
	}
	if r.StarterWeapon != "" {
		weapon, ok := e.catalog.Item(r.StarterWeapon)
		if !ok {
			return nil, errors.NotFoundf("starter weapon %s not found", r.StarterWeapon)
		}
		weapon.Quantity = 1
		player.Equipment.Weapon = &weapon
	}

	e.Derive(entities.PlayerActor(player))
	player.HP = player.MaxHP()
	player.MP = player.MaxMP()
	return player, nil
}

// NewEnemy instantiates an enemy from a script template. Stats the template
// leaves unset fall back to the defaults, scaled up for boss encounters.
func (e *engine) NewEnemy(input *NewEnemyInput) *entities.Enemy {
	t := input.Template
	hpMul, atkMul, defMul := 1.0, 1.0, 1.0
	if input.IsBoss {
		hpMul = e.rules.Boss.HPMultiplier
		atkMul = e.rules.Boss.AttackMultiplier
		defMul = e.rules.Boss.DefenseMultiplier
	}

	pick := func(explicit *int, fallback int, mul float64) int {
		if explicit != nil {
			return *explicit
		}
		return int(math.Floor(float64(fallback) * mul))
	}

	hp := pick(t.HP, e.rules.Enemy.HP, hpMul)
	enemy := &entities.Enemy{
		Combatant: entities.Combatant{
			ID:   t.ID,
			Name: t.Name,
			HP:   hp,
			Base: entities.Stats{
				Attack:  pick(t.Attack, e.rules.Enemy.Attack, atkMul),
				Defense: pick(t.Defense, e.rules.Enemy.Defense, defMul),
				MaxHP:   hp,
			},
		},
		TemplateID: t.ID,
		CombatID:   input.CombatID,
		SkillIDs:   append([]string(nil), t.Skills...),
	}
	e.Derive(entities.EnemyActor(enemy))
	return enemy
}
