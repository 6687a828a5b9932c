package catalog

import (
	"github.com/KirkDiggler/rpg-quest/internal/errors"
)

// StarterItem is an inventory stack granted on a new game
type StarterItem struct {
	ItemID   string `yaml:"itemId"`
	Quantity int    `yaml:"quantity"`
}

// PlayerRules are the starting values of a new player
type PlayerRules struct {
	Level          int           `yaml:"level"`
	HP             int           `yaml:"hp"`
	MP             int           `yaml:"mp"`
	Exp            int           `yaml:"exp"`
	ExpToNextLevel int           `yaml:"expToNextLevel"`
	Gold           int           `yaml:"gold"`
	Attack         int           `yaml:"attack"`
	Defense        int           `yaml:"defense"`
	Speed          int           `yaml:"speed"`
	Luck           int           `yaml:"luck"`
	CritChance     int           `yaml:"critChance"`
	StarterItems   []StarterItem `yaml:"starterItems"`
	StarterWeapon  string        `yaml:"starterWeapon"`
}

// LevelUpRules are the per-level base stat gains
type LevelUpRules struct {
	ThresholdMultiplier float64 `yaml:"thresholdMultiplier"`
	HP                  int     `yaml:"hp"`
	MP                  int     `yaml:"mp"`
	Attack              int     `yaml:"attack"`
	Defense             int     `yaml:"defense"`
	Speed               int     `yaml:"speed"`
	Luck                int     `yaml:"luck"`
}

// EnemyRules are the fallback stats for templates that leave them unset
type EnemyRules struct {
	HP      int `yaml:"hp"`
	Attack  int `yaml:"attack"`
	Defense int `yaml:"defense"`
}

// BossRules scale the fallback stats of boss encounters
type BossRules struct {
	HPMultiplier      float64 `yaml:"hpMultiplier"`
	AttackMultiplier  float64 `yaml:"attackMultiplier"`
	DefenseMultiplier float64 `yaml:"defenseMultiplier"`
}

// Reward is the payout of a won encounter
type Reward struct {
	Gold int `yaml:"gold"`
	Exp  int `yaml:"exp"`
}

// RewardRules split rewards by encounter kind
type RewardRules struct {
	Normal Reward `yaml:"normal"`
	Boss   Reward `yaml:"boss"`
}

// DefeatRules configure the penalty for losing a fight
type DefeatRules struct {
	HPFraction  float64 `yaml:"hpFraction"`
	GoldPenalty float64 `yaml:"goldPenalty"`
}

// Rules is every numeric constant of combat and progression
type Rules struct {
	Player     PlayerRules  `yaml:"player"`
	LevelUp    LevelUpRules `yaml:"levelUp"`
	Enemy      EnemyRules   `yaml:"enemy"`
	Boss       BossRules    `yaml:"boss"`
	Rewards    RewardRules  `yaml:"rewards"`
	Defeat     DefeatRules  `yaml:"defeat"`
	FleeChance float64      `yaml:"fleeChance"`
}

// RewardFor returns the reward for a normal or boss encounter
func (r Rules) RewardFor(isBoss bool) Reward {
	if isBoss {
		return r.Rewards.Boss
	}
	return r.Rewards.Normal
}

func (r Rules) validate(vb *errors.ValidationBuilder, c *Catalog) {
	if r.Player.HP < 1 {
		vb.Field("rules.player.hp", "must be at least 1")
	}
	if r.Player.ExpToNextLevel < 1 {
		vb.Field("rules.player.expToNextLevel", "must be at least 1")
	}
	if r.LevelUp.ThresholdMultiplier <= 1 {
		vb.Field("rules.levelUp.thresholdMultiplier", "must be greater than 1")
	}
	if r.Enemy.HP < 1 {
		vb.Field("rules.enemy.hp", "must be at least 1")
	}
	if r.FleeChance < 0 || r.FleeChance > 1 {
		vb.Field("rules.fleeChance", "must be between 0 and 1")
	}
	if r.Defeat.GoldPenalty < 0 || r.Defeat.GoldPenalty > 1 {
		vb.Field("rules.defeat.goldPenalty", "must be between 0 and 1")
	}
	for _, starter := range r.Player.StarterItems {
		if _, ok := c.items[starter.ItemID]; !ok {
			vb.Fieldf("rules.player.starterItems", "unknown item %q", starter.ItemID)
		}
	}
	if r.Player.StarterWeapon != "" {
		if item, ok := c.items[r.Player.StarterWeapon]; !ok || item.EquipSlot == "" {
			vb.Fieldf("rules.player.starterWeapon", "%q is not equipment", r.Player.StarterWeapon)
		}
	}
}
