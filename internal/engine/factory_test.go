package engine_test

import (
	"github.com/KirkDiggler/rpg-quest/internal/engine"
	"github.com/KirkDiggler/rpg-quest/internal/entities"
)

func (s *EngineTestSuite) TestNewPlayerStarterKit() {
	s.Assert().Equal("player", s.player.ID)
	s.Assert().Equal(1, s.player.Level)
	s.Assert().Equal(50, s.player.HP)
	s.Assert().Equal(20, s.player.MP)
	s.Assert().Equal(50, s.player.Gold)
	s.Assert().Equal(100, s.player.ExpToNextLevel)
	s.Assert().Equal(5, s.player.Stats.Defense)
	s.Assert().Equal(7, s.player.Stats.Speed)

	s.Require().Len(s.player.Inventory, 1)
	s.Assert().Equal("item_consumable_potion_hp_small", s.player.Inventory[0].ID)
	s.Assert().Equal(3, s.player.Inventory[0].Quantity)

	s.Require().NotNil(s.player.Equipment.Weapon)
	s.Assert().Equal("item_weapon_sword_basic", s.player.Equipment.Weapon.ID)
	s.Assert().Equal([]string{"skill_punch", "skill_fireball", "skill_heal_light"}, s.player.LearnedSkillIDs)
}

func (s *EngineTestSuite) TestNewPlayerRequiresName() {
	_, err := s.engine.NewPlayer(&engine.NewPlayerInput{})
	s.Assert().Error(err)
}

func (s *EngineTestSuite) TestNewEnemyStats() {
	hp, atk := 80, 12

	testCases := []struct {
		name     string
		template entities.Character
		isBoss   bool
		wantHP   int
		wantAtk  int
		wantDef  int
	}{
		{"normal defaults", entities.Character{ID: "a"}, false, 30, 8, 3},
		{"boss defaults scaled", entities.Character{ID: "b"}, true, 150, 20, 6},
		{"boss explicit stats unscaled", entities.Character{ID: "c", HP: &hp, Attack: &atk}, true, 80, 12, 6},
		{"normal explicit stats", entities.Character{ID: "d", HP: &hp}, false, 80, 8, 3},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			template := tc.template
			enemy := s.engine.NewEnemy(&engine.NewEnemyInput{Template: &template, CombatID: template.ID + "_0", IsBoss: tc.isBoss})
			s.Assert().Equal(tc.wantHP, enemy.HP)
			s.Assert().Equal(tc.wantHP, enemy.MaxHP())
			s.Assert().Equal(tc.wantAtk, enemy.Stats.Attack)
			s.Assert().Equal(tc.wantDef, enemy.Stats.Defense)
			s.Assert().Equal(template.ID+"_0", enemy.GetID())
			s.Assert().Empty(enemy.ActiveEffects)
		})
	}
}
