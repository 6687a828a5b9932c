package engine_test

import (
	"github.com/KirkDiggler/rpg-quest/internal/engine"
	"github.com/KirkDiggler/rpg-quest/internal/entities"
)

func (s *EngineTestSuite) TestDeriveAddsEquipmentForPlayerOnly() {
	s.Assert().Equal(10, s.player.Base.Attack)
	s.Assert().Equal(13, s.player.Stats.Attack)

	ring := entities.Item{ID: "ring", EquipSlot: entities.SlotAccessory, Effects: entities.ItemEffects{HP: 30, MP: 10, CritChance: 5}}
	s.player.Equipment.Accessory = &ring
	s.engine.Derive(entities.PlayerActor(s.player))

	s.Assert().Equal(80, s.player.MaxHP())
	s.Assert().Equal(30, s.player.MaxMP())
	s.Assert().Equal(10, s.player.Stats.CritChance)
	s.Assert().Equal(50, s.player.HP, "raising the maximum never heals")
}

func (s *EngineTestSuite) TestDeriveEnemy() {
	s.Assert().Equal(8, s.enemy.Stats.Attack)
	s.Assert().Equal(3, s.enemy.Stats.Defense)
	s.Assert().Equal(30, s.enemy.MaxHP())
	s.Assert().Equal(0, s.enemy.MP)
	s.Assert().Equal(0, s.enemy.Stats.CritChance)
}

func (s *EngineTestSuite) TestDerivePercentageUsesBaseValue() {
	_, err := s.engine.ApplyEffect(entities.PlayerActor(s.player), &engine.ApplyEffectInput{EffectID: "berserk"})
	s.Require().NoError(err)
	_, err = s.engine.ApplyEffect(entities.PlayerActor(s.player), &engine.ApplyEffectInput{EffectID: "attack_buff"})
	s.Require().NoError(err)

	// base 10 + sword 3 + 50% of base 10 + flat 5
	s.Assert().Equal(23, s.player.Stats.Attack)
}

func (s *EngineTestSuite) TestDeriveClamps() {
	testCases := []struct {
		name   string
		effect string
		check  func(c *entities.Combatant)
	}{
		{
			name:   "defense never negative",
			effect: "defense_debuff",
			check: func(c *entities.Combatant) {
				s.Assert().Equal(0, c.Stats.Defense)
			},
		},
		{
			name:   "max hp at least one and hp follows",
			effect: "wither",
			check: func(c *entities.Combatant) {
				s.Assert().Equal(1, c.MaxHP())
				s.Assert().Equal(1, c.HP)
			},
		},
		{
			name:   "crit chance capped",
			effect: "focus",
			check: func(c *entities.Combatant) {
				s.Assert().Equal(100, c.Stats.CritChance)
			},
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			s.SetupTest()
			actor := entities.EnemyActor(s.enemy)
			_, err := s.engine.ApplyEffect(actor, &engine.ApplyEffectInput{EffectID: tc.effect})
			s.Require().NoError(err)
			tc.check(actor.Combatant())
			s.assertInvariants(actor.Combatant())

			player := entities.PlayerActor(s.player)
			_, err = s.engine.ApplyEffect(player, &engine.ApplyEffectInput{EffectID: tc.effect})
			s.Require().NoError(err)
			s.assertInvariants(player.Combatant())
		})
	}
}

func (s *EngineTestSuite) TestDeriveIsIdempotent() {
	actor := entities.PlayerActor(s.player)
	_, err := s.engine.ApplyEffect(actor, &engine.ApplyEffectInput{EffectID: "berserk"})
	s.Require().NoError(err)

	first := s.player.Combatant.Clone()
	s.engine.Derive(actor)
	s.engine.Derive(actor)
	s.Assert().Equal(first, s.player.Combatant)
}

func (s *EngineTestSuite) TestDeriveIgnoresStoredStats() {
	s.player.Stats = entities.Stats{Attack: 999, MaxHP: 999}
	s.player.HP = 500
	s.engine.Derive(entities.PlayerActor(s.player))

	s.Assert().Equal(13, s.player.Stats.Attack)
	s.Assert().Equal(50, s.player.HP)
}
