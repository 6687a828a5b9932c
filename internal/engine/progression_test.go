package engine_test

import (
	"github.com/KirkDiggler/rpg-quest/internal/engine"
	"github.com/KirkDiggler/rpg-quest/internal/entities"
)

func (s *EngineTestSuite) TestGrantExperienceMultipleLevels() {
	s.player.HP = 12
	s.player.MP = 3

	out := s.engine.GrantExperience(s.player, 250)

	s.Assert().Equal(2, out.LevelsGained)
	s.Assert().Equal(3, s.player.Level)
	s.Assert().Equal(0, s.player.Exp)
	s.Assert().Equal(225, s.player.ExpToNextLevel)

	s.Assert().Equal(entities.Stats{
		Attack: 14, Defense: 7, Speed: 9, Luck: 7, MaxHP: 70, MaxMP: 30, CritChance: 5,
	}, s.player.Base)
	s.Assert().Equal(17, s.player.Stats.Attack)
	s.Assert().Equal(70, s.player.HP)
	s.Assert().Equal(30, s.player.MP)

	s.Assert().Equal([]string{"skill_power_strike", "skill_attack_up"}, out.UnlockedSkills)
	s.Assert().True(s.player.KnowsSkill("skill_power_strike"))
	s.Assert().True(s.player.KnowsSkill("skill_attack_up"))
}

func (s *EngineTestSuite) TestGrantExperienceUnlocksEveryCrossedLevel() {
	s.player.ExpToNextLevel = 1
	out := s.engine.GrantExperience(s.player, 6)

	// threshold stays at 1 because floor(1*1.5) = 1
	s.Assert().Equal(6, out.LevelsGained)
	s.Assert().Equal(7, s.player.Level)
	s.Assert().Equal([]string{
		"skill_power_strike", "skill_attack_up", "skill_heal_medium",
		"skill_ice_shard", "skill_meditate", "skill_flame_slash", "skill_poison_attack",
	}, out.UnlockedSkills)
}

func (s *EngineTestSuite) TestGrantExperienceBelowThreshold() {
	s.player.HP = 20
	s.player.MP = 3
	out := s.engine.GrantExperience(s.player, 25)

	s.Assert().Equal(0, out.LevelsGained)
	s.Assert().Equal(25, s.player.Exp)
	s.Assert().Equal(1, s.player.Level)
	s.Assert().Equal(s.player.MaxHP(), s.player.HP, "restored without a level")
	s.Assert().Equal(s.player.MaxMP(), s.player.MP)
	s.Assert().Empty(out.Logs)
}

func (s *EngineTestSuite) TestGrantExperienceNegativeIsIgnored() {
	s.player.Exp = 10
	out := s.engine.GrantExperience(s.player, -500)
	s.Assert().Equal(0, out.LevelsGained)
	s.Assert().Equal(10, s.player.Exp)
}

func (s *EngineTestSuite) TestLevelUpStripsDebuffsKeepsKnownSkills() {
	actor := entities.PlayerActor(s.player)
	_, err := s.engine.ApplyEffect(actor, &engine.ApplyEffectInput{EffectID: "poison"})
	s.Require().NoError(err)
	_, err = s.engine.ApplyEffect(actor, &engine.ApplyEffectInput{EffectID: "defense_buff"})
	s.Require().NoError(err)
	s.player.LearnedSkillIDs = append(s.player.LearnedSkillIDs, "skill_power_strike")

	out := s.engine.GrantExperience(s.player, 100)

	s.Assert().Equal(1, out.LevelsGained)
	s.Assert().Empty(out.UnlockedSkills)
	s.Require().Len(s.player.ActiveEffects, 1)
	s.Assert().Equal("defense_buff", s.player.ActiveEffects[0].ID)
	s.Assert().Len(s.player.LearnedSkillIDs, 4)
}
