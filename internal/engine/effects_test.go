package engine_test

import (
	"github.com/KirkDiggler/rpg-quest/internal/engine"
	"github.com/KirkDiggler/rpg-quest/internal/entities"
	"github.com/KirkDiggler/rpg-quest/internal/errors"
)

func intPtr(v int) *int { return &v }

func (s *EngineTestSuite) TestPoisonTicksThreeTimes() {
	s.enemy.Base.MaxHP = 50
	s.enemy.HP = 40
	actor := entities.EnemyActor(s.enemy)
	s.engine.Derive(actor)

	_, err := s.engine.ApplyEffect(actor, &engine.ApplyEffectInput{EffectID: "poison", Duration: 3, Potency: intPtr(5)})
	s.Require().NoError(err)

	for i := 0; i < 3; i++ {
		out := s.engine.ProcessTurnStart(actor)
		s.Assert().Equal(-5, out.HPDelta)
		s.Assert().False(out.PreventedAction)
	}
	s.Assert().Equal(25, s.enemy.HP)
	s.Assert().False(s.enemy.HasEffect("poison"), "expired before the next tick")

	out := s.engine.ProcessTurnStart(actor)
	s.Assert().Equal(0, out.HPDelta)
	s.Assert().Equal(25, s.enemy.HP)
}

func (s *EngineTestSuite) TestTickLogsRenderTemplates() {
	actor := entities.EnemyActor(s.enemy)
	applied, err := s.engine.ApplyEffect(actor, &engine.ApplyEffectInput{EffectID: "poison", Duration: 1})
	s.Require().NoError(err)
	s.Require().Len(applied.Logs, 1)
	s.Assert().Equal("Slime is poisoned!", applied.Logs[0].Message)

	out := s.engine.ProcessTurnStart(actor)
	s.Require().Len(out.Logs, 2)
	s.Assert().Equal("Slime loses 5 hp to poison.", out.Logs[0].Message)
	s.Assert().Equal("The poison on Slime wears off.", out.Logs[1].Message)
	s.Assert().Equal(entities.LogStatusEffect, out.Logs[1].Type)
}

func (s *EngineTestSuite) TestReapplyRefreshesInsteadOfStacking() {
	actor := entities.PlayerActor(s.player)

	_, err := s.engine.ApplyEffect(actor, &engine.ApplyEffectInput{EffectID: "poison", Duration: 3, Potency: intPtr(5), SourceID: "slime_0"})
	s.Require().NoError(err)
	_, err = s.engine.ApplyEffect(actor, &engine.ApplyEffectInput{EffectID: "poison", Duration: 2, Potency: intPtr(8), SourceID: "bat_1"})
	s.Require().NoError(err)

	s.Require().Len(s.player.ActiveEffects, 1)
	effect := s.player.ActiveEffects[0]
	s.Assert().Equal(3, effect.RemainingDuration, "keeps the longer duration")
	s.Assert().Equal(8, effect.AppliedPotency)
	s.Assert().Equal("bat_1", effect.SourceID)

	_, err = s.engine.ApplyEffect(actor, &engine.ApplyEffectInput{EffectID: "poison", Duration: 6})
	s.Require().NoError(err)
	s.Require().Len(s.player.ActiveEffects, 1)
	s.Assert().Equal(6, s.player.ActiveEffects[0].RemainingDuration)
	s.Assert().Equal(5, s.player.ActiveEffects[0].AppliedPotency)
	s.Assert().Equal("", s.player.ActiveEffects[0].SourceID)
}

func (s *EngineTestSuite) TestPotencyResolution() {
	testCases := []struct {
		name     string
		effectID string
		potency  *int
		want     int
	}{
		{"explicit wins", "poison", intPtr(9), 9},
		{"tick base potency", "regen_hp", nil, 10},
		{"first modifier value", "defense_debuff", nil, -5},
		{"nothing to resolve", "stun", nil, 0},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			s.SetupTest()
			actor := entities.PlayerActor(s.player)
			_, err := s.engine.ApplyEffect(actor, &engine.ApplyEffectInput{EffectID: tc.effectID, Potency: tc.potency})
			s.Require().NoError(err)
			s.Assert().Equal(tc.want, s.player.ActiveEffects[0].AppliedPotency)
		})
	}
}

func (s *EngineTestSuite) TestApplyUsesDefaultDuration() {
	actor := entities.PlayerActor(s.player)
	_, err := s.engine.ApplyEffect(actor, &engine.ApplyEffectInput{EffectID: "stun"})
	s.Require().NoError(err)
	s.Assert().Equal(1, s.player.ActiveEffects[0].RemainingDuration)
}

func (s *EngineTestSuite) TestApplyUnknownEffect() {
	_, err := s.engine.ApplyEffect(entities.PlayerActor(s.player), &engine.ApplyEffectInput{EffectID: "petrify"})
	s.Require().Error(err)
	s.Assert().True(errors.IsNotFound(err))
	s.Assert().Empty(s.player.ActiveEffects)
}

func (s *EngineTestSuite) TestStunPreventsActionOnce() {
	actor := entities.EnemyActor(s.enemy)
	_, err := s.engine.ApplyEffect(actor, &engine.ApplyEffectInput{EffectID: "stun"})
	s.Require().NoError(err)

	out := s.engine.ProcessTurnStart(actor)
	s.Assert().True(out.PreventedAction)
	s.Assert().Empty(s.enemy.ActiveEffects)

	out = s.engine.ProcessTurnStart(actor)
	s.Assert().False(out.PreventedAction)
}

func (s *EngineTestSuite) TestTickDeltasClampOnce() {
	s.player.HP = 48
	actor := entities.PlayerActor(s.player)
	_, err := s.engine.ApplyEffect(actor, &engine.ApplyEffectInput{EffectID: "regen_hp"})
	s.Require().NoError(err)
	_, err = s.engine.ApplyEffect(actor, &engine.ApplyEffectInput{EffectID: "poison"})
	s.Require().NoError(err)

	out := s.engine.ProcessTurnStart(actor)
	s.Assert().Equal(5, out.HPDelta)
	s.Assert().Equal(50, s.player.HP, "+10 -5 summed before the clamp")
}

func (s *EngineTestSuite) TestMPTickNeverBelowZero() {
	s.player.MP = 2
	actor := entities.PlayerActor(s.player)
	_, err := s.engine.ApplyEffect(actor, &engine.ApplyEffectInput{EffectID: "mana_leak"})
	s.Require().NoError(err)

	out := s.engine.ProcessTurnStart(actor)
	s.Assert().Equal(-4, out.MPDelta)
	s.Assert().Equal(0, s.player.MP)
}

func (s *EngineTestSuite) TestRemoveEffects() {
	actor := entities.PlayerActor(s.player)
	_, err := s.engine.ApplyEffect(actor, &engine.ApplyEffectInput{EffectID: "poison"})
	s.Require().NoError(err)
	_, err = s.engine.ApplyEffect(actor, &engine.ApplyEffectInput{EffectID: "defense_debuff"})
	s.Require().NoError(err)
	s.Assert().Equal(0, s.player.Stats.Defense)

	out := s.engine.RemoveEffects(actor, "defense_debuff", "stun")
	s.Assert().True(out.Changed)
	s.Require().Len(out.Logs, 1)
	s.Assert().Equal("Hero's defense recovers.", out.Logs[0].Message)
	s.Assert().Equal(5, s.player.Stats.Defense)
	s.Assert().True(s.player.HasEffect("poison"))

	noop := s.engine.RemoveEffects(actor, "stun")
	s.Assert().False(noop.Changed)
	s.Assert().Empty(noop.Logs)
	s.Assert().Len(s.player.ActiveEffects, 1)
}

func (s *EngineTestSuite) TestStripDebuffsKeepsBuffs() {
	actor := entities.PlayerActor(s.player)
	for _, id := range []string{"poison", "attack_buff", "stun", "regen_hp"} {
		_, err := s.engine.ApplyEffect(actor, &engine.ApplyEffectInput{EffectID: id})
		s.Require().NoError(err)
	}

	s.engine.StripDebuffs(actor)
	s.Require().Len(s.player.ActiveEffects, 2)
	s.Assert().Equal("attack_buff", s.player.ActiveEffects[0].ID)
	s.Assert().Equal("regen_hp", s.player.ActiveEffects[1].ID)
	s.Assert().Equal(18, s.player.Stats.Attack)

	s.engine.ClearEffects(actor)
	s.Assert().Empty(s.player.ActiveEffects)
	s.Assert().Equal(13, s.player.Stats.Attack)
}
