package combat

import (
	"time"
)

func (s *OrchestratorTestSuite) TestEnemyTurnTiming() {
	s.start(normal("slime", "slime"))
	_, err := s.orchestrator.Attack(s.ctx, &AttackInput{TargetID: "slime_0_enc_1"})
	s.Require().NoError(err)

	s.clock.Advance(999 * time.Millisecond)
	s.Assert().Equal(StateEnemyActing, s.orchestrator.Status().State)

	s.clock.Advance(time.Millisecond)
	status := s.orchestrator.Status()
	s.Assert().Equal(StatePlayer, status.State)
	s.Assert().Equal(44, status.Player.HP, "both slimes hit for 3")
	s.Assert().Equal([]State{StatePlayer, StateEnemy, StateEnemyActing, StatePlayer}, s.states)
}

func (s *OrchestratorTestSuite) TestDelegatedEnemyTurnIsFaster() {
	s.orchestrator.SetDelegationMode(true)
	s.start(normal("slime"))
	_, err := s.orchestrator.Attack(s.ctx, &AttackInput{TargetID: "slime_0_enc_1"})
	s.Require().NoError(err)

	s.clock.Advance(500 * time.Millisecond)
	s.Assert().Equal(StatePlayer, s.orchestrator.Status().State)
}

func (s *OrchestratorTestSuite) TestEnemyKilledByItsOwnTickDoesNotAttack() {
	s.player.LearnedSkillIDs = append(s.player.LearnedSkillIDs, "skill_poison_attack")
	s.roller.rolls = []int{1}
	s.start(normal("brute"))

	out, err := s.orchestrator.UseSkill(s.ctx, &UseSkillInput{SkillID: "skill_poison_attack", TargetID: "brute_0_enc_1"})
	s.Require().NoError(err)
	s.Require().Equal(3, out.Status.Enemies[0].HP)

	status := s.enemyTurn()
	s.Assert().Equal(0, status.Enemies[0].HP)
	s.Assert().Equal(50, status.Player.HP)
	s.Assert().Equal(StateVictory, status.State)
}

func (s *OrchestratorTestSuite) TestPoisonedEnemyTicksBeforeActing() {
	s.player.LearnedSkillIDs = append(s.player.LearnedSkillIDs, "skill_poison_attack")
	s.roller.rolls = []int{1}
	s.start(normal("slime"))

	_, err := s.orchestrator.UseSkill(s.ctx, &UseSkillInput{SkillID: "skill_poison_attack", TargetID: "slime_0_enc_1"})
	s.Require().NoError(err)

	status := s.enemyTurn()
	s.Assert().Equal(8, status.Enemies[0].HP)
	s.Assert().Equal(47, status.Player.HP)
	s.Assert().Equal(StatePlayer, status.State)
}

func (s *OrchestratorTestSuite) TestNormalVictory() {
	s.applyToPlayer("defense_debuff", 5)
	s.applyToPlayer("attack_buff", 5)
	s.start(normal("weakling"))

	out, err := s.orchestrator.Attack(s.ctx, &AttackInput{TargetID: "weakling_0_enc_1"})
	s.Require().NoError(err)

	status := out.Status
	s.Assert().Equal(StateVictory, status.State)
	s.Assert().False(status.Active)
	s.Assert().False(status.AwaitingPostVictoryChoice)
	s.Assert().Equal(65, status.Player.Gold)
	s.Assert().Equal(25, status.Player.Exp)
	s.Require().Len(status.Player.ActiveEffects, 1)
	s.Assert().Equal("attack_buff", status.Player.ActiveEffects[0].ID)
	s.Assert().Len(status.Enemies, 1, "defeated enemies stay listed")
	s.Assert().Equal(0, s.clock.Pending())

	s.Require().Len(s.outcomes, 1)
	s.Assert().Equal(Outcome{Kind: OutcomeVictory, EncounterID: "enc_1", GoldEarned: 15, ExpEarned: 25}, s.outcomes[0])
	s.Assert().Equal(&s.outcomes[0], status.Outcome)
}

func (s *OrchestratorTestSuite) TestNormalVictoryRestoresPlayerWithoutLevelUp() {
	s.player.HP = 20
	s.player.MP = 4
	s.applyToPlayer("poison", 5)
	s.start(normal("weakling"))

	out, err := s.orchestrator.Attack(s.ctx, &AttackInput{TargetID: "weakling_0_enc_1"})
	s.Require().NoError(err)

	status := out.Status
	s.Assert().Equal(StateVictory, status.State)
	s.Assert().Equal(1, status.Player.Level)
	s.Assert().Equal(0, s.outcomes[0].LevelsGained)
	s.Assert().Equal(50, status.Player.HP)
	s.Assert().Equal(status.Player.MaxMP(), status.Player.MP)
	s.Assert().Empty(status.Player.ActiveEffects)
}

func (s *OrchestratorTestSuite) TestDelegatedVictoryRaisesChoiceFlag() {
	s.orchestrator.SetDelegationMode(true)
	s.start(normal("weakling"))

	out, err := s.orchestrator.Attack(s.ctx, &AttackInput{TargetID: "weakling_0_enc_1"})
	s.Require().NoError(err)
	s.Assert().True(out.Status.AwaitingPostVictoryChoice)
}

func (s *OrchestratorTestSuite) TestBossVictoryAdvancesAfterDelay() {
	s.start(boss("stage2_intro", "wyrmling"))

	out, err := s.orchestrator.Attack(s.ctx, &AttackInput{TargetID: "wyrmling_0_enc_1"})
	s.Require().NoError(err)
	s.Assert().Equal(StateVictory, out.Status.State)
	s.Assert().True(out.Status.Pending)
	s.Assert().Equal(200, out.Status.Player.Gold)
	s.Assert().Equal(2, out.Status.Player.Level)
	s.Assert().Empty(s.outcomes)

	s.clock.Advance(1500 * time.Millisecond)
	s.Require().Len(s.outcomes, 1)
	s.Assert().Equal(OutcomeVictory, s.outcomes[0].Kind)
	s.Assert().Equal("stage2_intro", s.outcomes[0].NextSceneID)
	s.Assert().Equal(1, s.outcomes[0].LevelsGained)
	s.Assert().False(s.orchestrator.Status().Pending)
}

func (s *OrchestratorTestSuite) TestFinalBossVictoryCompletesRun() {
	s.start(boss("", "wyrmling"))

	out, err := s.orchestrator.Attack(s.ctx, &AttackInput{TargetID: "wyrmling_0_enc_1"})
	s.Require().NoError(err)
	s.Assert().Equal(StateRunComplete, out.Status.State)
	s.Require().Len(s.outcomes, 1)
	s.Assert().Equal(OutcomeRunComplete, s.outcomes[0].Kind)
	s.Assert().Equal(0, s.clock.Pending())
}

func (s *OrchestratorTestSuite) TestDefeatRelocates() {
	s.player.HP = 3
	s.applyToPlayer("attack_buff", 5)
	s.start(normal("slime"))

	_, err := s.orchestrator.Attack(s.ctx, &AttackInput{TargetID: "slime_0_enc_1"})
	s.Require().NoError(err)

	status := s.enemyTurn()
	s.Assert().Equal(StateDefeatPendingRelocation, status.State)
	s.Assert().True(status.Pending)
	s.Assert().Equal(5, status.Player.HP)
	s.Assert().Equal(40, status.Player.Gold)
	s.Assert().Empty(status.Player.ActiveEffects)
	s.Assert().Empty(s.outcomes)

	s.clock.Advance(1499 * time.Millisecond)
	s.Assert().Empty(s.outcomes)
	s.clock.Advance(time.Millisecond)

	s.Require().Len(s.outcomes, 1)
	s.Assert().Equal(OutcomeRelocated, s.outcomes[0].Kind)
	s.Assert().Equal("town", s.outcomes[0].SceneID)
	s.Assert().Equal(&s.outcomes[0], s.orchestrator.Status().Outcome)
}

func (s *OrchestratorTestSuite) TestDefeatRevivesFromMaxHPBeforeEffectsClear() {
	s.applyToPlayer("vigor", 5)
	s.player.HP = 3
	s.start(normal("slime"))

	_, err := s.orchestrator.Attack(s.ctx, &AttackInput{TargetID: "slime_0_enc_1"})
	s.Require().NoError(err)

	status := s.enemyTurn()
	s.Assert().Equal(StateDefeatPendingRelocation, status.State)
	s.Assert().Empty(status.Player.ActiveEffects)
	s.Assert().Equal(50, status.Player.MaxHP())
	s.Assert().Equal(10, status.Player.HP, "tenth of the 100 max hp held when falling")
}

func (s *OrchestratorTestSuite) TestDefeatWithoutSafeSceneIsGameOver() {
	s.player.HP = 3
	enc := normal("slime")
	enc.SafeSceneID = ""
	s.start(enc)

	_, err := s.orchestrator.Attack(s.ctx, &AttackInput{TargetID: "slime_0_enc_1"})
	s.Require().NoError(err)

	s.Require().NotPanics(func() { s.enemyTurn() })
	status := s.orchestrator.Status()
	s.Assert().Equal(StateGameOver, status.State)
	s.Assert().False(status.Active)
	s.Assert().Equal(0, s.clock.Pending())
	s.Require().Len(s.outcomes, 1)
	s.Assert().Equal(OutcomeGameOver, s.outcomes[0].Kind)
}

func (s *OrchestratorTestSuite) TestStaleTimerIgnoredAfterReset() {
	s.start(normal("slime"))
	_, err := s.orchestrator.Attack(s.ctx, &AttackInput{TargetID: "slime_0_enc_1"})
	s.Require().NoError(err)

	snap := s.orchestrator.Snapshot()
	s.orchestrator.Reset(s.ctx)
	s.clock.Advance(time.Second)
	s.Assert().Nil(s.orchestrator.Snapshot())
	s.Assert().Equal(StateEnemyActing, snap.State)
}
