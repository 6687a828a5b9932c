package combat

import (
	"github.com/KirkDiggler/rpg-quest/internal/entities"
	"github.com/KirkDiggler/rpg-quest/internal/errors"
)

func (s *OrchestratorTestSuite) TestAttack() {
	s.start(normal("slime"))

	out, err := s.orchestrator.Attack(s.ctx, &AttackInput{TargetID: "slime_0_enc_1"})
	s.Require().NoError(err)
	s.Assert().False(out.Prevented)
	s.Assert().Equal(23, out.Status.Enemies[0].HP)
	s.Assert().Equal(StateEnemyActing, out.Status.State)
	s.Require().Len(out.Logs, 1)
	s.Assert().Equal("Hero attacks Slime for 7 damage.", out.Logs[0].Message)
}

func (s *OrchestratorTestSuite) TestAttackDamageFloor() {
	s.start(normal("tank"))

	out, err := s.orchestrator.Attack(s.ctx, &AttackInput{TargetID: "tank_0_enc_1"})
	s.Require().NoError(err)
	s.Assert().Equal(29, out.Status.Enemies[0].HP)
}

func (s *OrchestratorTestSuite) TestActionGuards() {
	testCases := []struct {
		name   string
		setup  func()
		target string
		reason string
	}{
		{
			name:   "no combat",
			setup:  func() {},
			target: "slime_0_enc_1",
			reason: errors.ReasonNoCombat,
		},
		{
			name: "not the player's turn",
			setup: func() {
				s.start(normal("slime"))
				_, err := s.orchestrator.Attack(s.ctx, &AttackInput{TargetID: "slime_0_enc_1"})
				s.Require().NoError(err)
			},
			target: "slime_0_enc_1",
			reason: errors.ReasonNotYourTurn,
		},
		{
			name:   "unknown target",
			setup:  func() { s.start(normal("slime")) },
			target: "ghost",
			reason: errors.ReasonInvalidTarget,
		},
		{
			name: "defeated target",
			setup: func() {
				s.start(normal("weakling", "slime"))
				_, err := s.orchestrator.Attack(s.ctx, &AttackInput{TargetID: "weakling_0_enc_1"})
				s.Require().NoError(err)
				s.enemyTurn()
			},
			target: "weakling_0_enc_1",
			reason: errors.ReasonInvalidTarget,
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			s.SetupTest()
			tc.setup()
			before := s.orchestrator.Status()

			_, err := s.orchestrator.Attack(s.ctx, &AttackInput{TargetID: tc.target})
			s.Require().Error(err)
			s.Assert().Equal(tc.reason, errors.GetReason(err))
			s.Assert().Equal(before, s.orchestrator.Status())
		})
	}
}

func (s *OrchestratorTestSuite) TestRejectedActionDoesNotTickEffects() {
	s.applyToPlayer("poison", 3)
	s.start(normal("slime"))

	_, err := s.orchestrator.Attack(s.ctx, &AttackInput{TargetID: "ghost"})
	s.Require().Error(err)
	s.Assert().True(errors.IsInvalidArgument(err))

	player := s.orchestrator.Status().Player
	s.Assert().Equal(45, player.HP)
	s.Assert().Equal(2, player.ActiveEffects[0].RemainingDuration)
}

func (s *OrchestratorTestSuite) TestPreventedActionConsumesTurn() {
	s.applyToPlayer("stun", 2)
	s.start(normal("slime"))

	out, err := s.orchestrator.Attack(s.ctx, &AttackInput{TargetID: "slime_0_enc_1"})
	s.Require().NoError(err)
	s.Assert().True(out.Prevented)
	s.Assert().Equal(30, out.Status.Enemies[0].HP)
	s.Assert().Equal(StateEnemyActing, out.Status.State)
	s.Assert().Empty(out.Status.Player.ActiveEffects)
	s.Assert().Equal("Hero cannot act!", out.Status.Message)
}

func (s *OrchestratorTestSuite) TestUseSkillDamage() {
	s.start(normal("slime"))

	out, err := s.orchestrator.UseSkill(s.ctx, &UseSkillInput{SkillID: "skill_fireball", TargetID: "slime_0_enc_1"})
	s.Require().NoError(err)
	s.Assert().Equal(8, out.Status.Enemies[0].HP)
	s.Assert().Equal(15, out.Status.Player.MP)
	s.Assert().Equal(StateEnemyActing, out.Status.State)
}

func (s *OrchestratorTestSuite) TestUseSkillHitsAllEnemies() {
	s.player.LearnedSkillIDs = append(s.player.LearnedSkillIDs, "skill_quake")
	s.start(normal("slime", "slime"))

	out, err := s.orchestrator.UseSkill(s.ctx, &UseSkillInput{SkillID: "skill_quake"})
	s.Require().NoError(err)
	s.Assert().Equal(18, out.Status.Enemies[0].HP)
	s.Assert().Equal(18, out.Status.Enemies[1].HP)
	s.Assert().Equal(16, out.Status.Player.MP)
}

func (s *OrchestratorTestSuite) TestUseSkillHeal() {
	s.player.HP = 20
	s.start(normal("slime"))

	out, err := s.orchestrator.UseSkill(s.ctx, &UseSkillInput{SkillID: "skill_heal_light"})
	s.Require().NoError(err)
	s.Assert().Equal(40, out.Status.Player.HP)
	s.Assert().Equal(12, out.Status.Player.MP)
}

func (s *OrchestratorTestSuite) TestUseSkillStatusChance() {
	testCases := []struct {
		name     string
		roll     int
		poisoned bool
		message  string
	}{
		{name: "roll above chance", roll: 81, poisoned: false, message: "Slime resists Poison."},
		{name: "roll at chance", roll: 80, poisoned: true, message: "Slime is poisoned!"},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			s.SetupTest()
			s.player.LearnedSkillIDs = append(s.player.LearnedSkillIDs, "skill_poison_attack")
			s.roller.rolls = []int{tc.roll}
			s.start(normal("slime"))

			out, err := s.orchestrator.UseSkill(s.ctx, &UseSkillInput{SkillID: "skill_poison_attack", TargetID: "slime_0_enc_1"})
			s.Require().NoError(err)

			enemy := out.Status.Enemies[0]
			s.Assert().Equal(13, enemy.HP, "direct damage lands either way")
			s.Assert().Equal(13, out.Status.Player.MP)
			s.Assert().Equal(tc.poisoned, enemy.HasEffect("poison"))
			s.Assert().Equal(tc.message, out.Status.Message)
		})
	}
}

func (s *OrchestratorTestSuite) TestUseSkillErrors() {
	testCases := []struct {
		name   string
		setup  func()
		input  *UseSkillInput
		check  func(err error)
		reason string
	}{
		{
			name:   "unknown skill",
			input:  &UseSkillInput{SkillID: "skill_meteor"},
			check:  func(err error) { s.Assert().True(errors.IsNotFound(err)) },
			reason: errors.ReasonUnknownSkill,
		},
		{
			name:   "skill not learned",
			input:  &UseSkillInput{SkillID: "skill_power_strike", TargetID: "slime_0_enc_1"},
			check:  func(err error) { s.Assert().True(errors.IsFailedPrecondition(err)) },
			reason: errors.ReasonUnknownSkill,
		},
		{
			name:   "not enough mp",
			setup:  func() { s.player.MP = 2 },
			input:  &UseSkillInput{SkillID: "skill_fireball", TargetID: "slime_0_enc_1"},
			check:  func(err error) { s.Assert().True(errors.IsResourceExhausted(err)) },
			reason: errors.ReasonNotEnoughMP,
		},
		{
			name:   "missing target",
			input:  &UseSkillInput{SkillID: "skill_fireball"},
			check:  func(err error) { s.Assert().True(errors.IsInvalidArgument(err)) },
			reason: errors.ReasonInvalidTarget,
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			s.SetupTest()
			if tc.setup != nil {
				tc.setup()
			}
			s.start(normal("slime"))
			before := s.orchestrator.Status()

			_, err := s.orchestrator.UseSkill(s.ctx, tc.input)
			s.Require().Error(err)
			tc.check(err)
			s.Assert().Equal(tc.reason, errors.GetReason(err))
			s.Assert().Equal(before, s.orchestrator.Status())
		})
	}
}

func (s *OrchestratorTestSuite) TestUseItemPotion() {
	s.player.HP = 20
	s.start(normal("slime"))

	out, err := s.orchestrator.UseItem(s.ctx, &UseItemInput{ItemID: "item_consumable_potion_hp_small", TargetID: "slime_0_enc_1"})
	s.Require().NoError(err)
	s.Assert().Equal(45, out.Status.Player.HP)
	s.Assert().Equal(30, out.Status.Enemies[0].HP, "items never land on enemies")
	s.Require().Len(out.Status.Player.Inventory, 1)
	s.Assert().Equal(2, out.Status.Player.Inventory[0].Quantity)
	s.Assert().Equal(StateEnemyActing, out.Status.State)
}

func (s *OrchestratorTestSuite) TestUseItemCures() {
	antidote, ok := s.catalog.Item("item_consumable_antidote")
	s.Require().True(ok)
	s.player.AddItem(antidote, 1)
	s.applyToPlayer("poison", 3)
	s.start(normal("slime"))

	out, err := s.orchestrator.UseItem(s.ctx, &UseItemInput{ItemID: antidote.ID})
	s.Require().NoError(err)
	s.Assert().False(out.Status.Player.HasEffect("poison"))
	s.Assert().Equal(40, out.Status.Player.HP)
	s.Assert().Equal(-1, out.Status.Player.InventoryIndex(antidote.ID))
}

func (s *OrchestratorTestSuite) TestUseItemErrors() {
	bow, ok := s.catalog.Item("item_weapon_bow_short")
	s.Require().True(ok)
	key, ok := s.catalog.Item("item_keyitem_old_record_piece")
	s.Require().True(ok)

	testCases := []struct {
		name   string
		itemID string
		reason string
	}{
		{name: "weapon has no combat effect", itemID: bow.ID, reason: errors.ReasonNoEffect},
		{name: "key item has no combat effect", itemID: key.ID, reason: errors.ReasonNoEffect},
		{name: "item not held", itemID: "item_consumable_potion_mp_small", reason: errors.ReasonNotEnoughItems},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			s.SetupTest()
			s.player.AddItem(bow, 1)
			s.player.AddItem(key, 1)
			s.start(normal("slime"))
			before := s.orchestrator.Status()

			_, err := s.orchestrator.UseItem(s.ctx, &UseItemInput{ItemID: tc.itemID})
			s.Require().Error(err)
			s.Assert().Equal(tc.reason, errors.GetReason(err))
			s.Assert().Equal(before, s.orchestrator.Status(), "item kept and turn kept")
		})
	}
}

func (s *OrchestratorTestSuite) TestFleeSuccess() {
	s.applyToPlayer("defense_debuff", 5)
	s.applyToPlayer("defense_buff", 5)
	s.roller.rolls = []int{50}
	s.start(normal("slime"))

	out, err := s.orchestrator.Flee(s.ctx, &FleeInput{})
	s.Require().NoError(err)
	s.Assert().Equal(StateFled, out.Status.State)
	s.Assert().False(out.Status.Active)
	s.Assert().Empty(out.Status.Enemies)
	s.Require().Len(out.Status.Player.ActiveEffects, 1)
	s.Assert().Equal("defense_buff", out.Status.Player.ActiveEffects[0].ID)
	s.Assert().Equal(0, s.clock.Pending())

	s.Require().Len(s.outcomes, 1)
	s.Assert().Equal(OutcomeFled, s.outcomes[0].Kind)
}

func (s *OrchestratorTestSuite) TestFleeFailure() {
	s.roller.rolls = []int{51}
	s.start(normal("slime"))

	out, err := s.orchestrator.Flee(s.ctx, &FleeInput{})
	s.Require().NoError(err)
	s.Assert().Equal(StateEnemyActing, out.Status.State)
	s.Assert().Len(out.Status.Enemies, 1)
	s.Assert().Empty(s.outcomes)
}

func (s *OrchestratorTestSuite) TestFleeRejectedAgainstBoss() {
	s.roller.rolls = []int{1}
	s.start(boss("", "dragon"))
	before := s.orchestrator.Status()

	_, err := s.orchestrator.Flee(s.ctx, &FleeInput{})
	s.Require().Error(err)
	s.Assert().True(errors.IsFailedPrecondition(err))
	s.Assert().Equal(errors.ReasonBossFlee, errors.GetReason(err))
	s.Assert().Equal(0, s.roller.calls)
	s.Assert().Equal(before, s.orchestrator.Status())
}

func (s *OrchestratorTestSuite) TestLivingEnemies() {
	s.start(normal("weakling", "slime"))
	_, err := s.orchestrator.Attack(s.ctx, &AttackInput{TargetID: "weakling_0_enc_1"})
	s.Require().NoError(err)

	living := s.orchestrator.Status().LivingEnemies()
	s.Require().Len(living, 1)
	s.Assert().Equal("slime_1_enc_1", living[0].CombatID)
	s.Assert().Equal(entities.KindEnemy, entities.Kind(living[0].GetType()))
}
