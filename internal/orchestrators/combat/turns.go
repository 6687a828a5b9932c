package combat

import (
	"log/slog"
	"math"

	"github.com/KirkDiggler/rpg-quest/internal/entities"
)

// endPlayerTurn checks for a finished fight and otherwise hands the turn to
// the enemies after the configured delay.
func (o *orchestrator) endPlayerTurn(s *session, ob *outbox) {
	if o.checkEnd(s, ob) {
		return
	}
	o.setState(s, ob, StateEnemy)
	o.setState(s, ob, StateEnemyActing)
	o.schedule(s, o.enemyDelay(), o.runEnemyTurn)
}

// runEnemyTurn lets every living enemy act in list order, then ticks the
// player's effects before returning the turn.
func (o *orchestrator) runEnemyTurn(s *session, ob *outbox) {
	if s.state != StateEnemyActing {
		return
	}

	logs := o.newTurnLog()
	for _, enemy := range s.enemies {
		if !enemy.Alive() {
			continue
		}
		tick := o.engine.ProcessTurnStart(entities.EnemyActor(enemy))
		logs.extend(tick.Logs)
		if !enemy.Alive() {
			logs.add(entities.LogCombatResult, "%s is defeated!", enemy.Name)
			continue
		}
		if tick.PreventedAction {
			logs.add(entities.LogCombatAction, "%s cannot act!", enemy.Name)
			continue
		}
		if !s.player.Alive() {
			continue
		}
		damage := max(1, enemy.Stats.Attack-s.player.Stats.Defense)
		o.damage(entities.PlayerActor(s.player), damage)
		logs.add(entities.LogCombatAction, "%s attacks %s for %d damage.", enemy.Name, s.player.Name, damage)
	}
	o.commit(s, ob, logs.entries)
	if o.checkEnd(s, ob) {
		return
	}

	tick := o.engine.ProcessTurnStart(entities.PlayerActor(s.player))
	o.commit(s, ob, tick.Logs)
	if o.checkEnd(s, ob) {
		return
	}
	o.setState(s, ob, StatePlayer)
}

// checkEnd resolves defeat or victory. It returns true when the fight is over.
func (o *orchestrator) checkEnd(s *session, ob *outbox) bool {
	if !s.player.Alive() {
		o.defeat(s, ob)
		return true
	}
	if len(s.living()) > 0 {
		return false
	}
	o.victory(s, ob)
	return true
}

func (o *orchestrator) defeat(s *session, ob *outbox) {
	logs := o.newTurnLog()
	outcome := Outcome{EncounterID: s.id, Boss: s.encounter.IsBoss}

	if s.encounter.SafeSceneID == "" {
		logs.add(entities.LogCombatResult, "%s has fallen and there is nowhere left to retreat. Game over.", s.player.Name)
		o.commit(s, ob, logs.entries)

		outcome.Kind = OutcomeGameOver
		s.outcome = &outcome
		o.setState(s, ob, StateGameOver)
		ob.outcome(s.player, outcome, s.player.Clone())

		slog.Info("Combat lost with no safe scene",
			"encounter_id", s.id,
			"scene_id", s.encounter.SceneID,
		)
		return
	}

	rules := o.engine.Rules().Defeat
	actor := entities.PlayerActor(s.player)
	revived := max(1, int(math.Floor(float64(s.player.MaxHP())*rules.HPFraction)))
	o.engine.ClearEffects(actor)
	s.player.HP = revived
	lost := int(math.Floor(float64(s.player.Gold) * rules.GoldPenalty))
	s.player.Gold -= lost

	logs.add(entities.LogCombatResult, "%s has fallen... and wakes up somewhere safe. Lost %d gold.", s.player.Name, lost)
	o.commit(s, ob, logs.entries)

	outcome.Kind = OutcomeRelocated
	outcome.SceneID = s.encounter.SafeSceneID
	s.pending = &outcome
	o.setState(s, ob, StateDefeatPendingRelocation)
	o.schedule(s, o.timing.RelocationDelay, o.resolvePending)

	slog.Info("Combat lost",
		"encounter_id", s.id,
		"relocate_to", outcome.SceneID,
		"gold_lost", lost,
	)
}

func (o *orchestrator) victory(s *session, ob *outbox) {
	reward := o.engine.Rules().RewardFor(s.encounter.IsBoss)
	logs := o.newTurnLog()

	s.player.Gold += reward.Gold
	logs.add(entities.LogReward, "Victory! Earned %d gold and %d exp.", reward.Gold, reward.Exp)
	progress := o.engine.GrantExperience(s.player, reward.Exp)
	logs.extend(progress.Logs)
	o.engine.StripDebuffs(entities.PlayerActor(s.player))

	outcome := Outcome{
		Kind:         OutcomeVictory,
		EncounterID:  s.id,
		Boss:         s.encounter.IsBoss,
		GoldEarned:   reward.Gold,
		ExpEarned:    reward.Exp,
		LevelsGained: progress.LevelsGained,
	}

	slog.Info("Combat won",
		"encounter_id", s.id,
		"boss", s.encounter.IsBoss,
		"levels_gained", progress.LevelsGained,
	)

	switch {
	case s.encounter.IsBoss && s.encounter.NextSceneID != "":
		o.commit(s, ob, logs.entries)
		outcome.NextSceneID = s.encounter.NextSceneID
		s.pending = &outcome
		o.setState(s, ob, StateVictory)
		o.schedule(s, o.timing.BossAdvanceDelay, o.resolvePending)
	case s.encounter.IsBoss:
		logs.add(entities.LogSystem, "The final foe has fallen. The adventure is complete!")
		o.commit(s, ob, logs.entries)
		outcome.Kind = OutcomeRunComplete
		s.outcome = &outcome
		o.setState(s, ob, StateRunComplete)
		ob.outcome(s.player, outcome, s.player.Clone())
	default:
		o.commit(s, ob, logs.entries)
		s.awaitingChoice = o.delegated
		s.outcome = &outcome
		o.setState(s, ob, StateVictory)
		ob.outcome(s.player, outcome, s.player.Clone())
	}
}

// escape ends the fight after a successful flee
func (o *orchestrator) escape(s *session, ob *outbox) {
	o.engine.StripDebuffs(entities.PlayerActor(s.player))
	s.enemies = nil

	outcome := Outcome{Kind: OutcomeFled, EncounterID: s.id}
	s.outcome = &outcome
	o.setState(s, ob, StateFled)
	ob.outcome(s.player, outcome, s.player.Clone())
}

// resolvePending publishes a scheduled relocation or boss advance
func (o *orchestrator) resolvePending(s *session, ob *outbox) {
	if s.pending == nil {
		return
	}
	outcome := *s.pending
	s.pending = nil
	s.outcome = &outcome
	ob.state(s.player, o.statusLocked(s))
	ob.outcome(s.player, outcome, s.player.Clone())
}
