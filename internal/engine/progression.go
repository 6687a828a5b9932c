package engine

import (
	"fmt"
	"math"

	"github.com/KirkDiggler/rpg-quest/internal/entities"
)

// GrantExperience adds exp and resolves every level-up it pays for. Each
// crossed level unlocks its scheduled skills. Afterwards hp and mp are fully
// restored and debuffs are stripped, whether or not a level was gained.
func (e *engine) GrantExperience(player *entities.Player, exp int) *ExperienceOutput {
	out := &ExperienceOutput{}
	if exp < 0 {
		exp = 0
	}
	player.Exp += exp

	gains := e.rules.LevelUp
	for player.ExpToNextLevel > 0 && player.Exp >= player.ExpToNextLevel {
		threshold := player.ExpToNextLevel
		player.Level++
		player.Exp -= threshold
		player.ExpToNextLevel = int(math.Floor(float64(threshold) * gains.ThresholdMultiplier))
		if player.ExpToNextLevel < 1 {
			player.ExpToNextLevel = 1
		}

		player.Base.MaxHP += gains.HP
		player.Base.MaxMP += gains.MP
		player.Base.Attack += gains.Attack
		player.Base.Defense += gains.Defense
		player.Base.Speed += gains.Speed
		player.Base.Luck += gains.Luck

		out.LevelsGained++
		out.Logs = append(out.Logs, e.log(entities.LogReward,
			fmt.Sprintf("Level up! %s reached level %d.", player.Name, player.Level)))

		for _, skillID := range e.catalog.SkillsForLevel(player.Level) {
			if player.KnowsSkill(skillID) {
				continue
			}
			player.LearnedSkillIDs = append(player.LearnedSkillIDs, skillID)
			out.UnlockedSkills = append(out.UnlockedSkills, skillID)

			name := skillID
			if skill, ok := e.catalog.Skill(skillID); ok {
				name = skill.Name
			}
			out.Logs = append(out.Logs, e.log(entities.LogReward,
				fmt.Sprintf("%s learned %s!", player.Name, name)))
		}
	}

	e.StripDebuffs(entities.PlayerActor(player))
	player.HP = player.MaxHP()
	player.MP = player.MaxMP()

	return out
}
