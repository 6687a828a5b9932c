package testutils

import (
	"github.com/KirkDiggler/rpg-quest/internal/entities"
	"github.com/KirkDiggler/rpg-quest/internal/testutils/builders"
)

const (
	// TestPlayerName is the default player name for test fixtures
	TestPlayerName = "Aria"

	// TestScriptTitle is the world title of CreateTestScript
	TestScriptTitle = "The Test Road"
)

// CreateTestScript creates a small two stage script: a town, a branch between
// a fight and an item, a boss gate, and a final boss in the second stage
func CreateTestScript() *entities.Script {
	return builders.NewScriptBuilder().
		WithTitle(TestScriptTitle).
		WithCharacter(builders.NewCharacterBuilder("elder", entities.CharacterNPC).
			WithName("Elder").
			WithDialogue("Mind the road.")).
		WithCharacter(builders.NewMonsterBuilder("rat", 1, 1, 0).WithName("Rat")).
		WithCharacter(builders.NewMonsterBuilder("golem", 1, 1, 0).WithName("Golem").AsBoss()).
		WithScene(builders.NewSceneBuilder("village", entities.SceneTown).
			WithTitle("Village").
			WithLocation("Millbrook").
			WithCharacters("elder").
			WithNext("fork")).
		WithScene(builders.NewSceneBuilder("fork", entities.SceneChoice).
			WithChoice("fight", "Chase the noise", "ambush").
			WithChoice("search", "Search the shrine", "shrine")).
		WithScene(builders.NewSceneBuilder("ambush", entities.SceneCombatNormal).
			WithEnemies("rat").
			WithNext("gate")).
		WithScene(builders.NewSceneBuilder("shrine", entities.SceneItemGet).
			WithItem("Moon Key").
			WithNext("gate")).
		WithScene(builders.NewSceneBuilder("gate", entities.SceneCombatBoss).
			WithEnemies("golem")).
		WithStage("stage_2").
		WithCharacter(builders.NewMonsterBuilder("king", 1, 1, 0).WithName("Drowned King").AsBoss()).
		WithScene(builders.NewSceneBuilder("depths", entities.SceneNarration).
			WithContent("Water drips from the ceiling.").
			WithNext("throne")).
		WithScene(builders.NewSceneBuilder("throne", entities.SceneCombatBoss).
			WithEnemies("king")).
		Build()
}
