package entities_test

import (
	"testing"

	"github.com/stretchr/testify/suite"
	"gopkg.in/yaml.v3"

	"github.com/KirkDiggler/rpg-quest/internal/entities"
)

type ScriptTestSuite struct {
	suite.Suite
}

func TestScriptSuite(t *testing.T) {
	suite.Run(t, new(ScriptTestSuite))
}

func (s *ScriptTestSuite) TestParseSceneTypeAcceptsLabelsAndIDs() {
	testCases := []struct {
		in   string
		want entities.SceneType
	}{
		{"보스 전투", entities.SceneCombatBoss},
		{"마을", entities.SceneTown},
		{"combat_normal", entities.SceneCombatNormal},
		{"item_get", entities.SceneItemGet},
	}
	for _, tc := range testCases {
		s.Run(tc.in, func() {
			got, err := entities.ParseSceneType(tc.in)
			s.Require().NoError(err)
			s.Assert().Equal(tc.want, got)
		})
	}

	_, err := entities.ParseSceneType("cutscene")
	s.Assert().Error(err)
}

func (s *ScriptTestSuite) TestUnmarshalCharacterType() {
	var c entities.Character
	s.Require().NoError(yaml.Unmarshal([]byte(`{"id":"c1","name":"Ogre","type":"보스 몬스터"}`), &c))
	s.Assert().Equal(entities.CharacterMonsterBoss, c.Type)
	s.Assert().Nil(c.HP)
}

func (s *ScriptTestSuite) TestUnmarshalChoiceScene() {
	var scene entities.Scene
	s.Require().NoError(yaml.Unmarshal([]byte(`
id: fork
type: 선택
choices:
  - {id: left, text: Go left, nextSceneId: meadow}
  - {id: right, text: Go right, nextSceneId: pond}
`), &scene))

	s.Assert().Equal(entities.SceneChoice, scene.Type)
	s.Assert().Equal([]entities.Choice{
		{ID: "left", Text: "Go left", NextSceneID: "meadow"},
		{ID: "right", Text: "Go right", NextSceneID: "pond"},
	}, scene.Choices)
}

func (s *ScriptTestSuite) TestFindSafeScene() {
	testCases := []struct {
		name     string
		script   entities.Script
		lastTown string
		want     string
		found    bool
	}{
		{
			name: "last visited town wins",
			script: entities.Script{Stages: []entities.Stage{{ID: "st1", Scenes: []entities.Scene{
				{ID: "n1", Type: entities.SceneNarration},
				{ID: "t1", Type: entities.SceneTown},
				{ID: "t2", Type: entities.SceneTown},
			}}}},
			lastTown: "t2",
			want:     "t2",
			found:    true,
		},
		{
			name: "town preferred over earlier narration",
			script: entities.Script{Stages: []entities.Stage{{ID: "st1", Scenes: []entities.Scene{
				{ID: "c1", Type: entities.SceneCombatNormal},
				{ID: "n1", Type: entities.SceneNarration},
				{ID: "t1", Type: entities.SceneTown},
			}}}},
			want:  "t1",
			found: true,
		},
		{
			name: "first non-combat scene of earliest stage",
			script: entities.Script{Stages: []entities.Stage{
				{ID: "st1", Scenes: []entities.Scene{{ID: "c1", Type: entities.SceneCombatNormal}}},
				{ID: "st2", Scenes: []entities.Scene{
					{ID: "b1", Type: entities.SceneCombatBoss},
					{ID: "d1", Type: entities.SceneDialogue},
				}},
			}},
			want:  "d1",
			found: true,
		},
		{
			name: "only combat scenes",
			script: entities.Script{Stages: []entities.Stage{{ID: "st1", Scenes: []entities.Scene{
				{ID: "c1", Type: entities.SceneCombatNormal},
				{ID: "b1", Type: entities.SceneCombatBoss},
			}}}},
			found: false,
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			got, ok := tc.script.FindSafeScene(tc.lastTown)
			s.Assert().Equal(tc.found, ok)
			s.Assert().Equal(tc.want, got)
		})
	}
}

func (s *ScriptTestSuite) TestIsFinalStage() {
	script := entities.Script{Stages: []entities.Stage{
		{ID: "st1", Scenes: []entities.Scene{{ID: "a"}}},
		{ID: "st2", Scenes: []entities.Scene{{ID: "b"}}},
	}}
	s.Assert().False(script.IsFinalStage("a"))
	s.Assert().True(script.IsFinalStage("b"))
	s.Assert().False(script.IsFinalStage("missing"))
}

func (s *ScriptTestSuite) TestResolveNext() {
	script := entities.Script{Stages: []entities.Stage{
		{ID: "st1", Scenes: []entities.Scene{{ID: "a"}, {ID: "b"}}},
		{ID: "empty"},
		{ID: "st3", Scenes: []entities.Scene{{ID: "c"}}},
	}}

	start, ok := script.StartSceneID()
	s.Assert().True(ok)
	s.Assert().Equal("a", start)

	next, ok := script.ResolveNext("a", "b")
	s.Assert().True(ok)
	s.Assert().Equal("b", next)

	next, ok = script.ResolveNext("b", "")
	s.Assert().True(ok)
	s.Assert().Equal("c", next)

	_, ok = script.ResolveNext("c", "")
	s.Assert().False(ok)

	_, ok = script.ResolveNext("missing", "")
	s.Assert().False(ok)

	_, ok = (&entities.Script{}).StartSceneID()
	s.Assert().False(ok)
}
