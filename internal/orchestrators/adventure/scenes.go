package adventure

import (
	"context"
	"log/slog"

	"github.com/KirkDiggler/rpg-quest/internal/engine"
	"github.com/KirkDiggler/rpg-quest/internal/entities"
	"github.com/KirkDiggler/rpg-quest/internal/errors"
	"github.com/KirkDiggler/rpg-quest/internal/orchestrators/combat"
	"github.com/KirkDiggler/rpg-quest/internal/script"
)

// NewGame starts the script from its first scene with a fresh player
func (o *orchestrator) NewGame(ctx context.Context, input *NewGameInput) (*GameOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("PlayerName", input.PlayerName, vb)
	if input.Script == nil {
		vb.RequiredField("Script")
	}
	if err := vb.Build(); err != nil {
		return nil, err
	}
	if err := script.Validate(input.Script); err != nil {
		return nil, err
	}

	startID, _ := input.Script.StartSceneID()
	first, _ := input.Script.Scene(startID)
	player, err := o.engine.NewPlayer(&engine.NewPlayerInput{
		Name:     input.PlayerName,
		Location: first.NewLocationName,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create player")
	}

	o.combat.Reset(ctx)
	err = o.do(ctx, func(st *step) error {
		g := &game{script: input.Script, player: player}
		o.game = g

		slog.Info("New game started",
			"title", input.Script.WorldSettings.Title,
			"player", player.Name,
		)
		o.logf(g, st, entities.LogEvent, "Welcome, %s! Your adventure in %s begins.",
			player.Name, titleOf(g))
		return o.enter(g, st, startID)
	})
	if err != nil {
		return nil, err
	}
	return o.output(), nil
}

// Continue follows the current scene's next scene. The last scene of a stage
// leads to the first scene of the next one.
func (o *orchestrator) Continue(ctx context.Context, _ *ContinueInput) (*GameOutput, error) {
	err := o.do(ctx, func(st *step) error {
		g := o.game
		if err := ready(g); err != nil {
			return err
		}
		scene, ok := g.script.Scene(g.sceneID)
		if !ok {
			return errors.NotFound("scene not found").WithMeta("scene_id", g.sceneID)
		}
		switch {
		case scene.Type == entities.SceneChoice:
			return errors.FailedPrecondition("choose one of the options to continue").
				WithReason(errors.ReasonChoiceRequired)
		case scene.Type.IsCombat() && !g.cleared:
			return errors.FailedPrecondition("the encounter has not been resolved").
				WithReason(errors.ReasonUnresolved)
		}

		next, ok := g.script.ResolveNext(scene.ID, scene.NextSceneID)
		if !ok {
			o.finish(g, st)
			return nil
		}
		return o.enter(g, st, next)
	})
	if err != nil {
		return nil, err
	}
	return o.output(), nil
}

// Choose follows one branch of a choice scene
func (o *orchestrator) Choose(ctx context.Context, input *ChooseInput) (*GameOutput, error) {
	if input == nil || input.ChoiceID == "" {
		return nil, errors.InvalidArgument("choice id is required")
	}

	err := o.do(ctx, func(st *step) error {
		g := o.game
		if err := ready(g); err != nil {
			return err
		}
		scene, ok := g.script.Scene(g.sceneID)
		if !ok || scene.Type != entities.SceneChoice {
			return errors.FailedPrecondition("there is no choice to make here")
		}

		var choice *entities.Choice
		for i := range scene.Choices {
			if scene.Choices[i].ID == input.ChoiceID {
				choice = &scene.Choices[i]
				break
			}
		}
		if choice == nil {
			return errors.InvalidArgumentf("unknown choice %s", input.ChoiceID).
				WithMeta("choice_id", input.ChoiceID)
		}

		o.logf(g, st, entities.LogEvent, "Chose: %q", choice.Text)
		next, ok := g.script.ResolveNext(scene.ID, choice.NextSceneID)
		if !ok {
			o.finish(g, st)
			return nil
		}
		return o.enter(g, st, next)
	})
	if err != nil {
		return nil, err
	}
	return o.output(), nil
}

// Advance enters a scene by id
func (o *orchestrator) Advance(ctx context.Context, input *AdvanceInput) (*GameOutput, error) {
	if input == nil || input.SceneID == "" {
		return nil, errors.InvalidArgument("scene id is required")
	}

	err := o.do(ctx, func(st *step) error {
		g := o.game
		if err := ready(g); err != nil {
			return err
		}
		return o.enter(g, st, input.SceneID)
	})
	if err != nil {
		return nil, err
	}
	return o.output(), nil
}

// FightAgain restarts the encounter of the current combat scene
func (o *orchestrator) FightAgain(ctx context.Context, _ *FightAgainInput) (*GameOutput, error) {
	err := o.do(ctx, func(st *step) error {
		g := o.game
		if err := ready(g); err != nil {
			return err
		}
		scene, ok := g.script.Scene(g.sceneID)
		if !ok || !scene.Type.IsCombat() {
			return errors.FailedPrecondition("there is nothing to fight here")
		}

		o.logf(g, st, entities.LogSystem, "You face the enemies of %s again.", scene.Title)
		o.beginEncounter(g, st, scene)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return o.output(), nil
}

// Rest restores hp and mp and cures ailments outside combat
func (o *orchestrator) Rest(ctx context.Context, _ *RestInput) (*GameOutput, error) {
	err := o.do(ctx, func(st *step) error {
		g := o.game
		if g != nil && g.inCombat {
			o.logf(g, st, entities.LogSystem, "You cannot rest during combat.")
		}
		if err := ready(g); err != nil {
			return err
		}

		actor := entities.PlayerActor(g.player)
		o.engine.StripDebuffs(actor)
		g.player.HP = g.player.MaxHP()
		g.player.MP = g.player.MaxMP()
		o.logf(g, st, entities.LogEvent, "%s rests and recovers fully. Lingering ailments fade.", g.player.Name)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return o.output(), nil
}

// enter moves the game into a scene and applies what the scene does on entry
func (o *orchestrator) enter(g *game, st *step, sceneID string) error {
	scene, ok := g.script.Scene(sceneID)
	if !ok {
		return errors.NotFound("scene not found").WithMeta("scene_id", sceneID)
	}

	g.sceneID = scene.ID
	g.cleared = false
	p := g.player
	p.MarkVisited(scene.ID)
	if scene.NewLocationName != "" {
		p.CurrentLocation = scene.NewLocationName
		o.logf(g, st, entities.LogLocation, "Arrived at %s.", scene.NewLocationName)
	}

	actor := entities.PlayerActor(p)
	switch scene.Type {
	case entities.SceneTown:
		g.lastTown = scene.ID
		o.engine.StripDebuffs(actor)
		o.narrate(g, st, scene.Content)
	case entities.SceneItemGet:
		o.narrate(g, st, scene.Content)
		o.grantItem(g, st, scene.Item)
	case entities.SceneDialogue:
		o.dialogue(g, st, scene)
	case entities.SceneCombatNormal, entities.SceneCombatBoss:
		o.engine.Derive(actor)
		o.beginEncounter(g, st, scene)
		return nil
	default:
		o.narrate(g, st, scene.Content)
	}

	o.engine.Derive(actor)
	return nil
}

// beginEncounter hands the player to the resolver once the lock is released
func (o *orchestrator) beginEncounter(g *game, st *step, scene *entities.Scene) {
	enc := combat.Encounter{
		SceneID: scene.ID,
		IsBoss:  scene.Type == entities.SceneCombatBoss,
	}
	if scene.CombatDetails != nil {
		enc.EnemyCharacterIDs = append([]string(nil), scene.CombatDetails.EnemyCharacterIDs...)
	}
	if safe, ok := g.script.FindSafeScene(g.lastTown); ok {
		enc.SafeSceneID = safe
	}
	if enc.IsBoss {
		if next, ok := g.script.ResolveNext(scene.ID, scene.NextSceneID); ok {
			enc.NextSceneID = next
		}
	}

	st.start = &combat.StartInput{
		Player:     g.player,
		Encounter:  enc,
		Characters: g.script,
	}
	g.cleared = false
	g.inCombat = true
	g.encounterID = ""
	g.starting = st.start
}

func (o *orchestrator) grantItem(g *game, st *step, ref string) {
	item, ok := o.catalog.LookupItem(ref)
	if !ok {
		slog.Warn("Scene item is not in the catalog",
			"scene_id", g.sceneID,
			"item", ref,
		)
		item = entities.Item{
			ID:          ref,
			Name:        ref,
			Type:        entities.ItemKey,
			Description: "An unfamiliar item.",
		}
	}
	g.player.AddItem(item, 1)
	o.logf(g, st, entities.LogReward, "Obtained %s!", item.Name)
}

func (o *orchestrator) dialogue(g *game, st *step, scene *entities.Scene) {
	if len(scene.CharacterIDs) == 0 {
		o.narrate(g, st, scene.Content)
		return
	}
	npc, ok := g.script.Character(scene.CharacterIDs[0])
	if !ok {
		o.logf(g, st, entities.LogError, "Character %s could not be found.", scene.CharacterIDs[0])
		return
	}
	line := npc.DialogueSeed
	if line == "" {
		line = npc.Name + " has nothing to say."
	}
	o.appendLog(g, st, entities.LogEntry{
		Type:      entities.LogDialogue,
		Speaker:   npc.Name,
		Message:   line,
		Timestamp: o.clock.Now(),
	})
}

func (o *orchestrator) narrate(g *game, st *step, content string) {
	if content == "" {
		return
	}
	o.appendLog(g, st, entities.LogEntry{
		Type:      entities.LogNarration,
		Message:   content,
		Timestamp: o.clock.Now(),
	})
}

func (o *orchestrator) finish(g *game, st *step) {
	g.complete = true
	o.logf(g, st, entities.LogSystem, "Congratulations! You have completed %s!", titleOf(g))
	slog.Info("Adventure complete",
		"title", g.script.WorldSettings.Title,
		"level", g.player.Level,
	)
}

func titleOf(g *game) string {
	if g.script.WorldSettings.Title == "" {
		return "the adventure"
	}
	return g.script.WorldSettings.Title
}
