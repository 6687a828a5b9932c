package adventure

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/KirkDiggler/rpg-quest/internal/entities"
	"github.com/KirkDiggler/rpg-quest/internal/errors"
	"github.com/KirkDiggler/rpg-quest/internal/orchestrators/combat"
	"github.com/KirkDiggler/rpg-quest/internal/repositories/savegame"
	"github.com/KirkDiggler/rpg-quest/internal/script"
)

// Save stores the game, including an encounter in progress
func (o *orchestrator) Save(ctx context.Context, input *SaveInput) (*SaveOutput, error) {
	slot := o.slot
	if input != nil && input.Slot != "" {
		slot = input.Slot
	}

	o.mu.Lock()
	g := o.game
	if g == nil {
		o.mu.Unlock()
		return nil, errors.FailedPrecondition("no game in progress").WithReason(errors.ReasonNoGame)
	}
	if g.over || g.complete {
		o.mu.Unlock()
		return nil, errors.FailedPrecondition("the game has ended").WithReason(errors.ReasonGameOver)
	}
	data := &savegame.SaveData{
		Player:          g.player.Clone(),
		CurrentSceneID:  g.sceneID,
		LastTownSceneID: g.lastTown,
		SceneCleared:    g.cleared,
	}
	inCombat := g.inCombat
	o.mu.Unlock()

	if o.delegation != nil {
		data.Delegated = o.delegation.Enabled()
	}
	if inCombat {
		if snap := o.combat.Snapshot(); snap != nil {
			blob, err := json.Marshal(snap)
			if err != nil {
				return nil, errors.Wrapf(err, "failed to marshal combat snapshot")
			}
			data.Combat = blob
		}
	}

	out, err := o.saves.Save(ctx, savegame.SaveInput{Slot: slot, Data: data})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to save game to slot %s", slot)
	}

	slog.Info("Game saved",
		"slot", slot,
		"scene_id", data.CurrentSceneID,
		"in_combat", inCombat,
	)
	return &SaveOutput{Slot: slot, SavedAt: out.Data.SavedAt}, nil
}

// Load replaces the game with a stored one. Derived stats are recomputed and
// an encounter that was still running is resumed.
func (o *orchestrator) Load(ctx context.Context, input *LoadInput) (*GameOutput, error) {
	if input == nil || input.Script == nil {
		return nil, errors.InvalidArgument("script is required")
	}
	if err := script.Validate(input.Script); err != nil {
		return nil, err
	}
	slot := o.slot
	if input.Slot != "" {
		slot = input.Slot
	}

	out, err := o.saves.Load(ctx, savegame.LoadInput{Slot: slot})
	if err != nil {
		return nil, err
	}
	data := out.Data
	if _, ok := input.Script.Scene(data.CurrentSceneID); !ok {
		return nil, errors.FailedPreconditionf("save is at scene %s which the script does not contain", data.CurrentSceneID).
			WithReason(errors.ReasonScriptMismatch)
	}

	var snap *combat.Snapshot
	if len(data.Combat) > 0 {
		snap = &combat.Snapshot{}
		if err := json.Unmarshal(data.Combat, snap); err != nil {
			return nil, errors.WrapWithCode(err, errors.CodeDataLoss, "saved combat is corrupt")
		}
	}
	resume := snap != nil && snap.Player != nil && (!snap.State.Terminal() || snap.Pending != nil)

	player := data.Player
	o.engine.Derive(entities.PlayerActor(player))

	o.combat.Reset(ctx)
	var g *game
	err = o.do(ctx, func(st *step) error {
		g = &game{
			script:   input.Script,
			player:   player,
			sceneID:  data.CurrentSceneID,
			lastTown: data.LastTownSceneID,
			cleared:  data.SceneCleared,
		}
		if resume {
			g.inCombat = true
			g.encounterID = snap.EncounterID
		}
		o.game = g
		o.logf(g, st, entities.LogSystem, "Game loaded.")
		return nil
	})
	if err != nil {
		return nil, err
	}

	if resume {
		if _, err := o.combat.Restore(ctx, &combat.RestoreInput{Snapshot: snap}); err != nil {
			o.mu.Lock()
			if o.game == g {
				g.inCombat = false
				g.encounterID = ""
			}
			o.mu.Unlock()
			return nil, errors.Wrap(err, "failed to restore combat")
		}
	}
	if o.delegation != nil {
		if data.Delegated {
			o.delegation.Enable(ctx)
		} else {
			o.delegation.Disable(ctx)
		}
	}

	slog.Info("Game loaded",
		"slot", slot,
		"scene_id", data.CurrentSceneID,
		"resumed_combat", resume,
	)
	return o.output(), nil
}
