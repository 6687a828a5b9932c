// Package errors provides structured errors for the rpg-quest engine.
//
// Errors carry a code, a user facing message, an optional cause and free
// form metadata. Combat rejections additionally carry a reason tag so the
// caller can tell "not your turn" apart from "boss fights cannot be fled".
//
// # Basic Usage
//
//	err := errors.NotFound("save slot not found").WithMeta("slot", slot)
//	err := errors.ResourceExhaustedf("%s needs %d mp", skill.Name, skill.MPCost).
//	    WithReason(errors.ReasonNotEnoughMP)
//
// Wrapping keeps the original code:
//
//	if err := repo.Get(ctx, slot); err != nil {
//	    return errors.Wrap(err, "failed to load save")
//	}
//
// # Error Checking
//
//	if errors.IsFailedPrecondition(err) && errors.GetReason(err) == errors.ReasonBossFlee {
//	    // tell the player there is no escape
//	}
//
// # Validation Errors
//
//	vb := errors.NewValidationBuilder()
//	errors.ValidateRequired("script_path", cfg.ScriptPath, vb)
//	errors.ValidateRange("redis.db", cfg.Redis.DB, 0, 15, vb)
//	if err := vb.Build(); err != nil {
//	    return err
//	}
//
// # Layer Guidelines
//
// Repository layer:
//   - Return NotFound for missing slots and DataLoss for unreadable blobs
//   - Include the slot in metadata
//
// Orchestrator layer:
//   - Validate inputs and return InvalidArgument errors
//   - Return FailedPrecondition for actions outside the current state
//   - Return ResourceExhausted when mp or items run short
package errors
