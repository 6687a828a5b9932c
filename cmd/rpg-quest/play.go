package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/KirkDiggler/rpg-toolkit/dice"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/KirkDiggler/rpg-quest/internal/errors"
	"github.com/KirkDiggler/rpg-quest/internal/orchestrators/adventure"
	"github.com/KirkDiggler/rpg-quest/internal/pkg/clock"
	"github.com/KirkDiggler/rpg-quest/internal/script"
)

var (
	playNew      bool
	playName     string
	playAuto     bool
	playAutosave bool
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play the configured script",
	Long: `Play resumes the game in the configured save slot, or starts a new one
when the slot is empty. Type help at the prompt for the list of commands.`,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&playNew, "new", false, "start a new game even if a save exists")
	playCmd.Flags().StringVar(&playName, "name", "", "player name for a new game")
	playCmd.Flags().BoolVar(&playAuto, "auto", false, "start with auto battle on")
	playCmd.Flags().BoolVar(&playAutosave, "autosave", true, "save to the slot when leaving")
}

func runPlay(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	sc, err := script.Load(cfg.ScriptPath)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	clk := clock.New()
	saves, release, err := openSaves(ctx, cfg, clk)
	if err != nil {
		return err
	}
	defer release()

	a, err := newApp(cfg, appDeps{
		Clock:  clk,
		Roller: dice.DefaultRoller,
		Saves:  saves,
		Script: sc,
	})
	if err != nil {
		return err
	}
	defer func() {
		if err := a.Close(); err != nil {
			slog.Error("Failed to shut down game", "error", err)
		}
	}()

	term := newTerminal(a, cmd.OutOrStdout())
	defer func() { _ = term.Close() }()

	slog.Info("Starting game", "script", cfg.ScriptPath, "slot", cfg.SaveSlot)
	if err := term.begin(ctx, beginOptions{New: playNew, Name: playName}); err != nil {
		return err
	}
	if playAuto || cfg.Delegation.Enabled {
		a.delegation.Enable(ctx)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer cancel()
		return term.run(gctx, scanLines(cmd.InOrStdin()))
	})

	g.Go(func() error {
		<-gctx.Done()
		if !playAutosave {
			return nil
		}
		return autosave(a)
	})

	return g.Wait()
}

// autosave stores the game on the way out. Finished games are left alone.
func autosave(a *app) error {
	out, err := a.adventure.Save(context.Background(), &adventure.SaveInput{})
	switch {
	case err == nil:
		slog.Info("Game saved", "slot", out.Slot)
		return nil
	case errors.IsFailedPrecondition(err):
		slog.Debug("Skipping autosave", "reason", errors.GetReason(err))
		return nil
	default:
		return errors.Wrap(err, "autosave failed")
	}
}
