package main

import (
	"context"
	"encoding/json"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/rpg-quest/internal/errors"
	"github.com/KirkDiggler/rpg-quest/internal/pkg/clock"
	"github.com/KirkDiggler/rpg-quest/internal/repositories/savegame"
)

var saveCmd = &cobra.Command{
	Use:   "save",
	Short: "Inspect and manage saved games",
}

var saveListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved games",
	Args:  cobra.NoArgs,
	RunE: withSaves(func(ctx context.Context, cmd *cobra.Command, repo savegame.Repository, _ string) error {
		out, err := repo.List(ctx)
		if err != nil {
			return err
		}
		if len(out.Slots) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No saved games.")
			return nil
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "SLOT\tPLAYER\tLEVEL\tSCENE\tSAVED")
		for _, info := range out.Slots {
			fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%s\n",
				info.Slot, info.PlayerName, info.Level, info.CurrentSceneID, info.SavedAt.Format(time.RFC3339))
		}
		return w.Flush()
	}),
}

var saveShowCmd = &cobra.Command{
	Use:   "show [slot]",
	Short: "Print a saved game as JSON",
	Args:  cobra.MaximumNArgs(1),
	RunE: withSaves(func(ctx context.Context, cmd *cobra.Command, repo savegame.Repository, slot string) error {
		out, err := repo.Load(ctx, savegame.LoadInput{Slot: slot})
		if err != nil {
			return err
		}
		data, err := json.MarshalIndent(out.Data, "", "  ")
		if err != nil {
			return errors.Wrap(err, "failed to encode save")
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	}),
}

var saveDeleteCmd = &cobra.Command{
	Use:   "delete [slot]",
	Short: "Delete a saved game",
	Args:  cobra.MaximumNArgs(1),
	RunE: withSaves(func(ctx context.Context, cmd *cobra.Command, repo savegame.Repository, slot string) error {
		out, err := repo.Delete(ctx, savegame.DeleteInput{Slot: slot})
		if err != nil {
			return err
		}
		if !out.Deleted {
			return errors.NotFoundf("no save in slot %s", slot)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted slot %s.\n", slot)
		return nil
	}),
}

func init() {
	saveCmd.AddCommand(saveListCmd)
	saveCmd.AddCommand(saveShowCmd)
	saveCmd.AddCommand(saveDeleteCmd)
}

type saveFunc func(ctx context.Context, cmd *cobra.Command, repo savegame.Repository, slot string) error

// withSaves opens the save repository for a subcommand. The slot is the
// first argument or the configured one.
func withSaves(fn saveFunc) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}

		repo, release, err := openSaves(ctx, cfg, clock.New())
		if err != nil {
			return err
		}
		defer release()

		slot := cfg.SaveSlot
		if len(args) > 0 {
			slot = args[0]
		}
		return fn(ctx, cmd, repo, slot)
	}
}
