// Package main is the entry point for the rpg-quest terminal game
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/rpg-quest/internal/config"
)

var (
	configPath   string
	flagScript   string
	flagSlot     string
	flagRedis    string
	flagStorage  string
	flagLogLevel string
)

var rootCmd = &cobra.Command{
	Use:   "rpg-quest",
	Short: "Scripted single-player RPG",
	Long: `rpg-quest plays a scripted adventure in the terminal. Scenes, turn based
combat and progression run locally; saved games are kept in Redis.`,
	SilenceUsage: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configPath, "config", "rpg-quest.yaml", "config file")
	flags.StringVar(&flagScript, "script", "", "adventure script (YAML or JSON)")
	flags.StringVar(&flagSlot, "slot", "", "save slot")
	flags.StringVar(&flagRedis, "redis", "", "redis endpoint")
	flags.StringVar(&flagStorage, "storage", "", "save storage (redis, memory)")
	flags.StringVar(&flagLogLevel, "log-level", "", "log level (debug, info, warn, error)")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(saveCmd)
}

// loadConfig reads the config file, applies flag overrides and installs the
// default logger
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return cfg, err
	}

	if f := cmd.Flag("script"); f != nil && f.Changed {
		cfg.ScriptPath = flagScript
	}
	if f := cmd.Flag("slot"); f != nil && f.Changed {
		cfg.SaveSlot = flagSlot
	}
	if f := cmd.Flag("redis"); f != nil && f.Changed {
		cfg.Redis.Endpoint = flagRedis
	}
	if f := cmd.Flag("storage"); f != nil && f.Changed {
		cfg.Storage = flagStorage
	}
	if f := cmd.Flag("log-level"); f != nil && f.Changed {
		cfg.LogLevel = flagLogLevel
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	})))
	return cfg, nil
}
