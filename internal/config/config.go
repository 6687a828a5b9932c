// Package config loads the game configuration from a YAML file
package config

import (
	"log/slog"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/KirkDiggler/rpg-quest/internal/errors"
	"github.com/KirkDiggler/rpg-quest/internal/orchestrators/combat"
	"github.com/KirkDiggler/rpg-quest/internal/orchestrators/delegation"
)

// Config holds all configuration for a game session
type Config struct {
	// Script
	ScriptPath string `yaml:"script_path"`
	PlayerName string `yaml:"player_name"`

	// Persistence
	Storage  string      `yaml:"storage"`
	Redis    RedisConfig `yaml:"redis"`
	SaveSlot string      `yaml:"save_slot"`

	LogLevel string `yaml:"log_level"`

	Combat     combat.Timing    `yaml:"combat"`
	Delegation DelegationConfig `yaml:"delegation"`
}

// Storage backends for saved games
const (
	StorageRedis  = "redis"
	StorageMemory = "memory"
)

// maxRedisDB is the highest database index a default redis server exposes
const maxRedisDB = 15

// RedisConfig holds Redis connection parameters
type RedisConfig struct {
	Endpoint string `yaml:"endpoint"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// DelegationConfig controls automatic play
type DelegationConfig struct {
	Enabled bool          `yaml:"enabled"`
	Delay   time.Duration `yaml:"delay"`
}

// Default returns the configuration with sensible defaults
func Default() Config {
	return Config{
		ScriptPath: "script.yaml",
		PlayerName: "Hero",
		Storage:    StorageRedis,
		Redis: RedisConfig{
			Endpoint: "localhost:6379",
		},
		SaveSlot: "main",
		LogLevel: "info",
		Combat:   combat.DefaultTiming(),
		Delegation: DelegationConfig{
			Delay: delegation.DefaultDelay,
		},
	}
}

// Load reads the config at path over the defaults.
// If the file doesn't exist, returns defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, errors.Wrapf(err, "reading config %s", path)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, errors.WrapWithCodef(err, errors.CodeInvalidArgument, "parsing config %s", path)
	}

	return cfg, cfg.Validate()
}

// Validate checks the configured values
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("script_path", c.ScriptPath, vb)
	errors.ValidateRequired("player_name", c.PlayerName, vb)
	errors.ValidateRequired("save_slot", c.SaveSlot, vb)
	errors.ValidateEnum("storage", c.Storage, []string{StorageRedis, StorageMemory}, vb)
	if c.Storage == StorageRedis {
		errors.ValidateRequired("redis.endpoint", c.Redis.Endpoint, vb)
		errors.ValidateRange("redis.db", c.Redis.DB, 0, maxRedisDB, vb)
	}
	errors.ValidateEnum("log_level", strings.ToLower(c.LogLevel), []string{"debug", "info", "warn", "error"}, vb)
	if c.Delegation.Delay < 0 {
		vb.InvalidField("delegation.delay", "must not be negative")
	}
	return vb.Build()
}

// SlogLevel maps LogLevel onto a slog level
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
