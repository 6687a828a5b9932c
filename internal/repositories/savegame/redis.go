package savegame

import (
	"context"
	"encoding/json"
	"log/slog"
	"sort"
	"strings"

	redis "github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/rpg-quest/internal/errors"
	"github.com/KirkDiggler/rpg-quest/internal/pkg/clock"
	redisclient "github.com/KirkDiggler/rpg-quest/internal/redis"
)

const (
	// Key pattern: savegame:{slot}
	saveKeyPrefix = "savegame:"

	errSlotEmpty = "slot cannot be empty"
	errDataNil   = "save data cannot be nil"
)

// Config holds the configuration for the Redis repository
type Config struct {
	Client redisclient.Client
	Clock  clock.Clock
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	if c.Client == nil {
		return errors.InvalidArgument("redis client is required")
	}
	if c.Clock == nil {
		return errors.InvalidArgument("clock is required")
	}
	return nil
}

type redisRepository struct {
	client redisclient.Client
	clock  clock.Clock
}

// NewRedisRepository creates a new Redis repository for saved games
func NewRedisRepository(cfg *Config) (Repository, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &redisRepository{
		client: cfg.Client,
		clock:  cfg.Clock,
	}, nil
}

// Ensure redisRepository implements Repository
var _ Repository = (*redisRepository)(nil)

// Save stores data under the slot, replacing any previous save
func (r *redisRepository) Save(ctx context.Context, input SaveInput) (*SaveOutput, error) {
	if input.Slot == "" {
		return nil, errors.InvalidArgument(errSlotEmpty)
	}
	if input.Data == nil {
		return nil, errors.InvalidArgument(errDataNil)
	}
	if input.Data.Player == nil {
		return nil, errors.InvalidArgument("save data has no player")
	}

	data := *input.Data
	data.Version = CurrentVersion
	data.Slot = input.Slot
	data.SavedAt = r.clock.Now()

	blob, err := json.Marshal(&data)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal save")
	}

	if err := r.client.Set(ctx, r.buildKey(input.Slot), blob, 0).Err(); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "failed to store save in Redis")
	}

	return &SaveOutput{Data: &data}, nil
}

// Load returns the save in the slot
func (r *redisRepository) Load(ctx context.Context, input LoadInput) (*LoadOutput, error) {
	if input.Slot == "" {
		return nil, errors.InvalidArgument(errSlotEmpty)
	}

	key := r.buildKey(input.Slot)
	blob, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, errors.NotFoundf("no save in slot %s", input.Slot)
		}
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "failed to get save from Redis")
	}

	data, decodeErr := decode(blob)
	if decodeErr != nil {
		// Unreadable saves are discarded rather than migrated
		if err := r.client.Del(ctx, key).Err(); err != nil {
			slog.Warn("Failed to discard corrupt save",
				"slot", input.Slot,
				"error", err,
			)
		}
		return nil, errors.WrapWithCodef(decodeErr, errors.CodeDataLoss, "save in slot %s is corrupt and was discarded", input.Slot)
	}

	return &LoadOutput{Data: data}, nil
}

func decode(blob []byte) (*SaveData, error) {
	var data SaveData
	if err := json.Unmarshal(blob, &data); err != nil {
		return nil, err
	}
	if data.Player == nil {
		return nil, errors.DataLoss("save has no player")
	}
	if data.Version != CurrentVersion {
		return nil, errors.DataLossf("unsupported save version %d", data.Version)
	}
	return &data, nil
}

// Delete removes the save in the slot
func (r *redisRepository) Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error) {
	if input.Slot == "" {
		return nil, errors.InvalidArgument(errSlotEmpty)
	}

	n, err := r.client.Del(ctx, r.buildKey(input.Slot)).Result()
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "failed to delete save from Redis")
	}

	return &DeleteOutput{Deleted: n > 0}, nil
}

// List returns a summary of every slot, sorted by slot name
func (r *redisRepository) List(ctx context.Context) (*ListOutput, error) {
	var keys []string
	iter := r.client.Scan(ctx, 0, saveKeyPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "failed to scan saves")
	}
	sort.Strings(keys)

	out := &ListOutput{}
	for _, key := range keys {
		slot := strings.TrimPrefix(key, saveKeyPrefix)
		blob, err := r.client.Get(ctx, key).Bytes()
		if err == redis.Nil {
			continue
		}
		if err != nil {
			return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "failed to get save from Redis")
		}
		data, err := decode(blob)
		if err != nil {
			slog.Warn("Skipping unreadable save",
				"slot", slot,
				"error", err,
			)
			continue
		}
		out.Slots = append(out.Slots, SlotInfo{
			Slot:           slot,
			SavedAt:        data.SavedAt,
			PlayerName:     data.Player.Name,
			Level:          data.Player.Level,
			CurrentSceneID: data.CurrentSceneID,
		})
	}
	return out, nil
}

func (r *redisRepository) buildKey(slot string) string {
	return saveKeyPrefix + slot
}
