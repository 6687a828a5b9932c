package savegame

import (
	"context"
	"encoding/json"
	"sort"
	"sync"

	"github.com/KirkDiggler/rpg-quest/internal/errors"
	"github.com/KirkDiggler/rpg-quest/internal/pkg/clock"
)

// InMemoryRepository implements Repository without external storage.
// Saves are kept encoded so callers never share state with the store.
type InMemoryRepository struct {
	mu    sync.RWMutex
	clock clock.Clock
	store map[string][]byte
}

// NewInMemory creates a new in-memory repository
func NewInMemory(c clock.Clock) *InMemoryRepository {
	if c == nil {
		c = clock.New()
	}
	return &InMemoryRepository{
		clock: c,
		store: make(map[string][]byte),
	}
}

// Ensure InMemoryRepository implements Repository
var _ Repository = (*InMemoryRepository)(nil)

// Save stores data under the slot, replacing any previous save
func (r *InMemoryRepository) Save(_ context.Context, input SaveInput) (*SaveOutput, error) {
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

	r.mu.Lock()
	defer r.mu.Unlock()
	r.store[input.Slot] = blob

	return &SaveOutput{Data: &data}, nil
}

// Load returns the save in the slot
func (r *InMemoryRepository) Load(_ context.Context, input LoadInput) (*LoadOutput, error) {
	if input.Slot == "" {
		return nil, errors.InvalidArgument(errSlotEmpty)
	}

	r.mu.RLock()
	blob, exists := r.store[input.Slot]
	r.mu.RUnlock()
	if !exists {
		return nil, errors.NotFoundf("no save in slot %s", input.Slot)
	}

	data, err := decode(blob)
	if err != nil {
		r.mu.Lock()
		delete(r.store, input.Slot)
		r.mu.Unlock()
		return nil, errors.WrapWithCodef(err, errors.CodeDataLoss, "save in slot %s is corrupt and was discarded", input.Slot)
	}

	return &LoadOutput{Data: data}, nil
}

// Delete removes the save in the slot
func (r *InMemoryRepository) Delete(_ context.Context, input DeleteInput) (*DeleteOutput, error) {
	if input.Slot == "" {
		return nil, errors.InvalidArgument(errSlotEmpty)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	_, exists := r.store[input.Slot]
	delete(r.store, input.Slot)

	return &DeleteOutput{Deleted: exists}, nil
}

// List returns a summary of every slot, sorted by slot name
func (r *InMemoryRepository) List(_ context.Context) (*ListOutput, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	slots := make([]string, 0, len(r.store))
	for slot := range r.store {
		slots = append(slots, slot)
	}
	sort.Strings(slots)

	out := &ListOutput{}
	for _, slot := range slots {
		data, err := decode(r.store[slot])
		if err != nil {
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
