// Package mocks provides mock expectation helpers for common testing patterns
package mocks

import (
	"context"
	"sort"

	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/rpg-quest/internal/errors"
	"github.com/KirkDiggler/rpg-quest/internal/repositories/savegame"
	savegamemock "github.com/KirkDiggler/rpg-quest/internal/repositories/savegame/mock"
)

// SaveStore is the in-memory state behind ExpectInMemorySaves
type SaveStore map[string]*savegame.SaveData

// ExpectInMemorySaves makes the mock repository behave like a working store
// keyed by slot. The returned map can be inspected by the test.
func ExpectInMemorySaves(repo *savegamemock.MockRepository) SaveStore {
	store := SaveStore{}

	repo.EXPECT().
		Save(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, input savegame.SaveInput) (*savegame.SaveOutput, error) {
			if input.Slot == "" || input.Data == nil {
				return nil, errors.InvalidArgument("slot and data are required")
			}
			data := *input.Data
			data.Slot = input.Slot
			data.Version = savegame.CurrentVersion
			store[input.Slot] = &data
			return &savegame.SaveOutput{Data: &data}, nil
		}).
		AnyTimes()

	repo.EXPECT().
		Load(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, input savegame.LoadInput) (*savegame.LoadOutput, error) {
			data, ok := store[input.Slot]
			if !ok {
				return nil, errors.NotFoundf("no save in slot %s", input.Slot)
			}
			copied := *data
			return &savegame.LoadOutput{Data: &copied}, nil
		}).
		AnyTimes()

	repo.EXPECT().
		Delete(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, input savegame.DeleteInput) (*savegame.DeleteOutput, error) {
			_, ok := store[input.Slot]
			delete(store, input.Slot)
			return &savegame.DeleteOutput{Deleted: ok}, nil
		}).
		AnyTimes()

	repo.EXPECT().
		List(gomock.Any()).
		DoAndReturn(func(_ context.Context) (*savegame.ListOutput, error) {
			out := &savegame.ListOutput{}
			for slot, data := range store {
				info := savegame.SlotInfo{
					Slot:           slot,
					SavedAt:        data.SavedAt,
					CurrentSceneID: data.CurrentSceneID,
				}
				if data.Player != nil {
					info.PlayerName = data.Player.Name
					info.Level = data.Player.Level
				}
				out.Slots = append(out.Slots, info)
			}
			sort.Slice(out.Slots, func(i, j int) bool { return out.Slots[i].Slot < out.Slots[j].Slot })
			return out, nil
		}).
		AnyTimes()

	return store
}

// ExpectSaveFailure makes the next Save fail with err
func ExpectSaveFailure(repo *savegamemock.MockRepository, err error) {
	repo.EXPECT().
		Save(gomock.Any(), gomock.Any()).
		Return(nil, err)
}
