package main

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/rpg-quest/internal/config"
	"github.com/KirkDiggler/rpg-quest/internal/pkg/clock"
	"github.com/KirkDiggler/rpg-quest/internal/repositories/savegame"
)

func TestOpenSavesInMemory(t *testing.T) {
	cfg := config.Default()
	cfg.Storage = config.StorageMemory

	repo, release, err := openSaves(context.Background(), cfg, clock.New())
	require.NoError(t, err)
	defer release()

	_, ok := repo.(*savegame.InMemoryRepository)
	assert.True(t, ok)
}

func TestNewAppRequiresSaves(t *testing.T) {
	_, err := newApp(config.Default(), appDeps{
		Clock:  clock.New(),
		Roller: &fixedRoller{value: 1},
	})
	assert.Error(t, err)
}
