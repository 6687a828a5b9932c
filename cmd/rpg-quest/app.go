package main

import (
	"context"
	"log/slog"

	"github.com/KirkDiggler/rpg-toolkit/dice"
	"github.com/KirkDiggler/rpg-toolkit/events"

	"github.com/KirkDiggler/rpg-quest/internal/catalog"
	"github.com/KirkDiggler/rpg-quest/internal/config"
	"github.com/KirkDiggler/rpg-quest/internal/engine"
	"github.com/KirkDiggler/rpg-quest/internal/entities"
	"github.com/KirkDiggler/rpg-quest/internal/errors"
	"github.com/KirkDiggler/rpg-quest/internal/orchestrators/adventure"
	"github.com/KirkDiggler/rpg-quest/internal/orchestrators/combat"
	"github.com/KirkDiggler/rpg-quest/internal/orchestrators/delegation"
	"github.com/KirkDiggler/rpg-quest/internal/pkg/clock"
	"github.com/KirkDiggler/rpg-quest/internal/pkg/idgen"
	redisclient "github.com/KirkDiggler/rpg-quest/internal/redis"
	"github.com/KirkDiggler/rpg-quest/internal/repositories/savegame"
)

// appDeps are the pieces that differ between a real run and tests
type appDeps struct {
	Clock  clock.Clock
	Roller dice.Roller
	Saves  savegame.Repository
	Script *entities.Script
}

// app wires every component of a game session
type app struct {
	cfg        config.Config
	script     *entities.Script
	catalog    *catalog.Catalog
	bus        events.EventBus
	combat     combat.Service
	delegation delegation.Controller
	adventure  adventure.Service
}

func newApp(cfg config.Config, deps appDeps) (*app, error) {
	cat, err := catalog.Default()
	if err != nil {
		return nil, errors.Wrap(err, "failed to load catalog")
	}

	eng, err := engine.New(&engine.Config{Catalog: cat, Clock: deps.Clock})
	if err != nil {
		return nil, err
	}

	bus := events.NewBus()
	combatSvc, err := combat.NewOrchestrator(&combat.Config{
		Engine:      eng,
		Catalog:     cat,
		Clock:       deps.Clock,
		Roller:      deps.Roller,
		EventBus:    bus,
		IDGenerator: idgen.NewUUID("enc"),
		Timing:      cfg.Combat,
	})
	if err != nil {
		return nil, err
	}

	ctrl, err := delegation.New(&delegation.Config{
		Combat:   combatSvc,
		EventBus: bus,
		Clock:    deps.Clock,
		Delay:    cfg.Delegation.Delay,
	})
	if err != nil {
		return nil, err
	}

	adv, err := adventure.NewOrchestrator(&adventure.Config{
		Engine:     eng,
		Catalog:    cat,
		Combat:     combatSvc,
		Saves:      deps.Saves,
		EventBus:   bus,
		Clock:      deps.Clock,
		Delegation: ctrl,
		SaveSlot:   cfg.SaveSlot,
	})
	if err != nil {
		_ = ctrl.Close()
		return nil, err
	}

	return &app{
		cfg:        cfg,
		script:     deps.Script,
		catalog:    cat,
		bus:        bus,
		combat:     combatSvc,
		delegation: ctrl,
		adventure:  adv,
	}, nil
}

// Close cancels pending timers and drops subscriptions
func (a *app) Close() error {
	a.combat.Reset(context.Background())
	if err := a.delegation.Close(); err != nil {
		return err
	}
	return a.adventure.Close()
}

// openSaves returns the configured save repository and a func that releases it
func openSaves(ctx context.Context, cfg config.Config, c clock.Clock) (savegame.Repository, func(), error) {
	if cfg.Storage == config.StorageMemory {
		slog.Warn("Saves are kept in memory and lost on exit")
		return savegame.NewInMemory(c), func() {}, nil
	}

	client, err := openRedis(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	repo, err := savegame.NewRedisRepository(&savegame.Config{
		Client: client,
		Clock:  c,
	})
	if err != nil {
		_ = client.Close()
		return nil, nil, err
	}
	return repo, func() { _ = client.Close() }, nil
}

// openRedis connects to the configured Redis and checks it is reachable
func openRedis(ctx context.Context, cfg config.Config) (redisclient.Client, error) {
	client, err := redisclient.NewClient(cfg.Redis.Endpoint, &redisclient.Options{
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "invalid redis config")
	}
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, errors.WrapWithCodef(err, errors.CodeUnavailable, "redis at %s is unreachable", cfg.Redis.Endpoint)
	}
	return client, nil
}
