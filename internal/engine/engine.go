package engine

import (
	"strconv"
	"strings"

	"github.com/KirkDiggler/rpg-quest/internal/catalog"
	"github.com/KirkDiggler/rpg-quest/internal/entities"
	"github.com/KirkDiggler/rpg-quest/internal/errors"
	"github.com/KirkDiggler/rpg-quest/internal/pkg/clock"
)

type engine struct {
	catalog *catalog.Catalog
	rules   catalog.Rules
	clock   clock.Clock
}

// Config holds the dependencies for the engine
type Config struct {
	Catalog *catalog.Catalog
	Clock   clock.Clock
}

// Validate ensures all required dependencies are provided
func (cfg *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if cfg.Catalog == nil {
		vb.RequiredField("Catalog")
	}
	if cfg.Clock == nil {
		vb.RequiredField("Clock")
	}

	return vb.Build()
}

// New creates an engine
func New(cfg *Config) (Engine, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid engine config")
	}
	return &engine{
		catalog: cfg.Catalog,
		rules:   cfg.Catalog.Rules(),
		clock:   cfg.Clock,
	}, nil
}

func (e *engine) Rules() catalog.Rules {
	return e.catalog.Rules()
}

func (e *engine) log(kind entities.LogType, message string) entities.LogEntry {
	return entities.LogEntry{Type: kind, Message: message, Timestamp: e.clock.Now()}
}

func renderEffectLog(template, target, effectName string, value int) string {
	if value < 0 {
		value = -value
	}
	return strings.NewReplacer(
		"{target}", target,
		"{effectName}", effectName,
		"{value}", strconv.Itoa(value),
	).Replace(template)
}
