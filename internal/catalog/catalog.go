// Package catalog holds the static game data: status effects, skills, items
// and the numeric rules of combat and progression. Lookups return copies so
// callers can never mutate shared definitions.
package catalog

import (
	"bytes"
	"embed"
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/KirkDiggler/rpg-quest/internal/entities"
	"github.com/KirkDiggler/rpg-quest/internal/errors"
)

//go:embed data/*.yaml
var dataFS embed.FS

// Catalog is an immutable registry of definitions
type Catalog struct {
	effects       map[string]entities.EffectDefinition
	skills        map[string]entities.Skill
	items         map[string]entities.Item
	itemOrder     []string
	defaultSkills []string
	skillsByLevel map[int][]string
	rules         Rules
}

// Data is the raw content a catalog is built from
type Data struct {
	Effects       []entities.EffectDefinition
	Skills        []entities.Skill
	Items         []entities.Item
	DefaultSkills []string
	SkillsByLevel map[int][]string
	Rules         Rules
}

type skillFile struct {
	Skills        []entities.Skill `yaml:"skills"`
	DefaultSkills []string         `yaml:"defaultSkills"`
	SkillsByLevel map[int][]string `yaml:"skillsByLevel"`
}

// Default builds the catalog from the embedded data files
func Default() (*Catalog, error) {
	data, err := DefaultData()
	if err != nil {
		return nil, err
	}
	return New(data)
}

// DefaultData decodes the embedded data files without building a catalog,
// so callers can extend the stock definitions.
func DefaultData() (Data, error) {
	var data Data

	if err := decodeEmbedded("data/effects.yaml", &data.Effects); err != nil {
		return Data{}, err
	}
	var sf skillFile
	if err := decodeEmbedded("data/skills.yaml", &sf); err != nil {
		return Data{}, err
	}
	data.Skills = sf.Skills
	data.DefaultSkills = sf.DefaultSkills
	data.SkillsByLevel = sf.SkillsByLevel
	if err := decodeEmbedded("data/items.yaml", &data.Items); err != nil {
		return Data{}, err
	}
	if err := decodeEmbedded("data/rules.yaml", &data.Rules); err != nil {
		return Data{}, err
	}

	return data, nil
}

// MustDefault is Default for package initialisation and tests
func MustDefault() *Catalog {
	c, err := Default()
	if err != nil {
		panic(fmt.Sprintf("catalog: %v", err))
	}
	return c
}

func decodeEmbedded(name string, out interface{}) error {
	raw, err := dataFS.ReadFile(name)
	if err != nil {
		return errors.Wrapf(err, "failed to read %s", name)
	}
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(out); err != nil {
		return errors.WrapWithCodef(err, errors.CodeInvalidArgument, "failed to decode %s", name)
	}
	return nil
}

// New validates data and builds a catalog from it
func New(data Data) (*Catalog, error) {
	c := &Catalog{
		effects:       make(map[string]entities.EffectDefinition, len(data.Effects)),
		skills:        make(map[string]entities.Skill, len(data.Skills)),
		items:         make(map[string]entities.Item, len(data.Items)),
		defaultSkills: append([]string(nil), data.DefaultSkills...),
		skillsByLevel: make(map[int][]string, len(data.SkillsByLevel)),
		rules:         data.Rules,
	}

	vb := errors.NewValidationBuilder()

	for i, def := range data.Effects {
		field := fmt.Sprintf("effects[%d]", i)
		if def.ID == "" {
			vb.RequiredField(field + ".id")
			continue
		}
		if _, dup := c.effects[def.ID]; dup {
			vb.Fieldf(field+".id", "duplicate effect %q", def.ID)
		}
		if def.DefaultDuration < 1 {
			vb.Fieldf(field+".defaultDuration", "must be at least 1")
		}
		if def.TickEffect != nil && def.TickEffect.Stat != entities.StatHP && def.TickEffect.Stat != entities.StatMP {
			vb.InvalidField(field+".tickEffect.statToAffect", "must be hp or mp")
		}
		c.effects[def.ID] = def.Clone()
	}

	for i, skill := range data.Skills {
		field := fmt.Sprintf("skills[%d]", i)
		if skill.ID == "" {
			vb.RequiredField(field + ".id")
			continue
		}
		if _, dup := c.skills[skill.ID]; dup {
			vb.Fieldf(field+".id", "duplicate skill %q", skill.ID)
		}
		if skill.MPCost < 0 {
			vb.Field(field+".mpCost", "must not be negative")
		}
		if app := skill.AppliesEffect; app != nil {
			if _, ok := c.effects[app.EffectID]; !ok {
				vb.Fieldf(field+".appliesStatusEffect.effectId", "unknown effect %q", app.EffectID)
			}
			if chance := app.ApplyChance(); chance < 0 || chance > 1 {
				vb.Field(field+".appliesStatusEffect.chance", "must be between 0 and 1")
			}
		}
		c.skills[skill.ID] = skill.Clone()
	}

	for i, item := range data.Items {
		field := fmt.Sprintf("items[%d]", i)
		if item.ID == "" {
			vb.RequiredField(field + ".id")
			continue
		}
		if _, dup := c.items[item.ID]; dup {
			vb.Fieldf(field+".id", "duplicate item %q", item.ID)
		}
		for _, cured := range item.Effects.CuresEffect {
			if _, ok := c.effects[cured]; !ok {
				vb.Fieldf(field+".effects.curesEffect", "unknown effect %q", cured)
			}
		}
		c.items[item.ID] = item.Clone()
		c.itemOrder = append(c.itemOrder, item.ID)
	}

	for _, id := range data.DefaultSkills {
		if _, ok := c.skills[id]; !ok {
			vb.Fieldf("defaultSkills", "unknown skill %q", id)
		}
	}
	for level, ids := range data.SkillsByLevel {
		for _, id := range ids {
			if _, ok := c.skills[id]; !ok {
				vb.Fieldf(fmt.Sprintf("skillsByLevel[%d]", level), "unknown skill %q", id)
			}
		}
		c.skillsByLevel[level] = append([]string(nil), ids...)
	}

	data.Rules.validate(vb, c)

	if err := vb.Build(); err != nil {
		return nil, err
	}
	return c, nil
}

// Effect returns a copy of the effect definition
func (c *Catalog) Effect(id string) (entities.EffectDefinition, bool) {
	def, ok := c.effects[id]
	if !ok {
		return entities.EffectDefinition{}, false
	}
	return def.Clone(), true
}

// EffectIDs returns all effect ids in sorted order
func (c *Catalog) EffectIDs() []string {
	ids := make([]string, 0, len(c.effects))
	for id := range c.effects {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Skill returns a copy of the skill definition
func (c *Catalog) Skill(id string) (entities.Skill, bool) {
	skill, ok := c.skills[id]
	if !ok {
		return entities.Skill{}, false
	}
	return skill.Clone(), true
}

// Item returns a copy of the item definition by id
func (c *Catalog) Item(id string) (entities.Item, bool) {
	item, ok := c.items[id]
	if !ok {
		return entities.Item{}, false
	}
	return item.Clone(), true
}

// LookupItem matches an id first and then a display name. Scripts refer to
// granted items by either.
func (c *Catalog) LookupItem(idOrName string) (entities.Item, bool) {
	if item, ok := c.Item(idOrName); ok {
		return item, true
	}
	for _, id := range c.itemOrder {
		if c.items[id].Name == idOrName {
			return c.items[id].Clone(), true
		}
	}
	return entities.Item{}, false
}

// DefaultSkillIDs returns the skills every new player knows
func (c *Catalog) DefaultSkillIDs() []string {
	return append([]string(nil), c.defaultSkills...)
}

// SkillsForLevel returns the skills unlocked on reaching level
func (c *Catalog) SkillsForLevel(level int) []string {
	return append([]string(nil), c.skillsByLevel[level]...)
}

// Rules returns the numeric game rules
func (c *Catalog) Rules() Rules {
	r := c.rules
	r.Player.StarterItems = append([]StarterItem(nil), c.rules.Player.StarterItems...)
	return r
}
