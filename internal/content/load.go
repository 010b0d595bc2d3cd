package content

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"petsim/internal/pet"
)

//go:embed data/catalog.yaml
var defaultCatalog []byte

type catalogFile struct {
	Stages       []StageDef    `yaml:"stages"`
	Species      []Species     `yaml:"species"`
	Moves        []Move        `yaml:"moves"`
	Locations    []Location    `yaml:"locations"`
	ForageTables []ForageTable `yaml:"forage_tables"`
	Facilities   []Facility    `yaml:"facilities"`
	Opponents    []Opponent    `yaml:"opponents"`
	Items        []Item        `yaml:"items"`
}

// Default returns the catalog shipped with the binary.
func Default() (*Catalog, error) {
	return Parse(defaultCatalog)
}

// Load reads a catalog from a YAML file.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates a YAML catalog.
func Parse(data []byte) (*Catalog, error) {
	var f catalogFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}

	c := &Catalog{
		stages:     make(map[pet.GrowthStage]StageDef),
		species:    make(map[string]Species),
		moves:      make(map[string]Move),
		locations:  make(map[string]Location),
		forage:     make(map[string]ForageTable),
		facilities: make(map[string]Facility),
		opponents:  make(map[string]Opponent),
		items:      make(map[string]Item),
	}

	for _, s := range f.Stages {
		stage, ok := pet.ParseStage(s.Stage)
		if !ok {
			return nil, fmt.Errorf("stage %q: unknown stage name", s.Stage)
		}
		if _, dup := c.stages[stage]; dup {
			return nil, fmt.Errorf("stage %q: defined twice", s.Stage)
		}
		if s.Substages < 1 || s.TicksPerSubstage < 1 {
			return nil, fmt.Errorf("stage %q: substages and ticks_per_substage must be positive", s.Stage)
		}
		c.stages[stage] = s
	}
	for _, m := range f.Moves {
		if err := addUnique(c.moves, m.ID, m, "move"); err != nil {
			return nil, err
		}
		if err := validateMove(m); err != nil {
			return nil, err
		}
	}
	for _, it := range f.Items {
		if err := addUnique(c.items, it.ID, it, "item"); err != nil {
			return nil, err
		}
	}
	for _, sp := range f.Species {
		if err := addUnique(c.species, sp.ID, sp, "species"); err != nil {
			return nil, err
		}
		for _, sm := range sp.Moves {
			if _, ok := c.moves[sm.Move]; !ok {
				return nil, fmt.Errorf("species %q: unknown move %q", sp.ID, sm.Move)
			}
			if _, ok := pet.ParseStage(sm.Stage); !ok {
				return nil, fmt.Errorf("species %q: move %q has unknown stage %q", sp.ID, sm.Move, sm.Stage)
			}
		}
		c.speciesOrder = append(c.speciesOrder, sp.ID)
	}
	for _, t := range f.ForageTables {
		if err := addUnique(c.forage, t.ID, t, "forage table"); err != nil {
			return nil, err
		}
		for _, e := range t.Entries {
			if e.Quantity[0] < 0 || e.Quantity[1] < e.Quantity[0] {
				return nil, fmt.Errorf("forage table %q: item %q has invalid quantity %v", t.ID, e.ItemID, e.Quantity)
			}
			if e.BaseDropRate < 0 {
				return nil, fmt.Errorf("forage table %q: item %q has negative drop rate", t.ID, e.ItemID)
			}
		}
	}
	for _, o := range f.Opponents {
		if err := addUnique(c.opponents, o.ID, o, "opponent"); err != nil {
			return nil, err
		}
		if _, ok := c.species[o.Species]; !ok {
			return nil, fmt.Errorf("opponent %q: unknown species %q", o.ID, o.Species)
		}
		if _, ok := pet.ParseStage(o.Stage); !ok {
			return nil, fmt.Errorf("opponent %q: unknown stage %q", o.ID, o.Stage)
		}
	}
	for _, l := range f.Locations {
		if err := addUnique(c.locations, l.ID, l, "location"); err != nil {
			return nil, err
		}
		if l.ForageTable != "" {
			if _, ok := c.forage[l.ForageTable]; !ok {
				return nil, fmt.Errorf("location %q: unknown forage table %q", l.ID, l.ForageTable)
			}
		}
		for _, o := range l.Opponents {
			if _, ok := c.opponents[o]; !ok {
				return nil, fmt.Errorf("location %q: unknown opponent %q", l.ID, o)
			}
		}
		c.locationOrder = append(c.locationOrder, l.ID)
	}
	for _, fac := range f.Facilities {
		if err := addUnique(c.facilities, fac.ID, fac, "facility"); err != nil {
			return nil, err
		}
		if _, ok := c.locations[fac.Location]; !ok {
			return nil, fmt.Errorf("facility %q: unknown location %q", fac.ID, fac.Location)
		}
		for _, s := range fac.Sessions {
			if _, ok := (pet.BattleStats{}).Get(s.PrimaryStat); !ok {
				return nil, fmt.Errorf("facility %q: session %q has unknown primary stat %q", fac.ID, s.ID, s.PrimaryStat)
			}
			if s.SecondaryStat != "" {
				if _, ok := (pet.BattleStats{}).Get(s.SecondaryStat); !ok {
					return nil, fmt.Errorf("facility %q: session %q has unknown secondary stat %q", fac.ID, s.ID, s.SecondaryStat)
				}
			}
		}
		c.facilityOrder = append(c.facilityOrder, fac.ID)
	}

	return c, nil
}

func addUnique[T any](m map[string]T, id string, v T, kind string) error {
	if id == "" {
		return fmt.Errorf("%s with empty id", kind)
	}
	if _, dup := m[id]; dup {
		return fmt.Errorf("%s %q: defined twice", kind, id)
	}
	m[id] = v
	return nil
}

func validateMove(m Move) error {
	switch m.Category {
	case CategoryPhysical, CategorySpecial, CategoryStatus:
	default:
		return fmt.Errorf("move %q: unknown category %q", m.ID, m.Category)
	}
	if m.Accuracy < 0 || m.Accuracy > 100 {
		return fmt.Errorf("move %q: accuracy must be within 0..100", m.ID)
	}
	for _, e := range m.Effects {
		switch e.Kind {
		case EffectHeal, EffectStatus:
		case EffectStat:
			if _, ok := (pet.BattleStats{}).Get(e.Stat); !ok {
				return fmt.Errorf("move %q: unknown stat %q", m.ID, e.Stat)
			}
		default:
			return fmt.Errorf("move %q: unknown effect kind %q", m.ID, e.Kind)
		}
		if e.Target != TargetSelf && e.Target != TargetOpponent {
			return fmt.Errorf("move %q: unknown effect target %q", m.ID, e.Target)
		}
	}
	return nil
}
