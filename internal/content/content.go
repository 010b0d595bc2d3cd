// Package content holds the read-only tables the engine consults: growth
// stages, species, moves, locations, forage tables, training facilities,
// wild opponents and items. Tables are built once and never written to
// afterwards; every lookup reports whether the id exists.
package content

import (
	"errors"
	"fmt"
	"math"

	"petsim/internal/pet"
)

// ErrNotFound is the kind of every failed lookup.
var ErrNotFound = errors.New("not found")

// Missing builds a not-found refusal for a content id.
func Missing(kind, id string) error {
	return pet.Refuse(ErrNotFound, "unknown %s %q", kind, id)
}

// StageDef holds the base values of a growth stage before species scaling.
type StageDef struct {
	Stage            string          `yaml:"stage"`
	Substages        int             `yaml:"substages"`
	TicksPerSubstage int             `yaml:"ticks_per_substage"`
	BaseStats        pet.BattleStats `yaml:"base_stats"`
	MaxCareStat      int             `yaml:"max_care_stat"`
	MaxEnergy        int             `yaml:"max_energy"`
	MaxHealth        int             `yaml:"max_health"`
}

// SpeciesMove unlocks a move from a stage onwards.
type SpeciesMove struct {
	Move  string `yaml:"move"`
	Stage string `yaml:"stage"`
}

// Species scales the shared stage table.
type Species struct {
	ID               string              `yaml:"id"`
	Name             string              `yaml:"name"`
	Emoji            string              `yaml:"emoji"`
	GrowthRate       float64             `yaml:"growth_rate"`
	StatMultipliers  pet.StatMultipliers `yaml:"stat_multipliers"`
	CareMultiplier   float64             `yaml:"care_multiplier"`
	EnergyMultiplier float64             `yaml:"energy_multiplier"`
	HealthMultiplier float64             `yaml:"health_multiplier"`
	Moves            []SpeciesMove       `yaml:"moves"`
}

// Move categories
const (
	CategoryPhysical = "physical"
	CategorySpecial  = "special"
	CategoryStatus   = "status"
)

// Effect kinds and targets
const (
	EffectHeal   = "heal"
	EffectStat   = "stat"
	EffectStatus = "status"

	TargetSelf     = "self"
	TargetOpponent = "opponent"
)

// MoveEffect is a side effect applied when a move lands.
type MoveEffect struct {
	Kind       string  `yaml:"kind"`
	Target     string  `yaml:"target"`
	Amount     int     `yaml:"amount"`
	Stat       string  `yaml:"stat"`
	Status     string  `yaml:"status"`
	Duration   int     `yaml:"duration"`
	TickDamage int     `yaml:"tick_damage"`
	Chance     float64 `yaml:"chance"`
}

// Move is a battle action definition.
type Move struct {
	ID         string       `yaml:"id"`
	Name       string       `yaml:"name"`
	Category   string       `yaml:"category"`
	Power      int          `yaml:"power"`
	Accuracy   int          `yaml:"accuracy"`
	EnergyCost int          `yaml:"energy_cost"`
	Priority   int          `yaml:"priority"`
	Effects    []MoveEffect `yaml:"effects"`
}

// Location is a place the pet can forage, train or meet wild opponents.
type Location struct {
	ID          string   `yaml:"id"`
	Name        string   `yaml:"name"`
	Emoji       string   `yaml:"emoji"`
	ForageTable string   `yaml:"forage_table"`
	MinStage    string   `yaml:"min_stage"`
	Opponents   []string `yaml:"opponents"`
}

// ForageEntry is one possible drop.
type ForageEntry struct {
	ItemID        string  `yaml:"item_id"`
	BaseDropRate  float64 `yaml:"base_drop_rate"`
	MinSkillLevel int     `yaml:"min_skill_level"`
	Quantity      [2]int  `yaml:"quantity"`
}

// ForageTable describes a foraging trip.
type ForageTable struct {
	ID                string        `yaml:"id"`
	BaseDurationTicks int           `yaml:"base_duration_ticks"`
	BaseEnergyCost    int           `yaml:"base_energy_cost"`
	Entries           []ForageEntry `yaml:"entries"`
}

// TrainingSession is one course offered by a facility.
type TrainingSession struct {
	ID            string `yaml:"id"`
	Name          string `yaml:"name"`
	DurationTicks int    `yaml:"duration_ticks"`
	EnergyCost    int    `yaml:"energy_cost"`
	PrimaryStat   string `yaml:"primary_stat"`
	PrimaryGain   int    `yaml:"primary_gain"`
	SecondaryStat string `yaml:"secondary_stat"`
	SecondaryGain int    `yaml:"secondary_gain"`
	MinStage      string `yaml:"min_stage"`
}

// Facility is a training ground bound to a location.
type Facility struct {
	ID       string            `yaml:"id"`
	Name     string            `yaml:"name"`
	Location string            `yaml:"location"`
	Sessions []TrainingSession `yaml:"sessions"`
}

// Session looks up a session offered by the facility.
func (f Facility) Session(id string) (TrainingSession, bool) {
	for _, s := range f.Sessions {
		if s.ID == id {
			return s, true
		}
	}
	return TrainingSession{}, false
}

// Opponent is a wild or NPC combatant template.
type Opponent struct {
	ID      string `yaml:"id"`
	Name    string `yaml:"name"`
	Species string `yaml:"species"`
	Stage   string `yaml:"stage"`
}

// Item is a display record for forage drops.
type Item struct {
	ID    string `yaml:"id"`
	Name  string `yaml:"name"`
	Emoji string `yaml:"emoji"`
}

// Catalog is the full set of tables.
type Catalog struct {
	stages     map[pet.GrowthStage]StageDef
	species    map[string]Species
	moves      map[string]Move
	locations  map[string]Location
	forage     map[string]ForageTable
	facilities map[string]Facility
	opponents  map[string]Opponent
	items      map[string]Item

	speciesOrder  []string
	locationOrder []string
	facilityOrder []string
}

// Stage returns the base definition of a stage.
func (c *Catalog) Stage(stage pet.GrowthStage) (StageDef, bool) {
	s, ok := c.stages[stage]
	return s, ok
}

// Species returns a species by id.
func (c *Catalog) Species(id string) (Species, bool) {
	s, ok := c.species[id]
	return s, ok
}

// Move returns a move by id.
func (c *Catalog) Move(id string) (Move, bool) {
	m, ok := c.moves[id]
	return m, ok
}

// Location returns a location by id.
func (c *Catalog) Location(id string) (Location, bool) {
	l, ok := c.locations[id]
	return l, ok
}

// ForageTable returns a forage table by id.
func (c *Catalog) ForageTable(id string) (ForageTable, bool) {
	t, ok := c.forage[id]
	return t, ok
}

// Facility returns a training facility by id.
func (c *Catalog) Facility(id string) (Facility, bool) {
	f, ok := c.facilities[id]
	return f, ok
}

// Opponent returns an opponent template by id.
func (c *Catalog) Opponent(id string) (Opponent, bool) {
	o, ok := c.opponents[id]
	return o, ok
}

// Item returns an item by id.
func (c *Catalog) Item(id string) (Item, bool) {
	i, ok := c.items[id]
	return i, ok
}

// SpeciesIDs lists species in file order.
func (c *Catalog) SpeciesIDs() []string { return append([]string(nil), c.speciesOrder...) }

// LocationIDs lists locations in file order.
func (c *Catalog) LocationIDs() []string { return append([]string(nil), c.locationOrder...) }

// FacilitiesAt lists the facilities bound to a location.
func (c *Catalog) FacilitiesAt(locationID string) []Facility {
	var out []Facility
	for _, id := range c.facilityOrder {
		if f := c.facilities[id]; f.Location == locationID {
			out = append(out, f)
		}
	}
	return out
}

// Schedule builds the species' growth schedule. Unknown species report false.
func (c *Catalog) Schedule(speciesID string) (pet.GrowthSchedule, bool) {
	sp, ok := c.species[speciesID]
	if !ok {
		return pet.GrowthSchedule{}, false
	}
	schedule := pet.GrowthSchedule{SpeciesID: speciesID}
	for stage := pet.StageBaby; stage <= pet.FinalStage; stage++ {
		def, ok := c.stages[stage]
		if !ok {
			break
		}
		schedule.Stages = append(schedule.Stages, pet.StageProfile{
			Stage:            stage,
			Substages:        def.Substages,
			TicksPerSubstage: scale(def.TicksPerSubstage, sp.GrowthRate),
			BaseStats:        sp.StatMultipliers.Apply(def.BaseStats),
			MaxCareStat:      scale(def.MaxCareStat, sp.CareMultiplier),
			MaxEnergy:        scale(def.MaxEnergy, sp.EnergyMultiplier),
			MaxHealth:        scale(def.MaxHealth, sp.HealthMultiplier),
		})
	}
	return schedule, true
}

// MovesFor returns the moves a species knows at a stage, in table order.
func (c *Catalog) MovesFor(speciesID string, stage pet.GrowthStage) []Move {
	sp, ok := c.species[speciesID]
	if !ok {
		return nil
	}
	var out []Move
	for _, sm := range sp.Moves {
		unlock, ok := pet.ParseStage(sm.Stage)
		if !ok || unlock > stage {
			continue
		}
		if m, ok := c.moves[sm.Move]; ok {
			out = append(out, m)
		}
	}
	return out
}

// ItemName returns a display name for an item id, falling back to the id.
func (c *Catalog) ItemName(id string) string {
	if it, ok := c.items[id]; ok {
		if it.Emoji != "" {
			return it.Emoji + " " + it.Name
		}
		return it.Name
	}
	return id
}

func scale(v int, f float64) int {
	if f == 0 {
		f = 1
	}
	return int(math.Floor(float64(v) * f))
}

func (c *Catalog) String() string {
	return fmt.Sprintf("catalog(%d species, %d moves, %d locations, %d facilities)",
		len(c.species), len(c.moves), len(c.locations), len(c.facilities))
}
