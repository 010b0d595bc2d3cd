package activity

import (
	"fmt"
	"math"

	"petsim/internal/content"
	"petsim/internal/pet"
	"petsim/internal/rng"
)

// SkillBonusPerLevel is the multiplicative drop-rate bonus per skill level
// above 1.
const SkillBonusPerLevel = 0.05

// ForageContext names where to forage and how skilled the forager is.
type ForageContext struct {
	LocationID string
	SkillLevel int
}

// ItemDrop is a rolled quantity of one item.
type ItemDrop struct {
	ItemID   string `json:"item_id"`
	Quantity int    `json:"quantity"`
}

// ForageResult is returned by Complete. An empty Items is still a success.
type ForageResult struct {
	Pet        pet.Pet
	LocationID string
	Items      []ItemDrop
	Message    string
}

// Foraging resolves exploration trips against a catalog.
type Foraging struct {
	catalog *content.Catalog
}

// NewForaging returns a foraging resolver.
func NewForaging(c *content.Catalog) *Foraging {
	return &Foraging{catalog: c}
}

func (f *Foraging) lookup(locationID string) (content.Location, content.ForageTable, error) {
	loc, ok := f.catalog.Location(locationID)
	if !ok {
		return content.Location{}, content.ForageTable{}, content.Missing("location", locationID)
	}
	if loc.ForageTable == "" {
		return content.Location{}, content.ForageTable{}, pet.Refuse(pet.ErrRequirement, "nothing to forage at %s", loc.Name)
	}
	table, ok := f.catalog.ForageTable(loc.ForageTable)
	if !ok {
		return content.Location{}, content.ForageTable{}, content.Missing("forage table", loc.ForageTable)
	}
	return loc, table, nil
}

// CanStart reports why the pet cannot forage, or nil if it can.
func (f *Foraging) CanStart(p pet.Pet, ctx ForageContext) error {
	if err := pet.CheckIdle(p); err != nil {
		return err
	}
	loc, table, err := f.lookup(ctx.LocationID)
	if err != nil {
		return err
	}
	if required, ok := stageAtLeast(p, loc.MinStage); !ok {
		return pet.Refuse(pet.ErrRequirement, "%s requires a %s or older", loc.Name, required.DisplayName())
	}
	return pet.CanEnter(p, pet.Micro(table.BaseEnergyCost))
}

// Start deducts the trip's energy cost and sends the pet out.
func (f *Foraging) Start(p pet.Pet, ctx ForageContext, tick int64) (StartResult, error) {
	if err := f.CanStart(p, ctx); err != nil {
		return StartResult{Pet: p}, err
	}
	loc, table, _ := f.lookup(ctx.LocationID)

	cost := pet.Micro(table.BaseEnergyCost)
	next, err := pet.Enter(p, pet.Exploring(pet.ActiveExploration{
		StartTick:      tick,
		DurationTicks:  table.BaseDurationTicks,
		TicksRemaining: table.BaseDurationTicks,
		EnergyCost:     cost,
		LocationID:     loc.ID,
		SkillLevel:     max(ctx.SkillLevel, 1),
	}), cost)
	if err != nil {
		return StartResult{Pet: p}, err
	}
	return StartResult{
		Pet:     next,
		Message: fmt.Sprintf("Set off to forage at %s", loc.Name),
	}, nil
}

// TickExploration advances a trip by one tick. It reports false exactly when
// no ticks remain, at which point the caller completes it.
func TickExploration(a pet.ActiveExploration) (pet.ActiveExploration, bool) {
	a.TicksRemaining--
	return a, a.TicksRemaining > 0
}

// ExplorationProgress returns completion as a percentage: 0 at the start,
// 100 once done and 100 for a zero-length trip.
func ExplorationProgress(a pet.ActiveExploration) int {
	return progress(a.DurationTicks, a.TicksRemaining)
}

// EffectiveDropRate applies the skill bonus multiplicatively and caps the
// result at 1.
func EffectiveDropRate(base float64, skillLevel int) float64 {
	skillLevel = max(skillLevel, 1)
	rate := base * (1 + float64(skillLevel-1)*SkillBonusPerLevel)
	return math.Min(1, math.Max(0, rate))
}

// CalculateForageDrops rolls every entry of a table independently. Entries
// above the forager's skill never roll.
func CalculateForageDrops(table content.ForageTable, skillLevel int, src rng.Source) []ItemDrop {
	var drops []ItemDrop
	for _, e := range table.Entries {
		if e.MinSkillLevel > skillLevel {
			continue
		}
		if !rng.Chance(src, EffectiveDropRate(e.BaseDropRate, skillLevel)) {
			continue
		}
		qty := rng.Range(src, e.Quantity[0], e.Quantity[1])
		if qty <= 0 {
			continue
		}
		drops = append(drops, ItemDrop{ItemID: e.ItemID, Quantity: qty})
	}
	return drops
}

// Complete rolls the trip's drops and returns the pet to idle. A location
// that no longer exists yields no drops rather than an error.
func (f *Foraging) Complete(p pet.Pet, src rng.Source) (ForageResult, error) {
	active, ok := p.Activity.Exploration()
	if !ok {
		return ForageResult{Pet: p}, pet.Refuse(pet.ErrInvalidInput, "pet is not exploring")
	}

	var items []ItemDrop
	name := active.LocationID
	if loc, table, err := f.lookup(active.LocationID); err == nil {
		name = loc.Name
		items = CalculateForageDrops(table, active.SkillLevel, src)
	}

	msg := fmt.Sprintf("Came back from %s empty-handed.", name)
	if n := len(items); n > 0 {
		parts := ""
		for i, it := range items {
			if i > 0 {
				parts += ", "
			}
			parts += fmt.Sprintf("%dx %s", it.Quantity, f.catalog.ItemName(it.ItemID))
		}
		msg = fmt.Sprintf("Came back from %s with %s!", name, parts)
	}

	return ForageResult{
		Pet:        pet.Leave(p),
		LocationID: active.LocationID,
		Items:      items,
		Message:    msg,
	}, nil
}

// Cancel calls the pet home and refunds the energy paid at start.
func (f *Foraging) Cancel(p pet.Pet) (CancelResult, error) {
	active, ok := p.Activity.Exploration()
	if !ok {
		return CancelResult{Pet: p}, pet.Refuse(pet.ErrNothingToCancel, "pet is not exploring")
	}
	next, credited := refund(pet.Leave(p), active.EnergyCost)
	return CancelResult{
		Pet:     next,
		Message: "Exploration cancelled",
		Refund:  credited,
	}, nil
}
