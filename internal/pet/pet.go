package pet

import (
	"time"

	"github.com/google/uuid"
)

// Testable time function
var TimeNow = func() time.Time { return time.Now().UTC() }

// Identity never changes after creation.
type Identity struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	SpeciesID string `json:"species_id"`
}

// Growth tracks the life cycle.
type Growth struct {
	Stage     GrowthStage `json:"stage"`
	Substage  int         `json:"substage"`
	BirthTime time.Time   `json:"birth_time"`
	AgeTicks  int64       `json:"age_ticks"`
}

// CareStats are stored in micro-units.
type CareStats struct {
	Satiety   int64 `json:"satiety"`
	Hydration int64 `json:"hydration"`
	Happiness int64 `json:"happiness"`
}

// EnergyStats is stored in micro-units.
type EnergyStats struct {
	Energy int64 `json:"energy"`
}

// CareLifeStats is stored in micro-units.
type CareLifeStats struct {
	CareLife int64 `json:"care_life"`
}

// HealthStats is the persistent health pool battles draw from, in micro-units.
type HealthStats struct {
	Health int64 `json:"health"`
}

// MaxStats are the derived caps, in micro-units.
type MaxStats struct {
	CareStat int64 `json:"care_stat"`
	Energy   int64 `json:"energy"`
	Health   int64 `json:"health"`
}

// MaxStatBonus raises caps, in display points.
type MaxStatBonus struct {
	CareStat int `json:"care_stat,omitempty"`
	Energy   int `json:"energy,omitempty"`
	Health   int `json:"health,omitempty"`
}

// PoopState tracks waste.
type PoopState struct {
	Count          int `json:"count"`
	TicksUntilNext int `json:"ticks_until_next"`
}

// SleepState tracks sleep bookkeeping.
type SleepState struct {
	IsSleeping      bool  `json:"is_sleeping"`
	SleepStartTick  int64 `json:"sleep_start_tick"`
	SleepTicksToday int   `json:"sleep_ticks_today"`
}

// Pet is the central aggregate. It is a value: every transition returns a
// new Pet and never writes through to the caller's copy.
type Pet struct {
	Identity           Identity      `json:"identity"`
	Growth             Growth        `json:"growth"`
	Care               CareStats     `json:"care"`
	Energy             EnergyStats   `json:"energy"`
	CareLife           CareLifeStats `json:"care_life"`
	Health             HealthStats   `json:"health"`
	BattleStats        BattleStats   `json:"battle_stats"`
	TrainedBattleStats BattleStats   `json:"trained_battle_stats"`
	BonusMaxStats      MaxStatBonus  `json:"bonus_max_stats"`
	MaxStats           MaxStats      `json:"max_stats"`
	Poop               PoopState     `json:"poop"`
	Sleep              SleepState    `json:"sleep"`
	Activity           Activity      `json:"activity"`
}

// NewPet creates a pet at the start of its schedule with full stats.
func NewPet(name, speciesID string, schedule GrowthSchedule) Pet {
	if name == "" {
		name = DefaultPetName
	}
	p := Pet{
		Identity: Identity{
			ID:        uuid.New().String(),
			Name:      name,
			SpeciesID: speciesID,
		},
		Growth: Growth{
			Stage:     StageBaby,
			BirthTime: TimeNow(),
		},
		Poop:     PoopState{TicksUntilNext: PoopIntervalTicks},
		Activity: Idle(),
	}
	if profile, ok := schedule.Profile(StageBaby); ok {
		p = Recompute(p, profile)
	}
	p.Care = CareStats{
		Satiety:   p.MaxStats.CareStat,
		Hydration: p.MaxStats.CareStat,
		Happiness: p.MaxStats.CareStat,
	}
	p.Energy.Energy = p.MaxStats.Energy
	p.CareLife.CareLife = p.MaxStats.CareStat
	p.Health.Health = p.MaxStats.Health
	return p
}

// Recompute derives battle stats and caps from a stage profile plus the
// pet's permanent gains, and clamps current values to the new caps.
func Recompute(p Pet, profile StageProfile) Pet {
	p.BattleStats = profile.BaseStats.Add(p.TrainedBattleStats)
	p.MaxStats = MaxStats{
		CareStat: Micro(profile.MaxCareStat + p.BonusMaxStats.CareStat),
		Energy:   Micro(profile.MaxEnergy + p.BonusMaxStats.Energy),
		Health:   Micro(profile.MaxHealth + p.BonusMaxStats.Health),
	}
	p.Care.Satiety = clamp(p.Care.Satiety, 0, p.MaxStats.CareStat)
	p.Care.Hydration = clamp(p.Care.Hydration, 0, p.MaxStats.CareStat)
	p.Care.Happiness = clamp(p.Care.Happiness, 0, p.MaxStats.CareStat)
	p.CareLife.CareLife = clamp(p.CareLife.CareLife, 0, p.MaxStats.CareStat)
	p.Energy.Energy = clamp(p.Energy.Energy, 0, p.MaxStats.Energy)
	p.Health.Health = clamp(p.Health.Health, 0, p.MaxStats.Health)
	return p
}

// AgeDays returns the age in whole days of ticks.
func (p Pet) AgeDays() int64 {
	return p.Growth.AgeTicks / TicksPerDay
}

// Percent returns value as a whole percentage of max. A zero max reads as 0.
func Percent(value, max int64) int {
	if max <= 0 {
		return 0
	}
	return int(value * 100 / max)
}

func clamp(v, lo, hi int64) int64 {
	if hi < lo {
		hi = lo
	}
	return min(max(v, lo), hi)
}
