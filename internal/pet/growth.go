package pet

// StageProfile is a species' view of one growth stage: how long it lasts and
// what it grants. Stat and cap values already include species multipliers.
type StageProfile struct {
	Stage            GrowthStage
	Substages        int
	TicksPerSubstage int
	BaseStats        BattleStats
	MaxCareStat      int
	MaxEnergy        int
	MaxHealth        int
}

// GrowthSchedule is the ordered list of stage profiles for one species.
type GrowthSchedule struct {
	SpeciesID string
	Stages    []StageProfile
}

// Profile returns the profile for a stage.
func (s GrowthSchedule) Profile(stage GrowthStage) (StageProfile, bool) {
	for _, p := range s.Stages {
		if p.Stage == stage {
			return p, true
		}
	}
	return StageProfile{}, false
}

// boundary returns the age in ticks at which (stage, substage) begins.
func (s GrowthSchedule) boundary(stage GrowthStage, substage int) (int64, bool) {
	var total int64
	for _, p := range s.Stages {
		if p.Stage == stage {
			if substage < 0 || substage >= max(p.Substages, 1) {
				return 0, false
			}
			return total + int64(substage)*int64(p.TicksPerSubstage), true
		}
		total += int64(max(p.Substages, 1)) * int64(p.TicksPerSubstage)
	}
	return 0, false
}

// next returns the step after (stage, substage), if any.
func (s GrowthSchedule) next(stage GrowthStage, substage int) (GrowthStage, int, bool) {
	cur, ok := s.Profile(stage)
	if !ok {
		return 0, 0, false
	}
	if substage+1 < max(cur.Substages, 1) {
		return stage, substage + 1, true
	}
	if stage >= FinalStage {
		return 0, 0, false
	}
	if _, ok := s.Profile(stage + 1); !ok {
		return 0, 0, false
	}
	return stage + 1, 0, true
}

// ProcessGrowth advances the age by one tick and applies every boundary the
// new age has crossed. The final stage's last substage is terminal. Unknown
// stage data leaves the pet where it is.
func ProcessGrowth(p Pet, schedule GrowthSchedule) (Pet, []Event) {
	p.Growth.AgeTicks++

	var events []Event
	for {
		stage, substage, ok := schedule.next(p.Growth.Stage, p.Growth.Substage)
		if !ok {
			break
		}
		at, ok := schedule.boundary(stage, substage)
		if !ok || p.Growth.AgeTicks < at {
			break
		}
		profile, _ := schedule.Profile(stage)
		from := p.Growth.Stage
		p.Growth.Stage = stage
		p.Growth.Substage = substage
		p = Recompute(p, profile)
		events = append(events, StageChanged{
			From:     from,
			To:       stage,
			Substage: substage,
			AgeTicks: p.Growth.AgeTicks,
		})
	}
	return p, events
}
