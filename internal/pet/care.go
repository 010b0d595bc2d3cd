package pet

// ThresholdFor classifies value against max using the fixed cut points.
func ThresholdFor(value, max int64) CareThreshold {
	pct := Percent(value, max)
	switch {
	case pct >= ContentThreshold:
		return ThresholdContent
	case pct >= OkayThreshold:
		return ThresholdOkay
	case pct >= UncomfortableThreshold:
		return ThresholdUncomfortable
	case pct >= DistressedThreshold:
		return ThresholdDistressed
	default:
		return ThresholdCritical
	}
}

// CareThresholds returns the threshold of each care stat.
func CareThresholds(p Pet) (satiety, hydration, happiness CareThreshold) {
	m := p.MaxStats.CareStat
	return ThresholdFor(p.Care.Satiety, m), ThresholdFor(p.Care.Hydration, m), ThresholdFor(p.Care.Happiness, m)
}

// careLifeDelta is the per-tick change to care-life for the given care
// levels. Critical wins over distressed; recovery needs every stat content.
func careLifeDelta(p Pet) int64 {
	s, h, j := CareThresholds(p)
	levels := []CareThreshold{s, h, j}

	var delta int64
	switch {
	case contains(levels, ThresholdCritical):
		delta = -CareLifeCriticalDrain
	case contains(levels, ThresholdDistressed):
		delta = -CareLifeDistressedDrain
	case s == ThresholdContent && h == ThresholdContent && j == ThresholdContent:
		delta = CareLifeRecoveryRate
	}
	delta -= int64(p.Poop.Count) * CareLifePoopDrain
	return delta
}

// ProcessCareLife drains or recovers care-life. It must run before care decay
// so it sees the previous tick's care levels.
func ProcessCareLife(p Pet) (Pet, []Event) {
	before := p.CareLife.CareLife
	p.CareLife.CareLife = clamp(before+careLifeDelta(p), 0, p.MaxStats.CareStat)
	if before > 0 && p.CareLife.CareLife == 0 {
		return p, []Event{CareLifeDepleted{}}
	}
	return p, nil
}

// ProcessCareDecay lowers every care stat by its fixed rate, floored at 0.
func ProcessCareDecay(p Pet) Pet {
	p.Care.Satiety = max(p.Care.Satiety-SatietyDecayRate, 0)
	p.Care.Hydration = max(p.Care.Hydration-HydrationDecayRate, 0)
	p.Care.Happiness = max(p.Care.Happiness-HappinessDecayRate, 0)
	return p
}

func contains(levels []CareThreshold, want CareThreshold) bool {
	for _, l := range levels {
		if l == want {
			return true
		}
	}
	return false
}
