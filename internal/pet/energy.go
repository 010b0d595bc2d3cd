package pet

// ProcessEnergy regenerates energy, faster while asleep, and lets health
// recover slowly outside battle.
func ProcessEnergy(p Pet) Pet {
	rate := int64(EnergyRegenAwake)
	if p.Activity.State() == StateSleeping {
		rate = EnergyRegenSleeping
	}
	p.Energy.Energy = clamp(p.Energy.Energy+rate, 0, p.MaxStats.Energy)

	if p.Activity.State() != StateBattling {
		p.Health.Health = clamp(p.Health.Health+HealthRegenRate, 0, p.MaxStats.Health)
	}
	return p
}
