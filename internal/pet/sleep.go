package pet

// ProcessSleep keeps sleep bookkeeping in step with the activity state:
// counts ticks slept today, resets the count at each day boundary, and wakes
// the pet once its energy is full.
func ProcessSleep(p Pet) (Pet, []Event) {
	// AgeTicks has not been advanced yet this tick.
	if (p.Growth.AgeTicks+1)%TicksPerDay == 0 {
		p.Sleep.SleepTicksToday = 0
	}

	if p.Activity.State() != StateSleeping {
		p.Sleep.IsSleeping = false
		return p, nil
	}

	p.Sleep.IsSleeping = true
	p.Sleep.SleepTicksToday++

	if p.Energy.Energy >= p.MaxStats.Energy {
		slept := p.Growth.AgeTicks + 1 - p.Sleep.SleepStartTick
		p = Leave(p)
		return p, []Event{WokeUp{SleptTicks: slept}}
	}
	return p, nil
}

// Sleep puts an idle pet to bed.
func Sleep(p Pet) (Pet, error) {
	next, err := Enter(p, Sleeping(), 0)
	if err != nil {
		return p, err
	}
	next.Sleep.IsSleeping = true
	next.Sleep.SleepStartTick = p.Growth.AgeTicks
	return next, nil
}

// Wake gets a sleeping pet up.
func Wake(p Pet) (Pet, error) {
	if p.Activity.State() != StateSleeping {
		return p, Refuse(ErrInvalidInput, "pet is not sleeping")
	}
	return Leave(p), nil
}
