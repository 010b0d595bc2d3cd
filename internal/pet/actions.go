package pet

import "errors"

// Care actions are only available while the pet is idle.

// Feed restores satiety.
func Feed(p Pet) (Pet, error) {
	if err := CheckIdle(p); err != nil {
		return p, err
	}
	if p.Care.Satiety >= p.MaxStats.CareStat {
		return p, Refuse(ErrNoEffect, "🍽️ Not hungry right now!")
	}
	p.Care.Satiety = clamp(p.Care.Satiety+Micro(FeedSatietyIncrease), 0, p.MaxStats.CareStat)
	return p, nil
}

// Water restores hydration.
func Water(p Pet) (Pet, error) {
	if err := CheckIdle(p); err != nil {
		return p, err
	}
	if p.Care.Hydration >= p.MaxStats.CareStat {
		return p, Refuse(ErrNoEffect, "💧 Not thirsty right now!")
	}
	p.Care.Hydration = clamp(p.Care.Hydration+Micro(WaterHydrationIncrease), 0, p.MaxStats.CareStat)
	return p, nil
}

// Play raises happiness at the cost of some energy.
func Play(p Pet) (Pet, error) {
	if err := CanEnter(p, Micro(PlayEnergyCost)); err != nil {
		if errors.Is(err, ErrInsufficientEnergy) {
			return p, Refuse(ErrInsufficientEnergy, "😴 Too tired to play...")
		}
		return p, err
	}
	p.Care.Happiness = clamp(p.Care.Happiness+Micro(PlayHappinessIncrease), 0, p.MaxStats.CareStat)
	p.Energy.Energy -= Micro(PlayEnergyCost)
	return p, nil
}

// Clean removes every poop.
func Clean(p Pet) (Pet, error) {
	if err := CheckIdle(p); err != nil {
		return p, err
	}
	if p.Poop.Count == 0 {
		return p, Refuse(ErrNoEffect, "✨ Already clean!")
	}
	p.Poop.Count = 0
	p.Care.Happiness = clamp(p.Care.Happiness+Micro(CleanHappinessIncrease), 0, p.MaxStats.CareStat)
	return p, nil
}
