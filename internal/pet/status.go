package pet

import "strings"

// GetStatus returns the status emoji(s) for the pet
func GetStatus(p Pet) string {
	// Icon 1: Activity (what pet is DOING)
	var activity string
	switch p.Activity.State() {
	case StateSleeping:
		activity = StatusEmojiSleeping
	case StateTraining:
		activity = StatusEmojiTraining
	case StateExploring:
		activity = StatusEmojiExplore
	case StateBattling:
		activity = StatusEmojiBattle
	default:
		activity = StatusEmojiHappy
	}

	// Icon 2: Feeling (most critical need)
	needs := []struct {
		pct   int
		emoji string
	}{
		{Percent(p.CareLife.CareLife, p.MaxStats.CareStat), StatusEmojiSick},
		{Percent(p.Energy.Energy, p.MaxStats.Energy), StatusEmojiTired},
		{Percent(p.Care.Satiety, p.MaxStats.CareStat), StatusEmojiHungry},
		{Percent(p.Care.Hydration, p.MaxStats.CareStat), StatusEmojiThirsty},
		{Percent(p.Care.Happiness, p.MaxStats.CareStat), StatusEmojiSad},
	}
	lowest := needs[0]
	for _, n := range needs[1:] {
		if n.pct < lowest.pct {
			lowest = n
		}
	}

	// Show critical feeling if any stat is below "uncomfortable"
	if lowest.pct < UncomfortableThreshold {
		return activity + lowest.emoji
	}
	if p.Poop.Count > 0 && p.Activity.IsIdle() {
		return activity + StatusEmojiPoop
	}
	return activity
}

// GetStatusWithLabel returns status with text labels for the UI
func GetStatusWithLabel(p Pet) string {
	status := GetStatus(p)

	switch {
	case strings.HasPrefix(status, StatusEmojiSleeping) && status != StatusEmojiSleeping:
		return status + " Sleeping (needs care)"
	case strings.HasPrefix(status, StatusEmojiSleeping):
		return status + " Sleeping"
	case strings.HasPrefix(status, StatusEmojiTraining):
		return status + " Training"
	case strings.HasPrefix(status, StatusEmojiExplore):
		return status + " Exploring"
	case strings.HasPrefix(status, StatusEmojiBattle):
		return status + " Battling"
	case strings.Contains(status, StatusEmojiSick):
		return status + " Neglected"
	case strings.Contains(status, StatusEmojiHungry):
		return status + " Hungry"
	case strings.Contains(status, StatusEmojiThirsty):
		return status + " Thirsty"
	case strings.Contains(status, StatusEmojiTired):
		return status + " Tired"
	case strings.Contains(status, StatusEmojiSad):
		return status + " Sad"
	case strings.Contains(status, StatusEmojiPoop):
		return status + " Needs cleaning"
	default:
		return status + " Happy"
	}
}
