package pet

// Game constants. Rates are display points per tick unless noted; Micro
// converts them to stored micro-units.
const (
	DefaultPetName   = "Charm Pet"
	DefaultSpeciesID = "emberkit"

	// MicroScale is the number of stored micro-units per display point.
	MicroScale = 1_000_000

	TicksPerDay = 1440

	// Care decay rates (micro-units per tick)
	SatietyDecayRate   = 30_000
	HydrationDecayRate = 40_000
	HappinessDecayRate = 20_000

	// Care-life rates (micro-units per tick). Drain is faster than recovery.
	CareLifeCriticalDrain   = 50_000
	CareLifeDistressedDrain = 20_000
	CareLifeRecoveryRate    = 10_000
	CareLifePoopDrain       = 5_000

	// Energy regeneration (micro-units per tick)
	EnergyRegenAwake    = 50_000
	EnergyRegenSleeping = 200_000

	// Health regeneration outside battle (micro-units per tick)
	HealthRegenRate = 30_000

	// Poop
	PoopIntervalTicks = 240
	MaxPoop           = 8

	// Care actions (display points)
	FeedSatietyIncrease    = 25
	WaterHydrationIncrease = 25
	PlayHappinessIncrease  = 20
	PlayEnergyCost         = 5
	CleanHappinessIncrease = 5

	// Threshold cut points, percent of max
	ContentThreshold       = 75
	OkayThreshold          = 50
	UncomfortableThreshold = 25
	DistressedThreshold    = 1

	// Status emojis
	StatusEmojiHappy    = "😸"
	StatusEmojiNeutral  = "🙂"
	StatusEmojiSleeping = "😴"
	StatusEmojiHungry   = "🙀"
	StatusEmojiThirsty  = "🥵"
	StatusEmojiSad      = "😿"
	StatusEmojiTired    = "😾"
	StatusEmojiSick     = "🤢"
	StatusEmojiTraining = "💪"
	StatusEmojiExplore  = "🧭"
	StatusEmojiBattle   = "⚔️"
	StatusEmojiPoop     = "💩"
)

// Micro converts display points to micro-units.
func Micro(display int) int64 {
	return int64(display) * MicroScale
}

// Display converts micro-units to whole display points, rounding down.
func Display(micro int64) int {
	return int(micro / MicroScale)
}

// GrowthStage is an ordered life-cycle phase.
type GrowthStage int

const (
	StageBaby GrowthStage = iota
	StageChild
	StageTeen
	StageYoungAdult
	StageAdult
)

// FinalStage is the terminal growth stage.
const FinalStage = StageAdult

var stageNames = [...]string{"baby", "child", "teen", "young_adult", "adult"}

// String returns the stage's content-table key.
func (s GrowthStage) String() string {
	if s < 0 || int(s) >= len(stageNames) {
		return "unknown"
	}
	return stageNames[s]
}

// DisplayName returns a human-friendly stage name.
func (s GrowthStage) DisplayName() string {
	switch s {
	case StageBaby:
		return "Baby"
	case StageChild:
		return "Child"
	case StageTeen:
		return "Teen"
	case StageYoungAdult:
		return "Young Adult"
	case StageAdult:
		return "Adult"
	default:
		return "Unknown"
	}
}

// ParseStage maps a content-table key back to a stage.
func ParseStage(name string) (GrowthStage, bool) {
	for i, n := range stageNames {
		if n == name {
			return GrowthStage(i), true
		}
	}
	return 0, false
}

// MarshalText implements encoding.TextMarshaler.
func (s GrowthStage) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *GrowthStage) UnmarshalText(b []byte) error {
	stage, ok := ParseStage(string(b))
	if !ok {
		return invalidInput("unknown growth stage %q", string(b))
	}
	*s = stage
	return nil
}

// CareThreshold classifies a stat by percentage of its max.
type CareThreshold string

const (
	ThresholdContent       CareThreshold = "content"
	ThresholdOkay          CareThreshold = "okay"
	ThresholdUncomfortable CareThreshold = "uncomfortable"
	ThresholdDistressed    CareThreshold = "distressed"
	ThresholdCritical      CareThreshold = "critical"
)
