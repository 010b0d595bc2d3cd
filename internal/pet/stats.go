package pet

import "math"

// Battle stat names as they appear in content tables.
const (
	StatStrength  = "strength"
	StatEndurance = "endurance"
	StatAgility   = "agility"
	StatPrecision = "precision"
	StatFortitude = "fortitude"
	StatCunning   = "cunning"
)

// BattleStatNames lists every battle stat in display order.
var BattleStatNames = []string{StatStrength, StatEndurance, StatAgility, StatPrecision, StatFortitude, StatCunning}

// BattleStats are the six combat attributes.
type BattleStats struct {
	Strength  int `json:"strength" yaml:"strength"`
	Endurance int `json:"endurance" yaml:"endurance"`
	Agility   int `json:"agility" yaml:"agility"`
	Precision int `json:"precision" yaml:"precision"`
	Fortitude int `json:"fortitude" yaml:"fortitude"`
	Cunning   int `json:"cunning" yaml:"cunning"`
}

// Add returns the element-wise sum.
func (b BattleStats) Add(o BattleStats) BattleStats {
	return BattleStats{
		Strength:  b.Strength + o.Strength,
		Endurance: b.Endurance + o.Endurance,
		Agility:   b.Agility + o.Agility,
		Precision: b.Precision + o.Precision,
		Fortitude: b.Fortitude + o.Fortitude,
		Cunning:   b.Cunning + o.Cunning,
	}
}

// Get returns a stat by name.
func (b BattleStats) Get(stat string) (int, bool) {
	switch stat {
	case StatStrength:
		return b.Strength, true
	case StatEndurance:
		return b.Endurance, true
	case StatAgility:
		return b.Agility, true
	case StatPrecision:
		return b.Precision, true
	case StatFortitude:
		return b.Fortitude, true
	case StatCunning:
		return b.Cunning, true
	}
	return 0, false
}

// With returns a copy with the named stat set to v. Unknown names leave the
// stats unchanged and report false.
func (b BattleStats) With(stat string, v int) (BattleStats, bool) {
	switch stat {
	case StatStrength:
		b.Strength = v
	case StatEndurance:
		b.Endurance = v
	case StatAgility:
		b.Agility = v
	case StatPrecision:
		b.Precision = v
	case StatFortitude:
		b.Fortitude = v
	case StatCunning:
		b.Cunning = v
	default:
		return b, false
	}
	return b, true
}

// StatMultipliers scale a stage's base stats per species.
type StatMultipliers struct {
	Strength  float64 `yaml:"strength"`
	Endurance float64 `yaml:"endurance"`
	Agility   float64 `yaml:"agility"`
	Precision float64 `yaml:"precision"`
	Fortitude float64 `yaml:"fortitude"`
	Cunning   float64 `yaml:"cunning"`
}

// Apply floors base x multiplier for every stat. A zero multiplier is read as 1.
func (m StatMultipliers) Apply(base BattleStats) BattleStats {
	scale := func(v int, f float64) int {
		if f == 0 {
			f = 1
		}
		return int(math.Floor(float64(v) * f))
	}
	return BattleStats{
		Strength:  scale(base.Strength, m.Strength),
		Endurance: scale(base.Endurance, m.Endurance),
		Agility:   scale(base.Agility, m.Agility),
		Precision: scale(base.Precision, m.Precision),
		Fortitude: scale(base.Fortitude, m.Fortitude),
		Cunning:   scale(base.Cunning, m.Cunning),
	}
}
