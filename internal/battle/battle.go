// Package battle resolves turn-based fights between a pet and an opponent.
//
// A Battle is a value. ProcessPlayerAction returns a new Battle with one more
// turn appended and never touches the one it was given, so any earlier value
// can be kept around for replay. The source Pet is not referenced from the
// battle; ApplyResults copies the outcome back explicitly.
package battle

import (
	"errors"
	"slices"

	"petsim/internal/content"
	"petsim/internal/pet"
)

// ErrInvalidAction marks an action the battle cannot accept.
var ErrInvalidAction = errors.New("invalid battle action")

// Tuning constants.
const (
	CriticalChance     = 1.0 / 16
	CriticalMultiplier = 1.5
	VarianceLow        = 0.85
	VarianceHigh       = 1.15
	MinHitChance       = 5
	MaxHitChance       = 100
	ModifierCap        = 50
	MaxStatusEffects   = 3
	FleeChance         = 0.8
	FleePriority       = 6
)

// Status is the battle outcome so far. A new battle is waiting and moves to
// in progress with the first action.
type Status string

const (
	StatusWaiting    Status = "waiting"
	StatusInProgress Status = "in_progress"
	StatusVictory    Status = "victory"
	StatusDefeat     Status = "defeat"
	StatusFled       Status = "fled"
)

// Finished reports whether s is terminal.
func (s Status) Finished() bool {
	return s == StatusVictory || s == StatusDefeat || s == StatusFled
}

// Phase is where the battle is within a turn.
type Phase string

const (
	PhaseSelectAction Phase = "select_action"
	PhaseResolving    Phase = "resolving"
	PhaseFinished     Phase = "finished"
)

// Kind says who the opponent is.
type Kind string

const KindWild Kind = "wild"

// Status effect kinds. Regen is a status with negative tick damage.
const (
	EffectPoison = "poison"
	EffectBurn   = "burn"
	EffectStun   = "stun"
	EffectRegen  = "regen"
)

// StatusEffect is a lingering condition on a combatant.
type StatusEffect struct {
	Kind       string `json:"kind"`
	Duration   int    `json:"duration"`
	TickDamage int    `json:"tick_damage"`
}

// BattlePet is a combatant as the battle sees it. Health and energy are in
// display points. Modifiers are percentages in [-ModifierCap, ModifierCap].
type BattlePet struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	SpeciesID     string          `json:"species_id"`
	IsPlayer      bool            `json:"is_player"`
	Health        int             `json:"health"`
	MaxHealth     int             `json:"max_health"`
	Energy        int             `json:"energy"`
	MaxEnergy     int             `json:"max_energy"`
	InitialHealth int             `json:"initial_health"`
	InitialEnergy int             `json:"initial_energy"`
	Stats         pet.BattleStats `json:"stats"`
	Modifiers     pet.BattleStats `json:"modifiers"`
	Moves         []content.Move  `json:"moves"`
	StatusEffects []StatusEffect  `json:"status_effects"`
}

// Stat returns a battle stat after modifiers.
func (bp BattlePet) Stat(name string) int {
	base, _ := bp.Stats.Get(name)
	mod, _ := bp.Modifiers.Get(name)
	return max(base*(100+mod)/100, 0)
}

// Speed decides turn order on equal priority.
func (bp BattlePet) Speed() int { return bp.Stat(pet.StatAgility) }

// Move returns a known move by id.
func (bp BattlePet) Move(id string) (content.Move, bool) {
	for _, m := range bp.Moves {
		if m.ID == id {
			return m, true
		}
	}
	return content.Move{}, false
}

// HasStatus reports whether an effect of the given kind is active.
func (bp BattlePet) HasStatus(kind string) bool {
	return slices.ContainsFunc(bp.StatusEffects, func(e StatusEffect) bool { return e.Kind == kind })
}

func (bp BattlePet) clone() BattlePet {
	bp.Moves = slices.Clone(bp.Moves)
	bp.StatusEffects = slices.Clone(bp.StatusEffects)
	return bp
}

// ActionKind is what a combatant does with its turn.
type ActionKind string

const (
	ActionMove ActionKind = "move"
	ActionFlee ActionKind = "flee"
)

// Action is a combatant's choice for one turn.
type Action struct {
	Kind   ActionKind `json:"kind"`
	MoveID string     `json:"move_id,omitempty"`
}

// UseMove returns a move action.
func UseMove(id string) Action { return Action{Kind: ActionMove, MoveID: id} }

// Flee returns a flee action.
func Flee() Action { return Action{Kind: ActionFlee} }

// Side identifies a combatant.
type Side string

const (
	SidePlayer   Side = "player"
	SideOpponent Side = "opponent"
)

// ActionResult records how one action played out.
type ActionResult struct {
	Side     Side     `json:"side"`
	Action   Action   `json:"action"`
	Skipped  bool     `json:"skipped,omitempty"`
	Hit      bool     `json:"hit,omitempty"`
	Damage   int      `json:"damage,omitempty"`
	Critical bool     `json:"critical,omitempty"`
	Fled     bool     `json:"fled,omitempty"`
	Messages []string `json:"messages"`
}

// Turn is one resolved round. Turns are never modified once appended.
type Turn struct {
	Number  int            `json:"number"`
	Actions []ActionResult `json:"actions"`
	Upkeep  []string       `json:"upkeep,omitempty"`
}

// Battle is the whole fight.
type Battle struct {
	ID          string    `json:"id"`
	Kind        Kind      `json:"kind"`
	LocationID  string    `json:"location_id"`
	Player      BattlePet `json:"player"`
	Opponent    BattlePet `json:"opponent"`
	CurrentTurn int       `json:"current_turn"`
	Turns       []Turn    `json:"turns"`
	Status      Status    `json:"status"`
	Phase       Phase     `json:"phase"`
}

func (b Battle) clone() Battle {
	b.Player = b.Player.clone()
	b.Opponent = b.Opponent.clone()
	b.Turns = slices.Clip(slices.Clone(b.Turns))
	return b
}

func (b *Battle) combatants(s Side) (actor, target *BattlePet) {
	if s == SidePlayer {
		return &b.Player, &b.Opponent
	}
	return &b.Opponent, &b.Player
}

// settle records a terminal status if the fight is over and reports whether
// it is.
func (b *Battle) settle() bool {
	switch {
	case b.Status.Finished():
	case b.Player.Health <= 0:
		b.Status = StatusDefeat
	case b.Opponent.Health <= 0:
		b.Status = StatusVictory
	default:
		return false
	}
	b.Phase = PhaseFinished
	return true
}

// LastTurn returns the most recent turn, if any.
func (b Battle) LastTurn() (Turn, bool) {
	if len(b.Turns) == 0 {
		return Turn{}, false
	}
	return b.Turns[len(b.Turns)-1], true
}
