package battle

import (
	"fmt"
	"math"

	"github.com/google/uuid"

	"petsim/internal/content"
	"petsim/internal/pet"
	"petsim/internal/rng"
)

// Resolver runs battles against a catalog. Every roll comes from src.
type Resolver struct {
	catalog *content.Catalog
	src     rng.Source
}

// NewResolver returns a resolver drawing from src.
func NewResolver(c *content.Catalog, src rng.Source) *Resolver {
	return &Resolver{catalog: c, src: src}
}

// FromPet projects a pet into a battle combatant with the moves it knows.
func FromPet(p pet.Pet, moves []content.Move) BattlePet {
	health := pet.Display(p.Health.Health)
	energy := pet.Display(p.Energy.Energy)
	return BattlePet{
		ID:            p.Identity.ID,
		Name:          p.Identity.Name,
		SpeciesID:     p.Identity.SpeciesID,
		IsPlayer:      true,
		Health:        health,
		MaxHealth:     pet.Display(p.MaxStats.Health),
		Energy:        energy,
		MaxEnergy:     pet.Display(p.MaxStats.Energy),
		InitialHealth: health,
		InitialEnergy: energy,
		Stats:         p.BattleStats,
		Moves:         moves,
	}
}

// Initiate starts a battle. The pet must be idle and able to fight; on
// success it comes back in the Battling state pointing at the new battle.
// The battle is waiting until the first action is taken.
func (r *Resolver) Initiate(p pet.Pet, opponent BattlePet, kind Kind, locationID string) (pet.Pet, Battle, error) {
	if err := pet.CheckIdle(p); err != nil {
		return p, Battle{}, err
	}
	if p.Health.Health <= 0 {
		return p, Battle{}, pet.Refuse(pet.ErrRequirement, "%s is too hurt to battle", p.Identity.Name)
	}
	moves := r.catalog.MovesFor(p.Identity.SpeciesID, p.Growth.Stage)
	if len(moves) == 0 {
		return p, Battle{}, pet.Refuse(pet.ErrRequirement, "%s knows no moves", p.Identity.Name)
	}
	if opponent.Health <= 0 {
		return p, Battle{}, pet.Refuse(pet.ErrInvalidInput, "opponent cannot fight")
	}

	b := Battle{
		ID:          uuid.New().String(),
		Kind:        kind,
		LocationID:  locationID,
		Player:      FromPet(p, moves),
		Opponent:    opponent.clone(),
		CurrentTurn: 1,
		Status:      StatusWaiting,
		Phase:       PhaseSelectAction,
	}
	b.Opponent.IsPlayer = false

	next, err := pet.Enter(p, pet.Battling(pet.BattleRef{BattleID: b.ID}), 0)
	if err != nil {
		return p, Battle{}, err
	}
	return next, b, nil
}

// Validate reports why the player cannot take action a, or nil.
func Validate(b Battle, a Action) error {
	if (b.Status != StatusWaiting && b.Status != StatusInProgress) || b.Phase != PhaseSelectAction {
		return pet.Refuse(ErrInvalidAction, "battle is not waiting for an action")
	}
	switch a.Kind {
	case ActionFlee:
		return nil
	case ActionMove:
		m, ok := b.Player.Move(a.MoveID)
		if !ok {
			return pet.Refuse(ErrInvalidAction, "%s does not know %q", b.Player.Name, a.MoveID)
		}
		if b.Player.Energy < m.EnergyCost {
			return pet.Refuse(pet.ErrInsufficientEnergy, "not enough energy for %s (need %d, have %d)",
				m.Name, m.EnergyCost, b.Player.Energy)
		}
		return nil
	default:
		return pet.Refuse(ErrInvalidAction, "unknown action %q", a.Kind)
	}
}

// ProcessPlayerAction resolves one full turn: the player's action, the
// opponent's reply, status upkeep and the end-of-battle check. On error the
// battle is returned unchanged.
func (r *Resolver) ProcessPlayerAction(b Battle, a Action) (Battle, error) {
	if err := Validate(b, a); err != nil {
		return b, err
	}

	next := b.clone()
	next.Status = StatusInProgress
	next.Phase = PhaseResolving

	reply := ChooseAction(next.Opponent, r.src)
	order := []Side{SidePlayer, SideOpponent}
	actions := map[Side]Action{SidePlayer: a, SideOpponent: reply}
	if FirstToAct(next, a, reply, r.src) == SideOpponent {
		order = []Side{SideOpponent, SidePlayer}
	}

	turn := Turn{Number: next.CurrentTurn}
	ended := false
	for _, side := range order {
		turn.Actions = append(turn.Actions, r.execute(&next, side, actions[side]))
		if ended = next.settle(); ended {
			break
		}
	}
	if !ended {
		turn.Upkeep = append(upkeep(&next.Player), upkeep(&next.Opponent)...)
		ended = next.settle()
	}

	next.Turns = append(next.Turns, turn)
	next.CurrentTurn++
	if !ended {
		next.Phase = PhaseSelectAction
	}
	return next, nil
}

func priority(bp BattlePet, a Action) int {
	if a.Kind == ActionFlee {
		return FleePriority
	}
	m, _ := bp.Move(a.MoveID)
	return m.Priority
}

// FirstToAct orders two actions: higher priority first, then higher speed,
// then a coin flip. Only the coin flip consumes a roll.
func FirstToAct(b Battle, player, opponent Action, src rng.Source) Side {
	pp, op := priority(b.Player, player), priority(b.Opponent, opponent)
	switch {
	case pp > op:
		return SidePlayer
	case op > pp:
		return SideOpponent
	}
	ps, os := b.Player.Speed(), b.Opponent.Speed()
	switch {
	case ps > os:
		return SidePlayer
	case os > ps:
		return SideOpponent
	}
	if src.IntN(2) == 0 {
		return SidePlayer
	}
	return SideOpponent
}

// HitChance is the percentage chance a move lands.
func HitChance(moveAccuracy, accuracy, evasion int) int {
	return min(max(moveAccuracy+(accuracy-evasion)/10, MinHitChance), MaxHitChance)
}

// Damage computes the damage of a landed hit. variance is the rolled factor
// in [VarianceLow, VarianceHigh]. The result is at least 1 and a critical
// hit always does more than the same roll without it.
func Damage(attack, defense, power int, variance float64, critical bool) int {
	raw := float64(attack) / float64(max(1, defense)) * float64(power) * variance
	dmg := max(int(math.Floor(raw)), 1)
	if !critical {
		return dmg
	}
	crit := max(int(math.Floor(raw*CriticalMultiplier)), 1)
	if crit <= dmg {
		crit = dmg + 1
	}
	return crit
}

// attackStats returns the attack and defense stat names for a move category.
func attackStats(category string) (string, string) {
	if category == content.CategorySpecial {
		return pet.StatCunning, pet.StatFortitude
	}
	return pet.StatStrength, pet.StatEndurance
}

func (r *Resolver) execute(b *Battle, side Side, a Action) ActionResult {
	actor, target := b.combatants(side)
	res := ActionResult{Side: side, Action: a}
	say := func(format string, args ...any) {
		res.Messages = append(res.Messages, fmt.Sprintf(format, args...))
	}

	if actor.HasStatus(EffectStun) {
		res.Skipped = true
		say("%s is stunned and can't move!", actor.Name)
		if spendStun(actor) {
			say("%s's stun wore off.", actor.Name)
		}
		return res
	}

	if a.Kind == ActionFlee {
		if rng.Chance(r.src, FleeChance) {
			res.Fled = true
			b.Status = StatusFled
			say("%s got away!", actor.Name)
		} else {
			say("%s tried to flee but couldn't escape!", actor.Name)
		}
		return res
	}

	move, ok := actor.Move(a.MoveID)
	if !ok {
		res.Skipped = true
		say("%s hesitated.", actor.Name)
		return res
	}
	actor.Energy = max(actor.Energy-move.EnergyCost, 0)
	say("%s used %s!", actor.Name, move.Name)

	chance := HitChance(move.Accuracy, actor.Stat(pet.StatPrecision), target.Stat(pet.StatAgility))
	if r.src.Float64()*100 >= float64(chance) {
		say("It missed!")
		return res
	}
	res.Hit = true

	if move.Power > 0 {
		atk, def := attackStats(move.Category)
		variance := rng.Uniform(r.src, VarianceLow, VarianceHigh)
		res.Critical = rng.Chance(r.src, CriticalChance)
		res.Damage = Damage(actor.Stat(atk), target.Stat(def), move.Power, variance, res.Critical)
		target.Health = max(target.Health-res.Damage, 0)
		if res.Critical {
			say("A critical hit!")
		}
		say("%s took %d damage.", target.Name, res.Damage)
	}

	for _, e := range move.Effects {
		if msg, ok := r.applyEffect(actor, target, e); ok {
			say("%s", msg)
		}
	}
	return res
}
