package battle

import (
	"petsim/internal/content"
	"petsim/internal/pet"
	"petsim/internal/rng"
)

// ChooseAction is the opponent AI: a random move it can afford, or flee if
// it can afford none.
func ChooseAction(bp BattlePet, src rng.Source) Action {
	var affordable []content.Move
	for _, m := range bp.Moves {
		if bp.Energy >= m.EnergyCost {
			affordable = append(affordable, m)
		}
	}
	if len(affordable) == 0 {
		return Flee()
	}
	return UseMove(affordable[src.IntN(len(affordable))].ID)
}

// Wild builds a catalog opponent at full health and energy.
func (r *Resolver) Wild(opponentID string) (BattlePet, error) {
	o, ok := r.catalog.Opponent(opponentID)
	if !ok {
		return BattlePet{}, content.Missing("opponent", opponentID)
	}
	stage, _ := pet.ParseStage(o.Stage)
	schedule, ok := r.catalog.Schedule(o.Species)
	if !ok {
		return BattlePet{}, content.Missing("species", o.Species)
	}
	profile, ok := schedule.Profile(stage)
	if !ok {
		return BattlePet{}, content.Missing("stage", o.Stage)
	}
	return BattlePet{
		ID:            o.ID,
		Name:          o.Name,
		SpeciesID:     o.Species,
		Health:        profile.MaxHealth,
		MaxHealth:     profile.MaxHealth,
		Energy:        profile.MaxEnergy,
		MaxEnergy:     profile.MaxEnergy,
		InitialHealth: profile.MaxHealth,
		InitialEnergy: profile.MaxEnergy,
		Stats:         profile.BaseStats,
		Moves:         r.catalog.MovesFor(o.Species, stage),
	}, nil
}

// Encounter picks one of a location's opponents at random.
func (r *Resolver) Encounter(locationID string) (BattlePet, error) {
	loc, ok := r.catalog.Location(locationID)
	if !ok {
		return BattlePet{}, content.Missing("location", locationID)
	}
	if len(loc.Opponents) == 0 {
		return BattlePet{}, pet.Refuse(pet.ErrRequirement, "nothing to fight at %s", loc.Name)
	}
	return r.Wild(loc.Opponents[r.src.IntN(len(loc.Opponents))])
}
