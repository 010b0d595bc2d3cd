package battle

import "petsim/internal/pet"

// ApplyResults writes a finished battle back onto the pet: the health and
// energy the player's combatant lost are subtracted from the pet's current
// values, clamped to [0, max], and the pet returns to idle.
func ApplyResults(p pet.Pet, b Battle) (pet.Pet, error) {
	if !b.Status.Finished() {
		return p, pet.Refuse(pet.ErrInvalidInput, "battle is still in progress")
	}
	ref, ok := p.Activity.Battle()
	if !ok || ref.BattleID != b.ID {
		return p, pet.Refuse(pet.ErrInvalidInput, "pet is not in this battle")
	}

	healthLost := pet.Micro(b.Player.InitialHealth - b.Player.Health)
	energyUsed := pet.Micro(b.Player.InitialEnergy - b.Player.Energy)

	p.Health.Health = min(max(p.Health.Health-healthLost, 0), p.MaxStats.Health)
	p.Energy.Energy = min(max(p.Energy.Energy-energyUsed, 0), p.MaxStats.Energy)
	return pet.Leave(p), nil
}
