// Package activity resolves the timed activities a pet can be sent on:
// training sessions at a facility and foraging trips to a location. Both
// follow the same lifecycle: CanStart, Start, Tick until done, then Complete
// or Cancel. Resolvers only read the content catalog; every result carries a
// new pet value and leaves the input untouched.
package activity

import (
	"petsim/internal/pet"
)

// StartResult is returned by a successful Start. On failure Pet is the
// unchanged input.
type StartResult struct {
	Pet     pet.Pet
	Message string
}

// CancelResult reports a cancellation and the energy given back.
type CancelResult struct {
	Pet     pet.Pet
	Message string
	Refund  int64
}

// progress returns how far through a timed activity is, 0 to 100. A zero
// duration counts as already complete.
func progress(duration, remaining int) int {
	if duration <= 0 || remaining <= 0 {
		return 100
	}
	elapsed := duration - remaining
	return min(max(elapsed*100/duration, 0), 100)
}

// refund credits cost back to the pet, capped at max energy, and returns the
// amount actually credited.
func refund(p pet.Pet, cost int64) (pet.Pet, int64) {
	room := max(p.MaxStats.Energy-p.Energy.Energy, 0)
	credited := min(max(cost, 0), room)
	p.Energy.Energy += credited
	return p, credited
}

// stageAtLeast reports whether the pet has reached the named stage. An empty
// or unknown name places no requirement.
func stageAtLeast(p pet.Pet, name string) (pet.GrowthStage, bool) {
	required, ok := pet.ParseStage(name)
	if !ok {
		return 0, true
	}
	return required, p.Growth.Stage >= required
}
