package engine

import (
	"petsim/internal/activity"
	"petsim/internal/battle"
	"petsim/internal/pet"
)

// refused logs a rejected operation. Refusals are normal play, so they stay
// at debug level.
func (e *Engine) refused(op string, p pet.Pet, err error) {
	e.petLog(p).Debug("Operation refused", "op", op, "reason", err)
}

// CanStartTraining reports why the pet cannot train, or nil.
func (e *Engine) CanStartTraining(p pet.Pet, ctx activity.TrainingContext) error {
	return e.training.CanStart(p, ctx)
}

// StartTraining sends the pet to a training session.
func (e *Engine) StartTraining(p pet.Pet, ctx activity.TrainingContext) (activity.StartResult, error) {
	res, err := e.training.Start(p, ctx, p.Growth.AgeTicks)
	if err != nil {
		e.refused("start_training", p, err)
		return res, err
	}
	e.petLog(p).Info("Training started", "facility", ctx.FacilityID, "session", ctx.SessionID)
	return res, nil
}

// CancelTraining stops training and refunds its energy.
func (e *Engine) CancelTraining(p pet.Pet) (activity.CancelResult, error) {
	res, err := e.training.Cancel(p)
	if err != nil {
		e.refused("cancel_training", p, err)
		return res, err
	}
	e.petLog(p).Info("Training cancelled", "refund", pet.Display(res.Refund))
	return res, nil
}

// CanStartForaging reports why the pet cannot forage, or nil.
func (e *Engine) CanStartForaging(p pet.Pet, ctx activity.ForageContext) error {
	return e.foraging.CanStart(p, ctx)
}

// StartForaging sends the pet on a foraging trip.
func (e *Engine) StartForaging(p pet.Pet, ctx activity.ForageContext) (activity.StartResult, error) {
	res, err := e.foraging.Start(p, ctx, p.Growth.AgeTicks)
	if err != nil {
		e.refused("start_foraging", p, err)
		return res, err
	}
	e.petLog(p).Info("Foraging started", "location", ctx.LocationID)
	return res, nil
}

// CancelForaging calls the pet home and refunds its energy.
func (e *Engine) CancelForaging(p pet.Pet) (activity.CancelResult, error) {
	res, err := e.foraging.Cancel(p)
	if err != nil {
		e.refused("cancel_foraging", p, err)
		return res, err
	}
	e.petLog(p).Info("Foraging cancelled", "refund", pet.Display(res.Refund))
	return res, nil
}

// Encounter rolls a wild opponent for a location.
func (e *Engine) Encounter(locationID string) (battle.BattlePet, error) {
	return e.battles.Encounter(locationID)
}

// InitiateBattle starts a fight against opponent.
func (e *Engine) InitiateBattle(p pet.Pet, opponent battle.BattlePet, kind battle.Kind, locationID string) (pet.Pet, battle.Battle, error) {
	next, b, err := e.battles.Initiate(p, opponent, kind, locationID)
	if err != nil {
		e.refused("initiate_battle", p, err)
		return p, b, err
	}
	e.petLog(p).Info("Battle started", "battle_id", b.ID, "opponent", opponent.ID, "location", locationID)
	return next, b, nil
}

// WildBattle rolls an opponent at a location and starts the fight.
func (e *Engine) WildBattle(p pet.Pet, locationID string) (pet.Pet, battle.Battle, error) {
	if err := pet.CheckIdle(p); err != nil {
		return p, battle.Battle{}, err
	}
	opponent, err := e.battles.Encounter(locationID)
	if err != nil {
		e.refused("wild_battle", p, err)
		return p, battle.Battle{}, err
	}
	return e.InitiateBattle(p, opponent, battle.KindWild, locationID)
}

// ProcessPlayerAction resolves one battle turn.
func (e *Engine) ProcessPlayerAction(b battle.Battle, a battle.Action) (battle.Battle, error) {
	next, err := e.battles.ProcessPlayerAction(b, a)
	if err != nil {
		e.logger.Debug("Battle action refused", "battle_id", b.ID, "action", a.Kind, "reason", err)
		return b, err
	}
	if next.Status.Finished() {
		e.logger.Info("Battle finished", "battle_id", b.ID, "status", next.Status, "turns", len(next.Turns))
	}
	return next, nil
}

// ApplyBattleResults writes a finished battle back onto the pet.
func (e *Engine) ApplyBattleResults(p pet.Pet, b battle.Battle) (pet.Pet, error) {
	next, err := battle.ApplyResults(p, b)
	if err != nil {
		e.refused("apply_battle_results", p, err)
		return p, err
	}
	return next, nil
}

// Feed restores satiety.
func (e *Engine) Feed(p pet.Pet) (pet.Pet, error) { return e.care("feed", p, pet.Feed) }

// Water restores hydration.
func (e *Engine) Water(p pet.Pet) (pet.Pet, error) { return e.care("water", p, pet.Water) }

// Play raises happiness for some energy.
func (e *Engine) Play(p pet.Pet) (pet.Pet, error) { return e.care("play", p, pet.Play) }

// Clean clears poop.
func (e *Engine) Clean(p pet.Pet) (pet.Pet, error) { return e.care("clean", p, pet.Clean) }

// Sleep puts the pet to bed.
func (e *Engine) Sleep(p pet.Pet) (pet.Pet, error) { return e.care("sleep", p, pet.Sleep) }

// Wake gets the pet up.
func (e *Engine) Wake(p pet.Pet) (pet.Pet, error) { return e.care("wake", p, pet.Wake) }

func (e *Engine) care(op string, p pet.Pet, fn func(pet.Pet) (pet.Pet, error)) (pet.Pet, error) {
	next, err := fn(p)
	if err != nil {
		e.refused(op, p, err)
		return p, err
	}
	e.petLog(p).Debug("Care action", "op", op)
	return next, nil
}
