package pet

import (
	"encoding/json"
	"fmt"
)

// ActivityState is the pet's exclusive occupation.
type ActivityState string

const (
	StateIdle      ActivityState = "idle"
	StateSleeping  ActivityState = "sleeping"
	StateTraining  ActivityState = "training"
	StateExploring ActivityState = "exploring"
	StateBattling  ActivityState = "battling"
)

// ActiveTraining is a running training session.
type ActiveTraining struct {
	StartTick      int64  `json:"start_tick"`
	DurationTicks  int    `json:"duration_ticks"`
	TicksRemaining int    `json:"ticks_remaining"`
	EnergyCost     int64  `json:"energy_cost"`
	FacilityID     string `json:"facility_id"`
	SessionID      string `json:"session_id"`
}

// ActiveExploration is a running foraging trip.
type ActiveExploration struct {
	StartTick      int64  `json:"start_tick"`
	DurationTicks  int    `json:"duration_ticks"`
	TicksRemaining int    `json:"ticks_remaining"`
	EnergyCost     int64  `json:"energy_cost"`
	LocationID     string `json:"location_id"`
	SkillLevel     int    `json:"skill_level"`
}

// BattleRef points at the battle the pet is fighting in.
type BattleRef struct {
	BattleID string `json:"battle_id"`
}

// Activity is a closed variant over the activity states. Only the payload
// matching the state is ever set; the fields are unexported so the only way
// to build one is through the constructors below. The zero value is Idle.
type Activity struct {
	state       ActivityState
	training    *ActiveTraining
	exploration *ActiveExploration
	battle      *BattleRef
}

// Idle returns the resting activity.
func Idle() Activity { return Activity{} }

// Sleeping returns the sleeping activity.
func Sleeping() Activity { return Activity{state: StateSleeping} }

// Training wraps a running session.
func Training(t ActiveTraining) Activity {
	return Activity{state: StateTraining, training: &t}
}

// Exploring wraps a running trip.
func Exploring(e ActiveExploration) Activity {
	return Activity{state: StateExploring, exploration: &e}
}

// Battling wraps a battle reference.
func Battling(ref BattleRef) Activity {
	return Activity{state: StateBattling, battle: &ref}
}

// State returns the activity state; the zero value reports Idle.
func (a Activity) State() ActivityState {
	if a.state == "" {
		return StateIdle
	}
	return a.state
}

// IsIdle reports whether nothing is going on.
func (a Activity) IsIdle() bool { return a.State() == StateIdle }

// Training returns a copy of the active training session.
func (a Activity) Training() (ActiveTraining, bool) {
	if a.training == nil {
		return ActiveTraining{}, false
	}
	return *a.training, true
}

// Exploration returns a copy of the active exploration.
func (a Activity) Exploration() (ActiveExploration, bool) {
	if a.exploration == nil {
		return ActiveExploration{}, false
	}
	return *a.exploration, true
}

// Battle returns the active battle reference.
func (a Activity) Battle() (BattleRef, bool) {
	if a.battle == nil {
		return BattleRef{}, false
	}
	return *a.battle, true
}

type activityJSON struct {
	State       ActivityState      `json:"state"`
	Training    *ActiveTraining    `json:"active_training,omitempty"`
	Exploration *ActiveExploration `json:"active_exploration,omitempty"`
	Battle      *BattleRef         `json:"active_battle,omitempty"`
}

// MarshalJSON implements json.Marshaler.
func (a Activity) MarshalJSON() ([]byte, error) {
	return json.Marshal(activityJSON{
		State:       a.State(),
		Training:    a.training,
		Exploration: a.exploration,
		Battle:      a.battle,
	})
}

// UnmarshalJSON implements json.Unmarshaler and rejects payloads that do not
// match the state.
func (a *Activity) UnmarshalJSON(data []byte) error {
	var raw activityJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	set := 0
	for _, present := range []bool{raw.Training != nil, raw.Exploration != nil, raw.Battle != nil} {
		if present {
			set++
		}
	}

	switch raw.State {
	case "", StateIdle:
		if set != 0 {
			return fmt.Errorf("idle activity carries an active payload")
		}
		*a = Idle()
	case StateSleeping:
		if set != 0 {
			return fmt.Errorf("sleeping activity carries an active payload")
		}
		*a = Sleeping()
	case StateTraining:
		if raw.Training == nil || set != 1 {
			return fmt.Errorf("training activity must carry exactly active_training")
		}
		*a = Training(*raw.Training)
	case StateExploring:
		if raw.Exploration == nil || set != 1 {
			return fmt.Errorf("exploring activity must carry exactly active_exploration")
		}
		*a = Exploring(*raw.Exploration)
	case StateBattling:
		if raw.Battle == nil || set != 1 {
			return fmt.Errorf("battling activity must carry exactly active_battle")
		}
		*a = Battling(*raw.Battle)
	default:
		return fmt.Errorf("unknown activity state %q", raw.State)
	}
	return nil
}

// blockedReason names the state that blocks a new activity.
func blockedReason(s ActivityState) string {
	switch s {
	case StateSleeping:
		return "pet is sleeping"
	case StateTraining:
		return "pet is training"
	case StateExploring:
		return "pet is exploring"
	case StateBattling:
		return "pet is battling"
	default:
		return "pet is busy"
	}
}

// CheckIdle returns a Refusal unless the pet is idle.
func CheckIdle(p Pet) error {
	if s := p.Activity.State(); s != StateIdle {
		return Refuse(ErrBusy, "%s", blockedReason(s))
	}
	return nil
}

// CanEnter reports whether the pet may start an activity that costs cost
// micro-units of energy. A nil error means yes.
func CanEnter(p Pet, cost int64) error {
	if err := CheckIdle(p); err != nil {
		return err
	}
	if cost > 0 && p.Energy.Energy < cost {
		return Refuse(ErrInsufficientEnergy, "not enough energy (need %d, have %d)",
			Display(cost+MicroScale-1), Display(p.Energy.Energy))
	}
	return nil
}

// Enter moves the pet into next, deducting cost. The pet is returned unchanged
// alongside the refusal if the transition is not allowed.
func Enter(p Pet, next Activity, cost int64) (Pet, error) {
	if next.IsIdle() {
		return p, invalidInput("cannot enter the idle state; use Leave")
	}
	if err := CanEnter(p, cost); err != nil {
		return p, err
	}
	p.Energy.Energy -= max(cost, 0)
	p.Activity = next
	return p, nil
}

// Leave returns the pet to Idle and clears any active payload.
func Leave(p Pet) Pet {
	if p.Activity.State() == StateSleeping {
		p.Sleep.IsSleeping = false
	}
	p.Activity = Idle()
	return p
}
