package activity

import (
	"fmt"

	"petsim/internal/content"
	"petsim/internal/pet"
)

// TrainingContext names where and what to train.
type TrainingContext struct {
	LocationID string
	FacilityID string
	SessionID  string
}

// TrainingResult is returned by CompleteTraining.
type TrainingResult struct {
	Pet     pet.Pet
	Gains   pet.BattleStats
	Message string
}

// Training resolves training sessions against a catalog.
type Training struct {
	catalog *content.Catalog
}

// NewTraining returns a training resolver.
func NewTraining(c *content.Catalog) *Training {
	return &Training{catalog: c}
}

func (t *Training) lookup(ctx TrainingContext) (content.Facility, content.TrainingSession, error) {
	facility, ok := t.catalog.Facility(ctx.FacilityID)
	if !ok {
		return content.Facility{}, content.TrainingSession{}, content.Missing("facility", ctx.FacilityID)
	}
	session, ok := facility.Session(ctx.SessionID)
	if !ok {
		return content.Facility{}, content.TrainingSession{}, content.Missing("training session", ctx.SessionID)
	}
	return facility, session, nil
}

// CanStart reports why the pet cannot train, or nil if it can.
func (t *Training) CanStart(p pet.Pet, ctx TrainingContext) error {
	if err := pet.CheckIdle(p); err != nil {
		return err
	}
	facility, session, err := t.lookup(ctx)
	if err != nil {
		return err
	}
	if facility.Location != ctx.LocationID {
		return pet.Refuse(pet.ErrRequirement, "%s is not at this location", facility.Name)
	}
	if required, ok := stageAtLeast(p, session.MinStage); !ok {
		return pet.Refuse(pet.ErrRequirement, "%s requires a %s or older", session.Name, required.DisplayName())
	}
	return pet.CanEnter(p, pet.Micro(session.EnergyCost))
}

// Start deducts the session's energy cost and puts the pet into training.
func (t *Training) Start(p pet.Pet, ctx TrainingContext, tick int64) (StartResult, error) {
	if err := t.CanStart(p, ctx); err != nil {
		return StartResult{Pet: p}, err
	}
	facility, session, _ := t.lookup(ctx)

	cost := pet.Micro(session.EnergyCost)
	next, err := pet.Enter(p, pet.Training(pet.ActiveTraining{
		StartTick:      tick,
		DurationTicks:  session.DurationTicks,
		TicksRemaining: session.DurationTicks,
		EnergyCost:     cost,
		FacilityID:     facility.ID,
		SessionID:      session.ID,
	}), cost)
	if err != nil {
		return StartResult{Pet: p}, err
	}
	return StartResult{
		Pet:     next,
		Message: fmt.Sprintf("Started %s at %s", session.Name, facility.Name),
	}, nil
}

// TickTraining advances a session by one tick. It reports false exactly when
// no ticks remain, at which point the caller completes it.
func TickTraining(a pet.ActiveTraining) (pet.ActiveTraining, bool) {
	a.TicksRemaining--
	return a, a.TicksRemaining > 0
}

// TrainingProgress returns completion as a percentage.
func TrainingProgress(a pet.ActiveTraining) int {
	return progress(a.DurationTicks, a.TicksRemaining)
}

// Complete grants the session's permanent stat gains and returns the pet to
// idle. A session that no longer exists in the catalog grants nothing.
func (t *Training) Complete(p pet.Pet) (TrainingResult, error) {
	active, ok := p.Activity.Training()
	if !ok {
		return TrainingResult{Pet: p}, pet.Refuse(pet.ErrInvalidInput, "pet is not training")
	}

	var gains pet.BattleStats
	name := "Training"
	if _, session, err := t.lookup(TrainingContext{FacilityID: active.FacilityID, SessionID: active.SessionID}); err == nil {
		name = session.Name
		gains = addGain(gains, session.PrimaryStat, session.PrimaryGain)
		gains = addGain(gains, session.SecondaryStat, session.SecondaryGain)
	}

	p.TrainedBattleStats = p.TrainedBattleStats.Add(gains)
	p.BattleStats = p.BattleStats.Add(gains)
	p = pet.Leave(p)

	return TrainingResult{
		Pet:     p,
		Gains:   gains,
		Message: fmt.Sprintf("%s complete! %s", name, describeGains(gains)),
	}, nil
}

// Cancel stops training and refunds the energy paid at start.
func (t *Training) Cancel(p pet.Pet) (CancelResult, error) {
	active, ok := p.Activity.Training()
	if !ok {
		return CancelResult{Pet: p}, pet.Refuse(pet.ErrNothingToCancel, "pet is not training")
	}
	next, credited := refund(pet.Leave(p), active.EnergyCost)
	return CancelResult{
		Pet:     next,
		Message: "Training cancelled",
		Refund:  credited,
	}, nil
}

func addGain(b pet.BattleStats, stat string, gain int) pet.BattleStats {
	cur, ok := b.Get(stat)
	if !ok || gain == 0 {
		return b
	}
	b, _ = b.With(stat, cur+gain)
	return b
}

func describeGains(g pet.BattleStats) string {
	out := ""
	for _, name := range pet.BattleStatNames {
		v, _ := g.Get(name)
		if v == 0 {
			continue
		}
		if out != "" {
			out += ", "
		}
		out += fmt.Sprintf("+%d %s", v, name)
	}
	if out == "" {
		return "No gains this time."
	}
	return out
}
