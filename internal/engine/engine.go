// Package engine is the single entry point the front end and the save layer
// use to drive a pet. It wires the subsystems together in their fixed tick
// order and wraps the resolvers with logging. An Engine holds no pet state:
// callers own their pet and battle values and pass them in.
package engine

import (
	"log/slog"

	"petsim/internal/activity"
	"petsim/internal/battle"
	"petsim/internal/content"
	"petsim/internal/logger"
	"petsim/internal/pet"
	"petsim/internal/rng"
)

// Engine processes ticks and player actions against one content catalog.
type Engine struct {
	catalog  *content.Catalog
	src      rng.Source
	logger   *slog.Logger
	training *activity.Training
	foraging *activity.Foraging
	battles  *battle.Resolver
}

// New creates an engine. All randomness is drawn from src.
func New(c *content.Catalog, src rng.Source, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{
		catalog:  c,
		src:      src,
		logger:   logger,
		training: activity.NewTraining(c),
		foraging: activity.NewForaging(c),
		battles:  battle.NewResolver(c, src),
	}
}

func (e *Engine) petLog(p pet.Pet) *slog.Logger {
	return logger.WithPet(e.logger, p.Identity.ID)
}

// Catalog returns the content the engine resolves against.
func (e *Engine) Catalog() *content.Catalog {
	return e.catalog
}

// NewPet hatches a pet of the given species.
func (e *Engine) NewPet(name, speciesID string) (pet.Pet, error) {
	schedule, ok := e.catalog.Schedule(speciesID)
	if !ok {
		return pet.Pet{}, content.Missing("species", speciesID)
	}
	p := pet.NewPet(name, speciesID, schedule)
	e.petLog(p).Info("Pet created", "name", p.Identity.Name, "species", speciesID)
	return p, nil
}

// ProcessTick advances the pet by one tick. It never fails; missing content
// only disables the parts that need it. The order is fixed:
//
//  1. care-life, against last tick's care levels
//  2. energy and health regeneration
//  3. poop
//  4. care decay
//  5. sleep
//  6. growth
//  7. training or exploration progress
func (e *Engine) ProcessTick(p pet.Pet) (pet.Pet, []pet.Event) {
	schedule, _ := e.catalog.Schedule(p.Identity.SpeciesID)

	var events, ev []pet.Event
	p, ev = pet.ProcessCareLife(p)
	events = append(events, ev...)

	p = pet.ProcessEnergy(p)

	p, ev = pet.ProcessPoop(p)
	events = append(events, ev...)

	p = pet.ProcessCareDecay(p)

	p, ev = pet.ProcessSleep(p)
	events = append(events, ev...)

	p, ev = pet.ProcessGrowth(p, schedule)
	events = append(events, ev...)

	p, ev = e.progressActivity(p)
	events = append(events, ev...)

	return p, events
}

// CatchUp replays n ticks, as if the clock had run live.
func (e *Engine) CatchUp(p pet.Pet, n int64) (pet.Pet, []pet.Event) {
	var events []pet.Event
	for i := int64(0); i < n; i++ {
		var ev []pet.Event
		p, ev = e.ProcessTick(p)
		events = append(events, ev...)
	}
	if n > 0 {
		e.petLog(p).Debug("Caught up", "ticks", n, "events", len(events))
	}
	return p, events
}

func (e *Engine) progressActivity(p pet.Pet) (pet.Pet, []pet.Event) {
	switch p.Activity.State() {
	case pet.StateTraining:
		active, _ := p.Activity.Training()
		active, running := activity.TickTraining(active)
		p.Activity = pet.Training(active)
		if running {
			return p, nil
		}
		res, err := e.training.Complete(p)
		if err != nil {
			e.petLog(p).Error("Failed to complete training", "error", err)
			return p, nil
		}
		e.petLog(p).Info("Training completed", "session", active.SessionID)
		return res.Pet, []pet.Event{activity.TrainingCompleted{Gains: res.Gains, Summary: res.Message}}

	case pet.StateExploring:
		active, _ := p.Activity.Exploration()
		active, running := activity.TickExploration(active)
		p.Activity = pet.Exploring(active)
		if running {
			return p, nil
		}
		res, err := e.foraging.Complete(p, e.src)
		if err != nil {
			e.petLog(p).Error("Failed to complete exploration", "error", err)
			return p, nil
		}
		e.petLog(p).Info("Exploration completed", "location", res.LocationID, "drops", len(res.Items))
		return res.Pet, []pet.Event{activity.ExplorationCompleted{
			LocationID: res.LocationID,
			Items:      res.Items,
			Summary:    res.Message,
		}}
	}
	return p, nil
}
