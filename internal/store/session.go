package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"petsim/internal/activity"
	"petsim/internal/engine"
	"petsim/internal/logger"
	"petsim/internal/pet"
)

// Session loads and saves the pet around an engine.
type Session struct {
	store      Store
	engine     *engine.Engine
	logger     *slog.Logger
	tick       time.Duration
	maxCatchUp int64
	now        func() time.Time
}

// NewSession creates a session. Offline catch-up replays at most maxCatchUp
// ticks of length tick.
func NewSession(st Store, e *engine.Engine, tick time.Duration, maxCatchUp int64, logger *slog.Logger) *Session {
	if tick <= 0 {
		tick = time.Minute
	}
	return &Session{
		store:      st,
		engine:     e,
		logger:     logger,
		tick:       tick,
		maxCatchUp: maxCatchUp,
		now:        pet.TimeNow,
	}
}

// Restored is a loaded save plus what happened while the game was closed.
type Restored struct {
	Save    *Save
	Ticks   int64
	Events  []pet.Event
	Created bool
}

// Load returns the saved pet caught up to now, or hatches a new one of
// species when nothing is saved.
func (s *Session) Load(ctx context.Context, name, species string) (Restored, error) {
	saved, err := s.store.Load(ctx)
	if errors.Is(err, ErrNoSave) {
		return s.hatch(name, species)
	}
	if err != nil {
		return Restored{}, err
	}

	now := s.now()
	from := saved.Clock
	if from.IsZero() {
		from = saved.LastSaved
	}
	ticks := s.elapsedTicks(from, now)
	p, events := s.engine.CatchUp(saved.Pet, ticks)
	saved.Pet = p
	saved.Inventory.Collect(events)
	saved.Clock = s.clockAfter(from, now, ticks)
	saved.LastSaved = now
	saved.RecordStatus(now)

	logger.WithPet(s.logger, p.Identity.ID).Info("Pet loaded", "caught_up", ticks, "events", len(events))
	return Restored{Save: saved, Ticks: ticks, Events: events}, nil
}

// Save stamps the save time, records the status and writes it.
func (s *Session) Save(ctx context.Context, sv *Save) error {
	now := s.now()
	sv.LastSaved = now
	sv.RecordStatus(now)
	if err := s.store.Save(ctx, sv); err != nil {
		return fmt.Errorf("failed to save pet: %w", err)
	}
	logger.WithPet(s.logger, sv.Pet.Identity.ID).Debug("Pet saved")
	return nil
}

func (s *Session) hatch(name, species string) (Restored, error) {
	p, err := s.engine.NewPet(name, species)
	if err != nil {
		return Restored{}, err
	}
	now := s.now()
	status := pet.GetStatus(p)
	sv := &Save{
		Pet:        p,
		Inventory:  activity.Inventory{},
		Clock:      now,
		LastSaved:  now,
		LastStatus: status,
		Logs:       []LogEntry{{Time: now, NewStatus: status}},
	}
	return Restored{Save: sv, Created: true}, nil
}

func (s *Session) elapsedTicks(last, now time.Time) int64 {
	if last.IsZero() || !now.After(last) {
		return 0
	}
	ticks := int64(now.Sub(last) / s.tick)
	if s.maxCatchUp > 0 && ticks > s.maxCatchUp {
		s.logger.Warn("Catch-up capped", "elapsed_ticks", ticks, "max", s.maxCatchUp)
		ticks = s.maxCatchUp
	}
	return ticks
}

// clockAfter returns the simulated time after replaying ticks from last. A
// partial tick is carried over; time dropped by the catch-up cap or a clock
// that went backwards is not.
func (s *Session) clockAfter(last, now time.Time, ticks int64) time.Time {
	next := last.Add(time.Duration(ticks) * s.tick)
	if last.IsZero() || next.After(now) || now.Sub(next) >= s.tick {
		return now
	}
	return next
}
