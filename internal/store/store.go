// Package store saves and restores a pet between runs. A save is plain JSON;
// on load the session replays the ticks that passed while the game was
// closed.
package store

import (
	"context"
	"errors"
	"time"

	"petsim/internal/activity"
	"petsim/internal/battle"
	"petsim/internal/pet"
)

// ErrNoSave is returned by Load when nothing has been saved yet.
var ErrNoSave = errors.New("no saved pet")

// LogEntry records a change of the pet's status line.
type LogEntry struct {
	Time      time.Time `json:"time"`
	OldStatus string    `json:"old_status"`
	NewStatus string    `json:"new_status"`
}

// Save is everything written between runs. Clock is the time the pet has
// been simulated up to; it trails the wall clock by less than one tick.
type Save struct {
	Pet        pet.Pet            `json:"pet"`
	Inventory  activity.Inventory `json:"inventory"`
	Battle     *battle.Battle     `json:"battle,omitempty"`
	Clock      time.Time          `json:"clock"`
	LastSaved  time.Time          `json:"last_saved"`
	LastStatus string             `json:"last_status"`
	Logs       []LogEntry         `json:"logs"`
}

// Ticked moves the clock forward by one live tick of length d.
func (s *Save) Ticked(d time.Duration) {
	if s.Clock.IsZero() {
		s.Clock = pet.TimeNow()
		return
	}
	s.Clock = s.Clock.Add(d)
}

// Store persists one save slot.
type Store interface {
	Load(ctx context.Context) (*Save, error)
	Save(ctx context.Context, s *Save) error
	Close() error
}

// RecordStatus appends a log entry when the pet's status changed since the
// last record.
func (s *Save) RecordStatus(now time.Time) {
	current := pet.GetStatus(s.Pet)
	if s.LastStatus == "" {
		s.LastStatus = current
		return
	}
	if current == s.LastStatus {
		return
	}
	s.Logs = append(s.Logs, LogEntry{
		Time:      now,
		OldStatus: s.LastStatus,
		NewStatus: current,
	})
	s.LastStatus = current
}

// normalize repairs what JSON cannot carry or a crash left behind.
func (s *Save) normalize() {
	if s.Inventory == nil {
		s.Inventory = activity.Inventory{}
	}
	ref, battling := s.Pet.Activity.Battle()
	switch {
	case !battling:
		s.Battle = nil
	case s.Battle == nil || s.Battle.ID != ref.BattleID:
		// The fight was lost with the process; let the pet go home.
		s.Pet = pet.Leave(s.Pet)
		s.Battle = nil
	}
}
