package activity

import "petsim/internal/pet"

// TrainingCompleted is emitted when a session finishes on its own.
type TrainingCompleted struct {
	Gains   pet.BattleStats
	Summary string
}

func (TrainingCompleted) Type() string      { return pet.EventTrainingComplete }
func (TrainingCompleted) Emoji() string     { return pet.StatusEmojiTraining }
func (e TrainingCompleted) Message() string { return e.Summary }

// ExplorationCompleted is emitted when a trip finishes. The found items are
// handed to whoever keeps the inventory.
type ExplorationCompleted struct {
	LocationID string
	Items      []ItemDrop
	Summary    string
}

func (ExplorationCompleted) Type() string      { return pet.EventExploringComplete }
func (ExplorationCompleted) Emoji() string     { return pet.StatusEmojiExplore }
func (e ExplorationCompleted) Message() string { return e.Summary }
