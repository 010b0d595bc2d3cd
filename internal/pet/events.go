package pet

import "fmt"

// Event type constants
const (
	EventStageChanged      = "stage_changed"
	EventPoopAppeared      = "poop_appeared"
	EventWokeUp            = "woke_up"
	EventCareLifeDepleted  = "care_life_depleted"
	EventTrainingComplete  = "training_complete"
	EventExploringComplete = "exploring_complete"
)

// Event is a notification produced while processing a tick or an action.
// The core never consumes its own events; they are for the UI layer.
type Event interface {
	Type() string
	Emoji() string
	Message() string
}

// StageChanged is emitted on every substage or stage transition.
type StageChanged struct {
	From     GrowthStage
	To       GrowthStage
	Substage int
	AgeTicks int64
}

func (StageChanged) Type() string  { return EventStageChanged }
func (StageChanged) Emoji() string { return "✨" }

func (e StageChanged) Message() string {
	if e.From != e.To {
		return fmt.Sprintf("grew into a %s!", e.To.DisplayName())
	}
	return fmt.Sprintf("is growing (%s %d)", e.To.DisplayName(), e.Substage+1)
}

// PoopAppeared is emitted when the poop timer fires.
type PoopAppeared struct {
	Count int
}

func (PoopAppeared) Type() string  { return EventPoopAppeared }
func (PoopAppeared) Emoji() string { return StatusEmojiPoop }

func (e PoopAppeared) Message() string {
	return fmt.Sprintf("made a mess (%d to clean)", e.Count)
}

// WokeUp is emitted when a sleeping pet wakes on its own.
type WokeUp struct {
	SleptTicks int64
}

func (WokeUp) Type() string  { return EventWokeUp }
func (WokeUp) Emoji() string { return "🌅" }

func (e WokeUp) Message() string {
	return fmt.Sprintf("woke up after %d ticks of sleep", e.SleptTicks)
}

// CareLifeDepleted is emitted on the tick care-life first reaches zero.
type CareLifeDepleted struct{}

func (CareLifeDepleted) Type() string    { return EventCareLifeDepleted }
func (CareLifeDepleted) Emoji() string   { return StatusEmojiSick }
func (CareLifeDepleted) Message() string { return "has been neglected for too long" }
