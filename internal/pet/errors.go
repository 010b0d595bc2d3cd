package pet

import (
	"errors"
	"fmt"
)

// Failure kinds. Match with errors.Is.
var (
	// ErrBusy means the pet's current activity blocks the request.
	ErrBusy = errors.New("activity in progress")
	// ErrInsufficientEnergy means the activity costs more energy than the pet has.
	ErrInsufficientEnergy = errors.New("insufficient energy")
	// ErrRequirement means a location, facility or stage requirement is unmet.
	ErrRequirement = errors.New("requirement not met")
	// ErrNothingToCancel means no cancellable activity is active.
	ErrNothingToCancel = errors.New("nothing to cancel")
	// ErrNoEffect means a care action would change nothing.
	ErrNoEffect = errors.New("no effect")
	// ErrInvalidInput means the request itself is malformed.
	ErrInvalidInput = errors.New("invalid input")
)

// Refusal is a rejected operation. Its message is meant for the player; Kind
// is one of the sentinel errors above.
type Refusal struct {
	Kind   error
	Reason string
}

func (r *Refusal) Error() string { return r.Reason }

func (r *Refusal) Unwrap() error { return r.Kind }

// Refuse builds a Refusal of the given kind.
func Refuse(kind error, format string, args ...any) error {
	return &Refusal{Kind: kind, Reason: fmt.Sprintf(format, args...)}
}

func invalidInput(format string, args ...any) error {
	return Refuse(ErrInvalidInput, format, args...)
}
