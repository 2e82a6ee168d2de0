package sim

import (
	"errors"
	"fmt"
)

// Sentinel errors for the error taxonomy of spec.md §7, matched with
// errors.Is the way the teacher wraps context with fmt.Errorf("%w", ...).
var (
	// ErrEmptyFEL is returned when a None event reaches the top of the
	// FEL (spec.md §4.3, I4 / §7 "Empty FEL").
	ErrEmptyFEL = errors.New("future event list exhausted: a NONE event reached the top")
	// ErrNumericFailure covers NaN event times and +Inf dt on a
	// non-None event (spec.md §7 "Numeric failure").
	ErrNumericFailure = errors.New("numeric failure in event prediction")
	// ErrConfiguration covers malformed XML, missing attributes, and
	// unknown plugin types (spec.md §7 "Configuration error").
	ErrConfiguration = errors.New("configuration error")
)

// SimError is the structured diagnostic carried by fatal mid-run errors
// (spec.md §7: "event kind, participants, dt, interaction name").
type SimError struct {
	Err         error
	Kind        Kind
	OwnerID     int
	SecondaryID int
	Dt          float64
	PluginName  string
}

func (e *SimError) Error() string {
	return fmt.Sprintf("%v (kind=%s owner=%d secondary=%d dt=%g plugin=%q)",
		e.Err, e.Kind, e.OwnerID, e.SecondaryID, e.Dt, e.PluginName)
}

func (e *SimError) Unwrap() error { return e.Err }

// newNumericError builds a SimError wrapping ErrNumericFailure with event
// context, mirroring the M_throw() diagnostics scattered through
// original_source/.../scheduler.cpp.
func newNumericError(ev Event, ownerID int) error {
	return &SimError{
		Err:         ErrNumericFailure,
		Kind:        ev.Kind,
		OwnerID:     ownerID,
		SecondaryID: ev.SecondaryID,
		Dt:          ev.Dt,
		PluginName:  ev.PluginName,
	}
}
