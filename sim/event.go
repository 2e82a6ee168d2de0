package sim

import (
	"fmt"
	"math"
)

// Kind tags what produced an Event and how the scheduler should dispatch
// it (spec.md §3, §4.3).
type Kind uint8

const (
	// None marks the absence of an event. A None reaching the top of
	// the FEL is fatal (spec.md §4.3, I4): the simulation has nothing
	// left to do.
	None Kind = iota
	// KindInteraction is a pair (particle-particle) event: hard-sphere
	// collision, stepped-well crossing, dumbbell impulse.
	KindInteraction
	// KindGlobal is a non-pair event with scheduler-visible neighbour
	// effects: cell transitions, sleep/wake state tests.
	KindGlobal
	// KindLocal is a single-particle event against a fixed geometric
	// feature: walls, floors.
	KindLocal
	// KindSystem is a system-wide event: thermostat kicks, ticker pulses.
	KindSystem
	// Virtual events refresh a PEL slot without applying an impulse
	// (e.g. NBHOOD_IN/OUT transitions of a capture map).
	Virtual
	// Recalculate forces a fullUpdate of its owner without executing
	// any physics itself.
	Recalculate

	// Sub-kinds of Interaction/Local/Global events, carried in the
	// Event's Kind field once the owning plugin specializes it
	// (spec.md §4.4).
	Cell
	Wall
	Core
	Bounce
	WellKEUp
	WellKEDown
	NeighbourhoodIn
	NeighbourhoodOut
	Sleep
	Wakeup
	Gaussian
)

func (k Kind) String() string {
	switch k {
	case None:
		return "NONE"
	case KindInteraction:
		return "INTERACTION"
	case KindGlobal:
		return "GLOBAL"
	case KindLocal:
		return "LOCAL"
	case KindSystem:
		return "SYSTEM"
	case Virtual:
		return "VIRTUAL"
	case Recalculate:
		return "RECALCULATE"
	case Cell:
		return "CELL"
	case Wall:
		return "WALL"
	case Core:
		return "CORE"
	case Bounce:
		return "BOUNCE"
	case WellKEUp:
		return "WELL_KEUP"
	case WellKEDown:
		return "WELL_KEDOWN"
	case NeighbourhoodIn:
		return "NBHOOD_IN"
	case NeighbourhoodOut:
		return "NBHOOD_OUT"
	case Sleep:
		return "SLEEP"
	case Wakeup:
		return "WAKEUP"
	case Gaussian:
		return "GAUSSIAN"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// Event is a tagged record describing a future (or just-fired) event
// (spec.md §3). Events are values: they have no identity beyond the PEL
// slot that holds them and are freely overwritten.
type Event struct {
	Kind Kind

	// Dt is time-to-event measured from the FEL's current origin
	// (spec.md §3). Negative values are tolerated at the FEL boundary
	// (rounding drift); +Inf marks "no event"; NaN is always an error.
	Dt float64

	// OwnerID is the particle (or plugin, for System events) that
	// scheduled this event.
	OwnerID int

	// SecondaryID is the second participant of a pair (Interaction)
	// event, or a sub-identifier (local id, global id, system id)
	// for non-pair events.
	SecondaryID int

	// CollisionCounter snapshots the secondary particle's EventCount
	// at prediction time; lazy deletion discards the event if this no
	// longer matches (spec.md §4.3, I3).
	CollisionCounter uint64

	// PluginName identifies which Interaction/Global/Local/System
	// produced this event, for diagnostics.
	PluginName string
}

// NoEvent is the canonical "nothing predicted" event.
func NoEvent() Event { return Event{Kind: None, Dt: math.Inf(1)} }
