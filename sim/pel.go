package sim

import "math"

// PEL is a per-particle event list (spec.md §3). This is the
// "single-slot" specialization described in spec.md §4.3: it stores only
// the single soonest event for its owner, which is sufficient for a
// scheduler that recomputes predictions on demand rather than maintaining
// a full per-particle heap. Grounded on the original engine's
// PELSingleEvent (original_source/.../singleeventPEL.hpp): Push keeps the
// minimum-dt event, Pop marks the slot Recalculate rather than clearing
// it outright (so a stale read before the next addEvents pass is visibly
// a "needs rebuild" marker, not a silent NoEvent).
type PEL struct {
	event Event
}

// NewPEL returns an empty PEL.
func NewPEL() *PEL {
	p := &PEL{}
	p.Clear()
	return p
}

// Top returns the soonest event held by this PEL.
func (p *PEL) Top() Event { return p.event }

// Empty reports whether the PEL holds no event.
func (p *PEL) Empty() bool { return p.event.Kind == None }

// Clear resets the PEL to hold no event.
func (p *PEL) Clear() { p.event = Event{Kind: None, Dt: math.Inf(1)} }

// Pop marks the PEL as needing recalculation, matching the original
// engine's behaviour of never leaving a PEL instantaneously empty at the
// top of the FEL (spec.md §4.3 dispatch table treats RECALCULATE as
// "triggers fullUpdate of owner").
func (p *PEL) Pop() {
	if p.Empty() {
		return
	}
	p.event.Kind = Recalculate
}

// Push inserts an event, keeping only the earliest-dt one (the
// "single-slot" invariant).
func (p *PEL) Push(e Event) {
	if e.Dt < p.event.Dt {
		p.event = e
	}
}

// Stream subtracts dt from the stored event's time, keeping its dt
// measured relative to the FEL's moving origin (spec.md §3 invariant).
func (p *PEL) Stream(dt float64) {
	if p.event.Kind != None {
		p.event.Dt -= dt
	}
}
