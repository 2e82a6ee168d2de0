// Package interactions provides sim.Interaction implementations:
// HardSphere (a single elastic/inelastic core) and SquareWell (a stepped
// attractive potential with a capture map). Grounded on
// original_source/src/dynamics/interactions/hardsphere.cpp.
package interactions

import "github.com/dynamo-sim/dynamo/sim"

// HardSphere is a uniform hard-sphere interaction applied to every pair it
// governs: a single CORE event at contact distance, resolved with
// restitution Elasticity (the original engine's CIHardSphere).
type HardSphere struct {
	NameStr    string
	Diameter   float64
	Elasticity float64
	d2         float64
}

// NewHardSphere builds a HardSphere interaction, precomputing diameter^2
// once since every prediction needs it.
func NewHardSphere(name string, diameter, elasticity float64) *HardSphere {
	return &HardSphere{NameStr: name, Diameter: diameter, Elasticity: elasticity, d2: diameter * diameter}
}

func (h *HardSphere) Name() string        { return h.NameStr }
func (h *HardSphere) MaxIntDist() float64 { return h.Diameter }

func (h *HardSphere) GetEvent(ctx *sim.Context, p1, p2 *sim.Particle) sim.Event {
	ctx.Dynamics.UpdateParticlePair(p1, p2, ctx.SystemTime)
	g := ctx.Dynamics.Geometry(p1, p2, ctx.BC)
	if dt, ok := ctx.Dynamics.SphereSphereInRoot(g, h.d2); ok {
		return sim.Event{Kind: sim.KindInteraction, Dt: dt}
	}
	return sim.NoEvent()
}

func (h *HardSphere) RunEvent(ctx *sim.Context, p1, p2 *sim.Particle, ev sim.Event) sim.PairEventData {
	return ctx.Dynamics.SmoothSpheresColl(p1, p2, ctx.BC, h.Elasticity, h.d2, sim.Core)
}

// ValidateState checks that the pair is not currently overlapping
// (hardsphere.cpp's checkOverlaps), returning 1 warning if so.
func (h *HardSphere) ValidateState(ctx *sim.Context, p1, p2 *sim.Particle) int {
	g := ctx.Dynamics.Geometry(p1, p2, ctx.BC)
	if g.R2 < h.d2 {
		return 1
	}
	return 0
}

// CaptureTest is a no-op for HardSphere: it has no capture map.
func (h *HardSphere) CaptureTest(ctx *sim.Context, p1, p2 *sim.Particle) int { return 0 }

var _ sim.Interaction = (*HardSphere)(nil)
