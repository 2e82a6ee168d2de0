package interactions_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dynamo-sim/dynamo/sim"
	"github.com/dynamo-sim/dynamo/sim/bc"
	"github.com/dynamo-sim/dynamo/sim/dynamics"
	"github.com/dynamo-sim/dynamo/sim/interactions"
)

func newtonianCtx() (*sim.Context, *dynamics.Newtonian) {
	rng := sim.NewPartitionedRNG(sim.NewSimulationKey(1)).ForSubsystem(sim.SubsystemThermostat)
	nd := dynamics.NewNewtonian(rng)
	ctx := &sim.Context{Store: sim.NewStore(2), BC: bc.Rectangular{}, Dynamics: nd}
	return ctx, nd
}

func TestHardSphereGetEventPredictsApproachingPair(t *testing.T) {
	ctx, _ := newtonianCtx()
	p1, p2 := ctx.Store.Get(0), ctx.Store.Get(1)
	p1.Position, p1.Velocity = sim.NewVector(0, 0, 0), sim.NewVector(1, 0, 0)
	p2.Position, p2.Velocity = sim.NewVector(5, 0, 0), sim.NewVector(0, 0, 0)

	h := interactions.NewHardSphere("core", 1.0, 1.0)
	ev := h.GetEvent(ctx, p1, p2)

	assert.Equal(t, sim.KindInteraction, ev.Kind)
	assert.InDelta(t, 4.0, ev.Dt, 1e-9) // gap closes from 5 to core distance 1
}

func TestHardSphereGetEventNoneForRecedingPair(t *testing.T) {
	ctx, _ := newtonianCtx()
	p1, p2 := ctx.Store.Get(0), ctx.Store.Get(1)
	p1.Position, p1.Velocity = sim.NewVector(0, 0, 0), sim.NewVector(-1, 0, 0)
	p2.Position, p2.Velocity = sim.NewVector(5, 0, 0), sim.NewVector(0, 0, 0)

	h := interactions.NewHardSphere("core", 1.0, 1.0)
	ev := h.GetEvent(ctx, p1, p2)
	assert.Equal(t, sim.None, ev.Kind)
}

func TestHardSphereRunEventElasticSwap(t *testing.T) {
	ctx, _ := newtonianCtx()
	p1, p2 := ctx.Store.Get(0), ctx.Store.Get(1)
	p1.Position, p1.Velocity = sim.NewVector(0, 0, 0), sim.NewVector(1, 0, 0)
	p2.Position, p2.Velocity = sim.NewVector(1, 0, 0), sim.NewVector(-1, 0, 0)

	h := interactions.NewHardSphere("core", 1.0, 1.0)
	data := h.RunEvent(ctx, p1, p2, sim.Event{Kind: sim.KindInteraction})

	assert.InDelta(t, -1.0, p1.Velocity.X, 1e-9)
	assert.InDelta(t, 1.0, p2.Velocity.X, 1e-9)
	assert.InDelta(t, 0.0, data.DeltaKE, 1e-9)
}

func TestHardSphereValidateStateFlagsOverlap(t *testing.T) {
	ctx, _ := newtonianCtx()
	p1, p2 := ctx.Store.Get(0), ctx.Store.Get(1)
	h := interactions.NewHardSphere("core", 1.0, 1.0)

	p1.Position, p2.Position = sim.NewVector(0, 0, 0), sim.NewVector(0.5, 0, 0)
	assert.Equal(t, 1, h.ValidateState(ctx, p1, p2))

	p2.Position = sim.NewVector(2, 0, 0)
	assert.Equal(t, 0, h.ValidateState(ctx, p1, p2))
}

func TestHardSphereMaxIntDistIsDiameter(t *testing.T) {
	h := interactions.NewHardSphere("core", 2.5, 1.0)
	assert.Equal(t, 2.5, h.MaxIntDist())
}

func TestHardSphereGetEventGraze(t *testing.T) {
	// Two particles on parallel tracks, offset exactly at the tangent
	// distance, closing on the perpendicular axis: the discriminant is
	// exactly zero, a degenerate but valid single root.
	ctx, _ := newtonianCtx()
	p1, p2 := ctx.Store.Get(0), ctx.Store.Get(1)
	p1.Position, p1.Velocity = sim.NewVector(0, 0, 0), sim.NewVector(0, 1, 0)
	p2.Position, p2.Velocity = sim.NewVector(1, 5, 0), sim.NewVector(0, 0, 0)

	h := interactions.NewHardSphere("core", 1.0, 1.0)
	ev := h.GetEvent(ctx, p1, p2)
	if ev.Kind == sim.KindInteraction {
		assert.False(t, math.IsNaN(ev.Dt))
	}
}
