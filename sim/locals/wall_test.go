package locals_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dynamo-sim/dynamo/sim"
	"github.com/dynamo-sim/dynamo/sim/bc"
	"github.com/dynamo-sim/dynamo/sim/dynamics"
	"github.com/dynamo-sim/dynamo/sim/locals"
)

func wallCtx() *sim.Context {
	rng := sim.NewPartitionedRNG(sim.NewSimulationKey(1)).ForSubsystem(sim.SubsystemThermostat)
	return &sim.Context{Store: sim.NewStore(1), BC: bc.Rectangular{}, Dynamics: dynamics.NewNewtonian(rng)}
}

func TestWallGetEventPredictsImpact(t *testing.T) {
	ctx := wallCtx()
	p := ctx.Store.Get(0)
	p.Position, p.Velocity = sim.NewVector(0, 0, 0), sim.NewVector(1, 0, 0)

	w := locals.NewWall("east", sim.NewVector(5, 0, 0), sim.NewVector(-1, 0, 0), 1.0)
	ev := w.GetEvent(ctx, p)

	assert.Equal(t, sim.KindLocal, ev.Kind)
	assert.InDelta(t, 5.0, ev.Dt, 1e-9)
}

func TestWallRunEventReflectsOffNormal(t *testing.T) {
	ctx := wallCtx()
	p := ctx.Store.Get(0)
	p.Velocity = sim.NewVector(1, 0, 0)
	p.Mass = 1

	w := locals.NewWall("east", sim.NewVector(5, 0, 0), sim.NewVector(-1, 0, 0), 1.0)
	w.RunEvent(ctx, p, sim.Event{})

	assert.InDelta(t, -1.0, p.Velocity.X, 1e-9)
}

func TestWallValidateStateFlagsPenetration(t *testing.T) {
	ctx := wallCtx()
	w := locals.NewWall("east", sim.NewVector(5, 0, 0), sim.NewVector(-1, 0, 0), 1.0)

	inside := &sim.Particle{Position: sim.NewVector(6, 0, 0)}
	assert.Equal(t, 1, w.ValidateState(ctx, inside))

	outside := &sim.Particle{Position: sim.NewVector(4, 0, 0)}
	assert.Equal(t, 0, w.ValidateState(ctx, outside))
}

func TestWallIsInteractionOnlyForDynamicParticles(t *testing.T) {
	w := locals.NewWall("east", sim.NewVector(0, 0, 0), sim.NewVector(1, 0, 0), 1.0)
	dynamicP := &sim.Particle{State: sim.Dynamic}
	asleep := &sim.Particle{State: 0}

	assert.True(t, w.IsInteraction(dynamicP))
	assert.False(t, w.IsInteraction(asleep))
}
