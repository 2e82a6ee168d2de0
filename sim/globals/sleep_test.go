package globals_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dynamo-sim/dynamo/sim"
	"github.com/dynamo-sim/dynamo/sim/bc"
	"github.com/dynamo-sim/dynamo/sim/dynamics"
	"github.com/dynamo-sim/dynamo/sim/globals"
)

type allNeighbours struct{ n int }

func (a allNeighbours) Neighbours(pid int) []int {
	out := make([]int, 0, a.n-1)
	for i := 0; i < a.n; i++ {
		if i != pid {
			out = append(out, i)
		}
	}
	return out
}

func buildSleepCtx(n int) (*sim.Context, *sim.Scheduler) {
	rng := sim.NewPartitionedRNG(sim.NewSimulationKey(2))
	store := sim.NewStore(n)
	ctx := &sim.Context{Store: store, BC: bc.Rectangular{}, Dynamics: dynamics.NewNewtonian(rng.ForSubsystem(sim.SubsystemThermostat))}
	sched := sim.NewScheduler(ctx, allNeighbours{n: n}, sim.UniformCatalogue{}, nil, nil, nil)
	return ctx, sched
}

var downGravity = sim.NewVector(0, 0, -1)

func TestSleepGetEventSchedulesSleepForSlowSettlingParticle(t *testing.T) {
	ctx, _ := buildSleepCtx(1)
	p := ctx.Store.Get(0)
	// Slow, barely moving, and drifting in the direction of gravity: with
	// the last-snapshot baseline at zero (Initialise's default) this
	// satisfies both the velocity and position convergence tests as well
	// as the "moving with gravity" sign check.
	p.Velocity = sim.NewVector(0, 0, -0.005)

	s := globals.NewSleep("sleep", 0.01, 0.1, 1.0, downGravity, rand.New(rand.NewSource(1)))
	ev := s.GetEvent(ctx, p)

	assert.Equal(t, sim.KindGlobal, ev.Kind)
	assert.Equal(t, int(sim.Sleep), ev.SecondaryID)
}

func TestSleepGetEventNoneForFastParticle(t *testing.T) {
	ctx, _ := buildSleepCtx(1)
	p := ctx.Store.Get(0)
	p.Velocity = sim.NewVector(5, 0, 0)

	s := globals.NewSleep("sleep", 0.01, 0.1, 1.0, downGravity, rand.New(rand.NewSource(1)))
	ev := s.GetEvent(ctx, p)
	assert.Equal(t, sim.None, ev.Kind)
}

func TestSleepGetEventNoneForSlowParticleMovingAgainstGravity(t *testing.T) {
	ctx, _ := buildSleepCtx(1)
	p := ctx.Store.Get(0)
	// Slow enough by magnitude alone, but rising against gravity rather
	// than settling: the sign check must reject it.
	p.Velocity = sim.NewVector(0, 0, 0.005)

	s := globals.NewSleep("sleep", 0.01, 0.1, 1.0, downGravity, rand.New(rand.NewSource(1)))
	ev := s.GetEvent(ctx, p)
	assert.Equal(t, sim.None, ev.Kind)
}

func TestSleepRunEventPutsSlowParticleToSleep(t *testing.T) {
	ctx, sched := buildSleepCtx(2)
	p := ctx.Store.Get(0)
	p.Velocity = sim.NewVector(0, 0, -0.001)

	s := globals.NewSleep("sleep", 0.01, 0.1, 1.0, downGravity, rand.New(rand.NewSource(1)))
	s.RunEvent(ctx, sched, p, 0)

	assert.False(t, p.IsDynamic())
	assert.Equal(t, sim.NewVector(0, 0, 0), p.Velocity)
}

func TestSleepRunEventWakesNearFastNeighbour(t *testing.T) {
	ctx, sched := buildSleepCtx(2)
	asleep := ctx.Store.Get(0)
	asleep.State = 0 // already dormant
	fast := ctx.Store.Get(1)
	fast.Velocity = sim.NewVector(10, 0, 0)

	s := globals.NewSleep("sleep", 0.01, 0.1, 1.0, downGravity, rand.New(rand.NewSource(1)))
	s.RunEvent(ctx, sched, asleep, 0)

	assert.True(t, asleep.IsDynamic())
}

func TestSleepIsInteractionAlwaysTrue(t *testing.T) {
	s := globals.NewSleep("sleep", 0.01, 0.1, 1.0, downGravity, rand.New(rand.NewSource(1)))
	assert.True(t, s.IsInteraction(&sim.Particle{}))
}
