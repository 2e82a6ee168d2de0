package systems_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dynamo-sim/dynamo/sim"
	"github.com/dynamo-sim/dynamo/sim/bc"
	"github.com/dynamo-sim/dynamo/sim/dynamics"
	"github.com/dynamo-sim/dynamo/sim/systems"
)

func buildThermostatCtx(n int) (*sim.Context, *sim.Scheduler) {
	rng := sim.NewPartitionedRNG(sim.NewSimulationKey(4))
	store := sim.NewStore(n)
	ctx := &sim.Context{Store: store, BC: bc.Rectangular{}, Dynamics: dynamics.NewNewtonian(rng.ForSubsystem(sim.SubsystemThermostat))}
	sched := sim.NewScheduler(ctx, noopNeighbours{}, sim.UniformCatalogue{}, nil, nil, nil)
	return ctx, sched
}

type noopNeighbours struct{}

func (noopNeighbours) Neighbours(pid int) []int { return nil }

func TestThermostatInitialiseSchedulesFirstKick(t *testing.T) {
	ctx, _ := buildThermostatCtx(5)
	th := systems.NewThermostat("ghost", 1.0, 1.0, false, 0.05, 100, rand.New(rand.NewSource(1)))

	th.Initialise(ctx)
	assert.Greater(t, th.Dt(), 0.0)
}

func TestThermostatRunEventResamplesOneParticle(t *testing.T) {
	ctx, sched := buildThermostatCtx(3)
	for i := 0; i < 3; i++ {
		ctx.Store.Get(i).Velocity = sim.NewVector(0, 0, 0)
	}

	th := systems.NewThermostat("ghost", 2.0, 1.0, false, 0.05, 100, rand.New(rand.NewSource(7)))
	th.Initialise(ctx)
	th.RunEvent(ctx, sched)

	changed := 0
	for i := 0; i < 3; i++ {
		if sim.Norm(ctx.Store.Get(i).Velocity) > 1e-12 {
			changed++
		}
	}
	assert.Equal(t, 1, changed)
}

// TestThermostatDtTracksLiveContextClock mirrors the Ticker test: a
// captured *sim.Context pointer means Dt() always reflects the live
// clock even when some unrelated event advanced it.
func TestThermostatDtTracksLiveContextClock(t *testing.T) {
	ctx, _ := buildThermostatCtx(2)
	th := systems.NewThermostat("ghost", 1.0, 1.0, false, 0.05, 100, rand.New(rand.NewSource(3)))
	th.Initialise(ctx)

	before := th.Dt()
	ctx.SystemTime += 1.5
	after := th.Dt()

	assert.InDelta(t, before-1.5, after, 1e-9)
}

func TestThermostatAutoTuneAdjustsMeanFreeTime(t *testing.T) {
	ctx, sched := buildThermostatCtx(4)
	th := systems.NewThermostat("ghost", 1.0, 1.0, true, 0.05, 2, rand.New(rand.NewSource(5)))
	th.Initialise(ctx)

	// Fire enough kicks to cross SetEvery and trigger an auto-tune pass;
	// this must not panic and must keep scheduling positive Dt values.
	for i := 0; i < 10; i++ {
		th.RunEvent(ctx, sched)
		assert.Greater(t, th.Dt(), 0.0)
	}
}
