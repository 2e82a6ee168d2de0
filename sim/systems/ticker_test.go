package systems_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dynamo-sim/dynamo/sim"
	"github.com/dynamo-sim/dynamo/sim/bc"
	"github.com/dynamo-sim/dynamo/sim/dynamics"
	"github.com/dynamo-sim/dynamo/sim/systems"
)

func TestTickerFiresAtFixedPeriod(t *testing.T) {
	rng := sim.NewPartitionedRNG(sim.NewSimulationKey(1)).ForSubsystem(sim.SubsystemThermostat)
	ctx := &sim.Context{Store: sim.NewStore(1), BC: bc.Rectangular{}, Dynamics: dynamics.NewNewtonian(rng)}

	ticks := 0
	tk := systems.NewTicker("clock", 2.0, func(ctx *sim.Context, sched *sim.Scheduler) { ticks++ })
	tk.Initialise(ctx)

	assert.InDelta(t, 2.0, tk.Dt(), 1e-9)

	tk.RunEvent(ctx, nil)
	assert.Equal(t, 1, ticks)
	assert.InDelta(t, 2.0, tk.Dt(), 1e-9) // Dt is relative to the (unmoved) ctx.SystemTime
}

// TestTickerDtTracksLiveContextClock reproduces the scheduler's
// rebuildSystemEvents behavior: advancing ctx.SystemTime out-of-band
// (as happens when a different System or Interaction fires first) must
// be reflected in Dt() without Ticker itself having fired.
func TestTickerDtTracksLiveContextClock(t *testing.T) {
	rng := sim.NewPartitionedRNG(sim.NewSimulationKey(1)).ForSubsystem(sim.SubsystemThermostat)
	ctx := &sim.Context{Store: sim.NewStore(1), BC: bc.Rectangular{}, Dynamics: dynamics.NewNewtonian(rng)}

	tk := systems.NewTicker("clock", 5.0, nil)
	tk.Initialise(ctx)
	assert.InDelta(t, 5.0, tk.Dt(), 1e-9)

	ctx.SystemTime += 3.0 // some unrelated event fired elsewhere
	assert.InDelta(t, 2.0, tk.Dt(), 1e-9)
}
