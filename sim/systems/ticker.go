package systems

import "github.com/dynamo-sim/dynamo/sim"

// Ticker fires at a fixed Period, independent of collision activity, so
// that sampling (trajectory snapshots, metrics) happens on a uniform
// time grid rather than an event grid. Grounded on
// original_source/src/dynamo/dynamo/systems/sysTicker.cpp.
type Ticker struct {
	NameStr string
	Period  float64
	OnTick  func(ctx *sim.Context, sched *sim.Scheduler)

	ctx        *sim.Context
	nextFireAt float64
}

func NewTicker(name string, period float64, onTick func(ctx *sim.Context, sched *sim.Scheduler)) *Ticker {
	return &Ticker{NameStr: name, Period: period, OnTick: onTick}
}

func (t *Ticker) Name() string { return t.NameStr }

func (t *Ticker) Initialise(ctx *sim.Context) {
	t.ctx = ctx
	t.nextFireAt = ctx.SystemTime + t.Period
}

// Dt is measured against the live SystemTime (see Thermostat.Dt for why)
// rather than a relative value decremented by the scheduler, since
// rebuildSystemEvents re-queries every system whenever any one fires.
func (t *Ticker) Dt() float64 { return t.nextFireAt - t.ctx.SystemTime }

func (t *Ticker) RunEvent(ctx *sim.Context, sched *sim.Scheduler) {
	t.nextFireAt = ctx.SystemTime + t.Period

	for i := 0; i < ctx.Store.N(); i++ {
		ctx.Dynamics.UpdateParticle(ctx.Store.Get(i), ctx.SystemTime)
	}

	if t.OnTick != nil {
		t.OnTick(ctx, sched)
	}
}

var _ sim.System = (*Ticker)(nil)
