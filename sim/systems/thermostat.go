// Package systems provides sim.System implementations: Thermostat (the
// Andersen "ghost particle" thermostat, grounded on
// original_source/src/dynamics/systems/ghost.cpp) and Ticker (a periodic
// sampling pulse, grounded on
// original_source/src/dynamo/dynamo/systems/sysTicker.cpp).
package systems

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/dynamo-sim/dynamo/sim"
)

// Thermostat resamples a uniformly-random particle's velocity from a
// Maxwell distribution at Temperature at exponentially-distributed
// intervals (a Poisson collision process with the wider system), so it
// does not depend on spatial structure the way a pairwise thermostat
// would. With AutoTune set, once more than SetEvery of its own firings
// have passed since the last retune, the mean free time is multiplied by
// firings/(scheduler events since the last retune * SetPoint), moving the
// thermostat's share of scheduler events toward SetPoint, and both counts
// restart (ghost.cpp's tune/setPoint/setFrequency).
type Thermostat struct {
	NameStr     string
	Temperature float64
	AutoTune    bool
	SetPoint    float64 // target fraction of scheduler events this system should own
	SetEvery    uint64  // how many of this system's own firings between retunes

	sqrtTemp     float64
	meanFreeTime float64
	exponential  distuv.Exponential
	uniform      *rand.Rand

	ctx             *sim.Context
	nextFireAt      float64
	eventCount      uint64
	lastGlobalCount uint64
}

// NewThermostat builds a Thermostat targeting Temperature with a mean
// collision interval of 1/collisionRate per particle.
func NewThermostat(name string, temperature, collisionRate float64, autoTune bool, setPoint float64, setEvery uint64, rng *rand.Rand) *Thermostat {
	t := &Thermostat{
		NameStr: name, Temperature: temperature, AutoTune: autoTune,
		SetPoint: setPoint, SetEvery: setEvery,
		meanFreeTime: 1 / collisionRate,
		uniform:      rng,
	}
	t.exponential = distuv.Exponential{Rate: 1 / t.meanFreeTime, Src: rng}
	return t
}

func (t *Thermostat) Name() string { return t.NameStr }

func (t *Thermostat) Initialise(ctx *sim.Context) {
	t.ctx = ctx
	if n := ctx.Store.N(); n > 0 {
		t.meanFreeTime /= float64(n)
		t.exponential.Rate = 1 / t.meanFreeTime
	}
	t.sqrtTemp = math.Sqrt(t.Temperature)
	t.nextFireAt = ctx.SystemTime + t.exponential.Rand()
}

// Dt reports time-to-fire measured from the live SystemTime rather than
// a cached relative value, since rebuildSystemEvents re-queries every
// system's Dt whenever any one of them fires (spec.md §4.5); ctx is a
// shared pointer so t.ctx.SystemTime always reflects the current clock.
func (t *Thermostat) Dt() float64 { return t.nextFireAt - t.ctx.SystemTime }

func (t *Thermostat) RunEvent(ctx *sim.Context, sched *sim.Scheduler) {
	t.eventCount++
	if t.AutoTune && t.eventCount > t.SetEvery {
		observed := sched.EventsProcessed - t.lastGlobalCount
		if observed > 0 {
			t.meanFreeTime *= float64(t.eventCount) / (float64(observed) * t.SetPoint)
			t.exponential.Rate = 1 / t.meanFreeTime
		}
		t.lastGlobalCount = sched.EventsProcessed
		t.eventCount = 0
	}

	n := ctx.Store.N()
	idx := t.uniform.Intn(n)
	p := ctx.Store.Get(idx)

	ctx.Dynamics.RandomGaussianEvent(p, ctx.SystemTime, t.sqrtTemp)
	sched.FullUpdate(p)

	t.nextFireAt = ctx.SystemTime + t.exponential.Rand()
}

var _ sim.System = (*Thermostat)(nil)
