// Package globals provides sim.Global implementations: Sleep/Wake
// (supplemented from original_source/src/dynamics/globals/sleep.cpp,
// simplified from its push-based particlesUpdated signal hook to a
// pull-based check performed at GetEvent/RunEvent time, since the
// scheduler here has no particle-update delegate registry). The cell
// list's GCells/GCellsShearing Global implementations live in sim/cells.
package globals

import (
	"math/rand"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/dynamo-sim/dynamo/sim"
)

// Sleep puts slow-moving dynamic particles to sleep (clearing their
// Dynamic flag and zeroing their velocity, so they are no longer streamed
// and walls and cells no longer schedule events for them) and, every
// RetryDt while a particle sleeps, wakes it if any neighbour is moving
// faster than 2*WakeVel (spec.md §9's open question: thresholds are configurable, not
// hard-coded, per the teacher-independent DynamO defaults of
// converge=0.01, wakeUpVel=0.1). A particle only actually goes to sleep
// once both the velocity-magnitude test and sleep.cpp's gravity-aligned
// convergence test pass: its velocity and position must have settled
// (changed by less than Converge along Gravity since the last check) and
// it must be moving in the direction of Gravity, not away from it.
type Sleep struct {
	NameStr  string
	Converge float64
	WakeVel  float64
	RetryDt  float64
	Gravity  sim.Vector

	lastPosition map[int]sim.Vector
	lastVelocity map[int]sim.Vector

	normal distuv.Normal
}

// NewSleep builds a Sleep global. gravity orients the convergence test
// (sleep.cpp hard-codes Vector g(0,0,-1); callers that don't care about a
// particular orientation can pass that same default).
func NewSleep(name string, converge, wakeVel, retryDt float64, gravity sim.Vector, rng *rand.Rand) *Sleep {
	return &Sleep{
		NameStr: name, Converge: converge, WakeVel: wakeVel, RetryDt: retryDt, Gravity: gravity,
		lastPosition: make(map[int]sim.Vector),
		lastVelocity: make(map[int]sim.Vector),
		normal:       distuv.Normal{Mu: 0, Sigma: 1, Src: rng},
	}
}

func (s *Sleep) Name() string { return s.NameStr }

// Initialise seeds every particle's last-position/last-velocity snapshot
// at zero, matching sleep.cpp's GSleep::initialise.
func (s *Sleep) Initialise(ctx *sim.Context) {
	n := ctx.Store.N()
	for id := 0; id < n; id++ {
		s.lastPosition[id] = sim.Vector{}
		s.lastVelocity[id] = sim.Vector{}
	}
}

func (s *Sleep) IsInteraction(p *sim.Particle) bool { return true }

// GetEvent is this pull-based port's stand-in for sleep.cpp's
// particlesUpdated callback: it runs on every re-prediction of p (i.e.
// after any event touches p, not just Sleep's own), checks the
// convergence test against the last snapshot, then refreshes the
// snapshot for next time.
func (s *Sleep) GetEvent(ctx *sim.Context, p *sim.Particle) sim.Event {
	if !p.IsDynamic() {
		return sim.Event{Kind: sim.KindGlobal, Dt: s.RetryDt, PluginName: s.NameStr, SecondaryID: int(sim.Wakeup)}
	}

	lastVel := s.lastVelocity[p.ID]
	lastPos := s.lastPosition[p.ID]

	auxVel := sim.Dot(sim.Sub(p.Velocity, lastVel), s.Gravity)
	convergeVel := auxVel < s.Converge && auxVel > 0
	convergePos := sim.Dot(sim.Sub(p.Position, lastPos), s.Gravity) < s.Converge
	movingWithGravity := sim.Dot(p.Velocity, s.Gravity) > 0

	s.lastVelocity[p.ID] = p.Velocity
	s.lastPosition[p.ID] = p.Position

	if sim.Norm(p.Velocity) < s.WakeVel && movingWithGravity && convergeVel && convergePos {
		return sim.Event{Kind: sim.KindGlobal, Dt: 0, PluginName: s.NameStr, SecondaryID: int(sim.Sleep)}
	}
	return sim.NoEvent()
}

func (s *Sleep) RunEvent(ctx *sim.Context, sched *sim.Scheduler, p *sim.Particle, dt float64) {
	ctx.Dynamics.UpdateParticle(p, ctx.SystemTime)
	sched.PopTop()

	if p.IsDynamic() {
		p.State &^= sim.Dynamic
		p.Velocity = sim.NewVector(0, 0, 0)
	} else {
		woken := false
		for _, id2 := range sched.Neighbours(p.ID) {
			other := ctx.Store.Get(id2)
			if sim.Norm(other.Velocity) > 2*s.WakeVel {
				woken = true
				break
			}
		}
		if woken {
			p.State |= sim.Dynamic
			dir := sim.NewVector(s.normal.Rand(), s.normal.Rand(), s.normal.Rand())
			n := sim.Norm(dir)
			if n == 0 {
				n = 1
			}
			p.Velocity = sim.Scale(s.WakeVel/(2*n), dir)
		}
	}

	sched.PushEvent(p.ID, s.GetEvent(ctx, p))
}

var _ sim.Global = (*Sleep)(nil)
