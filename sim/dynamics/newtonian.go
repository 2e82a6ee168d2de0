// Package dynamics provides sim.Dynamics (Liouvillean) implementations:
// the pure-math kernel of ballistic propagation, collision-time root
// finding, and impulse resolution. Grounded on
// original_source/src/dynamics/liouvillean/NewtonL.cpp.
package dynamics

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/dynamo-sim/dynamo/sim"
)

// Newtonian is the straight-line-streaming Liouvillean: particles move
// ballistically between events (spec.md §4.1), the original engine's CLNewton.
// It carries no shared mutable state of its own; Stream is a no-op since
// individual particles catch up lazily via UpdateParticle.
type Newtonian struct {
	normal distuv.Normal
}

// NewNewtonian builds a Newtonian Liouvillean whose thermostat-facing
// Gaussian resampling draws from rng (typically
// sim.PartitionedRNG.ForSubsystem(sim.SubsystemThermostat)).
func NewNewtonian(rng *rand.Rand) *Newtonian {
	return &Newtonian{normal: distuv.Normal{Mu: 0, Sigma: 1, Src: rng}}
}

func (n *Newtonian) UpdateParticle(p *sim.Particle, now float64) {
	dt := now - p.PeculiarTime
	if p.IsDynamic() {
		p.Position = sim.Add(p.Position, sim.Scale(dt, p.Velocity))
	}
	p.PeculiarTime = now
}

func (n *Newtonian) UpdateParticlePair(p1, p2 *sim.Particle, now float64) {
	n.UpdateParticle(p1, now)
	n.UpdateParticle(p2, now)
}

func (n *Newtonian) Geometry(p1, p2 *sim.Particle, bc sim.BC) sim.CollisionGeometry {
	rij, vij := bc.Displacement(p1, p2)
	return sim.CollisionGeometry{
		Rij:   rij,
		Vij:   vij,
		R2:    sim.Dot(rij, rij),
		V2:    sim.Dot(vij, vij),
		RVDot: sim.Dot(rij, vij),
	}
}

// SphereSphereInRoot solves the approaching-contact quadratic using the
// numerically stable form from NewtonL.cpp's SphereSphereInRoot: only
// closing pairs (rvdot < 0) with a non-negative discriminant have a root.
func (n *Newtonian) SphereSphereInRoot(g sim.CollisionGeometry, d2 float64) (float64, bool) {
	if g.RVDot >= 0 {
		return 0, false
	}
	arg := g.RVDot*g.RVDot - g.V2*(g.R2-d2)
	if arg < 0 {
		return 0, false
	}
	return (d2 - g.R2) / (g.RVDot - math.Sqrt(arg)), true
}

// SphereSphereOutRoot solves the exit root for an already-overlapping
// pair (e.g. leaving a square-well's outer shell).
func (n *Newtonian) SphereSphereOutRoot(g sim.CollisionGeometry, d2 float64) float64 {
	arg := g.RVDot*g.RVDot - g.V2*(g.R2-d2)
	return (math.Sqrt(arg) - g.RVDot) / g.V2
}

func kineticEnergy(p *sim.Particle) float64 {
	return 0.5 * p.Mass * sim.Norm2(p.Velocity)
}

// SmoothSpheresColl applies a hard-sphere impulse of restitution e along
// the line of centres (NewtonL.cpp's SmoothSpheresColl).
func (n *Newtonian) SmoothSpheresColl(p1, p2 *sim.Particle, bc sim.BC, e, d2 float64, kind sim.Kind) sim.PairEventData {
	rij, vij := bc.Displacement(p1, p2)
	r2 := sim.Dot(rij, rij)
	rvdot := sim.Dot(rij, vij)
	mu := p1.Mass * p2.Mass / (p1.Mass + p2.Mass)

	dP := sim.Scale((1+e)*mu*rvdot/r2, rij)

	keBefore := kineticEnergy(p1) + kineticEnergy(p2)
	p1.Velocity = sim.Sub(p1.Velocity, sim.Scale(1/p1.Mass, dP))
	p2.Velocity = sim.Add(p2.Velocity, sim.Scale(1/p2.Mass, dP))
	keAfter := kineticEnergy(p1) + kineticEnergy(p2)

	return sim.PairEventData{
		Particle1ID: p1.ID, Particle2ID: p2.ID,
		DeltaKE: keAfter - keBefore, DeltaP: dP, Kind: kind,
	}
}

// WellEvent applies a stepped-potential impulse (NewtonL.cpp's
// SphereWellEvent): an attempted KE change of deltaKE across a well wall,
// falling back to an elastic BOUNCE when the particle lacks the energy to
// cross (deltaKE < 0 and the discriminant goes negative).
func (n *Newtonian) WellEvent(p1, p2 *sim.Particle, bc sim.BC, deltaKE, mu float64) sim.PairEventData {
	rij, vij := bc.Displacement(p1, p2)
	r2 := sim.Dot(rij, rij)
	rvdot := sim.Dot(rij, vij)
	sqrtArg := rvdot*rvdot + 2*r2*deltaKE/mu

	var kind sim.Kind
	var dP sim.Vector
	deltaU := -deltaKE
	if deltaKE < 0 && sqrtArg < 0 {
		kind = sim.Bounce
		dP = sim.Scale(2*mu*rvdot/r2, rij)
		deltaU = 0
	} else {
		if deltaKE < 0 {
			kind = sim.WellKEDown
		} else {
			kind = sim.WellKEUp
		}
		var factor float64
		if rvdot < 0 {
			factor = 2 * deltaKE / (math.Sqrt(sqrtArg) - rvdot)
		} else {
			factor = -2 * deltaKE / (rvdot + math.Sqrt(sqrtArg))
		}
		dP = sim.Scale(factor, rij)
	}

	keBefore := kineticEnergy(p1) + kineticEnergy(p2)
	p1.Velocity = sim.Sub(p1.Velocity, sim.Scale(1/p1.Mass, dP))
	p2.Velocity = sim.Add(p2.Velocity, sim.Scale(1/p2.Mass, dP))
	keAfter := kineticEnergy(p1) + kineticEnergy(p2)

	return sim.PairEventData{
		Particle1ID: p1.ID, Particle2ID: p2.ID,
		DeltaKE: keAfter - keBefore, DeltaP: dP, DeltaU: deltaU, Kind: kind,
	}
}

func (n *Newtonian) WallCollision(p *sim.Particle, bc sim.BC, wallPoint, wallNormal sim.Vector) float64 {
	pos, vel := p.Position, p.Velocity
	bc.ApplyPosVel(&pos, &vel)
	rvdot := sim.Dot(vel, wallNormal)
	if rvdot >= 0 {
		return math.Inf(1)
	}
	rij := sim.Sub(pos, wallPoint)
	return -(sim.Dot(rij, wallNormal) / rvdot)
}

func (n *Newtonian) RunWallCollision(p *sim.Particle, wallNormal sim.Vector, e float64) sim.ParticleEventData {
	keBefore := kineticEnergy(p)
	p.Velocity = sim.Sub(p.Velocity, sim.Scale((1+e)*sim.Dot(wallNormal, p.Velocity), wallNormal))
	keAfter := kineticEnergy(p)
	return sim.ParticleEventData{ParticleID: p.ID, DeltaKE: keAfter - keBefore, Kind: sim.Wall}
}

func component(v sim.Vector, axis int) float64 {
	switch axis {
	case 0:
		return v.X
	case 1:
		return v.Y
	default:
		return v.Z
	}
}

func cellAxisDt(rpos, vel, width sim.Vector, axis int) float64 {
	r, v, w := component(rpos, axis), component(vel, axis), component(width, axis)
	if v < 0 {
		return -r / v
	}
	return (w - r) / v
}

func (n *Newtonian) CellCollision2(p *sim.Particle, bc sim.BC, origin, width sim.Vector) float64 {
	dt, _ := n.CellCollision3(p, bc, origin, width)
	return dt
}

func (n *Newtonian) CellCollision3(p *sim.Particle, bc sim.BC, origin, width sim.Vector) (float64, int) {
	rpos := sim.Sub(p.Position, origin)
	vel := p.Velocity
	bc.ApplyPosVel(&rpos, &vel)

	best := cellAxisDt(rpos, vel, width, 0)
	bestAxis := 0
	for axis := 1; axis < 3; axis++ {
		dt := cellAxisDt(rpos, vel, width, axis)
		if dt < best {
			best = dt
			bestAxis = axis
		}
	}
	return best, bestAxis
}

// Stream is a no-op: plain Newtonian streaming carries no shared state
// that drifts with system time (contrast a sheared-box Liouvillean, which
// would use this hook).
func (n *Newtonian) Stream(dt float64) {}

// RandomGaussianEvent resamples p's velocity component-wise from
// N(0, sqrtTemp^2/mass), the Andersen thermostat kick (NewtonL.cpp's
// randomGaussianEvent).
func (n *Newtonian) RandomGaussianEvent(p *sim.Particle, now float64, sqrtTemp float64) sim.ParticleEventData {
	n.UpdateParticle(p, now)
	keBefore := kineticEnergy(p)
	factor := sqrtTemp / math.Sqrt(p.Mass)
	p.Velocity = sim.NewVector(n.normal.Rand()*factor, n.normal.Rand()*factor, n.normal.Rand()*factor)
	keAfter := kineticEnergy(p)
	return sim.ParticleEventData{ParticleID: p.ID, DeltaKE: keAfter - keBefore, Kind: sim.Gaussian}
}

var _ sim.Dynamics = (*Newtonian)(nil)
