package bc

import (
	"math"

	"github.com/dynamo-sim/dynamo/sim"
)

// Periodic is a fully periodic box of the given dimensions, centred on the
// origin: positions wrap into [-L/2, L/2) on every axis and pair
// separations use the minimum-image convention.
type Periodic struct {
	Box sim.Vector // Lx, Ly, Lz
}

func wrapAxis(x, l float64) float64 {
	if l == 0 {
		return x
	}
	return x - l*math.Round(x/l)
}

func minImageAxis(d, l float64) float64 {
	if l == 0 {
		return d
	}
	return d - l*math.Round(d/l)
}

func (p Periodic) ApplyPos(pos *sim.Vector) {
	pos.X = wrapAxis(pos.X, p.Box.X)
	pos.Y = wrapAxis(pos.Y, p.Box.Y)
	pos.Z = wrapAxis(pos.Z, p.Box.Z)
}

func (p Periodic) ApplyPosVel(pos, vel *sim.Vector) {
	p.ApplyPos(pos)
	// Plain periodicity never touches velocity; only a sheared BC does.
}

func (p Periodic) Advance(dt float64) {}

func (p Periodic) Distance(p1, p2 *sim.Particle) sim.Vector {
	d := sim.Sub(p1.Position, p2.Position)
	return sim.NewVector(
		minImageAxis(d.X, p.Box.X),
		minImageAxis(d.Y, p.Box.Y),
		minImageAxis(d.Z, p.Box.Z),
	)
}

func (p Periodic) Displacement(p1, p2 *sim.Particle) (rij, vij sim.Vector) {
	return p.Distance(p1, p2), sim.Sub(p1.Velocity, p2.Velocity)
}

var _ sim.BC = Periodic{}
