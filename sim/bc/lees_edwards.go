package bc

import (
	"math"

	"github.com/dynamo-sim/dynamo/sim"
)

// LeesEdwards is a sheared periodic box (spec.md §9 "Lees-Edwards"): the
// top and bottom y-images slide horizontally at rate ShearRate. A particle
// crossing the y boundary has its x position shifted by the accumulated
// shear Offset and its x velocity shifted by ShearRate*Box.Y, the
// signature test of spec.md §8 scenario 6.
//
// Offset is mutable state advanced by Advance(dt); LeesEdwards must
// therefore be used as a pointer (*LeesEdwards), never copied.
type LeesEdwards struct {
	Box        sim.Vector
	ShearRate  float64
	Offset     float64 // accumulated shear displacement along x, mod Box.X
}

// NewLeesEdwards builds a sheared box starting with zero accumulated
// offset (the initial configuration is unsheared).
func NewLeesEdwards(box sim.Vector, shearRate float64) *LeesEdwards {
	return &LeesEdwards{Box: box, ShearRate: shearRate}
}

func (le *LeesEdwards) Advance(dt float64) {
	le.Offset = wrapAxis(le.Offset+le.ShearRate*le.Box.Y*dt, le.Box.X)
}

func (le *LeesEdwards) ApplyPos(pos *sim.Vector) {
	var zero sim.Vector
	le.ApplyPosVel(pos, &zero)
}

func (le *LeesEdwards) ApplyPosVel(pos, vel *sim.Vector) {
	cy := math.Round(pos.Y / le.Box.Y)
	pos.Y -= cy * le.Box.Y
	pos.X -= cy * le.Offset
	vel.X += cy * le.ShearRate * le.Box.Y

	pos.X = wrapAxis(pos.X, le.Box.X)
	pos.Z = wrapAxis(pos.Z, le.Box.Z)
}

func (le *LeesEdwards) Distance(p1, p2 *sim.Particle) sim.Vector {
	rij, _ := le.Displacement(p1, p2)
	return rij
}

func (le *LeesEdwards) Displacement(p1, p2 *sim.Particle) (rij, vij sim.Vector) {
	d := sim.Sub(p1.Position, p2.Position)
	v := sim.Sub(p1.Velocity, p2.Velocity)

	cy := math.Round(d.Y / le.Box.Y)
	d.Y -= cy * le.Box.Y
	d.X -= cy * le.Offset
	v.X -= cy * le.ShearRate * le.Box.Y

	d.X = minImageAxis(d.X, le.Box.X)
	d.Z = minImageAxis(d.Z, le.Box.Z)
	return d, v
}

var _ sim.BC = (*LeesEdwards)(nil)
