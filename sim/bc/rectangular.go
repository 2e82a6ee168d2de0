// Package bc provides sim.BC implementations: rectangular (walled, no
// wrapping), fully periodic, and Lees-Edwards sheared periodic boundary
// conditions (spec.md §3, §9 "Lees-Edwards").
package bc

import "github.com/dynamo-sim/dynamo/sim"

// Rectangular is a non-periodic box: positions are never wrapped and
// distances are plain Euclidean separations. Confinement is provided
// entirely by Local wall capabilities.
type Rectangular struct{}

func (Rectangular) ApplyPos(pos *sim.Vector)              {}
func (Rectangular) ApplyPosVel(pos, vel *sim.Vector)       {}
func (Rectangular) Advance(dt float64)                     {}

func (Rectangular) Distance(p1, p2 *sim.Particle) sim.Vector {
	return sim.Sub(p1.Position, p2.Position)
}

func (b Rectangular) Displacement(p1, p2 *sim.Particle) (rij, vij sim.Vector) {
	return b.Distance(p1, p2), sim.Sub(p1.Velocity, p2.Velocity)
}

var _ sim.BC = Rectangular{}
