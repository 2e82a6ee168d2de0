package sim

// BC is the boundary-condition capability (spec.md §3, §6): a
// transformation object wrapping position/velocity wrapping and minimum-
// image distance. Concrete implementations (rectangular, periodic,
// Lees-Edwards) live in sim/bc.
type BC interface {
	// ApplyPos wraps pos into the primary simulation image in place.
	ApplyPos(pos *Vector)
	// ApplyPosVel wraps pos into the primary image and adjusts vel to
	// match (non-trivial for Lees-Edwards: the velocity transform
	// shears with simulation time).
	ApplyPosVel(pos, vel *Vector)
	// Distance returns the minimum-image separation p1.Position -
	// p2.Position under this boundary condition.
	Distance(p1, p2 *Particle) Vector
	// Displacement returns both the minimum-image position separation
	// and the correspondingly-adjusted relative velocity. For
	// rectangular/periodic BCs vij is simply p1.Velocity - p2.Velocity;
	// Lees-Edwards shifts vij's x-component by ShearRate*Box.Y per
	// y-image crossed (spec.md §3 "sheared periodic BC").
	Displacement(p1, p2 *Particle) (rij, vij Vector)
	// Advance notifies a time-dependent BC (Lees-Edwards) that the
	// simulation clock has moved forward by dt, so its shear offset
	// can be updated.
	Advance(dt float64)
}
