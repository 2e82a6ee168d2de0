package sim

// PairEventData summarizes the result of a pair-event impulse: the
// kinetic-energy, momentum, and potential-energy deltas output plugins
// need (spec.md §4.4).
type PairEventData struct {
	Particle1ID int
	Particle2ID int
	DeltaKE     float64
	DeltaP      Vector
	DeltaU      float64
	Kind        Kind
}

// ParticleEventData summarizes the result of a single-particle event
// (wall bounce, thermostat resample).
type ParticleEventData struct {
	ParticleID int
	DeltaKE    float64
	Kind       Kind
}

// CollisionGeometry carries the precomputed relative-position/velocity
// terms a root finder needs, so callers that already streamed both
// particles don't redundantly recompute r and v. Named after the
// original engine's CPDData ("collision pair data").
type CollisionGeometry struct {
	Rij  Vector  // r_i - r_j, minimum image
	Vij  Vector  // v_i - v_j
	R2   float64 // |Rij|^2
	V2   float64 // |Vij|^2
	RVDot float64 // Rij . Vij
	Dt   float64 // root solution, once found
}

// Dynamics is the Liouvillean capability (spec.md §4.1): the pure-math
// kernel of ballistic propagation, collision prediction, and impulse
// resolution. All particle mutation that touches position or velocity
// passes through an implementation of this interface.
type Dynamics interface {
	// UpdateParticle advances p from p.PeculiarTime to now using
	// ballistic integration, then sets p.PeculiarTime = now. Must be
	// idempotent when called twice at the same now.
	UpdateParticle(p *Particle, now float64)
	// UpdateParticlePair is equivalent to two UpdateParticle calls but
	// may exploit shared state (e.g. a shared BC lookup).
	UpdateParticlePair(p1, p2 *Particle, now float64)

	// Geometry computes r, v, and their dot/square products between
	// two (already-streamed) particles under bc.
	Geometry(p1, p2 *Particle, bc BC) CollisionGeometry

	// SphereSphereInRoot solves for the earliest future time at which
	// |r(t)|^2 - d2 hits zero from outside (approaching), returning
	// (dt, true) or (0, false) if no such root exists.
	SphereSphereInRoot(g CollisionGeometry, d2 float64) (float64, bool)
	// SphereSphereOutRoot solves the symmetric exit root, assuming the
	// pair currently overlaps.
	SphereSphereOutRoot(g CollisionGeometry, d2 float64) float64

	// SmoothSpheresColl applies a hard-sphere impulse of restitution e
	// between two (already-streamed) particles separated by d2.
	SmoothSpheresColl(p1, p2 *Particle, bc BC, e, d2 float64, kind Kind) PairEventData

	// WellEvent applies a stepped-potential impulse that changes
	// kinetic energy by deltaKE, returning the sub-kind actually
	// executed (Bounce/WellKEUp/WellKEDown per spec.md §4.4).
	WellEvent(p1, p2 *Particle, bc BC, deltaKE, mu float64) PairEventData

	// WallCollision returns the time-to-crossing of a flat wall at
	// wallPoint with outward normal wallNormal, from the particle's
	// current (streamed) state.
	WallCollision(p *Particle, bc BC, wallPoint, wallNormal Vector) float64
	// RunWallCollision reflects p's velocity off a wall of restitution
	// e with the given normal.
	RunWallCollision(p *Particle, wallNormal Vector, e float64) ParticleEventData

	// CellCollision2 returns the time to the nearest cell-boundary
	// crossing for a particle inside a rectangular cell of the given
	// origin and width.
	CellCollision2(p *Particle, bc BC, origin, width Vector) float64
	// CellCollision3 additionally returns which axis (0,1,2) that
	// nearest crossing occurs along.
	CellCollision3(p *Particle, bc BC, origin, width Vector) (float64, int)

	// Stream advances the implicit global time reference by dt without
	// touching any particle (particles catch up lazily via
	// UpdateParticle); dynamics that are not simple ballistic streams
	// (e.g. sheared boxes) use this hook to update shared state.
	Stream(dt float64)

	// RandomGaussianEvent resamples p's velocity from a Maxwell
	// distribution with the given sqrt(temperature), after streaming
	// it to now. Used by the Andersen thermostat.
	RandomGaussianEvent(p *Particle, now float64, sqrtTemp float64) ParticleEventData
}
