package sim

// Context bundles the shared, mutable simulation state every capability
// needs, passed explicitly instead of through a back-referencing "Sim
// pointer" (spec.md §9's design note on avoiding the god object).
type Context struct {
	Store      *Store
	BC         BC
	Dynamics   Dynamics
	SystemTime float64
}

// Interaction is the pair-event capability (spec.md §4.4, §6): given two
// particles, predicts the next event between them and executes the
// impulse when it fires. Implementations carry their own parameters
// (diameter, elasticity, well depth) and, for stepped potentials, a
// capture map.
type Interaction interface {
	Name() string
	// MaxIntDist is the largest separation at which this interaction
	// can still fire; used to size cell-list cell widths.
	MaxIntDist() float64
	// GetEvent is a pure prediction: it must not mutate particles.
	GetEvent(ctx *Context, p1, p2 *Particle) Event
	// RunEvent executes the impulse and returns the resulting deltas.
	RunEvent(ctx *Context, p1, p2 *Particle, ev Event) PairEventData
	// ValidateState checks the capture map (if any) against current
	// geometry and returns the number of warnings found.
	ValidateState(ctx *Context, p1, p2 *Particle) int
	// CaptureTest classifies a pair at initialization: 1 if the pair
	// should start in the interaction's capture map, 0 otherwise.
	CaptureTest(ctx *Context, p1, p2 *Particle) int
}

// Global is the non-pair, neighbour-aware capability (spec.md §4.4,
// §4.5): cell transitions, sleep/wake tests.
type Global interface {
	Name() string
	Initialise(ctx *Context)
	// IsInteraction reports whether this global applies to p at all
	// (e.g. a ranged Sleep global only watches particles in its range).
	IsInteraction(p *Particle) bool
	GetEvent(ctx *Context, p *Particle) Event
	// RunEvent executes the global's effect. Globals pop their own FEL
	// entry (spec.md §4.3 dispatch table: "no (callee pops)").
	RunEvent(ctx *Context, sched *Scheduler, p *Particle, dt float64)
}

// Local is the single-particle, fixed-geometry capability (spec.md §4.4,
// §4.5): walls, floors.
type Local interface {
	Name() string
	Initialise(ctx *Context)
	IsInteraction(p *Particle) bool
	GetEvent(ctx *Context, p *Particle) Event
	RunEvent(ctx *Context, p *Particle, ev Event) ParticleEventData
	ValidateState(ctx *Context, p *Particle) int
}

// System is the system-wide capability (spec.md §4.4, §4.5): thermostat
// kicks, periodic tickers. Systems occupy the dedicated FEL system slot
// rather than a particle's PEL.
type System interface {
	Name() string
	Initialise(ctx *Context)
	Dt() float64
	RunEvent(ctx *Context, sched *Scheduler)
}
