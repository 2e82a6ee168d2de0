package sim

// State is a particle state bitfield (spec.md §3).
type State uint8

const (
	// Dynamic marks a particle as awake: the dynamics layer streams it
	// and the scheduler predicts events for it. A non-dynamic particle
	// is "asleep" and skips streaming (see sim/globals.Sleep).
	Dynamic State = 1 << iota
)

// Particle is a single point (or rigid) body. Fields are mutated only
// through the Dynamics layer (sim/dynamics); everything else treats a
// Particle as a value to read.
type Particle struct {
	// ID is the particle's stable identifier: a dense index into the
	// owning Store's Particles slice.
	ID int

	Position Vector
	Velocity Vector

	// AngularVelocity and Orientation are only meaningful for
	// interactions that model rigid bodies (e.g. dumbbells).
	AngularVelocity Vector
	Orientation     Quaternion

	// PeculiarTime is the simulation time to which this particle has
	// been ballistically streamed (spec.md §3, §8: PeculiarTime <=
	// system time always holds).
	PeculiarTime float64

	Mass  float64
	State State

	// EventCount is incremented every time this particle's PEL is
	// invalidated. It is snapshotted into Event.CollisionCounter when
	// an interaction is predicted against this particle as the
	// secondary, and used by the scheduler's lazy-deletion check
	// (spec.md §4.3, I3).
	EventCount uint64
}

// IsDynamic reports whether the particle is awake.
func (p *Particle) IsDynamic() bool { return p.State&Dynamic != 0 }

// Store is the dense particle array. It has no ownership beyond the
// lifetime of the simulation: particles are created at initialization
// and live until the run ends.
type Store struct {
	Particles []Particle
}

// NewStore allocates a Store with n particles, all dynamic with unit
// mass, awaiting placement by a scenario generator or XML loader.
func NewStore(n int) *Store {
	particles := make([]Particle, n)
	for i := range particles {
		particles[i] = Particle{
			ID:          i,
			Mass:        1.0,
			State:       Dynamic,
			Orientation: IdentityQuaternion(),
		}
	}
	return &Store{Particles: particles}
}

// N returns the number of particles in the store.
func (s *Store) N() int { return len(s.Particles) }

// Get returns a pointer to the particle with the given id, suitable for
// passing to Dynamics methods that mutate Position/Velocity in place.
func (s *Store) Get(id int) *Particle { return &s.Particles[id] }
