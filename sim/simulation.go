package sim

// Simulation bundles everything sim/xmlio persists and sim/scenario
// generates: particle state, boundary condition, dynamics, and the
// capability plugins, plus the Units block carried on the wire (spec.md
// §6's "conversion factors", unused by the core but round-tripped).
type Simulation struct {
	Store      *Store
	BC         BC
	Dynamics   Dynamics
	Catalogue  InteractionCatalogue
	Neighbours NeighbourProvider

	Interactions []Interaction
	Globals      []Global
	Locals       []Local
	Systems      []System

	Units      Units
	SystemTime float64

	RNG *PartitionedRNG
}

// Units holds the reduced-unit conversion factors carried in the XML
// document's <Units> block (spec.md §6). The core computes entirely in
// reduced units; these are round-tripped, never consulted internally.
type Units struct {
	UnitLength float64
	UnitTime   float64
	UnitMass   float64
}

// DefaultUnits returns the identity conversion (pure reduced units).
func DefaultUnits() Units { return Units{UnitLength: 1, UnitTime: 1, UnitMass: 1} }

// Context builds the shared Context these capabilities expect.
func (s *Simulation) Context() *Context {
	return &Context{Store: s.Store, BC: s.BC, Dynamics: s.Dynamics, SystemTime: s.SystemTime}
}

// Build wires the assembled Simulation into a ready-to-run Scheduler,
// returning the Scheduler and the Context it shares with every
// capability (the caller drives it with Scheduler.Run or RunNext).
func (s *Simulation) Build() (*Scheduler, *Context, error) {
	if s.Store == nil || s.Store.N() == 0 {
		return nil, nil, &SimError{Err: ErrConfiguration, Kind: None, PluginName: "Simulation.Build: empty particle store"}
	}
	if s.BC == nil || s.Dynamics == nil || s.Catalogue == nil || s.Neighbours == nil {
		return nil, nil, &SimError{Err: ErrConfiguration, Kind: None, PluginName: "Simulation.Build: missing BC/Dynamics/Catalogue/Neighbours"}
	}

	ctx := s.Context()
	sched := NewScheduler(ctx, s.Neighbours, s.Catalogue, s.Globals, s.Locals, s.Systems)
	if err := sched.Initialise(); err != nil {
		return nil, nil, err
	}
	return sched, ctx, nil
}
