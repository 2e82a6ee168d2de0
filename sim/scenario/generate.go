package scenario

import (
	"fmt"
	"math"
	"math/rand"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/dynamo-sim/dynamo/sim"
	"github.com/dynamo-sim/dynamo/sim/bc"
	"github.com/dynamo-sim/dynamo/sim/cells"
	"github.com/dynamo-sim/dynamo/sim/dynamics"
	"github.com/dynamo-sim/dynamo/sim/interactions"
	"github.com/dynamo-sim/dynamo/sim/locals"
	"github.com/dynamo-sim/dynamo/sim/systems"
)

// Generate builds a ready-to-Build sim.Simulation from s: particles
// placed on a lattice at the requested density, velocities Maxwell-
// sampled at Temperature and recentred to zero net momentum (so the
// system doesn't drift), plus the requested boundary, interaction,
// thermostat, ticker, and wall plugins.
func Generate(s *Spec) (*sim.Simulation, error) {
	n, box, err := placeLattice(s.Lattice)
	if err != nil {
		return nil, err
	}

	rng := sim.NewPartitionedRNG(sim.NewSimulationKey(s.Seed))
	store := sim.NewStore(len(n))
	for i, pos := range n {
		p := store.Get(i)
		p.Position = pos
		p.Mass = s.Lattice.Mass
		if p.Mass == 0 {
			p.Mass = 1
		}
	}
	sampleMaxwellVelocities(store, s.Temperature, rng.ForSubsystem(sim.SubsystemScenario))

	boundary, err := buildBoundary(s.Boundary, box)
	if err != nil {
		return nil, err
	}

	interaction, err := buildInteraction(s.Interaction)
	if err != nil {
		return nil, err
	}

	list := cells.NewCellList(box, interaction.MaxIntDist(), cellOverlink(s.Interaction))
	var global sim.Global
	if s.Boundary.Kind == "lees-edwards" {
		global = cells.NewGCellsShearing(list)
	} else {
		global = cells.NewGCells(list)
	}

	var localPlugins []sim.Local
	for _, w := range s.Walls {
		localPlugins = append(localPlugins, locals.NewWall(w.Name,
			sim.NewVector(w.Point[0], w.Point[1], w.Point[2]),
			sim.NewVector(w.Normal[0], w.Normal[1], w.Normal[2]),
			w.Elasticity))
	}

	var systemPlugins []sim.System
	if s.Thermostat != nil {
		systemPlugins = append(systemPlugins, systems.NewThermostat(
			"Thermostat", s.Temperature, s.Thermostat.CollisionRate, s.Thermostat.AutoTune,
			defaultFloat(s.Thermostat.SetPoint, 0.05), defaultUint(s.Thermostat.SetEvery, 100),
			rng.ForSubsystem(sim.SubsystemThermostat),
		))
	}
	if s.Ticker != nil {
		systemPlugins = append(systemPlugins, systems.NewTicker("Ticker", s.Ticker.Period, nil))
	}

	return &sim.Simulation{
		Store:        store,
		BC:           boundary,
		Dynamics:     dynamics.NewNewtonian(rng.ForSubsystem(sim.SubsystemThermostat)),
		Catalogue:    sim.UniformCatalogue{Interaction: interaction},
		Neighbours:   list,
		Interactions: []sim.Interaction{interaction},
		Globals:      []sim.Global{global},
		Locals:       localPlugins,
		Systems:      systemPlugins,
		Units:        sim.DefaultUnits(),
		RNG:          rng,
	}, nil
}

func defaultFloat(v, def float64) float64 {
	if v == 0 {
		return def
	}
	return v
}

func defaultUint(v, def uint64) uint64 {
	if v == 0 {
		return def
	}
	return v
}

func cellOverlink(i InteractionSpec) int {
	if i.CellOverlink > 0 {
		return i.CellOverlink
	}
	return 1
}

// placeLattice returns particle positions on a simple-cubic or FCC
// lattice at the requested reduced density, and the resulting box.
func placeLattice(l LatticeSpec) ([]sim.Vector, sim.Vector, error) {
	if l.CellsPerDim <= 0 {
		return nil, sim.Vector{}, fmt.Errorf("scenario: lattice.cells_per_dim must be positive")
	}
	if l.Density <= 0 {
		return nil, sim.Vector{}, fmt.Errorf("scenario: lattice.density must be positive")
	}

	basis := unitCellBasis(l.Kind)
	atomsPerCell := len(basis)
	if atomsPerCell == 0 {
		return nil, sim.Vector{}, fmt.Errorf("scenario: unknown lattice kind %q", l.Kind)
	}

	totalAtoms := atomsPerCell * l.CellsPerDim * l.CellsPerDim * l.CellsPerDim
	volume := float64(totalAtoms) / l.Density
	boxLen := math.Cbrt(volume)
	cellLen := boxLen / float64(l.CellsPerDim)

	positions := make([]sim.Vector, 0, totalAtoms)
	for ix := 0; ix < l.CellsPerDim; ix++ {
		for iy := 0; iy < l.CellsPerDim; iy++ {
			for iz := 0; iz < l.CellsPerDim; iz++ {
				origin := sim.NewVector(float64(ix)*cellLen, float64(iy)*cellLen, float64(iz)*cellLen)
				for _, b := range basis {
					positions = append(positions, sim.Add(origin, sim.Scale(cellLen, b)))
				}
			}
		}
	}
	return positions, sim.NewVector(boxLen, boxLen, boxLen), nil
}

func unitCellBasis(kind string) []sim.Vector {
	switch kind {
	case "", "simple-cubic":
		return []sim.Vector{sim.NewVector(0, 0, 0)}
	case "fcc":
		return []sim.Vector{
			sim.NewVector(0, 0, 0),
			sim.NewVector(0.5, 0.5, 0),
			sim.NewVector(0.5, 0, 0.5),
			sim.NewVector(0, 0.5, 0.5),
		}
	default:
		return nil
	}
}

// sampleMaxwellVelocities draws a component-wise Gaussian velocity for
// every particle at the given reduced temperature, then subtracts the
// mean so total momentum is exactly zero (grounded on the thermostat's
// own RandomGaussianEvent resampling in
// original_source/.../NewtonL.cpp, applied here to every particle at
// once rather than one at a time).
func sampleMaxwellVelocities(store *sim.Store, temperature float64, rng *rand.Rand) {
	normal := distuv.Normal{Mu: 0, Sigma: math.Sqrt(temperature), Src: rng}
	n := store.N()
	sum := sim.NewVector(0, 0, 0)
	for i := 0; i < n; i++ {
		p := store.Get(i)
		p.Velocity = sim.NewVector(normal.Rand(), normal.Rand(), normal.Rand())
		sum = sim.Add(sum, p.Velocity)
	}
	if n == 0 {
		return
	}
	mean := sim.Scale(1/float64(n), sum)
	for i := 0; i < n; i++ {
		p := store.Get(i)
		p.Velocity = sim.Sub(p.Velocity, mean)
	}
}

func buildBoundary(b BoundarySpec, box sim.Vector) (sim.BC, error) {
	switch b.Kind {
	case "", "rectangular":
		return bc.Rectangular{}, nil
	case "periodic":
		return bc.Periodic{Box: box}, nil
	case "lees-edwards":
		return bc.NewLeesEdwards(box, b.ShearRate), nil
	default:
		return nil, fmt.Errorf("scenario: unknown boundary kind %q", b.Kind)
	}
}

func buildInteraction(i InteractionSpec) (sim.Interaction, error) {
	switch i.Kind {
	case "", "hard-sphere":
		return interactions.NewHardSphere("Interaction", i.Diameter, i.Elasticity), nil
	case "square-well":
		return interactions.NewSquareWell("Interaction", i.Diameter, i.LambdaRatio, i.WellDepth, i.Elasticity), nil
	default:
		return nil, fmt.Errorf("scenario: unknown interaction kind %q", i.Kind)
	}
}
