package interactions

import "github.com/dynamo-sim/dynamo/sim"

func pairKey(a, b int) uint64 {
	if a > b {
		a, b = b, a
	}
	return uint64(uint32(a))<<32 | uint64(uint32(b))
}

// SquareWell is a stepped attractive potential (spec.md §4.4): a hard core
// at CoreDiameter plus an attractive shell out to
// CoreDiameter*LambdaRatio. Entering the well gains WellDepth kinetic
// energy; leaving costs it, falling back to an elastic BOUNCE off the
// outer well wall when the pair lacks the energy to escape. Captured pairs are tracked in a
// capture map (spec.md §9), grounded on NewtonL.cpp's SphereWellEvent
// (ported to sim/dynamics.Newtonian.WellEvent) and hardsphere.cpp's
// overall CInteraction shape.
type SquareWell struct {
	NameStr      string
	CoreDiameter float64
	LambdaRatio  float64
	WellDepth    float64
	Elasticity   float64

	d2        float64
	w2        float64
	captured  map[uint64]struct{}
}

func NewSquareWell(name string, coreDiameter, lambdaRatio, wellDepth, elasticity float64) *SquareWell {
	lambdaDist := coreDiameter * lambdaRatio
	return &SquareWell{
		NameStr: name, CoreDiameter: coreDiameter, LambdaRatio: lambdaRatio,
		WellDepth: wellDepth, Elasticity: elasticity,
		d2: coreDiameter * coreDiameter, w2: lambdaDist * lambdaDist,
		captured: make(map[uint64]struct{}),
	}
}

func (s *SquareWell) Name() string        { return s.NameStr }
func (s *SquareWell) MaxIntDist() float64 { return s.CoreDiameter * s.LambdaRatio }

func (s *SquareWell) isCaptured(p1, p2 *sim.Particle) bool {
	_, ok := s.captured[pairKey(p1.ID, p2.ID)]
	return ok
}

func (s *SquareWell) GetEvent(ctx *sim.Context, p1, p2 *sim.Particle) sim.Event {
	ctx.Dynamics.UpdateParticlePair(p1, p2, ctx.SystemTime)
	g := ctx.Dynamics.Geometry(p1, p2, ctx.BC)

	if !s.isCaptured(p1, p2) {
		if dt, ok := ctx.Dynamics.SphereSphereInRoot(g, s.w2); ok {
			return sim.Event{Kind: sim.KindInteraction, Dt: dt}
		}
		return sim.NoEvent()
	}

	coreDt, coreOK := ctx.Dynamics.SphereSphereInRoot(g, s.d2)
	exitDt := ctx.Dynamics.SphereSphereOutRoot(g, s.w2)
	if coreOK && coreDt <= exitDt {
		return sim.Event{Kind: sim.KindInteraction, Dt: coreDt}
	}
	return sim.Event{Kind: sim.KindInteraction, Dt: exitDt}
}

func (s *SquareWell) RunEvent(ctx *sim.Context, p1, p2 *sim.Particle, ev sim.Event) sim.PairEventData {
	key := pairKey(p1.ID, p2.ID)
	mu := p1.Mass * p2.Mass / (p1.Mass + p2.Mass)

	if !s.isCaptured(p1, p2) {
		data := ctx.Dynamics.WellEvent(p1, p2, ctx.BC, s.WellDepth, mu)
		if data.Kind != sim.Bounce {
			s.captured[key] = struct{}{}
		}
		return data
	}

	g := ctx.Dynamics.Geometry(p1, p2, ctx.BC)
	coreDt, coreOK := ctx.Dynamics.SphereSphereInRoot(g, s.d2)
	exitDt := ctx.Dynamics.SphereSphereOutRoot(g, s.w2)
	if coreOK && coreDt <= exitDt {
		return ctx.Dynamics.SmoothSpheresColl(p1, p2, ctx.BC, s.Elasticity, s.d2, sim.Core)
	}

	data := ctx.Dynamics.WellEvent(p1, p2, ctx.BC, -s.WellDepth, mu)
	if data.Kind != sim.Bounce {
		delete(s.captured, key)
	}
	return data
}

// ValidateState flags a pair whose capture-map membership disagrees with
// its actual separation: captured-but-outside-well or
// uncaptured-but-inside-well are both configuration-load inconsistencies.
func (s *SquareWell) ValidateState(ctx *sim.Context, p1, p2 *sim.Particle) int {
	g := ctx.Dynamics.Geometry(p1, p2, ctx.BC)
	inside := g.R2 < s.w2
	if inside != s.isCaptured(p1, p2) {
		return 1
	}
	return 0
}

// CaptureTest classifies a pair at load time (spec.md §4.4): captured iff
// currently within the well radius.
func (s *SquareWell) CaptureTest(ctx *sim.Context, p1, p2 *sim.Particle) int {
	g := ctx.Dynamics.Geometry(p1, p2, ctx.BC)
	if g.R2 < s.w2 {
		s.captured[pairKey(p1.ID, p2.ID)] = struct{}{}
		return 1
	}
	return 0
}

// CapturedPairs returns the current capture map as (id1,id2) pairs with
// id1<id2, for persistence as the XML document's <Pair> children.
func (s *SquareWell) CapturedPairs() [][2]int {
	pairs := make([][2]int, 0, len(s.captured))
	for k := range s.captured {
		pairs = append(pairs, [2]int{int(int32(k >> 32)), int(int32(k))})
	}
	return pairs
}

// SetCaptured seeds the capture map directly from a loaded XML document,
// bypassing CaptureTest's geometry re-derivation.
func (s *SquareWell) SetCaptured(pairs [][2]int) {
	s.captured = make(map[uint64]struct{}, len(pairs))
	for _, p := range pairs {
		s.captured[pairKey(p[0], p[1])] = struct{}{}
	}
}

var _ sim.Interaction = (*SquareWell)(nil)
