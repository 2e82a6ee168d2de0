package cells

import "github.com/dynamo-sim/dynamo/sim"

// GCells is the plain (non-sheared) cell-transition Global capability
// (spec.md §4.5): every dynamic particle carries a CELL event predicting
// when it next crosses into a neighbouring cell; firing it re-homes the
// particle and re-predicts interaction events against its new neighbours.
type GCells struct {
	List *CellList
}

func NewGCells(list *CellList) *GCells { return &GCells{List: list} }

func (g *GCells) Name() string { return "Cells" }

// Initialise populates the cell list from the particles' current
// (already-streamed) positions.
func (g *GCells) Initialise(ctx *sim.Context) {
	n := ctx.Store.N()
	for id := 0; id < n; id++ {
		p := ctx.Store.Get(id)
		g.List.Insert(id, p.Position)
	}
}

func (g *GCells) IsInteraction(p *sim.Particle) bool { return p.IsDynamic() }

func (g *GCells) GetEvent(ctx *sim.Context, p *sim.Particle) sim.Event {
	ix, iy, iz := g.List.CellCoordOf(p.ID)
	origin := g.List.CellOrigin(ix, iy, iz)
	dt := ctx.Dynamics.CellCollision2(p, ctx.BC, origin, g.List.CellDim)
	return sim.Event{Kind: sim.KindGlobal, Dt: dt, PluginName: g.Name()}
}

// RunEvent moves the particle into its new cell and re-predicts
// interaction events against the neighbours gained (spec.md §4.5: Global
// events pop their own PEL slot).
func (g *GCells) RunEvent(ctx *sim.Context, sched *sim.Scheduler, p *sim.Particle, dt float64) {
	ctx.Dynamics.UpdateParticle(p, ctx.SystemTime)
	sched.PopTop()

	oldNeighbours := make(map[int]bool, len(g.List.Neighbours(p.ID)))
	for _, id := range g.List.Neighbours(p.ID) {
		oldNeighbours[id] = true
	}

	g.List.Move(p.ID, p.Position)

	for _, id2 := range g.List.Neighbours(p.ID) {
		if !oldNeighbours[id2] {
			sched.AddInteractionEvent(p.ID, id2)
		}
	}

	sched.PushEvent(p.ID, g.GetEvent(ctx, p))
}
