package cells

import "github.com/dynamo-sim/dynamo/sim"

// GCellsShearing is the Lees-Edwards-aware cell-transition Global (spec.md
// §9 "Lees-Edwards"): identical to GCells except that a particle sitting
// in the first or last row of y-cells also neighbours the opposite y-face
// strip, since that is the image a Lees-Edwards shear actually slides
// past. Overlink > 1 is rejected at Initialise time (spec.md §9's open
// question: "the source explicitly rejects overlink > 1 under LE BCs").
type GCellsShearing struct {
	*GCells
}

func NewGCellsShearing(list *CellList) *GCellsShearing {
	return &GCellsShearing{GCells: NewGCells(list)}
}

func (g *GCellsShearing) Name() string { return "ShearingCells" }

func (g *GCellsShearing) Initialise(ctx *sim.Context) {
	if g.List.Overlink != 1 {
		panic("cells: cannot shear with overlink > 1")
	}
	g.GCells.Initialise(ctx)
}

// leStripNeighbours returns the ids in the opposite y-face strip for a
// particle currently sitting at a y-boundary cell, the extra coupling a
// sheared box requires at the top/bottom images (cellsShearing.cpp's
// getAdditionalLEParticleNeighbourhood, simplified to a full-strip scan
// rather than incremental Morton-coordinate walking).
func (g *GCellsShearing) leStripNeighbours(id int) []int {
	ix, iy, iz := g.List.CellCoordOf(id)
	atBottom := iy == 0
	atTop := iy == g.List.Counts[1]-1
	if !atBottom && !atTop {
		return nil
	}
	oppositeY := 0
	if atBottom {
		oppositeY = g.List.Counts[1] - 1
	}
	var out []int
	for dx := 0; dx < g.List.Counts[0]; dx++ {
		for dz := -g.List.Overlink; dz <= g.List.Overlink; dz++ {
			for _, other := range g.List.CellContents(dx, oppositeY, iz+dz) {
				if other != id {
					out = append(out, other)
				}
			}
		}
	}
	_ = ix
	return out
}

func (g *GCellsShearing) GetEvent(ctx *sim.Context, p *sim.Particle) sim.Event {
	ev := g.GCells.GetEvent(ctx, p)
	ev.PluginName = g.Name()
	return ev
}

func (g *GCellsShearing) RunEvent(ctx *sim.Context, sched *sim.Scheduler, p *sim.Particle, dt float64) {
	ctx.Dynamics.UpdateParticle(p, ctx.SystemTime)
	sched.PopTop()

	before := make(map[int]bool)
	for _, id := range g.List.Neighbours(p.ID) {
		before[id] = true
	}
	for _, id := range g.leStripNeighbours(p.ID) {
		before[id] = true
	}

	g.List.Move(p.ID, p.Position)

	after := g.List.Neighbours(p.ID)
	after = append(after, g.leStripNeighbours(p.ID)...)
	for _, id2 := range after {
		if !before[id2] {
			sched.AddInteractionEvent(p.ID, id2)
		}
	}

	sched.PushEvent(p.ID, g.GetEvent(ctx, p))
}

var _ sim.Global = (*GCellsShearing)(nil)
var _ sim.Global = (*GCells)(nil)
