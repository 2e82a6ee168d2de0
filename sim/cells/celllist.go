package cells

import (
	"math"

	"github.com/dynamo-sim/dynamo/sim"
)

// CellList is a 3D grid of integer-coordinate cells over a periodic box
// centred on the origin, keyed by Morton code (spec.md §4.2). Invariants:
// every particle id appears in exactly one cell; cell width on each axis
// is >= the caller's requested minimum interaction reach.
type CellList struct {
	Box      sim.Vector
	CellDim  sim.Vector
	Counts   [3]int
	Overlink int

	contents map[uint64][]int
	cellOf   map[int]uint64
}

// NewCellList sizes cells so that CellDim >= minWidth on every axis
// (spec.md §4.2 invariant 3), with at least one cell per axis.
func NewCellList(box sim.Vector, minWidth float64, overlink int) *CellList {
	cl := &CellList{Box: box, Overlink: overlink, contents: make(map[uint64][]int), cellOf: make(map[int]uint64)}
	cl.Counts[0] = cellCount(box.X, minWidth)
	cl.Counts[1] = cellCount(box.Y, minWidth)
	cl.Counts[2] = cellCount(box.Z, minWidth)
	cl.CellDim = sim.NewVector(box.X/float64(cl.Counts[0]), box.Y/float64(cl.Counts[1]), box.Z/float64(cl.Counts[2]))
	return cl
}

func cellCount(boxLen, minWidth float64) int {
	if minWidth <= 0 {
		return 1
	}
	n := int(math.Floor(boxLen / minWidth))
	if n < 1 {
		n = 1
	}
	return n
}

func mod(a, n int) int {
	m := a % n
	if m < 0 {
		m += n
	}
	return m
}

// coordOf computes the wrapped integer cell coordinate of pos (pos is
// assumed already wrapped into the primary box image by the BC).
func (cl *CellList) coordOf(pos sim.Vector) (int, int, int) {
	ix := mod(int(math.Floor((pos.X+cl.Box.X/2)/cl.CellDim.X)), cl.Counts[0])
	iy := mod(int(math.Floor((pos.Y+cl.Box.Y/2)/cl.CellDim.Y)), cl.Counts[1])
	iz := mod(int(math.Floor((pos.Z+cl.Box.Z/2)/cl.CellDim.Z)), cl.Counts[2])
	return ix, iy, iz
}

// CellOrigin returns the lower corner of the cell at (ix,iy,iz), for use
// as the origin argument to Dynamics.CellCollision2/3.
func (cl *CellList) CellOrigin(ix, iy, iz int) sim.Vector {
	return sim.NewVector(
		float64(ix)*cl.CellDim.X-cl.Box.X/2,
		float64(iy)*cl.CellDim.Y-cl.Box.Y/2,
		float64(iz)*cl.CellDim.Z-cl.Box.Z/2,
	)
}

// Insert places id into the cell containing pos.
func (cl *CellList) Insert(id int, pos sim.Vector) {
	ix, iy, iz := cl.coordOf(pos)
	key := mortonEncode(ix, iy, iz)
	cl.contents[key] = append(cl.contents[key], id)
	cl.cellOf[id] = key
}

// Remove deletes id from whichever cell currently holds it.
func (cl *CellList) Remove(id int) {
	key, ok := cl.cellOf[id]
	if !ok {
		return
	}
	ids := cl.contents[key]
	for i, v := range ids {
		if v == id {
			cl.contents[key] = append(ids[:i], ids[i+1:]...)
			break
		}
	}
	delete(cl.cellOf, id)
}

// Move re-homes id to the cell containing its new position.
func (cl *CellList) Move(id int, pos sim.Vector) {
	cl.Remove(id)
	cl.Insert(id, pos)
}

// CellCoordOf returns id's current integer cell coordinate.
func (cl *CellList) CellCoordOf(id int) (int, int, int) {
	return mortonDecode(cl.cellOf[id])
}

// Neighbours implements sim.NeighbourProvider: every other particle
// sharing id's cell or one of the (2*Overlink+1)^3 - 1 surrounding cells.
func (cl *CellList) Neighbours(id int) []int {
	ix, iy, iz := cl.CellCoordOf(id)
	var out []int
	for dx := -cl.Overlink; dx <= cl.Overlink; dx++ {
		for dy := -cl.Overlink; dy <= cl.Overlink; dy++ {
			for dz := -cl.Overlink; dz <= cl.Overlink; dz++ {
				key := mortonEncode(mod(ix+dx, cl.Counts[0]), mod(iy+dy, cl.Counts[1]), mod(iz+dz, cl.Counts[2]))
				for _, other := range cl.contents[key] {
					if other != id {
						out = append(out, other)
					}
				}
			}
		}
	}
	return out
}

// CellContents returns the particle ids currently in the cell at
// (ix,iy,iz), wrapping the coordinate first.
func (cl *CellList) CellContents(ix, iy, iz int) []int {
	key := mortonEncode(mod(ix, cl.Counts[0]), mod(iy, cl.Counts[1]), mod(iz, cl.Counts[2]))
	return cl.contents[key]
}

var _ sim.NeighbourProvider = (*CellList)(nil)
