package sim

import "container/heap"

// felEntry binds a PEL to the particle id that owns it. The system slot
// (spec.md §3: "The system slot lives at index N, one past the last
// particle") uses OwnerID == N.
type felEntry struct {
	ownerID int
	pel     *PEL
	index   int // heap.Interface bookkeeping, like container/heap's example
}

// FEL is the future event list: an ordered container of
// (particle_id, soonest_event_in_its_PEL) pairs, implemented as a binary
// heap exactly the way the teacher's sim.EventQueue / sim/cluster.EventHeap
// wrap container/heap, generalized here to heap PELs instead of raw
// Events so that invalidating one particle's slot is an O(log N) sift
// rather than a linear scan.
type FEL struct {
	entries []*felEntry
	byOwner map[int]*felEntry
}

// NewFEL allocates a FEL sized for n particles plus one system slot.
func NewFEL(n int) *FEL {
	f := &FEL{
		entries: make([]*felEntry, 0, n+1),
		byOwner: make(map[int]*felEntry, n+1),
	}
	for id := 0; id <= n; id++ {
		e := &felEntry{ownerID: id, pel: NewPEL()}
		f.byOwner[id] = e
		f.entries = append(f.entries, e)
	}
	heap.Init(f)
	return f
}

// Len, Less, Swap, Push, Pop implement heap.Interface.
func (f *FEL) Len() int { return len(f.entries) }
func (f *FEL) Less(i, j int) bool {
	return f.entries[i].pel.Top().Dt < f.entries[j].pel.Top().Dt
}
func (f *FEL) Swap(i, j int) {
	f.entries[i], f.entries[j] = f.entries[j], f.entries[i]
	f.entries[i].index = i
	f.entries[j].index = j
}
func (f *FEL) Push(x any) {
	e := x.(*felEntry)
	e.index = len(f.entries)
	f.entries = append(f.entries, e)
}
func (f *FEL) Pop() any {
	old := f.entries
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	f.entries = old[:n-1]
	return item
}

// fix re-establishes the heap invariant after the entry owned by id had
// its PEL mutated in place.
func (f *FEL) fix(id int) {
	e, ok := f.byOwner[id]
	if !ok {
		return
	}
	heap.Fix(f, e.index)
}

// PushEvent inserts a candidate event into ownerID's PEL (keeping the
// earliest) and re-sorts the FEL.
func (f *FEL) PushEvent(ownerID int, e Event) {
	f.byOwner[ownerID].pel.Push(e)
	f.fix(ownerID)
}

// Clear empties ownerID's PEL (used on invalidation, spec.md §4.3).
func (f *FEL) Clear(ownerID int) {
	f.byOwner[ownerID].pel.Clear()
	f.fix(ownerID)
}

// PopTop marks the PEL at the top of the heap as needing recalculation
// and re-sorts.
func (f *FEL) PopTop() {
	if len(f.entries) == 0 {
		return
	}
	top := f.entries[0]
	top.pel.Pop()
	heap.Fix(f, 0)
}

// Peek returns the owner id and event currently at the top of the FEL.
func (f *FEL) Peek() (ownerID int, e Event) {
	top := f.entries[0]
	return top.ownerID, top.pel.Top()
}

// StreamAll subtracts dt from every stored PEL, advancing the FEL's
// common time origin (spec.md §3/§4.1 "stream(dt)").
func (f *FEL) StreamAll(dt float64) {
	for _, e := range f.entries {
		e.pel.Stream(dt)
	}
	// Streaming does not change relative order, so no re-heapify needed.
}

// Rebuild clears every PEL; callers then re-push fresh events for all
// particles (scheduler.go's rebuildList, spec.md §4.3).
func (f *FEL) Rebuild() {
	for _, e := range f.entries {
		e.pel.Clear()
	}
	heap.Init(f)
}

// SystemSlot is the owner id of the dedicated system-event PEL: one past
// the last particle id (spec.md §3).
func (f *FEL) SystemSlot() int { return len(f.entries) - 1 }
