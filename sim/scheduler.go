package sim

import (
	"fmt"
	"math"

	log "github.com/sirupsen/logrus"
)

// rejectionLimit bounds how many times a freshly-recomputed Interaction
// event is allowed to lose to the new FEL top before the scheduler forces
// it through anyway, breaking floating-point re-prediction cycles (spec.md
// §4.3 "Rejection watchdog", grounded on
// original_source/src/dynamo/dynamo/schedulers/scheduler.cpp's
// rejectionLimit = 10).
const rejectionLimit = 10

// NeighbourProvider answers "which particles are close enough to p that a
// pair event between them is worth predicting". sim/cells implements this
// on top of the Morton cell list; tests may use a brute-force all-pairs
// stub.
type NeighbourProvider interface {
	Neighbours(pid int) []int
}

// InteractionCatalogue selects which Interaction governs a given pair.
// Most scenarios (spec.md §8's head-on pair, Newton's cradle, elastic gas)
// use a single uniform interaction for every pair; square-well mixtures
// would dispatch on species here instead.
type InteractionCatalogue interface {
	InteractionFor(p1, p2 *Particle) Interaction
}

// Scheduler is the central event-loop orchestrator of spec.md §4.3: it
// owns the FEL, dispatches the next event to the owning capability, and
// performs lazy-deletion cleanup and full updates. Grounded on
// original_source/src/dynamo/dynamo/schedulers/scheduler.cpp's
// runNextEvent, reshaped into the teacher's Simulator.Run()/Schedule()
// heap-driven step style (formerly sim/simulator.go).
type Scheduler struct {
	ctx   *Context
	fel   *FEL
	neigh NeighbourProvider
	cat   InteractionCatalogue

	globals []Global
	locals  []Local
	systems []System

	interactionRejections int
	localRejections       int

	EventsProcessed uint64
}

// NewScheduler wires a Scheduler over an already-populated Store/BC/
// Dynamics Context. Capability lists are taken by value so callers can
// register plugins with append before passing them in (teacher's
// register.go init()-list pattern, spec.md §9).
func NewScheduler(ctx *Context, neigh NeighbourProvider, cat InteractionCatalogue, globals []Global, locals []Local, systems []System) *Scheduler {
	return &Scheduler{
		ctx:     ctx,
		fel:     NewFEL(ctx.Store.N()),
		neigh:   neigh,
		cat:     cat,
		globals: globals,
		locals:  locals,
		systems: systems,
	}
}

// SystemTime is the scheduler's current simulation clock.
func (s *Scheduler) SystemTime() float64 { return s.ctx.SystemTime }

// Initialise validates every interacting pair and local-bound particle
// (capping logged warnings at 100, spec.md §4.5 "validate at load"), then
// builds the initial FEL from scratch.
func (s *Scheduler) Initialise() error {
	for _, g := range s.globals {
		g.Initialise(s.ctx)
	}
	for _, l := range s.locals {
		l.Initialise(s.ctx)
	}
	for _, sys := range s.systems {
		sys.Initialise(s.ctx)
	}

	warnings := 0
	n := s.ctx.Store.N()
	for id1 := 0; id1 < n; id1++ {
		p1 := s.ctx.Store.Get(id1)
		for _, id2 := range s.neigh.Neighbours(id1) {
			if id2 <= id1 {
				continue
			}
			p2 := s.ctx.Store.Get(id2)
			inter := s.cat.InteractionFor(p1, p2)
			if inter == nil {
				continue
			}
			if w := inter.ValidateState(s.ctx, p1, p2); w > 0 {
				if warnings < 100 {
					log.WithFields(log.Fields{"p1": id1, "p2": id2, "interaction": inter.Name()}).
						Warn("interaction validation warning")
				}
				warnings += w
			}
		}
		for _, l := range s.locals {
			if l.IsInteraction(p1) {
				if w := l.ValidateState(s.ctx, p1); w > 0 {
					if warnings < 100 {
						log.WithFields(log.Fields{"p": id1, "local": l.Name()}).Warn("local validation warning")
					}
					warnings += w
				}
			}
		}
	}
	if warnings > 100 {
		log.WithField("total", warnings).Warn("suppressed further validation warnings")
	}

	s.rebuildList()
	return nil
}

// rebuildList discards the entire FEL and re-derives every prediction from
// scratch (spec.md §4.3's rebuildList, used at init and after BC/cell
// geometry changes that invalidate every cached event).
func (s *Scheduler) rebuildList() {
	s.fel.Rebuild()
	n := s.ctx.Store.N()
	for id := 0; id < n; id++ {
		s.addEvents(s.ctx.Store.Get(id))
	}
	s.rebuildSystemEvents()
}

// addEvents predicts and pushes every candidate event for a single
// particle: its applicable globals, its applicable locals, and one
// interaction event per neighbour.
func (s *Scheduler) addEvents(p *Particle) {
	s.ctx.Dynamics.UpdateParticle(p, s.ctx.SystemTime)
	for _, g := range s.globals {
		if g.IsInteraction(p) {
			s.fel.PushEvent(p.ID, g.GetEvent(s.ctx, p))
		}
	}
	for _, l := range s.locals {
		if l.IsInteraction(p) {
			s.fel.PushEvent(p.ID, l.GetEvent(s.ctx, p))
		}
	}
	for _, id2 := range s.neigh.Neighbours(p.ID) {
		s.addInteractionEvent(p.ID, id2)
	}
}

// addInteractionEvent predicts the next event between id1 and id2 and, if
// one exists, pushes it onto id1's PEL tagged with id2's current event
// counter — the lazy-deletion stamp of spec.md §4.2.
func (s *Scheduler) addInteractionEvent(id1, id2 int) {
	if id1 == id2 {
		return
	}
	p1 := s.ctx.Store.Get(id1)
	p2 := s.ctx.Store.Get(id2)
	s.ctx.Dynamics.UpdateParticle(p2, s.ctx.SystemTime)
	inter := s.cat.InteractionFor(p1, p2)
	if inter == nil {
		return
	}
	ev := inter.GetEvent(s.ctx, p1, p2)
	if ev.Kind == None {
		return
	}
	ev.SecondaryID = id2
	ev.CollisionCounter = p2.EventCount
	ev.PluginName = inter.Name()
	s.fel.PushEvent(id1, ev)
}

// rebuildSystemEvents clears the system slot and re-predicts every
// System's next firing (spec.md §4.5: systems always reschedule after
// running, since their interval is usually fixed or freshly retuned).
func (s *Scheduler) rebuildSystemEvents() {
	slot := s.fel.SystemSlot()
	s.fel.Clear(slot)
	for i, sys := range s.systems {
		s.fel.PushEvent(slot, Event{Kind: KindSystem, Dt: sys.Dt(), SecondaryID: i, PluginName: sys.Name()})
	}
}

// Invalidate discards id's cached predictions and bumps its event counter,
// so any interaction event still pointing at it in another particle's PEL
// is recognised as stale (spec.md §4.2).
func (s *Scheduler) Invalidate(p *Particle) {
	p.EventCount++
	s.fel.Clear(p.ID)
}

// FullUpdate invalidates, re-streams, and re-predicts every capability's
// event for each given particle, including fresh interaction events
// against their neighbours. This is the workhorse called after every
// executed event (spec.md §4.3).
func (s *Scheduler) FullUpdate(ps ...*Particle) {
	for _, p := range ps {
		s.Invalidate(p)
	}
	for _, p := range ps {
		s.addEvents(p)
	}
}

// PushEvent lets a Global/Local push a freshly predicted event onto an
// owner's PEL — exposed so capability plugins outside this package
// (sim/cells, sim/globals) can participate without a back-reference to a
// concrete scheduler struct elsewhere.
func (s *Scheduler) PushEvent(ownerID int, ev Event) { s.fel.PushEvent(ownerID, ev) }

// PopTop marks the current top-of-FEL entry as needing recalculation,
// used by Global implementations that own the top event and must consume
// it themselves (spec.md §4.3 dispatch table: Global "no (callee pops)").
func (s *Scheduler) PopTop() { s.fel.PopTop() }

// Neighbours exposes the configured NeighbourProvider to capability code.
func (s *Scheduler) Neighbours(pid int) []int { return s.neigh.Neighbours(pid) }

// AddInteractionEvent exposes pair-event (re)prediction to Global
// implementations (e.g. a cell-transition global must re-predict
// interaction events against the particle's new neighbour set).
func (s *Scheduler) AddInteractionEvent(id1, id2 int) { s.addInteractionEvent(id1, id2) }

// Rebuild exposes a full FEL rebuild to capabilities whose effect changes
// global geometry (e.g. a Lees-Edwards shear-rate change).
func (s *Scheduler) Rebuild() { s.rebuildList() }

func finite(dt float64) bool { return !math.IsNaN(dt) && !math.IsInf(dt, 0) }

// lazyDeletionCleanup discards stale Interaction events sitting at the top
// of the FEL — ones whose stamped CollisionCounter no longer matches the
// secondary particle's live EventCount — by marking their owner's PEL
// Recalculate and re-sifting, until the top is either not an Interaction
// or is still valid (spec.md §4.2, grounded on scheduler.cpp's
// lazyDeletionCleanup while-loop).
func (s *Scheduler) lazyDeletionCleanup() {
	for {
		_, ev := s.fel.Peek()
		if ev.Kind != KindInteraction {
			return
		}
		secondary := s.ctx.Store.Get(ev.SecondaryID)
		if ev.CollisionCounter == secondary.EventCount {
			return
		}
		s.fel.PopTop()
	}
}

// RunNext advances the simulation by exactly one event: cleans stale
// entries, dispatches the new top by kind, and returns any fatal error
// (spec.md §4.3's central dispatch table).
func (s *Scheduler) RunNext() error {
	s.lazyDeletionCleanup()
	ownerID, ev := s.fel.Peek()

	switch ev.Kind {
	case KindInteraction:
		return s.runInteraction(ownerID, ev)
	case KindLocal:
		return s.runLocal(ownerID, ev)
	case KindGlobal:
		return s.runGlobal(ownerID, ev)
	case KindSystem:
		return s.runSystem(ev)
	case Recalculate:
		s.FullUpdate(s.ctx.Store.Get(ownerID))
		return nil
	case None:
		return &SimError{Err: ErrEmptyFEL, Kind: ev.Kind, OwnerID: ownerID, Dt: ev.Dt}
	default:
		return fmt.Errorf("%w: unhandled event kind %s", ErrConfiguration, ev.Kind)
	}
}

func (s *Scheduler) runInteraction(id1 int, ev Event) error {
	if !finite(ev.Dt) {
		return newNumericError(ev, id1)
	}
	p1 := s.ctx.Store.Get(id1)
	p2 := s.ctx.Store.Get(ev.SecondaryID)

	s.fel.PopTop()
	s.lazyDeletionCleanup()

	s.ctx.Dynamics.UpdateParticlePair(p1, p2, s.ctx.SystemTime)
	inter := s.cat.InteractionFor(p1, p2)
	if inter == nil {
		return fmt.Errorf("%w: no interaction registered for particles %d,%d", ErrConfiguration, id1, p2.ID)
	}
	fresh := inter.GetEvent(s.ctx, p1, p2)

	_, top := s.fel.Peek()
	reject := false
	switch {
	case fresh.Kind == None:
		reject = true
	case fresh.Dt > top.Dt:
		s.interactionRejections++
		if s.interactionRejections < rejectionLimit {
			reject = true
		}
	}
	if reject {
		s.FullUpdate(p1, p2)
		return nil
	}
	s.interactionRejections = 0
	if !finite(fresh.Dt) {
		return newNumericError(fresh, id1)
	}

	s.ctx.SystemTime += fresh.Dt
	s.fel.StreamAll(fresh.Dt)
	s.ctx.Dynamics.Stream(fresh.Dt)
	s.ctx.BC.Advance(fresh.Dt)
	s.ctx.Dynamics.UpdateParticlePair(p1, p2, s.ctx.SystemTime)

	data := inter.RunEvent(s.ctx, p1, p2, fresh)
	log.WithFields(log.Fields{
		"p1": data.Particle1ID, "p2": data.Particle2ID, "kind": data.Kind, "deltaKE": data.DeltaKE,
	}).Debug("interaction event executed")

	s.FullUpdate(p1, p2)
	s.EventsProcessed++
	return nil
}

func (s *Scheduler) runLocal(id int, ev Event) error {
	if !finite(ev.Dt) {
		return newNumericError(ev, id)
	}
	p := s.ctx.Store.Get(id)

	s.fel.PopTop()
	s.lazyDeletionCleanup()

	s.ctx.Dynamics.UpdateParticle(p, s.ctx.SystemTime)
	var target Local
	for _, l := range s.locals {
		if l.Name() == ev.PluginName {
			target = l
			break
		}
	}
	if target == nil {
		return fmt.Errorf("%w: unknown local plugin %q", ErrConfiguration, ev.PluginName)
	}
	fresh := target.GetEvent(s.ctx, p)

	_, top := s.fel.Peek()
	reject := false
	switch {
	case fresh.Kind == None:
		reject = true
	case fresh.Dt > top.Dt:
		s.localRejections++
		if s.localRejections < rejectionLimit {
			reject = true
		}
	}
	if reject {
		s.FullUpdate(p)
		return nil
	}
	s.localRejections = 0
	if !finite(fresh.Dt) {
		return newNumericError(fresh, id)
	}

	s.ctx.SystemTime += fresh.Dt
	s.fel.StreamAll(fresh.Dt)
	s.ctx.Dynamics.Stream(fresh.Dt)
	s.ctx.BC.Advance(fresh.Dt)
	s.ctx.Dynamics.UpdateParticle(p, s.ctx.SystemTime)

	data := target.RunEvent(s.ctx, p, fresh)
	log.WithFields(log.Fields{"p": data.ParticleID, "kind": data.Kind, "deltaKE": data.DeltaKE, "local": target.Name()}).
		Debug("local event executed")

	s.FullUpdate(p)
	s.EventsProcessed++
	return nil
}

func (s *Scheduler) runGlobal(id int, ev Event) error {
	if !finite(ev.Dt) {
		return newNumericError(ev, id)
	}
	p := s.ctx.Store.Get(id)
	var target Global
	for _, g := range s.globals {
		if g.Name() == ev.PluginName {
			target = g
			break
		}
	}
	if target == nil {
		return fmt.Errorf("%w: unknown global plugin %q", ErrConfiguration, ev.PluginName)
	}

	s.ctx.SystemTime += ev.Dt
	s.fel.StreamAll(ev.Dt)
	s.ctx.Dynamics.Stream(ev.Dt)
	s.ctx.BC.Advance(ev.Dt)

	// Global is responsible for popping its own PEL slot (via s.PopTop)
	// and re-predicting whatever events its effect invalidates.
	target.RunEvent(s.ctx, s, p, ev.Dt)
	s.EventsProcessed++
	return nil
}

func (s *Scheduler) runSystem(ev Event) error {
	if !finite(ev.Dt) {
		return newNumericError(ev, s.fel.SystemSlot())
	}
	sys := s.systems[ev.SecondaryID]

	s.ctx.SystemTime += ev.Dt
	s.fel.StreamAll(ev.Dt)
	s.ctx.Dynamics.Stream(ev.Dt)
	s.ctx.BC.Advance(ev.Dt)

	sys.RunEvent(s.ctx, s)
	s.rebuildSystemEvents()
	s.EventsProcessed++
	return nil
}

// Run drives the scheduler until maxEvents have been processed or the
// system clock reaches maxTime (spec.md §6 CLI: --events / --sim-end-time),
// whichever comes first. A maxEvents or maxTime of zero/negative disables
// that bound.
func (s *Scheduler) Run(maxEvents uint64, maxTime float64) error {
	for {
		if maxEvents > 0 && s.EventsProcessed >= maxEvents {
			return nil
		}
		if maxTime > 0 && s.ctx.SystemTime >= maxTime {
			return nil
		}
		if err := s.RunNext(); err != nil {
			return err
		}
	}
}
