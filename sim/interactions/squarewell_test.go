package interactions_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dynamo-sim/dynamo/sim"
	"github.com/dynamo-sim/dynamo/sim/interactions"
)

func TestSquareWellCaptureTestClassifiesByWellRadius(t *testing.T) {
	ctx, _ := newtonianCtx()
	p1, p2 := ctx.Store.Get(0), ctx.Store.Get(1)
	sw := interactions.NewSquareWell("well", 1.0, 1.5, 0.5, 1.0)

	p1.Position, p2.Position = sim.NewVector(0, 0, 0), sim.NewVector(1.2, 0, 0)
	assert.Equal(t, 1, sw.CaptureTest(ctx, p1, p2))

	p1b, p2b := &sim.Particle{ID: 10}, &sim.Particle{ID: 11}
	p1b.Position, p2b.Position = sim.NewVector(0, 0, 0), sim.NewVector(3, 0, 0)
	assert.Equal(t, 0, sw.CaptureTest(ctx, p1b, p2b))
}

func TestSquareWellEntersWellAndGainsEnergy(t *testing.T) {
	ctx, _ := newtonianCtx()
	p1, p2 := ctx.Store.Get(0), ctx.Store.Get(1)
	sw := interactions.NewSquareWell("well", 1.0, 1.5, 0.5, 1.0)

	// Approaching from outside the well (well radius 1.5) toward capture.
	p1.Position, p1.Velocity = sim.NewVector(0, 0, 0), sim.NewVector(0.5, 0, 0)
	p2.Position, p2.Velocity = sim.NewVector(2.0, 0, 0), sim.NewVector(0, 0, 0)

	ev := sw.GetEvent(ctx, p1, p2)
	assert.Equal(t, sim.KindInteraction, ev.Kind)

	keBefore := 0.5*p1.Mass*sim.Dot(p1.Velocity, p1.Velocity) + 0.5*p2.Mass*sim.Dot(p2.Velocity, p2.Velocity)
	data := sw.RunEvent(ctx, p1, p2, ev)
	keAfter := 0.5*p1.Mass*sim.Dot(p1.Velocity, p1.Velocity) + 0.5*p2.Mass*sim.Dot(p2.Velocity, p2.Velocity)

	assert.Equal(t, sim.WellKEUp, data.Kind)
	assert.InDelta(t, 0.5, keAfter-keBefore, 1e-9)

	pairs := sw.CapturedPairs()
	assert.Len(t, pairs, 1)
}

func TestSquareWellBounceWhenEscapeEnergyInsufficient(t *testing.T) {
	ctx, _ := newtonianCtx()
	p1, p2 := ctx.Store.Get(0), ctx.Store.Get(1)
	sw := interactions.NewSquareWell("well", 1.0, 1.5, 100.0, 1.0)

	// Start captured (inside the well), moving apart too slowly to pay a
	// well depth of 100: escape must fall back to an elastic bounce off
	// the outer well wall.
	sw.SetCaptured([][2]int{{p1.ID, p2.ID}})
	p1.Position, p1.Velocity = sim.NewVector(0, 0, 0), sim.NewVector(-0.01, 0, 0)
	p2.Position, p2.Velocity = sim.NewVector(1.4, 0, 0), sim.NewVector(0.01, 0, 0)

	ev := sw.GetEvent(ctx, p1, p2)
	data := sw.RunEvent(ctx, p1, p2, ev)

	assert.Equal(t, sim.Bounce, data.Kind)
	// A captured pair remains captured after bouncing off the well wall.
	assert.Len(t, sw.CapturedPairs(), 1)
}

func TestSquareWellCapturedPairsRoundTrip(t *testing.T) {
	sw := interactions.NewSquareWell("well", 1.0, 1.5, 0.5, 1.0)
	sw.SetCaptured([][2]int{{3, 7}, {1, 2}})

	pairs := sw.CapturedPairs()
	assert.Len(t, pairs, 2)

	seen := map[[2]int]bool{}
	for _, p := range pairs {
		seen[p] = true
	}
	assert.True(t, seen[[2]int{3, 7}] || seen[[2]int{7, 3}])
	assert.True(t, seen[[2]int{1, 2}] || seen[[2]int{2, 1}])
}

func TestSquareWellValidateStateFlagsInconsistentCapture(t *testing.T) {
	ctx, _ := newtonianCtx()
	p1, p2 := ctx.Store.Get(0), ctx.Store.Get(1)
	sw := interactions.NewSquareWell("well", 1.0, 1.5, 0.5, 1.0)

	// Far apart (outside the well) but marked captured: inconsistent.
	p1.Position, p2.Position = sim.NewVector(0, 0, 0), sim.NewVector(10, 0, 0)
	sw.SetCaptured([][2]int{{p1.ID, p2.ID}})
	assert.Equal(t, 1, sw.ValidateState(ctx, p1, p2))

	sw.SetCaptured(nil)
	assert.Equal(t, 0, sw.ValidateState(ctx, p1, p2))
}
