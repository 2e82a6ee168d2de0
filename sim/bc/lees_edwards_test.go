package bc_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dynamo-sim/dynamo/sim"
	"github.com/dynamo-sim/dynamo/sim/bc"
)

func TestLeesEdwardsStartsUnsheared(t *testing.T) {
	le := bc.NewLeesEdwards(sim.NewVector(10, 10, 10), 0.5)
	assert.Equal(t, 0.0, le.Offset)
}

func TestLeesEdwardsAdvanceAccumulatesShear(t *testing.T) {
	le := bc.NewLeesEdwards(sim.NewVector(10, 10, 10), 0.5)
	le.Advance(2.0)
	// Offset = shearRate * Box.Y * dt = 0.5 * 10 * 2 = 10, wraps mod Box.X (10) to 0.
	assert.InDelta(t, 0.0, le.Offset, 1e-9)

	le2 := bc.NewLeesEdwards(sim.NewVector(10, 10, 10), 0.1)
	le2.Advance(1.0)
	assert.InDelta(t, 1.0, le2.Offset, 1e-9)
}

// TestLeesEdwardsYCrossingShiftsVelocity is spec.md §8 scenario 6's
// signature check: a particle crossing the sheared y boundary has its x
// velocity shifted by shearRate*Box.Y per image crossed.
func TestLeesEdwardsYCrossingShiftsVelocity(t *testing.T) {
	box := sim.NewVector(10, 10, 10)
	le := bc.NewLeesEdwards(box, 0.2)

	pos := sim.NewVector(0, 6, 0) // one unit beyond the +y face at y=5
	vel := sim.NewVector(0, 1, 0)
	le.ApplyPosVel(&pos, &vel)

	assert.InDelta(t, -4, pos.Y, 1e-9)
	assert.InDelta(t, 0.2*10, vel.X, 1e-9)
}

func TestLeesEdwardsDisplacementShiftsRelativeVelocityOppositely(t *testing.T) {
	box := sim.NewVector(10, 10, 10)
	le := bc.NewLeesEdwards(box, 0.2)

	p1 := &sim.Particle{Position: sim.NewVector(0, 6, 0), Velocity: sim.NewVector(0, 0, 0)}
	p2 := &sim.Particle{Position: sim.NewVector(0, 0, 0), Velocity: sim.NewVector(0, 0, 0)}

	_, vij := le.Displacement(p1, p2)
	assert.InDelta(t, -0.2*10, vij.X, 1e-9)
}
