package interactions_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dynamo-sim/dynamo/sim"
	"github.com/dynamo-sim/dynamo/sim/interactions"
)

func TestHardSphereFactoryIsRegistered(t *testing.T) {
	factory, ok := sim.InteractionFactories["HardSphere"]
	require.True(t, ok)

	in := factory(map[string]string{"Name": "core", "Diameter": "1.5", "Elasticity": "0.9"})
	hs, ok := in.(*interactions.HardSphere)
	require.True(t, ok)
	assert.Equal(t, 1.5, hs.Diameter)
	assert.Equal(t, 0.9, hs.Elasticity)
}

func TestSquareWellFactoryIsRegistered(t *testing.T) {
	factory, ok := sim.InteractionFactories["SquareWell"]
	require.True(t, ok)

	in := factory(map[string]string{
		"Name": "well", "CoreDiameter": "1.0", "Lambda": "1.5", "WellDepth": "0.5", "Elasticity": "1.0",
	})
	sw, ok := in.(*interactions.SquareWell)
	require.True(t, ok)
	assert.Equal(t, 1.0, sw.CoreDiameter)
	assert.Equal(t, 1.5, sw.LambdaRatio)
	assert.Equal(t, 0.5, sw.WellDepth)
}

func TestFactoryPanicsOnBadNumericAttribute(t *testing.T) {
	factory := sim.InteractionFactories["HardSphere"]
	assert.Panics(t, func() {
		factory(map[string]string{"Name": "core", "Diameter": "not-a-number", "Elasticity": "1"})
	})
}
