package locals_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dynamo-sim/dynamo/sim"
	"github.com/dynamo-sim/dynamo/sim/locals"
)

func TestWallFactoryIsRegistered(t *testing.T) {
	factory, ok := sim.LocalFactories["Wall"]
	require.True(t, ok)

	l := factory(map[string]string{
		"Name": "east", "PointX": "5", "PointY": "0", "PointZ": "0",
		"NormalX": "-1", "NormalY": "0", "NormalZ": "0", "Elasticity": "1",
	})
	w, ok := l.(*locals.Wall)
	require.True(t, ok)
	assert.Equal(t, sim.NewVector(5, 0, 0), w.Point)
	assert.Equal(t, sim.NewVector(-1, 0, 0), w.Normal)
}

func TestWallFactoryPanicsOnMissingAttribute(t *testing.T) {
	factory := sim.LocalFactories["Wall"]
	assert.Panics(t, func() {
		factory(map[string]string{"Name": "east"})
	})
}
