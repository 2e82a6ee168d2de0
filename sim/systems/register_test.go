package systems_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dynamo-sim/dynamo/sim"
	"github.com/dynamo-sim/dynamo/sim/systems"
)

func TestThermostatFactoryIsRegistered(t *testing.T) {
	factory, ok := sim.SystemFactories["Andersen"]
	require.True(t, ok)

	sys := factory(map[string]string{"Name": "ghost", "Temperature": "2.0", "CollisionRate": "1.5", "AutoTune": "true"})
	th, ok := sys.(*systems.Thermostat)
	require.True(t, ok)
	assert.Equal(t, 2.0, th.Temperature)
}

func TestTickerFactoryIsRegisteredWithDefaultPeriod(t *testing.T) {
	factory, ok := sim.SystemFactories["Ticker"]
	require.True(t, ok)

	sys := factory(map[string]string{"Name": "tick"})
	tk, ok := sys.(*systems.Ticker)
	require.True(t, ok)
	assert.Equal(t, 1.0, tk.Period)
}
