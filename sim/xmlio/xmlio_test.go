package xmlio_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dynamo-sim/dynamo/sim"
	_ "github.com/dynamo-sim/dynamo/sim/interactions"
	"github.com/dynamo-sim/dynamo/sim/xmlio"
)

func minimalDoc() string {
	return `<?xml version="1.0" encoding="UTF-8"?>
<Simulation>
  <Units UnitLength="1" UnitTime="1" UnitMass="1"/>
  <ParticleData>
    <Pt ID="0"><P x="0" y="0" z="0"/><V x="1" y="0" z="0"/></Pt>
    <Pt ID="1"><P x="2" y="0" z="0"/><V x="-1" y="0" z="0"/></Pt>
  </ParticleData>
  <Dynamics>
    <BC Type="Periodic" BoxX="10" BoxY="10" BoxZ="10"/>
    <Interactions>
      <Plugin Type="HardSphere" Name="core" Diameter="1" Elasticity="1"/>
    </Interactions>
    <Globals/>
    <Locals/>
    <SystemEvents/>
  </Dynamics>
</Simulation>`
}

func TestLoadParsesParticlesAndBoundary(t *testing.T) {
	rng := sim.NewPartitionedRNG(sim.NewSimulationKey(1))
	simn, err := xmlio.Load(strings.NewReader(minimalDoc()), rng)
	require.NoError(t, err)

	assert.Equal(t, 2, simn.Store.N())
	assert.Equal(t, sim.NewVector(2, 0, 0), simn.Store.Get(1).Position)
	assert.Len(t, simn.Interactions, 1)
}

func TestLoadRejectsOutOfRangePtID(t *testing.T) {
	doc := `<?xml version="1.0"?>
<Simulation>
  <Units UnitLength="1" UnitTime="1" UnitMass="1"/>
  <ParticleData><Pt ID="5"><P x="0" y="0" z="0"/><V x="0" y="0" z="0"/></Pt></ParticleData>
  <Dynamics>
    <BC Type="Rectangular"/>
    <Interactions><Plugin Type="HardSphere" Name="core" Diameter="1" Elasticity="1"/></Interactions>
    <Globals/><Locals/><SystemEvents/>
  </Dynamics>
</Simulation>`
	rng := sim.NewPartitionedRNG(sim.NewSimulationKey(1))
	_, err := xmlio.Load(strings.NewReader(doc), rng)
	assert.ErrorIs(t, err, sim.ErrConfiguration)
}

func TestLoadRejectsUnknownInteractionType(t *testing.T) {
	doc := `<?xml version="1.0"?>
<Simulation>
  <Units UnitLength="1" UnitTime="1" UnitMass="1"/>
  <ParticleData><Pt ID="0"><P x="0" y="0" z="0"/><V x="0" y="0" z="0"/></Pt></ParticleData>
  <Dynamics>
    <BC Type="Rectangular"/>
    <Interactions><Plugin Type="Magnetic" Name="x"/></Interactions>
    <Globals/><Locals/><SystemEvents/>
  </Dynamics>
</Simulation>`
	rng := sim.NewPartitionedRNG(sim.NewSimulationKey(1))
	_, err := xmlio.Load(strings.NewReader(doc), rng)
	assert.ErrorIs(t, err, sim.ErrConfiguration)
}

func TestSaveThenLoadRoundTripsParticleState(t *testing.T) {
	rng := sim.NewPartitionedRNG(sim.NewSimulationKey(9))
	original, err := xmlio.Load(strings.NewReader(minimalDoc()), rng)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, xmlio.Save(&buf, original))

	reloaded, err := xmlio.Load(&buf, sim.NewPartitionedRNG(sim.NewSimulationKey(9)))
	require.NoError(t, err)

	require.Equal(t, original.Store.N(), reloaded.Store.N())
	for i := 0; i < original.Store.N(); i++ {
		assert.Equal(t, original.Store.Get(i).Position, reloaded.Store.Get(i).Position)
		assert.Equal(t, original.Store.Get(i).Velocity, reloaded.Store.Get(i).Velocity)
	}
	assert.Len(t, reloaded.Interactions, 1)
}

func TestSaveStaticParticleMarksStaticAttr(t *testing.T) {
	rng := sim.NewPartitionedRNG(sim.NewSimulationKey(1))
	simn, err := xmlio.Load(strings.NewReader(minimalDoc()), rng)
	require.NoError(t, err)
	simn.Store.Get(0).State &^= sim.Dynamic

	var buf bytes.Buffer
	require.NoError(t, xmlio.Save(&buf, simn))
	assert.Contains(t, buf.String(), `Static="Static"`)
}
