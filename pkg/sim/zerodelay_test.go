package sim_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fyerfyer/gate-sim/pkg/circuit"
	"github.com/fyerfyer/gate-sim/pkg/sim"
)

func TestZeroDelayMultiLevel(t *testing.T) {
	c := buildMultiLevel(t)
	s := sim.NewZeroDelaySimulator(c, circuit.TwoValued)

	vectors := []map[string]circuit.LogicValue{
		{"A": circuit.One, "B": circuit.One, "C": circuit.Zero, "D": circuit.One},
		{"A": circuit.Zero, "B": circuit.One, "C": circuit.Zero, "D": circuit.Zero},
		{"A": circuit.One, "B": circuit.One, "C": circuit.Zero, "D": circuit.Zero},
	}
	wantY := []circuit.LogicValue{circuit.Zero, circuit.Zero, circuit.One}

	for i, v := range vectors {
		s.SimulateVector(vec(t, c, v))
		assert.Equal(t, wantY[i], lastOutput(t, s, c, "Y"), "vector %d", i)
	}
}

// Zero-delay simulation keeps no intermediate trace and reports no hazards
func TestZeroDelayNoTimingArtifacts(t *testing.T) {
	c := buildGlitch(t)
	s := sim.NewZeroDelaySimulator(c, circuit.TwoValued)

	s.SimulateVector(vec(t, c, map[string]circuit.LogicValue{"A": circuit.One}))
	hazards := s.SimulateVector(vec(t, c, map[string]circuit.LogicValue{"A": circuit.Zero}))
	assert.Empty(t, hazards)
	assert.Empty(t, s.IntermediateLog())
	assert.Len(t, s.OutputLog(), 2)
}

// A two-gate loop must not hang the simulator: the sweep bound forces
// termination within two passes regardless of the fixed point reached
func TestZeroDelayFeedbackTerminates(t *testing.T) {
	c := circuit.NewCircuit("feedback")
	_, err := c.AddGate("OR", []string{"A", "N2"}, "N1")
	require.NoError(t, err)
	_, err = c.AddGate("AND", []string{"N1", "B"}, "N2")
	require.NoError(t, err)
	c.SetPrimaryInputs([]string{"A", "B"})
	c.SetPrimaryOutputs([]string{"N2"})

	s := sim.NewZeroDelaySimulator(c, circuit.TwoValued)
	s.SimulateVector(vec(t, c, map[string]circuit.LogicValue{"A": circuit.One, "B": circuit.One}))
	assert.Len(t, s.OutputLog(), 1)
	assert.Positive(t, s.GateSimCount())
}

// A change flowing from a leveled gate back into level-0 loop gates sets
// the re-iteration flag; the second sweep must still terminate
func TestZeroDelayFeedbackSecondPass(t *testing.T) {
	c := circuit.NewCircuit("feedback2")
	_, err := c.AddGate("OR", []string{"A", "A"}, "N1")
	require.NoError(t, err)
	_, err = c.AddGate("AND", []string{"N1", "B"}, "N5")
	require.NoError(t, err)
	_, err = c.AddGate("AND", []string{"N5", "N4"}, "N2")
	require.NoError(t, err)
	_, err = c.AddGate("NOT", []string{"N2"}, "N4")
	require.NoError(t, err)
	c.SetPrimaryInputs([]string{"A", "B"})
	c.SetPrimaryOutputs([]string{"N2"})

	s := sim.NewZeroDelaySimulator(c, circuit.TwoValued)
	s.SimulateVector(vec(t, c, map[string]circuit.LogicValue{"A": circuit.One, "B": circuit.One}))
	assert.Len(t, s.OutputLog(), 1)
}

// Gates whose inputs did not change are never re-evaluated
func TestZeroDelayEventDriven(t *testing.T) {
	c := buildMultiLevel(t)
	s := sim.NewZeroDelaySimulator(c, circuit.TwoValued)

	s.SimulateVector(vec(t, c, map[string]circuit.LogicValue{
		"A": circuit.One, "B": circuit.One, "C": circuit.Zero, "D": circuit.One,
	}))
	count := s.GateSimCount()

	// Only C changes: the AND over A,B stays untouched
	s.SimulateVector(vec(t, c, map[string]circuit.LogicValue{"C": circuit.One}))
	assert.Equal(t, count+1, s.GateSimCount())
}
