package sim_test

import (
	"fmt"
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fyerfyer/gate-sim/pkg/circuit"
	"github.com/fyerfyer/gate-sim/pkg/sim"
)

// buildAndCircuit builds AND(A,B) -> Y
func buildAndCircuit(t *testing.T) *circuit.Circuit {
	t.Helper()
	c := circuit.NewCircuit("and")
	_, err := c.AddGate("AND", []string{"A", "B"}, "Y")
	require.NoError(t, err)
	c.SetPrimaryInputs([]string{"A", "B"})
	c.SetPrimaryOutputs([]string{"Y"})
	return c
}

// buildCascade builds AND(A,B) -> X, OR(X,C) -> Y
func buildCascade(t *testing.T) *circuit.Circuit {
	t.Helper()
	c := circuit.NewCircuit("cascade")
	_, err := c.AddGate("AND", []string{"A", "B"}, "X")
	require.NoError(t, err)
	_, err = c.AddGate("OR", []string{"X", "C"}, "Y")
	require.NoError(t, err)
	c.SetPrimaryInputs([]string{"A", "B", "C"})
	c.SetPrimaryOutputs([]string{"Y"})
	return c
}

// buildMultiLevel builds AND(A,B) -> X1, OR(C,D) -> X2, XOR(X1,X2) -> Y
func buildMultiLevel(t *testing.T) *circuit.Circuit {
	t.Helper()
	c := circuit.NewCircuit("multilevel")
	_, err := c.AddGate("AND", []string{"A", "B"}, "X1")
	require.NoError(t, err)
	_, err = c.AddGate("OR", []string{"C", "D"}, "X2")
	require.NoError(t, err)
	_, err = c.AddGate("XOR", []string{"X1", "X2"}, "Y")
	require.NoError(t, err)
	c.SetPrimaryInputs([]string{"A", "B", "C", "D"})
	c.SetPrimaryOutputs([]string{"Y"})
	return c
}

// buildGlitch builds NOT(A) -> N, AND(A,N) -> Y. Raising A makes the AND
// see both inputs high for one unit delay, pulsing Y.
func buildGlitch(t *testing.T) *circuit.Circuit {
	t.Helper()
	c := circuit.NewCircuit("glitch")
	_, err := c.AddGate("NOT", []string{"A"}, "N")
	require.NoError(t, err)
	_, err = c.AddGate("AND", []string{"A", "N"}, "Y")
	require.NoError(t, err)
	c.SetPrimaryInputs([]string{"A"})
	c.SetPrimaryOutputs([]string{"Y"})
	return c
}

// buildNotCircuit builds NOT(A) -> Y
func buildNotCircuit(t *testing.T) *circuit.Circuit {
	t.Helper()
	c := circuit.NewCircuit("not")
	_, err := c.AddGate("NOT", []string{"A"}, "Y")
	require.NoError(t, err)
	c.SetPrimaryInputs([]string{"A"})
	c.SetPrimaryOutputs([]string{"Y"})
	return c
}

// vec resolves a name-keyed vector against the circuit
func vec(t *testing.T, c *circuit.Circuit, inputs map[string]circuit.LogicValue) map[int]circuit.LogicValue {
	t.Helper()
	vector, err := c.VectorByName(inputs)
	require.NoError(t, err)
	return vector
}

// lastOutput returns the named net's value from the most recent output-log
// entry
func lastOutput(t *testing.T, s sim.Simulator, c *circuit.Circuit, name string) circuit.LogicValue {
	t.Helper()
	log := s.OutputLog()
	require.NotEmpty(t, log)
	id, err := c.GetNetID(name)
	require.NoError(t, err)
	val, ok := log[len(log)-1][id]
	require.True(t, ok, "net %s not in output log", name)
	return val
}

// netID looks up a net id, failing the test on unknown names
func netID(t *testing.T, c *circuit.Circuit, name string) int {
	t.Helper()
	id, err := c.GetNetID(name)
	require.NoError(t, err)
	return id
}

// reference evaluates the circuit functionally, gate by gate in level
// order, as the ground truth for scheduler agreement
type reference struct {
	c      *circuit.Circuit
	model  circuit.LogicModel
	order  []*circuit.Gate
	values []circuit.LogicValue
}

func newReference(c *circuit.Circuit, model circuit.LogicModel) *reference {
	topo := circuit.NewTopology(c)
	order := make([]*circuit.Gate, 0, c.NumGates())
	order = append(order, c.Gates()...)
	sort.SliceStable(order, func(i, j int) bool {
		return topo.Level(order[i].ID) < topo.Level(order[j].ID)
	})
	values := make([]circuit.LogicValue, c.NumNets())
	for i := range values {
		values[i] = model.InitialValue()
	}
	return &reference{c: c, model: model, order: order, values: values}
}

// apply commits a vector and returns the resulting primary output values
func (r *reference) apply(vector map[int]circuit.LogicValue) map[int]circuit.LogicValue {
	for net, val := range vector {
		r.values[net] = val
	}
	for _, g := range r.order {
		r.values[g.Output] = g.Evaluate(r.values, r.model)
	}
	out := make(map[int]circuit.LogicValue, len(r.c.PrimaryOutputs()))
	for _, id := range r.c.PrimaryOutputs() {
		out[id] = r.values[id]
	}
	return out
}

// randomTree builds a random acyclic circuit where every net feeds at most
// one gate, so all schedulers settle to the functional result
func randomTree(t *testing.T, rng *rand.Rand, numInputs, numGates int, gateTypes []string) *circuit.Circuit {
	t.Helper()
	c := circuit.NewCircuit("random")
	avail := make([]string, numInputs)
	for i := range avail {
		avail[i] = fmt.Sprintf("i%d", i)
	}
	c.SetPrimaryInputs(append([]string(nil), avail...))

	for i := 0; i < numGates; i++ {
		gt := gateTypes[rng.Intn(len(gateTypes))]
		k := 1
		if gt != "NOT" && len(avail) >= 2 {
			k = 2
		}
		inputs := make([]string, 0, k)
		for j := 0; j < k; j++ {
			idx := rng.Intn(len(avail))
			inputs = append(inputs, avail[idx])
			avail = append(avail[:idx], avail[idx+1:]...)
		}
		out := fmt.Sprintf("n%d", i)
		_, err := c.AddGate(gt, inputs, out)
		require.NoError(t, err)
		avail = append(avail, out)
	}

	// The unread frontier becomes the primary outputs
	c.SetPrimaryOutputs(avail)
	return c
}
