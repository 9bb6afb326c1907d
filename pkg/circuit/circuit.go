package circuit

import (
	"errors"
	"fmt"
)

// Build and lookup errors
var (
	// ErrUnsupportedGate is returned when a gate type name is not in the
	// supported set
	ErrUnsupportedGate = errors.New("unsupported gate type")
	// ErrArity is returned when a gate is built with an invalid input count
	ErrArity = errors.New("invalid gate arity")
	// ErrUnknownNet is returned by read-side lookups of names or ids that
	// were never declared
	ErrUnknownNet = errors.New("unknown net")
)

// Circuit represents a combinational netlist: nets identified by dense
// integer ids, gates in insertion order, and a fanout index. A Circuit
// carries no signal values; those belong to the simulators, so several
// simulators may share one Circuit.
type Circuit struct {
	Name     string
	netIDs   map[string]int
	netNames []string
	gates    []*Gate
	fanout   [][]*Gate
	inputs   []int
	outputs  []int
}

// NewCircuit creates a new empty circuit with the given name
func NewCircuit(name string) *Circuit {
	return &Circuit{
		Name:   name,
		netIDs: make(map[string]int),
	}
}

// AddNet adds a net by name if not already present and returns its id
func (c *Circuit) AddNet(name string) int {
	if id, ok := c.netIDs[name]; ok {
		return id
	}
	id := len(c.netNames)
	c.netIDs[name] = id
	c.netNames = append(c.netNames, name)
	c.fanout = append(c.fanout, nil)
	return id
}

// AddGate adds a gate to the circuit, creating any missing nets. The gate
// type name is case-insensitive.
func (c *Circuit) AddGate(typeName string, inputNames []string, outputName string) (*Gate, error) {
	gt, err := ParseGateType(typeName)
	if err != nil {
		return nil, err
	}
	if gt == NOT && len(inputNames) != 1 {
		return nil, fmt.Errorf("%w: NOT takes exactly 1 input, got %d", ErrArity, len(inputNames))
	}
	if len(inputNames) < 1 {
		return nil, fmt.Errorf("%w: %s takes at least 1 input", ErrArity, gt)
	}

	inputs := make([]int, len(inputNames))
	for i, name := range inputNames {
		inputs[i] = c.AddNet(name)
	}
	gate := &Gate{
		ID:     len(c.gates),
		Type:   gt,
		Inputs: inputs,
		Output: c.AddNet(outputName),
	}
	c.gates = append(c.gates, gate)
	for _, in := range inputs {
		c.fanout[in] = append(c.fanout[in], gate)
	}
	return gate, nil
}

// SetPrimaryInputs declares the primary input nets, creating them if
// necessary. Order is preserved.
func (c *Circuit) SetPrimaryInputs(names []string) {
	c.inputs = make([]int, len(names))
	for i, name := range names {
		c.inputs[i] = c.AddNet(name)
	}
}

// SetPrimaryOutputs declares the primary output nets, creating them if
// necessary. Order is preserved.
func (c *Circuit) SetPrimaryOutputs(names []string) {
	c.outputs = make([]int, len(names))
	for i, name := range names {
		c.outputs[i] = c.AddNet(name)
	}
}

// GetNetName returns the name of a net by id
func (c *Circuit) GetNetName(id int) (string, error) {
	if id < 0 || id >= len(c.netNames) {
		return "", fmt.Errorf("%w: id %d", ErrUnknownNet, id)
	}
	return c.netNames[id], nil
}

// GetNetID returns the id of a net by name
func (c *Circuit) GetNetID(name string) (int, error) {
	id, ok := c.netIDs[name]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownNet, name)
	}
	return id, nil
}

// GetGateByOutput returns all gates driving the given net. For well-formed
// circuits this is zero or one gate.
func (c *Circuit) GetGateByOutput(netID int) []*Gate {
	var drivers []*Gate
	for _, g := range c.gates {
		if g.Output == netID {
			drivers = append(drivers, g)
		}
	}
	return drivers
}

// NumNets returns the number of nets in the circuit
func (c *Circuit) NumNets() int {
	return len(c.netNames)
}

// NumGates returns the number of gates in the circuit
func (c *Circuit) NumGates() int {
	return len(c.gates)
}

// Gates returns the gates of the circuit in insertion order. The slice must
// not be modified.
func (c *Circuit) Gates() []*Gate {
	return c.gates
}

// Fanout returns the gates reading the given net. The slice must not be
// modified.
func (c *Circuit) Fanout(netID int) []*Gate {
	return c.fanout[netID]
}

// PrimaryInputs returns the primary input net ids in declaration order
func (c *Circuit) PrimaryInputs() []int {
	return c.inputs
}

// PrimaryOutputs returns the primary output net ids in declaration order
func (c *Circuit) PrimaryOutputs() []int {
	return c.outputs
}

// VectorByName converts a name-keyed input vector to the id-keyed form
// consumed by the simulators
func (c *Circuit) VectorByName(inputs map[string]LogicValue) (map[int]LogicValue, error) {
	vector := make(map[int]LogicValue, len(inputs))
	for name, val := range inputs {
		id, err := c.GetNetID(name)
		if err != nil {
			return nil, err
		}
		vector[id] = val
	}
	return vector, nil
}
