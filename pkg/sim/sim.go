// Package sim implements the scheduler family of the simulation engine:
// five simulators sharing one external contract but propagating gate
// evaluations under different event disciplines.
package sim

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/fyerfyer/gate-sim/pkg/circuit"
)

// HazardKind classifies a detected timing hazard
type HazardKind int

const (
	// Static marks a net that glitched but settled back to its old value
	Static HazardKind = iota
	// Dynamic marks a net that glitched and settled at a new value
	Dynamic
)

// String returns a string representation of the hazard kind
func (k HazardKind) String() string {
	switch k {
	case Static:
		return "static"
	case Dynamic:
		return "dynamic"
	default:
		return "?"
	}
}

// Hazard reports a net whose value changed more than once while a vector
// settled
type Hazard struct {
	Net  int
	Kind HazardKind
}

// TimedSnapshot is one intermediate-log entry: the primary output values
// observed at a given time unit during settling
type TimedSnapshot struct {
	Time    int
	Outputs map[int]circuit.LogicValue
}

// Simulator is the contract shared by all five schedulers. SimulateVector
// applies one input vector (absent nets retain their value), runs the
// circuit to settling, and returns the hazards observed. Simulators keep
// their net state across calls; SimulateVector is not re-entrant.
type Simulator interface {
	SimulateVector(inputs map[int]circuit.LogicValue) []Hazard
	OutputLog() []map[int]circuit.LogicValue
	IntermediateLog() []TimedSnapshot
	GateSimCount() int
}

// Kind names a scheduler for the factory
type Kind string

const (
	KindTwoList         Kind = "twolist"
	KindSingleListEvent Kind = "event"
	KindSingleListGate  Kind = "gate"
	KindZeroDelay       Kind = "zerodelay"
	KindThreaded        Kind = "threaded"
)

// Kinds lists all scheduler kinds in a stable order
func Kinds() []Kind {
	return []Kind{KindTwoList, KindSingleListEvent, KindSingleListGate, KindZeroDelay, KindThreaded}
}

// New constructs a simulator of the given kind against a circuit
func New(kind Kind, c *circuit.Circuit, model circuit.LogicModel) (Simulator, error) {
	switch kind {
	case KindTwoList:
		return NewTwoListSimulator(c, model), nil
	case KindSingleListEvent:
		return NewSingleListEventSimulator(c, model), nil
	case KindSingleListGate:
		return NewSingleListGateSimulator(c, model), nil
	case KindZeroDelay:
		return NewZeroDelaySimulator(c, model), nil
	case KindThreaded:
		return NewThreadedSimulator(c, model), nil
	default:
		return nil, fmt.Errorf("unknown simulator kind: %q", kind)
	}
}

// baseSimulator carries the state and bookkeeping shared by every
// scheduler: the borrowed circuit, current net values, evaluation counter,
// and the output and intermediate logs.
type baseSimulator struct {
	circuit         *circuit.Circuit
	model           circuit.LogicModel
	logger          zerolog.Logger
	netValues       []circuit.LogicValue
	gateSimCount    int
	outputLog       []map[int]circuit.LogicValue
	intermediateLog []TimedSnapshot
}

func newBaseSimulator(c *circuit.Circuit, model circuit.LogicModel) baseSimulator {
	values := make([]circuit.LogicValue, c.NumNets())
	for i := range values {
		values[i] = model.InitialValue()
	}
	return baseSimulator{
		circuit:   c,
		model:     model,
		logger:    zerolog.Nop(),
		netValues: values,
	}
}

// SetLogger attaches a logger; simulators log at debug level only and
// default to a no-op logger
func (s *baseSimulator) SetLogger(logger zerolog.Logger) {
	s.logger = logger
}

// OutputLog returns one primary-output map per completed SimulateVector call
func (s *baseSimulator) OutputLog() []map[int]circuit.LogicValue {
	return s.outputLog
}

// IntermediateLog returns the per-time-unit output snapshots recorded while
// vectors settled; it stays empty for zero-delay simulation
func (s *baseSimulator) IntermediateLog() []TimedSnapshot {
	return s.intermediateLog
}

// GateSimCount returns the number of gate evaluations performed so far
func (s *baseSimulator) GateSimCount() int {
	return s.gateSimCount
}

// NetValue returns the current value of a net
func (s *baseSimulator) NetValue(netID int) circuit.LogicValue {
	return s.netValues[netID]
}

// snapshotOutputs captures the current primary output values
func (s *baseSimulator) snapshotOutputs() map[int]circuit.LogicValue {
	out := make(map[int]circuit.LogicValue, len(s.circuit.PrimaryOutputs()))
	for _, id := range s.circuit.PrimaryOutputs() {
		out[id] = s.netValues[id]
	}
	return out
}

// recordIntermediate appends a snapshot of the primary outputs to the
// intermediate log at the given time unit
func (s *baseSimulator) recordIntermediate(timeUnit int) {
	s.intermediateLog = append(s.intermediateLog, TimedSnapshot{
		Time:    timeUnit,
		Outputs: s.snapshotOutputs(),
	})
}

// recordOutputs appends the settled primary output values to the output log
func (s *baseSimulator) recordOutputs() {
	s.outputLog = append(s.outputLog, s.snapshotOutputs())
}

// collectHazards sweeps all nets in id order and reports those that changed
// more than once during the vector: static if the net settled back to its
// old value, dynamic otherwise
func (s *baseSimulator) collectHazards(oldValues []circuit.LogicValue, changeCount []int) []Hazard {
	var hazards []Hazard
	for net := 0; net < len(changeCount); net++ {
		if changeCount[net] > 1 {
			kind := Dynamic
			if oldValues[net] == s.netValues[net] {
				kind = Static
			}
			hazards = append(hazards, Hazard{Net: net, Kind: kind})
			s.logger.Debug().
				Int("net", net).
				Str("kind", kind.String()).
				Int("changes", changeCount[net]).
				Msg("hazard detected")
		}
	}
	return hazards
}
