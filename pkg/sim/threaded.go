package sim

import (
	"github.com/fyerfyer/gate-sim/pkg/circuit"
)

// ThreadedSimulator is the stack-based scheduler: LIFO stacks of net
// events and gate evaluations replace the queues of the other unit-delay
// simulators. Each step pops from the event stack if it is non-empty and
// from the gate stack otherwise, so propagation runs depth-first along one
// path before visiting siblings. That ordering changes which hazards
// become visible compared with the FIFO schedulers.
type ThreadedSimulator struct {
	baseSimulator
}

// NewThreadedSimulator creates a threaded simulator against the circuit
func NewThreadedSimulator(c *circuit.Circuit, model circuit.LogicModel) *ThreadedSimulator {
	return &ThreadedSimulator{
		baseSimulator: newBaseSimulator(c, model),
	}
}

// SimulateVector applies one input vector and runs the circuit to settling
func (s *ThreadedSimulator) SimulateVector(inputs map[int]circuit.LogicValue) []Hazard {
	oldValues := make([]circuit.LogicValue, len(s.netValues))
	copy(oldValues, s.netValues)
	changeCount := make([]int, len(s.netValues))

	var eventStack []netEvent
	var gateStack []*circuit.Gate

	for _, net := range s.circuit.PrimaryInputs() {
		val, ok := inputs[net]
		if !ok {
			val = s.netValues[net]
		}
		if val != s.netValues[net] {
			eventStack = append(eventStack, netEvent{net, val})
		}
	}

	for len(eventStack) > 0 || len(gateStack) > 0 {
		if n := len(eventStack); n > 0 {
			ev := eventStack[n-1]
			eventStack = eventStack[:n-1]
			if ev.value != s.netValues[ev.net] {
				s.netValues[ev.net] = ev.value
				changeCount[ev.net]++
			}
			for _, g := range s.circuit.Fanout(ev.net) {
				gateStack = append(gateStack, g)
			}
			continue
		}
		n := len(gateStack)
		g := gateStack[n-1]
		gateStack = gateStack[:n-1]
		newVal := g.Evaluate(s.netValues, s.model)
		s.gateSimCount++
		if newVal != s.netValues[g.Output] {
			eventStack = append(eventStack, netEvent{g.Output, newVal})
		}
	}

	s.recordOutputs()
	hazards := s.collectHazards(oldValues, changeCount)
	s.logger.Debug().
		Int("hazards", len(hazards)).
		Int("gate_sims", s.gateSimCount).
		Msg("threaded vector settled")
	return hazards
}
