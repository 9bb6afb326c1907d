package sim

import (
	"github.com/fyerfyer/gate-sim/pkg/circuit"
)

// netEvent is a pending net-value change
type netEvent struct {
	net   int
	value circuit.LogicValue
}

// TwoListSimulator is the unit-delay event-driven scheduler built on two
// queues: an event queue of pending net changes and a gate queue of gates
// awaiting re-evaluation. The queues alternate in phases, one time unit per
// gate phase.
type TwoListSimulator struct {
	baseSimulator
	netMark []bool
}

// NewTwoListSimulator creates a two-list simulator against the circuit
func NewTwoListSimulator(c *circuit.Circuit, model circuit.LogicModel) *TwoListSimulator {
	s := &TwoListSimulator{
		baseSimulator: newBaseSimulator(c, model),
	}
	// In 2-valued mode every net starts marked so the first vector
	// propagates even when its values match the initial state
	if model == circuit.TwoValued {
		s.netMark = make([]bool, c.NumNets())
		for i := range s.netMark {
			s.netMark[i] = true
		}
	}
	return s
}

// SimulateVector applies one input vector and runs the circuit to settling
func (s *TwoListSimulator) SimulateVector(inputs map[int]circuit.LogicValue) []Hazard {
	oldValues := make([]circuit.LogicValue, len(s.netValues))
	copy(oldValues, s.netValues)
	changeCount := make([]int, len(s.netValues))

	var eventQueue []netEvent
	var gateQueue []*circuit.Gate
	inGateQueue := make([]bool, s.circuit.NumGates())

	// Queue events for changed or marked primary inputs
	for _, net := range s.circuit.PrimaryInputs() {
		val, ok := inputs[net]
		if !ok {
			val = s.netValues[net]
		}
		if s.model == circuit.TwoValued {
			if val != s.netValues[net] || s.netMark[net] {
				eventQueue = append(eventQueue, netEvent{net, val})
				s.netMark[net] = false
			}
		} else if val != s.netValues[net] {
			eventQueue = append(eventQueue, netEvent{net, val})
		}
	}

	timeUnit := 0
	for len(eventQueue) > 0 {
		// Event drain phase: commit net changes and schedule fanout
		// gates. Fanout is scheduled for every consumed event, changed
		// or not, so marked inputs still reach their gates.
		for len(eventQueue) > 0 {
			ev := eventQueue[0]
			eventQueue = eventQueue[1:]
			if ev.value != s.netValues[ev.net] {
				s.netValues[ev.net] = ev.value
				changeCount[ev.net]++
			}
			for _, g := range s.circuit.Fanout(ev.net) {
				if !inGateQueue[g.ID] {
					inGateQueue[g.ID] = true
					gateQueue = append(gateQueue, g)
				}
			}
		}

		// Gate phase: one time unit of unit delay
		if len(gateQueue) > 0 {
			s.recordIntermediate(timeUnit)
			for len(gateQueue) > 0 {
				g := gateQueue[0]
				gateQueue = gateQueue[1:]
				inGateQueue[g.ID] = false
				newVal := g.Evaluate(s.netValues, s.model)
				s.gateSimCount++
				if newVal != s.netValues[g.Output] {
					eventQueue = append(eventQueue, netEvent{g.Output, newVal})
				}
			}
			timeUnit++
		}
	}

	s.recordOutputs()
	hazards := s.collectHazards(oldValues, changeCount)
	s.logger.Debug().
		Int("time_units", timeUnit).
		Int("hazards", len(hazards)).
		Int("gate_sims", s.gateSimCount).
		Msg("two-list vector settled")
	return hazards
}
