package sim

import (
	"github.com/fyerfyer/gate-sim/pkg/circuit"
)

// eventRecord is one entry of the single event list: either a net event or
// a time-marker sentinel separating unit-delay steps
type eventRecord struct {
	marker bool
	net    int
	value  circuit.LogicValue
}

// SingleListEventSimulator is the unit-delay scheduler built on a single
// event queue with time-marker sentinels. Gates are evaluated immediately
// when an event on one of their inputs is consumed; output changes queue
// behind the current marker and so take effect one time unit later.
type SingleListEventSimulator struct {
	baseSimulator
	netMark []bool
}

// NewSingleListEventSimulator creates a single-list event simulator
// against the circuit
func NewSingleListEventSimulator(c *circuit.Circuit, model circuit.LogicModel) *SingleListEventSimulator {
	s := &SingleListEventSimulator{
		baseSimulator: newBaseSimulator(c, model),
	}
	if model == circuit.TwoValued {
		s.netMark = make([]bool, c.NumNets())
		for i := range s.netMark {
			s.netMark[i] = true
		}
	}
	return s
}

// SimulateVector applies one input vector and runs the circuit to settling
func (s *SingleListEventSimulator) SimulateVector(inputs map[int]circuit.LogicValue) []Hazard {
	oldValues := make([]circuit.LogicValue, len(s.netValues))
	copy(oldValues, s.netValues)
	changeCount := make([]int, len(s.netValues))

	var queue []eventRecord
	// pending counts the (net, value) pairs currently queued, replacing a
	// linear duplicate-suppression scan while keeping its contract
	pending := make(map[netEvent]int)
	push := func(ev eventRecord) {
		queue = append(queue, ev)
		if !ev.marker {
			pending[netEvent{ev.net, ev.value}]++
		}
	}

	for _, net := range s.circuit.PrimaryInputs() {
		val, ok := inputs[net]
		if !ok {
			val = s.netValues[net]
		}
		if s.model == circuit.TwoValued {
			if val != s.netValues[net] || s.netMark[net] {
				push(eventRecord{net: net, value: val})
				s.netMark[net] = false
			}
		} else if val != s.netValues[net] {
			push(eventRecord{net: net, value: val})
		}
	}
	push(eventRecord{marker: true})

	timeUnit := 0
	for len(queue) > 0 {
		ev := queue[0]
		queue = queue[1:]
		if ev.marker {
			s.recordIntermediate(timeUnit)
			timeUnit++
			if len(queue) > 0 {
				push(eventRecord{marker: true})
			}
			continue
		}
		pending[netEvent{ev.net, ev.value}]--
		if ev.value != s.netValues[ev.net] {
			s.netValues[ev.net] = ev.value
			changeCount[ev.net]++
		}
		// Evaluate fanout gates immediately; new events land behind the
		// marker unless an identical one is already queued
		for _, g := range s.circuit.Fanout(ev.net) {
			newVal := g.Evaluate(s.netValues, s.model)
			s.gateSimCount++
			if newVal != s.netValues[g.Output] {
				if pending[netEvent{g.Output, newVal}] == 0 {
					push(eventRecord{net: g.Output, value: newVal})
				}
			}
		}
	}

	s.recordOutputs()
	hazards := s.collectHazards(oldValues, changeCount)
	s.logger.Debug().
		Int("time_units", timeUnit).
		Int("hazards", len(hazards)).
		Int("gate_sims", s.gateSimCount).
		Msg("single-list event vector settled")
	return hazards
}
