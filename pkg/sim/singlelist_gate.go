package sim

import (
	"github.com/fyerfyer/gate-sim/pkg/circuit"
)

// gateRecord is one entry of the single gate list: a gate awaiting
// evaluation or a time-marker sentinel
type gateRecord struct {
	marker bool
	gate   *circuit.Gate
}

// SingleListGateSimulator is the unit-delay scheduler built on a single
// gate queue with time-marker sentinels. Gate results are held in a
// pending-commit map and applied only at the marker, so every gate within
// one step evaluates against a stable snapshot of net values.
type SingleListGateSimulator struct {
	baseSimulator
}

// NewSingleListGateSimulator creates a single-list gate simulator against
// the circuit
func NewSingleListGateSimulator(c *circuit.Circuit, model circuit.LogicModel) *SingleListGateSimulator {
	return &SingleListGateSimulator{
		baseSimulator: newBaseSimulator(c, model),
	}
}

// SimulateVector applies one input vector and runs the circuit to settling
func (s *SingleListGateSimulator) SimulateVector(inputs map[int]circuit.LogicValue) []Hazard {
	oldValues := make([]circuit.LogicValue, len(s.netValues))
	copy(oldValues, s.netValues)
	changeCount := make([]int, len(s.netValues))

	// Changed primary inputs commit directly; their fanout seeds the queue
	var queue []gateRecord
	for _, net := range s.circuit.PrimaryInputs() {
		val, ok := inputs[net]
		if !ok {
			val = s.netValues[net]
		}
		if val != s.netValues[net] {
			s.netValues[net] = val
			for _, g := range s.circuit.Fanout(net) {
				queue = append(queue, gateRecord{gate: g})
			}
		}
	}
	queue = append(queue, gateRecord{marker: true})

	pending := make(map[int]circuit.LogicValue)
	flaggedNext := make([]bool, s.circuit.NumGates())
	timeUnit := 0
	for len(queue) > 0 {
		rec := queue[0]
		queue = queue[1:]
		if rec.marker {
			// Commit all results computed this step at the time boundary
			for net, val := range pending {
				if val != s.netValues[net] {
					s.netValues[net] = val
					changeCount[net]++
				}
			}
			clear(pending)
			s.recordIntermediate(timeUnit)
			timeUnit++
			if len(queue) > 0 {
				queue = append(queue, gateRecord{marker: true})
				for i := range flaggedNext {
					flaggedNext[i] = false
				}
			}
			continue
		}
		g := rec.gate
		newVal := g.Evaluate(s.netValues, s.model)
		s.gateSimCount++
		if newVal != s.netValues[g.Output] {
			pending[g.Output] = newVal
			for _, h := range s.circuit.Fanout(g.Output) {
				if !flaggedNext[h.ID] {
					flaggedNext[h.ID] = true
					queue = append(queue, gateRecord{gate: h})
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
		Msg("single-list gate vector settled")
	return hazards
}
