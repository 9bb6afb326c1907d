package sim

import (
	"github.com/fyerfyer/gate-sim/pkg/circuit"
)

// ZeroDelaySimulator is the levelized scheduler: gates are bucketed by
// topological level at construction time and each vector is settled by
// sweeping the levels in ascending order. It models no propagation delay,
// keeps no intermediate log, and reports no hazards. A second sweep runs
// only when a change feeds back into an already-drained level, bounding
// ill-formed feedback instead of hanging on it.
type ZeroDelaySimulator struct {
	baseSimulator
	topology *circuit.Topology
}

// NewZeroDelaySimulator creates a zero-delay simulator against the
// circuit, levelizing it once
func NewZeroDelaySimulator(c *circuit.Circuit, model circuit.LogicModel) *ZeroDelaySimulator {
	return &ZeroDelaySimulator{
		baseSimulator: newBaseSimulator(c, model),
		topology:      circuit.NewTopology(c),
	}
}

// Topology returns the levelization computed at construction
func (s *ZeroDelaySimulator) Topology() *circuit.Topology {
	return s.topology
}

// SimulateVector applies one input vector and settles the circuit in at
// most two level sweeps. The returned hazard list is always empty.
func (s *ZeroDelaySimulator) SimulateVector(inputs map[int]circuit.LogicValue) []Hazard {
	buckets := make([][]*circuit.Gate, s.topology.MaxLevel+1)
	inBucket := make([]bool, s.circuit.NumGates())

	schedule := func(g *circuit.Gate) {
		if !inBucket[g.ID] {
			inBucket[g.ID] = true
			lvl := s.topology.Level(g.ID)
			buckets[lvl] = append(buckets[lvl], g)
		}
	}

	for _, net := range s.circuit.PrimaryInputs() {
		val, ok := inputs[net]
		if !ok {
			val = s.netValues[net]
		}
		if val != s.netValues[net] {
			s.netValues[net] = val
			for _, g := range s.circuit.Fanout(net) {
				schedule(g)
			}
		}
	}

	iterate := true
	for pass := 0; iterate && pass < 2; pass++ {
		iterate = false
		for lvl := 0; lvl <= s.topology.MaxLevel; lvl++ {
			for len(buckets[lvl]) > 0 {
				g := buckets[lvl][0]
				buckets[lvl] = buckets[lvl][1:]
				inBucket[g.ID] = false
				newVal := g.Evaluate(s.netValues, s.model)
				s.gateSimCount++
				if newVal != s.netValues[g.Output] {
					s.netValues[g.Output] = newVal
					for _, h := range s.circuit.Fanout(g.Output) {
						if s.topology.Level(h.ID) < lvl {
							iterate = true
						}
						schedule(h)
					}
				}
			}
		}
	}

	s.recordOutputs()
	s.logger.Debug().
		Int("gate_sims", s.gateSimCount).
		Msg("zero-delay vector settled")
	return nil
}
