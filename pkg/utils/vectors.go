package utils

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/fyerfyer/gate-sim/pkg/circuit"
)

// vectorFile is the YAML document shape of a vector file: an ordered list
// of net-name to logic-value assignments
type vectorFile struct {
	Vectors []map[string]string `yaml:"vectors"`
}

// LoadVectorsFile reads a YAML vector file and resolves net names against
// the circuit, returning one id-keyed input map per vector
func LoadVectorsFile(filename string, c *circuit.Circuit) ([]map[int]circuit.LogicValue, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read vector file: %w", err)
	}
	return ParseVectors(data, c)
}

// ParseVectors parses YAML vector data and resolves net names against the
// circuit
func ParseVectors(data []byte, c *circuit.Circuit) ([]map[int]circuit.LogicValue, error) {
	var vf vectorFile
	if err := yaml.Unmarshal(data, &vf); err != nil {
		return nil, fmt.Errorf("failed to parse vector file: %w", err)
	}

	vectors := make([]map[int]circuit.LogicValue, 0, len(vf.Vectors))
	for i, raw := range vf.Vectors {
		named := make(map[string]circuit.LogicValue, len(raw))
		for name, valStr := range raw {
			val, err := circuit.ParseLogicValue(valStr)
			if err != nil {
				return nil, fmt.Errorf("vector %d, net %q: %w", i, name, err)
			}
			named[name] = val
		}
		vector, err := c.VectorByName(named)
		if err != nil {
			return nil, fmt.Errorf("vector %d: %w", i, err)
		}
		vectors = append(vectors, vector)
	}
	return vectors, nil
}
