package utils

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/fyerfyer/gate-sim/pkg/circuit"
)

// Regular expressions for parsing BENCH format
var (
	inputRegex  = regexp.MustCompile(`^INPUT\((\w+)\)$`)
	outputRegex = regexp.MustCompile(`^OUTPUT\((\w+)\)$`)
	gateRegex   = regexp.MustCompile(`^(\w+)\s*=\s*(\w+)\((.+)\)$`)
)

// ParseBenchFile reads a netlist in BENCH format and returns a Circuit
func ParseBenchFile(filename string) (*circuit.Circuit, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	name := strings.TrimSuffix(filepath.Base(filename), ".bench")
	return ParseBench(name, file)
}

// ParseBench reads a netlist in BENCH format from r. Lines are either
// INPUT(name), OUTPUT(name), or name = TYPE(in1, in2, ...); comments start
// with #.
func ParseBench(name string, r io.Reader) (*circuit.Circuit, error) {
	c := circuit.NewCircuit(name)
	var inputs, outputs []string

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if matches := inputRegex.FindStringSubmatch(line); matches != nil {
			inputs = append(inputs, matches[1])
			continue
		}
		if matches := outputRegex.FindStringSubmatch(line); matches != nil {
			outputs = append(outputs, matches[1])
			continue
		}
		if matches := gateRegex.FindStringSubmatch(line); matches != nil {
			outputName := matches[1]
			gateType := matches[2]
			inputNames := strings.Split(matches[3], ",")
			for i := range inputNames {
				inputNames[i] = strings.TrimSpace(inputNames[i])
			}
			if _, err := c.AddGate(gateType, inputNames, outputName); err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
			continue
		}
		return nil, fmt.Errorf("line %d: unrecognized syntax: %q", lineNo, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read netlist: %w", err)
	}

	c.SetPrimaryInputs(inputs)
	c.SetPrimaryOutputs(outputs)
	return c, nil
}
