package main

import (
	"flag"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"github.com/fyerfyer/gate-sim/pkg/circuit"
	"github.com/fyerfyer/gate-sim/pkg/sim"
	"github.com/fyerfyer/gate-sim/pkg/utils"
)

func main() {
	circuitFile := flag.String("circuit", "", "Circuit file in BENCH format")
	vectorsFile := flag.String("vectors", "", "Input vector file in YAML format")
	simKind := flag.String("sim", "twolist", "Scheduler: twolist, event, gate, zerodelay, threaded")
	modelStr := flag.String("model", "2val", "Logic model: 2val or 3val")
	trace := flag.Bool("trace", false, "Print the intermediate output trace")
	verbose := flag.Bool("verbose", false, "Verbose output")
	logFile := flag.String("log", "", "Log file (default: stderr)")
	flag.Parse()

	level := "info"
	if *verbose {
		level = "debug"
	}

	var logger zerolog.Logger
	var err error
	if *logFile != "" {
		logger, err = utils.NewFileLogger(level, *logFile)
		if err != nil {
			fmt.Printf("Error creating log file: %v\n", err)
			os.Exit(1)
		}
	} else {
		logger = utils.NewLogger(level, os.Stderr)
	}

	if *circuitFile == "" {
		fmt.Println("Error: Circuit file is required")
		flag.Usage()
		os.Exit(1)
	}
	if *vectorsFile == "" {
		fmt.Println("Error: Vector file is required")
		flag.Usage()
		os.Exit(1)
	}

	model, err := circuit.ParseLogicModel(*modelStr)
	if err != nil {
		logger.Error().Err(err).Msg("invalid logic model")
		os.Exit(1)
	}

	logger.Info().Str("file", *circuitFile).Msg("parsing circuit")
	c, err := utils.ParseBenchFile(*circuitFile)
	if err != nil {
		logger.Error().Err(err).Msg("failed to parse circuit")
		os.Exit(1)
	}
	logger.Info().
		Int("nets", c.NumNets()).
		Int("gates", c.NumGates()).
		Msg("circuit built")

	vectors, err := utils.LoadVectorsFile(*vectorsFile, c)
	if err != nil {
		logger.Error().Err(err).Msg("failed to load vectors")
		os.Exit(1)
	}

	simulator, err := sim.New(sim.Kind(*simKind), c, model)
	if err != nil {
		logger.Error().Err(err).Msg("failed to create simulator")
		os.Exit(1)
	}
	if setter, ok := simulator.(interface{ SetLogger(zerolog.Logger) }); ok {
		setter.SetLogger(logger)
	}

	for i, vector := range vectors {
		hazards := simulator.SimulateVector(vector)
		outputs := simulator.OutputLog()[len(simulator.OutputLog())-1]
		fmt.Printf("vector %d: %s", i, formatOutputs(c, outputs))
		if len(hazards) > 0 {
			fmt.Printf("  hazards: %s", formatHazards(c, hazards))
		}
		fmt.Println()
	}

	if *trace {
		for _, snap := range simulator.IntermediateLog() {
			fmt.Printf("t=%d: %s\n", snap.Time, formatOutputs(c, snap.Outputs))
		}
	}
	fmt.Printf("gate evaluations: %d\n", simulator.GateSimCount())
}

// formatOutputs renders an output map as name=value pairs in net-id order
func formatOutputs(c *circuit.Circuit, outputs map[int]circuit.LogicValue) string {
	ids := make([]int, 0, len(outputs))
	for id := range outputs {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	parts := make([]string, 0, len(ids))
	for _, id := range ids {
		name, _ := c.GetNetName(id)
		parts = append(parts, fmt.Sprintf("%s=%s", name, outputs[id]))
	}
	return strings.Join(parts, " ")
}

// formatHazards renders a hazard list as name/kind pairs
func formatHazards(c *circuit.Circuit, hazards []sim.Hazard) string {
	parts := make([]string, 0, len(hazards))
	for _, h := range hazards {
		name, _ := c.GetNetName(h.Net)
		parts = append(parts, fmt.Sprintf("%s(%s)", name, h.Kind))
	}
	return strings.Join(parts, " ")
}
