package cmd

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/dynamo-sim/dynamo/sim"
	"github.com/dynamo-sim/dynamo/sim/scenario"
	"github.com/dynamo-sim/dynamo/sim/xmlio"
)

var (
	seed         int64
	logLevel     string
	simEndTime   float64
	maxEvents    uint64
	outPath      string
	loadPath     string
	scenarioPath string
)

// rootCmd is the base command for the CLI.
var rootCmd = &cobra.Command{
	Use:   "dynamo",
	Short: "Event-driven molecular dynamics engine",
}

// runCmd executes a simulation to a horizon, either loaded from a
// persisted XML document (--load) or freshly generated from a YAML
// scenario (spec.md §6's --sim-end-time/--events/--out/--load/--seed).
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a simulation to an event or time horizon",
	RunE: func(cmd *cobra.Command, args []string) error {
		setLogLevel()

		simn, err := loadOrGenerate()
		if err != nil {
			return err
		}

		sched, ctx, err := simn.Build()
		if err != nil {
			return fmt.Errorf("building simulation: %w", err)
		}

		if err := sched.Run(maxEvents, simEndTime); err != nil {
			return fmt.Errorf("run: %w", err)
		}

		m := sim.Snapshot(ctx, sched)
		m.Print(simn.Store.N())

		if outPath != "" {
			if err := saveSimulation(simn); err != nil {
				return err
			}
			logrus.Infof("wrote final state to %s", outPath)
		}
		return nil
	},
}

// loadCmd parses and validates a persisted XML document without running
// it, printing a summary (spec.md §6's peripheral "load" front-end).
var loadCmd = &cobra.Command{
	Use:   "load",
	Short: "Parse and validate a simulation document, printing a summary",
	RunE: func(cmd *cobra.Command, args []string) error {
		setLogLevel()
		if loadPath == "" {
			return fmt.Errorf("--load is required")
		}
		f, err := os.Open(loadPath)
		if err != nil {
			return fmt.Errorf("opening %s: %w", loadPath, err)
		}
		defer f.Close()

		simn, err := xmlio.Load(f, sim.NewPartitionedRNG(sim.NewSimulationKey(seed)))
		if err != nil {
			return fmt.Errorf("loading %s: %w", loadPath, err)
		}

		fmt.Printf("particles=%d interactions=%d globals=%d locals=%d systems=%d\n",
			simn.Store.N(), len(simn.Interactions), len(simn.Globals), len(simn.Locals), len(simn.Systems))
		return nil
	},
}

// packCmd generates an initial configuration from a YAML scenario and
// saves it as an XML document, without running it (spec.md §6: "packing
// are peripheral").
var packCmd = &cobra.Command{
	Use:   "pack",
	Short: "Generate an initial configuration and save it as a simulation document",
	RunE: func(cmd *cobra.Command, args []string) error {
		setLogLevel()
		if scenarioPath == "" {
			return fmt.Errorf("--scenario is required")
		}
		if outPath == "" {
			return fmt.Errorf("--out is required")
		}

		spec, err := scenario.Load(scenarioPath)
		if err != nil {
			return err
		}
		simn, err := scenario.Generate(spec)
		if err != nil {
			return fmt.Errorf("generating scenario: %w", err)
		}
		return saveSimulation(simn)
	},
}

func loadOrGenerate() (*sim.Simulation, error) {
	if loadPath != "" {
		f, err := os.Open(loadPath)
		if err != nil {
			return nil, fmt.Errorf("opening %s: %w", loadPath, err)
		}
		defer f.Close()
		return xmlio.Load(f, sim.NewPartitionedRNG(sim.NewSimulationKey(seed)))
	}
	if scenarioPath == "" {
		return nil, fmt.Errorf("one of --load or --scenario is required")
	}
	spec, err := scenario.Load(scenarioPath)
	if err != nil {
		return nil, err
	}
	spec.Seed = seed
	return scenario.Generate(spec)
}

func saveSimulation(simn *sim.Simulation) error {
	f, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("creating %s: %w", outPath, err)
	}
	defer f.Close()
	return xmlio.Save(f, simn)
}

func setLogLevel() {
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		logrus.Fatalf("invalid log level: %s", logLevel)
	}
	logrus.SetLevel(level)
}

// Execute runs the CLI root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		logrus.Error(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log", "info", "Log level (trace, debug, info, warn, error, fatal, panic)")
	rootCmd.PersistentFlags().Int64Var(&seed, "seed", 42, "Seed for deterministic RNG streams")

	runCmd.Flags().Float64Var(&simEndTime, "sim-end-time", 0, "Stop after this much system time has elapsed (0 = unbounded)")
	runCmd.Flags().Uint64Var(&maxEvents, "events", 0, "Stop after this many events (0 = unbounded)")
	runCmd.Flags().StringVar(&outPath, "out", "", "Write the final state as a simulation document to this path")
	runCmd.Flags().StringVar(&loadPath, "load", "", "Load the initial state from a simulation document")
	runCmd.Flags().StringVar(&scenarioPath, "scenario", "", "Generate the initial state from a YAML scenario file")

	loadCmd.Flags().StringVar(&loadPath, "load", "", "Simulation document to load")

	packCmd.Flags().StringVar(&scenarioPath, "scenario", "", "YAML scenario file to generate from")
	packCmd.Flags().StringVar(&outPath, "out", "", "Simulation document to write")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(loadCmd)
	rootCmd.AddCommand(packCmd)
}
