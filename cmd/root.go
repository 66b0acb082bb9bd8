package cmd

import (
	"context"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	sim "github.com/prb-sim/prb-sim/sim"
	"github.com/prb-sim/prb-sim/sim/replicate"
	"github.com/prb-sim/prb-sim/sim/report"
	"github.com/prb-sim/prb-sim/sim/trace"
)

var (
	// CLI flags for the run
	seed         int64  // Seed for traffic and flow setup randomness
	maxSteps     int64  // Step budget
	logLevel     string // Log verbosity level
	replications int    // Number of independent replications (seed, seed+1, ...)
	traceLevel   string // Decision trace level

	// CLI flags for the base station
	totalPRBs     int // PRB budget per step
	numQueues     int // Number of traffic class queues
	queueCapacity int // Per-queue buffer bound in packets

	// CLI flags for policies
	allocatorName  string // Slicing policy
	generationName string // Packet generation policy

	// CLI flags for traffic
	numFlows       int    // Number of randomly drawn flows
	packetsMin     int64  // Min initial packets per flow
	packetsMax     int64  // Max initial packets per flow
	startTimeMin   int64  // Earliest flow start step
	startTimeMax   int64  // Latest flow start step
	trafficPath    string // Traffic spec YAML (overrides the random traffic flags)
	stationPath    string // Station bundle YAML
	usagePath      string // CSV of PRBs used per step
	allocationPath string // CSV of PRBs granted per step
	flowsPath      string // CSV of flow completion times
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "prb-sim",
	Short: "Time-stepped simulator for PRB slicing and packet scheduling at a base station",
}

// runCmd executes the simulation using parameters from CLI flags
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the base station simulation",
	Run: func(cmd *cobra.Command, args []string) {
		// Set up logging
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)

		cfg, traffic, err := resolveConfig(cmd.Flags().Changed)
		if err != nil {
			logrus.Fatalf("Invalid configuration: %v", err)
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		startTime := time.Now()
		if replications > 1 {
			rep, err := replicate.Run(ctx, cfg, traffic, replications)
			if err != nil {
				logrus.Fatalf("Replications failed: %v", err)
			}
			rep.Print()
			logrus.Infof("Replications complete in %v.", time.Since(startTime))
			return
		}

		runCfg, err := replicate.ConfigForSeed(cfg, traffic, cfg.Seed)
		if err != nil {
			logrus.Fatalf("Flow setup failed: %v", err)
		}
		for i, f := range runCfg.Flows {
			logrus.Infof("flow:%d on queue:%d (%d packets, start %d)", i, i%runCfg.NumQueues, f.InitialPackets, f.StartTime)
		}
		s, err := sim.NewSimulator(runCfg)
		if err != nil {
			logrus.Fatalf("Failed to build simulator: %v", err)
		}
		if err := s.Run(ctx); err != nil {
			logrus.Warnf("Simulation interrupted: %v", err)
		}
		if err := saveResults(s); err != nil {
			logrus.Fatalf("Failed to save results: %v", err)
		}
		s.Station.Metrics.Print(runCfg.TotalPRBs)
		if s.Station.Trace != nil {
			printTraceSummary(trace.Summarize(s.Station.Trace))
		}
		logrus.Infof("Simulation complete in %v.", time.Since(startTime))
	},
}

// saveResults writes every requested CSV table.
func saveResults(s *sim.Simulator) error {
	bs := s.Station
	records := bs.Records()
	if usagePath != "" {
		if err := report.WriteFile(usagePath, func(w io.Writer) error {
			return report.WriteUsageCSV(w, records, len(bs.Queues))
		}); err != nil {
			return err
		}
		logrus.Infof("PRB usage written to %s", usagePath)
	}
	if allocationPath != "" {
		if err := report.WriteFile(allocationPath, func(w io.Writer) error {
			return report.WriteAllocationCSV(w, records, len(bs.Queues))
		}); err != nil {
			return err
		}
	}
	if flowsPath != "" {
		if err := report.WriteFile(flowsPath, func(w io.Writer) error {
			return report.WriteCompletionsCSV(w, bs.Outcomes())
		}); err != nil {
			return err
		}
	}
	return nil
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// init sets up CLI flags and subcommands
func init() {

	runCmd.Flags().Int64Var(&seed, "seed", 42, "Seed for traffic generation and flow setup")
	runCmd.Flags().Int64Var(&maxSteps, "steps", 1000, "Step budget")
	runCmd.Flags().StringVar(&logLevel, "log", "error", "Log level (trace, debug, info, warn, error, fatal, panic)")
	runCmd.Flags().IntVar(&replications, "replications", 1, "Number of independent replications (seeds seed..seed+n-1)")
	runCmd.Flags().StringVar(&traceLevel, "trace", "none", "Decision trace level (none, decisions)")

	// Base station configs
	runCmd.Flags().IntVar(&totalPRBs, "prbs", 15, "PRBs available per step")
	runCmd.Flags().IntVar(&numQueues, "queues", sim.DefaultNumQueues, "Number of traffic class queues")
	runCmd.Flags().IntVar(&queueCapacity, "queue-capacity", 100, "Per-queue buffer capacity in packets")

	// Policy configs
	runCmd.Flags().StringVar(&allocatorName, "allocator", "proportional", "PRB slicing policy (proportional, equal)")
	runCmd.Flags().StringVar(&generationName, "generation", "window", "Packet generation policy (window, redraw)")

	// Traffic configs
	runCmd.Flags().IntVar(&numFlows, "flows", 6, "Number of flows")
	runCmd.Flags().Int64Var(&packetsMin, "packets-min", 10, "Min initial packets per flow")
	runCmd.Flags().Int64Var(&packetsMax, "packets-max", 20, "Max initial packets per flow")
	runCmd.Flags().Int64Var(&startTimeMin, "start-min", 0, "Earliest flow start step")
	runCmd.Flags().Int64Var(&startTimeMax, "start-max", 10, "Latest flow start step")
	runCmd.Flags().StringVar(&trafficPath, "traffic", "", "Traffic spec YAML (replaces the random traffic flags)")
	runCmd.Flags().StringVar(&stationPath, "config", "", "Station config YAML; explicitly set flags take precedence")

	// Outputs
	runCmd.Flags().StringVar(&usagePath, "output", "prb_usage.csv", "CSV file of PRBs used per step (empty to skip)")
	runCmd.Flags().StringVar(&allocationPath, "allocation-output", "", "CSV file of PRBs granted per step")
	runCmd.Flags().StringVar(&flowsPath, "flows-output", "", "CSV file of flow completion times")

	// Attach `run` as a subcommand to `root`
	rootCmd.AddCommand(runCmd)
}
