package cmd

import (
	"fmt"

	sim "github.com/prb-sim/prb-sim/sim"
	"github.com/prb-sim/prb-sim/sim/trace"
	"github.com/prb-sim/prb-sim/sim/workload"
)

// resolveConfig assembles the run configuration. Precedence, lowest first:
// flag defaults, the --config station bundle, then flags set on the command line.
// changed reports whether a flag was set explicitly.
func resolveConfig(changed func(name string) bool) (sim.SimConfig, *workload.TrafficSpec, error) {
	cfg := sim.SimConfig{
		MaxSteps:      maxSteps,
		Seed:          seed,
		StationConfig: sim.NewStationConfig(totalPRBs, numQueues, queueCapacity),
		PolicyConfig:  sim.NewPolicyConfig(allocatorName, generationName),
		TraceLevel:    traceLevel,
	}

	if stationPath != "" {
		bundle, err := sim.LoadStationBundle(stationPath)
		if err != nil {
			return sim.SimConfig{}, nil, err
		}
		if err := bundle.Validate(); err != nil {
			return sim.SimConfig{}, nil, fmt.Errorf("station config %s: %w", stationPath, err)
		}
		bundle.Apply(&cfg)
		overrideFromFlags(&cfg, changed)
	}

	if err := cfg.Validate(); err != nil {
		return sim.SimConfig{}, nil, err
	}

	traffic, err := resolveTraffic()
	if err != nil {
		return sim.SimConfig{}, nil, err
	}
	return cfg, traffic, nil
}

// overrideFromFlags re-applies every flag the user set explicitly on top of the bundle.
func overrideFromFlags(cfg *sim.SimConfig, changed func(name string) bool) {
	if changed("seed") {
		cfg.Seed = seed
	}
	if changed("steps") {
		cfg.MaxSteps = maxSteps
	}
	if changed("prbs") {
		cfg.TotalPRBs = totalPRBs
	}
	if changed("queues") {
		cfg.NumQueues = numQueues
	}
	if changed("queue-capacity") {
		cfg.QueueCapacity = queueCapacity
	}
	if changed("allocator") {
		cfg.Allocator = allocatorName
	}
	if changed("generation") {
		cfg.Generation = generationName
	}
	if changed("trace") {
		cfg.TraceLevel = traceLevel
	}
}

// resolveTraffic loads --traffic if given, otherwise builds a random spec from the traffic flags.
func resolveTraffic() (*workload.TrafficSpec, error) {
	var spec *workload.TrafficSpec
	if trafficPath != "" {
		loaded, err := workload.LoadTrafficSpec(trafficPath)
		if err != nil {
			return nil, err
		}
		spec = loaded
	} else {
		spec = workload.DefaultTrafficSpec(numFlows)
		spec.Packets = workload.RangeSpec{Type: "uniform", Min: packetsMin, Max: packetsMax}
		spec.StartTime = workload.RangeSpec{Type: "uniform", Min: startTimeMin, Max: startTimeMax}
	}
	if err := spec.Validate(); err != nil {
		return nil, fmt.Errorf("traffic: %w", err)
	}
	return spec, nil
}

// printTraceSummary displays the decision trace summary.
func printTraceSummary(s *trace.TraceSummary) {
	fmt.Println("=== Decision Trace ===")
	fmt.Printf("Steps Traced         : %d\n", s.Steps)
	fmt.Printf("Granted / Used PRBs  : %d / %d\n", s.GrantedPRBs, s.UsedPRBs)
	fmt.Printf("Idle Granted PRBs    : %d\n", s.IdleGrantedPRBs)
	fmt.Printf("Unallocated PRBs     : %d\n", s.UnallocatedPRBs)
	fmt.Printf("Starvation Events    : %d\n", s.StarvationEvents)
	fmt.Printf("Completed Flows      : %d\n", s.CompletedFlows)
}
