// Package replicate runs independent replications of a scenario in parallel.
// Each replication owns its station, its flows and its seeded RNG; nothing is shared.
package replicate

import (
	"context"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/prb-sim/prb-sim/sim"
	"github.com/prb-sim/prb-sim/sim/workload"
)

// Outcome summarizes one replication.
type Outcome struct {
	Index          int
	Seed           int64
	Steps          int64
	Reason         sim.TerminationReason
	CompletedFlows int
	PendingFlows   int
	MeanDuration   float64 // mean completion - start over completed flows
	Utilization    float64
	DroppedPackets int
}

// Report aggregates all replications.
type Report struct {
	Outcomes     []Outcome
	Makespan     sim.Distribution // steps executed per replication
	MeanDuration sim.Distribution
	Utilization  sim.Distribution
}

// ConfigForSeed returns a copy of base with Seed set and Flows drawn from
// traffic using the setup RNG subsystem of that seed.
func ConfigForSeed(base sim.SimConfig, traffic *workload.TrafficSpec, seed int64) (sim.SimConfig, error) {
	cfg := base
	cfg.Seed = seed
	rng := sim.NewPartitionedRNG(sim.NewSimulationKey(seed))
	flows, err := workload.GenerateFlows(traffic, rng.ForSubsystem(sim.SubsystemSetup))
	if err != nil {
		return sim.SimConfig{}, err
	}
	cfg.Flows = flows
	return cfg, nil
}

// Run executes n replications concurrently; replication i uses seed base.Seed+i.
// The first failure cancels the remaining replications and is returned.
func Run(ctx context.Context, base sim.SimConfig, traffic *workload.TrafficSpec, n int) (*Report, error) {
	if n <= 0 {
		return nil, fmt.Errorf("replications must be positive, got %d", n)
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	outcomes := make([]Outcome, n)
	var (
		wg       sync.WaitGroup
		once     sync.Once
		firstErr error
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			out, err := runOne(ctx, base, traffic, i)
			if err != nil {
				once.Do(func() {
					firstErr = fmt.Errorf("replication %d: %w", i, err)
					cancel()
				})
				return
			}
			outcomes[i] = out
		}(i)
	}
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	return summarize(outcomes), nil
}

func runOne(ctx context.Context, base sim.SimConfig, traffic *workload.TrafficSpec, i int) (Outcome, error) {
	seed := base.Seed + int64(i)
	cfg, err := ConfigForSeed(base, traffic, seed)
	if err != nil {
		return Outcome{}, err
	}
	s, err := sim.NewSimulator(cfg)
	if err != nil {
		return Outcome{}, err
	}
	if err := s.Run(ctx); err != nil {
		return Outcome{}, err
	}
	m := s.Station.Metrics
	out := Outcome{
		Index:          i,
		Seed:           seed,
		Steps:          m.Steps,
		Reason:         s.Reason,
		CompletedFlows: m.CompletedFlows,
		PendingFlows:   m.PendingFlows,
		MeanDuration:   sim.NewDistribution(m.FlowDurations).Mean,
		Utilization:    m.Utilization(cfg.TotalPRBs),
		DroppedPackets: m.DroppedPackets,
	}
	logrus.Debugf("replication %d (seed %d): %d steps, %s", i, seed, out.Steps, out.Reason)
	return out, nil
}

func summarize(outcomes []Outcome) *Report {
	makespan := make([]float64, len(outcomes))
	duration := make([]float64, 0, len(outcomes))
	util := make([]float64, len(outcomes))
	for i, o := range outcomes {
		makespan[i] = float64(o.Steps)
		if o.CompletedFlows > 0 {
			duration = append(duration, o.MeanDuration)
		}
		util[i] = o.Utilization
	}
	return &Report{
		Outcomes:     outcomes,
		Makespan:     sim.NewDistribution(makespan),
		MeanDuration: sim.NewDistribution(duration),
		Utilization:  sim.NewDistribution(util),
	}
}

// Print displays the aggregated replication report.
func (r *Report) Print() {
	fmt.Println("=== Replication Summary ===")
	fmt.Printf("Replications         : %d\n", len(r.Outcomes))
	fmt.Printf("Makespan (steps)     : mean=%.2f p50=%.0f p95=%.0f max=%.0f\n",
		r.Makespan.Mean, r.Makespan.P50, r.Makespan.P95, r.Makespan.Max)
	fmt.Printf("Mean Flow Duration   : mean=%.2f min=%.2f max=%.2f\n",
		r.MeanDuration.Mean, r.MeanDuration.Min, r.MeanDuration.Max)
	fmt.Printf("PRB Utilization      : mean=%.2f%%\n", 100*r.Utilization.Mean)
}
