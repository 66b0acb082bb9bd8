package workload

import (
	"fmt"

	"github.com/prb-sim/prb-sim/sim"
)

// GenerateFlows turns a TrafficSpec into the flow list a station is built from.
// Explicit flows are returned as listed. Otherwise each flow draws its packet
// count and then its start time from rng, flow by flow, so the result is
// deterministic for a given rng state.
func GenerateFlows(spec *TrafficSpec, rng sim.RandSource) ([]sim.FlowSpec, error) {
	if err := spec.Validate(); err != nil {
		return nil, fmt.Errorf("invalid traffic spec: %w", err)
	}
	if len(spec.Flows) > 0 {
		flows := make([]sim.FlowSpec, len(spec.Flows))
		for i, f := range spec.Flows {
			flows[i] = sim.FlowSpec{InitialPackets: f.Packets, StartTime: f.StartTime}
		}
		return flows, nil
	}

	packets, err := NewIntSampler(spec.Packets)
	if err != nil {
		return nil, fmt.Errorf("packets: %w", err)
	}
	starts, err := NewIntSampler(spec.StartTime)
	if err != nil {
		return nil, fmt.Errorf("start_time: %w", err)
	}

	flows := make([]sim.FlowSpec, spec.NumFlows)
	for i := range flows {
		flows[i] = sim.FlowSpec{
			InitialPackets: int(packets.Sample(rng)),
			StartTime:      starts.Sample(rng),
		}
	}
	return flows, nil
}
