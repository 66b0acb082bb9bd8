package sim

import (
	"fmt"

	"github.com/prb-sim/prb-sim/sim/trace"
)

// DefaultNumQueues is the number of traffic classes a station carries unless configured otherwise.
const DefaultNumQueues = 3

// StationConfig groups the base station's radio resources and buffering.
type StationConfig struct {
	TotalPRBs     int // PRB budget available every step (must be > 0)
	NumQueues     int // number of traffic class queues (must be > 0)
	QueueCapacity int // per-queue buffer bound in packets (must be > 0)
}

// PolicyConfig groups slicing and generation policy selection.
type PolicyConfig struct {
	Allocator  string // "proportional" (default) or "equal"
	Generation string // "window" (default) or "redraw"
}

// FlowSpec describes one flow supplied at setup.
type FlowSpec struct {
	InitialPackets int   // must be > 0
	StartTime      int64 // must be >= 0
}

// SimConfig holds everything needed to construct a Simulator.
type SimConfig struct {
	MaxSteps int64 // step budget (must be > 0)
	Seed     int64
	StationConfig
	PolicyConfig
	Flows      []FlowSpec
	TraceLevel string // "none" (default) or "decisions"
}

// NewStationConfig creates a StationConfig.
func NewStationConfig(totalPRBs, numQueues, queueCapacity int) StationConfig {
	return StationConfig{
		TotalPRBs:     totalPRBs,
		NumQueues:     numQueues,
		QueueCapacity: queueCapacity,
	}
}

// NewPolicyConfig creates a PolicyConfig.
func NewPolicyConfig(allocator, generation string) PolicyConfig {
	return PolicyConfig{Allocator: allocator, Generation: generation}
}

// Validate checks the station parameters.
func (c StationConfig) Validate() error {
	if c.NumQueues <= 0 {
		return fmt.Errorf("num_queues must be positive, got %d", c.NumQueues)
	}
	if c.TotalPRBs <= 0 {
		return fmt.Errorf("total_prbs must be positive, got %d", c.TotalPRBs)
	}
	if c.QueueCapacity <= 0 {
		return fmt.Errorf("queue_capacity must be positive, got %d", c.QueueCapacity)
	}
	return nil
}

// Validate checks that both policy names are recognized.
func (c PolicyConfig) Validate() error {
	if !IsValidAllocator(c.Allocator) {
		return fmt.Errorf("unknown allocator %q", c.Allocator)
	}
	if !IsValidGenerationPolicy(c.Generation) {
		return fmt.Errorf("unknown generation policy %q", c.Generation)
	}
	return nil
}

// Validate checks a flow specification.
func (f FlowSpec) Validate() error {
	if f.InitialPackets <= 0 {
		return fmt.Errorf("initial packets must be positive, got %d", f.InitialPackets)
	}
	if f.StartTime < 0 {
		return fmt.Errorf("start time must be non-negative, got %d", f.StartTime)
	}
	return nil
}

// Validate checks the full configuration, failing on the first problem found.
func (c SimConfig) Validate() error {
	if c.MaxSteps <= 0 {
		return fmt.Errorf("max_steps must be positive, got %d", c.MaxSteps)
	}
	if err := c.StationConfig.Validate(); err != nil {
		return err
	}
	if err := c.PolicyConfig.Validate(); err != nil {
		return err
	}
	if !trace.IsValidTraceLevel(c.TraceLevel) {
		return fmt.Errorf("unknown trace level %q", c.TraceLevel)
	}
	for i, f := range c.Flows {
		if err := f.Validate(); err != nil {
			return fmt.Errorf("flow %d: %w", i, err)
		}
	}
	return nil
}
