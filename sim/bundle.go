package sim

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/prb-sim/prb-sim/sim/trace"
)

// StationBundle holds station and policy configuration, loadable from a YAML file.
// Nil pointer fields mean "not set in YAML" and do not override CLI defaults.
// String fields use empty string for "not set".
type StationBundle struct {
	Station  StationSection `yaml:"station"`
	Policies PolicySection  `yaml:"policies"`
	Run      RunSection     `yaml:"run"`
}

// StationSection holds radio resource and buffering settings.
type StationSection struct {
	TotalPRBs     *int `yaml:"total_prbs"`
	NumQueues     *int `yaml:"num_queues"`
	QueueCapacity *int `yaml:"queue_capacity"`
}

// PolicySection holds slicing and generation policy names.
type PolicySection struct {
	Allocator  string `yaml:"allocator"`
	Generation string `yaml:"generation"`
}

// RunSection holds run-control settings.
type RunSection struct {
	MaxSteps *int64 `yaml:"max_steps"`
	Seed     *int64 `yaml:"seed"`
	Trace    string `yaml:"trace"`
}

// LoadStationBundle reads and parses a YAML station configuration file.
func LoadStationBundle(path string) (*StationBundle, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading station config: %w", err)
	}
	var bundle StationBundle
	if err := yaml.Unmarshal(data, &bundle); err != nil {
		return nil, fmt.Errorf("parsing station config: %w", err)
	}
	return &bundle, nil
}

// ValidAllocators is the set of recognized allocator names.
// Shared by Validate() and NewAllocator() to avoid duplication.
var ValidAllocators = map[string]bool{"": true, "proportional": true, "equal": true}

// ValidGenerationPolicies is the set of recognized generation policy names.
var ValidGenerationPolicies = map[string]bool{"": true, "window": true, "redraw": true}

// Validate checks that all policy names and parameter ranges in the bundle are valid.
func (b *StationBundle) Validate() error {
	if !ValidAllocators[b.Policies.Allocator] {
		return fmt.Errorf("unknown allocator %q", b.Policies.Allocator)
	}
	if !ValidGenerationPolicies[b.Policies.Generation] {
		return fmt.Errorf("unknown generation policy %q", b.Policies.Generation)
	}
	if b.Station.TotalPRBs != nil && *b.Station.TotalPRBs <= 0 {
		return fmt.Errorf("total_prbs must be positive, got %d", *b.Station.TotalPRBs)
	}
	if b.Station.NumQueues != nil && *b.Station.NumQueues <= 0 {
		return fmt.Errorf("num_queues must be positive, got %d", *b.Station.NumQueues)
	}
	if b.Station.QueueCapacity != nil && *b.Station.QueueCapacity <= 0 {
		return fmt.Errorf("queue_capacity must be positive, got %d", *b.Station.QueueCapacity)
	}
	if b.Run.MaxSteps != nil && *b.Run.MaxSteps <= 0 {
		return fmt.Errorf("max_steps must be positive, got %d", *b.Run.MaxSteps)
	}
	if !trace.IsValidTraceLevel(b.Run.Trace) {
		return fmt.Errorf("unknown trace level %q", b.Run.Trace)
	}
	return nil
}

// Apply overlays every field set in the bundle onto cfg.
func (b *StationBundle) Apply(cfg *SimConfig) {
	if b.Station.TotalPRBs != nil {
		cfg.TotalPRBs = *b.Station.TotalPRBs
	}
	if b.Station.NumQueues != nil {
		cfg.NumQueues = *b.Station.NumQueues
	}
	if b.Station.QueueCapacity != nil {
		cfg.QueueCapacity = *b.Station.QueueCapacity
	}
	if b.Policies.Allocator != "" {
		cfg.Allocator = b.Policies.Allocator
	}
	if b.Policies.Generation != "" {
		cfg.Generation = b.Policies.Generation
	}
	if b.Run.MaxSteps != nil {
		cfg.MaxSteps = *b.Run.MaxSteps
	}
	if b.Run.Seed != nil {
		cfg.Seed = *b.Run.Seed
	}
	if b.Run.Trace != "" {
		cfg.TraceLevel = b.Run.Trace
	}
}
