package workload

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// TrafficSpec is the top-level traffic configuration.
// Loaded from YAML via LoadTrafficSpec(path).
//
// Either Flows lists every flow explicitly, or NumFlows flows are drawn with
// sizes from Packets and start times from StartTime.
type TrafficSpec struct {
	Version   string      `yaml:"version"`
	NumFlows  int         `yaml:"num_flows,omitempty"`
	Packets   RangeSpec   `yaml:"packets,omitempty"`
	StartTime RangeSpec   `yaml:"start_time,omitempty"`
	Flows     []FlowEntry `yaml:"flows,omitempty"`
}

// RangeSpec parameterizes an integer draw.
// Type "uniform" draws in [Min, Max] inclusive; "constant" always yields Min.
type RangeSpec struct {
	Type string `yaml:"type"`
	Min  int64  `yaml:"min"`
	Max  int64  `yaml:"max"`
}

// FlowEntry is one explicitly configured flow.
type FlowEntry struct {
	Packets   int   `yaml:"packets"`
	StartTime int64 `yaml:"start_time"`
}

// Defaults for randomly drawn flows.
const (
	DefaultPacketsMin   = 10
	DefaultPacketsMax   = 20
	DefaultStartTimeMin = 0
	DefaultStartTimeMax = 10
)

// DefaultTrafficSpec returns a spec drawing numFlows flows with
// 10..20 packets each, starting at steps 0..10.
func DefaultTrafficSpec(numFlows int) *TrafficSpec {
	return &TrafficSpec{
		Version:   "1",
		NumFlows:  numFlows,
		Packets:   RangeSpec{Type: "uniform", Min: DefaultPacketsMin, Max: DefaultPacketsMax},
		StartTime: RangeSpec{Type: "uniform", Min: DefaultStartTimeMin, Max: DefaultStartTimeMax},
	}
}

var validRangeTypes = map[string]bool{"": true, "uniform": true, "constant": true}

// LoadTrafficSpec reads and parses a YAML traffic specification file.
// Uses strict parsing: unrecognized keys (typos) are rejected.
func LoadTrafficSpec(path string) (*TrafficSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading traffic spec: %w", err)
	}
	var spec TrafficSpec
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&spec); err != nil {
		return nil, fmt.Errorf("parsing traffic spec: %w", err)
	}
	spec.applyDefaults()
	return &spec, nil
}

// applyDefaults fills ranges left entirely unset in YAML with the defaults.
// A start time of 0 for every flow needs type: constant.
func (s *TrafficSpec) applyDefaults() {
	if s.Packets == (RangeSpec{}) {
		s.Packets = RangeSpec{Type: "uniform", Min: DefaultPacketsMin, Max: DefaultPacketsMax}
	}
	if s.StartTime == (RangeSpec{}) {
		s.StartTime = RangeSpec{Type: "uniform", Min: DefaultStartTimeMin, Max: DefaultStartTimeMax}
	}
}

// Validate checks that all fields in the spec are valid.
func (s *TrafficSpec) Validate() error {
	if len(s.Flows) > 0 {
		if s.NumFlows != 0 && s.NumFlows != len(s.Flows) {
			return fmt.Errorf("num_flows (%d) disagrees with %d listed flows", s.NumFlows, len(s.Flows))
		}
		for i, f := range s.Flows {
			if f.Packets <= 0 {
				return fmt.Errorf("flows[%d]: packets must be positive, got %d", i, f.Packets)
			}
			if f.StartTime < 0 {
				return fmt.Errorf("flows[%d]: start_time must be non-negative, got %d", i, f.StartTime)
			}
		}
		return nil
	}
	if s.NumFlows < 0 {
		return fmt.Errorf("num_flows must be non-negative, got %d", s.NumFlows)
	}
	if err := validateRange("packets", s.Packets, 1); err != nil {
		return err
	}
	return validateRange("start_time", s.StartTime, 0)
}

func validateRange(name string, r RangeSpec, floor int64) error {
	if !validRangeTypes[r.Type] {
		return fmt.Errorf("%s: unknown range type %q; valid: uniform, constant", name, r.Type)
	}
	if r.Min < floor {
		return fmt.Errorf("%s: min must be >= %d, got %d", name, floor, r.Min)
	}
	if r.Type != "constant" && r.Max < r.Min {
		return fmt.Errorf("%s: max (%d) must be >= min (%d)", name, r.Max, r.Min)
	}
	return nil
}
