package workload

import (
	"fmt"

	"github.com/prb-sim/prb-sim/sim"
)

// IntSampler draws integer values for flow setup.
type IntSampler interface {
	Sample(rng sim.RandSource) int64
}

// UniformSampler draws uniformly in [min, max] inclusive.
type UniformSampler struct {
	min, max int64
}

func (s *UniformSampler) Sample(rng sim.RandSource) int64 {
	if s.min == s.max {
		return s.min
	}
	return s.min + int64(rng.Intn(int(s.max-s.min+1)))
}

// ConstantSampler always returns the same value and consumes no randomness.
type ConstantSampler struct {
	value int64
}

func (s *ConstantSampler) Sample(_ sim.RandSource) int64 {
	return s.value
}

// NewIntSampler creates a sampler from a RangeSpec. An empty type means uniform.
func NewIntSampler(r RangeSpec) (IntSampler, error) {
	switch r.Type {
	case "", "uniform":
		if r.Max < r.Min {
			return nil, fmt.Errorf("uniform range max (%d) < min (%d)", r.Max, r.Min)
		}
		return &UniformSampler{min: r.Min, max: r.Max}, nil
	case "constant":
		return &ConstantSampler{value: r.Min}, nil
	default:
		return nil, fmt.Errorf("unknown range type %q", r.Type)
	}
}
