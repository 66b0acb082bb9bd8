// Package testutil provides shared test infrastructure for the simulator.
// It consolidates scripted randomness and assertion helpers used across
// sim/ and its sub-packages.
package testutil

import (
	"fmt"
	"math"
	"testing"
)

// ScriptedSource replays a fixed sequence of draws. Each value is the
// desired result of the next Intn call and must lie in [0, n).
// Intn panics when the script is exhausted or a value is out of range,
// so a test fails loudly if the engine consumes more randomness than expected.
type ScriptedSource struct {
	values []int
	next   int
}

// NewScriptedSource creates a source returning values in order.
func NewScriptedSource(values ...int) *ScriptedSource {
	return &ScriptedSource{values: values}
}

// NewIncrementSource creates a source whose draws produce the given packet
// increments for a generator drawing 1 + Intn(10).
func NewIncrementSource(increments ...int) *ScriptedSource {
	values := make([]int, len(increments))
	for i, inc := range increments {
		values[i] = inc - 1
	}
	return &ScriptedSource{values: values}
}

// Intn returns the next scripted value.
func (s *ScriptedSource) Intn(n int) int {
	if s.next >= len(s.values) {
		panic(fmt.Sprintf("ScriptedSource: script exhausted after %d draws", s.next))
	}
	v := s.values[s.next]
	if v < 0 || v >= n {
		panic(fmt.Sprintf("ScriptedSource: draw %d value %d outside [0, %d)", s.next, v, n))
	}
	s.next++
	return v
}

// Consumed returns how many draws have been made.
func (s *ScriptedSource) Consumed() int {
	return s.next
}

// ConstantSource always returns the same value, clamped into [0, n).
type ConstantSource int

// Intn returns the constant clamped to n-1.
func (c ConstantSource) Intn(n int) int {
	return min(int(c), n-1)
}

// AssertFloat64Equal compares two float64 values with relative tolerance.
func AssertFloat64Equal(t *testing.T, name string, want, got, relTol float64) {
	t.Helper()
	if want == 0 && got == 0 {
		return
	}
	diff := math.Abs(want - got)
	maxVal := math.Max(math.Abs(want), math.Abs(got))
	if diff/maxVal > relTol {
		t.Errorf("%s: got %v, want %v (diff=%v, relDiff=%v)", name, got, want, diff, diff/maxVal)
	}
}
