package workload

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSpec(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "traffic.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadTrafficSpec_ExplicitFlows(t *testing.T) {
	path := writeSpec(t, `
version: "1"
flows:
  - packets: 5
    start_time: 0
  - packets: 12
    start_time: 4
`)
	spec, err := LoadTrafficSpec(path)
	require.NoError(t, err)
	require.NoError(t, spec.Validate())

	assert.Equal(t, []FlowEntry{{Packets: 5, StartTime: 0}, {Packets: 12, StartTime: 4}}, spec.Flows)
}

func TestLoadTrafficSpec_RandomFlows(t *testing.T) {
	path := writeSpec(t, `
version: "1"
num_flows: 8
packets:
  type: uniform
  min: 1
  max: 50
start_time:
  type: constant
  min: 0
`)
	spec, err := LoadTrafficSpec(path)
	require.NoError(t, err)
	require.NoError(t, spec.Validate())

	assert.Equal(t, 8, spec.NumFlows)
	assert.Equal(t, RangeSpec{Type: "uniform", Min: 1, Max: 50}, spec.Packets)
	assert.Equal(t, RangeSpec{Type: "constant"}, spec.StartTime)
}

func TestLoadTrafficSpec_UnsetRanges_GetDefaults(t *testing.T) {
	spec, err := LoadTrafficSpec(writeSpec(t, "num_flows: 3\n"))
	require.NoError(t, err)

	assert.Equal(t, DefaultTrafficSpec(3).Packets, spec.Packets)
	assert.Equal(t, DefaultTrafficSpec(3).StartTime, spec.StartTime)
}

func TestLoadTrafficSpec_UnknownField_Rejected(t *testing.T) {
	_, err := LoadTrafficSpec(writeSpec(t, "num_flow: 3\n"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing traffic spec")
}

func TestLoadTrafficSpec_MissingFile(t *testing.T) {
	_, err := LoadTrafficSpec(filepath.Join(t.TempDir(), "nope.yaml"))

	assert.ErrorContains(t, err, "reading traffic spec")
}

func TestTrafficSpec_Validate_Rejects(t *testing.T) {
	tests := []struct {
		name    string
		spec    TrafficSpec
		wantErr string
	}{
		{"count mismatch", TrafficSpec{NumFlows: 3, Flows: []FlowEntry{{Packets: 1}}}, "num_flows (3) disagrees with 1 listed flows"},
		{"empty flow", TrafficSpec{Flows: []FlowEntry{{Packets: 0}}}, "flows[0]: packets must be positive"},
		{"negative start", TrafficSpec{Flows: []FlowEntry{{Packets: 1, StartTime: -1}}}, "flows[0]: start_time must be non-negative"},
		{"negative count", TrafficSpec{NumFlows: -1}, "num_flows must be non-negative"},
		{"zero packets", TrafficSpec{NumFlows: 1, Packets: RangeSpec{Type: "uniform", Min: 0, Max: 5}}, "packets: min must be >= 1"},
		{"inverted range", TrafficSpec{NumFlows: 1, Packets: RangeSpec{Min: 9, Max: 2}}, "packets: max (2) must be >= min (9)"},
		{"bad type", TrafficSpec{NumFlows: 1, Packets: RangeSpec{Type: "gaussian", Min: 1, Max: 2}}, `packets: unknown range type "gaussian"`},
		{"negative start range", TrafficSpec{NumFlows: 1, Packets: RangeSpec{Min: 1, Max: 2}, StartTime: RangeSpec{Min: -2, Max: 2}}, "start_time: min must be >= 0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.spec.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestDefaultTrafficSpec_IsValid(t *testing.T) {
	assert.NoError(t, DefaultTrafficSpec(6).Validate())
}
