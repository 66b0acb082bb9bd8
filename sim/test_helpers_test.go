package sim

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/prb-sim/prb-sim/sim/internal/testutil"
)

// stationConfig returns a config with the given station shape and flows and a generous step budget.
func stationConfig(prbs, numQueues, capacity int, flows ...FlowSpec) SimConfig {
	return SimConfig{
		MaxSteps:      1000,
		StationConfig: NewStationConfig(prbs, numQueues, capacity),
		Flows:         flows,
	}
}

// scriptedSimulator builds a simulator whose packet draws are exactly the given increments.
func scriptedSimulator(t *testing.T, cfg SimConfig, increments ...int) (*Simulator, *testutil.ScriptedSource) {
	t.Helper()
	src := testutil.NewIncrementSource(increments...)
	s, err := NewSimulatorWithSource(cfg, src)
	require.NoError(t, err)
	return s, src
}
