package trace

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidTraceLevel(t *testing.T) {
	assert.True(t, IsValidTraceLevel(""))
	assert.True(t, IsValidTraceLevel("none"))
	assert.True(t, IsValidTraceLevel("decisions"))
	assert.False(t, IsValidTraceLevel("verbose"))
}

func TestSimulationTrace_RecordsInOrder(t *testing.T) {
	// GIVEN a new trace
	st := NewSimulationTrace(TraceConfig{Level: TraceLevelDecisions, TotalPRBs: 15})

	// WHEN two steps are recorded
	st.RecordAllocation(AllocationRecord{Step: 1, Backlogs: []int{3, 0}, Grants: []int{15, 0}})
	st.RecordDrain(DrainRecord{Step: 1, Queue: 0, Granted: 15, Used: 3, Completed: []int{0}})
	st.RecordAllocation(AllocationRecord{Step: 2, Backlogs: []int{0, 0}, Grants: []int{0, 0}})

	// THEN records keep their recording order
	assert.Len(t, st.Allocations, 2)
	assert.Equal(t, int64(1), st.Allocations[0].Step)
	assert.Equal(t, int64(2), st.Allocations[1].Step)
	assert.Len(t, st.Drains, 1)
}

func TestAllocationRecord_UnallocatedAndStarved(t *testing.T) {
	r := AllocationRecord{Backlogs: []int{1, 100, 0}, Grants: []int{0, 9, 0}}

	assert.Equal(t, 1, r.Unallocated(10))
	assert.Equal(t, []int{0}, r.Starved(), "an idle queue with no grant is not starved")
}
