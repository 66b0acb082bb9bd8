// Package trace provides decision-trace recording for per-step slicing and draining analysis.
// This package has no dependencies on sim/; it stores pure data types.
package trace

// AllocationRecord captures a single slicing decision.
type AllocationRecord struct {
	Step     int64
	Backlogs []int // per-queue backlog the allocator saw
	Grants   []int // per-queue PRB grant
}

// Unallocated returns the PRBs of the budget that no queue was granted.
func (r AllocationRecord) Unallocated(totalPRBs int) int {
	granted := 0
	for _, g := range r.Grants {
		granted += g
	}
	return totalPRBs - granted
}

// Starved returns the queues that had backlog but were granted nothing.
func (r AllocationRecord) Starved() []int {
	var starved []int
	for i, b := range r.Backlogs {
		if b > 0 && i < len(r.Grants) && r.Grants[i] == 0 {
			starved = append(starved, i)
		}
	}
	return starved
}

// DrainRecord captures how one queue used its grant in a step.
type DrainRecord struct {
	Step      int64
	Queue     int
	Granted   int
	Used      int
	Completed []int // flow IDs completed by this drain, in completion order
}
