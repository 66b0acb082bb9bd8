package sim

import "fmt"

// Allocator slices the station's PRB budget across queues for one step.
// backlogs[i] is queue i's buffered packet count; the returned grant vector has
// the same length. Implementations must be deterministic and must never grant
// more than totalPRBs in sum.
type Allocator interface {
	Allocate(backlogs []int, totalPRBs int) []int
}

// ProportionalAllocator grants each queue floor(backlog_i * totalPRBs / totalBacklog).
// Truncation remainders are left unallocated; a queue with a small share may get 0.
type ProportionalAllocator struct{}

func (p *ProportionalAllocator) Allocate(backlogs []int, totalPRBs int) []int {
	grants := make([]int, len(backlogs))
	total := 0
	for _, b := range backlogs {
		total += b
	}
	if total == 0 {
		return grants
	}
	// Integer arithmetic gives the exact floor; a float ratio can land a hair under an integer.
	for i, b := range backlogs {
		grants[i] = b * totalPRBs / total
	}
	return grants
}

// EqualShareAllocator grants totalPRBs / len(backlogs) to every queue as soon as
// any queue has backlog, regardless of each queue's own demand.
type EqualShareAllocator struct{}

func (e *EqualShareAllocator) Allocate(backlogs []int, totalPRBs int) []int {
	grants := make([]int, len(backlogs))
	if len(backlogs) == 0 {
		return grants
	}
	total := 0
	for _, b := range backlogs {
		total += b
	}
	if total == 0 {
		return grants
	}
	share := totalPRBs / len(backlogs)
	for i := range grants {
		grants[i] = share
	}
	return grants
}

// NewAllocator creates an Allocator by name.
// Valid names: "proportional" (default), "equal".
// Empty string defaults to ProportionalAllocator (for CLI flag default compatibility).
// Panics on unrecognized names.
func NewAllocator(name string) Allocator {
	if !IsValidAllocator(name) {
		panic(fmt.Sprintf("unknown allocator %q", name))
	}
	switch name {
	case "", "proportional":
		return &ProportionalAllocator{}
	case "equal":
		return &EqualShareAllocator{}
	default:
		panic(fmt.Sprintf("unhandled allocator %q", name))
	}
}

// IsValidAllocator returns true if name is a recognized allocator.
func IsValidAllocator(name string) bool {
	return ValidAllocators[name]
}
