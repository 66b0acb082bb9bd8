// Defines the Flow struct that models a single data transfer in the simulation.
// Tracks the remaining backlog, the sender offer window, and completion bookkeeping.

package sim

import (
	"fmt"
)

// FlowID addresses a flow in the station's flow arena.
// IDs are dense and assigned in insertion order starting at 0.
type FlowID int

// FlowState represents the lifecycle state of a flow.
type FlowState string

const (
	FlowWaiting   FlowState = "waiting"   // before StartTime
	FlowActive    FlowState = "active"    // generating packets
	FlowCompleted FlowState = "completed" // every packet acknowledged; inert
)

// Flow models one data transfer multiplexed over the station's queues.
type Flow struct {
	ID    FlowID  // Arena index, unique within a run
	Queue QueueID // Traffic class the flow is statically assigned to

	InitialPackets   int   // Backlog at setup
	RemainingPackets int   // Packets not yet acknowledged; only Ack decrements it
	StartTime        int64 // Flow does not generate before this step

	// Inflight is the sender offer window: packets generated but not yet
	// buffered by the queue. Admission resets it to the count that did not fit.
	Inflight int

	State          FlowState
	CompletionTime int64 // Step at which RemainingPackets first reached 0; valid only when State == FlowCompleted

	Dropped int // Total offered packets that did not fit in the queue
}

// NewFlow creates a flow with the given backlog and start time.
// The ID and queue are assigned by the station when the flow is added.
func NewFlow(initialPackets int, startTime int64) *Flow {
	return &Flow{
		InitialPackets:   initialPackets,
		RemainingPackets: initialPackets,
		StartTime:        startTime,
		State:            FlowWaiting,
	}
}

// Completed reports whether the flow has been fully acknowledged.
func (f *Flow) Completed() bool {
	return f.State == FlowCompleted
}

// CanGenerate reports whether the flow offers packets at step now.
func (f *Flow) CanGenerate(now int64) bool {
	return now >= f.StartTime && f.RemainingPackets > 0 && !f.Completed()
}

// Ack acknowledges n delivered packets at step now.
// Returns true only on the call that completes the flow. Once the flow is
// completed further acknowledgments leave it untouched.
func (f *Flow) Ack(n int, now int64) bool {
	if f.Completed() {
		return false
	}
	f.RemainingPackets -= n
	if f.RemainingPackets <= 0 {
		f.RemainingPackets = 0
		f.Inflight = 0
		f.State = FlowCompleted
		f.CompletionTime = now
		return true
	}
	return false
}

// Duration is the number of steps between start and completion.
// Returns -1 for flows that have not completed.
func (f *Flow) Duration() int64 {
	if !f.Completed() {
		return -1
	}
	return f.CompletionTime - f.StartTime
}

// This method returns a human-readable string representation of a Flow.
func (f Flow) String() string {
	return fmt.Sprintf("Flow: (ID: %d, Queue: %d, State: %s, Remaining: %d, Inflight: %d, Start: %d)",
		f.ID, f.Queue, f.State, f.RemainingPackets, f.Inflight, f.StartTime)
}
