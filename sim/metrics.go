// Tracks run-wide traffic and PRB statistics such as:
// offered/accepted/dropped packets, granted vs used PRBs, and flow completion times.

package sim

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
)

// Metrics aggregates statistics about the simulation
// for final reporting.
type Metrics struct {
	Steps int64 // Number of steps executed

	OfferedPackets  int // Sum of per-step offers (retried packets count again)
	AcceptedPackets int // Packets buffered by a queue
	DroppedPackets  int // Offered packets that did not fit; kept in flight under the window policy

	GrantedPRBs      []int // per-queue total PRBs granted
	UsedPRBs         []int // per-queue total PRBs consumed
	UnallocatedPRBs  int   // budget left ungranted by truncation or an idle station
	StarvationEvents int   // (step, queue) pairs with backlog but no grant

	CompletedFlows  int
	PendingFlows    int
	CompletionTimes []float64 // step at which each completed flow finished
	FlowDurations   []float64 // completion - start for each completed flow
}

// NewMetrics creates Metrics sized for numQueues queues.
func NewMetrics(numQueues int) *Metrics {
	return &Metrics{
		GrantedPRBs:     make([]int, numQueues),
		UsedPRBs:        make([]int, numQueues),
		CompletionTimes: make([]float64, 0),
		FlowDurations:   make([]float64, 0),
	}
}

func (m *Metrics) recordAdmission(offered, accepted, dropped int) {
	m.OfferedPackets += offered
	m.AcceptedPackets += accepted
	m.DroppedPackets += dropped
}

func (m *Metrics) recordStep(backlogs, grants, usage []int, totalPRBs int) {
	m.Steps++
	granted := 0
	for i := range grants {
		m.GrantedPRBs[i] += grants[i]
		m.UsedPRBs[i] += usage[i]
		granted += grants[i]
		if backlogs[i] > 0 && grants[i] == 0 {
			m.StarvationEvents++
		}
	}
	m.UnallocatedPRBs += totalPRBs - granted
}

func (m *Metrics) recordCompletion(f *Flow) {
	m.CompletedFlows++
	m.CompletionTimes = append(m.CompletionTimes, float64(f.CompletionTime))
	m.FlowDurations = append(m.FlowDurations, float64(f.Duration()))
}

// TotalUsedPRBs sums consumed PRBs over all queues.
func (m *Metrics) TotalUsedPRBs() int {
	total := 0
	for _, u := range m.UsedPRBs {
		total += u
	}
	return total
}

// Utilization is the fraction of the whole PRB budget over the run that was consumed.
func (m *Metrics) Utilization(totalPRBs int) float64 {
	if m.Steps == 0 || totalPRBs <= 0 {
		return 0
	}
	used := make([]float64, len(m.UsedPRBs))
	for i, u := range m.UsedPRBs {
		used[i] = float64(u)
	}
	return floats.Sum(used) / (float64(m.Steps) * float64(totalPRBs))
}

// Print displays aggregated metrics at the end of the simulation.
func (m *Metrics) Print(totalPRBs int) {
	fmt.Println("=== Simulation Metrics ===")
	fmt.Printf("Steps                : %d\n", m.Steps)
	fmt.Printf("Completed Flows      : %d\n", m.CompletedFlows)
	fmt.Printf("Pending Flows        : %d\n", m.PendingFlows)
	fmt.Printf("Offered Packets      : %d\n", m.OfferedPackets)
	fmt.Printf("Accepted Packets     : %d\n", m.AcceptedPackets)
	fmt.Printf("Dropped Packets      : %d\n", m.DroppedPackets)
	fmt.Printf("PRB Utilization      : %.2f%%\n", 100*m.Utilization(totalPRBs))
	fmt.Printf("Unallocated PRBs     : %d\n", m.UnallocatedPRBs)
	fmt.Printf("Starvation Events    : %d\n", m.StarvationEvents)
	for i := range m.UsedPRBs {
		fmt.Printf("Queue %d PRBs         : granted=%d used=%d\n", i, m.GrantedPRBs[i], m.UsedPRBs[i])
	}
	if m.CompletedFlows > 0 {
		d := NewDistribution(m.FlowDurations)
		fmt.Printf("Flow Duration        : mean=%.2f p50=%.0f p95=%.0f max=%.0f steps\n", d.Mean, d.P50, d.P95, d.Max)
	}
}
