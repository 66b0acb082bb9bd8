package trace

// TraceSummary aggregates statistics from a SimulationTrace.
type TraceSummary struct {
	Steps            int
	GrantedPRBs      int
	UsedPRBs         int
	IdleGrantedPRBs  int         // granted but not consumed (queue emptied early)
	UnallocatedPRBs  int         // never granted because of truncation or empty backlog
	StarvationEvents int         // (step, queue) pairs with backlog but zero grant
	UsageByQueue     map[int]int // queue → PRBs consumed
	CompletedFlows   int
}

// Summarize computes aggregate statistics from a SimulationTrace.
// Safe for nil or empty traces (returns zero-value fields).
func Summarize(st *SimulationTrace) *TraceSummary {
	summary := &TraceSummary{
		UsageByQueue: make(map[int]int),
	}
	if st == nil {
		return summary
	}

	summary.Steps = len(st.Allocations)
	for _, a := range st.Allocations {
		summary.UnallocatedPRBs += a.Unallocated(st.Config.TotalPRBs)
		summary.StarvationEvents += len(a.Starved())
	}

	for _, d := range st.Drains {
		summary.GrantedPRBs += d.Granted
		summary.UsedPRBs += d.Used
		summary.UsageByQueue[d.Queue] += d.Used
		summary.CompletedFlows += len(d.Completed)
	}
	summary.IdleGrantedPRBs = summary.GrantedPRBs - summary.UsedPRBs

	return summary
}
