// sim/station.go
package sim

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"golang.org/x/exp/slices"

	"github.com/prb-sim/prb-sim/sim/trace"
)

// StepRecord is the per-step output consumed by reporting: the PRB grant and
// the PRBs actually used, one entry per queue.
type StepRecord struct {
	Step   int64
	Grants []int
	Usage  []int
}

// CompletionRecord reports the outcome of one flow.
type CompletionRecord struct {
	FlowID         FlowID
	StartTime      int64
	CompletionTime int64 // valid only when Completed is true
	Completed      bool
}

// BaseStation owns all mutable state of one run: the flow arena, the queues,
// the clock and the per-step histories. It is not safe for concurrent use.
type BaseStation struct {
	TotalPRBs int
	Queues    []*PacketQueue
	Clock     int64

	// flows is the arena; a flow's ID is its index. Queues hold IDs only.
	flows []*Flow

	// Completed lists flows in the order they completed; each flow appears once.
	Completed []FlowID

	AllocationHistory [][]int
	UsageHistory      [][]int

	Metrics *Metrics
	Trace   *trace.SimulationTrace // nil unless decision tracing is enabled

	allocator  Allocator
	generation GenerationPolicy
	rng        RandSource
}

// NewBaseStation creates a station with empty queues. rng drives packet generation.
func NewBaseStation(cfg StationConfig, policy PolicyConfig, rng RandSource) (*BaseStation, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid station config: %w", err)
	}
	if err := policy.Validate(); err != nil {
		return nil, fmt.Errorf("invalid policy config: %w", err)
	}
	if rng == nil {
		return nil, fmt.Errorf("random source must not be nil")
	}
	queues := make([]*PacketQueue, cfg.NumQueues)
	for i := range queues {
		queues[i] = NewPacketQueue(QueueID(i), cfg.QueueCapacity)
	}
	return &BaseStation{
		TotalPRBs:  cfg.TotalPRBs,
		Queues:     queues,
		Metrics:    NewMetrics(cfg.NumQueues),
		allocator:  NewAllocator(policy.Allocator),
		generation: NewGenerationPolicy(policy.Generation),
		rng:        rng,
	}, nil
}

// EnableTrace starts recording every slicing and draining decision.
func (bs *BaseStation) EnableTrace() {
	bs.Trace = trace.NewSimulationTrace(trace.TraceConfig{
		Level:     trace.TraceLevelDecisions,
		TotalPRBs: bs.TotalPRBs,
	})
}

// AddFlow places a new flow in the arena and assigns it to queue ID mod
// len(Queues), so consecutive flows go round-robin over the traffic classes.
func (bs *BaseStation) AddFlow(spec FlowSpec) (FlowID, error) {
	if err := spec.Validate(); err != nil {
		return 0, fmt.Errorf("flow %d: %w", len(bs.flows), err)
	}
	f := NewFlow(spec.InitialPackets, spec.StartTime)
	f.ID = FlowID(len(bs.flows))
	f.Queue = QueueID(int(f.ID) % len(bs.Queues))
	bs.flows = append(bs.flows, f)
	bs.Queues[f.Queue].addMember(f.ID)
	logrus.Debugf("flow %d (%d packets, start %d) on queue %d", f.ID, f.InitialPackets, f.StartTime, f.Queue)
	return f.ID, nil
}

// Flow returns the flow with the given ID, or nil if there is none.
func (bs *BaseStation) Flow(id FlowID) *Flow {
	if int(id) < 0 || int(id) >= len(bs.flows) {
		return nil
	}
	return bs.flows[id]
}

// Flows returns the flow arena in ID order. Callers MUST NOT append to it.
func (bs *BaseStation) Flows() []*Flow {
	return bs.flows
}

// AllCompleted reports whether every flow has been fully acknowledged.
func (bs *BaseStation) AllCompleted() bool {
	return len(bs.Completed) == len(bs.flows)
}

// Backlogs returns the current per-queue backlog.
func (bs *BaseStation) Backlogs() []int {
	backlogs := make([]int, len(bs.Queues))
	for i, q := range bs.Queues {
		backlogs[i] = q.Backlog()
	}
	return backlogs
}

// Step advances the clock by one and runs the generate, allocate and drain
// phases in that order. All queues finish a phase before the next starts.
func (bs *BaseStation) Step() StepRecord {
	bs.Clock++
	now := bs.Clock

	bs.fillQueues(now)

	backlogs := bs.Backlogs()
	grants := bs.allocator.Allocate(backlogs, bs.TotalPRBs)
	if bs.Trace != nil {
		bs.Trace.RecordAllocation(trace.AllocationRecord{
			Step:     now,
			Backlogs: slices.Clone(backlogs),
			Grants:   slices.Clone(grants),
		})
	}

	usage := bs.drainQueues(now, grants)
	logrus.Debugf("[step %05d] PRB allocated: %v, PRB used: %v", now, grants, usage)

	bs.AllocationHistory = append(bs.AllocationHistory, grants)
	bs.UsageHistory = append(bs.UsageHistory, usage)
	bs.Metrics.recordStep(backlogs, grants, usage, bs.TotalPRBs)

	return StepRecord{Step: now, Grants: slices.Clone(grants), Usage: slices.Clone(usage)}
}

// fillQueues lets every active flow offer packets to its queue, in queue
// order and then member order.
func (bs *BaseStation) fillQueues(now int64) {
	for _, q := range bs.Queues {
		for _, id := range q.Members() {
			f := bs.flows[id]
			if !f.CanGenerate(now) {
				continue
			}
			if f.State == FlowWaiting {
				f.State = FlowActive
			}
			offered := bs.generation.Offer(f, now, bs.rng)
			accepted, dropped := q.Admit(f, offered)
			bs.Metrics.recordAdmission(offered, accepted, dropped)
			if dropped > 0 {
				logrus.Debugf("[step %05d] queue %d full: flow %d kept %d packets in flight", now, q.ID, f.ID, dropped)
			}
		}
		logrus.Debugf("[step %05d] queue%d %s", now, q.ID, q)
	}
}

// drainQueues serves each queue with its grant and returns the PRBs used.
func (bs *BaseStation) drainQueues(now int64, grants []int) []int {
	usage := make([]int, len(bs.Queues))
	for i, q := range bs.Queues {
		res := Drain(q, grants[i], now, bs.flows)
		usage[i] = res.Used
		for _, id := range res.Completed {
			bs.Completed = append(bs.Completed, id)
			f := bs.flows[id]
			bs.Metrics.recordCompletion(f)
			logrus.Infof("Flow %d completed at time %d", id, now)
		}
		if bs.Trace != nil {
			completed := make([]int, len(res.Completed))
			for j, id := range res.Completed {
				completed[j] = int(id)
			}
			bs.Trace.RecordDrain(trace.DrainRecord{
				Step:      now,
				Queue:     int(q.ID),
				Granted:   grants[i],
				Used:      res.Used,
				Completed: completed,
			})
		}
	}
	return usage
}

// Records returns the per-step history as StepRecords.
func (bs *BaseStation) Records() []StepRecord {
	records := make([]StepRecord, len(bs.AllocationHistory))
	for t := range records {
		records[t] = StepRecord{
			Step:   int64(t + 1),
			Grants: slices.Clone(bs.AllocationHistory[t]),
			Usage:  slices.Clone(bs.UsageHistory[t]),
		}
	}
	return records
}

// Completions returns one record per completed flow, in completion order.
func (bs *BaseStation) Completions() []CompletionRecord {
	out := make([]CompletionRecord, 0, len(bs.Completed))
	for _, id := range bs.Completed {
		f := bs.flows[id]
		out = append(out, CompletionRecord{
			FlowID:         f.ID,
			StartTime:      f.StartTime,
			CompletionTime: f.CompletionTime,
			Completed:      true,
		})
	}
	return out
}

// Outcomes returns one record per flow in ID order, completed or not.
func (bs *BaseStation) Outcomes() []CompletionRecord {
	out := make([]CompletionRecord, len(bs.flows))
	for i, f := range bs.flows {
		out[i] = CompletionRecord{
			FlowID:         f.ID,
			StartTime:      f.StartTime,
			CompletionTime: f.CompletionTime,
			Completed:      f.Completed(),
		}
	}
	return out
}

// Pending returns the IDs of flows that have not completed.
func (bs *BaseStation) Pending() []FlowID {
	var pending []FlowID
	for _, f := range bs.flows {
		if !f.Completed() {
			pending = append(pending, f.ID)
		}
	}
	return pending
}
