package sim

import (
	"fmt"
)

// DrainResult reports what one queue consumed during a step.
type DrainResult struct {
	Used      int      // PRBs consumed; never exceeds the grant
	Completed []FlowID // flows whose last packet was acknowledged, in completion order
}

// Drain serves queue q with up to grant PRBs at step now. Each PRB pops one
// packet off the front of the queue and acknowledges it to its owning flow,
// looked up in flows by ID. Packets are served strictly in arrival order
// across all member flows.
//
// A queued packet whose flow is missing from the arena or not assigned to q
// means the station was wired incorrectly; Drain panics rather than continue
// with corrupted state.
func Drain(q *PacketQueue, grant int, now int64, flows []*Flow) DrainResult {
	var res DrainResult
	for res.Used < grant {
		id, ok := q.PopFront()
		if !ok {
			break
		}
		if int(id) < 0 || int(id) >= len(flows) || flows[id] == nil {
			panic(fmt.Sprintf("Drain: queue %d holds packet of unknown flow %d", q.ID, id))
		}
		f := flows[id]
		if f.Queue != q.ID {
			panic(fmt.Sprintf("Drain: queue %d holds packet of flow %d assigned to queue %d", q.ID, id, f.Queue))
		}
		res.Used++
		if f.Ack(1, now) {
			res.Completed = append(res.Completed, id)
		}
	}
	return res
}
