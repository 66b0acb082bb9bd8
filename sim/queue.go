// Implements the PacketQueue, a bounded FIFO of packets shared by the flows of one traffic class.
// Each buffered packet is stored as the ID of the flow that generated it.

package sim

import (
	"fmt"
	"strings"
)

// QueueID identifies a traffic class queue. IDs are dense, starting at 0.
type QueueID int

// PacketQueue is a bounded FIFO of packets. Storage is a ring buffer so that
// PopFront is O(1); it grows on demand and never holds more than Capacity entries.
type PacketQueue struct {
	ID       QueueID
	Capacity int

	members []FlowID // flows statically assigned to this queue, in insertion order
	buf     []FlowID // ring storage
	head    int      // index of the front packet in buf
	size    int      // number of buffered packets
}

// NewPacketQueue creates an empty queue. Panics if capacity is not positive;
// callers validate configuration before constructing queues.
func NewPacketQueue(id QueueID, capacity int) *PacketQueue {
	if capacity <= 0 {
		panic(fmt.Sprintf("NewPacketQueue: capacity must be > 0, got %d", capacity))
	}
	return &PacketQueue{ID: id, Capacity: capacity}
}

// Backlog returns the number of buffered packets.
func (q *PacketQueue) Backlog() int {
	return q.size
}

// Free returns the remaining buffer space.
func (q *PacketQueue) Free() int {
	return max(0, q.Capacity-q.size)
}

// Members returns the flows assigned to this queue.
// The returned slice MUST NOT be modified.
func (q *PacketQueue) Members() []FlowID {
	return q.members
}

// IsMember reports whether the flow is assigned to this queue.
func (q *PacketQueue) IsMember(id FlowID) bool {
	for _, m := range q.members {
		if m == id {
			return true
		}
	}
	return false
}

func (q *PacketQueue) addMember(id FlowID) {
	q.members = append(q.members, id)
}

// Admit buffers up to offered packets of flow f and returns how many were
// accepted and how many did not fit. The flow's offer window is reset to the
// dropped count so that those packets are offered again next step.
func (q *PacketQueue) Admit(f *Flow, offered int) (accepted, dropped int) {
	if f.Queue != q.ID {
		panic(fmt.Sprintf("Admit: flow %d belongs to queue %d, not %d", f.ID, f.Queue, q.ID))
	}
	if offered < 0 {
		panic(fmt.Sprintf("Admit: negative offer %d from flow %d", offered, f.ID))
	}
	accepted = min(offered, q.Free())
	dropped = offered - accepted
	for i := 0; i < accepted; i++ {
		q.push(f.ID)
	}
	f.Inflight = dropped
	f.Dropped += dropped
	return accepted, dropped
}

func (q *PacketQueue) push(id FlowID) {
	if q.size == q.Capacity {
		panic(fmt.Sprintf("push: queue %d is full (capacity %d)", q.ID, q.Capacity))
	}
	if q.size == len(q.buf) {
		q.grow()
	}
	q.buf[(q.head+q.size)%len(q.buf)] = id
	q.size++
}

// grow doubles the ring, bounded by Capacity, and unwraps it so head is 0.
func (q *PacketQueue) grow() {
	n := min(max(8, 2*len(q.buf)), q.Capacity)
	buf := make([]FlowID, n)
	for i := 0; i < q.size; i++ {
		buf[i] = q.buf[(q.head+i)%len(q.buf)]
	}
	q.buf = buf
	q.head = 0
}

// Peek returns the flow ID of the front packet without removing it.
func (q *PacketQueue) Peek() (FlowID, bool) {
	if q.size == 0 {
		return 0, false
	}
	return q.buf[q.head], true
}

// PopFront removes the front packet and returns the ID of the flow that owns it.
func (q *PacketQueue) PopFront() (FlowID, bool) {
	if q.size == 0 {
		return 0, false
	}
	id := q.buf[q.head]
	q.head = (q.head + 1) % len(q.buf)
	q.size--
	return id, true
}

// Items returns a copy of the buffered packets in FIFO order.
func (q *PacketQueue) Items() []FlowID {
	items := make([]FlowID, q.size)
	for i := range items {
		items[i] = q.buf[(q.head+i)%len(q.buf)]
	}
	return items
}

func (q *PacketQueue) String() string {
	var sb strings.Builder
	sb.WriteString("[")
	for i, id := range q.Items() {
		sb.WriteString(fmt.Sprint(int(id)))
		if i < q.size-1 {
			sb.WriteString(" ")
		}
	}
	sb.WriteString("]")
	return sb.String()
}
