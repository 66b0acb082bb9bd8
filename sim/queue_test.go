package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newMemberFlow returns a flow already assigned to queue q.
func newMemberFlow(q *PacketQueue, id FlowID, packets int) *Flow {
	f := NewFlow(packets, 0)
	f.ID = id
	f.Queue = q.ID
	q.addMember(id)
	return f
}

func TestPacketQueue_Admit_WithinCapacity_AcceptsAll(t *testing.T) {
	// GIVEN an empty queue of capacity 10
	q := NewPacketQueue(0, 10)
	f := newMemberFlow(q, 0, 20)
	f.Inflight = 4

	// WHEN the flow offers 4 packets
	accepted, dropped := q.Admit(f, 4)

	// THEN every packet is buffered and nothing stays in flight
	assert.Equal(t, 4, accepted)
	assert.Equal(t, 0, dropped)
	assert.Equal(t, 4, q.Backlog())
	assert.Equal(t, 0, f.Inflight)
	assert.Equal(t, []FlowID{0, 0, 0, 0}, q.Items())
}

func TestPacketQueue_Admit_OverCapacity_KeepsDroppedInFlight(t *testing.T) {
	// GIVEN a queue of capacity 3
	q := NewPacketQueue(0, 3)
	f := newMemberFlow(q, 0, 20)

	// WHEN the flow offers 10 packets in one step
	accepted, dropped := q.Admit(f, 10)

	// THEN 3 are buffered and 7 remain offered for the next step
	assert.Equal(t, 3, accepted)
	assert.Equal(t, 7, dropped)
	assert.Equal(t, 7, f.Inflight)
	assert.Equal(t, 7, f.Dropped)
	assert.Equal(t, 3, q.Backlog())
}

func TestPacketQueue_Admit_Full_DropsEverything(t *testing.T) {
	q := NewPacketQueue(0, 2)
	a := newMemberFlow(q, 0, 20)
	b := newMemberFlow(q, 1, 20)
	q.Admit(a, 2)

	accepted, dropped := q.Admit(b, 5)

	assert.Equal(t, 0, accepted)
	assert.Equal(t, 5, dropped)
	assert.Equal(t, 5, b.Inflight)
	assert.Equal(t, 2, q.Backlog())
	assert.Equal(t, 0, q.Free())
}

func TestPacketQueue_Admit_ForeignFlow_Panics(t *testing.T) {
	q := NewPacketQueue(1, 5)
	f := NewFlow(5, 0)
	f.Queue = 2

	assert.Panics(t, func() { q.Admit(f, 1) })
}

func TestPacketQueue_PopFront_PreservesArrivalOrderAcrossFlows(t *testing.T) {
	// GIVEN two flows interleaving their packets in one queue
	q := NewPacketQueue(0, 10)
	a := newMemberFlow(q, 0, 20)
	b := newMemberFlow(q, 1, 20)
	q.Admit(a, 2)
	q.Admit(b, 1)
	q.Admit(a, 1)

	// WHEN the queue is emptied
	var got []FlowID
	for {
		id, ok := q.PopFront()
		if !ok {
			break
		}
		got = append(got, id)
	}

	// THEN packets leave in the order they were buffered
	assert.Equal(t, []FlowID{0, 0, 1, 0}, got)
	assert.Equal(t, 0, q.Backlog())
}

func TestPacketQueue_RingWraparound_KeepsFIFO(t *testing.T) {
	// GIVEN a queue that is repeatedly filled and partly drained so the ring wraps
	q := NewPacketQueue(0, 5)
	flows := []*Flow{newMemberFlow(q, 0, 100), newMemberFlow(q, 1, 100), newMemberFlow(q, 2, 100)}

	var want []FlowID
	var got []FlowID
	for round := 0; round < 20; round++ {
		f := flows[round%len(flows)]
		accepted, _ := q.Admit(f, 3)
		for i := 0; i < accepted; i++ {
			want = append(want, f.ID)
		}
		for i := 0; i < 2; i++ {
			if id, ok := q.PopFront(); ok {
				got = append(got, id)
			}
		}
		require.LessOrEqual(t, q.Backlog(), q.Capacity)
	}
	got = append(got, q.Items()...)

	// THEN the overall service order equals the admission order
	assert.Equal(t, want, got)
}

func TestPacketQueue_Peek(t *testing.T) {
	q := NewPacketQueue(0, 4)
	_, ok := q.Peek()
	assert.False(t, ok)

	f := newMemberFlow(q, 3, 10)
	q.Admit(f, 1)
	id, ok := q.Peek()
	assert.True(t, ok)
	assert.Equal(t, FlowID(3), id)
	assert.Equal(t, 1, q.Backlog(), "Peek must not remove")
}

func TestPacketQueue_Members_AndString(t *testing.T) {
	q := NewPacketQueue(2, 4)
	a := newMemberFlow(q, 2, 10)
	newMemberFlow(q, 5, 10)
	q.Admit(a, 2)

	assert.Equal(t, []FlowID{2, 5}, q.Members())
	assert.True(t, q.IsMember(5))
	assert.False(t, q.IsMember(1))
	assert.Equal(t, "[2 2]", q.String())
}

func TestNewPacketQueue_NonPositiveCapacity_Panics(t *testing.T) {
	assert.Panics(t, func() { NewPacketQueue(0, 0) })
}
