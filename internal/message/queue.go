package message

import (
	"container/heap"
	"math"
)

// NoMarginCall is the sentinel MarginCallID meaning "not a margin
// call" — the weakest possible priority on that axis.
const NoMarginCall = math.MaxUint64

// PrioritizedMessage pairs a Message with its margin-call priority.
// Messages with a lower MarginCallID are serviced first, ahead of
// ordinary arrival-time ordering.
type PrioritizedMessage struct {
	Msg          Message
	MarginCallID uint64
}

// NewPrioritizedMessage wraps an ordinary (non-margin-call) message.
func NewPrioritizedMessage(msg Message) PrioritizedMessage {
	return PrioritizedMessage{Msg: msg, MarginCallID: NoMarginCall}
}

// entry is the queue's internal element: a prioritized message plus
// the monotonic insertion id used to break (marginCallId, arrival)
// ties in FIFO order.
type entry struct {
	pm          PrioritizedMessage
	insertionID uint64
}

// less implements the 3-key comparator: smaller MarginCallID wins,
// then smaller Arrival, then smaller insertion id.
func less(a, b entry) bool {
	if a.pm.MarginCallID != b.pm.MarginCallID {
		return a.pm.MarginCallID < b.pm.MarginCallID
	}
	if a.pm.Msg.Arrival != b.pm.Msg.Arrival {
		return a.pm.Msg.Arrival < b.pm.Msg.Arrival
	}
	return a.insertionID < b.insertionID
}

// entryHeap is a container/heap.Interface min-heap over entry, ordered
// by less.
type entryHeap []entry

func (h entryHeap) Len() int            { return len(h) }
func (h entryHeap) Less(i, j int) bool  { return less(h[i], h[j]) }
func (h entryHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *entryHeap) Push(x any)         { *h = append(*h, x.(entry)) }
func (h *entryHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}

// Queue is a priority message queue: a min-priority queue over
// (PrioritizedMessage, insertion id) ordered by margin-call id, then
// arrival time, then FIFO insertion order. Not safe for concurrent
// use; see ThreadSafeQueue for the cross-goroutine variant.
type Queue struct {
	h      entryHeap
	nextID uint64
}

// NewQueue returns an empty queue.
func NewQueue() *Queue {
	q := &Queue{}
	heap.Init(&q.h)
	return q
}

// Empty reports whether the queue holds no messages.
func (q *Queue) Empty() bool { return q.h.Len() == 0 }

// Size returns the number of queued messages.
func (q *Queue) Size() int { return q.h.Len() }

// Push inserts msg, assigning it the next monotonic insertion id.
func (q *Queue) Push(pm PrioritizedMessage) {
	heap.Push(&q.h, entry{pm: pm, insertionID: q.nextID})
	q.nextID++
}

// PushWithID inserts msg using an explicit insertion id rather than
// the next monotonic one, letting a checkpoint reload preserve the
// original enqueue order across a restart. The queue's own counter is
// bumped past insertionID so a subsequent Push never collides with it.
func (q *Queue) PushWithID(pm PrioritizedMessage, insertionID uint64) {
	heap.Push(&q.h, entry{pm: pm, insertionID: insertionID})
	if insertionID >= q.nextID {
		q.nextID = insertionID + 1
	}
}

// Top returns the highest-priority message without removing it.
func (q *Queue) Top() (PrioritizedMessage, bool) {
	if q.h.Len() == 0 {
		return PrioritizedMessage{}, false
	}
	return q.h[0].pm, true
}

// Pop removes and returns the highest-priority message.
func (q *Queue) Pop() (PrioritizedMessage, bool) {
	if q.h.Len() == 0 {
		return PrioritizedMessage{}, false
	}
	e := heap.Pop(&q.h).(entry)
	return e.pm, true
}

// Clear empties the queue without resetting the insertion-id counter,
// so ids stay monotonic across a clear.
func (q *Queue) Clear() {
	q.h = q.h[:0]
}
