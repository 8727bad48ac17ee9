package message

import "sync"

// ThreadSafeQueue wraps Queue with a reader/writer lock so a transport
// goroutine can deliver remote-agent responses into the queue while
// the simulation driver reads from it. Readers (Top, Empty, Size) take
// the shared lock; every mutation (Push, Pop, Clear) takes the
// exclusive lock — a shared lock on push would let two concurrent
// pushes corrupt the underlying heap.
type ThreadSafeQueue struct {
	mu sync.RWMutex
	q  *Queue
}

// NewThreadSafeQueue returns an empty thread-safe queue.
func NewThreadSafeQueue() *ThreadSafeQueue {
	return &ThreadSafeQueue{q: NewQueue()}
}

// Empty reports whether the queue holds no messages.
func (q *ThreadSafeQueue) Empty() bool {
	q.mu.RLock()
	defer q.mu.RUnlock()
	return q.q.Empty()
}

// Size returns the number of queued messages.
func (q *ThreadSafeQueue) Size() int {
	q.mu.RLock()
	defer q.mu.RUnlock()
	return q.q.Size()
}

// Top returns the highest-priority message without removing it.
func (q *ThreadSafeQueue) Top() (PrioritizedMessage, bool) {
	q.mu.RLock()
	defer q.mu.RUnlock()
	return q.q.Top()
}

// Push inserts msg, assigning it the next monotonic insertion id.
func (q *ThreadSafeQueue) Push(pm PrioritizedMessage) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.q.Push(pm)
}

// PushWithID inserts msg with an explicit insertion id, for checkpoint
// reload (see Queue.PushWithID).
func (q *ThreadSafeQueue) PushWithID(pm PrioritizedMessage, insertionID uint64) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.q.PushWithID(pm, insertionID)
}

// Pop removes and returns the highest-priority message.
func (q *ThreadSafeQueue) Pop() (PrioritizedMessage, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.q.Pop()
}

// Clear empties the queue.
func (q *ThreadSafeQueue) Clear() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.q.Clear()
}
