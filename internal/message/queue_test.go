package message

import "testing"

func labeled(label string, arrival int64) PrioritizedMessage {
	return PrioritizedMessage{
		Msg:          Message{Arrival: arrival, Type: label},
		MarginCallID: NoMarginCall,
	}
}

func TestQueueEqualArrivalsFIFO(t *testing.T) {
	q := NewQueue()
	q.Push(labeled("1st", 0))
	q.Push(labeled("2nd", 0))
	q.Push(labeled("3rd", 0))
	q.Push(labeled("4th", 0))

	var got []string
	for i := 0; i < 3; i++ {
		pm, ok := q.Pop()
		if !ok {
			t.Fatalf("expected a message at pop %d", i)
		}
		got = append(got, pm.Msg.Type)
	}
	want := []string{"1st", "2nd", "3rd"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("pop order = %v, want prefix %v", got, want)
		}
	}
}

func TestQueueDifferingArrivals(t *testing.T) {
	q := NewQueue()
	labels := []string{"1st", "2nd", "3rd", "4th"}
	for i, label := range labels {
		q.Push(labeled(label, int64(4-i)))
	}

	var got []string
	for i := 0; i < 3; i++ {
		pm, ok := q.Pop()
		if !ok {
			t.Fatalf("expected a message at pop %d", i)
		}
		got = append(got, pm.Msg.Type)
	}
	want := []string{"4th", "3rd", "2nd"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("pop order = %v, want %v", got, want)
		}
	}
}

func TestQueueMarginCallPriority(t *testing.T) {
	q := NewQueue()
	labels := []string{"1st", "2nd", "3rd", "4th"}
	for i, label := range labels {
		q.Push(PrioritizedMessage{
			Msg:          Message{Arrival: 0, Type: label},
			MarginCallID: uint64(4 - i),
		})
	}

	var got []string
	for {
		pm, ok := q.Pop()
		if !ok {
			break
		}
		got = append(got, pm.Msg.Type)
	}
	want := []string{"4th", "3rd", "2nd", "1st"}
	if len(got) != len(want) {
		t.Fatalf("drained %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("drained %v, want %v", got, want)
		}
	}
}

func TestQueueEmptySizeTop(t *testing.T) {
	q := NewQueue()
	if !q.Empty() {
		t.Fatalf("expected new queue to be empty")
	}
	q.Push(labeled("only", 10))
	if q.Empty() || q.Size() != 1 {
		t.Fatalf("expected size 1, got empty=%v size=%d", q.Empty(), q.Size())
	}
	top, ok := q.Top()
	if !ok || top.Msg.Type != "only" {
		t.Fatalf("unexpected top: %+v, ok=%v", top, ok)
	}
	if q.Size() != 1 {
		t.Fatalf("Top must not remove, size=%d", q.Size())
	}
}

func TestQueueClearPreservesInsertionCounter(t *testing.T) {
	q := NewQueue()
	q.Push(labeled("a", 0))
	q.Push(labeled("b", 0))
	q.Clear()
	if !q.Empty() {
		t.Fatalf("expected empty after clear")
	}
	if q.nextID != 2 {
		t.Fatalf("expected insertion counter 2 to survive clear, got %d", q.nextID)
	}
	q.Push(labeled("c", 5))
	q.Push(labeled("d", 5))
	pm, _ := q.Pop()
	if pm.Msg.Type != "c" {
		t.Fatalf("expected FIFO order preserved after clear, got %s", pm.Msg.Type)
	}
}

func TestThreadSafeQueuePushPopRoundTrip(t *testing.T) {
	q := NewThreadSafeQueue()
	q.Push(labeled("x", 1))
	q.Push(labeled("y", 2))
	if q.Size() != 2 {
		t.Fatalf("expected size 2, got %d", q.Size())
	}
	pm, ok := q.Pop()
	if !ok || pm.Msg.Type != "x" {
		t.Fatalf("unexpected pop: %+v ok=%v", pm, ok)
	}
	q.Clear()
	if !q.Empty() {
		t.Fatalf("expected empty after clear")
	}
}
