package session

import (
	"testing"

	"github.com/ridgeline-systems/blehci/hci"
)

func TestEventQueuePushPopOrder(t *testing.T) {
	q := NewEventQueue(2)
	a := hci.Event{Kind: hci.EventCommandComplete}
	b := hci.Event{Kind: hci.EventCommandStatus}

	if !q.Push(a) || !q.Push(b) {
		t.Fatal("expected both pushes to succeed within capacity")
	}
	if !q.IsFull() {
		t.Fatal("expected queue to report full at capacity")
	}
	if q.Push(hci.Event{Kind: hci.EventLeMeta}) {
		t.Fatal("expected Push to report false once the queue is full")
	}

	got, ok := q.Pop()
	if !ok || got.Kind != hci.EventCommandComplete {
		t.Fatalf("expected the oldest event first, got %+v ok=%v", got, ok)
	}
	got, ok = q.Pop()
	if !ok || got.Kind != hci.EventCommandStatus {
		t.Fatalf("expected the second event next, got %+v ok=%v", got, ok)
	}
	if _, ok := q.Pop(); ok {
		t.Fatal("expected Pop on an empty queue to report false")
	}
}

func TestEventQueueDefaultCapacity(t *testing.T) {
	q := NewEventQueue(0)
	if q.Cap() != DefaultEventQueueCapacity {
		t.Fatalf("expected default capacity %d, got %d", DefaultEventQueueCapacity, q.Cap())
	}
}

func TestEventQueueWrapsAroundRingBuffer(t *testing.T) {
	q := NewEventQueue(2)
	q.Push(hci.Event{Kind: hci.EventCommandComplete})
	q.Pop()
	q.Push(hci.Event{Kind: hci.EventCommandStatus})
	q.Push(hci.Event{Kind: hci.EventLeMeta})
	if !q.IsFull() {
		t.Fatal("expected queue full after wrapping past capacity")
	}
	first, _ := q.Pop()
	second, _ := q.Pop()
	if first.Kind != hci.EventCommandStatus || second.Kind != hci.EventLeMeta {
		t.Fatalf("unexpected pop order after wraparound: %+v, %+v", first, second)
	}
}
