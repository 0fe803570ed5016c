package session

import "github.com/ridgeline-systems/blehci/hci"

// DefaultEventQueueCapacity is the default size of an EventQueue,
// matching the fixed-capacity event list of the source this session
// engine is grounded on.
const DefaultEventQueueCapacity = 4

// EventQueue is a fixed-capacity ring buffer of hci.Event values. Events
// the session engine reads off the transport that aren't the answer to
// an in-flight command (LE Meta subevents, Disconnection_Complete, ...)
// land here for a caller to Pop at its own pace.
type EventQueue struct {
	events   []hci.Event
	capacity int
	head     int
	len      int
}

// NewEventQueue builds an EventQueue with the given capacity. A
// non-positive capacity falls back to DefaultEventQueueCapacity.
func NewEventQueue(capacity int) *EventQueue {
	if capacity <= 0 {
		capacity = DefaultEventQueueCapacity
	}
	return &EventQueue{events: make([]hci.Event, capacity), capacity: capacity}
}

func (q *EventQueue) Len() int      { return q.len }
func (q *EventQueue) Cap() int      { return q.capacity }
func (q *EventQueue) IsEmpty() bool { return q.len == 0 }
func (q *EventQueue) IsFull() bool  { return q.len == q.capacity }

// Push appends an event, reporting false without blocking if the queue
// is already full. Callers log the drop themselves; EventQueue carries
// no logging dependency of its own.
func (q *EventQueue) Push(e hci.Event) bool {
	if q.IsFull() {
		return false
	}
	tail := (q.head + q.len) % q.capacity
	q.events[tail] = e
	q.len++
	return true
}

// Pop removes and returns the oldest queued event.
func (q *EventQueue) Pop() (hci.Event, bool) {
	if q.IsEmpty() {
		return hci.Event{}, false
	}
	e := q.events[q.head]
	q.head = (q.head + 1) % q.capacity
	q.len--
	return e, true
}
