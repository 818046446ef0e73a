package simulator

import (
	"container/heap"
	"sync"
	"time"
)

const (
	EventAddItem      = "AddItem"
	EventIncrement    = "Increment"
	EventDecrement    = "Decrement"
	EventRemove       = "Remove"
	EventLeave        = "Leave"
	EventReturn       = "Return"
	EventCheckout     = "Checkout"
	EventCatalogDrift = "CatalogDrift"
)

// Event is something that happens at a point of simulated time.
type Event struct {
	Time    time.Time
	Type    string
	Shopper *Shopper

	seq int
}

// EventQueue is a priority queue of events ordered by time. Events due at the
// same time come out in the order they were queued.
type EventQueue struct {
	events eventHeap
	next   int
	mutex  sync.Mutex
}

type eventHeap []*Event

func (h eventHeap) Len() int { return len(h) }
func (h eventHeap) Less(i, j int) bool {
	if h[i].Time.Equal(h[j].Time) {
		return h[i].seq < h[j].seq
	}
	return h[i].Time.Before(h[j].Time)
}
func (h eventHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *eventHeap) Push(x interface{}) {
	*h = append(*h, x.(*Event))
}

func (h *eventHeap) Pop() interface{} {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[0 : n-1]
	return x
}

func NewEventQueue() *EventQueue {
	return &EventQueue{events: make(eventHeap, 0)}
}

func (eq *EventQueue) Enqueue(event *Event) {
	eq.mutex.Lock()
	defer eq.mutex.Unlock()
	event.seq = eq.next
	eq.next++
	heap.Push(&eq.events, event)
}

// Dequeue removes and returns the earliest event, or nil when the queue is empty.
func (eq *EventQueue) Dequeue() *Event {
	eq.mutex.Lock()
	defer eq.mutex.Unlock()
	if len(eq.events) == 0 {
		return nil
	}
	return heap.Pop(&eq.events).(*Event)
}

func (eq *EventQueue) Peek() *Event {
	eq.mutex.Lock()
	defer eq.mutex.Unlock()
	if len(eq.events) == 0 {
		return nil
	}
	return eq.events[0]
}

func (eq *EventQueue) Len() int {
	eq.mutex.Lock()
	defer eq.mutex.Unlock()
	return len(eq.events)
}
