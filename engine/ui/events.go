package ui

import "slices"

// EventQueueCapacity bounds an EventQueue; the oldest event is dropped when full.
const EventQueueCapacity = 64

// EventQueue is the ordered list of events a widget pushed this frame.
type EventQueue struct {
	events []EventCode
}

func (q *EventQueue) Push(code EventCode) {
	if len(q.events) == EventQueueCapacity {
		q.events = append(q.events[:0], q.events[1:]...)
	}
	q.events = append(q.events, code)
}

// Emitted reports whether code is queued. The queue is left as is.
func (q *EventQueue) Emitted(code EventCode) bool {
	return slices.Contains(q.events, code)
}

// Drain empties the queue and reports whether code was in it.
func (q *EventQueue) Drain(code EventCode) bool {
	found := q.Emitted(code)
	q.Clear()
	return found
}

func (q *EventQueue) Events() []EventCode { return slices.Clone(q.events) }
func (q *EventQueue) Len() int            { return len(q.events) }
func (q *EventQueue) Clear()              { q.events = q.events[:0] }
