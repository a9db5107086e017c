package joyboard

import "sync/atomic"

const pressQueueSize = 16 // must be a power of two

// Ring buffer of button presses with a single producer (an interrupt handler
// or the simulator event goroutine) and a single consumer (the main loop).
// Neither side blocks: when the queue is full, new presses are dropped.
type pressQueue struct {
	buf     [pressQueueSize]ButtonPress
	head    atomic.Uint32 // next index to read, only written by the consumer
	tail    atomic.Uint32 // next index to write, only written by the producer
	dropped atomic.Uint32
}

// Add a press to the queue. Safe to call from an interrupt.
func (q *pressQueue) push(p ButtonPress) bool {
	tail := q.tail.Load()
	if tail-q.head.Load() == pressQueueSize {
		q.dropped.Add(1)
		return false
	}
	q.buf[tail%pressQueueSize] = p
	q.tail.Store(tail + 1)
	return true
}

// Remove the oldest press from the queue.
func (q *pressQueue) pop() (ButtonPress, bool) {
	head := q.head.Load()
	if head == q.tail.Load() {
		return ButtonPress{}, false
	}
	p := q.buf[head%pressQueueSize]
	q.head.Store(head + 1)
	return p, true
}
