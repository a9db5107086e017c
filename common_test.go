package joyboard

import (
	"runtime"
	"sync"
	"testing"
	"time"
)

func TestPressQueue(t *testing.T) {
	var q pressQueue
	if _, ok := q.pop(); ok {
		t.Fatal("expected an empty queue")
	}

	// Fill the queue, the next push is dropped.
	for i := 0; i < pressQueueSize; i++ {
		if !q.push(ButtonPress{Key: KeyA, Time: time.Duration(i)}) {
			t.Fatalf("push %d failed", i)
		}
	}
	if q.push(ButtonPress{Key: KeyJoystick}) {
		t.Error("expected push to fail on a full queue")
	}
	if q.dropped.Load() != 1 {
		t.Errorf("expected one dropped press, got %d", q.dropped.Load())
	}

	// Presses come out in order.
	for i := 0; i < pressQueueSize; i++ {
		p, ok := q.pop()
		if !ok || p.Time != time.Duration(i) || p.Key != KeyA {
			t.Fatalf("pop %d: got %v, %v", i, p, ok)
		}
	}
	if _, ok := q.pop(); ok {
		t.Error("expected the queue to be drained")
	}
}

func TestPressQueueWrap(t *testing.T) {
	var q pressQueue
	q.head.Store(^uint32(0) - 2)
	q.tail.Store(^uint32(0) - 2)
	for i := 0; i < 8; i++ {
		q.push(ButtonPress{Key: KeyJoystick, Time: time.Duration(i)})
		p, ok := q.pop()
		if !ok || p.Time != time.Duration(i) {
			t.Fatalf("pop %d across the index wraparound: got %v, %v", i, p, ok)
		}
	}
}

func TestPressQueueConcurrent(t *testing.T) {
	const n = 10000
	var q pressQueue
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 1; i <= n; i++ {
			for !q.push(ButtonPress{Key: KeyA, Time: time.Duration(i)}) {
				// Full, wait for the consumer.
				runtime.Gosched()
			}
		}
	}()
	var last time.Duration
	for last != n {
		p, ok := q.pop()
		if !ok {
			runtime.Gosched()
			continue
		}
		if p.Time != last+1 {
			t.Fatalf("expected press %d, got %d", last+1, p.Time)
		}
		last = p.Time
	}
	wg.Wait()
}
