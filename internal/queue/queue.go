// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved. This file is part of cc-backend.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package queue implements the unbounded, many-producer/single-consumer
// event queue that decouples measuring points from the Core worker.
// Push never blocks on the consumer: it is a lock-free Treiber stack, so
// producers only ever contend with each other via a CAS retry loop, never
// with the draining worker.
//
// Pop drains everything currently queued in one shot. Because each
// producer's pushes prepend onto a shared singly-linked list, reversing
// the drained chain restores submission order per producer, the only
// ordering guarantee offered; interleavings across producers are
// incidental, not guaranteed.
package queue

import (
	"sync"
	"sync/atomic"

	"github.com/daemondn/gohandystats/internal/event"
)

type node struct {
	value event.Event
	next  *node
}

// So that a high-rate producer doesn't allocate one *node per push.
var nodePool = sync.Pool{
	New: func() any { return new(node) },
}

// Queue is an unbounded MPSC queue of events.
type Queue struct {
	head    atomic.Pointer[node]
	size    atomic.Int64
	dropped atomic.Int64
}

// New returns an empty queue ready for concurrent producers.
func New() *Queue {
	return &Queue{}
}

// Push enqueues ev. It never blocks: under contention it retries a CAS
// loop against other producers only. Nodes come from a sync.Pool, so
// Push always succeeds and never drops an event.
func (q *Queue) Push(ev event.Event) {
	n := nodePool.Get().(*node)
	n.value = ev

	for {
		old := q.head.Load()
		n.next = old
		if q.head.CompareAndSwap(old, n) {
			q.size.Add(1)
			return
		}
	}
}

// DroppedCount returns the number of events dropped because push could
// not complete (reserved for an allocator that can fail). With the
// current sync.Pool-backed implementation this is always zero. No other
// package reads it; self-instrumentation's dropped counter does not
// include it.
func (q *Queue) DroppedCount() int64 {
	return q.dropped.Load()
}

// Size returns the number of events currently queued. It is exact only
// between pops; producers may be mid-push.
func (q *Queue) Size() int64 {
	return q.size.Load()
}

// PopAll atomically detaches the entire pending chain and returns its
// events in submission order (per producer). The queue is empty again
// immediately after this call returns, until further pushes arrive.
func (q *Queue) PopAll() []event.Event {
	old := q.head.Swap(nil)
	if old == nil {
		return nil
	}

	// old is head-to-tail in reverse-of-submission order (LIFO). Reverse
	// it into a slice in submission order, then return nodes to the pool.
	var n int
	for cur := old; cur != nil; cur = cur.next {
		n++
	}

	events := make([]event.Event, n)
	cur := old
	for i := n - 1; i >= 0; i-- {
		events[i] = cur.value
		next := cur.next
		cur.value = event.Event{}
		cur.next = nil
		nodePool.Put(cur)
		cur = next
	}

	q.size.Add(-int64(n))
	return events
}
