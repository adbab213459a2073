// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved. This file is part of cc-backend.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package core

import (
	"time"

	"github.com/daemondn/gohandystats/clock"
	"github.com/daemondn/gohandystats/internal/event"
	"github.com/daemondn/gohandystats/internal/snapshot"
)

// drainBatchSize is the chunk size drain walks each popped slice in. The
// queue always pops everything in one shot (cheap, a single pointer
// swap), and drain applies every chunk of it without returning to the
// run loop, so a pending publish or reconfigure request is not looked at
// between chunks.
const drainBatchSize = 4096

// idleFallback is how long the worker waits with nothing queued before
// checking in again anyway, as a backstop against a missed wake signal.
const idleFallback = 50 * time.Millisecond

func (c *Core) run() {
	defer close(c.done)

	ticker := time.NewTicker(idleFallback)
	defer ticker.Stop()

	for {
		select {
		case <-c.wake:
			c.drain()
			if c.sweepRequested.CompareAndSwap(true, false) {
				c.sweep()
			}

		case <-ticker.C:
			c.drain()
			if c.sweepRequested.CompareAndSwap(true, false) {
				c.sweep()
			}

		case cfg := <-c.reconfigCh:
			c.drain()
			c.reg.setConfig(cfg)

		case ack := <-c.publishCh:
			c.drain()
			c.publish()
			if ack != nil {
				close(ack)
			}

		case <-c.stop:
			c.drain()
			c.publish()
			return
		}
	}
}

// drain applies every event currently queued, popping again until the
// queue is empty, and folds each pop's results into the
// self-instrumentation counters. It returns to the run loop only once the
// queue is empty, so a publish/reconfigure request that arrives during a
// long burst is handled after the whole burst has been applied.
func (c *Core) drain() {
	for {
		events := c.q.PopAll()
		if len(events) == 0 {
			return
		}

		var applied, dropped int64
		for i := 0; i < len(events); i += drainBatchSize {
			end := i + drainBatchSize
			if end > len(events) {
				end = len(events)
			}
			for _, ev := range events[i:end] {
				if c.reg.apply(ev) {
					dropped++
					c.warnf("core: dropped event for %q (kind %v)", ev.Destination, ev.Kind)
				}
				applied++
			}
		}

		c.self.observeDrain(c.q.Size(), applied, dropped)
	}
}

func (c *Core) sweep() {
	now := clock.Now()
	dropped := c.reg.sweepIdleTimers(now)
	if dropped > 0 {
		c.self.observeIdleDrops(int64(dropped))
	}
}

func (c *Core) publish() {
	now := clock.Now()
	c.self.observeTimestamp(now)

	r := c.reg
	metrics := make(map[string]snapshot.MetricView, len(r.counters)+len(r.gauges)+len(r.timers))
	for name, m := range r.counters {
		metrics[name] = snapshot.MetricView{Kind: m.Kind(), Stats: m.Stats().Snapshot(now)}
	}
	for name, m := range r.gauges {
		metrics[name] = snapshot.MetricView{Kind: m.Kind(), Stats: m.Stats().Snapshot(now)}
	}
	for name, m := range r.timers {
		metrics[name] = snapshot.MetricView{Kind: m.Kind(), Stats: m.Stats().Snapshot(now)}
	}

	attrs := make(map[string]event.AttributeValue, len(r.attrs))
	for name, v := range r.attrs {
		attrs[name] = v
	}

	c.pub.Publish(&snapshot.Snapshot{
		Metrics:    metrics,
		Attributes: attrs,
		Timestamp:  clock.WallTime(now),
	})
}
