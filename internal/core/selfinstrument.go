// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved. This file is part of cc-backend.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package core

import (
	"github.com/daemondn/gohandystats/clock"
	"github.com/daemondn/gohandystats/internal/event"
	"github.com/daemondn/gohandystats/internal/metric"
)

// systemTimestampName is not statistically aggregated, so it is published
// as an attribute rather than a gauge.
const systemTimestampName = "handystats.system_timestamp"

// selfMetrics are the library's own counters, gauges, and attributes,
// resolved once against the registry just like any application metric so
// they appear in every dump alongside everything else.
type selfMetrics struct {
	queueSize   *metric.Gauge
	popCount    *metric.Counter
	dropped     *metric.Counter
	idleEvicted *metric.Counter
	attrs       map[string]event.AttributeValue
}

func newSelfMetrics(reg *registry) selfMetrics {
	return selfMetrics{
		queueSize:   reg.gauge("handystats.message_queue.size"),
		popCount:    reg.counter("handystats.message_queue.pop_count"),
		dropped:     reg.counter("handystats.message_queue.dropped"),
		idleEvicted: reg.counter("handystats.timer.idle_evicted"),
		attrs:       reg.attrs,
	}
}

// observeDrain folds the outcome of one drain pass into self-metrics.
// dropped counts events whose destination rejected them (most commonly a
// timer stop with no matching start, since that instance either never
// existed or already idled out).
func (s *selfMetrics) observeDrain(queueSize, applied, dropped int64) {
	now := clock.Now()
	s.queueSize.Apply(event.Event{Kind: event.KindSet, Payload: event.NumberPayload(float64(queueSize)), Timestamp: now})
	if applied > 0 {
		s.popCount.Apply(event.Event{Kind: event.KindIncrement, Payload: event.NumberPayload(float64(applied)), Timestamp: now})
	}
	if dropped > 0 {
		s.dropped.Apply(event.Event{Kind: event.KindIncrement, Payload: event.NumberPayload(float64(dropped)), Timestamp: now})
	}
}

func (s *selfMetrics) observeIdleDrops(n int64) {
	s.idleEvicted.Apply(event.Event{
		Kind:      event.KindIncrement,
		Payload:   event.NumberPayload(float64(n)),
		Timestamp: clock.Now(),
	})
}

func (s *selfMetrics) observeTimestamp(now clock.Timestamp) {
	metric.ApplyAttribute(s.attrs, event.Event{
		Destination: systemTimestampName,
		Kind:        event.KindAttributeSet,
		Payload:     event.AttributePayload(event.AttributeValue{Type: event.AttrInt64, Int64: clock.WallTime(now).Unix()}),
		Timestamp:   now,
	})
}
