// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved. This file is part of cc-backend.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package metric

import (
	"time"

	"github.com/daemondn/gohandystats/clock"
	"github.com/daemondn/gohandystats/internal/config"
	"github.com/daemondn/gohandystats/internal/event"
	"github.com/daemondn/gohandystats/internal/stats"
)

// timerInstance tracks one in-flight measurement, identified by the
// instance id a scoped timer handle generates at start time.
type timerInstance struct {
	start     clock.Timestamp
	heartbeat clock.Timestamp
}

// Timer tracks zero or more concurrently in-flight durations, keyed by
// instance id, plus the idle timeout after which a started-but-abandoned
// instance (no stop, no heartbeat) is discarded rather than kept forever.
type Timer struct {
	instances   map[uint64]*timerInstance
	idleTimeout time.Duration
	stats       *stats.Statistics
}

// NewTimer builds an idle timer configured per cfg.
func NewTimer(cfg config.TimerConfig) *Timer {
	return &Timer{
		instances:   make(map[uint64]*timerInstance),
		idleTimeout: cfg.IdleTimeout,
		stats:       stats.New(cfg.StatisticsConfig),
	}
}

// Apply folds one timer event in. A stop with no matching start (it
// already idled out, or stop arrived without a start ever being seen) is
// reported as dropped rather than silently producing a bogus duration
// measured from the Unix epoch.
func (t *Timer) Apply(ev event.Event) (dropped bool) {
	id := ev.Payload.InstanceID

	switch ev.Kind {
	case event.KindInit:
		// Explicit re-init clears every instance in flight at the time,
		// so a later stop for any old instance is a clean drop rather
		// than a reused/confused duration.
		clear(t.instances)

	case event.KindStart:
		t.instances[id] = &timerInstance{start: ev.Timestamp, heartbeat: ev.Timestamp}

	case event.KindHeartbeat:
		if inst, ok := t.instances[id]; ok {
			inst.heartbeat = ev.Timestamp
		}

	case event.KindStop:
		inst, ok := t.instances[id]
		if !ok {
			return true
		}
		delete(t.instances, id)
		if t.idleTimeout > 0 && ev.Timestamp.Sub(inst.heartbeat) > t.idleTimeout {
			return true
		}
		duration := ev.Timestamp.Sub(inst.start)
		t.stats.Add(duration.Seconds(), ev.Timestamp)

	case event.KindDiscard:
		delete(t.instances, id)

	case event.KindSet:
		// A duration supplied directly, bypassing start/stop bookkeeping.
		t.stats.Add(ev.Payload.Number, ev.Timestamp)

	default:
		return true
	}

	return false
}

// SweepIdle discards every instance whose last heartbeat is older than
// the configured idle timeout as of now, returning how many were
// dropped. The Core worker calls this on a periodic schedule independent
// of event traffic, since an abandoned timer (process crash mid-request,
// a goroutine that never calls Stop) otherwise never generates another
// event to trigger cleanup reactively.
func (t *Timer) SweepIdle(now clock.Timestamp) int {
	if t.idleTimeout <= 0 {
		return 0
	}
	cutoff := now.Add(-t.idleTimeout)
	dropped := 0
	for id, inst := range t.instances {
		if inst.heartbeat.Before(cutoff) {
			delete(t.instances, id)
			dropped++
		}
	}
	return dropped
}

// ActiveInstances returns the number of timer instances currently
// between start and stop.
func (t *Timer) ActiveInstances() int { return len(t.instances) }

func (t *Timer) Kind() event.DestinationKind { return event.DestinationTimer }

func (t *Timer) Stats() *stats.Statistics { return t.stats }
