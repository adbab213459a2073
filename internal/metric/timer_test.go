// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved. This file is part of cc-backend.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package metric

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/daemondn/gohandystats/clock"
	"github.com/daemondn/gohandystats/internal/config"
	"github.com/daemondn/gohandystats/internal/event"
)

func timerConfig(idle time.Duration) config.TimerConfig {
	return config.TimerConfig{StatisticsConfig: allTagsConfig(), IdleTimeout: idle}
}

func TestTimerStartStopRecordsDuration(t *testing.T) {
	tm := NewTimer(timerConfig(time.Second))
	start := clock.Now()
	stop := start.Add(250 * time.Millisecond)

	tm.Apply(event.Event{Kind: event.KindStart, Payload: event.InstancePayload(1), Timestamp: start})
	dropped := tm.Apply(event.Event{Kind: event.KindStop, Payload: event.InstancePayload(1), Timestamp: stop})

	assert.False(t, dropped)
	snap := tm.Stats().Snapshot(stop)
	assert.Equal(t, int64(1), snap.Count)
	assert.InDelta(t, 0.25, snap.Value, 1e-9)
}

func TestTimerStopWithoutStartIsDropped(t *testing.T) {
	tm := NewTimer(timerConfig(time.Second))
	dropped := tm.Apply(event.Event{Kind: event.KindStop, Payload: event.InstancePayload(99), Timestamp: clock.Now()})
	assert.True(t, dropped, "stop with no matching start must be dropped, not measured from the epoch")
}

func TestTimerDiscardDropsInstanceSilently(t *testing.T) {
	tm := NewTimer(timerConfig(time.Second))
	now := clock.Now()
	tm.Apply(event.Event{Kind: event.KindStart, Payload: event.InstancePayload(1), Timestamp: now})
	dropped := tm.Apply(event.Event{Kind: event.KindDiscard, Payload: event.InstancePayload(1), Timestamp: now})

	assert.False(t, dropped)
	assert.Equal(t, 0, tm.ActiveInstances())
	assert.Equal(t, int64(0), tm.Stats().Snapshot(now).Count, "discard must not record a duration")
}

func TestTimerConcurrentInstances(t *testing.T) {
	tm := NewTimer(timerConfig(time.Second))
	now := clock.Now()
	tm.Apply(event.Event{Kind: event.KindStart, Payload: event.InstancePayload(1), Timestamp: now})
	tm.Apply(event.Event{Kind: event.KindStart, Payload: event.InstancePayload(2), Timestamp: now})
	assert.Equal(t, 2, tm.ActiveInstances())

	tm.Apply(event.Event{Kind: event.KindStop, Payload: event.InstancePayload(1), Timestamp: now})
	assert.Equal(t, 1, tm.ActiveInstances())
}

func TestTimerSweepIdleEvictsAbandonedInstances(t *testing.T) {
	tm := NewTimer(timerConfig(50 * time.Millisecond))
	start := clock.Now()
	tm.Apply(event.Event{Kind: event.KindStart, Payload: event.InstancePayload(1), Timestamp: start})

	stillAlive := tm.SweepIdle(start.Add(10 * time.Millisecond))
	assert.Equal(t, 0, stillAlive)
	assert.Equal(t, 1, tm.ActiveInstances())

	dropped := tm.SweepIdle(start.Add(time.Second))
	assert.Equal(t, 1, dropped)
	assert.Equal(t, 0, tm.ActiveInstances())
}

func TestTimerHeartbeatPostponesIdleEviction(t *testing.T) {
	tm := NewTimer(timerConfig(50 * time.Millisecond))
	start := clock.Now()
	tm.Apply(event.Event{Kind: event.KindStart, Payload: event.InstancePayload(1), Timestamp: start})
	tm.Apply(event.Event{Kind: event.KindHeartbeat, Payload: event.InstancePayload(1), Timestamp: start.Add(40 * time.Millisecond)})

	dropped := tm.SweepIdle(start.Add(60 * time.Millisecond))
	assert.Equal(t, 0, dropped, "heartbeat should have reset the idle clock")
}

func TestTimerStopAfterIdleIsDroppedWithoutSweep(t *testing.T) {
	tm := NewTimer(timerConfig(100 * time.Millisecond))
	start := clock.Now()
	tm.Apply(event.Event{Kind: event.KindStart, Payload: event.InstancePayload(1), Timestamp: start})

	stop := start.Add(250 * time.Millisecond)
	dropped := tm.Apply(event.Event{Kind: event.KindStop, Payload: event.InstancePayload(1), Timestamp: stop})

	assert.True(t, dropped, "stop arriving well past idle_timeout with no intervening sweep must still be dropped")
	assert.Equal(t, 0, tm.ActiveInstances())
	assert.Equal(t, int64(0), tm.Stats().Snapshot(stop).Count)
}

func TestTimerSetBypassesStartStop(t *testing.T) {
	tm := NewTimer(timerConfig(time.Second))
	now := clock.Now()
	tm.Apply(event.Event{Kind: event.KindSet, Payload: event.NumberPayload(1.5), Timestamp: now})

	snap := tm.Stats().Snapshot(now)
	assert.Equal(t, int64(1), snap.Count)
	assert.Equal(t, 1.5, snap.Value)
}
