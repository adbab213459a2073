// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved. This file is part of cc-backend.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package core

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daemondn/gohandystats/internal/config"
	"github.com/daemondn/gohandystats/internal/event"
)

func newTestCore(t *testing.T) *Core {
	t.Helper()
	cfg := config.Default()
	cfg.DumpInterval = 0 // tests publish explicitly
	c, err := New(cfg)
	require.NoError(t, err)
	c.Start()
	t.Cleanup(c.Finalize)
	return c
}

func TestCoreAppliesPushedEvents(t *testing.T) {
	c := newTestCore(t)

	c.Push(event.Event{
		Destination: "requests.count", DestinationKind: event.DestinationCounter,
		Kind: event.KindIncrement, Payload: event.NumberPayload(1),
	})
	c.Push(event.Event{
		Destination: "requests.count", DestinationKind: event.DestinationCounter,
		Kind: event.KindIncrement, Payload: event.NumberPayload(1),
	})

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, c.WaitUntilEmpty(ctx))

	c.Publish()
	snap := c.Snapshot()
	mv, ok := snap.Metrics["requests.count"]
	require.True(t, ok, "counter should appear in snapshot after publish")
	assert.Equal(t, float64(2), mv.Stats.Value)
}

func TestCoreSelfInstrumentationAppearsInSnapshot(t *testing.T) {
	c := newTestCore(t)
	c.Push(event.Event{Destination: "x", DestinationKind: event.DestinationGauge, Kind: event.KindSet, Payload: event.NumberPayload(1)})

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, c.WaitUntilEmpty(ctx))
	c.Publish()

	snap := c.Snapshot()
	assert.Contains(t, snap.Metrics, "handystats.message_queue.size")
	assert.Contains(t, snap.Metrics, "handystats.message_queue.pop_count")
	assert.Contains(t, snap.Attributes, "handystats.system_timestamp", "system_timestamp is not statistically aggregated, so it publishes as an attribute")
}

func TestCoreDropsStopWithoutStart(t *testing.T) {
	c := newTestCore(t)
	c.Push(event.Event{Destination: "op", DestinationKind: event.DestinationTimer, Kind: event.KindStop, Payload: event.InstancePayload(42)})

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, c.WaitUntilEmpty(ctx))
	c.Publish()

	snap := c.Snapshot()
	dropped := snap.Metrics["handystats.message_queue.dropped"]
	assert.GreaterOrEqual(t, dropped.Stats.Value, 1.0)
}

func TestCoreFinalizeDrainsRemainingEvents(t *testing.T) {
	cfg := config.Default()
	cfg.DumpInterval = 0
	c, err := New(cfg)
	require.NoError(t, err)
	c.Start()

	c.Push(event.Event{
		Destination: "final.counter", DestinationKind: event.DestinationCounter,
		Kind: event.KindIncrement, Payload: event.NumberPayload(1),
	})
	c.Finalize()

	snap := c.Snapshot()
	mv, ok := snap.Metrics["final.counter"]
	require.True(t, ok, "Finalize should publish a final snapshot reflecting drained events")
	assert.Equal(t, float64(1), mv.Stats.Value)
}

func TestCoreReconfigureDoesNotPanic(t *testing.T) {
	c := newTestCore(t)
	c.Reconfigure(config.Default())
}
