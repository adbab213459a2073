// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved. This file is part of cc-backend.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package snapshot holds the immutable, point-in-time view of every
// metric's aggregates and every attribute's current value, and the
// atomic-swap publisher that hands a new one to readers without ever
// blocking the Core worker that builds it.
package snapshot

import (
	"time"

	"github.com/daemondn/gohandystats/internal/event"
	"github.com/daemondn/gohandystats/internal/stats"
)

// MetricView is one metric's resolved aggregates as of a Snapshot.
type MetricView struct {
	Kind  event.DestinationKind
	Stats stats.Snapshot
}

// Snapshot is a complete, read-only copy of registry state. Once built
// it is never mutated: a reader can hold a reference to one indefinitely
// without coordinating with the worker that produced it.
type Snapshot struct {
	Metrics    map[string]MetricView
	Attributes map[string]event.AttributeValue
	Timestamp  time.Time
}

// Empty returns a Snapshot with no metrics or attributes, stamped at the
// given time: what a disabled instrumentation or an instance with no
// activity yet publishes.
func Empty(t time.Time) *Snapshot {
	return &Snapshot{
		Metrics:    map[string]MetricView{},
		Attributes: map[string]event.AttributeValue{},
		Timestamp:  t,
	}
}
