// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved. This file is part of cc-backend.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package metric holds the state machines that turn a stream of events
// into rolling statistics for one named counter, gauge, or timer. Every
// type here is owned exclusively by the Core worker goroutine; nothing
// in this package is safe for concurrent use.
package metric

import (
	"github.com/daemondn/gohandystats/internal/event"
	"github.com/daemondn/gohandystats/internal/stats"
)

// Metric is one counter, gauge, or timer's live state. Apply folds one
// event into the metric and reports whether the event had to be dropped
// (a timer stop with no matching start, for instance) so the caller can
// fold that into self-instrumentation.
type Metric interface {
	Apply(ev event.Event) (dropped bool)
	Kind() event.DestinationKind
	Stats() *stats.Statistics
}
