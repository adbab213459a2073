// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved. This file is part of cc-backend.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package measuringpoints is the call-site front end application code
// links against directly: CounterIncrement, GaugeSet, TimerStart and
// friends. Every function here is a cheap event construction plus a
// single queue push; before Bind has been called (library disabled, or
// not yet initialized) they are harmless no-ops.
package measuringpoints

import (
	"sync/atomic"

	"github.com/daemondn/gohandystats/clock"
	"github.com/daemondn/gohandystats/internal/core"
	"github.com/daemondn/gohandystats/internal/event"
)

var active atomic.Pointer[core.Core]

// Bind installs c as the target every measuring point call pushes
// events to. Called once by the root package's Init.
func Bind(c *core.Core) {
	active.Store(c)
}

// Unbind detaches the current Core, returning measuring points to
// no-op behavior. Called by the root package's Finalize.
func Unbind() {
	active.Store(nil)
}

func push(destination string, kind event.DestinationKind, evKind event.Kind, payload event.Payload) {
	c := active.Load()
	if c == nil {
		return
	}
	c.Push(event.Event{
		Destination:     destination,
		DestinationKind: kind,
		Kind:            evKind,
		Payload:         payload,
		Timestamp:       clock.Now(),
	})
}

// CounterInit explicitly creates name as a counter at zero, rather than
// waiting for the first increment/decrement to do it implicitly.
func CounterInit(name string) {
	push(name, event.DestinationCounter, event.KindInit, event.NumberPayload(0))
}

// CounterIncrement adds delta (default 1) to the counter named name.
func CounterIncrement(name string, delta ...float64) {
	push(name, event.DestinationCounter, event.KindIncrement, event.NumberPayload(oneOrFirst(delta)))
}

// CounterDecrement subtracts delta (default 1) from the counter named name.
func CounterDecrement(name string, delta ...float64) {
	push(name, event.DestinationCounter, event.KindDecrement, event.NumberPayload(oneOrFirst(delta)))
}

// CounterChange sets the counter named name to an absolute value.
func CounterChange(name string, value float64) {
	push(name, event.DestinationCounter, event.KindChange, event.NumberPayload(value))
}

// GaugeInit explicitly creates name as a gauge at zero.
func GaugeInit(name string) {
	push(name, event.DestinationGauge, event.KindInit, event.NumberPayload(0))
}

// GaugeSet sets the gauge named name to value.
func GaugeSet(name string, value float64) {
	push(name, event.DestinationGauge, event.KindSet, event.NumberPayload(value))
}

func oneOrFirst(delta []float64) float64 {
	if len(delta) > 0 {
		return delta[0]
	}
	return 1
}
