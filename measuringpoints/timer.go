// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved. This file is part of cc-backend.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package measuringpoints

import (
	"encoding/binary"
	"time"

	"github.com/google/uuid"

	"github.com/daemondn/gohandystats/internal/event"
)

// NewInstanceID generates a fresh timer instance id. A uuid collapses
// comfortably into a uint64 event field: colliding with a concurrently
// live instance would need a coincidence far beyond what any real
// workload will ever produce.
func NewInstanceID() uint64 {
	u := uuid.New()
	return binary.BigEndian.Uint64(u[:8])
}

// TimerInit explicitly creates name as a timer with no instances in flight.
func TimerInit(name string) {
	push(name, event.DestinationTimer, event.KindInit, event.Payload{})
}

// TimerStart begins timing instance under name.
func TimerStart(name string, instance uint64) {
	push(name, event.DestinationTimer, event.KindStart, event.InstancePayload(instance))
}

// TimerHeartbeat marks instance as still alive, resetting its idle
// timeout clock without affecting its measured duration.
func TimerHeartbeat(name string, instance uint64) {
	push(name, event.DestinationTimer, event.KindHeartbeat, event.InstancePayload(instance))
}

// TimerStop ends timing instance, folding its elapsed duration into
// name's statistics.
func TimerStop(name string, instance uint64) {
	push(name, event.DestinationTimer, event.KindStop, event.InstancePayload(instance))
}

// TimerDiscard ends timing instance without recording a duration.
func TimerDiscard(name string, instance uint64) {
	push(name, event.DestinationTimer, event.KindDiscard, event.InstancePayload(instance))
}

// TimerSet folds d directly into name's statistics, bypassing
// start/stop bookkeeping entirely.
func TimerSet(name string, d time.Duration) {
	push(name, event.DestinationTimer, event.KindSet, event.NumberPayload(d.Seconds()))
}

// TimerProxy is a scoped timer handle: NewTimerProxy starts an instance
// immediately, and Stop (typically deferred) ends it.
//
//	defer measuringpoints.NewTimerProxy("request.handle").Stop()
type TimerProxy struct {
	name     string
	instance uint64
	done     bool
}

// NewTimerProxy generates a fresh instance id and starts timing name.
func NewTimerProxy(name string) *TimerProxy {
	id := NewInstanceID()
	TimerStart(name, id)
	return &TimerProxy{name: name, instance: id}
}

// Heartbeat marks the proxy's instance as still alive.
func (p *TimerProxy) Heartbeat() {
	if p.done {
		return
	}
	TimerHeartbeat(p.name, p.instance)
}

// Stop ends the timed instance, recording its elapsed duration. Safe to
// call at most once; later calls are no-ops.
func (p *TimerProxy) Stop() {
	if p.done {
		return
	}
	p.done = true
	TimerStop(p.name, p.instance)
}

// Discard ends the timed instance without recording a duration. Safe to
// call at most once; later calls are no-ops.
func (p *TimerProxy) Discard() {
	if p.done {
		return
	}
	p.done = true
	TimerDiscard(p.name, p.instance)
}
