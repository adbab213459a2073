// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved. This file is part of cc-backend.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package core runs the single worker goroutine that owns every metric's
// state: it drains the event queue, applies events to a lazily-created
// registry entry per metric name, sweeps idle timers, and hands the
// registry off to the snapshot publisher on its own schedule.
package core

import (
	"github.com/daemondn/gohandystats/clock"
	"github.com/daemondn/gohandystats/internal/config"
	"github.com/daemondn/gohandystats/internal/event"
	"github.com/daemondn/gohandystats/internal/metric"
	"github.com/daemondn/gohandystats/log"
)

// registry is the name -> Metric map plus the separate name -> attribute
// map, both owned exclusively by the worker goroutine. No locking: only
// the worker ever touches either map.
type registry struct {
	cfg    config.Config
	counters map[string]*metric.Counter
	gauges   map[string]*metric.Gauge
	timers   map[string]*metric.Timer
	attrs    map[string]event.AttributeValue
}

func newRegistry(cfg config.Config) *registry {
	return &registry{
		cfg:      cfg,
		counters: make(map[string]*metric.Counter),
		gauges:   make(map[string]*metric.Gauge),
		timers:   make(map[string]*metric.Timer),
		attrs:    make(map[string]event.AttributeValue),
	}
}

// setConfig replaces the configuration used to resolve any metric
// created from this point on. Metrics already created keep whatever
// StatisticsConfig they resolved at creation time: per-metric config is
// frozen on first reference, a reconfigure only affects new metrics.
func (r *registry) setConfig(cfg config.Config) {
	r.cfg = cfg
}

func (r *registry) counter(name string) *metric.Counter {
	if c, ok := r.counters[name]; ok {
		return c
	}
	c := metric.NewCounter(r.cfg.ResolveStatistics(name, config.KindCounter))
	r.counters[name] = c
	return c
}

func (r *registry) gauge(name string) *metric.Gauge {
	if g, ok := r.gauges[name]; ok {
		return g
	}
	g := metric.NewGauge(r.cfg.ResolveStatistics(name, config.KindGauge))
	r.gauges[name] = g
	return g
}

func (r *registry) timer(name string) *metric.Timer {
	if t, ok := r.timers[name]; ok {
		return t
	}
	t := metric.NewTimer(r.cfg.ResolveTimer(name))
	r.timers[name] = t
	return t
}

// apply routes ev to its destination's registry entry, creating it on
// first reference, and reports whether the event was dropped.
func (r *registry) apply(ev event.Event) (dropped bool) {
	switch ev.DestinationKind {
	case event.DestinationCounter:
		return r.counter(ev.Destination).Apply(ev)
	case event.DestinationGauge:
		return r.gauge(ev.Destination).Apply(ev)
	case event.DestinationTimer:
		return r.timer(ev.Destination).Apply(ev)
	case event.DestinationAttribute:
		metric.ApplyAttribute(r.attrs, ev)
		return false
	default:
		log.Warnf("core: event for unknown destination kind %v, dropped", ev.DestinationKind)
		return true
	}
}

// sweepIdleTimers evicts abandoned timer instances across every timer,
// returning the total number dropped.
func (r *registry) sweepIdleTimers(now clock.Timestamp) int {
	dropped := 0
	for _, t := range r.timers {
		dropped += t.SweepIdle(now)
	}
	return dropped
}
