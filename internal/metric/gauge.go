// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved. This file is part of cc-backend.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package metric

import (
	"github.com/daemondn/gohandystats/internal/config"
	"github.com/daemondn/gohandystats/internal/event"
	"github.com/daemondn/gohandystats/internal/stats"
)

// Gauge tracks an externally-set instantaneous value.
type Gauge struct {
	value float64
	stats *stats.Statistics
}

// NewGauge builds a zero-valued gauge configured per cfg.
func NewGauge(cfg config.StatisticsConfig) *Gauge {
	return &Gauge{stats: stats.New(cfg)}
}

func (g *Gauge) Apply(ev event.Event) (dropped bool) {
	switch ev.Kind {
	case event.KindInit, event.KindSet:
		g.value = ev.Payload.Number
	default:
		return true
	}
	g.stats.Add(g.value, ev.Timestamp)
	return false
}

// Value returns the gauge's current value.
func (g *Gauge) Value() float64 { return g.value }

func (g *Gauge) Kind() event.DestinationKind { return event.DestinationGauge }

func (g *Gauge) Stats() *stats.Statistics { return g.stats }
