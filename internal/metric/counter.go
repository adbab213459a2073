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

// Counter tracks a running integer value that only ever moves by
// init/increment/decrement/change events; its Statistics samples the
// running value itself on every update, not the delta.
type Counter struct {
	value int64
	stats *stats.Statistics
}

// NewCounter builds a zero-valued counter configured per cfg.
func NewCounter(cfg config.StatisticsConfig) *Counter {
	return &Counter{stats: stats.New(cfg)}
}

func (c *Counter) Apply(ev event.Event) (dropped bool) {
	switch ev.Kind {
	case event.KindInit, event.KindChange:
		c.value = int64(ev.Payload.Number)
	case event.KindIncrement:
		c.value += int64(ev.Payload.Number)
	case event.KindDecrement:
		c.value -= int64(ev.Payload.Number)
	default:
		return true
	}
	c.stats.Add(float64(c.value), ev.Timestamp)
	return false
}

// Value returns the counter's current running value.
func (c *Counter) Value() int64 { return c.value }

func (c *Counter) Kind() event.DestinationKind { return event.DestinationCounter }

func (c *Counter) Stats() *stats.Statistics { return c.stats }
