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

func allTagsConfig() config.StatisticsConfig {
	tags := make(map[config.Tag]bool, len(config.AllTags))
	for _, tag := range config.AllTags {
		tags[tag] = true
	}
	return config.StatisticsConfig{MovingInterval: time.Second, HistogramBins: 50, Tags: tags}
}

func TestCounterIncrementDecrement(t *testing.T) {
	c := NewCounter(allTagsConfig())
	now := clock.Now()

	c.Apply(event.Event{Kind: event.KindInit, Payload: event.NumberPayload(0), Timestamp: now})
	c.Apply(event.Event{Kind: event.KindIncrement, Payload: event.NumberPayload(5), Timestamp: now})
	c.Apply(event.Event{Kind: event.KindIncrement, Payload: event.NumberPayload(3), Timestamp: now})
	c.Apply(event.Event{Kind: event.KindDecrement, Payload: event.NumberPayload(2), Timestamp: now})

	assert.Equal(t, int64(6), c.Value())
}

func TestCounterChangeSetsAbsoluteValue(t *testing.T) {
	c := NewCounter(allTagsConfig())
	now := clock.Now()
	c.Apply(event.Event{Kind: event.KindIncrement, Payload: event.NumberPayload(100), Timestamp: now})
	c.Apply(event.Event{Kind: event.KindChange, Payload: event.NumberPayload(7), Timestamp: now})
	assert.Equal(t, int64(7), c.Value())
}

func TestCounterUnknownKindIsDropped(t *testing.T) {
	c := NewCounter(allTagsConfig())
	dropped := c.Apply(event.Event{Kind: event.KindStart, Timestamp: clock.Now()})
	assert.True(t, dropped)
}
