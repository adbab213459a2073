// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved. This file is part of cc-backend.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package snapshot

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daemondn/gohandystats/internal/config"
	"github.com/daemondn/gohandystats/internal/event"
	"github.com/daemondn/gohandystats/internal/stats"
)

func allTagsConfig() config.StatisticsConfig {
	tags := make(map[config.Tag]bool, len(config.AllTags))
	for _, tag := range config.AllTags {
		tags[tag] = true
	}
	return config.StatisticsConfig{MovingInterval: time.Second, HistogramBins: 10, Tags: tags}
}

func TestMarshalJSONRendersMetricsAndAttributes(t *testing.T) {
	snap := &Snapshot{
		Metrics: map[string]MetricView{
			"requests.count": {
				Kind: event.DestinationCounter,
				Stats: stats.Snapshot{
					Config: allTagsConfig(),
					Value:  3, Count: 3, Sum: 6, Mean: 2,
					HasSample: true,
				},
			},
		},
		Attributes: map[string]event.AttributeValue{
			"build.version": {Type: event.AttrString, String: "1.2.3"},
		},
		Timestamp: time.Now(),
	}

	raw, err := json.Marshal(snap)
	require.NoError(t, err)

	var decoded map[string]map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))

	require.Contains(t, decoded, "requests.count")
	assert.Equal(t, "counter", decoded["requests.count"]["type"])
	assert.Equal(t, float64(3), decoded["requests.count"]["value"])

	require.Contains(t, decoded, "build.version")
	assert.Equal(t, "attribute", decoded["build.version"]["type"])
	assert.Equal(t, "1.2.3", decoded["build.version"]["value"])
}

func TestMarshalJSONOmitsDisabledTags(t *testing.T) {
	cfg := allTagsConfig()
	cfg.Tags = map[config.Tag]bool{config.TagValue: true}

	snap := &Snapshot{
		Metrics: map[string]MetricView{
			"gauge.x": {Kind: event.DestinationGauge, Stats: stats.Snapshot{Config: cfg, Value: 1, HasSample: true}},
		},
		Attributes: map[string]event.AttributeValue{},
		Timestamp:  time.Now(),
	}

	raw, err := json.Marshal(snap)
	require.NoError(t, err)

	var decoded map[string]map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))

	assert.Contains(t, decoded["gauge.x"], "value")
	assert.NotContains(t, decoded["gauge.x"], "histogram")
	assert.NotContains(t, decoded["gauge.x"], "quantile")
	assert.NotContains(t, decoded["gauge.x"], "count")
}

func TestEmptySnapshotMarshalsToEmptyObject(t *testing.T) {
	raw, err := json.Marshal(Empty(time.Now()))
	require.NoError(t, err)
	assert.JSONEq(t, `{}`, string(raw))
}
