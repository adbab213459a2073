// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved. This file is part of cc-backend.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package snapshot

import (
	"encoding/json"
	"strconv"

	"github.com/daemondn/gohandystats/internal/config"
	"github.com/daemondn/gohandystats/internal/metric"
	"github.com/daemondn/gohandystats/internal/stats"
)

// defaultQuantiles is the fixed set of quantiles rendered under the
// "quantile" tag; handystats has no per-metric quantile-list config, so
// this mirrors the common p50/p90/p99 triple most consumers graph.
var defaultQuantiles = []float64{0.5, 0.9, 0.99}

// MarshalJSON renders the snapshot as a single flat object keyed by
// metric/attribute name: metrics render as an object with a "type" tag
// plus one field per enabled statistic; attributes render as an object
// with "type": "attribute" and a "value" field holding their native JSON
// value. A disabled tag is simply omitted from its
// metric's object rather than rendered with a sentinel.
func (s *Snapshot) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(s.Metrics)+len(s.Attributes))

	for name, mv := range s.Metrics {
		out[name] = renderMetric(mv)
	}
	for name, v := range s.Attributes {
		out[name] = map[string]any{
			"type":  "attribute",
			"value": metric.AttributeJSON(v),
		}
	}

	return json.Marshal(out)
}

func renderMetric(mv MetricView) map[string]any {
	st := mv.Stats
	cfg := st.Config
	m := map[string]any{"type": mv.Kind.String()}

	if cfg.Enabled(config.TagValue) {
		m["value"] = st.Value
	}
	if cfg.Enabled(config.TagMin) {
		m["min"] = st.Min
	}
	if cfg.Enabled(config.TagMax) {
		m["max"] = st.Max
	}
	if cfg.Enabled(config.TagCount) {
		m["count"] = st.Count
	}
	if cfg.Enabled(config.TagSum) {
		m["sum"] = st.Sum
	}
	if cfg.Enabled(config.TagAvg) {
		m["avg"] = st.Mean
	}
	if cfg.Enabled(config.TagMovingCount) {
		m["moving-count"] = st.MovingCount
	}
	if cfg.Enabled(config.TagMovingSum) {
		m["moving-sum"] = st.MovingSum
	}
	if cfg.Enabled(config.TagMovingAvg) {
		m["moving-avg"] = st.MovingMean
	}
	if cfg.Enabled(config.TagThroughput) {
		m["throughput"] = st.Throughput
	}
	if cfg.Enabled(config.TagFrequency) {
		m["frequency"] = st.Frequency
	}
	if cfg.Enabled(config.TagTimestamp) && st.HasSample {
		m["timestamp"] = st.Timestamp
	}
	if cfg.Enabled(config.TagHistogram) {
		m["histogram"] = renderHistogram(st.Histogram)
	}
	if cfg.Enabled(config.TagQuantile) {
		m["quantile"] = renderQuantiles(st.Histogram)
	}

	return m
}

func renderHistogram(bins []stats.HistogramBin) [][2]float64 {
	out := make([][2]float64, len(bins))
	for i, b := range bins {
		out[i] = [2]float64{b.Center, b.Weight}
	}
	return out
}

func renderQuantiles(bins []stats.HistogramBin) map[string]float64 {
	out := make(map[string]float64, len(defaultQuantiles))
	for _, p := range defaultQuantiles {
		out[strconv.FormatFloat(p, 'g', -1, 64)] = stats.Quantile(bins, p)
	}
	return out
}
