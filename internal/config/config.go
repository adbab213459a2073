// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved. This file is part of cc-backend.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package config resolves the immutable bundle of tunables each metric
// freezes on its first reference: a StatisticsConfig
// (moving window, histogram bin cap, enabled aggregate tags) plus
// metric-kind-specific options such as a timer's idle timeout.
//
// Resolution overlays four layers in order: (1) typed per-kind defaults,
// (2) the document's "defaults" section, (3) any "*"-glob pattern section
// whose key matches the metric name, in declaration order, (4) the
// document's kind-specific section ("gauge"/"counter"/"timer").
package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// Tag names an aggregate a Statistics instance can compute.
type Tag string

const (
	TagValue       Tag = "value"
	TagMin         Tag = "min"
	TagMax         Tag = "max"
	TagCount       Tag = "count"
	TagSum         Tag = "sum"
	TagAvg         Tag = "avg"
	TagMovingCount Tag = "moving-count"
	TagMovingSum   Tag = "moving-sum"
	TagMovingAvg   Tag = "moving-avg"
	TagHistogram   Tag = "histogram"
	TagQuantile    Tag = "quantile"
	TagTimestamp   Tag = "timestamp"
	TagThroughput  Tag = "throughput"
	TagFrequency   Tag = "frequency"
)

// AllTags is every recognised stat tag name, used to validate a document's
// "stats" arrays and as the default enabled set.
var AllTags = []Tag{
	TagValue, TagMin, TagMax, TagCount, TagSum, TagAvg,
	TagMovingCount, TagMovingSum, TagMovingAvg,
	TagHistogram, TagQuantile, TagTimestamp, TagThroughput, TagFrequency,
}

func isValidTag(s string) bool {
	for _, t := range AllTags {
		if string(t) == s {
			return true
		}
	}
	return false
}

// StatisticsConfig is the resolved, immutable tunable set for one
// metric's Statistics engine.
type StatisticsConfig struct {
	MovingInterval time.Duration
	HistogramBins  int
	Tags           map[Tag]bool
}

// Enabled reports whether tag was selected for this metric.
func (c StatisticsConfig) Enabled(tag Tag) bool {
	return c.Tags[tag]
}

// defaultStatisticsConfig is the typed, per-kind starting point before any
// document overlay is applied.
func defaultStatisticsConfig() StatisticsConfig {
	tags := make(map[Tag]bool, len(AllTags))
	for _, t := range AllTags {
		tags[t] = true
	}
	return StatisticsConfig{
		MovingInterval: time.Second,
		HistogramBins:  100,
		Tags:           tags,
	}
}

// TimerConfig adds the timer-specific idle timeout to StatisticsConfig.
type TimerConfig struct {
	StatisticsConfig
	IdleTimeout time.Duration
}

func defaultTimerConfig() TimerConfig {
	return TimerConfig{
		StatisticsConfig: defaultStatisticsConfig(),
		IdleTimeout:      5 * time.Second,
	}
}

// overlay is a partial StatisticsConfig as it appears in a raw JSON
// section: unset fields are nil/absent and must not clobber lower layers.
type overlay struct {
	MovingIntervalMS *int64   `json:"moving-interval,omitempty"`
	HistogramBins    *int     `json:"histogram-bins,omitempty"`
	Stats            []string `json:"stats,omitempty"`
	IdleTimeoutMS    *int64   `json:"idle-timeout,omitempty"`
}

func (o overlay) applyTo(c *StatisticsConfig) error {
	if o.MovingIntervalMS != nil {
		c.MovingInterval = time.Duration(*o.MovingIntervalMS) * time.Millisecond
	}
	if o.HistogramBins != nil {
		if *o.HistogramBins <= 0 {
			return fmt.Errorf("config: histogram-bins must be positive, got %d", *o.HistogramBins)
		}
		c.HistogramBins = *o.HistogramBins
	}
	if o.Stats != nil {
		tags := make(map[Tag]bool, len(o.Stats))
		for _, s := range o.Stats {
			if !isValidTag(s) {
				return fmt.Errorf("config: unknown stat tag %q", s)
			}
			tags[Tag(s)] = true
		}
		c.Tags = tags
	}
	return nil
}

// document is the shape config_json actually decodes, one layer up from
// the resolved Config consumers see.
type document struct {
	Enable       *bool              `json:"enable,omitempty"`
	DumpInterval *int64             `json:"dump-interval,omitempty"`
	Defaults     *overlay           `json:"defaults,omitempty"`
	Gauge        *overlay           `json:"gauge,omitempty"`
	Counter      *overlay           `json:"counter,omitempty"`
	Timer        *overlay           `json:"timer,omitempty"`
	Patterns     []patternOverride  `json:"-"`
}

type patternOverride struct {
	Pattern string
	Overlay overlay
}

// Config is the fully-decoded, immutable configuration document. Pattern
// overrides keep their declaration order, since they resolve against a
// metric name in that same order. Gauge/Counter/Timer are the kind
// sections resolved on top of Defaults alone (no pattern applied yet);
// ResolveStatistics/ResolveTimer layer patterns in between Defaults and
// the kind section at lookup time, since the kind section takes final
// precedence over any pattern.
type Config struct {
	Enable       bool
	DumpInterval time.Duration
	Defaults     StatisticsConfig
	Gauge        StatisticsConfig
	Counter      StatisticsConfig
	Timer        TimerConfig
	Patterns     []patternOverride

	defaultsIdleTimeoutMS *int64
	gaugeOverlay          *overlay
	counterOverlay        *overlay
	timerOverlay          *overlay
}

// MetricKind selects which kind section ResolveStatistics layers in last.
type MetricKind int

const (
	KindGauge MetricKind = iota
	KindCounter
)

// knownKeys are the fixed top-level sections; every other top-level key
// in a raw document is treated as a metric-name glob pattern.
var knownKeys = map[string]bool{
	"enable": true, "dump-interval": true,
	"defaults": true, "gauge": true, "counter": true, "timer": true,
}

// Default returns the configuration in effect before any document is
// loaded: instrumentation enabled, periodic publication every second,
// every tag enabled.
func Default() Config {
	return Config{
		Enable:       true,
		DumpInterval: time.Second,
		Defaults:     defaultStatisticsConfig(),
		Gauge:        defaultStatisticsConfig(),
		Counter:      defaultStatisticsConfig(),
		Timer:        defaultTimerConfig(),
	}
}

// Parse validates raw against the embedded JSON-Schema, decodes it, and
// resolves it into a Config. On any error the returned Config is the
// zero value and must not be used; callers keep their previous Config.
func Parse(raw []byte) (Config, error) {
	if err := validate(raw); err != nil {
		return Config{}, err
	}

	var doc document
	dec := json.NewDecoder(bytes.NewReader(raw))
	if err := dec.Decode(&doc); err != nil {
		return Config{}, fmt.Errorf("config: decode: %w", err)
	}

	// A second, order-preserving pass picks up pattern keys: the schema
	// validation above already rejected anything that isn't a well-formed
	// overlay, encoding/json's map decode just can't preserve key order.
	var raw2 map[string]json.RawMessage
	if err := json.Unmarshal(raw, &raw2); err != nil {
		return Config{}, fmt.Errorf("config: decode: %w", err)
	}
	for _, key := range orderedKeys(raw) {
		if knownKeys[key] {
			continue
		}
		var ov overlay
		if err := json.Unmarshal(raw2[key], &ov); err != nil {
			return Config{}, fmt.Errorf("config: pattern %q: %w", key, err)
		}
		doc.Patterns = append(doc.Patterns, patternOverride{Pattern: key, Overlay: ov})
	}

	cfg := Default()
	if doc.Enable != nil {
		cfg.Enable = *doc.Enable
	}
	if doc.DumpInterval != nil {
		if *doc.DumpInterval < 0 {
			return Config{}, fmt.Errorf("config: dump-interval must be non-negative, got %d", *doc.DumpInterval)
		}
		cfg.DumpInterval = time.Duration(*doc.DumpInterval) * time.Millisecond
	}
	if doc.Defaults != nil {
		if err := doc.Defaults.applyTo(&cfg.Defaults); err != nil {
			return Config{}, err
		}
		cfg.defaultsIdleTimeoutMS = doc.Defaults.IdleTimeoutMS
	}
	cfg.Gauge = cfg.Defaults
	cfg.Counter = cfg.Defaults
	cfg.Timer = TimerConfig{StatisticsConfig: cfg.Defaults, IdleTimeout: defaultTimerConfig().IdleTimeout}
	if cfg.defaultsIdleTimeoutMS != nil {
		cfg.Timer.IdleTimeout = time.Duration(*cfg.defaultsIdleTimeoutMS) * time.Millisecond
	}

	if doc.Gauge != nil {
		if err := doc.Gauge.applyTo(&cfg.Gauge); err != nil {
			return Config{}, err
		}
		cfg.gaugeOverlay = doc.Gauge
	}
	if doc.Counter != nil {
		if err := doc.Counter.applyTo(&cfg.Counter); err != nil {
			return Config{}, err
		}
		cfg.counterOverlay = doc.Counter
	}
	if doc.Timer != nil {
		if err := doc.Timer.applyTo(&cfg.Timer.StatisticsConfig); err != nil {
			return Config{}, err
		}
		if doc.Timer.IdleTimeoutMS != nil {
			cfg.Timer.IdleTimeout = time.Duration(*doc.Timer.IdleTimeoutMS) * time.Millisecond
		}
		cfg.timerOverlay = doc.Timer
	}
	cfg.Patterns = doc.Patterns

	return cfg, nil
}

// orderedKeys walks the top-level JSON object in raw and returns its keys
// in document order, so pattern overlays apply in the order they were
// declared; encoding/json's map[string]T decode does not preserve this.
func orderedKeys(raw []byte) []string {
	dec := json.NewDecoder(bytes.NewReader(raw))
	var keys []string

	tok, err := dec.Token()
	if err != nil {
		return nil
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil
	}

	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return keys
		}
		key, ok := tok.(string)
		if !ok {
			return keys
		}
		keys = append(keys, key)

		// Skip the value: decode into a RawMessage sink.
		var sink json.RawMessage
		if err := dec.Decode(&sink); err != nil {
			return keys
		}
	}

	return keys
}

// ResolveStatistics resolves name's StatisticsConfig for the given kind,
// layering (1) Defaults, (2) any matching name pattern in declaration
// order, (3) the kind section, in that order — the kind section has
// final say and wins over a pattern, a pattern wins over Defaults. This
// is meant to run lazily at first-reference time per metric and then be
// cached by the caller (internal/metric), since repeated glob matching on
// the hot path would cost more than the event itself.
func (c Config) ResolveStatistics(name string, kind MetricKind) StatisticsConfig {
	switch kind {
	case KindCounter:
		return c.resolveStatistics(name, c.counterOverlay)
	default:
		return c.resolveStatistics(name, c.gaugeOverlay)
	}
}

func (c Config) resolveStatistics(name string, kindOverlay *overlay) StatisticsConfig {
	resolved := c.Defaults
	for _, p := range c.Patterns {
		if MatchGlob(p.Pattern, name) {
			// Errors here were already validated away in Parse.
			_ = p.Overlay.applyTo(&resolved)
		}
	}
	if kindOverlay != nil {
		_ = kindOverlay.applyTo(&resolved)
	}
	return resolved
}

// ResolveTimer is ResolveStatistics specialised for timers, which also
// carry an idle timeout. The same precedence applies: Defaults, then a
// matching pattern, then the timer section, the timer section winning
// over a pattern.
func (c Config) ResolveTimer(name string) TimerConfig {
	resolved := TimerConfig{
		StatisticsConfig: c.resolveStatistics(name, c.timerOverlay),
		IdleTimeout:      defaultTimerConfig().IdleTimeout,
	}
	if c.defaultsIdleTimeoutMS != nil {
		resolved.IdleTimeout = time.Duration(*c.defaultsIdleTimeoutMS) * time.Millisecond
	}
	for _, p := range c.Patterns {
		if MatchGlob(p.Pattern, name) && p.Overlay.IdleTimeoutMS != nil {
			resolved.IdleTimeout = time.Duration(*p.Overlay.IdleTimeoutMS) * time.Millisecond
		}
	}
	if c.timerOverlay != nil && c.timerOverlay.IdleTimeoutMS != nil {
		resolved.IdleTimeout = time.Duration(*c.timerOverlay.IdleTimeoutMS) * time.Millisecond
	}
	return resolved
}
