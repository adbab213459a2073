// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved. This file is part of cc-backend.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package stats implements the rolling aggregate engine each metric
// (counter, gauge, timer) owns one instance of: all-time scalars, a
// sliding moving window, an adaptive quantile histogram, and throughput
// derived from the two.
package stats

import (
	"time"

	"github.com/daemondn/gohandystats/clock"
	"github.com/daemondn/gohandystats/internal/config"
)

// numBuckets is the ring resolution used to approximate the moving
// window: each bucket covers MovingInterval/numBuckets, and a bucket is
// zeroed the moment it is revisited after falling out of the window. A
// higher count tracks the window boundary more precisely at the cost of
// more per-sample bookkeeping; with the default one-second window each
// bucket covers about 16.7ms.
const numBuckets = 60

type bucket struct {
	sum   float64
	count int64
	stamp clock.Timestamp // start of the sub-interval this bucket covers
}

// Statistics is a single metric's aggregate state. It is owned
// exclusively by the Core worker goroutine: all mutation happens through
// Add, called only while applying an event, so no internal locking is
// needed. Snapshot returns an independent, immutable copy safe to read
// from any other goroutine.
type Statistics struct {
	cfg config.StatisticsConfig

	count int64
	min   float64
	max   float64
	sum   float64
	value float64 // most recent sample, for the "value" tag

	buckets     []bucket
	bucketWidth time.Duration

	hist *histogram

	lastSample clock.Timestamp
	hasSample  bool
}

// New builds a Statistics engine configured per cfg.
func New(cfg config.StatisticsConfig) *Statistics {
	width := cfg.MovingInterval / numBuckets
	if width <= 0 {
		width = time.Millisecond
	}
	return &Statistics{
		cfg:         cfg,
		buckets:     make([]bucket, numBuckets),
		bucketWidth: width,
		hist:        newHistogram(cfg.HistogramBins),
	}
}

// Add folds one sample into every enabled aggregate.
func (s *Statistics) Add(v float64, t clock.Timestamp) {
	s.value = v
	if !s.hasSample || s.count == 0 {
		s.min, s.max = v, v
	} else {
		if v < s.min {
			s.min = v
		}
		if v > s.max {
			s.max = v
		}
	}
	s.count++
	s.sum += v
	s.lastSample = t
	s.hasSample = true

	if s.cfg.MovingInterval > 0 {
		s.addToBucket(v, t)
	}
	if s.cfg.Enabled(config.TagHistogram) || s.cfg.Enabled(config.TagQuantile) {
		s.hist.add(v, t)
	}
}

func (s *Statistics) addToBucket(v float64, t clock.Timestamp) {
	idx := s.bucketIndex(t)
	b := &s.buckets[idx]
	start := s.bucketStart(t)
	if b.stamp != start {
		// This bucket belongs to a different sub-interval than before:
		// the window has rotated past it, start it fresh.
		b.sum, b.count = 0, 0
		b.stamp = start
	}
	b.sum += v
	b.count++
}

func (s *Statistics) bucketIndex(t clock.Timestamp) int {
	n := int64(t) / int64(s.bucketWidth)
	return int(((n % numBuckets) + numBuckets) % numBuckets)
}

func (s *Statistics) bucketStart(t clock.Timestamp) clock.Timestamp {
	n := int64(t) / int64(s.bucketWidth)
	return clock.Timestamp(n * int64(s.bucketWidth))
}

// movingAggregate sums count/sum across every bucket whose sub-interval
// falls within MovingInterval of now; stale buckets (not yet revisited by
// Add, so not lazily zeroed) are skipped rather than summed.
func (s *Statistics) movingAggregate(now clock.Timestamp) (count int64, sum float64) {
	if s.cfg.MovingInterval <= 0 {
		return 0, 0
	}
	cutoff := now.Add(-s.cfg.MovingInterval)
	for _, b := range s.buckets {
		if b.count == 0 {
			continue
		}
		if b.stamp.Before(cutoff) {
			continue
		}
		count += b.count
		sum += b.sum
	}
	return count, sum
}

// Snapshot freezes the current aggregate state for publication. now is
// the timestamp the moving window is evaluated against (normally the
// time the enclosing snapshot is being built).
func (s *Statistics) Snapshot(now clock.Timestamp) Snapshot {
	movingCount, movingSum := s.movingAggregate(now)

	var mean, movingMean, throughput, frequency float64
	if s.count > 0 {
		mean = s.sum / float64(s.count)
	}
	if movingCount > 0 {
		movingMean = movingSum / float64(movingCount)
	}
	if s.cfg.MovingInterval > 0 {
		seconds := s.cfg.MovingInterval.Seconds()
		throughput = float64(movingCount) / seconds
		frequency = float64(movingCount) / seconds
	}

	return Snapshot{
		Config:      s.cfg,
		Value:       s.value,
		Count:       s.count,
		Min:         s.min,
		Max:         s.max,
		Sum:         s.sum,
		Mean:        mean,
		MovingCount: movingCount,
		MovingSum:   movingSum,
		MovingMean:  movingMean,
		Histogram:   s.hist.snapshot(),
		Throughput:  throughput,
		Frequency:   frequency,
		Timestamp:   clock.WallTime(s.lastSample),
		HasSample:   s.hasSample,
	}
}

// Snapshot is an immutable, independently-readable copy of a Statistics
// instance's aggregates at one point in time.
type Snapshot struct {
	Config config.StatisticsConfig

	Value float64
	Count int64
	Min   float64
	Max   float64
	Sum   float64
	Mean  float64

	MovingCount int64
	MovingSum   float64
	MovingMean  float64

	Histogram []HistogramBin

	Throughput float64
	Frequency  float64

	Timestamp time.Time
	HasSample bool
}

// Quantile reports the p-th quantile (0..1) from the histogram.
func (s Snapshot) Quantile(p float64) float64 {
	return Quantile(s.Histogram, p)
}
