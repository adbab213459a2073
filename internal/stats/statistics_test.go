// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved. This file is part of cc-backend.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package stats

import (
	"testing"
	"time"

	"github.com/daemondn/gohandystats/clock"
	"github.com/daemondn/gohandystats/internal/config"
)

func testConfig(movingInterval time.Duration, bins int) config.StatisticsConfig {
	tags := make(map[config.Tag]bool, len(config.AllTags))
	for _, tag := range config.AllTags {
		tags[tag] = true
	}
	return config.StatisticsConfig{MovingInterval: movingInterval, HistogramBins: bins, Tags: tags}
}

func TestStatisticsAllTimeAggregates(t *testing.T) {
	s := New(testConfig(time.Minute, 100))
	now := clock.Now()
	for _, v := range []float64{3, 1, 4, 1, 5} {
		s.Add(v, now)
	}

	snap := s.Snapshot(now)
	if snap.Count != 5 {
		t.Errorf("Count = %d, want 5", snap.Count)
	}
	if snap.Min != 1 {
		t.Errorf("Min = %v, want 1", snap.Min)
	}
	if snap.Max != 5 {
		t.Errorf("Max = %v, want 5", snap.Max)
	}
	if snap.Sum != 14 {
		t.Errorf("Sum = %v, want 14", snap.Sum)
	}
	if snap.Mean != 14.0/5 {
		t.Errorf("Mean = %v, want %v", snap.Mean, 14.0/5)
	}
	if snap.Value != 5 {
		t.Errorf("Value = %v, want 5 (last sample)", snap.Value)
	}
}

func TestStatisticsMovingWindowExpiresOldSamples(t *testing.T) {
	s := New(testConfig(100*time.Millisecond, 100))

	t0 := clock.Now()
	s.Add(10, t0)

	// Still inside the window: moving aggregates should see the sample.
	within := t0.Add(10 * time.Millisecond)
	snap := s.Snapshot(within)
	if snap.MovingCount != 1 {
		t.Errorf("MovingCount within window = %d, want 1", snap.MovingCount)
	}

	// Past the window: a later Add that rotates the bucket should
	// eventually drop the stale contribution out of the moving sum.
	later := t0.Add(5 * time.Second)
	for i := 0; i < 120; i++ {
		s.Add(1, later.Add(time.Duration(i)*time.Millisecond))
	}
	finalSnap := s.Snapshot(later.Add(200 * time.Millisecond))
	if finalSnap.MovingSum == 0 {
		t.Error("MovingSum should reflect the recent samples, not be zero")
	}
	// The original sample of 10 should no longer inflate a window this
	// far removed from t0: every sample left in the window is a 1.
	if finalSnap.MovingSum != float64(finalSnap.MovingCount) {
		t.Errorf("MovingSum = %v with MovingCount = %d: the stale sample of 10 is still in the moving window", finalSnap.MovingSum, finalSnap.MovingCount)
	}
}

func TestStatisticsNoSampleYet(t *testing.T) {
	s := New(testConfig(time.Second, 100))
	snap := s.Snapshot(clock.Now())
	if snap.HasSample {
		t.Error("HasSample should be false before any Add")
	}
	if snap.Count != 0 {
		t.Errorf("Count = %d, want 0", snap.Count)
	}
}

func TestStatisticsThroughputAndFrequency(t *testing.T) {
	s := New(testConfig(time.Second, 100))
	now := clock.Now()
	for i := 0; i < 10; i++ {
		s.Add(2, now.Add(time.Duration(i)*time.Millisecond))
	}
	snap := s.Snapshot(now.Add(10 * time.Millisecond))
	// Both are moving_count / moving_interval_seconds: 10 samples over a
	// 1-second window is 10/s regardless of each sample's value (2), which
	// only affects Sum/Mean, not the rate.
	if snap.Throughput != 10 {
		t.Errorf("Throughput = %v, want 10 (moving_count / moving_interval_seconds)", snap.Throughput)
	}
	if snap.Frequency != 10 {
		t.Errorf("Frequency = %v, want 10", snap.Frequency)
	}
	if snap.Throughput != snap.Frequency {
		t.Errorf("Throughput (%v) and Frequency (%v) should be equal: both are samples/second within the window", snap.Throughput, snap.Frequency)
	}
}
