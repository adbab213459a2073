// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved. This file is part of cc-backend.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package clock provides the single timestamp representation shared by
// every event, metric and statistic in gohandystats: nanoseconds since a
// monotonic origin, plus conversions to and from the wall clock used only
// for external export.
package clock

import "time"

// Timestamp is nanoseconds since an unspecified monotonic origin. All
// event and statistic timestamps in the library share this type so that
// duration math never needs unit conversion.
type Timestamp int64

// Now returns the current monotonic timestamp.
func Now() Timestamp {
	return Timestamp(nowFunc().Sub(origin))
}

// nowFunc is the time source Now reads.
var nowFunc = time.Now

// origin is the zero point of every Timestamp, read once at package
// initialization. Measuring from it uses the monotonic reading time.Now
// carries, so Timestamps do not jump with wall-clock adjustments.
var origin = time.Now()

// Sub returns the duration between two timestamps, t minus u.
func (t Timestamp) Sub(u Timestamp) time.Duration {
	return time.Duration(t - u)
}

// Add returns t advanced by d.
func (t Timestamp) Add(d time.Duration) Timestamp {
	return t + Timestamp(d)
}

// Before reports whether t is strictly earlier than u.
func (t Timestamp) Before(u Timestamp) bool { return t < u }

// After reports whether t is strictly later than u.
func (t Timestamp) After(u Timestamp) bool { return t > u }

// WallTime converts a monotonic Timestamp to a wall-clock time.Time for
// external export (JSON snapshot dumps, log lines) by offsetting the wall
// time read at origin.
func WallTime(t Timestamp) time.Time {
	return origin.Add(time.Duration(t)).UTC()
}

// WallNow returns the current wall-clock time, for external export.
func WallNow() time.Time {
	return time.Now().UTC()
}

// Duration converts a time.Duration to the library's nanosecond unit.
func Duration(d time.Duration) Timestamp {
	return Timestamp(d.Nanoseconds())
}

// ToDuration converts a raw nanosecond count back to a time.Duration.
func (t Timestamp) ToDuration() time.Duration {
	return time.Duration(t)
}
