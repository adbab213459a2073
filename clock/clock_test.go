// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved. This file is part of cc-backend.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package clock

import (
	"testing"
	"time"
)

func TestTimestampArithmetic(t *testing.T) {
	base := Now()
	later := base.Add(5 * time.Second)

	if later.Sub(base) != 5*time.Second {
		t.Errorf("later.Sub(base) = %v, want 5s", later.Sub(base))
	}
	if !base.Before(later) {
		t.Error("base should be before later")
	}
	if !later.After(base) {
		t.Error("later should be after base")
	}
}

func TestDurationRoundTrip(t *testing.T) {
	d := 250 * time.Millisecond
	ts := Duration(d)
	if ts.ToDuration() != d {
		t.Errorf("ToDuration() = %v, want %v", ts.ToDuration(), d)
	}
}

func TestWallTimeMonotonic(t *testing.T) {
	a := Now()
	b := Now()
	if b.Before(a) {
		t.Error("clock went backwards between two consecutive Now() calls")
	}
	if WallTime(a).After(WallTime(b)) {
		t.Error("WallTime should preserve ordering")
	}
}
