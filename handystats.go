// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved. This file is part of cc-backend.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package handystats is the embedding API: an application calls Init
// once at startup with a JSON configuration document, instruments its
// code via the measuringpoints subpackage, and reads aggregated state
// back out with MetricsDump or JSONDump. Finalize shuts everything down
// cleanly, and every measuring point call becomes a no-op afterward.
package handystats

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/daemondn/gohandystats/internal/config"
	"github.com/daemondn/gohandystats/internal/core"
	"github.com/daemondn/gohandystats/internal/snapshot"
	"github.com/daemondn/gohandystats/log"
	"github.com/daemondn/gohandystats/measuringpoints"
)

var (
	mu  sync.Mutex
	inst *core.Core
)

// Init parses raw as a configuration document, starts the Core worker,
// and binds the measuringpoints package to it. Calling Init while
// already initialized finalizes the previous instance first.
func Init(raw []byte) error {
	cfg, err := config.Parse(raw)
	if err != nil {
		return fmt.Errorf("handystats: init: %w", err)
	}
	return initWith(cfg)
}

// InitDefault starts the Core worker with default configuration
// (instrumentation enabled, every tag on, one-second dump interval).
func InitDefault() error {
	return initWith(config.Default())
}

func initWith(cfg config.Config) error {
	mu.Lock()
	defer mu.Unlock()

	if inst != nil {
		finalizeLocked()
	}

	if !cfg.Enable {
		log.Info("handystats: instrumentation disabled by configuration")
		return nil
	}

	c, err := core.New(cfg)
	if err != nil {
		return fmt.Errorf("handystats: init: %w", err)
	}
	c.Start()

	inst = c
	measuringpoints.Bind(c)
	return nil
}

// Reconfigure validates and applies raw to the running instance. Metrics
// already created keep the configuration they resolved on first
// reference; only metrics created after this call see the new one. On
// validation failure the running configuration is left untouched.
func Reconfigure(raw []byte) error {
	cfg, err := config.Parse(raw)
	if err != nil {
		return fmt.Errorf("handystats: reconfigure: %w", err)
	}

	mu.Lock()
	defer mu.Unlock()
	if inst == nil {
		return initWith(cfg)
	}
	inst.Reconfigure(cfg)
	return nil
}

// Finalize drains pending events, stops the worker, and detaches
// measuringpoints. Safe to call when not initialized.
func Finalize() {
	mu.Lock()
	defer mu.Unlock()
	finalizeLocked()
}

func finalizeLocked() {
	if inst == nil {
		return
	}
	measuringpoints.Unbind()
	inst.Finalize()
	inst = nil
}

// WaitUntilEmpty blocks until every event submitted before this call has
// been applied, or ctx ends first. A no-op if not initialized.
func WaitUntilEmpty(ctx context.Context) error {
	mu.Lock()
	c := inst
	mu.Unlock()
	if c == nil {
		return nil
	}
	return c.WaitUntilEmpty(ctx)
}

// WaitUntil blocks until a snapshot timestamped at or after deadline has
// been published, or ctx ends first. A no-op if not initialized.
func WaitUntil(ctx context.Context, deadline time.Time) error {
	mu.Lock()
	c := inst
	mu.Unlock()
	if c == nil {
		return nil
	}
	return c.WaitUntil(ctx, deadline)
}

// Publish forces an immediate snapshot publication, bypassing the
// configured dump-interval, and blocks until it has completed. A no-op
// if not initialized.
func Publish() {
	mu.Lock()
	c := inst
	mu.Unlock()
	if c == nil {
		return
	}
	c.Publish()
}

// MetricsDump returns the most recently published snapshot. If
// instrumentation is disabled or not yet initialized, it returns an
// empty snapshot rather than nil.
func MetricsDump() *snapshot.Snapshot {
	mu.Lock()
	c := inst
	mu.Unlock()
	if c == nil {
		return snapshot.Empty(time.Now())
	}
	return c.Snapshot()
}

// JSONDump renders MetricsDump as JSON.
func JSONDump() ([]byte, error) {
	return json.Marshal(MetricsDump())
}
