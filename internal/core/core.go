// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved. This file is part of cc-backend.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package core

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/go-co-op/gocron/v2"
	"golang.org/x/time/rate"

	"github.com/daemondn/gohandystats/internal/config"
	"github.com/daemondn/gohandystats/internal/event"
	"github.com/daemondn/gohandystats/internal/queue"
	"github.com/daemondn/gohandystats/internal/snapshot"
	"github.com/daemondn/gohandystats/log"
)

// idleSweepInterval is how often abandoned timer instances are checked
// for eviction, independent of the configured idle timeout itself: a
// short fixed cadence keeps worst-case staleness bounded without a timer
// per instance.
const idleSweepInterval = time.Second

// Core is the single worker that owns the metric registry end to end:
// it pops events off the queue, applies them, evicts idle timers on a
// schedule, and publishes snapshots, either periodically or on request.
// Every exported method here is safe to call from any goroutine; the
// state they touch lives entirely inside the run loop goroutine.
type Core struct {
	q   *queue.Queue
	reg *registry
	pub *snapshot.Publisher

	scheduler gocron.Scheduler

	wake       chan struct{}
	stop       chan struct{}
	done       chan struct{}
	reconfigCh chan config.Config
	publishCh  chan chan struct{}

	warnLimiter *rate.Limiter

	sweepRequested atomic.Bool

	self selfMetrics
}

// New builds a Core ready to Start, with its own event queue.
func New(cfg config.Config) (*Core, error) {
	sched, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}

	c := &Core{
		q:           queue.New(),
		reg:         newRegistry(cfg),
		pub:         snapshot.NewPublisher(),
		scheduler:   sched,
		wake:        make(chan struct{}, 1),
		stop:        make(chan struct{}),
		done:        make(chan struct{}),
		reconfigCh:  make(chan config.Config),
		publishCh:   make(chan chan struct{}),
		warnLimiter: rate.NewLimiter(rate.Every(time.Second), 1),
	}
	c.self = newSelfMetrics(c.reg)

	if _, err := sched.NewJob(
		gocron.DurationJob(idleSweepInterval),
		gocron.NewTask(c.requestSweep),
	); err != nil {
		return nil, err
	}

	if cfg.DumpInterval > 0 {
		if _, err := sched.NewJob(
			gocron.DurationJob(cfg.DumpInterval),
			gocron.NewTask(func() { c.requestPublish() }),
		); err != nil {
			return nil, err
		}
	}

	return c, nil
}

// Start launches the worker goroutine and the periodic scheduler.
func (c *Core) Start() {
	go c.run()
	c.scheduler.Start()
}

// Push enqueues ev and wakes the worker if it is idle. Never blocks.
func (c *Core) Push(ev event.Event) {
	c.q.Push(ev)
	select {
	case c.wake <- struct{}{}:
	default:
	}
}

// Reconfigure swaps the configuration used to resolve metrics created
// from this point on. Metrics already created keep their frozen config.
func (c *Core) Reconfigure(cfg config.Config) {
	select {
	case c.reconfigCh <- cfg:
	case <-c.done:
	}
}

// Publish forces an immediate snapshot publication and returns once it
// has completed.
func (c *Core) Publish() {
	ack := make(chan struct{})
	select {
	case c.publishCh <- ack:
		<-ack
	case <-c.done:
	}
}

// Snapshot returns the most recently published snapshot.
func (c *Core) Snapshot() *snapshot.Snapshot {
	return c.pub.Load()
}

// WaitUntil blocks until a snapshot timestamped at or after deadline has
// been published.
func (c *Core) WaitUntil(ctx context.Context, deadline time.Time) error {
	return c.pub.WaitUntil(ctx, deadline)
}

// WaitUntilEmpty blocks until the event queue has been fully drained at
// least once after the call, or ctx ends first. It is meant for tests and
// graceful-shutdown paths that need every already-submitted event applied
// before reading state.
func (c *Core) WaitUntilEmpty(ctx context.Context) error {
	for {
		if c.q.Size() == 0 {
			return nil
		}
		select {
		case <-time.After(time.Millisecond):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// Finalize drains remaining events, stops the scheduler, and shuts the
// worker goroutine down. It does not return until the worker has exited.
func (c *Core) Finalize() {
	close(c.stop)
	<-c.done
	_ = c.scheduler.Shutdown()
}

func (c *Core) requestSweep() {
	select {
	case c.wake <- struct{}{}:
	default:
	}
	c.sweepRequested.Store(true)
}

func (c *Core) requestPublish() {
	select {
	case c.publishCh <- nil:
	default:
	}
}

func (c *Core) warnf(format string, args ...any) {
	if c.warnLimiter.Allow() {
		log.Warnf(format, args...)
	}
}
