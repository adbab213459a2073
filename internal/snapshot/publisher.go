// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved. This file is part of cc-backend.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package snapshot

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

// Publisher holds the currently-visible Snapshot behind an atomic
// pointer swap: Load never blocks on Publish and vice versa, so a reader
// iterating a large snapshot never stalls the worker that replaces it.
type Publisher struct {
	current atomic.Pointer[Snapshot]

	mu     sync.Mutex
	waitCh chan struct{}
}

// NewPublisher returns a Publisher seeded with an empty snapshot.
func NewPublisher() *Publisher {
	p := &Publisher{waitCh: make(chan struct{})}
	p.current.Store(Empty(time.Time{}))
	return p
}

// Load returns the most recently published Snapshot.
func (p *Publisher) Load() *Snapshot {
	return p.current.Load()
}

// Publish installs s as the current snapshot and wakes any goroutine
// blocked in WaitUntil on a deadline it now satisfies.
func (p *Publisher) Publish(s *Snapshot) {
	p.current.Store(s)

	p.mu.Lock()
	close(p.waitCh)
	p.waitCh = make(chan struct{})
	p.mu.Unlock()
}

// WaitUntil blocks until a snapshot timestamped at or after deadline has
// been published, or ctx is done. Used by embedders that just pushed a
// measurement and want their next dump to reflect it, without polling.
func (p *Publisher) WaitUntil(ctx context.Context, deadline time.Time) error {
	for {
		if s := p.Load(); !s.Timestamp.Before(deadline) {
			return nil
		}

		p.mu.Lock()
		ch := p.waitCh
		p.mu.Unlock()

		select {
		case <-ch:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
