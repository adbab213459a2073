// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved. This file is part of cc-backend.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package snapshot

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublisherLoadReturnsLatest(t *testing.T) {
	p := NewPublisher()
	first := Empty(time.Now())
	p.Publish(first)
	assert.Same(t, first, p.Load())

	second := Empty(time.Now())
	p.Publish(second)
	assert.Same(t, second, p.Load())
}

func TestWaitUntilReturnsImmediatelyWhenAlreadySatisfied(t *testing.T) {
	p := NewPublisher()
	p.Publish(Empty(time.Now()))

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	err := p.WaitUntil(ctx, time.Now().Add(-time.Hour))
	require.NoError(t, err)
}

func TestWaitUntilBlocksUntilPublish(t *testing.T) {
	p := NewPublisher()
	deadline := time.Now().Add(10 * time.Millisecond)

	done := make(chan error, 1)
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		done <- p.WaitUntil(ctx, deadline)
	}()

	time.Sleep(20 * time.Millisecond)
	p.Publish(Empty(time.Now()))

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("WaitUntil did not return after a satisfying publish")
	}
}

func TestWaitUntilRespectsContextCancellation(t *testing.T) {
	p := NewPublisher()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := p.WaitUntil(ctx, time.Now().Add(time.Hour))
	require.Error(t, err)
}
