// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package pca9539

import (
	"context"
	"runtime"
	"sync/atomic"
)

// GuardKind selects how access to the shared register state is serialized.
// All kinds guarantee mutual exclusion while the closure runs; none
// guarantees ordering or fairness among waiters.
type GuardKind uint8

const (
	// GuardMutex serializes access with a blocking mutex. Safe to share
	// pin handles across goroutines. This is the default.
	GuardMutex GuardKind = iota
	// GuardUncontended performs no synchronization. Only valid when a
	// single goroutine uses the device; cheapest of the three.
	GuardUncontended
	// GuardSpin busy-waits on an atomic flag. Acquiring it again from
	// inside an access deadlocks.
	GuardSpin
)

// guard gives a closure exclusive mutable access to the register engine.
// The exclusion is released when access returns. The closure must run to
// completion without suspending; the only errors access adds to the
// closure's own are context cancellation while waiting to acquire.
type guard interface {
	access(ctx context.Context, fn func(*expander) error) error
}

func newGuard(kind GuardKind, e *expander) guard {
	switch kind {
	case GuardUncontended:
		return &uncontendedGuard{e: e}
	case GuardSpin:
		return &spinGuard{e: e}
	default:
		g := &mutexGuard{e: e, sem: make(chan struct{}, 1)}
		return g
	}
}

type uncontendedGuard struct {
	e *expander
}

func (g *uncontendedGuard) access(ctx context.Context, fn func(*expander) error) error {
	return fn(g.e)
}

// mutexGuard uses a one-slot semaphore rather than sync.Mutex so that
// acquisition can be abandoned on context cancellation.
type mutexGuard struct {
	e   *expander
	sem chan struct{}
}

func (g *mutexGuard) access(ctx context.Context, fn func(*expander) error) error {
	select {
	case g.sem <- struct{}{}:
	case <-ctx.Done():
		return ctx.Err()
	}
	defer func() { <-g.sem }()
	return fn(g.e)
}

type spinGuard struct {
	e    *expander
	held atomic.Bool
}

func (g *spinGuard) access(ctx context.Context, fn func(*expander) error) error {
	for !g.held.CompareAndSwap(false, true) {
		if err := ctx.Err(); err != nil {
			return err
		}
		runtime.Gosched()
	}
	defer g.held.Store(false)
	return fn(g.e)
}
