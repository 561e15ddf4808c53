// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package pca9539 provides an interface to the NXP PCA9539 and TI TCA9539
// 16-bit I²C GPIO expanders.
//
// The 16 lines are organized as two 8-bit banks. Each bank is controlled by
// one byte in each of four registers: input, output, polarity inversion and
// direction. Bit i of a bank's byte always corresponds to physical pin i of
// that bank.
//
// # Access modes
//
// Because every register access costs a full I²C transaction, the driver
// offers two ways to manage pin state:
//
//   - Regular access: state is synchronously exchanged with the chip on
//     every call. Read() refreshes the bank's input register and Set()
//     flushes the bank's output register, so each pin operation is one I²C
//     transaction.
//   - Refreshable access: the driver acts on a cached copy of the register
//     state. Read() and Set() never touch the bus; the cache is exchanged
//     explicitly with RefreshBank()/RefreshAll() and UpdateBank()/
//     UpdateAll(), one transaction per bank regardless of how many pins
//     changed. In the best case this reduces the I²C overhead to one
//     eighth, at the price of making staleness the caller's problem.
//
// The two modes are separate handle types, as are input and output pins, so
// only the operations valid for a pin's current mode are available on it.
// Switching a handle with IntoOutput()/IntoInput() issues one direction
// register write and returns a handle of the new type; the old handle must
// not be used afterwards.
//
// The cached output byte starts at 0x00. Lines keep their hardware state
// until their bank is first flushed, after which unset lines drive low.
// Likewise the cached input byte starts at 0x00, so a refreshable input pin
// reads Low until its bank has been refreshed at least once.
//
// # Concurrency
//
// All pin handles share one register engine per physical chip. Mutating
// access to it is serialized by a guard selected through Opts.Guard:
//
//   - GuardMutex (default): blocking mutex, safe to share pins across
//     goroutines. Acquisition honors context cancellation.
//   - GuardUncontended: no synchronization at all. Cheapest, but only valid
//     when a single goroutine touches the device.
//   - GuardSpin: busy-waits on an atomic flag. No fairness among waiters,
//     and re-entering from the closure deadlocks.
//
// Methods without a Context suffix block until the operation completes.
// Each *Context variant observes cancellation while waiting for the guard
// and between I²C transactions; a single transaction is never interrupted.
// Cancelling between a cache mutation and its flush leaves the cache ahead
// of the hardware, just like a failed output write does (see BusError).
//
// # Datasheet
//
// https://www.nxp.com/docs/en/data-sheet/PCA9539.pdf
package pca9539
