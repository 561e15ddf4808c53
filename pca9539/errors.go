// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package pca9539

import "errors"

var (
	errInvalidAddress = errors.New("pca9539: address must be in range 0x74..0x77")
	errInvalidBank    = errors.New("pca9539: bank must be Bank0 or Bank1")
	errInvalidPin     = errors.New("pca9539: pin must be in range Pin0..Pin7")
)

// BusError is returned whenever an I²C transaction with the chip fails. The
// underlying transport error is available through Unwrap; the driver never
// inspects it.
//
// On a failed output or polarity write the cached register state has
// already been mutated and is not rolled back, so cache and hardware
// diverge until the next successful flush. A failed input refresh leaves
// the cache unchanged.
type BusError struct {
	// Op names the register operation that failed, e.g. "write output".
	Op  string
	Err error
}

func (e *BusError) Error() string {
	return "pca9539: " + e.Op + ": " + e.Err.Error()
}

func (e *BusError) Unwrap() error {
	return e.Err
}
