// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package pca9539

import "strconv"

// Bank identifies one of the two 8-bit banks of the chip.
type Bank uint8

const (
	Bank0 Bank = 0
	Bank1 Bank = 1
)

func (b Bank) String() string {
	return "P" + strconv.Itoa(int(b))
}

// PinID identifies a pin within its bank.
type PinID uint8

const (
	Pin0 PinID = iota
	Pin1
	Pin2
	Pin3
	Pin4
	Pin5
	Pin6
	Pin7
)

func (id PinID) mask() uint8 {
	return 1 << uint8(id)
}

// Mode is the direction of a pin.
type Mode uint8

const (
	Input Mode = iota
	Output
)

func checkPin(bank Bank, id PinID) error {
	if bank > Bank1 {
		return errInvalidBank
	}
	if id > Pin7 {
		return errInvalidPin
	}
	return nil
}

// pinRef is the part shared by all pin handle types: a non-owning
// reference to the guarded register engine plus the pin's location. Pin
// handles carry no mutable state of their own, so they are cheap to create
// and discard.
//
// Nothing stops two handles for the same physical pin from coexisting;
// the guard only serializes their register access.
type pinRef struct {
	guard guard
	bank  Bank
	id    PinID
}

// Bank returns the bank this pin belongs to.
func (p *pinRef) Bank() Bank {
	return p.bank
}

// ID returns the pin's position within its bank.
func (p *pinRef) ID() PinID {
	return p.id
}
