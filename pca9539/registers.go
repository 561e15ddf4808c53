// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package pca9539

import (
	"context"

	"periph.io/x/conn/v3/i2c"
)

// Register base addresses. The register for a bank is base + bank number.
const (
	regInput     uint8 = 0x00
	regOutput    uint8 = 0x02
	regPolarity  uint8 = 0x04
	regDirection uint8 = 0x06
)

// expander owns the I²C connection and the in-memory mirror of the chip's
// registers, one byte per bank per register. Bit i of a byte is physical
// pin i of that bank.
//
// Per-pin mutations only flip bits in the mirror; the write*/refresh*
// methods exchange a whole bank byte with the chip in one transaction, so
// up to eight pin changes share a single I²C operation. Callers must hold
// the device guard around every method.
type expander struct {
	c i2c.Dev

	direction [2]uint8
	output    [2]uint8
	input     [2]uint8
	polarity  [2]uint8
}

func (e *expander) readRegister(ctx context.Context, addr uint8, op string) (uint8, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	rx := make([]byte, 1)
	if err := e.c.Tx([]byte{addr}, rx); err != nil {
		return 0, &BusError{Op: op, Err: err}
	}
	return rx[0], nil
}

func (e *expander) writeRegister(ctx context.Context, addr, value uint8, op string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := e.c.Tx([]byte{addr, value}, nil); err != nil {
		return &BusError{Op: op, Err: err}
	}
	return nil
}

// setMode flips the direction bit in the mirror. The chip is untouched
// until the next writeModeState for the bank.
func (e *expander) setMode(bank Bank, id PinID, m Mode) {
	if m == Input {
		e.direction[bank] |= id.mask()
	} else {
		e.direction[bank] &^= id.mask()
	}
}

// writeModeState writes the bank's direction byte, applying all pending
// mode changes for the bank in one transaction.
func (e *expander) writeModeState(ctx context.Context, bank Bank) error {
	return e.writeRegister(ctx, regDirection+uint8(bank), e.direction[bank], "write direction")
}

// setOutputState flips the output bit in the mirror only.
func (e *expander) setOutputState(bank Bank, id PinID, high bool) {
	if high {
		e.output[bank] |= id.mask()
	} else {
		e.output[bank] &^= id.mask()
	}
}

// writeOutputState flushes the bank's output byte to the chip. On failure
// the mirror keeps its mutated value; see BusError.
func (e *expander) writeOutputState(ctx context.Context, bank Bank) error {
	return e.writeRegister(ctx, regOutput+uint8(bank), e.output[bank], "write output")
}

// refreshInputState replaces the bank's cached input byte with the chip's
// input register. The cache is unchanged on failure.
func (e *expander) refreshInputState(ctx context.Context, bank Bank) error {
	v, err := e.readRegister(ctx, regInput+uint8(bank), "read input")
	if err != nil {
		return err
	}
	e.input[bank] = v
	return nil
}

func (e *expander) isPinInputHigh(bank Bank, id PinID) bool {
	return e.input[bank]&id.mask() != 0
}

func (e *expander) isPinOutputHigh(bank Bank, id PinID) bool {
	return e.output[bank]&id.mask() != 0
}

func (e *expander) isPinDirectionInput(bank Bank, id PinID) bool {
	return e.direction[bank]&id.mask() != 0
}

// reversePolarity sets or clears the pin's polarity inversion bit and
// writes the bank's polarity byte.
func (e *expander) reversePolarity(ctx context.Context, bank Bank, id PinID, invert bool) error {
	if invert {
		e.polarity[bank] |= id.mask()
	} else {
		e.polarity[bank] &^= id.mask()
	}
	return e.writeRegister(ctx, regPolarity+uint8(bank), e.polarity[bank], "write polarity")
}

func (e *expander) isPolarityReversed(bank Bank, id PinID) bool {
	return e.polarity[bank]&id.mask() != 0
}
