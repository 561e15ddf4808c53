// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package pca9539

import (
	"context"

	"periph.io/x/conn/v3/gpio"
)

// RefreshableInputPin is an input pin acting on cached register state.
// Read() never touches the bus and cannot fail; the cache is brought up to
// date explicitly with RefreshBank or RefreshAll, one I²C transaction per
// bank no matter how many pins share it. Until the first refresh the pin
// reads Low.
type RefreshableInputPin struct {
	pinRef
}

// Read returns the pin's level from the cached input state.
func (p *RefreshableInputPin) Read() gpio.Level {
	level := gpio.Low
	_ = p.guard.access(context.Background(), func(e *expander) error {
		level = gpio.Level(e.isPinInputHigh(p.bank, p.id))
		return nil
	})
	return level
}

// RefreshBankContext re-reads the input register of this pin's bank,
// updating the cached state of all eight pins sharing it.
func (p *RefreshableInputPin) RefreshBankContext(ctx context.Context) error {
	return p.guard.access(ctx, func(e *expander) error {
		return e.refreshInputState(ctx, p.bank)
	})
}

// RefreshBank is RefreshBankContext driven to completion.
func (p *RefreshableInputPin) RefreshBank() error {
	return p.RefreshBankContext(context.Background())
}

// RefreshAllContext re-reads the input registers of both banks, Bank0
// first. The two reads are separate transactions; an error on Bank0 leaves
// Bank1's cache untouched.
func (p *RefreshableInputPin) RefreshAllContext(ctx context.Context) error {
	return p.guard.access(ctx, func(e *expander) error {
		if err := e.refreshInputState(ctx, Bank0); err != nil {
			return err
		}
		return e.refreshInputState(ctx, Bank1)
	})
}

// RefreshAll is RefreshAllContext driven to completion.
func (p *RefreshableInputPin) RefreshAll() error {
	return p.RefreshAllContext(context.Background())
}

// InvertPolarityContext sets or resets polarity inversion for the pin.
// Inversion applies at the chip, so it becomes visible on the next
// refresh.
func (p *RefreshableInputPin) InvertPolarityContext(ctx context.Context, invert bool) error {
	return p.guard.access(ctx, func(e *expander) error {
		return e.reversePolarity(ctx, p.bank, p.id, invert)
	})
}

// InvertPolarity is InvertPolarityContext driven to completion.
func (p *RefreshableInputPin) InvertPolarity(invert bool) error {
	return p.InvertPolarityContext(context.Background(), invert)
}

// IntoOutputContext switches the pin to output mode with one direction
// register write and records the initial level in the cache. The level is
// not flushed; call UpdateBank or UpdateAll on the returned handle to
// drive it. The receiving handle must not be used afterwards.
func (p *RefreshableInputPin) IntoOutputContext(ctx context.Context, initial gpio.Level) (*RefreshableOutputPin, error) {
	err := p.guard.access(ctx, func(e *expander) error {
		e.setMode(p.bank, p.id, Output)
		if err := e.writeModeState(ctx, p.bank); err != nil {
			return err
		}
		e.setOutputState(p.bank, p.id, initial == gpio.High)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &RefreshableOutputPin{p.pinRef}, nil
}

// IntoOutput is IntoOutputContext driven to completion.
func (p *RefreshableInputPin) IntoOutput(initial gpio.Level) (*RefreshableOutputPin, error) {
	return p.IntoOutputContext(context.Background(), initial)
}

// RefreshableOutputPin is an output pin acting on cached register state.
// Set() only mutates the cached output bit and cannot fail; the pending
// bits of a bank are flushed in one transaction with UpdateBank or
// UpdateAll.
type RefreshableOutputPin struct {
	pinRef
}

// Set records the level in the cached output state. The chip is untouched
// until the next UpdateBank or UpdateAll.
func (p *RefreshableOutputPin) Set(l gpio.Level) {
	_ = p.guard.access(context.Background(), func(e *expander) error {
		e.setOutputState(p.bank, p.id, l == gpio.High)
		return nil
	})
}

// SetHigh records a high level in the cached output state.
func (p *RefreshableOutputPin) SetHigh() {
	p.Set(gpio.High)
}

// SetLow records a low level in the cached output state.
func (p *RefreshableOutputPin) SetLow() {
	p.Set(gpio.Low)
}

// UpdateBankContext writes the output register of this pin's bank,
// flushing the pending levels of all eight pins sharing it.
func (p *RefreshableOutputPin) UpdateBankContext(ctx context.Context) error {
	return p.guard.access(ctx, func(e *expander) error {
		return e.writeOutputState(ctx, p.bank)
	})
}

// UpdateBank is UpdateBankContext driven to completion.
func (p *RefreshableOutputPin) UpdateBank() error {
	return p.UpdateBankContext(context.Background())
}

// UpdateAllContext writes the output registers of both banks, Bank0 first.
// The two writes are separate transactions with no atomicity across them.
func (p *RefreshableOutputPin) UpdateAllContext(ctx context.Context) error {
	return p.guard.access(ctx, func(e *expander) error {
		if err := e.writeOutputState(ctx, Bank0); err != nil {
			return err
		}
		return e.writeOutputState(ctx, Bank1)
	})
}

// UpdateAll is UpdateAllContext driven to completion.
func (p *RefreshableOutputPin) UpdateAll() error {
	return p.UpdateAllContext(context.Background())
}

// IsSet returns the pin's level from the cached output state, whether or
// not it has been flushed yet.
func (p *RefreshableOutputPin) IsSet() gpio.Level {
	level := gpio.Low
	_ = p.guard.access(context.Background(), func(e *expander) error {
		level = gpio.Level(e.isPinOutputHigh(p.bank, p.id))
		return nil
	})
	return level
}

// IntoInputContext switches the pin to input mode with one direction
// register write. The receiving handle must not be used afterwards.
func (p *RefreshableOutputPin) IntoInputContext(ctx context.Context) (*RefreshableInputPin, error) {
	err := p.guard.access(ctx, func(e *expander) error {
		e.setMode(p.bank, p.id, Input)
		return e.writeModeState(ctx, p.bank)
	})
	if err != nil {
		return nil, err
	}
	return &RefreshableInputPin{p.pinRef}, nil
}

// IntoInput is IntoInputContext driven to completion.
func (p *RefreshableOutputPin) IntoInput() (*RefreshableInputPin, error) {
	return p.IntoInputContext(context.Background())
}
