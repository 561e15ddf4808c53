// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package pca9539

import (
	"context"

	"periph.io/x/conn/v3/gpio"
)

// InputPin is a regular access input pin. Every Read() exchanges the
// bank's input register with the chip, so each call is one I²C
// transaction and may fail with a BusError.
type InputPin struct {
	pinRef
}

// ReadContext refreshes the pin's bank from the chip and returns the
// pin's level.
func (p *InputPin) ReadContext(ctx context.Context) (gpio.Level, error) {
	level := gpio.Low
	err := p.guard.access(ctx, func(e *expander) error {
		if err := e.refreshInputState(ctx, p.bank); err != nil {
			return err
		}
		level = gpio.Level(e.isPinInputHigh(p.bank, p.id))
		return nil
	})
	return level, err
}

// Read is ReadContext driven to completion.
func (p *InputPin) Read() (gpio.Level, error) {
	return p.ReadContext(context.Background())
}

// InvertPolarityContext sets or resets polarity inversion for the pin.
// While inverted, the chip flips the pin's logic level before it reaches
// the input register.
func (p *InputPin) InvertPolarityContext(ctx context.Context, invert bool) error {
	return p.guard.access(ctx, func(e *expander) error {
		return e.reversePolarity(ctx, p.bank, p.id, invert)
	})
}

// InvertPolarity is InvertPolarityContext driven to completion.
func (p *InputPin) InvertPolarity(invert bool) error {
	return p.InvertPolarityContext(context.Background(), invert)
}

// IntoOutputContext switches the pin to output mode driving the given
// initial level. The direction change and the initial level are flushed to
// the chip immediately, in one transaction each. The receiving handle must
// not be used afterwards.
func (p *InputPin) IntoOutputContext(ctx context.Context, initial gpio.Level) (*OutputPin, error) {
	err := p.guard.access(ctx, func(e *expander) error {
		e.setMode(p.bank, p.id, Output)
		if err := e.writeModeState(ctx, p.bank); err != nil {
			return err
		}
		e.setOutputState(p.bank, p.id, initial == gpio.High)
		return e.writeOutputState(ctx, p.bank)
	})
	if err != nil {
		return nil, err
	}
	return &OutputPin{p.pinRef}, nil
}

// IntoOutput is IntoOutputContext driven to completion.
func (p *InputPin) IntoOutput(initial gpio.Level) (*OutputPin, error) {
	return p.IntoOutputContext(context.Background(), initial)
}

// IntoInputContext re-asserts input mode with one direction register write
// and returns a fresh handle. The receiving handle must not be used
// afterwards.
func (p *InputPin) IntoInputContext(ctx context.Context) (*InputPin, error) {
	err := p.guard.access(ctx, func(e *expander) error {
		e.setMode(p.bank, p.id, Input)
		return e.writeModeState(ctx, p.bank)
	})
	if err != nil {
		return nil, err
	}
	return &InputPin{p.pinRef}, nil
}

// IntoInput is IntoInputContext driven to completion.
func (p *InputPin) IntoInput() (*InputPin, error) {
	return p.IntoInputContext(context.Background())
}

// OutputPin is a regular access output pin. Every Set() flushes the bank's
// output register, so each call is one I²C transaction and may fail with a
// BusError.
type OutputPin struct {
	pinRef
}

// SetContext sets the pin's cached output bit and immediately flushes the
// bank's output byte to the chip. On failure the cache keeps the new
// value; see BusError.
func (p *OutputPin) SetContext(ctx context.Context, l gpio.Level) error {
	return p.guard.access(ctx, func(e *expander) error {
		e.setOutputState(p.bank, p.id, l == gpio.High)
		return e.writeOutputState(ctx, p.bank)
	})
}

// Set is SetContext driven to completion.
func (p *OutputPin) Set(l gpio.Level) error {
	return p.SetContext(context.Background(), l)
}

// SetHigh drives the pin high.
func (p *OutputPin) SetHigh() error {
	return p.Set(gpio.High)
}

// SetLow drives the pin low.
func (p *OutputPin) SetLow() error {
	return p.Set(gpio.Low)
}

// IsSet returns the last level written to the pin. It acts on the cached
// output state only, so it never touches the bus and cannot fail.
func (p *OutputPin) IsSet() gpio.Level {
	level := gpio.Low
	_ = p.guard.access(context.Background(), func(e *expander) error {
		level = gpio.Level(e.isPinOutputHigh(p.bank, p.id))
		return nil
	})
	return level
}

// IntoInputContext switches the pin to input mode with one direction
// register write. The receiving handle must not be used afterwards.
func (p *OutputPin) IntoInputContext(ctx context.Context) (*InputPin, error) {
	err := p.guard.access(ctx, func(e *expander) error {
		e.setMode(p.bank, p.id, Input)
		return e.writeModeState(ctx, p.bank)
	})
	if err != nil {
		return nil, err
	}
	return &InputPin{p.pinRef}, nil
}

// IntoInput is IntoInputContext driven to completion.
func (p *OutputPin) IntoInput() (*InputPin, error) {
	return p.IntoInputContext(context.Background())
}
