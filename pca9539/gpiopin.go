// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package pca9539

import (
	"context"
	"errors"
	"strconv"
	"time"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/pin"
)

// Pin extends gpio.PinIO with the polarity inversion feature of the chip.
//
// Pins of this kind switch direction at runtime through In() and Out(),
// so unlike the typed handles they cannot rule out mode misuse up front;
// they exist to plug expander lines into code written against gpio.PinIO
// and the gpioreg registry. Reads and writes behave like regular access
// mode: one I²C transaction per call.
type Pin interface {
	gpio.PinIO
	pin.PinFunc
	// SetPolarityInverted if set to true, the input register reflects the
	// inverted logic state of the pin.
	SetPolarityInverted(p bool) error
	// IsPolarityInverted returns true if the value of the input pin
	// reflects inverted logic state.
	IsPolarityInverted() (bool, error)
}

type gpioPin struct {
	name  string
	guard guard
	bank  Bank
	id    PinID
}

func (p *gpioPin) String() string {
	return p.name
}

func (p *gpioPin) Name() string {
	return p.name
}

func (p *gpioPin) Number() int {
	return int(p.bank)*8 + int(p.id)
}

func (p *gpioPin) Function() string {
	return string(p.Func())
}

func (p *gpioPin) Halt() error {
	// To halt all drive, set to high-impedance input.
	return p.In(gpio.Float, gpio.NoEdge)
}

func (p *gpioPin) In(pull gpio.Pull, edge gpio.Edge) error {
	switch pull {
	case gpio.PullDown, gpio.PullUp:
		return errors.New("pca9539: pull resistors are not supported")
	case gpio.Float, gpio.PullNoChange:
	}

	// The INT line is not accessible over the bus.
	if edge != gpio.NoEdge {
		return errors.New("pca9539: edge detection is not supported")
	}

	return p.guard.access(context.Background(), func(e *expander) error {
		e.setMode(p.bank, p.id, Input)
		return e.writeModeState(context.Background(), p.bank)
	})
}

func (p *gpioPin) Read() gpio.Level {
	level := gpio.Low
	_ = p.guard.access(context.Background(), func(e *expander) error {
		if err := e.refreshInputState(context.Background(), p.bank); err != nil {
			return err
		}
		level = gpio.Level(e.isPinInputHigh(p.bank, p.id))
		return nil
	})
	return level
}

func (p *gpioPin) WaitForEdge(timeout time.Duration) bool {
	return false
}

func (p *gpioPin) Pull() gpio.Pull {
	return gpio.Float
}

func (p *gpioPin) DefaultPull() gpio.Pull {
	return gpio.Float
}

func (p *gpioPin) Out(l gpio.Level) error {
	return p.guard.access(context.Background(), func(e *expander) error {
		e.setMode(p.bank, p.id, Output)
		if err := e.writeModeState(context.Background(), p.bank); err != nil {
			return err
		}
		e.setOutputState(p.bank, p.id, l == gpio.High)
		return e.writeOutputState(context.Background(), p.bank)
	})
}

func (p *gpioPin) PWM(duty gpio.Duty, f physic.Frequency) error {
	return errors.New("pca9539: PWM is not supported")
}

func (p *gpioPin) Func() pin.Func {
	input := true
	_ = p.guard.access(context.Background(), func(e *expander) error {
		input = e.isPinDirectionInput(p.bank, p.id)
		return nil
	})
	if input {
		return gpio.IN
	}
	return gpio.OUT
}

func (p *gpioPin) SupportedFuncs() []pin.Func {
	return supportedFuncs[:]
}

func (p *gpioPin) SetFunc(f pin.Func) error {
	var m Mode
	switch f {
	case gpio.IN:
		m = Input
	case gpio.OUT:
		m = Output
	default:
		return errors.New("pca9539: function not supported: " + string(f))
	}
	return p.guard.access(context.Background(), func(e *expander) error {
		e.setMode(p.bank, p.id, m)
		return e.writeModeState(context.Background(), p.bank)
	})
}

func (p *gpioPin) SetPolarityInverted(pol bool) error {
	return p.guard.access(context.Background(), func(e *expander) error {
		return e.reversePolarity(context.Background(), p.bank, p.id, pol)
	})
}

func (p *gpioPin) IsPolarityInverted() (bool, error) {
	inverted := false
	err := p.guard.access(context.Background(), func(e *expander) error {
		inverted = e.isPolarityReversed(p.bank, p.id)
		return nil
	})
	return inverted, err
}

var supportedFuncs = [...]pin.Func{gpio.IN, gpio.OUT}

var _ Pin = &gpioPin{}

func gpioPinName(dev string, bank Bank, id PinID) string {
	return dev + "_" + bank.String() + "_" + strconv.Itoa(int(id))
}
