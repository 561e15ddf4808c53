// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package pca9539

import (
	"context"
	"strconv"
	"time"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/i2c"
)

// Opts holds the configuration for the device.
type Opts struct {
	// Reset, if set, is the chip's active low reset line. It is pulsed
	// during New before any register access; the chip then holds its
	// power-on defaults.
	Reset gpio.PinOut
	// AssumeDefaults skips reading the direction registers during New and
	// seeds the cache with the power-on default instead (all pins input).
	// Use it when the chip is known to be freshly reset.
	AssumeDefaults bool
	// Guard selects the synchronization of the shared register state. The
	// zero value is GuardMutex.
	Guard GuardKind
}

// Dev is a handle to a PCA9539 on an I²C bus.
//
// All pin handles obtained from it share one register cache, serialized by
// the guard selected in Opts. Pins contains one gpio.PinIO compatible pin
// per line, indexed as [bank][pin]; they are also registered with gpioreg
// under names like "PCA9539_74_P0_3".
type Dev struct {
	Pins [2][8]Pin

	name  string
	guard guard
}

// New returns a handle to a PCA9539 at the given address with the default
// configuration.
func New(bus i2c.Bus, addr uint16) (*Dev, error) {
	return NewWithOpts(bus, addr, nil)
}

// NewWithOpts returns a handle to a PCA9539 at the given address. The
// chip only decodes addresses 0x74 to 0x77.
func NewWithOpts(bus i2c.Bus, addr uint16, opts *Opts) (*Dev, error) {
	if addr < 0x74 || addr > 0x77 {
		return nil, errInvalidAddress
	}
	if opts == nil {
		opts = &Opts{}
	}

	e := &expander{
		c:         i2c.Dev{Bus: bus, Addr: addr},
		direction: [2]uint8{0xFF, 0xFF},
	}

	if opts.Reset != nil {
		if err := reset(opts.Reset); err != nil {
			return nil, err
		}
	}

	if !opts.AssumeDefaults {
		// Seed the direction cache from the chip so mode transitions only
		// flip the bit they own.
		ctx := context.Background()
		for _, bank := range []Bank{Bank0, Bank1} {
			v, err := e.readRegister(ctx, regDirection+uint8(bank), "read direction")
			if err != nil {
				return nil, err
			}
			e.direction[bank] = v
		}
	}

	d := &Dev{
		name:  "PCA9539_" + strconv.FormatInt(int64(addr), 16),
		guard: newGuard(opts.Guard, e),
	}
	for bank := range d.Pins {
		for id := range d.Pins[bank] {
			p := &gpioPin{
				name:  gpioPinName(d.name, Bank(bank), PinID(id)),
				guard: d.guard,
				bank:  Bank(bank),
				id:    PinID(id),
			}
			d.Pins[bank][id] = p
			// Ignore registration failure.
			_ = gpioreg.Register(p)
		}
	}
	return d, nil
}

// reset pulses the active low reset line. The chip needs the line low for
// at least 400ns and is ready 600ns after the rising edge; 1ms sleeps
// leave plenty of margin.
func reset(rst gpio.PinOut) error {
	if err := rst.Out(gpio.High); err != nil {
		return err
	}
	time.Sleep(time.Millisecond)
	if err := rst.Out(gpio.Low); err != nil {
		return err
	}
	time.Sleep(time.Millisecond)
	if err := rst.Out(gpio.High); err != nil {
		return err
	}
	time.Sleep(time.Millisecond)
	return nil
}

// InputPin returns a regular access handle to the given pin, in input
// mode. Its state is exchanged with the chip on every call.
func (d *Dev) InputPin(bank Bank, id PinID) (*InputPin, error) {
	if err := checkPin(bank, id); err != nil {
		return nil, err
	}
	return &InputPin{pinRef{guard: d.guard, bank: bank, id: id}}, nil
}

// RefreshableInputPin returns a cached access handle to the given pin, in
// input mode. Its state is exchanged with the chip only on explicit
// refresh and update calls, for all pins of a bank at once.
func (d *Dev) RefreshableInputPin(bank Bank, id PinID) (*RefreshableInputPin, error) {
	if err := checkPin(bank, id); err != nil {
		return nil, err
	}
	return &RefreshableInputPin{pinRef{guard: d.guard, bank: bank, id: id}}, nil
}

// Halt returns all 16 lines to high-impedance inputs.
func (d *Dev) Halt() error {
	return d.guard.access(context.Background(), func(e *expander) error {
		ctx := context.Background()
		for _, bank := range []Bank{Bank0, Bank1} {
			e.direction[bank] = 0xFF
			if err := e.writeModeState(ctx, bank); err != nil {
				return err
			}
		}
		return nil
	})
}

// Close removes the pin registrations of the device.
func (d *Dev) Close() error {
	for bank := range d.Pins {
		for id := range d.Pins[bank] {
			if err := gpioreg.Unregister(d.Pins[bank][id].Name()); err != nil {
				return err
			}
		}
	}
	return nil
}

func (d *Dev) String() string {
	return d.name
}
