// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package pca9539

import (
	"testing"
	"time"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/i2c/i2ctest"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/pin"
)

func TestGPIOPinOut(t *testing.T) {
	const address uint16 = 0x74
	scenario := &i2ctest.Playback{
		Ops: []i2ctest.IO{
			// direction is read on creation
			{Addr: address, W: []byte{0x06}, R: []byte{0xFF}},
			{Addr: address, W: []byte{0x07}, R: []byte{0xFF}},
			// every Out() asserts direction and flushes the level
			{Addr: address, W: []byte{0x06, 0xFE}, R: nil},
			{Addr: address, W: []byte{0x02, 0x00}, R: nil},
			{Addr: address, W: []byte{0x06, 0xFE}, R: nil},
			{Addr: address, W: []byte{0x02, 0x01}, R: nil},
		},
	}

	dev, err := New(scenario, address)
	if err != nil {
		t.Fatal(err)
	}
	defer dev.Close()

	p0 := gpioreg.ByName("PCA9539_74_P0_0")
	if p0 == nil {
		t.Fatal("p0 is nil")
	}
	if err := p0.Out(gpio.Low); err != nil {
		t.Fatal(err)
	}
	if err := p0.Out(gpio.High); err != nil {
		t.Fatal(err)
	}
	if p0.Function() != "Out" {
		t.Errorf("Function() should return 'Out', got %q", p0.Function())
	}
}

func TestGPIOPinIn(t *testing.T) {
	const address uint16 = 0x74
	scenario := &i2ctest.Playback{
		Ops: []i2ctest.IO{
			{Addr: address, W: []byte{0x06}, R: []byte{0xFF}},
			{Addr: address, W: []byte{0x07}, R: []byte{0xFF}},
			// In() re-asserts the direction bit
			{Addr: address, W: []byte{0x06, 0xFF}, R: nil},
			// input is read
			{Addr: address, W: []byte{0x00}, R: []byte{0x01}},
		},
	}

	dev, err := New(scenario, address)
	if err != nil {
		t.Fatal(err)
	}
	defer dev.Close()

	p0 := gpioreg.ByName("PCA9539_74_P0_0")
	if err := p0.In(gpio.Float, gpio.NoEdge); err != nil {
		t.Fatal(err)
	}
	if l := p0.Read(); l != gpio.High {
		t.Errorf("input should be High, got %s", l)
	}
}

func TestGPIOPinInUnsupported(t *testing.T) {
	scenario := &i2ctest.Playback{}
	dev, err := NewWithOpts(scenario, 0x74, &Opts{AssumeDefaults: true})
	if err != nil {
		t.Fatal(err)
	}
	defer dev.Close()

	p := dev.Pins[0][0]
	if err := p.In(gpio.PullUp, gpio.NoEdge); err == nil {
		t.Errorf("PullUp should not be supported")
	}
	if err := p.In(gpio.PullDown, gpio.NoEdge); err == nil {
		t.Errorf("PullDown should not be supported")
	}
	if err := p.In(gpio.Float, gpio.RisingEdge); err == nil {
		t.Errorf("edge detection should not be supported")
	}
}

func TestGPIOPinPolarity(t *testing.T) {
	const address uint16 = 0x74
	scenario := &i2ctest.Playback{
		Ops: []i2ctest.IO{
			{Addr: address, W: []byte{0x06}, R: []byte{0xFF}},
			{Addr: address, W: []byte{0x07}, R: []byte{0xFF}},
			// polarity is set
			{Addr: address, W: []byte{0x04, 0x01}, R: nil},
			// inverted level is read back from the chip
			{Addr: address, W: []byte{0x00}, R: []byte{0x01}},
		},
	}

	dev, err := New(scenario, address)
	if err != nil {
		t.Fatal(err)
	}
	defer dev.Close()

	p0, ok := gpioreg.ByName("PCA9539_74_P0_0").(Pin)
	if !ok {
		t.Fatal("pin should implement the polarity extension")
	}
	if err := p0.SetPolarityInverted(true); err != nil {
		t.Fatal(err)
	}
	if l := p0.Read(); l != gpio.High {
		t.Errorf("input should be High, got %s", l)
	}
	inverted, err := p0.IsPolarityInverted()
	if err != nil || !inverted {
		t.Errorf("polarity should return as inverted")
	}
}

func TestGPIOPinFixedValues(t *testing.T) {
	scenario := &i2ctest.Playback{}
	dev, err := NewWithOpts(scenario, 0x74, &Opts{AssumeDefaults: true})
	if err != nil {
		t.Fatal(err)
	}
	defer dev.Close()

	if dev.Pins[0][1].String() != "PCA9539_74_P0_1" {
		t.Errorf("String() should return 'PCA9539_74_P0_1', got %q", dev.Pins[0][1].String())
	}
	if dev.Pins[1][2].Name() != "PCA9539_74_P1_2" {
		t.Errorf("Name() should return 'PCA9539_74_P1_2', got %q", dev.Pins[1][2].Name())
	}
	if dev.Pins[0][6].Number() != 6 {
		t.Errorf("Number() should return 6")
	}
	if dev.Pins[1][6].Number() != 14 {
		t.Errorf("Number() should return 14")
	}
	if dev.Pins[0][6].WaitForEdge(10 * time.Second) {
		t.Errorf("WaitForEdge() should return false")
	}
	if dev.Pins[0][5].Pull() != gpio.Float {
		t.Errorf("Pull() should return gpio.Float")
	}
	if dev.Pins[0][5].DefaultPull() != gpio.Float {
		t.Errorf("DefaultPull() should return gpio.Float")
	}
	if err := dev.Pins[0][0].PWM(gpio.DutyHalf, physic.Hertz); err == nil {
		t.Errorf("PWM should return an error")
	}
	// Fresh device: every line is an input.
	if dev.Pins[0][4].Func() != gpio.IN {
		t.Errorf("Func() should return gpio.IN")
	}
}

func TestGPIOPinSetFunc(t *testing.T) {
	scenario := &i2ctest.Playback{
		Ops: []i2ctest.IO{
			{Addr: 0x74, W: []byte{0x07, 0xFD}, R: nil},
			{Addr: 0x74, W: []byte{0x07, 0xFF}, R: nil},
		},
	}
	dev, err := NewWithOpts(scenario, 0x74, &Opts{AssumeDefaults: true})
	if err != nil {
		t.Fatal(err)
	}
	defer dev.Close()

	p := dev.Pins[1][1]
	if err := p.SetFunc(gpio.OUT); err != nil {
		t.Fatal(err)
	}
	if p.Func() != gpio.OUT {
		t.Errorf("Func() should return gpio.OUT")
	}
	if err := p.SetFunc(gpio.IN); err != nil {
		t.Fatal(err)
	}
	if err := p.SetFunc(pin.Func("PWM")); err == nil {
		t.Errorf("SetFunc(PWM) should return an error")
	}
}
