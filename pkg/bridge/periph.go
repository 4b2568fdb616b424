// Copyright 2026 Ewout Prangsma
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//
// Author Ewout Prangsma
//

package bridge

import (
	"fmt"
	"sync"
	"time"

	aerr "github.com/ewoutp/go-aggregate-error"
	"github.com/pkg/errors"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/host/v3"
)

type periphBridge struct {
	mutex sync.Mutex
	pins  []gpio.PinIO
}

// NewPeriphBridge implements the bridge on top of periph.io.
// Input pins returned by this bridge support waiting for edges.
func NewPeriphBridge() (API, error) {
	if _, err := host.Init(); err != nil {
		return nil, errors.Wrap(err, "periph host init failed")
	}
	return &periphBridge{}, nil
}

// Output exports the given pin as an output with the given
// initial value.
func (b *periphBridge) Output(pinNumber int, initialValue bool) (OutputPin, error) {
	p, err := b.resolvePin(pinNumber)
	if err != nil {
		return nil, err
	}
	if err := p.Out(gpio.Level(initialValue)); err != nil {
		return nil, exportError(pinNumber, err)
	}
	b.track(p)
	return &periphOutputPin{pinNumber: pinNumber, pin: p}, nil
}

// Input exports the given pin as an input with a pull-up and the given
// edge sensing mode.
func (b *periphBridge) Input(pinNumber int, edge Edge) (InputPin, error) {
	p, err := b.resolvePin(pinNumber)
	if err != nil {
		return nil, err
	}
	if err := p.In(gpio.PullUp, periphEdge(edge)); err != nil {
		return nil, exportError(pinNumber, err)
	}
	b.track(p)
	return &periphInputPin{pinNumber: pinNumber, pin: p, edge: edge}, nil
}

// Close halts all pins claimed through this bridge.
func (b *periphBridge) Close() error {
	b.mutex.Lock()
	defer b.mutex.Unlock()

	var ae aerr.AggregateError
	for _, p := range b.pins {
		if err := p.Halt(); err != nil {
			ae.Add(errors.Wrapf(err, "halt %s failed", p.Name()))
		}
	}
	b.pins = nil
	return ae.AsError()
}

// resolvePin looks up a GPIO pin by number.
func (b *periphBridge) resolvePin(pinNumber int) (gpio.PinIO, error) {
	name := fmt.Sprintf("GPIO%d", pinNumber)
	p := gpioreg.ByName(name)
	if p == nil {
		return nil, exportError(pinNumber, fmt.Errorf("%s not found", name))
	}
	return p, nil
}

func (b *periphBridge) track(p gpio.PinIO) {
	b.mutex.Lock()
	defer b.mutex.Unlock()
	b.pins = append(b.pins, p)
}

func periphEdge(edge Edge) gpio.Edge {
	switch edge {
	case EdgeRising:
		return gpio.RisingEdge
	case EdgeFalling:
		return gpio.FallingEdge
	case EdgeBoth:
		return gpio.BothEdges
	default:
		return gpio.NoEdge
	}
}

type periphOutputPin struct {
	pinNumber int
	pin       gpio.PinIO
}

func (p *periphOutputPin) Write(value bool) error {
	lineWritesTotal.WithLabelValues(pinLabel(p.pinNumber)).Inc()
	if err := p.pin.Out(gpio.Level(value)); err != nil {
		return writeError(p.pinNumber, err)
	}
	return nil
}

type periphInputPin struct {
	pinNumber int
	pin       gpio.PinIO
	edge      Edge
}

func (p *periphInputPin) Read() (bool, error) {
	return bool(p.pin.Read()), nil
}

// WaitForEdge blocks until an edge is detected or the timeout expires.
func (p *periphInputPin) WaitForEdge(timeout time.Duration) (bool, error) {
	if p.edge == EdgeNone {
		time.Sleep(timeout)
		return false, nil
	}
	return p.pin.WaitForEdge(timeout), nil
}
