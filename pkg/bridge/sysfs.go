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
	"os"
	"strconv"
	"sync"
	"syscall"

	"github.com/ecc1/gpio"
	aerr "github.com/ewoutp/go-aggregate-error"
	"github.com/pkg/errors"
)

const (
	sysfsUnexportPath = "/sys/class/gpio/unexport"
)

type sysfsBridge struct {
	mutex    sync.Mutex
	exported []int
}

// NewSysfsBridge implements the bridge on top of the sysfs GPIO
// interface. Input pins are polled: the interrupt pins of the gpio
// package return from Wait immediately while the value reads 1, so
// they cannot wait for both edges of a button that idles high.
func NewSysfsBridge() (API, error) {
	return &sysfsBridge{}, nil
}

// Output exports the given pin as an output with the given
// initial value.
func (b *sysfsBridge) Output(pinNumber int, initialValue bool) (OutputPin, error) {
	activeLow := false
	pin, err := gpio.Output(pinNumber, activeLow, initialValue)
	if err != nil {
		return nil, exportError(pinNumber, err)
	}
	b.track(pinNumber)
	return &sysfsOutputPin{pinNumber: pinNumber, pin: pin}, nil
}

// Input exports the given pin as an input.
// The edge mode is not written to sysfs; WatchLevels samples the level
// and derives both edges from it.
func (b *sysfsBridge) Input(pinNumber int, edge Edge) (InputPin, error) {
	activeLow := false
	pin, err := gpio.Input(pinNumber, activeLow)
	if err != nil {
		return nil, exportError(pinNumber, err)
	}
	b.track(pinNumber)
	return &sysfsInputPin{pinNumber: pinNumber, pin: pin}, nil
}

// Close unexports all pins exported through this bridge.
func (b *sysfsBridge) Close() error {
	b.mutex.Lock()
	defer b.mutex.Unlock()

	var ae aerr.AggregateError
	for _, pinNumber := range b.exported {
		if err := os.WriteFile(sysfsUnexportPath, []byte(strconv.Itoa(pinNumber)), 0); err != nil {
			ae.Add(errors.Wrapf(err, "unexport pin %d failed", pinNumber))
		}
	}
	b.exported = nil
	return ae.AsError()
}

func (b *sysfsBridge) track(pinNumber int) {
	b.mutex.Lock()
	defer b.mutex.Unlock()
	b.exported = append(b.exported, pinNumber)
}

type sysfsOutputPin struct {
	pinNumber int
	pin       gpio.OutputPin
}

func (p *sysfsOutputPin) Write(value bool) error {
	lineWritesTotal.WithLabelValues(pinLabel(p.pinNumber)).Inc()
	if err := p.pin.Write(value); err != nil {
		return writeError(p.pinNumber, err)
	}
	return nil
}

type sysfsInputPin struct {
	pinNumber int
	pin       gpio.InputPin
}

func (p *sysfsInputPin) Read() (bool, error) {
	value, err := p.pin.Read()
	if err != nil {
		if isRemoved(err) {
			return false, errors.Wrapf(LineRemovedError, "pin %d: %s", p.pinNumber, err)
		}
		return false, readError(p.pinNumber, err)
	}
	return value, nil
}

// isRemoved returns true when the given error indicates that the
// GPIO line disappeared underneath us.
func isRemoved(err error) bool {
	return errors.Is(err, os.ErrNotExist) || errors.Is(err, syscall.ENODEV)
}
