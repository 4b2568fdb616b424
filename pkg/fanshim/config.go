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

package fanshim

import (
	"github.com/pkg/errors"

	"github.com/binkynet/FanShim/pkg/apa102"
	"github.com/binkynet/FanShim/pkg/button"
)

// Board pin mapping
const (
	DefaultFanPin    = 18
	DefaultDataPin   = 15
	DefaultClockPin  = 14
	DefaultButtonPin = 17
)

// Config of the device.
type Config struct {
	// Pin of the fan switch (output)
	FanPin int
	// Pin of the LED data line (output)
	DataPin int
	// Pin of the LED clock line (output)
	ClockPin int
	// Pin of the button (input, active low)
	ButtonPin int
	// Initial state of the fan
	FanDefault bool
	// LED protocol configuration
	LED apa102.Config
	// Button event configuration
	Button button.Config
}

// DefaultConfig returns the configuration of the board.
func DefaultConfig() Config {
	return Config{
		FanPin:     DefaultFanPin,
		DataPin:    DefaultDataPin,
		ClockPin:   DefaultClockPin,
		ButtonPin:  DefaultButtonPin,
		FanDefault: true,
		LED:        apa102.DefaultConfig(),
		Button:     button.DefaultConfig(),
	}
}

// Validate the configuration.
func (c Config) Validate() error {
	pins := map[string]int{
		"fan":    c.FanPin,
		"data":   c.DataPin,
		"clock":  c.ClockPin,
		"button": c.ButtonPin,
	}
	used := make(map[int]string)
	for _, name := range []string{"fan", "data", "clock", "button"} {
		pin := pins[name]
		if pin < 0 {
			return errors.Wrapf(InvalidConfigError, "%s pin must be >= 0, got %d", name, pin)
		}
		if other, found := used[pin]; found {
			return errors.Wrapf(InvalidConfigError, "%s pin %d is already used by %s", name, pin, other)
		}
		used[pin] = name
	}
	if err := c.LED.Validate(); err != nil {
		return errors.Wrapf(InvalidConfigError, "led: %s", err)
	}
	if err := c.Button.Validate(); err != nil {
		return errors.Wrapf(InvalidConfigError, "button: %s", err)
	}
	return nil
}
