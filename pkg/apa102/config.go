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

package apa102

import (
	"time"

	"github.com/pkg/errors"
)

const (
	// DefaultStartPulses is the number of clock pulses of the start frame.
	DefaultStartPulses = 32
	// DefaultEndPulses is the number of clock pulses of the end frame.
	DefaultEndPulses = 32
	// MinEndPulses is the minimum number of end frame pulses needed to
	// shift a frame fully out.
	MinEndPulses = 32
	// DefaultDwell is the time between clock edges.
	DefaultDwell = time.Nanosecond * 500

	// dataFramePulses is the number of clock pulses of the LED data frame.
	dataFramePulses = 4 * 8
)

// EndFrameLevel is the level of the data line during the end frame.
type EndFrameLevel bool

const (
	// EndFrameHigh drives the data line high during the end frame.
	EndFrameHigh EndFrameLevel = true
	// EndFrameLow drives the data line low during the end frame.
	// The small dark die variants of the LED expect this.
	EndFrameLow EndFrameLevel = false
)

// BrightnessPolicy determines how brightness values outside [0,1] are
// mapped onto the 5-bit brightness field.
type BrightnessPolicy int

const (
	// Clamp limits the brightness to [0,1] before encoding.
	Clamp BrightnessPolicy = iota
	// Wrap masks the rounded value to 5 bits, so out of range values wrap.
	Wrap
)

// String returns the name of the policy.
func (p BrightnessPolicy) String() string {
	if p == Wrap {
		return "wrap"
	}
	return "clamp"
}

// Config of the LED protocol timing and framing.
type Config struct {
	// Number of clock pulses of the start frame.
	// Some LED dies need 36 pulses to latch.
	StartPulses int
	// Number of clock pulses of the end frame.
	EndPulses int
	// Time between clock edges.
	Dwell time.Duration
	// Level of the data line during the end frame.
	EndFrameLevel EndFrameLevel
	// Mapping of brightness onto the brightness field.
	Brightness BrightnessPolicy
}

// DefaultConfig returns the default LED configuration.
func DefaultConfig() Config {
	return Config{
		StartPulses:   DefaultStartPulses,
		EndPulses:     DefaultEndPulses,
		Dwell:         DefaultDwell,
		EndFrameLevel: EndFrameHigh,
		Brightness:    Clamp,
	}
}

// Validate the configuration.
func (c Config) Validate() error {
	if c.StartPulses < 0 {
		return errors.Wrapf(InvalidConfigError, "start pulses must be >= 0, got %d", c.StartPulses)
	}
	if c.EndPulses < MinEndPulses {
		return errors.Wrapf(InvalidConfigError, "end pulses must be >= %d, got %d", MinEndPulses, c.EndPulses)
	}
	if c.Dwell < 0 {
		return errors.Wrapf(InvalidConfigError, "dwell must be >= 0, got %s", c.Dwell)
	}
	switch c.Brightness {
	case Clamp, Wrap:
	default:
		return errors.Wrapf(InvalidConfigError, "unknown brightness policy %d", int(c.Brightness))
	}
	return nil
}

// PulsesPerFrame returns the number of clock pulses emitted for a
// single LED update.
func (c Config) PulsesPerFrame() int {
	return c.StartPulses + dataFramePulses + c.EndPulses
}
