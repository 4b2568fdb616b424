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
	"math"
)

const (
	controlBits     = 0b1110_0000
	brightnessMask  = 0b0001_1111
	brightnessSteps = 31.0
)

// Color of the LED.
type Color struct {
	Red   uint8
	Green uint8
	Blue  uint8
	// Brightness, nominally in [0,1].
	Brightness float32
}

// BrightnessField returns the 5-bit brightness field for the given
// brightness: round(31*b) & 0x1f, after applying the given policy.
func BrightnessField(brightness float32, policy BrightnessPolicy) uint8 {
	b := float64(brightness)
	if math.IsNaN(b) {
		return 0
	}
	if policy == Clamp {
		b = math.Max(0, math.Min(1, b))
	} else if math.IsInf(b, 0) {
		return 0
	}
	// Reduce modulo 32 in floating point; equal to masking the two's
	// complement integer, and defined for every finite value.
	field := math.Mod(math.Round(brightnessSteps*b), brightnessMask+1)
	if field < 0 {
		field += brightnessMask + 1
	}
	return uint8(field)
}

// ControlByte returns the first byte of the LED data frame:
// three fixed high bits followed by the brightness field.
func ControlByte(brightness float32, policy BrightnessPolicy) uint8 {
	return controlBits | BrightnessField(brightness, policy)
}

// Encode returns the LED data frame for the given color.
// Channels are sent in blue, green, red order.
func Encode(c Color, policy BrightnessPolicy) [4]byte {
	return [4]byte{
		ControlByte(c.Brightness, policy),
		c.Blue,
		c.Green,
		c.Red,
	}
}

// Bits returns the bits of the given byte, most significant bit first.
func Bits(b byte) [8]bool {
	var result [8]bool
	for i := range result {
		result[i] = b&(0x80>>i) != 0
	}
	return result
}
