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
	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/pkg/errors"

	"github.com/binkynet/FanShim/pkg/apa102"
)

// SetLED sets the color and brightness of the LED.
// Brightness is nominally in [0, 1]; values outside that range are
// handled according to the configured brightness policy.
func (d *Device) SetLED(red, green, blue uint8, brightness float32) error {
	d.outputMutex.Lock()
	defer d.outputMutex.Unlock()

	if err := d.led.Write(apa102.Color{
		Red:        red,
		Green:      green,
		Blue:       blue,
		Brightness: brightness,
	}); err != nil {
		return errors.Wrap(err, "set LED failed")
	}
	ledColorGauge.WithLabelValues("red").Set(float64(red))
	ledColorGauge.WithLabelValues("green").Set(float64(green))
	ledColorGauge.WithLabelValues("blue").Set(float64(blue))
	ledColorGauge.WithLabelValues("brightness").Set(float64(brightness))
	return nil
}

// SetLEDColor sets the LED to the given color.
// Colors outside the RGB gamut are clamped.
func (d *Device) SetLEDColor(c colorful.Color, brightness float32) error {
	r, g, b := c.Clamped().RGB255()
	return d.SetLED(r, g, b, brightness)
}
