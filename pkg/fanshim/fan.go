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

import "github.com/pkg/errors"

// SetFan switches the fan on or off.
// Every call writes the fan line, also when the value is unchanged.
func (d *Device) SetFan(on bool) error {
	d.outputMutex.Lock()
	defer d.outputMutex.Unlock()

	if err := d.fan.Write(on); err != nil {
		return errors.Wrap(err, "set fan failed")
	}
	d.fanOn = on
	setFanGauge(on)
	d.log.Debug().Bool("on", on).Msg("Fan switched")
	return nil
}

// Fan returns the last value successfully written to the fan.
func (d *Device) Fan() bool {
	d.outputMutex.Lock()
	defer d.outputMutex.Unlock()
	return d.fanOn
}

func setFanGauge(on bool) {
	if on {
		fanOnGauge.Set(1)
	} else {
		fanOnGauge.Set(0)
	}
}
