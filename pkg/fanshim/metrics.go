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
	"github.com/binkynet/FanShim/pkg/metrics"
)

const (
	subSystem = "device"
)

var (
	// Last value written to the fan (0=OFF, 1=ON)
	fanOnGauge = metrics.MustRegisterGauge(subSystem,
		"fan_on",
		"Last value written to the fan (0=OFF, 1=ON)")
	// Last color channel values written to the LED
	ledColorGauge = metrics.MustRegisterGaugeVec(subSystem,
		"led_color",
		"Last color channel values written to the LED",
		"channel")
	// Number of button registrations
	buttonRegistrationsGauge = metrics.MustRegisterGauge(subSystem,
		"button_registrations",
		"Number of registered button callbacks")
)
