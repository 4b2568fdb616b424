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
	"github.com/binkynet/FanShim/pkg/metrics"
)

const (
	subSystem = "led"
)

var (
	// Number of LED frames written completely
	framesWrittenTotal = metrics.MustRegisterCounter(subSystem,
		"frames_written_total",
		"Number of LED frames written completely")
	// Number of LED frames aborted by a line write failure
	framesFailedTotal = metrics.MustRegisterCounter(subSystem,
		"frames_failed_total",
		"Number of LED frames aborted by a line write failure")
	// Number of clock pulses emitted on the LED bus
	clockPulsesTotal = metrics.MustRegisterCounter(subSystem,
		"clock_pulses_total",
		"Number of clock pulses emitted on the LED bus")
)
