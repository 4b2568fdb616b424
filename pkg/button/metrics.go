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

package button

import (
	"github.com/binkynet/FanShim/pkg/metrics"
)

const (
	subSystem = "button"
)

var (
	// Number of button events by type
	eventsTotal = metrics.MustRegisterCounterVec(subSystem,
		"events_total",
		"Number of button events",
		"event")
	// Number of monitoring sessions started
	sessionsStartedTotal = metrics.MustRegisterCounter(subSystem,
		"sessions_started_total",
		"Number of button monitoring sessions started")
)
