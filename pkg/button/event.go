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

// Event is a semantic button event.
type Event int

const (
	// Press is emitted when the button goes down.
	Press Event = iota
	// Release is emitted when the button goes up.
	Release
	// Hold is emitted when the button stays down for the hold time.
	Hold
)

func (e Event) String() string {
	switch e {
	case Press:
		return "press"
	case Release:
		return "release"
	case Hold:
		return "hold"
	default:
		return "unknown"
	}
}

// State of the button state machine.
type State int

const (
	// Idle means no press in progress.
	Idle State = iota
	// Pressed means a press is in progress and the hold has not fired yet.
	Pressed
	// Held means the hold fired for the current press.
	Held
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Pressed:
		return "pressed"
	case Held:
		return "held"
	default:
		return "unknown"
	}
}
