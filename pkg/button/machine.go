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
	"time"
)

// Machine turns raw active-low levels into button events.
// A low level means pressed.
// Machine is not safe for concurrent use.
type Machine struct {
	holdTime time.Duration
	state    State
	deadline time.Time
	armed    bool
}

// NewMachine creates an idle machine with the given hold time.
func NewMachine(holdTime time.Duration) *Machine {
	return &Machine{holdTime: holdTime}
}

// State returns the current state.
func (m *Machine) State() State {
	return m.state
}

// Deadline returns the pending hold deadline, if any.
func (m *Machine) Deadline() (time.Time, bool) {
	return m.deadline, m.armed
}

// Observe processes a level seen at the given time.
// Returns the resulting event, if any.
func (m *Machine) Observe(high bool, now time.Time) (Event, bool) {
	switch m.state {
	case Idle:
		if !high {
			m.state = Pressed
			m.deadline = now.Add(m.holdTime)
			m.armed = true
			return Press, true
		}
	case Pressed:
		if high {
			m.state = Idle
			m.disarm()
			return Release, true
		}
	case Held:
		if high {
			m.state = Idle
			return Release, true
		}
	}
	// Low while down or high while up
	return 0, false
}

// Expire fires the hold when the pending deadline has been reached at
// the given time.
func (m *Machine) Expire(now time.Time) (Event, bool) {
	if m.state != Pressed || !m.armed || now.Before(m.deadline) {
		return 0, false
	}
	m.state = Held
	m.disarm()
	return Hold, true
}

func (m *Machine) disarm() {
	m.armed = false
	m.deadline = time.Time{}
}
