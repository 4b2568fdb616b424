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
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMachineTransitions(t *testing.T) {
	t0 := time.Now()
	m := NewMachine(2 * time.Second)
	assert.Equal(t, Idle, m.State())

	_, ok := m.Observe(true, t0)
	assert.False(t, ok, "high while idle")

	ev, ok := m.Observe(false, t0.Add(time.Millisecond))
	require.True(t, ok)
	assert.Equal(t, Press, ev)
	assert.Equal(t, Pressed, m.State())
	deadline, armed := m.Deadline()
	require.True(t, armed)
	assert.Equal(t, t0.Add(time.Millisecond+2*time.Second), deadline)

	_, ok = m.Observe(false, t0.Add(time.Second))
	assert.False(t, ok, "low while pressed is debounced")
	deadline2, _ := m.Deadline()
	assert.Equal(t, deadline, deadline2, "deadline is not re-armed")

	_, ok = m.Expire(deadline.Add(-time.Nanosecond))
	assert.False(t, ok, "deadline not reached yet")

	ev, ok = m.Expire(deadline)
	require.True(t, ok)
	assert.Equal(t, Hold, ev)
	assert.Equal(t, Held, m.State())
	_, armed = m.Deadline()
	assert.False(t, armed)

	_, ok = m.Expire(deadline.Add(time.Hour))
	assert.False(t, ok, "hold fires once")
	_, ok = m.Observe(false, deadline.Add(time.Second))
	assert.False(t, ok, "low while held is debounced")

	ev, ok = m.Observe(true, deadline.Add(2*time.Second))
	require.True(t, ok)
	assert.Equal(t, Release, ev)
	assert.Equal(t, Idle, m.State())
}

func TestMachineReleaseBeforeHold(t *testing.T) {
	t0 := time.Now()
	m := NewMachine(2 * time.Second)
	var events []Event
	for i, high := range []bool{true, false, true} {
		if ev, ok := m.Observe(high, t0.Add(time.Duration(i)*200*time.Millisecond)); ok {
			events = append(events, ev)
		}
	}
	assert.Equal(t, []Event{Press, Release}, events)
	_, armed := m.Deadline()
	assert.False(t, armed, "release disarms the deadline")
	_, ok := m.Expire(t0.Add(time.Hour))
	assert.False(t, ok, "a disarmed deadline never fires")
}

func TestEventString(t *testing.T) {
	assert.Equal(t, "press", Press.String())
	assert.Equal(t, "release", Release.String())
	assert.Equal(t, "hold", Hold.String())
	assert.Equal(t, "held", Held.String())
}
