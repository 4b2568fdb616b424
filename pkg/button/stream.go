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
	"context"
	"time"

	"github.com/binkynet/FanShim/pkg/bridge"
)

// Watch feeds the given raw levels into a new state machine and calls
// emit for every resulting event, until the levels channel is closed or
// the context is canceled.
// A hold deadline that has elapsed is always serviced before the next
// level. No events are emitted once the levels channel is closed, even
// when a hold is pending.
// Returns the error of an observation that carries one, nil otherwise.
func Watch(ctx context.Context, levels <-chan bridge.Observation, holdTime time.Duration, emit func(Event)) error {
	return WatchMachine(ctx, levels, NewMachine(holdTime), emit)
}

// WatchMachine is Watch continuing from the state of the given machine.
// A pending hold deadline of the machine is armed as is, so a press
// that is in progress keeps its original deadline.
func WatchMachine(ctx context.Context, levels <-chan bridge.Observation, m *Machine, emit func(Event)) error {
	timer := time.NewTimer(time.Hour)
	timer.Stop()
	defer timer.Stop()
	var timerC <-chan time.Time
	if deadline, armed := m.Deadline(); armed {
		timer.Reset(time.Until(deadline))
		timerC = timer.C
	}

	expire := func(now time.Time) {
		if ev, ok := m.Expire(now); ok {
			timer.Stop()
			timerC = nil
			emit(ev)
		}
	}
	expireAtDeadline := func() {
		if deadline, armed := m.Deadline(); armed {
			expire(deadline)
		}
	}

	for {
		if timerC != nil {
			// Timer first
			select {
			case <-timerC:
				expireAtDeadline()
				continue
			default:
			}
		}
		select {
		case <-ctx.Done():
			return nil
		case <-timerC:
			expireAtDeadline()
		case o, ok := <-levels:
			if !ok {
				// Source ended
				return nil
			}
			if o.Err != nil {
				return maskAny(o.Err)
			}
			// A deadline reached before this level was seen fires first.
			expire(o.Time)
			ev, ok := m.Observe(o.High, o.Time)
			if !ok {
				continue
			}
			switch ev {
			case Press:
				deadline, _ := m.Deadline()
				timer.Reset(time.Until(deadline))
				timerC = timer.C
			case Release:
				timer.Stop()
				timerC = nil
			}
			emit(ev)
		}
	}
}
