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

package bridge

import (
	"context"
	"time"
)

const (
	// DefaultPollInterval is the interval used to sample input pins
	// that cannot wait for edges, and the maximum time between checks
	// for cancellation otherwise.
	DefaultPollInterval = time.Millisecond * 50
)

// Observation is a single raw level seen on an input pin.
type Observation struct {
	// High is true when the pin was at a high level.
	High bool
	// Time the level was seen.
	Time time.Time
	// Err is set when reading the pin failed. It is always the last
	// observation delivered.
	Err error
}

// WatchLevels reports the initial level of the given pin, followed by
// every level change, on the returned channel.
// Pins that implement EdgeInputPin are waited on for at most interval,
// other pins are sampled every interval. Either way the level is
// compared to the previous sample.
// The channel is closed when the context is canceled, when the line is
// removed, or right after an observation carrying a read error.
func WatchLevels(ctx context.Context, pin InputPin, interval time.Duration) <-chan Observation {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	out := make(chan Observation)
	go func() {
		defer close(out)
		send := func(o Observation) bool {
			select {
			case out <- o:
				return true
			case <-ctx.Done():
				return false
			}
		}
		fail := func(err error) {
			if !IsLineRemoved(err) {
				send(Observation{Time: time.Now(), Err: maskAny(err)})
			}
		}

		last, err := pin.Read()
		if err != nil {
			fail(err)
			return
		}
		if !send(Observation{High: last, Time: time.Now()}) {
			return
		}
		edgePin, canWait := pin.(EdgeInputPin)
		for ctx.Err() == nil {
			if canWait {
				// On timeout the level is sampled anyway, so an edge that
				// slipped by between read and wait is not lost.
				if _, err := edgePin.WaitForEdge(interval); err != nil {
					fail(err)
					return
				}
				if ctx.Err() != nil {
					return
				}
			} else {
				select {
				case <-ctx.Done():
					return
				case <-time.After(interval):
					// Sample again
				}
			}
			level, err := pin.Read()
			if err != nil {
				fail(err)
				return
			}
			if level == last {
				continue
			}
			last = level
			if !send(Observation{High: level, Time: time.Now()}) {
				return
			}
		}
	}()
	return out
}
