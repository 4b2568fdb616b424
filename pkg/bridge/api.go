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
	"time"
)

// API of the bridge, the hardware used to reach the digital lines of
// the add-on board.
type API interface {
	// Output exports the given pin as an output with the given
	// initial value.
	Output(pinNumber int, initialValue bool) (OutputPin, error)
	// Input exports the given pin as an input with the given edge
	// sensing mode.
	// The returned pin implements EdgeInputPin when the backend can
	// wait for edges, otherwise the caller has to poll.
	Input(pinNumber int, edge Edge) (InputPin, error)

	// Close releases all pins exported by this bridge.
	Close() error
}

// InputPin is the interface satisfied by GPIO input pins.
type InputPin interface {
	// Read the current level of the pin (true=high)
	Read() (bool, error)
}

// EdgeInputPin is an input pin that can block until an edge is detected.
type EdgeInputPin interface {
	InputPin
	// WaitForEdge waits until an edge is detected or the timeout expires.
	// Returns true when an edge was detected.
	WaitForEdge(timeout time.Duration) (bool, error)
}

// OutputPin is the interface satisfied by GPIO output pins.
type OutputPin interface {
	Write(bool) error
}

// Edge specifies on which level transitions an input pin is sensitive.
type Edge int

const (
	EdgeNone Edge = iota
	EdgeRising
	EdgeFalling
	EdgeBoth
)

// String returns the sysfs name of the edge.
func (e Edge) String() string {
	switch e {
	case EdgeRising:
		return "rising"
	case EdgeFalling:
		return "falling"
	case EdgeBoth:
		return "both"
	default:
		return "none"
	}
}
