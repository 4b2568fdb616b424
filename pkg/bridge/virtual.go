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
	"fmt"
	"sync"
	"time"

	"github.com/pkg/errors"
)

// Direction of a virtual line.
type Direction int

const (
	DirectionUnknown Direction = iota
	DirectionInput
	DirectionOutput
)

// Write is a single recorded write to a virtual output pin.
type Write struct {
	Pin    int
	Value  bool
	Failed bool
}

// VirtualBridge is an in-memory bridge.
// It records every write and lets callers drive input levels.
type VirtualBridge struct {
	mutex         sync.Mutex
	lines         map[int]*virtualLine
	writes        []Write
	failExport    map[int]bool
	failWriteFrom map[int]int
	closed        bool
}

type virtualLine struct {
	pinNumber int
	direction Direction
	edge      Edge
	level     bool
	writes    int
	removed   bool
	changed   chan struct{}
}

var _ API = &VirtualBridge{}

// NewVirtualBridge implements the bridge for a board without real
// hardware.
func NewVirtualBridge() *VirtualBridge {
	return &VirtualBridge{
		lines:         make(map[int]*virtualLine),
		failExport:    make(map[int]bool),
		failWriteFrom: make(map[int]int),
	}
}

// Output exports the given pin as an output with the given
// initial value.
func (b *VirtualBridge) Output(pinNumber int, initialValue bool) (OutputPin, error) {
	l, err := b.export(pinNumber, DirectionOutput, EdgeNone)
	if err != nil {
		return nil, err
	}
	l.level = initialValue
	return &virtualOutputPin{bridge: b, line: l}, nil
}

// Input exports the given pin as an input.
// Input lines idle high, matching a button with a pull-up.
func (b *VirtualBridge) Input(pinNumber int, edge Edge) (InputPin, error) {
	l, err := b.export(pinNumber, DirectionInput, edge)
	if err != nil {
		return nil, err
	}
	l.level = true
	return &virtualInputPin{bridge: b, line: l}, nil
}

// Close releases all lines.
func (b *VirtualBridge) Close() error {
	b.mutex.Lock()
	defer b.mutex.Unlock()
	b.closed = true
	for _, l := range b.lines {
		l.removed = true
		l.notify()
	}
	return nil
}

func (b *VirtualBridge) export(pinNumber int, direction Direction, edge Edge) (*virtualLine, error) {
	b.mutex.Lock()
	defer b.mutex.Unlock()
	if b.closed {
		return nil, exportError(pinNumber, fmt.Errorf("bridge closed"))
	}
	if b.failExport[pinNumber] {
		return nil, exportError(pinNumber, fmt.Errorf("permission denied"))
	}
	if _, found := b.lines[pinNumber]; found {
		return nil, exportError(pinNumber, fmt.Errorf("device or resource busy"))
	}
	l := &virtualLine{
		pinNumber: pinNumber,
		direction: direction,
		edge:      edge,
		changed:   make(chan struct{}),
	}
	b.lines[pinNumber] = l
	return l, nil
}

// FailExport makes future exports of the given pin fail.
func (b *VirtualBridge) FailExport(pinNumber int) {
	b.mutex.Lock()
	defer b.mutex.Unlock()
	b.failExport[pinNumber] = true
}

// FailWritesAfter makes all writes to the given pin fail once it has
// accepted the given number of writes.
func (b *VirtualBridge) FailWritesAfter(pinNumber int, accepted int) {
	b.mutex.Lock()
	defer b.mutex.Unlock()
	b.failWriteFrom[pinNumber] = accepted
}

// SetLevel sets the level of the given input pin and wakes up
// anyone waiting for an edge.
func (b *VirtualBridge) SetLevel(pinNumber int, level bool) {
	b.mutex.Lock()
	defer b.mutex.Unlock()
	if l, found := b.lines[pinNumber]; found && l.level != level {
		l.level = level
		l.notify()
	}
}

// Remove simulates removal of the line of the given pin.
func (b *VirtualBridge) Remove(pinNumber int) {
	b.mutex.Lock()
	defer b.mutex.Unlock()
	if l, found := b.lines[pinNumber]; found {
		l.removed = true
		l.notify()
	}
}

// Level returns the current level of the given pin.
func (b *VirtualBridge) Level(pinNumber int) bool {
	b.mutex.Lock()
	defer b.mutex.Unlock()
	if l, found := b.lines[pinNumber]; found {
		return l.level
	}
	return false
}

// Direction returns the direction the given pin was exported with.
func (b *VirtualBridge) Direction(pinNumber int) Direction {
	b.mutex.Lock()
	defer b.mutex.Unlock()
	if l, found := b.lines[pinNumber]; found {
		return l.direction
	}
	return DirectionUnknown
}

// Edge returns the edge mode the given pin was exported with.
func (b *VirtualBridge) Edge(pinNumber int) Edge {
	b.mutex.Lock()
	defer b.mutex.Unlock()
	if l, found := b.lines[pinNumber]; found {
		return l.edge
	}
	return EdgeNone
}

// Closed returns true once Close has been called.
func (b *VirtualBridge) Closed() bool {
	b.mutex.Lock()
	defer b.mutex.Unlock()
	return b.closed
}

// Writes returns a copy of all attempted writes in order.
func (b *VirtualBridge) Writes() []Write {
	b.mutex.Lock()
	defer b.mutex.Unlock()
	return append([]Write(nil), b.writes...)
}

// WritesTo returns the values successfully written to the given pin.
func (b *VirtualBridge) WritesTo(pinNumber int) []bool {
	b.mutex.Lock()
	defer b.mutex.Unlock()
	var result []bool
	for _, w := range b.writes {
		if w.Pin == pinNumber && !w.Failed {
			result = append(result, w.Value)
		}
	}
	return result
}

// ResetWrites clears the recorded writes.
func (b *VirtualBridge) ResetWrites() {
	b.mutex.Lock()
	defer b.mutex.Unlock()
	b.writes = nil
}

func (l *virtualLine) notify() {
	close(l.changed)
	l.changed = make(chan struct{})
}

type virtualOutputPin struct {
	bridge *VirtualBridge
	line   *virtualLine
}

func (p *virtualOutputPin) Write(value bool) error {
	b := p.bridge
	b.mutex.Lock()
	defer b.mutex.Unlock()

	l := p.line
	lineWritesTotal.WithLabelValues(pinLabel(l.pinNumber)).Inc()
	if l.removed {
		b.writes = append(b.writes, Write{Pin: l.pinNumber, Value: value, Failed: true})
		return writeError(l.pinNumber, LineRemovedError)
	}
	if limit, found := b.failWriteFrom[l.pinNumber]; found && l.writes >= limit {
		b.writes = append(b.writes, Write{Pin: l.pinNumber, Value: value, Failed: true})
		return writeError(l.pinNumber, fmt.Errorf("input/output error"))
	}
	b.writes = append(b.writes, Write{Pin: l.pinNumber, Value: value})
	l.writes++
	l.level = value
	return nil
}

type virtualInputPin struct {
	bridge *VirtualBridge
	line   *virtualLine
}

func (p *virtualInputPin) Read() (bool, error) {
	b := p.bridge
	b.mutex.Lock()
	defer b.mutex.Unlock()
	if p.line.removed {
		return false, errors.Wrapf(LineRemovedError, "pin %d", p.line.pinNumber)
	}
	return p.line.level, nil
}

// WaitForEdge blocks until the level changes, the line is removed or
// the timeout expires.
func (p *virtualInputPin) WaitForEdge(timeout time.Duration) (bool, error) {
	b := p.bridge
	b.mutex.Lock()
	if p.line.removed {
		b.mutex.Unlock()
		return false, errors.Wrapf(LineRemovedError, "pin %d", p.line.pinNumber)
	}
	changed := p.line.changed
	edge := p.line.edge
	b.mutex.Unlock()

	if edge == EdgeNone {
		time.Sleep(timeout)
		return false, nil
	}

	select {
	case <-changed:
		b.mutex.Lock()
		defer b.mutex.Unlock()
		if p.line.removed {
			return false, errors.Wrapf(LineRemovedError, "pin %d", p.line.pinNumber)
		}
		return true, nil
	case <-time.After(timeout):
		return false, nil
	}
}
