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
	"sync"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// polledPin is an InputPin without edge support.
type polledPin struct {
	mutex sync.Mutex
	level bool
	err   error
}

func (p *polledPin) Read() (bool, error) {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	return p.level, p.err
}

func (p *polledPin) set(level bool, err error) {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	p.level = level
	p.err = err
}

func receive(t *testing.T, ch <-chan Observation) (Observation, bool) {
	t.Helper()
	select {
	case o, ok := <-ch:
		return o, ok
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for observation")
		return Observation{}, false
	}
}

func TestWatchLevelsPolled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	pin := &polledPin{level: true}
	ch := WatchLevels(ctx, pin, time.Millisecond)

	o, ok := receive(t, ch)
	require.True(t, ok)
	assert.True(t, o.High, "initial level")

	pin.set(false, nil)
	o, ok = receive(t, ch)
	require.True(t, ok)
	assert.False(t, o.High)

	pin.set(true, nil)
	o, ok = receive(t, ch)
	require.True(t, ok)
	assert.True(t, o.High)

	cancel()
	for range ch {
		// Drain until closed
	}
}

func TestWatchLevelsReadError(t *testing.T) {
	pin := &polledPin{level: true}
	ch := WatchLevels(context.Background(), pin, time.Millisecond)
	_, ok := receive(t, ch)
	require.True(t, ok)

	pin.set(true, errors.Wrap(LineReadError, "test"))
	o, ok := receive(t, ch)
	require.True(t, ok)
	require.Error(t, o.Err)
	assert.True(t, IsLineRead(o.Err))

	_, ok = receive(t, ch)
	assert.False(t, ok, "channel must be closed after an error")
}

func TestWatchLevelsEdges(t *testing.T) {
	b := NewVirtualBridge()
	in, err := b.Input(17, EdgeBoth)
	require.NoError(t, err)
	ch := WatchLevels(context.Background(), in, 10*time.Millisecond)

	o, ok := receive(t, ch)
	require.True(t, ok)
	assert.True(t, o.High)

	b.SetLevel(17, false)
	o, ok = receive(t, ch)
	require.True(t, ok)
	assert.False(t, o.High)

	b.Remove(17)
	_, ok = receive(t, ch)
	assert.False(t, ok, "removal ends the source without an error")
}

func TestWatchLevelsCancelStopsPromptly(t *testing.T) {
	b := NewVirtualBridge()
	in, err := b.Input(17, EdgeBoth)
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	interval := 20 * time.Millisecond
	ch := WatchLevels(ctx, in, interval)
	_, ok := receive(t, ch)
	require.True(t, ok)

	start := time.Now()
	cancel()
	for range ch {
	}
	assert.Less(t, time.Since(start), 10*interval)
}
