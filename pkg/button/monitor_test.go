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
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/binkynet/FanShim/pkg/bridge"
)

const (
	testButtonPin = 17
)

func newTestMonitor(t *testing.T, holdTime time.Duration) (*Monitor, *bridge.VirtualBridge) {
	t.Helper()
	b := bridge.NewVirtualBridge()
	in, err := b.Input(testButtonPin, bridge.EdgeBoth)
	require.NoError(t, err)
	cfg := Config{HoldTime: holdTime, PollInterval: 5 * time.Millisecond}
	m, err := NewMonitor(cfg, func(ctx context.Context) <-chan bridge.Observation {
		return bridge.WatchLevels(ctx, in, cfg.PollInterval)
	}, zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(m.Close)
	return m, b
}

func recordingHandlers(events chan<- Event) Handlers {
	return Handlers{
		Press:   []func(){func() { events <- Press }},
		Release: []func(){func() { events <- Release }},
		Hold:    []func(){func() { events <- Hold }},
	}
}

func nextEvent(t *testing.T, events <-chan Event) Event {
	t.Helper()
	select {
	case ev := <-events:
		return ev
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for event")
		return 0
	}
}

func TestMonitorDispatchesEvents(t *testing.T) {
	m, b := newTestMonitor(t, 50*time.Millisecond)
	events := make(chan Event, 8)
	require.NoError(t, m.Start(recordingHandlers(events)))
	assert.True(t, m.Running())

	// Give the session time to take its initial sample
	time.Sleep(20 * time.Millisecond)
	b.SetLevel(testButtonPin, false)
	assert.Equal(t, Press, nextEvent(t, events))
	assert.Equal(t, Hold, nextEvent(t, events))
	b.SetLevel(testButtonPin, true)
	assert.Equal(t, Release, nextEvent(t, events))

	require.NoError(t, m.Stop())
	assert.False(t, m.Running())
	b.SetLevel(testButtonPin, false)
	select {
	case ev := <-events:
		t.Fatalf("unexpected event %s after stop", ev)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestMonitorRestartReplacesHandlers(t *testing.T) {
	m, b := newTestMonitor(t, time.Second)
	first := make(chan Event, 8)
	second := make(chan Event, 8)
	require.NoError(t, m.Start(recordingHandlers(first)))
	require.NoError(t, m.Start(recordingHandlers(second)))
	assert.True(t, m.Running())

	time.Sleep(20 * time.Millisecond)
	b.SetLevel(testButtonPin, false)
	assert.Equal(t, Press, nextEvent(t, second))
	assert.Empty(t, first)
}

func TestMonitorRestartDuringPress(t *testing.T) {
	holdTime := 300 * time.Millisecond
	m, b := newTestMonitor(t, holdTime)
	first := make(chan Event, 8)
	second := make(chan Event, 8)
	require.NoError(t, m.Start(recordingHandlers(first)))

	time.Sleep(20 * time.Millisecond)
	pressedAt := time.Now()
	b.SetLevel(testButtonPin, false)
	assert.Equal(t, Press, nextEvent(t, first))

	time.Sleep(holdTime / 2)
	require.NoError(t, m.Start(recordingHandlers(second)))
	assert.Equal(t, Hold, nextEvent(t, second), "restart while down must not press again")
	assert.Less(t, time.Since(pressedAt), holdTime+holdTime/2, "hold keeps the deadline of the press")

	b.SetLevel(testButtonPin, true)
	assert.Equal(t, Release, nextEvent(t, second))
	assert.Empty(t, second)
}

func TestMonitorLineRemoved(t *testing.T) {
	m, b := newTestMonitor(t, time.Second)
	done := make(chan error, 1)
	h := recordingHandlers(make(chan Event, 8))
	h.Done = func(err error) { done <- err }
	require.NoError(t, m.Start(h))

	b.Remove(testButtonPin)
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("Done not called")
	}

	require.Eventually(t, func() bool { return !m.Running() }, time.Second, time.Millisecond)
	ended, err := m.Ended()
	assert.True(t, ended)
	assert.NoError(t, err)

	err = m.Start(h)
	require.Error(t, err)
	assert.True(t, IsStreamEnded(err))
}

func TestMonitorClosed(t *testing.T) {
	m, _ := newTestMonitor(t, time.Second)
	m.Close()
	err := m.Start(Handlers{})
	require.Error(t, err)
	assert.True(t, IsMonitorClosed(err))
	assert.True(t, IsMonitorClosed(m.Stop()))
}

func TestNewMonitorInvalidConfig(t *testing.T) {
	_, err := NewMonitor(Config{}, nil, zerolog.Nop())
	assert.True(t, IsInvalidConfig(err))
}
