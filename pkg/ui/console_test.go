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

package ui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/binkynet/FanShim/pkg/button"
)

type fakeDevice struct {
	fan     bool
	led     [3]uint8
	bright  float32
	ledErr  error
	fanSets int
}

func (d *fakeDevice) SetFan(on bool) error {
	d.fan = on
	d.fanSets++
	return nil
}

func (d *fakeDevice) Fan() bool { return d.fan }

func (d *fakeDevice) SetLED(red, green, blue uint8, brightness float32) error {
	if d.ledErr != nil {
		return d.ledErr
	}
	d.led = [3]uint8{red, green, blue}
	d.bright = brightness
	return nil
}

func keyPress(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update(t *testing.T, c Console, msg tea.Msg) Console {
	t.Helper()
	m, _ := c.Update(msg)
	result, ok := m.(Console)
	require.True(t, ok)
	return result
}

func TestConsoleToggleFan(t *testing.T) {
	d := &fakeDevice{fan: true}
	c := NewConsole(d, nil, nil)
	c = update(t, c, keyPress("f"))
	assert.False(t, d.fan)
	c = update(t, c, keyPress("f"))
	assert.True(t, d.fan)
	assert.Equal(t, 2, d.fanSets)
	assert.Contains(t, c.View(), "on")
}

func TestConsoleLED(t *testing.T) {
	d := &fakeDevice{}
	c := NewConsole(d, nil, nil)
	c = update(t, c, keyPress("g"))
	assert.Equal(t, [3]uint8{0, 0xff, 0}, d.led)
	assert.Equal(t, float32(1), d.bright)

	c = update(t, c, keyPress("-"))
	assert.Equal(t, [3]uint8{0, 0xff, 0}, d.led)
	assert.InDelta(t, 0.9, d.bright, 0.001)
	c = update(t, c, keyPress("+"))
	c = update(t, c, keyPress("+"))
	assert.Equal(t, float32(1), d.bright, "brightness stays within range")

	c = update(t, c, keyPress("o"))
	assert.Equal(t, [3]uint8{0, 0, 0}, d.led)
	assert.Contains(t, c.View(), "#000000")
}

func TestConsoleLEDFailure(t *testing.T) {
	d := &fakeDevice{ledErr: errors.New("line write failed")}
	c := NewConsole(d, nil, nil)
	c = update(t, c, keyPress("r"))
	assert.Contains(t, c.View(), "line write failed")
	assert.Equal(t, uint8(0), c.red, "state unchanged on failure")
}

func TestConsoleButtonEvents(t *testing.T) {
	events := make(chan button.Event, 1)
	c := NewConsole(&fakeDevice{}, events, nil)
	now := time.Now()
	c.now = func() time.Time { return now }
	assert.Contains(t, c.View(), "no events yet")

	events <- button.Hold
	msg := waitForEvent(events)()
	require.IsType(t, ButtonEventMsg{}, msg)
	ev := msg.(ButtonEventMsg)
	ev.Time = now.Add(-3 * time.Second)
	c = update(t, c, ev)
	assert.Contains(t, c.View(), "hold 3 seconds ago")

	close(events)
	c = update(t, c, waitForEvent(events)())
	assert.Contains(t, c.View(), "button line ended")
}

func TestConsoleLogLines(t *testing.T) {
	c := NewConsole(&fakeDevice{}, nil, nil)
	c = update(t, c, tea.WindowSizeMsg{Width: 80, Height: 24})
	for i := 0; i < maxLogLines+5; i++ {
		c = update(t, c, LogLineMsg("line"))
	}
	assert.Len(t, c.history, maxLogLines)
	c = update(t, c, LogLineMsg("newest"))
	assert.Contains(t, c.View(), "newest")
}

func TestConsoleQuit(t *testing.T) {
	c := NewConsole(&fakeDevice{}, nil, nil)
	_, cmd := c.Update(keyPress("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}
