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

package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBoard struct {
	fan bool
	led [4]float32
}

func (b *fakeBoard) SetFan(on bool) error {
	b.fan = on
	return nil
}

func (b *fakeBoard) Fan() bool { return b.fan }

func (b *fakeBoard) SetLED(red, green, blue uint8, brightness float32) error {
	b.led = [4]float32{float32(red), float32(green), float32(blue), brightness}
	return nil
}

func TestDaemonClickTogglesFan(t *testing.T) {
	b := &fakeBoard{fan: true}
	d := &daemon{log: zerolog.Nop(), dev: b, brightness: 0.5}
	require.NoError(t, d.showFan())
	assert.Equal(t, [4]float32{0, 0xff, 0, 0.5}, b.led)

	d.onPress()
	d.onRelease()
	assert.False(t, b.fan)
	assert.Equal(t, [4]float32{0xff, 0, 0, 0.5}, b.led)

	d.onPress()
	d.onRelease()
	assert.True(t, b.fan)
	assert.Equal(t, [4]float32{0, 0xff, 0, 0.5}, b.led)
}

func TestDaemonHoldTurnsLEDOff(t *testing.T) {
	b := &fakeBoard{fan: true}
	d := &daemon{log: zerolog.Nop(), dev: b, brightness: 0.5}

	d.onPress()
	d.onHold()
	assert.Equal(t, [4]float32{0, 0, 0, 0}, b.led)
	d.onRelease()
	assert.True(t, b.fan, "release after hold keeps the fan")
	assert.Equal(t, [4]float32{0, 0, 0, 0}, b.led)
}

func TestWriteMetricsPeriodically(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fanshim.prom")
	ctx, cancel := context.WithCancel(context.Background())
	result := make(chan error, 1)
	go func() {
		result <- writeMetricsPeriodically(ctx, path, 5*time.Millisecond, zerolog.Nop())
	}()

	require.Eventually(t, func() bool {
		_, err := os.Stat(path)
		return err == nil
	}, time.Second, 5*time.Millisecond)
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "fanshim_")

	cancel()
	select {
	case err := <-result:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("writer did not stop after cancel")
	}
}

func TestWriteMetricsPeriodicallyInvalidInterval(t *testing.T) {
	err := writeMetricsPeriodically(context.Background(), "unused", 0, zerolog.Nop())
	assert.Error(t, err)
}
