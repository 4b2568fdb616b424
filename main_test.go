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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/binkynet/FanShim/pkg/apa102"
	"github.com/binkynet/FanShim/pkg/fanshim"
)

func TestBuildConfigFromFlags(t *testing.T) {
	require.NoError(t, cmdMain.ParseFlags([]string{
		"--end-frame=low",
		"--brightness-policy=wrap",
		"--start-pulses=36",
		"--hold-time=3s",
	}))
	t.Cleanup(func() {
		mainOptions.endFrame = "high"
		mainOptions.brightnessPolicy = apa102.Clamp.String()
		mainOptions.startPulses = apa102.DefaultStartPulses
		mainOptions.holdTime = fanshim.DefaultConfig().Button.HoldTime
	})

	cfg, err := buildConfig()
	require.NoError(t, err)
	assert.Equal(t, apa102.EndFrameLow, cfg.LED.EndFrameLevel)
	assert.Equal(t, apa102.Wrap, cfg.LED.Brightness)
	assert.Equal(t, 36, cfg.LED.StartPulses)
	assert.Equal(t, "3s", cfg.Button.HoldTime.String())
}

func TestBuildConfigInvalid(t *testing.T) {
	saved := mainOptions.endFrame
	mainOptions.endFrame = "middle"
	t.Cleanup(func() { mainOptions.endFrame = saved })

	_, err := buildConfig()
	require.Error(t, err)
	assert.True(t, fanshim.IsInvalidConfig(err))
}

func TestNewBridgeUnknown(t *testing.T) {
	saved := mainOptions.backend
	mainOptions.backend = "gpiochip"
	t.Cleanup(func() { mainOptions.backend = saved })

	_, err := newBridge(newConsoleLogger())
	require.Error(t, err)
	assert.True(t, fanshim.IsInvalidConfig(err))
}
