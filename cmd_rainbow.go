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
	"time"

	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/spf13/cobra"
)

var (
	cmdRainbow = &cobra.Command{
		Use:   "rainbow",
		Short: "Cycle the LED through all hues until interrupted",
		Args:  cobra.NoArgs,
		RunE:  runRainbow,
	}
	rainbowOptions struct {
		interval   time.Duration
		brightness float32
	}
)

func init() {
	cmdRainbow.Flags().DurationVar(&rainbowOptions.interval, "interval", time.Millisecond*100, "Time between hue steps")
	cmdRainbow.Flags().Float32Var(&rainbowOptions.brightness, "brightness", 1.0, "Brightness of the LED in [0,1]")
	cmdMain.AddCommand(cmdRainbow)
}

func runRainbow(cmd *cobra.Command, args []string) error {
	log := newConsoleLogger()
	ctx, cancel := signalContext(log)
	defer cancel()

	dev, err := openDevice(log)
	if err != nil {
		return err
	}
	defer closeDevice(dev, log)

	ticker := time.NewTicker(rainbowOptions.interval)
	defer ticker.Stop()
	hue := 0
	for {
		c := colorful.Hsl(float64(hue), 1, 0.5)
		if err := dev.SetLEDColor(c, rainbowOptions.brightness); err != nil {
			return err
		}
		log.Debug().Int("hue", hue).Str("color", c.Clamped().Hex()).Msg("Hue")
		hue = (hue + 1) % 360
		select {
		case <-ctx.Done():
			// Leave the LED dark
			return dev.SetLED(0, 0, 0, 0)
		case <-ticker.C:
			// Next hue
		}
	}
}
