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
	"strconv"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var (
	cmdLED = &cobra.Command{
		Use:   "led RED GREEN BLUE",
		Short: "Set the color of the LED",
		Args:  cobra.ExactArgs(3),
		RunE:  runLED,
	}
	ledOptions struct {
		brightness float32
	}
)

func init() {
	cmdLED.Flags().Float32Var(&ledOptions.brightness, "brightness", 1.0, "Brightness of the LED in [0,1]")
	cmdMain.AddCommand(cmdLED)
}

func runLED(cmd *cobra.Command, args []string) error {
	var rgb [3]uint8
	for i, arg := range args {
		v, err := strconv.ParseUint(arg, 0, 8)
		if err != nil {
			return errors.Wrapf(err, "invalid color component '%s'", arg)
		}
		rgb[i] = uint8(v)
	}
	log := newConsoleLogger()
	dev, err := openDevice(log)
	if err != nil {
		return err
	}
	defer closeDevice(dev, log)

	if err := dev.SetLED(rgb[0], rgb[1], rgb[2], ledOptions.brightness); err != nil {
		return err
	}
	log.Info().
		Uint8("red", rgb[0]).
		Uint8("green", rgb[1]).
		Uint8("blue", rgb[2]).
		Float32("brightness", ledOptions.brightness).
		Msg("LED set")
	return nil
}
