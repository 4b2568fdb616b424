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
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var (
	cmdFan = &cobra.Command{
		Use:       "fan on|off",
		Short:     "Switch the fan on or off",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"on", "off"},
		RunE:      runFan,
	}
)

func init() {
	cmdMain.AddCommand(cmdFan)
}

func runFan(cmd *cobra.Command, args []string) error {
	var on bool
	switch strings.ToLower(args[0]) {
	case "on", "1", "true":
		on = true
	case "off", "0", "false":
		on = false
	default:
		return errors.Errorf("unknown fan state '%s' (on|off)", args[0])
	}
	log := newConsoleLogger()
	dev, err := openDevice(log)
	if err != nil {
		return err
	}
	defer closeDevice(dev, log)

	if err := dev.SetFan(on); err != nil {
		return err
	}
	log.Info().Bool("on", on).Msg("Fan set")
	return nil
}
