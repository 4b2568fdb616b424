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
	"fmt"

	"github.com/spf13/cobra"
)

var (
	cmdButton = &cobra.Command{
		Use:   "button",
		Short: "Print button events until interrupted",
		Args:  cobra.NoArgs,
		RunE:  runButton,
	}
)

func init() {
	cmdMain.AddCommand(cmdButton)
}

func runButton(cmd *cobra.Command, args []string) error {
	log := newConsoleLogger()
	ctx, cancel := signalContext(log)
	defer cancel()

	dev, err := openDevice(log)
	if err != nil {
		return err
	}
	defer closeDevice(dev, log)

	events, err := dev.Events(ctx)
	if err != nil {
		return err
	}
	for ev := range events {
		fmt.Fprintln(cmd.OutOrStdout(), ev)
	}
	if err := dev.Err(); err != nil {
		return err
	}
	return nil
}
