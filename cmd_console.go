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
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/binkynet/FanShim/pkg/logging"
	"github.com/binkynet/FanShim/pkg/ui"
)

var (
	cmdConsole = &cobra.Command{
		Use:   "console",
		Short: "Show and control the board in a terminal UI",
		Args:  cobra.NoArgs,
		RunE:  runConsole,
	}
	consoleOptions struct {
		logFile string
	}
)

func init() {
	cmdConsole.Flags().StringVar(&consoleOptions.logFile, "log-file", "", "Also append logs (JSON) to this file")
	cmdMain.AddCommand(cmdConsole)
}

func runConsole(cmd *cobra.Command, args []string) error {
	// The terminal belongs to the UI, so logs are shown inside it
	queue := logging.NewQueueWriter(logging.DefaultQueueSize)
	var out io.Writer = zerolog.ConsoleWriter{Out: queue, NoColor: true}
	if path := consoleOptions.logFile; path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err != nil {
			return errors.Wrapf(err, "open log file %s failed", path)
		}
		defer f.Close()
		out = logging.NewMultiWriter(out, f)
	}
	log := newLogger(out)
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
	p := tea.NewProgram(ui.NewConsole(dev, events, queue.Lines()),
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return errors.Wrap(err, "console failed")
	}
	return nil
}
