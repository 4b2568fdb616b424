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
	"sync/atomic"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/binkynet/FanShim/pkg/metrics"
)

var (
	cmdDaemon = &cobra.Command{
		Use:   "daemon",
		Short: "Toggle the fan with the button and show its state on the LED",
		Long: `Run until interrupted.
A click on the button toggles the fan. The LED is green while the fan
is on and red while it is off. Holding the button turns the LED off.`,
		Args: cobra.NoArgs,
		RunE: runDaemon,
	}
	daemonOptions struct {
		brightness      float32
		metricsInterval time.Duration
	}
)

func init() {
	cmdDaemon.Flags().Float32Var(&daemonOptions.brightness, "brightness", 0.5, "Brightness of the LED in [0,1]")
	cmdDaemon.Flags().DurationVar(&daemonOptions.metricsInterval, "metrics-interval", time.Second*15, "Interval between updates of the metrics file")
	cmdMain.AddCommand(cmdDaemon)
}

// board is the part of the device the daemon controls.
type board interface {
	SetFan(on bool) error
	Fan() bool
	SetLED(red, green, blue uint8, brightness float32) error
}

// daemon toggles the fan on every click of the button.
// Its callbacks all run on the button worker.
type daemon struct {
	log        zerolog.Logger
	dev        board
	brightness float32
	held       atomic.Bool
}

func (d *daemon) onPress() {
	d.held.Store(false)
}

func (d *daemon) onHold() {
	d.held.Store(true)
	if err := d.dev.SetLED(0, 0, 0, 0); err != nil {
		d.log.Warn().Err(err).Msg("Failed to turn off LED")
	}
}

func (d *daemon) onRelease() {
	if d.held.Swap(false) {
		// Release ends a hold, not a click
		return
	}
	on := !d.dev.Fan()
	if err := d.dev.SetFan(on); err != nil {
		d.log.Warn().Err(err).Msg("Failed to switch fan")
		return
	}
	d.log.Info().Bool("on", on).Msg("Fan toggled")
	if err := d.showFan(); err != nil {
		d.log.Warn().Err(err).Msg("Failed to update LED")
	}
}

// showFan shows the fan state on the LED.
func (d *daemon) showFan() error {
	if d.dev.Fan() {
		return d.dev.SetLED(0, 0xff, 0, d.brightness)
	}
	return d.dev.SetLED(0xff, 0, 0, d.brightness)
}

func runDaemon(cmd *cobra.Command, args []string) error {
	log := newConsoleLogger()
	ctx, cancel := signalContext(log)
	defer cancel()

	dev, err := openDevice(log)
	if err != nil {
		return err
	}
	defer closeDevice(dev, log)

	d := &daemon{log: log, dev: dev, brightness: daemonOptions.brightness}
	if err := d.showFan(); err != nil {
		return err
	}
	cancelPress, err := dev.OnPress(d.onPress)
	if err != nil {
		return err
	}
	defer cancelPress()
	cancelRelease, err := dev.OnRelease(d.onRelease)
	if err != nil {
		return err
	}
	defer cancelRelease()
	cancelHold, err := dev.OnHold(d.onHold)
	if err != nil {
		return err
	}
	defer cancelHold()

	events, err := dev.Events(ctx)
	if err != nil {
		return err
	}
	log.Info().Msg("Daemon started")
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		// Events only tells when the button line goes away
		for range events {
		}
		if ctx.Err() == nil {
			cancel()
			if err := dev.Err(); err != nil {
				return errors.Wrap(err, "button line failed")
			}
			log.Warn().Msg("Button line ended")
		}
		return nil
	})
	if path := mainOptions.metricsFile; path != "" {
		g.Go(func() error {
			return writeMetricsPeriodically(ctx, path, daemonOptions.metricsInterval, log)
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	log.Info().Msg("Daemon stopped")
	return nil
}

// writeMetricsPeriodically rewrites the metrics file every interval
// until the context is canceled.
// Failures are logged; the next interval tries again.
func writeMetricsPeriodically(ctx context.Context, path string, interval time.Duration, log zerolog.Logger) error {
	if interval <= 0 {
		return errors.Errorf("metrics interval must be > 0, got %s", interval)
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if err := metrics.WriteTextfile(path); err != nil {
				log.Warn().Err(err).Str("path", path).Msg("Failed to write metrics")
			}
		}
	}
}
