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

package fanshim

import (
	"context"
	"sync"

	aerr "github.com/ewoutp/go-aggregate-error"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/binkynet/FanShim/pkg/apa102"
	"github.com/binkynet/FanShim/pkg/bridge"
	"github.com/binkynet/FanShim/pkg/button"
)

// Device controls a single Fan SHIM board: fan switch, LED and button.
type Device struct {
	log     zerolog.Logger
	cfg     Config
	api     bridge.API
	fan     bridge.OutputPin
	led     *apa102.Writer
	monitor *button.Monitor

	outputMutex sync.Mutex
	fanOn       bool

	regMutex      sync.Mutex
	nextID        int
	registrations map[int]registration
	closed        bool
	closing       chan struct{}
}

type registration struct {
	press   func()
	release func()
	hold    func()
	// Called when the button line ended or the device is closed
	done func(err error)
}

// New claims all lines of the board through the given API.
// When any line cannot be claimed, the API is closed (releasing lines
// that were already claimed) and a LineExportError is returned.
func New(api bridge.API, cfg Config, log zerolog.Logger) (*Device, error) {
	if err := cfg.Validate(); err != nil {
		return nil, maskAny(err)
	}
	log = log.With().Str("component", "fanshim").Logger()
	fail := func(err error) (*Device, error) {
		if cerr := api.Close(); cerr != nil {
			log.Warn().Err(cerr).Msg("Failed to release lines")
		}
		return nil, maskAny(err)
	}
	fan, err := api.Output(cfg.FanPin, cfg.FanDefault)
	if err != nil {
		return fail(err)
	}
	data, err := api.Output(cfg.DataPin, false)
	if err != nil {
		return fail(err)
	}
	clock, err := api.Output(cfg.ClockPin, false)
	if err != nil {
		return fail(err)
	}
	buttonPin, err := api.Input(cfg.ButtonPin, bridge.EdgeBoth)
	if err != nil {
		return fail(err)
	}
	led, err := apa102.NewWriter(data, clock, cfg.LED, log)
	if err != nil {
		return fail(err)
	}
	interval := cfg.Button.PollInterval
	monitor, err := button.NewMonitor(cfg.Button, func(ctx context.Context) <-chan bridge.Observation {
		return bridge.WatchLevels(ctx, buttonPin, interval)
	}, log)
	if err != nil {
		return fail(err)
	}
	setFanGauge(cfg.FanDefault)
	log.Debug().
		Int("fan", cfg.FanPin).
		Int("data", cfg.DataPin).
		Int("clock", cfg.ClockPin).
		Int("button", cfg.ButtonPin).
		Msg("Claimed lines")
	return &Device{
		log:           log,
		cfg:           cfg,
		api:           api,
		fan:           fan,
		led:           led,
		monitor:       monitor,
		fanOn:         cfg.FanDefault,
		registrations: make(map[int]registration),
		closing:       make(chan struct{}),
	}, nil
}

// Config returns the configuration of the device.
func (d *Device) Config() Config {
	return d.cfg
}

// Err returns the error that ended the button line, if any.
func (d *Device) Err() error {
	_, err := d.monitor.Ended()
	return err
}

// Close stops button monitoring and releases all lines.
// Pending Events channels are closed.
func (d *Device) Close() error {
	d.regMutex.Lock()
	if d.closed {
		d.regMutex.Unlock()
		return nil
	}
	d.closed = true
	close(d.closing)
	regs := d.registrations
	d.registrations = make(map[int]registration)
	// Callbacks may no longer run once the monitor is closed,
	// so keep registrations out until then.
	d.monitor.Close()
	d.regMutex.Unlock()

	buttonRegistrationsGauge.Set(0)
	for _, r := range regs {
		if r.done != nil {
			r.done(nil)
		}
	}

	var ae aerr.AggregateError
	if err := d.api.Close(); err != nil {
		ae.Add(errors.Wrap(err, "release lines failed"))
	}
	d.log.Debug().Msg("Device closed")
	return ae.AsError()
}
