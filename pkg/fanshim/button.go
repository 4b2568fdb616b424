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
	"sort"
	"sync"

	"github.com/binkynet/FanShim/pkg/button"
)

const (
	eventsBufferSize = 16
)

// OnPress registers a callback that is invoked when the button is pressed.
// Callbacks run on the button worker, one at a time, and must not
// register or cancel callbacks themselves.
// The returned function cancels the registration.
func (d *Device) OnPress(cb func()) (func(), error) {
	return d.register(registration{press: cb})
}

// OnRelease registers a callback that is invoked when the button is released.
func (d *Device) OnRelease(cb func()) (func(), error) {
	return d.register(registration{release: cb})
}

// OnHold registers a callback that is invoked when the button has been
// held down for the configured hold time.
func (d *Device) OnHold(cb func()) (func(), error) {
	return d.register(registration{hold: cb})
}

// Events returns a channel of all button events.
// The channel is closed when the given context is canceled, the button
// line ended or the device is closed. Use Err to find out why the
// line ended.
// The consumer must keep reading the channel until ctx is canceled.
func (d *Device) Events(ctx context.Context) (<-chan button.Event, error) {
	events := make(chan button.Event, eventsBufferSize)
	finished := make(chan struct{})
	var once sync.Once
	closeEvents := func(error) {
		once.Do(func() {
			close(events)
			close(finished)
		})
	}
	send := func(ev button.Event) func() {
		return func() {
			select {
			case events <- ev:
			case <-ctx.Done():
			case <-d.closing:
			}
		}
	}
	cancel, err := d.register(registration{
		press:   send(button.Press),
		release: send(button.Release),
		hold:    send(button.Hold),
		done:    closeEvents,
	})
	if err != nil {
		return nil, maskAny(err)
	}
	go func() {
		select {
		case <-ctx.Done():
		case <-d.closing:
		case <-finished:
		}
		// No callback runs once cancel returns
		cancel()
		closeEvents(nil)
	}()
	return events, nil
}

// register adds a registration and restarts monitoring with
// the new set of callbacks.
func (d *Device) register(r registration) (func(), error) {
	d.regMutex.Lock()
	defer d.regMutex.Unlock()

	if d.closed {
		return nil, maskAny(DeviceClosedError)
	}
	id := d.nextID
	d.nextID++
	d.registrations[id] = r
	if err := d.restartMonitor(); err != nil {
		delete(d.registrations, id)
		buttonRegistrationsGauge.Set(float64(len(d.registrations)))
		return nil, maskAny(err)
	}
	var once sync.Once
	return func() {
		once.Do(func() { d.unregister(id) })
	}, nil
}

// unregister removes a registration and restarts monitoring with
// the remaining callbacks (if any).
func (d *Device) unregister(id int) {
	d.regMutex.Lock()
	defer d.regMutex.Unlock()

	if d.closed {
		return
	}
	delete(d.registrations, id)
	if err := d.restartMonitor(); err != nil {
		if button.IsStreamEnded(err) {
			return
		}
		d.log.Warn().Err(err).Msg("Failed to restart button monitor")
	}
}

// restartMonitor starts a new monitoring session with a snapshot of
// all registrations, or stops monitoring when there are none.
// Requires regMutex to be held.
func (d *Device) restartMonitor() error {
	buttonRegistrationsGauge.Set(float64(len(d.registrations)))
	if len(d.registrations) == 0 {
		return maskAny(d.monitor.Stop())
	}
	ids := make([]int, 0, len(d.registrations))
	for id := range d.registrations {
		ids = append(ids, id)
	}
	// Callbacks run in registration order
	sort.Ints(ids)
	var h button.Handlers
	var done []func(error)
	for _, id := range ids {
		r := d.registrations[id]
		if r.press != nil {
			h.Press = append(h.Press, r.press)
		}
		if r.release != nil {
			h.Release = append(h.Release, r.release)
		}
		if r.hold != nil {
			h.Hold = append(h.Hold, r.hold)
		}
		if r.done != nil {
			done = append(done, r.done)
		}
	}
	h.Done = func(err error) {
		for _, cb := range done {
			cb(err)
		}
	}
	return maskAny(d.monitor.Start(h))
}
