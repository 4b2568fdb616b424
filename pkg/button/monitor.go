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

package button

import (
	"context"
	"sync"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/binkynet/FanShim/pkg/bridge"
)

// SourceFunc opens a stream of raw levels of the button line.
// The stream must close soon after the given context is canceled.
type SourceFunc func(ctx context.Context) <-chan bridge.Observation

// Handlers is the set of callbacks a monitoring session runs with.
// It is captured when the session starts and never changes while it
// runs. Callbacks are invoked on the worker and must not call back
// into the monitor.
type Handlers struct {
	Press   []func()
	Release []func()
	Hold    []func()
	// Done is called when the button line ended or failed.
	// It is not called when the session is stopped.
	Done func(err error)
}

// Monitor runs button monitoring sessions on a single owned worker
// that is controlled through a command channel.
type Monitor struct {
	log      zerolog.Logger
	cfg      Config
	source   SourceFunc
	machine  *Machine
	commands chan command
	quit     chan struct{}
	stopped  chan struct{}
	quitOnce sync.Once

	mutex   sync.Mutex
	running bool
	ended   bool
	endErr  error
}

type command struct {
	start    bool
	handlers Handlers
	result   chan error
}

type session struct {
	handlers    Handlers
	cancel      context.CancelFunc
	done        chan struct{}
	err         error
	sourceEnded bool
}

// NewMonitor creates a monitor reading levels from the given source
// and starts its worker.
func NewMonitor(cfg Config, source SourceFunc, log zerolog.Logger) (*Monitor, error) {
	if err := cfg.Validate(); err != nil {
		return nil, maskAny(err)
	}
	m := &Monitor{
		log:      log.With().Str("component", "button").Logger(),
		cfg:      cfg,
		source:   source,
		machine:  NewMachine(cfg.HoldTime),
		commands: make(chan command),
		quit:     make(chan struct{}),
		stopped:  make(chan struct{}),
	}
	go m.run()
	return m, nil
}

// Start monitoring with the given handlers.
// A running session is stopped first.
func (m *Monitor) Start(h Handlers) error {
	return m.send(command{start: true, handlers: h})
}

// Stop the running session, if any.
// Returns once the session no longer reads the button line.
func (m *Monitor) Stop() error {
	return m.send(command{start: false})
}

// Close stops the worker.
func (m *Monitor) Close() {
	m.quitOnce.Do(func() { close(m.quit) })
	<-m.stopped
}

// Running returns true while a session is active.
func (m *Monitor) Running() bool {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	return m.running
}

// Ended returns true once the button line ended, together with the
// error that ended it (if any).
func (m *Monitor) Ended() (bool, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	return m.ended, m.endErr
}

func (m *Monitor) send(cmd command) error {
	cmd.result = make(chan error, 1)
	select {
	case m.commands <- cmd:
		// Command accepted
	case <-m.stopped:
		return maskAny(MonitorClosedError)
	}
	select {
	case err := <-cmd.result:
		return err
	case <-m.stopped:
		return maskAny(MonitorClosedError)
	}
}

// run is the worker loop.
func (m *Monitor) run() {
	defer close(m.stopped)
	var current *session
	for {
		var sessionDone chan struct{}
		if current != nil {
			sessionDone = current.done
		}
		select {
		case <-m.quit:
			if current != nil {
				m.stopSession(current)
			}
			return
		case cmd := <-m.commands:
			if current != nil {
				m.stopSession(current)
				current = nil
			}
			if !cmd.start {
				cmd.result <- nil
				continue
			}
			if ended, _ := m.Ended(); ended {
				cmd.result <- errors.Wrap(StreamEndedError, "button line no longer available")
				continue
			}
			current = m.startSession(cmd.handlers)
			cmd.result <- nil
		case <-sessionDone:
			m.finishSession(current)
			current = nil
		}
	}
}

// startSession launches a session with the given handlers.
func (m *Monitor) startSession(h Handlers) *session {
	ctx, cancel := context.WithCancel(context.Background())
	s := &session{
		handlers: h,
		cancel:   cancel,
		done:     make(chan struct{}),
	}
	m.setRunning(true)
	sessionsStartedTotal.Inc()
	m.log.Debug().
		Int("press", len(h.Press)).
		Int("release", len(h.Release)).
		Int("hold", len(h.Hold)).
		Msg("starting button session")
	go func() {
		defer close(s.done)
		levels := m.source(ctx)
		// The machine outlives sessions, so a restart during a press
		// neither presses again nor restarts the hold time.
		err := WatchMachine(ctx, levels, m.machine, func(ev Event) {
			eventsTotal.WithLabelValues(ev.String()).Inc()
			m.log.Debug().Str("event", ev.String()).Msg("button event")
			s.dispatch(ev)
		})
		s.err = err
		s.sourceEnded = ctx.Err() == nil
		cancel()
		// Wait for the source to let go of the line
		for range levels {
		}
	}()
	return s
}

// stopSession cancels the given session and waits for it to finish.
func (m *Monitor) stopSession(s *session) {
	s.cancel()
	<-s.done
	if s.sourceEnded {
		// Ended by itself before it noticed the stop
		m.finishSession(s)
		return
	}
	m.setRunning(false)
	m.log.Debug().Msg("button session stopped")
}

// finishSession records the end of the button line.
func (m *Monitor) finishSession(s *session) {
	m.mutex.Lock()
	m.running = false
	m.ended = true
	m.endErr = s.err
	m.mutex.Unlock()
	if s.err != nil {
		m.log.Warn().Err(s.err).Msg("button line failed")
	} else {
		m.log.Info().Msg("button line ended")
	}
	if s.handlers.Done != nil {
		s.handlers.Done(s.err)
	}
}

func (m *Monitor) setRunning(running bool) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.running = running
}

func (s *session) dispatch(ev Event) {
	var callbacks []func()
	switch ev {
	case Press:
		callbacks = s.handlers.Press
	case Release:
		callbacks = s.handlers.Release
	case Hold:
		callbacks = s.handlers.Hold
	}
	for _, cb := range callbacks {
		cb()
	}
}
