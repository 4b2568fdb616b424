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

package apa102

import (
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/binkynet/FanShim/pkg/bridge"
)

// Writer renders colors onto a two-wire (data/clock) LED bus.
type Writer struct {
	mutex sync.Mutex
	log   zerolog.Logger
	data  bridge.OutputPin
	clock bridge.OutputPin
	cfg   Config
}

// NewWriter creates a writer for the LED connected to the given
// data and clock pins.
func NewWriter(data, clock bridge.OutputPin, cfg Config, log zerolog.Logger) (*Writer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, maskAny(err)
	}
	return &Writer{
		log:   log.With().Str("component", "apa102").Logger(),
		data:  data,
		clock: clock,
		cfg:   cfg,
	}, nil
}

// Config returns the configuration of the writer.
func (w *Writer) Config() Config {
	return w.cfg
}

// Write a single color to the LED.
// The complete frame is written while holding the bus; the first failed
// line write aborts the frame and is returned.
func (w *Writer) Write(c Color) error {
	w.mutex.Lock()
	defer w.mutex.Unlock()

	frame := Encode(c, w.cfg.Brightness)
	if err := w.writeFrame(frame); err != nil {
		framesFailedTotal.Inc()
		w.log.Debug().Err(err).Msg("LED frame aborted")
		return err
	}
	framesWrittenTotal.Inc()
	w.log.Debug().
		Uint8("red", c.Red).
		Uint8("green", c.Green).
		Uint8("blue", c.Blue).
		Uint8("brightness", frame[0]&brightnessMask).
		Msg("LED frame written")
	return nil
}

// writeFrame writes start frame, LED data frame and end frame.
// The bus must be held when calling this function.
func (w *Writer) writeFrame(frame [4]byte) error {
	// Start frame
	if err := w.data.Write(false); err != nil {
		return maskAny(err)
	}
	if err := w.pulses(w.cfg.StartPulses); err != nil {
		return err
	}
	// LED frame
	for _, b := range frame {
		if err := w.writeByte(b); err != nil {
			return err
		}
	}
	// End frame
	if err := w.data.Write(bool(w.cfg.EndFrameLevel)); err != nil {
		return maskAny(err)
	}
	if err := w.pulses(w.cfg.EndPulses); err != nil {
		return err
	}
	return nil
}

// writeByte writes a single byte, most significant bit first.
func (w *Writer) writeByte(b byte) error {
	for _, bit := range Bits(b) {
		if err := w.data.Write(bit); err != nil {
			return maskAny(err)
		}
		if err := w.pulse(); err != nil {
			return err
		}
	}
	return nil
}

// pulses emits the given number of clock pulses.
func (w *Writer) pulses(count int) error {
	for i := 0; i < count; i++ {
		if err := w.pulse(); err != nil {
			return err
		}
	}
	return nil
}

// pulse raises and lowers the clock line, with a dwell after each edge.
func (w *Writer) pulse() error {
	if err := w.clock.Write(true); err != nil {
		return maskAny(err)
	}
	w.dwell()
	if err := w.clock.Write(false); err != nil {
		return maskAny(err)
	}
	w.dwell()
	clockPulsesTotal.Inc()
	return nil
}

func (w *Writer) dwell() {
	if d := w.cfg.Dwell; d > 0 {
		time.Sleep(d)
	}
}
