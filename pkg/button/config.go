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
	"time"

	"github.com/pkg/errors"

	"github.com/binkynet/FanShim/pkg/bridge"
)

const (
	// DefaultHoldTime is the time a button must stay down to fire a hold.
	DefaultHoldTime = time.Second * 2
)

// Config of the button event stream.
type Config struct {
	// Time the button must stay down to fire a hold.
	HoldTime time.Duration
	// Interval between samples (polled lines) or cancellation checks
	// (edge triggered lines).
	PollInterval time.Duration
}

// DefaultConfig returns the default button configuration.
func DefaultConfig() Config {
	return Config{
		HoldTime:     DefaultHoldTime,
		PollInterval: bridge.DefaultPollInterval,
	}
}

// Validate the configuration.
func (c Config) Validate() error {
	if c.HoldTime <= 0 {
		return errors.Wrapf(InvalidConfigError, "hold time must be > 0, got %s", c.HoldTime)
	}
	if c.PollInterval <= 0 {
		return errors.Wrapf(InvalidConfigError, "poll interval must be > 0, got %s", c.PollInterval)
	}
	return nil
}
