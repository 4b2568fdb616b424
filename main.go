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
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/pkg/errors"
	terminate "github.com/pulcy/go-terminate"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/binkynet/FanShim/pkg/apa102"
	"github.com/binkynet/FanShim/pkg/bridge"
	"github.com/binkynet/FanShim/pkg/environment"
	"github.com/binkynet/FanShim/pkg/fanshim"
	"github.com/binkynet/FanShim/pkg/metrics"
)

const (
	projectName = "Fan SHIM driver"
)

var (
	projectVersion = "dev"
	projectBuild   = "dev"
	maskAny        = errors.WithStack
)

var (
	cmdMain = &cobra.Command{
		Use:           "fanshim",
		Short:         "Control the fan, LED and button of a Fan SHIM",
		Version:       fmt.Sprintf("%s (build %s)", projectVersion, projectBuild),
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	mainOptions struct {
		level            string
		backend          string
		holdTime         time.Duration
		pollInterval     time.Duration
		dwell            time.Duration
		startPulses      int
		endPulses        int
		endFrame         string
		brightnessPolicy string
		metricsFile      string
	}
)

func init() {
	addDeviceFlags(cmdMain.PersistentFlags())
}

// addDeviceFlags adds the flags that configure the board.
func addDeviceFlags(f *pflag.FlagSet) {
	defaults := fanshim.DefaultConfig()
	f.StringVarP(&mainOptions.level, "level", "l", "info", "Set log level")
	f.StringVarP(&mainOptions.backend, "backend", "b", environment.BackendAuto, "GPIO backend to use (auto|sysfs|periph|virtual)")
	f.DurationVar(&mainOptions.holdTime, "hold-time", defaults.Button.HoldTime, "Time the button must be held down to fire a hold")
	f.DurationVar(&mainOptions.pollInterval, "poll-interval", defaults.Button.PollInterval, "Interval between button samples")
	f.DurationVar(&mainOptions.dwell, "dwell", defaults.LED.Dwell, "Time between LED clock edges")
	f.IntVar(&mainOptions.startPulses, "start-pulses", defaults.LED.StartPulses, "Number of clock pulses of the LED start frame")
	f.IntVar(&mainOptions.endPulses, "end-pulses", defaults.LED.EndPulses, "Number of clock pulses of the LED end frame")
	f.StringVar(&mainOptions.endFrame, "end-frame", "high", "Level of the data line during the LED end frame (high|low)")
	f.StringVar(&mainOptions.brightnessPolicy, "brightness-policy", apa102.Clamp.String(), "Handling of brightness outside [0,1] (clamp|wrap)")
	f.StringVar(&mainOptions.metricsFile, "metrics-file", "", "Write metrics to this file (prometheus text format) on exit")
}

func main() {
	err := cmdMain.Execute()
	if path := mainOptions.metricsFile; path != "" {
		if werr := metrics.WriteTextfile(path); werr != nil {
			fmt.Fprintf(os.Stderr, "Failed to write metrics to %s: %v\n", path, werr)
		}
	}
	if err != nil {
		Exitf("%s failed: %v\n", projectName, err)
	}
}

// newLogger creates a logger at the configured level writing to out.
func newLogger(out io.Writer) zerolog.Logger {
	logger := zerolog.New(out).With().Timestamp().Logger()
	if level, err := zerolog.ParseLevel(mainOptions.level); err == nil {
		logger = logger.Level(level)
	} else {
		logger.Warn().Str("level", mainOptions.level).Msg("Unknown log level, using info")
		logger = logger.Level(zerolog.InfoLevel)
	}
	return logger
}

// newConsoleLogger creates a human friendly logger on stderr.
func newConsoleLogger() zerolog.Logger {
	return newLogger(zerolog.ConsoleWriter{Out: os.Stderr})
}

// buildConfig creates the device configuration from the flags.
func buildConfig() (fanshim.Config, error) {
	cfg := fanshim.DefaultConfig()
	cfg.Button.HoldTime = mainOptions.holdTime
	cfg.Button.PollInterval = mainOptions.pollInterval
	cfg.LED.Dwell = mainOptions.dwell
	cfg.LED.StartPulses = mainOptions.startPulses
	cfg.LED.EndPulses = mainOptions.endPulses
	switch strings.ToLower(mainOptions.endFrame) {
	case "high":
		cfg.LED.EndFrameLevel = apa102.EndFrameHigh
	case "low":
		cfg.LED.EndFrameLevel = apa102.EndFrameLow
	default:
		return cfg, errors.Wrapf(fanshim.InvalidConfigError, "unknown end frame level '%s' (high|low)", mainOptions.endFrame)
	}
	switch strings.ToLower(mainOptions.brightnessPolicy) {
	case apa102.Clamp.String():
		cfg.LED.Brightness = apa102.Clamp
	case apa102.Wrap.String():
		cfg.LED.Brightness = apa102.Wrap
	default:
		return cfg, errors.Wrapf(fanshim.InvalidConfigError, "unknown brightness policy '%s' (clamp|wrap)", mainOptions.brightnessPolicy)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, maskAny(err)
	}
	return cfg, nil
}

// newBridge opens the configured GPIO backend.
func newBridge(log zerolog.Logger) (bridge.API, error) {
	backend := mainOptions.backend
	if backend == environment.BackendAuto {
		backend = environment.AutoDetectBackend(log)
	}
	log.Debug().Str("backend", backend).Msg("Opening GPIO backend")
	switch backend {
	case environment.BackendSysfs:
		br, err := bridge.NewSysfsBridge()
		if err != nil {
			return nil, errors.Wrap(err, "initialize sysfs bridge failed")
		}
		return br, nil
	case environment.BackendPeriph:
		br, err := bridge.NewPeriphBridge()
		if err != nil {
			return nil, errors.Wrap(err, "initialize periph bridge failed")
		}
		return br, nil
	case environment.BackendVirtual:
		log.Warn().Msg("Using virtual GPIO backend, no hardware is controlled")
		return bridge.NewVirtualBridge(), nil
	default:
		return nil, errors.Wrapf(fanshim.InvalidConfigError, "unknown backend '%s' (%s)", backend,
			strings.Join(append([]string{environment.BackendAuto}, environment.Backends...), "|"))
	}
}

// openDevice opens the board with the configuration from the flags.
func openDevice(log zerolog.Logger) (*fanshim.Device, error) {
	cfg, err := buildConfig()
	if err != nil {
		return nil, err
	}
	br, err := newBridge(log)
	if err != nil {
		return nil, err
	}
	dev, err := fanshim.New(br, cfg, log)
	if err != nil {
		return nil, errors.Wrap(err, "open device failed")
	}
	return dev, nil
}

// closeDevice closes the given device, logging failures.
func closeDevice(dev *fanshim.Device, log zerolog.Logger) {
	if err := dev.Close(); err != nil {
		log.Warn().Err(err).Msg("Failed to close device")
	}
}

// signalContext returns a context that is canceled on SIGINT/SIGTERM.
func signalContext(log zerolog.Logger) (context.Context, context.CancelFunc) {
	// Prepare to shutdown in a controlled manor
	ctx, cancel := context.WithCancel(context.Background())
	t := terminate.NewTerminator(func(template string, args ...interface{}) {
		log.Info().Msgf(template, args...)
	}, cancel)
	go t.ListenSignals()
	return ctx, cancel
}

// Print the given error message and exit with code 1
func Exitf(message string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, message, args...)
	os.Exit(1)
}
