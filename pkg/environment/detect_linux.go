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

package environment

import (
	"os"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/sys/unix"
)

const (
	sysfsGPIOPath = "/sys/class/gpio"
)

// AutoDetectBackend detects the default bridge backend based on the environment.
func AutoDetectBackend(log zerolog.Logger) string {
	var name unix.Utsname
	if err := unix.Uname(&name); err != nil {
		log.Debug().Err(err).Msg("uname failed, using virtual backend")
		return BackendVirtual
	}
	machine := unix.ByteSliceToString(name.Machine[:])
	_, err := os.Stat(sysfsGPIOPath)
	backend := selectBackend(machine, err == nil)
	log.Debug().
		Str("machine", machine).
		Str("backend", backend).
		Msg("Detected backend")
	return backend
}

// selectBackend picks a backend for the given machine architecture.
// Boards without the sysfs GPIO interface use the character device
// through periph.
func selectBackend(machine string, hasSysfs bool) string {
	machine = strings.ToLower(strings.TrimSpace(machine))
	if !strings.HasPrefix(machine, "arm") && machine != "aarch64" {
		return BackendVirtual
	}
	if hasSysfs {
		return BackendSysfs
	}
	return BackendPeriph
}
