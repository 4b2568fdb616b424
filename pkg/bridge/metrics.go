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

package bridge

import (
	"strconv"

	"github.com/binkynet/FanShim/pkg/metrics"
)

const (
	subSystem = "bridge"
)

var (
	// Total number of writes to output pins
	lineWritesTotal = metrics.MustRegisterCounterVec(subSystem,
		"line_writes_total",
		"Total number of writes to output pins",
		"pin")
	// Total number of failed writes to output pins
	lineWriteErrorsTotal = metrics.MustRegisterCounterVec(subSystem,
		"line_write_errors_total",
		"Total number of failed writes to output pins",
		"pin")
	// Total number of failed reads of input pins
	lineReadErrorsTotal = metrics.MustRegisterCounterVec(subSystem,
		"line_read_errors_total",
		"Total number of failed reads of input pins",
		"pin")
)

func pinLabel(pinNumber int) string {
	return strconv.Itoa(pinNumber)
}
