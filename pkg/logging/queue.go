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

package logging

import (
	"io"
	"strings"

	"github.com/binkynet/FanShim/pkg/metrics"
)

// QueueWriter is a log output that queues log lines for a consumer
// that reads them at its own pace.
type QueueWriter interface {
	io.Writer
	// Lines returns the channel on which queued lines are delivered.
	Lines() <-chan string
}

type queueWriter struct {
	queue chan string
}

const (
	// DefaultQueueSize is the number of lines kept when the consumer falls behind.
	DefaultQueueSize = 512

	maxQueueAttempts = 10
)

var (
	droppedLinesTotal = metrics.MustRegisterCounter("logging",
		"dropped_lines_total",
		"Number of log lines dropped because the queue was full")
)

// NewQueueWriter creates a log output that keeps up to size lines.
// When the queue is full, the oldest lines are dropped. Writing never blocks.
func NewQueueWriter(size int) QueueWriter {
	if size <= 0 {
		size = DefaultQueueSize
	}
	return &queueWriter{
		queue: make(chan string, size),
	}
}

func (l *queueWriter) Write(p []byte) (n int, err error) {
	if len(p) == 0 {
		return 0, nil
	}
	// p is reused by the logger, so take a copy
	line := strings.TrimRight(string(p), "\n")
	for attempt := 0; attempt < maxQueueAttempts; attempt++ {
		select {
		case l.queue <- line:
			return len(p), nil
		default:
			// Queue full; Take 1 out and try again
			select {
			case <-l.queue:
				droppedLinesTotal.Inc()
			default:
				// Also continue
			}
		}
	}
	// Ignore errors
	droppedLinesTotal.Inc()
	return len(p), nil
}

func (l *queueWriter) Lines() <-chan string {
	return l.queue
}
