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
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func drain(w QueueWriter) []string {
	var lines []string
	for {
		select {
		case line := <-w.Lines():
			lines = append(lines, line)
		default:
			return lines
		}
	}
}

func TestQueueWriterKeepsNewest(t *testing.T) {
	w := NewQueueWriter(2)
	for _, msg := range []string{"one\n", "two\n", "three\n"} {
		n, err := w.Write([]byte(msg))
		require.NoError(t, err)
		assert.Equal(t, len(msg), n)
	}
	assert.Equal(t, []string{"two", "three"}, drain(w))
}

func TestQueueWriterCopiesInput(t *testing.T) {
	w := NewQueueWriter(4)
	buf := []byte("first")
	_, err := w.Write(buf)
	require.NoError(t, err)
	copy(buf, "XXXXX")
	assert.Equal(t, []string{"first"}, drain(w))
}

func TestQueueWriterEmpty(t *testing.T) {
	w := NewQueueWriter(0)
	n, err := w.Write(nil)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
	assert.Empty(t, drain(w))
}

func TestQueueWriterAsLogOutput(t *testing.T) {
	w := NewQueueWriter(8)
	log := zerolog.New(zerolog.ConsoleWriter{Out: w, NoColor: true})
	log.Info().Str("event", "press").Msg("Button")
	lines := drain(w)
	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], "Button")
	assert.Contains(t, lines[0], "event=press")
}
