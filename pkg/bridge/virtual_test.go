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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVirtualOutputRecordsWrites(t *testing.T) {
	b := NewVirtualBridge()
	out, err := b.Output(18, true)
	require.NoError(t, err)
	assert.True(t, b.Level(18))
	assert.Equal(t, DirectionOutput, b.Direction(18))

	require.NoError(t, out.Write(false))
	require.NoError(t, out.Write(false))
	assert.Equal(t, []bool{false, false}, b.WritesTo(18))
	assert.False(t, b.Level(18))
}

func TestVirtualExportTwiceFails(t *testing.T) {
	b := NewVirtualBridge()
	_, err := b.Output(14, false)
	require.NoError(t, err)
	_, err = b.Input(14, EdgeBoth)
	require.Error(t, err)
	assert.True(t, IsLineExport(err))
}

func TestVirtualFailExport(t *testing.T) {
	b := NewVirtualBridge()
	b.FailExport(17)
	_, err := b.Input(17, EdgeBoth)
	require.Error(t, err)
	assert.True(t, IsLineExport(err))
}

func TestVirtualFailWritesAfter(t *testing.T) {
	b := NewVirtualBridge()
	out, err := b.Output(15, false)
	require.NoError(t, err)
	b.FailWritesAfter(15, 2)

	require.NoError(t, out.Write(true))
	require.NoError(t, out.Write(false))
	err = out.Write(true)
	require.Error(t, err)
	assert.True(t, IsLineWrite(err))

	writes := b.Writes()
	require.Len(t, writes, 3)
	assert.True(t, writes[2].Failed)
	assert.Equal(t, []bool{true, false}, b.WritesTo(15))
}

func TestVirtualInput(t *testing.T) {
	b := NewVirtualBridge()
	in, err := b.Input(17, EdgeBoth)
	require.NoError(t, err)
	assert.Equal(t, DirectionInput, b.Direction(17))
	assert.Equal(t, EdgeBoth, b.Edge(17))

	level, err := in.Read()
	require.NoError(t, err)
	assert.True(t, level, "inputs idle high")

	b.SetLevel(17, false)
	level, err = in.Read()
	require.NoError(t, err)
	assert.False(t, level)

	b.Remove(17)
	_, err = in.Read()
	require.Error(t, err)
	assert.True(t, IsLineRemoved(err))
}

func TestVirtualClose(t *testing.T) {
	b := NewVirtualBridge()
	out, err := b.Output(18, true)
	require.NoError(t, err)
	require.NoError(t, b.Close())
	assert.True(t, b.Closed())

	err = out.Write(true)
	assert.True(t, IsLineWrite(err))
	_, err = b.Output(15, false)
	assert.True(t, IsLineExport(err))
}
