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

package ui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
)

type keyMap struct {
	Fan      key.Binding
	Red      key.Binding
	Green    key.Binding
	Blue     key.Binding
	Off      key.Binding
	Brighter key.Binding
	Dimmer   key.Binding
	Quit     key.Binding
}

var _ help.KeyMap = keyMap{}

var defaultKeys = keyMap{
	Fan: key.NewBinding(
		key.WithKeys("f"),
		key.WithHelp("f", "toggle fan"),
	),
	Red: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "red"),
	),
	Green: key.NewBinding(
		key.WithKeys("g"),
		key.WithHelp("g", "green"),
	),
	Blue: key.NewBinding(
		key.WithKeys("b"),
		key.WithHelp("b", "blue"),
	),
	Off: key.NewBinding(
		key.WithKeys("o"),
		key.WithHelp("o", "LED off"),
	),
	Brighter: key.NewBinding(
		key.WithKeys("+", "="),
		key.WithHelp("+", "brighter"),
	),
	Dimmer: key.NewBinding(
		key.WithKeys("-"),
		key.WithHelp("-", "dimmer"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// ShortHelp returns the bindings shown in the footer.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Fan, k.Red, k.Green, k.Blue, k.Off, k.Brighter, k.Dimmer, k.Quit}
}

// FullHelp returns the bindings grouped per column.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Fan},
		{k.Red, k.Green, k.Blue, k.Off},
		{k.Brighter, k.Dimmer},
		{k.Quit},
	}
}
