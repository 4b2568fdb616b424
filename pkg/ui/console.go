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
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	humanize "github.com/dustin/go-humanize"

	"github.com/binkynet/FanShim/pkg/button"
)

// Device is the part of the board the console controls.
type Device interface {
	SetFan(on bool) error
	Fan() bool
	SetLED(red, green, blue uint8, brightness float32) error
}

const (
	maxLogLines     = 200
	brightnessStep  = 0.1
	refreshInterval = time.Second
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7D56F4"))
	labelStyle = lipgloss.NewStyle().Width(12).Foreground(lipgloss.Color("241"))
	onStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#04B575"))
	offStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF5F87"))
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF5F87"))
)

// Console is the terminal UI of a single board.
type Console struct {
	device Device
	events <-chan button.Event
	lines  <-chan string
	keys   keyMap
	help   help.Model

	width   int
	height  int
	logs    viewport.Model
	history []string

	red, green, blue uint8
	brightness       float32
	lastEvent        string
	lastEventAt      time.Time
	buttonEnded      bool
	err              error
	now              func() time.Time
}

var _ tea.Model = Console{}

// ButtonEventMsg is sent when a button event is received.
type ButtonEventMsg struct {
	Event button.Event
	Time  time.Time
}

// ButtonEndedMsg is sent when the button event stream ended.
type ButtonEndedMsg struct{}

// LogLineMsg is sent for every log line.
type LogLineMsg string

type refreshMsg time.Time

// NewConsole creates a console for the given device.
// Button events are read from events, log lines from lines.
// Either channel may be nil.
func NewConsole(device Device, events <-chan button.Event, lines <-chan string) Console {
	return Console{
		device:     device,
		events:     events,
		lines:      lines,
		keys:       defaultKeys,
		help:       help.New(),
		logs:       newLogView(80, 10),
		brightness: 1,
		now:        time.Now,
	}
}

// Init is the first function that will be called. It returns an optional
// initial command. To not perform an initial command return nil.
func (c Console) Init() tea.Cmd {
	return tea.Batch(
		waitForEvent(c.events),
		waitForLine(c.lines),
		doRefresh(),
	)
}

// Update is called when a message is received. Use it to inspect messages
// and, in response, update the model and/or send a command.
func (c Console) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		c.width = msg.Width
		c.height = msg.Height
		c.help.Width = msg.Width
		c.logs.Width = msg.Width
		c.logs.Height = max(msg.Height-lipgloss.Height(c.statusView())-2, 1)
		c.logs.SetContent(strings.Join(c.history, "\n"))
		c.logs.GotoBottom()
	case ButtonEventMsg:
		c.lastEvent = msg.Event.String()
		c.lastEventAt = msg.Time
		cmds = append(cmds, waitForEvent(c.events))
	case ButtonEndedMsg:
		c.buttonEnded = true
	case LogLineMsg:
		c = c.appendLog(string(msg))
		cmds = append(cmds, waitForLine(c.lines))
	case refreshMsg:
		cmds = append(cmds, doRefresh())
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, c.keys.Quit):
			return c, tea.Quit
		case key.Matches(msg, c.keys.Fan):
			c.err = c.device.SetFan(!c.device.Fan())
		case key.Matches(msg, c.keys.Red):
			c = c.setLED(0xff, 0, 0, c.brightness)
		case key.Matches(msg, c.keys.Green):
			c = c.setLED(0, 0xff, 0, c.brightness)
		case key.Matches(msg, c.keys.Blue):
			c = c.setLED(0, 0, 0xff, c.brightness)
		case key.Matches(msg, c.keys.Off):
			c = c.setLED(0, 0, 0, 0)
		case key.Matches(msg, c.keys.Brighter):
			c = c.setLED(c.red, c.green, c.blue, min(c.brightness+brightnessStep, 1))
		case key.Matches(msg, c.keys.Dimmer):
			c = c.setLED(c.red, c.green, c.blue, max(c.brightness-brightnessStep, 0))
		}
	}

	// Handle keyboard and mouse events in the viewport
	var cmd tea.Cmd
	c.logs, cmd = c.logs.Update(msg)
	cmds = append(cmds, cmd)

	return c, tea.Batch(cmds...)
}

// View renders the program's UI, which is just a string. The view is
// rendered after every Update.
func (c Console) View() string {
	return lipgloss.JoinVertical(lipgloss.Left,
		c.statusView(),
		c.logs.View(),
		c.help.View(c.keys),
	)
}

func (c Console) statusView() string {
	fan := offStyle.Render("off")
	if c.device.Fan() {
		fan = onStyle.Render("on")
	}
	swatch := lipgloss.NewStyle().
		Background(lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", c.red, c.green, c.blue))).
		Render("    ")
	led := fmt.Sprintf("%s #%02x%02x%02x at %d%%", swatch, c.red, c.green, c.blue, int(c.brightness*100+0.5))
	btn := "no events yet"
	if c.lastEvent != "" {
		btn = fmt.Sprintf("%s %s", c.lastEvent, humanize.RelTime(c.lastEventAt, c.now(), "ago", "from now"))
	}
	if c.buttonEnded {
		btn += offStyle.Render(" (button line ended)")
	}
	rows := []string{
		titleStyle.Render("Fan SHIM"),
		labelStyle.Render("Fan") + fan,
		labelStyle.Render("LED") + led,
		labelStyle.Render("Button") + btn,
	}
	if c.err != nil {
		rows = append(rows, errorStyle.Render(c.err.Error()))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (c Console) setLED(red, green, blue uint8, brightness float32) Console {
	if err := c.device.SetLED(red, green, blue, brightness); err != nil {
		c.err = err
		return c
	}
	c.err = nil
	c.red, c.green, c.blue, c.brightness = red, green, blue, brightness
	return c
}

func (c Console) appendLog(line string) Console {
	// Copy so earlier models keep their own history
	history := append(append(make([]string, 0, len(c.history)+1), c.history...), line)
	if len(history) > maxLogLines {
		history = history[len(history)-maxLogLines:]
	}
	c.history = history
	c.logs.SetContent(strings.Join(c.history, "\n"))
	c.logs.GotoBottom()
	return c
}

// newLogView creates the log viewport.
// Only arrow and page keys scroll, the letters are used by the console.
func newLogView(width, height int) viewport.Model {
	v := viewport.New(width, height)
	v.KeyMap = viewport.KeyMap{
		PageDown: key.NewBinding(key.WithKeys("pgdown")),
		PageUp:   key.NewBinding(key.WithKeys("pgup")),
		Up:       key.NewBinding(key.WithKeys("up")),
		Down:     key.NewBinding(key.WithKeys("down")),
	}
	return v
}

func waitForEvent(events <-chan button.Event) tea.Cmd {
	if events == nil {
		return nil
	}
	return func() tea.Msg {
		ev, ok := <-events
		if !ok {
			return ButtonEndedMsg{}
		}
		return ButtonEventMsg{Event: ev, Time: time.Now()}
	}
}

func waitForLine(lines <-chan string) tea.Cmd {
	if lines == nil {
		return nil
	}
	return func() tea.Msg {
		return LogLineMsg(<-lines)
	}
}

func doRefresh() tea.Cmd {
	return tea.Tick(refreshInterval, func(t time.Time) tea.Msg {
		return refreshMsg(t)
	})
}
