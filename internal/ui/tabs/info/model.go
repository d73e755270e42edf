// Package info provides the configuration and about tab.
package info

import (
	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/cysce/handwash-dashboard-tui/internal/app"
	"github.com/cysce/handwash-dashboard-tui/internal/config"
)

// writeClipboard is replaced in tests.
var writeClipboard = clipboard.WriteAll

type keyMap struct {
	CopyDir key.Binding
	CopyLog key.Binding
	Up      key.Binding
	Down    key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		CopyDir: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "copy export dir"),
		),
		CopyLog: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "copy export log path"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
	}
}

// Model represents the info tab state.
type Model struct {
	state    *app.State
	config   *config.Config
	width    int
	height   int
	keys     keyMap
	viewport viewport.Model
}

// New creates a new info model.
func New(state *app.State, cfg *config.Config) *Model {
	return &Model{
		state:    state,
		config:   cfg,
		keys:     defaultKeyMap(),
		viewport: viewport.New(0, 0),
	}
}

// Init initializes the info tab.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update handles messages for the info tab.
func (m *Model) Update(msg tea.Msg) (app.Tab, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	if m.config != nil {
		switch {
		case key.Matches(keyMsg, m.keys.CopyDir):
			return m, copyPath(m.config.ExportDir)
		case key.Matches(keyMsg, m.keys.CopyLog):
			return m, copyPath(m.config.DatabasePath)
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(keyMsg)
	return m, cmd
}

// copyPath puts path on the system clipboard and reports the outcome as a toast.
func copyPath(path string) tea.Cmd {
	if path == "" {
		return nil
	}
	return func() tea.Msg {
		if err := writeClipboard(path); err != nil {
			return app.NotifyError("Clipboard unavailable: " + err.Error())()
		}
		return app.NotifySuccess("Copied " + path)()
	}
}

// SetSize sets the available size for the info tab.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = width
	m.viewport.Height = height
}

// ShortHelp returns the key bindings for the short help view.
func (m *Model) ShortHelp() []key.Binding {
	return []key.Binding{m.keys.CopyDir, m.keys.CopyLog}
}

// FullHelp returns the key bindings for the full help view.
func (m *Model) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{m.keys.CopyDir, m.keys.CopyLog},
		{m.keys.Up, m.keys.Down},
	}
}
