package app

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// KeyMap holds the bindings the root model handles before any tab.
type KeyMap struct {
	Tabs    []key.Binding // indexed by TabID
	NextTab key.Binding
	PrevTab key.Binding
	Refresh key.Binding
	Help    key.Binding
	Close   key.Binding
	Quit    key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() KeyMap {
	km := KeyMap{
		NextTab: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next tab")),
		PrevTab: key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev tab")),
		Refresh: key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "regenerate data")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "toggle help")),
		Close:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close help")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
	for id := TabID(0); id < tabCount; id++ {
		n := strconv.Itoa(int(id) + 1)
		km.Tabs = append(km.Tabs, key.NewBinding(
			key.WithKeys(n),
			key.WithHelp(n, strings.ToLower(id.String())),
		))
	}
	return km
}

// global lists every binding that is never forwarded to a tab.
func (k KeyMap) global() []key.Binding {
	return append([]key.Binding{k.NextTab, k.PrevTab, k.Refresh, k.Help, k.Quit}, k.Tabs...)
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Help, k.Refresh, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		k.Tabs,
		{k.NextTab, k.PrevTab},
		{k.Refresh, k.Help, k.Quit},
	}
}

func (m *Model) isGlobalKey(msg tea.KeyMsg) bool {
	return key.Matches(msg, m.keymap.global()...)
}

// handleKeyMsg runs the global bindings. Other keys fall through to the tab.
func (m *Model) handleKeyMsg(msg tea.KeyMsg) tea.Cmd {
	for id, b := range m.keymap.Tabs {
		if key.Matches(msg, b) {
			return m.switchTab(TabID(id))
		}
	}

	switch {
	case key.Matches(msg, m.keymap.Quit):
		return tea.Quit

	case key.Matches(msg, m.keymap.Help):
		m.showHelp = !m.showHelp

	case key.Matches(msg, m.keymap.Close):
		m.showHelp = false

	case key.Matches(msg, m.keymap.NextTab):
		return m.cycleTab(1)

	case key.Matches(msg, m.keymap.PrevTab):
		return m.cycleTab(-1)

	case key.Matches(msg, m.keymap.Refresh):
		return func() tea.Msg { return RefreshMsg{Resource: "all"} }
	}
	return nil
}

// cycleTab moves by delta tabs, wrapping at both ends. The help overlay pins
// the current tab.
func (m *Model) cycleTab(delta int) tea.Cmd {
	n := len(m.tabs)
	if m.showHelp || n == 0 {
		return nil
	}
	return m.switchTab(TabID(((int(m.activeTab)+delta)%n + n) % n))
}
