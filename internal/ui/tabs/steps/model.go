// Package steps provides the per-step technique metrics tab.
package steps

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/cysce/handwash-dashboard-tui/internal/app"
	"github.com/cysce/handwash-dashboard-tui/internal/compliance"
	"github.com/cysce/handwash-dashboard-tui/internal/models"
	"github.com/cysce/handwash-dashboard-tui/internal/services"
)

type keyMap struct {
	NextStep    key.Binding
	PrevStep    key.Binding
	ToggleRange key.Binding
	Refresh     key.Binding
	Up          key.Binding
	Down        key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		NextStep: key.NewBinding(
			key.WithKeys("l", "right", "n"),
			key.WithHelp("l/→", "next step"),
		),
		PrevStep: key.NewBinding(
			key.WithKeys("h", "left", "p"),
			key.WithHelp("h/←", "prev step"),
		),
		ToggleRange: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "toggle time range"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "regenerate"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "scroll down"),
		),
	}
}

// metricsLoader generates the series of one step.
type metricsLoader func(stepID int, rng models.TimeRange) (*services.StepMetrics, error)

// metricsLoadedMsg carries a finished step series back to the tab.
type metricsLoadedMsg struct {
	stepID  int
	rng     models.TimeRange
	metrics *services.StepMetrics
	err     error
}

// Model represents the step metrics tab state.
type Model struct {
	state    *app.State
	load     metricsLoader
	width    int
	height   int
	keys     keyMap
	viewport viewport.Model

	profiles  []models.StepProfile
	stepIndex int
	timeRange models.TimeRange
	metrics   *services.StepMetrics
	loading   bool
	errorMsg  string
}

// New creates a new step metrics model.
func New(state *app.State, svc *services.Manager) *Model {
	m := &Model{
		state:     state,
		keys:      defaultKeyMap(),
		viewport:  viewport.New(0, 0),
		profiles:  compliance.Steps(),
		timeRange: models.TimeRange30Days,
	}
	if svc != nil {
		m.load = svc.StepMetrics
	}
	return m
}

// Init loads the first step.
func (m *Model) Init() tea.Cmd {
	return m.reload()
}

func (m *Model) selectedStep() models.StepProfile {
	return m.profiles[m.stepIndex]
}

func (m *Model) reload() tea.Cmd {
	m.loading = true
	return m.loadCmd(m.selectedStep().ID, m.timeRange)
}

func (m *Model) loadCmd(stepID int, rng models.TimeRange) tea.Cmd {
	load := m.load
	return func() tea.Msg {
		if load == nil {
			return metricsLoadedMsg{stepID: stepID, rng: rng, err: fmt.Errorf("services not initialized")}
		}
		metrics, err := load(stepID, rng)
		return metricsLoadedMsg{stepID: stepID, rng: rng, metrics: metrics, err: err}
	}
}

// Update handles messages for the step metrics tab.
func (m *Model) Update(msg tea.Msg) (app.Tab, tea.Cmd) {
	switch msg := msg.(type) {
	case metricsLoadedMsg:
		return m, m.handleLoaded(msg)

	case app.TabFocusMsg:
		if m.metrics == nil && !m.loading {
			return m, m.reload()
		}

	case tea.KeyMsg:
		return m, m.handleKeyMsg(msg)
	}

	return m, nil
}

func (m *Model) handleLoaded(msg metricsLoadedMsg) tea.Cmd {
	// a newer selection superseded this load
	if msg.stepID != m.selectedStep().ID || msg.rng != m.timeRange {
		return nil
	}
	m.loading = false

	if msg.err != nil {
		m.errorMsg = msg.err.Error()
		return app.NotifyError("Step metrics: " + msg.err.Error())
	}

	m.errorMsg = ""
	m.metrics = msg.metrics
	return nil
}

func (m *Model) handleKeyMsg(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.NextStep):
		m.stepIndex = (m.stepIndex + 1) % len(m.profiles)
		return m.reload()

	case key.Matches(msg, m.keys.PrevStep):
		m.stepIndex = (m.stepIndex - 1 + len(m.profiles)) % len(m.profiles)
		return m.reload()

	case key.Matches(msg, m.keys.ToggleRange):
		m.timeRange = m.timeRange.Next()
		return m.reload()

	case key.Matches(msg, m.keys.Refresh):
		return m.reload()

	default:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return cmd
	}
}

// SetSize sets the available size for the tab.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = width
	m.viewport.Height = height
}

// ShortHelp returns the key bindings for the short help view.
func (m *Model) ShortHelp() []key.Binding {
	return []key.Binding{m.keys.NextStep, m.keys.PrevStep, m.keys.ToggleRange}
}

// FullHelp returns the key bindings for the full help view.
func (m *Model) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{m.keys.NextStep, m.keys.PrevStep},
		{m.keys.ToggleRange, m.keys.Refresh},
		{m.keys.Up, m.keys.Down},
	}
}
