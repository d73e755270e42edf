// Package app implements the main Bubble Tea application with tab-based navigation.
package app

import (
	"fmt"
	"path/filepath"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/cysce/handwash-dashboard-tui/internal/services"
	"github.com/cysce/handwash-dashboard-tui/internal/ui/styles"
)

// TabID represents the identifier for a tab in the application.
type TabID int

const (
	// TabStation is the ID for the wash station tab.
	TabStation TabID = iota
	// TabDashboard is the ID for the dashboard tab.
	TabDashboard
	// TabSteps is the ID for the step metrics tab.
	TabSteps
	// TabReports is the ID for the reports tab.
	TabReports
	// TabInfo is the ID for the info tab.
	TabInfo

	tabCount
)

// String returns the string representation of the TabID.
func (t TabID) String() string {
	switch t {
	case TabStation:
		return "Wash Station"
	case TabDashboard:
		return "Dashboard"
	case TabSteps:
		return "Step Metrics"
	case TabReports:
		return "Reports"
	case TabInfo:
		return "Info"
	default:
		return "Unknown"
	}
}

// Tab defines the interface that all tabs must implement.
type Tab interface {
	// Init initializes the tab and returns any initial commands.
	Init() tea.Cmd

	// Update handles messages and returns the updated tab and any commands.
	Update(msg tea.Msg) (Tab, tea.Cmd)

	// View renders the tab content.
	View() string

	// SetSize sets the available size for the tab.
	SetSize(width, height int)

	// ShortHelp returns key bindings for the short help view.
	ShortHelp() []key.Binding

	// FullHelp returns key bindings for the full help view.
	FullHelp() [][]key.Binding
}

// Model is the main application model.
type Model struct {
	// Tab management
	activeTab TabID
	tabs      []Tab

	// Shared state
	state    *State
	services *services.Manager
	keymap   KeyMap
	styles   Styles

	// UI components
	spinner spinner.Model

	// Window dimensions
	width  int
	height int

	// UI state
	showHelp bool
	ready    bool

	// Service subscription
	eventChannel chan services.ServiceEvent
}

// NewModel initializes a new application model.
func NewModel(mgr *services.Manager) *Model {
	return &Model{
		activeTab: TabStation,
		tabs:      make([]Tab, tabCount), // filled by SetTabs
		state:     NewState(),
		services:  mgr,
		keymap:    DefaultKeyMap(),
		styles:    DefaultStyles(),
		spinner: spinner.New(
			spinner.WithSpinner(spinner.Dot),
			spinner.WithStyle(lipgloss.NewStyle().Foreground(styles.Primary)),
		),
	}
}

// SetTabs sets the tabs for the model.
func (m *Model) SetTabs(tabs []Tab) {
	m.tabs = tabs
	if m.width > 0 && m.height > 0 {
		m.updateTabSizes()
	}
}

// GetState returns the application state.
func (m *Model) GetState() *State {
	return m.state
}

// Init initializes the model.
func (m *Model) Init() tea.Cmd {
	m.state.SetLoadingNotification("Generating data...")

	cmds := []tea.Cmd{
		m.spinner.Tick,
		sweepCmd(),
	}

	if m.services != nil {
		cmds = append(cmds, subscribeToServicesCmd(m.services))
		cmds = append(cmds, loadInitialData(m.services, m.state.GetRange()))
	}

	for _, tab := range m.tabs {
		if tab != nil {
			cmds = append(cmds, tab.Init())
		}
	}

	return tea.Batch(cmds...)
}

// Update handles messages and updates the model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.activeCapturesInput() {
			if msg.Type == tea.KeyCtrlC {
				return m, tea.Quit
			}
			break
		}
		if cmd := m.handleKeyMsg(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
		// Global keys are not forwarded to the tab.
		if m.isGlobalKey(msg) {
			return m, tea.Batch(cmds...)
		}

	case tea.WindowSizeMsg, spinner.TickMsg:
		if cmd := m.handleTeaMsg(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}

	default:
		if appCmds := m.handleAppMsg(msg); len(appCmds) > 0 {
			cmds = append(cmds, appCmds...)
		}
	}

	if cmd := m.updateActiveTab(msg); cmd != nil {
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

func (m *Model) handleTeaMsg(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.handleWindowSize(msg)
	case spinner.TickMsg:
		return m.handleSpinnerTick(msg)
	}
	return nil
}

func (m *Model) handleAppMsg(msg tea.Msg) []tea.Cmd {
	var cmds []tea.Cmd
	switch msg := msg.(type) {
	case TickMsg:
		cmds = append(cmds, m.handleTick())
	case SubscriptionEventMsg:
		m.eventChannel = msg.Channel
		cmds = append(cmds, waitForServiceEventCmd(m.eventChannel))
	case ServiceEventMsg:
		cmds = append(cmds, m.handleServiceEventMsg(msg)...)
	case DashboardLoadedMsg:
		cmds = append(cmds, m.handleDashboardLoaded(msg)...)
	case ExportsLoadedMsg:
		cmds = append(cmds, m.handleExportsLoaded(msg)...)
	case RangeChangedMsg:
		cmds = append(cmds, m.handleRangeChanged(msg)...)
	case ExportRequestMsg:
		cmds = append(cmds, m.handleExportRequest(msg)...)
	case ExportResultMsg:
		cmds = append(cmds, m.handleExportResult(msg)...)
	case AddNotificationMsg:
		cmds = append(cmds, m.handleAddNotification(msg)...)
	case RemoveNotificationMsg:
		m.state.RemoveNotification(msg.ID)
	case ClearExpiredNotificationsMsg:
		m.state.ClearExpiredNotifications()
	case StartLoadingMsg:
		m.handleStartLoading(msg)
	case StopLoadingMsg:
		m.handleStopLoading(msg)
	case ErrorMsg:
		cmds = append(cmds, NotifyError(errorText(msg)))
	case RefreshMsg:
		cmds = append(cmds, m.handleRefresh(msg)...)
	case TabSwitchMsg:
		cmds = append(cmds, m.switchTab(msg.Tab))
	case ToggleHelpMsg:
		m.showHelp = !m.showHelp
	}
	return cmds
}

func errorText(msg ErrorMsg) string {
	if msg.Context == "" {
		return msg.Error.Error()
	}
	return fmt.Sprintf("%s: %v", msg.Context, msg.Error)
}

func (m *Model) handleWindowSize(msg tea.WindowSizeMsg) {
	m.width = msg.Width
	m.height = msg.Height
	m.ready = true
	m.updateTabSizes()
}

func (m *Model) handleSpinnerTick(msg spinner.TickMsg) tea.Cmd {
	var cmd tea.Cmd
	m.spinner, cmd = m.spinner.Update(msg)
	return cmd
}

func (m *Model) handleTick() tea.Cmd {
	m.state.ClearExpiredNotifications()
	return sweepCmd()
}

func (m *Model) handleServiceEventMsg(msg ServiceEventMsg) []tea.Cmd {
	var cmds []tea.Cmd
	if cmd := m.handleServiceEvent(msg.Event); cmd != nil {
		cmds = append(cmds, cmd)
	}
	if m.eventChannel != nil {
		cmds = append(cmds, waitForServiceEventCmd(m.eventChannel))
	}
	return cmds
}

func (m *Model) handleDashboardLoaded(msg DashboardLoadedMsg) []tea.Cmd {
	m.state.SetLoading(ResourceInitial, false)
	m.state.SetLoading(ResourceDashboard, false)
	if !m.state.AnyLoading() {
		m.state.ClearLoadingNotification()
	}
	if msg.Error != nil {
		return []tea.Cmd{NotifyError(fmt.Sprintf("Failed to generate dashboard: %v", msg.Error))}
	}
	m.state.SetDashboard(msg.Data)
	return nil
}

func (m *Model) handleExportsLoaded(msg ExportsLoadedMsg) []tea.Cmd {
	m.state.SetLoading(ResourceExports, false)
	if msg.Error != nil {
		return []tea.Cmd{NotifyError(fmt.Sprintf("Failed to read export log: %v", msg.Error))}
	}
	m.state.SetExports(msg.Records, msg.Files)
	return nil
}

func (m *Model) handleRangeChanged(msg RangeChangedMsg) []tea.Cmd {
	m.state.SetRange(msg.Range)
	if m.services == nil {
		return nil
	}
	m.state.SetLoading(ResourceDashboard, true)
	return []tea.Cmd{loadDashboardCmd(m.services, msg.Range)}
}

func (m *Model) handleExportRequest(msg ExportRequestMsg) []tea.Cmd {
	if m.services == nil {
		return nil
	}
	m.state.SetLoading(ResourceReport, true)
	m.state.SetLoadingNotification("Exporting report...")
	return []tea.Cmd{exportReportCmd(m.services, msg.Filter, msg.Format)}
}

func (m *Model) handleExportResult(msg ExportResultMsg) []tea.Cmd {
	m.handleStopLoading(StopLoadingMsg{Resource: ResourceReport})
	if msg.Error != nil {
		return []tea.Cmd{NotifyError(fmt.Sprintf("Export failed: %v", msg.Error))}
	}
	return []tea.Cmd{NotifySuccess(fmt.Sprintf("Saved %s", filepath.Base(msg.Record.Path)))}
}

func (m *Model) handleAddNotification(msg AddNotificationMsg) []tea.Cmd {
	var cmds []tea.Cmd
	id := m.state.AddNotification(msg.Type, msg.Message, msg.Duration)
	if msg.Duration > 0 {
		cmds = append(cmds, clearNotificationCmd(id, msg.Duration))
	}
	return cmds
}

func (m *Model) handleStartLoading(msg StartLoadingMsg) {
	m.state.SetLoading(msg.Resource, true)
	m.state.SetLoadingNotification("Refreshing...")
}

func (m *Model) handleStopLoading(msg StopLoadingMsg) {
	m.state.SetLoading(msg.Resource, false)
	if !m.state.AnyLoading() {
		m.state.ClearLoadingNotification()
	}
}

func (m *Model) handleRefresh(msg RefreshMsg) []tea.Cmd {
	if m.services == nil {
		return nil
	}

	var cmds []tea.Cmd
	switch msg.Resource {
	case "all":
		m.handleStartLoading(StartLoadingMsg{Resource: ResourceDashboard})
		cmds = append(cmds, loadInitialData(m.services, m.state.GetRange()))
	case ResourceDashboard:
		m.handleStartLoading(StartLoadingMsg{Resource: ResourceDashboard})
		cmds = append(cmds, loadDashboardCmd(m.services, m.state.GetRange()))
	case ResourceExports:
		cmds = append(cmds, loadExportsCmd(m.services))
	}
	return cmds
}

func (m *Model) updateActiveTab(msg tea.Msg) tea.Cmd {
	if int(m.activeTab) < len(m.tabs) && m.tabs[m.activeTab] != nil {
		var cmd tea.Cmd
		m.tabs[m.activeTab], cmd = m.tabs[m.activeTab].Update(msg)
		return cmd
	}
	return nil
}

// switchTab blurs the current tab and focuses the new one.
func (m *Model) switchTab(id TabID) tea.Cmd {
	if id < 0 || int(id) >= len(m.tabs) || id == m.activeTab {
		return nil
	}
	var cmds []tea.Cmd
	if cmd := m.updateActiveTab(TabBlurMsg{}); cmd != nil {
		cmds = append(cmds, cmd)
	}
	m.activeTab = id
	m.updateTabSizes()
	if cmd := m.updateActiveTab(TabFocusMsg{}); cmd != nil {
		cmds = append(cmds, cmd)
	}
	return tea.Batch(cmds...)
}

func (m *Model) updateTabSizes() {
	contentHeight := m.height - 5
	contentHeight = max(0, contentHeight)

	for _, tab := range m.tabs {
		if tab != nil {
			tab.SetSize(m.width, contentHeight)
		}
	}
}

// InputCapturer is implemented by tabs that take free text input. While it
// reports true every key except ctrl+c goes to the tab.
type InputCapturer interface {
	CapturingInput() bool
}

func (m *Model) activeCapturesInput() bool {
	if int(m.activeTab) >= len(m.tabs) || m.tabs[m.activeTab] == nil {
		return false
	}
	c, ok := m.tabs[m.activeTab].(InputCapturer)
	return ok && c.CapturingInput()
}

func (m *Model) handleServiceEvent(event services.ServiceEvent) tea.Cmd {
	switch e := event.(type) {
	case services.ExportsChangedEvent, services.ExportCompletedEvent:
		if m.services != nil {
			return loadExportsCmd(m.services)
		}

	case services.ErrorEvent:
		return NotifyError(fmt.Sprintf("[%s] %v", e.Service, e.Error))
	}

	return nil
}
