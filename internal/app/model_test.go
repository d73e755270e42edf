package app

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/cysce/handwash-dashboard-tui/internal/models"
	"github.com/cysce/handwash-dashboard-tui/internal/services"
)

// fakeTab records the messages it receives.
type fakeTab struct {
	name      string
	received  []tea.Msg
	capturing bool
}

func (f *fakeTab) Init() tea.Cmd { return nil }

func (f *fakeTab) Update(msg tea.Msg) (Tab, tea.Cmd) {
	f.received = append(f.received, msg)
	return f, nil
}

func (f *fakeTab) View() string              { return "content of " + f.name }
func (f *fakeTab) SetSize(int, int)          {}
func (f *fakeTab) ShortHelp() []key.Binding  { return nil }
func (f *fakeTab) FullHelp() [][]key.Binding { return nil }
func (f *fakeTab) CapturingInput() bool      { return f.capturing }

func (f *fakeTab) got(want tea.Msg) bool {
	for _, m := range f.received {
		if reflect.DeepEqual(m, want) {
			return true
		}
	}
	return false
}

func newModelWithFakeTabs() (*Model, []*fakeTab) {
	model := NewModel(nil)
	fakes := make([]*fakeTab, tabCount)
	tabs := make([]Tab, tabCount)
	for i := range fakes {
		fakes[i] = &fakeTab{name: TabID(i).String()}
		tabs[i] = fakes[i]
	}
	model.SetTabs(tabs)
	model.ready = true
	model.width = 100
	model.height = 40
	return model, fakes
}

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestNewModel(t *testing.T) {
	model := NewModel(nil)
	if model == nil {
		t.Fatal("NewModel returned nil")
	}
	if model.state == nil {
		t.Error("State should be initialized")
	}
	if model.activeTab != TabStation {
		t.Error("Default tab should be the wash station")
	}
	if len(model.tabs) != int(tabCount) {
		t.Errorf("Should have %d tab placeholders, got %d", tabCount, len(model.tabs))
	}
}

func TestModel_Init(t *testing.T) {
	model := NewModel(nil)
	if cmd := model.Init(); cmd == nil {
		t.Error("Init returned nil command")
	}
	if len(model.state.GetNotifications()) != 1 {
		t.Error("Init should show a loading notification")
	}
}

func TestModel_Update_WindowSize(t *testing.T) {
	model := NewModel(nil)

	newModel, _ := model.Update(tea.WindowSizeMsg{Width: 100, Height: 50})
	m, ok := newModel.(*Model)
	if !ok {
		t.Fatal("Update returned wrong model type")
	}
	if m.width != 100 || m.height != 50 {
		t.Errorf("size = %dx%d, want 100x50", m.width, m.height)
	}
	if !m.ready {
		t.Error("Model should be ready after WindowSizeMsg")
	}
}

func TestModel_TabSwitch_BlurAndFocus(t *testing.T) {
	model, fakes := newModelWithFakeTabs()

	model.Update(runeKey('4'))
	if model.activeTab != TabReports {
		t.Fatalf("ActiveTab = %v, want Reports", model.activeTab)
	}
	if !fakes[TabStation].got(TabBlurMsg{}) {
		t.Error("station tab should be blurred when leaving")
	}
	if !fakes[TabReports].got(TabFocusMsg{}) {
		t.Error("reports tab should be focused")
	}
	if fakes[TabReports].got(runeKey('4')) {
		t.Error("global keys should not be forwarded to the tab")
	}

	model.Update(TabSwitchMsg{Tab: TabStation})
	if !fakes[TabStation].got(TabFocusMsg{}) {
		t.Error("station tab should be focused on return")
	}
}

func TestModel_NextPrevTab(t *testing.T) {
	model, _ := newModelWithFakeTabs()

	model.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	if model.activeTab != TabInfo {
		t.Errorf("shift+tab from first tab = %v, want Info", model.activeTab)
	}
	model.Update(tea.KeyMsg{Type: tea.KeyTab})
	if model.activeTab != TabStation {
		t.Errorf("tab from last tab = %v, want Wash Station", model.activeTab)
	}
}

func TestModel_InputCapture(t *testing.T) {
	model, fakes := newModelWithFakeTabs()
	model.Update(TabSwitchMsg{Tab: TabReports})
	fakes[TabReports].capturing = true

	model.Update(runeKey('2'))
	if model.activeTab != TabReports {
		t.Error("digits should go to a capturing tab, not switch tabs")
	}
	if !fakes[TabReports].got(runeKey('2')) {
		t.Error("capturing tab should receive the key")
	}

	_, cmd := model.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if cmd == nil {
		t.Fatal("ctrl+c should still quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("ctrl+c should return tea.Quit")
	}
}

func TestModel_Update_Tick(t *testing.T) {
	model := NewModel(nil)
	if _, cmd := model.Update(TickMsg{}); cmd == nil {
		t.Error("TickMsg should return a command (next tick)")
	}
}

func TestModel_View(t *testing.T) {
	model := NewModel(nil)

	if view := model.View(); !strings.Contains(view, "Loading...") {
		t.Error("View should show Loading when not ready")
	}

	model.ready = true
	model.width = 120
	model.height = 24

	view := model.View()
	for _, name := range []string{"Wash Station", "Dashboard", "Step Metrics", "Reports", "Info"} {
		if !strings.Contains(view, name) {
			t.Errorf("View should show %s tab", name)
		}
	}
	if !strings.Contains(view, "not available") {
		t.Error("View should show placeholder text")
	}
}

func TestModel_Help(t *testing.T) {
	model := NewModel(nil)
	model.ready = true
	model.width = 80
	model.height = 24

	model.Update(ToggleHelpMsg{})
	if !model.showHelp {
		t.Error("showHelp should be true")
	}
	if view := model.View(); !strings.Contains(view, "Keyboard Shortcuts") {
		t.Error("View should show help modal")
	}

	model.Update(runeKey('?'))
	if model.showHelp {
		t.Error("showHelp should be false after toggle")
	}
}

func TestModel_Notifications(t *testing.T) {
	model := NewModel(nil)
	model.Update(AddNotificationMsg{Message: "Test Note", Type: NotificationInfo})

	if len(model.state.GetNotifications()) != 1 {
		t.Errorf("Expected 1 notification, got %d", len(model.state.GetNotifications()))
	}

	model.ready = true
	model.width = 80
	model.height = 24
	if view := model.View(); !strings.Contains(view, "Test Note") {
		t.Error("View should show notification")
	}
}

func TestModel_DashboardLoaded(t *testing.T) {
	model := NewModel(nil)

	data := &services.DashboardData{Range: models.TimeRange30Days}
	model.Update(DashboardLoadedMsg{Data: data})

	if model.state.GetDashboard() != data {
		t.Error("dashboard data should be stored")
	}
	if model.state.IsInitialLoading() {
		t.Error("initial loading should be cleared")
	}

	cmds := model.handleDashboardLoaded(DashboardLoadedMsg{Error: errors.New("boom")})
	if len(cmds) != 1 {
		t.Fatal("error should produce a notification command")
	}
	if msg, ok := cmds[0]().(AddNotificationMsg); !ok || msg.Type != NotificationError {
		t.Errorf("expected error notification, got %#v", msg)
	}
	if model.state.GetDashboard() != data {
		t.Error("a failed load should keep the previous data")
	}
}

func TestModel_RangeChanged(t *testing.T) {
	model := NewModel(nil)
	model.Update(RangeChangedMsg{Range: models.TimeRange7Days})
	if model.state.GetRange() != models.TimeRange7Days {
		t.Errorf("range = %v, want 7 Days", model.state.GetRange())
	}
}

func TestModel_ExportResult(t *testing.T) {
	model := NewModel(nil)
	model.state.SetLoading(ResourceReport, true)

	cmds := model.handleExportResult(ExportResultMsg{Record: &models.ExportRecord{Path: "/tmp/reports/a.html"}})
	if model.state.Loading.Report {
		t.Error("report loading should be cleared")
	}
	msg, ok := cmds[0]().(AddNotificationMsg)
	if !ok || !strings.Contains(msg.Message, "a.html") {
		t.Errorf("expected success notification naming the file, got %#v", msg)
	}

	cmds = model.handleExportResult(ExportResultMsg{Error: errors.New("disk full")})
	msg, ok = cmds[0]().(AddNotificationMsg)
	if !ok || msg.Type != NotificationError {
		t.Errorf("expected error notification, got %#v", msg)
	}
}

func TestModel_HandleServiceEvent(t *testing.T) {
	model := NewModel(nil)

	cmd := model.handleServiceEvent(services.ErrorEvent{Service: "exports", Error: errors.New("watch failed")})
	if cmd == nil {
		t.Fatal("Error event should trigger notification command")
	}
	msg, ok := cmd().(AddNotificationMsg)
	if !ok || !strings.Contains(msg.Message, "[exports]") {
		t.Errorf("unexpected notification %#v", msg)
	}

	// without services there is nothing to reload
	if cmd := model.handleServiceEvent(services.ExportsChangedEvent{}); cmd != nil {
		t.Error("ExportsChangedEvent without services should be a no-op")
	}
}

func TestModel_Update_Loading(t *testing.T) {
	model := NewModel(nil)

	model.Update(StartLoadingMsg{Resource: ResourceExports})
	if !model.state.Loading.Exports {
		t.Error("Loading.Exports should be true")
	}

	model.Update(StopLoadingMsg{Resource: ResourceExports})
	if model.state.Loading.Exports {
		t.Error("Loading.Exports should be false")
	}

	model.Update(ExportsLoadedMsg{Records: []models.ExportRecord{{ID: "x"}}})
	if len(model.state.GetExports()) != 1 {
		t.Error("export log should be stored")
	}

	// services is nil, so refreshes are no-ops
	model.Update(RefreshMsg{Resource: "all"})
	model.Update(RefreshMsg{Resource: ResourceDashboard})
	model.Update(RemoveNotificationMsg{ID: "nonexistent"})
	model.Update(ClearExpiredNotificationsMsg{})
}

func TestModel_HandleSpinnerTick(t *testing.T) {
	model := NewModel(nil)
	if _, cmd := model.Update(spinner.TickMsg{}); cmd == nil {
		t.Error("Spinner tick should return command")
	}
}

func TestTabID_String(t *testing.T) {
	tests := map[TabID]string{
		TabStation:   "Wash Station",
		TabDashboard: "Dashboard",
		TabSteps:     "Step Metrics",
		TabReports:   "Reports",
		TabInfo:      "Info",
		TabID(999):   "Unknown",
	}
	for id, want := range tests {
		if got := id.String(); got != want {
			t.Errorf("TabID(%d).String() = %q, want %q", id, got, want)
		}
	}
}

func TestDefaultKeyMap(t *testing.T) {
	km := DefaultKeyMap()
	if len(km.ShortHelp()) == 0 {
		t.Error("ShortHelp empty")
	}
	if len(km.FullHelp()) == 0 {
		t.Error("FullHelp empty")
	}
}

func TestModel_NavbarShowsRange(t *testing.T) {
	model, _ := newModelWithFakeTabs()
	model.width = 160
	model.Update(RangeChangedMsg{Range: models.TimeRange90Days})

	if nav := model.renderNavbar(); !strings.Contains(nav, "90 Days") {
		t.Errorf("navbar should show the active range, got %q", nav)
	}
}

func TestModel_HelpListsTabBindings(t *testing.T) {
	model, _ := newModelWithFakeTabs()
	help := model.renderHelp()
	for _, want := range []string{"wash station", "step metrics", "ctrl+r", "shift+tab"} {
		if !strings.Contains(help, want) {
			t.Errorf("help should mention %q", want)
		}
	}
}

func TestPaint(t *testing.T) {
	base := "aaaaa\nbbbbb\nccccc"
	got := paint(base, "XY\nZW", 1, 1)
	want := "aaaaa\nbXYbb\ncZWcc"
	if got != want {
		t.Errorf("paint = %q, want %q", got, want)
	}

	// rows past the base are dropped, short rows are padded
	if got := paint("ab", "X\nY", 4, 0); got != "ab  X" {
		t.Errorf("paint = %q, want %q", got, "ab  X")
	}
}

func TestModel_EscClosesHelp(t *testing.T) {
	model, _ := newModelWithFakeTabs()
	model.Update(ToggleHelpMsg{})
	model.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if model.showHelp {
		t.Error("esc should close the help overlay")
	}
}
