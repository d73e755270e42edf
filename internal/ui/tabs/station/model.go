// Package station provides the live wash station tab: a simulated camera
// feed with one animated progress bar per technique step.
package station

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/cysce/handwash-dashboard-tui/internal/animator"
	"github.com/cysce/handwash-dashboard-tui/internal/app"
	"github.com/cysce/handwash-dashboard-tui/internal/logger"
	"github.com/cysce/handwash-dashboard-tui/internal/services"
	"github.com/cysce/handwash-dashboard-tui/internal/ui/components"
	"github.com/cysce/handwash-dashboard-tui/internal/ui/styles"
)

// animTickMsg advances the step animation. Ticks from an older run carry a
// stale generation and are dropped.
type animTickMsg struct {
	gen int
}

// clockTickMsg advances the video clock once per second.
type clockTickMsg struct {
	gen int
}

type keyMap struct {
	Replay key.Binding
	Pause  key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Replay: key.NewBinding(
			key.WithKeys("r", "enter"),
			key.WithHelp("r", "replay wash"),
		),
		Pause: key.NewBinding(
			key.WithKeys(" ", "s"),
			key.WithHelp("space", "stop"),
		),
	}
}

// Model represents the wash station tab state.
type Model struct {
	state  *app.State
	sched  *animator.Scheduler
	bars   []components.StepBar
	keys   keyMap
	clock  animator.VideoClock
	gen    int
	width  int
	height int
}

// New creates the station tab. Without services the animator runs with the
// default timing.
func New(state *app.State, svc *services.Manager) *Model {
	var (
		sched *animator.Scheduler
		err   error
	)
	if svc != nil {
		sched, err = svc.NewStationAnimator()
	}
	if sched == nil || err != nil {
		if err != nil {
			logger.Warn("Station animator config rejected, using defaults", "error", err)
		}
		sched, _ = animator.New(animator.DefaultConfig(), nil, animator.StationTargets())
	}
	return newWithScheduler(state, sched)
}

func newWithScheduler(state *app.State, sched *animator.Scheduler) *Model {
	slots := sched.Snapshot()
	bars := make([]components.StepBar, len(slots))
	for i := range slots {
		bars[i] = components.NewStepBarColored(styles.StepColor(i + 1))
	}
	return &Model{
		state: state,
		sched: sched,
		bars:  bars,
		keys:  defaultKeyMap(),
		clock: animator.NewVideoClock(),
	}
}

// Init starts the first run; the station is the tab shown at launch.
func (m *Model) Init() tea.Cmd {
	return m.start()
}

func (m *Model) start() tea.Cmd {
	m.gen++
	m.sched.Start()
	return tea.Batch(m.animTick(), m.clockTick())
}

func (m *Model) stop() {
	m.gen++
	m.sched.Cancel()
}

func (m *Model) animTick() tea.Cmd {
	gen := m.gen
	return tea.Tick(m.sched.Interval(), func(time.Time) tea.Msg {
		return animTickMsg{gen: gen}
	})
}

func (m *Model) clockTick() tea.Cmd {
	gen := m.gen
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return clockTickMsg{gen: gen}
	})
}

// Update handles messages for the station tab.
func (m *Model) Update(msg tea.Msg) (app.Tab, tea.Cmd) {
	switch msg := msg.(type) {
	case animTickMsg:
		if msg.gen != m.gen {
			return m, nil
		}
		if m.sched.Tick() {
			return m, m.animTick()
		}

	case clockTickMsg:
		if msg.gen != m.gen {
			return m, nil
		}
		m.clock = m.clock.Advance(time.Second)
		return m, m.clockTick()

	case app.TabBlurMsg:
		m.stop()

	case app.TabFocusMsg:
		return m, m.start()

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Replay):
			return m, m.start()
		case key.Matches(msg, m.keys.Pause):
			m.stop()
		}
	}

	return m, nil
}

// SetSize sets the available size for the tab.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// ShortHelp returns the key bindings for the short help view.
func (m *Model) ShortHelp() []key.Binding {
	return []key.Binding{m.keys.Replay, m.keys.Pause}
}

// FullHelp returns the key bindings for the full help view.
func (m *Model) FullHelp() [][]key.Binding {
	return [][]key.Binding{{m.keys.Replay, m.keys.Pause}}
}
