// Package reports provides the report builder tab: filter selection, a live
// preview, the paginated print view and export.
package reports

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/cysce/handwash-dashboard-tui/internal/app"
	"github.com/cysce/handwash-dashboard-tui/internal/compliance"
	"github.com/cysce/handwash-dashboard-tui/internal/models"
	"github.com/cysce/handwash-dashboard-tui/internal/report"
	"github.com/cysce/handwash-dashboard-tui/internal/services"
	"github.com/cysce/handwash-dashboard-tui/internal/ui/styles"
)

// formField identifies a row of the filter form.
type formField int

const (
	fieldUnit formField = iota
	fieldKind
	fieldRange
	fieldStart
	fieldEnd
	fieldFormat
	fieldCount
)

func (f formField) String() string {
	switch f {
	case fieldUnit:
		return "Unit"
	case fieldKind:
		return "Report"
	case fieldRange:
		return "Quick range"
	case fieldStart:
		return "From"
	case fieldEnd:
		return "To"
	case fieldFormat:
		return "Format"
	default:
		return ""
	}
}

var formats = []report.Format{report.FormatHTML, report.FormatText}

type keyMap struct {
	Up     key.Binding
	Down   key.Binding
	Left   key.Binding
	Right  key.Binding
	Edit   key.Binding
	Clear  key.Binding
	View   key.Binding
	Export key.Binding
	Close  key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "prev field"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "next field"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "prev option"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "next option"),
		),
		Edit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "edit date"),
		),
		Clear: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "clear dates"),
		),
		View: key.NewBinding(
			key.WithKeys("v"),
			key.WithHelp("v", "view report"),
		),
		Export: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "export"),
		),
		Close: key.NewBinding(
			key.WithKeys("esc", "backspace"),
			key.WithHelp("esc", "close"),
		),
	}
}

type (
	previewFunc func(models.Filter) (*services.ReportPreview, error)
	buildFunc   func(models.Filter) (models.ReportDocument, []report.Page, error)
)

// previewLoadedMsg carries the summary for the filter it was computed from.
type previewLoadedMsg struct {
	filter  models.Filter
	preview *services.ReportPreview
	err     error
}

// reportBuiltMsg carries an assembled report for the print view.
type reportBuiltMsg struct {
	doc   models.ReportDocument
	pages []report.Page
	err   error
}

// Model represents the reports tab state.
type Model struct {
	state   *app.State
	preview previewFunc
	build   buildFunc
	keys    keyMap
	width   int
	height  int

	focused   formField
	unitIdx   int
	kindIdx   int
	rangeIdx  int
	formatIdx int
	start     time.Time
	end       time.Time

	editing    bool
	startInput textinput.Model
	endInput   textinput.Model
	inputErr   string

	summary    *services.ReportPreview
	previewErr string

	viewing  bool
	doc      models.ReportDocument
	pages    []report.Page
	viewport viewport.Model

	log table.Model
}

// New creates the reports tab.
func New(state *app.State, svc *services.Manager) *Model {
	m := &Model{
		state:      state,
		keys:       defaultKeyMap(),
		rangeIdx:   rangeIndex(models.TimeRange30Days),
		startInput: dateInput(),
		endInput:   dateInput(),
		viewport:   viewport.New(0, 0),
		log:        newLogTable(),
	}
	if svc != nil {
		m.preview = svc.Preview
		m.build = svc.BuildReport
	}
	return m
}

func dateInput() textinput.Model {
	in := textinput.New()
	in.Placeholder = models.DateLayout
	in.CharLimit = len(models.DateLayout)
	in.Width = len(models.DateLayout) + 1
	return in
}

func newLogTable() table.Model {
	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "Generated", Width: 16},
			{Title: "File", Width: 44},
			{Title: "Period", Width: 23},
			{Title: "Rate", Width: 7},
			{Title: "Pages", Width: 5},
		}),
		table.WithHeight(6),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(styles.Subtle).
		BorderBottom(true).
		Bold(true).
		Foreground(styles.Primary)
	s.Selected = s.Selected.
		Foreground(styles.TextPrimary).
		Bold(false)
	t.SetStyles(s)
	return t
}

func rangeIndex(r models.TimeRange) int {
	for i, q := range models.QuickRanges {
		if q == r {
			return i
		}
	}
	return 0
}

// Filter returns the filter the form currently describes.
func (m *Model) Filter() models.Filter {
	return models.Filter{
		Range: models.QuickRanges[m.rangeIdx],
		Start: m.start,
		End:   m.end,
		Unit:  models.Units[m.unitIdx].ID,
		Kind:  models.ReportKinds[m.kindIdx].ID,
	}
}

func (m *Model) format() report.Format {
	return formats[m.formatIdx]
}

// CapturingInput reports whether a date field is being typed into.
func (m *Model) CapturingInput() bool {
	return m.editing
}

// Init computes the first preview.
func (m *Model) Init() tea.Cmd {
	m.syncLog()
	return m.previewCmd()
}

func (m *Model) previewCmd() tea.Cmd {
	f := m.Filter()
	fn := m.preview
	return func() tea.Msg {
		if fn == nil {
			return previewLoadedMsg{filter: f, err: fmt.Errorf("services not initialized")}
		}
		p, err := fn(f)
		return previewLoadedMsg{filter: f, preview: p, err: err}
	}
}

func (m *Model) buildCmd() tea.Cmd {
	f := m.Filter()
	fn := m.build
	return func() tea.Msg {
		if fn == nil {
			return reportBuiltMsg{err: fmt.Errorf("services not initialized")}
		}
		doc, pages, err := fn(f)
		return reportBuiltMsg{doc: doc, pages: pages, err: err}
	}
}

// Update handles messages for the reports tab.
func (m *Model) Update(msg tea.Msg) (app.Tab, tea.Cmd) {
	switch msg := msg.(type) {
	case previewLoadedMsg:
		m.handlePreview(msg)
		return m, nil

	case reportBuiltMsg:
		return m, m.handleBuilt(msg)

	case app.ExportsLoadedMsg, app.ExportResultMsg, app.TabFocusMsg:
		m.syncLog()
		return m, nil

	case tea.KeyMsg:
		switch {
		case m.editing:
			return m, m.updateEditing(msg)
		case m.viewing:
			return m, m.updateViewer(msg)
		default:
			return m, m.handleKeyMsg(msg)
		}
	}

	if m.editing {
		return m, m.updateInput(msg)
	}
	return m, nil
}

func (m *Model) handlePreview(msg previewLoadedMsg) {
	if msg.filter != m.Filter() {
		return
	}
	if msg.err != nil {
		m.previewErr = msg.err.Error()
		m.summary = nil
		return
	}
	m.previewErr = ""
	m.summary = msg.preview
}

func (m *Model) handleBuilt(msg reportBuiltMsg) tea.Cmd {
	if msg.err != nil {
		return app.NotifyError("Report failed: " + msg.err.Error())
	}
	m.doc = msg.doc
	m.pages = msg.pages
	m.viewing = true
	m.viewport.SetContent(report.RenderText(m.doc, m.pages))
	m.viewport.GotoTop()
	return nil
}

func (m *Model) handleKeyMsg(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Up):
		m.focused = (m.focused - 1 + fieldCount) % fieldCount
	case key.Matches(msg, m.keys.Down):
		m.focused = (m.focused + 1) % fieldCount
	case key.Matches(msg, m.keys.Left):
		return m.cycle(-1)
	case key.Matches(msg, m.keys.Right):
		return m.cycle(1)
	case key.Matches(msg, m.keys.Edit):
		if m.focused == fieldStart || m.focused == fieldEnd {
			return m.beginEdit()
		}
		return m.buildCmd()
	case key.Matches(msg, m.keys.Clear):
		if m.start.IsZero() && m.end.IsZero() {
			return nil
		}
		m.start, m.end = time.Time{}, time.Time{}
		m.startInput.SetValue("")
		m.endInput.SetValue("")
		return m.previewCmd()
	case key.Matches(msg, m.keys.View):
		return m.buildCmd()
	case key.Matches(msg, m.keys.Export):
		f, format := m.Filter(), m.format()
		return func() tea.Msg { return app.ExportRequestMsg{Filter: f, Format: format} }
	}
	return nil
}

// cycle moves the focused selector by delta. Choosing a quick range drops
// explicit dates.
func (m *Model) cycle(delta int) tea.Cmd {
	wrap := func(i, n int) int { return (i + delta + n) % n }

	switch m.focused {
	case fieldUnit:
		m.unitIdx = wrap(m.unitIdx, len(models.Units))
	case fieldKind:
		m.kindIdx = wrap(m.kindIdx, len(models.ReportKinds))
	case fieldRange:
		m.rangeIdx = wrap(m.rangeIdx, len(models.QuickRanges))
		m.start, m.end = time.Time{}, time.Time{}
		m.startInput.SetValue("")
		m.endInput.SetValue("")
	case fieldFormat:
		m.formatIdx = wrap(m.formatIdx, len(formats))
		return nil
	default:
		return nil
	}
	return m.previewCmd()
}

func (m *Model) activeInput() *textinput.Model {
	if m.focused == fieldEnd {
		return &m.endInput
	}
	return &m.startInput
}

func (m *Model) beginEdit() tea.Cmd {
	m.editing = true
	m.inputErr = ""
	in := m.activeInput()
	in.CursorEnd()
	return in.Focus()
}

func (m *Model) endEdit() {
	m.editing = false
	m.startInput.Blur()
	m.endInput.Blur()
}

func (m *Model) updateEditing(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		in := m.activeInput()
		in.SetValue(dateValue(m.boundFor(m.focused)))
		m.endEdit()
		return nil
	case "enter":
		return m.commitDate()
	}
	return m.updateInput(msg)
}

func (m *Model) updateInput(msg tea.Msg) tea.Cmd {
	in := m.activeInput()
	var cmd tea.Cmd
	*in, cmd = in.Update(msg)
	return cmd
}

func (m *Model) boundFor(f formField) time.Time {
	if f == fieldEnd {
		return m.end
	}
	return m.start
}

// commitDate parses the edited field. An empty value clears the bound.
func (m *Model) commitDate() tea.Cmd {
	in := m.activeInput()
	raw := strings.TrimSpace(in.Value())

	var t time.Time
	if raw != "" {
		parsed, err := compliance.ParseDate(raw)
		if err != nil {
			m.inputErr = fmt.Sprintf("%s: use %s", m.focused, models.DateLayout)
			return nil
		}
		t = parsed
	}

	if m.focused == fieldEnd {
		m.end = t
	} else {
		m.start = t
	}
	m.inputErr = ""
	m.endEdit()
	return m.previewCmd()
}

func dateValue(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(models.DateLayout)
}

func (m *Model) updateViewer(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Close):
		m.viewing = false
		return nil
	case key.Matches(msg, m.keys.Export):
		f, format := m.Filter(), m.format()
		return func() tea.Msg { return app.ExportRequestMsg{Filter: f, Format: format} }
	}
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return cmd
}

// syncLog refreshes the export log table from shared state.
func (m *Model) syncLog() {
	if m.state == nil {
		return
	}
	records := m.state.GetExports()
	rows := make([]table.Row, 0, len(records))
	for _, r := range records {
		rows = append(rows, table.Row{
			r.GeneratedAt.Format("2006-01-02 15:04"),
			filepath.Base(r.Path),
			r.DateRangeLabel,
			models.FormatPercent(r.SuccessRate),
			fmt.Sprintf("%d", r.Pages),
		})
	}
	m.log.SetRows(rows)
}

// SetSize sets the available size for the tab.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = max(width-6, 20)
	m.viewport.Height = max(height-6, 5)
	m.log.SetWidth(max(width-6, 40))
}

// ShortHelp returns the key bindings for the short help view.
func (m *Model) ShortHelp() []key.Binding {
	if m.viewing {
		return []key.Binding{m.keys.Close, m.keys.Export}
	}
	return []key.Binding{m.keys.Down, m.keys.Right, m.keys.View, m.keys.Export}
}

// FullHelp returns the key bindings for the full help view.
func (m *Model) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{m.keys.Up, m.keys.Down},
		{m.keys.Left, m.keys.Right},
		{m.keys.Edit, m.keys.Clear},
		{m.keys.View, m.keys.Export, m.keys.Close},
	}
}
