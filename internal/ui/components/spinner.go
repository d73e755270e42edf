package components

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/cysce/handwash-dashboard-tui/internal/ui/styles"
)

var spinnerLabelStyle = lipgloss.NewStyle().Foreground(styles.TextSecondary)

// LoadingSpinner is a labelled spinner for long generation steps.
type LoadingSpinner struct {
	model spinner.Model
	label string
}

// NewSpinner creates a spinner showing label next to the frame.
func NewSpinner(label string) LoadingSpinner {
	return LoadingSpinner{
		model: spinner.New(
			spinner.WithSpinner(spinner.MiniDot),
			spinner.WithStyle(lipgloss.NewStyle().Foreground(styles.Primary)),
		),
		label: label,
	}
}

// Init starts the frame ticks.
func (l LoadingSpinner) Init() tea.Cmd {
	return l.model.Tick
}

// Update advances the frame. Ticks from other spinners are ignored.
func (l LoadingSpinner) Update(msg tea.Msg) (LoadingSpinner, tea.Cmd) {
	var cmd tea.Cmd
	l.model, cmd = l.model.Update(msg)
	return l, cmd
}

// Owns reports whether a tick was scheduled by this spinner.
func (l LoadingSpinner) Owns(msg spinner.TickMsg) bool {
	return msg.ID == l.model.ID()
}

// Label returns the text shown next to the frame.
func (l LoadingSpinner) Label() string {
	return l.label
}

// View renders the frame and the label.
func (l LoadingSpinner) View() string {
	if l.label == "" {
		return l.model.View()
	}
	return l.model.View() + " " + spinnerLabelStyle.Render(l.label)
}

// RenderSpinnerCentered renders a labeled spinner in the middle of the area.
func RenderSpinnerCentered(s LoadingSpinner, width, height int) string {
	return styles.CenterBoth(s.View(), width, height)
}
