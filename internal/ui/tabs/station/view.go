package station

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/cysce/handwash-dashboard-tui/internal/animator"
	"github.com/cysce/handwash-dashboard-tui/internal/models"
	"github.com/cysce/handwash-dashboard-tui/internal/ui/styles"
)

const feedHeight = 7

// View renders the station tab.
func (m *Model) View() string {
	width := max(m.width-6, 40)
	slots := m.sched.Snapshot()

	sections := []string{
		styles.TitleStyle.Render("Wash Station"),
		m.renderFeed(width),
		"",
		styles.SubTitleStyle.Render("◈ Technique steps"),
	}
	for i, s := range slots {
		sections = append(sections, m.bars[i].View(s, width))
	}
	sections = append(sections, "", m.renderStatus(slots))

	if last := m.lastWash(); last != "" {
		sections = append(sections, "", last)
	}

	return styles.DocStyle.Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

func (m *Model) renderFeed(width int) string {
	rec := styles.BlurredStyle.Render("○ PAUSED")
	if m.sched.Running() {
		rec = styles.ErrorTextStyle.Render("● REC")
	}

	header := lipgloss.JoinHorizontal(lipgloss.Top,
		rec,
		"  ",
		styles.BlurredStyle.Render("Station 01 · Camera A"),
	)

	inner := max(width-4, 20)
	body := styles.CenterBoth(styles.BlurredStyle.Render("[ hands in frame ]"), inner, feedHeight-3)
	footer := lipgloss.NewStyle().Width(inner).Align(lipgloss.Right).
		Render(styles.InfoTextStyle.Render(m.clock.String()))

	return styles.BlurredBorderStyle.Width(width).Render(
		lipgloss.JoinVertical(lipgloss.Left, header, body, footer),
	)
}

func (m *Model) renderStatus(slots []animator.Slot) string {
	overall := animator.Overall(slots)
	label := fmt.Sprintf("Overall %s", models.FormatPercent(overall))

	switch {
	case m.sched.Running():
		return styles.InfoTextStyle.Render("Analyzing technique... ") + label
	case m.sched.Cancelled():
		return styles.WarningTextStyle.Render("Stopped. ") + label + styles.BlurredStyle.Render("  (r to replay)")
	case m.sched.Done():
		return styles.SuccessTextStyle.Render("Wash analyzed. ") + styles.ComplianceStyle(overall).Render(label)
	default:
		return styles.BlurredStyle.Render("Waiting for hands")
	}
}

// lastWash describes the newest wash from the dashboard data, if loaded.
func (m *Model) lastWash() string {
	if m.state == nil {
		return ""
	}
	data := m.state.GetDashboard()
	if data == nil || len(data.RecentWashes) == 0 {
		return ""
	}
	w := data.RecentWashes[0]
	status := styles.BandStyle(w.Band()).Render(fmt.Sprintf("%d%%", w.Compliance))
	return strings.Join([]string{
		styles.CardTitleStyle.Render("Last wash:"),
		w.Unit,
		w.Timestamp.Format("15:04"),
		status,
		w.Duration.String(),
	}, "  ")
}
