package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/cysce/handwash-dashboard-tui/internal/animator"
	"github.com/cysce/handwash-dashboard-tui/internal/models"
	"github.com/cysce/handwash-dashboard-tui/internal/services"
	"github.com/cysce/handwash-dashboard-tui/internal/ui/styles"
)

const progressWidth = 20

var headerStyle = lipgloss.NewStyle().Bold(true)

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderColumn(false).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle.Padding(0, 1)
			}
			return lipgloss.NewStyle().Padding(0, 1)
		})
}

// formatSummary renders the dashboard figures as plain tables.
func formatSummary(data *services.DashboardData) string {
	var b strings.Builder
	cmp := data.Comparison

	fmt.Fprintf(&b, "%s\n", headerStyle.Render("Hand hygiene summary, "+data.Range.String()))
	fmt.Fprintf(&b, "%s (previous: %s)\n\n", data.Window.Label(), data.Window.Previous().Label())

	overview := newTable("Metric", "Current", "Previous", "Change").
		Row("Washes", strconv.Itoa(cmp.Current.TotalAttempts), strconv.Itoa(cmp.Previous.TotalAttempts), models.FormatChange(cmp.AttemptsChange)).
		Row("Correct", strconv.Itoa(cmp.Current.TotalSuccesses), strconv.Itoa(cmp.Previous.TotalSuccesses), models.FormatChange(cmp.SuccessesChange)).
		Row("Success rate", cmp.Current.RateLabel(), cmp.Previous.RateLabel(), fmt.Sprintf("%+.1f pts", cmp.SuccessRateDelta)).
		Row("Daily mean", models.FormatPercent(cmp.Current.Mean), models.FormatPercent(cmp.Previous.Mean), "").
		Row("Std. deviation", fmt.Sprintf("%.1f", cmp.Current.StdDeviation), fmt.Sprintf("%.1f", cmp.Previous.StdDeviation), "")
	b.WriteString(overview.Render())
	b.WriteString("\n\n")

	if len(data.Units) > 0 {
		units := newTable("Unit", "Washes", "Correct", "Rate")
		for _, u := range data.Units {
			units.Row(u.Unit.Name,
				strconv.Itoa(u.Summary.TotalAttempts),
				strconv.Itoa(u.Summary.TotalSuccesses),
				u.Summary.RateLabel())
		}
		b.WriteString(units.Render())
		b.WriteString("\n")
	}

	return b.String()
}

// formatProgress renders one line per slot with a bar and its percentage.
func formatProgress(slots []animator.Slot) string {
	var b strings.Builder
	for _, s := range slots {
		pct := s.Percent()
		filled := min(max(int(pct*progressWidth+0.5), 0), progressWidth)
		bar := strings.Repeat("█", filled) + strings.Repeat("░", progressWidth-filled)
		fmt.Fprintf(&b, "%-30s %s %s %s\n",
			s.Name,
			styles.ComplianceStyle(pct*100).Render(bar),
			fmt.Sprintf("%5.1f%%", s.Current),
			s.State)
	}
	return b.String()
}
