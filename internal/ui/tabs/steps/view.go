package steps

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/cysce/handwash-dashboard-tui/internal/models"
	"github.com/cysce/handwash-dashboard-tui/internal/ui/components"
	"github.com/cysce/handwash-dashboard-tui/internal/ui/styles"
)

const (
	chartHeight = 10
	barDays     = 7
)

// View renders the step metrics tab.
func (m *Model) View() string {
	sections := []string{m.renderHeader(), m.renderSelector(), ""}

	switch {
	case m.loading && m.metrics == nil:
		sections = append(sections, styles.BlurredStyle.Render("Generating step data..."))
	case m.errorMsg != "":
		sections = append(sections, styles.ErrorTextStyle.Render("Error: ")+m.errorMsg)
	case m.metrics != nil:
		sections = append(sections,
			m.renderChart(),
			"",
			m.renderSummary(),
			"",
			m.renderAttempts(),
		)
	}

	sections = append(sections, "", m.renderProfiles())

	m.viewport.SetContent(lipgloss.JoinVertical(lipgloss.Left, sections...))
	return styles.DocStyle.Render(m.viewport.View())
}

func (m *Model) renderHeader() string {
	title := styles.TitleStyle.Render("Step Metrics")

	rangeIndicator := lipgloss.NewStyle().
		Foreground(styles.Primary).
		Bold(true).
		Padding(0, 1).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(styles.Primary).
		Render(fmt.Sprintf("[t] %s", m.timeRange))

	return lipgloss.JoinHorizontal(lipgloss.Center, title, "  ", rangeIndicator)
}

func (m *Model) renderSelector() string {
	buttons := make([]string, 0, len(m.profiles))
	for i, p := range m.profiles {
		label := fmt.Sprintf("%d %s", p.ID, p.Name)
		if i == m.stepIndex {
			buttons = append(buttons, styles.ButtonActiveStyle.Background(styles.StepColor(p.ID)).Render(label))
		} else {
			buttons = append(buttons, styles.ButtonInactiveStyle.Render(label))
		}
	}
	return lipgloss.NewStyle().Width(max(m.width-6, 40)).Render(lipgloss.JoinHorizontal(lipgloss.Top, buttons...))
}

func (m *Model) renderChart() string {
	p := m.metrics.Profile
	title := lipgloss.NewStyle().Foreground(styles.StepColor(p.ID)).Bold(true).
		Render(fmt.Sprintf("◈ %s, daily compliance over %s", p.Name, m.metrics.Range))

	chartWidth := max(m.width-20, 30)
	return lipgloss.JoinVertical(lipgloss.Left,
		title,
		components.RenderStepChart(m.metrics.Records, chartWidth, chartHeight),
		components.StepChartLegend(),
	)
}

func (m *Model) renderSummary() string {
	p := m.metrics.Profile
	s := m.metrics.Summary

	item := func(label, value string) string {
		return styles.CardStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
			styles.CardTitleStyle.Render(label),
			styles.CardValueStyle.Render(value),
		))
	}

	return lipgloss.JoinHorizontal(lipgloss.Top,
		item("Observed mean", models.FormatPercent(s.Mean)),
		item("Observed σ", fmt.Sprintf("%.1f", s.StdDeviation)),
		item("Reference band", fmt.Sprintf("%.1f – %.1f", p.Lower(), p.Upper())),
		item("Success rate", styles.ComplianceStyle(s.SuccessRate).Render(s.RateLabel())),
	)
}

func (m *Model) renderAttempts() string {
	recent := m.metrics.LastDays(barDays)
	days := make([]models.DailyRecord, len(recent))
	for i, r := range recent {
		days[i] = models.DailyRecord{Date: r.Date, Attempts: r.Attempts, Successes: r.Successes, ComplianceRate: r.Compliance}
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		styles.SubTitleStyle.Render("◈ Attempts vs successes, last 7 days"),
		components.RenderAttemptsBars(days, max(m.width-20, 30)),
		components.AttemptsLegend(),
	)
}

func (m *Model) renderProfiles() string {
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(styles.Subtle)).
		Headers("#", "Step", "Mean", "Std. dev.", "-1σ", "+1σ")

	for _, p := range m.profiles {
		t.Row(
			fmt.Sprintf("%d", p.ID),
			p.Name,
			models.FormatPercent(p.MeanCompliance),
			fmt.Sprintf("%.1f", p.StdDeviation),
			fmt.Sprintf("%.1f", p.Lower()),
			fmt.Sprintf("%.1f", p.Upper()),
		)
	}

	selected := m.stepIndex
	t.StyleFunc(func(row, _ int) lipgloss.Style {
		switch row {
		case table.HeaderRow:
			return styles.TableHeaderStyle
		case selected:
			return styles.TableCellStyle.Foreground(styles.StepColor(m.profiles[row].ID)).Bold(true)
		default:
			return styles.TableCellStyle
		}
	})

	return lipgloss.JoinVertical(lipgloss.Left, styles.SubTitleStyle.Render("◈ Step reference profiles"), t.Render())
}
