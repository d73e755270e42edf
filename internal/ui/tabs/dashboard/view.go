package dashboard

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/cysce/handwash-dashboard-tui/internal/models"
	"github.com/cysce/handwash-dashboard-tui/internal/services"
	"github.com/cysce/handwash-dashboard-tui/internal/ui/components"
	"github.com/cysce/handwash-dashboard-tui/internal/ui/styles"
)

const (
	barDays      = 7
	maxWashRows  = 8
	chartHeight  = 8
	minCardWidth = 18
)

// View renders the dashboard component.
func (m *Model) View() string {
	if m.state.IsInitialLoading() {
		return m.renderLoading()
	}

	data := m.state.GetDashboard()
	if data == nil {
		return styles.CenterBoth(styles.BlurredStyle.Render("No dashboard data yet. Press ctrl+r to generate."), m.width, m.height)
	}

	contentWidth := max(m.width-6, 40)

	sections := []string{
		m.renderTitle(data),
		m.renderCards(data.Cards, contentWidth),
		"",
		m.renderTrend(data, contentWidth),
		"",
		m.renderAlertsAndWashes(data, contentWidth),
		"",
		m.renderUnits(data.Units),
	}

	m.viewport.SetContent(lipgloss.JoinVertical(lipgloss.Left, sections...))

	return styles.DocStyle.Render(m.viewport.View())
}

func (m *Model) renderLoading() string {
	return components.RenderSpinnerCentered(m.spinner, m.width, m.height)
}

func (m *Model) renderTitle(data *services.DashboardData) string {
	title := styles.TitleStyle.Render("Hand Hygiene Dashboard")

	ranges := make([]string, 0, len(models.QuickRanges))
	for _, r := range models.QuickRanges {
		if r == data.Range {
			ranges = append(ranges, styles.ButtonActiveStyle.Render(r.String()))
		} else {
			ranges = append(ranges, styles.ButtonInactiveStyle.Render(r.String()))
		}
	}

	subtitle := styles.BlurredStyle.Render(fmt.Sprintf("%s  ·  generated %s",
		data.Window.Label(), data.GeneratedAt.Format("15:04:05")))

	return lipgloss.JoinVertical(lipgloss.Left,
		title,
		lipgloss.JoinHorizontal(lipgloss.Center, ranges...),
		subtitle,
		"",
	)
}

func (m *Model) renderCards(cards []services.StatCard, width int) string {
	if len(cards) == 0 {
		return ""
	}
	cardWidth := max(width/len(cards)-2, minCardWidth)

	rendered := make([]string, 0, len(cards))
	for _, c := range cards {
		rendered = append(rendered, renderCard(c, cardWidth))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

func renderCard(c services.StatCard, width int) string {
	change := styles.BlurredStyle.Render("baseline")
	if c.Change != 0 || c.Points {
		label := models.FormatChange(c.Change)
		if c.Points {
			label = fmt.Sprintf("%+.1f pts", c.Change)
		}
		arrow := "▲"
		if c.Change < 0 {
			arrow = "▼"
		}
		change = styles.ChangeStyle(c.Change).Render(arrow + " " + label)
	}

	return styles.CardStyle.Width(width).Render(lipgloss.JoinVertical(lipgloss.Left,
		styles.CardTitleStyle.Render(c.Title),
		styles.CardValueStyle.Render(c.Value),
		change,
	))
}

func (m *Model) renderTrend(data *services.DashboardData, width int) string {
	header := styles.SubTitleStyle.Render(fmt.Sprintf("◈ Compliance trend (%s)", data.Range))

	chartWidth := max(width*3/5-10, 20)
	chart := components.RenderComplianceTrend(data.Trend, chartWidth, chartHeight)

	last := data.Trend
	if len(last) > barDays {
		last = last[len(last)-barDays:]
	}
	bars := lipgloss.JoinVertical(lipgloss.Left,
		styles.SubTitleStyle.Render("◈ Last 7 days"),
		components.RenderAttemptsBars(last, max(width-chartWidth-16, 20)),
		components.AttemptsLegend(),
	)

	return lipgloss.JoinHorizontal(lipgloss.Top,
		lipgloss.JoinVertical(lipgloss.Left, header, chart),
		"    ",
		bars,
	)
}

func (m *Model) renderAlertsAndWashes(data *services.DashboardData, width int) string {
	alerts := renderAlerts(data.Alerts)
	washes := renderWashes(data.RecentWashes)
	if lipgloss.Width(alerts)+lipgloss.Width(washes)+4 > width {
		return lipgloss.JoinVertical(lipgloss.Left, alerts, "", washes)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, alerts, "    ", washes)
}

func renderAlerts(alerts []models.QualityAlert) string {
	lines := []string{styles.SubTitleStyle.Render("◈ Quality alerts")}
	for _, a := range alerts {
		icon := styles.WarningTextStyle.Render("●")
		if a.Critical {
			icon = styles.ErrorTextStyle.Render("▲")
		}
		lines = append(lines, fmt.Sprintf("  %s %-22s %3d  %s",
			icon, a.Kind, a.Count, styles.BlurredStyle.Render(models.FormatPercent(a.Percent))))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func renderWashes(washes []models.WashEvent) string {
	title := styles.SubTitleStyle.Render("◈ Recent washes")
	if len(washes) == 0 {
		return lipgloss.JoinVertical(lipgloss.Left, title, styles.BlurredStyle.Render("  No washes recorded"))
	}
	if len(washes) > maxWashRows {
		washes = washes[:maxWashRows]
	}

	t := table.New().
		Border(lipgloss.HiddenBorder()).
		Headers("Time", "Unit", "Score", "Duration", "Status")

	bands := make([]string, len(washes))
	for i, w := range washes {
		bands[i] = w.Band()
		status := "ok"
		if w.Status == models.WashInvalid {
			status = "invalid"
		}
		t.Row(
			w.Timestamp.Format("15:04"),
			w.Unit,
			strconv.Itoa(w.Compliance)+"%",
			w.Duration.String(),
			status,
		)
	}

	t.StyleFunc(func(row, col int) lipgloss.Style {
		switch {
		case row == table.HeaderRow:
			return styles.TableHeaderStyle
		case col == 2 || col == 4:
			return styles.BandStyle(bands[row]).Padding(0, 1)
		default:
			return styles.TableCellStyle
		}
	})

	return lipgloss.JoinVertical(lipgloss.Left, title, t.Render())
}

func (m *Model) renderUnits(units []services.UnitSummary) string {
	if len(units) == 0 {
		return ""
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(styles.Subtle)).
		Headers("Unit", "Washes", "Correct", "Rate", "Trend")

	rates := make([]float64, len(units))
	for i, u := range units {
		rates[i] = u.Summary.SuccessRate
		t.Row(
			u.Unit.Name,
			strconv.Itoa(u.Summary.TotalAttempts),
			strconv.Itoa(u.Summary.TotalSuccesses),
			u.Summary.RateLabel(),
			rateBar(u.Summary.SuccessRate),
		)
	}

	t.StyleFunc(func(row, col int) lipgloss.Style {
		switch {
		case row == table.HeaderRow:
			return styles.TableHeaderStyle
		case col == 3 || col == 4:
			return styles.ComplianceStyle(rates[row]).Padding(0, 1)
		default:
			return styles.TableCellStyle
		}
	})

	return lipgloss.JoinVertical(lipgloss.Left, styles.SubTitleStyle.Render("◈ Units"), t.Render())
}

// rateBar is a ten cell bar for a percentage.
func rateBar(pct float64) string {
	filled := min(max(int(pct/10+0.5), 0), 10)
	return strings.Repeat("█", filled) + strings.Repeat("░", 10-filled)
}
