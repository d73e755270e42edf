package reports

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"

	"github.com/cysce/handwash-dashboard-tui/internal/models"
	"github.com/cysce/handwash-dashboard-tui/internal/ui/styles"
)

const labelWidth = 13

// View renders the reports tab.
func (m *Model) View() string {
	if m.viewing {
		return m.renderViewer()
	}

	sections := []string{
		styles.TitleStyle.Render("Reports"),
		lipgloss.JoinHorizontal(lipgloss.Top, m.renderForm(), "   ", m.renderPreview()),
		"",
		m.renderLog(),
	}
	return styles.DocStyle.Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

func (m *Model) renderForm() string {
	rows := make([]string, 0, fieldCount+2)
	for f := formField(0); f < fieldCount; f++ {
		rows = append(rows, m.renderField(f))
	}
	if m.inputErr != "" {
		rows = append(rows, "", styles.ErrorTextStyle.Render(m.inputErr))
	}
	return styles.CardStyle.Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (m *Model) renderField(f formField) string {
	label := styles.CardTitleStyle.Width(labelWidth).Render(f.String())
	prefix := "  "
	if f == m.focused {
		prefix = styles.FocusedStyle.Render("▸ ")
		label = styles.FocusedStyle.Width(labelWidth).Render(f.String())
	}
	return prefix + label + m.fieldValue(f)
}

func (m *Model) fieldValue(f formField) string {
	selector := func(v string) string {
		if f == m.focused {
			return styles.FocusedStyle.Render("‹ " + v + " ›")
		}
		return v
	}

	switch f {
	case fieldUnit:
		return selector(models.Units[m.unitIdx].Name)
	case fieldKind:
		return selector(models.ReportKinds[m.kindIdx].Name)
	case fieldRange:
		v := models.QuickRanges[m.rangeIdx].String()
		if m.start.IsZero() && m.end.IsZero() {
			return selector(v)
		}
		return styles.BlurredStyle.Render(v + " (overridden)")
	case fieldStart, fieldEnd:
		if m.editing && f == m.focused {
			return m.activeInput().View()
		}
		if v := dateValue(m.boundFor(f)); v != "" {
			return v
		}
		return styles.BlurredStyle.Render("not set")
	case fieldFormat:
		return selector(string(m.format()))
	}
	return ""
}

func (m *Model) renderPreview() string {
	title := styles.SubTitleStyle.Render("◈ Preview")

	switch {
	case m.previewErr != "":
		return styles.CardStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
			title, styles.ErrorTextStyle.Render(m.previewErr)))
	case m.summary == nil:
		return styles.CardStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
			title, styles.BlurredStyle.Render("Computing...")))
	}

	p := m.summary
	line := func(label, value string) string {
		return styles.CardTitleStyle.Width(labelWidth).Render(label) + value
	}

	return styles.CardStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		title,
		styles.BlurredStyle.Render(p.Kind.Description),
		"",
		line("Period", fmt.Sprintf("%s (%d days)", p.Window.Label(), p.Window.Days())),
		line("Unit", p.Unit.Name),
		line("Washes", strconv.Itoa(p.Summary.TotalAttempts)),
		line("Correct", strconv.Itoa(p.Summary.TotalSuccesses)),
		line("Success rate", styles.ComplianceStyle(p.Summary.SuccessRate).Render(p.Summary.RateLabel())),
	))
}

func (m *Model) renderLog() string {
	title := styles.SubTitleStyle.Render("◈ Exported reports")
	files := ""
	if m.state != nil {
		files = styles.BlurredStyle.Render(fmt.Sprintf("%d file(s) in the export directory", len(m.state.GetExportFiles())))
	}
	if len(m.log.Rows()) == 0 {
		return lipgloss.JoinVertical(lipgloss.Left, title, styles.BlurredStyle.Render("No reports exported yet. Press e to export."), files)
	}
	return lipgloss.JoinVertical(lipgloss.Left, title, m.log.View(), files)
}

func (m *Model) renderViewer() string {
	header := lipgloss.JoinHorizontal(lipgloss.Center,
		styles.TitleStyle.Render(m.doc.Kind.Name),
		"  ",
		styles.BlurredStyle.Render(fmt.Sprintf("%d page(s) · %.0f%%", len(m.pages), m.viewport.ScrollPercent()*100)),
	)
	footer := styles.BlurredStyle.Render("esc close · e export as " + string(m.format()))
	return styles.DocStyle.Render(lipgloss.JoinVertical(lipgloss.Left, header, m.viewport.View(), footer))
}
