package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/cysce/handwash-dashboard-tui/internal/models"
)

var (
	textTitle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#2563EB"))
	textHeader = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	textCell   = lipgloss.NewStyle().Padding(0, 1)
	textTotal  = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	textMuted  = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))
)

// RenderText returns the print view of a document as a string.
func RenderText(doc models.ReportDocument, pages []Page) string {
	var b strings.Builder
	_ = WriteText(&b, doc, pages)
	return b.String()
}

// WriteText writes the print view of every page to w.
func WriteText(w io.Writer, doc models.ReportDocument, pages []Page) error {
	for i, p := range pages {
		var sb strings.Builder
		if i == 0 {
			sb.WriteString(textTitle.Render("Hand-Wash · "+doc.Kind.Name) + "\n")
			sb.WriteString(fmt.Sprintf("Unit: %s\nPeriod: %s\nGenerated: %s\n\n",
				doc.UnitLabel, doc.DateRangeLabel, doc.GeneratedAt.Format("02/01/2006 15:04")))
		}
		for _, blk := range p.Blocks {
			sb.WriteString(textBlock(doc, blk))
			sb.WriteString("\n\n")
		}
		sb.WriteString(textMuted.Render(p.Footer()+"  ·  "+Attribution) + "\n")
		if i < len(pages)-1 {
			sb.WriteString("\f\n")
		}
		if _, err := io.WriteString(w, sb.String()); err != nil {
			return fmt.Errorf("write page %d: %w", p.Number, err)
		}
	}
	return nil
}

func textBlock(doc models.ReportDocument, blk Block) string {
	title := textTitle.Render(blk.Title)
	switch blk.Kind {
	case BlockSummary:
		s := doc.Summary
		return title + "\n" + newTable().
			Headers("Total washes", "Correct washes", "Success rate", "Units", "Days").
			Row(strconv.Itoa(s.TotalAttempts), strconv.Itoa(s.TotalSuccesses), s.RateLabel(),
				strconv.Itoa(s.UnitCount), strconv.Itoa(s.Days)).
			Render()
	case BlockComparison:
		t := newTable().Headers("Unit", "Washes", "Correct", "Rate", "Mean", "Std dev")
		for _, d := range doc.Details {
			t.Row(d.Unit.Name, strconv.Itoa(d.Totals.TotalAttempts), strconv.Itoa(d.Totals.TotalSuccesses),
				d.Totals.RateLabel(), models.FormatPercent(d.Totals.Mean), fmt.Sprintf("%.1f", d.Totals.StdDeviation))
		}
		return title + "\n" + t.Render()
	case BlockSteps:
		t := newTable().Headers("Step", "Name", "Compliance")
		for _, r := range doc.StepBreakdown {
			t.Row(strconv.Itoa(r.StepID), r.Name, models.FormatPercent(r.Compliance))
		}
		return title + "\n" + t.Render()
	case BlockUnit:
		return title + "\n" + unitTable(blk.Detail).Render()
	default:
		return title + "\n" + textMuted.Render("No records for the selected period.")
	}
}

func unitTable(d *models.UnitDetail) *table.Table {
	rows := len(d.Rows)
	t := newTable().Headers("Date", "Washes", "Correct", "Rate")
	for _, r := range d.Rows {
		t.Row(r.Label(), strconv.Itoa(r.Attempts), strconv.Itoa(r.Successes), models.FormatPercent(r.ComplianceRate))
	}
	t.Row("TOTAL", strconv.Itoa(d.Totals.TotalAttempts), strconv.Itoa(d.Totals.TotalSuccesses), d.Totals.RateLabel())
	return t.StyleFunc(func(row, _ int) lipgloss.Style {
		switch {
		case row == table.HeaderRow:
			return textHeader
		case row == rows:
			return textTotal
		default:
			return textCell
		}
	})
}

func newTable() *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return textHeader
			}
			return textCell
		})
}
