// Package components provides reusable UI components for the TUI.
package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/cysce/handwash-dashboard-tui/internal/models"
	"github.com/cysce/handwash-dashboard-tui/internal/ui/styles"
)

const noData = "No data available"

var sparkChars = []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

func chartSize(width, height int) (int, int) {
	return max(width, 20), max(height, 3)
}

// RenderComplianceTrend plots daily compliance on a fixed 0-100 axis.
func RenderComplianceTrend(records []models.DailyRecord, width, height int) string {
	if len(records) == 0 {
		return styles.BlurredStyle.Render(noData)
	}
	width, height = chartSize(width, height)

	data := make([]float64, len(records))
	for i, r := range records {
		data[i] = r.ComplianceRate
	}

	return asciigraph.Plot(data,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.LowerBound(0),
		asciigraph.UpperBound(100),
		asciigraph.Precision(0),
		asciigraph.SeriesColors(asciigraph.Green),
		asciigraph.Caption(axisCaption(records[0].Label(), records[len(records)-1].Label())),
	)
}

// RenderStepChart plots one step's compliance against its mean and ±1σ lines.
func RenderStepChart(records []models.StepRecord, width, height int) string {
	if len(records) == 0 {
		return styles.BlurredStyle.Render(noData)
	}
	width, height = chartSize(width, height)

	compliance := make([]float64, len(records))
	mean := make([]float64, len(records))
	upper := make([]float64, len(records))
	lower := make([]float64, len(records))
	for i, r := range records {
		compliance[i] = r.Compliance
		mean[i] = r.Mean
		upper[i] = r.Upper
		lower[i] = r.Lower
	}

	return asciigraph.PlotMany([][]float64{upper, lower, mean, compliance},
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.LowerBound(0),
		asciigraph.UpperBound(100),
		asciigraph.Precision(0),
		asciigraph.SeriesColors(
			asciigraph.Gray,
			asciigraph.Gray,
			asciigraph.Yellow,
			asciigraph.Blue,
		),
		asciigraph.Caption(axisCaption(records[0].Label(), records[len(records)-1].Label())),
	)
}

// StepChartLegend is the legend matching RenderStepChart's series colors.
func StepChartLegend() string {
	return RenderLegend([]LegendItem{
		{Label: "Compliance", Color: styles.SeriesAttempts},
		{Label: "Mean", Color: styles.SeriesMean},
		{Label: "±1σ", Color: styles.SeriesBand},
	})
}

// RenderAttemptsBars draws paired attempts/successes bars, one pair per day.
func RenderAttemptsBars(records []models.DailyRecord, width int) string {
	if len(records) == 0 {
		return ""
	}

	maxVal := 1
	for _, r := range records {
		maxVal = max(maxVal, r.Attempts)
	}

	labelWidth := 0
	for _, r := range records {
		labelWidth = max(labelWidth, len(r.Label()))
	}
	barWidth := max(width-labelWidth-10, 10)

	attemptStyle := lipgloss.NewStyle().Foreground(styles.SeriesAttempts)
	successStyle := lipgloss.NewStyle().Foreground(styles.SeriesSuccesses)

	lines := make([]string, 0, len(records)*2)
	for _, r := range records {
		a := r.Attempts * barWidth / maxVal
		s := r.Successes * barWidth / maxVal
		lines = append(lines,
			fmt.Sprintf("%*s │%s %d", labelWidth, r.Label(), attemptStyle.Render(strings.Repeat("█", a)), r.Attempts),
			fmt.Sprintf("%*s │%s %d", labelWidth, "", successStyle.Render(strings.Repeat("▓", s)), r.Successes),
		)
	}
	return strings.Join(lines, "\n")
}

// AttemptsLegend is the legend matching RenderAttemptsBars.
func AttemptsLegend() string {
	return RenderLegend([]LegendItem{
		{Label: "Attempts", Color: styles.SeriesAttempts},
		{Label: "Successes", Color: styles.SeriesSuccesses},
	})
}

// RenderSparkline creates a compact inline sparkline scaled to the largest value.
func RenderSparkline(values []float64, width int) string {
	if len(values) == 0 || width <= 0 {
		return ""
	}

	maxVal := 0.0
	for _, v := range values {
		maxVal = max(maxVal, v)
	}
	if maxVal == 0 {
		maxVal = 1
	}

	var b strings.Builder
	for _, v := range sample(values, width) {
		b.WriteRune(sparkChars[sparkIndex(v, maxVal)])
	}
	return b.String()
}

// RenderComplianceSparkline colors each cell of a 0-100 sparkline by compliance band.
func RenderComplianceSparkline(values []float64, width int) string {
	if len(values) == 0 || width <= 0 {
		return ""
	}

	var b strings.Builder
	for _, v := range sample(values, width) {
		b.WriteString(styles.ComplianceStyle(v).Render(string(sparkChars[sparkIndex(v, 100)])))
	}
	return b.String()
}

// sample picks at most width evenly spaced values.
func sample(values []float64, width int) []float64 {
	if len(values) <= width {
		return values
	}
	step := float64(len(values)) / float64(width)
	out := make([]float64, 0, width)
	for i := 0; i < width; i++ {
		out = append(out, values[int(float64(i)*step)])
	}
	return out
}

func sparkIndex(v, maxVal float64) int {
	idx := int(v / maxVal * float64(len(sparkChars)-1))
	return min(max(idx, 0), len(sparkChars)-1)
}

func axisCaption(first, last string) string {
	return first + " → " + last
}

// RenderLegend creates a chart legend.
func RenderLegend(items []LegendItem) string {
	parts := make([]string, 0, len(items))
	for _, item := range items {
		colorBox := lipgloss.NewStyle().Foreground(item.Color).Render("■")
		parts = append(parts, fmt.Sprintf("%s %s", colorBox, item.Label))
	}
	return strings.Join(parts, "  ")
}

// LegendItem represents a single legend entry.
type LegendItem struct {
	Label string
	Color lipgloss.Color
}
