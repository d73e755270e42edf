package components

import (
	"fmt"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"

	"github.com/cysce/handwash-dashboard-tui/internal/animator"
	"github.com/cysce/handwash-dashboard-tui/internal/ui/styles"
)

const (
	stepLabelWidth   = 18
	stepPercentWidth = 6
	minBarWidth      = 10
)

// StepBar renders one animated wash step as a labeled progress bar. The
// percentage is driven externally by the animator, so the bar never runs
// its own spring animation.
type StepBar struct {
	progress progress.Model
}

// NewStepBar creates a bar with the red to green compliance gradient.
func NewStepBar() StepBar {
	return StepBar{
		progress: progress.New(
			progress.WithScaledGradient("#ff6b6b", "#51cf66"),
			progress.WithWidth(30),
			progress.WithoutPercentage(),
		),
	}
}

// NewStepBarColored creates a bar in a single solid color.
func NewStepBarColored(color lipgloss.Color) StepBar {
	return StepBar{
		progress: progress.New(
			progress.WithSolidFill(string(color)),
			progress.WithWidth(30),
			progress.WithoutPercentage(),
		),
	}
}

// View renders the slot as "label [bar] pct marker" within width cells.
func (b StepBar) View(slot animator.Slot, width int) string {
	b.progress.Width = max(width-stepLabelWidth-stepPercentWidth-4, minBarWidth)

	bar := b.progress.ViewAs(slot.Percent())
	label := lipgloss.NewStyle().
		Foreground(styles.TextSecondary).
		Width(stepLabelWidth).
		Render(truncate(slot.Name, stepLabelWidth-1))

	pct := styles.ComplianceStyle(slot.Current).
		Width(stepPercentWidth).
		Align(lipgloss.Right).
		Render(fmt.Sprintf("%.0f%%", slot.Current))

	return lipgloss.JoinHorizontal(lipgloss.Center, label, bar, " ", pct, " ", stateMarker(slot.State))
}

// ViewPercent renders a compact bar for a plain percentage.
func (b StepBar) ViewPercent(percent float64, width int) string {
	b.progress.Width = max(width-stepPercentWidth-1, 5)
	bar := b.progress.ViewAs(clampPercent(percent) / 100)
	pct := styles.ComplianceStyle(percent).Render(fmt.Sprintf("%.1f%%", percent))
	return lipgloss.JoinHorizontal(lipgloss.Center, bar, " ", pct)
}

func stateMarker(s animator.State) string {
	switch s {
	case animator.Settled:
		return styles.SuccessTextStyle.Render("✓")
	case animator.Advancing:
		return styles.InfoTextStyle.Render("…")
	default:
		return styles.BlurredStyle.Render("·")
	}
}

func clampPercent(p float64) float64 {
	return min(max(p, 0), 100)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 1 {
		return string(r[:n])
	}
	return string(r[:n-1]) + "…"
}
