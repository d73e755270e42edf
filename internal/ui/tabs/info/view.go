package info

import (
	"fmt"
	"runtime"
	"strconv"

	"github.com/charmbracelet/lipgloss"

	"github.com/cysce/handwash-dashboard-tui/internal/config"
	"github.com/cysce/handwash-dashboard-tui/internal/models"
	"github.com/cysce/handwash-dashboard-tui/internal/version"
	"github.com/cysce/handwash-dashboard-tui/internal/ui/styles"
)

// View renders the info tab.
func (m *Model) View() string {
	content := lipgloss.JoinVertical(lipgloss.Left,
		m.renderTitle(),
		m.renderConfigCard(),
		m.renderAboutCard(),
	)
	m.viewport.SetContent(content)

	return styles.DocStyle.Render(m.viewport.View())
}

func (m *Model) renderTitle() string {
	title := styles.TitleStyle.Render("Info")
	subtitle := styles.BlurredStyle.Render("Configuration and application information")
	return lipgloss.JoinVertical(lipgloss.Left, title, subtitle, "")
}

func (m *Model) cardWidth() int {
	return min(max(m.width-6, 50), 90)
}

func (m *Model) renderConfigCard() string {
	rows := []string{styles.CardTitleStyle.Render("Configuration"), ""}

	if c := m.config; c != nil {
		seed := "time-based"
		if c.Seed != 0 {
			seed = strconv.FormatUint(c.Seed, 10)
		}
		notify := "off"
		if c.DesktopNotify {
			notify = "on"
		}
		logFile := c.LogFile
		if logFile == "" {
			logFile = "stderr"
		}

		rows = append(rows,
			renderRow("Export log", c.DatabasePath, config.EnvDatabasePath),
			renderRow("Export dir", c.ExportDir, config.EnvExportDir),
			renderRow("Target rate", models.FormatPercent(c.TargetRate*100), config.EnvTargetRate),
			renderRow("Seed", seed, config.EnvSeed),
			renderRow("Animation", fmt.Sprintf("%s every %s, up to %s delay",
				c.AnimationDuration, c.AnimationTick, c.AnimationMaxDelay), config.EnvAnimationDuration),
			renderRow("Notifications", notify, config.EnvDesktopNotify),
			renderRow("Log", c.LogLevel+" → "+logFile, config.EnvLogLevel),
			"",
			styles.BlurredStyle.Render("'c' copies the export directory, 'y' the export log path"),
		)
	} else {
		rows = append(rows, styles.BlurredStyle.Render("Configuration not loaded"))
	}

	return styles.CardStyle.Width(m.cardWidth()).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func renderRow(label, value, env string) string {
	labelStyle := lipgloss.NewStyle().Width(16).Foreground(styles.TextMuted)
	valueStyle := lipgloss.NewStyle().Foreground(styles.TextPrimary)

	row := labelStyle.Render(label+":") + " " + valueStyle.Render(value)
	if env != "" {
		row += "  " + styles.BlurredStyle.Render(env)
	}
	return row
}

func (m *Model) renderAboutCard() string {
	rows := []string{
		styles.CardTitleStyle.Render("About " + version.Name),
		"",
		renderRow("Version", version.GetVersion(), ""),
		renderRow("Build date", version.GetDate(), ""),
		renderRow("Commit", version.GetCommit(), ""),
		renderRow("Go version", runtime.Version(), ""),
		renderRow("Platform", runtime.GOOS+"/"+runtime.GOARCH, ""),
	}

	if m.state != nil {
		rows = append(rows, "",
			fmt.Sprintf("Reports exported: %s", styles.InfoTextStyle.Render(strconv.Itoa(len(m.state.GetExports())))),
			fmt.Sprintf("Files on disk:    %s", styles.InfoTextStyle.Render(strconv.Itoa(len(m.state.GetExportFiles())))),
		)
	}

	return styles.CardStyle.Width(m.cardWidth()).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}
