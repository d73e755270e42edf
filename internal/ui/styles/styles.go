// Package styles defines the visual styling for the application.
package styles

import "github.com/charmbracelet/lipgloss"

// Color definitions for the clinical theme.
var (
	// Primary colors
	Primary   = lipgloss.Color("37")  // Teal
	Secondary = lipgloss.Color("75")  // Sky blue
	Subtle    = lipgloss.Color("240") // Gray

	// Chart series colors
	SeriesAttempts  = lipgloss.Color("75")
	SeriesSuccesses = lipgloss.Color("42")
	SeriesMean      = lipgloss.Color("220")
	SeriesBand      = lipgloss.Color("244")

	// Status colors
	Success = lipgloss.Color("42")  // Green
	Error   = lipgloss.Color("196") // Red
	Warning = lipgloss.Color("220") // Yellow
	Info    = lipgloss.Color("39")  // Blue

	// Background colors
	BgDark   = lipgloss.Color("235")
	BgLight  = lipgloss.Color("237")
	BgAccent = lipgloss.Color("236")

	// Text colors
	TextPrimary   = lipgloss.Color("252")
	TextSecondary = lipgloss.Color("245")
	TextMuted     = lipgloss.Color("240")

	// ToastStyle for floating notifications.
	ToastStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Primary).
			Padding(0, 1).
			MarginBottom(1)
)

// StepColors gives each of the six technique steps its own hue.
var StepColors = []lipgloss.Color{"37", "75", "141", "214", "168", "108"}

// StepColor returns the color of step id (1-based), cycling past six.
func StepColor(id int) lipgloss.Color {
	if id < 1 {
		return Subtle
	}
	return StepColors[(id-1)%len(StepColors)]
}

// DocStyle provides consistent document margins.
var DocStyle = lipgloss.NewStyle().
	Margin(1, 2).
	Padding(0, 1)

// TitleStyle is used for main headings.
var TitleStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(Primary).
	MarginBottom(1)

// SubTitleStyle is used for section headings.
var SubTitleStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(Secondary)

// CardStyle creates a bordered card container.
var CardStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(Subtle).
	Padding(0, 2)

// CardTitleStyle styles card headers.
var CardTitleStyle = lipgloss.NewStyle().
	Foreground(TextSecondary)

// CardValueStyle styles the headline figure of a stat card.
var CardValueStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(TextPrimary)

// FocusedStyle is used for focused input elements.
var FocusedStyle = lipgloss.NewStyle().
	Foreground(Primary).
	Bold(true)

// BlurredStyle is used for unfocused input elements.
var BlurredStyle = lipgloss.NewStyle().
	Foreground(TextMuted)

// FocusedBorderStyle creates a focused border.
var FocusedBorderStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(Primary).
	Padding(0, 1)

// BlurredBorderStyle creates an unfocused border.
var BlurredBorderStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(Subtle).
	Padding(0, 1)

// HelpPanelStyle creates the help overlay panel.
var HelpPanelStyle = lipgloss.NewStyle().
	Border(lipgloss.DoubleBorder()).
	BorderForeground(Primary).
	Padding(1, 3).
	Background(BgDark)

// ListItemStyle styles list items.
var ListItemStyle = lipgloss.NewStyle().
	PaddingLeft(2)

// SelectedListItemStyle styles selected list items.
var SelectedListItemStyle = lipgloss.NewStyle().
	PaddingLeft(1).
	Foreground(Primary).
	Bold(true).
	SetString("> ")

// TableHeaderStyle styles table headers.
var TableHeaderStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(Primary).
	Padding(0, 1)

// TableCellStyle styles table cells.
var TableCellStyle = lipgloss.NewStyle().
	Padding(0, 1)

// ComplianceHighStyle for compliance at or above 95%.
var ComplianceHighStyle = lipgloss.NewStyle().
	Foreground(Success)

// ComplianceMediumStyle for compliance between 85% and 95%.
var ComplianceMediumStyle = lipgloss.NewStyle().
	Foreground(Warning)

// ComplianceLowStyle for compliance under 85%.
var ComplianceLowStyle = lipgloss.NewStyle().
	Foreground(Error)

// InvalidWashStyle for washes the detector rejected.
var InvalidWashStyle = lipgloss.NewStyle().
	Foreground(Error).
	Bold(true).
	Italic(true)

// ErrorTextStyle for error messages.
var ErrorTextStyle = lipgloss.NewStyle().
	Foreground(Error)

// SuccessTextStyle for success messages.
var SuccessTextStyle = lipgloss.NewStyle().
	Foreground(Success)

// WarningTextStyle for warning messages.
var WarningTextStyle = lipgloss.NewStyle().
	Foreground(Warning)

// InfoTextStyle for info messages.
var InfoTextStyle = lipgloss.NewStyle().
	Foreground(Info)

// ButtonStyle is the base button style.
var ButtonStyle = lipgloss.NewStyle().
	Padding(0, 2).
	MarginRight(1)

// ButtonActiveStyle styles active/focused buttons.
var ButtonActiveStyle = ButtonStyle.
	Background(Primary).
	Foreground(lipgloss.Color("230")).
	Bold(true)

var ButtonInactiveStyle = ButtonStyle.
	Background(BgLight).
	Foreground(TextSecondary)

// BandStyle returns the style for a wash compliance band: high, medium, low
// or invalid.
func BandStyle(band string) lipgloss.Style {
	switch band {
	case "high":
		return ComplianceHighStyle
	case "medium":
		return ComplianceMediumStyle
	case "invalid":
		return InvalidWashStyle
	default:
		return ComplianceLowStyle
	}
}

// ComplianceStyle returns the band style for a compliance percentage.
func ComplianceStyle(percent float64) lipgloss.Style {
	switch {
	case percent >= 95:
		return ComplianceHighStyle
	case percent >= 85:
		return ComplianceMediumStyle
	default:
		return ComplianceLowStyle
	}
}

// ChangeStyle colors a period-over-period change: green up, red down.
func ChangeStyle(change float64) lipgloss.Style {
	switch {
	case change > 0:
		return SuccessTextStyle
	case change < 0:
		return ErrorTextStyle
	default:
		return BlurredStyle
	}
}

// CenterHorizontal centers content horizontally within a given width.
func CenterHorizontal(content string, width int) string {
	return lipgloss.NewStyle().Width(width).Align(lipgloss.Center).Render(content)
}

// CenterBoth centers content both horizontally and vertically.
func CenterBoth(content string, width, height int) string {
	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center).
		AlignVertical(lipgloss.Center).
		Render(content)
}
