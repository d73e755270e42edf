package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/cysce/handwash-dashboard-tui/internal/ui/styles"
)

// Styles holds the chrome drawn around the active tab.
type Styles struct {
	TabBar      lipgloss.Style
	ActiveTab   lipgloss.Style
	InactiveTab lipgloss.Style
	Status      lipgloss.Style
	Content     lipgloss.Style
	Toast       lipgloss.Style
	Title       lipgloss.Style
	Section     lipgloss.Style
	Subtle      lipgloss.Style

	// Notification styles indexed by type.
	Notifications map[NotificationType]lipgloss.Style
}

// DefaultStyles returns the styles built from the shared palette.
func DefaultStyles() Styles {
	toast := func(c lipgloss.TerminalColor) lipgloss.Style {
		return lipgloss.NewStyle().Foreground(c).Padding(0, 1)
	}
	return Styles{
		TabBar: lipgloss.NewStyle().Padding(0, 1).
			BorderStyle(lipgloss.NormalBorder()).BorderBottom(true).BorderForeground(styles.Subtle),
		ActiveTab:   lipgloss.NewStyle().Bold(true).Foreground(styles.Primary).Padding(0, 2),
		InactiveTab: lipgloss.NewStyle().Foreground(styles.TextMuted).Padding(0, 2),
		Status:      lipgloss.NewStyle().Foreground(styles.TextSecondary).Padding(0, 1),
		Content:     lipgloss.NewStyle().Padding(1, 2),
		Toast:       styles.ToastStyle,
		Title:       lipgloss.NewStyle().Bold(true).Foreground(styles.Primary),
		Section:     lipgloss.NewStyle().Foreground(styles.Secondary),
		Subtle:      lipgloss.NewStyle().Foreground(styles.Subtle),
		Notifications: map[NotificationType]lipgloss.Style{
			NotificationSuccess: toast(styles.Success),
			NotificationError:   toast(styles.Error).Bold(true),
			NotificationWarning: toast(styles.Warning),
			NotificationInfo:    toast(styles.Info),
			NotificationLoading: toast(styles.Info),
		},
	}
}

var notificationPrefixes = map[NotificationType]string{
	NotificationSuccess: "✓",
	NotificationError:   "✗",
	NotificationWarning: "!",
	NotificationInfo:    "i",
}

// View renders the navbar, the active tab and any overlays.
func (m *Model) View() string {
	var b strings.Builder

	if m.width > 0 {
		b.WriteString(m.renderNavbar())
		b.WriteString("\n")
	}

	if !m.ready {
		b.WriteString(m.styles.Content.Render(m.spinner.View() + " Loading..."))
		return b.String()
	}

	if tab := m.active(); tab != nil {
		b.WriteString(tab.View())
	} else {
		b.WriteString(m.styles.Content.Render(fmt.Sprintf("%s\n\n%s",
			m.activeTab, m.styles.Subtle.Render("This tab is not available."))))
	}

	view := b.String()
	if m.showHelp {
		view = m.overlayCentered(view, m.renderHelp())
	}
	if toasts := m.renderNotifications(); len(toasts) > 0 {
		view = m.overlayToasts(view, toasts)
	}
	return view
}

func (m *Model) active() Tab {
	if int(m.activeTab) < len(m.tabs) {
		return m.tabs[m.activeTab]
	}
	return nil
}

// renderNavbar draws the numbered tabs with the dashboard range on the right.
func (m *Model) renderNavbar() string {
	tabs := make([]string, 0, tabCount)
	for id := TabID(0); id < tabCount; id++ {
		if id == m.activeTab {
			tabs = append(tabs, m.styles.ActiveTab.Render(fmt.Sprintf("[%d] %s", id+1, id)))
		} else {
			tabs = append(tabs, m.styles.InactiveTab.Render(fmt.Sprintf(" %d  %s", id+1, id)))
		}
	}
	bar := lipgloss.JoinHorizontal(lipgloss.Top, tabs...)

	status := m.styles.Status.Render("◷ " + m.state.GetRange().String())
	if gap := m.width - 2 - lipgloss.Width(bar) - lipgloss.Width(status); gap > 0 {
		bar += strings.Repeat(" ", gap) + status
	}

	return m.styles.TabBar.Width(m.width).Render(bar)
}

func (m *Model) renderNotifications() []string {
	notifications := m.state.GetNotifications()
	toasts := make([]string, 0, len(notifications))
	for _, n := range notifications {
		prefix := notificationPrefixes[n.Type]
		if n.Type == NotificationLoading {
			prefix = m.spinner.View()
		}
		content := m.styles.Notifications[n.Type].Render(prefix + " " + n.Message)
		toasts = append(toasts, m.styles.Toast.Render(content))
	}
	return toasts
}

// renderHelp lists the global bindings followed by the active tab's.
func (m *Model) renderHelp() string {
	lines := []string{m.styles.Title.Render("Keyboard Shortcuts"), ""}

	section := func(title string, groups [][]key.Binding) {
		lines = append(lines, m.styles.Section.Render(title))
		for _, group := range groups {
			for _, b := range group {
				h := b.Help()
				lines = append(lines, fmt.Sprintf("  %-10s %s", h.Key, h.Desc))
			}
		}
		lines = append(lines, "")
	}

	section("Global", m.keymap.FullHelp())
	if tab := m.active(); tab != nil {
		if groups := tab.FullHelp(); len(groups) > 0 {
			section(m.activeTab.String(), groups)
		}
	}

	lines = append(lines, m.styles.Subtle.Render("Press ? or Esc to close"))
	return styles.HelpPanelStyle.Render(strings.Join(lines, "\n"))
}

// overlayCentered paints overlay over the middle of base.
func (m *Model) overlayCentered(base, overlay string) string {
	w := lipgloss.Width(overlay)
	return paint(base, overlay, max((m.width-w)/2, 0), max((m.height-lipgloss.Height(overlay))/2, 0))
}

// overlayToasts stacks toasts in the top right corner, under the navbar.
func (m *Model) overlayToasts(base string, toasts []string) string {
	stack := lipgloss.JoinVertical(lipgloss.Right, toasts...)
	return paint(base, stack, max(m.width-lipgloss.Width(stack)-2, 0), 2)
}

// paint writes each line of layer over base starting at column x, row y.
// Rows past the end of base are dropped.
func paint(base, layer string, x, y int) string {
	rows := strings.Split(base, "\n")
	layerWidth := lipgloss.Width(layer)

	for i, line := range strings.Split(layer, "\n") {
		row := y + i
		if row >= len(rows) {
			break
		}
		left := ansi.Truncate(rows[row], x, "")
		if w := lipgloss.Width(left); w < x {
			left += strings.Repeat(" ", x-w)
		}
		right := ansi.TruncateLeft(rows[row], x+layerWidth, "")
		rows[row] = left + line + right
	}
	return strings.Join(rows, "\n")
}
