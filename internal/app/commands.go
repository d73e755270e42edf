package app

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/cysce/handwash-dashboard-tui/internal/models"
	"github.com/cysce/handwash-dashboard-tui/internal/report"
	"github.com/cysce/handwash-dashboard-tui/internal/services"
)

const (
	// DefaultTickInterval is how often expired notifications are swept.
	DefaultTickInterval = 2 * time.Second

	// DefaultNotificationDuration is the default duration for notifications.
	DefaultNotificationDuration = 5 * time.Second

	// QuickNotificationDuration is for brief notifications.
	QuickNotificationDuration = 3 * time.Second

	// LongNotificationDuration is for errors the user should have time to read.
	LongNotificationDuration = 10 * time.Second

	recentExportLimit = 20
)

// notificationDurations is how long each notification type stays on screen.
var notificationDurations = map[NotificationType]time.Duration{
	NotificationInfo:    QuickNotificationDuration,
	NotificationSuccess: DefaultNotificationDuration,
	NotificationWarning: DefaultNotificationDuration,
	NotificationError:   LongNotificationDuration,
}

func sweepCmd() tea.Cmd {
	return tea.Tick(DefaultTickInterval, func(t time.Time) tea.Msg {
		return TickMsg{Time: t}
	})
}

// loadInitialData generates the dashboard and reads the export log.
func loadInitialData(mgr *services.Manager, rng models.TimeRange) tea.Cmd {
	return tea.Batch(
		loadDashboardCmd(mgr, rng),
		loadExportsCmd(mgr),
	)
}

func loadDashboardCmd(mgr *services.Manager, rng models.TimeRange) tea.Cmd {
	return func() tea.Msg {
		data, err := mgr.DashboardData(rng)
		return DashboardLoadedMsg{Data: data, Error: err}
	}
}

// loadExportsCmd reads the export log and the export directory listing.
func loadExportsCmd(mgr *services.Manager) tea.Cmd {
	return func() tea.Msg {
		records, err := mgr.RecentExports(recentExportLimit)
		return ExportsLoadedMsg{Records: records, Files: mgr.ExportFiles(), Error: err}
	}
}

// exportReportCmd builds and writes a report into the export directory.
func exportReportCmd(mgr *services.Manager, f models.Filter, format report.Format) tea.Cmd {
	return func() tea.Msg {
		rec, err := mgr.ExportReport(f, format, "")
		return ExportResultMsg{Record: rec, Error: err}
	}
}

func subscribeToServicesCmd(mgr *services.Manager) tea.Cmd {
	ch, _ := mgr.Subscribe()
	return func() tea.Msg {
		return SubscriptionEventMsg{Channel: ch}
	}
}

// waitForServiceEventCmd blocks for the next service event. A closed
// channel ends the subscription.
func waitForServiceEventCmd(ch <-chan services.ServiceEvent) tea.Cmd {
	return func() tea.Msg {
		event, ok := <-ch
		if !ok {
			return nil
		}
		return ServiceEventMsg{Event: event}
	}
}

func clearNotificationCmd(id string, delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(_ time.Time) tea.Msg {
		return RemoveNotificationMsg{ID: id}
	})
}

// Notify returns a command that shows a toast for the type's default duration.
func Notify(t NotificationType, message string) tea.Cmd {
	d, ok := notificationDurations[t]
	if !ok {
		d = DefaultNotificationDuration
	}
	return func() tea.Msg {
		return AddNotificationMsg{Type: t, Message: message, Duration: d}
	}
}

// NotifySuccess shows a success toast.
func NotifySuccess(message string) tea.Cmd {
	return Notify(NotificationSuccess, message)
}

// NotifyError shows an error toast.
func NotifyError(message string) tea.Cmd {
	return Notify(NotificationError, message)
}
