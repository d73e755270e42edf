package app

import (
	"time"

	"github.com/cysce/handwash-dashboard-tui/internal/models"
	"github.com/cysce/handwash-dashboard-tui/internal/report"
	"github.com/cysce/handwash-dashboard-tui/internal/services"
)

// TickMsg is sent periodically to trigger state refresh.
type TickMsg struct {
	Time time.Time
}

// StartLoadingMsg signals that a resource is starting to load.
type StartLoadingMsg struct {
	Resource string
}

// StopLoadingMsg signals that a resource has finished loading.
type StopLoadingMsg struct {
	Resource string
}

// DashboardLoadedMsg carries freshly generated dashboard data.
type DashboardLoadedMsg struct {
	Data  *services.DashboardData
	Error error
}

// ExportsLoadedMsg carries the export log and the export directory listing.
type ExportsLoadedMsg struct {
	Records []models.ExportRecord
	Files   []models.ExportFile
	Error   error
}

// RangeChangedMsg asks for the dashboard to be regenerated for a new range.
type RangeChangedMsg struct {
	Range models.TimeRange
}

// ExportRequestMsg asks for a report to be built and written.
type ExportRequestMsg struct {
	Filter models.Filter
	Format report.Format
}

// ExportResultMsg contains the result of an export operation.
type ExportResultMsg struct {
	Record *models.ExportRecord
	Error  error
}

// RefreshMsg requests a refresh of data.
type RefreshMsg struct {
	Resource string // "all", "dashboard", "exports"
}

// AddNotificationMsg requests adding a new notification.
type AddNotificationMsg struct {
	Type     NotificationType
	Message  string
	Duration time.Duration
}

// RemoveNotificationMsg requests removal of a notification.
type RemoveNotificationMsg struct {
	ID string
}

// ClearExpiredNotificationsMsg triggers clearing of expired notifications.
type ClearExpiredNotificationsMsg struct{}

// ServiceEventMsg wraps a service event from the service manager.
type ServiceEventMsg struct {
	Event services.ServiceEvent
}

// SubscriptionEventMsg is the callback wrapper for service subscription.
type SubscriptionEventMsg struct {
	Channel chan services.ServiceEvent
}

// ErrorMsg represents a general error.
type ErrorMsg struct {
	Error   error
	Context string
}

// TabSwitchMsg requests switching to a specific tab.
type TabSwitchMsg struct {
	Tab TabID
}

// TabFocusMsg is delivered to a tab when it becomes active.
type TabFocusMsg struct{}

// TabBlurMsg is delivered to a tab when another tab becomes active.
type TabBlurMsg struct{}

// ToggleHelpMsg toggles the help display.
type ToggleHelpMsg struct{}
