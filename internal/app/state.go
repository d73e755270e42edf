package app

import (
	"sync"
	"time"

	"github.com/cysce/handwash-dashboard-tui/internal/models"
	"github.com/cysce/handwash-dashboard-tui/internal/services"
)

// NotificationType defines the type of notification.
type NotificationType int

const (
	// NotificationSuccess represents a success notification.
	NotificationSuccess NotificationType = iota
	// NotificationError represents an error notification.
	NotificationError
	// NotificationWarning represents a warning notification.
	NotificationWarning
	// NotificationInfo represents an informational notification.
	NotificationInfo
	// NotificationLoading represents a loading notification with spinner.
	NotificationLoading
)

const (
	// LoadingNotificationID is the fixed ID for loading notifications.
	LoadingNotificationID = "__loading__"

	maxNotifications = 10
)

// String returns the string representation of a NotificationType.
func (n NotificationType) String() string {
	switch n {
	case NotificationSuccess:
		return "success"
	case NotificationError:
		return "error"
	case NotificationWarning:
		return "warning"
	case NotificationInfo:
		return "info"
	case NotificationLoading:
		return "loading"
	default:
		return "unknown"
	}
}

// Notification represents a user-facing notification message.
type Notification struct {
	ID        string
	Type      NotificationType
	Message   string
	CreatedAt time.Time
	Duration  time.Duration
}

// IsExpired returns true if the notification has expired.
func (n *Notification) IsExpired() bool {
	if n.Duration <= 0 {
		return false
	}
	return time.Since(n.CreatedAt) > n.Duration
}

// Loading resources.
const (
	ResourceInitial   = "initial"
	ResourceDashboard = "dashboard"
	ResourceExports   = "exports"
	ResourceReport    = "report"
)

// LoadingState tracks loading states for different resources.
type LoadingState struct {
	Initial   bool
	Dashboard bool
	Exports   bool
	Report    bool
}

// State is the data shared between the root model and the tabs.
type State struct {
	mu sync.RWMutex

	Range       models.TimeRange
	Dashboard   *services.DashboardData
	Exports     []models.ExportRecord
	ExportFiles []models.ExportFile

	Loading LoadingState

	LastUpdated time.Time

	notifications   []Notification
	notificationSeq int
}

// NewState creates the shared state with the default 30 day range.
func NewState() *State {
	return &State{
		Range:         models.TimeRange30Days,
		notifications: make([]Notification, 0),
		Loading: LoadingState{
			Initial: true,
		},
	}
}

// SetLoading sets the loading state for a specific resource.
func (s *State) SetLoading(resource string, loading bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch resource {
	case ResourceInitial:
		s.Loading.Initial = loading
	case ResourceDashboard:
		s.Loading.Dashboard = loading
	case ResourceExports:
		s.Loading.Exports = loading
	case ResourceReport:
		s.Loading.Report = loading
	}
}

// AnyLoading returns true if any resource is currently loading.
func (s *State) AnyLoading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.Loading.Initial ||
		s.Loading.Dashboard ||
		s.Loading.Exports ||
		s.Loading.Report
}

// IsInitialLoading returns true if initial data is still loading.
func (s *State) IsInitialLoading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.Loading.Initial
}

// GetLoadingResources returns a list of currently loading resources.
func (s *State) GetLoadingResources() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var resources []string
	if s.Loading.Initial {
		resources = append(resources, ResourceInitial)
	}
	if s.Loading.Dashboard {
		resources = append(resources, ResourceDashboard)
	}
	if s.Loading.Exports {
		resources = append(resources, ResourceExports)
	}
	if s.Loading.Report {
		resources = append(resources, ResourceReport)
	}
	return resources
}

// GetRange returns the dashboard quick range.
func (s *State) GetRange() models.TimeRange {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.Range
}

// SetRange changes the dashboard quick range.
func (s *State) SetRange(r models.TimeRange) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Range = r
}

// SetDashboard stores freshly generated dashboard data.
func (s *State) SetDashboard(data *services.DashboardData) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Dashboard = data
	s.LastUpdated = time.Now()
}

// GetDashboard returns the current dashboard data, or nil before the first load.
func (s *State) GetDashboard() *services.DashboardData {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.Dashboard
}

// SetExports updates the export log and the files in the export directory.
func (s *State) SetExports(records []models.ExportRecord, files []models.ExportFile) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Exports = records
	s.ExportFiles = files
}

// GetExports returns a copy of the export log.
func (s *State) GetExports() []models.ExportRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.ExportRecord(nil), s.Exports...)
}

// GetExportFiles returns a copy of the export directory listing.
func (s *State) GetExportFiles() []models.ExportFile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.ExportFile(nil), s.ExportFiles...)
}

// AddNotification adds a new notification and returns its ID.
func (s *State) AddNotification(notifType NotificationType, message string, duration time.Duration) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.notificationSeq++
	id := time.Now().Format("20060102150405") + "-" + string(rune('A'+s.notificationSeq%26))

	s.notifications = append(s.notifications, Notification{
		ID:        id,
		Type:      notifType,
		Message:   message,
		CreatedAt: time.Now(),
		Duration:  duration,
	})

	if len(s.notifications) > maxNotifications {
		s.notifications = s.notifications[len(s.notifications)-maxNotifications:]
	}

	return id
}

// RemoveNotification removes a notification by ID.
func (s *State) RemoveNotification(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, n := range s.notifications {
		if n.ID == id {
			s.notifications = append(s.notifications[:i], s.notifications[i+1:]...)
			return
		}
	}
}

// ClearExpiredNotifications removes all expired notifications.
func (s *State) ClearExpiredNotifications() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notifications = s.activeNotifications()
}

// GetNotifications returns a copy of all active notifications.
func (s *State) GetNotifications() []Notification {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.activeNotifications()
}

func (s *State) activeNotifications() []Notification {
	active := make([]Notification, 0, len(s.notifications))
	for _, n := range s.notifications {
		if !n.IsExpired() {
			active = append(active, n)
		}
	}
	return active
}

// ClearAllNotifications removes all notifications.
func (s *State) ClearAllNotifications() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notifications = make([]Notification, 0)
}

// SetLoadingNotification sets a loading notification message.
func (s *State) SetLoadingNotification(message string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, n := range s.notifications {
		if n.ID == LoadingNotificationID {
			s.notifications[i].Message = message
			return
		}
	}

	s.notifications = append(s.notifications, Notification{
		ID:        LoadingNotificationID,
		Type:      NotificationLoading,
		Message:   message,
		CreatedAt: time.Now(),
	})
}

// ClearLoadingNotification removes the loading notification.
func (s *State) ClearLoadingNotification() {
	s.RemoveNotification(LoadingNotificationID)
}

// GetLastUpdated returns the last time the dashboard was regenerated.
func (s *State) GetLastUpdated() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.LastUpdated
}

// TimeSinceUpdate returns the duration since the last update.
func (s *State) TimeSinceUpdate() time.Duration {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.LastUpdated.IsZero() {
		return 0
	}
	return time.Since(s.LastUpdated)
}
