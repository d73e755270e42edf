package app

import (
	"testing"
	"time"

	"github.com/cysce/handwash-dashboard-tui/internal/models"
	"github.com/cysce/handwash-dashboard-tui/internal/services"
)

func TestNewState(t *testing.T) {
	s := NewState()
	if s == nil {
		t.Fatal("NewState returned nil")
	}
	if s.GetRange() != models.TimeRange30Days {
		t.Errorf("default range = %v, want 30 Days", s.GetRange())
	}
	if !s.Loading.Initial {
		t.Error("Initial loading should be true")
	}
	if s.GetDashboard() != nil {
		t.Error("Dashboard should be nil before the first load")
	}
}

func TestState_SetLoading(t *testing.T) {
	s := NewState()

	s.SetLoading(ResourceDashboard, true)
	if !s.Loading.Dashboard {
		t.Error("Dashboard loading should be true")
	}

	s.SetLoading(ResourceDashboard, false)
	// Initial is still true
	if !s.AnyLoading() {
		t.Error("AnyLoading should be true (Initial is true)")
	}

	s.SetLoading(ResourceInitial, false)
	if s.AnyLoading() {
		t.Error("AnyLoading should be false")
	}
	if resources := s.GetLoadingResources(); len(resources) != 0 {
		t.Errorf("GetLoadingResources should be empty, got %v", resources)
	}

	s.SetLoading(ResourceReport, true)
	resources := s.GetLoadingResources()
	if len(resources) != 1 || resources[0] != ResourceReport {
		t.Errorf("GetLoadingResources should contain report, got %v", resources)
	}

	// unknown resources are ignored
	s.SetLoading("quota", true)
	if len(s.GetLoadingResources()) != 1 {
		t.Error("unknown resource should not change loading state")
	}
}

func TestState_Dashboard(t *testing.T) {
	s := NewState()
	if s.TimeSinceUpdate() != 0 {
		t.Error("TimeSinceUpdate should be 0 before any update")
	}

	data := &services.DashboardData{Range: models.TimeRange7Days}
	s.SetDashboard(data)

	if s.GetDashboard() != data {
		t.Error("GetDashboard should return the stored data")
	}
	if s.GetLastUpdated().IsZero() {
		t.Error("LastUpdated should be set")
	}

	s.SetRange(models.TimeRange90Days)
	if s.GetRange() != models.TimeRange90Days {
		t.Errorf("range = %v, want 90 Days", s.GetRange())
	}
}

func TestState_Exports(t *testing.T) {
	s := NewState()

	records := []models.ExportRecord{{ID: "a"}, {ID: "b"}}
	files := []models.ExportFile{{Name: "a.html"}}
	s.SetExports(records, files)

	got := s.GetExports()
	if len(got) != 2 {
		t.Fatalf("GetExports len = %d, want 2", len(got))
	}
	got[0].ID = "changed"
	if s.GetExports()[0].ID != "a" {
		t.Error("GetExports should return a copy")
	}
	if len(s.GetExportFiles()) != 1 {
		t.Error("GetExportFiles should return the listing")
	}
}

func TestState_Notifications(t *testing.T) {
	s := NewState()

	id := s.AddNotification(NotificationInfo, "hello", 0)
	if id == "" {
		t.Fatal("AddNotification returned empty id")
	}
	if len(s.GetNotifications()) != 1 {
		t.Fatal("expected 1 notification")
	}

	s.RemoveNotification(id)
	if len(s.GetNotifications()) != 0 {
		t.Error("notification should be removed")
	}

	for i := 0; i < 15; i++ {
		s.AddNotification(NotificationInfo, "n", 0)
	}
	if len(s.GetNotifications()) != maxNotifications {
		t.Errorf("expected %d notifications, got %d", maxNotifications, len(s.GetNotifications()))
	}

	s.ClearAllNotifications()
	if len(s.GetNotifications()) != 0 {
		t.Error("ClearAllNotifications should remove everything")
	}
}

func TestState_NotificationExpiry(t *testing.T) {
	s := NewState()
	s.AddNotification(NotificationInfo, "short", time.Nanosecond)
	s.AddNotification(NotificationInfo, "sticky", 0)

	time.Sleep(time.Millisecond)
	s.ClearExpiredNotifications()

	notifs := s.GetNotifications()
	if len(notifs) != 1 || notifs[0].Message != "sticky" {
		t.Errorf("expected only the sticky notification, got %+v", notifs)
	}
}

func TestState_LoadingNotification(t *testing.T) {
	s := NewState()

	s.SetLoadingNotification("Loading...")
	s.SetLoadingNotification("Still loading...")

	notifs := s.GetNotifications()
	if len(notifs) != 1 {
		t.Fatalf("expected 1 loading notification, got %d", len(notifs))
	}
	if notifs[0].Message != "Still loading..." || notifs[0].Type != NotificationLoading {
		t.Errorf("unexpected loading notification %+v", notifs[0])
	}

	s.ClearLoadingNotification()
	if len(s.GetNotifications()) != 0 {
		t.Error("loading notification should be cleared")
	}
}

func TestNotificationType_String(t *testing.T) {
	tests := map[NotificationType]string{
		NotificationSuccess:   "success",
		NotificationError:     "error",
		NotificationWarning:   "warning",
		NotificationInfo:      "info",
		NotificationLoading:   "loading",
		NotificationType(99): "unknown",
	}
	for n, want := range tests {
		if got := n.String(); got != want {
			t.Errorf("%d.String() = %q, want %q", n, got, want)
		}
	}
}
