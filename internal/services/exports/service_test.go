package exports

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func newTestService(t *testing.T) (*Service, string) {
	t.Helper()

	dir := filepath.Join(t.TempDir(), "reports")
	svc, err := New(dir)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	t.Cleanup(func() {
		if err := svc.Close(); err != nil {
			t.Logf("Close() failed: %v", err)
		}
	})

	return svc, dir
}

func waitFor(t *testing.T, svc *Service, want EventType) Event {
	t.Helper()
	timeout := time.After(2 * time.Second)
	for {
		select {
		case event := <-svc.Events():
			if event.Type == want {
				return event
			}
		case <-timeout:
			t.Fatalf("timeout waiting for event %d", want)
			return Event{}
		}
	}
}

func TestNew_CreatesDirectory(t *testing.T) {
	svc, dir := newTestService(t)

	if _, err := os.Stat(dir); err != nil {
		t.Errorf("export directory was not created: %v", err)
	}
	if svc.Dir() != dir {
		t.Errorf("Dir() = %q, want %q", svc.Dir(), dir)
	}
	if event := <-svc.Events(); event.Type != EventFilesLoaded {
		t.Errorf("first event = %d, want EventFilesLoaded", event.Type)
	}
}

func TestNew_EmptyDir(t *testing.T) {
	if _, err := New(""); err == nil {
		t.Error("New(\"\") should fail")
	}
}

func TestNew_ScansExistingReports(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a.html", "b.txt", "notes.md", ".hidden.html"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o600); err != nil {
			t.Fatalf("WriteFile() failed: %v", err)
		}
	}

	svc, err := New(dir)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	defer func() { _ = svc.Close() }()

	if svc.Count() != 2 {
		t.Errorf("Count() = %d, want 2", svc.Count())
	}
}

func TestSave(t *testing.T) {
	svc, dir := newTestService(t)
	<-svc.Events()

	path, err := svc.Save("report.html", []byte("<html></html>"))
	if err != nil {
		t.Fatalf("Save() failed: %v", err)
	}
	if path != filepath.Join(dir, "report.html") {
		t.Errorf("Save() path = %q", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() failed: %v", err)
	}
	if string(data) != "<html></html>" {
		t.Errorf("unexpected content %q", data)
	}

	files := svc.Files()
	if len(files) != 1 || files[0].Name != "report.html" || files[0].Size != 13 {
		t.Errorf("Files() = %+v", files)
	}
	waitFor(t, svc, EventFileSaved)

	// no temp files left behind
	entries, _ := os.ReadDir(dir)
	if len(entries) != 1 {
		t.Errorf("expected 1 entry in export dir, got %d", len(entries))
	}
}

func TestSave_InvalidName(t *testing.T) {
	svc, _ := newTestService(t)

	for _, name := range []string{"", "../escape.html", "sub/report.html", ".hidden.html"} {
		if _, err := svc.Save(name, []byte("x")); !errors.Is(err, ErrInvalidName) {
			t.Errorf("Save(%q) error = %v, want ErrInvalidName", name, err)
		}
	}
}

func TestWatchDirChange(t *testing.T) {
	svc, dir := newTestService(t)
	<-svc.Events()

	path := filepath.Join(dir, "external.html")
	if err := os.WriteFile(path, []byte("x"), 0o600); err != nil {
		t.Fatalf("WriteFile() failed: %v", err)
	}
	waitFor(t, svc, EventFilesChanged)
	if svc.Count() != 1 {
		t.Fatalf("Count() = %d after create, want 1", svc.Count())
	}

	if err := os.Remove(path); err != nil {
		t.Fatalf("Remove() failed: %v", err)
	}
	event := waitFor(t, svc, EventFilesChanged)
	for len(event.Removed) == 0 {
		// a late event from the create may still be queued
		event = waitFor(t, svc, EventFilesChanged)
	}
	if len(event.Removed) != 1 || event.Removed[0] != path {
		t.Errorf("Removed = %v, want [%s]", event.Removed, path)
	}
	if svc.Count() != 0 {
		t.Errorf("Count() = %d after remove, want 0", svc.Count())
	}
}

func TestSendEvent_Full(t *testing.T) {
	svc, _ := newTestService(t)

	// Fill channel
	for i := 0; i < 110; i++ {
		svc.sendEvent(Event{Type: EventFilesChanged})
	}

	if len(svc.Events()) != 100 {
		t.Errorf("expected 100 events, got %d", len(svc.Events()))
	}
}
