// Package exports keeps track of report files in the export directory with
// file watching and atomic saves.
package exports

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/cysce/handwash-dashboard-tui/internal/logger"
	"github.com/cysce/handwash-dashboard-tui/internal/models"
)

// ErrInvalidName is returned for a file name that would escape the export directory.
var ErrInvalidName = errors.New("invalid export file name")

// Event represents an export service event.
type Event struct {
	Type    EventType
	Error   error
	Removed []string
}

// EventType defines the type of export event.
type EventType int

const (
	EventFilesLoaded EventType = iota
	EventFilesChanged
	EventFileSaved
	EventError
)

// reportExtensions are the file types listed as reports.
var reportExtensions = map[string]bool{".html": true, ".txt": true}

// Service lists report files and reports changes to the directory.
type Service struct {
	mu            sync.RWMutex
	dir           string
	files         []models.ExportFile
	watcher       *fsnotify.Watcher
	eventChan     chan Event
	stopChan      chan struct{}
	debounceTimer *time.Timer
}

// New creates the export directory if needed, scans it and starts watching.
func New(dir string) (*Service, error) {
	if dir == "" {
		return nil, fmt.Errorf("export directory is required")
	}

	s := &Service{
		dir:       dir,
		eventChan: make(chan Event, 100),
		stopChan:  make(chan struct{}),
	}

	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("failed to create export directory: %w", err)
	}

	if _, err := s.rescan(); err != nil {
		return nil, fmt.Errorf("failed to scan export directory: %w", err)
	}

	if err := s.startWatcher(); err != nil {
		return nil, fmt.Errorf("failed to start file watcher: %w", err)
	}

	s.sendEvent(Event{Type: EventFilesLoaded})

	return s, nil
}

// Dir returns the watched directory.
func (s *Service) Dir() string {
	return s.dir
}

// Events returns the event channel for subscribing to directory changes.
func (s *Service) Events() <-chan Event {
	return s.eventChan
}

// Files returns a copy of the known report files, newest first.
func (s *Service) Files() []models.ExportFile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.ExportFile(nil), s.files...)
}

// Count returns the number of report files.
func (s *Service) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.files)
}

// Save writes data to name inside the export directory via a temp file and
// rename, so watchers never see a partial report.
func (s *Service) Save(name string, data []byte) (string, error) {
	if name == "" || name != filepath.Base(name) || strings.HasPrefix(name, ".") {
		return "", fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	path := filepath.Join(s.dir, name)

	tmp, err := os.CreateTemp(s.dir, ".tmp-*")
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return "", fmt.Errorf("failed to write report: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return "", fmt.Errorf("failed to close report: %w", err)
	}
	if err := os.Chmod(tmpPath, 0o600); err != nil {
		logger.Warn("failed to chmod report", "path", tmpPath, "error", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return "", fmt.Errorf("failed to move report into place: %w", err)
	}

	if _, err := s.rescan(); err != nil {
		logger.Warn("failed to rescan export directory", "error", err)
	}
	s.sendEvent(Event{Type: EventFileSaved})
	return path, nil
}

// rescan reloads the file list and returns the paths that disappeared.
func (s *Service) rescan() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, err
	}

	files := make([]models.ExportFile, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !isReport(e.Name()) {
			continue
		}
		info, err := e.Info()
		if err != nil {
			// removed between ReadDir and Info
			continue
		}
		files = append(files, models.ExportFile{
			Name:    e.Name(),
			Path:    filepath.Join(s.dir, e.Name()),
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
	}
	sort.Slice(files, func(i, j int) bool {
		if files[i].ModTime.Equal(files[j].ModTime) {
			return files[i].Name > files[j].Name
		}
		return files[i].ModTime.After(files[j].ModTime)
	})

	s.mu.Lock()
	defer s.mu.Unlock()

	present := make(map[string]bool, len(files))
	for _, f := range files {
		present[f.Path] = true
	}
	var removed []string
	for _, f := range s.files {
		if !present[f.Path] {
			removed = append(removed, f.Path)
		}
	}
	s.files = files
	return removed, nil
}

func isReport(name string) bool {
	return !strings.HasPrefix(name, ".") && reportExtensions[strings.ToLower(filepath.Ext(name))]
}

// startWatcher starts watching the export directory.
func (s *Service) startWatcher() error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	s.watcher = watcher

	if err := watcher.Add(s.dir); err != nil {
		if closeErr := watcher.Close(); closeErr != nil {
			logger.Error("failed to close watcher", "error", closeErr)
		}
		return err
	}

	go s.watchLoop()
	return nil
}

func (s *Service) watchLoop() {
	const debounceInterval = 100 * time.Millisecond

	for {
		select {
		case event, ok := <-s.watcher.Events:
			if !ok {
				return
			}

			if !isReport(filepath.Base(event.Name)) {
				continue
			}

			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) != 0 {
				// Debounce rapid changes
				s.mu.Lock()
				if s.debounceTimer != nil {
					s.debounceTimer.Stop()
				}
				s.debounceTimer = time.AfterFunc(debounceInterval, s.handleDirChange)
				s.mu.Unlock()
			}

		case err, ok := <-s.watcher.Errors:
			if !ok {
				return
			}
			s.sendEvent(Event{Type: EventError, Error: err})

		case <-s.stopChan:
			return
		}
	}
}

func (s *Service) handleDirChange() {
	removed, err := s.rescan()
	if err != nil {
		s.sendEvent(Event{Type: EventError, Error: err})
		return
	}
	s.sendEvent(Event{Type: EventFilesChanged, Removed: removed})
}

// sendEvent sends an event, dropping the oldest one when the channel is full.
func (s *Service) sendEvent(event Event) {
	select {
	case s.eventChan <- event:
	default:
		select {
		case <-s.eventChan:
		default:
		}
		select {
		case s.eventChan <- event:
		default:
		}
	}
}

// Close stops the watcher.
func (s *Service) Close() error {
	close(s.stopChan)

	s.mu.Lock()
	if s.debounceTimer != nil {
		s.debounceTimer.Stop()
	}
	s.mu.Unlock()

	if s.watcher != nil {
		return s.watcher.Close()
	}
	return nil
}
