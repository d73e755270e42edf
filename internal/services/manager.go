// Package services provides service orchestration for the TUI.
package services

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/gen2brain/beeep"

	"github.com/cysce/handwash-dashboard-tui/internal/animator"
	"github.com/cysce/handwash-dashboard-tui/internal/compliance"
	"github.com/cysce/handwash-dashboard-tui/internal/config"
	"github.com/cysce/handwash-dashboard-tui/internal/db"
	"github.com/cysce/handwash-dashboard-tui/internal/logger"
	"github.com/cysce/handwash-dashboard-tui/internal/models"
	"github.com/cysce/handwash-dashboard-tui/internal/report"
	"github.com/cysce/handwash-dashboard-tui/internal/services/exports"
)

// RecentWashCount is the number of washes listed on the dashboard.
const RecentWashCount = 8

type (
	// ExportsChangedEvent is emitted when the export directory changes.
	ExportsChangedEvent struct {
		Files []models.ExportFile
	}

	// ExportCompletedEvent is emitted after a report has been written and logged.
	ExportCompletedEvent struct {
		Record models.ExportRecord
	}

	// ErrorEvent is emitted when an error occurs in any service.
	ErrorEvent struct {
		Service string
		Error   error
	}
)

// ServiceEvent is the interface implemented by all service events.
type ServiceEvent interface {
	isServiceEvent()
}

func (ExportsChangedEvent) isServiceEvent()  {}
func (ExportCompletedEvent) isServiceEvent() {}
func (ErrorEvent) isServiceEvent()           {}

// Notifier shows a desktop notification.
type Notifier func(title, body string) error

func desktopNotify(title, body string) error {
	return beeep.Notify(title, body, "")
}

// Option customizes a Manager.
type Option func(*Manager)

// WithClock replaces the wall clock used to anchor windows.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

// WithNotifier replaces the desktop notifier.
func WithNotifier(n Notifier) Option {
	return func(m *Manager) { m.notify = n }
}

// Manager orchestrates services and event routing.
type Manager struct {
	mu          sync.RWMutex
	cfg         *config.Config
	generator   *compliance.Generator
	exports     *exports.Service
	database    *db.DB
	notify      Notifier
	now         func() time.Time
	stopChan    chan struct{}
	subscribers []chan<- ServiceEvent

	closeOnce sync.Once
	closeErr  error
}

// NewManager creates a new service manager. A zero seed draws a fresh
// sequence on every run.
func NewManager(cfg *config.Config, opts ...Option) (*Manager, error) {
	m := &Manager{
		cfg:      cfg,
		notify:   desktopNotify,
		now:      time.Now,
		stopChan: make(chan struct{}),
	}
	for _, opt := range opts {
		opt(m)
	}

	src := compliance.NewTimeSource()
	if cfg.Seed != 0 {
		src = compliance.NewSource(cfg.Seed)
	}
	m.generator = compliance.NewGenerator(src)

	var err error
	m.database, err = db.New(cfg.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	m.exports, err = exports.New(cfg.ExportDir)
	if err != nil {
		_ = m.database.Close()
		return nil, fmt.Errorf("failed to initialize export directory: %w", err)
	}

	go m.routeEvents()

	return m, nil
}

// routeEvents routes events from individual services to subscribers.
func (m *Manager) routeEvents() {
	for {
		select {
		case event := <-m.exports.Events():
			m.handleExportEvent(event)

		case <-m.stopChan:
			return
		}
	}
}

// handleExportEvent prunes log entries for vanished files and rebroadcasts.
func (m *Manager) handleExportEvent(event exports.Event) {
	switch event.Type {
	case exports.EventFilesLoaded, exports.EventFilesChanged, exports.EventFileSaved:
		for _, path := range event.Removed {
			n, err := m.database.DeleteExportsByPath(path)
			if err != nil {
				logger.Warn("failed to prune export log", "path", path, "error", err)
				continue
			}
			if n > 0 {
				logger.Debug("pruned export log", "path", path, "rows", n)
			}
		}
		m.broadcast(ExportsChangedEvent{Files: m.exports.Files()})

	case exports.EventError:
		m.broadcast(ErrorEvent{
			Service: "exports",
			Error:   event.Error,
		})
	}
}

// broadcast sends an event to all subscribers.
func (m *Manager) broadcast(event ServiceEvent) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, sub := range m.subscribers {
		select {
		case sub <- event:
		default:
			// Subscriber channel full, skip
		}
	}
}

// Subscribe creates a channel for receiving service events.
// Returns a tea.Cmd that can be used in Bubble Tea's Init or Update.
func (m *Manager) Subscribe() (chan ServiceEvent, tea.Cmd) {
	ch := make(chan ServiceEvent, 50)

	m.mu.Lock()
	m.subscribers = append(m.subscribers, ch)
	m.mu.Unlock()

	return ch, WaitForEvent(ch)
}

// WaitForEvent returns a tea.Cmd for the next event on a channel.
func WaitForEvent(ch <-chan ServiceEvent) tea.Cmd {
	return func() tea.Msg {
		return <-ch
	}
}

// Unsubscribe removes a subscriber channel.
func (m *Manager) Unsubscribe(ch chan ServiceEvent) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, sub := range m.subscribers {
		if sub == ch {
			m.subscribers = append(m.subscribers[:i], m.subscribers[i+1:]...)
			close(ch)
			break
		}
	}
}

// DashboardData generates the dashboard for a quick range: every unit over
// the window, compared with the window before it.
func (m *Manager) DashboardData(rng models.TimeRange) (*DashboardData, error) {
	now := m.now()
	w, err := compliance.ResolveWindow(models.Filter{Range: rng}, now)
	if err != nil {
		return nil, err
	}
	units, _ := models.ExpandUnit(models.UnitAll)

	current := m.generator.GenerateUnits(units, w, m.cfg.TargetRate)
	previous := m.generator.GenerateUnits(units, w.Previous(), m.cfg.TargetRate)
	cmp := compliance.CompareWithPrevious(
		compliance.AggregateUnits(current),
		compliance.AggregateUnits(previous),
	)

	trend := compliance.MergeUnits(current)
	var today models.DailyRecord
	if len(trend) > 0 {
		today = trend[len(trend)-1]
	}

	return &DashboardData{
		Range:        rng,
		Window:       w,
		Comparison:   cmp,
		Trend:        trend,
		Today:        today,
		Cards:        buildCards(today, cmp),
		Alerts:       append([]models.QualityAlert(nil), models.QualityAlerts...),
		RecentWashes: m.generator.RecentWashes(RecentWashCount, now),
		Units:        unitSummaries(current),
		GeneratedAt:  now,
	}, nil
}

// StepMetrics generates the series of one technique step over a quick range.
func (m *Manager) StepMetrics(stepID int, rng models.TimeRange) (*StepMetrics, error) {
	if !rng.Valid() {
		return nil, fmt.Errorf("%w: %d days", compliance.ErrInvalidRange, int(rng))
	}
	records, profile, err := m.generator.GenerateStepSeries(stepID, rng.Days(), m.now())
	if err != nil {
		return nil, err
	}
	return &StepMetrics{
		Profile: profile,
		Range:   rng,
		Records: records,
		Summary: compliance.AggregateSteps(records),
	}, nil
}

// Preview summarizes what a report with the given filter would cover.
func (m *Manager) Preview(f models.Filter) (*ReportPreview, error) {
	w, unit, units, err := m.resolve(f)
	if err != nil {
		return nil, err
	}
	kind, _ := models.LookupReportKind(orDefault(f.Kind, models.ReportGeneral))
	series := m.generator.GenerateUnits(units, w, m.cfg.TargetRate)
	return &ReportPreview{
		Filter:  f,
		Window:  w,
		Unit:    unit,
		Kind:    kind,
		Summary: compliance.AggregateUnits(series),
	}, nil
}

// BuildReport assembles and paginates a report for the filter.
func (m *Manager) BuildReport(f models.Filter) (models.ReportDocument, []report.Page, error) {
	w, unit, units, err := m.resolve(f)
	if err != nil {
		return models.ReportDocument{}, nil, err
	}
	kind, _ := models.LookupReportKind(orDefault(f.Kind, models.ReportGeneral))

	doc := report.Build(report.BuildInput{
		Kind:          kind,
		UnitLabel:     unit.Name,
		Window:        w,
		Units:         m.generator.GenerateUnits(units, w, m.cfg.TargetRate),
		StepBreakdown: m.generator.StepBreakdown(w.Days(), w.End),
		GeneratedAt:   m.now(),
	})
	return doc, report.Paginate(doc, report.DefaultLayout()), nil
}

// ExportReport builds a report, writes it and records it in the export log.
// With an empty outPath the file goes to the export directory under a
// generated name.
func (m *Manager) ExportReport(f models.Filter, format report.Format, outPath string) (*models.ExportRecord, error) {
	doc, pages, err := m.BuildReport(f)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := report.Write(&buf, format, doc, pages); err != nil {
		return nil, err
	}

	path := outPath
	if path == "" {
		path, err = m.exports.Save(report.FileName(doc, format), buf.Bytes())
		if err != nil {
			return nil, err
		}
	} else {
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0o750); err != nil {
				return nil, fmt.Errorf("failed to create output directory: %w", err)
			}
		}
		if err := os.WriteFile(path, buf.Bytes(), 0o600); err != nil {
			return nil, fmt.Errorf("failed to write report: %w", err)
		}
	}

	rec := models.ExportRecord{
		ID:             doc.ID,
		GeneratedAt:    doc.GeneratedAt,
		Path:           path,
		Format:         string(format),
		UnitLabel:      doc.UnitLabel,
		Kind:           doc.Kind.ID,
		DateRangeLabel: doc.DateRangeLabel,
		TotalAttempts:  doc.Summary.TotalAttempts,
		TotalSuccesses: doc.Summary.TotalSuccesses,
		SuccessRate:    compliance.Round1(doc.Summary.SuccessRate),
		Pages:          len(pages),
	}
	if err := m.database.InsertExport(&rec); err != nil {
		return nil, err
	}

	logger.Info("report exported", "path", path, "kind", rec.Kind, "pages", rec.Pages)

	if m.cfg.DesktopNotify && m.notify != nil {
		body := fmt.Sprintf("%s, %s (%d pages)", doc.Kind.Name, doc.UnitLabel, len(pages))
		if err := m.notify("Report exported", body); err != nil {
			logger.Warn("desktop notification failed", "error", err)
		}
	}

	m.broadcast(ExportCompletedEvent{Record: rec})
	return &rec, nil
}

func (m *Manager) resolve(f models.Filter) (models.Window, models.Unit, []models.Unit, error) {
	f.Unit = orDefault(f.Unit, models.UnitAll)
	if err := compliance.ValidateFilter(f); err != nil {
		return models.Window{}, models.Unit{}, nil, err
	}
	w, err := compliance.ResolveWindow(f, m.now())
	if err != nil {
		return models.Window{}, models.Unit{}, nil, err
	}
	unit, _ := models.LookupUnit(f.Unit)
	units, _ := models.ExpandUnit(f.Unit)
	return w, unit, units, nil
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

// RecentExports returns the newest entries of the export log.
func (m *Manager) RecentExports(limit int) ([]models.ExportRecord, error) {
	if m.database == nil {
		return nil, errors.New("database not initialized")
	}
	return m.database.ListExports(limit)
}

// ExportFiles returns the report files currently in the export directory.
func (m *Manager) ExportFiles() []models.ExportFile {
	return m.exports.Files()
}

// NewStationAnimator creates a progress animator for the wash station
// using the configured timing.
func (m *Manager) NewStationAnimator() (*animator.Scheduler, error) {
	cfg := animator.DefaultConfig()
	cfg.Tick = m.cfg.AnimationTick
	cfg.Duration = m.cfg.AnimationDuration
	cfg.MaxDelay = m.cfg.AnimationMaxDelay
	return animator.New(cfg, m.generator.Source(), animator.StationTargets())
}

// Now returns the manager's clock reading.
func (m *Manager) Now() time.Time {
	return m.now()
}

// Generator returns the synthetic data generator.
func (m *Manager) Generator() *compliance.Generator {
	return m.generator
}

// Config returns the configuration the manager was built with.
func (m *Manager) Config() *config.Config {
	return m.cfg
}

// Database returns the database instance for direct access.
func (m *Manager) Database() *db.DB {
	return m.database
}

// Close closes the manager and all its services. Later calls return the
// first call's result.
func (m *Manager) Close() error {
	m.closeOnce.Do(func() { m.closeErr = m.close() })
	return m.closeErr
}

func (m *Manager) close() error {
	close(m.stopChan)

	m.mu.Lock()
	for _, sub := range m.subscribers {
		close(sub)
	}
	m.subscribers = nil
	m.mu.Unlock()

	var errs []error

	if err := m.exports.Close(); err != nil {
		errs = append(errs, err)
	}

	if m.database != nil {
		if err := m.database.Close(); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}
