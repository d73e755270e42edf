// Package animator advances a set of progress slots toward fixed targets on a
// tick cadence. A single Scheduler owns every slot; cancellation stops all of
// them at once.
package animator

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/cysce/handwash-dashboard-tui/internal/compliance"
)

// ErrInvalidConfig is returned for a non-positive tick or a tick longer than the duration.
var ErrInvalidConfig = errors.New("invalid animator config")

// settleEpsilon absorbs float drift from adding the per-tick step.
const settleEpsilon = 1e-9

// State is the lifecycle state of a slot.
type State int

const (
	Idle State = iota
	Advancing
	Settled
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Advancing:
		return "advancing"
	case Settled:
		return "settled"
	default:
		return "unknown"
	}
}

// Jitter returns the multiplier applied to the base increment of one tick.
type Jitter func(src compliance.Source) float64

// NoJitter always advances by exactly the base increment.
func NoJitter(compliance.Source) float64 { return 1 }

// BandJitter draws the multiplier uniformly from [lo, hi).
func BandJitter(lo, hi float64) Jitter {
	lo = max(lo, 0)
	hi = max(hi, lo)
	return func(src compliance.Source) float64 {
		return lo + src.Float64()*(hi-lo)
	}
}

// FixedBandJitter is the narrow 0.8–1.2× band.
func FixedBandJitter() Jitter { return BandJitter(0.8, 1.2) }

// Config controls the cadence of a scheduler.
type Config struct {
	Tick     time.Duration
	Duration time.Duration
	MaxDelay time.Duration
	Jitter   Jitter
}

// DefaultConfig returns a 1s animation at 20ms per tick with up to 600ms start delay.
func DefaultConfig() Config {
	return Config{
		Tick:     20 * time.Millisecond,
		Duration: time.Second,
		MaxDelay: 600 * time.Millisecond,
		Jitter:   BandJitter(0.5, 1.5),
	}
}

// Validate checks the tick against the duration.
func (c Config) Validate() error {
	if c.Tick <= 0 {
		return fmt.Errorf("%w: tick must be positive", ErrInvalidConfig)
	}
	if c.Duration < c.Tick {
		return fmt.Errorf("%w: tick %s longer than duration %s", ErrInvalidConfig, c.Tick, c.Duration)
	}
	if c.MaxDelay < 0 {
		return fmt.Errorf("%w: negative max delay", ErrInvalidConfig)
	}
	return nil
}

// TotalTicks is the number of ticks an unjittered slot needs to reach its target.
func (c Config) TotalTicks() int {
	return int(c.Duration / c.Tick)
}

// Target names a slot and the value it settles at.
type Target struct {
	Name  string
	Value float64
}

// Slot is a read-only view of one animated value.
type Slot struct {
	Name    string
	Target  float64
	Current float64
	State   State
}

// Percent returns the current value as a 0-1 fraction for progress widgets.
func (s Slot) Percent() float64 {
	return s.Current / 100
}

type slot struct {
	Slot
	delay int
	ticks int
}

// Scheduler owns the slots of one animation.
type Scheduler struct {
	mu        sync.Mutex
	cfg       Config
	src       compliance.Source
	targets   []Target
	slots     []*slot
	base      []float64
	budget    int
	ticks     int
	running   bool
	cancelled bool
}

// New creates a scheduler in the Idle state. Targets are clamped to [0, 100].
func New(cfg Config, src compliance.Source, targets []Target) (*Scheduler, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.Jitter == nil {
		cfg.Jitter = NoJitter
	}
	if src == nil {
		src = compliance.NewTimeSource()
	}
	s := &Scheduler{
		cfg:     cfg,
		src:     src,
		targets: append([]Target(nil), targets...),
		budget:  2 * cfg.TotalTicks(),
	}
	s.reset()
	return s, nil
}

func (s *Scheduler) reset() {
	total := float64(s.cfg.TotalTicks())
	maxDelay := int(s.cfg.MaxDelay / s.cfg.Tick)

	s.slots = make([]*slot, len(s.targets))
	s.base = make([]float64, len(s.targets))
	for i, t := range s.targets {
		value := min(max(t.Value, 0), 100)
		s.slots[i] = &slot{Slot: Slot{Name: t.Name, Target: value, State: Idle}}
		s.base[i] = value / total
		if maxDelay > 0 {
			s.slots[i].delay = s.src.IntN(maxDelay + 1)
		}
	}
	s.ticks = 0
}

// Start resets every slot to zero and begins a fresh run.
func (s *Scheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reset()
	s.running = true
	s.cancelled = false
}

// Cancel stops the run. Later ticks are ignored until Start is called again.
func (s *Scheduler) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.running = false
	s.cancelled = true
}

// Cancelled reports whether the current run was cancelled.
func (s *Scheduler) Cancelled() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cancelled
}

// Running reports whether ticks currently mutate slots.
func (s *Scheduler) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// Tick advances every slot by one step. It returns false once the run is
// settled or cancelled.
func (s *Scheduler) Tick() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.running {
		return false
	}
	s.ticks++

	active := false
	for i, sl := range s.slots {
		switch sl.State {
		case Settled:
			continue
		case Idle:
			if sl.delay > 0 {
				sl.delay--
				active = true
				continue
			}
			sl.State = Advancing
		}

		sl.Current += s.base[i] * max(s.cfg.Jitter(s.src), 0)
		sl.ticks++
		if sl.Current >= sl.Target-settleEpsilon || sl.ticks >= s.budget {
			sl.Current = sl.Target
			sl.State = Settled
			continue
		}
		active = true
	}
	if !active {
		s.running = false
	}
	return active
}

// Done reports whether every slot has settled.
func (s *Scheduler) Done() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, sl := range s.slots {
		if sl.State != Settled {
			return false
		}
	}
	return true
}

// Ticks returns the number of ticks processed in the current run.
func (s *Scheduler) Ticks() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ticks
}

// Interval returns the tick cadence.
func (s *Scheduler) Interval() time.Duration {
	return s.cfg.Tick
}

// Snapshot returns a copy of every slot.
func (s *Scheduler) Snapshot() []Slot {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Slot, len(s.slots))
	for i, sl := range s.slots {
		out[i] = sl.Slot
	}
	return out
}

// Run starts the scheduler and ticks it from a time.Ticker until every slot
// settles or ctx is done. onTick receives a snapshot after each tick.
func (s *Scheduler) Run(ctx context.Context, onTick func([]Slot)) error {
	s.Start()
	ticker := time.NewTicker(s.cfg.Tick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.Cancel()
			return ctx.Err()
		case <-ticker.C:
			active := s.Tick()
			if onTick != nil {
				onTick(s.Snapshot())
			}
			if !active {
				return nil
			}
		}
	}
}
