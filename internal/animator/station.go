package animator

import (
	"fmt"
	"time"

	"github.com/cysce/handwash-dashboard-tui/internal/compliance"
)

// StationTargets returns the wash station ring targets, one per technique step.
func StationTargets() []Target {
	values := []float64{100, 100, 65, 20, 10, 0}
	steps := compliance.Steps()
	targets := make([]Target, len(steps))
	for i, p := range steps {
		targets[i] = Target{Name: p.Name, Value: values[i]}
	}
	return targets
}

// Overall is the mean current value across slots, 0 for none.
func Overall(slots []Slot) float64 {
	if len(slots) == 0 {
		return 0
	}
	sum := 0.0
	for _, s := range slots {
		sum += s.Current
	}
	return sum / float64(len(slots))
}

// VideoClock is the simulated playback position of the station camera feed.
type VideoClock struct {
	Elapsed time.Duration
	Total   time.Duration
}

// NewVideoClock returns the clock the station view starts from.
func NewVideoClock() VideoClock {
	return VideoClock{Elapsed: 21 * time.Second, Total: 3*time.Minute + 18*time.Second}
}

// Advance moves the clock forward, wrapping at the end of the feed.
func (c VideoClock) Advance(d time.Duration) VideoClock {
	if c.Total <= 0 {
		return c
	}
	c.Elapsed = (c.Elapsed + d) % c.Total
	return c
}

// String renders "m:ss / m:ss".
func (c VideoClock) String() string {
	return clockLabel(c.Elapsed) + " / " + clockLabel(c.Total)
}

func clockLabel(d time.Duration) string {
	secs := int(d / time.Second)
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}
