package driver

import (
	"time"

	"phpfront/internal/observ"
)

// phaseTracker feeds an optional Timer and an optional PhaseObserver
// from the same begin/end calls.
type phaseTracker struct {
	path     string
	timer    *observ.Timer
	observer PhaseObserver
	starts   []time.Time
}

func newPhaseTracker(path string, opts DiagnoseOptions) *phaseTracker {
	t := &phaseTracker{path: path, observer: opts.Observer}
	if opts.EnableTimings {
		t.timer = observ.NewTimer()
	}
	return t
}

func (t *phaseTracker) begin(name string) int {
	if t.observer != nil {
		t.observer(PhaseEvent{Path: t.path, Name: name, Status: PhaseStart})
	}
	t.starts = append(t.starts, time.Now())
	if t.timer != nil {
		t.timer.Begin(name)
	}
	return len(t.starts) - 1
}

func (t *phaseTracker) end(idx int, name, note string) {
	if idx < 0 || idx >= len(t.starts) {
		return
	}
	if t.timer != nil {
		t.timer.End(idx, note)
	}
	if t.observer != nil {
		t.observer(PhaseEvent{Path: t.path, Name: name, Status: PhaseEnd, Elapsed: time.Since(t.starts[idx])})
	}
}

// report returns nil when timings are off.
func (t *phaseTracker) report() *observ.Report {
	if t.timer == nil {
		return nil
	}
	r := t.timer.Report()
	return &r
}

// BatchTimings sums the per-file reports of a Diagnose run.
func BatchTimings(results []DiagnoseResult) observ.Report {
	reports := make([]observ.Report, 0, len(results))
	for _, r := range results {
		if r.Timing != nil {
			reports = append(reports, *r.Timing)
		}
	}
	return observ.Merge(reports...)
}
