package monitor

import (
	"sync"
	"time"
)

// Dashboard accumulates real-time run state, keyed by test
// name. Read it through Snapshot.
type Dashboard struct {
	mu        sync.RWMutex
	runID     string
	startTime time.Time
	status    string // running, completed
	tests     map[string]TestState
	summary   DashboardSummary
}

// DashboardSnapshot is a plain copy of the dashboard state,
// safe to marshal and hand to clients.
type DashboardSnapshot struct {
	RunID     string               `json:"run_id"`
	StartTime time.Time            `json:"start_time"`
	Status    string               `json:"status"`
	Tests     map[string]TestState `json:"tests"`
	Summary   DashboardSummary     `json:"summary"`
}

// TestState represents the current state of one test in the
// dashboard.
type TestState struct {
	Suite      string        `json:"suite,omitempty"`
	Test       string        `json:"test"`
	Status     string        `json:"status"`
	StartTime  *time.Time    `json:"start_time,omitempty"`
	EndTime    *time.Time    `json:"end_time,omitempty"`
	Duration   time.Duration `json:"duration,omitempty"`
	Message    string        `json:"message,omitempty"`
	Screenshot string        `json:"screenshot,omitempty"`
}

// DashboardSummary holds aggregate stats for the dashboard.
type DashboardSummary struct {
	Total    int     `json:"total"`
	Passed   int     `json:"passed"`
	Failed   int     `json:"failed"`
	Skipped  int     `json:"skipped"`
	Running  int     `json:"running"`
	PassRate float64 `json:"pass_rate"`
	Elapsed  string  `json:"elapsed"`
}

// NewDashboard creates a dashboard for one run.
func NewDashboard(runID string) *Dashboard {
	return &Dashboard{
		runID:     runID,
		startTime: time.Now(),
		status:    "running",
		tests:     make(map[string]TestState),
	}
}

// UpdateFromEvent updates dashboard state from a test event.
func (d *Dashboard) UpdateFromEvent(event TestEvent) {
	d.mu.Lock()
	defer d.mu.Unlock()

	now := time.Now()
	state, exists := d.tests[event.Test]
	if !exists {
		state = TestState{Suite: event.Suite, Test: event.Test}
	}

	switch event.Type {
	case EventStarted:
		state.Status = "running"
		state.StartTime = &now
	case EventPassed:
		state.Status = "passed"
		state.EndTime = &now
		state.Duration = event.Duration
	case EventFailed:
		state.Status = "failed"
		state.EndTime = &now
		state.Message = event.Message
	case EventSkipped:
		state.Status = "skipped"
	case EventScreenshot:
		state.Screenshot = event.Path
	}

	d.tests[event.Test] = state
	d.recalcSummary()
}

func (d *Dashboard) recalcSummary() {
	s := DashboardSummary{}
	for _, test := range d.tests {
		s.Total++
		switch test.Status {
		case "passed":
			s.Passed++
		case "failed":
			s.Failed++
		case "skipped":
			s.Skipped++
		case "running":
			s.Running++
		}
	}
	if completed := s.Passed + s.Failed; completed > 0 {
		s.PassRate = float64(s.Passed) / float64(completed) * 100
	}
	s.Elapsed = time.Since(d.startTime).Round(time.Millisecond).String()
	d.summary = s
}

// Snapshot returns a copy of the current dashboard state.
func (d *Dashboard) Snapshot() DashboardSnapshot {
	d.mu.RLock()
	defer d.mu.RUnlock()

	snap := DashboardSnapshot{
		RunID:     d.runID,
		StartTime: d.startTime,
		Status:    d.status,
		Summary:   d.summary,
		Tests:     make(map[string]TestState, len(d.tests)),
	}
	for k, v := range d.tests {
		snap.Tests[k] = v
	}
	return snap
}

// SetStatus sets the overall run status.
func (d *Dashboard) SetStatus(status string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.status = status
}

// BuildDashboard creates a Dashboard from an EventCollector by
// replaying all collected events.
func BuildDashboard(runID string, collector *EventCollector) *Dashboard {
	dashboard := NewDashboard(runID)
	for _, event := range collector.Events() {
		dashboard.UpdateFromEvent(event)
	}
	return dashboard
}
