package run

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/ryanuber/go-glob"

	"digital.vasic.storefront/pkg/logging"
)

// Hook is called after each result is recorded. Hooks run
// synchronously in registration order.
type Hook func(Result)

// Recorder accumulates test results for one run. It is safe
// for concurrent use.
type Recorder struct {
	mu        sync.Mutex
	runID     string
	startTime time.Time
	results   []Result
	hooks     []Hook
	logger    logging.Logger
}

// RecorderOption configures a Recorder.
type RecorderOption func(*Recorder)

// WithLogger sets the logger.
func WithLogger(logger logging.Logger) RecorderOption {
	return func(r *Recorder) {
		r.logger = logger
	}
}

// WithHook registers a hook called after every Record.
func WithHook(h Hook) RecorderOption {
	return func(r *Recorder) {
		r.hooks = append(r.hooks, h)
	}
}

// NewRecorder creates a Recorder with a fresh run ID.
func NewRecorder(opts ...RecorderOption) *Recorder {
	r := &Recorder{
		runID:     uuid.NewString(),
		startTime: time.Now(),
		logger:    logging.NullLogger{},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// RunID returns the unique identifier of this run.
func (r *Recorder) RunID() string {
	return r.runID
}

// Record stores a result and notifies hooks.
func (r *Recorder) Record(result Result) {
	r.mu.Lock()
	r.results = append(r.results, result)
	hooks := make([]Hook, len(r.hooks))
	copy(hooks, r.hooks)
	r.mu.Unlock()

	r.logger.Debug("result recorded",
		logging.StringField("test", result.Test),
		logging.StringField("status", result.Status),
		logging.DurationField("duration", result.Duration),
	)

	for _, hook := range hooks {
		hook(result)
	}
}

// Results returns a copy of all recorded results, in recording
// order.
func (r *Recorder) Results() []Result {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]Result, len(r.results))
	copy(out, r.results)
	return out
}

// ResultsMatching returns the results whose test name matches
// the glob pattern. An empty pattern matches everything.
func (r *Recorder) ResultsMatching(pattern string) []Result {
	if pattern == "" {
		return r.Results()
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	var matched []Result
	for _, result := range r.results {
		if glob.Glob(pattern, result.Test) {
			matched = append(matched, result)
		}
	}
	return matched
}

// Summary aggregates the recorded results.
func (r *Recorder) Summary() Summary {
	r.mu.Lock()
	defer r.mu.Unlock()

	summary := Summary{
		RunID:     r.runID,
		StartTime: r.startTime,
		Total:     len(r.results),
	}
	for _, result := range r.results {
		summary.Duration += result.Duration
		switch result.Status {
		case StatusPassed:
			summary.Passed++
		case StatusFailed:
			summary.Failed++
		case StatusSkipped:
			summary.Skipped++
		}
	}

	counted := summary.Total - summary.Skipped
	if counted > 0 {
		summary.PassRate = float64(summary.Passed) / float64(counted) * 100
	}
	return summary
}
