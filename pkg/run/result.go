// Package run collects per-test outcomes during a suite run and
// summarises them for reporting.
package run

import "time"

// Status constants for test outcomes.
const (
	StatusPassed  = "passed"
	StatusFailed  = "failed"
	StatusSkipped = "skipped"
)

// Result captures the outcome of one executed test, including
// timing and any evidence captured on failure.
type Result struct {
	// Suite is the suite the test belongs to.
	Suite string `json:"suite"`

	// Test is the test name, including subtest path.
	Test string `json:"test"`

	// Status is one of the Status* constants.
	Status string `json:"status"`

	// StartTime is when execution began.
	StartTime time.Time `json:"start_time"`

	// Duration is the wall-clock execution time.
	Duration time.Duration `json:"duration"`

	// Error contains the failure message, if any.
	Error string `json:"error,omitempty"`

	// ScreenshotPath is the failure screenshot, if captured.
	ScreenshotPath string `json:"screenshot_path,omitempty"`
}

// Passed reports whether the test passed.
func (r Result) Passed() bool {
	return r.Status == StatusPassed
}

// Summary aggregates all results of one run.
type Summary struct {
	// RunID uniquely identifies the run.
	RunID string `json:"run_id"`

	// StartTime is when the run began.
	StartTime time.Time `json:"start_time"`

	// Total is the number of recorded results.
	Total int `json:"total"`

	// Passed, Failed and Skipped count results per status.
	Passed  int `json:"passed"`
	Failed  int `json:"failed"`
	Skipped int `json:"skipped"`

	// Duration is the sum of all test durations.
	Duration time.Duration `json:"duration"`

	// PassRate is passed over total, in percent. Skipped
	// results do not count against it.
	PassRate float64 `json:"pass_rate"`
}
