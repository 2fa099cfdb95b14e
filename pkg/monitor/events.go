// Package monitor streams live test run events to dashboard
// clients over WebSocket.
package monitor

import "time"

// EventType represents the type of test event.
type EventType string

const (
	EventStarted    EventType = "started"
	EventPassed     EventType = "passed"
	EventFailed     EventType = "failed"
	EventSkipped    EventType = "skipped"
	EventScreenshot EventType = "screenshot"
)

// TestEvent represents a lifecycle event during test execution.
type TestEvent struct {
	Type      EventType     `json:"type"`
	Suite     string        `json:"suite,omitempty"`
	Test      string        `json:"test"`
	Message   string        `json:"message,omitempty"`
	Path      string        `json:"path,omitempty"`
	Duration  time.Duration `json:"duration,omitempty"`
	Timestamp time.Time     `json:"timestamp"`
}
