package monitor

import (
	"sync"
	"time"
)

// EventCollector captures test events and timing data.
type EventCollector struct {
	mu       sync.RWMutex
	events   []TestEvent
	handlers []func(TestEvent)
	stats    CollectorStats
}

// CollectorStats holds aggregate statistics.
type CollectorStats struct {
	Total     int           `json:"total"`
	Passed    int           `json:"passed"`
	Failed    int           `json:"failed"`
	Skipped   int           `json:"skipped"`
	StartTime time.Time     `json:"start_time"`
	Duration  time.Duration `json:"duration"`
}

// NewEventCollector creates a new event collector.
func NewEventCollector() *EventCollector {
	return &EventCollector{
		events: make([]TestEvent, 0, 64),
		stats:  CollectorStats{StartTime: time.Now()},
	}
}

// OnEvent registers a handler to be called for each event.
func (c *EventCollector) OnEvent(handler func(TestEvent)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.handlers = append(c.handlers, handler)
}

// Emit records an event and notifies all handlers.
func (c *EventCollector) Emit(event TestEvent) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	c.mu.Lock()
	c.events = append(c.events, event)
	switch event.Type {
	case EventPassed:
		c.stats.Total++
		c.stats.Passed++
	case EventFailed:
		c.stats.Total++
		c.stats.Failed++
	case EventSkipped:
		c.stats.Total++
		c.stats.Skipped++
	}
	c.stats.Duration = time.Since(c.stats.StartTime)
	handlers := make([]func(TestEvent), len(c.handlers))
	copy(handlers, c.handlers)
	c.mu.Unlock()

	for _, h := range handlers {
		h(event)
	}
}

// EmitStarted emits a test started event.
func (c *EventCollector) EmitStarted(suite, test string) {
	c.Emit(TestEvent{
		Type:  EventStarted,
		Suite: suite,
		Test:  test,
	})
}

// EmitPassed emits a test passed event.
func (c *EventCollector) EmitPassed(suite, test string, duration time.Duration) {
	c.Emit(TestEvent{
		Type:     EventPassed,
		Suite:    suite,
		Test:     test,
		Duration: duration,
	})
}

// EmitFailed emits a test failed event.
func (c *EventCollector) EmitFailed(suite, test, msg string) {
	c.Emit(TestEvent{
		Type:    EventFailed,
		Suite:   suite,
		Test:    test,
		Message: msg,
	})
}

// EmitScreenshot emits a screenshot captured event pointing at
// the evidence file.
func (c *EventCollector) EmitScreenshot(suite, test, path string) {
	c.Emit(TestEvent{
		Type:  EventScreenshot,
		Suite: suite,
		Test:  test,
		Path:  path,
	})
}

// Events returns a copy of all collected events.
func (c *EventCollector) Events() []TestEvent {
	c.mu.RLock()
	defer c.mu.RUnlock()
	result := make([]TestEvent, len(c.events))
	copy(result, c.events)
	return result
}

// Stats returns the current aggregate statistics.
func (c *EventCollector) Stats() CollectorStats {
	c.mu.RLock()
	defer c.mu.RUnlock()
	s := c.stats
	s.Duration = time.Since(s.StartTime)
	return s
}

// Reset clears all collected events and statistics.
func (c *EventCollector) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = c.events[:0]
	c.stats = CollectorStats{StartTime: time.Now()}
}
