package logging

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func newTestConsoleLogger(verbose bool) (*ConsoleLogger, *bytes.Buffer) {
	var buf bytes.Buffer
	l := NewConsoleLogger(verbose)
	l.output = &buf
	return l, &buf
}

func TestConsoleLogger_Info(t *testing.T) {
	l, buf := newTestConsoleLogger(false)
	l.Info("logging in", StringField("username", "standard_user"))

	out := buf.String()
	assert.Contains(t, out, "INFO")
	assert.Contains(t, out, "logging in")
	assert.Contains(t, out, "username=standard_user")
}

func TestConsoleLogger_DebugSuppressedUnlessVerbose(t *testing.T) {
	l, buf := newTestConsoleLogger(false)
	l.Debug("hidden")
	assert.Empty(t, buf.String())

	l, buf = newTestConsoleLogger(true)
	l.Debug("shown")
	assert.Contains(t, buf.String(), "shown")
}

func TestConsoleLogger_WithFields(t *testing.T) {
	l, _ := newTestConsoleLogger(false)
	child := l.WithFields(StringField("suite", "login"))

	cl, ok := child.(*ConsoleLogger)
	assert.True(t, ok)
	assert.Equal(t, "login", cl.fields["suite"])
	// Parent is unchanged.
	assert.Empty(t, l.fields)
}

func TestConsoleLogger_LogBrowserCommand(t *testing.T) {
	l, buf := newTestConsoleLogger(true)
	l.LogBrowserCommand(BrowserCommandLog{
		Command:    "click",
		Locator:    "id=login-button",
		DurationMs: 12,
	})
	assert.Contains(t, buf.String(), "command=click")

	// A failed command is surfaced as a warning even without
	// verbose mode.
	l, buf = newTestConsoleLogger(false)
	l.LogBrowserCommand(BrowserCommandLog{
		Command: "click",
		Locator: "id=login-button",
		Error:   "element not found",
	})
	assert.Contains(t, buf.String(), "WARN")
	assert.Contains(t, buf.String(), "element not found")
}

func TestConsoleLogger_Close(t *testing.T) {
	l, _ := newTestConsoleLogger(false)
	assert.NoError(t, l.Close())
}
