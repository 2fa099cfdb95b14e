package logging

import (
	"strings"

	"digital.vasic.storefront/pkg/env"
)

// RedactingLogger is a decorator that redacts credential strings
// from log messages and field values before passing them to the
// inner logger. Password-like field keys are masked even when
// their value was not registered as a secret.
type RedactingLogger struct {
	inner   Logger
	secrets []string
}

// NewRedactingLogger creates a logger that redacts the given
// secrets from all messages and string field values.
func NewRedactingLogger(
	inner Logger,
	secrets ...string,
) *RedactingLogger {
	return &RedactingLogger{
		inner:   inner,
		secrets: secrets,
	}
}

func (r *RedactingLogger) redact(msg string) string {
	result := msg
	for _, secret := range r.secrets {
		if secret != "" && len(secret) > 4 {
			result = strings.ReplaceAll(
				result, secret, env.RedactValue(secret),
			)
		}
	}
	return result
}

func (r *RedactingLogger) redactFields(
	fields []Field,
) []Field {
	result := make([]Field, len(fields))
	for i, f := range fields {
		str, ok := f.Value.(string)
		if !ok {
			result[i] = f
			continue
		}
		if env.LooksSensitive(f.Key) {
			result[i] = Field{
				Key:   f.Key,
				Value: env.RedactPassword(str),
			}
			continue
		}
		result[i] = Field{
			Key:   f.Key,
			Value: r.redact(str),
		}
	}
	return result
}

// Info logs a redacted informational message.
func (r *RedactingLogger) Info(
	msg string, fields ...Field,
) {
	r.inner.Info(r.redact(msg), r.redactFields(fields)...)
}

// Warn logs a redacted warning message.
func (r *RedactingLogger) Warn(
	msg string, fields ...Field,
) {
	r.inner.Warn(r.redact(msg), r.redactFields(fields)...)
}

// Error logs a redacted error message.
func (r *RedactingLogger) Error(
	msg string, fields ...Field,
) {
	r.inner.Error(r.redact(msg), r.redactFields(fields)...)
}

// Debug logs a redacted debug message.
func (r *RedactingLogger) Debug(
	msg string, fields ...Field,
) {
	r.inner.Debug(r.redact(msg), r.redactFields(fields)...)
}

// WithFields returns a RedactingLogger wrapping a new inner
// logger with the given fields applied.
func (r *RedactingLogger) WithFields(
	fields ...Field,
) Logger {
	return &RedactingLogger{
		inner: r.inner.WithFields(
			r.redactFields(fields)...,
		),
		secrets: r.secrets,
	}
}

// LogBrowserCommand logs a browser command with any typed value
// redacted. Keystrokes sent to password fields must never reach
// the logs verbatim.
func (r *RedactingLogger) LogBrowserCommand(
	command BrowserCommandLog,
) {
	command.Value = r.redact(command.Value)
	if strings.Contains(command.Locator, "password") {
		command.Value = env.RedactPassword(command.Value)
	}
	r.inner.LogBrowserCommand(command)
}

// Close closes the inner logger.
func (r *RedactingLogger) Close() error {
	return r.inner.Close()
}
