// Package logger wraps zerolog behind the small surface the styling engine
// needs. A nil *Logger is valid and silent, so callers never guard their
// log sites.
package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Options describes logger configuration supplied at creation time.
type Options struct {
	Level         string
	HumanReadable bool
	Writer        io.Writer
}

// Logger wraps zerolog to provide a simplified key/value API.
type Logger struct {
	base zerolog.Logger
}

// New creates a configured Logger instance based on Options.
func New(opts Options) (*Logger, error) {
	writer := opts.Writer
	if writer == nil {
		writer = os.Stdout
	}

	level := zerolog.InfoLevel
	if opts.Level != "" {
		parsed, err := zerolog.ParseLevel(strings.ToLower(opts.Level))
		if err != nil {
			return nil, err
		}
		level = parsed
	}

	var output io.Writer = writer
	if opts.HumanReadable {
		console := zerolog.NewConsoleWriter()
		console.Out = writer
		console.TimeFormat = time.RFC3339
		output = console
	}

	base := zerolog.New(output).Level(level).With().Timestamp().Logger()
	return &Logger{base: base}, nil
}

// Nop returns a logger that discards everything.
func Nop() *Logger {
	return &Logger{base: zerolog.Nop()}
}

// WithFields returns a derived logger that always writes the supplied fields.
func (l *Logger) WithFields(fields map[string]any) *Logger {
	if l == nil {
		return nil
	}

	builder := l.base.With()
	for key, value := range fields {
		builder = builder.Interface(key, value)
	}

	derived := Logger{base: builder.Logger()}
	return &derived
}

// DebugEnabled reports whether debug entries would be written. Callers use
// it to skip building expensive log payloads.
func (l *Logger) DebugEnabled() bool {
	if l == nil {
		return false
	}
	return l.base.GetLevel() <= zerolog.DebugLevel
}

// Debug writes a debug-level log entry if enabled.
func (l *Logger) Debug(msg string, kv ...any) {
	if l == nil {
		return
	}
	withKV(l.base.Debug(), kv).Msg(msg)
}

// Info writes an informational log entry.
func (l *Logger) Info(msg string, kv ...any) {
	if l == nil {
		return
	}
	withKV(l.base.Info(), kv).Msg(msg)
}

// Warn writes a warning level log entry.
func (l *Logger) Warn(msg string, kv ...any) {
	if l == nil {
		return
	}
	withKV(l.base.Warn(), kv).Msg(msg)
}

// Error writes an error log entry including the supplied error context.
func (l *Logger) Error(err error, msg string, kv ...any) {
	if l == nil {
		return
	}
	event := l.base.Error()
	if err != nil {
		event = event.Err(err)
	}
	withKV(event, kv).Msg(msg)
}

// withKV attaches alternating key/value pairs. Keys that are not strings
// and trailing values without a key are dropped rather than panicking.
func withKV(event *zerolog.Event, kv []any) *zerolog.Event {
	for i := 0; i+1 < len(kv); i += 2 {
		key, ok := kv[i].(string)
		if !ok {
			continue
		}
		event = event.Interface(key, kv[i+1])
	}
	return event
}
